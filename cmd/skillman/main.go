package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jingkaihe/skillman/pkg/i18n"
	"github.com/jingkaihe/skillman/pkg/logger"
	"github.com/jingkaihe/skillman/pkg/osutil"
	"github.com/jingkaihe/skillman/pkg/presenter"
	"github.com/jingkaihe/skillman/pkg/skills"
	"github.com/jingkaihe/skillman/pkg/webui"
)

const (
	defaultPort  = 8765
	portMaxTries = 10
)

// ServeConfig holds configuration for the dashboard server
type ServeConfig struct {
	Host   string
	Port   int
	Lang   string
	NoOpen bool
}

// NewServeConfig creates a new ServeConfig with default values. Port 0 means
// probe for a free port starting at the default.
func NewServeConfig() *ServeConfig {
	return &ServeConfig{
		Host: "localhost",
		Port: 0,
	}
}

func init() {
	viper.SetEnvPrefix("SKILLMAN")
	viper.AutomaticEnv()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("$HOME/.skillman")
	viper.AddConfigPath(".")

	// Load config file if it exists (ignore errors if it doesn't)
	_ = viper.ReadInConfig()
}

var rootCmd = &cobra.Command{
	Use:   "skillman",
	Short: "Local web dashboard for managing Claude skills",
	Long: `Skillman scans your local skill directories (~/.claude/skills and
~/.claude/commands) and serves a Finder-style web dashboard for browsing,
searching, and deleting skills. Symlinked skills that resolve into the
externally managed ~/.agents/skills directory are shown under a separate
category.

The dashboard binds to localhost only and picks a free port automatically
unless one is given.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := logger.SetLogLevel(viper.GetString("log_level")); err != nil {
			return err
		}
		logger.SetLogFormat(viper.GetString("log_format"))
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		runServeCommand(cmd.Context(), getServeConfigFromFlags(cmd))
	},
}

// getServeConfigFromFlags extracts serve configuration from command flags
func getServeConfigFromFlags(cmd *cobra.Command) *ServeConfig {
	config := NewServeConfig()

	if host, err := cmd.Flags().GetString("host"); err == nil {
		config.Host = host
	}
	if port, err := cmd.Flags().GetInt("port"); err == nil {
		config.Port = port
	}
	if lang, err := cmd.Flags().GetString("lang"); err == nil {
		config.Lang = lang
	}
	if noOpen, err := cmd.Flags().GetBool("no-open"); err == nil {
		config.NoOpen = noOpen
	}

	return config
}

// validateServeConfig validates the serve configuration
func validateServeConfig(config *ServeConfig) error {
	if config.Host == "" {
		return fmt.Errorf("host cannot be empty")
	}

	if config.Host != "localhost" && config.Host != "0.0.0.0" {
		if ip := net.ParseIP(config.Host); ip == nil {
			if strings.Contains(config.Host, " ") || strings.Contains(config.Host, ":") {
				return fmt.Errorf("invalid host: %s", config.Host)
			}
		}
	}

	if config.Port < 0 || config.Port > 65535 {
		return fmt.Errorf("port must be between 0 and 65535, got %d", config.Port)
	}

	if config.Port != 0 && config.Port < 1024 {
		logger.G(context.Background()).WithField("port", config.Port).Warn("using privileged port (< 1024) may require elevated permissions")
	}

	return nil
}

// runServeCommand starts the skill dashboard server
func runServeCommand(ctx context.Context, config *ServeConfig) {
	if err := validateServeConfig(config); err != nil {
		presenter.Error(err, "invalid server configuration")
		os.Exit(1)
	}

	port := config.Port
	if port == 0 {
		found, err := osutil.FindAvailablePort(defaultPort, portMaxTries)
		if err != nil {
			presenter.Error(err, "no free port available")
			os.Exit(1)
		}
		port = found
	}

	lang := i18n.Detect(config.Lang)

	scanner, err := skills.NewScanner(skills.WithDefaultDirs(), skills.WithLanguage(lang))
	if err != nil {
		presenter.Error(err, "failed to initialize skill scanner")
		os.Exit(1)
	}

	server, err := webui.NewServer(&webui.ServerConfig{
		Host: config.Host,
		Port: port,
		Lang: lang,
	}, scanner)
	if err != nil {
		presenter.Error(err, "failed to create web server")
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	url := fmt.Sprintf("http://%s:%d", config.Host, port)
	logger.G(ctx).WithFields(map[string]interface{}{
		"host": config.Host,
		"port": port,
		"lang": lang,
	}).Info("starting skill dashboard")

	presenter.Success(fmt.Sprintf("Skill dashboard starting on %s", url))
	presenter.Info("Press Ctrl+C to stop the server")

	if !config.NoOpen {
		// Give the listener a moment to come up before pointing a browser
		// at it.
		go func() {
			select {
			case <-time.After(500 * time.Millisecond):
			case <-ctx.Done():
				return
			}
			if err := osutil.OpenBrowser(url); err != nil {
				logger.G(ctx).WithError(err).Warn("failed to open browser")
			}
		}()
	}

	if err := server.Start(ctx); err != nil {
		logger.G(ctx).WithError(err).Error("web server error")
		presenter.Error(err, "web server failed")
		os.Exit(1)
	}

	presenter.Info("Skill dashboard stopped")
}

func main() {
	rootCmd.Flags().String("host", "localhost", "Host to bind the web server to")
	rootCmd.Flags().Int("port", 0, "Port to bind the web server to (0 picks a free one)")
	rootCmd.Flags().String("lang", "", "UI language (en or zh, default: detect from locale)")
	rootCmd.Flags().Bool("no-open", false, "Do not open the dashboard in a browser")

	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "text", "Log format (text, json)")

	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("log_format", rootCmd.PersistentFlags().Lookup("log-format"))

	rootCmd.AddCommand(versionCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

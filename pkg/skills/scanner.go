package skills

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"

	"github.com/jingkaihe/skillman/pkg/i18n"
	"github.com/jingkaihe/skillman/pkg/logger"
)

const (
	// maxBundleDepth bounds recursion into nested "skills" bundles. The
	// two-level bound also decides which directory wins when duplicates
	// exist, so it must not change.
	maxBundleDepth = 2

	bundleDirName       = "skills"
	modifiedLayout      = "2006-01-02 15:04"
	modifiedUnknown     = "unknown"
	descriptionLimit    = 300
	fallbackDescription = "No description available"
)

// Root pairs a scan directory with its display category.
type Root struct {
	Dir      string
	Category string
}

// Scanner discovers skill directories under a fixed set of roots and
// normalizes them into SkillRecords. Its configuration is immutable after
// construction; every Scan recomputes the full collection.
type Scanner struct {
	roots     []Root
	agentsDir string
	lang      i18n.Lang
	home      string
}

// Option is a function that configures a Scanner
type Option func(*Scanner) error

// WithRoots sets custom scan roots
func WithRoots(roots ...Root) Option {
	return func(s *Scanner) error {
		s.roots = roots
		return nil
	}
}

// WithAgentsDir sets the externally managed agents root used for symlink
// reclassification and delete containment
func WithAgentsDir(dir string) Option {
	return func(s *Scanner) error {
		s.agentsDir = dir
		return nil
	}
}

// WithLanguage sets the language used for description resolution
func WithLanguage(lang i18n.Lang) Option {
	return func(s *Scanner) error {
		s.lang = lang
		return nil
	}
}

// WithDefaultDirs initializes the home-derived scan roots and agents root
func WithDefaultDirs() Option {
	return func(s *Scanner) error {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return errors.Wrap(err, "failed to get user home directory")
		}
		s.roots = []Root{
			{Dir: filepath.Join(homeDir, ".claude", "skills"), Category: "skills"},
			{Dir: filepath.Join(homeDir, ".claude", "commands"), Category: "commands"},
		}
		s.agentsDir = filepath.Join(homeDir, ".agents", "skills")
		return nil
	}
}

// NewScanner creates a new skill scanner. Without options it scans the
// default home-derived directories.
func NewScanner(opts ...Option) (*Scanner, error) {
	s := &Scanner{lang: i18n.LangEN}

	if len(opts) == 0 {
		opts = []Option{WithDefaultDirs()}
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	// Home abbreviation is display-only, so a lookup failure just leaves
	// shortPath identical to path.
	s.home, _ = os.UserHomeDir()

	return s, nil
}

// AllowedRoots returns the directories a mutating operation may touch:
// every configured scan root plus the agents root, each only if it
// currently exists on disk.
func (s *Scanner) AllowedRoots() []string {
	candidates := make([]string, 0, len(s.roots)+1)
	for _, root := range s.roots {
		candidates = append(candidates, root.Dir)
	}
	if s.agentsDir != "" {
		candidates = append(candidates, s.agentsDir)
	}

	allowed := make([]string, 0, len(candidates))
	for _, dir := range candidates {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			allowed = append(allowed, dir)
		}
	}
	return allowed
}

// Scan walks all configured roots and returns the discovered skills sorted
// case-insensitively by name. Per-item failures degrade to sentinel values
// and unreadable subtrees are skipped; Scan itself never fails.
func (s *Scanner) Scan(ctx context.Context) []SkillRecord {
	records := []SkillRecord{}
	seen := make(map[string]struct{})

	for _, root := range s.roots {
		if info, err := os.Stat(root.Dir); err != nil || !info.IsDir() {
			continue
		}
		s.scanDir(ctx, root.Dir, root.Category, 0, seen, &records)
	}

	sort.SliceStable(records, func(i, j int) bool {
		return strings.ToLower(records[i].Name) < strings.ToLower(records[j].Name)
	})
	return records
}

func (s *Scanner) scanDir(ctx context.Context, dir, category string, depth int, seen map[string]struct{}, out *[]SkillRecord) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		logger.G(ctx).WithError(err).WithField("dir", dir).Debug("skipping unreadable directory")
		return
	}

	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())

		// Stat (not Lstat) so symlinked skill directories are followed.
		info, err := os.Stat(path)
		if err != nil || !info.IsDir() {
			continue
		}

		manifest := filepath.Join(path, ManifestName)
		if _, err := os.Stat(manifest); err == nil {
			if record, ok := s.buildRecord(ctx, path, manifest, category, seen); ok {
				*out = append(*out, record)
			}
		}

		// A skill bundle may carry sub-skills in a nested "skills"
		// directory; descend whether or not this directory matched.
		if depth < maxBundleDepth {
			nested := filepath.Join(path, bundleDirName)
			if nestedInfo, err := os.Stat(nested); err == nil && nestedInfo.IsDir() {
				s.scanDir(ctx, nested, category, depth+1, seen, out)
			}
		}
	}
}

// buildRecord assembles a SkillRecord for a directory that passed the
// manifest predicate. Returns false when the resolved real path was
// already seen; first seen wins.
func (s *Scanner) buildRecord(ctx context.Context, path, manifest, category string, seen map[string]struct{}) (SkillRecord, bool) {
	realPath, err := filepath.EvalSymlinks(path)
	if err != nil {
		realPath = path
	}
	if _, dup := seen[realPath]; dup {
		return SkillRecord{}, false
	}
	seen[realPath] = struct{}{}

	// The manifest existed a moment ago but may have vanished since;
	// treat that as absent metadata, not a failure.
	var content string
	if raw, err := os.ReadFile(manifest); err == nil {
		content = string(raw)
	} else {
		logger.G(ctx).WithError(err).WithField("manifest", manifest).Debug("manifest unreadable")
	}

	meta := ParseFrontmatter(content)

	modified := modifiedUnknown
	if info, err := os.Stat(manifest); err == nil {
		modified = info.ModTime().Format(modifiedLayout)
	}

	var isSymlink bool
	if info, err := os.Lstat(path); err == nil {
		isSymlink = info.Mode()&os.ModeSymlink != 0
	}

	dirName := filepath.Base(path)
	name := meta["name"]
	if name == "" {
		name = dirName
	}

	return SkillRecord{
		Name:        name,
		Description: s.resolveDescription(dirName, meta, content),
		Kind:        KindFor(dirName),
		Path:        path,
		ShortPath:   s.shortPath(path),
		RealPath:    realPath,
		Category:    classifyCategory(realPath, isSymlink, category, s.agentsDir),
		Modified:    modified,
		Size:        formatSize(dirSize(path)),
		IsSymlink:   isSymlink,
	}, true
}

// resolveDescription picks the record description: the localized override
// table wins under the Chinese locale, then the parsed frontmatter field,
// then the first meaningful content line.
func (s *Scanner) resolveDescription(dirName string, meta map[string]string, content string) string {
	if s.lang == i18n.LangZH {
		if desc, ok := descriptionZH(dirName); ok {
			return desc
		}
	}
	if desc, ok := meta["description"]; ok {
		return desc
	}
	return extractDescription(content)
}

// extractDescription returns the first non-heading, non-delimiter content
// line outside the frontmatter block, capped at descriptionLimit runes.
func extractDescription(content string) string {
	inFrontmatter := false
	for _, line := range strings.Split(content, "\n") {
		stripped := strings.TrimSpace(line)
		if stripped == frontmatterDelimiter {
			inFrontmatter = !inFrontmatter
			continue
		}
		if inFrontmatter || stripped == "" || strings.HasPrefix(stripped, "#") {
			continue
		}
		if runes := []rune(stripped); len(runes) > descriptionLimit {
			return string(runes[:descriptionLimit])
		}
		return stripped
	}
	return fallbackDescription
}

// dirSize sums the sizes of all regular files under path, silently
// skipping anything unreadable.
func dirSize(path string) int64 {
	var total int64
	_ = filepath.WalkDir(path, func(_ string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if info, err := d.Info(); err == nil {
			total += info.Size()
		}
		return nil
	})
	return total
}

// formatSize renders a byte count with the unit suffixes the UI sorts on.
func formatSize(size int64) string {
	switch {
	case size < 1024:
		return fmt.Sprintf("%dB", size)
	case size < 1024*1024:
		return fmt.Sprintf("%.1fKB", float64(size)/1024)
	default:
		return fmt.Sprintf("%.1fMB", float64(size)/(1024*1024))
	}
}

// shortPath abbreviates the user's home directory to ~ for display.
func (s *Scanner) shortPath(path string) string {
	if s.home != "" && strings.HasPrefix(path, s.home) {
		return "~" + strings.TrimPrefix(path, s.home)
	}
	return path
}

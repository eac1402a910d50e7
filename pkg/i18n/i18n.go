// Package i18n holds the bilingual (English/Chinese) string tables for the
// skillman UI and resolves the process-wide language once at startup. The
// resolved language is an immutable value threaded through the scanner and
// the web server rather than global mutable state.
package i18n

import (
	"os"
	"strings"

	"golang.org/x/text/language"
)

// Lang identifies a supported UI language.
type Lang string

const (
	// LangEN is the English UI language.
	LangEN Lang = "en"
	// LangZH is the Chinese UI language.
	LangZH Lang = "zh"
)

// KindOrder is the fixed display order for skill kinds in the sidebar.
var KindOrder = []string{"dev", "product", "business", "team", "career", "tools", "thinking", "other"}

// Detect resolves the UI language. An explicit "en"/"zh" value wins,
// anything else falls back to probing the OS locale environment.
func Detect(explicit string) Lang {
	switch Lang(explicit) {
	case LangEN, LangZH:
		return Lang(explicit)
	}
	return detectFromEnv()
}

// detectFromEnv probes the usual locale variables in precedence order and
// matches the parsed tag against Chinese; everything else is English.
func detectFromEnv() Lang {
	for _, key := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		value := os.Getenv(key)
		if value == "" {
			continue
		}
		tag, err := language.Parse(normalizeLocale(value))
		if err != nil {
			continue
		}
		if base, _ := tag.Base(); base == chineseBase {
			return LangZH
		}
		return LangEN
	}
	return LangEN
}

// normalizeLocale converts a POSIX locale like "zh_CN.UTF-8" into a
// BCP-47 candidate by dropping the codeset/modifier suffixes.
func normalizeLocale(value string) string {
	if i := strings.IndexAny(value, ".@"); i >= 0 {
		value = value[:i]
	}
	return strings.ReplaceAll(value, "_", "-")
}

var chineseBase, _ = language.Chinese.Base()

// KindLabels returns the localized labels for each skill kind.
func (l Lang) KindLabels() map[string]string {
	if l == LangZH {
		return map[string]string{
			"dev": "开发", "product": "产品", "business": "商业", "team": "团队",
			"career": "职业", "tools": "工具", "thinking": "思维", "other": "其他",
		}
	}
	return map[string]string{
		"dev": "Dev", "product": "Product", "business": "Business", "team": "Team",
		"career": "Career", "tools": "Tools", "thinking": "Thinking", "other": "Other",
	}
}

// UIStrings returns the localized strings consumed by the browser UI.
func (l Lang) UIStrings() map[string]string {
	if l == LangZH {
		return map[string]string{
			"allSkills":     "全部技能",
			"categories":    "分类",
			"deleteConfirm": "确定删除",
			"deleteText":    "此操作不可撤销。技能文件夹将被永久删除。",
			"cancel":        "取消",
			"delete":        "删除",
			"deleting":      "删除中...",
			"deleted":       "技能已删除",
			"noMatch":       "没有匹配的技能。",
			"items":         "项",
			"kinds":         "类",
			"ready":         "就绪",
			"scanning":      "扫描中...",
			"loading":       "加载中...",
			"openFailed":    "打开失败",
			"loadFailed":    "加载失败",
			"error":         "错误",
		}
	}
	return map[string]string{
		"allSkills":     "All Skills",
		"categories":    "Categories",
		"deleteConfirm": "Delete",
		"deleteText":    "This action cannot be undone. The skill folder will be permanently removed.",
		"cancel":        "Cancel",
		"delete":        "Delete",
		"deleting":      "Deleting...",
		"deleted":       "Skill deleted",
		"noMatch":       "No skills match your search.",
		"items":         "items",
		"kinds":         "kinds",
		"ready":         "Ready",
		"scanning":      "Scanning...",
		"loading":       "Loading...",
		"openFailed":    "Failed to open",
		"loadFailed":    "Failed to load",
		"error":         "Error",
	}
}

// Bundle is the language payload injected into the frontend page.
type Bundle struct {
	UI        map[string]string `json:"ui"`
	Kinds     map[string]string `json:"kinds"`
	KindOrder []string          `json:"kindOrder"`
}

// Bundle returns the full localized payload for the given language.
func (l Lang) Bundle() Bundle {
	return Bundle{
		UI:        l.UIStrings(),
		Kinds:     l.KindLabels(),
		KindOrder: KindOrder,
	}
}

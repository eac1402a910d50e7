package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetect(t *testing.T) {
	t.Run("explicit flag wins", func(t *testing.T) {
		t.Setenv("LC_ALL", "zh_CN.UTF-8")
		assert.Equal(t, LangEN, Detect("en"))
		assert.Equal(t, LangZH, Detect("zh"))
	})

	tests := []struct {
		name string
		env  map[string]string
		want Lang
	}{
		{"chinese LANG", map[string]string{"LANG": "zh_CN.UTF-8"}, LangZH},
		{"traditional chinese", map[string]string{"LANG": "zh_TW.UTF-8"}, LangZH},
		{"english LANG", map[string]string{"LANG": "en_US.UTF-8"}, LangEN},
		{"LC_ALL overrides LANG", map[string]string{"LC_ALL": "zh_CN.UTF-8", "LANG": "en_US.UTF-8"}, LangZH},
		{"unset defaults to english", map[string]string{}, LangEN},
		{"unparseable value", map[string]string{"LANG": "C.UTF-8"}, LangEN},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, key := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
				t.Setenv(key, tt.env[key])
			}
			assert.Equal(t, tt.want, Detect(""))
		})
	}
}

func TestStringTablesCoverBothLanguages(t *testing.T) {
	en := LangEN.UIStrings()
	zh := LangZH.UIStrings()
	assert.Equal(t, len(en), len(zh))
	for key := range en {
		assert.Contains(t, zh, key)
	}

	for _, kind := range KindOrder {
		assert.Contains(t, LangEN.KindLabels(), kind)
		assert.Contains(t, LangZH.KindLabels(), kind)
	}
}

func TestBundle(t *testing.T) {
	bundle := LangZH.Bundle()
	assert.Equal(t, "全部技能", bundle.UI["allSkills"])
	assert.Equal(t, "开发", bundle.Kinds["dev"])
	assert.Equal(t, KindOrder, bundle.KindOrder)
}

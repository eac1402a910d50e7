package skills

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindFor(t *testing.T) {
	tests := []struct {
		dirName string
		want    string
	}{
		{"test-driven-development", "dev"},
		{"designing-surveys", "product"},
		{"fundraising", "business"},
		{"managing-up", "team"},
		{"negotiating-offers", "career"},
		{"mermaid-visualizer", "tools"},
		{"brainstorming", "thinking"},
		{"not-in-the-table", "other"},
		{"", "other"},
	}

	for _, tt := range tests {
		t.Run(tt.dirName, func(t *testing.T) {
			assert.Equal(t, tt.want, KindFor(tt.dirName))
		})
	}
}

func TestClassifyCategory(t *testing.T) {
	agentsDir := t.TempDir()
	resolvedAgents, err := filepath.EvalSymlinks(agentsDir)
	require.NoError(t, err)

	inside := filepath.Join(resolvedAgents, "my-skill")
	require.NoError(t, os.MkdirAll(inside, 0o755))

	t.Run("symlink into agents root is reassigned", func(t *testing.T) {
		assert.Equal(t, CategoryAgent, classifyCategory(inside, true, "skills", agentsDir))
	})

	t.Run("non-symlink keeps origin even inside agents root", func(t *testing.T) {
		assert.Equal(t, "skills", classifyCategory(inside, false, "skills", agentsDir))
	})

	t.Run("symlink resolving elsewhere keeps origin", func(t *testing.T) {
		elsewhere := t.TempDir()
		assert.Equal(t, "commands", classifyCategory(elsewhere, true, "commands", agentsDir))
	})

	t.Run("missing agents root keeps origin", func(t *testing.T) {
		missing := filepath.Join(agentsDir, "does-not-exist")
		assert.Equal(t, "skills", classifyCategory(inside, true, "skills", missing))
	})

	t.Run("empty agents root keeps origin", func(t *testing.T) {
		assert.Equal(t, "skills", classifyCategory(inside, true, "skills", ""))
	})
}

func TestPathWithin(t *testing.T) {
	assert.True(t, PathWithin("/a/b/c", "/a/b"))
	assert.False(t, PathWithin("/a/bc", "/a/b"), "prefix containment must be separator-safe")
	assert.False(t, PathWithin("/a/b", "/a/b"), "containment is strict")
	assert.False(t, PathWithin("/x/y", "/a/b"))
}

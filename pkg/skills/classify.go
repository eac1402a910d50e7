package skills

import (
	"os"
	"path/filepath"
	"strings"
)

// KindFor looks up the coarse kind for a skill directory name. Names absent
// from the classification table are "other", never an error.
func KindFor(dirName string) string {
	if kind, ok := skillKinds[dirName]; ok {
		return kind
	}
	return KindOther
}

// descriptionZH returns the localized description override for a skill
// directory name, if one exists.
func descriptionZH(dirName string) (string, bool) {
	desc, ok := descriptionsZH[dirName]
	return desc, ok
}

// classifyCategory applies the origin-override-by-resolved-location rule:
// a symlinked entry whose real path lands strictly inside the externally
// managed agents root is reassigned to CategoryAgent. Any resolution
// failure falls back to the originating root's category.
func classifyCategory(realPath string, isSymlink bool, origin, agentsDir string) string {
	if !isSymlink || agentsDir == "" {
		return origin
	}
	if info, err := os.Stat(agentsDir); err != nil || !info.IsDir() {
		return origin
	}
	resolvedRoot, err := filepath.EvalSymlinks(agentsDir)
	if err != nil {
		return origin
	}
	if PathWithin(realPath, resolvedRoot) {
		return CategoryAgent
	}
	return origin
}

// PathWithin reports whether path lies strictly inside root. The comparison
// appends a separator to both sides so that /a/bc is not treated as inside
// /a/b.
func PathWithin(path, root string) bool {
	sep := string(os.PathSeparator)
	return strings.HasPrefix(path+sep, root+sep) && path != root
}

// Package skills implements discovery and normalization of agent skill
// directories. Skills are packaged as directories containing a SKILL.md
// manifest whose frontmatter block describes the skill; the scanner walks a
// fixed set of roots, deduplicates entries by resolved real path, and
// produces the flat records consumed by the web UI.
package skills

// ManifestName is the fixed-name metadata file whose presence marks a
// directory as a skill.
const ManifestName = "SKILL.md"

// CategoryAgent is the reassigned category for symlinked skills whose
// resolved path lands inside the externally managed agents root.
const CategoryAgent = "agent"

// KindOther is the default kind for directory names absent from the
// classification table.
const KindOther = "other"

// SkillRecord is one discovered skill. Field names match the wire format
// consumed by the frontend; a record's identity for UI selection is Path,
// valid only for the lifetime of one scan response.
type SkillRecord struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Kind        string `json:"kind"`
	Path        string `json:"path"`
	ShortPath   string `json:"shortPath"`
	RealPath    string `json:"realPath"`
	Category    string `json:"category"`
	Modified    string `json:"modified"`
	Size        string `json:"size"`
	IsSymlink   bool   `json:"isSymlink"`
}

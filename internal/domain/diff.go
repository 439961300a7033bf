package domain

// Diff entry kinds.
const (
	DiffAdded    = "added"
	DiffModified = "modified"
	DiffDeleted  = "deleted"
	DiffConflict = "conflict"
)

// DiffEntry describes how one key differs between a source and a target
// branch. SourceValues and TargetValues carry the complete per-language
// values of the side that has the key. For modified entries
// ChangedLanguages lists exactly the languages merge would carry over;
// languages the target edited on its own are not among them.
type DiffEntry struct {
	Key                  KeyRef            `json:"key"`
	Type                 string            `json:"type"`
	SourceValues         map[string]string `json:"source_values,omitempty"`
	TargetValues         map[string]string `json:"target_values,omitempty"`
	ChangedLanguages     []string          `json:"changed_languages,omitempty"`
	ConflictingLanguages []string          `json:"conflicting_languages,omitempty"`
}

// BranchDiff is the comparison of a source branch against a target branch.
// Identical keys are omitted; every slice is ordered by (namespace, name).
// Deleted entries are informational: merge never applies them on its own.
type BranchDiff struct {
	SourceBranchID int64       `json:"source_branch_id"`
	TargetBranchID int64       `json:"target_branch_id"`
	Added          []DiffEntry `json:"added"`
	Modified       []DiffEntry `json:"modified"`
	Deleted        []DiffEntry `json:"deleted"`
	Conflicts      []DiffEntry `json:"conflicts"`
}

// Clean reports whether merging would carry nothing: no additions,
// modifications or conflicts. Deleted entries do not count, they only mark
// keys the target has on top of the source.
func (d *BranchDiff) Clean() bool {
	return len(d.Added) == 0 && len(d.Modified) == 0 && len(d.Conflicts) == 0
}

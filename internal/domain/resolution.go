package domain

// Resolution choices. Conflicting keys accept source or target; deleted
// keys accept target (keep) or delete (remove from the target branch).
const (
	ResolveSource = "source"
	ResolveTarget = "target"
	ResolveDelete = "delete"
)

// Resolution is the caller's decision for one key during merge.
type Resolution struct {
	Key    KeyRef `json:"key"`
	Chosen string `json:"chosen"`
}

func (r Resolution) Valid() bool {
	if r.Key.Name == "" {
		return false
	}
	switch r.Chosen {
	case ResolveSource, ResolveTarget, ResolveDelete:
		return true
	}
	return false
}

// MergeResult is the outcome of a merge attempt. Unresolved conflicts are
// not an error: Success is false and Conflicts carries the complete list
// the caller has to resolve before retrying.
type MergeResult struct {
	Success   bool        `json:"success"`
	Conflicts []DiffEntry `json:"conflicts,omitempty"`
}

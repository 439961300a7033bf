package domain

import "sort"

// KeyContent is everything a branch holds for one key: its description and
// the per-language values. Absence of a language is meaningful and distinct
// from an empty string value.
type KeyContent struct {
	Description string
	Values      map[string]string
}

// BranchSnapshot is the complete translated content of one branch, keyed by
// translation key identity.
type BranchSnapshot struct {
	BranchID int64
	Keys     map[KeyRef]KeyContent
}

// Refs returns the key identities in (namespace, name) order.
func (s BranchSnapshot) Refs() []KeyRef {
	refs := make([]KeyRef, 0, len(s.Keys))
	for r := range s.Keys {
		refs = append(refs, r)
	}
	sort.Slice(refs, func(i, j int) bool { return refs[i].Less(refs[j]) })
	return refs
}

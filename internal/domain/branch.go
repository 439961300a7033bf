package domain

import "time"

type Branch struct {
	ID             int64     `json:"id"`
	SpaceID        int64     `json:"space_id"`
	Name           string    `json:"name"`
	Slug           string    `json:"slug"`
	IsDefault      bool      `json:"is_default"`
	SourceBranchID *int64    `json:"source_branch_id,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// CreatedFrom reports whether the branch records other as the branch it was
// copied from.
func (b *Branch) CreatedFrom(other int64) bool {
	return b.SourceBranchID != nil && *b.SourceBranchID == other
}

package domain

import "time"

// Approval states of a translation value. Copying a branch and every value
// written by merge reset the state to pending.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
)

type Translation struct {
	ID        int64     `json:"id"`
	KeyID     int64     `json:"key_id"`
	Language  string    `json:"language"`
	Value     string    `json:"value"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BranchTranslation is a branch-wide listing row: a stored value together
// with the identity of its key.
type BranchTranslation struct {
	KeyID     int64
	Namespace string
	Name      string
	Language  string
	Value     string
	Status    string
}

func (t *BranchTranslation) Ref() KeyRef {
	return KeyRef{Namespace: t.Namespace, Name: t.Name}
}

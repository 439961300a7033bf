package domain

import (
	"strings"
	"time"
)

type TranslationKey struct {
	ID          int64     `json:"id"`
	BranchID    int64     `json:"branch_id"`
	Namespace   string    `json:"namespace,omitempty"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (k *TranslationKey) Ref() KeyRef {
	return KeyRef{Namespace: k.Namespace, Name: k.Name}
}

// KeyRef identifies a translation key within a branch. Identity is the
// (namespace, name) pair; row ids differ between branches even for the same
// logical key.
type KeyRef struct {
	Namespace string `json:"namespace,omitempty"`
	Name      string `json:"name"`
}

// Label renders the user-facing form: "name" or "namespace:name".
func (r KeyRef) Label() string {
	if r.Namespace == "" {
		return r.Name
	}
	return r.Namespace + ":" + r.Name
}

// Less orders refs by namespace, then name.
func (r KeyRef) Less(o KeyRef) bool {
	if r.Namespace != o.Namespace {
		return r.Namespace < o.Namespace
	}
	return r.Name < o.Name
}

// ParseKeyLabel splits "namespace:name" (or a bare name) into a KeyRef.
func ParseKeyLabel(label string) KeyRef {
	if i := strings.Index(label, ":"); i >= 0 {
		return KeyRef{Namespace: label[:i], Name: label[i+1:]}
	}
	return KeyRef{Name: label}
}

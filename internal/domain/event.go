package domain

import (
	"time"

	"github.com/google/uuid"
)

// Event types emitted to the activity sink.
const (
	EventBranchCreated = "branch.created"
	EventBranchMerged  = "branch.merged"
)

// Event is an activity notification. Delivery is best effort: events are
// published after the owning transaction commits, and a failing sink never
// undoes the work.
type Event struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	OccurredAt time.Time `json:"occurred_at"`
	Actor      string    `json:"actor,omitempty"`
	Data       any       `json:"data"`
}

func NewEvent(typ, actor string, data any) Event {
	return Event{
		ID:         uuid.NewString(),
		Type:       typ,
		OccurredAt: time.Now().UTC(),
		Actor:      actor,
		Data:       data,
	}
}

type BranchCreatedData struct {
	SpaceID        int64  `json:"space_id"`
	BranchID       int64  `json:"branch_id"`
	Slug           string `json:"slug"`
	SourceBranchID int64  `json:"source_branch_id"`
	CopiedKeys     int64  `json:"copied_keys"`
}

type BranchMergedData struct {
	SpaceID           int64 `json:"space_id"`
	SourceBranchID    int64 `json:"source_branch_id"`
	TargetBranchID    int64 `json:"target_branch_id"`
	KeysAdded         int   `json:"keys_added"`
	KeysUpdated       int   `json:"keys_updated"`
	KeysDeleted       int   `json:"keys_deleted"`
	ConflictsResolved int   `json:"conflicts_resolved"`
}

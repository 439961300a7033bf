// Package branching implements the branch versioning engine: copy-on-write
// branch creation, branch diffing and transactional merge.
package branching

import (
	"context"
	"log/slog"

	"github.com/VinniZP/lingx-sub016/internal/domain"
	"github.com/VinniZP/lingx-sub016/internal/ports"
)

type Service struct {
	Store  ports.Store
	Events ports.EventPublisher
	Log    *slog.Logger
}

func New(store ports.Store, events ports.EventPublisher, log *slog.Logger) *Service {
	return &Service{Store: store, Events: events, Log: log}
}

// Snapshot reads the complete content of a branch.
func (s *Service) Snapshot(ctx context.Context, branchID int64) (domain.BranchSnapshot, error) {
	return loadSnapshot(ctx, s.Store, branchID)
}

func (s *Service) publish(ctx context.Context, ev domain.Event) {
	if s.Events == nil {
		return
	}
	if err := s.Events.Publish(ctx, ev); err != nil {
		s.Log.Warn("publish event", "type", ev.Type, "event_id", ev.ID, "error", err)
	}
}

func loadSnapshot(ctx context.Context, st ports.Store, branchID int64) (domain.BranchSnapshot, error) {
	keys, err := st.Keys().ListByBranch(ctx, branchID)
	if err != nil {
		return domain.BranchSnapshot{}, err
	}
	rows, err := st.Translations().ListByBranch(ctx, branchID)
	if err != nil {
		return domain.BranchSnapshot{}, err
	}
	snap := domain.BranchSnapshot{
		BranchID: branchID,
		Keys:     make(map[domain.KeyRef]domain.KeyContent, len(keys)),
	}
	for _, k := range keys {
		snap.Keys[k.Ref()] = domain.KeyContent{
			Description: k.Description,
			Values:      map[string]string{},
		}
	}
	for _, row := range rows {
		if kc, ok := snap.Keys[row.Ref()]; ok {
			kc.Values[row.Language] = row.Value
		}
	}
	return snap, nil
}

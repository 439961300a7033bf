package ports

import (
	"context"

	"github.com/VinniZP/lingx-sub016/internal/domain"
)

// EventPublisher delivers activity events to whatever sink is configured.
// Callers treat it as fire and forget: a returned error is logged, never
// propagated into the operation that produced the event.
type EventPublisher interface {
	Publish(ctx context.Context, ev domain.Event) error
	Close()
}

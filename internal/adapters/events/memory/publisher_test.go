package memory

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/VinniZP/lingx-sub016/internal/domain"
)

func newTestPublisher(buffer int) *Publisher {
	return New(buffer, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestPublishDelivers(t *testing.T) {
	t.Parallel()
	p := newTestPublisher(4)
	ev := domain.NewEvent(domain.EventBranchCreated, "tester", domain.BranchCreatedData{BranchID: 7})
	require.NoError(t, p.Publish(context.Background(), ev))

	got := <-p.Events()
	require.Equal(t, ev.ID, got.ID)
	require.Equal(t, domain.EventBranchCreated, got.Type)
	require.Equal(t, "tester", got.Actor)
}

func TestPublishDropsWhenFull(t *testing.T) {
	t.Parallel()
	p := newTestPublisher(1)
	ctx := context.Background()
	require.NoError(t, p.Publish(ctx, domain.NewEvent(domain.EventBranchCreated, "a", nil)))
	// The queue is full; this must neither block nor fail.
	require.NoError(t, p.Publish(ctx, domain.NewEvent(domain.EventBranchMerged, "b", nil)))

	got := <-p.Events()
	require.Equal(t, domain.EventBranchCreated, got.Type, "the oldest event survives, the newest is dropped")
	select {
	case ev := <-p.Events():
		t.Fatalf("unexpected second event %s", ev.Type)
	default:
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	t.Parallel()
	p := newTestPublisher(1)
	p.Close()
	p.Close()

	_, open := <-p.Events()
	require.False(t, open)
}

// Package memory provides the default in-process activity sink: a bounded
// queue that drops events instead of ever blocking a caller.
package memory

import (
	"context"
	"log/slog"
	"sync"

	"github.com/VinniZP/lingx-sub016/internal/domain"
	"github.com/VinniZP/lingx-sub016/internal/metrics"
)

type Publisher struct {
	ch   chan domain.Event
	log  *slog.Logger
	once sync.Once
}

func New(buffer int, log *slog.Logger) *Publisher {
	if buffer <= 0 {
		buffer = 256
	}
	return &Publisher{ch: make(chan domain.Event, buffer), log: log}
}

func (p *Publisher) Publish(_ context.Context, ev domain.Event) error {
	select {
	case p.ch <- ev:
		return nil
	default:
		metrics.EventsDropped.Inc()
		p.log.Warn("event queue full, dropping", "type", ev.Type, "event_id", ev.ID)
		return nil
	}
}

// Events exposes the queue to in-process consumers.
func (p *Publisher) Events() <-chan domain.Event { return p.ch }

func (p *Publisher) Close() {
	p.once.Do(func() { close(p.ch) })
}

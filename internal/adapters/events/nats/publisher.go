// Package nats publishes activity events to a NATS subject per event type,
// e.g. lingx.events.branch.merged.
package nats

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	natsgo "github.com/nats-io/nats.go"

	"github.com/VinniZP/lingx-sub016/internal/domain"
)

type Publisher struct {
	conn    *natsgo.Conn
	subject string
	log     *slog.Logger
}

func Connect(url, subjectPrefix string, log *slog.Logger) (*Publisher, error) {
	conn, err := natsgo.Connect(url,
		natsgo.Name("lingx"),
		natsgo.MaxReconnects(-1),
	)
	if err != nil {
		return nil, fmt.Errorf("connect nats: %w", err)
	}
	if subjectPrefix == "" {
		subjectPrefix = "lingx.events"
	}
	return &Publisher{conn: conn, subject: subjectPrefix, log: log}, nil
}

func (p *Publisher) Publish(_ context.Context, ev domain.Event) error {
	b, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	subj := p.subject + "." + ev.Type
	if err := p.conn.Publish(subj, b); err != nil {
		return fmt.Errorf("publish %s: %w", subj, err)
	}
	return nil
}

func (p *Publisher) Close() {
	if err := p.conn.Drain(); err != nil {
		p.log.Warn("drain nats connection", "error", err)
	}
}

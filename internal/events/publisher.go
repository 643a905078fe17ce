// Package events publishes resolve-completed notifications to NATS so
// downstream site tooling (cache invalidation, deploy triggers) can react to
// navigation rebuilds.
package events

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"

	"git.home.luguber.info/inful/navbuilder/internal/logfields"
	"git.home.luguber.info/inful/navbuilder/internal/manifest"
)

// ResolveEvent is the wire payload published after every resolve run.
type ResolveEvent struct {
	BuildID      string    `json:"build_id"`
	Timestamp    time.Time `json:"timestamp"`
	Status       string    `json:"status"`
	Locales      []string  `json:"locales"`
	ManifestHash string    `json:"manifest_hash"`
	DurationMS   int64     `json:"duration_ms"`
}

// Publisher publishes resolve events to a NATS subject.
type Publisher struct {
	conn    *nats.Conn
	subject string
}

// NewPublisher connects to NATS. The connection is retried by the client
// library; a server that is down at startup fails fast here instead.
func NewPublisher(url, subject string) (*Publisher, error) {
	conn, err := nats.Connect(url, nats.Name("navbuilder"))
	if err != nil {
		return nil, fmt.Errorf("connect to NATS at %s: %w", url, err)
	}
	slog.Info("Connected to NATS", logfields.URL(url), slog.String("subject", subject))
	return &Publisher{conn: conn, subject: subject}, nil
}

// PublishResolve emits one event derived from the resolve record.
func (p *Publisher) PublishResolve(rec *manifest.ResolveRecord) error {
	event := ResolveEvent{
		BuildID:      rec.ID,
		Timestamp:    rec.Timestamp,
		Status:       rec.Status,
		Locales:      rec.Locales,
		ManifestHash: rec.ManifestHash,
		DurationMS:   rec.DurationMS,
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal resolve event: %w", err)
	}
	if err := p.conn.Publish(p.subject, payload); err != nil {
		return fmt.Errorf("publish resolve event: %w", err)
	}
	return p.conn.Flush()
}

// Close drains and closes the connection.
func (p *Publisher) Close() {
	if p.conn != nil {
		p.conn.Close()
	}
}

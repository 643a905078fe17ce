package manifest

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Resolve run status values stored in ResolveRecord.Status.
const (
	StatusSuccess = "success"
	StatusFailed  = "failed"
)

// ResolveRecord is a complete record of one navigation resolve run: its
// inputs (as hashes), outcome, and per-locale output sizes. Records are
// written to the history store and emitted alongside the sidebar artifacts.
type ResolveRecord struct {
	ID            string         `json:"id"`
	Timestamp     time.Time      `json:"timestamp"`
	ConfigHash    string         `json:"config_hash"`
	ManifestHash  string         `json:"manifest_hash"`
	Locales       []string       `json:"locales"`
	DefaultLocale string         `json:"default_locale"`
	Status        string         `json:"status"`
	DurationMS    int64          `json:"duration_ms"`
	NodeCounts    map[string]int `json:"node_counts,omitempty"` // locale -> resolved node count
	Error         string         `json:"error,omitempty"`
}

// NewResolveRecord creates a record with a fresh ID and timestamp.
func NewResolveRecord() *ResolveRecord {
	return &ResolveRecord{
		ID:        uuid.NewString(),
		Timestamp: time.Now().UTC(),
	}
}

// Finish marks the record complete, deriving status from err.
func (r *ResolveRecord) Finish(started time.Time, err error) {
	r.DurationMS = time.Since(started).Milliseconds()
	if err != nil {
		r.Status = StatusFailed
		r.Error = err.Error()
		return
	}
	r.Status = StatusSuccess
}

// ToJSON serializes the record to indented JSON.
func (r *ResolveRecord) ToJSON() ([]byte, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal resolve record: %w", err)
	}
	return data, nil
}

// RecordFromJSON deserializes a record from JSON.
func RecordFromJSON(data []byte) (*ResolveRecord, error) {
	var r ResolveRecord
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("unmarshal resolve record: %w", err)
	}
	return &r, nil
}

// InputHash computes a combined hash of the record's input hashes, usable to
// detect that a run with identical configuration and content already exists.
func (r *ResolveRecord) InputHash() string {
	sum := sha256.Sum256([]byte(r.ConfigHash + ":" + r.ManifestHash))
	return fmt.Sprintf("%x", sum)
}

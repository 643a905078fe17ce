package events

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveEventWireShape(t *testing.T) {
	event := ResolveEvent{
		BuildID:      "abc-123",
		Timestamp:    time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC),
		Status:       "success",
		Locales:      []string{"en", "fr"},
		ManifestHash: "deadbeef",
		DurationMS:   42,
	}

	payload, err := json.Marshal(event)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(payload, &decoded))
	assert.Equal(t, "abc-123", decoded["build_id"])
	assert.Equal(t, "success", decoded["status"])
	assert.Equal(t, "deadbeef", decoded["manifest_hash"])
	assert.EqualValues(t, 42, decoded["duration_ms"])
}

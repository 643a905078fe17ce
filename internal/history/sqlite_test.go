package history

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/navbuilder/internal/manifest"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func record(ts time.Time, status string) *manifest.ResolveRecord {
	rec := manifest.NewResolveRecord()
	rec.Timestamp = ts
	rec.ConfigHash = "cfg"
	rec.ManifestHash = "man"
	rec.Status = status
	rec.DurationMS = 5
	return rec
}

func TestAppendAndRecent(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	base := time.Now().UTC().Truncate(time.Millisecond)
	oldest := record(base.Add(-2*time.Hour), manifest.StatusSuccess)
	middle := record(base.Add(-time.Hour), manifest.StatusFailed)
	newest := record(base, manifest.StatusSuccess)
	for _, rec := range []*manifest.ResolveRecord{oldest, middle, newest} {
		require.NoError(t, s.Append(ctx, rec))
	}

	got, err := s.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, newest.ID, got[0].ID)
	assert.Equal(t, middle.ID, got[1].ID)
	assert.Equal(t, manifest.StatusFailed, got[1].Status)
}

func TestRecentDefaultLimit(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	require.NoError(t, s.Append(ctx, record(time.Now().UTC(), manifest.StatusSuccess)))

	got, err := s.Recent(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestPrune(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	base := time.Now().UTC()
	for i := 0; i < 5; i++ {
		require.NoError(t, s.Append(ctx, record(base.Add(time.Duration(i)*time.Minute), manifest.StatusSuccess)))
	}

	require.NoError(t, s.Prune(ctx, 2))
	got, err := s.Recent(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, got, 2)

	// keep <= 0 is a no-op.
	require.NoError(t, s.Prune(ctx, 0))
	got, err = s.Recent(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestRecordRoundTripPreservesFields(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	rec := record(time.Now().UTC().Truncate(time.Millisecond), manifest.StatusSuccess)
	rec.Locales = []string{"en", "fr"}
	rec.NodeCounts = map[string]int{"en": 12, "fr": 12}
	require.NoError(t, s.Append(ctx, rec))

	got, err := s.Recent(ctx, 1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, rec.Locales, got[0].Locales)
	assert.Equal(t, rec.NodeCounts, got[0].NodeCounts)
}

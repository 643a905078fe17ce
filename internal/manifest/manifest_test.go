package manifest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSortPagesWeightThenSlug(t *testing.T) {
	m := New()
	m.Add("guides", PageRef{Slug: "guides/zeta", Title: "Zeta"})
	m.Add("guides", PageRef{Slug: "guides/alpha", Title: "Alpha"})
	m.Add("guides", PageRef{Slug: "guides/intro", Title: "Intro", Weight: -10})
	m.Add("guides", PageRef{Slug: "guides/advanced", Title: "Advanced", Weight: 5})
	m.SortPages()

	refs, ok := m.Pages("guides")
	require.True(t, ok)
	got := make([]string, 0, len(refs))
	for _, r := range refs {
		got = append(got, r.Slug)
	}
	// Weighted entries first by weight, unweighted (0) in lexicographic order.
	assert.Equal(t, []string{"guides/intro", "guides/alpha", "guides/zeta", "guides/advanced"}, got)
}

func TestHasSlugAggregatesAcrossDirectories(t *testing.T) {
	m := New()
	m.Add("guides", PageRef{Slug: "guides/intro", Title: "Intro"})
	m.Add("patterns", PageRef{Slug: "patterns/singleton", Title: "Singleton"})

	assert.True(t, m.HasSlug("patterns/singleton"))
	assert.True(t, m.HasSlug("guides/intro"))
	assert.False(t, m.HasSlug("guides/missing"))
}

func TestHashDeterministic(t *testing.T) {
	build := func() *ContentManifest {
		m := New()
		m.Add("guides", PageRef{Slug: "guides/intro", Title: "Intro"})
		m.Add("patterns", PageRef{Slug: "patterns/factory", Title: "Factory", Weight: 2})
		return m
	}

	h1, err := build().Hash()
	require.NoError(t, err)
	h2, err := build().Hash()
	require.NoError(t, err)
	assert.Equal(t, h1, h2)

	changed := build()
	changed.Add("guides", PageRef{Slug: "guides/extra", Title: "Extra"})
	h3, err := changed.Hash()
	require.NoError(t, err)
	assert.NotEqual(t, h1, h3)
}

func TestManifestJSONRoundTrip(t *testing.T) {
	m := New()
	m.Add("guides", PageRef{Slug: "guides/intro", Title: "Intro", Translations: map[string]string{"fr": "Introduction"}})

	data, err := m.ToJSON()
	require.NoError(t, err)

	back, err := FromJSON(data)
	require.NoError(t, err)
	refs, ok := back.Pages("guides")
	require.True(t, ok)
	require.Len(t, refs, 1)
	assert.Equal(t, "Introduction", refs[0].Translations["fr"])
}

func TestResolveRecordFinish(t *testing.T) {
	r := NewResolveRecord()
	require.NotEmpty(t, r.ID)

	started := time.Now().Add(-25 * time.Millisecond)
	r.Finish(started, nil)
	assert.Equal(t, StatusSuccess, r.Status)
	assert.GreaterOrEqual(t, r.DurationMS, int64(25))

	r2 := NewResolveRecord()
	r2.Finish(time.Now(), assert.AnError)
	assert.Equal(t, StatusFailed, r2.Status)
	assert.NotEmpty(t, r2.Error)
	assert.NotEqual(t, r.ID, r2.ID)
}

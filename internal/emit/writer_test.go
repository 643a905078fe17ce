package emit

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/navbuilder/internal/manifest"
	"git.home.luguber.info/inful/navbuilder/internal/nav"
)

func TestWriteNavigationPerLocale(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	w := NewWriter(dir)

	trees := map[string][]nav.ResolvedEntry{
		"en": {{Label: "Guides", Items: []nav.ResolvedEntry{{Label: "Intro", Href: "guides/intro"}}}},
		"fr": {{Label: "Manuels", Items: []nav.ResolvedEntry{{Label: "Intro", Href: "guides/intro"}}}},
	}
	require.NoError(t, w.WriteNavigation(trees))

	for locale, wantLabel := range map[string]string{"en": "Guides", "fr": "Manuels"} {
		data, err := os.ReadFile(w.Path("sidebar." + locale + ".json"))
		require.NoError(t, err)

		var tree []nav.ResolvedEntry
		require.NoError(t, json.Unmarshal(data, &tree))
		require.Len(t, tree, 1)
		assert.Equal(t, wantLabel, tree[0].Label)
		assert.Equal(t, "guides/intro", tree[0].Items[0].Href)
	}

	// No stray temp files after atomic writes.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestWriteManifestAndRecord(t *testing.T) {
	w := NewWriter(filepath.Join(t.TempDir(), "out"))

	m := manifest.New()
	m.Add("guides", manifest.PageRef{Slug: "guides/intro", Title: "Intro"})
	require.NoError(t, w.WriteManifest(m))

	rec := manifest.NewResolveRecord()
	rec.Status = manifest.StatusSuccess
	require.NoError(t, w.WriteRecord(rec))

	data, err := os.ReadFile(w.Path("manifest.json"))
	require.NoError(t, err)
	back, err := manifest.FromJSON(data)
	require.NoError(t, err)
	assert.True(t, back.HasSlug("guides/intro"))

	data, err = os.ReadFile(w.Path("resolve.json"))
	require.NoError(t, err)
	gotRec, err := manifest.RecordFromJSON(data)
	require.NoError(t, err)
	assert.Equal(t, rec.ID, gotRec.ID)
}

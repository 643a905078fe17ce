package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/navbuilder/internal/config"
	"git.home.luguber.info/inful/navbuilder/internal/emit"
	"git.home.luguber.info/inful/navbuilder/internal/history"
	"git.home.luguber.info/inful/navbuilder/internal/manifest"
	"git.home.luguber.info/inful/navbuilder/internal/metrics"
	"git.home.luguber.info/inful/navbuilder/internal/nav"
)

func testServer(t *testing.T) (*Server, *config.Config) {
	t.Helper()
	outDir := t.TempDir()
	cfg := &config.Config{
		Site:   config.SiteConfig{Locales: []string{"en", "fr"}, DefaultLocale: "en"},
		Output: config.OutputConfig{Dir: outDir},
		Serve:  config.ServeConfig{Addr: "127.0.0.1:0"},
	}

	w := emit.NewWriter(outDir)
	require.NoError(t, w.WriteNavigation(map[string][]nav.ResolvedEntry{
		"en": {{Label: "Guides", Href: "guides/intro"}},
		"fr": {{Label: "Manuels", Href: "guides/intro"}},
	}))
	m := manifest.New()
	m.Add("guides", manifest.PageRef{Slug: "guides/intro", Title: "Intro"})
	require.NoError(t, w.WriteManifest(m))

	store, err := history.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	rec := manifest.NewResolveRecord()
	rec.Status = manifest.StatusSuccess
	require.NoError(t, store.Append(context.Background(), rec))

	registry := prom.NewRegistry()
	metrics.NewPrometheusRecorder(registry).IncResolveOutcome(metrics.OutcomeSuccess)
	return New(cfg, registry, store), cfg
}

func get(t *testing.T, s *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rr := httptest.NewRecorder()
	s.Handler().ServeHTTP(rr, req)
	return rr
}

func TestHealthz(t *testing.T) {
	s, _ := testServer(t)
	rr := get(t, s, "/healthz")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"ok"`)
}

func TestNavEndpointPerLocale(t *testing.T) {
	s, _ := testServer(t)

	rr := get(t, s, "/api/nav/fr")
	require.Equal(t, http.StatusOK, rr.Code)
	var tree []nav.ResolvedEntry
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &tree))
	require.Len(t, tree, 1)
	assert.Equal(t, "Manuels", tree[0].Label)

	rr = get(t, s, "/api/nav/de")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestManifestEndpoint(t *testing.T) {
	s, _ := testServer(t)
	rr := get(t, s, "/api/manifest")
	require.Equal(t, http.StatusOK, rr.Code)
	m, err := manifest.FromJSON(rr.Body.Bytes())
	require.NoError(t, err)
	assert.True(t, m.HasSlug("guides/intro"))
}

func TestHistoryEndpoint(t *testing.T) {
	s, _ := testServer(t)
	rr := get(t, s, "/api/history?limit=5")
	require.Equal(t, http.StatusOK, rr.Code)
	var records []manifest.ResolveRecord
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &records))
	require.Len(t, records, 1)
	assert.Equal(t, manifest.StatusSuccess, records[0].Status)
}

func TestMetricsEndpoint(t *testing.T) {
	s, _ := testServer(t)
	rr := get(t, s, "/metrics")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "navbuilder_resolve_outcomes_total")
}

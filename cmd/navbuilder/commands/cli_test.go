package commands

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/navbuilder/internal/config"
)

func parseCLI(t *testing.T, args ...string) (*CLI, *kong.Context) {
	t.Helper()
	cli := &CLI{}
	parser, err := kong.New(cli, kong.Vars{"version": "test"})
	require.NoError(t, err)
	ctx, err := parser.Parse(args)
	require.NoError(t, err)
	return cli, ctx
}

func TestCLIDefaults(t *testing.T) {
	cli, ctx := parseCLI(t, "resolve")
	assert.Equal(t, "navbuilder.yaml", cli.Config)
	assert.False(t, cli.Verbose)
	assert.Equal(t, "resolve", ctx.Command())
}

func TestCLIParsesSubcommands(t *testing.T) {
	cases := []struct {
		args []string
		want string
	}{
		{[]string{"resolve", "-o", "out"}, "resolve"},
		{[]string{"init", "--force"}, "init"},
		{[]string{"discover", "--json"}, "discover"},
		{[]string{"history", "-n", "5"}, "history"},
		{[]string{"serve", "-a", ":9999", "--skip-resolve"}, "serve"},
		{[]string{"watch"}, "watch"},
	}
	for _, c := range cases {
		_, ctx := parseCLI(t, c.args...)
		assert.Equal(t, c.want, ctx.Command(), "args %v", c.args)
	}
}

func TestRunInit(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "navbuilder.yaml")

	require.NoError(t, RunInit(cfgPath, false))

	// The scaffold must itself be a loadable configuration.
	cfg, err := config.Load(cfgPath)
	require.NoError(t, err)
	assert.Equal(t, []string{"en", "fr"}, cfg.Site.Locales)
	assert.NotEmpty(t, cfg.Sidebar)

	// Refuses to overwrite without force.
	require.Error(t, RunInit(cfgPath, false))
	require.NoError(t, RunInit(cfgPath, true))
}

func TestRunResolveWritesArtifacts(t *testing.T) {
	dir := t.TempDir()
	docsDir := filepath.Join(dir, "docs", "guides")
	require.NoError(t, os.MkdirAll(docsDir, 0o755))
	page := "---\ntitle: Introduction\n---\n\n# Introduction\n"
	require.NoError(t, os.WriteFile(filepath.Join(docsDir, "intro.md"), []byte(page), 0o644))

	cfgYAML := `
site:
  locales: [en]
  default_locale: en
content:
  dir: ` + filepath.Join(dir, "docs") + `
output:
  dir: ` + filepath.Join(dir, "out") + `
sidebar:
  - label: Guides
    autogenerate: guides
`
	cfgPath := filepath.Join(dir, "navbuilder.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfgYAML), 0o644))

	cfg, err := config.Load(cfgPath)
	require.NoError(t, err)
	require.NoError(t, RunResolve(context.Background(), cfg))

	assert.FileExists(t, filepath.Join(dir, "out", "sidebar.en.json"))
	assert.FileExists(t, filepath.Join(dir, "out", "manifest.json"))
	assert.FileExists(t, filepath.Join(dir, "out", "resolve.json"))
}

func TestRunHistoryWithoutConfig(t *testing.T) {
	dir := t.TempDir()
	cfgYAML := `
site:
  locales: [en]
  default_locale: en
sidebar:
  - label: Home
    slug: index
`
	cfgPath := filepath.Join(dir, "navbuilder.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfgYAML), 0o644))

	cli := &CLI{Config: cfgPath}
	cmd := &HistoryCmd{Limit: 5}
	err := cmd.Run(&Global{}, cli)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "history is not configured")
}

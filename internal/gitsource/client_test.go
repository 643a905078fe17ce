package gitsource

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/navbuilder/internal/config"
)

// initSourceRepo creates a local git repository with one committed file,
// usable as a file:// clone source.
func initSourceRepo(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	require.NoError(t, os.MkdirAll(filepath.Join(dir, "docs"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "docs", "intro.md"), []byte("---\ntitle: Intro\n---\ntext\n"), 0o644))

	worktree, err := repo.Worktree()
	require.NoError(t, err)
	_, err = worktree.Add("docs/intro.md")
	require.NoError(t, err)
	_, err = worktree.Commit("add intro", &git.CommitOptions{
		Author: &object.Signature{Name: "test", Email: "test@example.com", When: time.Now()},
	})
	require.NoError(t, err)
	return dir
}

func TestSyncClonesAndPulls(t *testing.T) {
	source := initSourceRepo(t)
	workDir := filepath.Join(t.TempDir(), "checkout")

	client := NewClient(&config.RepoConfig{URL: source, WorkDir: workDir})

	path, err := client.Sync(context.Background())
	require.NoError(t, err)
	assert.Equal(t, workDir, path)
	assert.FileExists(t, filepath.Join(path, "docs", "intro.md"))

	head1, err := client.Head()
	require.NoError(t, err)
	require.NotEmpty(t, head1)

	// Second sync finds the checkout and pulls; nothing changed upstream.
	path, err = client.Sync(context.Background())
	require.NoError(t, err)
	assert.Equal(t, workDir, path)

	head2, err := client.Head()
	require.NoError(t, err)
	assert.Equal(t, head1, head2)
}

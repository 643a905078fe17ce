// Package gitsource syncs a git-hosted content repository into the local
// workspace before discovery runs against it.
package gitsource

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"git.home.luguber.info/inful/navbuilder/internal/config"
	"git.home.luguber.info/inful/navbuilder/internal/logfields"
	"git.home.luguber.info/inful/navbuilder/internal/retry"
)

// Client clones or updates the configured content repository.
type Client struct {
	cfg    *config.RepoConfig
	policy retry.Policy
}

// NewClient creates a client for the given repo configuration.
func NewClient(cfg *config.RepoConfig) *Client {
	policy := retry.DefaultPolicy()
	if r := cfg.Retry; r != nil {
		policy = retry.NewPolicy(retry.BackoffMode(r.Mode), r.Initial.Std(), r.Max.Std(), r.MaxRetries)
	}
	return &Client{cfg: cfg, policy: policy}
}

// Sync ensures the checkout exists and is current, returning the path the
// content directory should be resolved against. An existing checkout is
// pulled; otherwise the repository is cloned fresh. Fetch failures are
// retried per the configured backoff policy.
func (c *Client) Sync(ctx context.Context) (string, error) {
	workDir := c.cfg.WorkDir
	if _, err := os.Stat(filepath.Join(workDir, ".git")); err == nil {
		if err := retry.Do(ctx, c.policy, func() error { return c.pull(ctx, workDir) }); err != nil {
			return "", err
		}
		return workDir, nil
	}
	// Remove a half-finished checkout so a retried clone starts clean.
	err := retry.Do(ctx, c.policy, func() error {
		if cloneErr := c.clone(ctx, workDir); cloneErr != nil {
			_ = os.RemoveAll(workDir)
			return cloneErr
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return workDir, nil
}

func (c *Client) clone(ctx context.Context, workDir string) error {
	slog.Info("Cloning content repository",
		logfields.URL(c.cfg.URL),
		logfields.Path(workDir),
		slog.String("branch", c.cfg.Branch))

	if err := os.MkdirAll(filepath.Dir(workDir), 0o755); err != nil {
		return fmt.Errorf("create workspace: %w", err)
	}

	opts := &git.CloneOptions{URL: c.cfg.URL}
	if c.cfg.Branch != "" {
		opts.ReferenceName = plumbing.NewBranchReferenceName(c.cfg.Branch)
		opts.SingleBranch = true
	}
	if c.cfg.ShallowDepth > 0 {
		opts.Depth = c.cfg.ShallowDepth
	}

	if _, err := git.PlainCloneContext(ctx, workDir, false, opts); err != nil {
		return fmt.Errorf("clone %s: %w", c.cfg.URL, err)
	}
	return nil
}

func (c *Client) pull(ctx context.Context, workDir string) error {
	repo, err := git.PlainOpen(workDir)
	if err != nil {
		return fmt.Errorf("open checkout %s: %w", workDir, err)
	}
	worktree, err := repo.Worktree()
	if err != nil {
		return fmt.Errorf("worktree: %w", err)
	}

	opts := &git.PullOptions{}
	if c.cfg.Branch != "" {
		opts.ReferenceName = plumbing.NewBranchReferenceName(c.cfg.Branch)
		opts.SingleBranch = true
	}

	err = worktree.PullContext(ctx, opts)
	if errors.Is(err, git.NoErrAlreadyUpToDate) {
		slog.Debug("Content repository already up to date", logfields.Path(workDir))
		return nil
	}
	if err != nil {
		return fmt.Errorf("pull %s: %w", c.cfg.URL, err)
	}
	slog.Info("Content repository updated", logfields.Path(workDir))
	return nil
}

// Head returns the checked-out commit hash, for resolve record metadata.
func (c *Client) Head() (string, error) {
	repo, err := git.PlainOpen(c.cfg.WorkDir)
	if err != nil {
		return "", fmt.Errorf("open checkout: %w", err)
	}
	ref, err := repo.Head()
	if err != nil {
		return "", fmt.Errorf("resolve HEAD: %w", err)
	}
	return ref.Hash().String(), nil
}

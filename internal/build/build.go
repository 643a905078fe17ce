// Package build orchestrates one resolve run: content sync and discovery,
// navigation resolution, artifact emission, and the post-run bookkeeping
// (history, metrics, events).
package build

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"git.home.luguber.info/inful/navbuilder/internal/config"
	"git.home.luguber.info/inful/navbuilder/internal/content"
	"git.home.luguber.info/inful/navbuilder/internal/emit"
	apperrors "git.home.luguber.info/inful/navbuilder/internal/errors"
	"git.home.luguber.info/inful/navbuilder/internal/gitsource"
	"git.home.luguber.info/inful/navbuilder/internal/history"
	"git.home.luguber.info/inful/navbuilder/internal/i18n"
	"git.home.luguber.info/inful/navbuilder/internal/logfields"
	"git.home.luguber.info/inful/navbuilder/internal/manifest"
	"git.home.luguber.info/inful/navbuilder/internal/metrics"
	"git.home.luguber.info/inful/navbuilder/internal/nav"
)

// EventPublisher is the post-run notification hook; satisfied by
// events.Publisher.
type EventPublisher interface {
	PublishResolve(rec *manifest.ResolveRecord) error
}

// Runner executes resolve runs for a fixed configuration. History, publisher
// and recorder are optional.
type Runner struct {
	cfg       *config.Config
	recorder  metrics.Recorder
	store     *history.Store
	publisher EventPublisher
}

// NewRunner creates a runner with no-op observability.
func NewRunner(cfg *config.Config) *Runner {
	return &Runner{cfg: cfg, recorder: metrics.NoopRecorder{}}
}

// WithRecorder injects a metrics recorder.
func (r *Runner) WithRecorder(rec metrics.Recorder) *Runner {
	if rec != nil {
		r.recorder = rec
	}
	return r
}

// WithHistory injects the resolve-run history store.
func (r *Runner) WithHistory(store *history.Store) *Runner {
	r.store = store
	return r
}

// WithPublisher injects the event publisher.
func (r *Runner) WithPublisher(p EventPublisher) *Runner {
	r.publisher = p
	return r
}

// Result is the output of one resolve run.
type Result struct {
	Trees    map[string][]nav.ResolvedEntry
	Manifest *manifest.ContentManifest
	Record   *manifest.ResolveRecord
}

// Run performs a full resolve: sync (when git-sourced), discover, resolve,
// emit. The returned error, if any, is already classified; the run record is
// persisted and published for failures too, so the history shows broken
// builds.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	started := time.Now()
	cfg := r.cfg

	rec := manifest.NewResolveRecord()
	rec.ConfigHash = cfg.SourceHash
	rec.Locales = cfg.Site.Locales
	rec.DefaultLocale = cfg.Site.DefaultLocale

	result, err := r.run(ctx, rec)
	rec.Finish(started, err)

	r.recorder.ObserveResolveDuration(time.Since(started))
	if err != nil {
		r.recorder.IncResolveOutcome(metrics.OutcomeFailed)
		r.recorder.IncResolveFailure(string(apperrors.GetCategory(err)))
	} else {
		r.recorder.IncResolveOutcome(metrics.OutcomeSuccess)
	}

	r.finalize(ctx, rec)

	if err != nil {
		return nil, err
	}
	// The record is final now (status, duration); emit it last.
	if err := emit.NewWriter(cfg.Output.Dir).WriteRecord(rec); err != nil {
		return nil, apperrors.EmitError(err)
	}
	result.Record = rec
	slog.Info("Resolve run complete",
		logfields.BuildID(rec.ID),
		logfields.DurationMS(rec.DurationMS),
		logfields.Count(result.Manifest.PageCount()))
	return result, nil
}

func (r *Runner) run(ctx context.Context, rec *manifest.ResolveRecord) (*Result, error) {
	cfg := r.cfg

	contentDir := cfg.Content.Dir
	if cfg.Content.Repo != nil {
		client := gitsource.NewClient(cfg.Content.Repo)
		checkout, err := client.Sync(ctx)
		if err != nil {
			return nil, apperrors.GitSourceError(cfg.Content.Repo.URL, err)
		}
		contentDir = filepath.Join(checkout, cfg.Content.Dir)
	}

	m, err := content.NewDiscovery(contentDir).Discover()
	if err != nil {
		return nil, apperrors.DiscoveryError(err)
	}
	r.recorder.SetPagesDiscovered(m.PageCount())
	if rec.ManifestHash, err = m.Hash(); err != nil {
		return nil, apperrors.InternalError("hashing manifest failed", err)
	}

	var opts []nav.Option
	if cfg.I18n.BundleDir != "" {
		bundle, err := i18n.LoadBundle(cfg.I18n.BundleDir, cfg.Site.Locales, cfg.Site.DefaultLocale)
		if err != nil {
			return nil, apperrors.Wrap(err, apperrors.CategoryConfig, apperrors.SeverityFatal, "loading translation bundles failed")
		}
		opts = append(opts, nav.WithLabeler(bundle))
	}

	trees, err := nav.Resolve(cfg.Sidebar, cfg.Site.Locales, cfg.Site.DefaultLocale, m, opts...)
	if err != nil {
		return nil, apperrors.ResolveError(err)
	}

	rec.NodeCounts = make(map[string]int, len(trees))
	for locale, tree := range trees {
		n := nav.CountNodes(tree)
		rec.NodeCounts[locale] = n
		r.recorder.SetNodesResolved(locale, n)
	}

	writer := emit.NewWriter(cfg.Output.Dir)
	if err := writer.WriteNavigation(trees); err != nil {
		return nil, apperrors.EmitError(err)
	}
	if err := writer.WriteManifest(m); err != nil {
		return nil, apperrors.EmitError(err)
	}

	return &Result{Trees: trees, Manifest: m}, nil
}

// finalize persists and publishes the run record. Failures here are logged,
// not fatal: the artifacts are already on disk.
func (r *Runner) finalize(ctx context.Context, rec *manifest.ResolveRecord) {
	if r.store != nil {
		if err := r.store.Append(ctx, rec); err != nil {
			slog.Warn("Failed to append resolve record to history", logfields.Error(err))
		} else if r.cfg.History != nil {
			if err := r.store.Prune(ctx, r.cfg.History.Keep); err != nil {
				slog.Warn("Failed to prune resolve history", logfields.Error(err))
			}
		}
	}
	if r.publisher != nil {
		if err := r.publisher.PublishResolve(rec); err != nil {
			slog.Warn("Failed to publish resolve event", logfields.Error(err))
		}
	}
}

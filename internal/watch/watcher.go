// Package watch re-runs the resolve pipeline when content changes. Local
// content directories are watched with fsnotify (debounced); git-sourced
// content relies on the periodic rebuild interval instead.
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-co-op/gocron/v2"

	"git.home.luguber.info/inful/navbuilder/internal/build"
	"git.home.luguber.info/inful/navbuilder/internal/config"
	"git.home.luguber.info/inful/navbuilder/internal/logfields"
)

// ReloadFunc re-reads the configuration and rebuilds the runner around it.
// Returning an error keeps the current configuration in place.
type ReloadFunc func() (*config.Config, *build.Runner, error)

// Watcher drives repeated resolve runs.
type Watcher struct {
	cfg    *config.Config
	runner *build.Runner

	configPath string
	reload     ReloadFunc
}

// New creates a watcher around a configured runner.
func New(cfg *config.Config, runner *build.Runner) *Watcher {
	return &Watcher{cfg: cfg, runner: runner}
}

// WithConfigReload also watches the configuration file itself; when it
// changes, reload is called and the next rebuild uses the new configuration.
func (w *Watcher) WithConfigReload(path string, reload ReloadFunc) *Watcher {
	w.configPath = path
	w.reload = reload
	return w
}

// Run performs an initial resolve and then rebuilds on content changes
// until ctx is canceled. A failing rebuild is logged, not fatal: the last
// good artifacts stay on disk and the watcher keeps going.
func (w *Watcher) Run(ctx context.Context) error {
	trigger := make(chan struct{}, 1)
	reloadCh := make(chan struct{}, 1)

	if w.cfg.Content.Repo == nil {
		notifier, err := w.startFSWatcher(ctx, trigger, reloadCh)
		if err != nil {
			return err
		}
		defer notifier.Close()
	} else if w.cfg.Watch.Interval.Std() <= 0 {
		return fmt.Errorf("git-sourced content requires watch.interval to be set")
	}

	scheduler, err := w.startScheduler(trigger)
	if err != nil {
		return err
	}
	if scheduler != nil {
		defer func() { _ = scheduler.Shutdown() }()
	}

	w.rebuild(ctx)

	debounce := w.cfg.Watch.Debounce.Std()
	var timer *time.Timer
	var timerCh <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-trigger:
			// Collapse change bursts into one rebuild.
			if timer == nil {
				timer = time.NewTimer(debounce)
				timerCh = timer.C
			} else {
				if !timer.Stop() {
					<-timer.C
				}
				timer.Reset(debounce)
			}
		case <-reloadCh:
			w.applyReload()
			w.rebuild(ctx)
		case <-timerCh:
			timer = nil
			timerCh = nil
			w.rebuild(ctx)
		}
	}
}

// applyReload swaps in a freshly loaded configuration. A broken config keeps
// the current one running.
func (w *Watcher) applyReload() {
	if w.reload == nil {
		return
	}
	cfg, runner, err := w.reload()
	if err != nil {
		slog.Error("Configuration reload failed; keeping current configuration", logfields.Error(err))
		return
	}
	w.cfg = cfg
	w.runner = runner
	slog.Info("Configuration reloaded", logfields.Path(w.configPath))
}

func (w *Watcher) rebuild(ctx context.Context) {
	if _, err := w.runner.Run(ctx); err != nil {
		slog.Error("Resolve run failed; keeping previous artifacts", logfields.Error(err))
	}
}

// startFSWatcher watches the content tree recursively, adding directories
// created while watching.
func (w *Watcher) startFSWatcher(ctx context.Context, trigger, reloadCh chan<- struct{}) (*fsnotify.Watcher, error) {
	notifier, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create file watcher: %w", err)
	}

	configPath := ""
	if w.configPath != "" && w.reload != nil {
		configPath, err = filepath.Abs(w.configPath)
		if err != nil {
			_ = notifier.Close()
			return nil, fmt.Errorf("resolve config path: %w", err)
		}
		// Watch the parent so editor save-via-rename still produces events.
		if err := notifier.Add(filepath.Dir(configPath)); err != nil {
			_ = notifier.Close()
			return nil, fmt.Errorf("watch config file %s: %w", w.configPath, err)
		}
	}

	root := w.cfg.Content.Dir
	err = filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			if path != root && strings.HasPrefix(entry.Name(), ".") {
				return filepath.SkipDir
			}
			return notifier.Add(path)
		}
		return nil
	})
	if err != nil {
		_ = notifier.Close()
		return nil, fmt.Errorf("watch content dir %s: %w", root, err)
	}
	slog.Info("Watching content directory", logfields.Path(root))

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-notifier.Events:
				if !ok {
					return
				}
				if abs, err := filepath.Abs(event.Name); err == nil && configPath != "" {
					if abs == configPath {
						select {
						case reloadCh <- struct{}{}:
						default:
						}
						continue
					}
					// Ignore sibling files of the config; only the content
					// tree and the config file itself matter.
					if filepath.Dir(abs) == filepath.Dir(configPath) && !strings.HasPrefix(abs, absPath(w.cfg.Content.Dir)) {
						continue
					}
				}
				if event.Op.Has(fsnotify.Create) {
					// New subdirectories need their own watch.
					_ = notifier.Add(event.Name)
				}
				slog.Debug("Content change detected", logfields.Path(event.Name), slog.String("op", event.Op.String()))
				select {
				case trigger <- struct{}{}:
				default:
				}
			case err, ok := <-notifier.Errors:
				if !ok {
					return
				}
				slog.Warn("File watcher error", logfields.Error(err))
			}
		}
	}()
	return notifier, nil
}

func absPath(p string) string {
	abs, err := filepath.Abs(p)
	if err != nil {
		return p
	}
	return abs
}

// startScheduler adds the optional periodic rebuild. Returns nil when no
// interval is configured.
func (w *Watcher) startScheduler(trigger chan<- struct{}) (gocron.Scheduler, error) {
	interval := w.cfg.Watch.Interval.Std()
	if interval <= 0 {
		return nil, nil
	}

	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("create scheduler: %w", err)
	}
	_, err = scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			select {
			case trigger <- struct{}{}:
			default:
			}
		}),
		gocron.WithName("periodic-rebuild"),
	)
	if err != nil {
		_ = scheduler.Shutdown()
		return nil, fmt.Errorf("schedule periodic rebuild: %w", err)
	}
	scheduler.Start()
	slog.Info("Periodic rebuild scheduled", slog.Duration("interval", interval))
	return scheduler, nil
}

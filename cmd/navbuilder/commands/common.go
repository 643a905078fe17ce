package commands

import (
	"fmt"
	"log/slog"
	"os"

	"git.home.luguber.info/inful/navbuilder/internal/build"
	"git.home.luguber.info/inful/navbuilder/internal/config"
	"git.home.luguber.info/inful/navbuilder/internal/events"
	"git.home.luguber.info/inful/navbuilder/internal/history"
	"git.home.luguber.info/inful/navbuilder/internal/metrics"
	"github.com/alecthomas/kong"
	"github.com/prometheus/client_golang/prometheus"
)

// Global context passed to subcommands if we need to share global state later.
type Global struct {
	Logger *slog.Logger
}

// CLI definition & global flags - used by commands that need access to root config.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"navbuilder.yaml"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Resolve  ResolveCmd  `cmd:"" help:"Resolve the navigation tree and write artifacts"`
	Init     InitCmd     `cmd:"" help:"Initialize a new configuration file"`
	Discover DiscoverCmd `cmd:"" help:"Discover content pages without resolving navigation"`
	History  HistoryCmd  `cmd:"" help:"Show recent resolve runs"`
	Serve    ServeCmd    `cmd:"" help:"Serve resolved navigation over HTTP"`
	Watch    WatchCmd    `cmd:"" help:"Watch content and re-resolve on changes"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}

func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// runnerDeps holds the optional services a resolve run may attach.
type runnerDeps struct {
	store     *history.Store
	publisher *events.Publisher
	registry  *prometheus.Registry
}

func (d *runnerDeps) Close() {
	if d.store != nil {
		_ = d.store.Close()
	}
	if d.publisher != nil {
		d.publisher.Close()
	}
}

// buildRunner wires a Runner with whatever the configuration enables:
// history store, event publisher, and prometheus metrics.
func buildRunner(cfg *config.Config) (*build.Runner, *runnerDeps, error) {
	deps := &runnerDeps{}
	runner := build.NewRunner(cfg)

	if cfg.History != nil {
		store, err := history.Open(cfg.History.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("open history store: %w", err)
		}
		deps.store = store
		runner = runner.WithHistory(store)
	}

	if cfg.Events != nil {
		pub, err := events.NewPublisher(cfg.Events.URL, cfg.Events.Subject)
		if err != nil {
			deps.Close()
			return nil, nil, fmt.Errorf("connect event publisher: %w", err)
		}
		deps.publisher = pub
		runner = runner.WithPublisher(pub)
	}

	deps.registry = prometheus.NewRegistry()
	runner = runner.WithRecorder(metrics.NewPrometheusRecorder(deps.registry))

	return runner, deps, nil
}

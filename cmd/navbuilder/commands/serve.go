package commands

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"git.home.luguber.info/inful/navbuilder/internal/config"
	"git.home.luguber.info/inful/navbuilder/internal/history"
	"git.home.luguber.info/inful/navbuilder/internal/server"
	"github.com/prometheus/client_golang/prometheus"
)

// ServeCmd implements the 'serve' command.
type ServeCmd struct {
	Addr        string `short:"a" help:"Listen address (overrides config)"`
	SkipResolve bool   `help:"Serve existing artifacts without resolving first"`
}

func (s *ServeCmd) Run(_ *Global, root *CLI) error {
	cfg, err := loadConfig(root.Config)
	if err != nil {
		return err
	}
	if s.Addr != "" {
		cfg.Serve.Addr = s.Addr
	}
	return RunServe(context.Background(), cfg, s.SkipResolve)
}

func RunServe(ctx context.Context, cfg *config.Config, skipResolve bool) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if !skipResolve {
		if err := RunResolve(ctx, cfg); err != nil {
			return err
		}
	}

	var store *history.Store
	if cfg.History != nil {
		var err error
		store, err = history.Open(cfg.History.Path)
		if err != nil {
			return fmt.Errorf("open history store: %w", err)
		}
		defer func() { _ = store.Close() }()
	}

	registry := prometheus.NewRegistry()
	srv := server.New(cfg, registry, store)

	fmt.Printf("Serving navigation on %s\n", cfg.Serve.Addr)
	return srv.Start(ctx)
}

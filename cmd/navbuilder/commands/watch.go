package commands

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"git.home.luguber.info/inful/navbuilder/internal/build"
	"git.home.luguber.info/inful/navbuilder/internal/config"
	"git.home.luguber.info/inful/navbuilder/internal/watch"
)

// WatchCmd implements the 'watch' command.
type WatchCmd struct{}

func (w *WatchCmd) Run(_ *Global, root *CLI) error {
	cfg, err := loadConfig(root.Config)
	if err != nil {
		return err
	}
	return RunWatch(context.Background(), cfg, root.Config)
}

func RunWatch(ctx context.Context, cfg *config.Config, configPath string) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	runner, deps, err := buildRunner(cfg)
	if err != nil {
		return err
	}
	defer func() { deps.Close() }()

	// On config change, swap the runner and its attached services wholesale.
	reload := func() (*config.Config, *build.Runner, error) {
		newCfg, err := loadConfig(configPath)
		if err != nil {
			return nil, nil, err
		}
		newRunner, newDeps, err := buildRunner(newCfg)
		if err != nil {
			return nil, nil, err
		}
		deps.Close()
		deps = newDeps
		return newCfg, newRunner, nil
	}

	fmt.Println("Watching content for changes (Ctrl+C to stop)")
	return watch.New(cfg, runner).WithConfigReload(configPath, reload).Run(ctx)
}

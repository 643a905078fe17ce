package commands

import (
	"context"
	"fmt"

	"git.home.luguber.info/inful/navbuilder/internal/config"
)

// ResolveCmd implements the 'resolve' command.
type ResolveCmd struct {
	Output string `short:"o" help:"Output directory for resolved artifacts (overrides config)"`
}

func (r *ResolveCmd) Run(_ *Global, root *CLI) error {
	cfg, err := loadConfig(root.Config)
	if err != nil {
		return err
	}
	if r.Output != "" {
		cfg.Output.Dir = r.Output
	}
	return RunResolve(context.Background(), cfg)
}

func RunResolve(ctx context.Context, cfg *config.Config) error {
	// Provide friendly user-facing messages on stdout for CLI integration tests.
	fmt.Println("Starting navigation resolve")

	runner, deps, err := buildRunner(cfg)
	if err != nil {
		return err
	}
	defer deps.Close()

	result, err := runner.Run(ctx)
	if err != nil {
		fmt.Println("Resolve failed")
		return err
	}

	fmt.Printf("Resolved %d locales, %d pages, output in %s\n",
		len(result.Trees), result.Manifest.PageCount(), cfg.Output.Dir)
	return nil
}

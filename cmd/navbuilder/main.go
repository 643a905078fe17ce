package main

import (
	"log/slog"

	"git.home.luguber.info/inful/navbuilder/cmd/navbuilder/commands"
	apperrors "git.home.luguber.info/inful/navbuilder/internal/errors"
	"git.home.luguber.info/inful/navbuilder/internal/version"
	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
)

func main() {
	// Local overrides (NATS URLs, repo credentials) live in .env during development.
	_ = godotenv.Load()

	cli := &commands.CLI{}
	ctx := kong.Parse(cli,
		kong.Name("navbuilder"),
		kong.Description("Resolve declarative navigation trees against discovered content."),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
	)

	err := ctx.Run(&commands.Global{Logger: slog.Default()})
	if err != nil {
		adapter := apperrors.NewCLIErrorAdapter(cli.Verbose, slog.Default())
		adapter.HandleError(err)
	}
}

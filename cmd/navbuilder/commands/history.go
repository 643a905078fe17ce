package commands

import (
	"context"
	"fmt"
	"os"

	"git.home.luguber.info/inful/navbuilder/internal/config"
	"git.home.luguber.info/inful/navbuilder/internal/history"
)

// HistoryCmd implements the 'history' command.
type HistoryCmd struct {
	Limit int  `short:"n" help:"Maximum number of runs to show" default:"20"`
	JSON  bool `help:"Print records as JSON"`
}

func (h *HistoryCmd) Run(_ *Global, root *CLI) error {
	cfg, err := loadConfig(root.Config)
	if err != nil {
		return err
	}
	if cfg.History == nil {
		return fmt.Errorf("history is not configured (set history.path in %s)", root.Config)
	}
	return RunHistory(context.Background(), cfg, h.Limit, h.JSON)
}

func RunHistory(ctx context.Context, cfg *config.Config, limit int, asJSON bool) error {
	store, err := history.Open(cfg.History.Path)
	if err != nil {
		return fmt.Errorf("open history store: %w", err)
	}
	defer func() { _ = store.Close() }()

	records, err := store.Recent(ctx, limit)
	if err != nil {
		return err
	}

	if asJSON {
		for _, rec := range records {
			data, err := rec.ToJSON()
			if err != nil {
				return err
			}
			if _, err := os.Stdout.Write(append(data, '\n')); err != nil {
				return err
			}
		}
		return nil
	}

	if len(records) == 0 {
		fmt.Println("No resolve runs recorded")
		return nil
	}

	fmt.Printf("%-36s  %-20s  %-8s  %8s  %s\n", "ID", "TIMESTAMP", "STATUS", "DURATION", "LOCALES")
	for _, rec := range records {
		fmt.Printf("%-36s  %-20s  %-8s  %6dms  %v\n",
			rec.ID, rec.Timestamp.Format("2006-01-02 15:04:05"), rec.Status, rec.DurationMS, rec.Locales)
	}
	return nil
}

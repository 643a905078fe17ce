package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/navbuilder/internal/config"
	"git.home.luguber.info/inful/navbuilder/internal/content"
	"git.home.luguber.info/inful/navbuilder/internal/gitsource"
	"git.home.luguber.info/inful/navbuilder/internal/manifest"
)

// DiscoverCmd implements the 'discover' command.
type DiscoverCmd struct {
	Directory string `short:"d" help:"Only show pages under this content directory (optional)"`
	JSON      bool   `help:"Print the manifest as JSON"`
}

func (d *DiscoverCmd) Run(_ *Global, root *CLI) error {
	cfg, err := loadConfig(root.Config)
	if err != nil {
		return err
	}
	return RunDiscover(context.Background(), cfg, d.Directory, d.JSON)
}

func RunDiscover(ctx context.Context, cfg *config.Config, directory string, asJSON bool) error {
	contentDir := cfg.Content.Dir
	if cfg.Content.Repo != nil {
		checkout, err := gitsource.NewClient(cfg.Content.Repo).Sync(ctx)
		if err != nil {
			return fmt.Errorf("sync content repository: %w", err)
		}
		contentDir = filepath.Join(checkout, cfg.Content.Dir)
	}

	m, err := content.NewDiscovery(contentDir).Discover()
	if err != nil {
		return err
	}

	if directory != "" {
		pages, ok := m.Pages(directory)
		if !ok {
			return fmt.Errorf("directory '%s' has no discovered pages", directory)
		}
		sub := manifest.New()
		for _, p := range pages {
			sub.Add(directory, p)
		}
		m = sub
	}

	if asJSON {
		data, err := m.ToJSON()
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(data)
		return err
	}

	fmt.Printf("Discovered %d pages in %d directories\n", m.PageCount(), len(m.Directories))
	for _, dir := range m.SortedDirectories() {
		pages, _ := m.Pages(dir)
		fmt.Printf("%s (%d pages)\n", dir, len(pages))
		for _, p := range pages {
			fmt.Printf("  %-40s %s\n", p.Slug, p.Title)
		}
	}
	return nil
}

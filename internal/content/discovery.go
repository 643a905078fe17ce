// Package content discovers Markdown content files and builds the content
// manifest the navigation resolver validates against.
package content

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/navbuilder/internal/frontmatter"
	"git.home.luguber.info/inful/navbuilder/internal/logfields"
	"git.home.luguber.info/inful/navbuilder/internal/manifest"
)

// Markdown extensions recognized as content pages.
var contentExtensions = map[string]bool{
	".md":  true,
	".mdx": true,
}

// Discovery walks a content directory and produces the manifest.
type Discovery struct {
	contentDir string
}

// NewDiscovery creates a discovery instance rooted at contentDir.
func NewDiscovery(contentDir string) *Discovery {
	return &Discovery{contentDir: contentDir}
}

// Discover builds the content manifest: one PageRef per non-draft Markdown
// file, grouped by the slash-separated directory relative to the content
// root (root-level pages group under "."). Listings come out sorted by the
// weight-then-lexicographic rule, so the result is deterministic for a fixed
// file set.
func (d *Discovery) Discover() (*manifest.ContentManifest, error) {
	if _, err := os.Stat(d.contentDir); os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrContentDirNotFound, d.contentDir)
	}

	m := manifest.New()
	err := filepath.WalkDir(d.contentDir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("%w: %s: %w", ErrContentWalkFailed, path, err)
		}
		name := entry.Name()
		if entry.IsDir() {
			// Hidden and underscore-prefixed directories hold assets and
			// generator internals, not pages.
			if path != d.contentDir && (strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_")) {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") {
			return nil
		}
		if !contentExtensions[strings.ToLower(filepath.Ext(name))] {
			return nil
		}

		ref, draft, err := d.loadPage(path)
		if err != nil {
			return err
		}
		if draft {
			slog.Debug("Skipping draft page", logfields.File(path))
			return nil
		}
		m.Add(dirKey(d.contentDir, path), ref)
		return nil
	})
	if err != nil {
		return nil, err
	}

	m.SortPages()
	slog.Info("Content discovery complete",
		logfields.Path(d.contentDir),
		logfields.Count(m.PageCount()),
		slog.Int("directories", len(m.Directories)))
	return m, nil
}

// loadPage reads a single content file and derives its PageRef.
func (d *Discovery) loadPage(path string) (manifest.PageRef, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return manifest.PageRef{}, false, fmt.Errorf("%w: %s: %w", ErrFileReadFailed, path, err)
	}

	fields, body, err := frontmatter.Parse(data)
	if err != nil {
		return manifest.PageRef{}, false, fmt.Errorf("%w: %s: %w", ErrFrontMatterInvalid, path, err)
	}

	slug := slugFor(d.contentDir, path)
	title := fields.Title
	if title == "" {
		if h, ok := FirstHeading(body); ok {
			title = h
		} else {
			title = HumanizeSlug(slug)
			slog.Debug("No title in front matter or headings, derived from slug",
				logfields.File(path), logfields.Slug(slug))
		}
	}

	return manifest.PageRef{
		Slug:         slug,
		Title:        title,
		Weight:       fields.Weight,
		Translations: fields.NavTranslations,
		Icon:         fields.Icon,
	}, fields.Draft, nil
}

// slugFor converts an absolute content file path to its page slug: the
// extension-less path relative to the content root, with forward slashes.
func slugFor(contentDir, path string) string {
	rel, err := filepath.Rel(contentDir, path)
	if err != nil {
		rel = filepath.Base(path)
	}
	rel = strings.TrimSuffix(rel, filepath.Ext(rel))
	return filepath.ToSlash(rel)
}

// dirKey returns the manifest directory key for a content file: its parent
// directory relative to the content root, "." for root-level pages.
func dirKey(contentDir, path string) string {
	rel, err := filepath.Rel(contentDir, filepath.Dir(path))
	if err != nil {
		return "."
	}
	return filepath.ToSlash(rel)
}

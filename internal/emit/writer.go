// Package emit writes the resolved navigation artifacts consumed by the
// site-rendering layer.
package emit

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/navbuilder/internal/manifest"
	"git.home.luguber.info/inful/navbuilder/internal/nav"
)

// Writer emits JSON artifacts into the output directory.
type Writer struct {
	outDir string
}

// NewWriter creates a writer rooted at outDir; the directory is created on
// first write.
func NewWriter(outDir string) *Writer { return &Writer{outDir: outDir} }

// WriteNavigation writes one sidebar.<locale>.json per locale.
func (w *Writer) WriteNavigation(trees map[string][]nav.ResolvedEntry) error {
	for locale, tree := range trees {
		name := fmt.Sprintf("sidebar.%s.json", locale)
		if err := w.writeJSON(name, tree); err != nil {
			return err
		}
	}
	return nil
}

// WriteManifest writes the content manifest as manifest.json.
func (w *Writer) WriteManifest(m *manifest.ContentManifest) error {
	return w.writeJSON("manifest.json", m)
}

// WriteRecord writes the resolve record as resolve.json.
func (w *Writer) WriteRecord(rec *manifest.ResolveRecord) error {
	return w.writeJSON("resolve.json", rec)
}

// Path returns the absolute path of an artifact file name.
func (w *Writer) Path(name string) string { return filepath.Join(w.outDir, name) }

// writeJSON writes atomically: a temp file in the output dir, then rename,
// so a crashed run never leaves a half-written artifact behind.
func (w *Writer) writeJSON(name string, v any) error {
	if err := os.MkdirAll(w.outDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", name, err)
	}
	data = append(data, '\n')

	tmp, err := os.CreateTemp(w.outDir, name+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close %s: %w", name, err)
	}
	if err := os.Rename(tmpName, filepath.Join(w.outDir, name)); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("rename %s: %w", name, err)
	}
	return nil
}

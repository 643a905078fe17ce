package manifest

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// PageRef describes a single content page as seen by the navigation resolver.
type PageRef struct {
	Slug   string `json:"slug"`
	Title  string `json:"title"`
	Weight int    `json:"weight,omitempty"`
	// Translations carries per-locale title overrides taken from the page's
	// own front matter. Keys are locale codes.
	Translations map[string]string `json:"translations,omitempty"`
	Icon         string            `json:"icon,omitempty"`
}

// ContentManifest is the build-time listing of available content pages,
// grouped by the directory they were discovered in. Page order within a
// directory is significant: it is the order autogenerated navigation
// sections render in.
type ContentManifest struct {
	Directories map[string][]PageRef `json:"directories"`
}

// New creates an empty manifest.
func New() *ContentManifest {
	return &ContentManifest{Directories: make(map[string][]PageRef)}
}

// Add appends a page to a directory listing.
func (m *ContentManifest) Add(dir string, ref PageRef) {
	if m.Directories == nil {
		m.Directories = make(map[string][]PageRef)
	}
	m.Directories[dir] = append(m.Directories[dir], ref)
}

// Pages returns the ordered listing for a directory.
func (m *ContentManifest) Pages(dir string) ([]PageRef, bool) {
	refs, ok := m.Directories[dir]
	return refs, ok
}

// HasSlug reports whether any directory listing contains the given slug.
func (m *ContentManifest) HasSlug(slug string) bool {
	for _, refs := range m.Directories {
		for _, ref := range refs {
			if ref.Slug == slug {
				return true
			}
		}
	}
	return false
}

// PageCount returns the total number of pages across all directories.
func (m *ContentManifest) PageCount() int {
	n := 0
	for _, refs := range m.Directories {
		n += len(refs)
	}
	return n
}

// SortPages orders every directory listing by weight (ascending), breaking
// ties lexicographically by slug. Pages without an explicit weight carry
// weight 0 and therefore sort ahead of positively weighted pages; this is the
// documented ordering rule for autogenerated sections.
func (m *ContentManifest) SortPages() {
	for dir, refs := range m.Directories {
		sort.SliceStable(refs, func(i, j int) bool {
			if refs[i].Weight != refs[j].Weight {
				return refs[i].Weight < refs[j].Weight
			}
			return refs[i].Slug < refs[j].Slug
		})
		m.Directories[dir] = refs
	}
}

// ToJSON serializes the manifest to indented JSON.
func (m *ContentManifest) ToJSON() ([]byte, error) {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal manifest: %w", err)
	}
	return data, nil
}

// FromJSON deserializes a manifest from JSON.
func FromJSON(data []byte) (*ContentManifest, error) {
	var m ContentManifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("unmarshal manifest: %w", err)
	}
	if m.Directories == nil {
		m.Directories = make(map[string][]PageRef)
	}
	return &m, nil
}

// Hash computes a deterministic sha256 hash of the manifest content.
// encoding/json emits map keys in sorted order, so the same page set always
// hashes identically regardless of discovery order.
func (m *ContentManifest) Hash() (string, error) {
	data, err := json.Marshal(m)
	if err != nil {
		return "", fmt.Errorf("marshal for hash: %w", err)
	}
	sum := sha256.Sum256(data)
	return fmt.Sprintf("%x", sum), nil
}

// SortedDirectories returns directory keys in lexicographic order, for
// stable iteration in logs and the discover command output.
func (m *ContentManifest) SortedDirectories() []string {
	dirs := make([]string, 0, len(m.Directories))
	for dir := range m.Directories {
		dirs = append(dirs, dir)
	}
	sort.Strings(dirs)
	return dirs
}

// Summary returns a short human-readable description, e.g. "3 dirs, 17 pages".
func (m *ContentManifest) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d dirs, %d pages", len(m.Directories), m.PageCount())
	return b.String()
}

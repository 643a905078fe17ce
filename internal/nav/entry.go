// Package nav implements the navigation tree resolver: it turns the
// declarative sidebar configuration plus a content manifest into the final
// per-locale, ordered navigation trees rendered by the site's sidebar.
//
// Ordering rule for autogenerated sections: pages render in manifest order,
// which the content discovery layer fixes as weight-ascending with
// lexicographic-by-slug tie breaking (see manifest.SortPages).
package nav

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Kind identifies which variant of the entry union a node carries.
type Kind int

const (
	// KindInvalid marks a node with zero or multiple variants populated.
	KindInvalid Kind = iota
	// KindPage links a single content page by slug.
	KindPage
	// KindAutogenerate expands into one leaf per page of a content directory.
	KindAutogenerate
	// KindGroup holds an ordered list of child entries.
	KindGroup
)

func (k Kind) String() string {
	switch k {
	case KindPage:
		return "page"
	case KindAutogenerate:
		return "autogenerate"
	case KindGroup:
		return "group"
	default:
		return "invalid"
	}
}

// Entry is one declarative node of the sidebar configuration. Exactly one of
// Slug, Autogenerate, or Items must be set; Kind() reports which, and the
// resolver rejects nodes violating the one-of rule before any expansion.
type Entry struct {
	Label string `yaml:"label"`
	// LabelKey optionally names a message in the translation bundles;
	// it is consulted after inline Translations and before Label.
	LabelKey     string            `yaml:"label_key,omitempty"`
	Translations map[string]string `yaml:"translations,omitempty"`
	Icon         string            `yaml:"icon,omitempty"`

	// Variant fields. One of:
	Slug         string  `yaml:"slug,omitempty"`
	Autogenerate string  `yaml:"autogenerate,omitempty"`
	Items        []Entry `yaml:"items,omitempty"`
}

// Kind reports the populated variant, or KindInvalid when the one-of rule is
// violated.
func (e *Entry) Kind() Kind {
	n := 0
	k := KindInvalid
	if e.Slug != "" {
		n++
		k = KindPage
	}
	if e.Autogenerate != "" {
		n++
		k = KindAutogenerate
	}
	if len(e.Items) > 0 {
		n++
		k = KindGroup
	}
	if n != 1 {
		return KindInvalid
	}
	return k
}

// variantFields lists the variant field names a node populates, for
// diagnostics on malformed nodes.
func (e *Entry) variantFields() []string {
	var fields []string
	if e.Slug != "" {
		fields = append(fields, "slug")
	}
	if e.Autogenerate != "" {
		fields = append(fields, "autogenerate")
	}
	if len(e.Items) > 0 {
		fields = append(fields, "items")
	}
	return fields
}

// ParseSidebar decodes a YAML sidebar document (a sequence of entries).
// Structural validation beyond YAML shape happens during Resolve.
func ParseSidebar(data []byte) ([]Entry, error) {
	var entries []Entry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse sidebar: %w", err)
	}
	return entries, nil
}

// ResolvedEntry is one node of the final navigation tree for a single
// locale. Leaves carry an Href; groups carry Items.
type ResolvedEntry struct {
	Label string          `json:"label"`
	Href  string          `json:"href,omitempty"`
	Icon  string          `json:"icon,omitempty"`
	Items []ResolvedEntry `json:"items,omitempty"`
}

// CountNodes returns the total node count of a resolved tree.
func CountNodes(entries []ResolvedEntry) int {
	n := 0
	for i := range entries {
		n += 1 + CountNodes(entries[i].Items)
	}
	return n
}

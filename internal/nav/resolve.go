package nav

import (
	"fmt"

	"git.home.luguber.info/inful/navbuilder/internal/manifest"
	"git.home.luguber.info/inful/navbuilder/internal/util/sets"
)

// Labeler supplies labels from external translation bundles. Lookup returns
// the localized text for a message key, or ok=false when the bundle has no
// message for that key/locale.
type Labeler interface {
	Lookup(locale, key string) (string, bool)
}

// Option configures a Resolve call.
type Option func(*resolver)

// WithLabeler attaches a translation bundle lookup used for entries that
// declare a label_key.
func WithLabeler(l Labeler) Option {
	return func(r *resolver) { r.labeler = l }
}

type resolver struct {
	manifest *manifest.ContentManifest
	locales  sets.Set[string]
	labeler  Labeler
}

// Resolve transforms the declarative sidebar tree into one fully expanded,
// localized navigation tree per locale.
//
// The walk is depth-first and order-preserving: group children resolve in
// declared order, and autogenerate directives expand to one leaf per
// manifest page, in manifest order, titled from the page's own metadata.
// Label fallback is computed independently per locale; no locale's output
// depends on another's.
//
// Resolve is a pure function of its inputs. It validates the whole tree
// before expanding anything, so a malformed node or dangling reference fails
// the run without producing partial output.
func Resolve(tree []Entry, locales []string, defaultLocale string, m *manifest.ContentManifest, opts ...Option) (map[string][]ResolvedEntry, error) {
	r := &resolver{manifest: m, locales: sets.New(locales...)}
	for _, opt := range opts {
		opt(r)
	}

	if !r.locales.Has(defaultLocale) {
		return nil, &InvalidLocaleError{Locale: defaultLocale}
	}
	if err := r.validate(tree, "sidebar"); err != nil {
		return nil, err
	}

	out := make(map[string][]ResolvedEntry, len(locales))
	for _, locale := range locales {
		out[locale] = r.expand(tree, locale)
	}
	return out, nil
}

// validate walks the tree once, checking the one-of rule, translation locale
// keys, and every manifest reference. parent is the tree path of the
// enclosing sequence.
func (r *resolver) validate(entries []Entry, parent string) error {
	for i := range entries {
		e := &entries[i]
		path := childPath(parent, i)

		kind := e.Kind()
		if kind == KindInvalid {
			return &MalformedNodeError{Path: path, Fields: e.variantFields()}
		}
		for locale := range e.Translations {
			if !r.locales.Has(locale) {
				return &InvalidLocaleError{Path: path, Locale: locale}
			}
		}

		switch kind {
		case KindPage:
			if !r.manifest.HasSlug(e.Slug) {
				return &DanglingSlugError{Path: path, Slug: e.Slug}
			}
		case KindAutogenerate:
			if _, ok := r.manifest.Pages(e.Autogenerate); !ok {
				return &MissingDirectoryError{Path: path, Directory: e.Autogenerate}
			}
		case KindGroup:
			if err := r.validate(e.Items, path+".items"); err != nil {
				return err
			}
		}
	}
	return nil
}

// expand produces the resolved tree for one locale. The tree has already
// been validated, so manifest lookups cannot miss here.
func (r *resolver) expand(entries []Entry, locale string) []ResolvedEntry {
	out := make([]ResolvedEntry, 0, len(entries))
	for i := range entries {
		e := &entries[i]
		switch e.Kind() {
		case KindPage:
			out = append(out, ResolvedEntry{
				Label: r.resolveLabel(e, locale),
				Href:  e.Slug,
				Icon:  e.Icon,
			})
		case KindAutogenerate:
			// The directive's own label and translations do not apply to the
			// generated leaves; each leaf is titled from its page metadata.
			refs, _ := r.manifest.Pages(e.Autogenerate)
			for _, ref := range refs {
				out = append(out, ResolvedEntry{
					Label: pageLabel(ref, locale),
					Href:  ref.Slug,
					Icon:  ref.Icon,
				})
			}
		case KindGroup:
			out = append(out, ResolvedEntry{
				Label: r.resolveLabel(e, locale),
				Icon:  e.Icon,
				Items: r.expand(e.Items, locale),
			})
		}
	}
	return out
}

// resolveLabel applies the label fallback rule uniformly for every node
// type: inline translations[locale], then the translation bundle (when the
// entry names a label_key), then the default label.
func (r *resolver) resolveLabel(e *Entry, locale string) string {
	if label, ok := e.Translations[locale]; ok {
		return label
	}
	if e.LabelKey != "" && r.labeler != nil {
		if label, ok := r.labeler.Lookup(locale, e.LabelKey); ok {
			return label
		}
	}
	return e.Label
}

// pageLabel resolves a generated leaf's label from page metadata: the
// page's per-locale title override when present, else its title.
func pageLabel(ref manifest.PageRef, locale string) string {
	if title, ok := ref.Translations[locale]; ok {
		return title
	}
	return ref.Title
}

// childPath renders the tree path of element i within the sequence at
// parent, e.g. childPath("sidebar[2].items", 0) == "sidebar[2].items[0]".
func childPath(parent string, i int) string {
	return fmt.Sprintf("%s[%d]", parent, i)
}

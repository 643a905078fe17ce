package nav

import "fmt"

// Resolver errors are configuration-correctness failures. Each names the
// offending node by its tree path (e.g. "sidebar[2].items[0]") so the build
// output points straight at the broken entry. None are recoverable: any one
// aborts the resolve run.

// MalformedNodeError reports a node violating the one-of variant rule:
// it declares more than one of slug/autogenerate/items, or none.
type MalformedNodeError struct {
	Path   string
	Fields []string
}

func (e *MalformedNodeError) Error() string {
	if len(e.Fields) == 0 {
		return fmt.Sprintf("%s: node declares none of slug, autogenerate, or items", e.Path)
	}
	return fmt.Sprintf("%s: node declares %v; exactly one of slug, autogenerate, or items is allowed", e.Path, e.Fields)
}

// MissingDirectoryError reports an autogenerate directive referencing a
// directory absent from the content manifest.
type MissingDirectoryError struct {
	Path      string
	Directory string
}

func (e *MissingDirectoryError) Error() string {
	return fmt.Sprintf("%s: autogenerate directory %q not present in content manifest", e.Path, e.Directory)
}

// DanglingSlugError reports an explicit slug that no content directory
// listing contains. A dangling slug would render as a broken link, so the
// build must abort rather than publish it.
type DanglingSlugError struct {
	Path string
	Slug string
}

func (e *DanglingSlugError) Error() string {
	return fmt.Sprintf("%s: slug %q not found in content manifest", e.Path, e.Slug)
}

// InvalidLocaleError reports a translation key outside the declared locale
// set, or a default locale missing from it.
type InvalidLocaleError struct {
	Path   string
	Locale string
}

func (e *InvalidLocaleError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("default locale %q is not in the declared locale set", e.Locale)
	}
	return fmt.Sprintf("%s: translation key %q is not in the declared locale set", e.Path, e.Locale)
}

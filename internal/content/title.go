package content

import (
	"strings"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// FirstHeading parses a Markdown body (front matter already removed) and
// returns the text of the first heading, if any. Used as the page title
// fallback when front matter declares none.
func FirstHeading(body []byte) (string, bool) {
	md := goldmark.New()
	root := md.Parser().Parse(text.NewReader(body))

	var title string
	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		if h, ok := n.(*gmast.Heading); ok {
			title = headingText(h, body)
			return gmast.WalkStop, nil
		}
		return gmast.WalkContinue, nil
	})

	title = strings.TrimSpace(title)
	return title, title != ""
}

// headingText concatenates the literal text of a heading's inline children,
// ignoring markup like emphasis or code spans but keeping their text.
func headingText(h *gmast.Heading, source []byte) string {
	var b strings.Builder
	_ = gmast.Walk(h, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *gmast.Text:
			b.Write(node.Segment.Value(source))
		case *gmast.String:
			b.Write(node.Value)
		}
		return gmast.WalkContinue, nil
	})
	return b.String()
}

var titleCaser = cases.Title(language.English)

// HumanizeSlug turns the last element of a slug into display text:
// "design-patterns/factory_method" becomes "Factory Method". Last-resort
// title for pages with neither front matter title nor headings.
func HumanizeSlug(slug string) string {
	base := slug
	if idx := strings.LastIndex(slug, "/"); idx >= 0 {
		base = slug[idx+1:]
	}
	base = strings.NewReplacer("-", " ", "_", " ").Replace(base)
	return titleCaser.String(base)
}

// Package frontmatter splits and parses YAML front matter from Markdown
// content files, extracting the fields the navigation layer cares about.
package frontmatter

import (
	"bytes"
	"errors"

	"gopkg.in/yaml.v3"
)

// ErrMissingClosingDelimiter indicates the document started with a YAML
// front matter delimiter but never closed it.
var ErrMissingClosingDelimiter = errors.New("yaml front matter start delimiter found but closing delimiter is missing")

// Fields are the front matter keys consumed when building the content
// manifest. Everything else in the front matter is ignored.
type Fields struct {
	Title string `yaml:"title"`
	// Weight orders pages within autogenerated sections (ascending);
	// pages without a weight carry 0.
	Weight int `yaml:"weight"`
	// NavTranslations holds per-locale title overrides for the sidebar.
	NavTranslations map[string]string `yaml:"nav_translations"`
	Icon            string            `yaml:"icon"`
	Draft           bool              `yaml:"draft"`
}

// Split separates `---` delimited YAML front matter from the Markdown body.
// If the document does not start with a front matter delimiter, had is false
// and body is the full input. Both \n and \r\n newline styles are accepted.
func Split(content []byte) (fm []byte, body []byte, had bool, err error) {
	nl := detectNewline(content)
	open := []byte("---" + nl)
	if !bytes.HasPrefix(content, open) {
		return nil, content, false, nil
	}

	start := len(open)
	// Empty front matter: the closing delimiter immediately follows.
	if bytes.HasPrefix(content[start:], open) {
		return []byte{}, content[start+len(open):], true, nil
	}

	closeSeq := []byte(nl + "---" + nl)
	idx := bytes.Index(content[start:], closeSeq)
	if idx < 0 {
		return nil, nil, false, ErrMissingClosingDelimiter
	}

	end := start + idx + len(nl)
	bodyStart := start + idx + len(closeSeq)
	return content[start:end], content[bodyStart:], true, nil
}

// Parse extracts the typed navigation fields from a full Markdown document.
// Documents without front matter yield zero Fields and no error.
func Parse(content []byte) (Fields, []byte, error) {
	fm, body, had, err := Split(content)
	if err != nil {
		return Fields{}, nil, err
	}
	if !had || len(fm) == 0 {
		return Fields{}, body, nil
	}

	var fields Fields
	if err := yaml.Unmarshal(fm, &fields); err != nil {
		return Fields{}, nil, err
	}
	return fields, body, nil
}

func detectNewline(content []byte) string {
	for i := 0; i+1 < len(content); i++ {
		if content[i] == '\r' && content[i+1] == '\n' {
			return "\r\n"
		}
		if content[i] == '\n' {
			return "\n"
		}
	}
	return "\n"
}

package config

import (
	"fmt"
	"os"
)

// defaultConfigTemplate is the starter configuration written by `navbuilder init`.
const defaultConfigTemplate = `# navbuilder configuration
site:
  title: My Documentation
  locales: [en, fr]
  default_locale: en

content:
  dir: docs
  # Or pull content from a git repository:
  # repo:
  #   url: https://example.com/docs.git
  #   branch: main

output:
  dir: public/nav

# i18n:
#   bundle_dir: translations

# history:
#   path: .navbuilder/history.db
#   keep: 100

# events:
#   url: nats://localhost:4222

sidebar:
  - label: Guides
    translations:
      fr: Manuels
    items:
      - label: Introduction
        slug: guides/intro
  - label: Design Patterns
    translations:
      fr: Patrons de conception
    autogenerate: design-patterns
`

// Init writes the starter configuration file. Existing files are only
// overwritten with force.
func Init(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("configuration file %s already exists (use --force to overwrite)", path)
	}
	if err := os.WriteFile(path, []byte(defaultConfigTemplate), 0o644); err != nil {
		return fmt.Errorf("write configuration: %w", err)
	}
	return nil
}

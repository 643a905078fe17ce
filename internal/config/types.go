package config

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/navbuilder/internal/nav"
)

// Duration is a time.Duration that unmarshals from YAML strings like "250ms"
// or "15m".
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Config is the navbuilder configuration file (YAML).
type Config struct {
	Site    SiteConfig     `yaml:"site"`
	Content ContentConfig  `yaml:"content"`
	Sidebar []nav.Entry    `yaml:"sidebar"`
	I18n    I18nConfig     `yaml:"i18n,omitempty"`
	Output  OutputConfig   `yaml:"output,omitempty"`
	History *HistoryConfig `yaml:"history,omitempty"`
	Events  *EventsConfig  `yaml:"events,omitempty"`
	Serve   ServeConfig    `yaml:"serve,omitempty"`
	Watch   WatchConfig    `yaml:"watch,omitempty"`

	// SourceHash is the sha256 of the raw config bytes, recorded in resolve
	// records for change detection. Not part of the YAML surface.
	SourceHash string `yaml:"-"`
}

// SiteConfig declares the published locales.
type SiteConfig struct {
	Title string `yaml:"title"`
	// Locales are BCP 47 codes (e.g. "en", "fr"); DefaultLocale must be one
	// of them and is the label-fallback target.
	Locales       []string `yaml:"locales"`
	DefaultLocale string   `yaml:"default_locale"`
}

// ContentConfig locates the content files.
type ContentConfig struct {
	// Dir is the content root walked by discovery. When Repo is set, Dir is
	// relative to the checkout.
	Dir  string      `yaml:"dir"`
	Repo *RepoConfig `yaml:"repo,omitempty"`
}

// RepoConfig configures a git-sourced content tree.
type RepoConfig struct {
	URL          string `yaml:"url"`
	Branch       string `yaml:"branch,omitempty"`
	ShallowDepth int    `yaml:"shallow_depth,omitempty"`
	// WorkDir is where the checkout lives; defaults to ".navbuilder/content".
	WorkDir string `yaml:"work_dir,omitempty"`
	// Retry overrides the backoff policy for fetch failures.
	Retry *RetryConfig `yaml:"retry,omitempty"`
}

// RetryConfig tunes the backoff policy for transient remote failures.
// Unset mode and durations fall back to the package defaults; max_retries 0
// disables retries.
type RetryConfig struct {
	Mode       string   `yaml:"mode,omitempty"` // fixed|linear|exponential
	Initial    Duration `yaml:"initial,omitempty"`
	Max        Duration `yaml:"max,omitempty"`
	MaxRetries int      `yaml:"max_retries,omitempty"`
}

// I18nConfig configures optional translation bundles.
type I18nConfig struct {
	// BundleDir holds per-locale TOML message files (sidebar.<locale>.toml).
	// Empty disables bundle lookup.
	BundleDir string `yaml:"bundle_dir,omitempty"`
}

// OutputConfig controls artifact emission.
type OutputConfig struct {
	Dir string `yaml:"dir,omitempty"`
}

// HistoryConfig enables the SQLite resolve-run history.
type HistoryConfig struct {
	Path string `yaml:"path"`
	// Keep bounds retained records; 0 keeps everything.
	Keep int `yaml:"keep,omitempty"`
}

// EventsConfig enables NATS resolve-completed events.
type EventsConfig struct {
	URL     string `yaml:"url"`
	Subject string `yaml:"subject,omitempty"`
}

// ServeConfig configures the preview server.
type ServeConfig struct {
	Addr string `yaml:"addr,omitempty"`
}

// WatchConfig configures watch mode.
type WatchConfig struct {
	// Debounce collapses change bursts into one rebuild.
	Debounce Duration `yaml:"debounce,omitempty"`
	// Interval adds a periodic full rebuild (useful with git-sourced
	// content); zero disables it.
	Interval Duration `yaml:"interval,omitempty"`
}

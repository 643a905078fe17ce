package config

import "time"

// Default values applied before validation.
const (
	DefaultContentDir   = "docs"
	DefaultOutputDir    = "public/nav"
	DefaultServeAddr    = ":8080"
	DefaultEventSubject = "navbuilder.resolve"
	DefaultRepoWorkDir  = ".navbuilder/content"
	DefaultDebounce     = Duration(400 * time.Millisecond)
	DefaultHistoryKeep  = 100
)

// ApplyDefaults fills unset fields with their defaults. It never overrides
// an explicitly configured value.
func ApplyDefaults(cfg *Config) {
	if cfg.Content.Dir == "" {
		cfg.Content.Dir = DefaultContentDir
	}
	if cfg.Content.Repo != nil && cfg.Content.Repo.WorkDir == "" {
		cfg.Content.Repo.WorkDir = DefaultRepoWorkDir
	}
	if cfg.Output.Dir == "" {
		cfg.Output.Dir = DefaultOutputDir
	}
	if cfg.Serve.Addr == "" {
		cfg.Serve.Addr = DefaultServeAddr
	}
	if cfg.Events != nil && cfg.Events.Subject == "" {
		cfg.Events.Subject = DefaultEventSubject
	}
	if cfg.Watch.Debounce <= 0 {
		cfg.Watch.Debounce = DefaultDebounce
	}
	if cfg.History != nil && cfg.History.Keep <= 0 {
		cfg.History.Keep = DefaultHistoryKeep
	}
	if len(cfg.Site.Locales) == 1 && cfg.Site.DefaultLocale == "" {
		cfg.Site.DefaultLocale = cfg.Site.Locales[0]
	}
}

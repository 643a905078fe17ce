package config

import (
	"fmt"

	"golang.org/x/text/language"

	apperrors "git.home.luguber.info/inful/navbuilder/internal/errors"
	"git.home.luguber.info/inful/navbuilder/internal/retry"
	"git.home.luguber.info/inful/navbuilder/internal/util/sets"
)

// Validate checks the complete configuration structure.
func Validate(cfg *Config) error {
	v := &configurationValidator{config: cfg}
	return v.validate()
}

// configurationValidator coordinates validation across configuration domains.
type configurationValidator struct {
	config *Config
}

// validate runs domain validations in dependency order.
func (cv *configurationValidator) validate() error {
	if err := cv.validateLocales(); err != nil {
		return err
	}
	if err := cv.validateContent(); err != nil {
		return err
	}
	if err := cv.validateSidebar(); err != nil {
		return err
	}
	return cv.validateEvents()
}

// validateLocales checks the locale set: non-empty, parseable BCP 47 codes,
// no duplicates, and a default that belongs to the set.
func (cv *configurationValidator) validateLocales() error {
	site := cv.config.Site
	if len(site.Locales) == 0 {
		return apperrors.ValidationFailed("site.locales", "at least one locale is required")
	}

	seen := sets.New[string]()
	for _, locale := range site.Locales {
		if _, err := language.Parse(locale); err != nil {
			return apperrors.ValidationFailed("site.locales", fmt.Sprintf("invalid locale code %q", locale))
		}
		if !seen.Add(locale) {
			return apperrors.ValidationFailed("site.locales", fmt.Sprintf("duplicate locale %q", locale))
		}
	}

	if site.DefaultLocale == "" {
		return apperrors.ValidationFailed("site.default_locale", "a default locale is required")
	}
	if !seen.Has(site.DefaultLocale) {
		return apperrors.ValidationFailed("site.default_locale",
			fmt.Sprintf("default locale %q is not in site.locales", site.DefaultLocale))
	}
	return nil
}

func (cv *configurationValidator) validateContent() error {
	content := cv.config.Content
	if content.Repo != nil && content.Repo.URL == "" {
		return apperrors.ValidationFailed("content.repo.url", "a repository URL is required when content.repo is set")
	}
	if content.Repo != nil && content.Repo.ShallowDepth < 0 {
		return apperrors.ValidationFailed("content.repo.shallow_depth", "must not be negative")
	}
	if content.Repo != nil && content.Repo.Retry != nil {
		switch content.Repo.Retry.Mode {
		case "", string(retry.BackoffFixed), string(retry.BackoffLinear), string(retry.BackoffExponential):
		default:
			return apperrors.ValidationFailed("content.repo.retry.mode",
				fmt.Sprintf("unknown backoff mode %q", content.Repo.Retry.Mode))
		}
	}
	return nil
}

func (cv *configurationValidator) validateSidebar() error {
	if len(cv.config.Sidebar) == 0 {
		return apperrors.ValidationFailed("sidebar", "at least one sidebar entry is required")
	}
	// Structural one-of validation and manifest checks happen in the
	// resolver, where the offending node's tree path can be reported.
	return nil
}

func (cv *configurationValidator) validateEvents() error {
	if cv.config.Events != nil && cv.config.Events.URL == "" {
		return apperrors.ValidationFailed("events.url", "a NATS URL is required when events is set")
	}
	return nil
}

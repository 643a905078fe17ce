// Package i18n loads optional per-locale translation bundles used for
// sidebar labels referenced by message key.
package i18n

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"

	"git.home.luguber.info/inful/navbuilder/internal/logfields"
)

// Bundle is a thin wrapper around go-i18n's Bundle. It satisfies the
// resolver's Labeler contract: lookups that miss return ok=false so the
// resolver can fall back to the entry's default label.
type Bundle struct {
	bundle *i18n.Bundle
}

// LoadBundle reads active.<locale>.toml message files from dir for each of
// the given locales. Locales without a message file are simply absent from
// the bundle; a missing dir yields an empty bundle.
func LoadBundle(dir string, locales []string, defaultLocale string) (*Bundle, error) {
	tag, err := language.Parse(defaultLocale)
	if err != nil {
		return nil, fmt.Errorf("parse default locale %q: %w", defaultLocale, err)
	}

	bundle := i18n.NewBundle(tag)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	for _, locale := range locales {
		path := filepath.Join(dir, fmt.Sprintf("active.%s.toml", locale))
		if _, statErr := os.Stat(path); os.IsNotExist(statErr) {
			slog.Debug("No translation bundle for locale", logfields.Locale(locale), logfields.Path(path))
			continue
		}
		if _, err := bundle.LoadMessageFile(path); err != nil {
			return nil, fmt.Errorf("load message file %s: %w", path, err)
		}
		slog.Debug("Loaded translation bundle", logfields.Locale(locale), logfields.Path(path))
	}

	return &Bundle{bundle: bundle}, nil
}

// Lookup renders the message identified by key for the given locale.
// go-i18n falls back to the bundle's default language when the locale has no
// message; ok is false only when no bundle at all carries the key.
func (b *Bundle) Lookup(locale, key string) (string, bool) {
	localizer := i18n.NewLocalizer(b.bundle, locale)
	msg, err := localizer.Localize(&i18n.LocalizeConfig{MessageID: key})
	if err != nil {
		return "", false
	}
	return msg, true
}

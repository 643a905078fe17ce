// Package logfields centralizes structured log field names so keys do not
// drift across packages.
package logfields

import "log/slog"

// Canonical log field name constants.
const (
	KeyLocale     = "locale"
	KeySlug       = "slug"
	KeyDirectory  = "directory"
	KeyNodePath   = "node_path"
	KeyBuildID    = "build_id"
	KeyDurationMS = "duration_ms"
	KeyPath       = "path"
	KeyFile       = "file"
	KeyCount      = "count"
	KeyURL        = "url"
	KeyName       = "name"
	KeyError      = "error"
)

// Granular helpers returning slog.Attr; callers compose as needed.
func Locale(l string) slog.Attr       { return slog.String(KeyLocale, l) }
func Slug(s string) slog.Attr         { return slog.String(KeySlug, s) }
func Directory(d string) slog.Attr    { return slog.String(KeyDirectory, d) }
func NodePath(p string) slog.Attr     { return slog.String(KeyNodePath, p) }
func BuildID(id string) slog.Attr     { return slog.String(KeyBuildID, id) }
func DurationMS(ms int64) slog.Attr   { return slog.Int64(KeyDurationMS, ms) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func File(f string) slog.Attr         { return slog.String(KeyFile, f) }
func Count(n int) slog.Attr           { return slog.Int(KeyCount, n) }
func URL(u string) slog.Attr          { return slog.String(KeyURL, u) }
func Name(n string) slog.Attr         { return slog.String(KeyName, n) }

func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}

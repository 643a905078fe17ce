package errors

import (
	"fmt"
	"log/slog"
	"os"
)

// CLIErrorAdapter handles error presentation and exit code determination for
// the navbuilder CLI.
type CLIErrorAdapter struct {
	verbose bool
	logger  *slog.Logger
}

// NewCLIErrorAdapter creates a CLI error adapter.
func NewCLIErrorAdapter(verbose bool, logger *slog.Logger) *CLIErrorAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CLIErrorAdapter{verbose: verbose, logger: logger}
}

// ExitCodeFor determines the exit code for an error.
func (a *CLIErrorAdapter) ExitCodeFor(err error) int {
	if err == nil {
		return 0
	}
	if nbe, ok := err.(*NavBuilderError); ok {
		return exitCodeForCategory(nbe.Category)
	}
	return 1
}

func exitCodeForCategory(category ErrorCategory) int {
	switch category {
	case CategoryValidation:
		return 2 // invalid usage
	case CategoryConfig:
		return 7 // configuration error
	case CategoryGit, CategoryEvents:
		return 8 // external system error
	case CategoryInternal:
		return 10 // internal error
	case CategoryContent, CategoryResolve, CategoryFileSystem:
		return 11 // build error
	case CategoryStorage:
		return 12 // storage error
	default:
		return 1
	}
}

// FormatError formats an error for user-facing display.
func (a *CLIErrorAdapter) FormatError(err error) string {
	if err == nil {
		return ""
	}
	nbe, ok := err.(*NavBuilderError)
	if !ok {
		return fmt.Sprintf("Error: %v", err)
	}
	if a.verbose {
		return nbe.Error()
	}
	// Configuration-correctness failures carry their own diagnostics (node
	// path, rule violated) in the cause; show it even non-verbose.
	if nbe.Cause != nil && (nbe.Category == CategoryResolve || nbe.Category == CategoryConfig || nbe.Category == CategoryValidation) {
		return fmt.Sprintf("%s: %v", nbe.Message, nbe.Cause)
	}
	return fmt.Sprintf("%s: %s", nbe.Category, nbe.Message)
}

// HandleError prints an error and exits the process with its code.
// A nil error is a no-op.
func (a *CLIErrorAdapter) HandleError(err error) {
	if err == nil {
		return
	}
	if a.shouldLog(err) {
		a.logError(err)
	}
	fmt.Fprintf(os.Stderr, "%s\n", a.FormatError(err))
	os.Exit(a.ExitCodeFor(err))
}

func (a *CLIErrorAdapter) shouldLog(err error) bool {
	if a.verbose {
		return true
	}
	if nbe, ok := err.(*NavBuilderError); ok {
		return nbe.Category == CategoryInternal || nbe.Severity == SeverityFatal
	}
	return true
}

func (a *CLIErrorAdapter) logError(err error) {
	nbe, ok := err.(*NavBuilderError)
	if !ok {
		a.logger.Error("Unclassified error", "error", err)
		return
	}
	attrs := []slog.Attr{slog.String("category", string(nbe.Category))}
	for k, v := range nbe.Context {
		attrs = append(attrs, slog.Any(k, v))
	}
	a.logger.LogAttrs(nil, levelForSeverity(nbe.Severity), nbe.Message, attrs...)
}

func levelForSeverity(severity ErrorSeverity) slog.Level {
	switch severity {
	case SeverityWarning:
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}

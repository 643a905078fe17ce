package errors

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorFormatting(t *testing.T) {
	plain := New(CategoryConfig, SeverityFatal, "missing locales")
	assert.Equal(t, "config (fatal): missing locales", plain.Error())

	cause := stderrors.New("boom")
	wrapped := Wrap(cause, CategoryResolve, SeverityFatal, "resolution failed")
	assert.Contains(t, wrapped.Error(), "boom")
	assert.ErrorIs(t, wrapped, cause)
}

func TestWithContext(t *testing.T) {
	err := ValidationFailed("locales", "empty").WithContext("extra", 42)
	require.NotNil(t, err.Context)
	assert.Equal(t, "locales", err.Context["field"])
	assert.Equal(t, 42, err.Context["extra"])
}

func TestGetCategory(t *testing.T) {
	assert.Equal(t, CategoryGit, GetCategory(GitSourceError("docs", stderrors.New("x"))))
	assert.Equal(t, CategoryInternal, GetCategory(stderrors.New("anonymous")))
}

func TestExitCodes(t *testing.T) {
	a := NewCLIErrorAdapter(false, nil)
	assert.Equal(t, 0, a.ExitCodeFor(nil))
	assert.Equal(t, 1, a.ExitCodeFor(stderrors.New("plain")))
	assert.Equal(t, 2, a.ExitCodeFor(ValidationFailed("f", "r")))
	assert.Equal(t, 7, a.ExitCodeFor(ConfigNotFound("x.yaml")))
	assert.Equal(t, 8, a.ExitCodeFor(GitSourceError("docs", stderrors.New("x"))))
	assert.Equal(t, 11, a.ExitCodeFor(ResolveError(stderrors.New("dangling"))))
	assert.Equal(t, 12, a.ExitCodeFor(StorageError("append", stderrors.New("x"))))
}

func TestFormatErrorShowsResolveCause(t *testing.T) {
	a := NewCLIErrorAdapter(false, nil)
	err := ResolveError(stderrors.New(`sidebar[1]: slug "guides/ghost" not found in content manifest`))
	msg := a.FormatError(err)
	assert.Contains(t, msg, "sidebar[1]")
	assert.Contains(t, msg, "guides/ghost")
}

package frontmatter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTypedFields(t *testing.T) {
	content := []byte(`---
title: Singleton
weight: 3
icon: puzzle
nav_translations:
  fr: Singleton (FR)
---
# Singleton

Body text.
`)
	fields, body, err := Parse(content)
	require.NoError(t, err)
	assert.Equal(t, "Singleton", fields.Title)
	assert.Equal(t, 3, fields.Weight)
	assert.Equal(t, "puzzle", fields.Icon)
	assert.Equal(t, "Singleton (FR)", fields.NavTranslations["fr"])
	assert.False(t, fields.Draft)
	assert.Contains(t, string(body), "# Singleton")
}

func TestParseNoFrontMatter(t *testing.T) {
	content := []byte("# Just a heading\n\nText.\n")
	fields, body, err := Parse(content)
	require.NoError(t, err)
	assert.Equal(t, Fields{}, fields)
	assert.Equal(t, content, body)
}

func TestSplitEmptyFrontMatter(t *testing.T) {
	content := []byte("---\n---\nbody\n")
	fm, body, had, err := Split(content)
	require.NoError(t, err)
	assert.True(t, had)
	assert.Empty(t, fm)
	assert.Equal(t, "body\n", string(body))
}

func TestSplitCRLF(t *testing.T) {
	content := []byte("---\r\ntitle: Windows\r\n---\r\nbody\r\n")
	fields, body, err := Parse(content)
	require.NoError(t, err)
	assert.Equal(t, "Windows", fields.Title)
	assert.Equal(t, "body\r\n", string(body))
}

func TestSplitMissingClosingDelimiter(t *testing.T) {
	content := []byte("---\ntitle: Broken\nno closing\n")
	_, _, _, err := Split(content)
	assert.ErrorIs(t, err, ErrMissingClosingDelimiter)
}

func TestParseDraft(t *testing.T) {
	content := []byte("---\ntitle: WIP\ndraft: true\n---\ntext\n")
	fields, _, err := Parse(content)
	require.NoError(t, err)
	assert.True(t, fields.Draft)
}

package content

// Sentinel errors for content discovery, enabling consistent classification
// of discovery-stage failures.

import "errors"

var (
	// ErrContentDirNotFound indicates the configured content directory does not exist.
	ErrContentDirNotFound = errors.New("content directory not found")

	// ErrContentWalkFailed indicates filesystem traversal of the content directory failed.
	ErrContentWalkFailed = errors.New("content directory walk failed")

	// ErrFileReadFailed indicates reading a discovered content file failed.
	ErrFileReadFailed = errors.New("content file read failed")

	// ErrFrontMatterInvalid indicates a content file carries unparseable front matter.
	ErrFrontMatterInvalid = errors.New("invalid front matter")
)

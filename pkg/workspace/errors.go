package workspace

import "errors"

var (
	// ErrAlreadyInitialized is returned by Init when the report root
	// exists and force is not set.
	ErrAlreadyInitialized = errors.New("workspace: directory already initialized")

	// ErrNotInitialized is returned by commands that need an initialized
	// report root.
	ErrNotInitialized = errors.New("workspace: directory not initialized")

	// ErrEmptyFindings is returned when the findings directory holds no
	// findings.
	ErrEmptyFindings = errors.New("workspace: findings directory is empty")
)

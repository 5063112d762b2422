package config

import "errors"

// Sentinel errors for configuration failure modes.
// Callers should use errors.Is() to check for these.
var (
	// ErrReadConfig indicates config.json or a section file could not be
	// read or decoded.
	ErrReadConfig = errors.New("config: cannot read configuration")

	// ErrInvalidURL indicates the template or stylesheet URL is not an
	// absolute URL with a scheme and a host.
	ErrInvalidURL = errors.New("config: invalid url")

	// ErrMissingKey indicates config.json lacks a required key.
	ErrMissingKey = errors.New("config: missing required key")

	// ErrInvalidSettings indicates compiloor.yaml holds an unusable value.
	ErrInvalidSettings = errors.New("config: invalid settings")
)

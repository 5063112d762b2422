package report

import "errors"

var (
	// ErrMissingKey indicates a config key the report needs is absent.
	ErrMissingKey = errors.New("report: missing config key")

	// ErrStageOrder indicates a stage ran before a stage it depends on.
	ErrStageOrder = errors.New("report: stage ran out of order")
)

// Package exitcode maps compile errors to process exit codes.
//
// Exit codes:
//   - 0: Success
//   - 1: Any fatal condition (state, validation or I/O error)
package exitcode

import (
	"context"
	"errors"
	"fmt"

	"github.com/Wardens-OSS-Club/compiloor/pkg/browser"
	"github.com/Wardens-OSS-Club/compiloor/pkg/config"
	"github.com/Wardens-OSS-Club/compiloor/pkg/fetch"
	"github.com/Wardens-OSS-Club/compiloor/pkg/finding"
	"github.com/Wardens-OSS-Club/compiloor/pkg/pagination"
	"github.com/Wardens-OSS-Club/compiloor/pkg/report"
	"github.com/Wardens-OSS-Club/compiloor/pkg/workspace"
)

// Code is a process exit code.
type Code int

const (
	// Success indicates the command completed.
	Success Code = 0
	// Failure indicates the command aborted.
	Failure Code = 1
)

// Kind classifies a fatal error.
type Kind int

const (
	KindNone Kind = iota
	// KindState is a report directory in the wrong state for the command.
	KindState
	// KindValidation is bad input: config, settings or finding files.
	KindValidation
	// KindIO is a filesystem, network, browser or PDF failure.
	KindIO
	// KindInterrupted is a run canceled by a signal.
	KindInterrupted
)

var kindStrings = map[Kind]string{
	KindNone:        "success",
	KindState:       "state_error",
	KindValidation:  "validation_error",
	KindIO:          "io_error",
	KindInterrupted: "interrupted",
}

var kindDescriptions = map[Kind]string{
	KindNone:        "Completed successfully",
	KindState:       "Report directory is not in the required state",
	KindValidation:  "Invalid configuration or finding",
	KindIO:          "File, network or PDF operation failed",
	KindInterrupted: "Interrupted by user or signal",
}

var (
	stateErrors = []error{
		workspace.ErrAlreadyInitialized,
		workspace.ErrNotInitialized,
	}
	validationErrors = []error{
		workspace.ErrEmptyFindings,
		config.ErrInvalidURL,
		config.ErrMissingKey,
		config.ErrInvalidSettings,
		finding.ErrMalformedFinding,
		finding.ErrInvalidStatus,
		finding.ErrInvalidID,
		finding.ErrInvalidSeverity,
		report.ErrMissingKey,
	}
	interruptErrors = []error{
		context.Canceled,
	}
)

// Classify returns the kind of err. Errors outside the known taxonomy,
// including fetch, browser and PDF failures, are I/O errors.
func Classify(err error) Kind {
	switch {
	case err == nil:
		return KindNone
	case isAny(err, interruptErrors):
		return KindInterrupted
	case isAny(err, stateErrors):
		return KindState
	case isAny(err, validationErrors):
		return KindValidation
	}
	return KindIO
}

// FromError returns the exit code for err and a reason for it.
func FromError(err error) (Code, string) {
	kind := Classify(err)
	if kind == KindNone {
		return Success, kindDescriptions[kind]
	}
	return Failure, kindDescriptions[kind]
}

// String returns the identifier of k.
func (k Kind) String() string {
	if s, ok := kindStrings[k]; ok {
		return s
	}
	return fmt.Sprintf("unknown_kind_%d", int(k))
}

// IsIO reports whether err is one of the known I/O failures. Unknown errors
// are classified as I/O too; this only distinguishes the named ones.
func IsIO(err error) bool {
	return isAny(err, []error{
		config.ErrReadConfig,
		fetch.ErrFetch,
		browser.ErrNoBrowser,
		pagination.ErrOpen,
		pagination.ErrEdit,
	})
}

func isAny(err error, targets []error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// Package exception provides the custom error type and error handling
// utilities for the movieflow pipeline engine. It standardizes errors that
// occur during pipeline execution so that they can be classified by the
// stage that produced them and by whether they are transient.
package exception

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

// Well-known stage identifiers. Tasks attach one of these to the errors they
// return so that run failures can be attributed to a pipeline stage.
const (
	StageGeneration = "generation"
	StageTransform  = "transform"
	StageMerge      = "merge"
	StageLoad       = "load"
	StageAnalysis   = "analysis"
	StageCleanup    = "cleanup"
)

// PipelineError is a custom error type for failures during pipeline
// execution. It holds the stage where the error occurred, a message, the
// wrapped original error, and a flag indicating whether the error is
// transient (worth retrying by an outer scheduler).
type PipelineError struct {
	// Stage indicates where the error occurred (e.g. "generation", "load").
	Stage string
	// Message is a concise description of the error.
	Message string
	// OriginalErr is the wrapped original error.
	OriginalErr error
	// isTransient indicates whether this error is transient.
	isTransient bool
	// StackTrace is the stack trace at the time of the error (for debugging).
	StackTrace string
}

// NewPipelineError creates a new PipelineError instance.
func NewPipelineError(stage, message string, originalErr error, isTransient bool) *PipelineError {
	buf := make([]byte, 2048)
	n := runtime.Stack(buf, false)

	return &PipelineError{
		Stage:       stage,
		Message:     message,
		OriginalErr: originalErr,
		isTransient: isTransient,
		StackTrace:  string(buf[:n]),
	}
}

// NewPipelineErrorf creates a new PipelineError instance using a format
// string. An optional error may be passed as the last variadic argument, in
// which case it is extracted and wrapped instead of being formatted.
func NewPipelineErrorf(stage, format string, a ...interface{}) *PipelineError {
	var originalErr error
	args := a

	if len(args) > 0 {
		if err, ok := args[len(args)-1].(error); ok {
			originalErr = err
			args = args[:len(args)-1]
		}
	}

	return NewPipelineError(stage, fmt.Sprintf(format, args...), originalErr, false)
}

// Error implements the error interface.
func (e *PipelineError) Error() string {
	if e.OriginalErr != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Stage, e.Message, e.OriginalErr)
	}
	return fmt.Sprintf("[%s] %s", e.Stage, e.Message)
}

// Unwrap returns the original error for errors.Unwrap.
func (e *PipelineError) Unwrap() error {
	return e.OriginalErr
}

// IsTransient returns whether this error is transient.
func (e *PipelineError) IsTransient() bool {
	return e.isTransient
}

// IsPipelineError determines if the given error is of type PipelineError.
func IsPipelineError(err error) bool {
	if err == nil {
		return false
	}
	var pe *PipelineError
	return errors.As(err, &pe)
}

// IsTemporary determines if an error is temporary (network error, temporary
// DB connection issue). For a PipelineError the IsTransient flag takes
// precedence.
func IsTemporary(err error) bool {
	if err == nil {
		return false
	}
	var pe *PipelineError
	if errors.As(err, &pe) {
		return pe.IsTransient()
	}
	errStr := err.Error()
	return strings.Contains(errStr, "timeout") ||
		strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "EOF")
}

// StageOf returns the stage attached to an error, or "" when the error does
// not carry one.
func StageOf(err error) string {
	var pe *PipelineError
	if errors.As(err, &pe) {
		return pe.Stage
	}
	return ""
}

// ExtractErrorMessage extracts the error message string from an error.
// For a PipelineError it returns the cleaner Message field; otherwise it
// returns the standard Error() string.
func ExtractErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	if pe, ok := err.(*PipelineError); ok {
		return pe.Message
	}
	return err.Error()
}

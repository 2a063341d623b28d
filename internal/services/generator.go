package services

import (
	"context"
	"errors"
	"fmt"
)

// Generator turns a job post into a generated project plan.
// Implementations make exactly one upstream call per Generate and never retry.
// Failures are returned as *GenerationError.
type Generator interface {
	Generate(ctx context.Context, input string) (string, error)
}

type GenerationErrorKind string

const (
	// KindServiceUnreachable covers transport failures, timeouts and non-2xx statuses.
	KindServiceUnreachable GenerationErrorKind = "service_unreachable"
	// KindMalformedResponse means the upstream answered but not in the expected shape.
	KindMalformedResponse GenerationErrorKind = "malformed_response"
)

type GenerationError struct {
	Kind GenerationErrorKind
	Err  error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generation failed (%s): %v", e.Kind, e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// UserMessage is the caller-facing description of the failure. It never carries upstream detail.
func (e *GenerationError) UserMessage() string {
	if e.Kind == KindMalformedResponse {
		return "Invalid response format from AI service."
	}
	return "Failed to connect to AI service."
}

func unreachable(format string, args ...any) *GenerationError {
	return &GenerationError{Kind: KindServiceUnreachable, Err: fmt.Errorf(format, args...)}
}

func malformed(format string, args ...any) *GenerationError {
	return &GenerationError{Kind: KindMalformedResponse, Err: fmt.Errorf(format, args...)}
}

// AsGenerationError extracts a *GenerationError from err. Any other error is
// treated as the upstream being unreachable.
func AsGenerationError(err error) *GenerationError {
	var genErr *GenerationError
	if errors.As(err, &genErr) {
		return genErr
	}
	return &GenerationError{Kind: KindServiceUnreachable, Err: err}
}

package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"alfredoptarigan/job-project-generator/internal/models"
	"alfredoptarigan/job-project-generator/internal/repositories"
)

var (
	ErrEmptyInput   = errors.New("input cannot be empty")
	ErrInputTooLong = errors.New("input is too long")
)

type PipelineErrorKind string

const (
	KindEmptyInput      PipelineErrorKind = "empty_input"
	KindInputTooLong    PipelineErrorKind = "input_too_long"
	KindUpstreamFailure PipelineErrorKind = "upstream_failure"
	KindStorageFailure  PipelineErrorKind = "storage_failure"
)

type PipelineError struct {
	Kind PipelineErrorKind
	// Detail is the generation error kind for upstream failures.
	Detail string
	Err    error
}

func (e *PipelineError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s (%s): %v", e.Kind, e.Detail, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *PipelineError) Unwrap() error {
	return e.Err
}

// IsClientError reports whether the caller's input caused the failure.
func (e *PipelineError) IsClientError() bool {
	return e.Kind == KindEmptyInput || e.Kind == KindInputTooLong
}

// UserMessage is safe to show to the caller; upstream and storage detail stays in the logs.
func (e *PipelineError) UserMessage() string {
	switch e.Kind {
	case KindEmptyInput:
		return "Input cannot be empty!"
	case KindInputTooLong:
		return e.Err.Error()
	case KindUpstreamFailure:
		return AsGenerationError(e.Err).UserMessage()
	default:
		return "Failed to save generated project."
	}
}

// Pipeline runs one submit cycle: validate, generate, persist.
type Pipeline interface {
	Submit(ctx context.Context, rawInput string) (uint, error)
}

type pipeline struct {
	repo          repositories.ArtifactRepository
	generator     Generator
	maxInputChars int
	logger        *slog.Logger
	now           func() time.Time
}

func NewPipeline(
	repo repositories.ArtifactRepository,
	generator Generator,
	maxInputChars int,
	logger *slog.Logger,
) Pipeline {
	return &pipeline{
		repo:          repo,
		generator:     generator,
		maxInputChars: maxInputChars,
		logger:        logger,
		now:           time.Now,
	}
}

// Submit implements Pipeline. An artifact is stored only when generation succeeded;
// every failure leaves the store untouched.
func (p *pipeline) Submit(ctx context.Context, rawInput string) (uint, error) {
	input := strings.TrimSpace(rawInput)
	if input == "" {
		return 0, &PipelineError{Kind: KindEmptyInput, Err: ErrEmptyInput}
	}
	if n := utf8.RuneCountInString(input); p.maxInputChars > 0 && n > p.maxInputChars {
		return 0, &PipelineError{
			Kind: KindInputTooLong,
			Err:  fmt.Errorf("%w: %d characters, limit is %d", ErrInputTooLong, n, p.maxInputChars),
		}
	}

	p.logger.Info("generating project", "input_chars", utf8.RuneCountInString(input))

	generated, err := p.generator.Generate(ctx, input)
	if err != nil {
		genErr := AsGenerationError(err)
		p.logger.Warn("generation failed", "kind", genErr.Kind, "error", genErr.Err)
		return 0, &PipelineError{Kind: KindUpstreamFailure, Detail: string(genErr.Kind), Err: genErr}
	}

	artifact := &models.Artifact{
		InputText:     input,
		GeneratedText: generated,
		CreatedAt:     p.now().UTC(),
	}
	if err := p.repo.Create(ctx, artifact); err != nil {
		p.logger.Error("failed to store generated project", "error", err)
		return 0, &PipelineError{Kind: KindStorageFailure, Err: err}
	}

	p.logger.Info("project stored", "id", artifact.ID, "generated_chars", len(generated))
	return artifact.ID, nil
}

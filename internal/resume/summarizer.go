// Package resume turns uploaded resume PDFs into short generated summaries
// stored per registration number.
package resume

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/shrimpsizemoose/placement-tracker/internal/apperrors"
	"github.com/shrimpsizemoose/placement-tracker/internal/metrics"
	"github.com/shrimpsizemoose/placement-tracker/internal/models"
)

const (
	DefaultTimeout = 30 * time.Second

	promptPrefix = "Summarize the following resume in 10-12 lines, covering skills, experience, education, and projects:\n\n"
)

type Extractor interface {
	ExtractText(data []byte) (string, error)
}

type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type SummaryStore interface {
	GetResumeSummary(ctx context.Context, regNumber string) (*models.ResumeSummary, error)
	SaveResumeSummary(ctx context.Context, regNumber, summary string) (bool, error)
}

type Summarizer struct {
	store     SummaryStore
	extractor Extractor
	generator Generator
	timeout   time.Duration
}

func NewSummarizer(store SummaryStore, extractor Extractor, generator Generator, timeout time.Duration) *Summarizer {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Summarizer{
		store:     store,
		extractor: extractor,
		generator: generator,
		timeout:   timeout,
	}
}

func Prompt(text string) string {
	return promptPrefix + text
}

// Summarize extracts the text of data, asks the generator for a summary and
// stores it under regNumber, replacing any previous one. Nothing is stored
// when a step fails. The generator is called at most once.
func (s *Summarizer) Summarize(ctx context.Context, regNumber string, data []byte) (string, error) {
	regNumber = strings.TrimSpace(regNumber)
	if regNumber == "" {
		return "", apperrors.NewValidationError("registrationNumber", "registrationNumber is required")
	}
	if len(data) == 0 {
		metrics.ResumeSummariesTotal.WithLabelValues("missing_file").Inc()
		return "", apperrors.ErrMissingFile
	}

	text, err := s.extractor.ExtractText(data)
	if err != nil {
		metrics.ResumeSummariesTotal.WithLabelValues("extraction_failed").Inc()
		logger.Error.Printf("Text extraction failed for %s: %v", regNumber, err)
		if errors.Is(err, apperrors.ErrMissingFile) || errors.Is(err, apperrors.ErrExtractionFailed) {
			return "", err
		}
		return "", fmt.Errorf("%w: %v", apperrors.ErrExtractionFailed, err)
	}
	if strings.TrimSpace(text) == "" {
		metrics.ResumeSummariesTotal.WithLabelValues("extraction_failed").Inc()
		return "", fmt.Errorf("%w: no text", apperrors.ErrExtractionFailed)
	}

	summary, err := s.generate(ctx, Prompt(text))
	if err != nil {
		metrics.ResumeSummariesTotal.WithLabelValues("summarization_failed").Inc()
		logger.Error.Printf("Summarization failed for %s: %v", regNumber, err)
		return "", err
	}

	created, err := s.store.SaveResumeSummary(ctx, regNumber, summary)
	if err != nil {
		metrics.ResumeSummariesTotal.WithLabelValues("storage_error").Inc()
		return "", err
	}

	outcome := "updated"
	if created {
		outcome = "created"
	}
	metrics.ResumeSummariesTotal.WithLabelValues(outcome).Inc()
	logger.Info.Printf("Stored resume summary for %s (%s)", regNumber, outcome)

	return summary, nil
}

func (s *Summarizer) generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	summary, err := s.generator.Generate(ctx, prompt)
	metrics.ResumeSummaryDuration.Observe(time.Since(start).Seconds())

	if err == nil && ctx.Err() != nil {
		err = ctx.Err()
	}
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", fmt.Errorf("%w: timed out after %s", apperrors.ErrSummarizationFailed, s.timeout)
		}
		return "", fmt.Errorf("%w: %v", apperrors.ErrSummarizationFailed, err)
	}

	summary = strings.TrimSpace(summary)
	if summary == "" {
		return "", fmt.Errorf("%w: empty response", apperrors.ErrSummarizationFailed)
	}
	return summary, nil
}

func (s *Summarizer) Get(ctx context.Context, regNumber string) (*models.ResumeSummary, error) {
	regNumber = strings.TrimSpace(regNumber)
	if regNumber == "" {
		return nil, apperrors.NewValidationError("registrationNumber", "registrationNumber is required")
	}

	summary, err := s.store.GetResumeSummary(ctx, regNumber)
	if err != nil {
		return nil, err
	}
	if summary == nil {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("no resume summary for %s", regNumber))
	}
	return summary, nil
}

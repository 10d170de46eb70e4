// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract pulls structured mechanical-property measurements out
// of paper text by prompting a chat-completion model and validating its
// JSON response.
package extract

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/pdiddy/mechprops/internal/httputil"
	"github.com/pdiddy/mechprops/internal/pdftext"
	"github.com/pdiddy/mechprops/pkg/types"
)

// defaultMaxTextChars bounds the text submitted to the model. Tables
// past the cutoff are not extracted.
const defaultMaxTextChars = 8000

// Backend abstracts the chat-completion API so tests can supply a mock.
type Backend interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// Extractor is the capability set every property extractor provides.
// LLMExtractor is the only implementation today; a rule-based extractor
// can slot in behind the same interface without touching the pipeline.
type Extractor interface {
	// ExtractText returns the plain text of a PDF.
	ExtractText(pdfPath string) (string, error)

	// ExtractProperties returns the raw records the model reported for
	// the given text. An empty slice is a valid outcome.
	ExtractProperties(ctx context.Context, text string, meta types.PaperMetadata) ([]map[string]any, error)

	// ExtractFromPaper composes text extraction, property extraction,
	// and record coercion for one paper.
	ExtractFromPaper(ctx context.Context, pdfPath string, meta types.PaperMetadata) (types.ExtractedData, error)
}

// LLMExtractor implements Extractor on top of a chat-completion Backend.
type LLMExtractor struct {
	backend Backend
	cfg     types.ExtractionConfig
	out     io.Writer

	// textFn extracts PDF text. Tests substitute a stub so no real PDF
	// is needed.
	textFn func(path string) (string, error)

	// retry is the backoff schedule for model calls. Tests shrink the
	// delays.
	retry httputil.Policy
}

// NewLLMExtractor builds an LLMExtractor over the given backend.
func NewLLMExtractor(backend Backend, cfg types.ExtractionConfig, w io.Writer) *LLMExtractor {
	return &LLMExtractor{
		backend: backend,
		cfg:     cfg,
		out:     w,
		textFn:  pdftext.ExtractText,
		retry:   httputil.Policy{MaxAttempts: cfg.MaxRetries},
	}
}

// ExtractText returns the embedded text of the PDF at path.
func (e *LLMExtractor) ExtractText(pdfPath string) (string, error) {
	return e.textFn(pdfPath)
}

// ExtractProperties submits the truncated paper text to the model and
// returns the raw records from its JSON response. The whole call,
// including the JSON decode, is retried per the backoff
// policy; a response with no recognizable record array yields an empty
// slice, not an error.
func (e *LLMExtractor) ExtractProperties(ctx context.Context, text string, meta types.PaperMetadata) ([]map[string]any, error) {
	maxChars := e.cfg.MaxTextChars
	if maxChars <= 0 {
		maxChars = defaultMaxTextChars
	}
	if len(text) > maxChars {
		text = text[:maxChars]
	}

	user, err := renderUserPrompt(meta.Title, text)
	if err != nil {
		return nil, fmt.Errorf("rendering prompt: %w", err)
	}

	var records []map[string]any
	err = httputil.Retry(ctx, e.retry, func() error {
		content, err := e.backend.Complete(ctx, systemPrompt, user)
		if err != nil {
			return err
		}
		records, err = DecodeProperties(content)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("llm extraction: %w", err)
	}
	return records, nil
}

// ExtractFromPaper runs the full extraction for one paper. Raw records
// failing coercion or validation are dropped with a warning; the rest
// become the paper's MechanicalProperty list, tagged "llm" and stamped
// at construction.
func (e *LLMExtractor) ExtractFromPaper(ctx context.Context, pdfPath string, meta types.PaperMetadata) (types.ExtractedData, error) {
	fmt.Fprintf(e.out, "  extracting text from %s\n", pdfPath)
	text, err := e.ExtractText(pdfPath)
	if err != nil {
		return types.ExtractedData{}, fmt.Errorf("extracting text: %w", err)
	}

	fmt.Fprintf(e.out, "  extracting properties using %s\n", e.cfg.Model)
	raw, err := e.ExtractProperties(ctx, text, meta)
	if err != nil {
		return types.ExtractedData{}, err
	}

	properties := []types.MechanicalProperty{}
	for _, rec := range raw {
		prop, err := CoerceRecord(rec)
		if err != nil {
			fmt.Fprintf(e.out, "  dropping record: %v\n", err)
			continue
		}
		properties = append(properties, prop)
	}

	fmt.Fprintf(e.out, "  extracted %d mechanical properties\n", len(properties))

	return types.ExtractedData{
		PaperMetadata:        meta,
		MechanicalProperties: properties,
		ExtractionTimestamp:  time.Now(),
		ExtractionMethod:     "llm",
	}, nil
}

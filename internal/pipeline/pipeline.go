// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline drives the per-paper stages in order (metadata,
// PDF, extraction) and assembles the unified results document. A
// failure at any stage skips that paper; the batch always runs to the
// end.
package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/pdiddy/mechprops/internal/acquire"
	"github.com/pdiddy/mechprops/internal/crossref"
	"github.com/pdiddy/mechprops/internal/extract"
	"github.com/pdiddy/mechprops/internal/store"
	"github.com/pdiddy/mechprops/pkg/types"
)

// MetadataClient is the slice of the crossref client the pipeline uses.
type MetadataClient interface {
	GetWork(ctx context.Context, doi string) (*crossref.Work, error)
}

// Pipeline holds the stage collaborators. Store is optional; nil
// disables archiving.
type Pipeline struct {
	Metadata  MetadataClient
	Fetcher   acquire.Fetcher
	Extractor extract.Extractor
	Store     *store.Store
	Out       io.Writer
}

// Run processes each paper in order and returns the unified results.
// Papers are independent: one failing never aborts the rest, and only
// papers that complete every stage appear in the output.
func (p *Pipeline) Run(ctx context.Context, papers []types.PaperRef) types.UnifiedResults {
	data := []types.ExtractedData{}
	failed := 0

	for _, ref := range papers {
		fmt.Fprintf(p.Out, "\nprocessing: %s\nDOI: %s\n", shortTitle(ref.Title), ref.DOI)

		result, err := p.processPaper(ctx, ref)
		if err != nil {
			fmt.Fprintf(p.Out, "failed: %s (%v)\n", ref.DOI, err)
			failed++
			continue
		}
		data = append(data, result)

		if p.Store != nil {
			if err := p.Store.Save(result); err != nil {
				fmt.Fprintf(p.Out, "  warning: archiving %s failed: %v\n", ref.DOI, err)
			}
		}
	}

	results := BuildResults(data)
	fmt.Fprintf(p.Out, "\nBatch summary: %d processed, %d failed, %d properties extracted\n",
		results.PapersProcessed, failed, results.TotalPropertiesExtracted)
	return results
}

// processPaper runs the three stages for one paper.
func (p *Pipeline) processPaper(ctx context.Context, ref types.PaperRef) (types.ExtractedData, error) {
	fmt.Fprintln(p.Out, "fetching metadata...")
	work, err := p.Metadata.GetWork(ctx, ref.DOI)
	if err != nil {
		return types.ExtractedData{}, fmt.Errorf("fetching metadata: %w", err)
	}
	info := crossref.ExtractPaperInfo(work)

	fmt.Fprintln(p.Out, "downloading PDF...")
	pdfPath, err := p.Fetcher.FetchPDF(ctx, ref.DOI)
	if err != nil {
		return types.ExtractedData{}, fmt.Errorf("downloading PDF: %w", err)
	}

	if err := acquire.WriteMetadataSidecar(pdfPath, info.PaperMetadata); err != nil {
		fmt.Fprintf(p.Out, "  warning: writing metadata sidecar: %v\n", err)
	}

	return p.Extractor.ExtractFromPaper(ctx, pdfPath, info.PaperMetadata)
}

// BuildResults assembles the output document from the per-paper results.
// papers_processed counts only completed papers; the property total is
// the sum over their record lists.
func BuildResults(data []types.ExtractedData) types.UnifiedResults {
	total := 0
	for _, d := range data {
		total += len(d.MechanicalProperties)
	}
	return types.UnifiedResults{
		ExtractionDate:           time.Now(),
		PapersProcessed:          len(data),
		TotalPropertiesExtracted: total,
		Data:                     data,
	}
}

// WriteResults serializes the results document as pretty-printed JSON
// (2-space indent). Timestamps render as RFC 3339 strings.
func WriteResults(path string, results types.UnifiedResults) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}

	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling results: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing results: %w", err)
	}
	return nil
}

// shortTitle truncates long titles for progress output.
func shortTitle(title string) string {
	const limit = 50
	if len(title) <= limit {
		return title
	}
	return title[:limit] + "..."
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package acquire obtains paper PDFs. It tries an interactive headless
// browser strategy first and falls back to a direct-link download for
// open-access publishers. Both strategies are best-effort: exhausting
// them yields ErrUnavailable, a soft per-paper failure.
package acquire

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/mechprops/internal/crossref"
	"github.com/pdiddy/mechprops/pkg/types"
)

// ErrUnavailable indicates no strategy could produce a PDF. The paper
// is excluded from results; the batch continues.
var ErrUnavailable = errors.New("acquire: no PDF available")

// Fetcher obtains a paper's PDF and returns the local file path. The
// browser-driven implementation is deliberately isolated behind this
// interface: it scrapes third-party publisher UI and is the most
// volatile part of the pipeline.
type Fetcher interface {
	FetchPDF(ctx context.Context, doi string) (string, error)
}

// workResolver is the slice of the crossref client the fallback needs.
type workResolver interface {
	GetWork(ctx context.Context, doi string) (*crossref.Work, error)
}

// PDFFetcher implements Fetcher with the browser-then-direct strategy
// policy.
type PDFFetcher struct {
	cfg        types.AcquisitionConfig
	resolver   workResolver
	httpClient *http.Client
	out        io.Writer

	// browser runs the interactive strategy. Swapped out in tests,
	// where no Chrome binary is available.
	browser func(ctx context.Context, doi, targetPath string) (string, error)
}

// NewPDFFetcher builds a PDFFetcher. The resolver is used by the
// direct-link fallback to find the publisher landing page.
func NewPDFFetcher(cfg types.AcquisitionConfig, resolver workResolver, w io.Writer) *PDFFetcher {
	f := &PDFFetcher{
		cfg:        cfg,
		resolver:   resolver,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		out:        w,
	}
	f.browser = f.downloadViaBrowser
	return f
}

// Filename returns the canonical PDF filename for a DOI: slashes become
// underscores so the identifier survives as a single path component.
func Filename(doi string) string {
	return strings.ReplaceAll(crossref.NormalizeDOI(doi), "/", "_") + ".pdf"
}

// FetchPDF downloads the paper's PDF into the configured directory and
// returns its path. An already-present file is reused without a
// download. Both strategies failing returns ErrUnavailable.
func (f *PDFFetcher) FetchPDF(ctx context.Context, doi string) (string, error) {
	doi = crossref.NormalizeDOI(doi)

	if err := os.MkdirAll(f.cfg.PDFDir, 0o755); err != nil {
		return "", fmt.Errorf("creating pdf directory: %w", err)
	}

	targetPath := filepath.Join(f.cfg.PDFDir, Filename(doi))
	if _, err := os.Stat(targetPath); err == nil {
		fmt.Fprintf(f.out, "skipped: %s (already exists)\n", filepath.Base(targetPath))
		return targetPath, nil
	}

	path, err := f.browser(ctx, doi, targetPath)
	if err == nil {
		return path, nil
	}
	fmt.Fprintf(f.out, "  browser strategy failed: %v\n", err)

	path, err = f.downloadDirect(ctx, doi, targetPath)
	if err == nil {
		return path, nil
	}
	fmt.Fprintf(f.out, "  direct-link fallback failed: %v\n", err)

	return "", fmt.Errorf("%w: %s", ErrUnavailable, doi)
}

// WriteMetadataSidecar writes the paper metadata as a YAML file next to
// the downloaded PDF.
func WriteMetadataSidecar(pdfPath string, meta types.PaperMetadata) error {
	data, err := yaml.Marshal(meta)
	if err != nil {
		return fmt.Errorf("marshaling metadata: %w", err)
	}
	sidecar := strings.TrimSuffix(pdfPath, filepath.Ext(pdfPath)) + ".yaml"
	return os.WriteFile(sidecar, data, 0o644)
}

// ReadMetadataSidecar loads a previously written sidecar for a PDF.
func ReadMetadataSidecar(pdfPath string) (types.PaperMetadata, error) {
	sidecar := strings.TrimSuffix(pdfPath, filepath.Ext(pdfPath)) + ".yaml"
	data, err := os.ReadFile(sidecar)
	if err != nil {
		return types.PaperMetadata{}, err
	}
	var meta types.PaperMetadata
	if err := yaml.Unmarshal(data, &meta); err != nil {
		return types.PaperMetadata{}, fmt.Errorf("parsing sidecar %s: %w", sidecar, err)
	}
	return meta, nil
}

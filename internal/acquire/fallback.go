// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package acquire

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// mdpiPrefix marks DOIs eligible for the direct-link fallback: MDPI
// serves every article's PDF at a fixed suffix of its landing page.
const mdpiPrefix = "10.3390"

// fallbackUserAgent is a browser-like identification header; the
// publisher rejects obviously scripted clients.
const fallbackUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36"

// downloadChunkSize is the buffer used when streaming the response body.
const downloadChunkSize = 8192

// downloadDirect fetches the PDF without a browser. It re-resolves the
// work record to find the canonical landing page, appends the publisher
// PDF suffix, and streams the response to targetPath. Only applicable
// to known open-access DOI prefixes.
func (f *PDFFetcher) downloadDirect(ctx context.Context, doi, targetPath string) (string, error) {
	if !strings.HasPrefix(doi, mdpiPrefix) {
		return "", fmt.Errorf("no direct-link strategy for %s", doi)
	}

	work, err := f.resolver.GetWork(ctx, doi)
	if err != nil {
		return "", fmt.Errorf("resolving landing page: %w", err)
	}
	if work.URL == "" {
		return "", fmt.Errorf("work record for %s has no landing page URL", doi)
	}

	pdfURL := strings.TrimRight(work.URL, "/") + "/pdf"
	fmt.Fprintf(f.out, "  fallback: downloading %s\n", pdfURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pdfURL, nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", fallbackUserAgent)
	req.Header.Set("Accept", "application/pdf")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("downloading %s: %w", pdfURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP %d from %s", resp.StatusCode, pdfURL)
	}

	if err := writeStream(resp.Body, targetPath); err != nil {
		return "", err
	}
	return targetPath, nil
}

// writeStream copies body to destPath in fixed-size chunks through a
// temporary file, renaming on success so a partial download never
// shadows the canonical filename.
func writeStream(body io.Reader, destPath string) error {
	tmpFile, err := os.CreateTemp(filepath.Dir(destPath), ".acquire-*.part")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	buf := make([]byte, downloadChunkSize)
	_, copyErr := io.CopyBuffer(tmpFile, body, buf)
	closeErr := tmpFile.Close()
	if copyErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing download: %w", copyErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", closeErr)
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package acquire

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/chromedp/cdproto/browser"
	"github.com/chromedp/chromedp"
)

// downloadSelectors are the XPath candidates for a direct download
// affordance, tried in order after the dropdown attempt. Publisher
// markup changes break these silently; exhaustion triggers the
// direct-link fallback rather than an error.
var downloadSelectors = []string{
	`//button[contains(text(), 'Download PDF')]`,
	`//a[contains(text(), 'Download PDF')]`,
	`//button[contains(@class, 'download')]//span[contains(text(), 'PDF')]`,
	`//div[@class='dropdown-menu show']//a[contains(text(), 'Download PDF')]`,
	`//button[@id='download-button']`,
}

// downloadPollInterval is the wait between download-marker checks.
// Tests shorten it.
var downloadPollInterval = time.Second

// downloadMarkerGlobs match in-progress browser downloads.
var downloadMarkerGlobs = []string{"*.crdownload", "*.tmp"}

// downloadViaBrowser drives a headless browser to the DOI resolver page,
// activates a download affordance, and waits for the PDF to land in the
// output directory. Any failure is a soft failure of this strategy.
// The browser is torn down on every exit path before the caller moves
// on to the fallback.
func (f *PDFFetcher) downloadViaBrowser(ctx context.Context, doi, targetPath string) (string, error) {
	absDir, err := filepath.Abs(f.cfg.PDFDir)
	if err != nil {
		return "", fmt.Errorf("resolving pdf directory: %w", err)
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox,
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	doiURL := "https://doi.org/" + doi
	fmt.Fprintf(f.out, "  navigating to %s\n", doiURL)

	if err := chromedp.Run(browserCtx,
		browser.SetDownloadBehavior(browser.SetDownloadBehaviorBehaviorAllow).
			WithDownloadPath(absDir),
		chromedp.Navigate(doiURL),
	); err != nil {
		return "", fmt.Errorf("navigating to %s: %w", doiURL, err)
	}

	if !f.clickDownloadAffordance(browserCtx) {
		// Last resort inside the session: known publisher domains serve
		// the PDF at a fixed suffix of the landing page.
		var current string
		if err := chromedp.Run(browserCtx, chromedp.Location(&current)); err != nil {
			return "", fmt.Errorf("reading current URL: %w", err)
		}
		if !strings.Contains(current, "mdpi.com") {
			return "", fmt.Errorf("no download affordance found at %s", current)
		}
		pdfURL := strings.TrimRight(current, "/") + "/pdf"
		fmt.Fprintf(f.out, "  trying direct PDF URL: %s\n", pdfURL)
		if err := chromedp.Run(browserCtx, chromedp.Navigate(pdfURL)); err != nil {
			return "", fmt.Errorf("navigating to %s: %w", pdfURL, err)
		}
	}

	waitForDownloadMarkers(absDir, f.downloadWait())
	return finishDownload(absDir, targetPath)
}

// clickDownloadAffordance tries the dropdown-triggered link first, then
// each direct selector candidate, with a bounded wait per candidate.
// It reports whether anything was activated.
func (f *PDFFetcher) clickDownloadAffordance(browserCtx context.Context) bool {
	wait := f.selectorWait()

	// A "Download" dropdown that reveals the PDF link when opened.
	if err := runWithTimeout(browserCtx, wait,
		chromedp.Click(`//button[contains(text(), 'Download')]`, chromedp.BySearch),
	); err == nil {
		time.Sleep(time.Second) // dropdown animation
		if err := runWithTimeout(browserCtx, wait,
			chromedp.Click(`//a[contains(text(), 'Download PDF')]`, chromedp.BySearch),
		); err == nil {
			fmt.Fprintln(f.out, "  clicked PDF download from dropdown")
			return true
		}
	}

	for _, sel := range downloadSelectors {
		if err := runWithTimeout(browserCtx, wait,
			chromedp.Click(sel, chromedp.BySearch),
		); err == nil {
			fmt.Fprintf(f.out, "  clicked download affordance: %s\n", sel)
			return true
		}
	}
	return false
}

// runWithTimeout bounds a chromedp action sequence with its own deadline
// so one unmatched selector cannot stall the whole strategy.
func runWithTimeout(parent context.Context, d time.Duration, actions ...chromedp.Action) error {
	ctx, cancel := context.WithTimeout(parent, d)
	defer cancel()
	return chromedp.Run(ctx, actions...)
}

// waitForDownloadMarkers polls dir until no in-progress download markers
// remain or the timeout elapses.
func waitForDownloadMarkers(dir string, timeout time.Duration) {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if !hasDownloadMarkers(dir) {
			return
		}
		time.Sleep(downloadPollInterval)
	}
}

func hasDownloadMarkers(dir string) bool {
	for _, glob := range downloadMarkerGlobs {
		matches, err := filepath.Glob(filepath.Join(dir, glob))
		if err == nil && len(matches) > 0 {
			return true
		}
	}
	return false
}

// finishDownload selects the most recently modified PDF in dir and
// renames it to targetPath when the browser chose its own filename.
func finishDownload(dir, targetPath string) (string, error) {
	latest, err := newestPDF(dir)
	if err != nil {
		return "", err
	}
	if latest == targetPath {
		return targetPath, nil
	}
	if err := os.Rename(latest, targetPath); err != nil {
		return "", fmt.Errorf("renaming download: %w", err)
	}
	return targetPath, nil
}

// newestPDF returns the most recently modified *.pdf file in dir.
func newestPDF(dir string) (string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.pdf"))
	if err != nil {
		return "", err
	}
	if len(matches) == 0 {
		return "", fmt.Errorf("no PDF file found in %s after download attempt", dir)
	}

	var latest string
	var latestMod time.Time
	for _, m := range matches {
		info, err := os.Stat(m)
		if err != nil {
			continue
		}
		if latest == "" || info.ModTime().After(latestMod) {
			latest = m
			latestMod = info.ModTime()
		}
	}
	if latest == "" {
		return "", fmt.Errorf("no readable PDF file found in %s", dir)
	}
	return latest, nil
}

func (f *PDFFetcher) selectorWait() time.Duration {
	if f.cfg.SelectorWait > 0 {
		return f.cfg.SelectorWait
	}
	return 10 * time.Second
}

func (f *PDFFetcher) downloadWait() time.Duration {
	if f.cfg.DownloadWait > 0 {
		return f.cfg.DownloadWait
	}
	return 30 * time.Second
}

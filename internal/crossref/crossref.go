// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package crossref fetches bibliographic metadata for DOIs from the
// Crossref works API and normalizes it into PaperMetadata records.
package crossref

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/pdiddy/mechprops/internal/httputil"
	"github.com/pdiddy/mechprops/pkg/types"
)

// apiBase is the Crossref works endpoint. Declared as a var so tests can
// substitute an httptest server.
var apiBase = "https://api.crossref.org/works/"

// Sentinel errors surfaced to the pipeline. NotFound is never retried;
// RateLimited is retried and surfaces only after exhaustion.
var (
	ErrNotFound    = errors.New("crossref: work not found")
	ErrRateLimited = errors.New("crossref: rate limited")
)

// resolverPrefixes are the DOI resolver forms stripped by NormalizeDOI.
var resolverPrefixes = []string{
	"https://doi.org/",
	"http://doi.org/",
	"doi.org/",
}

// NormalizeDOI strips any resolver prefix and surrounding whitespace,
// returning the bare identifier used as API path segment, cache key,
// and filename component.
func NormalizeDOI(doi string) string {
	doi = strings.TrimSpace(doi)
	for _, prefix := range resolverPrefixes {
		if strings.HasPrefix(doi, prefix) {
			return strings.TrimPrefix(doi, prefix)
		}
	}
	return doi
}

// Work captures the fields we use from a Crossref work record.
type Work struct {
	DOI            string    `json:"DOI"`
	Title          []string  `json:"title"`
	Author         []Author  `json:"author"`
	PublishedPrint DateField `json:"published-print"`
	ContainerTitle []string  `json:"container-title"`
	Publisher      string    `json:"publisher"`
	Abstract       string    `json:"abstract"`

	// URL is the canonical landing page, used by the direct-download
	// fallback.
	URL string `json:"URL"`
}

// Author is one entry of a work's author list.
type Author struct {
	Given  string `json:"given"`
	Family string `json:"family"`
}

// DateField is a Crossref date: nested date-parts arrays.
type DateField struct {
	DateParts [][]int `json:"date-parts"`
}

// envelope is the Crossref response wrapper.
type envelope struct {
	Message Work `json:"message"`
}

// Client looks up works by DOI. It paces requests with a rate limiter
// and retries transient failures per the configured policy.
type Client struct {
	httpClient *http.Client
	cfg        types.CrossrefConfig
	limiter    *rate.Limiter
	retry      httputil.Policy
}

// NewClient builds a Client from the stage configuration.
func NewClient(cfg types.CrossrefConfig) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		cfg:        cfg,
		limiter:    rate.NewLimiter(rate.Every(time.Second), 1),
		retry:      httputil.Policy{MaxAttempts: cfg.MaxRetries},
	}
}

// userAgent returns the client identification header. When an email is
// configured it follows the Crossref polite-pool convention.
func (c *Client) userAgent() string {
	if c.cfg.Email != "" {
		return fmt.Sprintf("mechprops/0.1 (mailto:%s)", c.cfg.Email)
	}
	if c.cfg.UserAgent != "" {
		return c.cfg.UserAgent
	}
	return "mechprops/0.1"
}

// GetWork fetches the work record for a DOI. Resolver-prefixed and bare
// identifiers resolve to the same record. 404 returns ErrNotFound
// without retrying; 429, 5xx, and transport errors are retried and the
// last error surfaces after exhaustion.
func (c *Client) GetWork(ctx context.Context, doi string) (*Work, error) {
	doi = NormalizeDOI(doi)

	var work *Work
	var permanent error
	err := httputil.Retry(ctx, c.retry, func() error {
		w, err := c.getWorkOnce(ctx, doi)
		if errors.Is(err, ErrNotFound) {
			permanent = err
			return nil
		}
		if err != nil {
			return err
		}
		work = w
		return nil
	})
	if err != nil {
		return nil, err
	}
	if permanent != nil {
		return nil, permanent
	}
	return work, nil
}

func (c *Client) getWorkOnce(ctx context.Context, doi string) (*Work, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiBase+doi, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("crossref request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", ErrNotFound, doi)
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, fmt.Errorf("%w: %s", ErrRateLimited, doi)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("crossref returned HTTP %d for %s", resp.StatusCode, doi)
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("parsing crossref response: %w", err)
	}
	return &env.Message, nil
}

// PaperInfo is the normalized view of a work record: the metadata
// serialized into results plus fields only used internally.
type PaperInfo struct {
	types.PaperMetadata

	Publisher string
	Abstract  string
}

// ExtractPaperInfo normalizes a raw work record. Missing fields yield
// empty strings and an empty author list, never a panic.
func ExtractPaperInfo(w *Work) PaperInfo {
	info := PaperInfo{
		PaperMetadata: types.PaperMetadata{
			DOI:     w.DOI,
			Authors: []string{},
		},
	}
	info.Publisher = w.Publisher
	info.Abstract = w.Abstract

	if len(w.Title) > 0 {
		info.Title = w.Title[0]
	}
	if len(w.ContainerTitle) > 0 {
		info.Journal = w.ContainerTitle[0]
	}

	for _, a := range w.Author {
		name := strings.TrimSpace(a.Given + " " + a.Family)
		if name != "" {
			info.Authors = append(info.Authors, name)
		}
	}

	// The print-publication year, rendered as a string.
	if parts := w.PublishedPrint.DateParts; len(parts) > 0 && len(parts[0]) > 0 {
		info.PublicationDate = strconv.Itoa(parts[0][0])
	}

	return info
}

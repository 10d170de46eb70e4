package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests.
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// CrossrefConfig holds settings for the metadata stage.
type CrossrefConfig struct {
	HTTPConfig `yaml:",inline"`

	// Email is included in the User-Agent per the Crossref polite-pool
	// convention. Optional; improves rate-limit treatment.
	Email string `json:"email,omitempty" yaml:"email,omitempty"`

	// MaxRetries is the number of attempts for failed lookups (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}

// AcquisitionConfig holds settings for the PDF download stage.
type AcquisitionConfig struct {
	HTTPConfig `yaml:",inline"`

	// PDFDir is the directory PDFs are downloaded into.
	PDFDir string `json:"pdf_dir" yaml:"pdf_dir"`

	// SelectorWait bounds how long each download-affordance candidate
	// is waited on before trying the next (default 10s).
	SelectorWait time.Duration `json:"selector_wait" yaml:"selector_wait"`

	// DownloadWait bounds how long in-progress download markers are
	// polled before giving up (default 30s).
	DownloadWait time.Duration `json:"download_wait" yaml:"download_wait"`
}

// AIConfig holds shared settings for stages that call a Generative AI API.
type AIConfig struct {
	// Model is the AI model identifier (e.g. "gpt-4.1").
	Model string `json:"model" yaml:"model"`

	// APIKey is the authentication key for the AI API.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// MaxRetries is the number of attempts for failed API calls (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}

// ExtractionConfig holds settings for the property-extraction stage.
type ExtractionConfig struct {
	AIConfig `yaml:",inline"`

	// MaxTextChars bounds how much paper text is submitted to the model
	// (default 8000). Tables past the cutoff are not extracted.
	MaxTextChars int `json:"max_text_chars" yaml:"max_text_chars"`
}

// StoreConfig holds settings for the optional SQLite results archive.
type StoreConfig struct {
	// Path is the SQLite database file. Empty disables the store.
	Path string `json:"path,omitempty" yaml:"path,omitempty"`
}

// PipelineConfig groups all stage configurations for a run.
type PipelineConfig struct {
	Crossref    CrossrefConfig    `json:"crossref" yaml:"crossref"`
	Acquisition AcquisitionConfig `json:"acquisition" yaml:"acquisition"`
	Extraction  ExtractionConfig  `json:"extraction" yaml:"extraction"`
	Store       StoreConfig       `json:"store" yaml:"store"`

	// OutputPath is where the unified results document is written.
	OutputPath string `json:"output_path" yaml:"output_path"`
}

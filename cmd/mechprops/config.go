// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"os"
	"time"

	"github.com/spf13/viper"

	"github.com/pdiddy/mechprops/internal/secrets"
	"github.com/pdiddy/mechprops/pkg/types"
)

const (
	defaultTimeout   = 60 * time.Second
	defaultUserAgent = "mechprops/0.1"
	defaultPDFDir    = "data/pdfs"
	defaultOutput    = "output/results.json"
	defaultModel     = "gpt-4.1"
)

// resolve picks the first non-empty value: explicit flag, process
// environment, secrets file, config file.
func resolve(flagValue, envKey, secretKey, viperKey string) string {
	if flagValue != "" {
		return flagValue
	}
	if v := os.Getenv(envKey); v != "" {
		return v
	}
	if v := loadedSecrets.Get(secretKey, ""); v != "" {
		return v
	}
	return viper.GetString(viperKey)
}

func crossrefConfig(email string, timeout time.Duration) types.CrossrefConfig {
	if timeout == 0 {
		timeout = defaultTimeout
	}
	return types.CrossrefConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   timeout,
			UserAgent: defaultUserAgent,
		},
		Email: resolve(email, "CROSSREF_EMAIL", secrets.KeyCrossrefEmail, "crossref.email"),
	}
}

func acquisitionConfig(pdfDir string, timeout time.Duration) types.AcquisitionConfig {
	if timeout == 0 {
		timeout = defaultTimeout
	}
	if pdfDir == "" {
		pdfDir = defaultPDFDir
	}
	return types.AcquisitionConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   timeout,
			UserAgent: defaultUserAgent,
		},
		PDFDir: pdfDir,
	}
}

func extractionConfig(model, apiKey string) types.ExtractionConfig {
	model = resolve(model, "OPENAI_MODEL", secrets.KeyOpenAIModel, "extraction.model")
	if model == "" {
		model = defaultModel
	}
	return types.ExtractionConfig{
		AIConfig: types.AIConfig{
			Model:  model,
			APIKey: resolve(apiKey, "OPENAI_API_KEY", secrets.KeyOpenAIAPIKey, "extraction.api_key"),
		},
	}
}

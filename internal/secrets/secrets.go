// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads API keys and credentials from a directory of
// plain-text files. Each file holds one secret: the filename is the key
// name and the trimmed file contents are the value.
//
// Supported key files: crossref-email, openai-api-key, openai-model.
package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Key names read by the CLI.
const (
	KeyCrossrefEmail = "crossref-email"
	KeyOpenAIAPIKey  = "openai-api-key"
	KeyOpenAIModel   = "openai-model"
)

// Secrets maps key names to values.
type Secrets map[string]string

// Get returns the value for key, or fallback when the key is absent or
// fallback is already set (explicit configuration wins over secrets).
func (s Secrets) Get(key, fallback string) string {
	if fallback != "" {
		return fallback
	}
	return s[key]
}

// Load reads all files in dir. A missing directory is not an error;
// Load returns an empty map. Unreadable files produce a warning on
// stderr but do not abort.
func Load(dir string) (Secrets, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return Secrets{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	secrets := Secrets{}
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not read secret %s: %v\n", entry.Name(), err)
			continue
		}

		if value := strings.TrimSpace(string(data)); value != "" {
			secrets[entry.Name()] = value
		}
	}

	return secrets, nil
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/mechprops/internal/acquire"
	"github.com/pdiddy/mechprops/internal/extract"
	"github.com/pdiddy/mechprops/pkg/types"
)

var extractCmd = &cobra.Command{
	Use:   "extract <pdf>",
	Short: "Extract mechanical properties from a local PDF",
	Long: `Extract runs text and property extraction against an already-downloaded
PDF and prints the resulting record as JSON. Paper metadata is read from the
YAML sidecar written during acquisition, or from --doi and --title.`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().String("doi", "", "paper DOI (overrides the sidecar)")
	extractCmd.Flags().String("title", "", "paper title (overrides the sidecar)")
	extractCmd.Flags().String("model", "", "LLM model identifier")

	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	pdfPath := args[0]
	doi, _ := cmd.Flags().GetString("doi")
	title, _ := cmd.Flags().GetString("title")
	model, _ := cmd.Flags().GetString("model")

	meta, err := acquire.ReadMetadataSidecar(pdfPath)
	if err != nil && doi == "" {
		return fmt.Errorf("no metadata sidecar for %s; pass --doi (and optionally --title)", pdfPath)
	}
	if doi != "" {
		meta = types.PaperMetadata{DOI: doi, Title: title, Authors: []string{}}
	}

	cfg := extractionConfig(model, "")
	if cfg.APIKey == "" {
		return fmt.Errorf("OpenAI API key is required (set OPENAI_API_KEY or .secrets/openai-api-key)")
	}

	backend := &extract.OpenAIBackend{APIKey: cfg.APIKey, Model: cfg.Model}
	extractor := extract.NewLLMExtractor(backend, cfg, os.Stderr)

	data, err := extractor.ExtractFromPaper(cmd.Context(), pdfPath, meta)
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling extraction: %w", err)
	}
	fmt.Fprintln(os.Stdout, string(out))
	return nil
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/mechprops/internal/acquire"
	"github.com/pdiddy/mechprops/internal/crossref"
	"github.com/pdiddy/mechprops/internal/extract"
	"github.com/pdiddy/mechprops/internal/pipeline"
	"github.com/pdiddy/mechprops/internal/store"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full extraction pipeline",
	Long: `Run processes every paper in the list: Crossref metadata, PDF download,
text extraction, and LLM property extraction. Per-paper failures are logged
and skipped; the unified results document is written at the end.

Without --papers the built-in paper list is used.`,
	RunE: runRun,
}

func init() {
	runCmd.Flags().String("papers", "", "YAML paper-list file (default: built-in list)")
	runCmd.Flags().String("pdf-dir", defaultPDFDir, "directory for downloaded PDFs")
	runCmd.Flags().String("output", defaultOutput, "path of the unified results JSON")
	runCmd.Flags().String("model", "", "LLM model identifier")
	runCmd.Flags().String("email", "", "contact email for the Crossref polite pool")
	runCmd.Flags().String("store", "", "SQLite archive path (empty disables archiving)")
	runCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 60s)")

	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	papersFile, _ := cmd.Flags().GetString("papers")
	pdfDir, _ := cmd.Flags().GetString("pdf-dir")
	output, _ := cmd.Flags().GetString("output")
	model, _ := cmd.Flags().GetString("model")
	email, _ := cmd.Flags().GetString("email")
	storePath, _ := cmd.Flags().GetString("store")
	timeout, _ := cmd.Flags().GetDuration("timeout")

	papers := pipeline.DefaultPapers
	if papersFile != "" {
		loaded, err := pipeline.LoadPapers(papersFile)
		if err != nil {
			return err
		}
		papers = loaded
	}

	extCfg := extractionConfig(model, "")
	if extCfg.APIKey == "" {
		return fmt.Errorf("OpenAI API key is required (set OPENAI_API_KEY or .secrets/openai-api-key)")
	}

	metaClient := crossref.NewClient(crossrefConfig(email, timeout))
	fetcher := acquire.NewPDFFetcher(acquisitionConfig(pdfDir, timeout), metaClient, os.Stdout)
	backend := &extract.OpenAIBackend{APIKey: extCfg.APIKey, Model: extCfg.Model}
	extractor := extract.NewLLMExtractor(backend, extCfg, os.Stdout)

	p := &pipeline.Pipeline{
		Metadata:  metaClient,
		Fetcher:   fetcher,
		Extractor: extractor,
		Out:       os.Stdout,
	}

	if storePath == "" {
		storePath = viper.GetString("store.path")
	}
	if storePath != "" {
		st, err := store.Open(storePath)
		if err != nil {
			return err
		}
		defer st.Close()
		p.Store = st
	}

	results := p.Run(cmd.Context(), papers)

	if err := pipeline.WriteResults(output, results); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "Results saved to: %s\n", output)
	return nil
}

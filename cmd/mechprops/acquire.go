// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/mechprops/internal/acquire"
	"github.com/pdiddy/mechprops/internal/crossref"
)

var acquireCmd = &cobra.Command{
	Use:   "acquire [dois...]",
	Short: "Download paper PDFs without running extraction",
	Long: `Acquire downloads the PDF for each DOI into the PDF directory, trying
the headless-browser strategy first and the direct publisher link as a
fallback. Already-downloaded papers are skipped.`,
	RunE: runAcquire,
}

func init() {
	acquireCmd.Flags().String("pdf-dir", defaultPDFDir, "directory for downloaded PDFs")
	acquireCmd.Flags().String("email", "", "contact email for the Crossref polite pool")
	acquireCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 60s)")

	rootCmd.AddCommand(acquireCmd)
}

func runAcquire(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("provide one or more DOIs")
	}

	pdfDir, _ := cmd.Flags().GetString("pdf-dir")
	email, _ := cmd.Flags().GetString("email")
	timeout, _ := cmd.Flags().GetDuration("timeout")

	metaClient := crossref.NewClient(crossrefConfig(email, timeout))
	fetcher := acquire.NewPDFFetcher(acquisitionConfig(pdfDir, timeout), metaClient, os.Stdout)

	failed := 0
	for _, doi := range args {
		path, err := fetcher.FetchPDF(cmd.Context(), doi)
		if err != nil {
			fmt.Fprintf(os.Stdout, "failed: %s (%v)\n", doi, err)
			failed++
			continue
		}
		fmt.Fprintf(os.Stdout, "downloaded: %s\n", path)
	}

	if failed > 0 {
		return fmt.Errorf("%d paper(s) failed to download", failed)
	}
	return nil
}

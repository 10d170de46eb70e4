// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/mechprops/internal/crossref"
)

var metadataCmd = &cobra.Command{
	Use:   "metadata <doi>",
	Short: "Fetch and print Crossref metadata for a DOI",
	Long: `Metadata fetches the Crossref work record for a DOI (bare or
resolver-prefixed) and prints the normalized bibliographic record as JSON.`,
	Args: cobra.ExactArgs(1),
	RunE: runMetadata,
}

func init() {
	metadataCmd.Flags().String("email", "", "contact email for the Crossref polite pool")
	metadataCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 60s)")

	rootCmd.AddCommand(metadataCmd)
}

func runMetadata(cmd *cobra.Command, args []string) error {
	email, _ := cmd.Flags().GetString("email")
	timeout, _ := cmd.Flags().GetDuration("timeout")

	client := crossref.NewClient(crossrefConfig(email, timeout))
	work, err := client.GetWork(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	info := crossref.ExtractPaperInfo(work)
	out, err := json.MarshalIndent(info.PaperMetadata, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling metadata: %w", err)
	}
	fmt.Fprintln(os.Stdout, string(out))
	return nil
}

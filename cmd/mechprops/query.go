// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/mechprops/internal/store"
)

var queryCmd = &cobra.Command{
	Use:   "query [doi]",
	Short: "List archived measurements from the SQLite store",
	Long: `Query lists mechanical-property measurements archived by previous runs.
With a DOI argument only that paper's records are shown.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runQuery,
}

func init() {
	queryCmd.Flags().String("db", "", "SQLite archive path")

	rootCmd.AddCommand(queryCmd)
}

func runQuery(cmd *cobra.Command, args []string) error {
	dbPath, _ := cmd.Flags().GetString("db")
	if dbPath == "" {
		dbPath = viper.GetString("store.path")
	}
	if dbPath == "" {
		return fmt.Errorf("no archive configured; pass --db or set store.path")
	}

	doi := ""
	if len(args) == 1 {
		doi = args[0]
	}

	st, err := store.Open(dbPath)
	if err != nil {
		return err
	}
	defer st.Close()

	rows, err := st.ListProperties(doi)
	if err != nil {
		return err
	}

	for _, r := range rows {
		line := fmt.Sprintf("%s  %s  %s = %g %s", r.DOI, r.Material, r.PropertyName, r.Value, r.Unit)
		if r.Condition != "" {
			line += fmt.Sprintf("  (%s)", r.Condition)
		}
		fmt.Fprintln(os.Stdout, line)
	}
	fmt.Fprintf(os.Stdout, "\n%d measurement(s)\n", len(rows))
	return nil
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the mechprops CLI, which fetches
// paper metadata, downloads PDFs, and extracts mechanical-property
// measurements into a unified results document.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/mechprops/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds credentials loaded from .secrets/ at startup.
var loadedSecrets secrets.Secrets

// rootCmd is the base command for the mechprops CLI.
var rootCmd = &cobra.Command{
	Use:   "mechprops",
	Short: "Extract mechanical-property data from academic papers",
	Long: `mechprops processes a list of papers identified by DOI: it fetches
bibliographic metadata from Crossref, downloads each paper's PDF (headless
browser first, direct publisher link as fallback), extracts the PDF text,
and prompts an LLM to pull tabular mechanical-property measurements into a
unified JSON results document.

Each stage is also available as its own subcommand: metadata, acquire,
extract, and query.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./mechprops.yaml or ~/.config/mechprops/config.yaml)")
}

func initConfig() {
	// Environment variables from a local .env file, if present.
	_ = godotenv.Load()

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("mechprops")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "mechprops"))
		}
	}

	viper.SetEnvPrefix("MECHPROPS")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

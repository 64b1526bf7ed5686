// Package main provides the doify CLI entry point.
package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/matsen/doify/internal/bib"
	"github.com/matsen/doify/internal/config"
	"github.com/matsen/doify/internal/crossref"
	"github.com/matsen/doify/internal/enrich"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Error(err)
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "doify <input.bib> <output.bib>",
	Short: "Add missing DOIs to a BibTeX file",
	Long: `doify reads a BibTeX file and, for every entry without a doi field,
queries CrossRef by title and validates the top result against the
entry's first author before writing the DOI back.

Entries that already carry a DOI, or lack a title or author, pass
through unchanged. The enriched bibliography is written to the output
path and a summary is printed on stdout.`,
	Args:          cobra.ExactArgs(2),
	RunE:          runEnrich,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// A .env file can carry DOIFY_MAILTO and DOIFY_API_URL overrides.
	_ = godotenv.Load()
	rootCmd.Version = Version
}

// newClient builds a CrossRef client from global config and environment.
func newClient() *crossref.Client {
	if _, err := config.Load(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(ExitConfigError)
	}

	opts := []crossref.ClientOption{
		crossref.WithHTTPClient(&http.Client{Timeout: config.Timeout()}),
		crossref.WithMatchThreshold(config.MatchThreshold()),
	}
	if u := config.APIURL(); u != "" {
		opts = append(opts, crossref.WithBaseURL(u))
	}
	if m := config.Mailto(); m != "" {
		opts = append(opts, crossref.WithMailto(m))
	}
	return crossref.NewClient(opts...)
}

func runEnrich(cmd *cobra.Command, args []string) error {
	inputPath, outputPath := args[0], args[1]

	lib, err := bib.Read(inputPath)
	if err != nil {
		return err
	}

	report := enrich.Run(cmd.Context(), lib, newClient(), log.Default())

	if err := bib.Write(outputPath, lib); err != nil {
		return err
	}

	fmt.Printf("Processed %d entries. Updated %d with DOIs.\n", report.Processed, report.Updated)
	fmt.Printf("Wrote %s\n", outputPath)
	return nil
}

// Package main provides the bibfront CLI entry point.
package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "bibfront",
	Short: "Convert BibTeX bibliographies to front-matter pages",
	Long: `bibfront converts BibTeX bibliography entries into front-matter pages
for static-site generators.

Each entry becomes a fixed-order front-matter block (authors, pages,
volume, series, venue, title, publisher, year, doi, www) followed by the
abstract as the page body. Entries can come from a .bib file, a DOI, or a
PDF with an embedded DOI.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Pick up BIBFRONT_* overrides from a local .env if present.
	_ = godotenv.Load()

	rootCmd.Version = Version
}

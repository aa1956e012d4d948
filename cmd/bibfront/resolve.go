package main

import (
	"fmt"
	"strings"

	"github.com/bibfront/bibfront/internal/bibtex"
	"github.com/bibfront/bibfront/internal/config"
	"github.com/bibfront/bibfront/internal/doi"
	"github.com/bibfront/bibfront/internal/export"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(resolveCmd)
}

var resolveCmd = &cobra.Command{
	Use:   "resolve <doi>",
	Short: "Fetch BibTeX for a DOI and convert it",
	Long: `Fetch the BibTeX record for a DOI from doi.org and convert it to a
front-matter page on stdout.

The DOI may be bare or carry a doi.org URL prefix.

Examples:
  bibfront resolve 10.1093/sysbio/syy032
  bibfront resolve https://doi.org/10.1093/sysbio/syy032`,
	Args: cobra.ExactArgs(1),
	RunE: runResolve,
}

func runResolve(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}

	client := doi.NewClient(doi.WithMailTo(cfg.MailTo))
	bib, err := client.FetchBibTeX(cmd.Context(), args[0])
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}

	entries, err := bibtex.Parse(strings.NewReader(bib))
	if err != nil {
		exitWithError(ExitDataError, "parsing resolver response: %v", err)
	}
	if len(entries) == 0 {
		exitWithError(ExitDataError, "resolver returned no entries for %s", args[0])
	}

	papers, err := convertAll(entries, false)
	if err != nil {
		exitWithError(ExitDataError, "%v", err)
	}

	fmt.Print(export.ToFrontMatterList(papers))
	return nil
}

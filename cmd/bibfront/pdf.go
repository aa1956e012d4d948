package main

import (
	"fmt"
	"strings"

	"github.com/bibfront/bibfront/internal/bibtex"
	"github.com/bibfront/bibfront/internal/config"
	"github.com/bibfront/bibfront/internal/doi"
	"github.com/bibfront/bibfront/internal/export"
	"github.com/bibfront/bibfront/internal/pdf"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(pdfCmd)
}

var pdfCmd = &cobra.Command{
	Use:   "pdf <file.pdf>",
	Short: "Convert a PDF with an embedded DOI",
	Long: `Extract the DOI from a PDF, fetch its BibTeX record from doi.org, and
convert it to a front-matter page on stdout.

The first pages of the PDF are scanned for a DOI pattern; most publishers
print one on the first page.

Examples:
  bibfront pdf paper.pdf`,
	Args: cobra.ExactArgs(1),
	RunE: runPDF,
}

func runPDF(cmd *cobra.Command, args []string) error {
	found, err := pdf.ExtractDOI(args[0])
	if err != nil {
		exitWithError(ExitError, "reading %s: %v", args[0], err)
	}
	if found == "" {
		exitWithError(ExitDataError, "no DOI found in %s", args[0])
	}

	cfg, err := config.Load()
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}

	client := doi.NewClient(doi.WithMailTo(cfg.MailTo))
	bib, err := client.FetchBibTeX(cmd.Context(), found)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}

	entries, err := bibtex.Parse(strings.NewReader(bib))
	if err != nil {
		exitWithError(ExitDataError, "parsing resolver response: %v", err)
	}
	if len(entries) == 0 {
		exitWithError(ExitDataError, "resolver returned no entries for %s", found)
	}

	papers, err := convertAll(entries, false)
	if err != nil {
		exitWithError(ExitDataError, "%v", err)
	}

	fmt.Print(export.ToFrontMatterList(papers))
	return nil
}

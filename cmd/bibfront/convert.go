package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bibfront/bibfront/internal/bibtex"
	"github.com/bibfront/bibfront/internal/catalog"
	"github.com/bibfront/bibfront/internal/config"
	"github.com/bibfront/bibfront/internal/export"
	"github.com/bibfront/bibfront/internal/reference"
	"github.com/spf13/cobra"
)

var (
	convertOut          string
	convertSkipExisting bool
	convertKeepGoing    bool
)

func init() {
	convertCmd.Flags().StringVar(&convertOut, "out", "", "Write one page per entry into this directory instead of stdout")
	convertCmd.Flags().BoolVar(&convertSkipExisting, "skip-existing", false, "Skip entries already recorded in the conversion catalog (requires an output directory)")
	convertCmd.Flags().BoolVar(&convertKeepGoing, "keep-going", false, "Skip entries with missing mandatory fields instead of aborting the batch")
	rootCmd.AddCommand(convertCmd)
}

var convertCmd = &cobra.Command{
	Use:   "convert <file.bib>",
	Short: "Convert a bibliography file to front-matter pages",
	Long: `Convert a bibliography file to front-matter pages.

By default the rendered blocks are written to stdout in input order, one
block per entry. With --out (or output_dir in the config file), each entry
becomes a <key>.md page in the given directory and is recorded in the
conversion catalog.

An entry missing a mandatory field (author, title, url, venue, or year)
aborts the whole batch. The original converter had no per-entry recovery;
--keep-going deviates from that on purpose, reporting the failing entry on
stderr and continuing with the rest.

Examples:
  bibfront convert refs.bib
  bibfront convert refs.bib --out content/publications
  bibfront convert refs.bib --out content/publications --skip-existing`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		exitWithError(ExitError, "reading %s: %v", args[0], err)
	}

	entries, err := bibtex.Parse(bytes.NewReader(data))
	if err != nil {
		exitWithError(ExitDataError, "parsing %s: %v", args[0], err)
	}

	papers, err := convertAll(entries, convertKeepGoing || cfg.KeepGoing)
	if err != nil {
		exitWithError(ExitDataError, "%v", err)
	}

	outDir := convertOut
	if outDir == "" {
		outDir = cfg.OutputDir
	}

	if outDir == "" {
		if convertSkipExisting {
			exitWithError(ExitError, "--skip-existing requires an output directory (--out or output_dir in config)")
		}
		fmt.Print(export.ToFrontMatterList(papers))
		return nil
	}

	written, skipped, err := writePages(outDir, papers, convertSkipExisting)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}

	if skipped > 0 {
		fmt.Printf("Converted %d entries to %s (%d already present)\n", written, outDir, skipped)
	} else {
		fmt.Printf("Converted %d entries to %s\n", written, outDir)
	}
	return nil
}

// convertAll normalizes parsed entries in input order. With keepGoing set,
// entries that fail normalization are reported on stderr and skipped;
// otherwise the first failure aborts the batch.
func convertAll(entries []bibtex.Entry, keepGoing bool) ([]reference.Paper, error) {
	papers := make([]reference.Paper, 0, len(entries))
	for _, e := range entries {
		p, err := reference.FromTags(e.Key, e.Tags)
		if err != nil {
			if keepGoing {
				warn("%v (skipped)", err)
				continue
			}
			return nil, err
		}
		papers = append(papers, p)
	}
	return papers, nil
}

// writePages writes one page per paper into dir and records each conversion
// in the catalog under dir.
func writePages(dir string, papers []reference.Paper, skipExisting bool) (written, skipped int, err error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return 0, 0, fmt.Errorf("creating output directory: %w", err)
	}

	catPath := config.CatalogPath(dir)
	if err := os.MkdirAll(filepath.Dir(catPath), 0755); err != nil {
		return 0, 0, fmt.Errorf("creating catalog directory: %w", err)
	}
	cat, err := catalog.Open(catPath)
	if err != nil {
		return 0, 0, err
	}
	defer cat.Close()

	for _, p := range papers {
		if skipExisting {
			has, err := cat.Has(p.Key, p.DOI)
			if err != nil {
				return written, skipped, err
			}
			if has {
				skipped++
				continue
			}
		}

		path := filepath.Join(dir, pageFileName(p.Key))
		if err := os.WriteFile(path, []byte(export.ToFrontMatter(p)), 0644); err != nil {
			return written, skipped, fmt.Errorf("writing %s: %w", path, err)
		}

		rec := catalog.Record{
			Key:   p.Key,
			DOI:   p.DOI,
			Title: p.Title,
			Year:  p.Year,
			Venue: p.Venue.Name,
			Path:  path,
		}
		if err := cat.Add(rec); err != nil {
			return written, skipped, err
		}
		written++
	}

	return written, skipped, nil
}

// pageFileName derives an output file name from a citation key.
func pageFileName(key string) string {
	mapped := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '-', r == '_', r == '.':
			return r
		default:
			return '-'
		}
	}, key)
	if mapped == "" {
		mapped = "entry"
	}
	return mapped + ".md"
}

package main

import (
	"fmt"

	"github.com/bibfront/bibfront/internal/catalog"
	"github.com/bibfront/bibfront/internal/config"
	"github.com/spf13/cobra"
)

var listDir string

func init() {
	listCmd.Flags().StringVar(&listDir, "out", "", "Output directory whose catalog to list (defaults to output_dir in config)")
	rootCmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List converted entries",
	Long: `List the entries recorded in the conversion catalog of an output
directory.

Examples:
  bibfront list
  bibfront list --out content/publications`,
	RunE: runList,
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}

	dir := listDir
	if dir == "" {
		dir = cfg.OutputDir
	}
	if dir == "" {
		exitWithError(ExitConfigError, "no output directory (--out or output_dir in config)")
	}

	cat, err := catalog.Open(config.CatalogPath(dir))
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}
	defer cat.Close()

	records, err := cat.List()
	if err != nil {
		exitWithError(ExitError, "listing catalog: %v", err)
	}

	if len(records) == 0 {
		fmt.Println("No converted entries")
		return nil
	}

	fmt.Printf("%d converted entries:\n\n", len(records))
	for _, rec := range records {
		fmt.Printf("  %-20s %4d  %s\n", rec.Key, rec.Year, truncateString(rec.Title, ListTitleMaxLen))
	}
	return nil
}

package main

import (
	"fmt"
	"strconv"

	"github.com/bibfront/bibfront/internal/config"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config [key] [value]",
	Short: "Get or set configuration values",
	Long: `Get or set configuration values.

Usage:
  bibfront config                                # Show all config
  bibfront config output-dir                     # Get specific value
  bibfront config output-dir content/papers      # Set value
  bibfront config mailto me@example.org          # Set doi.org contact

Keys:
  output-dir  Directory converted pages are written to
  mailto      Contact address sent to doi.org (politeness policy)
  keep-going  Skip failing entries instead of aborting (true/false)`,
	Args: cobra.MaximumNArgs(2),
	RunE: runConfig,
}

func runConfig(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}

	// No args: show all config
	if len(args) == 0 {
		fmt.Printf("output-dir: %s\n", cfg.OutputDir)
		fmt.Printf("mailto:     %s\n", cfg.MailTo)
		fmt.Printf("keep-going: %t\n", cfg.KeepGoing)
		return nil
	}

	key := args[0]

	// One arg: get value
	if len(args) == 1 {
		switch key {
		case "output-dir":
			fmt.Println(cfg.OutputDir)
		case "mailto":
			fmt.Println(cfg.MailTo)
		case "keep-going":
			fmt.Println(cfg.KeepGoing)
		default:
			exitWithError(ExitError, "unknown config key: %s", key)
		}
		return nil
	}

	// Two args: set value
	value := args[1]
	switch key {
	case "output-dir":
		cfg.OutputDir = value
	case "mailto":
		cfg.MailTo = value
	case "keep-going":
		b, err := strconv.ParseBool(value)
		if err != nil {
			exitWithError(ExitError, "keep-going must be true or false, got %q", value)
		}
		cfg.KeepGoing = b
	default:
		exitWithError(ExitError, "unknown config key: %s", key)
	}

	if err := config.Save(cfg); err != nil {
		exitWithError(ExitConfigError, "saving config: %v", err)
	}

	fmt.Printf("Set %s = %s\n", key, value)
	return nil
}

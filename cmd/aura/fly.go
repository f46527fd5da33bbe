package main

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/aura-cli/aura/internal/bloat"
	"github.com/aura-cli/aura/internal/config"
)

var flyCmd = &cobra.Command{
	Use:     "fly",
	Aliases: []string{"perf"},
	Short:   "Rank the heaviest files in the workspace",
	Long: `List the largest files under the workspace root, flagging any that
exceed the energy-heavy threshold. Oversized assets are the cheapest
performance and storage win there is.

The displayed total covers only the listed files, not the whole tree.

Examples:
  aura fly
  aura fly --top 10
  aura fly --max-size-mb 20`,
	Run: func(cmd *cobra.Command, args []string) {
		topN, _ := cmd.Flags().GetInt("top")
		maxSizeMB, _ := cmd.Flags().GetFloat64("max-size-mb")

		cfg, logger, _ := setup()

		printHeader("🚀", "Aura Fly", "Performance analysis started...", color.FgMagenta)

		scanner := newBloatScanner(cfg, logger, topN, maxSizeMB)
		report, err := scanner.Scan(context.Background())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		if len(report.Entries) == 0 {
			fmt.Printf("%s\n\n", color.GreenString("No files found under %s", rootPath))
			return
		}
		printBloatTable(report)
	},
}

// newBloatScanner builds a bloat scanner from config, with flag values
// (when non-zero) overriding the configured ones.
func newBloatScanner(cfg *config.Config, logger zerolog.Logger, topN int, maxSizeMB float64) *bloat.Scanner {
	scanner, err := bloat.NewScanner(rootPath, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	scanner.Walker().Exclude(cfg.ExcludeDirs...)

	scanner.TopN = cfg.BloatTopN
	if topN > 0 {
		scanner.TopN = topN
	}
	scanner.MaxSizeMB = cfg.BloatMaxSizeMB
	if maxSizeMB > 0 {
		scanner.MaxSizeMB = maxSizeMB
	}
	return scanner
}

func printBloatTable(report *bloat.Report) {
	yellow := color.New(color.FgYellow, color.Bold).SprintFunc()

	for _, e := range report.Entries {
		label := color.GreenString(string(e.Impact))
		if e.Impact == bloat.ImpactEnergyHeavy {
			label = yellow(string(e.Impact))
		}
		fmt.Printf("   %8.1f MB  [%s]  %s\n", e.SizeMB, label, e.Path)
	}

	fmt.Printf("\n   Displayed total: %.1f MB across %d file(s)", report.TotalDisplayedMB, len(report.Entries))
	if heavy := report.HeavyCount(); heavy > 0 {
		fmt.Printf(", %s", yellow(fmt.Sprintf("%d energy-heavy", heavy)))
	}
	fmt.Println()
	fmt.Println()
}

func init() {
	flyCmd.Flags().IntP("top", "n", 0, "How many of the largest files to show (default from config)")
	flyCmd.Flags().Float64("max-size-mb", 0, "Energy-heavy threshold in MB (default from config)")
	rootCmd.AddCommand(flyCmd)
}

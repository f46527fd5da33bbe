package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/aura-cli/aura/internal/advisor"
	"github.com/aura-cli/aura/internal/bloat"
	"github.com/aura-cli/aura/internal/carbon"
	"github.com/aura-cli/aura/internal/deps"
)

var ecoCmd = &cobra.Command{
	Use:     "eco",
	Aliases: []string{"deps"},
	Short:   "Run a carbon audit and summarize the dependency ecosystem",
	Long: `Grade the workspace's resource footprint. The grade (A best, F worst)
combines the bloat ranking with complexity commentary from the AI
assistant; without an assistant, canned commentary keeps the grade
deterministic.

Each audit is appended to the carbon journal along with a progress
verdict against the previous run. The command also summarizes the Go
dependency ecosystem when a go.mod is present.

Examples:
  aura eco
  aura eco --journal /tmp/carbon.md
  aura eco --no-ai`,
	Run: func(cmd *cobra.Command, args []string) {
		journalPath, _ := cmd.Flags().GetString("journal")

		ctx := context.Background()
		cfg, logger, adv := setup()

		printHeader("🌍", "Aura Eco", "Carbon audit started...", color.FgCyan)

		scanner := newBloatScanner(cfg, logger, 0, 0)
		report, err := scanner.Scan(ctx)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
			return
		}

		prompt, shortPrompt := complexityPrompts(report)
		commentary, fromAI := advisor.AdviseWithShortRetry(ctx, adv, prompt, shortPrompt,
			advisor.FallbackComplexity, advisor.DefaultGenerateTimeout)

		grade := carbon.GradeAudit(report.Entries, commentary)

		if journalPath == "" {
			journalPath = cfg.JournalPath(rootPath, cfg.CarbonJournal)
		}
		journal := carbon.NewJournal(journalPath, logger)
		rec, err := journal.Record(time.Now(), grade, report.Entries, report.TotalDisplayedMB, commentary)
		if err != nil {
			// The audit still happened; only the history write failed.
			fmt.Printf("%s\n", color.YellowString("Warning: could not write carbon journal: %v", err))
		}

		printCarbonAudit(rec, report, commentary, fromAI)
		printDepsSummary(deps.Inspect(rootPath, logger))
	},
}

// complexityPrompts builds the full and retry prompts for the assistant's
// complexity commentary.
func complexityPrompts(report *bloat.Report) (string, string) {
	var sb strings.Builder
	sb.WriteString("Comment briefly on the likely algorithmic complexity hiding in a workspace ")
	sb.WriteString("with these largest files. Mention nested loops or quadratic behavior only ")
	sb.WriteString("if the file names or sizes suggest them.\n\n")
	for _, e := range report.Entries {
		fmt.Fprintf(&sb, "- %s (%.1f MB, %s)\n", e.Path, e.SizeMB, e.Impact)
	}

	short := fmt.Sprintf("In two sentences: likely complexity concerns for a workspace whose "+
		"top %d files total %.0f MB?", len(report.Entries), report.TotalDisplayedMB)

	return sb.String(), short
}

func printCarbonAudit(rec *carbon.AuditRecord, report *bloat.Report, commentary string, fromAI bool) {
	yellow := color.New(color.FgYellow).SprintFunc()

	fmt.Printf("   Carbon Grade: %s   (%s)\n\n", gradeColor(rec.Grade).Sprintf(" %s ", rec.Grade), rec.Verdict)

	if len(report.Entries) > 0 {
		printBloatTable(report)
	}

	if !fromAI {
		fmt.Printf("%s\n", yellow("Note: no AI assistant answered; grading used standard commentary."))
	}
	printAIBox("COMPLEXITY NOTES", commentary)
}

func printDepsSummary(summary *deps.Summary) {
	cyan := color.New(color.FgCyan).SprintFunc()

	fmt.Printf("   %s\n", cyan("Dependency ecosystem"))
	if summary == nil {
		fmt.Printf("   No Go module detected under %s\n\n", rootPath)
		return
	}

	fmt.Printf("   Module %s (go %s): %d direct, %d indirect\n",
		summary.ModulePath, summary.GoVersion, len(summary.Direct), summary.Indirect)
	for _, req := range summary.Direct {
		fmt.Printf("   • %s %s\n", req.Path, req.Version)
	}
	fmt.Println()
}

func init() {
	ecoCmd.Flags().String("journal", "", "Carbon journal path (default from config)")
	rootCmd.AddCommand(ecoCmd)
}

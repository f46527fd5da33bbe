package main

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/aura-cli/aura/internal/advisor"
	"github.com/aura-cli/aura/internal/secrets"
)

const remediationPrompt = "How do I remove a leaked secret from git history safely?"

var checkCmd = &cobra.Command{
	Use:     "check",
	Aliases: []string{"sec"},
	Short:   "Scan for leaked credentials and unsafe .env permissions",
	Long: `Scan every file under the workspace root for leaked credentials
(AWS access keys, Google API keys) and check that .env files are not
readable by other users.

When secrets are found and an AI assistant is available, aura asks it for
remediation guidance; without one, canned guidance is shown instead.

Examples:
  aura check
  aura check --root ../other-project
  aura check --no-ai`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		cfg, logger, adv := setup()

		printHeader("🛡️ ", "Aura Security", "Security scan started...", color.FgRed)

		scanner, err := secrets.NewScanner(rootPath, logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		scanner.Walker().Exclude(cfg.ExcludeDirs...)

		report, err := scanner.Scan(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		red := color.New(color.FgRed, color.Bold).SprintFunc()
		yellow := color.New(color.FgYellow).SprintFunc()
		green := color.New(color.FgGreen, color.Bold).SprintFunc()

		if len(report.Findings) > 0 {
			fmt.Printf("⚠️  %s\n", red(fmt.Sprintf("Found %d potential secret(s):", len(report.Findings))))
			for _, f := range report.Findings {
				fmt.Printf("   • %s: %s (%s)\n", f.Path, f.Kind, f.Masked())
			}

			advice, fromAI := advisor.AdviseOrFallback(ctx, adv, remediationPrompt,
				advisor.FallbackRemediation, advisor.DefaultGenerateTimeout)
			if !fromAI {
				fmt.Printf("\n%s\n", yellow("Note: no AI assistant answered; showing standard guidance."))
			}
			printAIBox("AURA AI ADVICE", advice)
		}

		if len(report.EnvIssues) > 0 {
			fmt.Printf("\n⚠️  %s\n", red(fmt.Sprintf("Found %d .env file(s) with incorrect permissions:", len(report.EnvIssues))))
			for _, issue := range report.EnvIssues {
				fmt.Printf("   • %s: %04o (should be %04o)\n", issue.Path, issue.Mode, issue.Expected())
			}
		}

		if len(report.Findings) == 0 && len(report.EnvIssues) == 0 {
			fmt.Printf("%s\n\n", green("✓ No security issues detected!"))
		}
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/aura-cli/aura/internal/activity"
	"github.com/aura-cli/aura/internal/advisor"
	"github.com/aura-cli/aura/internal/workspace"
)

const wellnessPrompt = "Give one short, friendly suggestion for a developer who has been idle " +
	"or grinding for a while. One or two sentences."

var pulseCmd = &cobra.Command{
	Use:     "pulse",
	Aliases: []string{"health"},
	Short:   "Show workspace activity and idle telemetry",
	Long: `Analyze file modification times (and the terminal session, when a
session-listing utility is available) into a recency histogram, quick
counters, a focus score, and an idle decision.

Examples:
  aura pulse
  aura pulse --window-hours 12
  aura pulse --idle-threshold 30
  aura pulse --force-idle`,
	Run: func(cmd *cobra.Command, args []string) {
		windowHours, _ := cmd.Flags().GetInt("window-hours")
		idleThreshold, _ := cmd.Flags().GetFloat64("idle-threshold")
		forceIdle, _ := cmd.Flags().GetBool("force-idle")

		ctx := context.Background()
		cfg, logger, adv := setup()

		printHeader("💓", "Aura Pulse", "Code health analysis started...", color.FgGreen)

		walker, err := workspace.NewWalker(rootPath, logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		walker.Exclude(cfg.ExcludeDirs...)

		records, err := walker.Walk(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		opts := activity.Options{
			WindowHours:          cfg.WindowHours,
			IdleThresholdMinutes: cfg.IdleThresholdMinutes,
			TerminalIdleMinutes:  activity.NewSessionProber(logger).IdleMinutes(ctx),
			ForceIdle:            forceIdle,
		}
		if windowHours > 0 {
			opts.WindowHours = windowHours
		}
		if idleThreshold > 0 {
			opts.IdleThresholdMinutes = idleThreshold
		}

		summary := activity.Analyze(records, time.Now(), opts)
		printActivitySummary(summary, opts)

		if summary.Idle {
			suggestion, _ := advisor.AdviseOrFallback(ctx, adv, wellnessPrompt,
				advisor.FallbackWellness, advisor.DefaultGenerateTimeout)
			printAIBox("AURA WELLNESS", suggestion)
		}
	},
}

func printActivitySummary(s activity.Summary, opts activity.Options) {
	cyan := color.New(color.FgCyan).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()

	if s.Empty {
		fmt.Printf("%s No files found under %s\n\n", yellow("✨"), rootPath)
		if s.Idle {
			fmt.Printf("   Status: %s\n\n", yellow("IDLE"))
		}
		return
	}

	fmt.Printf("   Last edit: %s (%.1f min ago)\n\n", s.NewestPath, s.MinutesSinceEdit)

	fmt.Printf("   %s\n", cyan("Recent activity"))
	maxCount := s.Histogram.MaxCount()
	for _, b := range s.Histogram {
		fmt.Printf("   %4.0f-%-4.0fm │%-20s│ %d\n",
			b.Start.Minutes(), b.End.Minutes(), bar(b.Count, maxCount, 20), b.Count)
	}

	fmt.Printf("\n   Touched:  5m=%d  30m=%d  60m=%d  24h=%d\n",
		s.Touched5m, s.Touched30m, s.Touched60m, s.Touched24h)

	stateColor := color.New(color.FgGreen, color.Bold)
	switch s.State {
	case activity.StateSteady:
		stateColor = color.New(color.FgYellow, color.Bold)
	case activity.StateRest:
		stateColor = color.New(color.FgBlue, color.Bold)
	}
	fmt.Printf("   Focus:    %.2f │%-20s│ %s\n",
		s.FocusScore, bar(int(s.FocusScore*100), 100, 20), stateColor.Sprint(string(s.State)))

	status := color.GreenString("ACTIVE")
	if s.Idle {
		status = yellow("IDLE")
	}
	fmt.Printf("   Status:   %s", status)
	if opts.TerminalIdleMinutes != nil {
		fmt.Printf("  (terminal idle %.1f min)", *opts.TerminalIdleMinutes)
	}
	fmt.Println()
	fmt.Println()
}

func init() {
	pulseCmd.Flags().Int("window-hours", 0, "Histogram window in hours (default from config)")
	pulseCmd.Flags().Float64("idle-threshold", 0, "Idle threshold in minutes (default from config)")
	pulseCmd.Flags().Bool("force-idle", false, "Treat the session as idle regardless of activity")
	rootCmd.AddCommand(pulseCmd)
}

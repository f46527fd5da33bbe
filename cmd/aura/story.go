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
	"github.com/aura-cli/aura/internal/journal"
	"github.com/aura-cli/aura/internal/workspace"
)

var storyCmd = &cobra.Command{
	Use:     "story",
	Aliases: []string{"doc"},
	Short:   "Append a prose entry about the workspace to the story journal",
	Long: `Ask the AI assistant for a short narrative about the current state of
the workspace and append it, timestamped, to the story journal. Without
an assistant the entry falls back to a canned line, so the journal keeps
its rhythm either way.

Examples:
  aura story
  aura story --journal /tmp/story.md`,
	Run: func(cmd *cobra.Command, args []string) {
		journalPath, _ := cmd.Flags().GetString("journal")

		ctx := context.Background()
		cfg, logger, adv := setup()

		printHeader("📖", "Aura Story", "Code story generation started...", color.FgBlue)

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
		summary := activity.Analyze(records, time.Now(), activity.Options{
			WindowHours:          cfg.WindowHours,
			IdleThresholdMinutes: cfg.IdleThresholdMinutes,
		})

		prompt := storyPrompt(len(records), summary)
		prose, fromAI := advisor.AdviseOrFallback(ctx, adv, prompt,
			advisor.FallbackStory, advisor.DefaultGenerateTimeout)

		if journalPath == "" {
			journalPath = cfg.JournalPath(rootPath, cfg.StoryJournal)
		}
		story := journal.NewStory(journalPath)
		if err := story.Append(time.Now(), prose); err != nil {
			fmt.Printf("%s\n", color.YellowString("Warning: could not write story journal: %v", err))
		} else {
			fmt.Printf("   Entry #%d written to %s\n", story.Count(), story.Path)
		}

		if !fromAI {
			fmt.Printf("%s\n", color.YellowString("Note: no AI assistant answered; a standard entry was written."))
		}
		printAIBox("TODAY'S CHAPTER", prose)
	},
}

func storyPrompt(fileCount int, s activity.Summary) string {
	if s.Empty {
		return "Write two sentences about an empty, brand-new software workspace."
	}
	return fmt.Sprintf("Write a short narrative paragraph (three sentences at most) about a "+
		"workspace of %d files whose last edit was %.0f minutes ago and whose developer is "+
		"in a %s state. Keep it warm and concrete, no bullet points.",
		fileCount, s.MinutesSinceEdit, s.State)
}

func init() {
	storyCmd.Flags().String("journal", "", "Story journal path (default from config)")
	rootCmd.AddCommand(storyCmd)
}

package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/aura-cli/aura/internal/carbon"
)

// printHeader prints the stylized section opener every command starts with.
func printHeader(emoji, title, message string, attr color.Attribute) {
	fmt.Printf("\n%s %s\n", emoji, color.New(attr, color.Bold).Sprint(title))
	fmt.Printf("   %s\n\n", color.New(attr).Sprint(message))
}

// printAIBox renders advisory text inside a box, the way the assistant's
// answers are always shown.
func printAIBox(title, text string) {
	lines := strings.Split(strings.TrimSpace(text), "\n")

	width := len(title)
	for _, line := range lines {
		if len(line) > width {
			width = len(line)
		}
	}
	if width > 80 {
		width = 80
	}

	cyan := color.New(color.FgCyan)
	fmt.Println()
	cyan.Printf("┌%s┐\n", strings.Repeat("─", width+2))
	cyan.Printf("│ %s │\n", centerText(title, width))
	cyan.Printf("├%s┤\n", strings.Repeat("─", width+2))
	for _, line := range lines {
		if len(line) > width {
			line = line[:width]
		}
		cyan.Printf("│ %-*s │\n", width, line)
	}
	cyan.Printf("└%s┘\n\n", strings.Repeat("─", width+2))
}

func centerText(s string, width int) string {
	if len(s) >= width {
		return s[:width]
	}
	left := (width - len(s)) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", width-len(s)-left)
}

// gradeColor maps every defined grade to its display color. E has a
// styling entry even though the grading rules never produce it.
func gradeColor(g carbon.Grade) *color.Color {
	switch g {
	case carbon.GradeA:
		return color.New(color.FgGreen, color.Bold)
	case carbon.GradeB:
		return color.New(color.FgGreen)
	case carbon.GradeC:
		return color.New(color.FgYellow)
	case carbon.GradeD:
		return color.New(color.FgYellow, color.Bold)
	case carbon.GradeE:
		return color.New(color.FgRed)
	case carbon.GradeF:
		return color.New(color.FgRed, color.Bold)
	}
	return color.New(color.FgWhite)
}

// bar renders a histogram bar scaled against the histogram's own maximum.
func bar(count, maxCount, width int) string {
	if maxCount < 1 {
		maxCount = 1
	}
	n := count * width / maxCount
	if count > 0 && n == 0 {
		n = 1
	}
	return strings.Repeat("█", n)
}

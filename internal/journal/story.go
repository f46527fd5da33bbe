package journal

import (
	"fmt"
	"strings"
	"time"
)

// DefaultStoryPath is the story journal location relative to the
// workspace root.
const DefaultStoryPath = ".aura/story.md"

// Story is the journal of timestamped prose entries about the workspace.
type Story struct {
	Path string
}

// NewStory creates a story journal writer for the given file.
func NewStory(path string) *Story {
	if path == "" {
		path = DefaultStoryPath
	}
	return &Story{Path: path}
}

// Append adds one timestamped prose entry.
func (s *Story) Append(now time.Time, prose string) error {
	var sb strings.Builder
	fmt.Fprintf(&sb, "### Story - %s\n\n", now.Format("2006-01-02 15:04:05"))
	sb.WriteString(strings.TrimSpace(prose))
	sb.WriteString("\n\n")
	return Append(s.Path, sb.String())
}

// Count returns how many story entries the journal holds. A missing
// journal holds zero.
func (s *Story) Count() int {
	content, err := Read(s.Path)
	if err != nil {
		return 0
	}
	return strings.Count(content, "### Story - ")
}

// Package journal handles the flat, append-only, human-readable files the
// audit engine persists between runs. Entries are only ever appended, so a
// concurrent run cannot destroy prior history. Readers tolerate files that
// do not exist yet.
package journal

import (
	"fmt"
	"os"
	"path/filepath"
)

// Append writes text to the end of the file at path, creating the file
// and its parent directory as needed.
func Append(path, text string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating journal directory: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("opening journal %s: %w", path, err)
	}
	defer f.Close()

	if _, err := f.WriteString(text); err != nil {
		return fmt.Errorf("appending to journal %s: %w", path, err)
	}
	return nil
}

// Read returns the journal's full content. A missing file is not an
// error: it reads as empty, meaning "no history yet".
func Read(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("reading journal %s: %w", path, err)
	}
	return string(data), nil
}

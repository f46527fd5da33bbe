package workspace

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

// FileRecord describes one regular file found during a walk.
// Records are ephemeral: every scan recomputes them from disk.
type FileRecord struct {
	Path    string
	ModTime time.Time
	Size    int64
	Mode    os.FileMode
}

// DefaultExcludeDirs lists directory names that are never descended into:
// version control, dependency caches, virtualenvs, and build output.
func DefaultExcludeDirs() []string {
	return []string{
		".git",
		".hg",
		"node_modules",
		".venv",
		"venv",
		"__pycache__",
		".pytest_cache",
		"vendor",
		"dist",
		"build",
		"target",
		".idea",
		".vscode",
	}
}

// Walker enumerates regular files under a root directory, pruning
// excluded directories. Individual unreadable entries are skipped;
// no single bad entry aborts a walk. Traversal order is whatever the
// filesystem yields; callers sort for themselves.
type Walker struct {
	// RootPath is the workspace root, resolved to an absolute path.
	RootPath string

	// ExcludeDirs are directory base names that are pruned entirely.
	ExcludeDirs map[string]struct{}

	logger zerolog.Logger
}

// NewWalker creates a walker with the default exclusion set.
// Returns an error if the rootPath cannot be resolved to an absolute path.
func NewWalker(rootPath string, logger zerolog.Logger) (*Walker, error) {
	absPath, err := filepath.Abs(rootPath)
	if err != nil {
		return nil, fmt.Errorf("invalid root path %q: %w", rootPath, err)
	}

	excludes := make(map[string]struct{})
	for _, d := range DefaultExcludeDirs() {
		excludes[d] = struct{}{}
	}

	return &Walker{
		RootPath:    absPath,
		ExcludeDirs: excludes,
		logger:      logger,
	}, nil
}

// Exclude adds extra directory names to the exclusion set.
func (w *Walker) Exclude(names ...string) {
	for _, n := range names {
		if n == "" {
			continue
		}
		w.ExcludeDirs[n] = struct{}{}
	}
}

// Walk returns every reachable regular file with its metadata.
// Permission errors, vanished entries, and unreadable metadata are
// skipped without failing the walk.
func (w *Walker) Walk(ctx context.Context) ([]FileRecord, error) {
	var records []FileRecord

	err := filepath.WalkDir(w.RootPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable entry: skip it, keep walking.
			w.logger.Debug().Str("path", path).Err(err).Msg("skipping unreadable entry")
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if d.IsDir() {
			if _, excluded := w.ExcludeDirs[d.Name()]; excluded && path != w.RootPath {
				return filepath.SkipDir
			}
			return nil
		}

		if !d.Type().IsRegular() {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			// Entry vanished between readdir and stat.
			w.logger.Debug().Str("path", path).Err(err).Msg("skipping file with unreadable metadata")
			return nil
		}

		records = append(records, FileRecord{
			Path:    path,
			ModTime: info.ModTime(),
			Size:    info.Size(),
			Mode:    info.Mode(),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", w.RootPath, err)
	}

	return records, nil
}

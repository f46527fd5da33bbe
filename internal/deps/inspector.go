// Package deps summarizes a workspace's Go dependency ecosystem from its
// go.mod file.
package deps

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/rs/zerolog"
	"golang.org/x/mod/modfile"
)

// Require is one module requirement.
type Require struct {
	Path     string
	Version  string
	Indirect bool
}

// Summary describes the dependency ecosystem of a Go workspace.
type Summary struct {
	ModulePath string
	GoVersion  string
	Direct     []Require
	Indirect   int
}

// Inspect reads go.mod at the workspace root. A missing or unparsable
// go.mod is not an error: it returns nil, meaning "no Go module
// detected", and the caller reports that as an informational note.
func Inspect(root string, logger zerolog.Logger) *Summary {
	path := filepath.Join(root, "go.mod")

	data, err := os.ReadFile(path)
	if err != nil {
		logger.Debug().Str("path", path).Err(err).Msg("no go.mod to inspect")
		return nil
	}

	modFile, err := modfile.Parse(path, data, nil)
	if err != nil {
		logger.Debug().Str("path", path).Err(err).Msg("go.mod did not parse")
		return nil
	}

	summary := &Summary{}
	if modFile.Module != nil {
		summary.ModulePath = modFile.Module.Mod.Path
	}
	if modFile.Go != nil {
		summary.GoVersion = modFile.Go.Version
	}

	for _, req := range modFile.Require {
		if req.Indirect {
			summary.Indirect++
			continue
		}
		summary.Direct = append(summary.Direct, Require{
			Path:    req.Mod.Path,
			Version: req.Mod.Version,
		})
	}

	sort.Slice(summary.Direct, func(i, j int) bool {
		return summary.Direct[i].Path < summary.Direct[j].Path
	})

	return summary
}

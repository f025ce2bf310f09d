package preflight

import (
	"context"
	"path/filepath"

	"cinelookup/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes all applicable preflight checks for the given config.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{
		CheckTMDB(ctx, cfg),
		CheckOMDb(ctx, cfg),
	}

	if cfg.Artwork.Enabled {
		results = append(results, CheckDirectoryAccess("Artwork cache", cfg.Artwork.Dir))
	} else {
		results = append(results, Result{Name: "Artwork cache", Passed: true, Detail: "Disabled"})
	}

	if cfg.History.Enabled {
		results = append(results, CheckDirectoryAccess("History directory", filepath.Dir(cfg.History.Path)))
	}

	return results
}

// Failed counts results that did not pass.
func Failed(results []Result) int {
	n := 0
	for _, r := range results {
		if !r.Passed {
			n++
		}
	}
	return n
}

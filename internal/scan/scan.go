// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package scan compares every pair of files in a folder. Pairs run on a
// bounded worker pool; cancellation is checked between pairs, and pairs
// already in flight finish.
package scan

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/swcompare/internal/logging"
	"github.com/pdiddy/swcompare/pkg/types"
)

// Comparer compares one pair. *compare.Comparator satisfies it.
type Comparer interface {
	CompareFiles(path1, path2 string) types.ComparisonResult
}

// Observer receives every finished comparison. *metrics.Metrics
// satisfies it.
type Observer interface {
	Observe(r types.ComparisonResult, elapsed time.Duration)
}

// Options holds the optional collaborators of a run.
type Options struct {
	Logger   *slog.Logger
	Observer Observer

	// Progress is called after each pair with the number of pairs
	// processed so far and the number scheduled. Calls are serialized.
	Progress func(processed, total int)
}

// ListFiles returns the regular files directly inside folder whose
// extension is in group's allow-list, sorted by name.
func ListFiles(folder string, group types.FileTypeGroup) ([]string, error) {
	if _, err := group.Extensions(); err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(folder)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", folder, err)
	}

	var files []string
	for _, e := range entries {
		path := filepath.Join(folder, e.Name())
		if !group.Accepts(path) {
			continue
		}
		st, err := os.Stat(path)
		if err != nil || !st.Mode().IsRegular() {
			continue
		}
		files = append(files, path)
	}
	slices.Sort(files)
	return files, nil
}

// Pairs returns every unordered pair i<j of files, keeping the order of
// files within each pair.
func Pairs(files []string) [][2]string {
	if len(files) < 2 {
		return nil
	}
	pairs := make([][2]string, 0, len(files)*(len(files)-1)/2)
	for i := range files {
		for j := i + 1; j < len(files); j++ {
			pairs = append(pairs, [2]string{files[i], files[j]})
		}
	}
	return pairs
}

// Run compares every pair of files in cfg.Folder and keeps those whose
// total is at least cfg.MinScore. It fails only when the folder cannot
// be listed; a cancelled run returns the pairs compared so far with
// Summary.Cancelled set.
func Run(ctx context.Context, cfg types.ScanConfig, c Comparer, opts Options) (types.BatchResult, error) {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	group := cfg.FileType
	if group == "" {
		group = types.GroupAll
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	summary := types.BatchSummary{
		RunID:     uuid.NewString(),
		Folder:    cfg.Folder,
		FileType:  group,
		MinScore:  cfg.MinScore,
		StartedAt: time.Now(),
	}
	files, err := ListFiles(cfg.Folder, group)
	if err != nil {
		return types.BatchResult{Summary: summary}, err
	}
	pairs := Pairs(files)
	summary.Files = len(files)
	summary.Pairs = len(pairs)

	logger = logger.With("run_id", summary.RunID)
	logger.Info("scan started", "folder", cfg.Folder, "files", len(files), "pairs", len(pairs), "workers", workers)

	var mu sync.Mutex
	kept := make([]types.ComparisonResult, 0)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, p := range pairs {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if gctx.Err() != nil {
				return nil
			}
			start := time.Now()
			r := c.CompareFiles(p[0], p[1])
			elapsed := time.Since(start)
			if opts.Observer != nil {
				opts.Observer.Observe(r, elapsed)
			}
			if r.Category == types.CategoryError {
				logger.Warn("pair failed", "file1", p[0], "file2", p[1], "error", r.Error)
			}

			mu.Lock()
			defer mu.Unlock()
			summary.Compared++
			if r.Category == types.CategoryError {
				summary.Errors++
			}
			if r.Total >= cfg.MinScore {
				kept = append(kept, r)
			}
			if opts.Progress != nil {
				opts.Progress(summary.Compared, len(pairs))
			}
			return nil
		})
	}
	_ = g.Wait()

	SortResults(kept)
	summary.Kept = len(kept)
	summary.Cancelled = summary.Compared < summary.Pairs && ctx.Err() != nil
	summary.Duration = time.Since(summary.StartedAt)

	logger.Info("scan finished",
		"compared", summary.Compared, "kept", summary.Kept,
		"errors", summary.Errors, "cancelled", summary.Cancelled,
		"duration", summary.Duration)
	return types.BatchResult{Summary: summary, Results: kept}, nil
}

// SortResults orders results by total descending, then by file names.
func SortResults(results []types.ComparisonResult) {
	slices.SortFunc(results, func(a, b types.ComparisonResult) int {
		if c := cmp.Compare(b.Total, a.Total); c != 0 {
			return c
		}
		if c := cmp.Compare(a.File1, b.File1); c != 0 {
			return c
		}
		return cmp.Compare(a.File2, b.File2)
	})
}

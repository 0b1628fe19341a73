package corpus

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"github.com/sourcegraph/conc/pool"
)

// FileStat describes one corpus file.
type FileStat struct {
	Path string
	Size int64
}

// Summary is the result of inspecting a corpus before training.
type Summary struct {
	Files      []FileStat
	TotalBytes int64
}

// Inspect stats every file concurrently and fails with ErrEmptyCorpus when
// there is nothing to train on. Files keep the order of paths.
func Inspect(ctx context.Context, paths []string) (*Summary, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("%w: no matching files", ErrEmptyCorpus)
	}

	// I/O bound: CPU cores * 2, bounded to keep file handles in check
	maxWorkers := min(max(runtime.NumCPU()*2, 4), 32)
	p := pool.New().WithMaxGoroutines(maxWorkers).WithContext(ctx).WithCancelOnError()

	stats := make([]FileStat, len(paths))
	for i, path := range paths {
		p.Go(func(ctx context.Context) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			fi, err := os.Stat(path)
			if err != nil {
				return fmt.Errorf("failed to stat %s: %w", path, err)
			}
			stats[i] = FileStat{Path: path, Size: fi.Size()}
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return nil, err
	}

	summary := &Summary{Files: stats}
	for _, s := range stats {
		summary.TotalBytes += s.Size
	}
	if summary.TotalBytes == 0 {
		return nil, fmt.Errorf("%w: %d files, all empty", ErrEmptyCorpus, len(stats))
	}
	return summary, nil
}

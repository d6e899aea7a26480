// Package vacuum compacts a hive database. Deletes are immediate, so what
// vacuum reclaims is the free pages they leave in the file.
package vacuum

import (
	"context"
	"fmt"
	"io"

	"github.com/jpl-au/hive/internal/progress"
	"github.com/jpl-au/hive/internal/service"
)

// Options configures a vacuum.
type Options struct {
	DryRun bool // Report free space without rebuilding
}

// Result reports what was, or would be, reclaimed.
type Result struct {
	Reclaimed int64 `json:"reclaimed"`  // Bytes returned to the filesystem
	FreePages int64 `json:"free_pages"` // Unused pages before the rebuild
	DryRun    bool  `json:"dry_run,omitempty"`
}

// Run rebuilds the database file.
func Run(ctx context.Context, w io.Writer, svc service.Service, opts Options) (Result, error) {
	free, size, err := freeSpace(ctx, svc)
	if err != nil {
		return Result{}, err
	}
	res := Result{FreePages: free, DryRun: opts.DryRun}

	if opts.DryRun {
		if free == 0 {
			fmt.Fprintln(w, "Nothing to vacuum")
			return res, nil
		}
		res.Reclaimed = free * size
		fmt.Fprintf(w, "Would reclaim about %d byte(s) from %d free page(s)\n", res.Reclaimed, free)
		return res, nil
	}

	spin := progress.NewSpinner("Vacuuming")
	spin.Start()
	n, err := svc.Vacuum(ctx)
	spin.Stop()
	if err != nil {
		return res, err
	}

	res.Reclaimed = n
	if n == 0 {
		fmt.Fprintln(w, "Nothing to vacuum")
	} else {
		fmt.Fprintf(w, "Reclaimed %d byte(s)\n", n)
	}
	return res, nil
}

// freeSpace returns the free page count and the page size.
func freeSpace(ctx context.Context, svc service.Service) (int64, int64, error) {
	var free, size int64
	if err := svc.DB().QueryRowContext(ctx, `PRAGMA freelist_count`).Scan(&free); err != nil {
		return 0, 0, fmt.Errorf("freelist: %w", err)
	}
	if err := svc.DB().QueryRowContext(ctx, `PRAGMA page_size`).Scan(&size); err != nil {
		return 0, 0, fmt.Errorf("page size: %w", err)
	}
	return free, size, nil
}

package usecase

import (
	"context"
	"fmt"
	"sync"

	"driprun/internal/domain"
	"driprun/pkg/jitter"
)

// runBatches slices the worklist into contiguous windows of BatchSize and
// processes them strictly in sequence: every retry loop of a window must
// reach its terminal state before the next window starts. Returns the
// number of batches started.
func (r *Runner) runBatches(ctx context.Context, cfg domain.RunConfig, work []domain.Identity, coll *collector) (int, error) {
	batches := 0
	for start := 0; start < len(work); start += cfg.BatchSize {
		if err := ctx.Err(); err != nil {
			return batches, err
		}
		end := min(start+cfg.BatchSize, len(work))
		batches++
		r.hub.Publish(fmt.Sprintf("processing rows %d to %d", start, end))

		var wg sync.WaitGroup
		for _, id := range work[start:end] {
			wg.Add(1)
			go func(id domain.Identity) {
				defer wg.Done()
				// Stagger launches so the accounts of a batch do not all
				// fire their first attempt at once.
				if err := jitter.Wait(ctx, r.pacing.StaggerMin, r.pacing.StaggerSpan); err != nil {
					return
				}
				r.runAccount(ctx, cfg, id, coll)
			}(id)
		}
		wg.Wait()
	}
	return batches, ctx.Err()
}

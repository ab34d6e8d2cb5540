package core

import (
	"context"
	"fmt"
	"sync"

	"github.com/courtside/watchdex/internal/contract"
	"github.com/courtside/watchdex/schema"
)

// extractBatch processes a list of game ids through the metric extractor
// using a worker pool. Results keep schedule order regardless of completion
// timing, so the final ranking is deterministic. A game whose extraction
// fails is logged and dropped; it never aborts the batch.
func extractBatch(ctx context.Context, cfg *contract.Config, provider contract.StatsProvider, ids []string) []schema.GameRecord {
	type job struct {
		idx int
		id  string
	}

	jobCh := make(chan job, len(ids))
	slots := make([]*schema.GameRecord, len(ids))
	var wg sync.WaitGroup

	workers := cfg.Workers
	if workers > len(ids) {
		workers = len(ids)
	}

	for range workers {
		wg.Go(func() {
			for j := range jobCh {
				if ctx.Err() != nil {
					return
				}
				fmt.Printf("Processing game %d/%d: %s\n", j.idx+1, len(ids), j.id)
				rec, err := ExtractGame(ctx, provider, j.id)
				if err != nil {
					contract.LogWarn(fmt.Sprintf("skipping game %s", j.id), err)
					continue
				}
				// Each worker writes a unique slot, so no locking is needed.
				slots[j.idx] = &rec
			}
		})
	}

	for i, id := range ids {
		jobCh <- job{idx: i, id: id}
	}
	close(jobCh)
	wg.Wait()

	records := make([]schema.GameRecord, 0, len(ids))
	for _, rec := range slots {
		if rec != nil {
			records = append(records, *rec)
		}
	}
	return records
}

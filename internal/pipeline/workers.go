package pipeline

import (
	"runtime"
	"sync"

	"ledgerline/statement-ingest/internal/models"
	"ledgerline/statement-ingest/internal/normalizer"
)

// concurrencyThreshold is the batch size below which normalization runs
// sequentially; small statements do not pay for worker setup.
const concurrencyThreshold = 200

type normResult struct {
	candidate models.TransactionCandidate
	ok        bool
}

// normalizeRows converts the batch to candidates, preserving row order.
// Large batches are spread over a worker pool; results are written into an
// index-aligned slice so concurrency cannot reorder the output.
func normalizeRows(norm *normalizer.Normalizer, rows []models.Row, mapping models.RoleMapping) []models.TransactionCandidate {
	results := make([]normResult, len(rows))

	if len(rows) < concurrencyThreshold {
		for i, row := range rows {
			results[i].candidate, results[i].ok = norm.Normalize(row, mapping)
		}
	} else {
		workers := runtime.NumCPU()
		if workers > 8 {
			workers = 8
		}

		jobs := make(chan int)
		var wg sync.WaitGroup
		wg.Add(workers)
		for w := 0; w < workers; w++ {
			go func() {
				defer wg.Done()
				for i := range jobs {
					results[i].candidate, results[i].ok = norm.Normalize(rows[i], mapping)
				}
			}()
		}
		for i := range rows {
			jobs <- i
		}
		close(jobs)
		wg.Wait()
	}

	candidates := make([]models.TransactionCandidate, 0, len(rows))
	for _, r := range results {
		if r.ok {
			candidates = append(candidates, r.candidate)
		}
	}
	return candidates
}

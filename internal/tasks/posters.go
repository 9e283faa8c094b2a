package tasks

import (
	"context"
	"sync"

	"github.com/desertthunder/trackplay/internal/models"
)

const defaultPosterWorkers = 5

// EnrichWithPosters attaches poster URLs to entries that carry an IMDB ID.
//
// Lookups are issued as an unordered concurrent fan-out through a bounded
// worker pool and joined before returning. A failed lookup leaves that
// entry's PosterURL empty and never cancels the other lookups; entries
// without an IMDB ID pass through without touching the artwork client.
func (e *WatchEngine) EnrichWithPosters(ctx context.Context, progress chan<- ProgressUpdate, entries []models.Recommendation) []models.Recommendation {
	if e.artwork == nil || len(entries) == 0 {
		return entries
	}

	enriched := make([]models.Recommendation, len(entries))
	copy(enriched, entries)

	jobs := make(chan int, len(enriched))
	for i, entry := range enriched {
		if entry.ImdbID == "" {
			continue
		}
		jobs <- i
	}
	total := len(jobs)
	close(jobs)

	if total == 0 {
		return enriched
	}

	e.sendProgress(progress, fetchPostersUpdate(0, total))

	workers := e.posterWorkers
	if workers <= 0 {
		workers = defaultPosterWorkers
	}
	if workers > total {
		workers = total
	}

	var wg sync.WaitGroup

	completed := 0
	var mu sync.Mutex

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				// Each worker writes a distinct index; no lock needed for
				// the slice itself.
				url, err := e.artwork.PosterByImdbID(ctx, enriched[i].ImdbID, enriched[i].Type)
				if err == nil {
					enriched[i].PosterURL = url
				}

				mu.Lock()
				completed++
				e.sendProgress(progress, fetchPostersUpdate(completed, total))
				mu.Unlock()
			}
		}()
	}

	wg.Wait()
	return enriched
}

package service

import (
	"context"
	"sync"

	"github.com/timmy/solarmatch/internal/domain"
	"github.com/timmy/solarmatch/internal/logger"
	"github.com/timmy/solarmatch/internal/matching"
	"github.com/timmy/solarmatch/internal/metrics"
)

// scoreAll scores every professional in pool against job using a bounded pool
// of workers. Results are returned in pool order, one per professional, with
// failures carried in Candidate.Err.
func scoreAll(ctx context.Context, job *domain.Job, pool []domain.Professional, c matching.Criteria, workers int) []matching.Candidate {
	results := make([]matching.Candidate, len(pool))
	if len(pool) == 0 {
		return results
	}
	if workers <= 0 {
		workers = 1
	}
	if workers > len(pool) {
		workers = len(pool)
	}

	indexes := make(chan int, workers*2)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range indexes {
				pro := &pool[idx]
				b, err := matching.Score(job, pro, c)
				results[idx] = matching.Candidate{Professional: pro, Breakdown: b, Err: err}
			}
		}()
	}

	for i := range pool {
		indexes <- i
	}
	close(indexes)
	wg.Wait()

	for _, cand := range results {
		if cand.OK() {
			metrics.CandidatesScored.Inc()
			continue
		}
		metrics.CandidateFailures.Inc()
		logger.FromContext(logger.SetProfessionalID(ctx, cand.Professional.ID)).
			WithError(cand.Err).
			Warn("Excluding candidate: scoring failed")
	}
	return results
}

package service

import (
	"context"
	"errors"
	"time"

	"github.com/timmy/solarmatch/internal/domain"
	"github.com/timmy/solarmatch/internal/logger"
)

// RematchStats summarises a RematchPending run.
type RematchStats struct {
	TotalJobs      int       `json:"total_jobs"`
	MatchedJobs    int       `json:"matched_jobs"`
	MatchesCreated int       `json:"matches_created"`
	FailedJobs     int       `json:"failed_jobs"`
	StartTime      time.Time `json:"start_time"`
	EndTime        time.Time `json:"end_time"`
}

// RematchPending runs FindMatches with default criteria for every PENDING job,
// oldest first. A failure on one job is logged and counted; the run continues.
// Parameters:
//   - ctx: context for cancellation; the run stops between jobs when it is done.
//   - limit: maximum number of jobs to process; non-positive means all.
//
// Returns:
//   - *RematchStats: counts for the jobs processed.
//   - error: non-nil only if the pending jobs could not be listed or ctx was cancelled.
func (s *MatchService) RematchPending(ctx context.Context, limit int) (*RematchStats, error) {
	stats := &RematchStats{StartTime: time.Now()}
	ctx = logger.SetComponent(ctx, "rematch")

	jobs, err := s.jobs.ListJobsByStatus(ctx, domain.JobStatusPending, limit)
	if err != nil {
		return nil, err
	}
	stats.TotalJobs = len(jobs)
	logger.With(logger.Fields{logger.FieldCount: len(jobs)}).Info(ctx, "Starting rematch of pending jobs")

	for _, job := range jobs {
		if ctx.Err() != nil {
			stats.EndTime = time.Now()
			return stats, ctx.Err()
		}

		results, err := s.FindMatches(ctx, job.ID, nil)
		if err != nil {
			stats.FailedJobs++
			l := logger.FromContext(logger.SetJobID(ctx, job.ID)).WithError(err)
			if errors.Is(err, domain.ErrValidation) {
				l.Warn("Skipping job during rematch")
			} else {
				l.Error("Rematch failed for job")
			}
			continue
		}
		if len(results) > 0 {
			stats.MatchedJobs++
			stats.MatchesCreated += len(results)
		}
	}

	stats.EndTime = time.Now()
	logger.With(logger.Fields{
		"total":   stats.TotalJobs,
		"matched": stats.MatchedJobs,
		"created": stats.MatchesCreated,
		"failed":  stats.FailedJobs,
	}).WithDuration(stats.EndTime.Sub(stats.StartTime)).Info(ctx, "Rematch finished")

	return stats, nil
}

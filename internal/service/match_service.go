package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/timmy/solarmatch/internal/domain"
	"github.com/timmy/solarmatch/internal/logger"
	"github.com/timmy/solarmatch/internal/matching"
	"github.com/timmy/solarmatch/internal/metrics"
)

// JobStore is the job collaborator.
type JobStore interface {
	GetJob(ctx context.Context, id int64) (*domain.Job, error)
	SetJobStatus(ctx context.Context, id int64, status domain.JobStatus) error
	ListJobsByStatus(ctx context.Context, status domain.JobStatus, limit int) ([]domain.Job, error)
}

// ProfessionalStore is the professional collaborator.
type ProfessionalStore interface {
	GetProfessionalPool(ctx context.Context, verifiedOnly bool) ([]domain.Professional, error)
	ProfessionalExists(ctx context.Context, id int64) (bool, error)
	GetProfessionalsByIDs(ctx context.Context, ids []int64) (map[int64]*domain.Professional, error)
}

// MatchStore is the match collaborator. SaveMatch must return an error wrapping
// domain.ErrAlreadyMatched when the (job, professional) pair already exists.
type MatchStore interface {
	MatchExists(ctx context.Context, jobID, professionalID int64) (bool, error)
	SaveMatch(ctx context.Context, match *domain.Match) (*domain.Match, error)
	FindMatchesForJob(ctx context.Context, jobID int64) ([]domain.Match, error)
	FindMatchesForProfessional(ctx context.Context, professionalID int64) ([]domain.Match, error)
	GetMatch(ctx context.Context, id int64) (*domain.Match, error)
	UpdateMatchStatus(ctx context.Context, id int64, status domain.MatchStatus) (*domain.Match, error)
	DeleteMatch(ctx context.Context, id int64) error
}

// MatchResult is a match as returned to callers: the stored record, its score
// breakdown and the professional's contact summary.
type MatchResult struct {
	MatchID            int64                   `json:"match_id"`
	JobID              int64                   `json:"job_id"`
	ProfessionalID     int64                   `json:"professional_id"`
	CompanyName        string                  `json:"company_name,omitempty"`
	Email              string                  `json:"email,omitempty"`
	Phone              string                  `json:"phone,omitempty"`
	Rating             float64                 `json:"rating"`
	TotalJobsCompleted int                     `json:"total_jobs_completed"`
	Status             domain.MatchStatus      `json:"status"`
	Score              matching.ScoreBreakdown `json:"score"`
	CreatedAt          time.Time               `json:"created_at"`
}

func newMatchResult(m *domain.Match, pro *domain.Professional, b matching.ScoreBreakdown) MatchResult {
	r := MatchResult{
		MatchID:        m.ID,
		JobID:          m.JobID,
		ProfessionalID: m.ProfessionalID,
		Status:         m.Status,
		Score:          b,
		CreatedAt:      m.CreatedAt,
	}
	if pro != nil {
		r.CompanyName = pro.CompanyName
		r.Email = pro.Email
		r.Phone = pro.Phone
		r.Rating = pro.Rating
		r.TotalJobsCompleted = pro.TotalJobsCompleted
	}
	return r
}

// storedBreakdown rebuilds a breakdown from a persisted match. Reasons are not stored.
func storedBreakdown(m *domain.Match) matching.ScoreBreakdown {
	return matching.ScoreBreakdown{
		DistanceKm:        m.DistanceKm,
		DistanceScore:     m.DistanceScore,
		ExpertiseScore:    m.ExpertiseScore,
		AvailabilityScore: m.AvailabilityScore,
		RatingScore:       m.RatingScore,
		PriceScore:        m.PriceScore,
		TotalScore:        m.MatchScore,
	}
}

// MatchServiceConfig tunes a MatchService.
type MatchServiceConfig struct {
	Workers int
}

// MatchService ranks professionals for jobs and manages the resulting matches.
type MatchService struct {
	jobs    JobStore
	pros    ProfessionalStore
	matches MatchStore
	locker  JobLocker
	archive *RankingArchive
	workers int
	now     func() time.Time
}

// NewMatchService creates a MatchService. A nil locker falls back to NoopLocker
// and a nil archive disables report archiving.
func NewMatchService(
	jobs JobStore,
	pros ProfessionalStore,
	matches MatchStore,
	locker JobLocker,
	archive *RankingArchive,
	cfg *MatchServiceConfig,
) *MatchService {
	if locker == nil {
		locker = NoopLocker{}
	}
	workers := 1
	if cfg != nil && cfg.Workers > 0 {
		workers = cfg.Workers
	}
	return &MatchService{
		jobs:    jobs,
		pros:    pros,
		matches: matches,
		locker:  locker,
		archive: archive,
		workers: workers,
		now:     time.Now,
	}
}

// FindMatches scores the candidate pool against a job, persists the new matches
// that clear the threshold and returns them in ranked order.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - jobID: job to match.
//   - overrides: optional criteria overrides; nil uses the defaults.
//
// Returns:
//   - []MatchResult: newly created matches, best first. Pairs matched by an
//     earlier run are skipped and not returned.
//   - error: domain.ErrNotFound for an unknown job, domain.ErrValidation for bad
//     criteria, invalid job data or a job that is not PENDING or MATCHED.
func (s *MatchService) FindMatches(ctx context.Context, jobID int64, overrides *matching.Overrides) ([]MatchResult, error) {
	start := time.Now()
	ctx = logger.SetJobID(logger.SetComponent(ctx, "matcher"), jobID)

	results, err := s.findMatches(ctx, jobID, overrides)

	outcome := metrics.OutcomeMatched
	switch {
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrNotFound):
		outcome = metrics.OutcomeRejected
	case err != nil:
		outcome = metrics.OutcomeError
	case len(results) == 0:
		outcome = metrics.OutcomeNoMatches
	}
	metrics.ObserveRun(outcome, time.Since(start))

	if err != nil {
		return nil, err
	}
	logger.With(logger.Fields{logger.FieldCount: len(results)}).
		WithDuration(time.Since(start)).
		Info(ctx, "Matching run finished")
	return results, nil
}

func (s *MatchService) findMatches(ctx context.Context, jobID int64, overrides *matching.Overrides) ([]MatchResult, error) {
	criteria, err := matching.NewCriteria(overrides)
	if err != nil {
		return nil, err
	}

	unlock, err := s.locker.Lock(ctx, jobID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	job, err := s.jobs.GetJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if !job.Status.Matchable() {
		return nil, domain.Invalid("job %d is %s; matching requires PENDING or MATCHED", job.ID, job.Status)
	}
	if err := job.Validate(); err != nil {
		return nil, err
	}

	pool, err := s.pros.GetProfessionalPool(ctx, criteria.VerifiedOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to load candidate pool: %w", err)
	}

	runAt := s.now()
	scored := scoreAll(ctx, job, pool, criteria, s.workers)
	ranked := matching.Rank(scored, criteria)

	logger.With(logger.Fields{
		logger.FieldCandidates: len(pool),
		"ranked":               len(ranked),
	}).Debug(ctx, "Candidates ranked")

	report := newRankingReport(job.ID, runAt, criteria, scored, ranked)
	results, persistErr := s.persistRanked(ctx, job, ranked, report)

	// Matches stored before a failed save still move the job forward.
	if len(results) > 0 && job.Status == domain.JobStatusPending {
		if err := s.jobs.SetJobStatus(ctx, job.ID, domain.JobStatusMatched); err != nil {
			return nil, fmt.Errorf("failed to mark job %d matched: %w", job.ID, err)
		}
	}
	if persistErr != nil {
		return nil, persistErr
	}

	if key, err := s.archive.Save(ctx, report); err != nil {
		logger.CtxWarn(ctx, "Failed to archive ranking report: %v", err)
	} else if key != "" {
		logger.CtxDebug(ctx, "Archived ranking report to %s", key)
	}

	return results, nil
}

// persistRanked stores a match for every ranked candidate not matched before.
// A pair that already exists, whether found by the check or by the unique
// index on insert, is skipped. On any other error the matches stored so far are
// returned with it.
func (s *MatchService) persistRanked(ctx context.Context, job *domain.Job, ranked []matching.Candidate, report *RankingReport) ([]MatchResult, error) {
	results := make([]MatchResult, 0, len(ranked))
	for _, cand := range ranked {
		pro := cand.Professional

		exists, err := s.matches.MatchExists(ctx, job.ID, pro.ID)
		if err != nil {
			return results, fmt.Errorf("failed to check existing match for professional %d: %w", pro.ID, err)
		}
		if exists {
			s.skipDuplicate(ctx, pro.ID, report)
			continue
		}

		b := cand.Breakdown
		saved, err := s.matches.SaveMatch(ctx, &domain.Match{
			JobID:             job.ID,
			ProfessionalID:    pro.ID,
			MatchScore:        b.TotalScore,
			DistanceKm:        b.DistanceKm,
			DistanceScore:     b.DistanceScore,
			ExpertiseScore:    b.ExpertiseScore,
			AvailabilityScore: b.AvailabilityScore,
			RatingScore:       b.RatingScore,
			PriceScore:        b.PriceScore,
			Status:            domain.MatchStatusSuggested,
		})
		if errors.Is(err, domain.ErrAlreadyMatched) {
			s.skipDuplicate(ctx, pro.ID, report)
			continue
		}
		if err != nil {
			return results, fmt.Errorf("failed to save match for professional %d: %w", pro.ID, err)
		}

		metrics.MatchesCreated.Inc()
		report.PersistedMatchIDs = append(report.PersistedMatchIDs, saved.ID)
		results = append(results, newMatchResult(saved, pro, b))
	}
	return results, nil
}

func (s *MatchService) skipDuplicate(ctx context.Context, professionalID int64, report *RankingReport) {
	metrics.DuplicateSkips.Inc()
	report.SkippedDuplicates++
	logger.CtxDebug(logger.SetProfessionalID(ctx, professionalID), "Skipping already matched professional")
}

// GetMatchesForJob returns a job's stored matches, best score first.
func (s *MatchService) GetMatchesForJob(ctx context.Context, jobID int64) ([]MatchResult, error) {
	if _, err := s.jobs.GetJob(ctx, jobID); err != nil {
		return nil, err
	}
	matches, err := s.matches.FindMatchesForJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	return s.enrich(ctx, matches)
}

// GetMatchesForProfessional returns a professional's stored matches, newest first.
func (s *MatchService) GetMatchesForProfessional(ctx context.Context, professionalID int64) ([]MatchResult, error) {
	exists, err := s.pros.ProfessionalExists(ctx, professionalID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.NotFound("professional", professionalID)
	}
	matches, err := s.matches.FindMatchesForProfessional(ctx, professionalID)
	if err != nil {
		return nil, err
	}
	return s.enrich(ctx, matches)
}

// UpdateMatchStatus sets a match's status. Only existence of the match is checked.
func (s *MatchService) UpdateMatchStatus(ctx context.Context, matchID int64, status domain.MatchStatus) (*MatchResult, error) {
	if !status.Valid() {
		return nil, domain.Invalid("unknown match status %q", status)
	}
	ctx = logger.SetMatchID(ctx, matchID)

	match, err := s.matches.UpdateMatchStatus(ctx, matchID, status)
	if err != nil {
		return nil, err
	}
	metrics.MatchStatusUpdates.WithLabelValues(string(status)).Inc()
	logger.With(logger.Fields{logger.FieldStatus: status}).Info(ctx, "Match status updated")

	results, err := s.enrich(ctx, []domain.Match{*match})
	if err != nil {
		return nil, err
	}
	return &results[0], nil
}

// DeleteMatch removes a match.
func (s *MatchService) DeleteMatch(ctx context.Context, matchID int64) error {
	if err := s.matches.DeleteMatch(ctx, matchID); err != nil {
		return err
	}
	logger.CtxInfo(logger.SetMatchID(ctx, matchID), "Match deleted")
	return nil
}

func (s *MatchService) enrich(ctx context.Context, matches []domain.Match) ([]MatchResult, error) {
	ids := make([]int64, 0, len(matches))
	seen := make(map[int64]bool, len(matches))
	for _, m := range matches {
		if !seen[m.ProfessionalID] {
			seen[m.ProfessionalID] = true
			ids = append(ids, m.ProfessionalID)
		}
	}
	pros, err := s.pros.GetProfessionalsByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load professionals: %w", err)
	}

	results := make([]MatchResult, 0, len(matches))
	for i := range matches {
		m := &matches[i]
		results = append(results, newMatchResult(m, pros[m.ProfessionalID], storedBreakdown(m)))
	}
	return results, nil
}

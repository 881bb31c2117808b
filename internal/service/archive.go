package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/timmy/solarmatch/internal/domain"
	"github.com/timmy/solarmatch/internal/matching"
	"github.com/timmy/solarmatch/internal/storage"
)

// RankingReport is the archived record of one matching run: every candidate
// that was scored, every failure, and what was persisted.
type RankingReport struct {
	JobID             int64               `json:"job_id"`
	RunAt             time.Time           `json:"run_at"`
	Criteria          matching.Criteria   `json:"criteria"`
	Candidates        []ArchivedCandidate `json:"candidates"`
	Failures          []ArchivedFailure   `json:"failures,omitempty"`
	PersistedMatchIDs []int64             `json:"persisted_match_ids"`
	SkippedDuplicates int                 `json:"skipped_duplicates"`
}

// ArchivedCandidate is one successfully scored professional. Ranked reports
// whether it cleared the threshold and cap.
type ArchivedCandidate struct {
	ProfessionalID int64                   `json:"professional_id"`
	Breakdown      matching.ScoreBreakdown `json:"breakdown"`
	Ranked         bool                    `json:"ranked"`
}

// ArchivedFailure is a professional excluded because scoring failed.
type ArchivedFailure struct {
	ProfessionalID int64  `json:"professional_id"`
	Error          string `json:"error"`
}

func newRankingReport(jobID int64, runAt time.Time, c matching.Criteria, scored, ranked []matching.Candidate) *RankingReport {
	inRanking := make(map[int64]bool, len(ranked))
	for _, r := range ranked {
		inRanking[r.Professional.ID] = true
	}

	report := &RankingReport{JobID: jobID, RunAt: runAt, Criteria: c}
	for _, cand := range scored {
		if !cand.OK() {
			report.Failures = append(report.Failures, ArchivedFailure{
				ProfessionalID: cand.Professional.ID,
				Error:          cand.Err.Error(),
			})
			continue
		}
		report.Candidates = append(report.Candidates, ArchivedCandidate{
			ProfessionalID: cand.Professional.ID,
			Breakdown:      cand.Breakdown,
			Ranked:         inRanking[cand.Professional.ID],
		})
	}
	return report
}

// RankingArchive writes ranking reports to object storage as JSON.
// A nil *RankingArchive discards reports.
type RankingArchive struct {
	store  storage.ObjectStorage
	prefix string
}

// NewRankingArchive creates an archive writing under prefix.
func NewRankingArchive(store storage.ObjectStorage, prefix string) *RankingArchive {
	return &RankingArchive{store: store, prefix: strings.Trim(prefix, "/")}
}

// Key returns the object key for a report.
func (a *RankingArchive) Key(r *RankingReport) string {
	key := fmt.Sprintf("job-%d/%d.json", r.JobID, r.RunAt.UnixNano())
	if a.prefix == "" {
		return key
	}
	return a.prefix + "/" + key
}

// Save uploads r and returns its key.
func (a *RankingArchive) Save(ctx context.Context, r *RankingReport) (string, error) {
	if a == nil || a.store == nil {
		return "", nil
	}
	body, err := json.Marshal(r)
	if err != nil {
		return "", fmt.Errorf("failed to encode ranking report: %w", err)
	}
	key := a.Key(r)
	if err := a.store.Upload(ctx, key, bytes.NewReader(body), int64(len(body)), "application/json"); err != nil {
		return "", err
	}
	return key, nil
}

// Load downloads and decodes the report stored at key.
func (a *RankingArchive) Load(ctx context.Context, key string) (*RankingReport, error) {
	if a == nil || a.store == nil {
		return nil, fmt.Errorf("ranking archive is disabled")
	}
	exists, err := a.store.Exists(ctx, key)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("ranking report %q: %w", key, domain.ErrNotFound)
	}

	rc, err := a.store.Download(ctx, key)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	body, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("failed to read ranking report: %w", err)
	}
	var report RankingReport
	if err := json.Unmarshal(body, &report); err != nil {
		return nil, fmt.Errorf("failed to decode ranking report: %w", err)
	}
	return &report, nil
}

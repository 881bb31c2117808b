package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/timmy/solarmatch/internal/domain"
)

// MatchRepository persists matches. The (job_id, professional_id) unique index
// is the source of truth for deduplication.
type MatchRepository struct {
	db *gorm.DB
}

// NewMatchRepository creates a new MatchRepository.
func NewMatchRepository(db *gorm.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

// MatchExists reports whether a match for the pair is already stored.
func (r *MatchRepository) MatchExists(ctx context.Context, jobID, professionalID int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.Match{}).
		Where("job_id = ? AND professional_id = ?", jobID, professionalID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// SaveMatch inserts a new match.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - match: match to insert; its ID is filled in on success.
//
// Returns:
//   - *domain.Match: the stored match.
//   - error: domain.ErrAlreadyMatched if the pair already exists, otherwise the insert error.
func (r *MatchRepository) SaveMatch(ctx context.Context, match *domain.Match) (*domain.Match, error) {
	if err := r.db.WithContext(ctx).Create(match).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("job %d professional %d: %w", match.JobID, match.ProfessionalID, domain.ErrAlreadyMatched)
		}
		return nil, err
	}
	return match, nil
}

// FindMatchesForJob returns a job's matches, best score first.
func (r *MatchRepository) FindMatchesForJob(ctx context.Context, jobID int64) ([]domain.Match, error) {
	var matches []domain.Match
	if err := r.db.WithContext(ctx).
		Where("job_id = ?", jobID).
		Order("match_score DESC, id ASC").
		Find(&matches).Error; err != nil {
		return nil, err
	}
	return matches, nil
}

// FindMatchesForProfessional returns a professional's matches, newest first.
func (r *MatchRepository) FindMatchesForProfessional(ctx context.Context, professionalID int64) ([]domain.Match, error) {
	var matches []domain.Match
	if err := r.db.WithContext(ctx).
		Where("professional_id = ?", professionalID).
		Order("created_at DESC, id DESC").
		Find(&matches).Error; err != nil {
		return nil, err
	}
	return matches, nil
}

// GetMatch retrieves a match by ID.
func (r *MatchRepository) GetMatch(ctx context.Context, id int64) (*domain.Match, error) {
	var match domain.Match
	if err := r.db.WithContext(ctx).First(&match, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "match", id)
	}
	return &match, nil
}

// UpdateMatchStatus sets a match's status and returns the updated record.
func (r *MatchRepository) UpdateMatchStatus(ctx context.Context, id int64, status domain.MatchStatus) (*domain.Match, error) {
	match, err := r.GetMatch(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Model(match).Update("status", status).Error; err != nil {
		return nil, fmt.Errorf("failed to update match %d status: %w", id, err)
	}
	match.Status = status
	return match, nil
}

// DeleteMatch removes a match.
func (r *MatchRepository) DeleteMatch(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&domain.Match{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.NotFound("match", id)
	}
	return nil
}

package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/timmy/solarmatch/internal/domain"
)

// JobRepository reads jobs and moves them through their status lifecycle.
type JobRepository struct {
	db *gorm.DB
}

// NewJobRepository creates a new JobRepository.
func NewJobRepository(db *gorm.DB) *JobRepository {
	return &JobRepository{db: db}
}

// CreateJob inserts a new job.
func (r *JobRepository) CreateJob(ctx context.Context, job *domain.Job) error {
	return r.db.WithContext(ctx).Create(job).Error
}

// GetJob retrieves a job by ID.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - id: job ID.
//
// Returns:
//   - *domain.Job: the job if found.
//   - error: wraps domain.ErrNotFound when the job does not exist.
func (r *JobRepository) GetJob(ctx context.Context, id int64) (*domain.Job, error) {
	var job domain.Job
	if err := r.db.WithContext(ctx).First(&job, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "job", id)
	}
	return &job, nil
}

// SetJobStatus sets a job's status. Setting the status it already has is a no-op.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - id: job ID.
//   - status: new status.
//
// Returns:
//   - error: wraps domain.ErrNotFound when the job does not exist.
func (r *JobRepository) SetJobStatus(ctx context.Context, id int64, status domain.JobStatus) error {
	result := r.db.WithContext(ctx).Model(&domain.Job{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return fmt.Errorf("failed to update job %d status: %w", id, result.Error)
	}
	if result.RowsAffected > 0 {
		return nil
	}

	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.Job{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return domain.NotFound("job", id)
	}
	return nil
}

// ListJobsByStatus returns jobs in the given status, oldest first.
// A non-positive limit returns all of them.
func (r *JobRepository) ListJobsByStatus(ctx context.Context, status domain.JobStatus, limit int) ([]domain.Job, error) {
	var jobs []domain.Job
	query := r.db.WithContext(ctx).Where("status = ?", status).Order("created_at ASC, id ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&jobs).Error; err != nil {
		return nil, err
	}
	return jobs, nil
}

package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/timmy/solarmatch/internal/domain"
)

// ProfessionalRepository reads professionals together with their expertise and availability.
type ProfessionalRepository struct {
	db *gorm.DB
}

// NewProfessionalRepository creates a new ProfessionalRepository.
func NewProfessionalRepository(db *gorm.DB) *ProfessionalRepository {
	return &ProfessionalRepository{db: db}
}

func (r *ProfessionalRepository) withAttachments(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Expertise").
		Preload("AvailabilitySlots", func(db *gorm.DB) *gorm.DB {
			return db.Order("date ASC, id ASC")
		})
}

// CreateProfessional inserts a professional along with its expertise and slots.
func (r *ProfessionalRepository) CreateProfessional(ctx context.Context, pro *domain.Professional) error {
	return r.db.WithContext(ctx).Create(pro).Error
}

// GetProfessionalPool returns the candidate pool in a stable order (by id).
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - verifiedOnly: restrict the pool to verified professionals.
//
// Returns:
//   - []domain.Professional: professionals with expertise and availability loaded.
//   - error: non-nil if the query fails.
func (r *ProfessionalRepository) GetProfessionalPool(ctx context.Context, verifiedOnly bool) ([]domain.Professional, error) {
	var pros []domain.Professional
	query := r.withAttachments(ctx).Order("id ASC")
	if verifiedOnly {
		query = query.Where("is_verified = ?", true)
	}
	if err := query.Find(&pros).Error; err != nil {
		return nil, err
	}
	return pros, nil
}

// GetProfessionalsByIDs returns the professionals among ids, keyed by id.
// Missing ids are simply absent from the map.
func (r *ProfessionalRepository) GetProfessionalsByIDs(ctx context.Context, ids []int64) (map[int64]*domain.Professional, error) {
	out := make(map[int64]*domain.Professional, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var pros []domain.Professional
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&pros).Error; err != nil {
		return nil, err
	}
	for i := range pros {
		out[pros[i].ID] = &pros[i]
	}
	return out, nil
}

// ProfessionalExists reports whether a professional with id exists.
func (r *ProfessionalRepository) ProfessionalExists(ctx context.Context, id int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.Professional{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

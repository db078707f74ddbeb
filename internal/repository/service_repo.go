package repository

import (
	"context"

	"petmarket/internal/domain"

	"gorm.io/gorm"
)

type ServiceRepository struct {
	db *gorm.DB
}

func NewServiceRepository(db *gorm.DB) *ServiceRepository {
	return &ServiceRepository{db: db}
}

func (r *ServiceRepository) Create(ctx context.Context, s *domain.Service) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *ServiceRepository) GetByID(ctx context.Context, id int64) (*domain.Service, error) {
	var s domain.Service
	if err := r.db.WithContext(ctx).First(&s, id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *ServiceRepository) ListActive(ctx context.Context, serviceType string, limit, offset int) ([]domain.Service, error) {
	q := r.db.WithContext(ctx).Where("active = ?", true)
	if serviceType != "" {
		q = q.Where("type = ?", serviceType)
	}
	var out []domain.Service
	if err := q.Order("rating_avg DESC, id").Limit(limit).Offset(offset).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *ServiceRepository) ListByProvider(ctx context.Context, providerID int64) ([]domain.Service, error) {
	var out []domain.Service
	if err := r.db.WithContext(ctx).Where("provider_id = ?", providerID).Order("id").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *ServiceRepository) Update(ctx context.Context, s *domain.Service) error {
	return r.db.WithContext(ctx).Model(&domain.Service{}).Where("id = ?", s.ID).Updates(map[string]interface{}{
		"title":        s.Title,
		"description":  s.Description,
		"type":         s.Type,
		"price_cents":  s.PriceCents,
		"duration_min": s.DurationMin,
		"active":       s.Active,
	}).Error
}

// RefreshRating recomputes the denormalized rating columns from the reviews
// table. Called by the rating aggregator after a review lands.
func (r *ServiceRepository) RefreshRating(ctx context.Context, serviceID int64) error {
	q := `
UPDATE services
SET rating_avg = COALESCE((SELECT AVG(rating) FROM reviews WHERE service_id = ?), 0),
    rating_count = (SELECT COUNT(1) FROM reviews WHERE service_id = ?)
WHERE id = ?
`
	return r.db.WithContext(ctx).Exec(q, serviceID, serviceID, serviceID).Error
}

package repository

import (
	"context"

	"petmarket/internal/domain"

	"gorm.io/gorm"
)

type PetRepository struct {
	db *gorm.DB
}

func NewPetRepository(db *gorm.DB) *PetRepository {
	return &PetRepository{db: db}
}

func (r *PetRepository) Create(ctx context.Context, p *domain.Pet) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *PetRepository) GetByID(ctx context.Context, id int64) (*domain.Pet, error) {
	var p domain.Pet
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PetRepository) ListByOwner(ctx context.Context, ownerID int64) ([]domain.Pet, error) {
	var pets []domain.Pet
	if err := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).Order("id").Find(&pets).Error; err != nil {
		return nil, err
	}
	return pets, nil
}

func (r *PetRepository) Update(ctx context.Context, p *domain.Pet) error {
	return r.db.WithContext(ctx).Model(&domain.Pet{}).Where("id = ?", p.ID).Updates(map[string]interface{}{
		"name":      p.Name,
		"species":   p.Species,
		"breed":     p.Breed,
		"age_years": p.AgeYears,
		"notes":     p.Notes,
	}).Error
}

func (r *PetRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&domain.Pet{}, id).Error
}

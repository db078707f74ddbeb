package pets

import (
	"context"
	"errors"

	"petmarket/internal/domain"

	"gorm.io/gorm"
)

type Service struct {
	repo PetRepository
}

func NewService(repo PetRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, ownerID int64, req CreatePetRequest) (*domain.Pet, error) {
	pet := &domain.Pet{
		OwnerID:  ownerID,
		Name:     req.Name,
		Species:  req.Species,
		Breed:    req.Breed,
		AgeYears: req.AgeYears,
		Notes:    req.Notes,
	}
	if err := s.repo.Create(ctx, pet); err != nil {
		return nil, err
	}
	return pet, nil
}

func (s *Service) List(ctx context.Context, ownerID int64) ([]domain.Pet, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

func (s *Service) Get(ctx context.Context, ownerID, petID int64) (*domain.Pet, error) {
	pet, err := s.getOwned(ctx, ownerID, petID)
	if err != nil {
		return nil, err
	}
	return pet, nil
}

func (s *Service) Update(ctx context.Context, ownerID, petID int64, req UpdatePetRequest) (*domain.Pet, error) {
	pet, err := s.getOwned(ctx, ownerID, petID)
	if err != nil {
		return nil, err
	}
	if req.Name != "" {
		pet.Name = req.Name
	}
	if req.Breed != "" {
		pet.Breed = req.Breed
	}
	if req.AgeYears > 0 {
		pet.AgeYears = req.AgeYears
	}
	if req.Notes != "" {
		pet.Notes = req.Notes
	}
	if err := s.repo.Update(ctx, pet); err != nil {
		return nil, err
	}
	return pet, nil
}

func (s *Service) Delete(ctx context.Context, ownerID, petID int64) error {
	if _, err := s.getOwned(ctx, ownerID, petID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, petID)
}

func (s *Service) getOwned(ctx context.Context, ownerID, petID int64) (*domain.Pet, error) {
	pet, err := s.repo.GetByID(ctx, petID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if pet.OwnerID != ownerID {
		return nil, ErrForbidden
	}
	return pet, nil
}

package catalog

import (
	"context"
	"errors"

	"petmarket/internal/domain"
	"petmarket/internal/pkg/validator"

	"gorm.io/gorm"
)

type Service struct {
	repo ServiceRepository
}

func NewService(repo ServiceRepository) *Service {
	return &Service{repo: repo}
}

func validServiceType(t string) bool {
	switch domain.ServiceType(t) {
	case domain.ServiceWalking, domain.ServiceSitting, domain.ServiceGrooming,
		domain.ServiceBoarding, domain.ServiceVet:
		return true
	}
	return false
}

func (s *Service) Create(ctx context.Context, providerID int64, req CreateServiceRequest) (*domain.Service, error) {
	if !validServiceType(req.Type) {
		return nil, ErrInvalidServiceType
	}

	svc := &domain.Service{
		ProviderID:  providerID,
		Title:       req.Title,
		Description: req.Description,
		Type:        domain.ServiceType(req.Type),
		PriceCents:  req.PriceCents,
		DurationMin: req.DurationMin,
		Active:      true,
	}
	if errs := validator.Validate(svc); errs != nil {
		return nil, ErrValidation
	}
	if err := s.repo.Create(ctx, svc); err != nil {
		return nil, err
	}
	return svc, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Service, error) {
	svc, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return svc, nil
}

func (s *Service) ListActive(ctx context.Context, q ListQuery) ([]domain.Service, error) {
	if q.Type != "" && !validServiceType(q.Type) {
		return nil, ErrInvalidServiceType
	}
	limit := q.Limit
	if limit <= 0 {
		limit = 20
	}
	return s.repo.ListActive(ctx, q.Type, limit, q.Offset)
}

func (s *Service) ListMine(ctx context.Context, providerID int64) ([]domain.Service, error) {
	return s.repo.ListByProvider(ctx, providerID)
}

func (s *Service) Update(ctx context.Context, providerID, serviceID int64, req UpdateServiceRequest) (*domain.Service, error) {
	svc, err := s.Get(ctx, serviceID)
	if err != nil {
		return nil, err
	}
	if svc.ProviderID != providerID {
		return nil, ErrForbidden
	}

	if req.Title != "" {
		svc.Title = req.Title
	}
	if req.Description != "" {
		svc.Description = req.Description
	}
	if req.PriceCents > 0 {
		svc.PriceCents = req.PriceCents
	}
	if req.DurationMin > 0 {
		svc.DurationMin = req.DurationMin
	}
	if req.Active != nil {
		svc.Active = *req.Active
	}

	if err := s.repo.Update(ctx, svc); err != nil {
		return nil, err
	}
	return svc, nil
}

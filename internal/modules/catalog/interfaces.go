package catalog

import (
	"context"

	"petmarket/internal/domain"
)

type ServiceRepository interface {
	Create(ctx context.Context, s *domain.Service) error
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
	ListActive(ctx context.Context, serviceType string, limit, offset int) ([]domain.Service, error)
	ListByProvider(ctx context.Context, providerID int64) ([]domain.Service, error)
	Update(ctx context.Context, s *domain.Service) error
}

package catalog

import (
	"context"

	"github.com/NazarovEvgn/lets-app/internal/availability"
)

type Repository interface {
	ListActiveByBusiness(ctx context.Context, businessID int) ([]Service, error)
	ListByBusiness(ctx context.Context, businessID int) ([]Service, error)
	GetByID(ctx context.Context, businessID, serviceID int) (*Service, error)
	Create(ctx context.Context, businessID int, req CreateServiceRequest) (*Service, error)
	Update(ctx context.Context, businessID, serviceID int, req UpdateServiceRequest) (*Service, error)
	Delete(ctx context.Context, businessID, serviceID int) error
	ServiceExists(ctx context.Context, businessID, serviceID int) (bool, error)
}

var _ availability.ServiceFinder = (Repository)(nil)

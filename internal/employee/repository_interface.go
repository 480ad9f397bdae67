package employee

import "context"

// Repository defines data access for the staff roster of a business.
type Repository interface {
	ListActiveByBusiness(ctx context.Context, businessID int) ([]Employee, error)
	ListByBusiness(ctx context.Context, businessID int) ([]Employee, error)
	Create(ctx context.Context, businessID int, req CreateEmployeeRequest) (*Employee, error)
	Update(ctx context.Context, businessID, employeeID int, req UpdateEmployeeRequest) (*Employee, error)
	Delete(ctx context.Context, businessID, employeeID int) error
}

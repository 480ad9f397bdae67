package photo

import "context"

type Repository interface {
	ListByBusiness(ctx context.Context, businessID int) ([]Photo, error)
	Create(ctx context.Context, businessID int, req CreatePhotoRequest) (*Photo, error)
	Update(ctx context.Context, businessID, photoID int, req UpdatePhotoRequest) (*Photo, error)
	SetMain(ctx context.Context, businessID, photoID int) error
	Delete(ctx context.Context, businessID, photoID int) error
}

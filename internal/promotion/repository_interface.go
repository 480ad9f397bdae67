package promotion

import "context"

type Repository interface {
	ListActiveByBusiness(ctx context.Context, businessID int) ([]Promotion, error)
	ListByBusiness(ctx context.Context, businessID int) ([]Promotion, error)
	Create(ctx context.Context, businessID int, req CreatePromotionRequest) (*Promotion, error)
	Update(ctx context.Context, businessID, promotionID int, req UpdatePromotionRequest) (*Promotion, error)
	Delete(ctx context.Context, businessID, promotionID int) error
}

package user

import "context"

type Repository interface {
	Create(ctx context.Context, name, email, phone, passwordHash string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id int) (*User, error)
	FindByPhone(ctx context.Context, phone string) (*User, error)
	CreateWithPhone(ctx context.Context, phone string) (*User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
}

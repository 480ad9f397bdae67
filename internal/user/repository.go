package user

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

var ErrUserNotFound = errors.New("user not found")

const userColumns = `id, name, email, phone, password_hash, created_at, updated_at`

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, name, email, phone, passwordHash string) (*User, error) {
	query := `
		INSERT INTO users (name, email, phone, password_hash)
		VALUES ($1, $2, NULLIF($3, ''), $4)
		RETURNING ` + userColumns

	var user User
	err := r.db.GetContext(ctx, &user, query, name, email, phone, passwordHash)
	if err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*User, error) {
	var user User
	err := r.db.GetContext(ctx, &user,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *repository) FindByID(ctx context.Context, id int) (*User, error) {
	var user User
	err := r.db.GetContext(ctx, &user,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *repository) FindByPhone(ctx context.Context, phone string) (*User, error) {
	var user User
	err := r.db.GetContext(ctx, &user,
		`SELECT `+userColumns+` FROM users WHERE phone = $1`, phone)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// CreateWithPhone registers a bare account for phone-code login. The name
// defaults to the phone number until the user fills in a profile.
func (r *repository) CreateWithPhone(ctx context.Context, phone string) (*User, error) {
	query := `
		INSERT INTO users (name, phone)
		VALUES ($1, $2)
		RETURNING ` + userColumns

	var user User
	err := r.db.GetContext(ctx, &user, query, phone, phone)
	if err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *repository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists,
		`SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, email)
	if err != nil {
		return false, err
	}

	return exists, nil
}

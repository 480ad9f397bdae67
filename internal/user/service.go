package user

import (
	"context"
	"errors"

	"github.com/NazarovEvgn/lets-app/internal/auth"
)

var (
	ErrEmailExists        = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*User, string, string, error)
	Login(ctx context.Context, req LoginRequest) (*User, string, string, error)
	GetByID(ctx context.Context, userID int) (*User, error)
	RefreshToken(ctx context.Context, refreshToken string) (string, *User, error)
	LoginWithPhone(ctx context.Context, phone string) (*User, string, string, error)
}

type service struct {
	repo      Repository
	jwtSecret string
}

func NewService(repo Repository, jwtSecret string) Service {
	return &service{
		repo:      repo,
		jwtSecret: jwtSecret,
	}
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (*User, string, string, error) {
	exists, err := s.repo.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, "", "", err
	}
	if exists {
		return nil, "", "", ErrEmailExists
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, "", "", err
	}

	user, err := s.repo.Create(ctx, req.Name, req.Email, req.Phone, passwordHash)
	if err != nil {
		return nil, "", "", err
	}

	accessToken, refreshToken, err := s.issueTokens(user)
	if err != nil {
		return nil, "", "", err
	}

	return user, accessToken, refreshToken, nil
}

func (s *service) Login(ctx context.Context, req LoginRequest) (*User, string, string, error) {
	user, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, "", "", ErrInvalidCredentials
	}

	if user.PasswordHash == nil || !auth.CheckPassword(*user.PasswordHash, req.Password) {
		return nil, "", "", ErrInvalidCredentials
	}

	accessToken, refreshToken, err := s.issueTokens(user)
	if err != nil {
		return nil, "", "", err
	}

	return user, accessToken, refreshToken, nil
}

// LoginWithPhone completes a verified one-time-code login, registering a new
// account on first use of the phone number.
func (s *service) LoginWithPhone(ctx context.Context, phone string) (*User, string, string, error) {
	user, err := s.repo.FindByPhone(ctx, phone)
	if errors.Is(err, ErrUserNotFound) {
		user, err = s.repo.CreateWithPhone(ctx, phone)
	}
	if err != nil {
		return nil, "", "", err
	}

	accessToken, refreshToken, err := s.issueTokens(user)
	if err != nil {
		return nil, "", "", err
	}

	return user, accessToken, refreshToken, nil
}

func (s *service) GetByID(ctx context.Context, userID int) (*User, error) {
	return s.repo.FindByID(ctx, userID)
}

// RefreshToken exchanges a refresh token for a new access token. Business
// admin tokens are reissued from claims alone; client tokens require the
// account to still exist.
func (s *service) RefreshToken(ctx context.Context, refreshToken string) (string, *User, error) {
	_, claims, err := auth.RefreshAccessToken(refreshToken, s.jwtSecret)
	if err != nil {
		return "", nil, err
	}

	if claims.Role == auth.RoleBusinessAdmin {
		token, err := auth.GenerateAccessToken(
			claims.UserID, claims.BusinessID, claims.Email, claims.Role, s.jwtSecret)
		return token, nil, err
	}

	user, err := s.repo.FindByID(ctx, claims.UserID)
	if err != nil {
		return "", nil, ErrUserNotFound
	}

	newAccessToken, err := auth.GenerateAccessToken(user.ID, 0, email(user), auth.RoleClient, s.jwtSecret)
	if err != nil {
		return "", nil, err
	}

	return newAccessToken, user, nil
}

func (s *service) issueTokens(u *User) (string, string, error) {
	return auth.GenerateTokens(u.ID, 0, email(u), auth.RoleClient, s.jwtSecret)
}

func email(u *User) string {
	if u.Email == nil {
		return ""
	}
	return *u.Email
}

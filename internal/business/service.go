package business

import (
	"context"
	"errors"
	"fmt"

	"github.com/NazarovEvgn/lets-app/internal/auth"
	"github.com/NazarovEvgn/lets-app/internal/catalog"
	"github.com/NazarovEvgn/lets-app/internal/promotion"
)

var (
	ErrEmailExists        = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidType        = errors.New("invalid business_type, must be one of: car_wash, repair_shop, tire_service")
	ErrInvalidStatus      = errors.New("invalid status, must be one of: available, busy, very_busy")
	ErrInvalidHours       = errors.New("invalid business hours")
)

// Details is the aggregated public view of a single business.
type Details struct {
	Business
	Status     StatusInfo            `json:"status"`
	Services   []catalog.Service     `json:"services"`
	Promotions []promotion.Promotion `json:"promotions"`
}

type Service interface {
	RegisterAdmin(ctx context.Context, req RegisterAdminRequest) (*Admin, string, string, error)
	LoginAdmin(ctx context.Context, req LoginAdminRequest) (*Admin, string, string, error)

	List(ctx context.Context, f ListFilter) ([]Business, error)
	ListNearby(ctx context.Context, f ListFilter) ([]Summary, error)
	GetDetails(ctx context.Context, id int) (*Details, error)
	GetProfile(ctx context.Context, businessID int) (*Business, error)
	UpdateProfile(ctx context.Context, businessID int, req UpdateProfileRequest) (*Business, error)

	GetStatusInfo(ctx context.Context, businessID int) (*StatusInfo, error)
	UpdateStatus(ctx context.Context, businessID, adminID int, req UpdateStatusRequest) (*Status, error)
	GetStatusHistory(ctx context.Context, businessID, limit int) ([]StatusHistoryEntry, error)

	GetHours(ctx context.Context, businessID int) ([]DayHoursRow, error)
	UpdateHours(ctx context.Context, businessID int, req UpdateHoursRequest) ([]DayHoursRow, error)
}

type service struct {
	repo          Repository
	catalogRepo   catalog.Repository
	promotionRepo promotion.Repository
	jwtSecret     string
}

func NewService(repo Repository, catalogRepo catalog.Repository, promotionRepo promotion.Repository, jwtSecret string) Service {
	return &service{
		repo:          repo,
		catalogRepo:   catalogRepo,
		promotionRepo: promotionRepo,
		jwtSecret:     jwtSecret,
	}
}

func (s *service) RegisterAdmin(ctx context.Context, req RegisterAdminRequest) (*Admin, string, string, error) {
	if !ValidType(req.BusinessType) {
		return nil, "", "", ErrInvalidType
	}

	exists, err := s.repo.AdminEmailExists(ctx, req.Email)
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

	b := &Business{
		Name:        req.BusinessName,
		Type:        req.BusinessType,
		Address:     req.Address,
		Lat:         req.Lat,
		Lon:         req.Lon,
		Phone:       req.Phone,
		Email:       req.BusinessEmail,
		Description: req.Description,
	}

	_, admin, err := s.repo.RegisterBusiness(ctx, b, req.Email, passwordHash)
	if err != nil {
		return nil, "", "", err
	}

	accessToken, refreshToken, err := auth.GenerateTokens(
		admin.ID, admin.BusinessID, admin.Email, auth.RoleBusinessAdmin, s.jwtSecret)
	if err != nil {
		return nil, "", "", err
	}

	return admin, accessToken, refreshToken, nil
}

func (s *service) LoginAdmin(ctx context.Context, req LoginAdminRequest) (*Admin, string, string, error) {
	admin, err := s.repo.GetAdminByEmail(ctx, req.Email)
	if err != nil {
		return nil, "", "", ErrInvalidCredentials
	}

	if !auth.CheckPassword(admin.PasswordHash, req.Password) {
		return nil, "", "", ErrInvalidCredentials
	}

	accessToken, refreshToken, err := auth.GenerateTokens(
		admin.ID, admin.BusinessID, admin.Email, auth.RoleBusinessAdmin, s.jwtSecret)
	if err != nil {
		return nil, "", "", err
	}

	return admin, accessToken, refreshToken, nil
}

func (s *service) List(ctx context.Context, f ListFilter) ([]Business, error) {
	if f.Type != "" && !ValidType(f.Type) {
		return nil, ErrInvalidType
	}
	return s.repo.List(ctx, f)
}

func (s *service) ListNearby(ctx context.Context, f ListFilter) ([]Summary, error) {
	businesses, err := s.List(ctx, f)
	if err != nil {
		return nil, err
	}

	ids := make([]int, 0, len(businesses))
	for _, b := range businesses {
		ids = append(ids, b.ID)
	}

	statuses, err := s.repo.GetStatuses(ctx, ids)
	if err != nil {
		return nil, err
	}

	result := make([]Summary, 0, len(businesses))
	for _, b := range businesses {
		result = append(result, Summary{
			ID:          b.ID,
			Name:        b.Name,
			Type:        b.Type,
			Address:     b.Address,
			Lat:         b.Lat,
			Lon:         b.Lon,
			Phone:       b.Phone,
			Description: b.Description,
			LogoURL:     b.LogoURL,
			Status:      statusInfo(statuses, b.ID),
		})
	}

	return result, nil
}

// statusInfo defaults to "available" with no timestamp when a business has
// never reported.
func statusInfo(statuses map[int]Status, businessID int) StatusInfo {
	if st, ok := statuses[businessID]; ok {
		updatedAt := st.UpdatedAt
		return StatusInfo{
			Status:               st.Status,
			EstimatedWaitMinutes: st.EstimatedWaitMinutes,
			UpdatedAt:            &updatedAt,
		}
	}
	return StatusInfo{Status: StatusAvailable}
}

func (s *service) GetDetails(ctx context.Context, id int) (*Details, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	info, err := s.GetStatusInfo(ctx, id)
	if err != nil {
		return nil, err
	}

	services, err := s.catalogRepo.ListActiveByBusiness(ctx, id)
	if err != nil {
		return nil, err
	}

	promotions, err := s.promotionRepo.ListActiveByBusiness(ctx, id)
	if err != nil {
		return nil, err
	}

	return &Details{
		Business:   *b,
		Status:     *info,
		Services:   services,
		Promotions: promotions,
	}, nil
}

func (s *service) GetProfile(ctx context.Context, businessID int) (*Business, error) {
	return s.repo.GetByID(ctx, businessID)
}

func (s *service) UpdateProfile(ctx context.Context, businessID int, req UpdateProfileRequest) (*Business, error) {
	return s.repo.UpdateProfile(ctx, businessID, req)
}

func (s *service) GetStatusInfo(ctx context.Context, businessID int) (*StatusInfo, error) {
	st, err := s.repo.GetStatus(ctx, businessID)
	if err != nil {
		return nil, err
	}
	if st == nil {
		return &StatusInfo{Status: StatusAvailable}, nil
	}

	updatedAt := st.UpdatedAt
	return &StatusInfo{
		Status:               st.Status,
		EstimatedWaitMinutes: st.EstimatedWaitMinutes,
		UpdatedAt:            &updatedAt,
	}, nil
}

func (s *service) UpdateStatus(ctx context.Context, businessID, adminID int, req UpdateStatusRequest) (*Status, error) {
	if !ValidStatus(req.Status) {
		return nil, ErrInvalidStatus
	}
	return s.repo.UpsertStatus(ctx, businessID, adminID, req.Status, req.EstimatedWaitMinutes)
}

func (s *service) GetStatusHistory(ctx context.Context, businessID, limit int) ([]StatusHistoryEntry, error) {
	return s.repo.GetStatusHistory(ctx, businessID, limit)
}

// GetHours lazily seeds the default closed-all-week rows on first read.
func (s *service) GetHours(ctx context.Context, businessID int) ([]DayHoursRow, error) {
	hours, err := s.repo.GetHours(ctx, businessID)
	if err != nil {
		return nil, err
	}
	if len(hours) > 0 {
		return hours, nil
	}

	return s.repo.CreateDefaultHours(ctx, businessID)
}

func (s *service) UpdateHours(ctx context.Context, businessID int, req UpdateHoursRequest) ([]DayHoursRow, error) {
	if err := validateHours(req.Hours); err != nil {
		return nil, err
	}
	return s.repo.ReplaceHours(ctx, businessID, req.Hours)
}

func validateHours(entries []HoursEntry) error {
	if len(entries) != 7 {
		return fmt.Errorf("%w: must provide hours for all 7 days of the week", ErrInvalidHours)
	}

	seen := make(map[int]bool, 7)
	for _, e := range entries {
		if e.DayOfWeek < 0 || e.DayOfWeek > 6 {
			return fmt.Errorf("%w: day_of_week must be between 0 and 6", ErrInvalidHours)
		}
		if seen[e.DayOfWeek] {
			return fmt.Errorf("%w: duplicate entry for day %d", ErrInvalidHours, e.DayOfWeek)
		}
		seen[e.DayOfWeek] = true

		if e.IsClosed {
			continue
		}
		if e.OpenTime == nil || e.CloseTime == nil {
			return fmt.Errorf("%w: open_time and close_time are required for day %d", ErrInvalidHours, e.DayOfWeek)
		}

		open, err := timeOfDay(*e.OpenTime)
		if err != nil {
			return fmt.Errorf("%w: bad open_time for day %d", ErrInvalidHours, e.DayOfWeek)
		}
		close, err := timeOfDay(*e.CloseTime)
		if err != nil {
			return fmt.Errorf("%w: bad close_time for day %d", ErrInvalidHours, e.DayOfWeek)
		}
		if !open.Before(close) {
			return fmt.Errorf("%w: opening time must be before closing time for day %d", ErrInvalidHours, e.DayOfWeek)
		}
	}

	return nil
}

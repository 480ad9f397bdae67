package business

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/NazarovEvgn/lets-app/internal/api"
	"github.com/NazarovEvgn/lets-app/internal/auth"
	"github.com/NazarovEvgn/lets-app/internal/metrics"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func parseListFilter(c *gin.Context) ListFilter {
	f := ListFilter{
		Type:     c.Query("business_type"),
		Search:   c.Query("search"),
		RadiusKm: 10,
	}

	if v, err := strconv.ParseFloat(c.Query("lat"), 64); err == nil {
		f.Lat = &v
	}
	if v, err := strconv.ParseFloat(c.Query("lon"), 64); err == nil {
		f.Lon = &v
	}
	if v, err := strconv.ParseFloat(c.Query("radius_km"), 64); err == nil && v > 0 {
		f.RadiusKm = v
	}
	f.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "50"))
	f.Offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))

	return f
}

// ListBusinesses godoc
// @Summary      List businesses
// @Description  Filterable by type, name search and geo bounding box.
// @Tags         businesses
// @Produce      json
// @Param        business_type  query     string   false  "car_wash, repair_shop or tire_service"
// @Param        search         query     string   false  "Name substring"
// @Param        lat            query     number   false  "Latitude"
// @Param        lon            query     number   false  "Longitude"
// @Param        radius_km      query     number   false  "Radius in km (default 10)"
// @Param        limit          query     int      false  "Max rows (default 50, cap 100)"
// @Param        offset         query     int      false  "Offset"
// @Success      200            {array}   Business
// @Failure      400            {object}  gin.H
// @Failure      500            {object}  gin.H
// @Router       /businesses [get]
func (h *Handler) ListBusinesses(c *gin.Context) {
	businesses, err := h.service.List(c.Request.Context(), parseListFilter(c))
	if err != nil {
		if errors.Is(err, ErrInvalidType) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch businesses"})
		return
	}

	c.JSON(http.StatusOK, businesses)
}

// ListNearby godoc
// @Summary      List nearby businesses with live status
// @Tags         businesses
// @Produce      json
// @Param        lat        query     number  true   "Latitude"
// @Param        lon        query     number  true   "Longitude"
// @Param        radius_km  query     number  false  "Radius in km (default 10)"
// @Success      200        {array}   Summary
// @Failure      400        {object}  gin.H
// @Failure      500        {object}  gin.H
// @Router       /businesses/nearby [get]
func (h *Handler) ListNearby(c *gin.Context) {
	f := parseListFilter(c)
	if f.Lat == nil || f.Lon == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "lat and lon query parameters are required"})
		return
	}

	summaries, err := h.service.ListNearby(c.Request.Context(), f)
	if err != nil {
		if errors.Is(err, ErrInvalidType) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch businesses"})
		return
	}

	c.JSON(http.StatusOK, summaries)
}

// GetBusiness godoc
// @Summary      Get business details
// @Description  Business profile with current status, active services and
// @Description  promotions.
// @Tags         businesses
// @Produce      json
// @Param        businessID  path      int  true  "Business ID"
// @Success      200         {object}  Details
// @Failure      400         {object}  gin.H
// @Failure      404         {object}  gin.H
// @Failure      500         {object}  gin.H
// @Router       /businesses/{businessID} [get]
func (h *Handler) GetBusiness(c *gin.Context) {
	businessID, err := strconv.Atoi(c.Param("businessID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid business ID"})
		return
	}

	details, err := h.service.GetDetails(c.Request.Context(), businessID)
	if err != nil {
		if errors.Is(err, ErrBusinessNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Business not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch business"})
		return
	}

	c.JSON(http.StatusOK, details)
}

// GetBusinessStatus godoc
// @Summary      Current busy status of a business
// @Tags         businesses
// @Produce      json
// @Param        businessID  path      int  true  "Business ID"
// @Success      200         {object}  StatusInfo
// @Failure      400         {object}  gin.H
// @Failure      500         {object}  gin.H
// @Router       /businesses/{businessID}/status [get]
func (h *Handler) GetBusinessStatus(c *gin.Context) {
	businessID, err := strconv.Atoi(c.Param("businessID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid business ID"})
		return
	}

	info, err := h.service.GetStatusInfo(c.Request.Context(), businessID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch status"})
		return
	}

	c.JSON(http.StatusOK, info)
}

// RegisterAdmin godoc
// @Summary      Register a business
// @Description  Creates the business, its admin account and the initial
// @Description  status row in one transaction.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      RegisterAdminRequest  true  "Registration data"
// @Success      201      {object}  AdminLoginResponse
// @Failure      400      {object}  gin.H
// @Failure      409      {object}  gin.H
// @Failure      500      {object}  gin.H
// @Router       /auth/register/business [post]
func (h *Handler) RegisterAdmin(c *gin.Context) {
	var req RegisterAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	admin, accessToken, refreshToken, err := h.service.RegisterAdmin(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmailExists):
			c.JSON(http.StatusConflict, gin.H{"error": "Email already registered"})
		case errors.Is(err, ErrInvalidType):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register business"})
		}
		return
	}

	c.JSON(http.StatusCreated, AdminLoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		Admin:        *admin,
	})
}

// LoginAdmin godoc
// @Summary      Login business admin
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      LoginAdminRequest  true  "Credentials"
// @Success      200      {object}  AdminLoginResponse
// @Failure      400      {object}  gin.H
// @Failure      401      {object}  gin.H
// @Failure      500      {object}  gin.H
// @Router       /auth/login/business [post]
func (h *Handler) LoginAdmin(c *gin.Context) {
	var req LoginAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	admin, accessToken, refreshToken, err := h.service.LoginAdmin(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to login"})
		return
	}

	c.JSON(http.StatusOK, AdminLoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		Admin:        *admin,
	})
}

// GetProfile godoc
// @Summary      Get the admin's business profile
// @Tags         admin
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  Business
// @Failure      404  {object}  gin.H
// @Failure      500  {object}  gin.H
// @Router       /admin/profile [get]
func (h *Handler) GetProfile(c *gin.Context) {
	businessID, ok := auth.GetBusinessID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Admin not authenticated"})
		return
	}

	b, err := h.service.GetProfile(c.Request.Context(), businessID)
	if err != nil {
		if errors.Is(err, ErrBusinessNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Business not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch profile"})
		return
	}

	c.JSON(http.StatusOK, b)
}

// UpdateProfile godoc
// @Summary      Update the admin's business profile
// @Tags         admin
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      UpdateProfileRequest  true  "Fields to update"
// @Success      200      {object}  Business
// @Failure      400      {object}  gin.H
// @Failure      404      {object}  gin.H
// @Failure      500      {object}  gin.H
// @Router       /admin/profile [patch]
func (h *Handler) UpdateProfile(c *gin.Context) {
	businessID, ok := auth.GetBusinessID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Admin not authenticated"})
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	b, err := h.service.UpdateProfile(c.Request.Context(), businessID, req)
	if err != nil {
		if errors.Is(err, ErrBusinessNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Business not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}

	c.JSON(http.StatusOK, b)
}

// GetCurrentStatus godoc
// @Summary      Current status of the admin's business
// @Tags         admin
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  StatusInfo
// @Failure      500  {object}  gin.H
// @Router       /admin/status [get]
func (h *Handler) GetCurrentStatus(c *gin.Context) {
	businessID, ok := auth.GetBusinessID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Admin not authenticated"})
		return
	}

	info, err := h.service.GetStatusInfo(c.Request.Context(), businessID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch status"})
		return
	}

	c.JSON(http.StatusOK, info)
}

// UpdateStatus godoc
// @Summary      Report the business's busy status
// @Tags         admin
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      UpdateStatusRequest  true  "New status"
// @Success      200      {object}  Status
// @Failure      400      {object}  gin.H
// @Failure      500      {object}  gin.H
// @Router       /admin/status [patch]
func (h *Handler) UpdateStatus(c *gin.Context) {
	businessID, ok := auth.GetBusinessID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Admin not authenticated"})
		return
	}
	adminID, _ := auth.GetUserID(c)

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	st, err := h.service.UpdateStatus(c.Request.Context(), businessID, adminID, req)
	if err != nil {
		if errors.Is(err, ErrInvalidStatus) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update status"})
		return
	}

	metrics.RecordStatusUpdate(st.Status)
	c.JSON(http.StatusOK, st)
}

// GetStatusHistory godoc
// @Summary      Status report history
// @Tags         admin
// @Security     BearerAuth
// @Produce      json
// @Param        limit  query     int  false  "Max rows (default 50)"
// @Success      200    {array}   StatusHistoryEntry
// @Failure      500    {object}  gin.H
// @Router       /admin/status/history [get]
func (h *Handler) GetStatusHistory(c *gin.Context) {
	businessID, ok := auth.GetBusinessID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Admin not authenticated"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	history, err := h.service.GetStatusHistory(c.Request.Context(), businessID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch status history"})
		return
	}

	c.JSON(http.StatusOK, history)
}

// GetHours godoc
// @Summary      Weekly operating hours
// @Description  Seeds a closed-all-week schedule on first read.
// @Tags         admin
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}   DayHoursResponse
// @Failure      500  {object}  gin.H
// @Router       /admin/hours [get]
func (h *Handler) GetHours(c *gin.Context) {
	businessID, ok := auth.GetBusinessID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Admin not authenticated"})
		return
	}

	hours, err := h.service.GetHours(c.Request.Context(), businessID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch hours"})
		return
	}

	c.JSON(http.StatusOK, hoursResponse(hours))
}

// UpdateHours godoc
// @Summary      Replace weekly operating hours
// @Description  Expects exactly one entry per weekday, Monday-indexed.
// @Tags         admin
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      UpdateHoursRequest  true  "Seven day entries"
// @Success      200      {array}   DayHoursResponse
// @Failure      400      {object}  gin.H
// @Failure      500      {object}  gin.H
// @Router       /admin/hours [put]
func (h *Handler) UpdateHours(c *gin.Context) {
	businessID, ok := auth.GetBusinessID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Admin not authenticated"})
		return
	}

	var req UpdateHoursRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	for _, entry := range req.Hours {
		if verrs := api.ValidateStruct(entry); verrs != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "details": verrs})
			return
		}
	}

	hours, err := h.service.UpdateHours(c.Request.Context(), businessID, req)
	if err != nil {
		if errors.Is(err, ErrInvalidHours) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update hours"})
		return
	}

	c.JSON(http.StatusOK, hoursResponse(hours))
}

func hoursResponse(rows []DayHoursRow) []DayHoursResponse {
	resp := make([]DayHoursResponse, 0, len(rows))
	for _, r := range rows {
		resp = append(resp, r.Response())
	}
	return resp
}

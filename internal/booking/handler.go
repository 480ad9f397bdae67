package booking

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

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

// CreateBooking godoc
// @Summary      Book a slot
// @Tags         bookings
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      CreateBookingRequest  true  "Booking data"
// @Success      201      {object}  Booking
// @Failure      400      {object}  gin.H
// @Failure      404      {object}  gin.H
// @Failure      500      {object}  gin.H
// @Router       /bookings [post]
func (h *Handler) CreateBooking(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	booking, err := h.service.CreateClientBooking(c.Request.Context(), userID, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidDate), errors.Is(err, ErrInvalidTime), errors.Is(err, ErrDateInPast):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, ErrServiceNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create booking"})
		}
		return
	}

	metrics.RecordBookingCreated("app", booking.Status)
	c.JSON(http.StatusCreated, booking)
}

// ListMyBookings godoc
// @Summary      List the client's bookings
// @Tags         bookings
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}   Booking
// @Failure      500  {object}  gin.H
// @Router       /bookings [get]
func (h *Handler) ListMyBookings(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	bookings, err := h.service.ListForUser(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch bookings"})
		return
	}

	c.JSON(http.StatusOK, bookings)
}

// CancelBooking godoc
// @Summary      Cancel own booking
// @Tags         bookings
// @Security     BearerAuth
// @Produce      json
// @Param        bookingID  path      int  true  "Booking ID"
// @Success      200        {object}  Booking
// @Failure      400        {object}  gin.H
// @Failure      404        {object}  gin.H
// @Failure      500        {object}  gin.H
// @Router       /bookings/{bookingID}/cancel [post]
func (h *Handler) CancelBooking(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	bookingID, err := strconv.Atoi(c.Param("bookingID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid booking ID"})
		return
	}

	booking, err := h.service.Cancel(c.Request.Context(), userID, bookingID)
	if err != nil {
		switch {
		case errors.Is(err, ErrBookingNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
		case errors.Is(err, ErrInvalidTransition):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cancel booking"})
		}
		return
	}

	metrics.RecordBookingTransition(booking.Status)
	c.JSON(http.StatusOK, booking)
}

// ListBookings godoc
// @Summary      List bookings of the admin's business
// @Tags         admin
// @Security     BearerAuth
// @Produce      json
// @Param        status  query     string  false  "Filter by status"
// @Param        limit   query     int     false  "Max rows (default 50)"
// @Success      200     {array}   Booking
// @Failure      400     {object}  gin.H
// @Failure      500     {object}  gin.H
// @Router       /admin/bookings [get]
func (h *Handler) ListBookings(c *gin.Context) {
	businessID, ok := auth.GetBusinessID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Admin not authenticated"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	f := ListFilter{Status: c.Query("status"), Limit: limit}

	bookings, err := h.service.ListForBusiness(c.Request.Context(), businessID, f)
	if err != nil {
		if errors.Is(err, ErrInvalidStatus) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch bookings"})
		return
	}

	c.JSON(http.StatusOK, bookings)
}

// CreateWalkIn godoc
// @Summary      Record a walk-in booking
// @Tags         admin
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      WalkInRequest  true  "Booking data"
// @Success      201      {object}  Booking
// @Failure      400      {object}  gin.H
// @Failure      404      {object}  gin.H
// @Failure      500      {object}  gin.H
// @Router       /admin/bookings [post]
func (h *Handler) CreateWalkIn(c *gin.Context) {
	businessID, ok := auth.GetBusinessID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Admin not authenticated"})
		return
	}

	var req WalkInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	booking, err := h.service.CreateWalkIn(c.Request.Context(), businessID, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidDate), errors.Is(err, ErrInvalidTime), errors.Is(err, ErrDateInPast):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, ErrServiceNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create booking"})
		}
		return
	}

	metrics.RecordBookingCreated("walk_in", booking.Status)
	c.JSON(http.StatusCreated, booking)
}

// UpdateBookingStatus godoc
// @Summary      Update booking status
// @Tags         admin
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        bookingID  path      int                  true  "Booking ID"
// @Param        request    body      UpdateStatusRequest  true  "New status"
// @Success      200        {object}  Booking
// @Failure      400        {object}  gin.H
// @Failure      404        {object}  gin.H
// @Failure      500        {object}  gin.H
// @Router       /admin/bookings/{bookingID} [patch]
func (h *Handler) UpdateBookingStatus(c *gin.Context) {
	businessID, ok := auth.GetBusinessID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Admin not authenticated"})
		return
	}

	bookingID, err := strconv.Atoi(c.Param("bookingID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid booking ID"})
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	booking, err := h.service.UpdateStatus(c.Request.Context(), businessID, bookingID, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrBookingNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
		case errors.Is(err, ErrInvalidStatus), errors.Is(err, ErrInvalidTransition):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update booking"})
		}
		return
	}

	metrics.RecordBookingTransition(booking.Status)
	c.JSON(http.StatusOK, booking)
}

// GetAnalytics godoc
// @Summary      Booking analytics for the admin's business
// @Tags         admin
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  Analytics
// @Failure      500  {object}  gin.H
// @Router       /admin/analytics [get]
func (h *Handler) GetAnalytics(c *gin.Context) {
	businessID, ok := auth.GetBusinessID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Admin not authenticated"})
		return
	}

	analytics, err := h.service.GetAnalytics(c.Request.Context(), businessID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch analytics"})
		return
	}

	c.JSON(http.StatusOK, analytics)
}

// ListBookingsByEmployee godoc
// @Summary      Active booking counts per employee
// @Description  Every employee of the business with their count of pending
// @Description  and confirmed bookings.
// @Tags         admin
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}   EmployeeBookingCount
// @Failure      500  {object}  gin.H
// @Router       /admin/bookings/by-employee [get]
func (h *Handler) ListBookingsByEmployee(c *gin.Context) {
	businessID, ok := auth.GetBusinessID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Admin not authenticated"})
		return
	}

	counts, err := h.service.CountByEmployee(c.Request.Context(), businessID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch booking counts"})
		return
	}

	c.JSON(http.StatusOK, counts)
}

// ExportBookings godoc
// @Summary      Export bookings as a spreadsheet
// @Tags         admin
// @Security     BearerAuth
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        from  query  string  true  "Start date (YYYY-MM-DD)"
// @Param        to    query  string  true  "End date (YYYY-MM-DD)"
// @Success      200
// @Failure      400  {object}  gin.H
// @Failure      500  {object}  gin.H
// @Router       /admin/bookings/export [get]
func (h *Handler) ExportBookings(c *gin.Context) {
	businessID, ok := auth.GetBusinessID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Admin not authenticated"})
		return
	}

	from := c.Query("from")
	to := c.Query("to")
	if from == "" || to == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "from and to query parameters are required"})
		return
	}

	data, err := h.service.ExportXLSX(c.Request.Context(), businessID, from, to)
	if err != nil {
		if errors.Is(err, ErrInvalidDate) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export bookings"})
		return
	}

	filename := fmt.Sprintf("bookings_%s_%s.xlsx", from, to)
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

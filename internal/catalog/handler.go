package catalog

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/NazarovEvgn/lets-app/internal/auth"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

type Handler struct {
	repo Repository
}

func NewHandler(db *sqlx.DB) *Handler {
	return &Handler{repo: NewRepository(db)}
}

// ListBusinessServices godoc
// @Summary      List active services of a business
// @Tags         businesses
// @Produce      json
// @Param        businessID  path      int  true  "Business ID"
// @Success      200         {array}   Service
// @Failure      400         {object}  gin.H
// @Failure      500         {object}  gin.H
// @Router       /businesses/{businessID}/services [get]
func (h *Handler) ListBusinessServices(c *gin.Context) {
	businessID, err := strconv.Atoi(c.Param("businessID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid business ID"})
		return
	}

	services, err := h.repo.ListActiveByBusiness(c.Request.Context(), businessID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch services"})
		return
	}

	c.JSON(http.StatusOK, services)
}

// ListMyServices godoc
// @Summary      List all services of the admin's business
// @Tags         admin
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}   Service
// @Failure      500  {object}  gin.H
// @Router       /admin/services [get]
func (h *Handler) ListMyServices(c *gin.Context) {
	businessID, ok := auth.GetBusinessID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Admin not authenticated"})
		return
	}

	services, err := h.repo.ListByBusiness(c.Request.Context(), businessID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch services"})
		return
	}

	c.JSON(http.StatusOK, services)
}

// CreateService godoc
// @Summary      Create service
// @Tags         admin
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      CreateServiceRequest  true  "Service data"
// @Success      201      {object}  Service
// @Failure      400      {object}  gin.H
// @Failure      500      {object}  gin.H
// @Router       /admin/services [post]
func (h *Handler) CreateService(c *gin.Context) {
	businessID, ok := auth.GetBusinessID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Admin not authenticated"})
		return
	}

	var req CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	service, err := h.repo.Create(c.Request.Context(), businessID, req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create service"})
		return
	}

	c.JSON(http.StatusCreated, service)
}

// UpdateService godoc
// @Summary      Update service
// @Tags         admin
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        serviceID  path      int                   true  "Service ID"
// @Param        request    body      UpdateServiceRequest  true  "Fields to update"
// @Success      200        {object}  Service
// @Failure      400        {object}  gin.H
// @Failure      404        {object}  gin.H
// @Failure      500        {object}  gin.H
// @Router       /admin/services/{serviceID} [patch]
func (h *Handler) UpdateService(c *gin.Context) {
	businessID, ok := auth.GetBusinessID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Admin not authenticated"})
		return
	}

	serviceID, err := strconv.Atoi(c.Param("serviceID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid service ID"})
		return
	}

	var req UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	service, err := h.repo.Update(c.Request.Context(), businessID, serviceID, req)
	if err != nil {
		if errors.Is(err, ErrServiceNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Service not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update service"})
		return
	}

	c.JSON(http.StatusOK, service)
}

// DeleteService godoc
// @Summary      Delete service
// @Tags         admin
// @Security     BearerAuth
// @Param        serviceID  path  int  true  "Service ID"
// @Success      204
// @Failure      400  {object}  gin.H
// @Failure      404  {object}  gin.H
// @Failure      500  {object}  gin.H
// @Router       /admin/services/{serviceID} [delete]
func (h *Handler) DeleteService(c *gin.Context) {
	businessID, ok := auth.GetBusinessID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Admin not authenticated"})
		return
	}

	serviceID, err := strconv.Atoi(c.Param("serviceID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid service ID"})
		return
	}

	if err := h.repo.Delete(c.Request.Context(), businessID, serviceID); err != nil {
		if errors.Is(err, ErrServiceNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Service not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete service"})
		return
	}

	c.Status(http.StatusNoContent)
}

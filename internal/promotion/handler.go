package promotion

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

// ListBusinessPromotions godoc
// @Summary      List active promotions of a business
// @Tags         businesses
// @Produce      json
// @Param        businessID  path      int  true  "Business ID"
// @Success      200         {array}   Promotion
// @Failure      400         {object}  gin.H
// @Failure      500         {object}  gin.H
// @Router       /businesses/{businessID}/promotions [get]
func (h *Handler) ListBusinessPromotions(c *gin.Context) {
	businessID, err := strconv.Atoi(c.Param("businessID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid business ID"})
		return
	}

	promotions, err := h.repo.ListActiveByBusiness(c.Request.Context(), businessID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch promotions"})
		return
	}

	c.JSON(http.StatusOK, promotions)
}

// ListMyPromotions godoc
// @Summary      List all promotions of the admin's business
// @Tags         admin
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}   Promotion
// @Failure      500  {object}  gin.H
// @Router       /admin/promotions [get]
func (h *Handler) ListMyPromotions(c *gin.Context) {
	businessID, ok := auth.GetBusinessID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Admin not authenticated"})
		return
	}

	promotions, err := h.repo.ListByBusiness(c.Request.Context(), businessID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch promotions"})
		return
	}

	c.JSON(http.StatusOK, promotions)
}

// CreatePromotion godoc
// @Summary      Create promotion
// @Tags         admin
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      CreatePromotionRequest  true  "Promotion data"
// @Success      201      {object}  Promotion
// @Failure      400      {object}  gin.H
// @Failure      500      {object}  gin.H
// @Router       /admin/promotions [post]
func (h *Handler) CreatePromotion(c *gin.Context) {
	businessID, ok := auth.GetBusinessID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Admin not authenticated"})
		return
	}

	var req CreatePromotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !req.ValidUntil.After(req.ValidFrom) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "valid_until must be after valid_from"})
		return
	}

	promotion, err := h.repo.Create(c.Request.Context(), businessID, req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create promotion"})
		return
	}

	c.JSON(http.StatusCreated, promotion)
}

// UpdatePromotion godoc
// @Summary      Update promotion
// @Tags         admin
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        promotionID  path      int                     true  "Promotion ID"
// @Param        request      body      UpdatePromotionRequest  true  "Fields to update"
// @Success      200          {object}  Promotion
// @Failure      400          {object}  gin.H
// @Failure      404          {object}  gin.H
// @Failure      500          {object}  gin.H
// @Router       /admin/promotions/{promotionID} [patch]
func (h *Handler) UpdatePromotion(c *gin.Context) {
	businessID, ok := auth.GetBusinessID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Admin not authenticated"})
		return
	}

	promotionID, err := strconv.Atoi(c.Param("promotionID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid promotion ID"})
		return
	}

	var req UpdatePromotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	promotion, err := h.repo.Update(c.Request.Context(), businessID, promotionID, req)
	if err != nil {
		if errors.Is(err, ErrPromotionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Promotion not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update promotion"})
		return
	}

	c.JSON(http.StatusOK, promotion)
}

// DeletePromotion godoc
// @Summary      Delete promotion
// @Tags         admin
// @Security     BearerAuth
// @Param        promotionID  path  int  true  "Promotion ID"
// @Success      204
// @Failure      400  {object}  gin.H
// @Failure      404  {object}  gin.H
// @Failure      500  {object}  gin.H
// @Router       /admin/promotions/{promotionID} [delete]
func (h *Handler) DeletePromotion(c *gin.Context) {
	businessID, ok := auth.GetBusinessID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Admin not authenticated"})
		return
	}

	promotionID, err := strconv.Atoi(c.Param("promotionID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid promotion ID"})
		return
	}

	if err := h.repo.Delete(c.Request.Context(), businessID, promotionID); err != nil {
		if errors.Is(err, ErrPromotionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Promotion not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete promotion"})
		return
	}

	c.Status(http.StatusNoContent)
}

package favorite

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

// ListFavorites godoc
// @Summary      List the client's favorite businesses
// @Tags         favorites
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}   business.Business
// @Failure      500  {object}  gin.H
// @Router       /favorites [get]
func (h *Handler) ListFavorites(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	businesses, err := h.repo.ListBusinesses(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch favorites"})
		return
	}

	c.JSON(http.StatusOK, businesses)
}

// AddFavorite godoc
// @Summary      Add a business to favorites
// @Tags         favorites
// @Security     BearerAuth
// @Param        businessID  path  int  true  "Business ID"
// @Success      204
// @Failure      400  {object}  gin.H
// @Failure      500  {object}  gin.H
// @Router       /favorites/{businessID} [post]
func (h *Handler) AddFavorite(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	businessID, err := strconv.Atoi(c.Param("businessID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid business ID"})
		return
	}

	if err := h.repo.Add(c.Request.Context(), userID, businessID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add favorite"})
		return
	}

	c.Status(http.StatusNoContent)
}

// RemoveFavorite godoc
// @Summary      Remove a business from favorites
// @Tags         favorites
// @Security     BearerAuth
// @Param        businessID  path  int  true  "Business ID"
// @Success      204
// @Failure      400  {object}  gin.H
// @Failure      404  {object}  gin.H
// @Failure      500  {object}  gin.H
// @Router       /favorites/{businessID} [delete]
func (h *Handler) RemoveFavorite(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	businessID, err := strconv.Atoi(c.Param("businessID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid business ID"})
		return
	}

	if err := h.repo.Remove(c.Request.Context(), userID, businessID); err != nil {
		if errors.Is(err, ErrNotFavorite) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Business is not in favorites"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove favorite"})
		return
	}

	c.Status(http.StatusNoContent)
}

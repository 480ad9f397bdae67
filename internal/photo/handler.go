package photo

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

// ListPhotos godoc
// @Summary      List gallery photos of the admin's business
// @Description  Ordered by display_order, then creation time.
// @Tags         admin
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}   Photo
// @Failure      500  {object}  gin.H
// @Router       /admin/photos [get]
func (h *Handler) ListPhotos(c *gin.Context) {
	businessID, ok := auth.GetBusinessID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Admin not authenticated"})
		return
	}

	photos, err := h.repo.ListByBusiness(c.Request.Context(), businessID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch photos"})
		return
	}

	c.JSON(http.StatusOK, photos)
}

// CreatePhoto godoc
// @Summary      Add a photo to the gallery
// @Tags         admin
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      CreatePhotoRequest  true  "Photo data"
// @Success      201      {object}  Photo
// @Failure      400      {object}  gin.H
// @Failure      500      {object}  gin.H
// @Router       /admin/photos [post]
func (h *Handler) CreatePhoto(c *gin.Context) {
	businessID, ok := auth.GetBusinessID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Admin not authenticated"})
		return
	}

	var req CreatePhotoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	p, err := h.repo.Create(c.Request.Context(), businessID, req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create photo"})
		return
	}

	c.JSON(http.StatusCreated, p)
}

// UpdatePhoto godoc
// @Summary      Update a gallery photo
// @Tags         admin
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        photoID  path      int                 true  "Photo ID"
// @Param        request  body      UpdatePhotoRequest  true  "Fields to update"
// @Success      200      {object}  Photo
// @Failure      400      {object}  gin.H
// @Failure      404      {object}  gin.H
// @Failure      500      {object}  gin.H
// @Router       /admin/photos/{photoID} [patch]
func (h *Handler) UpdatePhoto(c *gin.Context) {
	businessID, ok := auth.GetBusinessID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Admin not authenticated"})
		return
	}

	photoID, err := strconv.Atoi(c.Param("photoID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid photo ID"})
		return
	}

	var req UpdatePhotoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	p, err := h.repo.Update(c.Request.Context(), businessID, photoID, req)
	if err != nil {
		if errors.Is(err, ErrPhotoNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Photo not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update photo"})
		return
	}

	c.JSON(http.StatusOK, p)
}

// SetMainPhoto godoc
// @Summary      Make a photo the main one
// @Description  Demotes every other photo of the business.
// @Tags         admin
// @Security     BearerAuth
// @Produce      json
// @Param        photoID  path      int  true  "Photo ID"
// @Success      200      {object}  gin.H
// @Failure      400      {object}  gin.H
// @Failure      404      {object}  gin.H
// @Failure      500      {object}  gin.H
// @Router       /admin/photos/{photoID}/set-main [patch]
func (h *Handler) SetMainPhoto(c *gin.Context) {
	businessID, ok := auth.GetBusinessID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Admin not authenticated"})
		return
	}

	photoID, err := strconv.Atoi(c.Param("photoID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid photo ID"})
		return
	}

	if err := h.repo.SetMain(c.Request.Context(), businessID, photoID); err != nil {
		if errors.Is(err, ErrPhotoNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Photo not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to set main photo"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Main photo updated"})
}

// DeletePhoto godoc
// @Summary      Delete a gallery photo
// @Tags         admin
// @Security     BearerAuth
// @Param        photoID  path  int  true  "Photo ID"
// @Success      204
// @Failure      400  {object}  gin.H
// @Failure      404  {object}  gin.H
// @Failure      500  {object}  gin.H
// @Router       /admin/photos/{photoID} [delete]
func (h *Handler) DeletePhoto(c *gin.Context) {
	businessID, ok := auth.GetBusinessID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Admin not authenticated"})
		return
	}

	photoID, err := strconv.Atoi(c.Param("photoID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid photo ID"})
		return
	}

	if err := h.repo.Delete(c.Request.Context(), businessID, photoID); err != nil {
		if errors.Is(err, ErrPhotoNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Photo not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete photo"})
		return
	}

	c.Status(http.StatusNoContent)
}

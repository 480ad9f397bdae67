package upload

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/NazarovEvgn/lets-app/internal/auth"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const maxFileSize = 5 << 20 // 5 MB

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

type Handler struct {
	dir string
}

// NewHandler stores uploads under dir, which the server also serves at
// /uploads.
func NewHandler(dir string) *Handler {
	return &Handler{dir: dir}
}

// UploadImage godoc
// @Summary      Upload an image
// @Description  Accepts a multipart image for logos and photos, returns its
// @Description  public URL.
// @Tags         admin
// @Security     BearerAuth
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "Image file"
// @Success      201   {object}  gin.H
// @Failure      400   {object}  gin.H
// @Failure      413   {object}  gin.H
// @Failure      500   {object}  gin.H
// @Router       /admin/upload [post]
func (h *Handler) UploadImage(c *gin.Context) {
	if _, ok := auth.GetBusinessID(c); !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Admin not authenticated"})
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file field is required"})
		return
	}

	if file.Size > maxFileSize {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "File exceeds 5 MB limit"})
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedExtensions[ext] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Only jpg, jpeg, png and webp files are allowed"})
		return
	}

	name := uuid.NewString() + ext
	dst := filepath.Join(h.dir, name)

	if err := c.SaveUploadedFile(file, dst); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save file"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"url": "/uploads/" + name})
}

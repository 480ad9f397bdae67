package availability

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/NazarovEvgn/lets-app/internal/metrics"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	resolver *Resolver
}

func NewHandler(resolver *Resolver) *Handler {
	return &Handler{resolver: resolver}
}

// GetAvailableSlots godoc
// @Summary      Available booking slots
// @Description  Returns bookable slots for a business, service and date.
// @Tags         businesses
// @Produce      json
// @Param        businessID  path      int     true  "Business ID"
// @Param        service_id  query     int     true  "Service ID"
// @Param        date        query     string  true  "Date in YYYY-MM-DD format"
// @Success      200         {object}  DaySchedule
// @Failure      400         {object}  gin.H
// @Failure      404         {object}  gin.H
// @Failure      500         {object}  gin.H
// @Router       /businesses/{businessID}/available-slots [get]
func (h *Handler) GetAvailableSlots(c *gin.Context) {
	businessID, err := strconv.Atoi(c.Param("businessID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid business ID"})
		return
	}

	serviceID, err := strconv.Atoi(c.Query("service_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "service_id query param is required"})
		return
	}

	date := c.Query("date")
	if date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date query param is required"})
		return
	}

	schedule, err := h.resolver.Resolve(c.Request.Context(), businessID, serviceID, date)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidDate), errors.Is(err, ErrDateInPast):
			metrics.RecordSlotQuery("invalid_input")
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, ErrServiceNotFound):
			metrics.RecordSlotQuery("not_found")
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			metrics.RecordSlotQuery("error")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute available slots"})
		}
		return
	}

	if schedule.BusinessHours.IsClosed {
		metrics.RecordSlotQuery("closed")
	} else {
		metrics.RecordSlotQuery("ok")
	}

	c.JSON(http.StatusOK, schedule)
}

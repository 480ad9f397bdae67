package availability

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupSlotsRouter(r *Resolver) *gin.Engine {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.GET("/businesses/:businessID/available-slots", NewHandler(r).GetAvailableSlots)
	return router
}

func getSlots(router *gin.Engine, url string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, url, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestGetAvailableSlots_BadParams(t *testing.T) {
	r := newTestResolver(new(MockServiceFinder), new(MockHoursFinder), new(MockBookingFinder),
		time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC))
	router := setupSlotsRouter(r)

	tests := []struct {
		name string
		url  string
	}{
		{"non-numeric business id", "/businesses/abc/available-slots?service_id=1&date=" + testDate},
		{"missing service_id", "/businesses/1/available-slots?date=" + testDate},
		{"missing date", "/businesses/1/available-slots?service_id=1"},
		{"malformed date", "/businesses/1/available-slots?service_id=1&date=16-06-2025"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := getSlots(router, tt.url)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestGetAvailableSlots_PastDate(t *testing.T) {
	r := newTestResolver(new(MockServiceFinder), new(MockHoursFinder), new(MockBookingFinder),
		time.Date(2025, 6, 20, 12, 0, 0, 0, time.UTC))
	router := setupSlotsRouter(r)

	w := getSlots(router, "/businesses/1/available-slots?service_id=1&date="+testDate)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "past")
}

func TestGetAvailableSlots_ServiceNotFound(t *testing.T) {
	services := new(MockServiceFinder)
	services.On("ServiceExists", mock.Anything, 1, 99).Return(false, nil)

	r := newTestResolver(services, new(MockHoursFinder), new(MockBookingFinder),
		time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC))
	router := setupSlotsRouter(r)

	w := getSlots(router, "/businesses/1/available-slots?service_id=99&date="+testDate)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetAvailableSlots_StorageError(t *testing.T) {
	services := new(MockServiceFinder)
	services.On("ServiceExists", mock.Anything, 1, 1).Return(false, errors.New("connection refused"))

	r := newTestResolver(services, new(MockHoursFinder), new(MockBookingFinder),
		time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC))
	router := setupSlotsRouter(r)

	w := getSlots(router, "/businesses/1/available-slots?service_id=1&date="+testDate)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	// Внутренняя ошибка не протекает в ответ
	assert.NotContains(t, w.Body.String(), "connection refused")
}

func TestGetAvailableSlots_ClosedDay(t *testing.T) {
	services := new(MockServiceFinder)
	services.On("ServiceExists", mock.Anything, 1, 1).Return(true, nil)
	hours := new(MockHoursFinder)
	hours.On("FindDayHours", mock.Anything, 1, testWeekday).Return(nil, nil)

	r := newTestResolver(services, hours, new(MockBookingFinder),
		time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC))
	router := setupSlotsRouter(r)

	w := getSlots(router, "/businesses/1/available-slots?service_id=1&date="+testDate)

	require.Equal(t, http.StatusOK, w.Code)

	var schedule DaySchedule
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &schedule))
	assert.True(t, schedule.BusinessHours.IsClosed)
	assert.NotNil(t, schedule.Slots)
	assert.Empty(t, schedule.Slots)
}

func TestGetAvailableSlots_OK(t *testing.T) {
	services := new(MockServiceFinder)
	services.On("ServiceExists", mock.Anything, 1, 1).Return(true, nil)
	hours := new(MockHoursFinder)
	hours.On("FindDayHours", mock.Anything, 1, testWeekday).Return(openClose(9, 0, 10, 30), nil)
	bookings := new(MockBookingFinder)
	bookings.On("FindActiveBookingTimes", mock.Anything, 1, mock.Anything).Return([]string{"09:30"}, nil)

	r := newTestResolver(services, hours, bookings,
		time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC))
	router := setupSlotsRouter(r)

	w := getSlots(router, "/businesses/1/available-slots?service_id=1&date="+testDate)

	require.Equal(t, http.StatusOK, w.Code)

	var schedule DaySchedule
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &schedule))
	assert.Equal(t, testDate, schedule.Date)
	require.Len(t, schedule.Slots, 3)
	assert.Equal(t, TimeSlot{Time: "09:00", Available: true}, schedule.Slots[0])
	assert.Equal(t, TimeSlot{Time: "09:30", Available: false}, schedule.Slots[1])
	assert.Equal(t, TimeSlot{Time: "10:00", Available: true}, schedule.Slots[2])
}

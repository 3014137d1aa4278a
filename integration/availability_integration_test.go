package booking_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tuneslot/internal/lesson"
)

func TestAvailabilityIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	db := setupTestDB(t)
	defer db.Close()

	bookingRouter := newBookingRouter(db)

	handler := lesson.NewHandler(lesson.NewService(lesson.NewRepository(db)))
	router := gin.New()
	router.GET("/lessons/:lessonID/availability", handler.GetAvailability)

	getAvailability := func(t *testing.T, lessonID int, date string) []lesson.SlotAvailability {
		req := httptest.NewRequest("GET", fmt.Sprintf("/lessons/%d/availability?date=%s", lessonID, date), nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var availability []lesson.SlotAvailability
		json.Unmarshal(w.Body.Bytes(), &availability)
		return availability
	}

	t.Run("Unbooked slots are available", func(t *testing.T) {
		cleanDatabase(t, db)

		instrumentID := createTestInstrument(t, db, "Piano")
		lessonID := createTestLesson(t, db, instrumentID)
		date, dow := nextWeekDate()
		createTestSlot(t, db, lessonID, dow, "14:00", "15:00")
		createTestSlot(t, db, lessonID, dow, "15:00", "16:00")

		availability := getAvailability(t, lessonID, date)

		require.Len(t, availability, 2)
		assert.True(t, availability[0].IsAvailable)
		assert.True(t, availability[1].IsAvailable)
	})

	t.Run("Booked slot is marked taken", func(t *testing.T) {
		cleanDatabase(t, db)

		userID := createTestUser(t, db, "student@example.com", "Student", "student")
		instrumentID := createTestInstrument(t, db, "Piano")
		lessonID := createTestLesson(t, db, instrumentID)
		date, dow := nextWeekDate()
		slot1 := createTestSlot(t, db, lessonID, dow, "14:00", "15:00")
		createTestSlot(t, db, lessonID, dow, "15:00", "16:00")

		w := postBooking(bookingRouter, generateTestToken(userID, "student@example.com", "student"), map[string]interface{}{
			"lesson_id":    lessonID,
			"time_slot_id": slot1,
			"date":         date,
		})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		availability := getAvailability(t, lessonID, date)

		require.Len(t, availability, 2)
		assert.False(t, availability[0].IsAvailable)
		assert.True(t, availability[1].IsAvailable)
	})

	t.Run("Free-form booking blocks the matching start time", func(t *testing.T) {
		cleanDatabase(t, db)

		userID := createTestUser(t, db, "student@example.com", "Student", "student")
		instrumentID := createTestInstrument(t, db, "Guitar")
		lessonID := createTestLesson(t, db, instrumentID)
		date, dow := nextWeekDate()
		createTestSlot(t, db, lessonID, dow, "14:00", "15:00")

		w := postBooking(bookingRouter, generateTestToken(userID, "student@example.com", "student"), map[string]interface{}{
			"lesson_id":  lessonID,
			"date":       date,
			"start_time": "14:00",
			"end_time":   "15:00",
		})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		availability := getAvailability(t, lessonID, date)

		require.Len(t, availability, 1)
		assert.False(t, availability[0].IsAvailable)
	})

	t.Run("Slots on another weekday do not show", func(t *testing.T) {
		cleanDatabase(t, db)

		instrumentID := createTestInstrument(t, db, "Piano")
		lessonID := createTestLesson(t, db, instrumentID)
		date, dow := nextWeekDate()
		createTestSlot(t, db, lessonID, (dow+1)%7, "14:00", "15:00")

		availability := getAvailability(t, lessonID, date)

		assert.Empty(t, availability)
	})

	t.Run("Unknown lesson is a 404", func(t *testing.T) {
		cleanDatabase(t, db)

		date, _ := nextWeekDate()
		req := httptest.NewRequest("GET", fmt.Sprintf("/lessons/%d/availability?date=%s", 99999, date), nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

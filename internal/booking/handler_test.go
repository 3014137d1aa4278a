package booking

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockService struct{ mock.Mock }

func (m *MockService) Create(ctx context.Context, userID int, req CreateBookingRequest) (*Booking, int, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).(*Booking), args.Int(1), args.Error(2)
}

func (m *MockService) Cancel(ctx context.Context, requesterID int, isAdmin bool, bookingID int) error {
	return m.Called(ctx, requesterID, isAdmin, bookingID).Error(0)
}

func (m *MockService) Confirm(ctx context.Context, bookingID int) error {
	return m.Called(ctx, bookingID).Error(0)
}

func (m *MockService) MarkNoShow(ctx context.Context, bookingID int) error {
	return m.Called(ctx, bookingID).Error(0)
}

func (m *MockService) GetUserBookings(ctx context.Context, userID int) ([]Booking, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Booking), args.Error(1)
}

func (m *MockService) GetBookingsByLesson(ctx context.Context, lessonID int) ([]BookingWithDetails, error) {
	args := m.Called(ctx, lessonID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]BookingWithDetails), args.Error(1)
}

func (m *MockService) GetBookingsByDate(ctx context.Context, date time.Time) ([]BookingWithDetails, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]BookingWithDetails), args.Error(1)
}

func setupHandlerRouter(svc Service, userID int, role string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(svc)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Set("user_role", role)
	})
	r.POST("/bookings", h.CreateBooking)
	r.POST("/bookings/:bookingID/cancel", h.CancelBooking)
	r.GET("/bookings", h.ListMyBookings)
	return r
}

func postJSON(r *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHandler_CreateBooking(t *testing.T) {
	validReq := CreateBookingRequest{
		LessonID:  1,
		Date:      "2026-03-04",
		StartTime: "14:00",
		EndTime:   "15:00",
	}

	tests := []struct {
		name       string
		serviceErr error
		wantStatus int
	}{
		{"created", nil, http.StatusCreated},
		{"conflict maps to 409", ErrBookingConflict, http.StatusConflict},
		{"unknown lesson maps to 404", ErrLessonNotFound, http.StatusNotFound},
		{"unknown slot maps to 404", ErrSlotNotFound, http.StatusNotFound},
		{"date mismatch maps to 400", ErrSlotDateMismatch, http.StatusBadRequest},
		{"past booking maps to 400", ErrBookingInPast, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			if tt.serviceErr != nil {
				svc.On("Create", mock.Anything, 5, mock.Anything).Return(nil, 0, tt.serviceErr)
			} else {
				svc.On("Create", mock.Anything, 5, mock.Anything).Return(&Booking{ID: 10, UserID: 5, Status: StatusConfirmed}, 33, nil)
			}

			r := setupHandlerRouter(svc, 5, "student")
			w := postJSON(r, "/bookings", validReq)

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}

	t.Run("malformed body never reaches the service", func(t *testing.T) {
		svc := new(MockService)
		r := setupHandlerRouter(svc, 5, "student")

		w := postJSON(r, "/bookings", map[string]interface{}{"lesson_id": "not-a-number"})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		svc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestHandler_CancelBooking(t *testing.T) {
	tests := []struct {
		name       string
		serviceErr error
		wantStatus int
	}{
		{"cancelled", nil, http.StatusOK},
		{"not found maps to 404", ErrBookingNotFound, http.StatusNotFound},
		{"foreign booking maps to 403", ErrNotOwner, http.StatusForbidden},
		{"terminal booking maps to 400", ErrBookingFinal, http.StatusBadRequest},
		{"notice window maps to 422", ErrCancellationNotice, http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			svc.On("Cancel", mock.Anything, 5, false, 10).Return(tt.serviceErr)

			r := setupHandlerRouter(svc, 5, "student")
			w := postJSON(r, "/bookings/10/cancel", nil)

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}

	t.Run("admin flag is forwarded", func(t *testing.T) {
		svc := new(MockService)
		svc.On("Cancel", mock.Anything, 1, true, 10).Return(nil)

		r := setupHandlerRouter(svc, 1, "admin")
		w := postJSON(r, "/bookings/10/cancel", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		svc.AssertExpectations(t)
	})

	t.Run("non-numeric id", func(t *testing.T) {
		svc := new(MockService)
		r := setupHandlerRouter(svc, 5, "student")

		w := postJSON(r, "/bookings/abc/cancel", nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

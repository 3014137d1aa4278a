package lesson

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockRepo struct{ mock.Mock }

func (m *MockRepo) CreateLesson(ctx context.Context, req CreateLessonRequest) (*Lesson, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Lesson), args.Error(1)
}

func (m *MockRepo) GetLessonByID(ctx context.Context, id int) (*Lesson, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Lesson), args.Error(1)
}

func (m *MockRepo) GetAllLessons(ctx context.Context, onlyActive bool) ([]Lesson, error) {
	args := m.Called(ctx, onlyActive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Lesson), args.Error(1)
}

func (m *MockRepo) UpdateLesson(ctx context.Context, id int, req UpdateLessonRequest) (*Lesson, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Lesson), args.Error(1)
}

func (m *MockRepo) CreateTimeSlot(ctx context.Context, lessonID, dayOfWeek int, startTime, endTime string) (*TimeSlot, error) {
	args := m.Called(ctx, lessonID, dayOfWeek, startTime, endTime)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*TimeSlot), args.Error(1)
}

func (m *MockRepo) GetTimeSlotByID(ctx context.Context, id int) (*TimeSlot, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*TimeSlot), args.Error(1)
}

func (m *MockRepo) GetTimeSlotsByLesson(ctx context.Context, lessonID int) ([]TimeSlot, error) {
	args := m.Called(ctx, lessonID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]TimeSlot), args.Error(1)
}

func (m *MockRepo) GetActiveSlotsForDay(ctx context.Context, lessonID, dayOfWeek int) ([]TimeSlot, error) {
	args := m.Called(ctx, lessonID, dayOfWeek)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]TimeSlot), args.Error(1)
}

func (m *MockRepo) UpdateTimeSlot(ctx context.Context, id, dayOfWeek int, startTime, endTime string) (*TimeSlot, error) {
	args := m.Called(ctx, id, dayOfWeek, startTime, endTime)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*TimeSlot), args.Error(1)
}

func (m *MockRepo) SetTimeSlotActive(ctx context.Context, id int, active bool) error {
	return m.Called(ctx, id, active).Error(0)
}

func (m *MockRepo) DeleteTimeSlot(ctx context.Context, id int) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockRepo) GetBookingMarkersForDate(ctx context.Context, date time.Time) (*BookingMarkers, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*BookingMarkers), args.Error(1)
}

func (m *MockRepo) SlotHasFutureLiveBooking(ctx context.Context, slotID int, from time.Time) (bool, error) {
	args := m.Called(ctx, slotID, from)
	return args.Bool(0), args.Error(1)
}

func dayPtr(v int) *int { return &v }

func TestService_CreateTimeSlot(t *testing.T) {
	piano := &Lesson{ID: 1, Title: "Piano Basics", IsActive: true}
	existing := []TimeSlot{
		{ID: 7, LessonID: 1, DayOfWeek: 3, StartTime: "14:00", EndTime: "15:00", IsActive: true},
	}

	tests := []struct {
		name       string
		req        CreateTimeSlotRequest
		setupMocks func(*MockRepo)
		wantErr    error
	}{
		{
			name: "non-overlapping slot is created",
			req:  CreateTimeSlotRequest{DayOfWeek: dayPtr(3), StartTime: "16:00", EndTime: "17:00"},
			setupMocks: func(r *MockRepo) {
				r.On("GetLessonByID", mock.Anything, 1).Return(piano, nil)
				r.On("GetActiveSlotsForDay", mock.Anything, 1, 3).Return(existing, nil)
				r.On("CreateTimeSlot", mock.Anything, 1, 3, "16:00", "17:00").Return(&TimeSlot{ID: 8, LessonID: 1, DayOfWeek: 3, StartTime: "16:00", EndTime: "17:00", IsActive: true}, nil)
			},
		},
		{
			name: "back-to-back slot shares an endpoint and is allowed",
			req:  CreateTimeSlotRequest{DayOfWeek: dayPtr(3), StartTime: "15:00", EndTime: "16:00"},
			setupMocks: func(r *MockRepo) {
				r.On("GetLessonByID", mock.Anything, 1).Return(piano, nil)
				r.On("GetActiveSlotsForDay", mock.Anything, 1, 3).Return(existing, nil)
				r.On("CreateTimeSlot", mock.Anything, 1, 3, "15:00", "16:00").Return(&TimeSlot{ID: 9, LessonID: 1, DayOfWeek: 3, StartTime: "15:00", EndTime: "16:00", IsActive: true}, nil)
			},
		},
		{
			name: "overlapping slot is rejected",
			req:  CreateTimeSlotRequest{DayOfWeek: dayPtr(3), StartTime: "14:30", EndTime: "15:30"},
			setupMocks: func(r *MockRepo) {
				r.On("GetLessonByID", mock.Anything, 1).Return(piano, nil)
				r.On("GetActiveSlotsForDay", mock.Anything, 1, 3).Return(existing, nil)
			},
			wantErr: ErrSlotOverlap,
		},
		{
			name: "inverted window is rejected",
			req:  CreateTimeSlotRequest{DayOfWeek: dayPtr(3), StartTime: "15:00", EndTime: "14:00"},
			setupMocks: func(r *MockRepo) {
				r.On("GetLessonByID", mock.Anything, 1).Return(piano, nil)
			},
			wantErr: ErrInvalidSlot,
		},
		{
			name: "zero-length window is rejected",
			req:  CreateTimeSlotRequest{DayOfWeek: dayPtr(3), StartTime: "14:00", EndTime: "14:00"},
			setupMocks: func(r *MockRepo) {
				r.On("GetLessonByID", mock.Anything, 1).Return(piano, nil)
			},
			wantErr: ErrInvalidSlot,
		},
		{
			name: "unpadded clock string is rejected",
			req:  CreateTimeSlotRequest{DayOfWeek: dayPtr(3), StartTime: "9:00", EndTime: "10:00"},
			setupMocks: func(r *MockRepo) {
				r.On("GetLessonByID", mock.Anything, 1).Return(piano, nil)
			},
			wantErr: ErrInvalidSlot,
		},
		{
			name: "unknown lesson",
			req:  CreateTimeSlotRequest{DayOfWeek: dayPtr(3), StartTime: "16:00", EndTime: "17:00"},
			setupMocks: func(r *MockRepo) {
				r.On("GetLessonByID", mock.Anything, 1).Return(nil, errors.New("no rows"))
			},
			wantErr: ErrLessonNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockRepo)
			tt.setupMocks(repo)
			svc := NewService(repo)

			slot, err := svc.CreateTimeSlot(context.Background(), 1, tt.req)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, slot)
				return
			}

			assert.NoError(t, err)
			assert.NotNil(t, slot)
			repo.AssertExpectations(t)
		})
	}
}

func TestService_UpdateTimeSlot_ExcludesItself(t *testing.T) {
	repo := new(MockRepo)
	current := &TimeSlot{ID: 7, LessonID: 1, DayOfWeek: 3, StartTime: "14:00", EndTime: "15:00", IsActive: true}

	repo.On("GetTimeSlotByID", mock.Anything, 7).Return(current, nil)
	// The only slot on the day is the one being edited; moving it within
	// its own old window must not count as an overlap.
	repo.On("GetActiveSlotsForDay", mock.Anything, 1, 3).Return([]TimeSlot{*current}, nil)
	repo.On("UpdateTimeSlot", mock.Anything, 7, 3, "14:30", "15:30").Return(&TimeSlot{ID: 7, LessonID: 1, DayOfWeek: 3, StartTime: "14:30", EndTime: "15:30", IsActive: true}, nil)

	svc := NewService(repo)
	slot, err := svc.UpdateTimeSlot(context.Background(), 7, UpdateTimeSlotRequest{
		DayOfWeek: dayPtr(3), StartTime: "14:30", EndTime: "15:30",
	})

	assert.NoError(t, err)
	assert.Equal(t, "14:30", slot.StartTime)
	repo.AssertExpectations(t)
}

func TestService_DeleteTimeSlot(t *testing.T) {
	now := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	slot := &TimeSlot{ID: 7, LessonID: 1, DayOfWeek: 3, StartTime: "14:00", EndTime: "15:00", IsActive: true}

	t.Run("slot with a future live booking is refused", func(t *testing.T) {
		repo := new(MockRepo)
		repo.On("GetTimeSlotByID", mock.Anything, 7).Return(slot, nil)
		repo.On("SlotHasFutureLiveBooking", mock.Anything, 7, now).Return(true, nil)

		svc := NewService(repo).(*service)
		svc.now = func() time.Time { return now }

		assert.ErrorIs(t, svc.DeleteTimeSlot(context.Background(), 7), ErrSlotHasBookings)
		repo.AssertNotCalled(t, "DeleteTimeSlot", mock.Anything, 7)
	})

	t.Run("unreferenced slot is deleted", func(t *testing.T) {
		repo := new(MockRepo)
		repo.On("GetTimeSlotByID", mock.Anything, 7).Return(slot, nil)
		repo.On("SlotHasFutureLiveBooking", mock.Anything, 7, now).Return(false, nil)
		repo.On("DeleteTimeSlot", mock.Anything, 7).Return(nil)

		svc := NewService(repo).(*service)
		svc.now = func() time.Time { return now }

		assert.NoError(t, svc.DeleteTimeSlot(context.Background(), 7))
		repo.AssertExpectations(t)
	})
}

func TestService_ResolveAvailability(t *testing.T) {
	wednesday := time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC)
	piano := &Lesson{ID: 1, Title: "Piano Basics", IsActive: true}
	slots := []TimeSlot{
		{ID: 7, LessonID: 1, DayOfWeek: 3, StartTime: "14:00", EndTime: "15:00", IsActive: true},
		{ID: 8, LessonID: 1, DayOfWeek: 3, StartTime: "15:00", EndTime: "16:00", IsActive: true},
		{ID: 9, LessonID: 1, DayOfWeek: 3, StartTime: "16:00", EndTime: "17:00", IsActive: true},
	}

	tests := []struct {
		name    string
		markers *BookingMarkers
		want    []bool
	}{
		{
			name:    "no bookings leaves every slot open",
			markers: &BookingMarkers{SlotIDs: map[int]struct{}{}, StartTimes: map[string]struct{}{}},
			want:    []bool{true, true, true},
		},
		{
			name: "slot id marker blocks its slot",
			markers: &BookingMarkers{
				SlotIDs:    map[int]struct{}{8: {}},
				StartTimes: map[string]struct{}{},
			},
			want: []bool{true, false, true},
		},
		{
			name: "free-form start time blocks the matching window",
			markers: &BookingMarkers{
				SlotIDs:    map[int]struct{}{},
				StartTimes: map[string]struct{}{"16:00": {}},
			},
			want: []bool{true, true, false},
		},
		{
			name: "both marker kinds combine",
			markers: &BookingMarkers{
				SlotIDs:    map[int]struct{}{7: {}},
				StartTimes: map[string]struct{}{"15:00": {}},
			},
			want: []bool{false, false, true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockRepo)
			repo.On("GetLessonByID", mock.Anything, 1).Return(piano, nil)
			repo.On("GetActiveSlotsForDay", mock.Anything, 1, 3).Return(slots, nil)
			repo.On("GetBookingMarkersForDate", mock.Anything, wednesday).Return(tt.markers, nil)

			svc := NewService(repo)
			result, err := svc.ResolveAvailability(context.Background(), 1, wednesday)

			assert.NoError(t, err)
			assert.Len(t, result, len(tt.want))
			for i, avail := range tt.want {
				assert.Equal(t, avail, result[i].IsAvailable, "slot %d", result[i].SlotID)
			}
		})
	}
}

func TestService_ResolveAvailability_UnknownLesson(t *testing.T) {
	repo := new(MockRepo)
	repo.On("GetLessonByID", mock.Anything, 99).Return(nil, errors.New("no rows"))

	svc := NewService(repo)
	_, err := svc.ResolveAvailability(context.Background(), 99, time.Now())

	assert.ErrorIs(t, err, ErrLessonNotFound)
}

package lesson

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidClock(t *testing.T) {
	valid := []string{"00:00", "09:30", "14:00", "23:59"}
	for _, v := range valid {
		assert.True(t, ValidClock(v), v)
	}

	invalid := []string{"", "24:00", "9:30", "14:60", "14:00:00", "2pm", "14.00"}
	for _, v := range invalid {
		assert.False(t, ValidClock(v), v)
	}
}

func TestClocksOverlap(t *testing.T) {
	tests := []struct {
		name           string
		s1, e1, s2, e2 string
		want           bool
	}{
		{"identical windows", "14:00", "15:00", "14:00", "15:00", true},
		{"partial overlap", "14:00", "15:00", "14:30", "15:30", true},
		{"containment", "14:00", "16:00", "14:30", "15:00", true},
		{"touching endpoints do not overlap", "14:00", "15:00", "15:00", "16:00", false},
		{"touching endpoints reversed", "15:00", "16:00", "14:00", "15:00", false},
		{"disjoint", "09:00", "10:00", "14:00", "15:00", false},
		{"one minute overlap", "14:00", "15:01", "15:00", "16:00", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClocksOverlap(tt.s1, tt.e1, tt.s2, tt.e2))
			// Overlap is symmetric.
			assert.Equal(t, tt.want, ClocksOverlap(tt.s2, tt.e2, tt.s1, tt.e1))
		})
	}
}

func TestDayOfWeek(t *testing.T) {
	sunday := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 0, DayOfWeek(sunday))
	assert.Equal(t, 1, DayOfWeek(sunday.AddDate(0, 0, 1)))
	assert.Equal(t, 6, DayOfWeek(sunday.AddDate(0, 0, 6)))
}

func TestParseDate(t *testing.T) {
	date, err := ParseDate("2026-03-04")
	assert.NoError(t, err)
	assert.Equal(t, time.March, date.Month())
	assert.Equal(t, 4, date.Day())

	for _, bad := range []string{"04-03-2026", "2026/03/04", "2026-3-4", "yesterday", ""} {
		_, err := ParseDate(bad)
		assert.Error(t, err, bad)
	}
}

func TestCombineDateClock(t *testing.T) {
	date, _ := ParseDate("2026-03-04")

	at, err := CombineDateClock(date, "14:30", time.UTC)
	assert.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 4, 14, 30, 0, 0, time.UTC), at)

	_, err = CombineDateClock(date, "25:00", time.UTC)
	assert.Error(t, err)
}

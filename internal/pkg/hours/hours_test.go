package hours

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTo24Hour(t *testing.T) {
	tests := []struct {
		in     string
		want   string
		wantOK bool
	}{
		{"12:00 AM", "00:00", true},
		{"12:00 PM", "12:00", true},
		{"1:30 PM", "13:30", true},
		{"11:59 PM", "23:59", true},
		{"7:00 AM", "07:00", true},
		{"9:5 am", "09:05", true},
		{"", "", false},
		{"bogus", "", false},
		{"7:00", "", false},
		{"x:30 PM", "", false},
		{":30 PM", "", false},
		{"7: PM", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := To24Hour(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func strPtr(s string) *string { return &s }

func TestIsCurrentlyOpen(t *testing.T) {
	// 2024-06-03 is a Monday.
	at := func(hh, mm int) time.Time {
		return time.Date(2024, 6, 3, hh, mm, 0, 0, time.Local)
	}

	week := Week{
		"monday":  {Open: strPtr("07:00"), Close: strPtr("18:00")},
		"tuesday": {Closed: true},
	}

	t.Run("inside range", func(t *testing.T) {
		assert.True(t, IsCurrentlyOpen(week, at(9, 30)))
	})

	t.Run("bounds are inclusive", func(t *testing.T) {
		assert.True(t, IsCurrentlyOpen(week, at(7, 0)))
		assert.True(t, IsCurrentlyOpen(week, at(18, 0)))
	})

	t.Run("outside range", func(t *testing.T) {
		assert.False(t, IsCurrentlyOpen(week, at(6, 59)))
		assert.False(t, IsCurrentlyOpen(week, at(18, 1)))
	})

	t.Run("closed day", func(t *testing.T) {
		assert.False(t, IsCurrentlyOpen(week, at(9, 0).AddDate(0, 0, 1)))
	})

	t.Run("missing day", func(t *testing.T) {
		assert.False(t, IsCurrentlyOpen(week, at(9, 0).AddDate(0, 0, 2)))
	})

	// Overnight ranges are reported closed; this pins current behaviour.
	t.Run("overnight range reports closed", func(t *testing.T) {
		night := Week{"monday": {Open: strPtr("18:00"), Close: strPtr("02:00")}}
		assert.False(t, IsCurrentlyOpen(night, at(23, 0)))
		assert.False(t, IsCurrentlyOpen(night, at(1, 0)))
	})
}

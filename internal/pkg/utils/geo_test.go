package utils

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHaversineDistance(t *testing.T) {
	t.Run("same point", func(t *testing.T) {
		assert.Equal(t, 0.0, HaversineDistance(14.5, 121.0, 14.5, 121.0))
	})

	t.Run("one degree of latitude", func(t *testing.T) {
		// 2*pi*6371/360
		assert.InDelta(t, 111.19, HaversineDistance(0, 0, 1, 0), 0.01)
	})

	t.Run("symmetric", func(t *testing.T) {
		a := HaversineDistance(14.5, 121.0, 14.6, 121.1)
		b := HaversineDistance(14.6, 121.1, 14.5, 121.0)
		assert.InDelta(t, a, b, 1e-9)
		assert.InDelta(t, 15.48, a, 0.01)
	})
}

func TestValidateCoordinates(t *testing.T) {
	assert.True(t, ValidateCoordinates(90, 180))
	assert.True(t, ValidateCoordinates(-90, -180))
	assert.False(t, ValidateCoordinates(90.1, 0))
	assert.False(t, ValidateCoordinates(0, -180.5))
	assert.False(t, ValidateCoordinates(math.NaN(), 0))
}

func TestMidpoint(t *testing.T) {
	lat, lon := Midpoint(14.5, 121.0, 14.6, 121.1)
	assert.InDelta(t, 14.55, lat, 1e-9)
	assert.InDelta(t, 121.05, lon, 1e-9)
}

func TestRoundTo(t *testing.T) {
	assert.Equal(t, 1.23, RoundTo(1.2345, 2))
	assert.Equal(t, 1.24, RoundTo(1.235001, 2))
	assert.Equal(t, 0.0, RoundTo(0.004, 2))
}

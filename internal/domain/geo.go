package domain

import (
	"math"
	"time"
)

// GeoPoint - координата в градусах WGS84. Передаётся по значению.
type GeoPoint struct {
	Latitude  float64 `json:"latitude" validate:"min=-90,max=90"`
	Longitude float64 `json:"longitude" validate:"min=-180,max=180"`
}

// Valid проверяет диапазоны и конечность координат
func (p GeoPoint) Valid() bool {
	if math.IsNaN(p.Latitude) || math.IsNaN(p.Longitude) ||
		math.IsInf(p.Latitude, 0) || math.IsInf(p.Longitude, 0) {
		return false
	}
	return p.Latitude >= -90 && p.Latitude <= 90 &&
		p.Longitude >= -180 && p.Longitude <= 180
}

// CachedLocation - сохранённая геопозиция пользователя
type CachedLocation struct {
	Point      GeoPoint  `json:"point"`
	CapturedAt time.Time `json:"captured_at"`
}

// Suggestion - вариант автодополнения адреса с координатами
type Suggestion struct {
	Address string  `json:"address"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

// Point возвращает координату подсказки
func (s Suggestion) Point() GeoPoint {
	return GeoPoint{Latitude: s.Lat, Longitude: s.Lon}
}

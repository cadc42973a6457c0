package dto

// MeetingSpotsRequest - запрос на поиск места встречи двух людей.
// Координаты указателями: отсутствие точки отличается от нуля.
type MeetingSpotsRequest struct {
	ALat    *float64 `query:"a_lat" json:"a_lat"`
	ALng    *float64 `query:"a_lng" json:"a_lng"`
	BLat    *float64 `query:"b_lat" json:"b_lat"`
	BLng    *float64 `query:"b_lng" json:"b_lng"`
	Page    int      `query:"page" json:"page" validate:"omitempty,min=1,max=1000"`
	Session string   `query:"session" json:"session" validate:"omitempty,max=128"`
}

// SessionMeetingRequest - поиск, где точка A берётся из сохранённой геопозиции сессии
type SessionMeetingRequest struct {
	Session string   `query:"session" json:"session" validate:"required,max=128"`
	BLat    *float64 `query:"b_lat" json:"b_lat"`
	BLng    *float64 `query:"b_lng" json:"b_lng"`
	Page    int      `query:"page" json:"page" validate:"omitempty,min=1,max=1000"`
}

// AutocompleteRequest - запрос подсказок адреса
type AutocompleteRequest struct {
	Search string `query:"search" json:"search" validate:"max=200"`
}

// LocationFixRequest - геопозиция, полученная браузером
type LocationFixRequest struct {
	Latitude  *float64 `json:"latitude" validate:"required,min=-90,max=90"`
	Longitude *float64 `json:"longitude" validate:"required,min=-180,max=180"`
}

// SlugRequest - построение slug и подписи для произвольного названия
type SlugRequest struct {
	Name string `query:"name" json:"name" validate:"required,max=300"`
}

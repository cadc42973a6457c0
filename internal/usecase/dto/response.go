package dto

import (
	"math"
	"time"

	"github.com/coffee-finder/internal/domain"
)

// ShopDetailResponse - карточка магазина
type ShopDetailResponse struct {
	Shop      *domain.Shop `json:"shop"`
	IsOpenNow bool         `json:"is_open_now"`
}

// MeetingSpotsResponse - страница кандидатов для встречи.
// Error заполняется, если источник кандидатов недоступен; Items тогда пустой.
type MeetingSpotsResponse struct {
	Midpoint domain.GeoPoint    `json:"midpoint"`
	Items    []MeetingCandidate `json:"items"`
	PageInfo domain.PageInfo    `json:"page_info"`
	Error    string             `json:"error,omitempty"`
}

// MeetingCandidate - кандидат с расстояниями до обеих сторон
type MeetingCandidate struct {
	domain.Shop
	DistanceToPartyA *float64 `json:"distance_to_party_a"`
	DistanceToPartyB *float64 `json:"distance_to_party_b"`
	// FairnessScore - max из двух расстояний, null если координат нет
	FairnessScore *float64 `json:"fairness_score"`
	IsOpenNow     bool     `json:"is_open_now"`
}

// AutocompleteResponse - подсказки адреса
type AutocompleteResponse struct {
	Suggestions []domain.Suggestion `json:"suggestions"`
	Error       string              `json:"error,omitempty"`
}

// LocationResponse - сохранённая геопозиция
type LocationResponse struct {
	Point      domain.GeoPoint `json:"point"`
	CapturedAt time.Time       `json:"captured_at"`
	AgeSeconds int64           `json:"age_seconds"`
}

// SlugResponse - slug и подпись для отображения
type SlugResponse struct {
	Slug  string `json:"slug"`
	Title string `json:"title"`
}

// ConvertMeetingCandidate преобразует кандидата; +Inf в JSON не кодируется, поэтому nil
func ConvertMeetingCandidate(c domain.CandidateShop, openNow bool) MeetingCandidate {
	out := MeetingCandidate{
		Shop:             c.Shop,
		DistanceToPartyA: c.DistanceToPartyA,
		DistanceToPartyB: c.DistanceToPartyB,
		IsOpenNow:        openNow,
	}
	if !math.IsInf(c.FairnessScore, 0) && !math.IsNaN(c.FairnessScore) {
		score := c.FairnessScore
		out.FairnessScore = &score
	}
	return out
}

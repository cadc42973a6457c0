package domain

import "github.com/coffee-finder/internal/pkg/hours"

// RawShopRecord - запись магазина от бэкенда в исходном JSON виде.
// Имена полей и форма различаются между эндпоинтами.
type RawShopRecord map[string]any

// Amenity keys.
const (
	AmenityWifi                 = "wifi"
	AmenityParking              = "parking"
	AmenityOutdoorSeating       = "outdoorSeating"
	AmenityPetFriendly          = "petFriendly"
	AmenityWheelchairAccessible = "wheelchairAccessible"
	AmenityAirConditioning      = "airConditioning"
	AmenityPowerOutlets         = "powerOutlets"
)

// AmenityKeys - фиксированный набор удобств в порядке отображения
var AmenityKeys = []string{
	AmenityWifi,
	AmenityParking,
	AmenityOutdoorSeating,
	AmenityPetFriendly,
	AmenityWheelchairAccessible,
	AmenityAirConditioning,
	AmenityPowerOutlets,
}

// Shop - нормализованный магазин
type Shop struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Slug           string          `json:"slug"`
	Description    string          `json:"description,omitempty"`
	Address        string          `json:"address,omitempty"`
	City           string          `json:"city,omitempty"`
	Coordinates    *GeoPoint       `json:"coordinates,omitempty"`
	OpeningHours   hours.Week      `json:"opening_hours"`
	Amenities      map[string]bool `json:"amenities"`
	AmenitiesArray []string        `json:"amenities_array"`
	PaymentMethods []string        `json:"payment_methods"`
	Images         []string        `json:"images,omitempty"`
	Rating         *float64        `json:"rating,omitempty"`
	ReviewCount    int             `json:"review_count"`
	// DistanceKm - расстояние, посчитанное источником поиска (если есть)
	DistanceKm *float64 `json:"distance_km,omitempty"`
}

// NormalizeResult - результат нормализации карточки магазина.
// При Mismatch магазин не возвращается.
type NormalizeResult struct {
	Mismatch bool  `json:"mismatch"`
	Shop     *Shop `json:"shop,omitempty"`
}

// CandidateShop - магазин-кандидат для места встречи. Живёт один запрос.
type CandidateShop struct {
	Shop
	DistanceToPartyA *float64 `json:"distance_to_party_a,omitempty"`
	DistanceToPartyB *float64 `json:"distance_to_party_b,omitempty"`
	FairnessScore    float64  `json:"-"`
}

// FairnessKnown reports whether both party distances were computed.
func (c CandidateShop) FairnessKnown() bool {
	return c.DistanceToPartyA != nil && c.DistanceToPartyB != nil
}

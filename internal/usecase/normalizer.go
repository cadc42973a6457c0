package usecase

import (
	"encoding/json"
	"math"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/coffee-finder/internal/domain"
	"github.com/coffee-finder/internal/pkg/hours"
	"github.com/coffee-finder/internal/pkg/slug"
)

const defaultPaymentMethod = "Cash"

// coordinateExtractor достаёт пару (lat, lon) из одного варианта формы записи
type coordinateExtractor struct {
	name    string
	extract func(raw domain.RawShopRecord) (lat, lon any)
}

func pair(latPath, lonPath []string) func(domain.RawShopRecord) (any, any) {
	return func(raw domain.RawShopRecord) (any, any) {
		return lookup(raw, latPath...), lookup(raw, lonPath...)
	}
}

func arrayPair(path []string, latIdx, lonIdx int) func(domain.RawShopRecord) (any, any) {
	return func(raw domain.RawShopRecord) (any, any) {
		arr, ok := lookup(raw, path...).([]any)
		if !ok || len(arr) < 2 {
			return nil, nil
		}
		return arr[latIdx], arr[lonIdx]
	}
}

// coordinateExtractors - порядок приоритета; побеждает первая пара конечных чисел в допустимых диапазонах.
// GeoJSON хранит [lng, lat], но обратный порядок тоже пробуем.
var coordinateExtractors = []coordinateExtractor{
	{"latitude/longitude", pair([]string{"latitude"}, []string{"longitude"})},
	{"lat/lng", pair([]string{"lat"}, []string{"lng"})},
	{"lat/longitude", pair([]string{"lat"}, []string{"longitude"})},
	{"latitude/lng", pair([]string{"latitude"}, []string{"lng"})},
	{"location.lat/lng", pair([]string{"location", "lat"}, []string{"location", "lng"})},
	{"location.latitude/longitude", pair([]string{"location", "latitude"}, []string{"location", "longitude"})},
	{"location.coordinates[lng,lat]", arrayPair([]string{"location", "coordinates"}, 1, 0)},
	{"location.coordinates[lat,lng]", arrayPair([]string{"location", "coordinates"}, 0, 1)},
	{"coordinates[lng,lat]", arrayPair([]string{"coordinates"}, 1, 0)},
	{"coordinates[lat,lng]", arrayPair([]string{"coordinates"}, 0, 1)},
}

// amenitySynonyms - написания, которые встречаются у бэкенда, в нижнем регистре
var amenitySynonyms = map[string][]string{
	domain.AmenityWifi:                 {"wifi", "wi-fi", "wi fi", "free wifi"},
	domain.AmenityParking:              {"parking", "free parking", "parking lot"},
	domain.AmenityOutdoorSeating:       {"outdoor seating", "outdoorseating", "outdoor_seating", "outdoor"},
	domain.AmenityPetFriendly:          {"pet friendly", "pet-friendly", "petfriendly", "pets allowed"},
	domain.AmenityWheelchairAccessible: {"wheelchair accessible", "wheelchairaccessible", "wheelchair", "accessible"},
	domain.AmenityAirConditioning:      {"air conditioning", "airconditioning", "air-conditioned", "aircon"},
	domain.AmenityPowerOutlets:         {"power outlets", "power outlet", "poweroutlets", "outlets", "outlet"},
}

// ShopNormalizer приводит разнородные записи бэкенда к domain.Shop.
// Чистая функция от входа, логгер только для отладки.
type ShopNormalizer struct {
	logger *zap.Logger
}

// NewShopNormalizer - создание нового ShopNormalizer
func NewShopNormalizer(logger *zap.Logger) *ShopNormalizer {
	return &ShopNormalizer{logger: logger}
}

// Normalize строит карточку магазина и проверяет, что запись соответствует slug из URL.
// Вызывающий обязан передать не-nil raw.
func (n *ShopNormalizer) Normalize(raw domain.RawShopRecord, routeSlug string) domain.NormalizeResult {
	shop, ok := n.NormalizeListItem(raw)
	if !ok {
		n.logger.Debug("Shop record has no name", zap.String("route_slug", routeSlug))
		return domain.NormalizeResult{Mismatch: true}
	}

	if shop.Slug != slug.Slugify(routeSlug) {
		n.logger.Debug("Shop slug mismatch",
			zap.String("route_slug", routeSlug),
			zap.String("record_slug", shop.Slug))
		return domain.NormalizeResult{Mismatch: true}
	}

	return domain.NormalizeResult{Shop: shop}
}

// NormalizeListItem нормализует запись без проверки slug. false, если нет имени.
func (n *ShopNormalizer) NormalizeListItem(raw domain.RawShopRecord) (*domain.Shop, bool) {
	if raw == nil {
		return nil, false
	}
	name := strings.TrimSpace(stringField(raw, "name"))
	if name == "" {
		return nil, false
	}

	amenities, labels := normalizeAmenities(raw["amenities"])
	coords, source := resolveCoordinates(raw)
	if coords == nil {
		n.logger.Debug("Shop record has no usable coordinates", zap.String("name", name))
	} else {
		n.logger.Debug("Shop coordinates resolved", zap.String("name", name), zap.String("source", source))
	}

	shop := &domain.Shop{
		ID:             shopID(raw, name),
		Name:           name,
		Slug:           slug.Slugify(name),
		Description:    stringField(raw, "description"),
		Address:        addressField(raw),
		City:           cityField(raw),
		Coordinates:    coords,
		OpeningHours:   normalizeOpeningHours(firstPresent(raw, "openingHours", "opening_hours")),
		Amenities:      amenities,
		AmenitiesArray: labels,
		PaymentMethods: normalizePaymentMethods(firstPresent(raw, "paymentMethods", "payment_methods")),
		Images:         imageList(raw["images"]),
		Rating:         floatPtr(raw["rating"]),
		ReviewCount:    intField(firstPresent(raw, "reviewCount", "reviewsCount", "review_count")),
		DistanceKm:     floatPtr(firstPresent(raw, "distanceKm", "distance_km")),
	}

	return shop, true
}

func shopID(raw domain.RawShopRecord, name string) string {
	for _, key := range []string{"id", "_id"} {
		if s, ok := scalarString(raw[key]); ok && s != "" {
			return s
		}
	}
	if name == "" {
		name = "shop"
	}
	return slug.Slugify(name)
}

func resolveCoordinates(raw domain.RawShopRecord) (*domain.GeoPoint, string) {
	for _, ex := range coordinateExtractors {
		latRaw, lonRaw := ex.extract(raw)
		lat, ok := finiteNumber(latRaw)
		if !ok {
			continue
		}
		lon, ok := finiteNumber(lonRaw)
		if !ok {
			continue
		}
		point := domain.GeoPoint{Latitude: lat, Longitude: lon}
		if !point.Valid() {
			// например [lat, lng], прочитанный как [lng, lat]; дальше идёт обратный порядок
			continue
		}
		return &point, ex.name
	}
	return nil, ""
}

func normalizeOpeningHours(v any) hours.Week {
	week := hours.Week{}

	switch src := v.(type) {
	case []any:
		for _, item := range src {
			entry, ok := item.(map[string]any)
			if !ok {
				continue
			}
			day := strings.ToLower(strings.TrimSpace(stringValue(entry["day"])))
			if day == "" {
				continue
			}

			open, openOK := convertBound(entry["open"])
			closeAt, closeOK := convertBound(entry["close"])
			flagged, _ := entry["isClosed"].(bool)

			week[day] = hours.Day{
				Open:   open,
				Close:  closeAt,
				Closed: flagged || !openOK || !closeOK,
			}
		}
	case map[string]any:
		// уже в каноническом виде, переносим как есть
		for day, item := range src {
			entry, ok := item.(map[string]any)
			if !ok {
				continue
			}
			closed, _ := entry["closed"].(bool)
			week[day] = hours.Day{
				Open:   optionalString(entry["open"]),
				Close:  optionalString(entry["close"]),
				Closed: closed,
			}
		}
	}

	return week
}

func convertBound(v any) (*string, bool) {
	s, ok := v.(string)
	if !ok || s == "" {
		return nil, false
	}
	converted, ok := hours.To24Hour(s)
	if !ok {
		return nil, false
	}
	return &converted, true
}

func normalizeAmenities(v any) (map[string]bool, []string) {
	labels := make([]string, 0)

	switch src := v.(type) {
	case []any:
		for _, item := range src {
			switch a := item.(type) {
			case string:
				labels = append(labels, a)
			case map[string]any:
				if name := stringValue(firstPresent(a, "name", "label")); name != "" {
					labels = append(labels, name)
				}
			}
		}
	case map[string]any:
		for _, key := range sortedKeys(src) {
			if enabled, _ := src[key].(bool); enabled {
				labels = append(labels, key)
			}
		}
	}

	present := make(map[string]struct{}, len(labels))
	for _, l := range labels {
		present[strings.ToLower(strings.TrimSpace(l))] = struct{}{}
	}

	flags := make(map[string]bool, len(domain.AmenityKeys))
	for _, key := range domain.AmenityKeys {
		flags[key] = false
		for _, syn := range amenitySynonyms[key] {
			if _, ok := present[syn]; ok {
				flags[key] = true
				break
			}
		}
	}

	return flags, labels
}

func normalizePaymentMethods(v any) []string {
	var methods []string
	if arr, ok := v.([]any); ok {
		for _, item := range arr {
			switch m := item.(type) {
			case string:
				if m != "" {
					methods = append(methods, m)
				}
			case map[string]any:
				if t := stringValue(m["type"]); t != "" {
					methods = append(methods, t)
				}
			}
		}
	}
	if len(methods) == 0 {
		return []string{defaultPaymentMethod}
	}
	return methods
}

func addressField(raw domain.RawShopRecord) string {
	if s := stringField(raw, "address"); s != "" {
		return s
	}
	return stringValue(lookup(raw, "location", "address"))
}

func cityField(raw domain.RawShopRecord) string {
	switch c := raw["city"].(type) {
	case string:
		return c
	case map[string]any:
		return stringValue(c["name"])
	}
	return ""
}

func imageList(v any) []string {
	arr, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(arr))
	for _, item := range arr {
		switch img := item.(type) {
		case string:
			out = append(out, img)
		case map[string]any:
			if u := stringValue(img["url"]); u != "" {
				out = append(out, u)
			}
		}
	}
	return out
}

// --- доступ к полям ---

func lookup(m map[string]any, path ...string) any {
	var cur any = m
	for _, key := range path {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		cur = obj[key]
	}
	return cur
}

func firstPresent(m map[string]any, keys ...string) any {
	for _, k := range keys {
		if v, ok := m[k]; ok && v != nil {
			return v
		}
	}
	return nil
}

func stringField(raw domain.RawShopRecord, key string) string {
	return stringValue(raw[key])
}

func stringValue(v any) string {
	s, _ := v.(string)
	return s
}

func optionalString(v any) *string {
	s, ok := v.(string)
	if !ok || s == "" {
		return nil
	}
	return &s
}

func scalarString(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case json.Number:
		return t.String(), true
	case int:
		return strconv.Itoa(t), true
	case int64:
		return strconv.FormatInt(t, 10), true
	}
	return "", false
}

// finiteNumber принимает числа и числовые строки. nil и пустая строка - отсутствие значения.
func finiteNumber(v any) (float64, bool) {
	var f float64
	switch t := v.(type) {
	case float64:
		f = t
	case float32:
		f = float64(t)
	case int:
		f = float64(t)
	case int64:
		f = float64(t)
	case json.Number:
		parsed, err := t.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return 0, false
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func floatPtr(v any) *float64 {
	f, ok := finiteNumber(v)
	if !ok {
		return nil
	}
	return &f
}

func intField(v any) int {
	f, ok := finiteNumber(v)
	if !ok {
		return 0
	}
	return int(f)
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

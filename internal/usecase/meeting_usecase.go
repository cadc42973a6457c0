package usecase

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/coffee-finder/internal/domain"
	"github.com/coffee-finder/internal/domain/repository"
	"github.com/coffee-finder/internal/pkg/errors"
	"github.com/coffee-finder/internal/pkg/hours"
	"github.com/coffee-finder/internal/pkg/metrics"
	"github.com/coffee-finder/internal/pkg/utils"
	"github.com/coffee-finder/internal/usecase/dto"
)

const (
	// DefaultMeetingPageSize - размер страницы кандидатов
	DefaultMeetingPageSize = 12
	// DefaultOversample - во сколько раз больше страницы запрашиваем у источника
	DefaultOversample = 3

	distancePrecision = 2

	searchFailedMessage = "We couldn't load coffee shops near your meeting point. Please try again."
)

// MeetingResult - отсортированные кандидаты одного поиска.
// ErrorMessage заполнен, если источник кандидатов не ответил.
type MeetingResult struct {
	Midpoint     domain.GeoPoint
	Candidates   []domain.CandidateShop
	ErrorMessage string
}

// MeetingUseCase - поиск места встречи, честного для обеих сторон
type MeetingUseCase struct {
	searchRepo repository.ShopSearchRepository
	normalizer *ShopNormalizer
	analytics  repository.AnalyticsPublisher
	logger     *zap.Logger
	pageSize   int
	oversample int
	now        func() time.Time
}

// NewMeetingUseCase - создание нового MeetingUseCase. analytics может быть nil.
func NewMeetingUseCase(
	searchRepo repository.ShopSearchRepository,
	normalizer *ShopNormalizer,
	analytics repository.AnalyticsPublisher,
	logger *zap.Logger,
	pageSize int,
	oversample int,
) *MeetingUseCase {
	if pageSize <= 0 {
		pageSize = DefaultMeetingPageSize
	}
	if oversample <= 0 {
		oversample = DefaultOversample
	}
	return &MeetingUseCase{
		searchRepo: searchRepo,
		normalizer: normalizer,
		analytics:  analytics,
		logger:     logger,
		pageSize:   pageSize,
		oversample: oversample,
		now:        time.Now,
	}
}

// WithClock подменяет источник времени для is_open_now
func (uc *MeetingUseCase) WithClock(now func() time.Time) *MeetingUseCase {
	uc.now = now
	return uc
}

// Search - поиск по запросу из HTTP: проверка точек, ранжирование, страница
func (uc *MeetingUseCase) Search(ctx context.Context, req dto.MeetingSpotsRequest) (*dto.MeetingSpotsResponse, error) {
	partyA, okA := pointFrom(req.ALat, req.ALng)
	partyB, okB := pointFrom(req.BLat, req.BLng)
	if !okA || !okB {
		return nil, errors.ErrMeetingPointsRequired.WithDetails(map[string]interface{}{
			"party_a": okA,
			"party_b": okB,
		})
	}

	result, err := uc.FindMeetingSpots(ctx, partyA, partyB)
	if err != nil {
		return nil, err
	}

	return uc.BuildPage(result, req.Page), nil
}

// BuildPage нарезает результат на страницу (page с единицы) и конвертирует в DTO
func (uc *MeetingUseCase) BuildPage(result *MeetingResult, page int) *dto.MeetingSpotsResponse {
	if page < 1 {
		page = 1
	}
	items, info := Paginate(result.Candidates, page, uc.pageSize)

	now := uc.now()
	out := make([]dto.MeetingCandidate, 0, len(items))
	for _, c := range items {
		out = append(out, dto.ConvertMeetingCandidate(c, hours.IsCurrentlyOpen(c.OpeningHours, now)))
	}

	return &dto.MeetingSpotsResponse{
		Midpoint: result.Midpoint,
		Items:    out,
		PageInfo: info,
		Error:    result.ErrorMessage,
	}
}

// FindMeetingSpots ищет кандидатов у середины между A и B и сортирует их по
// справедливости: меньший max(расстояние до A, расстояние до B) выше.
// Ошибка возвращается только при невалидных точках; сбой источника даёт
// пустой список и ErrorMessage. Повторов и кеша нет.
func (uc *MeetingUseCase) FindMeetingSpots(ctx context.Context, partyA, partyB domain.GeoPoint) (*MeetingResult, error) {
	if !partyA.Valid() || !partyB.Valid() {
		metrics.MeetingSearches.WithLabelValues("rejected").Inc()
		return nil, errors.ErrMeetingPointsRequired
	}

	midLat, midLon := utils.Midpoint(partyA.Latitude, partyA.Longitude, partyB.Latitude, partyB.Longitude)
	midpoint := domain.GeoPoint{Latitude: midLat, Longitude: midLon}
	limit := uc.pageSize * uc.oversample

	uc.logger.Debug("Searching meeting spots",
		zap.Float64("mid_lat", midLat),
		zap.Float64("mid_lon", midLon),
		zap.Int("limit", limit))

	records, _, err := uc.searchRepo.SearchNearby(ctx, midpoint, limit)
	if err != nil {
		uc.logger.Error("Failed to fetch meeting candidates", zap.Error(err))
		metrics.MeetingSearches.WithLabelValues("error").Inc()
		return &MeetingResult{
			Midpoint:     midpoint,
			Candidates:   []domain.CandidateShop{},
			ErrorMessage: searchFailedMessage,
		}, nil
	}

	shops := make([]domain.Shop, 0, len(records))
	for _, raw := range records {
		shop, ok := uc.normalizer.NormalizeListItem(raw)
		if !ok {
			uc.logger.Debug("Skipping candidate without name")
			continue
		}
		shops = append(shops, *shop)
	}

	candidates := RankCandidates(partyA, partyB, shops)

	metrics.MeetingCandidates.Observe(float64(len(candidates)))
	outcome := "ok"
	if len(candidates) == 0 {
		outcome = "empty"
	}
	metrics.MeetingSearches.WithLabelValues(outcome).Inc()

	uc.publish(ctx, midpoint, len(candidates))

	return &MeetingResult{
		Midpoint:   midpoint,
		Candidates: candidates,
	}, nil
}

func (uc *MeetingUseCase) publish(ctx context.Context, midpoint domain.GeoPoint, count int) {
	if uc.analytics == nil {
		return
	}
	event := map[string]interface{}{
		"id":         uuid.New().String(),
		"midpoint":   midpoint,
		"candidates": count,
		"at":         uc.now().UTC(),
	}
	if err := uc.analytics.Publish(ctx, "meeting.search", event); err != nil {
		uc.logger.Warn("Failed to publish meeting analytics", zap.Error(err))
	}
}

// RankCandidates считает расстояния до обеих сторон и сортирует стабильно:
// по FairnessScore, затем по distanceKm от источника (известное раньше
// неизвестного), затем в порядке выдачи.
func RankCandidates(partyA, partyB domain.GeoPoint, shops []domain.Shop) []domain.CandidateShop {
	candidates := make([]domain.CandidateShop, 0, len(shops))
	for _, shop := range shops {
		c := domain.CandidateShop{Shop: shop, FairnessScore: math.Inf(1)}
		if shop.Coordinates != nil {
			distA := utils.RoundTo(utils.HaversineDistance(
				partyA.Latitude, partyA.Longitude,
				shop.Coordinates.Latitude, shop.Coordinates.Longitude,
			), distancePrecision)
			distB := utils.RoundTo(utils.HaversineDistance(
				partyB.Latitude, partyB.Longitude,
				shop.Coordinates.Latitude, shop.Coordinates.Longitude,
			), distancePrecision)
			c.DistanceToPartyA = &distA
			c.DistanceToPartyB = &distB
			c.FairnessScore = math.Max(distA, distB)
		}
		candidates = append(candidates, c)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.FairnessScore != b.FairnessScore {
			return a.FairnessScore < b.FairnessScore
		}
		return backendDistance(a) < backendDistance(b)
	})

	return candidates
}

func backendDistance(c domain.CandidateShop) float64 {
	if c.DistanceKm == nil {
		return math.Inf(1)
	}
	return *c.DistanceKm
}

// Paginate возвращает страницу page (с единицы) размера size
func Paginate(items []domain.CandidateShop, page, size int) ([]domain.CandidateShop, domain.PageInfo) {
	total := len(items)
	start, end := utils.PageBounds(total, page-1, size)
	totalPages := utils.TotalPages(total, size)

	return items[start:end], domain.PageInfo{
		Total:      total,
		Page:       page,
		PageSize:   size,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
	}
}

func pointFrom(lat, lng *float64) (domain.GeoPoint, bool) {
	if lat == nil || lng == nil {
		return domain.GeoPoint{}, false
	}
	p := domain.GeoPoint{Latitude: *lat, Longitude: *lng}
	return p, p.Valid()
}

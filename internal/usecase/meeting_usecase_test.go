package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/coffee-finder/internal/domain"
	"github.com/coffee-finder/internal/domain/repository"
	apperrors "github.com/coffee-finder/internal/pkg/errors"
	"github.com/coffee-finder/internal/usecase"
	"github.com/coffee-finder/internal/usecase/dto"
)

var (
	partyA = domain.GeoPoint{Latitude: 14.5, Longitude: 121.0}
	partyB = domain.GeoPoint{Latitude: 14.6, Longitude: 121.1}
)

func ptr(v float64) *float64 { return &v }

func nearMidpoint(p domain.GeoPoint) bool {
	return math.Abs(p.Latitude-14.55) < 1e-9 && math.Abs(p.Longitude-121.05) < 1e-9
}

func newMeetingUseCase(repo *MockShopSearchRepository, analytics *MockAnalyticsPublisher) *usecase.MeetingUseCase {
	var pub repository.AnalyticsPublisher
	if analytics != nil {
		pub = analytics
	}
	return usecase.NewMeetingUseCase(repo, newNormalizer(), pub, zap.NewNop(), 12, 3)
}

func TestMeetingUseCase_FindMeetingSpots_FairnessOrder(t *testing.T) {
	repo := &MockShopSearchRepository{}
	records := []domain.RawShopRecord{
		{"id": "near-a", "name": "Near A", "lat": 14.5, "lng": 121.0},
		{"id": "no-geo", "name": "No Geo"},
		{"id": "middle", "name": "Middle", "lat": 14.55, "lng": 121.05},
	}
	repo.On("SearchNearby", mock.Anything, mock.MatchedBy(nearMidpoint), 36).
		Return(records, nil, nil).Once()

	uc := newMeetingUseCase(repo, nil)
	result, err := uc.FindMeetingSpots(context.Background(), partyA, partyB)

	require.NoError(t, err)
	require.Len(t, result.Candidates, 3)
	assert.Empty(t, result.ErrorMessage)

	assert.Equal(t, "middle", result.Candidates[0].ID)
	assert.Equal(t, "near-a", result.Candidates[1].ID)
	assert.Equal(t, "no-geo", result.Candidates[2].ID)

	middle := result.Candidates[0]
	require.True(t, middle.FairnessKnown())
	assert.InDelta(t, 7.74, *middle.DistanceToPartyA, 0.02)
	assert.InDelta(t, 7.74, *middle.DistanceToPartyB, 0.02)

	nearA := result.Candidates[1]
	assert.Equal(t, 0.0, *nearA.DistanceToPartyA)
	assert.Equal(t, 15.48, *nearA.DistanceToPartyB)
	assert.Equal(t, 15.48, nearA.FairnessScore)

	noGeo := result.Candidates[2]
	assert.False(t, noGeo.FairnessKnown())
	assert.True(t, math.IsInf(noGeo.FairnessScore, 1))

	repo.AssertExpectations(t)
}

func TestMeetingUseCase_FindMeetingSpots_InvalidPoints(t *testing.T) {
	repo := &MockShopSearchRepository{}
	uc := newMeetingUseCase(repo, nil)

	_, err := uc.FindMeetingSpots(context.Background(), partyA, domain.GeoPoint{Latitude: 91, Longitude: 0})
	assert.True(t, errors.Is(err, apperrors.ErrMeetingPointsRequired))

	_, err = uc.FindMeetingSpots(context.Background(), domain.GeoPoint{Latitude: math.NaN()}, partyB)
	assert.True(t, errors.Is(err, apperrors.ErrMeetingPointsRequired))

	repo.AssertNotCalled(t, "SearchNearby", mock.Anything, mock.Anything, mock.Anything)
}

func TestMeetingUseCase_FindMeetingSpots_FetchFailure(t *testing.T) {
	repo := &MockShopSearchRepository{}
	repo.On("SearchNearby", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, nil, errors.New("connection refused")).Once()

	uc := newMeetingUseCase(repo, nil)
	result, err := uc.FindMeetingSpots(context.Background(), partyA, partyB)

	require.NoError(t, err)
	assert.Empty(t, result.Candidates)
	assert.NotEmpty(t, result.ErrorMessage)
	assert.True(t, nearMidpoint(result.Midpoint))
}

func TestMeetingUseCase_FindMeetingSpots_SkipsNamelessRecords(t *testing.T) {
	repo := &MockShopSearchRepository{}
	repo.On("SearchNearby", mock.Anything, mock.Anything, mock.Anything).
		Return([]domain.RawShopRecord{{"id": "x"}, {"id": "y", "name": "Named"}}, nil, nil)

	uc := newMeetingUseCase(repo, nil)
	result, err := uc.FindMeetingSpots(context.Background(), partyA, partyB)

	require.NoError(t, err)
	require.Len(t, result.Candidates, 1)
	assert.Equal(t, "y", result.Candidates[0].ID)
}

func TestMeetingUseCase_PublishesAnalytics(t *testing.T) {
	repo := &MockShopSearchRepository{}
	repo.On("SearchNearby", mock.Anything, mock.Anything, mock.Anything).
		Return([]domain.RawShopRecord{{"name": "One"}}, nil, nil)

	pub := &MockAnalyticsPublisher{}
	pub.On("Publish", mock.Anything, "meeting.search", mock.MatchedBy(func(payload interface{}) bool {
		event, ok := payload.(map[string]interface{})
		return ok && event["candidates"] == 1 && event["id"] != ""
	})).Return(errors.New("nats down")).Once()

	uc := newMeetingUseCase(repo, pub)
	result, err := uc.FindMeetingSpots(context.Background(), partyA, partyB)

	require.NoError(t, err, "publish failures are not surfaced")
	assert.Len(t, result.Candidates, 1)
	pub.AssertExpectations(t)
}

func TestRankCandidates_TieBreaks(t *testing.T) {
	at := func(p domain.GeoPoint) *domain.GeoPoint { return &p }

	shops := []domain.Shop{
		{ID: "b-no-distance", Coordinates: at(partyB)},
		{ID: "a-far", Coordinates: at(partyA), DistanceKm: ptr(3)},
		{ID: "a-close", Coordinates: at(partyA), DistanceKm: ptr(1)},
		{ID: "no-geo-1"},
		{ID: "no-geo-2", DistanceKm: ptr(5)},
		{ID: "no-geo-3"},
	}

	ranked := usecase.RankCandidates(partyA, partyB, shops)

	ids := make([]string, 0, len(ranked))
	for _, c := range ranked {
		ids = append(ids, c.ID)
	}
	assert.Equal(t, []string{"a-close", "a-far", "b-no-distance", "no-geo-2", "no-geo-1", "no-geo-3"}, ids)
}

func TestRankCandidates_StableForEqualKeys(t *testing.T) {
	shops := make([]domain.Shop, 0, 10)
	for i := 0; i < 10; i++ {
		shops = append(shops, domain.Shop{ID: fmt.Sprintf("s%d", i)})
	}

	ranked := usecase.RankCandidates(partyA, partyB, shops)

	for i, c := range ranked {
		assert.Equal(t, fmt.Sprintf("s%d", i), c.ID)
	}
}

func TestPaginate(t *testing.T) {
	items := make([]domain.CandidateShop, 30)
	for i := range items {
		items[i].ID = fmt.Sprintf("s%d", i)
	}

	page1, info := usecase.Paginate(items, 1, 12)
	assert.Len(t, page1, 12)
	assert.Equal(t, "s0", page1[0].ID)
	assert.Equal(t, domain.PageInfo{Total: 30, Page: 1, PageSize: 12, TotalPages: 3, HasNext: true}, info)

	page3, info := usecase.Paginate(items, 3, 12)
	assert.Len(t, page3, 6)
	assert.Equal(t, "s24", page3[0].ID)
	assert.False(t, info.HasNext)

	page4, _ := usecase.Paginate(items, 4, 12)
	assert.Empty(t, page4)
}

func TestMeetingUseCase_Search(t *testing.T) {
	open, closeAt := "07:00", "21:30"
	repo := &MockShopSearchRepository{}
	repo.On("SearchNearby", mock.Anything, mock.Anything, 36).Return([]domain.RawShopRecord{
		{
			"id": "1", "name": "Open Now", "lat": 14.55, "lng": 121.05,
			"openingHours": map[string]any{
				"monday": map[string]any{"open": open, "close": closeAt, "closed": false},
			},
		},
	}, nil, nil)

	monday10am := time.Date(2024, 6, 3, 10, 0, 0, 0, time.Local)
	uc := newMeetingUseCase(repo, nil).WithClock(func() time.Time { return monday10am })

	t.Run("missing party b", func(t *testing.T) {
		_, err := uc.Search(context.Background(), dto.MeetingSpotsRequest{ALat: ptr(14.5), ALng: ptr(121.0)})
		assert.True(t, errors.Is(err, apperrors.ErrMeetingPointsRequired))
	})

	t.Run("zero coordinates are a real point", func(t *testing.T) {
		resp, err := uc.Search(context.Background(), dto.MeetingSpotsRequest{
			ALat: ptr(0), ALng: ptr(0), BLat: ptr(0), BLng: ptr(0),
		})
		require.NoError(t, err)
		assert.Equal(t, 1, resp.PageInfo.Page)
	})

	t.Run("page with open flag", func(t *testing.T) {
		resp, err := uc.Search(context.Background(), dto.MeetingSpotsRequest{
			ALat: ptr(14.5), ALng: ptr(121.0), BLat: ptr(14.6), BLng: ptr(121.1), Page: 1,
		})
		require.NoError(t, err)
		require.Len(t, resp.Items, 1)
		assert.True(t, resp.Items[0].IsOpenNow)
		require.NotNil(t, resp.Items[0].FairnessScore)
		assert.Equal(t, 1, resp.PageInfo.Total)
	})
}

package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/coffee-finder/internal/pkg/errors"
	"github.com/coffee-finder/internal/pkg/utils"
	"github.com/coffee-finder/internal/pkg/validator"
	"github.com/coffee-finder/internal/usecase"
	"github.com/coffee-finder/internal/usecase/dto"
)

const meetingKeyPrefix = "meeting:"

// MeetingHandler - поиск кофеен между двумя точками
type MeetingHandler struct {
	meetingUC  *usecase.MeetingUseCase
	locationUC *usecase.LocationUseCase
	tracker    *usecase.RequestTracker
	logger     *zap.Logger
}

// NewMeetingHandler - создание нового MeetingHandler
func NewMeetingHandler(
	meetingUC *usecase.MeetingUseCase,
	locationUC *usecase.LocationUseCase,
	tracker *usecase.RequestTracker,
	logger *zap.Logger,
) *MeetingHandler {
	if tracker == nil {
		tracker = usecase.NewRequestTracker()
	}
	return &MeetingHandler{
		meetingUC:  meetingUC,
		locationUC: locationUC,
		tracker:    tracker,
		logger:     logger,
	}
}

// FindSpots godoc
// @Summary Места для встречи
// @Description Ищет кофейни рядом с серединой между точками A и B и сортирует их по справедливости (максимум из двух расстояний). Если источник магазинов недоступен, возвращается пустой список и сообщение в поле error. Новый запрос с той же сессией отменяет предыдущий (409).
// @Tags Meeting
// @Produce json
// @Param a_lat query number true "Широта точки A"
// @Param a_lng query number true "Долгота точки A"
// @Param b_lat query number true "Широта точки B"
// @Param b_lng query number true "Долгота точки B"
// @Param page query int false "Номер страницы, с 1" default(1)
// @Param session query string false "Сессия для отмены устаревших запросов"
// @Success 200 {object} utils.SuccessResponse{data=dto.MeetingSpotsResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Router /api/v1/meeting-spots [get]
func (h *MeetingHandler) FindSpots(c *fiber.Ctx) error {
	req := dto.MeetingSpotsRequest{
		ALat:    queryFloat(c, "a_lat"),
		ALng:    queryFloat(c, "a_lng"),
		BLat:    queryFloat(c, "b_lat"),
		BLng:    queryFloat(c, "b_lng"),
		Page:    c.QueryInt("page", 1),
		Session: c.Query("session"),
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	return h.search(c, req)
}

// FindSpotsFromSession godoc
// @Summary Места для встречи от сохранённой геопозиции
// @Description То же, что /meeting-spots, но точка A берётся из геопозиции, сохранённой для сессии через PUT /api/v1/location/{session}
// @Tags Meeting
// @Produce json
// @Param session query string true "Идентификатор сессии"
// @Param b_lat query number true "Широта точки B"
// @Param b_lng query number true "Долгота точки B"
// @Param page query int false "Номер страницы, с 1" default(1)
// @Success 200 {object} utils.SuccessResponse{data=dto.MeetingSpotsResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Router /api/v1/meeting-spots/from-session [get]
func (h *MeetingHandler) FindSpotsFromSession(c *fiber.Ctx) error {
	sreq := dto.SessionMeetingRequest{
		Session: c.Query("session"),
		BLat:    queryFloat(c, "b_lat"),
		BLng:    queryFloat(c, "b_lng"),
		Page:    c.QueryInt("page", 1),
	}
	if err := validator.Validate(&sreq); err != nil {
		return utils.SendError(c, err)
	}

	partyA, found, err := h.locationUC.ResolvePoint(c.UserContext(), sreq.Session)
	if err != nil {
		return utils.SendError(c, err)
	}
	if !found {
		return utils.SendError(c, errors.ErrMeetingPointsRequired.WithDetails(map[string]interface{}{
			"party_a": false,
			"party_b": sreq.BLat != nil && sreq.BLng != nil,
		}))
	}

	return h.search(c, dto.MeetingSpotsRequest{
		ALat:    &partyA.Latitude,
		ALng:    &partyA.Longitude,
		BLat:    sreq.BLat,
		BLng:    sreq.BLng,
		Page:    sreq.Page,
		Session: sreq.Session,
	})
}

// search выполняет поиск; при наличии сессии более новый запрос отменяет этот
func (h *MeetingHandler) search(c *fiber.Ctx, req dto.MeetingSpotsRequest) error {
	ctx := c.UserContext()

	var ticket usecase.Ticket
	if req.Session != "" {
		ctx, ticket = h.tracker.Begin(ctx, meetingKeyPrefix+req.Session)
		defer ticket.Done()
	}

	result, err := h.meetingUC.Search(ctx, req)
	if err != nil {
		return utils.SendError(c, err)
	}

	if !ticket.Current() {
		h.logger.Debug("Discarding superseded meeting search",
			zap.String("session", req.Session),
			zap.Uint64("generation", ticket.Generation()))
		return utils.SendError(c, errors.ErrRequestSuperseded)
	}

	return utils.SendSuccess(c, result, &utils.Meta{
		Total:      result.PageInfo.Total,
		Page:       result.PageInfo.Page,
		Limit:      result.PageInfo.PageSize,
		TotalPages: result.PageInfo.TotalPages,
	})
}

// queryFloat - nil, если параметр отсутствует или не число
func queryFloat(c *fiber.Ctx, key string) *float64 {
	raw := c.Query(key)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &v
}

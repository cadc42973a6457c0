package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/coffee-finder/internal/pkg/errors"
	"github.com/coffee-finder/internal/pkg/utils"
	"github.com/coffee-finder/internal/pkg/validator"
	"github.com/coffee-finder/internal/usecase"
	"github.com/coffee-finder/internal/usecase/dto"
)

// LocationHandler - кеш геопозиции браузера по сессии
type LocationHandler struct {
	locationUC *usecase.LocationUseCase
	logger     *zap.Logger
}

// NewLocationHandler - создание нового LocationHandler
func NewLocationHandler(locationUC *usecase.LocationUseCase, logger *zap.Logger) *LocationHandler {
	return &LocationHandler{
		locationUC: locationUC,
		logger:     logger,
	}
}

// Save godoc
// @Summary Сохранить геопозицию
// @Description Кеширует геопозицию, полученную браузером, для указанной сессии
// @Tags Location
// @Accept json
// @Produce json
// @Param session path string true "Идентификатор сессии"
// @Param request body dto.LocationFixRequest true "Координаты"
// @Success 200 {object} utils.SuccessResponse{data=dto.LocationResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/location/{session} [put]
func (h *LocationHandler) Save(c *fiber.Ctx) error {
	var req dto.LocationFixRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.locationUC.SaveFix(c.UserContext(), c.Params("session"), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, nil)
}

// Get godoc
// @Summary Получить геопозицию
// @Description Возвращает сохранённую геопозицию сессии. Устаревшая запись считается отсутствующей.
// @Tags Location
// @Produce json
// @Param session path string true "Идентификатор сессии"
// @Success 200 {object} utils.SuccessResponse{data=dto.LocationResponse}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/location/{session} [get]
func (h *LocationHandler) Get(c *fiber.Ctx) error {
	result, err := h.locationUC.GetFix(c.UserContext(), c.Params("session"))
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, nil)
}

package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/coffee-finder/internal/pkg/utils"
	"github.com/coffee-finder/internal/pkg/validator"
	"github.com/coffee-finder/internal/usecase"
	"github.com/coffee-finder/internal/usecase/dto"
)

// AutocompleteHandler - подсказки адреса для точки B
type AutocompleteHandler struct {
	autocompleteUC *usecase.AutocompleteUseCase
	logger         *zap.Logger
}

// NewAutocompleteHandler - создание нового AutocompleteHandler
func NewAutocompleteHandler(autocompleteUC *usecase.AutocompleteUseCase, logger *zap.Logger) *AutocompleteHandler {
	return &AutocompleteHandler{
		autocompleteUC: autocompleteUC,
		logger:         logger,
	}
}

// Suggest godoc
// @Summary Автодополнение адреса
// @Description Возвращает подсказки адреса с координатами. При недоступности геокодера возвращается пустой список и сообщение в поле error.
// @Tags Autocomplete
// @Produce json
// @Param search query string false "Введённый текст"
// @Success 200 {object} utils.SuccessResponse{data=dto.AutocompleteResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/autocomplete [get]
func (h *AutocompleteHandler) Suggest(c *fiber.Ctx) error {
	req := dto.AutocompleteRequest{Search: c.Query("search")}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	result := h.autocompleteUC.Suggest(c.UserContext(), req)
	return utils.SendSuccess(c, result, &utils.Meta{Total: len(result.Suggestions)})
}

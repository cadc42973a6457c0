package handler

import (
	"net/url"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/coffee-finder/internal/pkg/errors"
	"github.com/coffee-finder/internal/pkg/utils"
	"github.com/coffee-finder/internal/pkg/validator"
	"github.com/coffee-finder/internal/usecase"
	"github.com/coffee-finder/internal/usecase/dto"
)

// ShopHandler - карточка магазина и служебный slug
type ShopHandler struct {
	shopUC *usecase.ShopUseCase
	logger *zap.Logger
}

// NewShopHandler - создание нового ShopHandler
func NewShopHandler(shopUC *usecase.ShopUseCase, logger *zap.Logger) *ShopHandler {
	return &ShopHandler{
		shopUC: shopUC,
		logger: logger,
	}
}

// GetBySlug godoc
// @Summary Карточка магазина
// @Description Загружает магазин из бэкенда и нормализует запись. Если запись не соответствует slug из маршрута, возвращается 404.
// @Tags Shops
// @Produce json
// @Param slug path string true "Slug магазина"
// @Success 200 {object} utils.SuccessResponse{data=dto.ShopDetailResponse}
// @Failure 404 {object} utils.ErrorResponse
// @Failure 502 {object} utils.ErrorResponse
// @Router /api/v1/shops/{slug} [get]
func (h *ShopHandler) GetBySlug(c *fiber.Ctx) error {
	slug, err := url.PathUnescape(c.Params("slug"))
	if err != nil {
		return utils.SendError(c, errors.ErrShopNotFound)
	}

	result, err := h.shopUC.GetBySlug(c.UserContext(), slug)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, nil)
}

// Slug godoc
// @Summary Slug и подпись для названия
// @Description Строит URL slug и title-case подпись для произвольного названия магазина
// @Tags Shops
// @Produce json
// @Param name query string true "Название"
// @Success 200 {object} utils.SuccessResponse{data=dto.SlugResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/slug [get]
func (h *ShopHandler) Slug(c *fiber.Ctx) error {
	req := dto.SlugRequest{Name: c.Query("name")}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, h.shopUC.Slug(req.Name), nil)
}

package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/itinerary-microservice/internal/domain"
	"github.com/itinerary-microservice/internal/pkg/errors"
	"github.com/itinerary-microservice/internal/pkg/utils"
	"github.com/itinerary-microservice/internal/usecase"
	"github.com/itinerary-microservice/internal/usecase/dto"
	"go.uber.org/zap"
)

// TripHandler - обработчик запросов на построение маршрута
type TripHandler struct {
	planner usecase.TripPlanner
	logger  *zap.Logger
}

// NewTripHandler - создание нового TripHandler
func NewTripHandler(planner usecase.TripPlanner, logger *zap.Logger) *TripHandler {
	return &TripHandler{
		planner: planner,
		logger:  logger,
	}
}

// OptimizeTrip godoc
// @Summary Build an optimized itinerary
// @Description Запрашивает кандидатов у LLM, отбрасывает закрытые места, ранжирует и жадно собирает маршрут в пределах бюджета времени
// @Tags Trips
// @Accept json
// @Produce json
// @Param request body dto.PlanTripRequest true "Параметры поездки"
// @Success 200 {object} domain.TripResult
// @Failure 400 {object} utils.ErrorResponse
// @Failure 402 {object} utils.ErrorResponse
// @Failure 429 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/trips/optimize [post]
func (h *TripHandler) OptimizeTrip(c *fiber.Ctx) error {
	var req dto.PlanTripRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithMessage("Invalid request body").Wrap(err))
	}

	result, err := h.planner.PlanTrip(c.UserContext(), req)
	if err != nil {
		h.logger.Error("Failed to plan trip",
			zap.String("start_location", req.StartLocation),
			zap.Float64("available_time", req.AvailableTime),
			zap.Strings("preferences", req.Preferences),
			zap.Error(err))
		return utils.SendError(c, err)
	}

	return c.JSON(result)
}

// GetCategories godoc
// @Summary List destination categories
// @Description Возвращает поддерживаемые категории мест для поля preferences
// @Tags Trips
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=dto.CategoriesResponse}
// @Router /api/v1/categories [get]
func (h *TripHandler) GetCategories(c *fiber.Ctx) error {
	return utils.SendSuccess(c, dto.CategoriesResponse{
		Categories: domain.Categories,
	}, &utils.Meta{
		Total: len(domain.Categories),
	})
}

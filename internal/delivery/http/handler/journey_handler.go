package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/journey-service/internal/pkg/errors"
	"github.com/journey-service/internal/pkg/utils"
	"github.com/journey-service/internal/pkg/validator"
	"github.com/journey-service/internal/usecase"
	"github.com/journey-service/internal/usecase/dto"
	"go.uber.org/zap"
)

type JourneyHandler struct {
	journeyUC *usecase.JourneyUseCase
	logger    *zap.Logger
}

func NewJourneyHandler(journeyUC *usecase.JourneyUseCase, logger *zap.Logger) *JourneyHandler {
	return &JourneyHandler{
		journeyUC: journeyUC,
		logger:    logger,
	}
}

// Search runs a journey search between two stations.
func (h *JourneyHandler) Search(c *fiber.Ctx) error {
	var req dto.JourneySearchRequest
	if err := c.BodyParser(&req); err != nil {
		// Covers malformed JSON and wrongly typed options, e.g. a
		// non-boolean prices field.
		return utils.SendError(c, errors.ErrInvalidOptions.WithDetails(map[string]interface{}{
			"parse": err.Error(),
		}))
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidOptions.WithDetails(map[string]interface{}{
			"validation": err.Error(),
		}))
	}

	result, err := h.journeyUC.Search(c.Context(), req)
	if err != nil {
		if appErr, ok := err.(*errors.AppError); ok {
			return utils.SendError(c, appErr)
		}
		h.logger.Error("Journey search failed", zap.Error(err))
		return utils.SendError(c, errors.ErrUpstream)
	}

	return utils.SendSuccess(c, result, &utils.Meta{
		Total: len(result.Journeys),
	})
}

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

type StationHandler struct {
	stationUC *usecase.StationUseCase
	logger    *zap.Logger
}

func NewStationHandler(stationUC *usecase.StationUseCase, logger *zap.Logger) *StationHandler {
	return &StationHandler{
		stationUC: stationUC,
		logger:    logger,
	}
}

// Search looks up stations by a name fragment.
func (h *StationHandler) Search(c *fiber.Ctx) error {
	req := dto.StationSearchRequest{
		Query: c.Query("query"),
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"validation": err.Error(),
		}))
	}

	result, err := h.stationUC.Search(c.Context(), req)
	if err != nil {
		h.logger.Error("Station search failed", zap.Error(err))
		return utils.SendError(c, errors.ErrUpstream)
	}

	return utils.SendSuccess(c, result, &utils.Meta{
		Total: len(result.Stations),
	})
}

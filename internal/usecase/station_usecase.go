package usecase

import (
	"context"

	"github.com/journey-service/internal/domain/repository"
	"github.com/journey-service/internal/usecase/dto"
	"go.uber.org/zap"
)

type StationUseCase struct {
	shop   repository.TicketShopRepository
	logger *zap.Logger
}

func NewStationUseCase(shop repository.TicketShopRepository, logger *zap.Logger) *StationUseCase {
	return &StationUseCase{
		shop:   shop,
		logger: logger,
	}
}

// Search runs the backend station autocomplete for a name fragment.
func (uc *StationUseCase) Search(ctx context.Context, req dto.StationSearchRequest) (*dto.StationSearchResponse, error) {
	session, err := uc.shop.NewSession(ctx)
	if err != nil {
		uc.logger.Error("Failed to acquire ticket shop session", zap.Error(err))
		return nil, err
	}

	stations, err := session.SearchStations(ctx, req.Query)
	if err != nil {
		uc.logger.Error("Station search failed",
			zap.String("query", req.Query),
			zap.Error(err))
		return nil, err
	}

	return &dto.StationSearchResponse{Stations: stations}, nil
}

package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/journey-service/internal/domain"
	"github.com/journey-service/internal/domain/repository"
	"github.com/journey-service/internal/pkg/errors"
	"github.com/journey-service/internal/usecase/dto"
	"go.uber.org/zap"
)

// pageSize is fixed by the backend; the connection search endpoint
// returns at most 5 connections per page.
const pageSize = 5

type JourneyUseCase struct {
	shop   repository.TicketShopRepository
	norm   *normalizer
	logger *zap.Logger
	now    func() time.Time
}

func NewJourneyUseCase(
	shop repository.TicketShopRepository,
	logger *zap.Logger,
) (*JourneyUseCase, error) {
	norm, err := newNormalizer()
	if err != nil {
		return nil, err
	}

	return &JourneyUseCase{
		shop:   shop,
		norm:   norm,
		logger: logger,
		now:    time.Now,
	}, nil
}

// searchConfig is the effective, immutable configuration of one search
// call, built from the supplied options layered over defaults.
type searchConfig struct {
	departure  time.Time
	results    *int
	transfers  *int
	interval   *int // minutes
	prices     bool
	passengers []domain.Passenger
	filter     domain.ConnectionFilter
	sortType   string
}

// Search runs the journey retrieval pipeline: session acquisition,
// travel-action resolution, paginated connection search with price
// enrichment, then dedup/filter/truncate.
func (uc *JourneyUseCase) Search(ctx context.Context, req dto.JourneySearchRequest) (*dto.JourneySearchResponse, error) {
	cfg := uc.effectiveConfig(req)
	if !domain.IsValidSortType(cfg.sortType) {
		return nil, errors.ErrInvalidOptions.WithDetails(map[string]interface{}{
			"sortType": cfg.sortType,
		})
	}

	log := uc.logger.With(
		zap.String("search_id", uuid.NewString()),
		zap.String("origin", string(req.Origin)),
		zap.String("destination", string(req.Destination)),
	)

	session, err := uc.shop.NewSession(ctx)
	if err != nil {
		log.Error("Failed to acquire ticket shop session", zap.Error(err))
		return nil, err
	}

	action, found, err := resolveTravelAction(ctx, session, string(req.Origin), string(req.Destination), cfg.departure)
	if err != nil {
		log.Error("Travel action lookup failed", zap.Error(err))
		return nil, err
	}
	if !found {
		// The backend has no timetable entrypoint for this pair/time.
		// An empty result, not an error.
		log.Info("No timetable travel action for request")
		return &dto.JourneySearchResponse{Journeys: []domain.Journey{}}, nil
	}

	journeys, err := uc.paginate(ctx, session, log, action, cfg)
	if err != nil {
		return nil, err
	}

	journeys = postProcess(journeys, cfg)
	if journeys == nil {
		journeys = []domain.Journey{}
	}

	log.Info("Journey search finished", zap.Int("journeys", len(journeys)))

	return &dto.JourneySearchResponse{Journeys: journeys}, nil
}

func (uc *JourneyUseCase) effectiveConfig(req dto.JourneySearchRequest) *searchConfig {
	now := uc.now()

	departure := now
	if req.When != nil {
		departure = *req.When
	} else if req.DepartureAfter != nil {
		departure = *req.DepartureAfter
	}

	prices := true
	if req.Prices != nil {
		prices = *req.Prices
	}

	sortType := req.SortType
	if sortType == "" {
		sortType = domain.SortTypeDeparture
	}

	connections := req.Filters.Connections
	if connections == nil {
		connections = []string{}
	}

	return &searchConfig{
		departure:  uc.norm.inCarrierTZ(departure),
		results:    req.Results,
		transfers:  req.Transfers,
		interval:   req.Interval,
		prices:     prices,
		passengers: buildPassengers(req.Passengers, now),
		filter: domain.ConnectionFilter{
			RegionalTrainsOnly: req.Filters.RegionalTrainsOnly,
			Direct:             req.Filters.Direct,
			Wheelchair:         req.Filters.Wheelchair,
			Bikes:              req.Filters.Bikes,
			Trains:             req.Filters.Trains,
			Motorail:           req.Filters.Motorail,
			Connections:        connections,
		},
		sortType: sortType,
	}
}

// resolveTravelAction picks the first travel action with the timetable
// entrypoint. found is false when the backend offers none.
func resolveTravelAction(
	ctx context.Context,
	session repository.TicketShopSession,
	origin, destination string,
	when time.Time,
) (domain.TravelAction, bool, error) {
	actions, err := session.TravelActions(ctx, origin, destination, when)
	if err != nil {
		return domain.TravelAction{}, false, err
	}

	for _, action := range actions {
		if action.Entrypoint.ID == domain.EntrypointTimetable {
			return action, true, nil
		}
	}
	return domain.TravelAction{}, false, nil
}

// paginate drives the connection search loop. The first page goes to the
// search endpoint, every later page to the scroll endpoint keyed by the
// previous page's last connection id.
func (uc *JourneyUseCase) paginate(
	ctx context.Context,
	session repository.TicketShopSession,
	log *zap.Logger,
	action domain.TravelAction,
	cfg *searchConfig,
) ([]domain.Journey, error) {
	pages := 1
	if cfg.results != nil {
		pages = (*cfg.results + pageSize - 1) / pageSize
		if pages < 1 {
			pages = 1
		}
	}

	var journeys []domain.Journey
	var cursor string

	for page := 0; page < pages; page++ {
		var connections []domain.RawConnection
		var err error

		if page == 0 {
			search := domain.NewConnectionSearch(
				action.ID,
				uc.norm.backendTime(cfg.departure),
				cfg.filter,
				cfg.passengers,
				pageSize,
				cfg.sortType,
			)
			connections, err = session.Connections(ctx, search)
		} else {
			connections, err = session.ScrollConnections(ctx, domain.NewConnectionScroll(cursor))
		}
		if err != nil {
			log.Error("Connection page fetch failed", zap.Int("page", page), zap.Error(err))
			return nil, err
		}

		if len(connections) == 0 {
			// Normal exhaustion, not an error.
			log.Debug("Connection search exhausted", zap.Int("page", page))
			break
		}

		offers := map[string]domain.Offer{}
		if cfg.prices {
			ids := make([]string, len(connections))
			for i, conn := range connections {
				ids[i] = conn.ID
			}
			offers, err = session.Prices(ctx, ids)
			if err != nil {
				log.Error("Price lookup failed", zap.Int("page", page), zap.Error(err))
				return nil, err
			}
		}

		batch := make([]domain.Journey, 0, len(connections))
		for _, conn := range connections {
			var offer *domain.Offer
			if o, ok := offers[conn.ID]; ok {
				offer = &o
			}
			batch = append(batch, uc.norm.Journey(conn, offer))
		}

		sortJourneysByDeparture(batch)
		journeys = append(journeys, batch...)
		cursor = batch[len(batch)-1].ID

		log.Debug("Connection page processed",
			zap.Int("page", page),
			zap.Int("connections", len(connections)))
	}

	return journeys, nil
}

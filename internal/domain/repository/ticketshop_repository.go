package repository

import (
	"context"
	"time"

	"github.com/journey-service/internal/domain"
)

// TicketShopRepository acquires authenticated sessions against the ticket
// shop backend. A fresh session is acquired per search call, no pooling.
type TicketShopRepository interface {
	NewSession(ctx context.Context) (TicketShopSession, error)
}

// TicketShopSession exposes the backend endpoints used by the journey
// search pipeline. Errors are propagated unchanged, no retries.
type TicketShopSession interface {
	// TravelActions lists candidate travel actions for the given
	// origin/destination/datetime triple.
	TravelActions(ctx context.Context, origin, destination string, when time.Time) ([]domain.TravelAction, error)

	// Connections fetches the first page of a connection search.
	Connections(ctx context.Context, req *domain.ConnectionSearch) ([]domain.RawConnection, error)

	// ScrollConnections fetches a continuation page.
	ScrollConnections(ctx context.Context, req *domain.ConnectionScroll) ([]domain.RawConnection, error)

	// Prices fetches offers for the given connection ids, keyed by
	// connection id. Missing ids simply have no entry.
	Prices(ctx context.Context, connectionIDs []string) (map[string]domain.Offer, error)

	// SearchStations runs the station autocomplete endpoint.
	SearchStations(ctx context.Context, query string) ([]domain.Station, error)
}

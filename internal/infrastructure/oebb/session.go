package oebb

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/journey-service/internal/domain"
	"go.uber.org/zap"
)

// session is one authenticated conversation with the ticket shop. It
// exists for the duration of a single search call.
type session struct {
	client      *client
	accessToken string
}

func (s *session) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	return s.client.do(ctx, http.MethodGet, path, query, nil, s.accessToken, out)
}

func (s *session) post(ctx context.Context, path string, body, out interface{}) error {
	return s.client.do(ctx, http.MethodPost, path, nil, body, s.accessToken, out)
}

type stationNumber struct {
	Number int64 `json:"number"`
}

type travelActionsRequest struct {
	From          stationNumber `json:"from"`
	To            stationNumber `json:"to"`
	Datetime      string        `json:"datetime"`
	CustomerVias  []string      `json:"customerVias"`
	IgnoreHistory bool          `json:"ignoreHistory"`
}

type travelActionsResponse struct {
	TravelActions []domain.TravelAction `json:"travelActions"`
}

// TravelActions lists candidate travel actions for the triple.
func (s *session) TravelActions(ctx context.Context, origin, destination string, when time.Time) ([]domain.TravelAction, error) {
	from, err := strconv.ParseInt(origin, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid origin station number %q: %w", origin, err)
	}
	to, err := strconv.ParseInt(destination, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid destination station number %q: %w", destination, err)
	}

	req := travelActionsRequest{
		From:          stationNumber{Number: from},
		To:            stationNumber{Number: to},
		Datetime:      when.Format(backendTimeLayout),
		CustomerVias:  []string{},
		IgnoreHistory: true,
	}

	var resp travelActionsResponse
	if err := s.post(ctx, "/offer/v2/travel-actions", req, &resp); err != nil {
		return nil, err
	}

	s.client.logger.Debug("Travel actions fetched",
		zap.String("origin", origin),
		zap.String("destination", destination),
		zap.Int("actions", len(resp.TravelActions)))

	return resp.TravelActions, nil
}

type connectionsResponse struct {
	Connections []domain.RawConnection `json:"connections"`
}

// Connections fetches the first page of a connection search.
func (s *session) Connections(ctx context.Context, req *domain.ConnectionSearch) ([]domain.RawConnection, error) {
	var resp connectionsResponse
	if err := s.post(ctx, "/hafas/v4/timetable", req, &resp); err != nil {
		return nil, err
	}
	return resp.Connections, nil
}

// ScrollConnections fetches a continuation page via the scroll cursor.
func (s *session) ScrollConnections(ctx context.Context, req *domain.ConnectionScroll) ([]domain.RawConnection, error) {
	var resp connectionsResponse
	if err := s.post(ctx, "/hafas/v4/timetable/scroll", req, &resp); err != nil {
		return nil, err
	}
	return resp.Connections, nil
}

type offerRecord struct {
	ConnectionID string   `json:"connectionId"`
	Price        *float64 `json:"price"`
	Error        bool     `json:"error"`
	FirstClass   bool     `json:"firstClass"`
	Availability struct {
		Availability string `json:"availability"`
	} `json:"availability"`
}

type pricesResponse struct {
	Offers []offerRecord `json:"offers"`
}

// Prices fetches offers for the given connection ids. A connection the
// backend returns no offer for simply has no entry in the result.
func (s *session) Prices(ctx context.Context, connectionIDs []string) (map[string]domain.Offer, error) {
	query := url.Values{}
	for _, id := range connectionIDs {
		query.Add("connectionIds", id)
	}

	var resp pricesResponse
	if err := s.get(ctx, "/offer/v1/prices", query, &resp); err != nil {
		return nil, err
	}

	offers := make(map[string]domain.Offer, len(resp.Offers))
	for _, o := range resp.Offers {
		offers[o.ConnectionID] = domain.Offer{
			ConnectionID: o.ConnectionID,
			Price:        o.Price,
			Error:        o.Error,
			FirstClass:   o.FirstClass,
			Availability: o.Availability.Availability,
		}
	}

	s.client.logger.Debug("Offers fetched",
		zap.Int("requested", len(connectionIDs)),
		zap.Int("offers", len(offers)))

	return offers, nil
}

type stationRecord struct {
	Number int64  `json:"number"`
	Name   string `json:"name"`
}

// SearchStations runs the station autocomplete endpoint.
func (s *session) SearchStations(ctx context.Context, query string) ([]domain.Station, error) {
	q := url.Values{}
	q.Set("name", query)
	q.Set("count", "20")

	var records []stationRecord
	if err := s.get(ctx, "/hafas/v2/stations", q, &records); err != nil {
		return nil, err
	}

	stations := make([]domain.Station, 0, len(records))
	for _, r := range records {
		stations = append(stations, domain.Station{
			ID:   strconv.FormatInt(r.Number, 10),
			Name: r.Name,
		})
	}

	return stations, nil
}

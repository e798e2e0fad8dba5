package dto

import (
	"encoding/json"
	"time"

	"github.com/journey-service/internal/domain"
)

// StationRef accepts either a bare station id string or an object
// exposing an id field.
type StationRef string

func (r *StationRef) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*r = StationRef(s)
		return nil
	}

	var obj struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	*r = StationRef(obj.ID)
	return nil
}

// PassengerOptions describes one traveller of the search request.
type PassengerOptions struct {
	Type               string   `json:"type" validate:"omitempty,uppercase"`
	Cards              []string `json:"cards"`
	HasHandicappedPass bool     `json:"hasHandicappedPass"`
	HasAssistanceDog   bool     `json:"hasAssistanceDog"`
	HasWheelchair      bool     `json:"hasWheelchair"`
	HasAttendant       bool     `json:"hasAttendant"`
}

// FilterOptions is forwarded verbatim to the backend.
type FilterOptions struct {
	RegionalTrainsOnly bool     `json:"regionalTrainsOnly"`
	Direct             bool     `json:"direct"`
	Wheelchair         bool     `json:"wheelchair"`
	Bikes              bool     `json:"bikes"`
	Trains             bool     `json:"trains"`
	Motorail           bool     `json:"motorail"`
	Connections        []string `json:"connections"`
}

// JourneySearchRequest is the journey search call. Exactly one of when and
// departureAfter anchors the departure time; when wins if both are set,
// the current time applies if neither is.
type JourneySearchRequest struct {
	Origin         StationRef         `json:"origin" validate:"required,numeric"`
	Destination    StationRef         `json:"destination" validate:"required,numeric"`
	When           *time.Time         `json:"when"`
	DepartureAfter *time.Time         `json:"departureAfter"`
	Results        *int               `json:"results" validate:"omitempty,min=1,max=60"`
	Transfers      *int               `json:"transfers" validate:"omitempty,min=0,max=10"`
	Interval       *int               `json:"interval" validate:"omitempty,min=1,max=1440"` // minutes
	Prices         *bool              `json:"prices"`
	Passengers     []PassengerOptions `json:"passengers" validate:"omitempty,max=6,dive"`
	Filters        FilterOptions      `json:"filters"`
	SortType       string             `json:"sortType" validate:"omitempty,oneof=DEPARTURE ARRIVAL DURATION PRICE"`
}

// JourneySearchResponse carries the normalized, ordered journey list.
type JourneySearchResponse struct {
	Journeys []domain.Journey `json:"journeys"`
}

// StationSearchRequest is the station autocomplete call.
type StationSearchRequest struct {
	Query string `json:"query" validate:"required,min=2"`
}

type StationSearchResponse struct {
	Stations []domain.Station `json:"stations"`
}

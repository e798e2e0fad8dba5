package domain

// Raw records and request bodies of the ticket shop backend. Field names
// follow the wire format, not the canonical schema.

// EntrypointTimetable is the travel-action entrypoint required before a
// connection search can be issued.
const EntrypointTimetable = "timetable"

// TravelAction is an opaque handle binding an origin/destination/time
// triple. Only actions with the timetable entrypoint are usable for
// journey search.
type TravelAction struct {
	ID         string `json:"id"`
	Entrypoint struct {
		ID string `json:"id"`
	} `json:"entrypoint"`
}

type RawStop struct {
	Name              string `json:"name"`
	ESN               int64  `json:"esn"`
	Departure         string `json:"departure"`
	Arrival           string `json:"arrival"`
	DeparturePlatform string `json:"departurePlatform"`
	ArrivalPlatform   string `json:"arrivalPlatform"`
}

type RawCategory struct {
	Name      string `json:"name"`
	ShortName string `json:"shortName"`
	LongName  string `json:"longName"`
	Number    string `json:"number"`
	Train     bool   `json:"train"`
}

type RawSection struct {
	From        RawStop     `json:"from"`
	To          RawStop     `json:"to"`
	Category    RawCategory `json:"category"`
	HasRealtime bool        `json:"hasRealtime"`
}

// RawConnection is the backend term for one candidate journey.
type RawConnection struct {
	ID       string       `json:"id"`
	Sections []RawSection `json:"sections"`
}

// OfferAvailable is the only availability state under which an offer
// yields a price.
const OfferAvailable = "available"

// Offer is a price quote for a single connection, fetched independently
// of the connection search.
type Offer struct {
	ConnectionID string
	Price        *float64
	Error        bool
	FirstClass   bool
	Availability string
}

// Valid reports whether the offer carries a usable price.
func (o Offer) Valid() bool {
	return o.Price != nil && !o.Error && o.Availability == OfferAvailable
}

const PassengerTypeAdult = "ADULT"

type ChallengedFlags struct {
	HasHandicappedPass bool `json:"hasHandicappedPass"`
	HasAssistanceDog   bool `json:"hasAssistanceDog"`
	HasWheelchair      bool `json:"hasWheelchair"`
	HasAttendant       bool `json:"hasAttendant"`
}

// Passenger is the backend-shaped passenger record. IDs are unique within
// one search request only, derived from a shared timestamp base.
type Passenger struct {
	Type            string          `json:"type"`
	ID              int64           `json:"id"`
	Me              bool            `json:"me"`
	ChallengedFlags ChallengedFlags `json:"challengedFlags"`
	Relations       []string        `json:"relations"`
	Cards           []string        `json:"cards"`
}

// ConnectionFilter is forwarded verbatim to the backend.
type ConnectionFilter struct {
	RegionalTrainsOnly bool     `json:"regionalTrainsOnly"`
	Direct             bool     `json:"direct"`
	Wheelchair         bool     `json:"wheelchair"`
	Bikes              bool     `json:"bikes"`
	Trains             bool     `json:"trains"`
	Motorail           bool     `json:"motorail"`
	Connections        []string `json:"connections"`
}

// ScrollDirectionAfter is the only scroll direction the paginator uses.
const ScrollDirectionAfter = "after"

// ConnectionSearch is the first-page request body of the connection
// search endpoint. The scroll cursor has no place in this shape.
type ConnectionSearch struct {
	TravelActionID    string           `json:"travelActionId"`
	DatetimeDeparture string           `json:"datetimeDeparture"`
	Filter            ConnectionFilter `json:"filter"`
	Passengers        []Passenger      `json:"passengers"`
	Count             int              `json:"count"`
	SortType          string           `json:"sortType"`
}

// ConnectionScroll is the continuation request body. Fields meaningful
// only to a fresh search (departure datetime, passengers, page size,
// sort) are omitted from this shape.
type ConnectionScroll struct {
	ConnectionID string `json:"connectionId"`
	Direction    string `json:"direction"`
}

// NewConnectionSearch builds the first-page request.
func NewConnectionSearch(travelActionID, datetimeDeparture string, filter ConnectionFilter, passengers []Passenger, count int, sortType string) *ConnectionSearch {
	return &ConnectionSearch{
		TravelActionID:    travelActionID,
		DatetimeDeparture: datetimeDeparture,
		Filter:            filter,
		Passengers:        passengers,
		Count:             count,
		SortType:          sortType,
	}
}

// NewConnectionScroll builds the continuation request for the page after
// the given connection.
func NewConnectionScroll(lastConnectionID string) *ConnectionScroll {
	return &ConnectionScroll{
		ConnectionID: lastConnectionID,
		Direction:    ScrollDirectionAfter,
	}
}

package domain

// Operator identifies the carrier running a line.
type Operator struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Carrier constants. The service talks to a single ticket shop, so the
// operator identity, currency and civil timezone are deployment constants
// rather than values derived from responses.
var CarrierOperator = Operator{ID: "oebb", Name: "Österreichische Bundesbahnen"}

const (
	Currency = "EUR"
	Timezone = "Europe/Vienna"
)

const (
	ModeTrain = "train"
	ModeBus   = "bus"
)

type Station struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Product struct {
	Name      string `json:"name"`
	ShortName string `json:"short_name"`
	LongName  string `json:"long_name"`
}

type Line struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Number   string   `json:"number"`
	Product  Product  `json:"product"`
	Mode     string   `json:"mode"`
	Public   bool     `json:"public"`
	Operator Operator `json:"operator"`
}

type Price struct {
	Currency   string  `json:"currency"`
	Amount     float64 `json:"amount"`
	FirstClass bool    `json:"first_class"`
}

// Leg is one directly-operated segment of a journey between two stations.
// Departure and arrival are ISO-8601 strings anchored to the carrier
// timezone, second precision.
type Leg struct {
	Origin            Station  `json:"origin"`
	Destination       Station  `json:"destination"`
	Departure         string   `json:"departure"`
	Arrival           string   `json:"arrival"`
	DeparturePlatform *string  `json:"departure_platform,omitempty"`
	ArrivalPlatform   *string  `json:"arrival_platform,omitempty"`
	HasRealtime       bool     `json:"has_realtime"`
	Line              Line     `json:"line"`
	Mode              string   `json:"mode"`
	Public            bool     `json:"public"`
	Operator          Operator `json:"operator"`
}

// Journey is one candidate connection between origin and destination.
// Legs is never empty; Price is nil when no valid offer exists.
type Journey struct {
	ID    string `json:"id"`
	Legs  []Leg  `json:"legs"`
	Price *Price `json:"price"`
}

const (
	SortTypeDeparture = "DEPARTURE"
	SortTypeArrival   = "ARRIVAL"
	SortTypeDuration  = "DURATION"
	SortTypePrice     = "PRICE"
)

func IsValidSortType(s string) bool {
	switch s {
	case SortTypeDeparture, SortTypeArrival, SortTypeDuration, SortTypePrice:
		return true
	}
	return false
}

package usecase

import (
	"strconv"
	"strings"
	"time"

	"github.com/journey-service/internal/domain"
)

// normalizer maps raw backend records into the canonical journey schema.
// Pure mapping, no I/O.
type normalizer struct {
	loc *time.Location
}

func newNormalizer() (*normalizer, error) {
	loc, err := time.LoadLocation(domain.Timezone)
	if err != nil {
		return nil, err
	}
	return &normalizer{loc: loc}, nil
}

// Journey maps a raw connection plus its matched offer (nil when none)
// into a canonical journey.
func (n *normalizer) Journey(conn domain.RawConnection, offer *domain.Offer) domain.Journey {
	legs := make([]domain.Leg, 0, len(conn.Sections))
	for _, section := range conn.Sections {
		legs = append(legs, n.leg(section))
	}

	return domain.Journey{
		ID:    conn.ID,
		Legs:  legs,
		Price: n.price(offer),
	}
}

func (n *normalizer) leg(section domain.RawSection) domain.Leg {
	line := n.line(section.Category)

	return domain.Leg{
		Origin:            n.station(section.From),
		Destination:       n.station(section.To),
		Departure:         n.timestamp(section.From.Departure),
		Arrival:           n.timestamp(section.To.Arrival),
		DeparturePlatform: optionalString(section.From.DeparturePlatform),
		ArrivalPlatform:   optionalString(section.To.ArrivalPlatform),
		HasRealtime:       section.HasRealtime,
		Line:              line,
		Mode:              line.Mode,
		Public:            line.Public,
		Operator:          line.Operator,
	}
}

func (n *normalizer) station(stop domain.RawStop) domain.Station {
	return domain.Station{
		ID:   strconv.FormatInt(stop.ESN, 10),
		Name: stop.Name,
	}
}

func (n *normalizer) line(category domain.RawCategory) domain.Line {
	mode := domain.ModeBus
	if category.Train {
		mode = domain.ModeTrain
	}

	product := category.ShortName
	if product == "" {
		product = category.Name
	}
	name := joinNonEmpty(product, category.Number)

	return domain.Line{
		ID:     lineID(name),
		Name:   name,
		Number: category.Number,
		Product: domain.Product{
			Name:      category.Name,
			ShortName: category.ShortName,
			LongName:  category.LongName,
		},
		Mode:     mode,
		Public:   true,
		Operator: domain.CarrierOperator,
	}
}

// price yields a price only for a valid offer; currency is the carrier
// constant, never sourced from the offer.
func (n *normalizer) price(offer *domain.Offer) *domain.Price {
	if offer == nil || !offer.Valid() {
		return nil
	}
	return &domain.Price{
		Currency:   domain.Currency,
		Amount:     *offer.Price,
		FirstClass: offer.FirstClass,
	}
}

// timestamp re-anchors a backend timestamp to the carrier timezone and
// serializes it as an offset-qualified ISO-8601 string, second precision.
// Offset-less inputs are civil carrier-timezone times.
func (n *normalizer) timestamp(value string) string {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.In(n.loc).Truncate(time.Second).Format(time.RFC3339)
	}
	if t, err := time.ParseInLocation("2006-01-02T15:04:05", value, n.loc); err == nil {
		return t.Truncate(time.Second).Format(time.RFC3339)
	}
	return value
}

// inCarrierTZ anchors a caller-supplied time to the carrier timezone.
func (n *normalizer) inCarrierTZ(t time.Time) time.Time {
	return t.In(n.loc)
}

// backendTime formats a time the way backend request bodies expect.
func (n *normalizer) backendTime(t time.Time) string {
	return t.In(n.loc).Format("2006-01-02T15:04:05.000")
}

func joinNonEmpty(parts ...string) string {
	nonEmpty := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return strings.Join(nonEmpty, " ")
}

func lineID(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), "-"))
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

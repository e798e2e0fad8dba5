package usecase

import (
	"time"

	"github.com/journey-service/internal/domain"
	"github.com/journey-service/internal/usecase/dto"
)

// buildPassengers derives the backend passenger list from the caller's
// options, or a single default adult. Ids are a shared timestamp base
// plus the list position, unique within one search call only.
func buildPassengers(opts []dto.PassengerOptions, now time.Time) []domain.Passenger {
	base := now.Unix()

	if len(opts) == 0 {
		return []domain.Passenger{{
			Type:      domain.PassengerTypeAdult,
			ID:        base,
			Me:        true,
			Relations: []string{},
			Cards:     []string{},
		}}
	}

	passengers := make([]domain.Passenger, 0, len(opts))
	for i, o := range opts {
		passengerType := o.Type
		if passengerType == "" {
			passengerType = domain.PassengerTypeAdult
		}

		cards := o.Cards
		if cards == nil {
			cards = []string{}
		}

		passengers = append(passengers, domain.Passenger{
			Type: passengerType,
			ID:   base + int64(i),
			Me:   i == 0,
			ChallengedFlags: domain.ChallengedFlags{
				HasHandicappedPass: o.HasHandicappedPass,
				HasAssistanceDog:   o.HasAssistanceDog,
				HasWheelchair:      o.HasWheelchair,
				HasAttendant:       o.HasAttendant,
			},
			Relations: []string{},
			Cards:     cards,
		})
	}

	return passengers
}

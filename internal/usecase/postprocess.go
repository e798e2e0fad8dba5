package usecase

import (
	"sort"
	"time"

	"github.com/journey-service/internal/domain"
)

// postProcess applies the final pipeline steps in order: dedupe by
// journey id, interval filter, transfers filter, truncation. No step
// re-sorts; the ordering established during pagination is preserved.
func postProcess(journeys []domain.Journey, cfg *searchConfig) []domain.Journey {
	journeys = dedupeJourneys(journeys)

	if cfg.interval != nil {
		limit := cfg.departure.Add(time.Duration(*cfg.interval) * time.Minute)
		kept := journeys[:0]
		for _, j := range journeys {
			if !firstDeparture(j).After(limit) {
				kept = append(kept, j)
			}
		}
		journeys = kept
	}

	if cfg.transfers != nil {
		kept := journeys[:0]
		for _, j := range journeys {
			if len(j.Legs) <= *cfg.transfers+1 {
				kept = append(kept, j)
			}
		}
		journeys = kept
	}

	if cfg.results != nil && len(journeys) > *cfg.results {
		journeys = journeys[:*cfg.results]
	}

	return journeys
}

// dedupeJourneys keeps the first occurrence per journey id, preserving
// relative order.
func dedupeJourneys(journeys []domain.Journey) []domain.Journey {
	seen := make(map[string]bool, len(journeys))
	deduped := journeys[:0]
	for _, j := range journeys {
		if seen[j.ID] {
			continue
		}
		seen[j.ID] = true
		deduped = append(deduped, j)
	}
	return deduped
}

// sortJourneysByDeparture orders one page chronologically by first-leg
// departure before it is appended to the accumulated result.
func sortJourneysByDeparture(journeys []domain.Journey) {
	sort.SliceStable(journeys, func(i, j int) bool {
		return firstDeparture(journeys[i]).Before(firstDeparture(journeys[j]))
	})
}

func firstDeparture(j domain.Journey) time.Time {
	if len(j.Legs) == 0 {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, j.Legs[0].Departure)
	if err != nil {
		return time.Time{}
	}
	return t
}

package usecase

import (
	"context"
	"strings"

	"location-recommender-agent/internal/recommend"
	"location-recommender-agent/internal/recommend/session"
	"location-recommender-agent/pkg/nominatim"
)

// buildCandidates turns the parsed query into a list of concrete scored-to-be
// candidates. A named destination restricts the search to its single best
// geocode match; skiing queries use ski-town seeds; everything else uses a
// fixed spread of well known cities. Geocode failures for individual seeds
// are skipped, a provider error aborts the turn.
func (uc *implUseCase) buildCandidates(
	ctx context.Context,
	parsed recommend.ParsedIntent,
	memory *session.Memory,
	effectiveWeather recommend.Weather,
) ([]recommend.Candidate, error) {
	seeds, err := uc.resolveSeeds(ctx, parsed)
	if err != nil {
		return nil, err
	}

	candidates := make([]recommend.Candidate, 0, len(seeds))
	for _, seed := range seeds {
		candidate := recommend.Candidate{
			Destination:      displayName(seed.Name),
			Lat:              seed.Lat,
			Lon:              seed.Lon,
			Activity:         parsed.Activity,
			PreferredWeather: effectiveWeather,
		}

		dateOrMonth := ""
		if parsed.TravelDateOrMonth != nil {
			dateOrMonth = *parsed.TravelDateOrMonth
		}
		daily := uc.weather.FetchWeather(ctx, seed.Lat, seed.Lon, dateOrMonth)
		candidate.MaxTemp = daily.MaxTemp
		candidate.MinTemp = daily.MinTemp
		candidate.Rain = daily.Rain

		activity := ""
		if parsed.Activity != nil {
			activity = *parsed.Activity
		}
		signals := uc.places.FetchActivitySignals(ctx, seed.Lat, seed.Lon, activity)
		candidate.PoiCount = signals.PoiCount
		candidate.SampleNames = signals.SampleNames

		candidate.FlightHours = uc.flights.EstimateHours(
			memory.OriginCity, memory.OriginCountry, seed.Lat, seed.Lon)

		candidates = append(candidates, candidate)
	}
	return candidates, nil
}

func (uc *implUseCase) resolveSeeds(ctx context.Context, parsed recommend.ParsedIntent) ([]nominatim.Place, error) {
	if parsed.Destination != nil && *parsed.Destination != "" {
		places, err := uc.geocoder.Geocode(ctx, *parsed.Destination, seedGeocodeLimit)
		if err != nil {
			return nil, err
		}
		return places, nil
	}

	cities := defaultSeedCities
	if parsed.IsSkiing() {
		cities = skiSeedCities
	}

	seeds := make([]nominatim.Place, 0, len(cities))
	for _, city := range cities {
		places, err := uc.geocoder.Geocode(ctx, city, 1)
		if err != nil {
			return nil, err
		}
		if len(places) == 0 {
			uc.l.Warnf(ctx, "recommend.usecase.resolveSeeds: no geocode match for seed %q", city)
			continue
		}
		seeds = append(seeds, places[0])
	}
	return seeds, nil
}

// filterCandidates drops previously rejected destinations and, when a real
// flight-hours limit is set, candidates whose estimate exceeds it. The
// no-limit sentinel disables the flight filter entirely.
func filterCandidates(
	candidates []recommend.Candidate,
	memory *session.Memory,
	maxFlightHours *float64,
) []recommend.Candidate {
	kept := make([]recommend.Candidate, 0, len(candidates))
	for _, candidate := range candidates {
		if memory.IsRejected(candidate.Destination) {
			continue
		}
		if maxFlightHours != nil && candidate.FlightHours != nil && *candidate.FlightHours > *maxFlightHours {
			continue
		}
		kept = append(kept, candidate)
	}
	return kept
}

// displayName reduces a geocoder display name like
// "Lisbon, Lisboa, Portugal" to its leading component.
func displayName(geocoded string) string {
	name, _, _ := strings.Cut(geocoded, ",")
	return strings.TrimSpace(name)
}

package usecase

import (
	"context"
	"fmt"
	"strings"

	"location-recommender-agent/internal/recommend/session"
	"location-recommender-agent/pkg/nominatim"
)

// handleOnboarding tries to read "city, country" from the first user
// message and verifies it against the geocoder before saving it as the
// session origin. Each rejection path has its own message so the user
// knows what to correct.
func (uc *implUseCase) handleOnboarding(ctx context.Context, memory *session.Memory, text string) string {
	if !memory.OnboardingPrompted {
		memory.OnboardingPrompted = true
		if strings.TrimSpace(text) == "" || looksLikeNewTravelQuery(text) {
			return msgOnboardingAsk
		}
	}

	if !strings.Contains(text, ",") {
		return msgOnboardingBadFormat
	}
	parts := strings.SplitN(text, ",", 2)
	city := strings.TrimSpace(parts[0])
	country := strings.TrimSpace(parts[1])
	if city == "" || country == "" {
		return msgOnboardingEmptyParts
	}

	places, err := uc.geocoder.Geocode(ctx, city+", "+country, onboardingGeocodeLimit)
	if err != nil {
		uc.l.Warnf(ctx, "recommend.usecase.handleOnboarding.Geocode: %v", err)
		return msgOnboardingNoMatch
	}
	if len(places) == 0 {
		return msgOnboardingNoMatch
	}
	for _, place := range places {
		if isConfidentOriginMatch(place, city, country) {
			memory.SetOrigin(city, country)
			return fmt.Sprintf(msgOnboardingSaved, city, country)
		}
	}
	return msgOnboardingLowConfidence
}

// isConfidentOriginMatch checks that the geocoder result actually refers
// to the city and country the user typed, rather than a loose match.
func isConfidentOriginMatch(place nominatim.Place, city, country string) bool {
	normCity := normalizeText(city)
	normCountry := normalizeText(country)
	displayName := normalizeText(place.Name)
	countryName := normalizeText(place.Address.Country)

	countryOK := strings.Contains(countryName, normCountry) ||
		strings.Contains(normCountry, countryName) ||
		strings.Contains(displayName, normCountry)
	if !countryOK {
		if code, ok := countryCodeAliases[normCountry]; ok {
			countryOK = strings.EqualFold(place.CountryCode, code)
		}
	}
	if !countryOK {
		return false
	}

	cityFields := []string{
		place.Address.City,
		place.Address.Town,
		place.Address.Village,
		place.Address.Municipality,
		place.Address.County,
		place.Address.StateDistrict,
		place.Address.Suburb,
	}
	for _, field := range cityFields {
		if normCity != "" && strings.Contains(normalizeText(field), normCity) {
			return true
		}
	}
	return strings.Contains(displayName, normCity)
}

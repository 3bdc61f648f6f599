package intent

import (
	"strconv"
	"strings"

	"location-recommender-agent/internal/recommend"
)

// parseWithRules runs the deterministic extraction cascade. It is always
// executed and acts as the floor/fallback for the LLM refinement step.
func parseWithRules(text string) recommend.ParsedIntent {
	lowered := strings.ToLower(text)
	explicit := extractExplicitSlots(lowered)

	activity := explicit.activity
	if activity == nil && strings.Contains(lowered, "ski") {
		activity = ptr("skiing")
	}

	destination := explicit.destination
	if destination == nil {
		destination = extractDestination(lowered)
	}

	dateOrMonth := explicit.travelDateOrMonth
	if dateOrMonth == nil {
		dateOrMonth = extractDateOrMonth(text)
	}

	maxHours := explicit.maxFlightHours
	if maxHours == nil {
		maxHours = extractMaxFlightHours(lowered)
	}
	if hasNoLimitPhrase(lowered) {
		noLimit := recommend.NoFlightLimit
		maxHours = &noLimit
	}

	return recommend.ParsedIntent{
		Intent:             inferIntent(lowered, destination, activity, maxHours),
		Destination:        destination,
		Activity:           activity,
		TravelDateOrMonth:  dateOrMonth,
		MaxFlightHours:     maxHours,
		QueryWeatherSignal: weatherSignalFromQuery(lowered),
		RawText:            text,
	}
}

// explicitSlots are `key: value` pairs separated by `|`, produced by prior
// clarification round-trips. They take precedence over freeform extraction.
type explicitSlots struct {
	destination       *string
	activity          *string
	travelDateOrMonth *string
	maxFlightHours    *float64
}

func extractExplicitSlots(lowered string) explicitSlots {
	slots := explicitSlots{}
	if m := reSlotDestination.FindStringSubmatch(lowered); m != nil {
		slots.destination = ptr(strings.Trim(m[1], " .,?"))
	}
	if m := reSlotActivity.FindStringSubmatch(lowered); m != nil {
		slots.activity = ptr(strings.Trim(m[1], " .,?"))
	}
	if m := reSlotDate.FindStringSubmatch(lowered); m != nil {
		slots.travelDateOrMonth = ptr(strings.Trim(m[1], " .,?"))
	}
	if m := reSlotMaxHours.FindStringSubmatch(lowered); m != nil {
		value := strings.Trim(m[1], " .,?")
		if hours, err := strconv.ParseFloat(value, 64); err == nil {
			slots.maxFlightHours = &hours
		}
	}
	return slots
}

// extractDestination runs the preposition-pattern cascade over text with
// dates stripped out, so month names are never mis-captured as destinations.
func extractDestination(lowered string) *string {
	cleaned := reDateSlotSegment.ReplaceAllString(lowered, "")
	cleaned = reMonthName.ReplaceAllString(cleaned, "")
	cleaned = strings.TrimSpace(reWhitespace.ReplaceAllString(cleaned, " "))

	for _, pattern := range reDestinationPatterns {
		m := pattern.FindStringSubmatch(cleaned)
		if m == nil {
			continue
		}
		candidate := strings.Trim(m[1], " ?.,")
		candidate = strings.Trim(reMonthName.ReplaceAllString(candidate, ""), " ,.-")
		if isGenericDestinationPhrase(candidate) {
			return nil
		}
		if len(candidate) > 2 {
			return ptr(titleCase(candidate))
		}
	}

	// Bare-phrase fallback (e.g. "tuscany", "new zealand").
	simple := strings.Trim(cleaned, " ?.,")
	if simple != "" && len(strings.Fields(simple)) <= 3 && isAlphaSpace(simple) &&
		!isGenericDestinationPhrase(simple) {
		return ptr(titleCase(simple))
	}
	return nil
}

func extractDateOrMonth(text string) *string {
	if m := reMonthName.FindStringSubmatch(strings.ToLower(text)); m != nil {
		return ptr(m[1])
	}
	if m := reNumericDate.FindString(text); m != "" {
		return ptr(m)
	}
	return nil
}

func extractMaxFlightHours(lowered string) *float64 {
	m := reFlightHours.FindStringSubmatch(lowered)
	if m == nil {
		return nil
	}
	hours, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return nil
	}
	return &hours
}

func hasNoLimitPhrase(lowered string) bool {
	for _, phrase := range noLimitPhrases {
		if strings.Contains(lowered, phrase) {
			return true
		}
	}
	return false
}

func weatherSignalFromQuery(lowered string) *recommend.Weather {
	switch {
	case strings.Contains(lowered, "cold place") || strings.Contains(lowered, "cold places") ||
		strings.Contains(lowered, "cold weather"):
		return weatherPtr(recommend.WeatherCold)
	case strings.Contains(lowered, "warm place") || strings.Contains(lowered, "warm places") ||
		strings.Contains(lowered, "warm weather"):
		return weatherPtr(recommend.WeatherWarm)
	case strings.Contains(lowered, "mild weather") || strings.Contains(lowered, "mild place") ||
		strings.Contains(lowered, "mild places"):
		return weatherPtr(recommend.WeatherMild)
	}
	return nil
}

// inferIntent applies the classification precedence: activity first, then
// discovery/constraint triggers, else opinion. The evaluation order matches
// the established tie-breaking behavior and must not be reordered.
func inferIntent(lowered string, destination, activity *string, maxHours *float64) recommend.Intent {
	if activity != nil {
		return recommend.IntentActivityDiscovery
	}

	asksDiscovery := false
	for _, phrase := range discoveryPhrases {
		if strings.Contains(lowered, phrase) {
			asksDiscovery = true
			break
		}
	}

	hasConstraint := maxHours != nil || recommend.MentionsFlightDuration(lowered)

	if asksDiscovery || (hasConstraint && destination == nil) {
		return recommend.IntentConstraintDiscovery
	}
	return recommend.IntentDestinationOpinion
}

func isGenericDestinationPhrase(value string) bool {
	lowered := strings.TrimSpace(strings.ToLower(value))
	if genericDestinationTokens[lowered] {
		return true
	}
	for _, token := range genericDestinationSubstrings {
		if strings.Contains(lowered, token) {
			return true
		}
	}
	return false
}

func isAlphaSpace(value string) bool {
	for _, r := range value {
		if r != ' ' && !('a' <= r && r <= 'z') && !('A' <= r && r <= 'Z') {
			return false
		}
	}
	return true
}

func titleCase(value string) string {
	fields := strings.Fields(value)
	for i, field := range fields {
		fields[i] = strings.ToUpper(field[:1]) + field[1:]
	}
	return strings.Join(fields, " ")
}

func ptr(s string) *string { return &s }

func weatherPtr(w recommend.Weather) *recommend.Weather { return &w }

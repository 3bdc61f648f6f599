package slots

import (
	"fmt"

	"location-recommender-agent/internal/recommend"
)

// Slot names used across clarification round-trips.
const (
	SlotDestination    = "destination"
	SlotActivity       = "activity"
	SlotTravelDate     = "travel_date_or_month"
	SlotMaxFlightHours = "max_flight_hours"
)

// requiredSlotsByIntent is the fixed intent → required-slot table, in the
// order questions should be asked. For constraint discovery the
// flight-hours slot is conditional: it is required only when the turn
// itself asked a flight-duration question.
var requiredSlotsByIntent = map[recommend.Intent][]string{
	recommend.IntentDestinationOpinion:  {SlotDestination, SlotTravelDate},
	recommend.IntentActivityDiscovery:   {SlotActivity, SlotTravelDate},
	recommend.IntentConstraintDiscovery: {SlotTravelDate, SlotMaxFlightHours},
}

var clarifyingQuestions = map[string]string{
	SlotTravelDate:     "What date or month are you planning to travel?",
	SlotDestination:    "Which destination are you considering?",
	SlotActivity:       "Which activity are you most interested in?",
	SlotMaxFlightHours: "What is your maximum flight duration in hours?",
}

// MissingSlots returns, in table order, every required slot for the parsed
// intent whose value is absent. The flight-hours slot is skipped unless the
// turn explicitly asked a flight-duration question, and the "no limit"
// sentinel counts as present.
func MissingSlots(parsed recommend.ParsedIntent) []string {
	var missing []string
	for _, slot := range requiredSlotsByIntent[parsed.Intent] {
		if slot == SlotMaxFlightHours && !parsed.AsksFlightDuration() {
			continue
		}
		if !slotFilled(parsed, slot) {
			missing = append(missing, slot)
		}
	}
	return missing
}

func slotFilled(parsed recommend.ParsedIntent, slot string) bool {
	switch slot {
	case SlotDestination:
		return parsed.Destination != nil && *parsed.Destination != ""
	case SlotActivity:
		return parsed.Activity != nil && *parsed.Activity != ""
	case SlotTravelDate:
		return parsed.TravelDateOrMonth != nil && *parsed.TravelDateOrMonth != ""
	case SlotMaxFlightHours:
		return parsed.MaxFlightHours != nil
	}
	return false
}

// NextClarifyingQuestion maps the first missing slot to its fixed question.
func NextClarifyingQuestion(missing []string) string {
	if len(missing) == 0 {
		return ""
	}
	if question, ok := clarifyingQuestions[missing[0]]; ok {
		return question
	}
	return fmt.Sprintf("Could you provide: %s?", missing[0])
}

// ShouldAskWeatherPreference reports whether the weather-preference question
// should be asked this turn. Skiing trips are exempt: weather preference is
// irrelevant to snow.
func ShouldAskWeatherPreference(parsed recommend.ParsedIntent, preferred recommend.Weather) bool {
	if preferred != "" {
		return false
	}
	if parsed.IsSkiing() {
		return false
	}
	return true
}

package usecase

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"location-recommender-agent/internal/recommend"
	"location-recommender-agent/internal/recommend/session"
	"location-recommender-agent/internal/recommend/slots"
)

// normalizeText lowercases, strips diacritics and collapses whitespace so
// user input can be compared against provider address fields.
func normalizeText(s string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	return strings.Join(strings.Fields(strings.ToLower(folded)), " ")
}

func isShortAcknowledgement(text string) bool {
	cleaned := strings.Trim(strings.ToLower(strings.TrimSpace(text)), " .,!")
	_, ok := acknowledgementPhrases[cleaned]
	return ok
}

func looksLikeNewTravelQuery(text string) bool {
	lowered := strings.ToLower(text)
	for _, term := range newQueryTerms {
		if strings.Contains(lowered, term) {
			return true
		}
	}
	return false
}

// isClarificationLikeAnswer reports whether text plausibly answers the
// pending slot, in which case a pending clarification should be kept even
// if the text also contains travel wording. Date answers must be a bare
// month name or a numeric date; hours answers a bare number or an "hour"
// mention. Anything wordier is treated as a new query.
func isClarificationLikeAnswer(text, pendingSlot string) bool {
	lowered := strings.ToLower(strings.TrimSpace(text))
	if lowered == "" {
		return false
	}
	switch pendingSlot {
	case slots.SlotTravelDate:
		if monthNames[lowered] {
			return true
		}
		return reDateAnswer.MatchString(lowered)
	case slots.SlotMaxFlightHours:
		return reHoursAnswer.MatchString(lowered) || strings.Contains(lowered, "hour")
	case slots.SlotDestination:
		return len(lowered) > 2 && len(strings.Fields(lowered)) <= 5
	case slots.SlotActivity:
		return len(lowered) > 2
	default:
		return false
	}
}

func isFeedbackText(text string) bool {
	lowered := strings.ToLower(text)
	for _, phrase := range negativeFeedbackPhrases {
		if strings.Contains(lowered, phrase) {
			return true
		}
	}
	for _, phrase := range likeFirstPhrases {
		if strings.Contains(lowered, phrase) {
			return true
		}
	}
	return false
}

// captureWeatherPreference parses an answer to the weather question and
// stores it on the session. It returns false when the answer is not a
// recognizable preference.
func captureWeatherPreference(memory *session.Memory, text string) bool {
	lowered := strings.ToLower(text)
	switch {
	case strings.Contains(lowered, "cold"):
		memory.PreferredWeather = recommend.WeatherCold
	case strings.Contains(lowered, "mild"):
		memory.PreferredWeather = recommend.WeatherMild
	case strings.Contains(lowered, "warm"):
		memory.PreferredWeather = recommend.WeatherWarm
	case strings.Contains(lowered, "no") && strings.Contains(lowered, "preference"):
		memory.PreferredWeather = recommend.WeatherNoPreference
	default:
		return false
	}
	return true
}

func tokenCount(text string) int {
	return len(strings.Fields(text))
}

package usecase

import "regexp"

const (
	msgOnboardingAsk           = "Before we start, where are you located? Please answer as: city, country (for example: Tel Aviv, Israel)."
	msgOnboardingBadFormat     = "Please provide your origin in this exact format: city, country (example: Tel Aviv, Israel)."
	msgOnboardingEmptyParts    = "Both city and country are required. Please send: city, country."
	msgOnboardingNoMatch       = "I could not validate that city/country pair. Please try again in the format: city, country."
	msgOnboardingLowConfidence = "I found a location, but it does not confidently match both city and country. Please provide a clearer pair, for example: Florence, Italy."
	msgOnboardingSaved         = "Thanks! I saved your origin: %s, %s. Now tell me about your trip."
	msgAcknowledged            = "You're welcome! Tell me whenever you want more travel ideas."
	msgFeedbackThanks          = "Thanks for the feedback, I saved it."
	msgRegenerated             = "I generated new options based on your feedback."
	msgRegenerateBlocked       = "I need one more detail before regenerating options."
	msgWeatherQuestion         = "Do you prefer cold, mild, warm weather, or no preference?"
	msgWeatherSaved            = "Got it. I saved your weather preference."
	msgWeatherRetry            = "Please answer with: cold, mild, warm, or no preference."
	msgNoResults               = "I could not find fitting destinations. Could you adjust the date or constraints?"
	msgProviderIssue           = "I hit a temporary data/provider issue while building recommendations. Please try again in a few seconds."
	msgFeedbackPrompt          = "What do you think about these options?"

	summaryFallbackTemplate = "Best current match is %s with score %.1f. I also included alternatives with clear tradeoffs."

	topRecommendations     = 3
	carryOverMaxTokens     = 4
	seedGeocodeLimit       = 1
	onboardingGeocodeLimit = 3
)

var (
	skiSeedCities = []string{"Innsbruck", "Aspen", "Chamonix", "Sapporo", "Queenstown"}

	defaultSeedCities = []string{"Lisbon", "Bangkok", "Tokyo", "Cape Town", "Vancouver", "Buenos Aires"}

	genericSampleActivities = []string{"Old Town walk", "Local food tour", "City museum"}
)

var acknowledgementPhrases = map[string]struct{}{
	"ok":          {},
	"okay":        {},
	"cool":        {},
	"great":       {},
	"nice":        {},
	"good":        {},
	"thanks":      {},
	"thank you":   {},
	"perfect":     {},
	"sounds good": {},
}

var negativeFeedbackPhrases = []string{
	"didn't like",
	"did not like",
	"none of",
	"none",
	"new options",
	"not good",
}

var likeFirstPhrases = []string{
	"like the first",
	"like 1",
	"like option 1",
}

var monthNames = map[string]bool{
	"january": true, "february": true, "march": true, "april": true,
	"may": true, "june": true, "july": true, "august": true,
	"september": true, "october": true, "november": true, "december": true,
}

// Full-match patterns for bare clarification answers.
var (
	reDateAnswer  = regexp.MustCompile(`^\d{1,2}[./-]\d{1,2}[./-]\d{2,4}$`)
	reHoursAnswer = regexp.MustCompile(`^\d+(?:\.\d+)?$`)
)

var newQueryTerms = []string{
	"where", "go to", "trip", "travel",
	"march", "april", "may", "june", "july", "august",
	"september", "october", "november", "december", "january", "february",
	"ski", "beach", "hours", "flight",
}

var countryCodeAliases = map[string]string{
	"israel":         "il",
	"united states":  "us",
	"usa":            "us",
	"uk":             "gb",
	"united kingdom": "gb",
}

package intent

import "regexp"

// Extraction patterns. Kept as an ordered cascade: each rule is independent
// and evaluated in fixed priority order.
var (
	reSlotDestination = regexp.MustCompile(`destination:\s*([^|]+)`)
	reSlotActivity    = regexp.MustCompile(`activity:\s*([^|]+)`)
	reSlotDate        = regexp.MustCompile(`travel_date_or_month:\s*([^|]+)`)
	reSlotMaxHours    = regexp.MustCompile(`max_flight_hours:\s*([^|]+)`)

	reDateSlotSegment = regexp.MustCompile(`(?i)\|\s*travel_date_or_month:\s*[^|]+`)
	reMonthName       = regexp.MustCompile(`(?i)\b(january|february|march|april|may|june|july|august|september|october|november|december)\b`)
	reWhitespace      = regexp.MustCompile(`\s+`)

	// Destination patterns, highest priority first.
	reDestinationPatterns = []*regexp.Regexp{
		regexp.MustCompile(`to ([a-zA-Z\s]+)`),
		regexp.MustCompile(`going to ([a-zA-Z\s]+)`),
		regexp.MustCompile(`in ([a-zA-Z\s]+)`),
	}

	reNumericDate = regexp.MustCompile(`\b\d{1,2}[./-]\d{1,2}(?:[./-]\d{2,4})?\b`)
	reFlightHours = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*hour`)
)

// noLimitPhrases force the "no limit" flight-hours sentinel.
var noLimitPhrases = []string{
	"no limit",
	"without limit",
	"without duration limitation",
	"without duration limit",
	"no duration limit",
	"no flight limit",
	"without flight limit",
}

// discoveryPhrases signal a discovery-style request.
var discoveryPhrases = []string{
	"where should i go",
	"where to go",
	"recommend destination",
	"places to go",
	"offer me places",
	"sunny place",
	"warm place",
}

// genericDestinationTokens reject non-specific destination captures.
var genericDestinationTokens = map[string]bool{
	"place":       true,
	"places":      true,
	"destination": true,
	"somewhere":   true,
	"anywhere":    true,
	"sunny place": true,
	"warm place":  true,
	"cold place":  true,
}

var genericDestinationSubstrings = []string{" place", "destination", "somewhere", "anywhere"}

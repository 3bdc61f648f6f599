package scoring

import (
	"strconv"
	"strings"
)

// Season labels used by activity scoring.
const (
	SeasonWinter  = "winter"
	SeasonSpring  = "spring"
	SeasonSummer  = "summer"
	SeasonAutumn  = "autumn"
	SeasonUnknown = "unknown"
)

var seasonByMonthName = map[string]string{
	"december": SeasonWinter, "january": SeasonWinter, "february": SeasonWinter,
	"march": SeasonSpring, "april": SeasonSpring, "may": SeasonSpring,
	"june": SeasonSummer, "july": SeasonSummer, "august": SeasonSummer,
	"september": SeasonAutumn, "october": SeasonAutumn, "november": SeasonAutumn,
}

// SeasonFromDateOrMonth maps a month name or a D[./-]M[./-]Y numeric date to
// its season, or "unknown" when neither form parses.
func SeasonFromDateOrMonth(dateOrMonth string) string {
	lowered := strings.ToLower(strings.TrimSpace(dateOrMonth))
	if season, ok := seasonByMonthName[lowered]; ok {
		return season
	}

	parts := strings.Split(strings.ReplaceAll(lowered, "-", "."), ".")
	if len(parts) < 2 {
		return SeasonUnknown
	}
	month, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return SeasonUnknown
	}

	switch {
	case month == 12 || month == 1 || month == 2:
		return SeasonWinter
	case month >= 3 && month <= 5:
		return SeasonSpring
	case month >= 6 && month <= 8:
		return SeasonSummer
	default:
		return SeasonAutumn
	}
}

package openmeteo

import "time"

// Seasonal northern-hemisphere averages used when the forecast provider is
// unavailable. Values are deliberately middle-of-the-road so scoring keeps
// working without skewing any single term.
var seasonalAverages = map[string]DailyWeather{
	"winter": {MaxTemp: 8, MinTemp: 0, Rain: 3.0},
	"spring": {MaxTemp: 18, MinTemp: 9, Rain: 2.0},
	"summer": {MaxTemp: 27, MinTemp: 16, Rain: 1.0},
	"autumn": {MaxTemp: 16, MinTemp: 8, Rain: 2.5},
}

func seasonalFallback(month time.Month) DailyWeather {
	switch month {
	case time.December, time.January, time.February:
		return seasonalAverages["winter"]
	case time.March, time.April, time.May:
		return seasonalAverages["spring"]
	case time.June, time.July, time.August:
		return seasonalAverages["summer"]
	default:
		return seasonalAverages["autumn"]
	}
}

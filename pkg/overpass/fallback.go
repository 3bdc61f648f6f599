package overpass

import "strings"

// Canned signals keep the scoring pipeline alive during provider outages.
// Counts are modest so live data always outranks the fallback.
var fallbackByActivity = map[string]ActivitySignals{
	"ski": {
		PoiCount:    40,
		SampleNames: []string{"Main Ski Lift", "Nordkette Run", "Valley Piste"},
	},
	"beach": {
		PoiCount:    35,
		SampleNames: []string{"City Beach", "Sunset Cove", "Harbour Promenade"},
	},
	"museum": {
		PoiCount:    30,
		SampleNames: []string{"National Museum", "Modern Art Gallery", "History Museum"},
	},
}

var fallbackGeneric = ActivitySignals{
	PoiCount:    25,
	SampleNames: []string{"Old Town", "Central Market", "City Park"},
}

func fallbackSignals(activity string) ActivitySignals {
	lowered := strings.ToLower(activity)
	for key, signals := range fallbackByActivity {
		if strings.Contains(lowered, key) {
			return signals
		}
	}
	return fallbackGeneric
}

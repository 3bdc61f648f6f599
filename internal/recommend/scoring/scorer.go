package scoring

import (
	"math"
	"strings"

	"location-recommender-agent/internal/recommend"
)

// Score-breakdown term names.
const (
	TermActivityFit      = "activity_fit"
	TermWeatherFit       = "weather_fit"
	TermFlightFeasible   = "flight_feasibility"
	TermDiversityNovelty = "diversity_novelty"
	TermLikeBonus        = "like_bonus"
	TermTotal            = "total"
)

// ScoreCandidate computes the additive multi-term score for one candidate
// and fills Score and ScoreBreakdown. Deterministic, no I/O.
func ScoreCandidate(
	candidate *recommend.Candidate,
	activity *string,
	preferredWeather recommend.Weather,
	maxFlightHours *float64,
	season string,
	likedProfiles []recommend.LikedProfile,
) {
	activityFit := activityScore(candidate, activity, season)
	weatherFit := weatherScore(candidate, preferredWeather)
	flightFit := flightScore(candidate, maxFlightHours)
	diversity := diversityScore(candidate)
	likeBonus := likeSimilarityBonus(candidate, likedProfiles)

	total := activityFit + weatherFit + flightFit + diversity + likeBonus
	candidate.ScoreBreakdown = map[string]float64{
		TermActivityFit:      activityFit,
		TermWeatherFit:       weatherFit,
		TermFlightFeasible:   flightFit,
		TermDiversityNovelty: diversity,
		TermLikeBonus:        likeBonus,
		TermTotal:            total,
	}
	candidate.Score = total
}

// activityScore: 0-40. POI density is the base; skiing gets a winter bonus
// and an off-season penalty.
func activityScore(candidate *recommend.Candidate, activity *string, season string) float64 {
	base := math.Min(40, float64(candidate.PoiCount)/5)
	if activity == nil || *activity == "" {
		return base
	}
	if strings.EqualFold(*activity, "skiing") {
		if season == SeasonWinter {
			return math.Min(40, base+12)
		}
		return math.Max(5, base-15)
	}
	return base
}

// weatherScore: 0-30. Rain suppresses the base; the preference-closeness
// bonus peaks at the target average temperature for the preference.
func weatherScore(candidate *recommend.Candidate, preferred recommend.Weather) float64 {
	avg := (candidate.MaxTemp + candidate.MinTemp) / 2
	score := 20 - math.Min(10, candidate.Rain*1.2)

	switch preferred {
	case recommend.WeatherCold:
		score += math.Max(0, 10-math.Abs(avg-8))
	case recommend.WeatherMild:
		score += math.Max(0, 10-math.Abs(avg-18))
	case recommend.WeatherWarm:
		score += math.Max(0, 10-math.Abs(avg-27))
	default:
		score += 6
	}
	return math.Max(0, math.Min(30, score))
}

// flightScore: 0-20. Unknown estimates get a flat middle value; without a
// limit the score decays with distance, within the limit it is full marks,
// and over it the penalty is steep.
func flightScore(candidate *recommend.Candidate, maxFlightHours *float64) float64 {
	if candidate.FlightHours == nil {
		return 8
	}
	est := *candidate.FlightHours
	if maxFlightHours == nil {
		return math.Max(0, math.Min(20, 20-est*1.6))
	}
	if est <= *maxFlightHours {
		return 20
	}
	return math.Max(0, 20-(est-*maxFlightHours)*8)
}

// diversityScore: 0-10, by count of distinct sample place names.
func diversityScore(candidate *recommend.Candidate) float64 {
	distinct := make(map[string]bool, len(candidate.SampleNames))
	for _, name := range candidate.SampleNames {
		distinct[name] = true
	}
	return math.Min(10, 5+float64(len(distinct))/2)
}

// likeSimilarityBonus: flat +3 when any liked profile shares the activity or
// the weather preference with the candidate. Two absent activities count as
// a shared activity.
func likeSimilarityBonus(candidate *recommend.Candidate, likedProfiles []recommend.LikedProfile) float64 {
	for _, profile := range likedProfiles {
		if sameOptionalString(profile.Activity, candidate.Activity) ||
			profile.PreferredWeather == candidate.PreferredWeather {
			return 3
		}
	}
	return 0
}

func sameOptionalString(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

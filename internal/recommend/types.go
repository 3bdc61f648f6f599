package recommend

import "strings"

// Intent classifies what a user turn is asking for.
type Intent string

const (
	// IntentDestinationOpinion: the user has a destination in mind and wants
	// an assessment of it.
	IntentDestinationOpinion Intent = "destination_opinion"

	// IntentActivityDiscovery: the user wants destinations for an activity.
	IntentActivityDiscovery Intent = "activity_based_discovery"

	// IntentConstraintDiscovery: the user wants destinations under
	// constraints (flight time, weather) without naming one.
	IntentConstraintDiscovery Intent = "constraint_based_discovery"
)

// AllowedIntents is the closed set an untrusted intent value is clamped to.
var AllowedIntents = map[Intent]bool{
	IntentDestinationOpinion:  true,
	IntentActivityDiscovery:   true,
	IntentConstraintDiscovery: true,
}

// Weather is a session-level weather preference.
type Weather string

const (
	WeatherCold         Weather = "cold"
	WeatherMild         Weather = "mild"
	WeatherWarm         Weather = "warm"
	WeatherNoPreference Weather = "no_preference"
)

// NoFlightLimit is the MaxFlightHours sentinel meaning "explicitly no limit".
const NoFlightLimit float64 = -1

// ParsedIntent is the structured extraction of one user turn.
// Created fresh per turn; immutable after normalization.
type ParsedIntent struct {
	Intent            Intent   `json:"intent"`
	Destination       *string  `json:"destination"`
	Activity          *string  `json:"activity"`
	TravelDateOrMonth *string  `json:"travel_date_or_month"`
	MaxFlightHours    *float64 `json:"max_flight_hours"`

	// QueryWeatherSignal carries an implicit weather preference expressed in
	// the query itself ("somewhere warm"), distinct from the stored session
	// preference. It overrides the stored preference for this turn only.
	QueryWeatherSignal *Weather `json:"query_weather_signal,omitempty"`

	RawText string `json:"raw_text"`
}

// HasNoFlightLimit reports whether the user explicitly asked for no
// flight-duration limit.
func (p ParsedIntent) HasNoFlightLimit() bool {
	return p.MaxFlightHours != nil && *p.MaxFlightHours < 0
}

// MentionsFlightDuration reports whether lowered text raises an explicit
// flight-duration constraint.
func MentionsFlightDuration(lowered string) bool {
	return strings.Contains(lowered, "not more than") ||
		strings.Contains(lowered, "max flight") ||
		(strings.Contains(lowered, "within") && strings.Contains(lowered, "hour"))
}

// AsksFlightDuration reports whether this turn explicitly asked a
// flight-duration question, either with a concrete value or with a
// duration-constraint phrase.
func (p ParsedIntent) AsksFlightDuration() bool {
	return p.MaxFlightHours != nil || MentionsFlightDuration(strings.ToLower(p.RawText))
}

// IsSkiing reports whether the parsed activity is skiing.
func (p ParsedIntent) IsSkiing() bool {
	return p.Activity != nil && strings.EqualFold(*p.Activity, "skiing")
}

// LikedProfile records one positively rated recommendation.
type LikedProfile struct {
	Destination      string  `json:"destination"`
	Activity         *string `json:"activity"`
	PreferredWeather Weather `json:"preferred_weather"`
}

// Candidate is one destination under evaluation for the current turn.
// Constructed from tool responses, filtered, scored, then discarded.
type Candidate struct {
	Destination      string   `json:"destination"`
	Lat              float64  `json:"lat"`
	Lon              float64  `json:"lon"`
	Activity         *string  `json:"activity"`
	PreferredWeather Weather  `json:"preferred_weather"`
	FlightHours      *float64 `json:"estimated_flight_hours"`

	// Weather signals
	MaxTemp float64 `json:"max_temp"`
	MinTemp float64 `json:"min_temp"`
	Rain    float64 `json:"rain"`

	// Place signals
	PoiCount    int      `json:"poi_count"`
	SampleNames []string `json:"sample_names"`

	// Filled by scoring
	Score          float64            `json:"score"`
	ScoreBreakdown map[string]float64 `json:"score_breakdown"`
}

// Recommendation is a scored candidate plus its user-facing detail line.
type Recommendation struct {
	Candidate
	Details string `json:"details"`
}

// Status is the outcome type of one pipeline turn.
type Status string

const (
	StatusNeedsClarification     Status = "needs_clarification"
	StatusNeedsWeatherPreference Status = "needs_weather_preference"
	StatusNoResults              Status = "no_results"
	StatusOK                     Status = "ok"
)

// PlanStep is one step of the fixed reasoning plan attached to outcomes.
type PlanStep struct {
	Name   string `json:"name"`
	Status string `json:"status"`
}

// BuildPlan returns the fixed five-step reasoning plan.
func BuildPlan() []PlanStep {
	return []PlanStep{
		{Name: "Understand", Status: "pending"},
		{Name: "CheckMissingInfo", Status: "pending"},
		{Name: "GatherData", Status: "pending"},
		{Name: "RankOptions", Status: "pending"},
		{Name: "Explain", Status: "pending"},
	}
}

// TurnResult is the structured outcome of one pipeline run.
// Exactly one Status is set per call; field presence follows the status.
type TurnResult struct {
	Status Status `json:"status"`

	// needs_clarification
	Question    string `json:"question,omitempty"`
	MissingSlot string `json:"missing_slot,omitempty"`

	// no_results
	Message string `json:"message,omitempty"`

	// ok
	Summary         string           `json:"summary,omitempty"`
	Recommendations []Recommendation `json:"recommendations,omitempty"`
	FeedbackPrompt  string           `json:"feedback_prompt,omitempty"`

	Plan   []PlanStep    `json:"plan"`
	Parsed *ParsedIntent `json:"parsed,omitempty"`
}

// ChatOutput is what one inbound chat message produces: one or more
// assistant replies and, when a full pipeline turn ran, its result.
type ChatOutput struct {
	SessionID string      `json:"session_id"`
	Replies   []string    `json:"replies"`
	Result    *TurnResult `json:"result,omitempty"`
}

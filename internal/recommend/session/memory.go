package session

import (
	"sort"
	"strings"

	"location-recommender-agent/internal/recommend"
)

// Memory holds per-conversation state. It is owned exclusively by one
// session and must never be shared across concurrent turn executions; the
// Store serializes turns per session.
type Memory struct {
	// Origin is set once via onboarding and is required before other
	// features activate. Either both fields are set or neither is.
	OriginCity    string
	OriginCountry string

	PreferredWeather recommend.Weather

	// RejectedDestinations grows monotonically; names are lowercased.
	RejectedDestinations map[string]bool

	// LikedProfiles is appended on positive feedback, in order.
	LikedProfiles []recommend.LikedProfile

	// Carry-over context for short follow-up replies.
	LastDestination       *string
	LastTravelDateOrMonth *string
	LastActivity          *string
	LastMaxFlightHours    *float64

	// Conversation-flow state.
	LastQuery               string
	LastRecommendations     []recommend.Recommendation
	PendingClarificationSlot string
	PendingWeatherQuestion  bool
	DraftQuery              string
	OnboardingPrompted      bool
}

// NewMemory creates empty session memory.
func NewMemory() *Memory {
	return &Memory{
		RejectedDestinations: make(map[string]bool),
	}
}

// SetOrigin stores the onboarded origin. Both parts are required; callers
// validate before calling so the all-or-nothing invariant holds.
func (m *Memory) SetOrigin(city, country string) {
	m.OriginCity = strings.TrimSpace(city)
	m.OriginCountry = strings.TrimSpace(country)
}

// HasOrigin reports whether onboarding completed.
func (m *Memory) HasOrigin() bool {
	return m.OriginCity != "" && m.OriginCountry != ""
}

// AddRejections records destinations the user rejected, lowercased.
func (m *Memory) AddRejections(destinations []string) {
	for _, destination := range destinations {
		m.RejectedDestinations[strings.ToLower(destination)] = true
	}
}

// IsRejected reports whether a destination was previously rejected.
func (m *Memory) IsRejected(destination string) bool {
	return m.RejectedDestinations[strings.ToLower(destination)]
}

// AddLikeProfile appends a positively rated profile.
func (m *Memory) AddLikeProfile(profile recommend.LikedProfile) {
	m.LikedProfiles = append(m.LikedProfiles, profile)
}

// RememberTurn stores the turn's slots as carry-over context for short
// follow-up replies.
func (m *Memory) RememberTurn(parsed recommend.ParsedIntent) {
	m.LastDestination = parsed.Destination
	m.LastTravelDateOrMonth = parsed.TravelDateOrMonth
	m.LastActivity = parsed.Activity
	m.LastMaxFlightHours = parsed.MaxFlightHours
}

// View returns the debug projection of this memory.
func (m *Memory) View() recommend.MemoryView {
	rejected := make([]string, 0, len(m.RejectedDestinations))
	for name := range m.RejectedDestinations {
		rejected = append(rejected, name)
	}
	sort.Strings(rejected)

	return recommend.MemoryView{
		OriginCity:           m.OriginCity,
		OriginCountry:        m.OriginCountry,
		PreferredWeather:     m.PreferredWeather,
		RejectedDestinations: rejected,
		LikedProfiles:        m.LikedProfiles,
	}
}

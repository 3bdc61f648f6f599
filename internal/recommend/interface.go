package recommend

import "context"

// UseCase defines the business logic interface for the recommendation domain.
type UseCase interface {
	// HandleMessage routes one inbound chat message through onboarding,
	// clarification/weather re-entry, feedback handling, and the full
	// recommendation pipeline for travel queries.
	// An empty sessionID starts a new session.
	HandleMessage(ctx context.Context, sessionID string, text string) (ChatOutput, error)

	// MemorySnapshot returns a debug view of one session's memory.
	MemorySnapshot(ctx context.Context, sessionID string) (MemoryView, error)
}

// MemoryView is the read-only debug projection of a session's memory.
type MemoryView struct {
	OriginCity           string         `json:"origin_city"`
	OriginCountry        string         `json:"origin_country"`
	PreferredWeather     Weather        `json:"preferred_weather"`
	RejectedDestinations []string       `json:"rejected_destinations"`
	LikedProfiles        []LikedProfile `json:"liked_profiles"`
}

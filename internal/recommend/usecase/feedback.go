package usecase

import (
	"strings"

	"location-recommender-agent/internal/recommend"
	"location-recommender-agent/internal/recommend/session"
)

// applyFeedback updates session memory from feedback on the last shown
// recommendations. It returns true when the feedback was negative and the
// options should be regenerated.
func applyFeedback(memory *session.Memory, text string) bool {
	lowered := strings.ToLower(text)

	for _, phrase := range likeFirstPhrases {
		if strings.Contains(lowered, phrase) {
			if len(memory.LastRecommendations) > 0 {
				first := memory.LastRecommendations[0]
				memory.AddLikeProfile(recommend.LikedProfile{
					Destination:      first.Destination,
					Activity:         first.Activity,
					PreferredWeather: memory.PreferredWeather,
				})
			}
			return false
		}
	}

	for _, phrase := range negativeFeedbackPhrases {
		if strings.Contains(lowered, phrase) {
			names := make([]string, 0, len(memory.LastRecommendations))
			for _, rec := range memory.LastRecommendations {
				names = append(names, rec.Destination)
			}
			memory.AddRejections(names)
			return true
		}
	}
	return false
}

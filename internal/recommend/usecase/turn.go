package usecase

import (
	"context"
	"sort"

	"location-recommender-agent/internal/recommend"
	"location-recommender-agent/internal/recommend/scoring"
	"location-recommender-agent/internal/recommend/session"
	"location-recommender-agent/internal/recommend/slots"
)

// runTurn executes one full pipeline turn: parse, fill-from-memory, slot
// gate, weather gate, candidate build, filter, score, summarize.
func (uc *implUseCase) runTurn(ctx context.Context, memory *session.Memory, text string) (recommend.TurnResult, error) {
	parsed := uc.parser.Parse(ctx, text)
	applyCarryOver(&parsed, memory)

	effectiveWeather := memory.PreferredWeather
	if parsed.QueryWeatherSignal != nil {
		effectiveWeather = *parsed.QueryWeatherSignal
	}

	if missing := slots.MissingSlots(parsed); len(missing) > 0 {
		return recommend.TurnResult{
			Status:      recommend.StatusNeedsClarification,
			Question:    slots.NextClarifyingQuestion(missing),
			MissingSlot: missing[0],
			Plan:        recommend.BuildPlan(),
			Parsed:      &parsed,
		}, nil
	}

	if slots.ShouldAskWeatherPreference(parsed, effectiveWeather) {
		return recommend.TurnResult{
			Status:   recommend.StatusNeedsWeatherPreference,
			Question: msgWeatherQuestion,
			Plan:     recommend.BuildPlan(),
			Parsed:   &parsed,
		}, nil
	}

	candidates, err := uc.buildCandidates(ctx, parsed, memory, effectiveWeather)
	if err != nil {
		return recommend.TurnResult{}, err
	}

	// The -1 sentinel means "no limit": it must neither filter nor
	// penalize candidates.
	maxFlightHours := parsed.MaxFlightHours
	if parsed.HasNoFlightLimit() {
		maxFlightHours = nil
	}

	candidates = filterCandidates(candidates, memory, maxFlightHours)
	if len(candidates) == 0 {
		return recommend.TurnResult{
			Status:  recommend.StatusNoResults,
			Message: msgNoResults,
			Plan:    recommend.BuildPlan(),
			Parsed:  &parsed,
		}, nil
	}

	season := scoring.SeasonFromDateOrMonth(derefString(parsed.TravelDateOrMonth))
	for i := range candidates {
		scoring.ScoreCandidate(&candidates[i], parsed.Activity, effectiveWeather, maxFlightHours, season, memory.LikedProfiles)
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})
	if len(candidates) > topRecommendations {
		candidates = candidates[:topRecommendations]
	}

	recommendations := make([]recommend.Recommendation, 0, len(candidates))
	for _, candidate := range candidates {
		recommendations = append(recommendations, recommend.Recommendation{
			Candidate: candidate,
			Details:   detailLine(candidate),
		})
	}

	summary := uc.buildSummary(ctx, parsed, recommendations)
	memory.RememberTurn(parsed)

	return recommend.TurnResult{
		Status:          recommend.StatusOK,
		Summary:         summary,
		Recommendations: recommendations,
		FeedbackPrompt:  msgFeedbackPrompt,
		Plan:            recommend.BuildPlan(),
		Parsed:          &parsed,
	}, nil
}

// applyCarryOver lets a short follow-up that only supplies a date or month
// inherit the destination from the previous turn.
func applyCarryOver(parsed *recommend.ParsedIntent, memory *session.Memory) {
	if tokenCount(parsed.RawText) > carryOverMaxTokens {
		return
	}
	if parsed.TravelDateOrMonth == nil || parsed.Destination != nil ||
		parsed.Activity != nil || parsed.MaxFlightHours != nil {
		return
	}
	if memory.LastDestination == nil || *memory.LastDestination == "" {
		return
	}
	parsed.Destination = memory.LastDestination
	if parsed.Intent == recommend.IntentConstraintDiscovery {
		parsed.Intent = recommend.IntentDestinationOpinion
	}
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

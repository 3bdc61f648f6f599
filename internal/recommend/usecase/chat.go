package usecase

import (
	"context"
	"fmt"
	"strings"

	"location-recommender-agent/internal/recommend"
)

// HandleMessage routes one inbound chat message through onboarding,
// acknowledgement, feedback, clarification re-entry and the pipeline. It
// always answers with at least one reply; provider failures become a
// retryable chat message rather than an error.
func (uc *implUseCase) HandleMessage(ctx context.Context, sessionID, text string) (recommend.ChatOutput, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return recommend.ChatOutput{}, recommend.ErrEmptyMessage
	}

	sessionID, memory, release := uc.sessions.Acquire(sessionID)
	defer release()

	out := recommend.ChatOutput{SessionID: sessionID}

	if !memory.HasOrigin() {
		out.Replies = append(out.Replies, uc.handleOnboarding(ctx, memory, text))
		return out, nil
	}

	if isShortAcknowledgement(text) {
		memory.PendingClarificationSlot = ""
		memory.PendingWeatherQuestion = false
		memory.DraftQuery = ""
		out.Replies = append(out.Replies, msgAcknowledged)
		return out, nil
	}

	// A fresh travel query abandons a pending clarification, unless the
	// message still reads like an answer to the pending slot.
	if memory.PendingClarificationSlot != "" &&
		looksLikeNewTravelQuery(text) &&
		!isClarificationLikeAnswer(text, memory.PendingClarificationSlot) {
		memory.PendingClarificationSlot = ""
		memory.DraftQuery = ""
	}

	if len(memory.LastRecommendations) > 0 && isFeedbackText(text) {
		regenerate := applyFeedback(memory, text)
		out.Replies = append(out.Replies, msgFeedbackThanks)
		if !regenerate {
			return out, nil
		}
		if memory.LastQuery == "" {
			out.Replies = append(out.Replies, msgRegenerateBlocked)
			return out, nil
		}
		result, err := uc.runTurn(ctx, memory, memory.LastQuery)
		if err != nil {
			uc.l.Errorf(ctx, "recommend.usecase.HandleMessage.regenerate: %v", err)
			out.Replies = append(out.Replies, msgProviderIssue)
			return out, nil
		}
		if result.Status == recommend.StatusOK {
			memory.LastRecommendations = result.Recommendations
			out.Replies = append(out.Replies, msgRegenerated, result.Summary, result.FeedbackPrompt)
		} else {
			out.Replies = append(out.Replies, msgRegenerateBlocked)
		}
		out.Result = &result
		return out, nil
	}

	if memory.PendingClarificationSlot != "" {
		text = fmt.Sprintf("%s | %s: %s", memory.DraftQuery, memory.PendingClarificationSlot, text)
		memory.PendingClarificationSlot = ""
		memory.DraftQuery = ""
	} else if memory.PendingWeatherQuestion {
		if !captureWeatherPreference(memory, text) {
			out.Replies = append(out.Replies, msgWeatherRetry)
			return out, nil
		}
		memory.PendingWeatherQuestion = false
		out.Replies = append(out.Replies, msgWeatherSaved)
		if memory.DraftQuery == "" {
			return out, nil
		}
		text = memory.DraftQuery
		memory.DraftQuery = ""
	}

	result, err := uc.runTurn(ctx, memory, text)
	if err != nil {
		uc.l.Errorf(ctx, "recommend.usecase.HandleMessage.runTurn: %v", err)
		out.Replies = append(out.Replies, msgProviderIssue)
		return out, nil
	}

	switch result.Status {
	case recommend.StatusNeedsClarification:
		memory.PendingClarificationSlot = result.MissingSlot
		memory.DraftQuery = text
		out.Replies = append(out.Replies, result.Question)
	case recommend.StatusNeedsWeatherPreference:
		memory.PendingWeatherQuestion = true
		memory.DraftQuery = text
		out.Replies = append(out.Replies, result.Question)
	case recommend.StatusNoResults:
		out.Replies = append(out.Replies, result.Message)
	case recommend.StatusOK:
		memory.LastRecommendations = result.Recommendations
		memory.LastQuery = text
		out.Replies = append(out.Replies, result.Summary)
		for _, rec := range result.Recommendations {
			out.Replies = append(out.Replies, rec.Details)
		}
		out.Replies = append(out.Replies, result.FeedbackPrompt)
	}
	out.Result = &result
	return out, nil
}

// MemorySnapshot returns the durable preference state of a session for
// debugging and inspection.
func (uc *implUseCase) MemorySnapshot(ctx context.Context, sessionID string) (recommend.MemoryView, error) {
	memory, release, ok := uc.sessions.Peek(sessionID)
	if !ok {
		return recommend.MemoryView{}, recommend.ErrSessionNotFound
	}
	defer release()
	return memory.View(), nil
}

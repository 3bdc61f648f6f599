package usecase

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"location-recommender-agent/internal/recommend"
	"location-recommender-agent/internal/recommend/slots"
)

func TestHandleMessageEmpty(t *testing.T) {
	uc, _ := newTestUseCase()

	_, err := uc.HandleMessage(context.Background(), "", "   ")
	if !errors.Is(err, recommend.ErrEmptyMessage) {
		t.Fatalf("err = %v, want ErrEmptyMessage", err)
	}
}

func TestOnboardingAcceptsVerifiedOrigin(t *testing.T) {
	uc, _ := newTestUseCase()

	out, err := uc.HandleMessage(context.Background(), "", "Tel Aviv, Israel")
	if err != nil {
		t.Fatal(err)
	}
	if out.SessionID == "" {
		t.Fatal("expected a session id")
	}
	if len(out.Replies) != 1 || !strings.Contains(out.Replies[0], "saved your origin") {
		t.Fatalf("unexpected onboarding replies: %v", out.Replies)
	}

	view, err := uc.MemorySnapshot(context.Background(), out.SessionID)
	if err != nil {
		t.Fatal(err)
	}
	if view.OriginCity != "Tel Aviv" || view.OriginCountry != "Israel" {
		t.Errorf("origin = %q, %q", view.OriginCity, view.OriginCountry)
	}
}

func TestOnboardingRejectionMessages(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"missing comma", "just a city", msgOnboardingBadFormat},
		{"empty country part", "Paris, ", msgOnboardingEmptyParts},
		{"no confident match", "Springfield, Oz", msgOnboardingLowConfidence},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, _ := newTestUseCase()
			out, err := uc.HandleMessage(context.Background(), "", tt.text)
			if err != nil {
				t.Fatal(err)
			}
			if len(out.Replies) != 1 || out.Replies[0] != tt.want {
				t.Fatalf("replies = %v, want %q", out.Replies, tt.want)
			}
		})
	}
}

func TestOnboardingAcceptsLongCountryName(t *testing.T) {
	uc, _ := newTestUseCase()

	out, err := uc.HandleMessage(context.Background(), "", "Washington, United States of America")
	if err != nil {
		t.Fatal(err)
	}
	if len(out.Replies) != 1 || !strings.Contains(out.Replies[0], "saved your origin") {
		t.Fatalf("expected acceptance, got: %v", out.Replies)
	}
}

func TestDiscoveryFlowThroughWeatherGate(t *testing.T) {
	uc, _ := newTestUseCase()
	ctx := context.Background()

	sessionID, err := onboard(uc)
	if err != nil {
		t.Fatal(err)
	}

	// A dated discovery query with no flight-duration question goes
	// straight to the weather gate.
	out, err := uc.HandleMessage(ctx, sessionID, "Where should I go in July?")
	if err != nil {
		t.Fatal(err)
	}
	if out.Result == nil || out.Result.Status != recommend.StatusNeedsWeatherPreference {
		t.Fatalf("expected needs_weather_preference, got %+v", out.Result)
	}
	if out.Replies[0] != msgWeatherQuestion {
		t.Errorf("reply = %q, want the weather question", out.Replies[0])
	}

	// Answering the weather question replays the drafted query to completion.
	out, err = uc.HandleMessage(ctx, sessionID, "mild please")
	if err != nil {
		t.Fatal(err)
	}
	if out.Result == nil || out.Result.Status != recommend.StatusOK {
		t.Fatalf("expected ok, got %+v", out.Result)
	}
	if out.Replies[0] != msgWeatherSaved {
		t.Errorf("first reply = %q, want the weather-saved ack", out.Replies[0])
	}
	if len(out.Result.Recommendations) != topRecommendations {
		t.Fatalf("got %d recommendations, want %d", len(out.Result.Recommendations), topRecommendations)
	}
	if !strings.Contains(out.Result.Summary, "Best current match is") {
		t.Errorf("expected templated fallback summary, got %q", out.Result.Summary)
	}
	if out.Result.FeedbackPrompt != msgFeedbackPrompt {
		t.Errorf("FeedbackPrompt = %q", out.Result.FeedbackPrompt)
	}

	view, err := uc.MemorySnapshot(ctx, sessionID)
	if err != nil {
		t.Fatal(err)
	}
	if view.PreferredWeather != recommend.WeatherMild {
		t.Errorf("PreferredWeather = %s, want mild", view.PreferredWeather)
	}
}

func TestFlightDurationQuestionPendsClarification(t *testing.T) {
	uc, _ := newTestUseCase()
	ctx := context.Background()

	sessionID, err := onboard(uc)
	if err != nil {
		t.Fatal(err)
	}

	// Raising a duration constraint without a number makes the hours slot
	// required.
	out, err := uc.HandleMessage(ctx, sessionID, "Where should I go in July? Not more than a short flight.")
	if err != nil {
		t.Fatal(err)
	}
	if out.Result == nil || out.Result.Status != recommend.StatusNeedsClarification {
		t.Fatalf("expected needs_clarification, got %+v", out.Result)
	}
	if out.Result.MissingSlot != slots.SlotMaxFlightHours {
		t.Errorf("MissingSlot = %s, want max_flight_hours", out.Result.MissingSlot)
	}

	// The no-limit answer satisfies the slot; next gate is the weather
	// question.
	out, err = uc.HandleMessage(ctx, sessionID, "no limit")
	if err != nil {
		t.Fatal(err)
	}
	if out.Result == nil || out.Result.Status != recommend.StatusNeedsWeatherPreference {
		t.Fatalf("expected needs_weather_preference, got %+v", out.Result)
	}
}

func TestNewTravelQueryClearsPendingClarification(t *testing.T) {
	uc, geocoder := newTestUseCase()
	ctx := context.Background()

	sessionID, err := onboard(uc)
	if err != nil {
		t.Fatal(err)
	}

	out, err := uc.HandleMessage(ctx, sessionID, "Where should I go?")
	if err != nil {
		t.Fatal(err)
	}
	if out.Result == nil || out.Result.Status != recommend.StatusNeedsClarification {
		t.Fatalf("expected needs_clarification, got %+v", out.Result)
	}
	if out.Result.MissingSlot != slots.SlotTravelDate {
		t.Errorf("MissingSlot = %s, want travel_date_or_month", out.Result.MissingSlot)
	}

	// A full new travel query is not folded into the stale slot tag; it
	// runs as a fresh turn.
	out, err = uc.HandleMessage(ctx, sessionID, "activity: skiing | travel_date_or_month: december")
	if err != nil {
		t.Fatal(err)
	}
	if out.Result == nil || out.Result.Status != recommend.StatusOK {
		t.Fatalf("expected ok for the fresh query, got %+v", out.Result)
	}
	if out.Result.Parsed.Intent != recommend.IntentActivityDiscovery {
		t.Errorf("Intent = %s, want activity_based_discovery", out.Result.Parsed.Intent)
	}
	if out.Result.Parsed.TravelDateOrMonth == nil || *out.Result.Parsed.TravelDateOrMonth != "december" {
		t.Errorf("TravelDateOrMonth = %v, want december", out.Result.Parsed.TravelDateOrMonth)
	}
	for _, call := range geocoder.calls {
		if strings.Contains(call, "|") || strings.Contains(call, "Where") {
			t.Errorf("stale draft leaked into geocoding query %q", call)
		}
	}
}

func TestDateAnswerKeepsPendingClarification(t *testing.T) {
	uc, _ := newTestUseCase()
	ctx := context.Background()

	sessionID, err := onboard(uc)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := uc.HandleMessage(ctx, sessionID, "Where should I go?"); err != nil {
		t.Fatal(err)
	}

	// A bare month answers the pending date slot even though it is also a
	// travel trigger word.
	out, err := uc.HandleMessage(ctx, sessionID, "december")
	if err != nil {
		t.Fatal(err)
	}
	if out.Result == nil || out.Result.Status != recommend.StatusNeedsWeatherPreference {
		t.Fatalf("expected needs_weather_preference after the date answer, got %+v", out.Result)
	}
}

func TestSkiQueryUsesSkiSeedsAndSkipsWeatherGate(t *testing.T) {
	uc, geocoder := newTestUseCase()
	ctx := context.Background()

	sessionID, err := onboard(uc)
	if err != nil {
		t.Fatal(err)
	}

	out, err := uc.HandleMessage(ctx, sessionID, "activity: skiing | travel_date_or_month: december")
	if err != nil {
		t.Fatal(err)
	}
	if out.Result == nil || out.Result.Status != recommend.StatusOK {
		t.Fatalf("expected ok without a weather question, got %+v", out.Result)
	}
	if out.Result.Parsed.Intent != recommend.IntentActivityDiscovery {
		t.Errorf("Intent = %s, want activity_based_discovery", out.Result.Parsed.Intent)
	}

	seeded := strings.Join(geocoder.calls, "|")
	for _, city := range skiSeedCities {
		if !strings.Contains(seeded, city) {
			t.Errorf("ski seed %q was not geocoded; calls: %v", city, geocoder.calls)
		}
	}
}

func TestNegativeFeedbackRejectsAndRegenerates(t *testing.T) {
	uc, _ := newTestUseCase()
	ctx := context.Background()

	sessionID, err := onboard(uc)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := uc.HandleMessage(ctx, sessionID, "Where should I go in July?"); err != nil {
		t.Fatal(err)
	}
	out, err := uc.HandleMessage(ctx, sessionID, "mild please")
	if err != nil {
		t.Fatal(err)
	}
	firstBatch := make(map[string]bool)
	for _, rec := range out.Result.Recommendations {
		firstBatch[strings.ToLower(rec.Destination)] = true
	}

	out, err = uc.HandleMessage(ctx, sessionID, "I didn't like these, give me new options")
	if err != nil {
		t.Fatal(err)
	}
	if out.Replies[0] != msgFeedbackThanks {
		t.Errorf("first reply = %q, want the feedback ack", out.Replies[0])
	}
	if out.Result == nil || out.Result.Status != recommend.StatusOK {
		t.Fatalf("expected regenerated ok result, got %+v", out.Result)
	}
	for _, rec := range out.Result.Recommendations {
		if firstBatch[strings.ToLower(rec.Destination)] {
			t.Errorf("rejected destination %q reappeared", rec.Destination)
		}
	}

	view, err := uc.MemorySnapshot(ctx, sessionID)
	if err != nil {
		t.Fatal(err)
	}
	if len(view.RejectedDestinations) != len(firstBatch) {
		t.Errorf("rejections = %v, want the full first batch", view.RejectedDestinations)
	}
}

func TestPositiveFeedbackStoresLikeProfile(t *testing.T) {
	uc, _ := newTestUseCase()
	ctx := context.Background()

	sessionID, err := onboard(uc)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := uc.HandleMessage(ctx, sessionID, "Where should I go in July?"); err != nil {
		t.Fatal(err)
	}
	if _, err := uc.HandleMessage(ctx, sessionID, "mild please"); err != nil {
		t.Fatal(err)
	}

	out, err := uc.HandleMessage(ctx, sessionID, "I like the first one")
	if err != nil {
		t.Fatal(err)
	}
	if len(out.Replies) != 1 || out.Replies[0] != msgFeedbackThanks {
		t.Errorf("positive feedback replies = %v", out.Replies)
	}

	view, err := uc.MemorySnapshot(ctx, sessionID)
	if err != nil {
		t.Fatal(err)
	}
	if len(view.LikedProfiles) != 1 {
		t.Fatalf("LikedProfiles = %v, want one entry", view.LikedProfiles)
	}
}

func TestMemorySnapshotDuringConcurrentTurns(t *testing.T) {
	uc, _ := newTestUseCase()
	ctx := context.Background()

	sessionID, err := onboard(uc)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := uc.HandleMessage(ctx, sessionID, "Where should I go in July?"); err != nil {
		t.Fatal(err)
	}
	if _, err := uc.HandleMessage(ctx, sessionID, "mild please"); err != nil {
		t.Fatal(err)
	}

	// Snapshot reads must serialize against turns mutating the same
	// session memory.
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			if _, err := uc.HandleMessage(ctx, sessionID, "not good, give me new options"); err != nil {
				t.Errorf("HandleMessage: %v", err)
			}
		}()
		go func() {
			defer wg.Done()
			if _, err := uc.MemorySnapshot(ctx, sessionID); err != nil {
				t.Errorf("MemorySnapshot: %v", err)
			}
		}()
	}
	wg.Wait()
}

func TestAcknowledgementClearsPendingState(t *testing.T) {
	uc, _ := newTestUseCase()
	ctx := context.Background()

	sessionID, err := onboard(uc)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := uc.HandleMessage(ctx, sessionID, "Where should I go in July?"); err != nil {
		t.Fatal(err)
	}

	out, err := uc.HandleMessage(ctx, sessionID, "thanks!")
	if err != nil {
		t.Fatal(err)
	}
	if len(out.Replies) != 1 || out.Replies[0] != msgAcknowledged {
		t.Errorf("replies = %v, want the acknowledgement", out.Replies)
	}

	// A fresh complete query runs a full turn instead of re-entering the
	// abandoned clarification.
	out, err = uc.HandleMessage(ctx, sessionID, "activity: skiing | travel_date_or_month: december")
	if err != nil {
		t.Fatal(err)
	}
	if out.Result == nil || out.Result.Status != recommend.StatusOK {
		t.Fatalf("expected ok after reset, got %+v", out.Result)
	}
}

func TestMemorySnapshotUnknownSession(t *testing.T) {
	uc, _ := newTestUseCase()

	_, err := uc.MemorySnapshot(context.Background(), "missing")
	if !errors.Is(err, recommend.ErrSessionNotFound) {
		t.Fatalf("err = %v, want ErrSessionNotFound", err)
	}
}

package intent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"location-recommender-agent/internal/recommend"
	"location-recommender-agent/pkg/groq"
	pkgLog "location-recommender-agent/pkg/log"
)

// Parser converts raw user text into a ParsedIntent. Rule extraction always
// runs first; the LLM refinement is best-effort and any failure falls back
// to the rule-based result. Parse never fails outward.
type Parser struct {
	llm groq.IGroq
	l   pkgLog.Logger
}

// New creates a new intent parser.
func New(llm groq.IGroq, l pkgLog.Logger) *Parser {
	return &Parser{llm: llm, l: l}
}

// Parse extracts structured travel intent from one user turn.
func (p *Parser) Parse(ctx context.Context, userText string) recommend.ParsedIntent {
	parsed := parseWithRules(userText)

	merged, err := p.refine(ctx, userText, parsed)
	if err != nil {
		p.l.Warnf(ctx, "intent: LLM refinement failed, using rule-based parse: %v", err)
		return normalize(parsed)
	}
	return normalize(merged)
}

// llmIntentPayload is the refinement reply shape.
type llmIntentPayload struct {
	Intent            *string  `json:"intent"`
	Destination       *string  `json:"destination"`
	Activity          *string  `json:"activity"`
	TravelDateOrMonth *string  `json:"travel_date_or_month"`
	MaxFlightHours    *float64 `json:"max_flight_hours"`
}

// refine calls the LLM and merges its reply over the rule-based parse.
func (p *Parser) refine(ctx context.Context, userText string, parsed recommend.ParsedIntent) (recommend.ParsedIntent, error) {
	text, err := p.llm.GenerateJSON(ctx, buildIntentPrompt(userText), "intent_parser")
	if err != nil {
		return recommend.ParsedIntent{}, err
	}

	var payload llmIntentPayload
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		return recommend.ParsedIntent{}, fmt.Errorf("intent: malformed refinement reply: %w", err)
	}

	return mergeParsed(parsed, payload), nil
}

// mergeParsed applies the field-by-field override rule: an LLM-provided
// non-null valid value wins over the rule-based one, field by field. Pure
// function over two same-shaped records.
func mergeParsed(rule recommend.ParsedIntent, llm llmIntentPayload) recommend.ParsedIntent {
	merged := rule

	if intent := sanitizeIntent(llm.Intent); intent != nil {
		merged.Intent = *intent
	}
	if llm.Destination != nil && *llm.Destination != "" {
		merged.Destination = llm.Destination
	}
	if llm.Activity != nil && *llm.Activity != "" {
		merged.Activity = llm.Activity
	}
	if llm.TravelDateOrMonth != nil && *llm.TravelDateOrMonth != "" {
		merged.TravelDateOrMonth = llm.TravelDateOrMonth
	}
	if llm.MaxFlightHours != nil {
		merged.MaxFlightHours = llm.MaxFlightHours
	}
	return merged
}

// sanitizeIntent accepts only values from the allowed enum: an exact match,
// or an enum value found as a substring. Anything else is discarded.
func sanitizeIntent(value *string) *recommend.Intent {
	if value == nil {
		return nil
	}
	lowered := strings.ToLower(strings.TrimSpace(*value))
	if recommend.AllowedIntents[recommend.Intent(lowered)] {
		intent := recommend.Intent(lowered)
		return &intent
	}
	for intent := range recommend.AllowedIntents {
		if strings.Contains(lowered, string(intent)) {
			match := intent
			return &match
		}
	}
	return nil
}

// normalize applies the post-merge guardrails.
func normalize(parsed recommend.ParsedIntent) recommend.ParsedIntent {
	// A known destination with no flight-time constraint should not take the
	// constraint path: that would trigger an irrelevant max-hours question.
	if parsed.Intent == recommend.IntentConstraintDiscovery &&
		parsed.Destination != nil && parsed.MaxFlightHours == nil {
		parsed.Intent = recommend.IntentDestinationOpinion
	}

	if parsed.HasNoFlightLimit() {
		parsed.Intent = recommend.IntentConstraintDiscovery
	}

	// Re-derive the query weather signal from raw text; the merge step may
	// have replaced the rule parse wholesale.
	if parsed.QueryWeatherSignal == nil {
		parsed.QueryWeatherSignal = weatherSignalFromQuery(strings.ToLower(parsed.RawText))
	}
	// Legacy tag encoding, kept for payload compatibility; consumers read
	// QueryWeatherSignal directly.
	if parsed.QueryWeatherSignal != nil && parsed.Activity == nil {
		parsed.Activity = ptr("weather_preference:" + string(*parsed.QueryWeatherSignal))
	}

	if parsed.Destination != nil && isGenericDestinationPhrase(*parsed.Destination) {
		parsed.Destination = nil
		if parsed.Intent == recommend.IntentDestinationOpinion {
			parsed.Intent = recommend.IntentConstraintDiscovery
		}
	}

	if !recommend.AllowedIntents[parsed.Intent] {
		parsed.Intent = recommend.IntentDestinationOpinion
	}
	return parsed
}

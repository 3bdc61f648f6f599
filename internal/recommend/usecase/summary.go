package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"location-recommender-agent/internal/recommend"
	"location-recommender-agent/pkg/groq"
)

type summaryPayload struct {
	Summary string `json:"summary"`
}

// buildSummary asks the LLM for a short natural-language summary of the
// ranked options. Any LLM failure falls back to a fixed template so the
// turn still completes.
func (uc *implUseCase) buildSummary(ctx context.Context, parsed recommend.ParsedIntent, recommendations []recommend.Recommendation) string {
	fallback := fmt.Sprintf(summaryFallbackTemplate, recommendations[0].Destination, recommendations[0].Score)

	prompt := buildSummaryPrompt(parsed, recommendations)
	raw, err := uc.llm.GenerateJSON(ctx, prompt, "final_summary")
	if err != nil {
		uc.l.Warnf(ctx, "recommend.usecase.buildSummary.GenerateJSON: %v", err)
		return fallback
	}
	cleaned, err := groq.ExtractJSON(raw)
	if err != nil {
		uc.l.Warnf(ctx, "recommend.usecase.buildSummary.ExtractJSON: %v", err)
		return fallback
	}
	var payload summaryPayload
	if err := json.Unmarshal([]byte(cleaned), &payload); err != nil || strings.TrimSpace(payload.Summary) == "" {
		return fallback
	}
	return strings.TrimSpace(payload.Summary)
}

func buildSummaryPrompt(parsed recommend.ParsedIntent, recommendations []recommend.Recommendation) string {
	var sb strings.Builder
	sb.WriteString("ROLE:\nYou are a travel assistant summarizing ranked destination options.\n\n")
	sb.WriteString("DATA:\n")
	sb.WriteString(fmt.Sprintf("- user_query: %q\n", parsed.RawText))
	for i, rec := range recommendations {
		sb.WriteString(fmt.Sprintf("- option_%d: %s (score %.1f", i+1, rec.Destination, rec.Score))
		if rec.FlightHours != nil {
			sb.WriteString(fmt.Sprintf(", ~%.1f flight hours", *rec.FlightHours))
		}
		sb.WriteString(fmt.Sprintf(", avg temp %.1f°C, rain %.1fmm)\n", (rec.MaxTemp+rec.MinTemp)/2, rec.Rain))
	}
	sb.WriteString("\nTASK:\n")
	sb.WriteString("Write 2-3 sentences recommending the best option and briefly contrasting the alternatives. Be concrete, no marketing fluff.\n\n")
	sb.WriteString("RESPONSE_FORMAT:\n")
	sb.WriteString(`Return only a JSON object: {"summary": "<your summary>"}`)
	sb.WriteString("\n")
	return sb.String()
}

// detailLine renders the one-line human description attached to each
// recommendation.
func detailLine(candidate recommend.Candidate) string {
	avg := (candidate.MaxTemp + candidate.MinTemp) / 2

	var sky string
	switch {
	case candidate.Rain >= 4:
		sky = "rainy"
	case candidate.Rain >= 1.5:
		sky = "cloudy"
	case avg >= 12:
		sky = "sunny"
	default:
		sky = "partly cloudy"
	}

	samples := candidate.SampleNames
	if len(samples) == 0 {
		samples = genericSampleActivities
	}
	if len(samples) > 3 {
		samples = samples[:3]
	}

	return fmt.Sprintf("%s: avg %.1f°C, %s. Nearby: %s.",
		candidate.Destination, avg, sky, strings.Join(samples, ", "))
}

package intent

import (
	"encoding/json"
	"fmt"

	"location-recommender-agent/internal/recommend"
)

// buildIntentPrompt asks the LLM to classify intent and extract slots,
// responding with a single JSON object.
func buildIntentPrompt(userText string) string {
	payload := map[string]interface{}{
		"user_text": userText,
		"allowed_intents": []recommend.Intent{
			recommend.IntentDestinationOpinion,
			recommend.IntentActivityDiscovery,
			recommend.IntentConstraintDiscovery,
		},
	}
	data, _ := json.MarshalIndent(payload, "", "  ")

	return fmt.Sprintf(`ROLE:
You are an intent and slot extractor for a travel assistant.

DATA:
%s

TASK:
Classify the intent and extract destination, activity, travel_date_or_month, and max_flight_hours if present.

RESPONSE_FORMAT (JSON ONLY):
{
  "intent": "destination_opinion|activity_based_discovery|constraint_based_discovery",
  "destination": "string|null",
  "activity": "string|null",
  "travel_date_or_month": "string|null",
  "max_flight_hours": "number|null"
}`, string(data))
}

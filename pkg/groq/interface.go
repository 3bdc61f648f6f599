package groq

import "context"

// IGroq defines the interface for the Groq LLM client.
// Implementations are safe for concurrent use.
type IGroq interface {
	// GenerateJSON sends a prompt and returns the single JSON object found
	// in the completion. purposeTag labels the call for logging only.
	GenerateJSON(ctx context.Context, prompt string, purposeTag string) (string, error)

	// Model returns the configured model name.
	Model() string
}

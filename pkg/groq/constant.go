package groq

import "time"

const (
	// DefaultBaseURL is the default Groq OpenAI-compatible API endpoint
	DefaultBaseURL = "https://api.groq.com/openai/v1"

	// DefaultModel is the default model to use
	DefaultModel = "llama-3.1-8b-instant"

	// DefaultTimeout is the default HTTP client timeout
	DefaultTimeout = 60 * time.Second

	// GenerationTemperature is fixed low for deterministic JSON output
	GenerationTemperature = 0.1
)

// fallbackModels are tried in order when the configured model is not found.
var fallbackModels = []string{
	"llama-3.1-8b-instant",
	"llama-3.3-70b-versatile",
}

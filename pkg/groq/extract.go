package groq

import (
	"encoding/json"
	"errors"
	"strings"
)

// ErrNoJSON is returned when the completion contains no valid JSON object.
var ErrNoJSON = errors.New("groq: no valid JSON object in completion")

// ExtractJSON pulls the single JSON object out of an LLM completion.
// Code-fence markers are stripped and the slice between the first '{' and
// the last '}' is validated before being returned.
func ExtractJSON(text string) (string, error) {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```") {
		text = strings.Trim(text, "`")
		text = strings.TrimSpace(strings.Replace(text, "json", "", 1))
	}

	first := strings.Index(text, "{")
	last := strings.LastIndex(text, "}")
	if first < 0 || last <= first {
		return "", ErrNoJSON
	}

	candidate := text[first : last+1]
	if !json.Valid([]byte(candidate)) {
		return "", ErrNoJSON
	}
	return candidate, nil
}

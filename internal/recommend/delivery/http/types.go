package http

// ChatRequest is the body of POST /api/v1/chat. SessionID is optional; a
// new session is created when it is empty or unknown.
type ChatRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message" binding:"required"`
}

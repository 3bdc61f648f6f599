package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"location-recommender-agent/internal/recommend"
)

type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, args ...any)                 {}
func (m *mockLogger) Debugf(ctx context.Context, format string, args ...any) {}
func (m *mockLogger) Info(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Infof(ctx context.Context, format string, args ...any)  {}
func (m *mockLogger) Warn(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Warnf(ctx context.Context, format string, args ...any)  {}
func (m *mockLogger) Error(ctx context.Context, args ...any)                 {}
func (m *mockLogger) Errorf(ctx context.Context, format string, args ...any) {}
func (m *mockLogger) Fatal(ctx context.Context, args ...any)                 {}
func (m *mockLogger) Fatalf(ctx context.Context, format string, args ...any) {}

type mockUseCase struct {
	output recommend.ChatOutput
	view   recommend.MemoryView
	err    error
}

func (m *mockUseCase) HandleMessage(ctx context.Context, sessionID, text string) (recommend.ChatOutput, error) {
	return m.output, m.err
}

func (m *mockUseCase) MemorySnapshot(ctx context.Context, sessionID string) (recommend.MemoryView, error) {
	return m.view, m.err
}

func newTestRouter(uc recommend.UseCase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := New(&mockLogger{}, uc)
	router := gin.New()
	router.POST("/api/v1/chat", h.HandleChat)
	router.GET("/api/v1/sessions/:id/memory", h.HandleMemory)
	return router
}

func TestHandleChat(t *testing.T) {
	router := newTestRouter(&mockUseCase{
		output: recommend.ChatOutput{
			SessionID: "s-1",
			Replies:   []string{"hello"},
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/chat",
		strings.NewReader(`{"message": "hi"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", w.Code, w.Body.String())
	}

	var body struct {
		ErrorCode int                  `json:"error_code"`
		Data      recommend.ChatOutput `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.ErrorCode != 0 || body.Data.SessionID != "s-1" {
		t.Errorf("unexpected envelope: %+v", body)
	}
}

func TestHandleChatRejectsMissingMessage(t *testing.T) {
	router := newTestRouter(&mockUseCase{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/chat", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestHandleMemoryNotFound(t *testing.T) {
	router := newTestRouter(&mockUseCase{err: recommend.ErrSessionNotFound})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/sessions/nope/memory", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

package groq

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
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

func completionBody(content string) Response {
	return Response{
		Choices: []Choice{
			{Message: Message{Role: "assistant", Content: content}},
		},
	}
}

func TestGenerateJSONNoCredentials(t *testing.T) {
	client := New(Config{}, &mockLogger{})

	_, err := client.GenerateJSON(context.Background(), "prompt", "test")
	if err != ErrNoCredentials {
		t.Fatalf("expected ErrNoCredentials, got %v", err)
	}
}

func TestGenerateJSONModelFallback(t *testing.T) {
	var calledModels []string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req Request
		json.NewDecoder(r.Body).Decode(&req)
		calledModels = append(calledModels, req.Model)

		if req.Model == "dead-model" {
			var errResp ErrorResponse
			errResp.Error.Message = "model dead-model does not exist"
			errResp.Error.Code = "model_not_found"
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(errResp)
			return
		}
		json.NewEncoder(w).Encode(completionBody(`{"ok": true}`))
	}))
	defer ts.Close()

	client := New(Config{APIKey: "test-key", Model: "dead-model"}, &mockLogger{})
	client.SetBaseURL(ts.URL)

	got, err := client.GenerateJSON(context.Background(), "prompt", "test")
	if err != nil {
		t.Fatalf("GenerateJSON failed: %v", err)
	}
	if got != `{"ok": true}` {
		t.Errorf("unexpected completion: %q", got)
	}
	if len(calledModels) < 2 || calledModels[0] != "dead-model" {
		t.Errorf("expected fallback after dead-model, called: %v", calledModels)
	}
}

func TestGenerateJSONNonModelErrorIsFatal(t *testing.T) {
	calls := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error": {"message": "rate limit exceeded"}}`))
	}))
	defer ts.Close()

	client := New(Config{APIKey: "test-key"}, &mockLogger{})
	client.SetBaseURL(ts.URL)

	if _, err := client.GenerateJSON(context.Background(), "prompt", "test"); err == nil {
		t.Fatal("expected error")
	}
	if calls != 1 {
		t.Errorf("rate-limit error should not trigger fallback, got %d calls", calls)
	}
}

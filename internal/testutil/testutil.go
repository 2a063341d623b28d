// Package testutil provides shared helpers for tests: a throwaway sqlite
// database and a fake chat-completions upstream.
package testutil

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"

	"gorm.io/gorm"

	"alfredoptarigan/job-project-generator/internal/config"
)

// NewTestDB opens a migrated sqlite database under t.TempDir and closes it on cleanup.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	cfg := &config.Config{
		Server:   config.ServerConfig{Env: "test"},
		Database: config.DatabaseConfig{Driver: config.DriverSQLite, Path: filepath.Join(t.TempDir(), "test.db")},
	}
	db, err := config.InitDatabase(cfg)
	if err != nil {
		t.Fatalf("InitDatabase: %v", err)
	}
	t.Cleanup(func() { _ = config.CloseDatabase(db) })
	return db
}

// ChatServer is a fake chat-completions endpoint. It records every request it receives.
type ChatServer struct {
	*httptest.Server
	calls atomic.Int64
	last  atomic.Pointer[RecordedRequest]
}

// RecordedRequest is the decoded body and auth header of one upstream call.
type RecordedRequest struct {
	Path          string
	Authorization string
	Body          map[string]any
}

// NewChatServer starts a server answering every request with statusCode and a raw body.
func NewChatServer(t *testing.T, statusCode int, body string) *ChatServer {
	t.Helper()
	cs := &ChatServer{}
	cs.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cs.calls.Add(1)
		rec := &RecordedRequest{Path: r.URL.Path, Authorization: r.Header.Get("Authorization")}
		if err := json.NewDecoder(r.Body).Decode(&rec.Body); err != nil {
			t.Errorf("decode upstream request: %v", err)
		}
		cs.last.Store(rec)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(statusCode)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(cs.Close)
	return cs
}

// ContentResponse returns a chat-completions body whose first choice carries content.
func ContentResponse(t *testing.T, content string) string {
	t.Helper()
	b, err := json.Marshal(map[string]any{
		"id":      "gen-test",
		"object":  "chat.completion",
		"created": 1700000000,
		"model":   "test-model",
		"choices": []any{
			map[string]any{
				"index":         0,
				"finish_reason": "stop",
				"message":       map[string]any{"role": "assistant", "content": content},
			},
		},
	})
	if err != nil {
		t.Fatalf("marshal chat response: %v", err)
	}
	return string(b)
}

// BaseURL is the server URL in the form the OpenRouter client expects.
func (cs *ChatServer) BaseURL() string {
	return cs.URL + "/api/v1"
}

// Calls reports how many requests reached the server.
func (cs *ChatServer) Calls() int64 {
	return cs.calls.Load()
}

// Last returns the most recent request, or nil if none arrived.
func (cs *ChatServer) Last() *RecordedRequest {
	return cs.last.Load()
}

// DiscardLogger returns a logger that drops everything.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

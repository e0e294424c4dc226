package anthropic

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClient_Generate(t *testing.T) {
	var gotVersion, gotKey string
	var gotReq map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotVersion = r.Header.Get("anthropic-version")
		gotKey = r.Header.Get("x-api-key")
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &gotReq)
		_, _ = w.Write([]byte(`{"content":[{"type":"text","text":"generated digest"}]}`))
	}))
	defer srv.Close()

	c := NewClient("key", "claude-sonnet-4-20250514", 1000)
	c.endpoint = srv.URL

	got, err := c.Generate(context.Background(), "summarize these articles")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if got != "generated digest" {
		t.Fatalf("Generate() = %q", got)
	}
	if gotKey != "key" || gotVersion == "" {
		t.Fatalf("missing auth headers: key=%q version=%q", gotKey, gotVersion)
	}
	if gotReq["model"] != "claude-sonnet-4-20250514" {
		t.Fatalf("model = %v", gotReq["model"])
	}
}

func TestClient_GenerateAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"error":{"type":"overloaded_error","message":"try later"}}`))
	}))
	defer srv.Close()

	c := NewClient("key", "model", 0)
	c.endpoint = srv.URL

	if _, err := c.Generate(context.Background(), "prompt"); err == nil {
		t.Fatal("expected API error")
	}
}

func TestClient_GenerateEmptyContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"content":[]}`))
	}))
	defer srv.Close()

	c := NewClient("key", "model", 0)
	c.endpoint = srv.URL

	if _, err := c.Generate(context.Background(), "prompt"); err == nil {
		t.Fatal("expected error for empty content")
	}
}

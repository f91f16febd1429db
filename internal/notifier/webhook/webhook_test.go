package webhook

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/quantsift/quantsift/internal/core"
	"github.com/quantsift/quantsift/internal/notifier"
)

func TestWebhook_ImplementsNotifier(t *testing.T) {
	var _ notifier.Notifier = (*Webhook)(nil)
}

func TestWebhook_Name(t *testing.T) {
	w := New("http://example.com/hook", nil)
	if w.Name() != "webhook" {
		t.Errorf("expected 'webhook', got %s", w.Name())
	}
}

func TestWebhook_Init_RequiresURL(t *testing.T) {
	w := &Webhook{}
	err := w.Init(notifier.Config{Params: map[string]any{}})
	if err == nil {
		t.Error("expected error for missing URL")
	}
}

func TestWebhook_Init_WithURL(t *testing.T) {
	w := &Webhook{}
	err := w.Init(notifier.Config{
		Params: map[string]any{
			"url": "http://example.com/hook",
		},
	})
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if w.url != "http://example.com/hook" {
		t.Errorf("expected url, got %s", w.url)
	}
}

func TestWebhook_Notify(t *testing.T) {
	var receivedPayload map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&receivedPayload)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	w := New(server.URL, nil)

	summary := notifier.Summary{
		RunID:        "run-abc",
		Index:        core.IndexSP500,
		UniverseSize: 503,
		Scanned:      500,
		Failed:       3,
		Matches:      2,
		Duration:     90 * time.Second,
		Top: []core.ScreenedRecord{
			{
				Snapshot: core.Snapshot{
					Symbol:     "AAPL",
					Company:    "Apple Inc.",
					Sector:     "Information Technology",
					TrailingPE: core.Float(16.2),
					PEGRatio:   core.Float(1.1),
				},
				ValueScore: 5.3,
				Rank:       1,
			},
		},
	}

	err := w.Notify(context.Background(), summary)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if receivedPayload["type"] != "screen_summary" {
		t.Errorf("expected type screen_summary, got %v", receivedPayload["type"])
	}
	if receivedPayload["run_id"] != "run-abc" {
		t.Errorf("expected run_id run-abc, got %v", receivedPayload["run_id"])
	}
	if receivedPayload["matches"].(float64) != 2 {
		t.Errorf("expected matches 2, got %v", receivedPayload["matches"])
	}

	top := receivedPayload["top"].([]any)
	if len(top) != 1 {
		t.Fatalf("expected 1 top record, got %d", len(top))
	}
	first := top[0].(map[string]any)
	if first["symbol"] != "AAPL" {
		t.Errorf("expected symbol AAPL, got %v", first["symbol"])
	}
	if first["trailing_pe"].(float64) != 16.2 {
		t.Errorf("expected trailing_pe 16.2, got %v", first["trailing_pe"])
	}
	// upside was absent, so the key must not be present
	if _, ok := first["upside_pct"]; ok {
		t.Error("expected upside_pct to be omitted for absent value")
	}
}

func TestWebhook_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	w := New(server.URL, nil)

	err := w.Notify(context.Background(), notifier.Summary{RunID: "run-err"})
	if err == nil {
		t.Error("expected error for server error response")
	}
}

func TestWebhook_CustomHeaders(t *testing.T) {
	var receivedHeaders http.Header

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		receivedHeaders = r.Header
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	headers := map[string]string{
		"Authorization": "Bearer test-token",
		"X-Custom":      "value",
	}
	w := New(server.URL, headers)

	w.Notify(context.Background(), notifier.Summary{RunID: "run-h"})

	if receivedHeaders.Get("Authorization") != "Bearer test-token" {
		t.Error("expected Authorization header")
	}
	if receivedHeaders.Get("X-Custom") != "value" {
		t.Error("expected X-Custom header")
	}
}

// Package webhook implements an HTTP webhook notifier
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/quantsift/quantsift/internal/core"
	"github.com/quantsift/quantsift/internal/notifier"
)

// Webhook implements the Notifier interface for HTTP webhooks
type Webhook struct {
	url     string
	headers map[string]string
	client  *http.Client
}

// New creates a new Webhook notifier
func New(url string, headers map[string]string) *Webhook {
	return &Webhook{
		url:     url,
		headers: headers,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

func (w *Webhook) Name() string { return "webhook" }

func (w *Webhook) Init(cfg notifier.Config) error {
	if url, ok := cfg.Params["url"].(string); ok {
		w.url = url
	}
	if headers, ok := cfg.Params["headers"].(map[string]string); ok {
		w.headers = headers
	}

	if w.url == "" {
		return fmt.Errorf("webhook: url is required")
	}

	if w.client == nil {
		w.client = &http.Client{Timeout: 30 * time.Second}
	}

	return nil
}

func (w *Webhook) Notify(ctx context.Context, summary notifier.Summary) error {
	return w.post(ctx, w.summaryToPayload(summary))
}

func (w *Webhook) summaryToPayload(summary notifier.Summary) map[string]any {
	top := make([]map[string]any, len(summary.Top))
	for i, rec := range summary.Top {
		top[i] = recordToPayload(rec)
	}

	return map[string]any{
		"type":          "screen_summary",
		"run_id":        summary.RunID,
		"index":         summary.Index,
		"universe_size": summary.UniverseSize,
		"scanned":       summary.Scanned,
		"failed":        summary.Failed,
		"matches":       summary.Matches,
		"duration_ms":   summary.Duration.Milliseconds(),
		"top":           top,
	}
}

func recordToPayload(rec core.ScreenedRecord) map[string]any {
	p := map[string]any{
		"rank":        rec.Rank,
		"symbol":      rec.Symbol,
		"company":     rec.Company,
		"sector":      rec.Sector,
		"value_score": rec.ValueScore,
	}

	// Absent metrics are omitted rather than sent as zero.
	if rec.TrailingPE != nil {
		p["trailing_pe"] = *rec.TrailingPE
	}
	if rec.PEGRatio != nil {
		p["peg_ratio"] = *rec.PEGRatio
	}
	if rec.Upside != nil {
		p["upside_pct"] = *rec.Upside
	}

	return p
}

func (w *Webhook) post(ctx context.Context, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("webhook: failed to marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("webhook: failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	for k, v := range w.headers {
		req.Header.Set(k, v)
	}

	resp, err := w.client.Do(req)
	if err != nil {
		return fmt.Errorf("webhook: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("webhook: server returned %d", resp.StatusCode)
	}

	return nil
}

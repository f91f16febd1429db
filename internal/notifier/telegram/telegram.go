package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/quantsift/quantsift/internal/notifier"
)

// Telegram implements the Notifier interface for Telegram Bot API
type Telegram struct {
	botToken string
	chatID   string
	client   *http.Client
}

// New creates a new Telegram notifier
func New(botToken, chatID string) *Telegram {
	return &Telegram{
		botToken: botToken,
		chatID:   chatID,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (t *Telegram) Name() string {
	return "telegram"
}

func (t *Telegram) Init(cfg notifier.Config) error {
	if token, ok := cfg.Params["bot_token"].(string); ok {
		t.botToken = token
	}
	if chatID, ok := cfg.Params["chat_id"].(string); ok {
		t.chatID = chatID
	}

	if t.botToken == "" {
		return fmt.Errorf("telegram: bot_token is required")
	}
	if t.chatID == "" {
		return fmt.Errorf("telegram: chat_id is required")
	}

	if t.client == nil {
		t.client = &http.Client{Timeout: 30 * time.Second}
	}

	return nil
}

func (t *Telegram) Notify(ctx context.Context, summary notifier.Summary) error {
	return t.sendMessage(ctx, t.formatSummary(summary))
}

func (t *Telegram) formatSummary(summary notifier.Summary) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("🔎 *Screen complete* - %s\n", strings.ToUpper(string(summary.Index))))
	sb.WriteString(fmt.Sprintf("📊 Matches: %d of %d scanned\n", summary.Matches, summary.Scanned))

	if summary.Failed > 0 {
		sb.WriteString(fmt.Sprintf("⚠️ Failed lookups: %d\n", summary.Failed))
	}

	sb.WriteString(fmt.Sprintf("⏱ Duration: %s\n", summary.Duration.Round(time.Second)))

	if len(summary.Top) > 0 {
		sb.WriteString("\n*Best value first:*\n")
		for _, rec := range summary.Top {
			sb.WriteString(fmt.Sprintf("%d. *%s* %s (score %.2f)\n",
				rec.Rank, rec.Symbol, rec.Company, rec.ValueScore))
		}
	}

	sb.WriteString(fmt.Sprintf("\n🆔 Run: `%s`", summary.RunID))

	return sb.String()
}

func (t *Telegram) sendMessage(ctx context.Context, text string) error {
	url := fmt.Sprintf("https://api.telegram.org/bot%s/sendMessage", t.botToken)

	payload := map[string]any{
		"chat_id":    t.chatID,
		"text":       text,
		"parse_mode": "Markdown",
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("telegram: failed to marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("telegram: failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return fmt.Errorf("telegram: failed to send message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var result map[string]any
		json.NewDecoder(resp.Body).Decode(&result)
		return fmt.Errorf("telegram: API error (status %d): %v", resp.StatusCode, result)
	}

	return nil
}

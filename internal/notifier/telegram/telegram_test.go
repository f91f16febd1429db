package telegram

import (
	"strings"
	"testing"
	"time"

	"github.com/quantsift/quantsift/internal/core"
	"github.com/quantsift/quantsift/internal/notifier"
)

func TestTelegram_ImplementsNotifier(t *testing.T) {
	var _ notifier.Notifier = (*Telegram)(nil)
}

func TestTelegram_Name(t *testing.T) {
	tg := New("token", "chatid")
	if tg.Name() != "telegram" {
		t.Errorf("expected 'telegram', got '%s'", tg.Name())
	}
}

func TestTelegram_Init(t *testing.T) {
	tg := &Telegram{}

	cfg := notifier.Config{
		Params: map[string]any{
			"bot_token": "test-token",
			"chat_id":   "test-chat",
		},
	}

	err := tg.Init(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if tg.botToken != "test-token" {
		t.Errorf("expected bot_token 'test-token', got '%s'", tg.botToken)
	}
	if tg.chatID != "test-chat" {
		t.Errorf("expected chat_id 'test-chat', got '%s'", tg.chatID)
	}
}

func TestTelegram_Init_MissingToken(t *testing.T) {
	tg := &Telegram{}

	cfg := notifier.Config{
		Params: map[string]any{
			"chat_id": "test-chat",
		},
	}

	err := tg.Init(cfg)
	if err == nil {
		t.Error("expected error for missing bot_token")
	}
}

func TestTelegram_Init_MissingChatID(t *testing.T) {
	tg := &Telegram{}

	cfg := notifier.Config{
		Params: map[string]any{
			"bot_token": "test-token",
		},
	}

	err := tg.Init(cfg)
	if err == nil {
		t.Error("expected error for missing chat_id")
	}
}

func TestTelegram_FormatSummary(t *testing.T) {
	tg := New("token", "chat")

	summary := notifier.Summary{
		RunID:        "run-123",
		Index:        core.IndexSP500,
		UniverseSize: 503,
		Scanned:      500,
		Failed:       3,
		Matches:      2,
		Duration:     95 * time.Second,
		Top: []core.ScreenedRecord{
			{
				Snapshot:   core.Snapshot{Symbol: "AAPL", Company: "Apple Inc."},
				ValueScore: 5.31,
				Rank:       1,
			},
			{
				Snapshot:   core.Snapshot{Symbol: "MMM", Company: "3M"},
				ValueScore: 7.80,
				Rank:       2,
			},
		},
	}

	formatted := tg.formatSummary(summary)

	if !strings.Contains(formatted, "SP500") {
		t.Error("formatted message should contain the index")
	}
	if !strings.Contains(formatted, "2 of 500") {
		t.Error("formatted message should contain match and scan counts")
	}
	if !strings.Contains(formatted, "Failed lookups: 3") {
		t.Error("formatted message should report failed lookups")
	}
	if !strings.Contains(formatted, "AAPL") || !strings.Contains(formatted, "MMM") {
		t.Error("formatted message should list shortlist symbols")
	}
	if !strings.Contains(formatted, "score 5.31") {
		t.Error("formatted message should contain value scores")
	}
	if !strings.Contains(formatted, "run-123") {
		t.Error("formatted message should contain run id")
	}
}

func TestTelegram_FormatSummary_NoFailures(t *testing.T) {
	tg := New("token", "chat")

	summary := notifier.Summary{
		RunID:    "run-456",
		Index:    core.IndexSP500,
		Scanned:  10,
		Duration: time.Second,
	}

	formatted := tg.formatSummary(summary)

	if strings.Contains(formatted, "Failed lookups") {
		t.Error("failed lookup line should be omitted when nothing failed")
	}
	if strings.Contains(formatted, "Best value first") {
		t.Error("shortlist header should be omitted for empty results")
	}
}

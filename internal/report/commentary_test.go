package report

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/quantsift/quantsift/internal/core"
	"github.com/quantsift/quantsift/internal/llm"
	"github.com/quantsift/quantsift/internal/screen"
)

type fakeLLM struct {
	lastReq llm.Request
	reply   string
	err     error
}

func (f *fakeLLM) Name() string { return "fake" }

func (f *fakeLLM) Complete(ctx context.Context, req llm.Request) (*llm.Response, error) {
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return &llm.Response{Content: f.reply}, nil
}

func sampleResult() *screen.Result {
	return &screen.Result{
		Index:      core.IndexSP500,
		Thresholds: screen.DefaultThresholds(),
		Scanned:    500,
		Failed:     12,
		Records:    sampleRecords(),
	}
}

func TestCommentary(t *testing.T) {
	provider := &fakeLLM{reply: "  A compact, industrial-heavy shortlist.  "}

	got, err := Commentary(context.Background(), provider, sampleResult())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "A compact, industrial-heavy shortlist." {
		t.Errorf("unexpected commentary: %q", got)
	}

	if provider.lastReq.System == "" {
		t.Error("expected a system prompt")
	}
	if !strings.Contains(provider.lastReq.Prompt, "CHEAP") {
		t.Errorf("prompt should name the top matches:\n%s", provider.lastReq.Prompt)
	}
	if !strings.Contains(provider.lastReq.Prompt, "sp500") {
		t.Errorf("prompt should name the universe:\n%s", provider.lastReq.Prompt)
	}
}

func TestCommentary_EmptyResult(t *testing.T) {
	result := sampleResult()
	result.Records = nil

	_, err := Commentary(context.Background(), &fakeLLM{}, result)
	if !errors.Is(err, core.ErrNoMatches) {
		t.Errorf("expected NO_MATCHES, got %v", err)
	}
}

func TestCommentary_ProviderError(t *testing.T) {
	provider := &fakeLLM{err: errors.New("rate limited")}

	_, err := Commentary(context.Background(), provider, sampleResult())
	if !errors.Is(err, core.ErrLLMFailed) {
		t.Errorf("expected LLM_FAILED, got %v", err)
	}
}

func TestCommentary_NilProvider(t *testing.T) {
	if _, err := Commentary(context.Background(), nil, sampleResult()); err == nil {
		t.Error("expected error for nil provider")
	}
}

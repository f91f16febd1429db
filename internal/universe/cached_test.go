package universe

import (
	"context"
	"errors"
	"testing"

	"github.com/quantsift/quantsift/internal/core"
)

// stubProvider counts calls and optionally fails.
type stubProvider struct {
	symbols []string
	err     error
	calls   int
}

func (s *stubProvider) Name() string { return "stub" }

func (s *stubProvider) Resolve(ctx context.Context, index core.Index) ([]string, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.symbols, nil
}

func TestCached_ResolvesOnce(t *testing.T) {
	stub := &stubProvider{symbols: []string{"AAPL", "MSFT"}}
	c := NewCached(stub)

	for i := 0; i < 3; i++ {
		symbols, err := c.Resolve(context.Background(), core.IndexSP500)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(symbols) != 2 {
			t.Fatalf("expected 2 symbols, got %d", len(symbols))
		}
	}

	if stub.calls != 1 {
		t.Errorf("expected 1 upstream call, got %d", stub.calls)
	}
}

func TestCached_ErrorsNotCached(t *testing.T) {
	stub := &stubProvider{err: errors.New("boom")}
	c := NewCached(stub)

	if _, err := c.Resolve(context.Background(), core.IndexSP500); err == nil {
		t.Fatal("expected error")
	}

	stub.err = nil
	stub.symbols = []string{"AAPL"}

	symbols, err := c.Resolve(context.Background(), core.IndexSP500)
	if err != nil {
		t.Fatalf("unexpected error after recovery: %v", err)
	}
	if len(symbols) != 1 {
		t.Errorf("expected 1 symbol, got %d", len(symbols))
	}
	if stub.calls != 2 {
		t.Errorf("expected 2 upstream calls, got %d", stub.calls)
	}
}

func TestCached_Name(t *testing.T) {
	c := NewCached(&stubProvider{})
	if c.Name() != "stub" {
		t.Errorf("expected name passthrough, got %s", c.Name())
	}
}

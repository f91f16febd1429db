package notifier

import (
	"context"
	"errors"
	"testing"
)

type mockNotifier struct {
	name         string
	notifyCalled int
	lastSummary  Summary
	shouldFail   bool
}

func (m *mockNotifier) Name() string { return m.name }

func (m *mockNotifier) Init(cfg Config) error { return nil }

func (m *mockNotifier) Notify(ctx context.Context, summary Summary) error {
	m.notifyCalled++
	m.lastSummary = summary
	if m.shouldFail {
		return errors.New("notify failed")
	}
	return nil
}

func TestRegistry_Register(t *testing.T) {
	r := NewRegistry()

	mock := &mockNotifier{name: "test"}
	err := r.Register(mock)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Duplicate registration should fail
	err = r.Register(mock)
	if err == nil {
		t.Error("expected error for duplicate registration")
	}
}

func TestRegistry_Get(t *testing.T) {
	r := NewRegistry()

	mock := &mockNotifier{name: "test"}
	r.Register(mock)

	n, err := r.Get("test")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n.Name() != "test" {
		t.Errorf("expected 'test', got '%s'", n.Name())
	}

	// Non-existent notifier
	_, err = r.Get("nonexistent")
	if err == nil {
		t.Error("expected error for non-existent notifier")
	}
}

func TestRegistry_GetAll(t *testing.T) {
	r := NewRegistry()

	r.Register(&mockNotifier{name: "a"})
	r.Register(&mockNotifier{name: "b"})

	all := r.GetAll()
	if len(all) != 2 {
		t.Errorf("expected 2 notifiers, got %d", len(all))
	}
}

func TestRegistry_NotifyAll(t *testing.T) {
	r := NewRegistry()

	mock1 := &mockNotifier{name: "n1"}
	mock2 := &mockNotifier{name: "n2"}
	r.Register(mock1)
	r.Register(mock2)

	summary := Summary{RunID: "run-1", Matches: 3, Scanned: 100}
	errs := r.NotifyAll(context.Background(), summary)

	if len(errs) != 0 {
		t.Errorf("expected no errors, got %v", errs)
	}

	if mock1.notifyCalled != 1 {
		t.Errorf("expected mock1.notifyCalled = 1, got %d", mock1.notifyCalled)
	}
	if mock2.notifyCalled != 1 {
		t.Errorf("expected mock2.notifyCalled = 1, got %d", mock2.notifyCalled)
	}
	if mock1.lastSummary.RunID != "run-1" {
		t.Errorf("expected run-1, got %s", mock1.lastSummary.RunID)
	}
}

func TestRegistry_NotifyAll_WithFailure(t *testing.T) {
	r := NewRegistry()

	mock1 := &mockNotifier{name: "n1"}
	mock2 := &mockNotifier{name: "n2", shouldFail: true}
	r.Register(mock1)
	r.Register(mock2)

	errs := r.NotifyAll(context.Background(), Summary{RunID: "run-2"})

	if len(errs) != 1 {
		t.Errorf("expected 1 error, got %d", len(errs))
	}
	if _, ok := errs["n2"]; !ok {
		t.Error("expected error from n2")
	}

	// The healthy channel still gets the summary.
	if mock1.notifyCalled != 1 {
		t.Errorf("expected mock1.notifyCalled = 1, got %d", mock1.notifyCalled)
	}
}

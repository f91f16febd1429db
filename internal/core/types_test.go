package core

import "testing"

func TestSnapshot_IsValid(t *testing.T) {
	tests := []struct {
		name string
		s    Snapshot
		want bool
	}{
		{"valid", Snapshot{Symbol: "AAPL", Company: "Apple Inc."}, true},
		{"symbol only", Snapshot{Symbol: "MSFT"}, true},
		{"empty symbol", Snapshot{Company: "Nameless Corp"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.s.IsValid(); got != tt.want {
				t.Errorf("IsValid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFloat(t *testing.T) {
	p := Float(0)
	if p == nil {
		t.Fatal("expected non-nil pointer")
	}
	if *p != 0 {
		t.Errorf("expected 0, got %v", *p)
	}

	q := Float(0)
	if p == q {
		t.Error("each call should allocate a fresh value")
	}
}

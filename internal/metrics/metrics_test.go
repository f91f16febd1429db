package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRegistry_Counters(t *testing.T) {
	r := NewRegistry()

	r.RunStarted(503)
	r.SymbolScanned()
	r.SymbolScanned()
	r.FetchFailed()
	r.RunFinished(7, 42.0)

	if got := testutil.ToFloat64(r.runsTotal); got != 1 {
		t.Errorf("runs_total = %v, want 1", got)
	}
	if got := testutil.ToFloat64(r.symbolsScanned); got != 2 {
		t.Errorf("symbols_scanned_total = %v, want 2", got)
	}
	if got := testutil.ToFloat64(r.fetchFailures); got != 1 {
		t.Errorf("fetch_failures_total = %v, want 1", got)
	}
	if got := testutil.ToFloat64(r.matchesFound); got != 7 {
		t.Errorf("matches_found = %v, want 7", got)
	}
	if got := testutil.ToFloat64(r.universeSize); got != 503 {
		t.Errorf("universe_size = %v, want 503", got)
	}
}

func TestRegistry_Handler(t *testing.T) {
	r := NewRegistry()
	r.RunStarted(10)

	srv := httptest.NewServer(r.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	if err != nil {
		t.Fatalf("scrape failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("reading body: %v", err)
	}
	if !strings.Contains(string(body), "screener_universe_size") {
		t.Error("expected screener_universe_size in scrape output")
	}
}

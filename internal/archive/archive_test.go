package archive

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/studiowebux/restcli-core/internal/loadtest/metrics"
	"github.com/studiowebux/restcli-core/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "archive.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRecordAndListRuns(t *testing.T) {
	s := openTestStore(t)

	started := time.Now().Truncate(time.Second)
	completed := started.Add(5 * time.Second)
	run := RunSummary{
		EndpointID:   "ep-1",
		EndpointName: "ping",
		Config:       model.LoadTestConfig{Concurrency: 10, DurationSec: 5, RampUpSec: 1},
		StartedAt:    started,
		CompletedAt:  completed,
		Snapshot: metrics.Snapshot{
			Total: 100, Success: 95, Failure: 5,
			Percentiles: metrics.Percentiles{
				Min: 10 * time.Millisecond, P50: 50 * time.Millisecond,
				P90: 90 * time.Millisecond, P95: 95 * time.Millisecond,
				P99: 99 * time.Millisecond, Max: 200 * time.Millisecond,
			},
		},
	}

	if err := s.RecordRun(run); err != nil {
		t.Fatalf("RecordRun: %v", err)
	}

	runs, err := s.ListRuns("ep-1", 10)
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(runs))
	}
	got := runs[0]
	if got.EndpointName != "ping" || got.Config.Concurrency != 10 {
		t.Errorf("got %+v", got)
	}
	if got.Snapshot.Total != 100 || got.Snapshot.Success != 95 || got.Snapshot.Failure != 5 {
		t.Errorf("snapshot counts not round-tripped: %+v", got.Snapshot)
	}
	if got.Snapshot.Percentiles.P50 != 50*time.Millisecond {
		t.Errorf("p50 = %v, want 50ms", got.Snapshot.Percentiles.P50)
	}
}

func TestListRunsFiltersByEndpointAndOrdersNewestFirst(t *testing.T) {
	s := openTestStore(t)

	base := time.Now().Truncate(time.Second)
	runs := []RunSummary{
		{EndpointID: "a", EndpointName: "a", StartedAt: base, CompletedAt: base},
		{EndpointID: "a", EndpointName: "a", StartedAt: base.Add(time.Minute), CompletedAt: base.Add(time.Minute)},
		{EndpointID: "b", EndpointName: "b", StartedAt: base, CompletedAt: base},
	}
	for _, r := range runs {
		if err := s.RecordRun(r); err != nil {
			t.Fatalf("RecordRun: %v", err)
		}
	}

	got, err := s.ListRuns("a", 10)
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 runs for endpoint a, got %d", len(got))
	}
	if !got[0].StartedAt.After(got[1].StartedAt) {
		t.Errorf("expected newest-first ordering, got %v then %v", got[0].StartedAt, got[1].StartedAt)
	}
}

func TestListRunsRespectsLimit(t *testing.T) {
	s := openTestStore(t)
	base := time.Now().Truncate(time.Second)
	for i := 0; i < 5; i++ {
		r := RunSummary{EndpointID: "ep", EndpointName: "ep", StartedAt: base.Add(time.Duration(i) * time.Minute)}
		if err := s.RecordRun(r); err != nil {
			t.Fatalf("RecordRun: %v", err)
		}
	}
	got, err := s.ListRuns("ep", 2)
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("expected limit of 2, got %d", len(got))
	}
}

func TestListRunsUnknownEndpointReturnsEmpty(t *testing.T) {
	s := openTestStore(t)
	got, err := s.ListRuns("nonexistent", 10)
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no runs, got %d", len(got))
	}
}

package tui

import (
	"strings"
	"testing"

	"github.com/studiowebux/restcli-core/internal/model"
)

func TestScrollWindow(t *testing.T) {
	lines := []string{"a", "b", "c", "d", "e"}

	if got := scrollWindow(lines, 0, 2); len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("got %v", got)
	}
	if got := scrollWindow(lines, 3, 2); len(got) != 2 || got[0] != "d" || got[1] != "e" {
		t.Errorf("got %v", got)
	}
	if got := scrollWindow(lines, 10, 2); got != nil {
		t.Errorf("expected nil for offset beyond end, got %v", got)
	}
	if got := scrollWindow(lines, 0, 0); got != nil {
		t.Errorf("expected nil for non-positive visible height, got %v", got)
	}
	if got := scrollWindow(lines, 4, 10); len(got) != 1 || got[0] != "e" {
		t.Errorf("expected window truncated to remaining lines, got %v", got)
	}
}

func TestHeaderLinesFormatsNameColonValue(t *testing.T) {
	headers := []model.HttpHeader{{Name: "Content-Type", Value: "application/json"}, {Name: "X-Id", Value: "42"}}
	got := headerLines(headers)
	want := []string{"Content-Type: application/json", "X-Id: 42"}
	if len(got) != len(want) {
		t.Fatalf("got %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got %q, want %q", got[i], want[i])
		}
	}
}

func TestFormatSizeHint(t *testing.T) {
	if got := FormatSizeHint(512); got != "512B" {
		t.Errorf("got %q", got)
	}
	if got := FormatSizeHint(2048); got != "2.0KB" {
		t.Errorf("got %q", got)
	}
}

func TestFormatTimeSeriesEmpty(t *testing.T) {
	if got := formatTimeSeries(nil); got == "" {
		t.Error("expected a placeholder message for an empty time series")
	}
}

func TestFormatTimeSeriesRendersOnePerLine(t *testing.T) {
	points := []model.TimeSeriesDataPoint{
		{ElapsedSecs: 5, RPS: 12.5, RequestCount: 60},
		{ElapsedSecs: 10, RPS: 14.0, RequestCount: 130},
	}
	got := formatTimeSeries(points)
	lines := strings.Split(got, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected one line per point, got %d: %q", len(lines), got)
	}
}

package tui

import (
	"testing"
	"time"

	"github.com/studiowebux/restcli-core/internal/keybinds"
	"github.com/studiowebux/restcli-core/internal/model"
)

func newTestModel() *Model {
	return &Model{
		screen: ScreenCollectionList,
		panel:  PanelCollections,
		keys:   keybinds.DefaultRegistry(),
		ctx:    keybinds.ContextCollectionList,
	}
}

func TestContextForScreen(t *testing.T) {
	tests := []struct {
		screen Screen
		want   keybinds.Context
	}{
		{ScreenCollectionList, keybinds.ContextCollectionList},
		{ScreenEndpointList, keybinds.ContextCollectionList},
		{ScreenEndpointDetail, keybinds.ContextEndpointDetail},
		{ScreenResponseView, keybinds.ContextEndpointDetail},
		{ScreenLoadTestConfig, keybinds.ContextLoadTestConfig},
		{ScreenLoadTestRunning, keybinds.ContextLoadTestRun},
		{ScreenVariableList, keybinds.ContextVariableList},
		{ScreenVariableEdit, keybinds.ContextTextInput},
		{ScreenCollectionEdit, keybinds.ContextTextInput},
		{ScreenEndpointEdit, keybinds.ContextTextInput},
		{ScreenVariableInput, keybinds.ContextTextInput},
		{ScreenConfirmDelete, keybinds.ContextConfirm},
		{ScreenHelp, keybinds.ContextHelp},
	}
	for _, tt := range tests {
		if got := contextForScreen(tt.screen); got != tt.want {
			t.Errorf("contextForScreen(%v) = %v, want %v", tt.screen, got, tt.want)
		}
	}
}

func TestSwitchScreenUpdatesContextAndPrev(t *testing.T) {
	m := newTestModel()
	m.switchScreen(ScreenHelp)
	if m.screen != ScreenHelp {
		t.Errorf("screen = %v, want ScreenHelp", m.screen)
	}
	if m.prevScreen != ScreenCollectionList {
		t.Errorf("prevScreen = %v, want ScreenCollectionList", m.prevScreen)
	}
	if m.ctx != keybinds.ContextHelp {
		t.Errorf("ctx = %v, want ContextHelp", m.ctx)
	}
}

func TestClampScroll(t *testing.T) {
	tests := []struct {
		name                            string
		offset, totalLines, visibleHgt int
		want                            int
	}{
		{"negative clamps to zero", -5, 100, 20, 0},
		{"within range unchanged", 10, 100, 20, 10},
		{"over max clamps to max", 95, 100, 20, 80},
		{"content shorter than viewport clamps to zero", 5, 10, 20, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := clampScroll(tt.offset, tt.totalLines, tt.visibleHgt); got != tt.want {
				t.Errorf("clampScroll(%d,%d,%d) = %d, want %d", tt.offset, tt.totalLines, tt.visibleHgt, got, tt.want)
			}
		})
	}
}

func TestLoadTestDeadlineDescription(t *testing.T) {
	start := time.Now().Add(-3 * time.Second)
	elapsed, remaining := loadTestDeadlineDescription(start, 10*time.Second)
	if elapsed < 2*time.Second || elapsed > 4*time.Second {
		t.Errorf("elapsed = %v, want ~3s", elapsed)
	}
	if remaining < 6*time.Second || remaining > 8*time.Second {
		t.Errorf("remaining = %v, want ~7s", remaining)
	}
}

func TestLoadTestDeadlineDescriptionNeverNegative(t *testing.T) {
	start := time.Now().Add(-1 * time.Hour)
	_, remaining := loadTestDeadlineDescription(start, 10*time.Second)
	if remaining != 0 {
		t.Errorf("remaining = %v, want 0 once deadline has passed", remaining)
	}
}

func TestCurrentCollectionAndEndpointBounds(t *testing.T) {
	m := newTestModel()
	if m.currentCollection() != nil {
		t.Error("expected nil collection on empty model")
	}
	m.collections = []model.ApiCollection{{ID: "c1", Endpoints: []model.ApiEndpoint{{ID: "e1"}}}}
	if got := m.currentCollection(); got == nil || got.ID != "c1" {
		t.Errorf("got %+v", got)
	}
	if got := m.currentEndpoint(); got == nil || got.ID != "e1" {
		t.Errorf("got %+v", got)
	}
	m.endpointIdx = 5
	if m.currentEndpoint() != nil {
		t.Error("expected nil endpoint for out-of-range index")
	}
}

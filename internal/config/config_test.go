package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestInitializeResolvesPathsUnderHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	if err := Initialize(); err != nil {
		t.Fatalf("Initialize: %v", err)
	}

	want := filepath.Join(home, ".restcli-core")
	if ConfigDir != want {
		t.Errorf("ConfigDir = %q, want %q", ConfigDir, want)
	}
	if CollectionsDir != filepath.Join(want, "collections") {
		t.Errorf("CollectionsDir = %q", CollectionsDir)
	}
	if VariablesFile != filepath.Join(want, "variables.json") {
		t.Errorf("VariablesFile = %q", VariablesFile)
	}
	if ArchiveDBPath != filepath.Join(want, "results.db") {
		t.Errorf("ArchiveDBPath = %q", ArchiveDBPath)
	}

	if info, err := os.Stat(CollectionsDir); err != nil || !info.IsDir() {
		t.Errorf("expected CollectionsDir to exist as a directory, err=%v", err)
	}
}

func TestInitializeIsIdempotent(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	if err := Initialize(); err != nil {
		t.Fatalf("first Initialize: %v", err)
	}
	if err := Initialize(); err != nil {
		t.Fatalf("second Initialize: %v", err)
	}
}

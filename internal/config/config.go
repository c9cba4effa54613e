// Package config resolves the on-disk storage layout spec §6 names: two
// roots under a user-scoped directory, one file per collection plus a
// single variables file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// FilePermissions is the default mode for regular files.
	FilePermissions = 0644
	// DirPermissions is the default mode for directories.
	DirPermissions = 0755
)

var (
	// ConfigDir is the root configuration directory (~/.restcli-core).
	ConfigDir string

	// CollectionsDir holds one JSON file per ApiCollection, named by id.
	CollectionsDir string

	// VariablesFile holds the single VariableSet.
	VariablesFile string

	// ArchiveDBPath is the optional SQLite load-test result archive.
	ArchiveDBPath string
)

// Initialize resolves and creates the directories under ConfigDir. It is
// idempotent and safe to call on every startup.
func Initialize() error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}

	ConfigDir = filepath.Join(homeDir, ".restcli-core")
	CollectionsDir = filepath.Join(ConfigDir, "collections")
	VariablesFile = filepath.Join(ConfigDir, "variables.json")
	ArchiveDBPath = filepath.Join(ConfigDir, "results.db")

	if err := os.MkdirAll(CollectionsDir, DirPermissions); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", CollectionsDir, err)
	}

	return nil
}

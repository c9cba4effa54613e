// Package storage is the persistence collaborator spec §4.1 describes:
// collections one-per-file keyed by id, a single variables file, atomic
// write-temp-then-rename writes, and graceful degradation on corrupt files.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/studiowebux/restcli-core/internal/model"
	"gopkg.in/yaml.v3"
)

// ListCollections loads every collection file under dir. Corrupt files are
// skipped and reported alongside the successfully loaded collections,
// rather than aborting the whole load (spec §4.1 recovery contract).
func ListCollections(dir string) ([]model.ApiCollection, []error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, []error{&model.SerializationError{Path: dir, Underlying: err}}
	}

	var collections []model.ApiCollection
	var errs []error
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			errs = append(errs, &model.SerializationError{Path: path, Underlying: err})
			continue
		}
		var c model.ApiCollection
		if err := json.Unmarshal(data, &c); err != nil {
			errs = append(errs, &model.SerializationError{Path: path, Underlying: err})
			continue
		}
		collections = append(collections, c)
	}
	return collections, errs
}

// SaveCollection persists c atomically: write to a temp file in the same
// directory, then rename over the destination.
func SaveCollection(dir string, c model.ApiCollection) error {
	path := filepath.Join(dir, c.ID+".json")
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return &model.SerializationError{Path: path, Underlying: err}
	}
	return atomicWrite(path, data)
}

// DeleteCollection removes a collection's file by id.
func DeleteCollection(dir, id string) error {
	path := filepath.Join(dir, id+".json")
	if err := os.Remove(path); err != nil {
		return &model.SerializationError{Path: path, Underlying: err}
	}
	return nil
}

// LoadVariables reads the single VariableSet file, returning an empty
// default set if it does not yet exist.
func LoadVariables(path string) (model.VariableSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return model.NewVariableSet("default"), nil
		}
		return model.VariableSet{}, &model.SerializationError{Path: path, Underlying: err}
	}
	var set model.VariableSet
	if err := json.Unmarshal(data, &set); err != nil {
		return model.VariableSet{}, &model.SerializationError{Path: path, Underlying: err}
	}
	if set.Variables == nil {
		set.Variables = map[string]string{}
	}
	return set, nil
}

// SaveVariables persists the VariableSet atomically.
func SaveVariables(path string, set model.VariableSet) error {
	data, err := json.MarshalIndent(set, "", "  ")
	if err != nil {
		return &model.SerializationError{Path: path, Underlying: err}
	}
	return atomicWrite(path, data)
}

// ExportCollectionYAML writes a human-editable YAML copy of a collection
// to path. Read-only/export-only: there is no matching import, so this
// cannot grow into the "importing external collection formats" Non-goal.
func ExportCollectionYAML(path string, c model.ApiCollection) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return &model.SerializationError{Path: path, Underlying: err}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return &model.SerializationError{Path: path, Underlying: err}
	}
	return nil
}

func atomicWrite(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return &model.SerializationError{Path: path, Underlying: err}
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return &model.SerializationError{Path: path, Underlying: err}
	}
	if err := tmp.Close(); err != nil {
		return &model.SerializationError{Path: path, Underlying: err}
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return &model.SerializationError{Path: path, Underlying: fmt.Errorf("rename: %w", err)}
	}
	return nil
}

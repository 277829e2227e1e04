package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/piwi3910/YardCut/internal/model"
)

var (
	// ErrDatasetNotFound is returned when no dataset has the requested name.
	ErrDatasetNotFound = errors.New("dataset not found")
	// ErrBuiltinDataset is returned when a change would touch a shipped dataset.
	ErrBuiltinDataset = errors.New("built-in datasets are read-only")
)

// DefaultDatasetPath returns the default file path for the dataset store.
// This is located at ~/.yardcut/datasets.json.
func DefaultDatasetPath() string {
	return filepath.Join(DefaultConfigDir(), "datasets.json")
}

// SaveDatasets writes the user datasets of store to a JSON file.
// Built-in datasets are never persisted.
func SaveDatasets(path string, store model.DatasetStore) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(userDatasets(store), "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func userDatasets(store model.DatasetStore) model.DatasetStore {
	out := model.NewDatasetStore()
	for _, d := range store.Datasets {
		if !d.Builtin {
			out.Datasets = append(out.Datasets, d)
		}
	}
	return out
}

// LoadDatasets reads the dataset store from a JSON file and puts the
// built-in datasets in front. A missing file yields the built-ins alone.
func LoadDatasets(path string) (model.DatasetStore, error) {
	store := model.NewDatasetStore()
	store.Datasets = append(store.Datasets, Builtins()...)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return store, nil
		}
		return model.DatasetStore{}, err
	}
	var saved model.DatasetStore
	if err := json.Unmarshal(data, &saved); err != nil {
		return model.DatasetStore{}, fmt.Errorf("parse %s: %w", path, err)
	}
	for _, d := range saved.Datasets {
		if d.Builtin || IsBuiltin(d.Name) {
			continue
		}
		store.Datasets = append(store.Datasets, d)
	}
	return store, nil
}

// ResolveDataset looks a dataset up by name.
func ResolveDataset(store model.DatasetStore, name string) (model.Dataset, error) {
	if d := store.FindByName(name); d != nil {
		return *d, nil
	}
	return model.Dataset{}, fmt.Errorf("%w: %q", ErrDatasetNotFound, name)
}

// PutDataset validates table and stores it under name, replacing an
// earlier user dataset of the same name.
func PutDataset(store *model.DatasetStore, name, description string, table model.PieceTable) (model.Dataset, error) {
	if name == "" {
		return model.Dataset{}, errors.New("dataset name must not be empty")
	}
	if IsBuiltin(name) {
		return model.Dataset{}, fmt.Errorf("%w: %q", ErrBuiltinDataset, name)
	}
	if err := table.Validate(); err != nil {
		return model.Dataset{}, err
	}
	table.Name = name
	store.Put(model.NewDataset(name, description, table))
	return *store.FindByName(name), nil
}

// RemoveDataset deletes a user dataset by name.
func RemoveDataset(store *model.DatasetStore, name string) error {
	if IsBuiltin(name) {
		return fmt.Errorf("%w: %q", ErrBuiltinDataset, name)
	}
	if !store.Remove(name) {
		return fmt.Errorf("%w: %q", ErrDatasetNotFound, name)
	}
	return nil
}

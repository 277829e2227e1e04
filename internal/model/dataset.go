package model

import (
	"time"

	"github.com/google/uuid"
)

// Dataset is a named, reusable cut list.
type Dataset struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	CreatedAt   string     `json:"created_at"`
	UpdatedAt   string     `json:"updated_at"`
	Builtin     bool       `json:"builtin,omitempty"`
	Table       PieceTable `json:"table"`
}

// NewDataset creates a dataset holding a copy of table.
func NewDataset(name, description string, table PieceTable) Dataset {
	now := time.Now().UTC().Format(time.RFC3339)
	table.Pieces = copyPieces(table.Pieces)
	if table.Name == "" {
		table.Name = name
	}
	return Dataset{
		ID:          uuid.New().String()[:8],
		Name:        name,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
		Table:       table,
	}
}

// DatasetStore holds a collection of datasets.
type DatasetStore struct {
	Datasets []Dataset `json:"datasets"`
}

// NewDatasetStore creates an empty store.
func NewDatasetStore() DatasetStore {
	return DatasetStore{
		Datasets: []Dataset{},
	}
}

// Put adds d, replacing any dataset with the same name.
func (s *DatasetStore) Put(d Dataset) {
	for i := range s.Datasets {
		if s.Datasets[i].Name == d.Name {
			d.ID = s.Datasets[i].ID
			d.CreatedAt = s.Datasets[i].CreatedAt
			d.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
			s.Datasets[i] = d
			return
		}
	}
	s.Datasets = append(s.Datasets, d)
}

// Remove removes a dataset by name. Built-in datasets are never removed.
// Returns true if found and removed.
func (s *DatasetStore) Remove(name string) bool {
	for i, d := range s.Datasets {
		if d.Name == name && !d.Builtin {
			s.Datasets = append(s.Datasets[:i], s.Datasets[i+1:]...)
			return true
		}
	}
	return false
}

// FindByName returns a pointer to the dataset with the given name, or nil.
func (s *DatasetStore) FindByName(name string) *Dataset {
	for i := range s.Datasets {
		if s.Datasets[i].Name == name {
			return &s.Datasets[i]
		}
	}
	return nil
}

// Names returns the dataset names in store order.
func (s *DatasetStore) Names() []string {
	names := make([]string, len(s.Datasets))
	for i, d := range s.Datasets {
		names[i] = d.Name
	}
	return names
}

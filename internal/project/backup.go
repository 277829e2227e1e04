package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/piwi3910/YardCut/internal/model"
)

// BackupData is the top-level structure for export and import of all user data.
type BackupData struct {
	Version   string          `json:"version"`
	CreatedAt string          `json:"created_at"`
	Config    model.AppConfig `json:"config"`
	Datasets  []model.Dataset `json:"datasets"`
}

// ExportAllData writes the config and the user datasets of store to a
// single JSON file at exportPath.
func ExportAllData(exportPath string, config model.AppConfig, store model.DatasetStore) error {
	backup := BackupData{
		Version:   "1.0.0",
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		Config:    config,
		Datasets:  userDatasets(store).Datasets,
	}
	data, err := json.MarshalIndent(backup, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal backup data: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(exportPath), 0755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}

	if err := os.WriteFile(exportPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write backup file: %w", err)
	}
	return nil
}

// ImportAllData reads a backup JSON file and returns the contained data.
// The caller is responsible for applying it.
func ImportAllData(importPath string) (BackupData, error) {
	data, err := os.ReadFile(importPath)
	if err != nil {
		return BackupData{}, fmt.Errorf("failed to read backup file: %w", err)
	}
	// Settings missing from the file keep their defaults
	backup := BackupData{Config: model.DefaultAppConfig()}
	if err := json.Unmarshal(data, &backup); err != nil {
		return BackupData{}, fmt.Errorf("failed to parse backup file: %w", err)
	}
	if backup.Version == "" {
		return BackupData{}, fmt.Errorf("invalid backup file: missing version field")
	}
	if err := ValidateSettings(backup.Config.Defaults); err != nil {
		return BackupData{}, fmt.Errorf("invalid backup file: %w", err)
	}
	if backup.Config.RecentFiles == nil {
		backup.Config.RecentFiles = []string{}
	}
	return backup, nil
}

// RestoreDatasets merges backed-up datasets into store, replacing user
// datasets of the same name. Entries named like built-ins are skipped.
// It returns the number of datasets restored.
func RestoreDatasets(store *model.DatasetStore, backup BackupData) int {
	n := 0
	for _, d := range backup.Datasets {
		if d.Builtin || IsBuiltin(d.Name) {
			continue
		}
		store.Put(d)
		n++
	}
	return n
}

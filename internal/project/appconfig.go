package project

import (
	"fmt"
	"os"
	"path/filepath"

	"sigs.k8s.io/yaml"

	"github.com/piwi3910/YardCut/internal/model"
)

// DefaultConfigDir returns the default directory for application data.
// On all platforms this is ~/.yardcut/
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".yardcut")
}

// DefaultConfigPath returns the default path for the application config file.
func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.yaml")
}

// SaveAppConfig persists an AppConfig to the given path as YAML.
// It creates any missing parent directories automatically.
func SaveAppConfig(path string, config model.AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := yaml.Marshal(config)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadAppConfig reads an AppConfig from the given path. Keys missing from
// the file keep their defaults. If the file does not exist, it returns
// DefaultAppConfig with no error.
func LoadAppConfig(path string) (model.AppConfig, error) {
	config := model.DefaultAppConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return config, nil
		}
		return model.AppConfig{}, err
	}
	if err := yaml.UnmarshalStrict(data, &config); err != nil {
		return model.AppConfig{}, fmt.Errorf("parse %s: %w", path, err)
	}
	if config.RecentFiles == nil {
		config.RecentFiles = []string{}
	}
	if err := ValidateSettings(config.Defaults); err != nil {
		return model.AppConfig{}, fmt.Errorf("%s: %w", path, err)
	}
	return config, nil
}

// ValidateSettings rejects settings no calculation can run with.
func ValidateSettings(s model.Settings) error {
	if !s.Unit.Valid() {
		return fmt.Errorf("unknown unit %q", s.Unit)
	}
	if s.SeamAllowance < 0 {
		return fmt.Errorf("seam allowance must not be negative, got %g", s.SeamAllowance)
	}
	if s.WastePercent < 0 {
		return fmt.Errorf("waste percent must not be negative, got %g", s.WastePercent)
	}
	for _, w := range s.FabricWidths {
		if w <= 0 {
			return fmt.Errorf("fabric width must be positive, got %g", w)
		}
	}
	return nil
}

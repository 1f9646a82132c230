package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/piwi3910/FrameShop/internal/model"
)

// ConfigFile is the app config file name, kept next to the default data
// directory.
const ConfigFile = "config.json"

// DefaultConfigPath returns ~/.frameshop/config.json.
func DefaultConfigPath() string {
	return filepath.Join(model.DefaultAppConfig().DataDir, ConfigFile)
}

// SaveAppConfig writes the config atomically, stamping the current schema
// version.
func SaveAppConfig(path string, cfg model.AppConfig) error {
	cfg.SchemaVersion = model.AppConfigSchemaVersion
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal app config: %w", err)
	}
	if err := writeFileAtomic(path, data); err != nil {
		return fmt.Errorf("save app config %s: %w", filepath.Base(path), err)
	}
	return nil
}

// LoadAppConfig reads and normalizes the config at path. A missing file
// yields the defaults. Hand-written files without a schema version are read
// as the current version; a newer version fails with ErrUnsupportedSchema.
// On any error the defaults are returned along with it, so callers can carry
// on.
func LoadAppConfig(path string) (model.AppConfig, error) {
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return model.DefaultAppConfig(), nil
	case err != nil:
		return model.DefaultAppConfig(), fmt.Errorf("read app config: %w", err)
	}

	var cfg model.AppConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return model.DefaultAppConfig(), fmt.Errorf("parse app config %s: %w", filepath.Base(path), err)
	}
	if cfg.SchemaVersion == 0 {
		cfg.SchemaVersion = model.AppConfigSchemaVersion
	}
	if err := checkSchema("app config", cfg.SchemaVersion, model.AppConfigSchemaVersion); err != nil {
		return model.DefaultAppConfig(), err
	}
	cfg.Normalize()
	return cfg, nil
}

package store

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/piwi3910/FrameShop/internal/model"
)

// PresetFile is the preset store file name inside the data directory.
const PresetFile = "presets.json"

// SavePresets writes the preset store to a JSON file.
func SavePresets(path string, ps model.PresetStore) error {
	ps.SchemaVersion = model.PresetSchemaVersion
	data, err := json.MarshalIndent(ps, "", "  ")
	if err != nil {
		return err
	}
	return writeFileAtomic(path, data)
}

// LoadPresets reads a preset store from a JSON file. If the file does not
// exist, returns an empty store. A store or preset written with an unknown
// schema version fails with ErrUnsupportedSchema.
func LoadPresets(path string) (model.PresetStore, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return model.NewPresetStore(), nil
		}
		return model.PresetStore{}, err
	}
	var ps model.PresetStore
	if err := json.Unmarshal(data, &ps); err != nil {
		return model.PresetStore{}, fmt.Errorf("failed to parse presets: %w", err)
	}
	if err := checkSchema("preset store", ps.SchemaVersion, model.PresetSchemaVersion); err != nil {
		return model.PresetStore{}, err
	}
	for _, p := range ps.Presets {
		if err := checkSchema(fmt.Sprintf("preset %q", p.Name), p.SchemaVersion, model.PresetSchemaVersion); err != nil {
			return model.PresetStore{}, err
		}
		if err := checkSchema(fmt.Sprintf("preset %q configuration", p.Name), p.Config.SchemaVersion, model.SchemaVersion); err != nil {
			return model.PresetStore{}, err
		}
	}
	if ps.Presets == nil {
		ps.Presets = []model.Preset{}
	}
	return ps, nil
}

func checkSchema(what string, got, supported int) error {
	if got < 1 || got > supported {
		return fmt.Errorf("%s has schema version %d, this build reads up to %d: %w", what, got, supported, ErrUnsupportedSchema)
	}
	return nil
}

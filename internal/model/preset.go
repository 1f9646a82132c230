package model

import (
	"time"

	"github.com/google/uuid"
)

// PresetSchemaVersion is the version written into saved presets.
const PresetSchemaVersion = 1

// Preset is a named, reusable configuration snapshot.
type Preset struct {
	SchemaVersion int           `json:"schema_version"`
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Description   string        `json:"description"`
	CreatedAt     string        `json:"created_at"`
	UpdatedAt     string        `json:"updated_at"`
	Config        Configuration `json:"config"`
}

// NewPreset captures a copy of cfg under the given name.
func NewPreset(name, description string, cfg Configuration) Preset {
	now := time.Now().UTC().Format(time.RFC3339)
	return Preset{
		SchemaVersion: PresetSchemaVersion,
		ID:            uuid.New().String()[:8],
		Name:          name,
		Description:   description,
		CreatedAt:     now,
		UpdatedAt:     now,
		Config:        cfg.Clone(),
	}
}

// Apply returns a configuration for the configurator. Openings get fresh IDs
// so the live session is independent of the preset.
func (p Preset) Apply() Configuration {
	cfg := p.Config.Clone()
	cfg.SchemaVersion = SchemaVersion
	if o, ok := cfg.Layout.(Openings); ok {
		for i := range o.Items {
			o.Items[i].ID = uuid.New().String()[:8]
		}
		cfg.Layout = o
	}
	if cfg.Layout == nil {
		cfg.Layout = Stacked{}
	}
	return cfg
}

// PresetStore holds a collection of presets.
type PresetStore struct {
	SchemaVersion int      `json:"schema_version"`
	Presets       []Preset `json:"presets"`
}

// NewPresetStore creates an empty preset store.
func NewPresetStore() PresetStore {
	return PresetStore{
		SchemaVersion: PresetSchemaVersion,
		Presets:       []Preset{},
	}
}

// Add adds a preset, replacing any existing preset with the same name.
func (ps *PresetStore) Add(p Preset) {
	for i := range ps.Presets {
		if ps.Presets[i].Name == p.Name {
			p.CreatedAt = ps.Presets[i].CreatedAt
			ps.Presets[i] = p
			return
		}
	}
	ps.Presets = append(ps.Presets, p)
}

// Remove removes a preset by ID. Returns true if found and removed.
func (ps *PresetStore) Remove(id string) bool {
	for i, p := range ps.Presets {
		if p.ID == id {
			ps.Presets = append(ps.Presets[:i], ps.Presets[i+1:]...)
			return true
		}
	}
	return false
}

// FindByName returns a pointer to the first preset with the given name, or nil.
func (ps *PresetStore) FindByName(name string) *Preset {
	for i := range ps.Presets {
		if ps.Presets[i].Name == name {
			return &ps.Presets[i]
		}
	}
	return nil
}

// Names returns a list of preset names for UI dropdowns.
func (ps *PresetStore) Names() []string {
	names := make([]string, len(ps.Presets))
	for i, p := range ps.Presets {
		names[i] = p.Name
	}
	return names
}

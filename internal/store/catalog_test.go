package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/FrameShop/internal/model"
)

func TestLoadCatalogMissingFileGivesDefault(t *testing.T) {
	cat, err := LoadCatalog(filepath.Join(t.TempDir(), CatalogFile))
	require.NoError(t, err)
	assert.NotEmpty(t, cat.Frames)
	assert.Equal(t, 1.0, cat.Settings.MarginMultiplier)
}

func TestCatalogYAMLRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), CatalogFile)
	cat := model.DefaultCatalog()
	cat.Settings.TaxRate = 0.21

	require.NoError(t, SaveCatalog(path, cat))
	loaded, err := LoadCatalog(path)
	require.NoError(t, err)

	assert.Equal(t, cat.Frames, loaded.Frames)
	assert.Equal(t, 0.21, loaded.Settings.TaxRate)
}

func TestLoadCatalogFillsIDsAndKinds(t *testing.T) {
	path := filepath.Join(t.TempDir(), CatalogFile)
	yaml := `
frames:
  - name: Pine
    price: 40
    face_width_cm: 2
mats:
  - id: white
    name: White
    price: 30
settings:
  labour_base: 50
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0644))

	cat, err := LoadCatalog(path)
	require.NoError(t, err)
	require.Len(t, cat.Frames, 1)
	assert.NotEmpty(t, cat.Frames[0].ID)
	assert.Equal(t, model.KindFrame, cat.Frames[0].Kind)
	_, ok := cat.Mat("white")
	assert.True(t, ok)
	assert.Equal(t, 1.0, cat.Settings.MarginMultiplier)
	assert.Equal(t, "EUR", cat.Settings.CurrencyCode)
	assert.NotNil(t, cat.Glazing)
}

func TestLoadCatalogInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), CatalogFile)
	require.NoError(t, os.WriteFile(path, []byte("frames: [unterminated"), 0644))
	_, err := LoadCatalog(path)
	assert.Error(t, err)
}

func TestPresetsRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), PresetFile)
	ps := model.NewPresetStore()
	cfg := model.NewConfiguration()
	cfg.Layout = model.Openings{Items: []model.Opening{model.NewOpening(model.ShapeOval, 1, 1, 6, 4)}}
	ps.Add(model.NewPreset("Oval", "", cfg))

	require.NoError(t, SavePresets(path, ps))
	loaded, err := LoadPresets(path)
	require.NoError(t, err)
	p := loaded.FindByName("Oval")
	require.NotNil(t, p)
	assert.Equal(t, model.ModePro, p.Config.Mode())
}

func TestLoadPresetsRejectsNewerSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), PresetFile)
	doc := `{"schema_version":1,"presets":[{"schema_version":2,"name":"Future","config":{"schema_version":1}}]}`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0644))

	_, err := LoadPresets(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupportedSchema))
	assert.Contains(t, err.Error(), `preset "Future"`)
}

func TestLoadPresetsRejectsUnversioned(t *testing.T) {
	path := filepath.Join(t.TempDir(), PresetFile)
	require.NoError(t, os.WriteFile(path, []byte(`{"presets":[]}`), 0644))
	_, err := LoadPresets(path)
	assert.ErrorIs(t, err, ErrUnsupportedSchema)
}

func TestLoadPresetsMissingFile(t *testing.T) {
	ps, err := LoadPresets(filepath.Join(t.TempDir(), PresetFile))
	require.NoError(t, err)
	assert.Empty(t, ps.Presets)
}

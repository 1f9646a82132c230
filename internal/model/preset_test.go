package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPreset(t *testing.T) {
	cfg := NewConfiguration()
	cfg.FrameID = "walnut"

	p := NewPreset("Gallery", "white mat, walnut", cfg)

	assert.Equal(t, PresetSchemaVersion, p.SchemaVersion)
	assert.NotEmpty(t, p.ID)
	assert.NotEmpty(t, p.CreatedAt)
	assert.Equal(t, "walnut", p.Config.FrameID)
}

func TestPresetApplyGivesFreshOpeningIDs(t *testing.T) {
	cfg := NewConfiguration()
	op := NewOpening(ShapeRect, 1, 1, 5, 5)
	cfg.Layout = Openings{Items: []Opening{op}}

	p := NewPreset("Two up", "", cfg)
	live := p.Apply()

	require.Len(t, live.OpeningList(), 1)
	assert.NotEqual(t, op.ID, live.OpeningList()[0].ID)
	assert.Equal(t, op.ID, p.Config.OpeningList()[0].ID, "preset must not be mutated")
}

func TestPresetStore_AddRemoveFind(t *testing.T) {
	store := NewPresetStore()

	p1 := NewPreset("P1", "", NewConfiguration())
	p2 := NewPreset("P2", "", NewConfiguration())
	store.Add(p1)
	store.Add(p2)
	require.Len(t, store.Presets, 2)

	// same name replaces
	store.Add(NewPreset("P2", "updated", NewConfiguration()))
	require.Len(t, store.Presets, 2)
	assert.Equal(t, "updated", store.FindByName("P2").Description)

	assert.Equal(t, []string{"P1", "P2"}, store.Names())
	assert.True(t, store.Remove(p1.ID))
	assert.False(t, store.Remove("nonexistent"))
	assert.Nil(t, store.FindByName("P1"))
}

func TestAppConfigApplyEnv(t *testing.T) {
	env := map[string]string{
		"FRAMESHOP_DATA_DIR":    "/tmp/shop",
		"FRAMESHOP_LOG_LEVEL":   "DEBUG",
		"FRAMESHOP_QUOTA_BYTES": "not-a-number",
	}
	cfg := DefaultAppConfig()
	cfg.ApplyEnv(func(k string) string { return env[k] })

	assert.Equal(t, "/tmp/shop", cfg.DataDir)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, int64(DefaultQuotaBytes), cfg.QuotaBytes)
}

func TestAppConfigNormalize(t *testing.T) {
	cfg := AppConfig{Theme: "neon", GridStepCm: -1}
	cfg.Normalize()

	d := DefaultAppConfig()
	assert.Equal(t, "system", cfg.Theme)
	assert.Equal(t, d.GridStepCm, cfg.GridStepCm)
	assert.Equal(t, d.MagnetCm, cfg.MagnetCm)
	assert.NotNil(t, cfg.RecentExports)
}

func TestAddRecentExport(t *testing.T) {
	cfg := DefaultAppConfig()
	for i := 0; i < 12; i++ {
		cfg.AddRecentExport(string(rune('a' + i)))
	}
	cfg.AddRecentExport("c")
	assert.Len(t, cfg.RecentExports, 10)
	assert.Equal(t, "c", cfg.RecentExports[0])
}

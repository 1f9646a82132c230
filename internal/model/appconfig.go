package model

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/piwi3910/FrameShop/internal/geom"
)

// Default store quota, matching the typical browser local-storage limit.
const DefaultQuotaBytes = 5 * 1024 * 1024

// AppConfigSchemaVersion is the config file layout this build writes.
const AppConfigSchemaVersion = 1

// AppConfig holds application-wide preferences and default settings.
type AppConfig struct {
	SchemaVersion   int     `json:"schema_version"`
	ShopName        string  `json:"shop_name"`
	DataDir         string  `json:"data_dir"`
	QuotaBytes      int64   `json:"quota_bytes"`       // per collection file, 0 = unlimited
	PreviewBudgetPx float64 `json:"preview_budget_px"` // longest side of the on-screen preview
	GridStepCm      float64 `json:"grid_step_cm"`
	MagnetCm        float64 `json:"magnet_threshold_cm"`
	DefaultFaceCm   float64 `json:"default_face_width_cm"`
	Theme           string  `json:"theme"` // "light", "dark", "system"
	LogLevel        string  `json:"log_level"`

	RecentExports []string `json:"recent_exports"`
}

// DefaultAppConfig returns an AppConfig populated with sensible defaults.
func DefaultAppConfig() AppConfig {
	return AppConfig{
		SchemaVersion:   AppConfigSchemaVersion,
		ShopName:        "FrameShop",
		DataDir:         defaultDataDir(),
		QuotaBytes:      DefaultQuotaBytes,
		PreviewBudgetPx: 520,
		GridStepCm:      geom.DefaultGridStep,
		MagnetCm:        geom.DefaultMagnetThreshold,
		DefaultFaceCm:   2,
		Theme:           "system",
		LogLevel:        "info",
		RecentExports:   []string{},
	}
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".frameshop")
}

// ApplyEnv overrides fields from FRAMESHOP_* environment variables. Values
// that do not parse are ignored.
func (c *AppConfig) ApplyEnv(getenv func(string) string) {
	if v := strings.TrimSpace(getenv("FRAMESHOP_DATA_DIR")); v != "" {
		c.DataDir = v
	}
	if v := strings.TrimSpace(getenv("FRAMESHOP_LOG_LEVEL")); v != "" {
		c.LogLevel = strings.ToLower(v)
	}
	if v := strings.TrimSpace(getenv("FRAMESHOP_QUOTA_BYTES")); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n >= 0 {
			c.QuotaBytes = n
		}
	}
}

// Normalize replaces unusable values with defaults.
func (c *AppConfig) Normalize() {
	d := DefaultAppConfig()
	if strings.TrimSpace(c.ShopName) == "" {
		c.ShopName = d.ShopName
	}
	if c.DataDir == "" {
		c.DataDir = d.DataDir
	}
	if c.QuotaBytes < 0 {
		c.QuotaBytes = d.QuotaBytes
	}
	if !geom.ValidLength(c.PreviewBudgetPx) {
		c.PreviewBudgetPx = d.PreviewBudgetPx
	}
	if !geom.ValidLength(c.GridStepCm) {
		c.GridStepCm = d.GridStepCm
	}
	if !geom.ValidLength(c.MagnetCm) {
		c.MagnetCm = d.MagnetCm
	}
	if !geom.ValidLength(c.DefaultFaceCm) {
		c.DefaultFaceCm = d.DefaultFaceCm
	}
	switch c.Theme {
	case "light", "dark", "system":
	default:
		c.Theme = d.Theme
	}
	if c.LogLevel == "" {
		c.LogLevel = d.LogLevel
	}
	if c.RecentExports == nil {
		c.RecentExports = []string{}
	}
}

// AddRecentExport records a written file, most recent first, keeping ten.
func (c *AppConfig) AddRecentExport(path string) {
	out := []string{path}
	for _, p := range c.RecentExports {
		if p != path && len(out) < 10 {
			out = append(out, p)
		}
	}
	c.RecentExports = out
}

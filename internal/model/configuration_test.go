package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVisibleAndOuterSize(t *testing.T) {
	cfg := NewConfiguration()
	cfg.FaceWidthCm = 3
	cfg.Mats = []MatLayer{
		{MatID: "m1", BorderCm: 5},
		{MatID: "", BorderCm: 4},   // no mat selected
		{MatID: "m2", BorderCm: 0}, // no border
		{MatID: "m3", BorderCm: 1},
	}

	w, h := cfg.VisibleSize()
	assert.InDelta(t, 50.0, w, 1e-9)
	assert.InDelta(t, 40.0, h, 1e-9)

	ow, oh := cfg.OuterSize()
	assert.InDelta(t, 56.0, ow, 1e-9)
	assert.InDelta(t, 46.0, oh, 1e-9)
}

func TestActiveMatsIgnoresLayersBeyondThird(t *testing.T) {
	cfg := NewConfiguration()
	cfg.Mats = []MatLayer{
		{MatID: "a", BorderCm: 1},
		{MatID: "b", BorderCm: 1},
		{MatID: "c", BorderCm: 1},
		{MatID: "d", BorderCm: 1},
	}
	assert.Len(t, cfg.ActiveMats(), MaxMats)
	assert.InDelta(t, 3.0, cfg.MatBorderTotal(), 1e-9)
}

func TestConfigurationJSONKeepsLayoutVariant(t *testing.T) {
	cfg := NewConfiguration()
	cfg.FrameID = "oak"
	cfg.Layout = Openings{Items: []Opening{
		NewOpening(ShapeOval, 1, 2, 8, 6),
		NewOpening(ShapeCircle, 12, 2, 5, 7),
	}}

	data, err := json.Marshal(cfg)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"schema_version":1`)
	assert.Contains(t, string(data), `"mode":"pro"`)
	assert.Contains(t, string(data), `"shape":"oval"`)

	var back Configuration
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, ModePro, back.Mode())
	require.Len(t, back.OpeningList(), 2)
	assert.Equal(t, ShapeCircle, back.OpeningList()[1].Shape)
	assert.Equal(t, 7.0, back.OpeningList()[1].WidthCm, "circle is created square")
	assert.Equal(t, "oak", back.FrameID)
}

func TestConfigurationJSONDefaultsToStacked(t *testing.T) {
	var cfg Configuration
	require.NoError(t, json.Unmarshal([]byte(`{"artwork_width_cm":10,"artwork_height_cm":20}`), &cfg))
	assert.Equal(t, ModeBasic, cfg.Mode())
	assert.IsType(t, Stacked{}, cfg.Layout)

	err := json.Unmarshal([]byte(`{"layout":{"mode":"spiral"}}`), &cfg)
	assert.Error(t, err)
}

func TestCloneIsIndependent(t *testing.T) {
	cfg := NewConfiguration()
	cfg.Mats = []MatLayer{{MatID: "a", BorderCm: 2}}
	cfg.Layout = Openings{Items: []Opening{NewOpening(ShapeRect, 0, 0, 4, 4)}}

	cp := cfg.Clone()
	cp.Mats[0].BorderCm = 9
	cp.OpeningList()[0].XCm = 3

	assert.Equal(t, 2.0, cfg.Mats[0].BorderCm)
	assert.Equal(t, 0.0, cfg.OpeningList()[0].XCm)
}

func TestOpeningFits(t *testing.T) {
	o := Opening{Shape: ShapeRect, XCm: 0, YCm: 0, WidthCm: 10, HeightCm: 10}
	if !o.Fits(10, 10, 1e-9) {
		t.Error("opening filling the area should fit")
	}
	o.XCm = 0.5
	if o.Fits(10, 10, 1e-9) {
		t.Error("opening past the right edge should not fit")
	}
	o = Opening{Shape: ShapeCircle, WidthCm: 4, HeightCm: 5}
	if o.Fits(10, 10, 1e-9) {
		t.Error("non-square circle should not fit")
	}
	o = Opening{Shape: ShapeRect, WidthCm: 1.5, HeightCm: 5}
	if o.Fits(10, 10, 1e-9) {
		t.Error("opening below minimum width should not fit")
	}
}

func TestParseShape(t *testing.T) {
	for in, want := range map[string]Shape{"rect": ShapeRect, "Ellipse": ShapeOval, " circle ": ShapeCircle} {
		got, err := ParseShape(in)
		require.NoError(t, err)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseShape("star")
	assert.Error(t, err)
}

func TestBreakdownLinesSkipEmptyMats(t *testing.T) {
	b := CostBreakdown{Frame: 10, Glazing: 5, Mats: [MaxMats]float64{3, 0, 2}, Labour: 100}
	var labels []string
	for _, l := range b.Lines() {
		labels = append(labels, l.Label)
	}
	assert.Equal(t, []string{"Frame", "Glazing", "Mat 1", "Mat 3", "Printing", "Backer", "Labour"}, labels)
	assert.InDelta(t, 5.0, b.MatsTotal(), 1e-9)
}

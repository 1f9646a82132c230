package render

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/draw"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/piwi3910/FrameShop/internal/geom"
	"github.com/piwi3910/FrameShop/internal/model"
)

type stubSource map[string]image.Image

func (s stubSource) Load(ref string) (image.Image, error) {
	if img, ok := s[ref]; ok {
		return img, nil
	}
	return nil, errors.New("no such file")
}

func solid(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
	return img
}

func testCatalog() model.Catalog {
	return model.Catalog{
		Frames: []model.CatalogItem{{ID: "f1", Kind: model.KindFrame, Color: "#102030"}},
		Mats: []model.CatalogItem{
			{ID: "m1", Kind: model.KindMat, Color: "#FFFFFF"},
			{ID: "m2", Kind: model.KindMat, Color: "#000080"},
		},
	}
}

func stackedConfig() model.Configuration {
	cfg := model.NewConfiguration()
	cfg.ArtworkWidthCm, cfg.ArtworkHeightCm = 40, 30
	cfg.FrameID = "f1"
	cfg.FaceWidthCm = 2
	cfg.Mats = []model.MatLayer{{MatID: "m1", BorderCm: 5}, {MatID: "m2", BorderCm: 1}}
	return cfg
}

func observed() (*zap.SugaredLogger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return zap.New(core).Sugar(), logs
}

func TestPixelsPerCm(t *testing.T) {
	assert.InDelta(t, 10.0, PixelsPerCm(60, 40, 600), 1e-9)
	assert.InDelta(t, 10.0, PixelsPerCm(40, 60, 600), 1e-9)
	assert.Equal(t, 0.0, PixelsPerCm(0, 0, 600))
	assert.Equal(t, 0.0, PixelsPerCm(60, 40, -1))
}

func TestBuildSceneFoldsMatStack(t *testing.T) {
	s := BuildScene(stackedConfig(), testCatalog(), 560)

	require.InDelta(t, 10.0, s.Scale, 1e-9)
	assert.InDelta(t, 560.0, s.Outer.W, 1e-9)
	assert.InDelta(t, 460.0, s.Outer.H, 1e-9)
	assert.InDelta(t, 20.0, s.Visible.X, 1e-9)
	require.Len(t, s.Mats, 2)
	assert.Equal(t, s.Visible, s.Mats[0].Rect)
	assert.InDelta(t, 70.0, s.Mats[1].Rect.X, 1e-9)
	assert.InDelta(t, 80.0, s.Window.X, 1e-9)
	assert.InDelta(t, 400.0, s.Window.W, 1e-9)
	assert.InDelta(t, 300.0, s.Window.H, 1e-9)
	assert.Equal(t, color.RGBA{R: 0x10, G: 0x20, B: 0x30, A: 0xff}, s.Frame.Color)
}

func TestBuildSceneMissingItemsUseNeutralColours(t *testing.T) {
	cfg := stackedConfig()
	cfg.FrameID = "gone"
	cfg.Mats[0].MatID = "gone-too"

	s := BuildScene(cfg, testCatalog(), 560)
	assert.Equal(t, NeutralFrame, s.Frame.Color)
	assert.Equal(t, NeutralMat, s.Mats[0].Color)
}

func TestBuildSceneOpeningsInPixels(t *testing.T) {
	cfg := model.NewConfiguration()
	cfg.ArtworkWidthCm, cfg.ArtworkHeightCm = 50, 40
	cfg.FaceWidthCm = 1
	cfg.Layout = model.Openings{Items: []model.Opening{{ID: "a", Shape: model.ShapeRect, XCm: 10, YCm: 5, WidthCm: 20, HeightCm: 10}}}

	s := BuildScene(cfg, testCatalog(), 520)
	require.Len(t, s.Openings, 1)
	assert.InDelta(t, 110.0, s.Openings[0].Rect.X, 1e-9)
	assert.InDelta(t, 60.0, s.Openings[0].Rect.Y, 1e-9)
	assert.InDelta(t, 200.0, s.Openings[0].Rect.W, 1e-9)

	x, y := s.CmAt(110, 60)
	assert.InDelta(t, 10.0, x, 1e-9)
	assert.InDelta(t, 5.0, y, 1e-9)
}

func TestPaintBasicMode(t *testing.T) {
	c := NewCompositor(nil, stubSource{})
	img, s := c.Render(stackedConfig(), testCatalog(), 560)

	assert.Equal(t, image.Rect(0, 0, 560, 460), img.Bounds())
	assert.Equal(t, s.Frame.Color, img.RGBAAt(5, 5))
	assert.Equal(t, color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}, img.RGBAAt(40, 230))
	assert.Equal(t, color.RGBA{R: 0, G: 0, B: 0x80, A: 0xff}, img.RGBAAt(75, 230))
	assert.Equal(t, placeholderBg, img.RGBAAt(85, 100), "no artwork shows the placeholder")
}

func TestPaintArtworkFillsWindow(t *testing.T) {
	red := color.RGBA{R: 0xff, A: 0xff}
	cfg := stackedConfig()
	cfg.ArtworkRef = "art.png"

	c := NewCompositor(nil, stubSource{"art.png": solid(40, 30, red)})
	img, _ := c.Render(cfg, testCatalog(), 560)

	px := img.RGBAAt(280, 230)
	assert.Greater(t, px.R, uint8(240))
	assert.Less(t, px.G, uint8(16))
}

func TestImageLoadFailureWarnsAndStillRenders(t *testing.T) {
	log, logs := observed()
	cfg := stackedConfig()
	cfg.ArtworkRef = "/missing/art.png"

	c := NewCompositor(log, stubSource{})
	img, s := c.Render(cfg, testCatalog(), 560)

	warnings := logs.FilterMessage("image load failed, using placeholder")
	require.Equal(t, 1, warnings.Len())
	entry := warnings.All()[0]
	assert.Equal(t, zapcore.WarnLevel, entry.Level)
	assert.Equal(t, "/missing/art.png", entry.ContextMap()["ref"])

	assert.Equal(t, s.Frame.Color, img.RGBAAt(5, 5), "rest of the scene rendered")
	assert.Equal(t, placeholderBg, img.RGBAAt(85, 100))
	assert.Equal(t, 1, logs.FilterMessage("rendered preview").Len())
}

func TestPaintProModeClipsCircle(t *testing.T) {
	red := color.RGBA{R: 0xff, A: 0xff}
	cfg := model.NewConfiguration()
	cfg.ArtworkWidthCm, cfg.ArtworkHeightCm = 50, 40
	cfg.FaceWidthCm = 0
	cfg.Layout = model.Openings{Items: []model.Opening{
		{ID: "c", Shape: model.ShapeCircle, XCm: 10, YCm: 5, WidthCm: 20, HeightCm: 20, ImageRef: "red"},
	}}

	c := NewCompositor(nil, stubSource{"red": solid(10, 10, red)})
	img, _ := c.Render(cfg, testCatalog(), 500)

	centre := img.RGBAAt(200, 150)
	assert.Greater(t, centre.R, uint8(240))
	assert.Less(t, centre.B, uint8(16))
	assert.Equal(t, NeutralMat, img.RGBAAt(102, 52), "corner of the bounding box is outside the circle")
	assert.Equal(t, BevelColor, img.RGBAAt(200, 51), "bevel ring at the inside edge")
}

func TestPaintDegenerateScene(t *testing.T) {
	log, logs := observed()
	cfg := model.NewConfiguration()
	cfg.ArtworkWidthCm, cfg.ArtworkHeightCm, cfg.FaceWidthCm = 0, 0, 0

	img, _ := NewCompositor(log, stubSource{}).Render(cfg, testCatalog(), 500)
	assert.Equal(t, 1, img.Bounds().Dx())
	assert.Equal(t, 1, logs.FilterMessage("nothing to render").Len())
}

func TestShapeMaskRoundedCorners(t *testing.T) {
	m := newShapeMask(model.ShapeRect, rectOf(0, 0, 100, 100))
	assert.Equal(t, color.Transparent, m.At(0, 0))
	assert.Equal(t, color.Opaque, m.At(50, 0))
	assert.Equal(t, color.Opaque, m.At(50, 50))

	ov := newShapeMask(model.ShapeOval, rectOf(0, 0, 200, 100))
	assert.Equal(t, color.Opaque, ov.At(100, 50))
	assert.Equal(t, color.Transparent, ov.At(5, 5))
}

func TestParseHexColor(t *testing.T) {
	assert.Equal(t, color.RGBA{R: 0xab, G: 0xcd, B: 0xef, A: 0xff}, ParseHexColor("#abcdef", NeutralMat))
	assert.Equal(t, NeutralMat, ParseHexColor("blue", NeutralMat))
	assert.Equal(t, NeutralMat, ParseHexColor("#zzzzzz", NeutralMat))
}

func TestPlaceholderSizes(t *testing.T) {
	assert.Equal(t, image.Rect(0, 0, 1, 1), Placeholder(0, -3, "x").Bounds())
	p := Placeholder(200, 100, "No image")
	assert.Equal(t, placeholderLine, p.RGBAAt(0, 0))
}

func TestSnapshotGuardDiscardsStale(t *testing.T) {
	var g SnapshotGuard
	first := g.Begin()
	second := g.Begin()

	assert.False(t, g.Current(first))
	assert.True(t, g.Current(second))

	g.Invalidate()
	assert.False(t, g.Current(second))
}

func TestFileLoader(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "art.png")
	require.NoError(t, SavePNG(path, solid(8, 6, color.RGBA{G: 0xff, A: 0xff})))

	l := NewFileLoader(1)
	img, err := l.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 8, img.Bounds().Dx())

	_, err = l.Load("")
	assert.ErrorIs(t, err, ErrNoImage)

	_, err = l.Load(filepath.Join(dir, "missing.png"))
	assert.Error(t, err)

	l.Forget(path)
	assert.Empty(t, l.entries)
}

func TestEncodePNG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, EncodePNG(&buf, solid(3, 3, NeutralMat)))
	img, err := imaging.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 3, img.Bounds().Dx())
}

func rectOf(x, y, w, h float64) geom.Rect {
	return geom.Rect{X: x, Y: y, W: w, H: h}
}

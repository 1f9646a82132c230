package render

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoomTransformRoundTrip(t *testing.T) {
	tr := RoomTransform{
		Placement: RoomPlacement{CenterX: 400, CenterY: 300, Scale: 0.5, RotationDeg: 30},
		FrameW:    200,
		FrameH:    100,
	}
	for _, p := range [][2]float64{{0, 0}, {200, 100}, {37, 81}} {
		cx, cy := tr.ToCanvas(p[0], p[1])
		x, y := tr.FromCanvas(cx, cy)
		assert.InDelta(t, p[0], x, 1e-9)
		assert.InDelta(t, p[1], y, 1e-9)
	}

	cx, cy := tr.ToCanvas(100, 50)
	assert.InDelta(t, 400.0, cx, 1e-9, "frame centre lands on the placement centre")
	assert.InDelta(t, 300.0, cy, 1e-9)
}

func TestRoomTransformDeltaToLocal(t *testing.T) {
	tr := RoomTransform{Placement: RoomPlacement{Scale: 2, RotationDeg: 90}}

	// with a quarter turn counter-clockwise, frame-local +x points up the canvas
	dx, dy := tr.DeltaToLocal(0, -10)
	assert.InDelta(t, 5.0, dx, 1e-9)
	assert.InDelta(t, 0.0, dy, 1e-9)

	zero := RoomTransform{}
	dx, dy = zero.DeltaToLocal(3, 4)
	assert.Equal(t, 0.0, dx)
	assert.Equal(t, 0.0, dy)
}

func TestRenderRoomPlacesFrame(t *testing.T) {
	blue := color.RGBA{B: 0xff, A: 0xff}
	frame := solid(100, 80, blue)
	c := NewCompositor(nil, stubSource{})

	p := RoomPlacement{CenterX: 200, CenterY: 150, Scale: 1}
	out, tr := c.RenderRoom(frame, RoomBackground{Kind: BackgroundTexture, Seed: 7}, p, 400, 300)

	require.Equal(t, image.Rect(0, 0, 400, 300), out.Bounds())
	px := out.NRGBAAt(200, 150)
	assert.Equal(t, uint8(0xff), px.B)
	assert.Less(t, px.R, uint8(16))
	assert.InDelta(t, 100.0, tr.FrameW, 1e-9)

	corner := out.NRGBAAt(5, 5)
	assert.Greater(t, corner.R, uint8(0xc0), "wall shows around the frame")
}

func TestRenderRoomBackgroundFallback(t *testing.T) {
	log, logs := observed()
	c := NewCompositor(log, stubSource{})

	out, _ := c.RenderRoom(solid(10, 10, NeutralMat), RoomBackground{Kind: BackgroundPhoto, Ref: "/nope.jpg"},
		DefaultPlacement(300, 200, 10), 300, 200)
	assert.Equal(t, 300, out.Bounds().Dx())
	assert.Equal(t, 1, logs.FilterMessage("room background failed, using texture").Len())
}

func TestWallTextureDeterministic(t *testing.T) {
	a := WallTexture(64, 48, 3)
	b := WallTexture(64, 48, 3)
	assert.Equal(t, a.Pix, b.Pix)
}

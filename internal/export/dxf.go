package export

import (
	"fmt"
	"math"

	"github.com/piwi3910/FrameShop/internal/geom"
	"github.com/piwi3910/FrameShop/internal/model"
	"github.com/piwi3910/FrameShop/internal/render"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/drawing"
)

const (
	// mmPerCm is also the scene scale, so scene pixels are millimetres.
	mmPerCm = 10.0
	// pieceGap separates mat boards laid out side by side.
	pieceGap = 20.0
	// ovalSegments is the number of polyline vertices per oval window.
	ovalSegments = 72
)

// MatCutDrawing lays out every mat board of a build in millimetres with the
// origin at the bottom left. Stacked mats become separate boards placed left
// to right, each with its own window. A pro-mode board carries one cut per
// opening.
func MatCutDrawing(cfg model.Configuration) (*drawing.Drawing, error) {
	mats := cfg.ActiveMats()
	if len(mats) == 0 {
		return nil, fmt.Errorf("configuration has no mats to cut")
	}
	scene := render.BuildSceneAt(cfg, model.Catalog{}, mmPerCm)
	board := scene.Visible
	if !geom.Positive(board.W) || !geom.Positive(board.H) {
		return nil, fmt.Errorf("mat board has no area")
	}

	d := dxf.NewDrawing()
	if cfg.Mode() == model.ModePro {
		if err := addRect(d, 0, board.H, rel(board, board)); err != nil {
			return nil, err
		}
		for _, po := range scene.Openings {
			if err := addOpening(d, 0, board.H, po.Opening.Shape, rel(board, po.Rect)); err != nil {
				return nil, err
			}
		}
		return d, nil
	}

	for i := range scene.Mats {
		window := scene.Window
		if i+1 < len(scene.Mats) {
			window = scene.Mats[i+1].Rect
		}
		offsetX := float64(i) * (board.W + pieceGap)
		if err := addRect(d, offsetX, board.H, rel(board, board)); err != nil {
			return nil, err
		}
		if err := addRect(d, offsetX, board.H, rel(board, window)); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// ExportMatCutDXF writes the mat-cut drawing for a build.
func ExportMatCutDXF(path string, cfg model.Configuration) error {
	d, err := MatCutDrawing(cfg)
	if err != nil {
		return err
	}
	if err := d.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save DXF: %w", err)
	}
	return nil
}

// rel expresses r relative to the board's top-left corner.
func rel(board, r geom.Rect) geom.Rect {
	return r.Translate(-board.X, -board.Y)
}

// toDXF flips a top-down y into DXF's bottom-up y.
func toDXF(offsetX, boardH, x, y float64) []float64 {
	return []float64{offsetX + x, boardH - y}
}

func addRect(d *drawing.Drawing, offsetX, boardH float64, r geom.Rect) error {
	_, err := d.LwPolyline(true,
		toDXF(offsetX, boardH, r.X, r.Y),
		toDXF(offsetX, boardH, r.Right(), r.Y),
		toDXF(offsetX, boardH, r.Right(), r.Bottom()),
		toDXF(offsetX, boardH, r.X, r.Bottom()),
	)
	if err != nil {
		return fmt.Errorf("failed to add rectangle: %w", err)
	}
	return nil
}

func addOpening(d *drawing.Drawing, offsetX, boardH float64, shape model.Shape, r geom.Rect) error {
	switch shape {
	case model.ShapeCircle:
		cx, cy := r.Center()
		p := toDXF(offsetX, boardH, cx, cy)
		if _, err := d.Circle(p[0], p[1], 0, math.Min(r.W, r.H)/2); err != nil {
			return fmt.Errorf("failed to add circle: %w", err)
		}
		return nil
	case model.ShapeOval:
		_, err := d.LwPolyline(true, ellipsePoints(offsetX, boardH, r, ovalSegments)...)
		if err != nil {
			return fmt.Errorf("failed to add oval: %w", err)
		}
		return nil
	default:
		return addRect(d, offsetX, boardH, r)
	}
}

// ellipsePoints samples the ellipse inscribed in r.
func ellipsePoints(offsetX, boardH float64, r geom.Rect, n int) [][]float64 {
	cx, cy := r.Center()
	rx, ry := r.W/2, r.H/2
	pts := make([][]float64, n)
	for i := 0; i < n; i++ {
		a := 2 * math.Pi * float64(i) / float64(n)
		pts[i] = toDXF(offsetX, boardH, cx+rx*math.Cos(a), cy+ry*math.Sin(a))
	}
	return pts
}

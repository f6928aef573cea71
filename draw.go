package lasso

import (
	"image/color"

	"gioui.org/f32"
	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
)

var (
	outlineColor   = color.NRGBA{R: 0x21, G: 0x96, B: 0xf3, A: 0xff}
	fillColor      = color.NRGBA{R: 0x21, G: 0x96, B: 0xf3, A: 0x40}
	indicatorColor = color.NRGBA{R: 0xe9, G: 0x1e, B: 0x63, A: 0x60}
)

// outlineWidth is the stroke thickness of the traced boundary.
const outlineWidth = 2

// drawSelection renders the traced path as a stroked outline with a
// semi-transparent polygon fill, plus the influence-radius circle around
// the cursor while the selection is being edited.
func (g *Gui) drawSelection(gtx layout.Context) {
	pts := g.sel.Path()

	if len(pts) > 1 {
		if len(pts) >= MinPathPoints {
			paint.FillShape(gtx.Ops, fillColor,
				clip.Outline{Path: g.tracePath(gtx, pts, true)}.Op(),
			)
		}
		paint.FillShape(gtx.Ops, outlineColor,
			clip.Stroke{Path: g.tracePath(gtx, pts, false), Width: outlineWidth}.Op(),
		)
	}

	if g.sel.Mode() == ModeEditing {
		g.drawIndicator(gtx, g.sel.Cursor(), g.sel.Config().InfluenceRadius)
	}
}

// tracePath replays the selection points into a Gio path spec.
func (g *Gui) tracePath(gtx layout.Context, pts []Point, closed bool) clip.PathSpec {
	var path clip.Path

	path.Begin(gtx.Ops)
	path.MoveTo(g.point(pts[0]))
	for _, pt := range pts[1:] {
		path.LineTo(g.point(pt))
	}
	if closed {
		path.Close()
	}
	return path.End()
}

// drawIndicator draws the influence zone of the relaxation process as a
// semi-transparent circle centered at the cursor.
func (g *Gui) drawIndicator(gtx layout.Context, cursor Point, radius float64) {
	circle := clip.Ellipse(f32.Rectangle{
		Min: f32.Pt(float32(cursor.X-radius), float32(cursor.Y-radius)),
		Max: f32.Pt(float32(cursor.X+radius), float32(cursor.Y+radius)),
	})
	paint.FillShape(gtx.Ops, indicatorColor, circle.Op(gtx.Ops))
}

// point converts a selection point to a Gio f32.Point.
func (g *Gui) point(p Point) f32.Point {
	return f32.Point{
		X: float32(p.X),
		Y: float32(p.Y),
	}
}

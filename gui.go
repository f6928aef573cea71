package lasso

import (
	"context"
	"image"
	"log"
	"math"

	"gioui.org/app"
	"gioui.org/io/key"
	"gioui.org/io/pointer"
	"gioui.org/io/system"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget"
)

const (
	maxScreenX = 1366
	maxScreenY = 768
)

// Gui is the basic struct containing all of the information needed for
// the interactive selection session. It feeds the pointer events into the
// selector, keeps the window content in sync with the traced path and
// triggers the export on demand.
type Gui struct {
	cfg struct {
		window struct {
			w     float64
			h     float64
			title string
		}
	}
	sel   *Selector
	src   *image.NRGBA
	scale float64

	// OnExport is invoked when the export key is pressed. It is only
	// called once the path holds enough points to describe a region.
	OnExport func() error

	ops op.Ops
}

// NewGUI initializes the Gio interface of a selection session. The window is
// sized to the source image scaled by the given display factor.
func NewGUI(src *image.NRGBA, sel *Selector, scale float64) *Gui {
	gui := &Gui{
		sel:   sel,
		src:   src,
		scale: scale,
	}
	gui.cfg.window.w = float64(src.Bounds().Dx()) * scale
	gui.cfg.window.h = float64(src.Bounds().Dy()) * scale
	gui.cfg.window.title = "Trace a region, hold the cursor near the boundary to refine it..."

	return gui
}

// DisplayScale returns the factor shrinking the image natural size to fit
// the predefined screen bounds, preserving the aspect ratio. Images smaller
// than the screen bounds are displayed at their natural size.
func DisplayScale(w, h int) float64 {
	if w <= maxScreenX && h <= maxScreenY {
		return 1
	}
	return math.Min(float64(maxScreenX)/float64(w), float64(maxScreenY)/float64(h))
}

// Run is the core method of the Gio GUI application: it dispatches the
// pointer events into the selector, starts the relaxation loop once the
// selection switches to the editing mode and terminates when the window
// gets closed. The relaxation loop is scoped to this call through a
// cancellable context, so it can never outlive the session.
func (g *Gui) Run() error {
	w := app.NewWindow(app.Title(g.cfg.window.title), app.Size(
		unit.Px(float32(g.cfg.window.w)),
		unit.Px(float32(g.cfg.window.h)),
	))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	defer g.sel.Stop()

	relaxing := false

	for e := range w.Events() {
		switch e := e.(type) {
		case system.FrameEvent:
			gtx := layout.NewContext(&g.ops, e)
			w.Invalidate()

			g.frame(gtx)

			if !relaxing && g.sel.Mode() == ModeEditing {
				relaxing = true
				go NewRelaxer(g.sel).Run(ctx)
			}
			e.Frame(gtx.Ops)
		case key.Event:
			if e.State != key.Press {
				break
			}
			switch e.Name {
			case key.NameEscape:
				w.Close()
			case "S":
				if g.OnExport == nil || len(g.sel.Path()) < MinPathPoints {
					break
				}
				if err := g.OnExport(); err != nil {
					log.Printf("could not export the clipped selection: %v", err)
				}
			}
		case system.DestroyEvent:
			return e.Err
		}
	}
	return nil
}

// frame renders a single frame: the source image, the traced selection
// and, while editing, the influence radius indicator around the cursor.
func (g *Gui) frame(gtx layout.Context) {
	for _, ev := range gtx.Events(g) {
		pe, ok := ev.(pointer.Event)
		if !ok {
			continue
		}
		pt := Point{X: float64(pe.Position.X), Y: float64(pe.Position.Y)}

		switch pe.Type {
		case pointer.Press:
			g.sel.PointerDown(pt)
		case pointer.Drag, pointer.Move:
			g.sel.PointerMove(pt)
		case pointer.Release:
			g.sel.PointerUp()
		}
	}

	src := paint.NewImageOp(g.src)
	src.Add(gtx.Ops)

	widget.Image{
		Src:   src,
		Scale: 1 / float32(gtx.Px(unit.Dp(1))),
		Fit:   widget.Contain,
	}.Layout(gtx)

	g.drawSelection(gtx)

	defer clip.Rect(image.Rectangle{Max: gtx.Constraints.Max}).Push(gtx.Ops).Pop()
	pointer.InputOp{
		Tag:   g,
		Types: pointer.Press | pointer.Drag | pointer.Move | pointer.Release,
	}.Add(gtx.Ops)
}

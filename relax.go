package lasso

import (
	"context"
	"math"
	"time"
)

// relaxPoints nudges every point lying within the influence radius of the
// cursor toward it. The nudge amount falls off linearly with the distance:
// a point at the radius boundary barely moves, a point right under the
// cursor moves by damping*radius. This is a single Euler step per tick,
// not an iterative solve.
func relaxPoints(pts []Point, cursor Point, radius, damping float64) {
	for i, pt := range pts {
		d := pt.Dist(cursor)
		if d > radius {
			continue
		}
		angle := math.Atan2(cursor.Y-pt.Y, cursor.X-pt.X)
		amount := damping * (radius - d)

		pts[i].X = pt.X + amount*math.Cos(angle)
		pts[i].Y = pt.Y + amount*math.Sin(angle)
	}
}

// Relaxer drives the periodic relaxation of a selector. The tick fires on a
// fixed interval and is a no-op unless the selection is in editing mode.
type Relaxer struct {
	sel      *Selector
	interval time.Duration
}

// NewRelaxer creates the periodic driver for the given selector.
func NewRelaxer(sel *Selector) *Relaxer {
	return &Relaxer{
		sel:      sel,
		interval: sel.Config().TickInterval,
	}
}

// Run applies the relaxation step on every tick until the context is
// cancelled. The ticker is owned by this call, so cancelling the context
// is guaranteed to release it; the caller scopes the context to the
// editing mode lifetime.
func (r *Relaxer) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			r.sel.Relax(now)
		}
	}
}

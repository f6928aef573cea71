package imop

// The supported separable blend modes.
const (
	Darken   = "darken"
	Lighten  = "lighten"
	Multiply = "multiply"
	Screen   = "screen"
	Overlay  = "overlay"
)

// Blend holds the currently active blend mode.
type Blend struct {
	OpType string
}

// NewBlend initializes a new Blend.
func NewBlend() *Blend {
	return &Blend{}
}

// Set activates one of the supported blend modes.
func (o *Blend) Set(opType string) {
	bModes := []string{Darken, Lighten, Multiply, Screen, Overlay}

	for _, m := range bModes {
		if m == opType {
			o.OpType = opType
			return
		}
	}
}

// Get returns the currently active blend mode.
func (o *Blend) Get() string {
	return o.OpType
}

// apply mixes the composition result with the backdrop channels
// using the active blend formula.
func (o *Blend) apply(rs, gs, bs, as, rb, gb, bb, ab float64) (r, g, b, a float64) {
	switch o.OpType {
	case Darken:
		return min(rs, rb), min(gs, gb), min(bs, bb), min(as, ab)
	case Lighten:
		return max(rs, rb), max(gs, gb), max(bs, bb), max(as, ab)
	case Multiply:
		return rs * rb, gs * gb, bs * bb, as * ab
	case Screen:
		return 1 - (1-rs)*(1-rb), 1 - (1-gs)*(1-gb), 1 - (1-bs)*(1-bb), 1 - (1-as)*(1-ab)
	case Overlay:
		return overlay(rs, rb), overlay(gs, gb), overlay(bs, bb), overlay(as, ab)
	}
	return rs, gs, bs, as
}

func overlay(s, b float64) float64 {
	if s <= 0.5 {
		return 2 * s * b
	}
	return 1 - 2*(1-s)*(1-b)
}

func min(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func max(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

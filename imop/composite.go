// Package imop implements the Porter-Duff composition operations
// used for mixing a graphic element with its backdrop.
// Porter and Duff presented in their paper 12 different composition
// operations, but the image/draw core package implements only the
// source-over-destination and source ones. This package is aimed to
// overcome the missing composite operations.
//
// The lasso exporter relies on the destination-in operator to retain
// the source image pixels only where the rasterized selection mask is
// opaque, and on the blend modes to produce the debug mask overlay.
package imop

import (
	"image"
	"image/color"
)

// The supported composite operations.
const (
	Clear   = "clear"
	Copy    = "copy"
	Dst     = "dst"
	SrcOver = "src_over"
	DstOver = "dst_over"
	SrcIn   = "src_in"
	DstIn   = "dst_in"
	SrcOut  = "src_out"
	DstOut  = "dst_out"
	SrcAtop = "src_atop"
	DstAtop = "dst_atop"
	Xor     = "xor"
)

// Bitmap holds the destination raster the composition is drawn onto.
type Bitmap struct {
	Img *image.NRGBA
}

// NewBitmap allocates a composition raster of the given size.
func NewBitmap(rect image.Rectangle) *Bitmap {
	return &Bitmap{
		Img: image.NewNRGBA(rect),
	}
}

// Composite holds the currently active composite operation.
type Composite struct {
	current string
	ops     []string
}

// InitOp initializes a new Composite with Copy as the default operation.
func InitOp() *Composite {
	return &Composite{
		current: Copy,
		ops: []string{
			Clear,
			Copy,
			Dst,
			SrcOver,
			DstOver,
			SrcIn,
			DstIn,
			SrcOut,
			DstOut,
			SrcAtop,
			DstAtop,
			Xor,
		},
	}
}

// Set activates one of the supported composite operations.
func (op *Composite) Set(cop string) {
	for _, o := range op.ops {
		if o == cop {
			op.current = cop
			return
		}
	}
}

// Get returns the currently active composite operation.
func (op *Composite) Get() string {
	return op.current
}

// fragments returns the source and backdrop contribution factors Fa and Fb
// of the active operation, following the general Porter-Duff formula:
//
//	co = as x Fa x Cs + ab x Fb x Cb
//	ao = as x Fa + ab x Fb
func (op *Composite) fragments(as, ab float64) (fa, fb float64) {
	switch op.current {
	case Clear:
		return 0, 0
	case Copy:
		return 1, 0
	case Dst:
		return 0, 1
	case SrcOver:
		return 1, 1 - as
	case DstOver:
		return 1 - ab, 1
	case SrcIn:
		return ab, 0
	case DstIn:
		return 0, as
	case SrcOut:
		return 1 - ab, 0
	case DstOut:
		return 0, 1 - as
	case SrcAtop:
		return ab, 1 - as
	case DstAtop:
		return 1 - ab, as
	case Xor:
		return 1 - ab, 1 - as
	}
	return 1, 0
}

// Draw applies the active composite operation over the source and backdrop
// images and writes the result into the bitmap raster. When a blend mode is
// provided the blending formula is applied on top of the composition result.
func (op *Composite) Draw(bitmap *Bitmap, src, backdrop *image.NRGBA, blend *Blend) {
	dx, dy := src.Bounds().Dx(), src.Bounds().Dy()
	if bitmap == nil {
		bitmap = NewBitmap(src.Bounds())
	}

	for x := 0; x < dx; x++ {
		for y := 0; y < dy; y++ {
			cs := src.NRGBAAt(x, y)
			cb := backdrop.NRGBAAt(x, y)

			rsn := float64(cs.R) / 255
			gsn := float64(cs.G) / 255
			bsn := float64(cs.B) / 255
			asn := float64(cs.A) / 255

			rbn := float64(cb.R) / 255
			gbn := float64(cb.G) / 255
			bbn := float64(cb.B) / 255
			abn := float64(cb.A) / 255

			fa, fb := op.fragments(asn, abn)

			rn := asn*fa*rsn + abn*fb*rbn
			gn := asn*fa*gsn + abn*fb*gbn
			bn := asn*fa*bsn + abn*fb*bbn
			an := asn*fa + abn*fb

			if blend != nil {
				rn, gn, bn, an = blend.apply(rn, gn, bn, an, rbn, gbn, bbn, abn)
			}

			bitmap.Img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(rn*255 + 0.5),
				G: uint8(gn*255 + 0.5),
				B: uint8(bn*255 + 0.5),
				A: uint8(an*255 + 0.5),
			})
		}
	}
}

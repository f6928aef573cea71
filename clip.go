package lasso

import (
	"image"
	"image/draw"
	"image/jpeg"
	"image/png"
	"io"
	"math"

	"github.com/disintegration/imaging"
	"github.com/esimov/lasso/imop"
	"github.com/pkg/errors"
	"golang.org/x/image/bmp"
	"golang.org/x/image/vector"
)

var (
	// ErrNotReady is returned when the export is attempted before an image
	// has been loaded or before the path holds enough points.
	ErrNotReady = errors.New("the source image is not loaded or the path holds less than three points")

	// ErrDegenerateRegion is returned when the traced path collapses into a
	// zero-area bounding box, e.g. when all of its points are collinear.
	ErrDegenerateRegion = errors.New("the selection bounding box has no area")
)

// maskThreshold is the coverage level above which a mask pixel counts as
// inside the polygon. The rasterizer reports fractional edge coverage, but
// the clipping mask is binary: a pixel is either kept or discarded.
const maskThreshold = 0x80

// Clipper cuts the traced region out of the source image: it rasterizes the
// closed path into a binary mask, composites the mask against the image with
// the destination-in operator and crops the result to the path bounding box.
//
// The path points are expressed in display space. Whenever the displayed
// size differs from the natural image size, ScaleX and ScaleY must carry the
// natural/display ratios so the points can be mapped onto natural pixels.
type Clipper struct {
	ScaleX float64
	ScaleY float64

	op *imop.Composite
}

// NewClipper returns a clipper assuming identical display and natural sizes.
func NewClipper() *Clipper {
	return &Clipper{
		ScaleX: 1,
		ScaleY: 1,
		op:     imop.InitOp(),
	}
}

// Clip extracts the region outlined by the path from the source image and
// returns it as a tightly-cropped raster: pixels inside the polygon keep
// their original color and alpha, everything outside is fully transparent.
// Clip does not mutate the source image or the path and produces identical
// output when called repeatedly against the same inputs.
func (c *Clipper) Clip(src *image.NRGBA, pts []Point) (*image.NRGBA, error) {
	rect, scaled, err := c.clipRegion(src, pts)
	if err != nil {
		return nil, err
	}

	canvas := image.NewNRGBA(src.Bounds())
	draw.Draw(canvas, src.Bounds(), src, image.Point{}, draw.Src)

	mask := rasterizeMask(src.Bounds(), scaled)
	out := imop.NewBitmap(src.Bounds())

	c.op.Set(imop.DstIn)
	c.op.Draw(out, mask, canvas, nil)

	return imaging.Crop(out.Img, rect), nil
}

// MaskOverlay renders the selection mask screen-blended over the source
// image. It is the debug companion of Clip: the output shows which pixels
// the binary mask retains without cropping anything.
func (c *Clipper) MaskOverlay(src *image.NRGBA, pts []Point) (*image.NRGBA, error) {
	_, scaled, err := c.clipRegion(src, pts)
	if err != nil {
		return nil, err
	}

	mask := rasterizeMask(src.Bounds(), scaled)
	out := imop.NewBitmap(src.Bounds())

	blend := imop.NewBlend()
	blend.Set(imop.Screen)

	c.op.Set(imop.SrcOver)
	c.op.Draw(out, mask, src, blend)

	return out.Img, nil
}

// clipRegion validates the export preconditions and returns the integer
// crop rectangle together with the path points mapped to natural pixels.
// The degenerate region check runs before any raster gets allocated.
func (c *Clipper) clipRegion(src *image.NRGBA, pts []Point) (image.Rectangle, []Point, error) {
	if src == nil || len(pts) < MinPathPoints {
		return image.Rectangle{}, nil, ErrNotReady
	}

	scaled := make([]Point, len(pts))
	for i, pt := range pts {
		scaled[i] = Point{X: pt.X * c.ScaleX, Y: pt.Y * c.ScaleY}
	}

	minX, minY := scaled[0].X, scaled[0].Y
	maxX, maxY := minX, minY
	for _, pt := range scaled[1:] {
		minX = math.Min(minX, pt.X)
		minY = math.Min(minY, pt.Y)
		maxX = math.Max(maxX, pt.X)
		maxY = math.Max(maxY, pt.Y)
	}

	// The area check runs on the float extents: a collinear path at a
	// fractional coordinate has zero width but would still round to a
	// one pixel wide rectangle.
	if maxX-minX <= 0 || maxY-minY <= 0 {
		return image.Rectangle{}, nil, errors.Wrap(ErrDegenerateRegion, "cannot clip the selection")
	}

	rect := image.Rect(
		int(math.Floor(minX)), int(math.Floor(minY)),
		int(math.Ceil(maxX)), int(math.Ceil(maxY)),
	)
	return rect, scaled, nil
}

// rasterizeMask fills the closed polygon described by the points into a
// binary alpha mask: opaque white inside, fully transparent outside. The
// fractional edge coverage reported by the rasterizer is thresholded, the
// mask edges are intentionally hard.
func rasterizeMask(bounds image.Rectangle, pts []Point) *image.NRGBA {
	rz := vector.NewRasterizer(bounds.Dx(), bounds.Dy())
	rz.DrawOp = draw.Src

	rz.MoveTo(float32(pts[0].X), float32(pts[0].Y))
	for _, pt := range pts[1:] {
		rz.LineTo(float32(pt.X), float32(pt.Y))
	}
	rz.ClosePath()

	cov := image.NewAlpha(bounds)
	rz.Draw(cov, bounds, image.Opaque, image.Point{})

	mask := image.NewNRGBA(bounds)
	for i, a := range cov.Pix {
		if a >= maskThreshold {
			mask.Pix[i*4+0] = 0xff
			mask.Pix[i*4+1] = 0xff
			mask.Pix[i*4+2] = 0xff
			mask.Pix[i*4+3] = 0xff
		}
	}
	return mask
}

// Encode writes the clipped image into the destination writer using the
// format matching the file extension. PNG is the default, since it is the
// only listed format retaining the transparency outside the clipped region.
func Encode(w io.Writer, img image.Image, ext string) error {
	switch ext {
	case "", ".png":
		return png.Encode(w, img)
	case ".jpg", ".jpeg":
		return jpeg.Encode(w, img, &jpeg.Options{Quality: 100})
	case ".bmp":
		return bmp.Encode(w, img)
	}
	return errors.Errorf("unsupported image format: %v", ext)
}

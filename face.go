package lasso

import (
	"image"
	"math"

	"github.com/esimov/lasso/utils"
	pigo "github.com/esimov/pigo/core"
	"github.com/pkg/errors"
)

// facePathPoints is the number of boundary points of a face-seeded path.
// The ellipse is dense enough for the relaxation nudges to shape it locally.
const facePathPoints = 64

// qThresh is the minimum detection quality accepted as a real face.
const qThresh = 5.0

// SeedFace detects the most prominent face on the source image and returns a
// closed elliptical path traced around it. The returned path can be adopted
// by a selector as the starting selection and refined with relaxation.
func SeedFace(cascade []byte, src *image.NRGBA, angle float64) (*Path, error) {
	p := pigo.NewPigo()

	// Unpack the binary cascade file. This returns the number of cascade
	// trees, the tree depth, the threshold and the leaf node predictions.
	classifier, err := p.Unpack(cascade)
	if err != nil {
		return nil, errors.Wrap(err, "error unpacking the cascade file")
	}

	cols, rows := src.Bounds().Dx(), src.Bounds().Dy()
	cParams := pigo.CascadeParams{
		MinSize:     20,
		MaxSize:     utils.Min(cols, rows),
		ShiftFactor: 0.1,
		ScaleFactor: 1.1,
		ImageParams: pigo.ImageParams{
			Pixels: pigo.RgbToGrayscale(src),
			Rows:   rows,
			Cols:   cols,
			Dim:    cols,
		},
	}

	dets := classifier.RunCascade(cParams, angle)
	dets = classifier.ClusterDetections(dets, 0.2)

	best := pigo.Detection{}
	for _, det := range dets {
		if det.Q >= qThresh && det.Scale > best.Scale {
			best = det
		}
	}
	if best.Scale == 0 {
		return nil, errors.New("no face has been detected on the source image")
	}

	return ellipsePath(
		Point{X: float64(best.Col), Y: float64(best.Row)},
		float64(best.Scale)/2,
	), nil
}

// ellipsePath traces a closed circular path of facePathPoints points
// around the center.
func ellipsePath(center Point, radius float64) *Path {
	step := 2 * math.Pi / facePathPoints

	path := NewPath(Point{
		X: center.X + radius,
		Y: center.Y,
	})
	for i := 1; i < facePathPoints; i++ {
		a := step * float64(i)
		path.Append(Point{
			X: center.X + radius*math.Cos(a),
			Y: center.Y + radius*math.Sin(a),
		})
	}
	path.Close()

	return path
}

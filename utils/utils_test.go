package utils

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestUtils_ShouldBeValidUrl(t *testing.T) {
	ok := IsValidUrl("https://github.com/esimov/lasso/")
	if !ok {
		t.Errorf("A valid URL should have been provided")
	}

	ok = IsValidUrl("testdata/sample.png")
	if ok {
		t.Errorf("A local path should not be reported as a valid URL")
	}
}

func TestUtils_ShouldDetectValidFileType(t *testing.T) {
	sampleImg := filepath.Join(t.TempDir(), "sample.png")

	f, err := os.Create(sampleImg)
	if err != nil {
		t.Fatalf("could not create the sample image: %v", err)
	}
	if err := png.Encode(f, image.NewNRGBA(image.Rect(0, 0, 10, 10))); err != nil {
		t.Fatalf("could not encode the sample image: %v", err)
	}
	f.Close()

	ftype, err := DetectContentType(sampleImg)
	if err != nil {
		t.Fatalf("could not detect content type: %v", err)
	}

	if !strings.Contains(ftype.(string), "image") {
		t.Errorf("Content type expected to be of type image, got: %v", ftype)
	}
}

func TestUtils_MathHelpers(t *testing.T) {
	if Min(2, 7) != 2 {
		t.Errorf("Min expected to return the smaller value")
	}
	if Max(2, 7) != 7 {
		t.Errorf("Max expected to return the bigger value")
	}
	if Abs(-3.5) != 3.5 {
		t.Errorf("Abs expected to return the absolute value")
	}
}

func TestUtils_FormatTime(t *testing.T) {
	if got := FormatTime(1500 * time.Millisecond); got != "1.50s" {
		t.Errorf("Expected 1.50s, got %v", got)
	}
	if got := FormatTime(90 * time.Second); got != "1m 30.00s" {
		t.Errorf("Expected 1m 30.00s, got %v", got)
	}
	if got := FormatTime(2*time.Hour + 5*time.Minute); got != "2h 5m 0.00s" {
		t.Errorf("Expected 2h 5m 0.00s, got %v", got)
	}
}

func TestUtils_Contains(t *testing.T) {
	ops := []string{"dst_in", "src_over"}

	if !Contains(ops, "dst_in") {
		t.Errorf("Contains expected to report an existing value")
	}
	if Contains(ops, "xor") {
		t.Errorf("Contains expected to reject a missing value")
	}
}

func TestUtils_HexToRGBA(t *testing.T) {
	col := HexToRGBA("#ff0000")
	if col.R != 0xff || col.G != 0 || col.B != 0 || col.A != 0xff {
		t.Errorf("Expected pure red, got: %v", col)
	}

	short := HexToRGBA("#fff")
	if short.R != 0xff || short.G != 0xff || short.B != 0xff {
		t.Errorf("Expected white, got: %v", short)
	}
}

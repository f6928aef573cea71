package utils

import (
	"fmt"
	"image/color"
	"strings"
)

// Contains reports whether the slice holds the searched value.
func Contains[T comparable](values []T, val T) bool {
	for _, v := range values {
		if v == val {
			return true
		}
	}
	return false
}

// HexToRGBA converts a color expressed as a hexadecimal string
// (in the #fff or #ffffff form) to color.NRGBA.
func HexToRGBA(hex string) color.NRGBA {
	hex = strings.TrimPrefix(hex, "#")

	var r, g, b uint8
	switch len(hex) {
	case 3:
		fmt.Sscanf(hex, "%1x%1x%1x", &r, &g, &b)
		r *= 17
		g *= 17
		b *= 17
	case 6:
		fmt.Sscanf(hex, "%02x%02x%02x", &r, &g, &b)
	}

	return color.NRGBA{R: r, G: g, B: b, A: 0xff}
}

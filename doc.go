/*
Package lasso implements freehand region selection over an image: the traced
boundary can be refined by holding the cursor near it (the boundary points are
relaxed toward a slowly moving cursor), then the region gets exported as a new,
tightly-cropped image retaining only the pixels inside the selection.

The package provides a command line interface. To check the supported commands type:

	$ lasso --help

In case you wish to integrate the API in a self constructed environment here is a simple example:

	package main

	import (
		"log"
		"os"

		"github.com/esimov/lasso"
	)

	func main() {
		src, err := lasso.DecodeImage(os.Stdin)
		if err != nil {
			log.Fatalf("error decoding the source image: %v", err)
		}

		sel := lasso.NewSelector(lasso.DefaultConfig(), 300, 300)
		sel.PointerDown(lasso.Point{X: 100, Y: 100})
		sel.PointerMove(lasso.Point{X: 200, Y: 100})
		sel.PointerMove(lasso.Point{X: 200, Y: 200})
		sel.PointerMove(lasso.Point{X: 100, Y: 200})
		sel.PointerUp()

		res, err := lasso.NewClipper().Clip(src, sel.Path())
		if err != nil {
			log.Fatalf("error clipping the selection: %v", err)
		}

		if err := lasso.Encode(os.Stdout, res, ".png"); err != nil {
			log.Fatalf("error encoding the clipped image: %v", err)
		}
	}
*/
package lasso

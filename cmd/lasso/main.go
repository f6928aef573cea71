package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"gioui.org/app"
	"github.com/esimov/lasso"
	"github.com/esimov/lasso/utils"
)

const HelpBanner = `
┬  ┌─┐┌─┐┌─┐┌─┐
│  ├─┤└─┐└─┐│ │
┴─┘┴ ┴└─┘└─┘└─┘

Freehand region selection and clip-and-crop export tool.
    Version: %s

`

// pipeName is the file name that indicates stdin/stdout is being used.
const pipeName = "-"

// Version indicates the current build version.
var Version string

var (
	// Flags
	source      = flag.String("in", pipeName, "Source image, directory or URL")
	destination = flag.String("out", "clipped-freehand-selection.png", "Destination")
	radius      = flag.Float64("radius", 15, "Influence radius of the boundary relaxation, in pixels")
	damping     = flag.Float64("damping", 0.1, "Damping factor of the boundary relaxation")
	speed       = flag.Float64("speed", 0.5, "Cursor speed threshold above which the relaxation is skipped, in px/ms")
	tick        = flag.Int("tick", 30, "Relaxation tick interval in milliseconds")
	delay       = flag.Int("delay", 1000, "Delay between the pointer release and the editing mode, in milliseconds")
	noScale     = flag.Bool("scale", false, "Display the image at its natural size, without fitting it to the screen")
	faceDetect  = flag.Bool("face", false, "Seed the selection with the detected face region")
	faceAngle   = flag.Float64("angle", 0.0, "Plane rotated faces angle")
	cascade     = flag.String("cc", "", "Cascade classifier")
	debug       = flag.Bool("debug", false, "Save the selection mask overlay next to the clipped output")
)

func main() {
	log.SetFlags(0)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, HelpBanner, Version)
		flag.PrintDefaults()
	}
	flag.Parse()

	if *faceDetect && len(*cascade) == 0 {
		log.Fatalf(utils.DecorateText("Please specify a face classifier in case you are using the -face flag!\n", utils.ErrorMessage))
	}

	session := &lasso.Session{
		Cfg: lasso.Config{
			CloseDelay:      time.Duration(*delay) * time.Millisecond,
			TickInterval:    time.Duration(*tick) * time.Millisecond,
			InfluenceRadius: *radius,
			Damping:         *damping,
			SpeedThreshold:  *speed,
		},
		Cascade:   *cascade,
		FaceAngle: *faceAngle,
		Face:      *faceDetect,
		Debug:     *debug,
		NoScale:   *noScale,
	}

	// The session windows are spawned from a separate goroutine:
	// the Gio event loop must own the main OS thread.
	go func() {
		session.Execute(&lasso.Ops{
			Src:      *source,
			Dst:      *destination,
			PipeName: pipeName,
		})
		os.Exit(0)
	}()
	app.Main()
}

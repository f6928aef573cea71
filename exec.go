package lasso

import (
	"errors"
	"fmt"
	"image"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/esimov/lasso/utils"
	"golang.org/x/term"
)

// Common file related variable
var fs os.FileInfo

// Ops holds the input and output locations of the selection session.
type Ops struct {
	Src, Dst, PipeName string
}

// Session bundles the selection parameters with the optional
// face seeding and debugging options of a selection run.
type Session struct {
	Cfg       Config
	Spinner   *utils.Spinner
	Cascade   string
	FaceAngle float64
	Face      bool
	Debug     bool
	NoScale   bool
}

// Execute runs the interactive selection process. The source can be a local
// image file, an image URL, a pipe or a directory; directories are walked
// recursively and a selection session is opened for each image in turn.
func (s *Session) Execute(op *Ops) {
	var err error
	defaultMsg := fmt.Sprintf("%s %s",
		utils.DecorateText("◉ LASSO", utils.StatusMessage),
		utils.DecorateText("⇢ clipping the traced selection...", utils.DefaultMessage),
	)
	s.Spinner = utils.NewSpinner(defaultMsg, time.Millisecond*80, true)

	// Supported files
	validExtensions := []string{".jpg", ".png", ".jpeg", ".bmp", ".gif"}

	// Check if source path is a local image or URL.
	if utils.IsValidUrl(op.Src) {
		src, err := utils.DownloadImage(op.Src)
		if src != nil {
			defer os.Remove(src.Name())
		}
		if err != nil {
			log.Fatalf(
				utils.DecorateText("Failed to load the source image: %v", utils.ErrorMessage),
				utils.DecorateText(err.Error(), utils.DefaultMessage),
			)
		}
		op.Src = src.Name()
		fs, err = src.Stat()
		if err != nil {
			log.Fatalf(
				utils.DecorateText("Failed to load the source image: %v", utils.ErrorMessage),
				utils.DecorateText(err.Error(), utils.DefaultMessage),
			)
		}
	} else {
		// Check if the source is a pipe name or a regular file.
		if op.Src == op.PipeName {
			fs, err = os.Stdin.Stat()
		} else {
			fs, err = os.Stat(op.Src)
		}
		if err != nil {
			log.Fatalf(
				utils.DecorateText("Failed to load the source image: %v", utils.ErrorMessage),
				utils.DecorateText(err.Error(), utils.DefaultMessage),
			)
		}
	}

	// Capture CTRL-C and restore back the cursor visibility.
	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-signalChan
		s.Spinner.RestoreCursor()
		os.Exit(1)
	}()

	now := time.Now()

	switch mode := fs.Mode(); {
	case mode.IsDir():
		// Read destination file or directory.
		if _, err := os.Stat(op.Dst); err != nil {
			if err = os.Mkdir(op.Dst, 0755); err != nil {
				log.Fatalf(
					utils.DecorateText("Unable to get dir stats: %v\n", utils.ErrorMessage),
					utils.DecorateText(err.Error(), utils.DefaultMessage),
				)
			}
		}

		// The selection sessions are interactive, one window at a time,
		// so the directory images are traversed strictly sequentially.
		done := make(chan interface{})
		defer close(done)

		paths, errc := walkDir(done, op.Src, validExtensions)
		for src := range paths {
			dst := filepath.Join(op.Dst, filepath.Base(src))
			err := s.process(op, src, dst)
			s.printOpStatus(op, dst, err)
		}
		if err := <-errc; err != nil {
			fmt.Fprint(os.Stderr, utils.DecorateText(err.Error(), utils.ErrorMessage))
		}

	case mode.IsRegular() || mode&os.ModeNamedPipe != 0: // check for regular files or pipe names
		ext := filepath.Ext(op.Dst)
		if !utils.Contains(validExtensions, ext) && op.Dst != op.PipeName {
			log.Fatalf(utils.DecorateText(fmt.Sprintf("%v file type not supported", ext), utils.ErrorMessage))
		}

		err = s.process(op, op.Src, op.Dst)
		s.printOpStatus(op, op.Dst, err)
	}
	fmt.Fprintf(os.Stderr, "\nSession time: %s\n",
		utils.DecorateText(utils.FormatTime(time.Since(now)), utils.SuccessMessage))
}

// process decodes the source image, opens the interactive session window
// and writes the clipped selection on each export trigger.
func (s *Session) process(op *Ops, in, out string) error {
	src, err := s.sourceToImage(op, in)
	if err != nil {
		return err
	}

	scale := DisplayScale(src.Bounds().Dx(), src.Bounds().Dy())
	if s.NoScale {
		scale = 1
	}

	sel := NewSelector(s.Cfg,
		float64(src.Bounds().Dx())*scale,
		float64(src.Bounds().Dy())*scale,
	)

	if s.Face {
		cascade, err := os.ReadFile(s.Cascade)
		if err != nil {
			return fmt.Errorf("error reading the cascade file: %v", err)
		}
		seed, err := SeedFace(cascade, src, s.FaceAngle)
		if err != nil {
			return err
		}
		// The detected face box is expressed in natural pixels;
		// map it back to display space before seeding.
		for i := range seed.pts {
			seed.pts[i].X *= scale
			seed.pts[i].Y *= scale
		}
		sel.Seed(seed)
	}

	clipper := NewClipper()
	clipper.ScaleX = 1 / scale
	clipper.ScaleY = 1 / scale

	gui := NewGUI(src, sel, scale)
	gui.OnExport = func() error {
		return s.export(op, out, src, sel.Path(), clipper)
	}
	return gui.Run()
}

// export clips the current selection and encodes it to the destination,
// which is either a pipe or a file truncated on each invocation. In debug
// mode the binary mask overlay is saved next to the clipped output.
func (s *Session) export(op *Ops, out string, src *image.NRGBA, pts []Point, clipper *Clipper) error {
	s.Spinner.Start()
	defer s.Spinner.Stop()

	res, err := clipper.Clip(src, pts)
	if err != nil {
		return err
	}

	ext := filepath.Ext(out)
	var dst io.Writer
	if out == op.PipeName {
		dst = os.Stdout
	} else {
		f, err := os.OpenFile(out, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
		if err != nil {
			return fmt.Errorf("unable to create the destination file: %v", err)
		}
		defer f.Close()
		dst = f
	}

	if err := Encode(dst, res, ext); err != nil {
		return err
	}

	if s.Debug && out != op.PipeName {
		overlay, err := clipper.MaskOverlay(src, pts)
		if err != nil {
			return err
		}
		maskOut := strings.TrimSuffix(out, ext) + "_mask.png"
		f, err := os.Create(maskOut)
		if err != nil {
			return fmt.Errorf("unable to create the mask overlay file: %v", err)
		}
		defer f.Close()

		if err := Encode(f, overlay, ".png"); err != nil {
			return err
		}
	}

	s.Spinner.StopMsg = fmt.Sprintf("%s %s %s",
		utils.DecorateText("◉ LASSO", utils.StatusMessage),
		utils.DecorateText("⇢", utils.DefaultMessage),
		utils.DecorateText("the selection has been clipped successfully ✔", utils.SuccessMessage),
	)
	return nil
}

// sourceToImage decodes the session source, be it a regular file or a pipe.
func (s *Session) sourceToImage(op *Ops, in string) (*image.NRGBA, error) {
	var r io.Reader
	if in == op.PipeName {
		if term.IsTerminal(int(os.Stdin.Fd())) {
			return nil, errors.New("`-` should be used with a pipe for stdin")
		}
		r = os.Stdin
	} else {
		f, err := os.Open(in)
		if err != nil {
			return nil, fmt.Errorf("unable to open the source file: %v", err)
		}
		defer f.Close()
		r = f
	}
	return DecodeImage(r)
}

// printOpStatus displays the relevant information about the selection process.
func (s *Session) printOpStatus(op *Ops, fname string, err error) {
	if err != nil {
		log.Fatalf(
			utils.DecorateText("\nError clipping the selection: %s", utils.ErrorMessage),
			utils.DecorateText(fmt.Sprintf("\n\tReason: %v\n", err.Error()), utils.DefaultMessage),
		)
	} else {
		if fname != op.PipeName {
			fmt.Fprintf(os.Stderr, "\nThe clipped selection has been saved as: %s %s\n\n",
				utils.DecorateText(filepath.Base(fname), utils.SuccessMessage),
				utils.DefaultColor,
			)
		}
	}
}

// walkDir starts a new goroutine to walk the specified directory tree
// in recursive manner and sends the path of each regular file to a new channel.
// It finishes in case the done channel is getting closed.
func walkDir(
	done <-chan interface{},
	src string,
	srcExts []string,
) (<-chan string, <-chan error) {
	pathChan := make(chan string)
	errChan := make(chan error, 1)

	go func() {
		// Close the paths channel after Walk returns.
		defer close(pathChan)

		errChan <- filepath.Walk(src, func(path string, f os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if !f.Mode().IsRegular() {
				return nil
			}

			if utils.Contains(srcExts, filepath.Ext(f.Name())) {
				select {
				case <-done:
					return errors.New("directory walk cancelled")
				case pathChan <- path:
				}
			}
			return nil
		})
	}()
	return pathChan, errChan
}

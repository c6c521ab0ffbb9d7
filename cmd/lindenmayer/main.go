// Command lindenmayer grows an L-system described by an .lsys file and
// renders the animation as numbered SVG frames, optionally converted to PNG.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"lindenmayer/internal/grammar"
	"lindenmayer/internal/logging"
	"lindenmayer/internal/lsystem"
	"lindenmayer/internal/render"
	"lindenmayer/internal/turtle"
)

type frame struct {
	index int
	t     float64
}

func main() {
	outDir := flag.String("o", "out", "output directory")
	fps := flag.Int("fps", 30, "frames per second")
	start := flag.Float64("start", 0, "animation start, seconds")
	end := flag.Float64("end", 3, "animation end, seconds")
	width := flag.Int("w", 1080, "PNG width")
	height := flag.Int("h", 1080, "PNG height")
	jobs := flag.Int("jobs", runtime.NumCPU(), "parallel workers per stage")
	png := flag.Bool("png", false, "convert frames to PNG")
	converter := flag.String("converter", "inkscape", "SVG converter: inkscape or rsvg-convert")
	iterations := flag.Int("n", -1, "derivation steps, overrides the file")
	printOnly := flag.Bool("print", false, "print the derived symbols and exit")
	preview := flag.Bool("preview", false, "draw the final frame as text and exit")
	fit := flag.Bool("fit", false, "fit the view box to the final frame")
	stroke := flag.Float64("stroke", render.DefaultStyle.StrokeWidth, "stroke width")
	verbose := flag.Bool("v", false, "verbose logging")
	flag.Parse()

	if flag.NArg() != 1 {
		log.Fatalf("usage: %s [flags] <file.lsys>", os.Args[0])
	}
	if *end <= *start || *fps < 1 {
		log.Fatal("need -end > -start and -fps >= 1")
	}

	logger := logging.New(*verbose)
	def, err := grammar.Load(flag.Arg(0))
	if err != nil {
		log.Fatal(err)
	}
	sys, err := def.System(lsystem.WithLogger(logger.Named("lsystem")))
	if err != nil {
		log.Fatal(err)
	}
	n := def.Iterations
	if *iterations >= 0 {
		n = *iterations
	}
	symbols, err := sys.Iterate(def.Axiom, n)
	if err != nil {
		log.Fatal(err)
	}
	if *printOnly {
		fmt.Println(strings.Join(symbols, " "))
		return
	}

	if *preview {
		segs, err := turtle.Draw(symbols, def.Bindings, def.Frame(1))
		if err != nil {
			log.Fatal(err)
		}
		if err := render.Preview(os.Stdout, segs, 80, 40); err != nil {
			log.Fatal(err)
		}
		return
	}

	style := render.DefaultStyle
	style.StrokeWidth = *stroke
	if *fit {
		segs, err := turtle.Draw(symbols, def.Bindings, def.Frame(1))
		if err != nil {
			log.Fatal(err)
		}
		style.ViewBox = render.Fit(segs, 0.05)
	}

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		log.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(*outDir, "framerate.txt"), []byte(fmt.Sprint(*fps)), 0o644); err != nil {
		log.Fatal(err)
	}

	var pngPool *render.Pool[string]
	if *png {
		conv := render.Converter{Program: *converter, Width: *width, Height: *height}
		if _, err := conv.Args("", ""); err != nil {
			log.Fatal(err)
		}
		pngPool = render.NewPool("PNG", *jobs, logger, func(svg string, l *logging.Logger) error {
			out := strings.TrimSuffix(svg, ".svg") + ".png"
			l.Log("%s", out)
			return conv.Convert(context.Background(), svg, out, l)
		})
	}

	svgPool := render.NewPool("SVG", *jobs, logger, func(f frame, l *logging.Logger) error {
		name := filepath.Join(*outDir, fmt.Sprintf("frame%04d.svg", f.index))
		l.Log("%s", name)
		segs, err := turtle.Draw(symbols, def.Bindings, def.Frame(f.t))
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		if err := render.SaveSVG(name, segs, f.t, style); err != nil {
			return err
		}
		if pngPool != nil {
			pngPool.Submit(name)
		}
		return nil
	})

	first, last := int(*start*float64(*fps)), int(*end*float64(*fps))
	for i := first; i < last; i++ {
		secs := float64(i) / float64(*fps)
		svgPool.Submit(frame{index: i, t: (secs - *start) / (*end - *start)})
	}

	failed := false
	if err := svgPool.Close(); err != nil {
		log.Print(err)
		failed = true
	}
	if pngPool != nil {
		if err := pngPool.Close(); err != nil {
			log.Print(err)
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}
	fmt.Printf("%d frames written to %s\n", last-first, *outDir)
}

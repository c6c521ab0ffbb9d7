package render

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strconv"

	"lindenmayer/internal/logging"
)

// Converter rasterises SVG files with an external program.
type Converter struct {
	// Program is inkscape or rsvg-convert, optionally with a directory.
	Program       string
	Width, Height int
}

// Args returns the command line that converts in to out.
func (c Converter) Args(in, out string) ([]string, error) {
	w, h := strconv.Itoa(c.Width), strconv.Itoa(c.Height)
	switch filepath.Base(c.Program) {
	case "inkscape":
		return []string{in, "-o", out, "-w", w, "-h", h, "-b", "white"}, nil
	case "rsvg-convert":
		return []string{"-w", w, "-h", h, "-b", "white", "-o", out, in}, nil
	}
	return nil, fmt.Errorf("unsupported converter %q: want inkscape or rsvg-convert", c.Program)
}

// Convert runs the converter; its output is relayed to log line by line.
func (c Converter) Convert(ctx context.Context, in, out string, log *logging.Logger) error {
	args, err := c.Args(in, out)
	if err != nil {
		return err
	}
	cmd := exec.CommandContext(ctx, c.Program, args...)
	output, err := cmd.CombinedOutput()
	log.Lines(string(output))
	if err != nil {
		return fmt.Errorf("%s %s: %w", filepath.Base(c.Program), in, err)
	}
	return nil
}

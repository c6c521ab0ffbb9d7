// Package render turns turtle drawings into SVG frames and rasterises them
// on a pool of workers.
package render

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"lindenmayer/internal/turtle"
)

// ViewBox is the visible area in drawing coordinates.
type ViewBox struct {
	X, Y, W, H float64
}

// DefaultViewBox is the unit square centred on the origin.
var DefaultViewBox = ViewBox{X: -0.5, Y: -0.5, W: 1, H: 1}

func (v ViewBox) String() string {
	return strings.Join([]string{num(v.X), num(v.Y), num(v.W), num(v.H)}, " ")
}

// Fit returns a square view box around segs with a margin of pad times
// its size. It returns DefaultViewBox when segs is empty.
func Fit(segs []turtle.Segment, pad float64) ViewBox {
	if len(segs) == 0 {
		return DefaultViewBox
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, s := range segs {
		for _, p := range [2]turtle.Point{s.From, s.To} {
			minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
			q := flip(p)
			minY, maxY = math.Min(minY, q.Y), math.Max(maxY, q.Y)
		}
	}
	size := math.Max(maxX-minX, maxY-minY)
	if size == 0 {
		size = 1
	}
	size *= 1 + 2*pad
	cx, cy := (minX+maxX)/2, (minY+maxY)/2
	return ViewBox{X: cx - size/2, Y: cy - size/2, W: size, H: size}
}

// Style controls how a frame is written.
type Style struct {
	ViewBox     ViewBox
	StrokeWidth float64
}

// DefaultStyle matches DefaultViewBox.
var DefaultStyle = Style{ViewBox: DefaultViewBox, StrokeWidth: 0.003}

type path struct {
	stroke turtle.Stroke
	d      strings.Builder
	tail   turtle.Point
	open   bool
}

// WriteSVG writes segs as an SVG document, one path per stroke. Colours are
// blended by t. The y axis points up in drawing coordinates.
func WriteSVG(w io.Writer, segs []turtle.Segment, t float64, style Style) error {
	var order []*path
	byStroke := make(map[turtle.Stroke]*path)
	for _, s := range segs {
		p, ok := byStroke[s.Stroke]
		if !ok {
			p = &path{stroke: s.Stroke}
			byStroke[s.Stroke] = p
			order = append(order, p)
		}
		from, to := flip(s.From), flip(s.To)
		if !p.open || !near(p.tail, from) {
			fmt.Fprintf(&p.d, "M%s,%s", num(from.X), num(from.Y))
		}
		fmt.Fprintf(&p.d, "L%s,%s", num(to.X), num(to.Y))
		p.tail, p.open = to, true
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "<svg xmlns=\"http://www.w3.org/2000/svg\"\n")
	fmt.Fprintf(bw, "     width=\"100%%\" height=\"100%%\"\n")
	fmt.Fprintf(bw, "     viewBox=\"%s\"\n", style.ViewBox)
	fmt.Fprintf(bw, "     preserveAspectRatio=\"xMidYMid meet\">\n")
	for _, p := range order {
		color, err := Blend(p.stroke.Base, p.stroke.Blend, t)
		if err != nil {
			return err
		}
		fmt.Fprintf(bw, "  <path d=\"%s\" fill=\"none\" stroke=\"%s\" stroke-width=\"%s\" />\n",
			p.d.String(), color, num(style.StrokeWidth))
	}
	fmt.Fprintf(bw, "</svg>\n")
	return bw.Flush()
}

// SaveSVG writes a frame to path.
func SaveSVG(path string, segs []turtle.Segment, t float64, style Style) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteSVG(f, segs, t, style); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

// flip maps drawing coordinates to SVG's downward y axis.
func flip(p turtle.Point) turtle.Point {
	return turtle.Point{X: p.X, Y: 0 - p.Y}
}

func near(a, b turtle.Point) bool {
	return math.Abs(a.X-b.X) <= 1e-5 && math.Abs(a.Y-b.Y) <= 1e-5
}

func num(f float64) string {
	return strconv.FormatFloat(f, 'g', 6, 64)
}

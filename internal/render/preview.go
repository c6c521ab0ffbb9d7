package render

import (
	"bufio"
	"io"
	"math"

	"lindenmayer/internal/turtle"
)

// Preview plots segs on a cols x rows character grid scaled to fit, '#'
// for ink and '.' for paper. Handy for checking a grammar without
// rendering frames.
func Preview(w io.Writer, segs []turtle.Segment, cols, rows int) error {
	if cols < 1 || rows < 1 {
		cols, rows = 1, 1
	}
	grid := make([][]byte, rows)
	for y := range grid {
		grid[y] = make([]byte, cols)
		for x := range grid[y] {
			grid[y][x] = '.'
		}
	}

	v := Fit(segs, 0)
	cell := math.Max(v.W/float64(cols), v.H/float64(rows))
	plot := func(p turtle.Point) {
		q := flip(p)
		x := int((q.X - v.X) / cell)
		y := int((q.Y - v.Y) / cell)
		if x >= cols {
			x = cols - 1
		}
		if y >= rows {
			y = rows - 1
		}
		if x >= 0 && y >= 0 {
			grid[y][x] = '#'
		}
	}
	for _, s := range segs {
		steps := int(math.Hypot(s.To.X-s.From.X, s.To.Y-s.From.Y)/cell*2) + 1
		for i := 0; i <= steps; i++ {
			f := float64(i) / float64(steps)
			plot(turtle.Point{
				X: s.From.X + (s.To.X-s.From.X)*f,
				Y: s.From.Y + (s.To.Y-s.From.Y)*f,
			})
		}
	}

	bw := bufio.NewWriter(w)
	for _, row := range grid {
		bw.Write(row)
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

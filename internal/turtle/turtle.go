// Package turtle walks a pen over the plane and records the line segments
// it draws.
package turtle

import (
	"fmt"
	"math"
)

// Point is a position on the plane.
type Point struct {
	X, Y float64
}

func (p Point) String() string {
	return fmt.Sprintf("(%g,%g)", p.X, p.Y)
}

// Stroke names the colours a segment is drawn with: Base, faded towards
// Blend as the animation advances. Blend may be empty.
type Stroke struct {
	Base, Blend string
}

// Segment is one drawn line.
type Segment struct {
	From, To Point
	Stroke   Stroke
}

// Turtle is a pen position and heading. Theta is in radians, counter
// clockwise from the x axis.
type Turtle struct {
	X, Y  float64
	Theta float64

	dx, dy float64
}

// New places a turtle at (x, y) heading theta radians.
func New(x, y, theta float64) *Turtle {
	t := &Turtle{X: x, Y: y}
	t.Rotate(theta)
	return t
}

// Rotate turns the turtle by angle radians.
func (t *Turtle) Rotate(angle float64) {
	t.Theta = math.Mod(t.Theta+angle, 2*math.Pi)
	if t.Theta < 0 {
		t.Theta += 2 * math.Pi
	}
	t.dx = math.Cos(t.Theta)
	t.dy = math.Sin(t.Theta)
}

// RotateDegrees turns the turtle by angle degrees.
func (t *Turtle) RotateDegrees(angle float64) {
	t.Rotate(angle * math.Pi / 180)
}

// Advance moves dist along the heading and returns the start and end.
func (t *Turtle) Advance(dist float64) (from, to Point) {
	from = t.Position()
	t.X += t.dx * dist
	t.Y += t.dy * dist
	return from, t.Position()
}

// Position returns the current position.
func (t *Turtle) Position() Point {
	return Point{t.X, t.Y}
}

func (t *Turtle) String() string {
	return fmt.Sprintf("%v@%.1f°", t.Position(), t.Theta*180/math.Pi)
}

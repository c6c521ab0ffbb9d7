package turtle

import "errors"

// ErrLastTurtle is returned when popping the only turtle on a Stack.
var ErrLastTurtle = errors.New("cannot pop the last turtle")

// Stack is a stack of turtles; only the top one moves. Push saves the
// current pen by stacking a copy of it.
type Stack struct {
	turtles []*Turtle
}

// NewStack starts a stack with one turtle.
func NewStack(x, y, theta float64) *Stack {
	return &Stack{turtles: []*Turtle{New(x, y, theta)}}
}

// Top returns the active turtle.
func (s *Stack) Top() *Turtle {
	return s.turtles[len(s.turtles)-1]
}

// Push saves the active turtle's state.
func (s *Stack) Push() {
	cp := *s.Top()
	s.turtles = append(s.turtles, &cp)
}

// Pop restores the most recently saved state.
func (s *Stack) Pop() error {
	if len(s.turtles) == 1 {
		return ErrLastTurtle
	}
	s.turtles = s.turtles[:len(s.turtles)-1]
	return nil
}

// Depth returns the number of stacked turtles.
func (s *Stack) Depth() int {
	return len(s.turtles)
}

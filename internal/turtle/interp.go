package turtle

import (
	"errors"
	"fmt"
	"math"
)

// Op is what a symbol makes the turtle do.
type Op int

const (
	OpNone    Op = iota // symbol is ignored
	OpDraw              // draw a line of the current length centred on the pen
	OpMove              // move forward the current length without drawing
	OpBack              // move backward the current length without drawing
	OpScale             // push current length times Arg
	OpUnscale           // pop the last length change
	OpPush              // save the pen
	OpPop               // restore the pen
	OpTurn              // rotate by Arg degrees
	OpLeaf              // the next drawn line grows with the animation
	OpColor             // push colour Color
	OpUncolor           // pop the last colour
)

var opNames = map[Op]string{
	OpNone: "none", OpDraw: "draw", OpMove: "move", OpBack: "back",
	OpScale: "scale", OpUnscale: "unscale", OpPush: "push", OpPop: "pop",
	OpTurn: "turn", OpLeaf: "leaf", OpColor: "color", OpUncolor: "uncolor",
}

func (o Op) String() string {
	if s, ok := opNames[o]; ok {
		return s
	}
	return fmt.Sprintf("Op(%d)", int(o))
}

// ParseOp returns the Op called name.
func ParseOp(name string) (Op, bool) {
	for op, s := range opNames {
		if s == name {
			return op, true
		}
	}
	return OpNone, false
}

// Action binds an Op to its argument.
type Action struct {
	Op    Op
	Arg   float64
	Color string
}

// Bindings maps symbol names to actions.
type Bindings map[string]Action

// Bind adds an action for symbol. Binding a symbol twice is an error.
func (b Bindings) Bind(symbol string, a Action) error {
	if prev, ok := b[symbol]; ok {
		return fmt.Errorf("symbol %q already bound to %v", symbol, prev.Op)
	}
	b[symbol] = a
	return nil
}

// Frame positions the drawing at one instant of an animation.
type Frame struct {
	// T in [0, 1] drives leaf growth and colour blending.
	T float64
	// Start is where the first turtle stands.
	Start Point
	// Heading of the first turtle, degrees.
	Heading float64
	// Length is the initial unit length.
	Length float64
}

var (
	errUnscale = errors.New("unscale without a matching scale")
	errUncolor = errors.New("uncolor without a matching color")
)

// Draw interprets symbols and returns the segments drawn. Symbols without
// a binding are an error; bind them to OpNone to ignore them.
func Draw(symbols []string, b Bindings, f Frame) ([]Segment, error) {
	pen := NewStack(f.Start.X, f.Start.Y, f.Heading*math.Pi/180)
	lengths := []float64{f.Length}
	var colors []string
	leaf := false
	var out []Segment

	for i, sym := range symbols {
		a, ok := b[sym]
		if !ok {
			return nil, fmt.Errorf("symbol %d %q: no action bound", i, sym)
		}
		unit := lengths[len(lengths)-1]

		switch a.Op {
		case OpNone:
		case OpDraw:
			l := unit
			if leaf {
				l *= f.T
			}
			pen.Push()
			pen.Top().Advance(-l / 2)
			from, to := pen.Top().Advance(l)
			if err := pen.Pop(); err != nil {
				return nil, err
			}
			out = append(out, Segment{From: from, To: to, Stroke: strokeOf(colors)})
			leaf = false
		case OpMove:
			pen.Top().Advance(unit)
		case OpBack:
			pen.Top().Advance(-unit)
		case OpScale:
			lengths = append(lengths, unit*a.Arg)
		case OpUnscale:
			if len(lengths) == 1 {
				return nil, fmt.Errorf("symbol %d %q: %w", i, sym, errUnscale)
			}
			lengths = lengths[:len(lengths)-1]
		case OpPush:
			pen.Push()
		case OpPop:
			if err := pen.Pop(); err != nil {
				return nil, fmt.Errorf("symbol %d %q: %w", i, sym, err)
			}
		case OpTurn:
			pen.Top().RotateDegrees(a.Arg)
		case OpLeaf:
			leaf = true
		case OpColor:
			colors = append(colors, a.Color)
		case OpUncolor:
			if len(colors) == 0 {
				return nil, fmt.Errorf("symbol %d %q: %w", i, sym, errUncolor)
			}
			colors = colors[:len(colors)-1]
		default:
			return nil, fmt.Errorf("symbol %d %q: unknown op %v", i, sym, a.Op)
		}
	}
	return out, nil
}

// strokeOf picks the two outermost colours, so nested colours fade from
// their enclosing one.
func strokeOf(colors []string) Stroke {
	var s Stroke
	if len(colors) > 0 {
		s.Base = colors[0]
	}
	if len(colors) > 1 {
		s.Blend = colors[1]
	}
	return s
}

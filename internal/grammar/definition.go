package grammar

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"lindenmayer/internal/lsystem"
	"lindenmayer/internal/render"
	"lindenmayer/internal/turtle"
)

// Definition is a checked description file.
type Definition struct {
	Name       string
	Alphabet   []string
	Rules      []lsystem.Rule
	Axiom      string
	Iterations int

	// Length and Heading (degrees) place the first turtle. Over an
	// animation the length grows by Zoom and the heading turns by Spin
	// degrees.
	Length  float64
	Heading float64
	Zoom    float64
	Spin    float64

	// Origin is where the first turtle stands at t = 0. Zoom and Spin
	// act about Pivot, so the whole drawing grows and turns around it.
	Origin turtle.Point
	Pivot  turtle.Point

	// Bindings covers every alphabet symbol; symbols the file does not
	// bind are ignored when drawing.
	Bindings turtle.Bindings
}

// Parse reads a description from src.
func Parse(name, src string) (*Definition, error) {
	f, err := ParseFile(name, src)
	if err != nil {
		return nil, err
	}
	return build(name, f)
}

// Load reads a description file from disk.
func Load(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(path, string(data))
}

// System compiles the definition's L-system.
func (d *Definition) System(opts ...lsystem.Option) (*lsystem.System, error) {
	return lsystem.New(d.Alphabet, d.Rules, opts...)
}

// Frame returns the turtle starting point at animation time t in [0, 1].
func (d *Definition) Frame(t float64) turtle.Frame {
	scale := math.Pow(d.Zoom, t)
	angle := d.Spin * t * math.Pi / 180
	sin, cos := math.Sincos(angle)
	rx, ry := d.Origin.X-d.Pivot.X, d.Origin.Y-d.Pivot.Y
	return turtle.Frame{
		T: t,
		Start: turtle.Point{
			X: d.Pivot.X + scale*(rx*cos-ry*sin),
			Y: d.Pivot.Y + scale*(rx*sin+ry*cos),
		},
		Length:  d.Length * scale,
		Heading: d.Heading + d.Spin*t,
	}
}

type builder struct {
	def      *Definition
	seen     map[string]lexer.Position
	declared map[string]bool
}

func build(name string, f *File) (*Definition, error) {
	b := &builder{
		def: &Definition{
			Name:     strings.TrimSuffix(filepath.Base(name), filepath.Ext(name)),
			Length:   1,
			Heading:  90,
			Zoom:     1,
			Bindings: turtle.Bindings{},
		},
		seen:     map[string]lexer.Position{},
		declared: map[string]bool{},
	}
	for _, st := range f.Statements {
		if err := b.statement(st); err != nil {
			return nil, err
		}
	}
	d := b.def
	if d.Alphabet == nil {
		return nil, fmt.Errorf("%s: no alphabet declared", name)
	}
	if _, ok := b.seen["axiom"]; !ok {
		return nil, fmt.Errorf("%s: no axiom declared", name)
	}
	for _, sym := range d.Alphabet {
		if _, ok := d.Bindings[sym]; !ok {
			d.Bindings[sym] = turtle.Action{Op: turtle.OpNone}
		}
	}
	return d, nil
}

// once rejects a second occurrence of a single-valued statement.
func (b *builder) once(key string, pos lexer.Position) error {
	if prev, ok := b.seen[key]; ok {
		return participle.Errorf(pos, "%s already set at %s", key, prev)
	}
	b.seen[key] = pos
	return nil
}

func (b *builder) statement(st *Statement) error {
	d := b.def
	switch {
	case st.Alphabet != nil:
		if err := b.once("alphabet", st.Pos); err != nil {
			return err
		}
		for _, sym := range st.Alphabet {
			b.declared[sym] = true
		}
		d.Alphabet = st.Alphabet
	case st.Rule != nil:
		d.Rules = append(d.Rules, lsystem.Rule{
			Pattern:     st.Rule.Pattern,
			Replacement: strings.Join(st.Rule.Replacement, " "),
		})
	case st.Axiom != nil:
		if err := b.once("axiom", st.Pos); err != nil {
			return err
		}
		d.Axiom = *st.Axiom
	case st.Iterations != nil:
		if err := b.once("iterations", st.Pos); err != nil {
			return err
		}
		if *st.Iterations < 0 {
			return participle.Errorf(st.Pos, "iterations must not be negative")
		}
		d.Iterations = *st.Iterations
	case st.Length != nil:
		if err := b.once("length", st.Pos); err != nil {
			return err
		}
		if *st.Length <= 0 {
			return participle.Errorf(st.Pos, "length must be positive")
		}
		d.Length = *st.Length
	case st.Heading != nil:
		if err := b.once("heading", st.Pos); err != nil {
			return err
		}
		d.Heading = *st.Heading
	case st.Zoom != nil:
		if err := b.once("zoom", st.Pos); err != nil {
			return err
		}
		if *st.Zoom <= 0 {
			return participle.Errorf(st.Pos, "zoom must be positive")
		}
		d.Zoom = *st.Zoom
	case st.Spin != nil:
		if err := b.once("spin", st.Pos); err != nil {
			return err
		}
		d.Spin = *st.Spin
	case st.Origin != nil:
		if err := b.once("origin", st.Pos); err != nil {
			return err
		}
		d.Origin = turtle.Point{X: st.Origin.X, Y: st.Origin.Y}
	case st.Pivot != nil:
		if err := b.once("pivot", st.Pos); err != nil {
			return err
		}
		d.Pivot = turtle.Point{X: st.Pivot.X, Y: st.Pivot.Y}
	case st.Scaled != nil:
		op, err := opFor(st.Scaled.Pos, st.Scaled.Op)
		if err != nil {
			return err
		}
		return b.bind(st.Scaled.Pos, st.Scaled.Symbol, turtle.Action{Op: op, Arg: st.Scaled.Arg})
	case st.Color != nil:
		if err := render.CheckColor(st.Color.Value); err != nil {
			return participle.Errorf(st.Color.Pos, "%s", err)
		}
		return b.bind(st.Color.Pos, st.Color.Symbol, turtle.Action{Op: turtle.OpColor, Color: st.Color.Value})
	case st.Bind != nil:
		op, err := opFor(st.Bind.Pos, st.Bind.Op)
		if err != nil {
			return err
		}
		for _, sym := range st.Bind.Symbols {
			if err := b.bind(st.Bind.Pos, sym, turtle.Action{Op: op}); err != nil {
				return err
			}
		}
	}
	return nil
}

// opFor maps a binding keyword to its turtle op.
func opFor(pos lexer.Position, keyword string) (turtle.Op, error) {
	if keyword == "ignore" {
		return turtle.OpNone, nil
	}
	op, ok := turtle.ParseOp(keyword)
	if !ok {
		return turtle.OpNone, participle.Errorf(pos, "unknown action %q", keyword)
	}
	return op, nil
}

func (b *builder) bind(pos lexer.Position, sym string, a turtle.Action) error {
	if b.def.Alphabet == nil {
		return participle.Errorf(pos, "%s %q before the alphabet is declared", a.Op, sym)
	}
	if !b.declared[sym] {
		return participle.Errorf(pos, "%q is not in the alphabet", sym)
	}
	if err := b.def.Bindings.Bind(sym, a); err != nil {
		return participle.Errorf(pos, "%s", err)
	}
	return nil
}

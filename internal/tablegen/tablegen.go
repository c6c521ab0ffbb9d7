// Package tablegen writes a compiled rune automaton out as Go source: the
// transition table, the accept table and a maximal-munch scan function
// that needs nothing but the standard library.
package tablegen

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"github.com/dave/jennifer/jen"

	"lindenmayer/internal/fsa"
	"lindenmayer/internal/logging"
)

// Config describes the generated file.
type Config struct {
	// Name prefixes every generated identifier ("Turtle" -> TurtleScan).
	Name string
	// Package is the package clause of the generated file.
	Package string
	// OutputFile is where Save writes the file.
	OutputFile string
}

// Validate checks if the config is usable.
func (c Config) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("name cannot be empty")
	}
	if r, _ := utf8.DecodeRuneInString(c.Name); !unicode.IsUpper(r) {
		return fmt.Errorf("name %q must be exported", c.Name)
	}
	if c.Package == "" {
		return fmt.Errorf("package cannot be empty")
	}
	return nil
}

// Generator renders one DFA.
type Generator struct {
	config Config
	dfa    *fsa.DFA[rune, string]
	file   *jen.File
	logger *logging.Logger
	done   bool
}

// New creates a generator for d.
func New(config Config, d *fsa.DFA[rune, string], logger *logging.Logger) *Generator {
	return &Generator{
		config: config,
		dfa:    d,
		file:   jen.NewFile(config.Package),
		logger: logger,
	}
}

func (g *Generator) id(suffix string) string {
	return lowerFirst(g.config.Name) + suffix
}

// Generate builds the file in memory. Calling it again is a no-op.
func (g *Generator) Generate() error {
	if g.done {
		return nil
	}
	if err := g.config.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if v, ok := g.dfa.Accepting(g.dfa.Init()); ok {
		return &fsa.ConfigError{Value: v}
	}

	g.logger.Section("Code Generation")
	g.logger.Log("Generating %sScan (states: %d, symbols: %d)", g.config.Name, g.dfa.NumStates(), len(g.dfa.Alphabet()))

	g.file.HeaderComment("Code generated by lindenmayer tablegen. DO NOT EDIT.")
	g.generateTables()
	g.generateScan()
	g.done = true
	return nil
}

// Save generates the file and writes it to the configured path.
func (g *Generator) Save() error {
	if g.config.OutputFile == "" {
		return fmt.Errorf("output file cannot be empty")
	}
	if err := g.Generate(); err != nil {
		return err
	}
	return g.file.Save(g.config.OutputFile)
}

// Source generates the file and returns it as text.
func (g *Generator) Source() (string, error) {
	if err := g.Generate(); err != nil {
		return "", err
	}
	return fmt.Sprintf("%#v", g.file), nil
}

func (g *Generator) generateTables() {
	alphabet := g.dfa.Alphabet()

	symbols := jen.Dict{}
	for i, r := range alphabet {
		symbols[jen.LitRune(r)] = jen.Lit(i)
	}
	g.file.Comment(fmt.Sprintf("%s maps each input rune to its column in %s.", g.id("Symbols"), g.id("Trans")))
	g.file.Var().Id(g.id("Symbols")).Op("=").Map(jen.Rune()).Int().Values(symbols)
	g.file.Line()

	rows := make([]jen.Code, 0, g.dfa.NumStates())
	accept := jen.Dict{}
	for s := 0; s < g.dfa.NumStates(); s++ {
		row := make([]jen.Code, len(alphabet))
		for i := range row {
			row[i] = jen.Lit(-1)
		}
		g.dfa.Transitions(s, func(sym rune, next int) {
			for i, r := range alphabet {
				if r == sym {
					row[i] = jen.Lit(next)
				}
			}
		})
		rows = append(rows, jen.Values(row...))
		if v, ok := g.dfa.Accepting(s); ok {
			accept[jen.Lit(s)] = jen.Lit(v)
		}
	}
	g.file.Comment(fmt.Sprintf("%s[state][symbol] is the next state, -1 if none.", g.id("Trans")))
	g.file.Var().Id(g.id("Trans")).Op("=").Index().Index().Int().Values(rows...)
	g.file.Line()

	g.file.Var().Id(g.id("Accept")).Op("=").Map(jen.Int()).String().Values(accept)
	g.file.Line()
}

// generateScan emits the same maximal-munch loop fsa.DFA.Scan runs.
func (g *Generator) generateScan() {
	name := g.config.Name + "Scan"
	trap := func(sym, off jen.Code) jen.Code {
		return jen.Return(jen.Nil(), jen.Qual("fmt", "Errorf").Call(
			jen.Lit("scanner trapped on %q at offset %d"), sym, off,
		))
	}
	restart := jen.List(jen.Id("state"), jen.Id("i"), jen.Id("backSet")).
		Op("=").List(jen.Lit(0), jen.Id("back"), jen.False())
	emit := []jen.Code{
		jen.Id("out").Op("=").Append(jen.Id("out"), jen.Id("backVal")),
		restart,
		jen.Continue(),
	}

	g.file.Comment(fmt.Sprintf("%s tokenizes input by longest match and returns the value of every token.", name))
	g.file.Func().Id(name).Params(jen.Id("input").Index().Rune()).Params(jen.Index().String(), jen.Error()).Block(
		jen.Var().Id("out").Index().String(),
		jen.List(jen.Id("state"), jen.Id("i")).Op(":=").List(jen.Lit(0), jen.Lit(0)),
		jen.List(jen.Id("back"), jen.Id("backVal"), jen.Id("backSet")).Op(":=").List(jen.Lit(0), jen.Lit(""), jen.False()),
		jen.For().Block(
			jen.If(jen.List(jen.Id("v"), jen.Id("ok")).Op(":=").Id(g.id("Accept")).Index(jen.Id("state")), jen.Id("ok")).Block(
				jen.List(jen.Id("back"), jen.Id("backVal"), jen.Id("backSet")).Op("=").List(jen.Id("i"), jen.Id("v"), jen.True()),
			),
			jen.If(jen.Id("i").Op(">=").Len(jen.Id("input"))).Block(
				jen.If(jen.Id("backSet")).Block(emit...),
				jen.Return(jen.Id("out"), jen.Nil()),
			),
			jen.Id("next").Op(":=").Lit(-1),
			jen.If(jen.List(jen.Id("sym"), jen.Id("ok")).Op(":=").Id(g.id("Symbols")).Index(jen.Id("input").Index(jen.Id("i"))), jen.Id("ok")).Block(
				jen.Id("next").Op("=").Id(g.id("Trans")).Index(jen.Id("state")).Index(jen.Id("sym")),
			),
			jen.If(jen.Id("next").Op(">=").Lit(0)).Block(
				jen.Id("state").Op("=").Id("next"),
				jen.Id("i").Op("++"),
				jen.Continue(),
			),
			jen.If(jen.Id("backSet")).Block(emit...),
			trap(jen.Id("input").Index(jen.Id("i")), jen.Id("i")),
		),
	)
}

func lowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToLower(r)) + s[size:]
}

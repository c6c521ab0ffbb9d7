// Package grammar reads .lsys description files: an L-system (alphabet,
// rules, axiom) plus the turtle actions its symbols stand for.
package grammar

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// File is the parse tree of a description file.
type File struct {
	Statements []*Statement `parser:"@@*"`
}

type Statement struct {
	Pos lexer.Position

	Alphabet   []string `parser:"(  'alphabet' @(String|Word|Number)+"`
	Rule       *Rule    `parser:" | 'rule' @@"`
	Axiom      *string  `parser:" | 'axiom' @(String|Word)"`
	Iterations *int     `parser:" | 'iterations' @Number"`
	Length     *float64 `parser:" | 'length' @Number"`
	Heading    *float64 `parser:" | 'heading' @Number"`
	Zoom       *float64 `parser:" | 'zoom' @Number"`
	Spin       *float64 `parser:" | 'spin' @Number"`
	Origin     *Coord   `parser:" | 'origin' @@"`
	Pivot      *Coord   `parser:" | 'pivot' @@"`
	Scaled     *Scaled  `parser:" | @@"`
	Color      *Color   `parser:" | @@"`
	Bind       *Bind    `parser:" | @@ ) ';'"`
}

// Coord is an x y pair.
type Coord struct {
	X float64 `parser:"@Number"`
	Y float64 `parser:"@Number"`
}

// Rule is `rule PATTERN => REPLACEMENT...`. A long replacement may be
// split over several strings; they are joined with blanks.
type Rule struct {
	Pos         lexer.Position
	Pattern     string   `parser:"@(String|Word)"`
	Replacement []string `parser:"Arrow @(String|Word)+"`
}

// Scaled binds one symbol to an action with a numeric argument.
type Scaled struct {
	Pos    lexer.Position
	Op     string  `parser:"@('scale'|'turn')"`
	Symbol string  `parser:"@(String|Word|Number)"`
	Arg    float64 `parser:"@Number"`
}

// Color binds one symbol to a stroke colour.
type Color struct {
	Pos    lexer.Position
	Symbol string `parser:"'color' @(String|Word|Number)"`
	Value  string `parser:"@String"`
}

// Bind binds symbols to an action without arguments.
type Bind struct {
	Pos     lexer.Position
	Op      string   `parser:"@('draw'|'move'|'back'|'unscale'|'push'|'pop'|'leaf'|'uncolor'|'ignore')"`
	Symbols []string `parser:"@(String|Word|Number)+"`
}

var (
	lsysLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Comment", Pattern: `#[^\n]*`},
		{Name: "String", Pattern: `"(\\.|[^"\\])*"`},
		{Name: "Number", Pattern: `[-+]?(\d+\.\d*|\.\d+|\d+)`},
		{Name: "Arrow", Pattern: `=>`},
		{Name: "Semi", Pattern: `;`},
		{Name: "Word", Pattern: `[^\s;"#]+`},
		{Name: "Whitespace", Pattern: `\s+`},
	})

	parser = participle.MustBuild[File](
		participle.Lexer(lsysLexer),
		participle.Unquote("String"),
		participle.Elide("Whitespace", "Comment"),
	)
)

// ParseFile parses src into its parse tree. name is used in error positions.
func ParseFile(name, src string) (*File, error) {
	return parser.ParseString(name, src)
}

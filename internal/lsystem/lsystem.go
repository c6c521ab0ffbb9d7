// Package lsystem is a string-rewriting engine over an alphabet of
// multi-character symbols. Both tokenizing text into symbols and matching
// rule patterns against symbol sequences run on automata compiled by fsa,
// so rule patterns may span several symbols and the longest one wins.
package lsystem

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"lindenmayer/internal/fsa"
	"lindenmayer/internal/logging"
)

// skip is the token value of whitespace between symbols.
const skip = -1

// Rule replaces every occurrence of Pattern with Replacement. Both are
// whitespace-separated symbol text; Replacement may be empty.
type Rule struct {
	Pattern     string
	Replacement string
}

// System is a compiled L-system. It is read-only after New and may be
// shared by concurrent callers.
type System struct {
	alphabet    []string
	tokens      *fsa.DFA[rune, int] // text -> symbol ids
	rules       *fsa.DFA[int, int]  // symbol ids -> production ids
	productions [][]int
	logger      *logging.Logger
}

// Option configures New.
type Option func(*System)

// WithLogger reports compilation and rewriting progress to l.
func WithLogger(l *logging.Logger) Option {
	return func(s *System) { s.logger = l }
}

// New compiles alphabet and rules. Every symbol without a rule of its own
// rewrites to itself.
func New(alphabet []string, rules []Rule, opts ...Option) (*System, error) {
	s := &System{alphabet: alphabet, logger: logging.Discard()}
	for _, o := range opts {
		o(s)
	}

	if err := s.compileTokens(); err != nil {
		return nil, err
	}
	if err := s.compileRules(rules); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *System) compileTokens() error {
	if len(s.alphabet) == 0 {
		return errors.New("alphabet is empty")
	}
	seen := make(map[string]bool, len(s.alphabet))
	alts := make([]fsa.Pattern[rune, int], 0, len(s.alphabet)+1)
	for i, sym := range s.alphabet {
		if sym == "" || strings.IndexFunc(sym, unicode.IsSpace) >= 0 {
			return fmt.Errorf("symbol %q: symbols must be non-empty and contain no whitespace", sym)
		}
		if seen[sym] {
			return fmt.Errorf("symbol %q declared twice", sym)
		}
		seen[sym] = true
		alts = append(alts, fsa.Word(fsa.Accept(i), []rune(sym)...))
	}

	// one or more blanks separate symbols
	blank := fsa.Alternation[rune, int]{Children: []fsa.Pattern[rune, int]{
		fsa.Literal[rune, int]{Symbol: ' '},
		fsa.Literal[rune, int]{Symbol: '\t'},
		fsa.Literal[rune, int]{Symbol: '\n'},
		fsa.Literal[rune, int]{Symbol: '\r'},
	}}
	alts = append(alts, fsa.Concat[rune, int]{
		Children: []fsa.Pattern[rune, int]{blank, fsa.Repetition[rune, int]{Child: blank}},
		Tag:      fsa.Accept(skip),
	})

	s.logger.Section("Alphabet")
	d, err := fsa.Build[rune, int](fsa.Alternation[rune, int]{Children: alts}, fsa.WithLogger(s.logger))
	if err != nil {
		return fmt.Errorf("compile alphabet: %w", err)
	}
	s.tokens = d
	return nil
}

func (s *System) compileRules(rules []Rule) error {
	byPattern := make(map[string]int)
	alts := make([]fsa.Pattern[int, int], 0, len(rules)+len(s.alphabet))

	add := func(pattern []int, replacement []int, what string) error {
		key := fmt.Sprint(pattern)
		if prev, ok := byPattern[key]; ok {
			return fmt.Errorf("%s: pattern %q already used by rule %d", what, s.text(pattern), prev)
		}
		id := len(s.productions)
		byPattern[key] = id
		s.productions = append(s.productions, replacement)
		alts = append(alts, fsa.Word(fsa.Accept(id), pattern...))
		return nil
	}

	for i, r := range rules {
		what := fmt.Sprintf("rule %d", i)
		pattern, err := s.Tokenize(r.Pattern)
		if err != nil {
			return fmt.Errorf("%s pattern: %w", what, err)
		}
		if len(pattern) == 0 {
			return fmt.Errorf("%s: pattern is empty", what)
		}
		replacement, err := s.Tokenize(r.Replacement)
		if err != nil {
			return fmt.Errorf("%s replacement: %w", what, err)
		}
		if err := add(pattern, replacement, what); err != nil {
			return err
		}
	}

	// identity rules keep unmatched symbols in place
	for i := range s.alphabet {
		if _, ok := byPattern[fmt.Sprint([]int{i})]; ok {
			continue
		}
		if err := add([]int{i}, []int{i}, "identity"); err != nil {
			return err
		}
	}

	s.logger.Section("Rules")
	d, err := fsa.Build[int, int](fsa.Alternation[int, int]{Children: alts}, fsa.WithLogger(s.logger))
	if err != nil {
		return fmt.Errorf("compile rules: %w", err)
	}
	s.rules = d
	return nil
}

// Alphabet returns the symbol names indexed by symbol id.
func (s *System) Alphabet() []string {
	return append([]string(nil), s.alphabet...)
}

// Tokenize splits text into symbol ids by longest match, dropping blanks.
func (s *System) Tokenize(text string) ([]int, error) {
	input := []rune(text)
	toks, err := s.tokens.ScanTokens(input)
	if err != nil {
		var te *fsa.TrapError
		if errors.As(err, &te) {
			return nil, fmt.Errorf("unknown symbol at offset %d near %q: %w", te.Offset, excerpt(input, te.Offset), err)
		}
		return nil, err
	}
	// the scanner stops quietly on a trailing partial symbol
	end := 0
	if len(toks) > 0 {
		end = toks[len(toks)-1].End
	}
	if end < len(input) {
		err := &fsa.TrapError{Symbol: input[end], Offset: end}
		return nil, fmt.Errorf("unknown symbol at offset %d near %q: %w", end, excerpt(input, end), err)
	}
	out := make([]int, 0, len(toks))
	for _, t := range toks {
		if t.Value != skip {
			out = append(out, t.Value)
		}
	}
	return out, nil
}

// Rewrite applies one derivation step to syms.
func (s *System) Rewrite(syms []int) ([]int, error) {
	matched, err := s.rules.Scan(syms)
	if err != nil {
		return nil, fmt.Errorf("rewrite: %w", err)
	}
	var out []int
	for _, id := range matched {
		out = append(out, s.productions[id]...)
	}
	return out, nil
}

// IterateSymbols applies n derivation steps to axiom.
func (s *System) IterateSymbols(axiom []int, n int) ([]int, error) {
	cur := axiom
	for i := 0; i < n; i++ {
		next, err := s.Rewrite(cur)
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}
		s.logger.Log("step %d: %d symbols", i+1, len(next))
		cur = next
	}
	return cur, nil
}

// Iterate tokenizes axiom, applies n derivation steps and returns the
// resulting symbol names.
func (s *System) Iterate(axiom string, n int) ([]string, error) {
	syms, err := s.Tokenize(axiom)
	if err != nil {
		return nil, fmt.Errorf("axiom: %w", err)
	}
	syms, err = s.IterateSymbols(syms, n)
	if err != nil {
		return nil, err
	}
	return s.Names(syms), nil
}

// Names maps symbol ids to their names.
func (s *System) Names(syms []int) []string {
	out := make([]string, len(syms))
	for i, id := range syms {
		out[i] = s.alphabet[id]
	}
	return out
}

func (s *System) text(syms []int) string {
	return strings.Join(s.Names(syms), " ")
}

func excerpt(input []rune, at int) string {
	end := at + 8
	if end > len(input) {
		end = len(input)
	}
	return string(input[at:end])
}

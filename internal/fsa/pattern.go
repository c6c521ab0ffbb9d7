// Package fsa compiles tagged patterns into finite automata and scans
// symbol sequences with the result.
//
// A pattern is built from four node kinds (Literal, Concat, Alternation,
// Repetition). Compile turns it into an NFA by Thompson construction,
// NFA.ToDFA collapses that by subset construction, and DFA.Scan tokenizes
// input by maximal munch, emitting the accept value of every token.
//
// Symbols and accept values are opaque: they only need to be comparable.
package fsa

// Pattern is a node of the pattern algebra. The set of implementations is
// closed: Literal, Concat, Alternation and Repetition.
type Pattern[S, V comparable] interface {
	// Accept reports the value a match of this node yields, if any.
	Accept() (V, bool)

	isPattern()
}

// Tag carries the optional accept value of a pattern node. The zero Tag
// is untagged.
type Tag[V comparable] struct {
	value V
	ok    bool
}

// Accept returns a Tag yielding v.
func Accept[V comparable](v V) Tag[V] {
	return Tag[V]{value: v, ok: true}
}

// Accept reports the tagged value.
func (t Tag[V]) Accept() (V, bool) {
	return t.value, t.ok
}

// Literal matches exactly one symbol equal to Symbol.
type Literal[S, V comparable] struct {
	Symbol S
	Tag[V]
}

// Concat matches its children in order with no gap.
type Concat[S, V comparable] struct {
	Children []Pattern[S, V]
	Tag[V]
}

// Alternation matches exactly one of its children.
type Alternation[S, V comparable] struct {
	Children []Pattern[S, V]
	Tag[V]
}

// Repetition matches Child zero or more times.
type Repetition[S, V comparable] struct {
	Child Pattern[S, V]
	Tag[V]
}

func (Literal[S, V]) isPattern()     {}
func (Concat[S, V]) isPattern()      {}
func (Alternation[S, V]) isPattern() {}
func (Repetition[S, V]) isPattern()  {}

// Word is a shorthand for the concatenation of one literal per symbol,
// tagged with tag. A single symbol yields a bare Literal.
func Word[S, V comparable](tag Tag[V], symbols ...S) Pattern[S, V] {
	if len(symbols) == 1 {
		return Literal[S, V]{Symbol: symbols[0], Tag: tag}
	}
	children := make([]Pattern[S, V], len(symbols))
	for i, s := range symbols {
		children[i] = Literal[S, V]{Symbol: s}
	}
	return Concat[S, V]{Children: children, Tag: tag}
}

// WithTag returns a copy of p carrying tag instead of its own.
func WithTag[S, V comparable](p Pattern[S, V], tag Tag[V]) Pattern[S, V] {
	switch node := p.(type) {
	case Literal[S, V]:
		node.Tag = tag
		return node
	case Concat[S, V]:
		node.Tag = tag
		return node
	case Alternation[S, V]:
		node.Tag = tag
		return node
	case Repetition[S, V]:
		node.Tag = tag
		return node
	}
	return p
}

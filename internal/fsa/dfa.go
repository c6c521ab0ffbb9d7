package fsa

import "slices"

// DFA is a deterministic automaton built by NFA.ToDFA. The initial state
// is always 0. A DFA is read-only once built and may be shared by
// concurrent scans.
type DFA[S, V comparable] struct {
	alphabet []S
	symbols  map[S]int
	trans    []int // state*len(alphabet) + symbol -> state, -1 if none
	accept   map[int]V
}

// Init returns the initial state.
func (d *DFA[S, V]) Init() int { return 0 }

// NumStates returns the number of states.
func (d *DFA[S, V]) NumStates() int {
	if len(d.alphabet) == 0 {
		return 1
	}
	return len(d.trans) / len(d.alphabet)
}

// Alphabet returns every symbol with at least one transition somewhere.
func (d *DFA[S, V]) Alphabet() []S { return slices.Clone(d.alphabet) }

// Step returns the successor of state on sym.
func (d *DFA[S, V]) Step(state int, sym S) (int, bool) {
	idx, ok := d.symbols[sym]
	if !ok {
		return 0, false
	}
	next := d.trans[state*len(d.alphabet)+idx]
	return next, next >= 0
}

// Accepting reports the value state accepts, if any.
func (d *DFA[S, V]) Accepting(state int) (V, bool) {
	v, ok := d.accept[state]
	return v, ok
}

// Transitions calls fn for every transition of state in alphabet order.
func (d *DFA[S, V]) Transitions(state int, fn func(sym S, next int)) {
	w := len(d.alphabet)
	for i, next := range d.trans[state*w : (state+1)*w] {
		if next >= 0 {
			fn(d.alphabet[i], next)
		}
	}
}

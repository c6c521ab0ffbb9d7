package fsa

import (
	"slices"
)

// NFA is a nondeterministic automaton with epsilon moves. States are dense
// indices allocated from 0; symbols are interned in first-seen order so
// transition tables can be indexed by symbol number.
type NFA[S, V comparable] struct {
	// Init is the initial state.
	Init int

	states   []nfaState
	alphabet []S
	symbols  map[S]int
	accept   map[int]V
}

type nfaState struct {
	eps []int
	on  map[int][]int // symbol index -> destinations
}

// NewNFA returns an empty automaton.
func NewNFA[S, V comparable]() *NFA[S, V] {
	return &NFA[S, V]{
		symbols: make(map[S]int),
		accept:  make(map[int]V),
	}
}

// AddState allocates a fresh state and returns its id.
func (n *NFA[S, V]) AddState() int {
	n.states = append(n.states, nfaState{})
	return len(n.states) - 1
}

// NumStates returns the number of allocated states.
func (n *NFA[S, V]) NumStates() int { return len(n.states) }

// Alphabet returns the symbols used by transitions, in first-seen order.
func (n *NFA[S, V]) Alphabet() []S { return slices.Clone(n.alphabet) }

// AddTransition adds from --sym--> to.
func (n *NFA[S, V]) AddTransition(from int, sym S, to int) {
	idx, ok := n.symbols[sym]
	if !ok {
		idx = len(n.alphabet)
		n.alphabet = append(n.alphabet, sym)
		n.symbols[sym] = idx
	}
	st := &n.states[from]
	if st.on == nil {
		st.on = make(map[int][]int)
	}
	st.on[idx] = insertSorted(st.on[idx], to)
}

// AddEpsilon adds a free move from --> to.
func (n *NFA[S, V]) AddEpsilon(from, to int) {
	n.states[from].eps = insertSorted(n.states[from].eps, to)
}

// SetAccept marks state as accepting v. Setting a different value on an
// already accepting state fails with a *ConflictError.
func (n *NFA[S, V]) SetAccept(state int, v V) error {
	if old, ok := n.accept[state]; ok && old != v {
		return &ConflictError{State: state, Existing: old, Incoming: v}
	}
	n.accept[state] = v
	return nil
}

// Accepting reports the value state accepts, if any.
func (n *NFA[S, V]) Accepting(state int) (V, bool) {
	v, ok := n.accept[state]
	return v, ok
}

// Neighborhood returns the states reachable from s by epsilon moves only,
// s included, in ascending order.
func (n *NFA[S, V]) Neighborhood(s int) []int {
	seen := make([]bool, len(n.states))
	var out []int
	stack := []int{s}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if seen[cur] {
			continue
		}
		seen[cur] = true
		out = append(out, cur)
		stack = append(stack, n.states[cur].eps...)
	}
	slices.Sort(out)
	return out
}

// collapse unions the symbol transitions of every state in the epsilon
// closure of s. Destination sets are sorted and deduplicated.
func (n *NFA[S, V]) collapse(s int) map[int][]int {
	out := make(map[int][]int)
	for _, st := range n.Neighborhood(s) {
		for sym, dst := range n.states[st].on {
			for _, d := range dst {
				out[sym] = insertSorted(out[sym], d)
			}
		}
	}
	return out
}

// insertSorted adds v to the sorted set xs.
func insertSorted(xs []int, v int) []int {
	i, found := slices.BinarySearch(xs, v)
	if found {
		return xs
	}
	return slices.Insert(xs, i, v)
}

package fsa

import (
	"slices"
	"strconv"

	"lindenmayer/internal/logging"
)

// Option configures subset construction.
type Option func(*buildConfig)

type buildConfig struct {
	logger *logging.Logger
}

// WithLogger reports construction statistics to l.
func WithLogger(l *logging.Logger) Option {
	return func(c *buildConfig) { c.logger = l }
}

// stateSet is a sorted, deduplicated vector of NFA states.
type stateSet []int

func (s stateSet) key() string {
	buf := make([]byte, 0, len(s)*4)
	for i, v := range s {
		if i > 0 {
			buf = append(buf, ',')
		}
		buf = strconv.AppendInt(buf, int64(v), 10)
	}
	return string(buf)
}

// ToDFA converts n into a deterministic automaton by subset construction.
// Each DFA state stands for a set of NFA states; it accepts a value when
// the epsilon neighborhoods of its members reach accept states that all
// carry that same value. Members carrying different values make the
// automaton ambiguous and ToDFA fails with an *AmbiguityError.
func (n *NFA[S, V]) ToDFA(opts ...Option) (*DFA[S, V], error) {
	cfg := buildConfig{}
	for _, o := range opts {
		o(&cfg)
	}
	log := cfg.logger
	log.Section("Subset Construction")
	log.Log("NFA: %d states, %d symbols, %d accept states", len(n.states), len(n.alphabet), len(n.accept))

	// the epsilon structure is fixed from here on
	collapsed := make([]map[int][]int, len(n.states))
	for s := range n.states {
		collapsed[s] = n.collapse(s)
	}

	width := len(n.alphabet)
	d := &DFA[S, V]{
		alphabet: slices.Clone(n.alphabet),
		symbols:  make(map[S]int, width),
		accept:   make(map[int]V),
	}
	for i, sym := range d.alphabet {
		d.symbols[sym] = i
	}

	ids := map[string]int{}
	var sets []stateSet
	intern := func(set stateSet) int {
		k := set.key()
		if id, ok := ids[k]; ok {
			return id
		}
		id := len(sets)
		ids[k] = id
		sets = append(sets, set)
		d.trans = append(d.trans, make([]int, width)...)
		for i := id * width; i < (id+1)*width; i++ {
			d.trans[i] = -1
		}
		return id
	}

	intern(stateSet{n.Init})
	for cur := 0; cur < len(sets); cur++ {
		tbl := make([]stateSet, width)
		for _, st := range sets[cur] {
			for sym, dst := range collapsed[st] {
				for _, v := range dst {
					tbl[sym] = insertSorted(tbl[sym], v)
				}
			}
		}
		for sym, next := range tbl {
			if len(next) > 0 {
				d.trans[cur*width+sym] = intern(next)
			}
		}
	}

	for id, set := range sets {
		if err := n.resolveAccept(d, id, set); err != nil {
			return nil, err
		}
	}

	log.Log("DFA: %d states, %d accepting", len(sets), len(d.accept))
	return d, nil
}

// resolveAccept decides what DFA state id accepts.
func (n *NFA[S, V]) resolveAccept(d *DFA[S, V], id int, set stateSet) error {
	var reach stateSet
	for _, st := range set {
		for _, r := range n.Neighborhood(st) {
			reach = insertSorted(reach, r)
		}
	}

	var pairs []AcceptPair
	var value V
	ambiguous := false
	for _, st := range reach {
		v, ok := n.accept[st]
		if !ok {
			continue
		}
		if len(pairs) == 0 {
			value = v
		} else if v != value {
			ambiguous = true
		}
		pairs = append(pairs, AcceptPair{State: st, Value: v})
	}

	switch {
	case len(pairs) == 0:
	case ambiguous:
		return &AmbiguityError{DFAState: id, Pairs: pairs}
	default:
		d.accept[id] = value
	}
	return nil
}

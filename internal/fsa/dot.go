package fsa

import (
	"fmt"
	"io"
	"slices"
	"strconv"
)

// WriteDOT prints a Graphviz digraph of the automaton. Accepting states are
// double circles labelled with their value.
func (d *DFA[S, V]) WriteDOT(w io.Writer) error {
	ew := &errWriter{w: w}
	ew.printf("digraph G {\n")
	ew.printf("    rankdir=LR;\n")
	for s := 0; s < d.NumStates(); s++ {
		ew.printf("    q%d [%s];\n", s, stateAttrs(d.accept, s))
		d.Transitions(s, func(sym S, next int) {
			ew.printf("    q%d -> q%d [label=%s];\n", s, next, symbolLabel(sym))
		})
	}
	ew.printf("    _start [shape=point]; _start -> q0;\n")
	ew.printf("}\n")
	return ew.err
}

// WriteDOT prints a Graphviz digraph of the automaton, epsilon moves
// labelled ε.
func (n *NFA[S, V]) WriteDOT(w io.Writer) error {
	ew := &errWriter{w: w}
	ew.printf("digraph G {\n")
	ew.printf("    rankdir=LR;\n")
	for s, st := range n.states {
		ew.printf("    n%d [%s];\n", s, stateAttrs(n.accept, s))
		for _, to := range st.eps {
			ew.printf("    n%d -> n%d [label=\"ε\"];\n", s, to)
		}
		syms := make([]int, 0, len(st.on))
		for sym := range st.on {
			syms = append(syms, sym)
		}
		slices.Sort(syms)
		for _, sym := range syms {
			for _, to := range st.on[sym] {
				ew.printf("    n%d -> n%d [label=%s];\n", s, to, symbolLabel(n.alphabet[sym]))
			}
		}
	}
	ew.printf("    _start [shape=point]; _start -> n%d;\n", n.Init)
	ew.printf("}\n")
	return ew.err
}

func stateAttrs[V comparable](accept map[int]V, s int) string {
	v, ok := accept[s]
	if !ok {
		return "shape=circle"
	}
	return fmt.Sprintf("shape=doublecircle, xlabel=%s", strconv.Quote(fmt.Sprint(v)))
}

func symbolLabel(sym any) string {
	if r, ok := sym.(rune); ok {
		return strconv.Quote(string(r))
	}
	return strconv.Quote(fmt.Sprint(sym))
}

type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) printf(format string, args ...any) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, args...)
}

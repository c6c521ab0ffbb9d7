package fsa

// Token is one scanned token: its accept value and the half-open input
// range [Start, End) it covers.
type Token[V comparable] struct {
	Value      V
	Start, End int
}

// Scan tokenizes input by maximal munch and returns the value of every
// token. See ScanTokens.
func (d *DFA[S, V]) Scan(input []S) ([]V, error) {
	toks, err := d.ScanTokens(input)
	if err != nil {
		return nil, err
	}
	out := make([]V, len(toks))
	for i, t := range toks {
		out[i] = t.Value
	}
	return out, nil
}

// ScanTokens tokenizes input by maximal munch: every token is the longest
// prefix of the remaining input the automaton accepts, and the next token
// starts right after it. Scanning fails with a *ConfigError if the
// automaton accepts the empty string and with a *TrapError when no
// transition exists for a symbol and no token is pending. Input left over
// at the end without an accepting prefix ends the scan.
func (d *DFA[S, V]) ScanTokens(input []S) ([]Token[V], error) {
	if v, ok := d.accept[0]; ok {
		return nil, &ConfigError{Value: v}
	}

	type bookmark struct {
		pos   int
		value V
		set   bool
	}

	var out []Token[V]
	state, start, i := 0, 0, 0
	var back bookmark

	emit := func() {
		out = append(out, Token[V]{Value: back.value, Start: start, End: back.pos})
		state, start, i = 0, back.pos, back.pos
		back = bookmark{}
	}

	for {
		if v, ok := d.accept[state]; ok {
			back = bookmark{pos: i, value: v, set: true}
		}

		if i >= len(input) {
			if back.set {
				emit()
				continue
			}
			// an unfinished token at the end is dropped
			return out, nil
		}

		if next, ok := d.Step(state, input[i]); ok {
			state = next
			i++
			continue
		}
		if back.set {
			emit()
			continue
		}
		return nil, &TrapError{Symbol: input[i], Offset: i}
	}
}

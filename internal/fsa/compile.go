package fsa

// frag is a compiled sub-pattern: its entry and exit states within the
// shared automaton.
type frag struct {
	from, to int
}

// Compile builds an NFA for p by Thompson construction. The returned
// automaton's Init is the entry state of p.
func Compile[S, V comparable](p Pattern[S, V]) (*NFA[S, V], error) {
	n := NewNFA[S, V]()
	f, err := build(n, p)
	if err != nil {
		return nil, err
	}
	n.Init = f.from
	return n, nil
}

func build[S, V comparable](n *NFA[S, V], p Pattern[S, V]) (frag, error) {
	var f frag

	switch node := p.(type) {
	case nil:
		return frag{}, invalidPattern("nil node")
	case Literal[S, V]:
		f.from = n.AddState()
		f.to = n.AddState()
		n.AddTransition(f.from, node.Symbol, f.to)
	case Concat[S, V]:
		if len(node.Children) == 0 {
			return frag{}, invalidPattern("concatenation with no children")
		}
		parts := make([]frag, len(node.Children))
		for i, child := range node.Children {
			part, err := build(n, child)
			if err != nil {
				return frag{}, err
			}
			parts[i] = part
		}
		for i := 1; i < len(parts); i++ {
			n.AddEpsilon(parts[i-1].to, parts[i].from)
		}
		f = frag{from: parts[0].from, to: parts[len(parts)-1].to}
	case Alternation[S, V]:
		if len(node.Children) == 0 {
			return frag{}, invalidPattern("alternation with no children")
		}
		f.from = n.AddState()
		f.to = n.AddState()
		for _, child := range node.Children {
			part, err := build(n, child)
			if err != nil {
				return frag{}, err
			}
			n.AddEpsilon(f.from, part.from)
			n.AddEpsilon(part.to, f.to)
		}
	case Repetition[S, V]:
		part, err := build(n, node.Child)
		if err != nil {
			return frag{}, err
		}
		// loop back for more, skip forward for zero
		n.AddEpsilon(part.to, part.from)
		n.AddEpsilon(part.from, part.to)
		f = part
	default:
		return frag{}, invalidPattern("unknown node %T", p)
	}

	if v, ok := p.Accept(); ok {
		if err := n.SetAccept(f.to, v); err != nil {
			return frag{}, err
		}
	}
	return f, nil
}

// Build compiles p and determinizes the result.
func Build[S, V comparable](p Pattern[S, V], opts ...Option) (*DFA[S, V], error) {
	n, err := Compile[S, V](p)
	if err != nil {
		return nil, err
	}
	return n.ToDFA(opts...)
}

package fsa

// Equivalent reports whether a and b are the same automaton up to state
// numbering: walking both from their initial states in lockstep, paired
// states must accept the same value and have transitions on the same
// symbols leading to consistently paired states.
func Equivalent[S, V comparable](a, b *DFA[S, V]) bool {
	type pair struct{ i, j int }

	aToB := map[int]int{0: 0}
	bToA := map[int]int{0: 0}
	queue := []pair{{0, 0}}

	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]

		va, oka := a.Accepting(p.i)
		vb, okb := b.Accepting(p.j)
		if oka != okb || va != vb {
			return false
		}

		na, nb := 0, 0
		mismatch := false
		a.Transitions(p.i, func(sym S, ta int) {
			na++
			tb, ok := b.Step(p.j, sym)
			if !ok {
				mismatch = true
				return
			}
			mb, seenA := aToB[ta]
			ma, seenB := bToA[tb]
			switch {
			case !seenA && !seenB:
				aToB[ta] = tb
				bToA[tb] = ta
				queue = append(queue, pair{ta, tb})
			case seenA && seenB && mb == tb && ma == ta:
			default:
				mismatch = true
			}
		})
		b.Transitions(p.j, func(S, int) { nb++ })
		if mismatch || na != nb {
			return false
		}
	}
	return true
}

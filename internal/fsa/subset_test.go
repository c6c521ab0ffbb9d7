package fsa

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"lindenmayer/internal/logging"
)

func TestToDFAAmbiguity(t *testing.T) {
	// two differently tagged patterns for the same word
	p := alt(Word(Accept(1), 'a', 'b'), Word(Accept(2), 'a', 'b'))
	n, err := Compile[rune, int](p)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	_, err = n.ToDFA()
	var ae *AmbiguityError
	if !errors.As(err, &ae) {
		t.Fatalf("want *AmbiguityError, got %v", err)
	}
	if len(ae.Pairs) != 2 {
		t.Fatalf("want 2 conflicting pairs, got %v", ae.Pairs)
	}
	if ae.Pairs[0].State >= ae.Pairs[1].State {
		t.Fatalf("pairs not ordered by state: %v", ae.Pairs)
	}
	if !errors.Is(err, ErrAmbiguous) {
		t.Fatalf("errors.Is(ErrAmbiguous) failed")
	}
	if !strings.Contains(err.Error(), "=1") || !strings.Contains(err.Error(), "=2") {
		t.Fatalf("error should name both values: %v", err)
	}
}

func TestToDFASameValueNotAmbiguous(t *testing.T) {
	// both branches yield 5: reaching two accept states with one value is fine
	d := mustBuild(t, alt(Word(Accept(5), 'a', 'b'), Word(Accept(5), 'a', 'b'), litv('c', 6)))
	if got := scan(t, d, "abc"); len(got) != 2 || got[0] != 5 || got[1] != 6 {
		t.Fatalf("got %v", got)
	}
}

func TestToDFAAmbiguityThroughRepetition(t *testing.T) {
	// b* and b both accept "b"
	p := alt(
		Concat[rune, int]{Children: []pat{lit('a'), Repetition[rune, int]{Child: lit('b')}}, Tag: Accept(1)},
		Word(Accept(2), 'a', 'b'),
	)
	if _, err := Build[rune, int](p); !errors.Is(err, ErrAmbiguous) {
		t.Fatalf("want ErrAmbiguous, got %v", err)
	}
}

func TestToDFAInitialIsZero(t *testing.T) {
	d := mustBuild(t, alt(litv('x', 1), litv('y', 2)))
	if d.Init() != 0 {
		t.Fatalf("init %d", d.Init())
	}
	if _, ok := d.Accepting(0); ok {
		t.Fatalf("initial state must not accept")
	}
	x, ok := d.Step(0, 'x')
	if !ok {
		t.Fatal("no transition on x")
	}
	if v, ok := d.Accepting(x); !ok || v != 1 {
		t.Fatalf("x leads to %d accepting %v %v", x, v, ok)
	}
	if _, ok := d.Step(0, 'z'); ok {
		t.Fatal("unexpected transition on z")
	}
	if _, ok := d.Step(x, 'x'); ok {
		t.Fatal("unexpected transition after x")
	}
}

func TestToDFAStateCount(t *testing.T) {
	d := mustBuild(t, alt(litv('x', 1), litv('y', 2)))
	if d.NumStates() != 3 {
		t.Fatalf("want 3 states, got %d", d.NumStates())
	}
	if len(d.Alphabet()) != 2 {
		t.Fatalf("alphabet %q", d.Alphabet())
	}
}

func TestToDFAStableNumbering(t *testing.T) {
	p := alt(litv('a', 1), Word(Accept(2), 'a', 'b'), litv('c', 3))
	first := mustBuild(t, p)
	var want bytes.Buffer
	if err := first.WriteDOT(&want); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 10; i++ {
		var got bytes.Buffer
		if err := mustBuild(t, p).WriteDOT(&got); err != nil {
			t.Fatal(err)
		}
		if got.String() != want.String() {
			t.Fatalf("build %d numbered states differently", i)
		}
	}
}

func TestToDFALogger(t *testing.T) {
	var buf bytes.Buffer
	l := logging.New(true)
	l.SetOutput(&buf)

	n, err := Compile[rune, int](alt(litv('x', 1), litv('y', 2)))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := n.ToDFA(WithLogger(l)); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "Subset Construction") || !strings.Contains(out, "DFA: 3 states, 2 accepting") {
		t.Fatalf("unexpected log:\n%s", out)
	}
}

func TestEquivalentUnderRelabeling(t *testing.T) {
	p := alt(litv('a', 1), Word(Accept(2), 'a', 'b'), Concat[rune, int]{
		Children: []pat{lit('c'), Repetition[rune, int]{Child: lit('d')}},
		Tag:      Accept(3),
	})
	a := mustBuild(t, p)
	b := mustBuild(t, p)
	if !Equivalent(a, b) {
		t.Fatal("same pattern compiled twice should be equivalent")
	}

	// same language, different construction order
	q := alt(Concat[rune, int]{
		Children: []pat{lit('c'), Repetition[rune, int]{Child: lit('d')}},
		Tag:      Accept(3),
	}, Word(Accept(2), 'a', 'b'), litv('a', 1))
	if !Equivalent(a, mustBuild(t, q)) {
		t.Fatal("reordered alternation should be equivalent")
	}

	other := mustBuild(t, alt(litv('a', 1), Word(Accept(4), 'a', 'b')))
	if Equivalent(a, other) {
		t.Fatal("different automata reported equivalent")
	}
}

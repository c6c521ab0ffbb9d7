package lsystem

import (
	"math/rand"
	"slices"
	"strings"
	"testing"
	"unicode"

	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

// lexmachinePattern spells sym as a lexmachine regex matching it literally.
func lexmachinePattern(sym string) []byte {
	var b strings.Builder
	for _, r := range sym {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '@' || r == '-':
			b.WriteRune(r)
		case r == ']':
			b.WriteString(`[]]`)
		case r == '[':
			b.WriteString(`[\[]`)
		default:
			b.WriteString("[" + string(r) + "]")
		}
	}
	return []byte(b.String())
}

func referenceLexer(t *testing.T, alphabet []string) *lexmachine.Lexer {
	t.Helper()
	lex := lexmachine.NewLexer()
	lex.Add([]byte(`[ \t\n\r]+`), func(*lexmachine.Scanner, *machines.Match) (interface{}, error) {
		return nil, nil
	})
	for i, sym := range alphabet {
		id := i
		lex.Add(lexmachinePattern(sym), func(*lexmachine.Scanner, *machines.Match) (interface{}, error) {
			return id, nil
		})
	}
	if err := lex.Compile(); err != nil {
		t.Fatalf("lexmachine compile: %v", err)
	}
	return lex
}

func referenceTokenize(t *testing.T, lex *lexmachine.Lexer, text string) ([]int, bool) {
	t.Helper()
	scanner, err := lex.Scanner([]byte(text))
	if err != nil {
		t.Fatalf("lexmachine scanner: %v", err)
	}
	var out []int
	for tok, err, eos := scanner.Next(); !eos; tok, err, eos = scanner.Next() {
		if err != nil {
			return nil, false
		}
		out = append(out, tok.(int))
	}
	return out, true
}

// Tokenize must agree with an independent longest-match lexer on every
// input built from the alphabet.
func TestTokenizeAgreesWithLexmachine(t *testing.T) {
	alphabet := strings.Fields("L S R F [2 [M ] { } - + @ (B (E (R (D (L )")
	s, err := New(alphabet, nil)
	if err != nil {
		t.Fatal(err)
	}
	ref := referenceLexer(t, alphabet)

	rng := rand.New(rand.NewSource(1))
	seps := []string{"", "", " ", "\n", "  \t"}
	for i := 0; i < 300; i++ {
		var b strings.Builder
		for j := rng.Intn(30); j >= 0; j-- {
			b.WriteString(alphabet[rng.Intn(len(alphabet))])
			b.WriteString(seps[rng.Intn(len(seps))])
		}
		text := b.String()

		got, err := s.Tokenize(text)
		want, ok := referenceTokenize(t, ref, text)
		if (err == nil) != ok {
			t.Fatalf("%q: tokenize error %v, lexmachine ok=%v", text, err, ok)
		}
		if ok && !slices.Equal(got, want) {
			t.Fatalf("%q:\n got  %v\n want %v", text, s.Names(got), s.Names(want))
		}
	}
}

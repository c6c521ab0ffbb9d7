package fsa

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrInvalidPattern reports a malformed pattern tree: an empty Concat
	// or Alternation, a nil child, or a node kind the compiler does not know.
	ErrInvalidPattern = errors.New("invalid pattern")
	// ErrConflict reports two different accept values attached to the same
	// NFA state during construction.
	ErrConflict = errors.New("accept conflict")
	// ErrAmbiguous reports a DFA state that folds NFA accept states carrying
	// different values.
	ErrAmbiguous = errors.New("ambiguous automaton")
	// ErrAcceptsEmpty reports a scan over an automaton whose initial state
	// accepts.
	ErrAcceptsEmpty = errors.New("automaton accepts the empty string")
	// ErrTrap reports input with no accepting prefix at the scan position.
	ErrTrap = errors.New("scanner trapped")
)

// ConflictError is returned when a state would receive a second, different
// accept value.
type ConflictError struct {
	State    int
	Existing any
	Incoming any
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("accept conflict on state %d: %v vs %v", e.State, e.Existing, e.Incoming)
}

func (e *ConflictError) Is(target error) bool { return target == ErrConflict }

// AcceptPair is an NFA accept state with its value.
type AcceptPair struct {
	State int
	Value any
}

// AmbiguityError is returned by subset construction when one DFA state
// would accept more than one distinct value. Pairs lists every NFA accept
// state folded into it, ordered by state.
type AmbiguityError struct {
	DFAState int
	Pairs    []AcceptPair
}

func (e *AmbiguityError) Error() string {
	parts := make([]string, len(e.Pairs))
	for i, p := range e.Pairs {
		parts[i] = fmt.Sprintf("%d=%v", p.State, p.Value)
	}
	return fmt.Sprintf("ambiguous automaton: DFA state %d accepts {%s}", e.DFAState, strings.Join(parts, ", "))
}

func (e *AmbiguityError) Is(target error) bool { return target == ErrAmbiguous }

// ConfigError is returned by Scan when the initial state accepts, which
// would let the scanner emit zero-length tokens forever.
type ConfigError struct {
	Value any
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("automaton accepts the empty string (value %v)", e.Value)
}

func (e *ConfigError) Is(target error) bool { return target == ErrAcceptsEmpty }

// TrapError is returned by Scan when the input at Offset starts no
// accepting prefix. Symbol is the offending input symbol.
type TrapError struct {
	Symbol any
	Offset int
}

func (e *TrapError) Error() string {
	return fmt.Sprintf("scanner trapped on %s at offset %d", describe(e.Symbol), e.Offset)
}

func (e *TrapError) Is(target error) bool { return target == ErrTrap }

func describe(v any) string {
	switch x := v.(type) {
	case rune:
		return strconv.QuoteRune(x)
	case string:
		return strconv.Quote(x)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func invalidPattern(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidPattern, fmt.Sprintf(format, args...))
}

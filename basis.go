package qsim

import "fmt"

// Basis names one of the single-qubit states a circuit can start from.
type Basis byte

const (
	Zero  Basis = '0'
	One   Basis = '1'
	Plus  Basis = '+'
	Minus Basis = '-'
)

func (b Basis) String() string {
	return "|" + string(b) + "⟩"
}

// Valid reports whether b is one of the four supported basis states.
func (b Basis) Valid() bool {
	switch b {
	case Zero, One, Plus, Minus:
		return true
	}
	return false
}

// ParseBasis accepts the symbols 0, 1, + and -.
func ParseBasis(s string) (Basis, error) {
	if len(s) == 1 && Basis(s[0]).Valid() {
		return Basis(s[0]), nil
	}
	return 0, fmt.Errorf("parse basis %q: %w", s, ErrInvalidConfig)
}

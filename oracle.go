package qsim

import (
	"fmt"
	"strings"
)

// OracleType names the promise a Deutsch-Jozsa oracle keeps.
type OracleType string

const (
	OracleConstant OracleType = "constant"
	OracleBalanced OracleType = "balanced"
)

func ParseOracleType(s string) (OracleType, error) {
	switch t := OracleType(strings.ToLower(s)); t {
	case OracleConstant, OracleBalanced:
		return t, nil
	}
	return "", fmt.Errorf("oracle: %w: type must be balanced or constant, got %q", ErrInvalidOracle, s)
}

// ConstantOracle maps every input to output on the last qubit of a
// numQubits register.
func ConstantOracle(numQubits, output int) *Circuit {
	c := NewCircuit(numQubits, 0, WithName("constant_oracle"))
	if output != 0 && output != 1 {
		return c.fail(fmt.Errorf("oracle: %w: output must be 0 or 1, got %d", ErrInvalidOracle, output))
	}

	c.ApplyAll(Identity())
	if output == 1 {
		c.X(numQubits - 1)
	}
	return c
}

// BalancedOracle writes the parity of the first numQubits-1 qubits onto the
// last one.
func BalancedOracle(numQubits int) *Circuit {
	c := NewCircuit(numQubits, 0, WithName("balanced_oracle"))
	for i := 0; i < numQubits-1; i++ {
		c.CX(i, numQubits-1)
	}
	return c
}

/*
SimonOracle builds f over 2n qubits, n = len(s), with f(x) = f(x ⊕ s).
The input register is qubits 0..n-1 and the output register n..2n-1. The
secret is read like a measurement outcome: its last character is qubit 0.
*/
func SimonOracle(s string) *Circuit {
	n := len(s)
	c := NewCircuit(2*n, 0, WithName("simon_oracle"))
	if err := checkBits(s); err != nil {
		return c.fail(err)
	}

	for i := 0; i < n; i++ {
		c.CX(i, n+i)
	}

	// XOR s into the output whenever the lowest set bit of s is 1, so x and
	// x ⊕ s land on the same value.
	pivot := -1
	for k := 0; k < n; k++ {
		if s[n-1-k] == '1' {
			pivot = k
			break
		}
	}
	if pivot < 0 {
		return c
	}
	for k := 0; k < n; k++ {
		if s[n-1-k] == '1' {
			c.CX(pivot, n+k)
		}
	}
	return c
}

// DeutschJozsa is the n-bit Deutsch-Jozsa circuit with qubit n as ancilla.
func DeutschJozsa(n int, kind OracleType, output int) (*Circuit, error) {
	if n < 1 {
		return nil, fmt.Errorf("deutsch-jozsa: %w: n must be positive, got %d", ErrInvalidOracle, n)
	}

	var oracle *Circuit
	switch kind {
	case OracleConstant:
		oracle = ConstantOracle(n+1, output)
	case OracleBalanced:
		oracle = BalancedOracle(n + 1)
	default:
		return nil, fmt.Errorf("deutsch-jozsa: %w: unknown type %q", ErrInvalidOracle, kind)
	}

	inputs := make([]int, n)
	for i := range inputs {
		inputs[i] = i
	}

	c := NewCircuit(n+1, n, WithName("deutsch_jozsa"))
	c.Barrier().
		X(n).
		Barrier().
		ApplyAll(Hadamard()).
		Barrier().
		Compose(oracle).
		Barrier().
		Apply(Hadamard(), inputs...).
		Barrier().
		Measure(inputs, inputs)

	if err := c.Err(); err != nil {
		return nil, err
	}
	return c, nil
}

// IsConstant reads a Deutsch-Jozsa run: a constant function measures all
// zeros on the input register.
func IsConstant(counts Counts, n int) bool {
	return counts.Ratio(strings.Repeat("0", n)) > 0.5
}

// SimonCircuit samples bitstrings orthogonal to s.
func SimonCircuit(s string) (*Circuit, error) {
	n := len(s)
	if n < 1 {
		return nil, fmt.Errorf("simon: %w: empty secret", ErrInvalidOracle)
	}

	first := make([]int, n)
	for i := range first {
		first[i] = i
	}

	c := NewCircuit(2*n, n, WithName("simon"))
	c.Barrier().
		Apply(Hadamard(), first...).
		Barrier().
		Compose(SimonOracle(s)).
		Barrier().
		Apply(Hadamard(), first...).
		Barrier().
		Measure(first, first)

	if err := c.Err(); err != nil {
		return nil, err
	}
	return c, nil
}

func checkBits(s string) error {
	if s == "" {
		return fmt.Errorf("oracle: %w: empty bitstring", ErrInvalidOracle)
	}
	for _, r := range s {
		if r != '0' && r != '1' {
			return fmt.Errorf("oracle: %w: %q is not a bitstring", ErrInvalidOracle, s)
		}
	}
	return nil
}

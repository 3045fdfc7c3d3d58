package qsim

import (
	"fmt"
	"math"
	"math/cmplx"
	"strings"

	"gonum.org/v1/gonum/floats"
)

// probabilityFloor drops outcomes whose probability is rounding noise.
const probabilityFloor = 1e-12

/*
StateVector holds the 2^n complex amplitudes of an n-qubit register.
Qubit k is bit k of the basis index, so |q2 q1 q0⟩ is index q2*4 + q1*2 + q0.
*/
type StateVector struct {
	Amplitudes []complex128
	NumQubits  int
}

// NewStateVector takes the tensor product of the initial qubits.
func NewStateVector(qubits []*Qubit) *StateVector {
	n := len(qubits)
	amps := make([]complex128, 1<<n)

	for i := range amps {
		amp := complex(1, 0)
		for k, q := range qubits {
			if i&(1<<k) == 0 {
				amp *= q.alpha
			} else {
				amp *= q.beta
			}
		}
		amps[i] = amp
	}

	return &StateVector{Amplitudes: amps, NumQubits: n}
}

// ZeroState is |0…0⟩.
func ZeroState(n int) *StateVector {
	amps := make([]complex128, 1<<n)
	amps[0] = 1
	return &StateVector{Amplitudes: amps, NumQubits: n}
}

func (s *StateVector) Clone() *StateVector {
	amps := make([]complex128, len(s.Amplitudes))
	copy(amps, s.Amplitudes)
	return &StateVector{Amplitudes: amps, NumQubits: s.NumQubits}
}

// Apply executes one circuit instruction. Barriers and measurements leave
// the amplitudes untouched; measurement happens when the distribution is read.
func (s *StateVector) Apply(in Instruction) {
	switch in.Kind {
	case OpGate:
		for _, q := range in.Qubits {
			s.ApplyGate(in.Gate, q)
		}
	case OpControlled:
		s.ApplyControlled(in.Gate, in.Control, in.Target)
	}
}

// ApplyGate applies a single-qubit gate to qubit q.
func (s *StateVector) ApplyGate(g Gate, q int) {
	m := g.Matrix
	bit := 1 << q

	for i := range s.Amplitudes {
		if i&bit != 0 {
			continue
		}
		j := i | bit
		a0, a1 := s.Amplitudes[i], s.Amplitudes[j]
		s.Amplitudes[i] = m[0][0]*a0 + m[0][1]*a1
		s.Amplitudes[j] = m[1][0]*a0 + m[1][1]*a1
	}
}

// ApplyControlled applies g to target on the half of the state where
// control is 1.
func (s *StateVector) ApplyControlled(g Gate, control, target int) {
	m := g.Matrix
	cbit := 1 << control
	tbit := 1 << target

	for i := range s.Amplitudes {
		if i&cbit == 0 || i&tbit != 0 {
			continue
		}
		j := i | tbit
		a0, a1 := s.Amplitudes[i], s.Amplitudes[j]
		s.Amplitudes[i] = m[0][0]*a0 + m[0][1]*a1
		s.Amplitudes[j] = m[1][0]*a0 + m[1][1]*a1
	}
}

// Probabilities returns |amplitude|^2 for every basis index.
func (s *StateVector) Probabilities() []float64 {
	probs := make([]float64, len(s.Amplitudes))
	for i, amplitude := range s.Amplitudes {
		prob := cmplx.Abs(amplitude)
		probs[i] = prob * prob // Square of the modulus
	}
	return probs
}

func (s *StateVector) Norm() float64 {
	return math.Sqrt(floats.Sum(s.Probabilities()))
}

/*
Distribution reads the register out through the measurement mapping.
Keys are classical bitstrings with classical bit 0 rightmost; classical bits
no qubit is measured into read 0. Basis states that collapse onto the same
classical string have their probabilities summed, and outcomes with no
probability mass are left out.
*/
func (s *StateVector) Distribution(measured map[int]int, numClbits int) map[string]float64 {
	out := make(map[string]float64)
	bits := make([]byte, numClbits)

	for i, p := range s.Probabilities() {
		if p < probabilityFloor {
			continue
		}

		for k := range bits {
			bits[k] = '0'
		}
		for q, clbit := range measured {
			if i&(1<<q) != 0 {
				bits[numClbits-1-clbit] = '1'
			}
		}

		out[string(bits)] += p
	}

	return out
}

// String lists the non-zero amplitudes as |basis⟩ terms.
func (s *StateVector) String() string {
	var sb strings.Builder
	for i, amp := range s.Amplitudes {
		if cmplx.Abs(amp) < 1e-9 {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteString(" + ")
		}
		fmt.Fprintf(&sb, "%s|%0*b⟩", formatComplex(amp), s.NumQubits, i)
	}
	if sb.Len() == 0 {
		return "0"
	}
	return sb.String()
}

package qsim

import (
	"fmt"
	"math"
	"math/cmplx"
)

// Qubit is a single, unentangled qubit used to prepare the initial register.
type Qubit struct {
	alpha complex128 // |0⟩ amplitude
	beta  complex128 // |1⟩ amplitude
}

func NewQubit(alpha, beta complex128) *Qubit {
	return &Qubit{
		alpha: alpha,
		beta:  beta,
	}
}

// QubitFromBasis prepares one of the computational or Hadamard basis states.
func QubitFromBasis(b Basis) *Qubit {
	h := complex(1/math.Sqrt2, 0)

	switch b {
	case One:
		return NewQubit(0, 1)
	case Plus:
		return NewQubit(h, h)
	case Minus:
		return NewQubit(h, -h)
	default:
		return NewQubit(1, 0)
	}
}

// Apply multiplies the qubit by the gate's 2x2 matrix.
func (q *Qubit) Apply(g Gate) {
	m := g.Matrix
	newAlpha := m[0][0]*q.alpha + m[0][1]*q.beta
	newBeta := m[1][0]*q.alpha + m[1][1]*q.beta
	q.alpha = newAlpha
	q.beta = newBeta
}

func (q *Qubit) Amplitudes() (complex128, complex128) {
	return q.alpha, q.beta
}

func (q *Qubit) Probability0() float64 {
	p := cmplx.Abs(q.alpha)
	return p * p
}

func (q *Qubit) Probability1() float64 {
	p := cmplx.Abs(q.beta)
	return p * p
}

func (q *Qubit) String() string {
	return fmt.Sprintf("%s|0⟩ + %s|1⟩", formatComplex(q.alpha), formatComplex(q.beta))
}

func formatComplex(c complex128) string {
	re, im := real(c), imag(c)
	if math.Abs(im) < 1e-12 {
		return fmt.Sprintf("%.4g", re)
	}
	if math.Abs(re) < 1e-12 {
		return fmt.Sprintf("%.4gi", im)
	}
	sign := "+"
	if im < 0 {
		sign = "-"
	}
	return fmt.Sprintf("(%.4g%s%.4gi)", re, sign, math.Abs(im))
}

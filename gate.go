package qsim

import (
	"fmt"
	"math"
	"math/cmplx"
	"strconv"
	"strings"
)

/*
Gate is a single-qubit unitary. Multi-qubit operations in a circuit are
expressed as a Gate together with the qubits it acts on, and controlled
operations as a Gate plus a control qubit.
*/
type Gate struct {
	Name   string
	Params []float64
	Matrix [2][2]complex128
}

func Identity() Gate {
	return Gate{Name: "id", Matrix: [2][2]complex128{{1, 0}, {0, 1}}}
}

func Hadamard() Gate {
	// H = 1/√2 * [1  1]
	//           [1 -1]
	h := complex(1/math.Sqrt2, 0)
	return Gate{Name: "h", Matrix: [2][2]complex128{{h, h}, {h, -h}}}
}

func PauliX() Gate {
	return Gate{Name: "x", Matrix: [2][2]complex128{{0, 1}, {1, 0}}}
}

func PauliY() Gate {
	return Gate{Name: "y", Matrix: [2][2]complex128{{0, -1i}, {1i, 0}}}
}

func PauliZ() Gate {
	return Gate{Name: "z", Matrix: [2][2]complex128{{1, 0}, {0, -1}}}
}

func S() Gate {
	return Gate{Name: "s", Matrix: [2][2]complex128{{1, 0}, {0, 1i}}}
}

func Sdg() Gate {
	return Gate{Name: "sdg", Matrix: [2][2]complex128{{1, 0}, {0, -1i}}}
}

func T() Gate {
	return Gate{Name: "t", Matrix: [2][2]complex128{{1, 0}, {0, cmplx.Exp(complex(0, math.Pi/4))}}}
}

func Tdg() Gate {
	return Gate{Name: "tdg", Matrix: [2][2]complex128{{1, 0}, {0, cmplx.Exp(complex(0, -math.Pi/4))}}}
}

func RX(theta float64) Gate {
	c := complex(math.Cos(theta/2), 0)
	s := complex(0, -math.Sin(theta/2))
	return Gate{Name: "rx", Params: []float64{theta}, Matrix: [2][2]complex128{{c, s}, {s, c}}}
}

func RY(theta float64) Gate {
	c := complex(math.Cos(theta/2), 0)
	s := complex(math.Sin(theta/2), 0)
	return Gate{Name: "ry", Params: []float64{theta}, Matrix: [2][2]complex128{{c, -s}, {s, c}}}
}

func RZ(theta float64) Gate {
	return Gate{Name: "rz", Params: []float64{theta}, Matrix: [2][2]complex128{
		{cmplx.Exp(complex(0, -theta/2)), 0},
		{0, cmplx.Exp(complex(0, theta/2))},
	}}
}

// Phase is diag(1, e^{iθ}), the qelib1 "u1"/"p" gate.
func Phase(theta float64) Gate {
	return Gate{Name: "p", Params: []float64{theta}, Matrix: [2][2]complex128{
		{1, 0},
		{0, cmplx.Exp(complex(0, theta))},
	}}
}

// Dagger returns the conjugate transpose. Named gates keep a readable name.
func (g Gate) Dagger() Gate {
	m := g.Matrix
	out := Gate{
		Matrix: [2][2]complex128{
			{cmplx.Conj(m[0][0]), cmplx.Conj(m[1][0])},
			{cmplx.Conj(m[0][1]), cmplx.Conj(m[1][1])},
		},
	}

	switch g.Name {
	case "", "id", "h", "x", "y", "z":
		out.Name = g.Name
	case "sdg", "tdg":
		out.Name = strings.TrimSuffix(g.Name, "dg")
	case "rx", "ry", "rz", "p":
		out.Name = g.Name
		out.Params = make([]float64, len(g.Params))
		for i, p := range g.Params {
			out.Params[i] = -p
		}
	default:
		out.Name = g.Name + "dg"
	}

	return out
}

// IsUnitary checks U†U = I within tol.
func (g Gate) IsUnitary(tol float64) bool {
	m := g.Matrix
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			var sum complex128
			for k := 0; k < 2; k++ {
				sum += cmplx.Conj(m[k][i]) * m[k][j]
			}
			want := complex(0, 0)
			if i == j {
				want = 1
			}
			if cmplx.Abs(sum-want) > tol {
				return false
			}
		}
	}
	return true
}

// Label is the text drawn inside the gate's box. Unnamed gates draw as U.
func (g Gate) Label() string {
	if g.Name == "" {
		return "U"
	}

	name := strings.ToUpper(g.Name[:1]) + g.Name[1:]
	switch g.Name {
	case "sdg", "tdg":
		name = strings.ToUpper(g.Name[:1]) + "dg"
	case "id":
		name = "I"
	}

	if len(g.Params) == 0 {
		return name
	}

	params := make([]string, len(g.Params))
	for i, p := range g.Params {
		params[i] = formatAngle(p)
	}
	return fmt.Sprintf("%s(%s)", name, strings.Join(params, ","))
}

// formatAngle prints multiples of π symbolically where that is exact enough.
func formatAngle(theta float64) string {
	ratio := theta / math.Pi
	for _, den := range []float64{1, 2, 4, 8} {
		num := ratio * den
		if math.Abs(num-math.Round(num)) < 1e-9 && num != 0 {
			n := int(math.Round(num))
			var s string
			switch n {
			case 1:
				s = "π"
			case -1:
				s = "-π"
			default:
				s = strconv.Itoa(n) + "π"
			}
			if den != 1 {
				s += "/" + strconv.Itoa(int(den))
			}
			return s
		}
	}
	return strconv.FormatFloat(theta, 'g', 4, 64)
}

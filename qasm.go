package qsim

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// qasmNames maps gate names onto their qelib1.inc mnemonics where they differ.
var qasmNames = map[string]string{
	"p": "u1",
}

// QASM renders the circuit as an OpenQASM 2.0 program. Qubits prepared in a
// basis other than |0⟩ get the gates that prepare them at the top.
func (c *Circuit) QASM() (string, error) {
	if c.err != nil {
		return "", c.err
	}

	var sb strings.Builder
	sb.WriteString("OPENQASM 2.0;\n")
	sb.WriteString("include \"qelib1.inc\";\n")
	fmt.Fprintf(&sb, "qreg q[%d];\n", c.numQubits)
	if c.numClbits > 0 {
		fmt.Fprintf(&sb, "creg c[%d];\n", c.numClbits)
	}

	for q, b := range c.initial {
		switch b {
		case One:
			fmt.Fprintf(&sb, "x q[%d];\n", q)
		case Plus:
			fmt.Fprintf(&sb, "h q[%d];\n", q)
		case Minus:
			fmt.Fprintf(&sb, "x q[%d];\nh q[%d];\n", q, q)
		}
	}

	for _, in := range c.instructions {
		switch in.Kind {
		case OpGate:
			name, err := qasmGate(in.Gate)
			if err != nil {
				return "", err
			}
			for _, q := range in.Qubits {
				fmt.Fprintf(&sb, "%s q[%d];\n", name, q)
			}
		case OpControlled:
			name, err := qasmControlled(in.Gate)
			if err != nil {
				return "", err
			}
			fmt.Fprintf(&sb, "%s q[%d],q[%d];\n", name, in.Control, in.Target)
		case OpBarrier:
			parts := make([]string, len(in.Qubits))
			for i, q := range in.Qubits {
				parts[i] = fmt.Sprintf("q[%d]", q)
			}
			fmt.Fprintf(&sb, "barrier %s;\n", strings.Join(parts, ","))
		case OpMeasure:
			fmt.Fprintf(&sb, "measure q[%d] -> c[%d];\n", in.Qubits[0], in.Clbit)
		}
	}

	return sb.String(), nil
}

func qasmGate(g Gate) (string, error) {
	if g.Name == "" {
		return "", opError("qasm", ErrUnsupportedGate)
	}
	name := g.Name
	if alias, ok := qasmNames[name]; ok {
		name = alias
	}
	return name + qasmParams(g.Params), nil
}

// qasmControlled spells a controlled gate with the two-qubit gates qelib1.inc
// defines. Phase gates collapse onto cu1 and rotations onto crz or cu3.
func qasmControlled(g Gate) (string, error) {
	switch g.Name {
	case "x", "y", "z", "h":
		return "c" + g.Name, nil
	case "s":
		return "cu1" + qasmParams([]float64{math.Pi / 2}), nil
	case "sdg":
		return "cu1" + qasmParams([]float64{-math.Pi / 2}), nil
	case "t":
		return "cu1" + qasmParams([]float64{math.Pi / 4}), nil
	case "tdg":
		return "cu1" + qasmParams([]float64{-math.Pi / 4}), nil
	}

	if len(g.Params) != 1 {
		return "", fmt.Errorf("qasm: controlled %q: %w", g.Name, ErrUnsupportedGate)
	}
	theta := g.Params[0]

	switch g.Name {
	case "p":
		return "cu1" + qasmParams([]float64{theta}), nil
	case "rz":
		return "crz" + qasmParams([]float64{theta}), nil
	case "rx":
		return "cu3" + qasmParams([]float64{theta, -math.Pi / 2, math.Pi / 2}), nil
	case "ry":
		return "cu3" + qasmParams([]float64{theta, 0, 0}), nil
	}

	return "", fmt.Errorf("qasm: controlled %q: %w", g.Name, ErrUnsupportedGate)
}

func qasmParams(params []float64) string {
	if len(params) == 0 {
		return ""
	}
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = strconv.FormatFloat(p, 'g', -1, 64)
	}
	return "(" + strings.Join(parts, ",") + ")"
}

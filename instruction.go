package qsim

import (
	"fmt"
	"strings"
)

// OpKind discriminates the instructions a circuit can hold.
type OpKind int

const (
	OpGate OpKind = iota
	OpControlled
	OpBarrier
	OpMeasure
)

func (k OpKind) String() string {
	switch k {
	case OpGate:
		return "gate"
	case OpControlled:
		return "controlled"
	case OpBarrier:
		return "barrier"
	case OpMeasure:
		return "measure"
	}
	return "unknown"
}

/*
Instruction is one entry of a circuit's ordered operation list.

  - OpGate:       Gate applied to every qubit in Qubits.
  - OpControlled: Gate applied to Target when Control is |1⟩.
  - OpBarrier:    ordering fence over Qubits, no effect on the state.
  - OpMeasure:    Qubits[0] measured into Clbit.
*/
type Instruction struct {
	Kind    OpKind
	Gate    Gate
	Qubits  []int
	Control int
	Target  int
	Clbit   int
}

// Span returns the lowest and highest qubit the instruction touches.
func (in Instruction) Span() (int, int) {
	if in.Kind == OpControlled {
		return min(in.Control, in.Target), max(in.Control, in.Target)
	}

	lo, hi := in.Qubits[0], in.Qubits[0]
	for _, q := range in.Qubits[1:] {
		lo = min(lo, q)
		hi = max(hi, q)
	}
	return lo, hi
}

func (in Instruction) String() string {
	switch in.Kind {
	case OpControlled:
		return fmt.Sprintf("c%s q[%d], q[%d]", in.Gate.Name, in.Control, in.Target)
	case OpMeasure:
		return fmt.Sprintf("measure q[%d] -> c[%d]", in.Qubits[0], in.Clbit)
	case OpBarrier:
		return "barrier " + joinQubits(in.Qubits)
	default:
		return in.Gate.Label() + " " + joinQubits(in.Qubits)
	}
}

func joinQubits(qubits []int) string {
	parts := make([]string, len(qubits))
	for i, q := range qubits {
		parts[i] = fmt.Sprintf("q[%d]", q)
	}
	return strings.Join(parts, ", ")
}

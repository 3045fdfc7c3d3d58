package qsim

import (
	"slices"
	"sort"
)

/*
Circuit is an ordered description of gates, barriers and measurements over a
fixed register of qubits and classical bits.

Builder methods return the circuit so calls can be chained. The first
invalid call is remembered and every later call becomes a no-op; Err reports
it, and Compile and the simulator refuse to run a circuit carrying one.
Measurement is terminal: once a qubit is measured no further gate may touch
it.
*/
type Circuit struct {
	name         string
	numQubits    int
	numClbits    int
	initial      []Basis
	instructions []Instruction
	measured     map[int]int
	assigned     map[int]bool
	err          error
}

// unitaryTolerance bounds how far U†U may drift from I for gates the
// builder accepts.
const unitaryTolerance = 1e-9

// CircuitOption configures a circuit at construction time.
type CircuitOption func(*Circuit)

// WithName sets the circuit name used in result headers.
func WithName(name string) CircuitOption {
	return func(c *Circuit) {
		c.name = name
	}
}

// WithInitialState prepares every qubit in the same basis state.
func WithInitialState(b Basis) CircuitOption {
	return func(c *Circuit) {
		for i := range c.initial {
			c.initial[i] = b
		}
	}
}

// WithInitialQubits prepares qubit i in states[i].
func WithInitialQubits(states []Basis) CircuitOption {
	return func(c *Circuit) {
		if len(states) != c.numQubits {
			c.fail(opError("circuit", ErrDimension))
			return
		}
		copy(c.initial, states)
	}
}

func NewCircuit(numQubits, numClbits int, opts ...CircuitOption) *Circuit {
	c := &Circuit{
		name:      "circuit",
		numQubits: numQubits,
		numClbits: numClbits,
		measured:  make(map[int]int),
		assigned:  make(map[int]bool),
	}

	if numQubits < 1 || numClbits < 0 {
		c.fail(opError("circuit", ErrDimension))
		return c
	}

	c.initial = make([]Basis, numQubits)
	for i := range c.initial {
		c.initial[i] = Zero
	}

	for _, opt := range opts {
		opt(c)
	}

	for _, b := range c.initial {
		if !b.Valid() {
			c.fail(opError("circuit", ErrInvalidConfig))
			break
		}
	}

	return c
}

func (c *Circuit) Name() string     { return c.name }
func (c *Circuit) NumQubits() int   { return c.numQubits }
func (c *Circuit) NumClbits() int   { return c.numClbits }
func (c *Circuit) Err() error       { return c.err }
func (c *Circuit) Initial() []Basis { return slices.Clone(c.initial) }
func (c *Circuit) Len() int         { return len(c.instructions) }

func (c *Circuit) HasMeasurements() bool {
	return len(c.measured) > 0
}

// Instructions returns a copy of the operation list.
func (c *Circuit) Instructions() []Instruction {
	out := make([]Instruction, len(c.instructions))
	for i, in := range c.instructions {
		in.Qubits = slices.Clone(in.Qubits)
		out[i] = in
	}
	return out
}

// Measurements returns the qubit → classical bit mapping.
func (c *Circuit) Measurements() map[int]int {
	out := make(map[int]int, len(c.measured))
	for q, b := range c.measured {
		out[q] = b
	}
	return out
}

func (c *Circuit) H(q int) *Circuit   { return c.Apply(Hadamard(), q) }
func (c *Circuit) X(q int) *Circuit   { return c.Apply(PauliX(), q) }
func (c *Circuit) Y(q int) *Circuit   { return c.Apply(PauliY(), q) }
func (c *Circuit) Z(q int) *Circuit   { return c.Apply(PauliZ(), q) }
func (c *Circuit) S(q int) *Circuit   { return c.Apply(S(), q) }
func (c *Circuit) Sdg(q int) *Circuit { return c.Apply(Sdg(), q) }
func (c *Circuit) T(q int) *Circuit   { return c.Apply(T(), q) }
func (c *Circuit) Tdg(q int) *Circuit { return c.Apply(Tdg(), q) }

func (c *Circuit) RX(theta float64, q int) *Circuit { return c.Apply(RX(theta), q) }
func (c *Circuit) RY(theta float64, q int) *Circuit { return c.Apply(RY(theta), q) }
func (c *Circuit) RZ(theta float64, q int) *Circuit { return c.Apply(RZ(theta), q) }
func (c *Circuit) P(theta float64, q int) *Circuit  { return c.Apply(Phase(theta), q) }

// Apply inserts the same gate on each of the given qubits in parallel.
func (c *Circuit) Apply(g Gate, qubits ...int) *Circuit {
	if c.err != nil {
		return c
	}
	if len(qubits) == 0 {
		return c.fail(opError("gate", ErrDimension))
	}
	if !g.IsUnitary(unitaryTolerance) {
		return c.fail(opError("gate", ErrNotUnitary))
	}

	seen := make(map[int]bool, len(qubits))
	for _, q := range qubits {
		if err := c.checkQubit("gate", q); err != nil {
			return c.fail(err)
		}
		if seen[q] {
			return c.fail(opError("gate", ErrSameQubit))
		}
		seen[q] = true
	}

	c.instructions = append(c.instructions, Instruction{
		Kind:   OpGate,
		Gate:   g,
		Qubits: slices.Clone(qubits),
	})
	return c
}

// ApplyAll inserts the gate on every qubit of the register.
func (c *Circuit) ApplyAll(g Gate) *Circuit {
	return c.Apply(g, c.allQubits()...)
}

func (c *Circuit) CX(control, target int) *Circuit { return c.Controlled(PauliX(), control, target) }
func (c *Circuit) CY(control, target int) *Circuit { return c.Controlled(PauliY(), control, target) }
func (c *Circuit) CZ(control, target int) *Circuit { return c.Controlled(PauliZ(), control, target) }

func (c *Circuit) CP(theta float64, control, target int) *Circuit {
	return c.Controlled(Phase(theta), control, target)
}

// Controlled applies g to target when control is |1⟩.
func (c *Circuit) Controlled(g Gate, control, target int) *Circuit {
	if c.err != nil {
		return c
	}
	if err := c.checkQubit("cgate", control); err != nil {
		return c.fail(err)
	}
	if err := c.checkQubit("cgate", target); err != nil {
		return c.fail(err)
	}
	if control == target {
		return c.fail(opError("cgate", ErrSameQubit))
	}
	if !g.IsUnitary(unitaryTolerance) {
		return c.fail(opError("cgate", ErrNotUnitary))
	}

	c.instructions = append(c.instructions, Instruction{
		Kind:    OpControlled,
		Gate:    g,
		Qubits:  []int{control, target},
		Control: control,
		Target:  target,
	})
	return c
}

// Barrier fences the given qubits, or the whole register when none are given.
func (c *Circuit) Barrier(qubits ...int) *Circuit {
	if c.err != nil {
		return c
	}
	if len(qubits) == 0 {
		qubits = c.allQubits()
	}

	for _, q := range qubits {
		if q < 0 || q >= c.numQubits {
			return c.fail(rangeError("barrier", ErrQubitRange, q, c.numQubits))
		}
	}

	qubits = slices.Clone(qubits)
	sort.Ints(qubits)
	qubits = slices.Compact(qubits)

	c.instructions = append(c.instructions, Instruction{
		Kind:   OpBarrier,
		Qubits: qubits,
	})
	return c
}

// Measure maps qubits[i] onto clbits[i].
func (c *Circuit) Measure(qubits []int, clbits []int) *Circuit {
	if c.err != nil {
		return c
	}
	if len(qubits) != len(clbits) {
		return c.fail(opError("measure", ErrDimension))
	}

	for i, q := range qubits {
		if err := c.checkQubit("measure [qubit]", q); err != nil {
			return c.fail(err)
		}
		bit := clbits[i]
		if bit < 0 || bit >= c.numClbits {
			return c.fail(rangeError("measure [bit]", ErrClbitRange, bit, c.numClbits))
		}
		if c.assigned[bit] {
			return c.fail(opError("measure", ErrClbitAssigned))
		}

		c.measured[q] = bit
		c.assigned[bit] = true
		c.instructions = append(c.instructions, Instruction{
			Kind:   OpMeasure,
			Qubits: []int{q},
			Clbit:  bit,
		})
	}
	return c
}

// MeasureAll measures qubit i into classical bit i.
func (c *Circuit) MeasureAll() *Circuit {
	qubits := c.allQubits()
	return c.Measure(qubits, qubits)
}

/*
Compose appends the unitary part of other to this circuit, the way an oracle
is dropped into an algorithm. Both circuits must have the same number of
qubits and other must not measure anything.
*/
func (c *Circuit) Compose(other *Circuit) *Circuit {
	if c.err != nil {
		return c
	}
	if other.err != nil {
		return c.fail(opError("oracle", other.err))
	}
	if other.numQubits != c.numQubits || other.HasMeasurements() {
		return c.fail(opError("oracle", ErrDimension))
	}

	for _, in := range other.Instructions() {
		if in.Kind == OpBarrier {
			c.instructions = append(c.instructions, in)
			continue
		}
		for _, q := range in.Qubits {
			if err := c.checkQubit("oracle", q); err != nil {
				return c.fail(err)
			}
		}
		c.instructions = append(c.instructions, in)
	}
	return c
}

// Compile validates that the circuit can be executed.
func (c *Circuit) Compile() error {
	if c.err != nil {
		return c.err
	}

	gates := 0
	for _, in := range c.instructions {
		if in.Kind == OpGate || in.Kind == OpControlled {
			gates++
		}
	}

	if gates == 0 {
		return opError("compile", ErrNoGates)
	}
	if len(c.measured) == 0 {
		return opError("compile", ErrNoMeasurements)
	}
	return nil
}

func (c *Circuit) checkQubit(op string, q int) error {
	if q < 0 || q >= c.numQubits {
		return rangeError(op, ErrQubitRange, q, c.numQubits)
	}
	if _, ok := c.measured[q]; ok {
		return opError(op, ErrAlreadyMeasured)
	}
	return nil
}

func (c *Circuit) fail(err error) *Circuit {
	if c.err == nil {
		c.err = err
	}
	return c
}

func (c *Circuit) allQubits() []int {
	qubits := make([]int, c.numQubits)
	for i := range qubits {
		qubits[i] = i
	}
	return qubits
}

// String renders the circuit diagram.
func (c *Circuit) String() string {
	return c.Draw()
}

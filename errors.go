package qsim

import (
	"errors"
	"fmt"
)

var (
	ErrQubitRange      = errors.New("qubit index out of range")
	ErrClbitRange      = errors.New("classical bit index out of range")
	ErrAlreadyMeasured = errors.New("qubit is already measured")
	ErrSameQubit       = errors.New("control and target qubits are the same")
	ErrClbitAssigned   = errors.New("classical bit is already assigned to another qubit")
	ErrDimension       = errors.New("dimension mismatch")
	ErrTooManyQubits   = errors.New("too many qubits for this backend")
	ErrNoGates         = errors.New("no gates to compile")
	ErrNoMeasurements  = errors.New("circuit has no measurements")
	ErrInvalidConfig   = errors.New("invalid configuration")
	ErrBackendClosed   = errors.New("backend is closed")
	ErrUnknownFormat   = errors.New("unknown export format")
	ErrInvalidOracle   = errors.New("invalid oracle")
	ErrNotUnitary      = errors.New("gate matrix is not unitary")
	ErrUnsupportedGate = errors.New("gate has no OpenQASM 2.0 form")
)

// opError names the operation that failed, the way the simulator reports
// every construction problem: "<op>: <reason>".
func opError(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}

func rangeError(op string, sentinel error, value, bound int) error {
	return fmt.Errorf("%s: %w: %d not in [0,%d]", op, sentinel, value, bound-1)
}

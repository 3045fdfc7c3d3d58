package qsim

import (
	"context"
	"errors"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

// dot is the GF(2) inner product of two bitstrings.
func dot(a, b string) int {
	sum := 0
	for i := range a {
		if a[i] == '1' && b[i] == '1' {
			sum ^= 1
		}
	}
	return sum
}

func TestOracles(t *testing.T) {
	Convey("Given Deutsch-Jozsa oracles", t, func() {
		Convey("The constant oracle should only touch the ancilla for output 1", func() {
			zero := ConstantOracle(3, 0)
			one := ConstantOracle(3, 1)
			So(zero.Err(), ShouldBeNil)
			So(zero.Len(), ShouldEqual, 1)
			So(one.Len(), ShouldEqual, 2)
			So(one.Instructions()[1].Qubits, ShouldResemble, []int{2})
		})

		Convey("The balanced oracle should CX every input onto the ancilla", func() {
			oracle := BalancedOracle(4)
			So(oracle.Len(), ShouldEqual, 3)
			for i, in := range oracle.Instructions() {
				So(in.Kind, ShouldEqual, OpControlled)
				So(in.Control, ShouldEqual, i)
				So(in.Target, ShouldEqual, 3)
			}
		})

		Convey("An invalid output should be refused", func() {
			So(errors.Is(ConstantOracle(2, 2).Err(), ErrInvalidOracle), ShouldBeTrue)
		})

		Convey("Oracle types should parse case-insensitively", func() {
			kind, err := ParseOracleType("Balanced")
			So(err, ShouldBeNil)
			So(kind, ShouldEqual, OracleBalanced)

			_, err = ParseOracleType("random")
			So(errors.Is(err, ErrInvalidOracle), ShouldBeTrue)
		})
	})

	Convey("Given a Simon oracle", t, func() {
		Convey("It should pair x with x xor s", func() {
			oracle := SimonOracle("110")
			So(oracle.Err(), ShouldBeNil)
			So(oracle.NumQubits(), ShouldEqual, 6)

			// copy register plus one CX per set bit of s
			So(oracle.Len(), ShouldEqual, 5)
		})

		Convey("A malformed secret should be refused", func() {
			So(errors.Is(SimonOracle("1a0").Err(), ErrInvalidOracle), ShouldBeTrue)
		})
	})
}

func TestAlgorithms(t *testing.T) {
	Convey("Given a simulator", t, func() {
		sim, err := NewSimulator(context.Background(), NewConfig())
		So(err, ShouldBeNil)

		Reset(func() {
			sim.Close()
		})

		Convey("Deutsch-Jozsa should tell a constant oracle apart", func() {
			for _, output := range []int{0, 1} {
				c, err := DeutschJozsa(3, OracleConstant, output)
				So(err, ShouldBeNil)

				result, err := runCircuit(sim, c, WithShots(64))
				So(err, ShouldBeNil)
				So(result.Counts, ShouldResemble, Counts{"000": 64})
				So(IsConstant(result.Counts, 3), ShouldBeTrue)
			}
		})

		Convey("Deutsch-Jozsa should tell a balanced oracle apart", func() {
			c, err := DeutschJozsa(3, OracleBalanced, 0)
			So(err, ShouldBeNil)

			result, err := runCircuit(sim, c, WithShots(64))
			So(err, ShouldBeNil)
			So(result.Counts, ShouldResemble, Counts{"111": 64})
			So(IsConstant(result.Counts, 3), ShouldBeFalse)
		})

		Convey("Simon's circuit should only sample strings orthogonal to s", func() {
			const secret = "110"
			c, err := SimonCircuit(secret)
			So(err, ShouldBeNil)

			result, err := runCircuit(sim, c, WithShots(256), WithSeed(3))
			So(err, ShouldBeNil)

			for z := range result.Outcomes {
				So(dot(z, secret), ShouldEqual, 0)
			}
			So(len(result.Outcomes), ShouldEqual, 4)

			Convey("And the GF(2) solver should recover s", func() {
				solutions, err := SolveGF2(result.Outcomes.Keys(), len(secret))
				So(err, ShouldBeNil)
				So(solutions, ShouldResemble, []string{secret})
			})
		})
	})
}

func TestSolveGF2(t *testing.T) {
	Convey("Given outcomes orthogonal to 101", t, func() {
		solutions, err := SolveGF2([]string{"000", "010", "101", "111"}, 3)
		So(err, ShouldBeNil)
		So(solutions, ShouldResemble, []string{"101"})
	})

	Convey("Given outcomes that leave a two dimensional null space", t, func() {
		solutions, err := SolveGF2([]string{"011"}, 3)
		So(err, ShouldBeNil)
		So(len(solutions), ShouldEqual, 2)
		for _, s := range solutions {
			So(dot(s, "011"), ShouldEqual, 0)
			So(s, ShouldNotEqual, "000")
		}
	})

	Convey("Given outcomes that span the whole space", t, func() {
		solutions, err := SolveGF2([]string{"100", "010", "001"}, 3)
		So(err, ShouldBeNil)
		So(solutions, ShouldResemble, []string{strings.Repeat("0", 3)})
	})

	Convey("Given malformed outcomes", t, func() {
		_, err := SolveGF2([]string{"01"}, 3)
		So(errors.Is(err, ErrDimension), ShouldBeTrue)

		_, err = SolveGF2([]string{"0x1"}, 3)
		So(errors.Is(err, ErrInvalidOracle), ShouldBeTrue)
	})
}

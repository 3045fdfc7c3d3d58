package qsim

import (
	"math"
	"math/cmplx"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestGates(t *testing.T) {
	Convey("Given the standard gate set", t, func() {
		gates := []Gate{
			Identity(), Hadamard(), PauliX(), PauliY(), PauliZ(),
			S(), Sdg(), T(), Tdg(),
			RX(math.Pi / 3), RY(1.25), RZ(-math.Pi / 2), Phase(math.Pi / 4),
		}

		Convey("Every gate should be unitary", func() {
			for _, g := range gates {
				So(g.IsUnitary(1e-12), ShouldBeTrue)
			}
		})

		Convey("Dagger should undo the gate", func() {
			for _, g := range gates {
				q := NewQubit(complex(0.6, 0), complex(0, 0.8))
				q.Apply(g)
				q.Apply(g.Dagger())

				alpha, beta := q.Amplitudes()
				So(cmplx.Abs(alpha-complex(0.6, 0)), ShouldBeLessThan, 1e-12)
				So(cmplx.Abs(beta-complex(0, 0.8)), ShouldBeLessThan, 1e-12)
			}
		})

		Convey("Named inverses should keep readable names", func() {
			So(S().Dagger().Name, ShouldEqual, "sdg")
			So(Tdg().Dagger().Name, ShouldEqual, "t")
			So(Hadamard().Dagger().Name, ShouldEqual, "h")
			So(RX(1).Dagger().Params[0], ShouldEqual, -1.0)
		})

		Convey("A non-unitary matrix should be rejected", func() {
			g := Gate{Name: "bad", Matrix: [2][2]complex128{{1, 1}, {0, 1}}}
			So(g.IsUnitary(1e-9), ShouldBeFalse)
		})

		Convey("A rotation built without parameters should still invert", func() {
			var g Gate
			So(func() { g = Gate{Name: "rx", Matrix: PauliX().Matrix}.Dagger() }, ShouldNotPanic)
			So(g.Name, ShouldEqual, "rx")
			So(g.Params, ShouldBeEmpty)
		})

		Convey("An unnamed gate should stay unnamed when inverted", func() {
			So(Gate{Matrix: PauliX().Matrix}.Dagger().Name, ShouldEqual, "")
		})
	})
}

func TestGateLabels(t *testing.T) {
	Convey("Given gates to draw", t, func() {
		So(Hadamard().Label(), ShouldEqual, "H")
		So(PauliX().Label(), ShouldEqual, "X")
		So(Identity().Label(), ShouldEqual, "I")
		So(Sdg().Label(), ShouldEqual, "Sdg")
		So(RX(math.Pi/2).Label(), ShouldEqual, "Rx(π/2)")
		So(Phase(-math.Pi).Label(), ShouldEqual, "P(-π)")
		So(RZ(3*math.Pi/4).Label(), ShouldEqual, "Rz(3π/4)")

		Convey("An unnamed gate should draw as U", func() {
			So(func() { Gate{Matrix: PauliX().Matrix}.Label() }, ShouldNotPanic)
			So(Gate{Matrix: PauliX().Matrix}.Label(), ShouldEqual, "U")
		})
	})
}

func TestQubit(t *testing.T) {
	Convey("Given a qubit prepared from a basis state", t, func() {
		Convey("|0⟩ and |1⟩ should be certain", func() {
			So(QubitFromBasis(Zero).Probability0(), ShouldEqual, 1.0)
			So(QubitFromBasis(One).Probability1(), ShouldEqual, 1.0)
		})

		Convey("|+⟩ and |−⟩ should be even superpositions", func() {
			for _, b := range []Basis{Plus, Minus} {
				q := QubitFromBasis(b)
				So(q.Probability0(), ShouldAlmostEqual, 0.5, 1e-12)
				So(q.Probability1(), ShouldAlmostEqual, 0.5, 1e-12)
			}
		})

		Convey("H should map |+⟩ back to |0⟩", func() {
			q := QubitFromBasis(Plus)
			q.Apply(Hadamard())
			So(q.Probability0(), ShouldAlmostEqual, 1, 1e-12)
		})
	})

	Convey("Given basis symbols to parse", t, func() {
		b, err := ParseBasis("+")
		So(err, ShouldBeNil)
		So(b, ShouldEqual, Plus)
		So(b.String(), ShouldEqual, "|+⟩")

		_, err = ParseBasis("2")
		So(err, ShouldNotBeNil)
	})
}

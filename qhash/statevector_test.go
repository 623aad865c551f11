package qhash

import (
	"math"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

const eps = 1e-12

func TestStateVector(t *testing.T) {
	Convey("Given a fresh two-qubit register", t, func() {
		s := NewStateVector(2)

		Convey("It starts in |00⟩ with unit norm", func() {
			So(s.Amplitudes, ShouldHaveLength, 4)
			So(s.Norm(), ShouldAlmostEqual, 1.0, eps)
			So(s.ExpectationsZ(), ShouldResemble, []float64{1, 1})
		})

		Convey("RX(π) flips the target qubit", func() {
			s.Apply1Q(0, RX(math.Pi))
			So(s.ExpectationZ(0), ShouldAlmostEqual, -1.0, eps)
			So(s.ExpectationZ(1), ShouldAlmostEqual, 1.0, eps)
		})

		Convey("RY(π/2) leaves an unbiased qubit", func() {
			s.Apply1Q(1, RY(math.Pi/2))
			So(s.ExpectationZ(1), ShouldAlmostEqual, 0.0, eps)
			So(s.Norm(), ShouldAlmostEqual, 1.0, eps)
		})

		Convey("RZ only changes phases", func() {
			s.Apply1Q(0, RZ(1.234))
			So(s.ExpectationZ(0), ShouldAlmostEqual, 1.0, eps)
		})

		Convey("CX flips the target when the control is set", func() {
			s.Apply1Q(0, RX(math.Pi))
			s.ApplyCX(0, 1)
			exps := s.ExpectationsZ()
			So(exps[0], ShouldAlmostEqual, -1.0, eps)
			So(exps[1], ShouldAlmostEqual, -1.0, eps)
		})

		Convey("CX leaves the target alone when the control is clear", func() {
			s.ApplyCX(0, 1)
			So(s.ExpectationsZ(), ShouldResemble, []float64{1, 1})
		})

		Convey("A Bell pair has zero expectations and a shrunken Bloch vector", func() {
			s.Apply1Q(0, RY(math.Pi/2))
			s.ApplyCX(0, 1)
			for q := 0; q < 2; q++ {
				So(s.ExpectationZ(q), ShouldAlmostEqual, 0.0, eps)
				So(s.Bloch(q).Length(), ShouldAlmostEqual, 0.0, eps)
			}
		})

		Convey("Clone is independent", func() {
			c := s.Clone()
			c.Apply1Q(0, RX(math.Pi))
			So(s.ExpectationZ(0), ShouldAlmostEqual, 1.0, eps)
			So(c.ExpectationZ(0), ShouldAlmostEqual, -1.0, eps)
		})
	})

	Convey("Given single-qubit rotations", t, func() {
		Convey("The Bloch vector follows the rotation axis", func() {
			s := NewStateVector(1)
			s.Apply1Q(0, RY(math.Pi/2))
			b := s.Bloch(0)
			So(b.X, ShouldAlmostEqual, 1.0, eps)
			So(b.Y, ShouldAlmostEqual, 0.0, eps)
			So(b.Z, ShouldAlmostEqual, 0.0, eps)

			s = NewStateVector(1)
			s.Apply1Q(0, RX(math.Pi/2))
			b = s.Bloch(0)
			So(b.Y, ShouldAlmostEqual, -1.0, eps)
		})

		Convey("The simulator agrees with a direct matrix product", func() {
			spec, err := NewCircuitSpec(1)
			So(err, ShouldBeNil)
			angles := DeriveAngles([]byte{0x3C, 0x95, 0xE1, 0x07, 0x5A, 0xB2}, spec.NumParams())
			bound, err := spec.Bind(angles)
			So(err, ShouldBeNil)

			u := Identity2
			for _, op := range bound.Operations() {
				u = op.Unitary.Mul(u)
			}
			a0, a1 := u[0][0], u[1][0]
			want := real(a0*complexConj(a0)) - real(a1*complexConj(a1))

			exps, err := StateVectorEvaluator{}.Evaluate(bound)
			So(err, ShouldBeNil)
			So(exps, ShouldHaveLength, 1)
			So(exps[0], ShouldAlmostEqual, want, 1e-12)
		})
	})

	Convey("Given a bound multi-qubit circuit", t, func() {
		spec, _ := NewCircuitSpec(4)
		bound, _ := spec.Bind(DeriveAngles([]byte{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15}, spec.NumParams()))
		s := Simulate(bound)

		Convey("The state stays normalised and expectations stay in range", func() {
			So(s.Norm(), ShouldAlmostEqual, 1.0, 1e-12)
			for q, e := range s.ExpectationsZ() {
				So(e, ShouldBeBetweenOrEqual, -1.0, 1.0)
				So(e, ShouldAlmostEqual, s.ExpectationZ(q), 1e-12)
				So(s.Bloch(q).Z, ShouldAlmostEqual, e, 1e-12)
				So(s.Bloch(q).Length(), ShouldBeLessThanOrEqualTo, 1.0+1e-12)
			}
		})
	})
}

func TestUnitary2(t *testing.T) {
	Convey("Given rotation matrices", t, func() {
		Convey("A rotation followed by its inverse is the identity", func() {
			for _, kind := range []GateKind{GateRX, GateRY, GateRZ} {
				u := Rotation(kind, 0.7).Mul(Rotation(kind, -0.7))
				So(u.IsIdentity(1e-12), ShouldBeTrue)
			}
		})

		Convey("A full turn is the identity up to global phase", func() {
			So(RZ(2*math.Pi).IsIdentity(1e-12), ShouldBeTrue)
			So(RX(2*math.Pi).IsIdentity(1e-12), ShouldBeTrue)
		})

		Convey("A non-trivial rotation is not the identity", func() {
			So(RX(math.Pi/8).IsIdentity(1e-9), ShouldBeFalse)
			So(RZ(math.Pi/8).IsIdentity(1e-9), ShouldBeFalse)
		})
	})
}

func complexConj(c complex128) complex128 {
	return complex(real(c), -imag(c))
}

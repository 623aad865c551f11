package main

import (
	"math"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"qcircuit/v2/qhash"
)

func TestBlochSummary(t *testing.T) {
	Convey("Given a product state", t, func() {
		s := qhash.NewStateVector(2)
		out := blochSummary(0, s)

		So(out, ShouldStartWith, "ITERATION 0 norm=1.000000\n")
		So(out, ShouldContainSubstring, "q0  <Z>=+1.000000 |r|=1.000000")
		So(out, ShouldContainSubstring, "q1  <Z>=+1.000000 |r|=1.000000")
	})

	Convey("Given a Bell pair", t, func() {
		s := qhash.NewStateVector(2)
		s.Apply1Q(0, qhash.RY(math.Pi/2))
		s.ApplyCX(0, 1)
		out := blochSummary(3, s)

		So(out, ShouldStartWith, "ITERATION 3 norm=1.000000\n")
		So(out, ShouldContainSubstring, "|r|=0.000000")
	})

	Convey("Cloned trace states survive further gates on the original", t, func() {
		s := qhash.NewStateVector(1)
		kept := s.Clone()
		s.Apply1Q(0, qhash.RX(math.Pi))
		So(kept.ExpectationZ(0), ShouldAlmostEqual, 1.0, 1e-12)
		So(s.ExpectationZ(0), ShouldAlmostEqual, -1.0, 1e-12)
	})
}

package qhash

import (
	"math"
	"math/cmplx"
)

// Unitary2 is a single-qubit gate matrix in the {|0⟩, |1⟩} basis.
type Unitary2 [2][2]complex128

// Identity2 is the single-qubit identity.
var Identity2 = Unitary2{{1, 0}, {0, 1}}

// RX returns exp(-iθX/2).
func RX(theta float64) Unitary2 {
	c := complex(math.Cos(theta/2), 0)
	js := complex(0, -math.Sin(theta/2))
	return Unitary2{{c, js}, {js, c}}
}

// RY returns exp(-iθY/2).
func RY(theta float64) Unitary2 {
	c := complex(math.Cos(theta/2), 0)
	s := complex(math.Sin(theta/2), 0)
	return Unitary2{{c, -s}, {s, c}}
}

// RZ returns exp(-iθZ/2).
func RZ(theta float64) Unitary2 {
	phase := cmplx.Exp(complex(0, theta/2))
	return Unitary2{{cmplx.Conj(phase), 0}, {0, phase}}
}

// Rotation returns the matrix for a parametrized rotation gate.
func Rotation(kind GateKind, theta float64) Unitary2 {
	switch kind {
	case GateRX:
		return RX(theta)
	case GateRY:
		return RY(theta)
	case GateRZ:
		return RZ(theta)
	}
	return Identity2
}

// Mul returns u·v (v applied first).
func (u Unitary2) Mul(v Unitary2) Unitary2 {
	var out Unitary2
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			out[i][j] = u[i][0]*v[0][j] + u[i][1]*v[1][j]
		}
	}
	return out
}

// IsIdentity reports whether u equals the identity up to a global phase.
func (u Unitary2) IsIdentity(tol float64) bool {
	if cmplx.Abs(u[0][1]) > tol || cmplx.Abs(u[1][0]) > tol {
		return false
	}
	if math.Abs(cmplx.Abs(u[0][0])-1) > tol {
		return false
	}
	return cmplx.Abs(u[0][0]-u[1][1]) <= tol
}

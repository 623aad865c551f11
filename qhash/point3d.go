// =======================
// qhash/point3d.go
// =======================

package qhash

import (
	"math"
	"math/cmplx"
)

// Point3D holds a 3D coordinate. Bloch vectors use X=⟨X⟩, Y=⟨Y⟩, Z=⟨Z⟩.
type Point3D struct{ X, Y, Z float64 }

// Rotate rotates around X, Y, Z axes in that order.
func (p Point3D) Rotate(ax, ay, az float64) Point3D {
	cosX, sinX := math.Cos(ax), math.Sin(ax)
	cosY, sinY := math.Cos(ay), math.Sin(ay)
	cosZ, sinZ := math.Cos(az), math.Sin(az)

	y1 := p.Y*cosX - p.Z*sinX
	z1 := p.Y*sinX + p.Z*cosX
	p.Y, p.Z = y1, z1

	x1 := p.X*cosY + p.Z*sinY
	z2 := -p.X*sinY + p.Z*cosY
	p.X, p.Z = x1, z2

	x2 := p.X*cosZ - p.Y*sinZ
	y2 := p.X*sinZ + p.Y*cosZ
	p.X, p.Y = x2, y2

	return p
}

// Length returns the Euclidean norm. A Bloch vector of an entangled qubit is
// shorter than 1.
func (p Point3D) Length() float64 {
	return math.Sqrt(p.X*p.X + p.Y*p.Y + p.Z*p.Z)
}

// Bloch returns the Bloch vector of qubit q's reduced state.
func (s *StateVector) Bloch(q int) Point3D {
	bit := 1 << q
	var coh complex128
	var p0, p1 float64
	for i, a := range s.Amplitudes {
		if i&bit != 0 {
			p1 += real(a * cmplx.Conj(a))
			continue
		}
		p0 += real(a * cmplx.Conj(a))
		coh += cmplx.Conj(a) * s.Amplitudes[i|bit]
	}
	return Point3D{X: 2 * real(coh), Y: 2 * imag(coh), Z: p0 - p1}
}

// BlochVectors returns the Bloch vector of every qubit.
func (s *StateVector) BlochVectors() []Point3D {
	out := make([]Point3D, s.NumQubits)
	for q := range out {
		out[q] = s.Bloch(q)
	}
	return out
}

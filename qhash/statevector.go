package qhash

import (
	"fmt"
	"math/cmplx"
)

// StateVector is a dense pure state over NumQubits qubits. Qubit q corresponds to
// bit q of the basis index.
type StateVector struct {
	Amplitudes []complex128
	NumQubits  int
}

// NewStateVector returns |0…0⟩.
func NewStateVector(numQubits int) *StateVector {
	amps := make([]complex128, 1<<numQubits)
	amps[0] = 1
	return &StateVector{Amplitudes: amps, NumQubits: numQubits}
}

// Clone returns an independent copy.
func (s *StateVector) Clone() *StateVector {
	amps := make([]complex128, len(s.Amplitudes))
	copy(amps, s.Amplitudes)
	return &StateVector{Amplitudes: amps, NumQubits: s.NumQubits}
}

// Apply1Q applies u to qubit q.
func (s *StateVector) Apply1Q(q int, u Unitary2) {
	bit := 1 << q
	for i := range s.Amplitudes {
		if i&bit != 0 {
			continue
		}
		j := i | bit
		a0, a1 := s.Amplitudes[i], s.Amplitudes[j]
		s.Amplitudes[i] = u[0][0]*a0 + u[0][1]*a1
		s.Amplitudes[j] = u[1][0]*a0 + u[1][1]*a1
	}
}

// ApplyCX flips target wherever control is set.
func (s *StateVector) ApplyCX(control, target int) {
	cBit := 1 << control
	tBit := 1 << target
	for i := range s.Amplitudes {
		if i&cBit != 0 && i&tBit == 0 {
			j := i | tBit
			s.Amplitudes[i], s.Amplitudes[j] = s.Amplitudes[j], s.Amplitudes[i]
		}
	}
}

// Apply runs one operation.
func (s *StateVector) Apply(op Operation) {
	if op.Kind == GateCX {
		s.ApplyCX(op.Qubit, op.Target)
		return
	}
	s.Apply1Q(op.Qubit, op.Unitary)
}

// ExpectationZ returns ⟨Z_q⟩ = P(q=0) - P(q=1).
func (s *StateVector) ExpectationZ(q int) float64 {
	bit := 1 << q
	var p0, p1 float64
	for i, a := range s.Amplitudes {
		p := real(a * cmplx.Conj(a))
		if i&bit == 0 {
			p0 += p
		} else {
			p1 += p
		}
	}
	return p0 - p1
}

// ExpectationsZ returns ⟨Z_q⟩ for every qubit in one sweep.
func (s *StateVector) ExpectationsZ() []float64 {
	exps := make([]float64, s.NumQubits)
	for i, a := range s.Amplitudes {
		p := real(a * cmplx.Conj(a))
		for q := 0; q < s.NumQubits; q++ {
			if i&(1<<q) == 0 {
				exps[q] += p
			} else {
				exps[q] -= p
			}
		}
	}
	return exps
}

// Norm returns the squared norm; 1 for a valid state.
func (s *StateVector) Norm() float64 {
	var n float64
	for _, a := range s.Amplitudes {
		n += real(a * cmplx.Conj(a))
	}
	return n
}

// Simulate applies the bound circuit to |0…0⟩.
func Simulate(b *BoundCircuit) *StateVector {
	s := NewStateVector(b.NumQubits())
	for _, op := range b.Operations() {
		s.Apply(op)
	}
	return s
}

// Evaluator produces the per-qubit Pauli-Z expectation values of a bound circuit.
type Evaluator interface {
	Evaluate(b *BoundCircuit) ([]float64, error)
}

// StateVectorEvaluator is the dense simulator backed Evaluator.
type StateVectorEvaluator struct{}

func (StateVectorEvaluator) Evaluate(b *BoundCircuit) ([]float64, error) {
	if b == nil || b.Spec == nil {
		return nil, fmt.Errorf("nil circuit")
	}
	return Simulate(b).ExpectationsZ(), nil
}

// stateEvaluator is implemented by evaluators that can expose the final state.
type stateEvaluator interface {
	EvaluateState(b *BoundCircuit) (*StateVector, error)
}

func (StateVectorEvaluator) EvaluateState(b *BoundCircuit) (*StateVector, error) {
	if b == nil || b.Spec == nil {
		return nil, fmt.Errorf("nil circuit")
	}
	return Simulate(b), nil
}

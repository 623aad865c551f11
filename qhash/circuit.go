// =======================
// qhash/circuit.go
// =======================

package qhash

import "fmt"

// Parameter is a named rotation-angle slot of the circuit template.
type Parameter struct {
	Name  string   `json:"name"`
	Kind  GateKind `json:"kind"`
	Layer int      `json:"layer"`
	Qubit int      `json:"qubit"`
}

// Operation is one gate application. Param is the slot index feeding a rotation,
// or -1 for CX.
type Operation struct {
	Kind    GateKind
	Qubit   int
	Target  int
	Param   int
	Unitary Unitary2
}

// CircuitSpec is the fixed layered template over NumQubits qubits. It carries no
// angle values and can be bound any number of times.
type CircuitSpec struct {
	NumQubits int
	Layers    int
	Params    []Parameter
	Ops       []Operation
}

// NewCircuitSpec builds the template: per layer every RX, then every RY, then every
// RZ, then CX(i, i+1) along the chain. Parameter slots are numbered in that order.
func NewCircuitSpec(numQubits int) (*CircuitSpec, error) {
	if numQubits <= 0 || numQubits > MaxQubits {
		return nil, fmt.Errorf("qubit count %d out of range [1, %d]: %w", numQubits, MaxQubits, ErrInvalidInput)
	}

	spec := &CircuitSpec{
		NumQubits: numQubits,
		Layers:    NumLayers,
		Params:    make([]Parameter, 0, 3*NumLayers*numQubits),
		Ops:       make([]Operation, 0, NumLayers*(4*numQubits-1)),
	}

	for l := 0; l < NumLayers; l++ {
		for _, kind := range []GateKind{GateRX, GateRY, GateRZ} {
			for q := 0; q < numQubits; q++ {
				spec.Ops = append(spec.Ops, Operation{
					Kind:   kind,
					Qubit:  q,
					Target: q,
					Param:  len(spec.Params),
				})
				spec.Params = append(spec.Params, Parameter{
					Name:  fmt.Sprintf("theta_%s_%d_%d", kind, l, q),
					Kind:  kind,
					Layer: l,
					Qubit: q,
				})
			}
		}
		for q := 0; q < numQubits-1; q++ {
			spec.Ops = append(spec.Ops, Operation{
				Kind:   GateCX,
				Qubit:  q,
				Target: q + 1,
				Param:  -1,
			})
		}
	}

	return spec, nil
}

// NumParams returns the number of parameter slots (3 * layers * qubits).
func (c *CircuitSpec) NumParams() int {
	return len(c.Params)
}

// BoundCircuit is a CircuitSpec with every slot assigned an angle.
type BoundCircuit struct {
	Spec   *CircuitSpec
	Angles []float64
}

// Bind assigns angles to the template in slot order.
func (c *CircuitSpec) Bind(angles []float64) (*BoundCircuit, error) {
	if len(angles) != len(c.Params) {
		return nil, fmt.Errorf("expected %d angles, got %d", len(c.Params), len(angles))
	}
	a := make([]float64, len(angles))
	copy(a, angles)
	return &BoundCircuit{Spec: c, Angles: a}, nil
}

// NumQubits returns the register width.
func (b *BoundCircuit) NumQubits() int {
	return b.Spec.NumQubits
}

// Operations returns the gate sequence with rotation matrices filled in.
func (b *BoundCircuit) Operations() []Operation {
	ops := make([]Operation, len(b.Spec.Ops))
	for i, op := range b.Spec.Ops {
		if op.Param >= 0 {
			op.Unitary = Rotation(op.Kind, b.Angles[op.Param])
		}
		ops[i] = op
	}
	return ops
}

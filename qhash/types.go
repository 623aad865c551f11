// =======================
// qhash/types.go
// =======================

package qhash

import (
	"math"
	"time"

	"github.com/pkg/errors"
)

const (
	// FractionBits is the number of fractional bits used when converting
	// expectation values to fixed point.
	FractionBits = 15
	// NumLayers is the number of rotation+entangler layers in the circuit.
	NumLayers = 4
	// AngleStep maps one nibble unit to a rotation angle.
	AngleStep = math.Pi / 8

	// MaxQubits bounds the dense state vector (2^MaxQubits amplitudes).
	MaxQubits = 24

	Algorithm = "QHASH-CIRCUIT"
	Version   = "1.0"
)

// ErrInvalidInput is returned for inputs the engine cannot hash.
var ErrInvalidInput = errors.New("invalid input")

// GateKind identifies a gate in the circuit template.
type GateKind int

const (
	GateRX GateKind = iota
	GateRY
	GateRZ
	GateCX
	GateU3
)

func (g GateKind) String() string {
	switch g {
	case GateRX:
		return "rx"
	case GateRY:
		return "ry"
	case GateRZ:
		return "rz"
	case GateCX:
		return "cx"
	case GateU3:
		return "u3"
	}
	return "unknown"
}

// CircuitInfo holds complexity metrics of a decomposed circuit.
type CircuitInfo struct {
	Qubits    int            `json:"qubits"`
	Depth     int            `json:"depth"`
	GateCount map[string]int `json:"gate_count"`
}

// Checkpoint fingerprints the bytes emitted by one iteration.
type Checkpoint struct {
	Iteration int    `json:"iteration"`
	Emitted   int    `json:"emitted"`
	Hash      string `json:"hash"`
}

// HashResult is the detailed output of one hash invocation.
type HashResult struct {
	Hash        []byte        `json:"hash"`
	InputSize   int           `json:"input_size"`
	Qubits      int           `json:"qubits"`
	Iterations  int           `json:"iterations"`
	Checkpoints []Checkpoint  `json:"checkpoints"`
	Info        *CircuitInfo  `json:"circuit_info,omitempty"`
	ComputeTime time.Duration `json:"compute_time_ns"`
	Algorithm   string        `json:"algorithm"`
	Version     string        `json:"version"`
}

// IterationTrace describes one pass of the hashing loop.
type IterationTrace struct {
	Iteration    int
	Angles       []float64
	Expectations []float64
	Emitted      []byte
	State        *StateVector
}

// TraceFunc observes hashing iterations. It must not retain State after returning
// unless it copies it.
type TraceFunc func(IterationTrace)

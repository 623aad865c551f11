// =======================
// qhash/hasher.go
// =======================

package qhash

import (
	"bytes"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"math/bits"
	"time"
)

// CircuitHasher maps a 2^N byte input to 2^N bytes by iterating a parametrized
// N-qubit circuit. It holds no per-call state and is safe for concurrent use as
// long as its Evaluator and TraceFunc are.
type CircuitHasher struct {
	evaluator Evaluator
	trace     TraceFunc
}

// Option configures a CircuitHasher.
type Option func(*CircuitHasher)

// WithEvaluator replaces the default state-vector simulator.
func WithEvaluator(e Evaluator) Option {
	return func(h *CircuitHasher) { h.evaluator = e }
}

// WithTrace installs an observer called once per iteration.
func WithTrace(fn TraceFunc) Option {
	return func(h *CircuitHasher) { h.trace = fn }
}

func New(opts ...Option) *CircuitHasher {
	h := &CircuitHasher{evaluator: StateVectorEvaluator{}}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// QubitCount returns ceil(log2(size)). Sizes that are not powers of two round up,
// so their hash is 2^QubitCount bytes long rather than size bytes.
func QubitCount(size int) (int, error) {
	if size <= 0 {
		return 0, fmt.Errorf("empty data not allowed: %w", ErrInvalidInput)
	}
	n := bits.Len(uint(size - 1))
	if n > MaxQubits {
		return 0, fmt.Errorf("input of %d bytes needs %d qubits, max %d: %w", size, n, MaxQubits, ErrInvalidInput)
	}
	return n, nil
}

// IsPowerOfTwo reports whether size is an exact power of two.
func IsPowerOfTwo(size int) bool {
	return size > 0 && size&(size-1) == 0
}

type runResult struct {
	hash        []byte
	qubits      int
	iterations  int
	checkpoints []Checkpoint
	last        *BoundCircuit
}

func (h *CircuitHasher) compute(data []byte, checkpoints bool) (*runResult, error) {
	n, err := QubitCount(len(data))
	if err != nil {
		return nil, err
	}
	total := 1 << n

	// A single-byte input would give a zero-qubit circuit that never emits; it
	// runs on one qubit instead and is truncated to one byte.
	width := max(n, 1)
	spec, err := NewCircuitSpec(width)
	if err != nil {
		return nil, err
	}

	buf := make([]byte, len(data))
	copy(buf, data)
	out := make([]byte, 0, total+width)
	res := &runResult{qubits: width}

	for len(out) < total {
		bound, err := spec.Bind(DeriveAngles(buf, spec.NumParams()))
		if err != nil {
			return nil, fmt.Errorf("parameter binding failed: %w", err)
		}

		exps, state, err := h.evaluate(bound)
		if err != nil {
			return nil, fmt.Errorf("iteration %d evaluation failed: %w", res.iterations, err)
		}
		if len(exps) != width {
			return nil, fmt.Errorf("evaluator returned %d expectation values for %d qubits", len(exps), width)
		}

		emitted := discretize(exps)
		if h.trace != nil {
			h.trace(IterationTrace{
				Iteration:    res.iterations,
				Angles:       bound.Angles,
				Expectations: exps,
				Emitted:      emitted,
				State:        state,
			})
		}
		if checkpoints {
			res.checkpoints = append(res.checkpoints, makeCheckpoint(res.iterations, emitted))
		}

		out = append(out, emitted...)
		buf = emitted
		res.last = bound
		res.iterations++
	}

	res.hash = out[:total]
	return res, nil
}

func (h *CircuitHasher) evaluate(b *BoundCircuit) ([]float64, *StateVector, error) {
	if se, ok := h.evaluator.(stateEvaluator); ok && h.trace != nil {
		state, err := se.EvaluateState(b)
		if err != nil {
			return nil, nil, err
		}
		return state.ExpectationsZ(), state, nil
	}
	exps, err := h.evaluator.Evaluate(b)
	return exps, nil, err
}

// Hash returns the circuit hash of data.
func (h *CircuitHasher) Hash(data []byte) ([]byte, error) {
	res, err := h.compute(data, false)
	if err != nil {
		return nil, err
	}
	return res.hash, nil
}

// HashWithInfo also returns the complexity metrics of the final iteration's bound
// circuit.
func (h *CircuitHasher) HashWithInfo(data []byte) ([]byte, *CircuitInfo, error) {
	res, err := h.compute(data, false)
	if err != nil {
		return nil, nil, err
	}
	return res.hash, res.last.Info(), nil
}

// HashDetailed returns the hash together with per-iteration checkpoints and
// circuit metrics.
func (h *CircuitHasher) HashDetailed(data []byte) (*HashResult, error) {
	start := time.Now()
	res, err := h.compute(data, true)
	if err != nil {
		return nil, err
	}
	return &HashResult{
		Hash:        res.hash,
		InputSize:   len(data),
		Qubits:      res.qubits,
		Iterations:  res.iterations,
		Checkpoints: res.checkpoints,
		Info:        res.last.Info(),
		ComputeTime: time.Since(start),
		Algorithm:   Algorithm,
		Version:     Version,
	}, nil
}

// FinalCircuit returns the bound circuit of the last iteration for data.
func (h *CircuitHasher) FinalCircuit(data []byte) (*BoundCircuit, error) {
	res, err := h.compute(data, false)
	if err != nil {
		return nil, err
	}
	return res.last, nil
}

// Verify recomputes the hash of data and compares it and its checkpoints with
// stored.
func (h *CircuitHasher) Verify(data []byte, stored *HashResult) (bool, error) {
	if stored == nil {
		return false, fmt.Errorf("invalid stored hash")
	}
	if stored.InputSize != 0 && stored.InputSize != len(data) {
		return false, fmt.Errorf("input size mismatch: expected %d, got %d", stored.InputSize, len(data))
	}

	res, err := h.compute(data, true)
	if err != nil {
		return false, fmt.Errorf("recomputation failed: %w", err)
	}
	if !bytes.Equal(res.hash, stored.Hash) {
		return false, nil
	}
	if len(stored.Checkpoints) == 0 {
		return true, nil
	}
	if len(res.checkpoints) != len(stored.Checkpoints) {
		return false, nil
	}
	for i, cp := range res.checkpoints {
		if cp != stored.Checkpoints[i] {
			return false, nil
		}
	}
	return true, nil
}

func makeCheckpoint(iteration int, emitted []byte) Checkpoint {
	sum := sha256.Sum256(emitted)
	return Checkpoint{
		Iteration: iteration,
		Emitted:   len(emitted),
		Hash:      base64.StdEncoding.EncodeToString(sum[:]),
	}
}

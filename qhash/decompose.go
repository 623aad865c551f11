package qhash

const identityTolerance = 1e-9

// Decompose rewrites the bound circuit into the {u3, cx} basis. Consecutive
// single-qubit rotations on a wire fuse into one u3; runs equal to the identity
// (up to global phase) are dropped.
func Decompose(b *BoundCircuit) []Operation {
	n := b.NumQubits()
	pending := make([]Unitary2, n)
	active := make([]bool, n)
	for q := range pending {
		pending[q] = Identity2
	}

	var out []Operation
	flush := func(q int) {
		if active[q] && !pending[q].IsIdentity(identityTolerance) {
			out = append(out, Operation{Kind: GateU3, Qubit: q, Target: q, Param: -1, Unitary: pending[q]})
		}
		pending[q] = Identity2
		active[q] = false
	}

	for _, op := range b.Operations() {
		if op.Kind == GateCX {
			flush(op.Qubit)
			flush(op.Target)
			out = append(out, op)
			continue
		}
		pending[op.Qubit] = op.Unitary.Mul(pending[op.Qubit])
		active[op.Qubit] = true
	}
	for q := 0; q < n; q++ {
		flush(q)
	}
	return out
}

// Depth returns the as-soon-as-possible layer count of ops over numQubits wires.
func Depth(ops []Operation, numQubits int) int {
	level := make([]int, numQubits)
	depth := 0
	for _, op := range ops {
		var l int
		if op.Kind == GateCX {
			l = max(level[op.Qubit], level[op.Target]) + 1
			level[op.Qubit], level[op.Target] = l, l
		} else {
			l = level[op.Qubit] + 1
			level[op.Qubit] = l
		}
		depth = max(depth, l)
	}
	return depth
}

// Info returns the complexity metrics of the decomposed circuit.
func (b *BoundCircuit) Info() *CircuitInfo {
	ops := Decompose(b)
	counts := make(map[string]int)
	for _, op := range ops {
		counts[op.Kind.String()]++
	}
	return &CircuitInfo{
		Qubits:    b.NumQubits(),
		Depth:     Depth(ops, b.NumQubits()),
		GateCount: counts,
	}
}

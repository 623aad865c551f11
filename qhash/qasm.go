package qhash

import (
	"fmt"
	"strconv"
	"strings"
)

// QASM renders the bound circuit as OpenQASM 2.0.
func (b *BoundCircuit) QASM() string {
	var sb strings.Builder
	sb.WriteString("OPENQASM 2.0;\n")
	sb.WriteString("include \"qelib1.inc\";\n\n")
	fmt.Fprintf(&sb, "qreg q[%d];\n\n", b.NumQubits())

	for _, op := range b.Spec.Ops {
		if op.Kind == GateCX {
			fmt.Fprintf(&sb, "cx q[%d],q[%d];\n", op.Qubit, op.Target)
			continue
		}
		angle := strconv.FormatFloat(b.Angles[op.Param], 'g', 17, 64)
		fmt.Fprintf(&sb, "%s(%s) q[%d];\n", op.Kind, angle, op.Qubit)
	}
	return sb.String()
}

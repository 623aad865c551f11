// =======================
// qhash/params.go
// =======================

package qhash

// DeriveNibble returns the 4-bit value feeding parameter slot i. Slot i reads byte
// i/2 (or the last byte once past the end): high nibble for even slots, low nibble
// for odd ones.
func DeriveNibble(buf []byte, slot int) byte {
	idx := slot / 2
	if idx >= len(buf) {
		idx = len(buf) - 1
	}
	return (buf[idx] >> (4 * (1 - uint(slot%2)))) & 0x0F
}

// DeriveAngles creates the deterministic parameter assignment for count slots
// from the working buffer. buf must not be empty.
func DeriveAngles(buf []byte, count int) []float64 {
	angles := make([]float64, count)
	for i := range angles {
		angles[i] = float64(DeriveNibble(buf, i)) * AngleStep
	}
	return angles
}

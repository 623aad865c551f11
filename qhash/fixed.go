package qhash

// ToFixed converts x to a signed fixed-point integer with fractionBits fractional
// bits, rounding half away from zero.
func ToFixed(x float64, fractionBits int) int64 {
	mult := float64(int64(1) << uint(fractionBits))
	if x >= 0 {
		return int64(x*mult + 0.5)
	}
	return int64(x*mult - 0.5)
}

// fixedBytes returns the FractionBits/8 low-order bytes of fixed, least significant
// first. With FractionBits = 15 only bits 0-7 survive.
func fixedBytes(fixed int64) []byte {
	n := FractionBits / 8
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		out[i] = byte((fixed >> (8 * uint(i))) & 0xFF)
	}
	return out
}

// discretize converts an expectation vector into the bytes emitted by one
// iteration.
func discretize(exps []float64) []byte {
	out := make([]byte, 0, len(exps)*(FractionBits/8))
	for _, e := range exps {
		out = append(out, fixedBytes(ToFixed(e, FractionBits))...)
	}
	return out
}

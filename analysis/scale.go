package analysis

import "math"

// ScaledSize is the fixed hash input size produced by ScaleTo256.
const ScaledSize = 256

// ScaleTo256 maps data of any length to 256 bytes: bytes become floats in [-1, 1],
// an orthonormal DCT-II is taken, the first 256 coefficients (zero padded) are
// shifted to a zero minimum, normalised to a unit maximum and quantised to 8 bits.
// Empty input yields 256 zero bytes.
func ScaleTo256(data []byte) []byte {
	out := make([]byte, ScaledSize)
	if len(data) == 0 {
		return out
	}

	x := make([]float32, len(data))
	for i, b := range data {
		x[i] = float32(b)/127.5 - 1.0
	}

	coeffs := make([]float32, ScaledSize)
	n := len(x)
	for k := 0; k < min(n, ScaledSize); k++ {
		var acc float64
		for i, v := range x {
			acc += float64(v) * math.Cos(math.Pi*float64(k)*float64(2*i+1)/float64(2*n))
		}
		scale := math.Sqrt(2 / float64(n))
		if k == 0 {
			scale = math.Sqrt(1 / float64(n))
		}
		coeffs[k] = float32(acc * scale)
	}

	lo := coeffs[0]
	for _, c := range coeffs[1:] {
		lo = min(lo, c)
	}
	var hi float32
	for i := range coeffs {
		coeffs[i] -= lo
		hi = max(hi, coeffs[i])
	}
	if hi > 0 {
		for i := range coeffs {
			coeffs[i] /= hi
		}
	}
	for i, c := range coeffs {
		out[i] = byte(c * 255)
	}
	return out
}

// ScaledHash wraps hash so it accepts any input length and always hashes the
// 256-byte scaled form.
func ScaledHash(hash HashFunc) HashFunc {
	return func(data []byte) ([]byte, error) {
		return hash(ScaleTo256(data))
	}
}

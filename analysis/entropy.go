// Package analysis probes a byte hash for determinism, entropy, preimage and
// collision resistance, and measures its cost.
package analysis

import "math"

// ShannonEntropy returns the entropy in bits of the byte distribution of data.
func ShannonEntropy(data []byte) float64 {
	if len(data) == 0 {
		return 0
	}
	var counts [256]int
	for _, b := range data {
		counts[b]++
	}
	total := float64(len(data))
	var h float64
	for _, c := range counts {
		if c == 0 {
			continue
		}
		p := float64(c) / total
		h -= p * math.Log2(p)
	}
	return h
}

// PositionEntropies transposes equally sized outputs and returns the entropy of
// each byte position.
func PositionEntropies(outputs [][]byte) []float64 {
	if len(outputs) == 0 {
		return nil
	}
	width := len(outputs[0])
	for _, o := range outputs[1:] {
		width = min(width, len(o))
	}

	column := make([]byte, len(outputs))
	entropies := make([]float64, width)
	for pos := 0; pos < width; pos++ {
		for i, o := range outputs {
			column[i] = o[pos]
		}
		entropies[pos] = ShannonEntropy(column)
	}
	return entropies
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var s float64
	for _, x := range xs {
		s += x
	}
	return s / float64(len(xs))
}

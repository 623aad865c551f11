// =======================
// qhash/benchmarks.go
// =======================

package qhash

import (
	"fmt"
	"io"
	"math/rand"
	"time"
)

// BenchmarkInfo holds performance metrics for one input size.
type BenchmarkInfo struct {
	Qubits      int           `json:"qubits"`
	DataSize    int           `json:"data_size_bytes"`
	Iterations  int           `json:"iterations"`
	ComputeTime time.Duration `json:"compute_time"`
	Throughput  float64       `json:"throughput_kbps"`
}

// BenchmarkHasher times hashing of random 2^N byte inputs for every N in qubitSizes.
func BenchmarkHasher(h *CircuitHasher, qubitSizes []int, iterations int, rng *rand.Rand) ([]BenchmarkInfo, error) {
	if iterations <= 0 {
		return nil, fmt.Errorf("iterations must be positive, got %d", iterations)
	}
	results := make([]BenchmarkInfo, 0, len(qubitSizes))

	for _, n := range qubitSizes {
		if n < 0 || n > MaxQubits {
			return nil, fmt.Errorf("unsupported qubit count: %d", n)
		}
		data := make([]byte, 1<<n)
		rng.Read(data)

		start := time.Now()
		for i := 0; i < iterations; i++ {
			if _, err := h.Hash(data); err != nil {
				return nil, fmt.Errorf("hashing failed at iteration %d: %w", i, err)
			}
		}
		duration := time.Since(start)

		var throughput float64
		if seconds := duration.Seconds(); seconds > 0 {
			throughput = float64(len(data)*iterations) / 1024 / seconds
		}

		results = append(results, BenchmarkInfo{
			Qubits:      n,
			DataSize:    len(data),
			Iterations:  iterations,
			ComputeTime: duration / time.Duration(iterations),
			Throughput:  throughput,
		})
	}

	return results, nil
}

// PrintBenchmarkResults displays benchmark results in a formatted table
func PrintBenchmarkResults(w io.Writer, results []BenchmarkInfo) {
	fmt.Fprintln(w, "QHASH Computational Difficulty")
	fmt.Fprintln(w, "==============================")
	fmt.Fprintf(w, "%-6s | %-10s | %-14s | %-12s\n", "N", "Size", "Time/Hash", "KB/s")
	fmt.Fprintln(w, "-------|------------|----------------|-------------")

	for _, r := range results {
		fmt.Fprintf(w, "%-6d | %-10d | %-14s | %-12.2f\n",
			r.Qubits,
			r.DataSize,
			r.ComputeTime.String(),
			r.Throughput)
	}
}

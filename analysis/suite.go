package analysis

import (
	"bytes"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/theapemachine/errnie"

	"qcircuit/v2/qhash"
)

// HashFunc is any byte hash under test.
type HashFunc func([]byte) ([]byte, error)

// InfoHashFunc is a hash that also reports circuit metrics.
type InfoHashFunc func([]byte) ([]byte, *qhash.CircuitInfo, error)

// TestResult is the outcome of one statistical test.
type TestResult struct {
	Name     string        `json:"name"`
	Passed   bool          `json:"passed"`
	Detail   string        `json:"detail"`
	Duration time.Duration `json:"duration"`
}

// EntropyResult holds per-position output entropy.
type EntropyResult struct {
	Samples     int       `json:"samples"`
	PerPosition []float64 `json:"per_position"`
	Average     float64   `json:"average"`
}

// Timing is the wall time of a single hash for one input size.
type Timing struct {
	Qubits  int           `json:"qubits"`
	Size    int           `json:"size"`
	Elapsed time.Duration `json:"elapsed"`
}

// ComplexityPoint pairs a qubit count with the final circuit's metrics.
type ComplexityPoint struct {
	Qubits  int                `json:"n"`
	Info    *qhash.CircuitInfo `json:"info"`
	Elapsed time.Duration      `json:"elapsed"`
}

// Options sizes a full run.
type Options struct {
	Qubits           int     `json:"qubits"`
	DeterminismRuns  int     `json:"determinism_runs"`
	EntropySamples   int     `json:"entropy_samples"`
	PreimageTrials   int     `json:"preimage_trials"`
	CollisionSamples int     `json:"collision_samples"`
	MinEntropy       float64 `json:"min_entropy"`
}

// DefaultOptions mirrors the reference analysis run (N = 7).
func DefaultOptions() Options {
	return Options{
		Qubits:           7,
		DeterminismRuns:  3,
		EntropySamples:   100,
		PreimageTrials:   1000,
		CollisionSamples: 500,
		MinEntropy:       5.5,
	}
}

// Validate checks that every count is usable.
func (o Options) Validate() error {
	switch {
	case o.Qubits < 0 || o.Qubits > qhash.MaxQubits:
		return errors.Errorf("qubits must be in [0, %d], got %d", qhash.MaxQubits, o.Qubits)
	case o.DeterminismRuns < 2:
		return errors.Errorf("determinism runs must be at least 2, got %d", o.DeterminismRuns)
	case o.EntropySamples < 2:
		return errors.Errorf("entropy samples must be at least 2, got %d", o.EntropySamples)
	case o.PreimageTrials < 1:
		return errors.Errorf("preimage trials must be positive, got %d", o.PreimageTrials)
	case o.CollisionSamples < 2:
		return errors.Errorf("collision samples must be at least 2, got %d", o.CollisionSamples)
	}
	return nil
}

// Suite runs the statistical tests against one hash. Random inputs come from a
// seeded source so runs are reproducible.
type Suite struct {
	Name string
	Hash HashFunc
	Rand *rand.Rand
	Out  io.Writer
}

func NewSuite(name string, hash HashFunc, seed int64, out io.Writer) *Suite {
	if out == nil {
		out = io.Discard
	}
	return &Suite{
		Name: name,
		Hash: hash,
		Rand: rand.New(rand.NewSource(seed)),
		Out:  out,
	}
}

var (
	passLabel = color.New(color.FgGreen, color.Bold).SprintFunc()
	failLabel = color.New(color.FgRed, color.Bold).SprintFunc()
)

func (s *Suite) header(name string) {
	fmt.Fprintf(s.Out, "[Test] %s\n", name)
}

func (s *Suite) verdict(ok bool, detail string) {
	label := passLabel("PASS")
	if !ok {
		label = failLabel("FAIL")
	}
	if detail == "" {
		fmt.Fprintf(s.Out, "  Result: %s\n", label)
		return
	}
	fmt.Fprintf(s.Out, "  Result: %s - %s\n", label, detail)
}

func (s *Suite) randomInput(size int) []byte {
	buf := make([]byte, size)
	s.Rand.Read(buf)
	return buf
}

// Determinism hashes input runs times and checks that all results agree.
func (s *Suite) Determinism(input []byte, runs int) (TestResult, error) {
	s.header("Determinism")
	start := time.Now()

	var first []byte
	ok := true
	for i := 0; i < runs; i++ {
		h, err := s.Hash(input)
		if err != nil {
			return TestResult{}, errors.Wrapf(err, "determinism run %d", i)
		}
		if i == 0 {
			first = h
		} else if !bytes.Equal(h, first) {
			ok = false
		}
	}

	detail := fmt.Sprintf("%d runs", runs)
	s.verdict(ok, "")
	return TestResult{Name: "determinism", Passed: ok, Detail: detail, Duration: time.Since(start)}, nil
}

// EntropyPreservation hashes samples random inputs and measures the entropy of
// every output byte position.
func (s *Suite) EntropyPreservation(size, samples int) (*EntropyResult, error) {
	s.header("Entropy Preservation")

	outputs := make([][]byte, 0, samples)
	for i := 0; i < samples; i++ {
		h, err := s.Hash(s.randomInput(size))
		if err != nil {
			return nil, errors.Wrapf(err, "entropy sample %d", i)
		}
		outputs = append(outputs, h)
	}

	per := PositionEntropies(outputs)
	res := &EntropyResult{Samples: samples, PerPosition: per, Average: mean(per)}
	fmt.Fprintf(s.Out, "  Avg entropy per byte: %.2f / 8\n", res.Average)
	return res, nil
}

// PreimageResistance hashes a random target and tries trials random guesses of
// the same size to reproduce it.
func (s *Suite) PreimageResistance(size, trials int) (TestResult, error) {
	s.header("Preimage Resistance")
	start := time.Now()

	target, err := s.Hash(s.randomInput(size))
	if err != nil {
		return TestResult{}, errors.Wrap(err, "preimage target")
	}
	for i := 0; i < trials; i++ {
		h, err := s.Hash(s.randomInput(size))
		if err != nil {
			return TestResult{}, errors.Wrapf(err, "preimage guess %d", i)
		}
		if bytes.Equal(h, target) {
			detail := fmt.Sprintf("found preimage after %d guesses", i+1)
			s.verdict(false, detail)
			return TestResult{Name: "preimage", Detail: detail, Duration: time.Since(start)}, nil
		}
	}

	detail := fmt.Sprintf("no preimage in %d guesses", trials)
	s.verdict(true, detail)
	return TestResult{Name: "preimage", Passed: true, Detail: detail, Duration: time.Since(start)}, nil
}

// CollisionResistance hashes samples random inputs and fails on the first
// repeated output.
func (s *Suite) CollisionResistance(size, samples int) (TestResult, error) {
	s.header("Collision Resistance")
	start := time.Now()

	seen := make(map[string]struct{}, samples)
	for i := 0; i < samples; i++ {
		h, err := s.Hash(s.randomInput(size))
		if err != nil {
			return TestResult{}, errors.Wrapf(err, "collision sample %d", i)
		}
		if _, dup := seen[string(h)]; dup {
			detail := fmt.Sprintf("collision detected at sample %d", i)
			s.verdict(false, detail)
			return TestResult{Name: "collision", Detail: detail, Duration: time.Since(start)}, nil
		}
		seen[string(h)] = struct{}{}
	}

	detail := fmt.Sprintf("no collisions in %d samples", samples)
	s.verdict(true, detail)
	return TestResult{Name: "collision", Passed: true, Detail: detail, Duration: time.Since(start)}, nil
}

// IOSize checks that the hash is as long as its input.
func (s *Suite) IOSize(input, hash []byte) TestResult {
	s.header("Output Size Matches Input")
	ok := len(input) == len(hash)
	detail := fmt.Sprintf("input %d bytes, output %d bytes", len(input), len(hash))
	s.verdict(ok, detail)
	return TestResult{Name: "io_size", Passed: ok, Detail: detail}
}

// ComputationalDifficulty times one hash of a random 2^N byte input per size.
func (s *Suite) ComputationalDifficulty(qubitSizes []int) ([]Timing, error) {
	fmt.Fprintln(s.Out, "[Computational Difficulty]")
	timings := make([]Timing, 0, len(qubitSizes))
	for _, n := range qubitSizes {
		input := s.randomInput(1 << n)
		start := time.Now()
		if _, err := s.Hash(input); err != nil {
			return nil, errors.Wrapf(err, "difficulty N=%d", n)
		}
		elapsed := time.Since(start)
		fmt.Fprintf(s.Out, "  N=%d, size=%d bytes -> Time: %.4fs\n", n, len(input), elapsed.Seconds())
		timings = append(timings, Timing{Qubits: n, Size: len(input), Elapsed: elapsed})
	}
	return timings, nil
}

// CircuitComplexity hashes the sequence input (i mod 256) of size 2^n for n in
// [from, to) and collects the final circuit metrics.
func CircuitComplexity(hash InfoHashFunc, from, to int, out io.Writer) ([]ComplexityPoint, error) {
	if out == nil {
		out = io.Discard
	}
	if from > to {
		return nil, errors.Errorf("invalid range [%d, %d)", from, to)
	}
	points := make([]ComplexityPoint, 0, to-from)
	for n := from; n < to; n++ {
		fmt.Fprintf(out, "executing for 2^%d...\n", n)
		input := make([]byte, 1<<n)
		for i := range input {
			input[i] = byte(i % 256)
		}
		start := time.Now()
		_, info, err := hash(input)
		if err != nil {
			return nil, errors.Wrapf(err, "complexity N=%d", n)
		}
		points = append(points, ComplexityPoint{Qubits: n, Info: info, Elapsed: time.Since(start)})
	}
	return points, nil
}

// Summary collects the results of RunAll.
type Summary struct {
	Results []TestResult   `json:"results"`
	Entropy *EntropyResult `json:"entropy"`
}

// Passed reports whether every test passed.
func (s *Summary) Passed() bool {
	for _, r := range s.Results {
		if !r.Passed {
			return false
		}
	}
	return true
}

// RunAll runs determinism, entropy, preimage, collision and IO-size tests at
// input size 2^opts.Qubits.
func (s *Suite) RunAll(opts Options) (*Summary, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	size := 1 << opts.Qubits
	errnie.Info("running %s analysis suite at N=%d (%d bytes)", s.Name, opts.Qubits, size)
	fmt.Fprintf(s.Out, "=== %s Analysis Suite ===\n", s.Name)

	input := make([]byte, size)
	for i := range input {
		input[i] = byte(i % 256)
	}

	sum := &Summary{}
	det, err := s.Determinism(input, opts.DeterminismRuns)
	if err != nil {
		return nil, err
	}
	sum.Results = append(sum.Results, det)

	ent, err := s.EntropyPreservation(size, opts.EntropySamples)
	if err != nil {
		return nil, err
	}
	sum.Entropy = ent
	sum.Results = append(sum.Results, TestResult{
		Name:   "entropy",
		Passed: ent.Average >= opts.MinEntropy,
		Detail: fmt.Sprintf("average %.3f bits, threshold %.2f", ent.Average, opts.MinEntropy),
	})

	pre, err := s.PreimageResistance(size, opts.PreimageTrials)
	if err != nil {
		return nil, err
	}
	sum.Results = append(sum.Results, pre)

	col, err := s.CollisionResistance(size, opts.CollisionSamples)
	if err != nil {
		return nil, err
	}
	sum.Results = append(sum.Results, col)

	h, err := s.Hash(input)
	if err != nil {
		return nil, errors.Wrap(err, "io size")
	}
	sum.Results = append(sum.Results, s.IOSize(input, h))

	errnie.Info("%s analysis suite finished, passed=%v", s.Name, sum.Passed())
	return sum, nil
}

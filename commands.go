package main

import (
	"bytes"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/theapemachine/errnie"
	"github.com/urfave/cli"

	"qcircuit/v2/analysis"
	"qcircuit/v2/plot"
	"qcircuit/v2/qhash"
)

var hashFlags = []cli.Flag{
	cli.BoolFlag{
		Name:  "info",
		Usage: "print circuit metrics of the final iteration",
	},
	cli.BoolFlag{
		Name:  "json",
		Usage: "print the detailed result as JSON and base64 JSON",
	},
	cli.BoolFlag{
		Name:  "dump",
		Usage: "dump the detailed result structure",
	},
}

var verifyFlags = []cli.Flag{
	cli.StringFlag{
		Name:  "result",
		Usage: "detailed hash result JSON (base64 or raw)",
	},
	cli.StringFlag{
		Name:  "hash",
		Usage: "hash to verify against (base64)",
	},
}

var analyzeFlags = []cli.Flag{
	cli.IntFlag{
		Name:  "qubits, n",
		Value: analysis.DefaultOptions().Qubits,
		Usage: "input size is 2^qubits bytes",
	},
	cli.IntFlag{
		Name:  "runs",
		Value: analysis.DefaultOptions().DeterminismRuns,
		Usage: "repetitions for the determinism test",
	},
	cli.IntFlag{
		Name:  "samples",
		Value: analysis.DefaultOptions().EntropySamples,
		Usage: "random inputs for the entropy test",
	},
	cli.IntFlag{
		Name:  "preimage-trials",
		Value: analysis.DefaultOptions().PreimageTrials,
		Usage: "random guesses for the preimage test",
	},
	cli.IntFlag{
		Name:  "collision-samples",
		Value: analysis.DefaultOptions().CollisionSamples,
		Usage: "random inputs for the collision test",
	},
	cli.Float64Flag{
		Name:  "min-entropy",
		Value: analysis.DefaultOptions().MinEntropy,
		Usage: "average bits per output position required to pass",
	},
	cli.Int64Flag{
		Name:  "seed",
		Value: 1,
		Usage: "seed of the random input source",
	},
	cli.StringFlag{
		Name:  "baseline",
		Value: "none",
		Usage: "classical control: none, shake256, blake3",
	},
	cli.StringFlag{
		Name:  "report",
		Usage: "write a JSON report; a .sz suffix selects snappy compression",
	},
	cli.BoolFlag{
		Name:  "plot",
		Usage: "show entropy and difficulty charts",
	},
}

var complexityFlags = []cli.Flag{
	cli.IntFlag{
		Name:  "from",
		Value: 2,
		Usage: "smallest N",
	},
	cli.IntFlag{
		Name:  "to",
		Value: 11,
		Usage: "largest N, exclusive",
	},
	cli.BoolFlag{
		Name:  "plot",
		Usage: "show complexity charts",
	},
}

var benchFlags = []cli.Flag{
	cli.StringFlag{
		Name:  "sizes",
		Value: "2,4,6,8",
		Usage: "comma separated qubit counts",
	},
	cli.IntFlag{
		Name:  "iterations",
		Value: 3,
		Usage: "hashes per size",
	},
	cli.Int64Flag{
		Name:  "seed",
		Value: 1,
		Usage: "seed of the random input source",
	},
}

var scaleFlags = []cli.Flag{
	cli.IntFlag{
		Name:  "count",
		Value: 5,
		Usage: "number of random inputs",
	},
	cli.IntFlag{
		Name:  "max-len",
		Value: 1024,
		Usage: "maximum random input length",
	},
	cli.Int64Flag{
		Name:  "seed",
		Value: 1,
		Usage: "seed of the random input source",
	},
}

// loadConfig reads command flags into a Config and applies the -c override.
func loadConfig(c *cli.Context) (Config, error) {
	config := defaultConfig()
	if c.IsSet("qubits") {
		config.Qubits = c.Int("qubits")
	}
	if c.IsSet("runs") {
		config.DeterminismRuns = c.Int("runs")
	}
	if c.IsSet("samples") {
		config.Samples = c.Int("samples")
	}
	if c.IsSet("preimage-trials") {
		config.PreimageTrials = c.Int("preimage-trials")
	}
	if c.IsSet("collision-samples") {
		config.CollisionSamples = c.Int("collision-samples")
	}
	if c.IsSet("min-entropy") {
		config.MinEntropy = c.Float64("min-entropy")
	}
	if c.IsSet("seed") {
		config.Seed = c.Int64("seed")
	}
	if c.IsSet("baseline") {
		config.Baseline = c.String("baseline")
	}
	if c.IsSet("report") {
		config.Report = c.String("report")
	}
	if c.IsSet("plot") {
		config.Plot = c.Bool("plot")
	}
	if c.IsSet("from") {
		config.From = c.Int("from")
	}
	if c.IsSet("to") {
		config.To = c.Int("to")
	}
	if c.IsSet("sizes") {
		config.Sizes = c.String("sizes")
	}
	if c.IsSet("iterations") {
		config.Iterations = c.Int("iterations")
	}
	if c.IsSet("count") {
		config.Count = c.Int("count")
	}
	if c.IsSet("max-len") {
		config.MaxLen = c.Int("max-len")
	}

	if path := c.GlobalString("c"); path != "" {
		if err := parseJSONConfig(&config, path); err != nil {
			return config, errors.Wrapf(err, "parse config %s", path)
		}
	}
	return config, config.validate()
}

// loadInput returns the bytes selected by --file, --hex or --input.
func loadInput(c *cli.Context) ([]byte, error) {
	switch {
	case c.String("file") != "":
		data, err := os.ReadFile(c.String("file"))
		if err != nil {
			return nil, errors.Wrapf(err, "read file %s", c.String("file"))
		}
		errnie.Info("loaded file: %s (%d bytes)", c.String("file"), len(data))
		return data, nil
	case c.String("hex") != "":
		data, err := hex.DecodeString(c.String("hex"))
		if err != nil {
			return nil, errors.Wrap(err, "hex decode")
		}
		return data, nil
	case c.String("input") != "":
		return []byte(c.String("input")), nil
	}
	return nil, errors.New("input, file or hex required")
}

func exitError(err error) error {
	if err == nil {
		return nil
	}
	return cli.NewExitError(err.Error(), 1)
}

func hashAction(c *cli.Context) error {
	data, err := loadInput(c)
	if err != nil {
		return exitError(err)
	}
	if !qhash.IsPowerOfTwo(len(data)) {
		errnie.Info("input length %d is not a power of two, output is rounded up", len(data))
	}

	h := qhash.New()
	res, err := h.HashDetailed(data)
	if err != nil {
		return exitError(errors.Wrap(err, "hashing failed"))
	}

	bits := len(res.Hash) * 8
	fmt.Printf("%s-%d\nHEX: %x\nB64: %s\n",
		res.Algorithm, bits, res.Hash, base64.StdEncoding.EncodeToString(res.Hash),
	)

	if c.Bool("info") && res.Info != nil {
		fmt.Printf("QUBITS: %d\nITERATIONS: %d\nDEPTH: %d\nGATES: u3=%d cx=%d\nTIME: %dms\n",
			res.Qubits, res.Iterations, res.Info.Depth,
			res.Info.GateCount["u3"], res.Info.GateCount["cx"], res.ComputeTime.Milliseconds(),
		)
	}
	if c.Bool("json") {
		j, err := json.MarshalIndent(res, "", "  ")
		if err != nil {
			return exitError(errors.Wrap(err, "JSON encoding failed"))
		}
		fmt.Printf("JSON:\n%s\nB64:\n%s\n", j, base64.StdEncoding.EncodeToString(j))
	}
	if c.Bool("dump") {
		fmt.Print(spew.Sdump(res))
	}
	return nil
}

func verifyAction(c *cli.Context) error {
	data, err := loadInput(c)
	if err != nil {
		return exitError(err)
	}
	h := qhash.New()

	switch {
	case c.String("result") != "":
		ok, err := verifyResult(h, data, c.String("result"))
		if err != nil {
			return exitError(errors.Wrap(err, "verification failed"))
		}
		fmt.Println("Result OK:", ok)
	case c.String("hash") != "":
		ok, err := verifyHash(h, data, c.String("hash"))
		if err != nil {
			return exitError(errors.Wrap(err, "verification failed"))
		}
		fmt.Println("Hash OK:", ok)
	default:
		return exitError(errors.New("result or hash required"))
	}
	return nil
}

func verifyResult(h *qhash.CircuitHasher, data []byte, stored string) (bool, error) {
	raw, err := base64.StdEncoding.DecodeString(stored)
	if err != nil {
		raw = []byte(stored)
	}

	var res qhash.HashResult
	if err := json.Unmarshal(raw, &res); err != nil {
		return false, errors.Wrap(err, "JSON decode error")
	}
	return h.Verify(data, &res)
}

func verifyHash(h *qhash.CircuitHasher, data []byte, hash64 string) (bool, error) {
	expected, err := base64.StdEncoding.DecodeString(hash64)
	if err != nil {
		return false, errors.Wrap(err, "base64 decode error")
	}
	got, err := h.Hash(data)
	if err != nil {
		return false, errors.Wrap(err, "hashing error")
	}
	return bytes.Equal(got, expected), nil
}

func analyzeAction(c *cli.Context) error {
	config, err := loadConfig(c)
	if err != nil {
		return exitError(err)
	}
	opts := config.analysisOptions()
	report := analysis.NewReport(config.Seed, opts)
	errnie.Info("analysis run %s", report.RunID)

	h := qhash.New()
	suite := analysis.NewSuite(qhash.Algorithm, h.Hash, config.Seed, os.Stdout)
	sum, err := suite.RunAll(opts)
	if err != nil {
		return exitError(errors.Wrap(err, "analysis failed"))
	}
	report.Suites[suite.Name] = sum

	var sizes []int
	for n := 2; n <= opts.Qubits; n++ {
		sizes = append(sizes, n)
	}
	if report.Difficulty, err = suite.ComputationalDifficulty(sizes); err != nil {
		return exitError(err)
	}

	baseline, err := analysis.Baseline(config.Baseline)
	if err != nil {
		return exitError(err)
	}
	if baseline != nil {
		fmt.Println()
		control := analysis.NewSuite(config.Baseline, baseline, config.Seed, os.Stdout)
		bsum, err := control.RunAll(opts)
		if err != nil {
			return exitError(errors.Wrapf(err, "%s baseline failed", config.Baseline))
		}
		report.Suites[control.Name] = bsum
	}

	printSummary(report)

	if config.Report != "" {
		if err := report.WriteFile(config.Report); err != nil {
			return exitError(errors.Wrapf(err, "write report %s", config.Report))
		}
		errnie.Info("report written to %s", config.Report)
	}

	if config.Plot {
		views := []plot.View{plot.EntropyChart(sum.Entropy.PerPosition), plot.DifficultyChart(report.Difficulty)}
		if err := plot.Show(views...); err != nil {
			return exitError(errors.Wrap(err, "graphics error"))
		}
	}

	if !sum.Passed() {
		return cli.NewExitError("analysis suite failed", 2)
	}
	return nil
}

func printSummary(report *analysis.Report) {
	pass := color.New(color.FgGreen, color.Bold).SprintFunc()
	fail := color.New(color.FgRed, color.Bold).SprintFunc()

	fmt.Printf("\n=== Summary (%s) ===\n", report.RunID)
	for name, sum := range report.Suites {
		verdict := pass("PASS")
		if !sum.Passed() {
			verdict = fail("FAIL")
		}
		avg := 0.0
		if sum.Entropy != nil {
			avg = sum.Entropy.Average
		}
		fmt.Printf("%-16s %s  avg entropy %.3f bits\n", name, verdict, avg)
	}
}

func complexityAction(c *cli.Context) error {
	config, err := loadConfig(c)
	if err != nil {
		return exitError(err)
	}

	h := qhash.New()
	points, err := analysis.CircuitComplexity(h.HashWithInfo, config.From, config.To, os.Stdout)
	if err != nil {
		return exitError(err)
	}

	fmt.Printf("%-4s %-8s %-8s %-8s %-8s %s\n", "N", "qubits", "depth", "u3", "cx", "time")
	for _, p := range points {
		fmt.Printf("%-4d %-8d %-8d %-8d %-8d %.4fs\n",
			p.Qubits, p.Info.Qubits, p.Info.Depth,
			p.Info.GateCount["u3"], p.Info.GateCount["cx"], p.Elapsed.Seconds(),
		)
	}

	if config.Plot {
		if err := plot.Show(plot.ChartViews(plot.ComplexityCharts(points)...)...); err != nil {
			return exitError(errors.Wrap(err, "graphics error"))
		}
	}
	return nil
}

func benchAction(c *cli.Context) error {
	config, err := loadConfig(c)
	if err != nil {
		return exitError(err)
	}
	sizes, err := parseSizes(config.Sizes)
	if err != nil {
		return exitError(err)
	}

	rng := rand.New(rand.NewSource(config.Seed))
	results, err := qhash.BenchmarkHasher(qhash.New(), sizes, config.Iterations, rng)
	if err != nil {
		return exitError(errors.Wrap(err, "benchmark failed"))
	}
	qhash.PrintBenchmarkResults(os.Stdout, results)
	return nil
}

func scaleAction(c *cli.Context) error {
	config, err := loadConfig(c)
	if err != nil {
		return exitError(err)
	}

	hash := analysis.ScaledHash(qhash.New().Hash)
	rng := rand.New(rand.NewSource(config.Seed))
	for i := 0; i < config.Count; i++ {
		data := make([]byte, 1+rng.Intn(config.MaxLen))
		rng.Read(data)

		start := time.Now()
		out, err := hash(data)
		if err != nil {
			return exitError(errors.Wrapf(err, "scaled hash of %d bytes", len(data)))
		}
		fmt.Printf("len=%-6d time=%.3fs entropy=%.3f\n%x\n",
			len(data), time.Since(start).Seconds(), analysis.ShannonEntropy(out), out)
	}
	return nil
}

func circuitAction(c *cli.Context) error {
	data, err := loadInput(c)
	if err != nil {
		return exitError(err)
	}
	bound, err := qhash.New().FinalCircuit(data)
	if err != nil {
		return exitError(errors.Wrap(err, "circuit construction failed"))
	}
	fmt.Print(bound.QASM())
	return nil
}

func blochAction(c *cli.Context) error {
	data, err := loadInput(c)
	if err != nil {
		return exitError(err)
	}

	var (
		views  []plot.View
		states []*qhash.StateVector
	)
	h := qhash.New(qhash.WithTrace(func(t qhash.IterationTrace) {
		if t.State == nil {
			return
		}
		states = append(states, t.State.Clone())
		title := fmt.Sprintf("Iteration %d: %x", t.Iteration, t.Emitted)
		// newest first
		views = append([]plot.View{plot.NewBlochView(title, t.State.BlochVectors())}, views...)
	}))
	if _, err := h.Hash(data); err != nil {
		return exitError(errors.Wrap(err, "hashing failed"))
	}

	for i, s := range states {
		fmt.Print(blochSummary(i, s))
	}

	if err := plot.Show(views...); err != nil {
		return exitError(errors.Wrap(err, "graphics error"))
	}
	return nil
}

// blochSummary lists the state norm and, per qubit, <Z> and the Bloch vector
// length. Lengths below 1 mark entangled qubits.
func blochSummary(iteration int, s *qhash.StateVector) string {
	var b bytes.Buffer
	fmt.Fprintf(&b, "ITERATION %d norm=%.6f\n", iteration, s.Norm())
	for q := 0; q < s.NumQubits; q++ {
		fmt.Fprintf(&b, "  q%-2d <Z>=%+.6f |r|=%.6f\n", q, s.ExpectationZ(q), s.Bloch(q).Length())
	}
	return b.String()
}

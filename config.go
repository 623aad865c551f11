package main

import (
	"encoding/json"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"qcircuit/v2/analysis"
	"qcircuit/v2/qhash"
)

// Config for the analysis and benchmark commands
type Config struct {
	Qubits           int     `json:"qubits"`
	DeterminismRuns  int     `json:"determinismruns"`
	Samples          int     `json:"samples"`
	PreimageTrials   int     `json:"preimagetrials"`
	CollisionSamples int     `json:"collisionsamples"`
	MinEntropy       float64 `json:"minentropy"`
	Seed             int64   `json:"seed"`
	Baseline         string  `json:"baseline"`
	Report           string  `json:"report"`
	Plot             bool    `json:"plot"`
	From             int     `json:"from"`
	To               int     `json:"to"`
	Sizes            string  `json:"sizes"`
	Iterations       int     `json:"iterations"`
	Count            int     `json:"count"`
	MaxLen           int     `json:"maxlen"`
}

// defaultConfig matches the flag defaults.
func defaultConfig() Config {
	opts := analysis.DefaultOptions()
	return Config{
		Qubits:           opts.Qubits,
		DeterminismRuns:  opts.DeterminismRuns,
		Samples:          opts.EntropySamples,
		PreimageTrials:   opts.PreimageTrials,
		CollisionSamples: opts.CollisionSamples,
		MinEntropy:       opts.MinEntropy,
		Seed:             1,
		Baseline:         "none",
		From:             2,
		To:               11,
		Sizes:            "2,4,6,8",
		Iterations:       3,
		Count:            5,
		MaxLen:           1024,
	}
}

func parseJSONConfig(config *Config, path string) error {
	file, err := os.Open(path) // For read access.
	if err != nil {
		return err
	}
	defer file.Close()

	return json.NewDecoder(file).Decode(config)
}

func (c Config) analysisOptions() analysis.Options {
	return analysis.Options{
		Qubits:           c.Qubits,
		DeterminismRuns:  c.DeterminismRuns,
		EntropySamples:   c.Samples,
		PreimageTrials:   c.PreimageTrials,
		CollisionSamples: c.CollisionSamples,
		MinEntropy:       c.MinEntropy,
	}
}

func (c Config) validate() error {
	if err := c.analysisOptions().Validate(); err != nil {
		return err
	}
	switch {
	case c.From < 0 || c.To > qhash.MaxQubits+1 || c.From > c.To:
		return errors.Errorf("complexity range [%d, %d) out of bounds", c.From, c.To)
	case c.Iterations <= 0:
		return errors.Errorf("iterations must be positive, got %d", c.Iterations)
	case c.Count <= 0:
		return errors.Errorf("count must be positive, got %d", c.Count)
	case c.MaxLen <= 0:
		return errors.Errorf("max length must be positive, got %d", c.MaxLen)
	}
	if _, err := analysis.Baseline(c.Baseline); err != nil {
		return err
	}
	_, err := parseSizes(c.Sizes)
	return err
}

// parseSizes reads a comma separated list of qubit counts.
func parseSizes(s string) ([]int, error) {
	var sizes []int
	for _, field := range strings.Split(s, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		n, err := strconv.Atoi(field)
		if err != nil {
			return nil, errors.Wrapf(err, "bad size %q", field)
		}
		if n < 0 || n > qhash.MaxQubits {
			return nil, errors.Errorf("size %d out of range [0, %d]", n, qhash.MaxQubits)
		}
		sizes = append(sizes, n)
	}
	if len(sizes) == 0 {
		return nil, errors.New("no sizes given")
	}
	return sizes, nil
}

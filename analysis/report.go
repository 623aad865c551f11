package analysis

import (
	"encoding/json"
	"io"
	"os"
	"strings"
	"time"

	"github.com/golang/snappy"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Report is the persisted outcome of an analysis run.
type Report struct {
	RunID      string              `json:"run_id"`
	CreatedAt  time.Time           `json:"created_at"`
	Seed       int64               `json:"seed"`
	Options    Options             `json:"options"`
	Suites     map[string]*Summary `json:"suites"`
	Difficulty []Timing            `json:"difficulty,omitempty"`
	Complexity []ComplexityPoint   `json:"complexity,omitempty"`
}

func NewReport(seed int64, opts Options) *Report {
	return &Report{
		RunID:     uuid.New().String(),
		CreatedAt: time.Now().UTC(),
		Seed:      seed,
		Options:   opts,
		Suites:    make(map[string]*Summary),
	}
}

// compressed reports whether path selects the snappy framing format.
func compressed(path string) bool {
	return strings.HasSuffix(path, ".sz")
}

// WriteFile stores the report as indented JSON, snappy framed when path ends
// in ".sz".
func (r *Report) WriteFile(path string) error {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return errors.Wrap(err, "open report")
	}
	defer f.Close()

	var w io.Writer = f
	var sw *snappy.Writer
	if compressed(path) {
		sw = snappy.NewBufferedWriter(f)
		w = sw
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return errors.Wrap(err, "encode report")
	}
	if sw != nil {
		if err := sw.Close(); err != nil {
			return errors.Wrap(err, "flush snappy stream")
		}
	}
	return f.Sync()
}

// ReadReport loads a report written by WriteFile.
func ReadReport(path string) (*Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open report")
	}
	defer f.Close()

	var rd io.Reader = f
	if compressed(path) {
		rd = snappy.NewReader(f)
	}

	var r Report
	if err := json.NewDecoder(rd).Decode(&r); err != nil {
		return nil, errors.Wrap(err, "decode report")
	}
	return &r, nil
}

package qhash

import (
	"bytes"
	"encoding/hex"
	"errors"
	"math/rand"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

type constantEvaluator struct {
	value  float64
	extra  int
	calls  int
	angles [][]float64
}

func (c *constantEvaluator) Evaluate(b *BoundCircuit) ([]float64, error) {
	c.calls++
	c.angles = append(c.angles, b.Angles)
	exps := make([]float64, b.NumQubits()+c.extra)
	for i := range exps {
		exps[i] = c.value
	}
	return exps, nil
}

func sequence(n int) []byte {
	data := make([]byte, n)
	for i := range data {
		data[i] = byte(i % 256)
	}
	return data
}

func TestCircuitHasher(t *testing.T) {
	Convey("Given the default hasher", t, func() {
		h := New()

		Convey("Hashing bytes 0..255 twice gives identical 256-byte outputs", func() {
			input := sequence(256)
			first, err := h.Hash(input)
			So(err, ShouldBeNil)
			second, err := h.Hash(input)
			So(err, ShouldBeNil)
			So(first, ShouldHaveLength, 256)
			So(second, ShouldResemble, first)
		})

		Convey("Output length equals input length for powers of two", func() {
			rng := rand.New(rand.NewSource(7))
			for n := 1; n <= 7; n++ {
				input := make([]byte, 1<<n)
				rng.Read(input)
				out, err := h.Hash(input)
				So(err, ShouldBeNil)
				So(out, ShouldHaveLength, len(input))
			}
		})

		Convey("The input is not modified", func() {
			input := sequence(32)
			_, err := h.Hash(input)
			So(err, ShouldBeNil)
			So(input, ShouldResemble, sequence(32))
		})

		Convey("Empty input is rejected", func() {
			_, err := h.Hash(nil)
			So(errors.Is(err, ErrInvalidInput), ShouldBeTrue)
			_, _, err = h.HashWithInfo([]byte{})
			So(errors.Is(err, ErrInvalidInput), ShouldBeTrue)
		})

		Convey("A single byte hashes to a single byte", func() {
			out, err := h.Hash([]byte{0x5A})
			So(err, ShouldBeNil)
			So(out, ShouldHaveLength, 1)
			again, _ := h.Hash([]byte{0x5A})
			So(again, ShouldResemble, out)
		})

		Convey("Non-power-of-two lengths round up", func() {
			out, err := h.Hash([]byte{1, 2, 3})
			So(err, ShouldBeNil)
			So(out, ShouldHaveLength, 4)
			out, err = h.Hash(sequence(5))
			So(err, ShouldBeNil)
			So(out, ShouldHaveLength, 8)
		})

		Convey("Changing an input byte changes the hash", func() {
			a := sequence(32)
			b := sequence(32)
			b[3] ^= 0x10
			ha, _ := h.Hash(a)
			hb, _ := h.Hash(b)
			So(bytes.Equal(ha, hb), ShouldBeFalse)
		})

		Convey("HashWithInfo reports the final circuit", func() {
			out, info, err := h.HashWithInfo(sequence(32))
			So(err, ShouldBeNil)
			plain, _ := h.Hash(sequence(32))
			So(out, ShouldResemble, plain)
			So(info.Qubits, ShouldEqual, 5)
			So(info.GateCount["cx"], ShouldEqual, 16)
			So(info.GateCount["u3"], ShouldBeLessThanOrEqualTo, 20)
			So(info.Depth, ShouldBeGreaterThan, 0)
		})
	})

	Convey("Given a traced hasher", t, func() {
		var traces []IterationTrace
		h := New(WithTrace(func(it IterationTrace) { traces = append(traces, it) }))
		input := sequence(8)
		out, err := h.Hash(input)
		So(err, ShouldBeNil)

		Convey("Each iteration emits one byte per qubit", func() {
			So(traces, ShouldHaveLength, 3)
			var joined []byte
			for i, it := range traces {
				So(it.Iteration, ShouldEqual, i)
				So(it.Emitted, ShouldHaveLength, 3)
				So(it.Expectations, ShouldHaveLength, 3)
				So(it.State, ShouldNotBeNil)
				joined = append(joined, it.Emitted...)
			}
			So(joined[:8], ShouldResemble, out)
		})

		Convey("The first iteration reads the input, later ones the previous bytes", func() {
			So(traces[0].Angles, ShouldResemble, DeriveAngles(input, 36))
			So(traces[1].Angles, ShouldResemble, DeriveAngles(traces[0].Emitted, 36))
			So(traces[2].Angles, ShouldResemble, DeriveAngles(traces[1].Emitted, 36))
		})
	})

	Convey("Given a hasher with a stub evaluator", t, func() {
		ev := &constantEvaluator{value: 0.01}
		h := New(WithEvaluator(ev))

		Convey("Every emitted byte is the low byte of the fixed-point value", func() {
			out, err := h.Hash([]byte{0xAB, 0, 0, 0, 0, 0, 0, 0})
			So(err, ShouldBeNil)
			So(out, ShouldResemble, bytes.Repeat([]byte{0x48}, 8))
			So(ev.calls, ShouldEqual, 3)
			So(ev.angles[0][0], ShouldAlmostEqual, 10*AngleStep, 1e-15)
			So(ev.angles[0][1], ShouldAlmostEqual, 11*AngleStep, 1e-15)
			So(ev.angles[1][0], ShouldAlmostEqual, 4*AngleStep, 1e-15)
			So(ev.angles[1][1], ShouldAlmostEqual, 8*AngleStep, 1e-15)
		})

		Convey("A mismatched expectation vector is an error", func() {
			ev.extra = 1
			_, err := h.Hash(sequence(4))
			So(err, ShouldNotBeNil)
		})
	})
}

func TestHashDetailed(t *testing.T) {
	Convey("Given a detailed hash", t, func() {
		h := New()
		input := sequence(16)
		res, err := h.HashDetailed(input)
		So(err, ShouldBeNil)

		Convey("It matches the plain hash and records every iteration", func() {
			plain, _ := h.Hash(input)
			So(res.Hash, ShouldResemble, plain)
			So(res.Qubits, ShouldEqual, 4)
			So(res.Iterations, ShouldEqual, 4)
			So(res.Checkpoints, ShouldHaveLength, 4)
			So(res.Algorithm, ShouldEqual, Algorithm)
			So(res.InputSize, ShouldEqual, 16)
			So(res.Info, ShouldNotBeNil)
		})

		Convey("Verify accepts the original input", func() {
			ok, err := h.Verify(input, res)
			So(err, ShouldBeNil)
			So(ok, ShouldBeTrue)
		})

		Convey("Verify rejects a different input of the same size", func() {
			other := sequence(16)
			other[0] = 0xFF
			ok, err := h.Verify(other, res)
			So(err, ShouldBeNil)
			So(ok, ShouldBeFalse)
		})

		Convey("Verify rejects a tampered checkpoint", func() {
			res.Checkpoints[1].Hash = "AAAA"
			ok, err := h.Verify(input, res)
			So(err, ShouldBeNil)
			So(ok, ShouldBeFalse)
		})

		Convey("Verify errors on size mismatch or nil", func() {
			_, err := h.Verify(sequence(8), res)
			So(err, ShouldNotBeNil)
			_, err = h.Verify(input, nil)
			So(err, ShouldNotBeNil)
		})
	})
}

func TestQubitCount(t *testing.T) {
	Convey("Qubit count is ceil(log2(size))", t, func() {
		cases := map[int]int{1: 0, 2: 1, 3: 2, 4: 2, 5: 3, 128: 7, 256: 8, 257: 9}
		for size, want := range cases {
			n, err := QubitCount(size)
			So(err, ShouldBeNil)
			So(n, ShouldEqual, want)
		}
		_, err := QubitCount(0)
		So(errors.Is(err, ErrInvalidInput), ShouldBeTrue)
		_, err = QubitCount(1<<MaxQubits + 1)
		So(errors.Is(err, ErrInvalidInput), ShouldBeTrue)

		So(IsPowerOfTwo(1), ShouldBeTrue)
		So(IsPowerOfTwo(64), ShouldBeTrue)
		So(IsPowerOfTwo(0), ShouldBeFalse)
		So(IsPowerOfTwo(12), ShouldBeFalse)
	})
}

func TestBenchmarkHasher(t *testing.T) {
	Convey("Given a small benchmark", t, func() {
		results, err := BenchmarkHasher(New(), []int{2, 3}, 2, rand.New(rand.NewSource(1)))
		So(err, ShouldBeNil)
		So(results, ShouldHaveLength, 2)
		So(results[0].DataSize, ShouldEqual, 4)
		So(results[1].DataSize, ShouldEqual, 8)
		So(results[1].Qubits, ShouldEqual, 3)

		var buf bytes.Buffer
		PrintBenchmarkResults(&buf, results)
		So(buf.String(), ShouldContainSubstring, "QHASH")

		_, err = BenchmarkHasher(New(), []int{2}, 0, rand.New(rand.NewSource(1)))
		So(err, ShouldNotBeNil)
	})
}

func TestFinalCircuit(t *testing.T) {
	Convey("Given an 8-byte input", t, func() {
		var last IterationTrace
		h := New(WithTrace(func(tr IterationTrace) { last = tr }))

		b, err := h.FinalCircuit(sequence(8))
		So(err, ShouldBeNil)

		Convey("The circuit is bound to the last iteration's angles", func() {
			So(b.NumQubits(), ShouldEqual, 3)
			So(last.Iteration, ShouldEqual, 2)
			So(b.Angles, ShouldResemble, last.Angles)
			So(b.QASM(), ShouldContainSubstring, "qreg q[3];")
		})

		Convey("Empty input has no circuit", func() {
			_, err := h.FinalCircuit(nil)
			So(errors.Is(err, ErrInvalidInput), ShouldBeTrue)
		})
	})
}

func TestKnownAnswers(t *testing.T) {
	Convey("The simulator reproduces reference digests", t, func() {
		cases := []struct {
			input []byte
			want  string
		}{
			{sequence(8), "0d800000fc000000"},
			{[]byte{0x5A}, "77"},
			{[]byte{1, 2, 3}, "00b0423e"},
			{[]byte{0xff, 0xee, 0xdd, 0xcc}, "415f9e23"},
		}
		h := New()
		for _, tc := range cases {
			out, err := h.Hash(tc.input)
			So(err, ShouldBeNil)
			So(hex.EncodeToString(out), ShouldEqual, tc.want)
		}
	})
}

package main

import (
	"encoding/base64"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"qcircuit/v2/qhash"
)

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}
	return path
}

func TestParseJSONConfig(t *testing.T) {
	Convey("Given a JSON config file", t, func() {
		path := writeTempConfig(t, `{"qubits":5,"samples":120,"seed":7,"baseline":"blake3","report":"out.json.sz"}`)

		config := defaultConfig()
		So(parseJSONConfig(&config, path), ShouldBeNil)

		Convey("Present fields override the defaults", func() {
			So(config.Qubits, ShouldEqual, 5)
			So(config.Samples, ShouldEqual, 120)
			So(config.Seed, ShouldEqual, int64(7))
			So(config.Baseline, ShouldEqual, "blake3")
			So(config.Report, ShouldEqual, "out.json.sz")
		})

		Convey("Absent fields keep the defaults", func() {
			So(config.CollisionSamples, ShouldEqual, 500)
			So(config.Sizes, ShouldEqual, "2,4,6,8")
			So(config.validate(), ShouldBeNil)
		})

		Convey("The analysis options follow the config", func() {
			opts := config.analysisOptions()
			So(opts.Qubits, ShouldEqual, 5)
			So(opts.EntropySamples, ShouldEqual, 120)
		})
	})

	Convey("A missing file is an error", t, func() {
		config := defaultConfig()
		So(parseJSONConfig(&config, filepath.Join(t.TempDir(), "missing.json")), ShouldNotBeNil)
	})

	Convey("Malformed JSON is an error", t, func() {
		config := defaultConfig()
		So(parseJSONConfig(&config, writeTempConfig(t, `{"qubits":`)), ShouldNotBeNil)
	})
}

func TestConfigValidate(t *testing.T) {
	Convey("Invalid values are rejected", t, func() {
		for _, mutate := range []func(*Config){
			func(c *Config) { c.Qubits = qhash.MaxQubits + 1 },
			func(c *Config) { c.CollisionSamples = 0 },
			func(c *Config) { c.From, c.To = 6, 3 },
			func(c *Config) { c.Iterations = 0 },
			func(c *Config) { c.Count = -1 },
			func(c *Config) { c.MaxLen = 0 },
			func(c *Config) { c.Baseline = "md5" },
			func(c *Config) { c.Sizes = "2,x" },
		} {
			config := defaultConfig()
			mutate(&config)
			So(config.validate(), ShouldNotBeNil)
		}
		So(defaultConfig().validate(), ShouldBeNil)
	})
}

func TestParseSizes(t *testing.T) {
	Convey("Sizes are comma separated qubit counts", t, func() {
		sizes, err := parseSizes(" 2, 4,,8 ")
		So(err, ShouldBeNil)
		So(sizes, ShouldResemble, []int{2, 4, 8})

		_, err = parseSizes("")
		So(err, ShouldNotBeNil)

		_, err = parseSizes("99")
		So(err, ShouldNotBeNil)
	})
}

func TestVerifyHelpers(t *testing.T) {
	Convey("Given a stored detailed result", t, func() {
		h := qhash.New()
		data := []byte("0123456789abcdef")
		res, err := h.HashDetailed(data)
		So(err, ShouldBeNil)

		j, err := json.Marshal(res)
		So(err, ShouldBeNil)

		Convey("Raw and base64 JSON both verify", func() {
			ok, err := verifyResult(h, data, string(j))
			So(err, ShouldBeNil)
			So(ok, ShouldBeTrue)

			ok, err = verifyResult(h, data, base64.StdEncoding.EncodeToString(j))
			So(err, ShouldBeNil)
			So(ok, ShouldBeTrue)
		})

		Convey("Other data does not verify", func() {
			ok, err := verifyResult(h, []byte("0123456789abcdeF"), string(j))
			So(err, ShouldBeNil)
			So(ok, ShouldBeFalse)
		})

		Convey("A bare base64 hash verifies", func() {
			ok, err := verifyHash(h, data, base64.StdEncoding.EncodeToString(res.Hash))
			So(err, ShouldBeNil)
			So(ok, ShouldBeTrue)

			_, err = verifyHash(h, data, "%%%")
			So(err, ShouldNotBeNil)
		})

		Convey("Garbage is not a result", func() {
			_, err := verifyResult(h, data, "not json")
			So(err, ShouldNotBeNil)
		})
	})
}

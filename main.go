// main.go
package main

import (
	"log"
	"os"

	"github.com/urfave/cli"
)

// VERSION is injected by buildflags
var VERSION = "SELFBUILD"

var inputFlags = []cli.Flag{
	cli.StringFlag{
		Name:  "input, i",
		Usage: "input data to hash",
	},
	cli.StringFlag{
		Name:  "file, f",
		Usage: "file path to hash",
	},
	cli.StringFlag{
		Name:  "hex",
		Usage: "hex encoded input data",
	},
}

func main() {
	if VERSION == "SELFBUILD" {
		log.SetFlags(log.LstdFlags | log.Lshortfile)
	}

	myApp := cli.NewApp()
	myApp.Name = "qhash"
	myApp.Usage = "quantum circuit hash: hashing, verification and analysis"
	myApp.Version = VERSION
	myApp.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "c",
			Value: "",
			Usage: "config from json file, which will override the command from shell",
		},
	}
	myApp.Commands = []cli.Command{
		{
			Name:   "hash",
			Usage:  "hash input data; the output has the same length when it is a power of two",
			Flags:  append(append([]cli.Flag{}, inputFlags...), hashFlags...),
			Action: hashAction,
		},
		{
			Name:   "verify",
			Usage:  "verify data against a stored hash result or a base64 hash",
			Flags:  append(append([]cli.Flag{}, inputFlags...), verifyFlags...),
			Action: verifyAction,
		},
		{
			Name:   "analyze",
			Usage:  "run determinism, entropy, preimage and collision tests",
			Flags:  analyzeFlags,
			Action: analyzeAction,
		},
		{
			Name:   "complexity",
			Usage:  "report qubits, depth and gate counts of the final circuit for N in [from, to)",
			Flags:  complexityFlags,
			Action: complexityAction,
		},
		{
			Name:   "bench",
			Usage:  "measure hashing throughput per input size",
			Flags:  benchFlags,
			Action: benchAction,
		},
		{
			Name:   "scale",
			Usage:  "hash random inputs of arbitrary length through the 256-byte scaler",
			Flags:  scaleFlags,
			Action: scaleAction,
		},
		{
			Name:   "circuit",
			Usage:  "print the final iteration's circuit as OpenQASM 2.0",
			Flags:  inputFlags,
			Action: circuitAction,
		},
		{
			Name:   "bloch",
			Usage:  "show per-iteration Bloch vectors of every qubit",
			Flags:  inputFlags,
			Action: blochAction,
		},
	}
	if err := myApp.Run(os.Args); err != nil {
		log.Println(err)
		os.Exit(1)
	}
}

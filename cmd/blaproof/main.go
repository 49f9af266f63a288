// Command blaproof runs one of the bundled scenarios through the model
// checker and prints the verdict, exiting 0 if no assertion failed, 1 if one
// did, and 2 on a usage or build error.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/mr0re1/bla"
	"github.com/mr0re1/bla/assertion"
	"github.com/mr0re1/bla/examples/atomicfix"
	"github.com/mr0re1/bla/examples/dekker"
	"github.com/mr0re1/bla/examples/diehard"
	"github.com/mr0re1/bla/examples/halting"
	"github.com/mr0re1/bla/examples/inconsistency"
	"github.com/mr0re1/bla/examples/peterson"
	"github.com/mr0re1/bla/memory"
	"github.com/mr0re1/bla/program"
	"github.com/mr0re1/bla/render"
)

type scenario struct {
	domain     bla.DomainSpec
	build      func(mm *memory.Map) ([]*program.Program, error)
	assertions []assertion.Assertion
}

func scenarios() map[string]scenario {
	return map[string]scenario{
		"inconsistency": {domain: inconsistency.Domain(), build: inconsistency.Build},
		"atomicfix":     {domain: atomicfix.Domain(), build: atomicfix.BuildNonAtomic},
		"atomicfix-ok":  {domain: atomicfix.Domain(), build: atomicfix.BuildAtomic},
		"dekker":        {domain: dekker.Domain(), build: dekker.BuildSafe},
		"dekker-broken": {domain: dekker.Domain(), build: dekker.BuildBroken},
		"diehard":       {domain: diehard.Domain(), build: diehard.Build, assertions: []assertion.Assertion{diehard.NeverFour()}},
		"halting":       {domain: halting.Domain(), build: halting.Build, assertions: []assertion.Assertion{assertion.Halts}},
		"peterson":      {domain: peterson.Domain(), build: peterson.Build},
	}
}

func main() {
	verbose := flag.Bool("v", false, "print the full step-by-step trace instead of a short summary")
	logLevel := flag.String("log-level", "disabled", "zerolog level for the search (debug, info, disabled)")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] <scenario>\n\nScenarios:\n", os.Args[0])
		for name := range scenarios() {
			fmt.Fprintf(os.Stderr, "  %s\n", name)
		}
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	name := flag.Arg(0)
	sc, ok := scenarios()[name]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown scenario %q\n", name)
		flag.Usage()
		os.Exit(2)
	}

	mm, err := sc.domain.BuildMap()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(2)
	}

	programs, err := sc.build(mm)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(2)
	}

	level, err := zerolog.ParseLevel(*logLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(2)
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()

	var renderer render.Renderer = render.Short{}
	if *verbose {
		renderer = render.Long{}
	}

	ok, _, err = bla.Proof(programs, sc.domain,
		bla.WithAssertions(sc.assertions...),
		bla.WithRenderer(renderer, os.Stdout),
		bla.WithLogger(logger),
	)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(2)
	}

	if !ok {
		os.Exit(1)
	}
}

// Command pyrexcheck runs check scripts against the pyrex engine.
//
// Usage:
//
//	pyrexcheck [-max-states n] [-no-prefilter] [script ...]
//	pyrexcheck -dot `pattern`
//
// Scripts are read from the named files, or from standard input when none
// are given. Each check prints one result line; the exit status is 1 when
// any expectation fails or any pattern does not compile.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/coregx/pyrex"
	"github.com/coregx/pyrex/internal/script"
	"github.com/coregx/pyrex/nfa"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("pyrexcheck: ")

	maxStates := flag.Int("max-states", nfa.DefaultMaxStates, "automaton state ceiling")
	noPrefilter := flag.Bool("no-prefilter", false, "disable literal prefiltering")
	dot := flag.String("dot", "", "write the automaton for `pattern` in DOT format and exit")
	flag.Parse()

	config := pyrex.DefaultConfig()
	config.MaxStates = *maxStates
	config.EnablePrefilter = !*noPrefilter
	if err := config.Validate(); err != nil {
		log.Fatal(err)
	}

	if *dot != "" {
		re, err := pyrex.CompileWithConfig(*dot, config)
		if err != nil {
			log.Fatal(err)
		}
		if err := re.WriteDOT(os.Stdout); err != nil {
			log.Fatal(err)
		}
		return
	}

	runner := script.NewRunner(config, os.Stdout)
	var sum script.Summary

	if flag.NArg() == 0 {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			log.Fatal(err)
		}
		runFile(runner, "<stdin>", data, &sum)
	}
	for _, name := range flag.Args() {
		data, err := os.ReadFile(name)
		if err != nil {
			log.Fatal(err)
		}
		runFile(runner, name, data, &sum)
	}

	fmt.Println(sum)
	if !sum.OK() {
		os.Exit(1)
	}
}

func runFile(runner *script.Runner, name string, data []byte, sum *script.Summary) {
	f, err := script.Parse(name, string(data))
	if err != nil {
		log.Fatal(err)
	}
	runner.Run(f, sum)
}

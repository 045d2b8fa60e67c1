// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Benchclean removes outdated entries from a github-action-benchmark
// history file (data.js).
//
// Usage:
//
//	benchclean [-suite name] [-v] input.js output.js
//
// An entry of the suite is kept only if its tool is
// "customBiggerIsBetter", it has at least one bench, every bench is
// measured in "M links/sec", and every bench range contains "±".
// Other entries, such as those recorded before the switch to
// throughput metrics, are removed. Kept entries and the rest of the
// file are written unchanged, in their original order.
//
// Benchclean exits with status 0 whether or not it removed anything.
// A malformed input file is a fatal error.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/uselessgoddess/dunes-perf/benchhist"
	"github.com/uselessgoddess/dunes-perf/internal/config"
)

var exit = os.Exit // replaced during testing

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), "usage: benchclean [options] input output\n")
	fmt.Fprintf(flag.CommandLine.Output(), "options:\n")
	flag.PrintDefaults()
	exit(2)
}

var (
	flagSuite   = flag.String("suite", "", "benchmark `suite` to clean (default $BENCH_SUITE or Benchmark)")
	flagVerbose = flag.Bool("v", false, "print the decision for each entry")
)

func main() {
	log.SetPrefix("benchclean: ")
	log.SetFlags(0)
	flag.Usage = usage
	flag.Parse()
	if flag.NArg() != 2 {
		flag.Usage()
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	suite := *flagSuite
	if suite == "" {
		suite = cfg.Suite
	}

	input, output := flag.Arg(0), flag.Arg(1)
	data, err := os.ReadFile(input)
	if err != nil {
		log.Fatal(err)
	}
	out, r, err := benchhist.Clean(data, suite)
	if err != nil {
		log.Fatalf("%s: %v", input, err)
	}
	if err := os.WriteFile(output, out, 0666); err != nil {
		log.Fatal(err)
	}
	report(os.Stderr, r, *flagVerbose)
	fmt.Fprintf(os.Stderr, "cleaned data written to %s\n", output)
}

// report writes a summary of r to w, preceded by one line per entry
// if verbose is set.
func report(w io.Writer, r *benchhist.Report, verbose bool) {
	fmt.Fprintf(w, "%s: %d entries\n", r.Suite, len(r.Verdicts))
	if verbose {
		for _, v := range r.Verdicts {
			if v.Kept() {
				fmt.Fprintf(w, "  keep   %d: %s (tool=%s)\n", v.Index+1, v.Commit, v.Tool)
			} else {
				fmt.Fprintf(w, "  remove %d: %s (tool=%s, units=%q, %d benches): %v\n",
					v.Index+1, v.Commit, v.Tool, v.Units, v.Benches, v.Reason)
			}
		}
	}
	fmt.Fprintf(w, "kept %d, removed %d\n", r.Kept, r.Removed)
}

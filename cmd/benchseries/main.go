// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Benchseries prints or charts the history of each benchmark in a
// github-action-benchmark history file (data.js).
//
// Usage:
//
//	benchseries [options] data.js
//
// By default benchseries prints one summary line per benchmark. With
// -csv it prints a table with a row per commit and a column per
// benchmark; with -text it draws a terminal chart per benchmark; with
// -png it writes a PNG chart per benchmark into a directory. Only
// entries that benchclean would keep are used, unless -all is given.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/uselessgoddess/dunes-perf/benchhist"
	"github.com/uselessgoddess/dunes-perf/benchseries"
	"github.com/uselessgoddess/dunes-perf/benchunit"
	"github.com/uselessgoddess/dunes-perf/internal/config"
)

var exit = os.Exit // replaced during testing

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), "usage: benchseries [options] data.js\n")
	fmt.Fprintf(flag.CommandLine.Output(), "options:\n")
	flag.PrintDefaults()
	exit(2)
}

type options struct {
	suite  string
	all    bool
	csv    bool
	spread bool
	text   bool
	pngDir string
}

func main() {
	log.SetPrefix("benchseries: ")
	log.SetFlags(0)

	var opts options
	flag.StringVar(&opts.suite, "suite", "", "benchmark `suite` to read (default $BENCH_SUITE or Benchmark)")
	flag.BoolVar(&opts.all, "all", false, "include entries that don't conform to the current schema")
	flag.BoolVar(&opts.csv, "csv", false, "write the series in CSV form")
	flag.BoolVar(&opts.spread, "delta", false, "include the plus-or-minus range in the CSV")
	flag.BoolVar(&opts.text, "text", false, "draw a terminal chart per series")
	flag.StringVar(&opts.pngDir, "png", "", "`directory` to write PNG charts into")
	flag.Usage = usage
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
	}

	if opts.suite == "" {
		cfg, err := config.Load()
		if err != nil {
			log.Fatal(err)
		}
		opts.suite = cfg.Suite
	}

	data, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		log.Fatal(err)
	}
	if err := run(os.Stdout, data, opts); err != nil {
		log.Fatal(err)
	}
}

func run(w io.Writer, data []byte, opts options) error {
	doc, err := benchhist.Decode(data)
	if err != nil {
		return err
	}
	es, err := doc.Entries(opts.suite)
	if err != nil {
		return err
	}
	if !opts.all {
		kept := es[:0]
		for _, e := range es {
			if benchhist.Check(e) == benchhist.OK {
				kept = append(kept, e)
			}
		}
		es = kept
	}
	series := benchseries.Build(es)

	if opts.pngDir != "" {
		files, err := benchseries.Chart(series, opts.pngDir)
		if err != nil {
			return err
		}
		log.Printf("wrote %d charts to %s", len(files), opts.pngDir)
	}
	switch {
	case opts.csv:
		csvOpts := benchseries.CSVPlain
		if opts.spread {
			csvOpts |= benchseries.CSVSpread
		}
		return benchseries.WriteCSV(w, series, csvOpts)
	case opts.text:
		for _, s := range series {
			fmt.Fprintf(w, "%s\n\n", benchseries.Text(s))
		}
	case opts.pngDir == "":
		for _, s := range series {
			sum := s.Summary()
			scale := benchunit.CommonScale([]float64{sum.Last, sum.Mean, sum.Min, sum.Max})
			fmt.Fprintf(w, "%s: %d points, last %s, mean %s, min %s, max %s %s\n",
				s.Name, sum.Count, scale.Format(sum.Last), scale.Format(sum.Mean),
				scale.Format(sum.Min), scale.Format(sum.Max), s.Unit)
		}
	}
	return nil
}

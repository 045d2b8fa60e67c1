// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Benchconv converts the output of tree benchmarks into the JSON read
// by github-action-benchmark's "customBiggerIsBetter" tool.
//
// Usage:
//
//	benchconv [-v] input.txt output.json
//
// The input is either criterion output, with lines like
//
//	sbt_insert_100          time:   [2.7153 µs 2.7634 µs 2.8164 µs]
//
// or libtest bench output, with lines like
//
//	test sbt_insert_100 ... bench:       2,715.35 ns/iter (+/- 958.21)
//
// Benchmarks are named <tree>_<operation>_<n>, where tree is "sbt" or
// "art", operation is "insert", "insert_search", or "full_cycle", and n
// is the number of elements. Each benchmark becomes a throughput metric
// in links per second: millions of links per second for criterion
// output, links per second for libtest output. Lines that match
// neither format are ignored. If nothing matches, the output is an
// empty array.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/uselessgoddess/dunes-perf/benchconv"
	"github.com/uselessgoddess/dunes-perf/benchunit"
)

var exit = os.Exit // replaced during testing

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), "usage: benchconv [options] input output\n")
	fmt.Fprintf(flag.CommandLine.Output(), "options:\n")
	flag.PrintDefaults()
	exit(2)
}

var flagVerbose = flag.Bool("v", false, "print the converted metrics")

func main() {
	log.SetPrefix("benchconv: ")
	log.SetFlags(0)
	flag.Usage = usage
	flag.Parse()
	if flag.NArg() != 2 {
		flag.Usage()
	}

	input, output := flag.Arg(0), flag.Arg(1)
	data, err := os.ReadFile(input)
	if err != nil {
		log.Fatal(err)
	}
	out, metrics, err := convert(data)
	if err != nil {
		log.Fatal(err)
	}
	if err := os.WriteFile(output, out, 0666); err != nil {
		log.Fatal(err)
	}

	log.Printf("Converted %d benchmarks to %s", len(metrics), output)
	for _, line := range summarize(metrics) {
		log.Print(line)
	}
	if *flagVerbose {
		os.Stderr.Write(out)
	}
}

// convert converts benchmark output to indented JSON.
func convert(data []byte) ([]byte, []benchconv.Metric, error) {
	metrics := benchconv.ConvertText(data)
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(metrics); err != nil {
		return nil, nil, err
	}
	return buf.Bytes(), metrics, nil
}

// summarize returns one line per unit giving the geometric mean of
// the metric values.
func summarize(metrics []benchconv.Metric) []string {
	var lines []string
	for _, s := range benchconv.Summarize(metrics) {
		if s.GeoMean == 0 {
			continue
		}
		val, unit := benchunit.Tidy(s.GeoMean, s.Unit)
		lines = append(lines, fmt.Sprintf("  %d in %s, geomean %s %s", s.Count, s.Unit, benchunit.Scale(val), unit))
	}
	return lines
}

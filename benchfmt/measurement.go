// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchfmt parses the text reports of Rust benchmark
// harnesses.
//
// Two report formats are recognized. The criterion range format
// reports a confidence interval, each bound with its own unit:
//
//	sbt_insert_100          time:   [2.7153 µs 2.7634 µs 2.8164 µs]
//
// The legacy libtest format reports an average and a symmetric
// deviation, both in nanoseconds:
//
//	test sbt_insert_100 ... bench:       2,715.35 ns/iter (+/- 958.21)
//
// A report is tokenized as a whole rather than line by line, because
// criterion moves the "time:" column onto its own line when a
// benchmark name is long.
package benchfmt

import (
	"fmt"

	"github.com/uselessgoddess/dunes-perf/benchunit"
)

// A Measurement is a single benchmark measurement found in a report.
// It is either a *Range or a *Legacy.
type Measurement interface {
	// Pos returns the byte offset of the measurement in the report
	// text.
	Pos() int

	// BenchName returns the benchmark name token.
	BenchName() string

	isMeasurement()
}

var _ Measurement = (*Range)(nil)
var _ Measurement = (*Legacy)(nil)

// A Time is a time value with the unit it was reported in.
type Time struct {
	Value float64
	Unit  benchunit.TimeUnit
}

// Nanoseconds returns t in nanoseconds.
func (t Time) Nanoseconds() float64 {
	return t.Value * t.Unit.Nanoseconds()
}

func (t Time) String() string {
	return fmt.Sprintf("%v %s", t.Value, t.Unit)
}

// A Range is a measurement in criterion's range format: the lower
// bound, point estimate and upper bound of the time per iteration.
type Range struct {
	Name           string
	Low, Mid, High Time

	off int
}

func (m *Range) Pos() int          { return m.off }
func (m *Range) BenchName() string { return m.Name }
func (*Range) isMeasurement()      {}

// A Legacy is a measurement in libtest's format: the average time per
// iteration and its deviation, both in nanoseconds.
type Legacy struct {
	Name     string
	Time     float64
	Variance float64

	off int
}

func (m *Legacy) Pos() int          { return m.off }
func (m *Legacy) BenchName() string { return m.Name }
func (*Legacy) isMeasurement()      {}

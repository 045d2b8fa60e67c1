// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchconv converts tree benchmark measurements into
// throughput metrics for github-action-benchmark's
// "customBiggerIsBetter" tool.
//
// A benchmark named like "sbt_insert_search_100" performs a fixed
// number of operations per iteration (here 2×100), so its time per
// iteration converts to links per second. Range-format measurements
// are reported in millions of links per second ("M links/sec");
// legacy-format measurements in links per second ("links/sec").
package benchconv

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/uselessgoddess/dunes-perf/benchfmt"
)

// Units of the metrics produced by Convert.
const (
	MegaUnit = "M links/sec" // range format
	BaseUnit = "links/sec"   // legacy format
)

// A Metric is one benchmark result in the format read by
// github-action-benchmark.
type Metric struct {
	Name  string  `json:"name"`
	Unit  string  `json:"unit"`
	Value float64 `json:"value"`
	Range string  `json:"range"`
	Extra string  `json:"extra"`
}

// ConvertText parses report text and converts its measurements.
func ConvertText(text []byte) []Metric {
	return Convert(benchfmt.Parse(text))
}

// Convert converts measurements to metrics, preserving their order.
// Measurements whose name has no operand count, or whose time is not
// positive and finite, are skipped. The result is never nil.
func Convert(ms []benchfmt.Measurement) []Metric {
	out := make([]Metric, 0, len(ms))
	for _, m := range ms {
		if metric, ok := convert(m); ok {
			out = append(out, metric)
		}
	}
	return out
}

func convert(m benchfmt.Measurement) (Metric, bool) {
	class, ok := Classify(m.BenchName())
	if !ok {
		return Metric{}, false
	}

	var timeNs, variance float64
	var mega bool
	switch m := m.(type) {
	case *benchfmt.Range:
		timeNs = m.Mid.Nanoseconds()
		variance = (m.High.Nanoseconds() - m.Low.Nanoseconds()) / 2
		mega = true
	case *benchfmt.Legacy:
		timeNs, variance = m.Time, m.Variance
	default:
		return Metric{}, false
	}
	if !(timeNs > 0) || math.IsInf(timeNs, 0) {
		return Metric{}, false
	}

	ops := float64(class.Ops())
	point := throughput(ops, timeNs, 0)
	// Less time means more throughput.
	high := throughput(ops, timeNs-variance, point)
	low := throughput(ops, timeNs+variance, point)
	spread := (high - low) / 2
	if math.IsInf(point, 0) || math.IsInf(spread, 0) || math.IsNaN(spread) {
		return Metric{}, false
	}

	metric := Metric{
		Name:  fmt.Sprintf("%s (%d elements)", class.Op, class.N),
		Extra: fmt.Sprintf("tree=%s ops=%d time=%.2fns", class.Family, class.Ops(), timeNs),
	}
	if mega {
		metric.Unit = MegaUnit
		metric.Value = round2(point / 1e6)
		metric.Range = "± " + formatFloat(round2(spread/1e6))
	} else {
		metric.Unit = BaseUnit
		metric.Value = math.Round(point)
		metric.Range = strconv.FormatFloat(math.Round(spread), 'f', 0, 64)
	}
	return metric, true
}

// throughput returns operations per second for ops operations taking
// ns nanoseconds, or fallback if ns is not positive.
func throughput(ops, ns, fallback float64) float64 {
	if !(ns > 0) {
		return fallback
	}
	return ops / (ns / 1e9)
}

// round2 rounds x to two decimal places, rounding the exact binary
// value half to even.
func round2(x float64) float64 {
	r, _ := strconv.ParseFloat(strconv.FormatFloat(x, 'f', 2, 64), 64)
	return r
}

// formatFloat formats x in the shortest form that round-trips, always
// with a fractional part ("12.0", not "12").
func formatFloat(x float64) string {
	s := strconv.FormatFloat(x, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

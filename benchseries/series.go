// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchseries turns a benchmark history into one time series
// per benchmark, and renders the series as CSV, PNG charts, or
// terminal charts.
package benchseries

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/aclements/go-moremath/stats"

	"github.com/uselessgoddess/dunes-perf/benchhist"
	"github.com/uselessgoddess/dunes-perf/benchunit"
)

// A Point is the value of one benchmark in one history entry.
type Point struct {
	Index  int    // Position of the entry in the history
	Commit string // Short commit ID
	Date   time.Time
	Value  float64 // In the series' Unit
	Range  string  // As stored
	Spread float64 // Half-width of Range in the series' Unit, or 0
}

// A Series is the history of one benchmark, oldest first.
type Series struct {
	Name   string
	Unit   string // Tidied unit, such as "links/sec"
	Points []Point
}

// Build groups the bench values of es by benchmark name and tidied
// unit, in order of first appearance. Benches without a numeric value
// are skipped.
func Build(es []*benchhist.Entry) []*Series {
	type key struct{ name, unit string }
	var out []*Series
	byKey := make(map[key]*Series)
	for i, e := range es {
		var date time.Time
		if e.Date != 0 {
			date = time.UnixMilli(e.Date).UTC()
		}
		for _, b := range e.Benches {
			if math.IsNaN(b.Value) {
				continue
			}
			val, unit := benchunit.Tidy(b.Value, b.Unit)
			spread, _ := benchunit.Tidy(parseSpread(b.Range), b.Unit)
			k := key{b.Name, unit}
			s := byKey[k]
			if s == nil {
				s = &Series{Name: b.Name, Unit: unit}
				byKey[k] = s
				out = append(out, s)
			}
			s.Points = append(s.Points, Point{
				Index:  i,
				Commit: e.ShortID(),
				Date:   date,
				Value:  val,
				Range:  b.Range,
				Spread: spread,
			})
		}
	}
	return out
}

// Values returns the values of s's points.
func (s *Series) Values() []float64 {
	vals := make([]float64, len(s.Points))
	for i, p := range s.Points {
		vals[i] = p.Value
	}
	return vals
}

// A Summary gives summary statistics of a Series.
type Summary struct {
	Count          int
	Mean, Min, Max float64
	Last           float64
}

// Summary returns summary statistics of s. All fields but Count are
// NaN for an empty series.
func (s *Series) Summary() Summary {
	vals := s.Values()
	if len(vals) == 0 {
		nan := math.NaN()
		return Summary{Mean: nan, Min: nan, Max: nan, Last: nan}
	}
	sum := Summary{Count: len(vals), Mean: stats.Mean(vals), Last: vals[len(vals)-1]}
	sum.Min, sum.Max = stats.Bounds(vals)
	return sum
}

// parseSpread parses the number in a range such as "± 0.66" or
// "+/- 958". It returns 0 if r holds no number.
func parseSpread(r string) float64 {
	r = strings.TrimSpace(r)
	for _, marker := range []string{"±", "+/-"} {
		r = strings.TrimSpace(strings.TrimPrefix(r, marker))
	}
	x, err := strconv.ParseFloat(r, 64)
	if err != nil || math.IsNaN(x) || math.IsInf(x, 0) {
		return 0
	}
	return math.Abs(x)
}

// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchconv

import (
	"github.com/aclements/go-moremath/stats"
)

// A Summary aggregates the metrics that share a unit.
type Summary struct {
	Unit    string
	Count   int
	GeoMean float64 // Geometric mean of the positive values
}

// Summarize returns one Summary per unit, in order of first
// appearance in ms.
func Summarize(ms []Metric) []Summary {
	var units []string
	values := make(map[string][]float64)
	counts := make(map[string]int)
	for _, m := range ms {
		if _, ok := counts[m.Unit]; !ok {
			units = append(units, m.Unit)
		}
		counts[m.Unit]++
		// The geometric mean is undefined for zero values, which
		// rounding can produce for very slow benchmarks.
		if m.Value > 0 {
			values[m.Unit] = append(values[m.Unit], m.Value)
		}
	}

	out := make([]Summary, 0, len(units))
	for _, u := range units {
		s := Summary{Unit: u, Count: counts[u]}
		if xs := values[u]; len(xs) > 0 {
			s.GeoMean = stats.GeoMean(xs)
		}
		out = append(out, s)
	}
	return out
}

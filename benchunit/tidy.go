// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchunit

import (
	"strings"
	"sync"
)

type tidyEntry struct {
	tidied string
	factor float64
}

var tidyCache sync.Map // unit string -> *tidyEntry

// siPrefixes maps the SI prefixes that may be written as a separate
// word in front of a count unit, as in "M links/sec".
var siPrefixes = map[string]float64{
	"k": 1e3,
	"M": 1e6,
	"G": 1e9,
	"T": 1e12,
}

// Tidy normalizes a value with a (possibly pre-scaled) unit into base
// units. For example, "M links/sec" becomes "links/sec" with the value
// multiplied by 1e6, and "ns/iter" becomes "sec/iter" with the value
// divided by 1e9. If the value is already in base units, it does
// nothing.
func Tidy(value float64, unit string) (tidiedValue float64, tidiedUnit string) {
	newUnit, factor := tidyUnit(unit)
	return value * factor, newUnit
}

// tidyUnit returns the tidied version of unit and the multiplicative
// factor to convert a value in unit to a value in the tidied unit.
func tidyUnit(unit string) (tidied string, factor float64) {
	// Fast path for the units this module writes.
	switch unit {
	case "links/sec", "sec/iter":
		return unit, 1
	case "M links/sec":
		return "links/sec", 1e6
	case "ns/iter":
		return "sec/iter", 1e-9
	}
	// Fast path for units with no normalization.
	if !strings.Contains(unit, "ns") && !strings.ContainsAny(unit, "kMGT") {
		return unit, 1
	}

	if tc, ok := tidyCache.Load(unit); ok {
		tc := tc.(*tidyEntry)
		return tc.tidied, tc.factor
	}

	tidied, factor = tidyUnitUncached(unit)
	tidyCache.Store(unit, &tidyEntry{tidied, factor})
	return
}

func tidyUnitUncached(unit string) (tidied string, factor float64) {
	type edit struct {
		pos, len int
		replace  string
	}

	factor = 1
	p := newParser(unit)
	edits := make([]edit, 0, 4)
	// A prefix word only applies if another numerator token follows it.
	prefixPos, prefixFactor := -1, 0.0
	for p.next() {
		if p.denom {
			// Don't edit in the denominator.
			prefixPos = -1
			continue
		}
		if prefixPos >= 0 {
			edits = append(edits, edit{prefixPos, p.pos - prefixPos, ""})
			factor *= prefixFactor
			prefixPos = -1
		}
		if f, ok := siPrefixes[p.tok]; ok {
			prefixPos, prefixFactor = p.pos, f
			continue
		}
		if p.tok == "ns" {
			edits = append(edits, edit{p.pos, len("ns"), "sec"})
			factor /= 1e9
		}
	}
	for i := len(edits) - 1; i >= 0; i-- {
		e := edits[i]
		unit = unit[:e.pos] + e.replace + unit[e.pos+e.len:]
	}
	return unit, factor
}

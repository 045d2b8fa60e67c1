// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchhist reads, filters, and writes the benchmark history
// that github-action-benchmark stores in data.js.
//
// A history file is a JavaScript assignment of one JSON object:
//
//	window.BENCHMARK_DATA = {
//	  "lastUpdate": 1700000000000,
//	  "repoUrl": "https://github.com/...",
//	  "entries": {
//	    "Benchmark": [
//	      {"commit": {"id": "..."}, "date": 1700000000000,
//	       "tool": "customBiggerIsBetter",
//	       "benches": [{"name": "...", "value": 36.19, "range": "± 0.66", "unit": "M links/sec"}]}
//	    ]
//	  }
//	}
//
// Curate removes the entries of a suite that don't conform to the
// current schema, leaving everything else in the file as it was.
package benchhist

import "strings"

// The schema every kept entry conforms to.
const (
	Tool        = "customBiggerIsBetter"
	Unit        = "M links/sec"
	RangeMarker = "±"
)

// DefaultSuite is the suite name github-action-benchmark uses when none
// is configured.
const DefaultSuite = "Benchmark"

// A Reason says why an entry does or doesn't conform to the schema.
type Reason int

const (
	OK            Reason = iota
	WrongTool            // tool is not Tool
	NoBenches            // benches is missing or empty
	WrongUnit            // some bench unit is not Unit
	NoRangeMarker        // some bench range lacks RangeMarker
)

func (r Reason) String() string {
	switch r {
	case OK:
		return "ok"
	case WrongTool:
		return "wrong tool"
	case NoBenches:
		return "no benches"
	case WrongUnit:
		return "wrong unit"
	case NoRangeMarker:
		return "no range marker"
	}
	return "unknown reason"
}

// Check reports whether e conforms to the schema. It returns the first
// violated rule, checking tool, benches, units, and ranges in that
// order.
func Check(e *Entry) Reason {
	if e.Tool != Tool {
		return WrongTool
	}
	if len(e.Benches) == 0 {
		return NoBenches
	}
	for _, b := range e.Benches {
		if b.Unit != Unit {
			return WrongUnit
		}
	}
	for _, b := range e.Benches {
		if !strings.Contains(b.Range, RangeMarker) {
			return NoRangeMarker
		}
	}
	return OK
}

// A Verdict records the decision made about one entry.
type Verdict struct {
	Index   int // Position in the suite before curation
	Commit  string
	Tool    string
	Units   []string
	Benches int
	Reason  Reason
}

// Kept reports whether the entry was kept.
func (v Verdict) Kept() bool {
	return v.Reason == OK
}

// A Report describes the result of Curate.
type Report struct {
	Suite    string
	Verdicts []Verdict
	Kept     int
	Removed  int
}

// Curate removes the entries of suite that don't pass Check. Kept
// entries stay in their original order and are otherwise untouched.
// A missing suite is created empty.
func Curate(doc *Document, suite string) (*Report, error) {
	es, err := doc.Entries(suite)
	if err != nil {
		return nil, err
	}
	r := &Report{Suite: suite}
	kept := make([]*Entry, 0, len(es))
	for i, e := range es {
		v := Verdict{
			Index:   i,
			Commit:  e.ShortID(),
			Tool:    e.Tool,
			Units:   e.Units(),
			Benches: len(e.Benches),
			Reason:  Check(e),
		}
		r.Verdicts = append(r.Verdicts, v)
		if v.Kept() {
			kept = append(kept, e)
			r.Kept++
		} else {
			r.Removed++
		}
	}
	doc.SetEntries(suite, kept)
	return r, nil
}

// Clean decodes a history file, curates suite, and encodes the result.
func Clean(data []byte, suite string) ([]byte, *Report, error) {
	doc, err := Decode(data)
	if err != nil {
		return nil, nil, err
	}
	r, err := Curate(doc, suite)
	if err != nil {
		return nil, nil, err
	}
	out, err := Encode(doc)
	if err != nil {
		return nil, nil, err
	}
	return out, r, nil
}

// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchhist

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"unicode/utf8"
)

// An Entry is one benchmark run: the measurements recorded for one
// commit.
//
// The exported fields are a read-only view of the stored JSON. Fields
// that are not JSON strings are given as their JSON text, so a missing
// or mistyped field never matches an expected string.
type Entry struct {
	Commit  Commit
	Date    int64 // Milliseconds since the Unix epoch, or 0 if missing
	Tool    string
	Benches []Bench

	raw json.RawMessage
}

// A Commit identifies the commit an Entry measures.
type Commit struct {
	ID        string
	Message   string
	Timestamp string
	URL       string
}

// A Bench is one metric of an Entry.
type Bench struct {
	Name  string
	Unit  string
	Value float64 // NaN if the stored value is not a number
	Range string
	Extra string
}

// ShortID returns the first 7 characters of the commit ID, or
// "unknown" if the entry has no commit ID.
func (e *Entry) ShortID() string {
	id := e.Commit.ID
	if id == "" {
		return "unknown"
	}
	n := 0
	for i := range id {
		if n == 7 {
			return id[:i]
		}
		n++
	}
	return id
}

// Units returns the distinct units of e's benches in order of first
// appearance.
func (e *Entry) Units() []string {
	var units []string
	seen := make(map[string]bool)
	for _, b := range e.Benches {
		if !seen[b.Unit] {
			seen[b.Unit] = true
			units = append(units, b.Unit)
		}
	}
	return units
}

// JSON returns the stored JSON text of e.
func (e *Entry) JSON() json.RawMessage {
	return e.raw
}

type entryJSON struct {
	Commit  json.RawMessage   `json:"commit"`
	Date    json.RawMessage   `json:"date"`
	Tool    json.RawMessage   `json:"tool"`
	Benches []json.RawMessage `json:"benches"`
}

type commitJSON struct {
	ID        json.RawMessage `json:"id"`
	Message   json.RawMessage `json:"message"`
	Timestamp json.RawMessage `json:"timestamp"`
	URL       json.RawMessage `json:"url"`
}

type benchJSON struct {
	Name  json.RawMessage `json:"name"`
	Unit  json.RawMessage `json:"unit"`
	Value json.RawMessage `json:"value"`
	Range json.RawMessage `json:"range"`
	Extra json.RawMessage `json:"extra"`
}

func newEntry(raw json.RawMessage) (*Entry, error) {
	if !isObject(raw) {
		return nil, &FormatError{Msg: "entry is not an object"}
	}
	var ej entryJSON
	if err := json.Unmarshal(raw, &ej); err != nil {
		return nil, &FormatError{Msg: "decoding entry", Err: err}
	}
	e := &Entry{
		Tool: text(ej.Tool),
		raw:  raw,
	}
	if d, err := strconv.ParseInt(string(bytes.TrimSpace(ej.Date)), 10, 64); err == nil {
		e.Date = d
	} else if f, ok := number(ej.Date); ok {
		e.Date = int64(f)
	}

	if len(ej.Commit) > 0 && !isNull(ej.Commit) {
		if !isObject(ej.Commit) {
			return nil, &FormatError{Path: ".commit", Msg: "not an object"}
		}
		var cj commitJSON
		if err := json.Unmarshal(ej.Commit, &cj); err != nil {
			return nil, &FormatError{Path: ".commit", Msg: "decoding commit", Err: err}
		}
		e.Commit = Commit{
			ID:        text(cj.ID),
			Message:   text(cj.Message),
			Timestamp: text(cj.Timestamp),
			URL:       text(cj.URL),
		}
	}

	for i, rb := range ej.Benches {
		path := fmt.Sprintf(".benches[%d]", i)
		if !isObject(rb) {
			return nil, &FormatError{Path: path, Msg: "not an object"}
		}
		var bj benchJSON
		if err := json.Unmarshal(rb, &bj); err != nil {
			return nil, &FormatError{Path: path, Msg: "decoding bench", Err: err}
		}
		b := Bench{
			Name:  text(bj.Name),
			Unit:  text(bj.Unit),
			Value: math.NaN(),
			Range: text(bj.Range),
			Extra: text(bj.Extra),
		}
		if v, ok := number(bj.Value); ok {
			b.Value = v
		}
		e.Benches = append(e.Benches, b)
	}
	return e, nil
}

// text returns the value of a JSON string, or the JSON text of any
// other value. A missing value is "".
func text(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) > 0 && raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			return s
		}
	}
	if !utf8.Valid(raw) {
		return ""
	}
	return string(raw)
}

func number(raw json.RawMessage) (float64, bool) {
	var f float64
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || (raw[0] != '-' && (raw[0] < '0' || raw[0] > '9')) {
		return 0, false
	}
	if err := json.Unmarshal(raw, &f); err != nil {
		return 0, false
	}
	return f, true
}

func isObject(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) > 0 && raw[0] == '{'
}

func isNull(raw json.RawMessage) bool {
	return string(bytes.TrimSpace(raw)) == "null"
}

// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchhist

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// Prefix is the JavaScript assignment that wraps the JSON payload of a
// stored history file. Decode accepts any spacing around the "=";
// Encode always writes Prefix exactly.
const Prefix = "window.BENCHMARK_DATA = "

const assignTarget = "window.BENCHMARK_DATA"

// A FormatError reports a history file that violates the wrapper
// syntax or the expected JSON structure.
type FormatError struct {
	Path string // JSON path of the offending value, or "" for the file
	Msg  string
	Err  error // Underlying JSON error, if any
}

func (e *FormatError) Error() string {
	msg := e.Msg
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if e.Path == "" {
		return "benchmark data: " + msg
	}
	return "benchmark data: " + e.Path + ": " + msg
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// A Document is a decoded history file.
//
// Only the "entries" object is interpreted. Every other value,
// including the entries themselves, is kept as its original JSON text
// and written back unchanged (aside from indentation) in its original
// key order.
type Document struct {
	root    object
	entries object
}

// Decode decodes a history file of the form
//
//	window.BENCHMARK_DATA = {"entries": {"Benchmark": [...]}, ...}
//
// The JSON payload must be an object with an "entries" object. A
// trailing semicolon is accepted.
func Decode(data []byte) (*Document, error) {
	text := bytes.TrimSpace(data)
	if !bytes.HasPrefix(text, []byte(assignTarget)) {
		return nil, &FormatError{Msg: "missing " + assignTarget + " assignment"}
	}
	text = bytes.TrimLeft(text[len(assignTarget):], " \t")
	if len(text) == 0 || text[0] != '=' {
		return nil, &FormatError{Msg: "missing " + assignTarget + " assignment"}
	}
	payload := bytes.TrimSpace(text[1:])
	payload = bytes.TrimSpace(bytes.TrimSuffix(payload, []byte(";")))

	root, err := decodeObject(payload)
	if err != nil {
		return nil, &FormatError{Msg: "decoding payload", Err: err}
	}
	raw, ok := root.get("entries")
	if !ok {
		return nil, &FormatError{Msg: `missing "entries"`}
	}
	entries, err := decodeObject(raw)
	if err != nil {
		return nil, &FormatError{Path: "entries", Msg: "not an object", Err: err}
	}
	return &Document{root: root, entries: entries}, nil
}

// Encode encodes doc in the same form Decode accepts: Prefix, the JSON
// payload indented by two spaces, and a final newline.
func Encode(doc *Document) ([]byte, error) {
	entries, err := doc.entries.marshal()
	if err != nil {
		return nil, err
	}
	root := append(object(nil), doc.root...)
	root.set("entries", entries)
	compact, err := root.marshal()
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.WriteString(Prefix)
	if err := json.Indent(&buf, compact, "", "  "); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// Suites returns the names of the benchmark suites in doc, in file
// order. github-action-benchmark files a run under the name given to
// the action, which defaults to "Benchmark".
func (doc *Document) Suites() []string {
	names := make([]string, len(doc.entries))
	for i, m := range doc.entries {
		names[i] = m.Key
	}
	return names
}

// Entries returns the entries of suite, in order. A missing suite
// has no entries.
func (doc *Document) Entries(suite string) ([]*Entry, error) {
	raw, ok := doc.entries.get(suite)
	if !ok {
		return nil, nil
	}
	path := "entries." + suite
	var raws []json.RawMessage
	if err := json.Unmarshal(raw, &raws); err != nil {
		return nil, &FormatError{Path: path, Msg: "not an array", Err: err}
	}
	es := make([]*Entry, 0, len(raws))
	for i, r := range raws {
		e, err := newEntry(r)
		if err != nil {
			var fe *FormatError
			if errors.As(err, &fe) {
				fe.Path = fmt.Sprintf("%s[%d]%s", path, i, fe.Path)
			}
			return nil, err
		}
		es = append(es, e)
	}
	return es, nil
}

// SetEntries replaces the entries of suite, adding the suite if it
// is missing. The entries must have been returned by Entries.
func (doc *Document) SetEntries(suite string, es []*Entry) {
	// Not json.Marshal, which would escape HTML characters in the
	// stored entries.
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, e := range es {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.Write(e.raw)
	}
	buf.WriteByte(']')
	doc.entries.set(suite, buf.Bytes())
}

// An object is a JSON object that remembers the order of its keys.
type object []member

type member struct {
	Key   string
	Value json.RawMessage
}

func decodeObject(data []byte) (object, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if tok != json.Delim('{') {
		return nil, fmt.Errorf("expected object, found %s", describe(tok))
	}
	var o object
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key := tok.(string)
		var val json.RawMessage
		if err := dec.Decode(&val); err != nil {
			return nil, err
		}
		o.set(key, val)
	}
	// Consume the closing brace, then make sure nothing follows it.
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	if tok, err := dec.Token(); err != io.EOF {
		if err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("unexpected %s after object", describe(tok))
	}
	return o, nil
}

func describe(tok json.Token) string {
	switch tok := tok.(type) {
	case json.Delim:
		return fmt.Sprintf("%q", rune(tok))
	case string:
		return "string"
	case nil:
		return "null"
	}
	return fmt.Sprintf("%T", tok)
}

func (o object) get(key string) (json.RawMessage, bool) {
	for _, m := range o {
		if m.Key == key {
			return m.Value, true
		}
	}
	return nil, false
}

// set replaces the value of key in place, or appends key. A repeated
// key in the input keeps its first position and its last value.
func (o *object) set(key string, val json.RawMessage) {
	for i := range *o {
		if (*o)[i].Key == key {
			(*o)[i].Value = val
			return
		}
	}
	*o = append(*o, member{key, val})
}

// marshal returns o as compact JSON.
func (o object) marshal() (json.RawMessage, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, m := range o {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeString(&buf, m.Key); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		if err := json.Compact(&buf, m.Value); err != nil {
			return nil, fmt.Errorf("value of %q: %w", m.Key, err)
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// writeString writes s as a JSON string without escaping HTML
// characters.
func writeString(buf *bytes.Buffer, s string) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return err
	}
	// Drop the newline Encode adds.
	buf.Truncate(buf.Len() - 1)
	return nil
}

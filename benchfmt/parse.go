// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchfmt

import (
	"strconv"
	"strings"

	"github.com/uselessgoddess/dunes-perf/benchunit"
)

// Parse returns the measurements in report text, in the order they
// appear.
//
// If text contains any range-format measurement, only range-format
// measurements are returned. Otherwise Parse returns the legacy-format
// measurements. Text that matches neither grammar is ignored, so a
// report with no measurements yields an empty result rather than an
// error.
func Parse(text []byte) []Measurement {
	toks := tokenize(text)
	if ms := scan(toks, parseRange); len(ms) > 0 {
		return ms
	}
	return scan(toks, parseLegacy)
}

// A grammar attempts to parse one measurement starting at a token.
// On success it returns the index just past the measurement.
type grammar func(c *cursor) Measurement

// scan applies g at every token, skipping over each match so that
// matches don't overlap.
func scan(toks []tok, g grammar) []Measurement {
	var ms []Measurement
	for i := 0; i < len(toks); {
		c := &cursor{toks: toks, i: i, ok: true}
		if m := g(c); c.ok {
			ms = append(ms, m)
			i = c.i
			continue
		}
		i++
	}
	return ms
}

// parseRange parses
//
//	name "time:" "[" number unit number unit number unit "]"
func parseRange(c *cursor) Measurement {
	off := c.off()
	name := c.word()
	c.space().lit("time").glue().punct(':')
	c.space().punct('[').glue()
	low := c.time()
	c.space()
	mid := c.time()
	c.space()
	high := c.time()
	c.glue().punct(']')
	if !c.ok {
		return nil
	}
	return &Range{Name: name, Low: low, Mid: mid, High: high, off: off}
}

// parseLegacy parses
//
//	"test" name "..." "bench:" number "ns/iter" "(+/-" number ")"
func parseLegacy(c *cursor) Measurement {
	off := c.off()
	c.lit("test")
	name := c.space().word()
	c.space().punct('.').glue().punct('.').glue().punct('.')
	c.space().lit("bench").glue().punct(':')
	avg := c.space().number(true)
	c.space().lit("ns").glue().punct('/').glue().lit("iter")
	c.space().punct('(').glue().punct('+').glue().punct('/').glue().punct('-')
	dev := c.space().number(true)
	c.glue().punct(')')
	if !c.ok {
		return nil
	}
	return &Legacy{Name: name, Time: avg, Variance: dev, off: off}
}

// A cursor walks a token slice. Once any step fails, ok is false and
// every later step is a no-op, so a grammar can be written as a
// straight sequence of steps and checked once at the end.
type cursor struct {
	toks []tok
	i    int
	ok   bool
}

func (c *cursor) peek() *tok {
	if !c.ok || c.i >= len(c.toks) {
		return nil
	}
	return &c.toks[c.i]
}

func (c *cursor) fail() {
	c.ok = false
}

func (c *cursor) off() int {
	if t := c.peek(); t != nil {
		return t.Off
	}
	return 0
}

// space requires white space before the next token.
func (c *cursor) space() *cursor {
	if t := c.peek(); t == nil || !t.Space {
		c.fail()
	}
	return c
}

// glue requires the next token to follow the previous one directly.
func (c *cursor) glue() *cursor {
	if t := c.peek(); t == nil || t.Space {
		c.fail()
	}
	return c
}

func (c *cursor) word() string {
	t := c.peek()
	if t == nil || t.Kind != 'w' {
		c.fail()
		return ""
	}
	c.i++
	return t.Tok
}

func (c *cursor) lit(s string) *cursor {
	if c.word() != s {
		c.fail()
	}
	return c
}

func (c *cursor) punct(ch byte) *cursor {
	t := c.peek()
	if t == nil || t.Kind != ch || ch == 'w' {
		c.fail()
		return c
	}
	c.i++
	return c
}

// gluedPunctDigits reports whether the next two tokens are ch and a
// digit run, with nothing between them and the previous token.
func (c *cursor) gluedPunctDigits(ch byte) bool {
	if !c.ok || c.i+1 >= len(c.toks) {
		return false
	}
	p, d := c.toks[c.i], c.toks[c.i+1]
	return p.Kind == ch && !p.Space && d.Kind == 'w' && !d.Space && isDigits(d.Tok)
}

// number parses a decimal number of the form 123.45. If commas is
// set, the integer part may contain "," digit group separators, as in
// 2,715.35.
func (c *cursor) number(commas bool) float64 {
	var b strings.Builder
	d := c.word()
	if !isDigits(d) {
		c.fail()
		return 0
	}
	b.WriteString(d)
	for commas && c.gluedPunctDigits(',') {
		c.i++
		b.WriteString(c.word())
	}
	if c.gluedPunctDigits('.') {
		c.i++
		b.WriteByte('.')
		b.WriteString(c.word())
	}
	if !c.ok {
		return 0
	}
	v, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		c.fail()
		return 0
	}
	return v
}

// time parses a number followed by a time unit symbol.
func (c *cursor) time() Time {
	v := c.number(false)
	sym := c.space().word()
	unit, ok := benchunit.ParseTimeUnit(sym)
	if !ok {
		c.fail()
	}
	return Time{v, unit}
}

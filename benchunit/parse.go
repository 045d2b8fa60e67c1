// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchunit manipulates benchmark units and formats numbers
// in those units.
//
// Two unit families appear in benchmark reports: elapsed time, as in
// "ns/iter" or the "µs" of a criterion interval, and throughput, as in
// "M links/sec". Time values are normalized to nanoseconds with
// ToNanoseconds. Throughput values are normalized to unprefixed base
// units with Tidy.
package benchunit

import (
	"fmt"
	"unicode"
)

// A TimeUnit is a unit of elapsed time that may appear in a
// benchmark report.
type TimeUnit int

const (
	Nanosecond TimeUnit = iota
	Microsecond
	Millisecond
	Second
)

func (u TimeUnit) String() string {
	switch u {
	case Nanosecond:
		return "ns"
	case Microsecond:
		return "µs"
	case Millisecond:
		return "ms"
	case Second:
		return "s"
	}
	return fmt.Sprintf("TimeUnit(%d)", int(u))
}

// Nanoseconds returns the number of nanoseconds in one u.
func (u TimeUnit) Nanoseconds() float64 {
	switch u {
	case Microsecond:
		return 1e3
	case Millisecond:
		return 1e6
	case Second:
		return 1e9
	}
	return 1
}

// ParseTimeUnit parses a time unit symbol. Both the micro sign
// (U+00B5) and the Greek letter mu (U+03BC) are accepted for
// microseconds, as is the ASCII spelling "us".
func ParseTimeUnit(sym string) (TimeUnit, bool) {
	switch sym {
	case "ns":
		return Nanosecond, true
	case "µs", "μs", "us":
		return Microsecond, true
	case "ms":
		return Millisecond, true
	case "s":
		return Second, true
	}
	return 0, false
}

// ToNanoseconds converts value in unit to nanoseconds. unit may be a
// bare time symbol such as "µs" or a per-operation unit such as
// "ns/iter"; in the latter case the first numerator token determines
// the scale. ok is false if unit has no recognized time numerator.
func ToNanoseconds(value float64, unit string) (ns float64, ok bool) {
	p := newParser(unit)
	if !p.next() || p.denom {
		return 0, false
	}
	u, ok := ParseTimeUnit(p.tok)
	if !ok {
		return 0, false
	}
	return value * u.Nanoseconds(), true
}

type parser struct {
	rest string // unparsed unit
	rpos int    // byte consumed from original unit

	// Current token
	tok   string
	pos   int  // byte offset of tok in original unit
	denom bool // current token is in denominator
}

func newParser(unit string) *parser {
	return &parser{rest: unit}
}

func (p *parser) next() bool {
	// Consume separators.
	for i, r := range p.rest {
		if r == '*' {
			p.denom = false
		} else if r == '/' {
			p.denom = true
		} else if !(r == '-' || unicode.IsSpace(r)) {
			p.rpos += i
			p.rest = p.rest[i:]
			goto tok
		}
	}
	// End of string.
	p.rest = ""
	return false

tok:
	// Consume until separator.
	end := len(p.rest)
	for i, r := range p.rest {
		if r == '*' || r == '/' || r == '-' || unicode.IsSpace(r) {
			end = i
			break
		}
	}
	p.tok = p.rest[:end]
	p.pos = p.rpos
	p.rpos += end
	p.rest = p.rest[end:]
	return true
}

// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchconv

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// An Operation is the workload a tree benchmark runs n times.
type Operation int

const (
	UnknownOperation Operation = iota
	// InsertOnly inserts n elements.
	InsertOnly
	// InsertSearch inserts n elements and then searches for each.
	InsertSearch
	// InsertRemove inserts n elements and then removes each.
	InsertRemove
)

// String returns the category label used in chart names.
func (o Operation) String() string {
	switch o {
	case UnknownOperation:
		return "Unknown"
	case InsertOnly:
		return "Insert Only"
	case InsertSearch:
		return "Insert + Search"
	case InsertRemove:
		return "Insert + Remove"
	}
	return fmt.Sprintf("Operation(%d)", int(o))
}

// Multiplier returns the number of operations performed per element.
func (o Operation) Multiplier() int {
	switch o {
	case InsertSearch, InsertRemove:
		return 2
	}
	return 1
}

// A Family is the tree implementation a benchmark exercises.
type Family int

const (
	UnknownFamily Family = iota
	SBT                  // size-balanced tree, names prefixed "sbt_"
	ART                  // adaptive radix tree, names prefixed "art_"
)

func (f Family) String() string {
	switch f {
	case UnknownFamily:
		return "unknown"
	case SBT:
		return "SBT"
	case ART:
		return "ART"
	}
	return fmt.Sprintf("Family(%d)", int(f))
}

var familyPrefixes = map[string]Family{
	"sbt": SBT,
	"art": ART,
}

// operationPatterns lists the underscore-separated word sequences that
// name each operation.
var operationPatterns = []struct {
	words []string
	op    Operation
}{
	{[]string{"insert"}, InsertOnly},
	{[]string{"insert", "search"}, InsertSearch},
	{[]string{"full", "cycle"}, InsertRemove},
}

// A Class is the classification of a benchmark name.
type Class struct {
	N      int // Operand count, from the trailing _<n> suffix
	Op     Operation
	Family Family
}

// Ops returns the total number of operations the benchmark performs.
func (c Class) Ops() int {
	return c.N * c.Op.Multiplier()
}

// Classify classifies a benchmark name such as "sbt_insert_search_100".
// It returns false if name has no trailing "_<digits>" suffix, or if the
// operation count would overflow an int.
//
// The family comes from the first word. The operation is the longest
// run of words anywhere before the suffix that spells an operation
// pattern; if two patterns of the same length appear, the earlier one
// wins. The result doesn't depend on the order of the pattern table.
func Classify(name string) (Class, bool) {
	words := strings.Split(name, "_")
	if len(words) < 2 {
		return Class{}, false
	}
	suffix := words[len(words)-1]
	if !isDigits(suffix) {
		return Class{}, false
	}
	n, err := strconv.Atoi(suffix)
	if err != nil {
		return Class{}, false
	}
	words = words[:len(words)-1]

	c := Class{N: n, Op: operationOf(words), Family: familyPrefixes[words[0]]}
	if c.N > math.MaxInt/c.Op.Multiplier() {
		return Class{}, false
	}
	return c, true
}

func operationOf(words []string) Operation {
	best, bestLen, bestPos := UnknownOperation, 0, 0
	for _, pat := range operationPatterns {
		for pos := 0; pos+len(pat.words) <= len(words); pos++ {
			if !equalWords(words[pos:pos+len(pat.words)], pat.words) {
				continue
			}
			if len(pat.words) > bestLen || (len(pat.words) == bestLen && pos < bestPos) {
				best, bestLen, bestPos = pat.op, len(pat.words), pos
			}
			break
		}
	}
	return best
}

func equalWords(a, b []string) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

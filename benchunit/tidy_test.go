// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchunit

import "testing"

func TestTidy(t *testing.T) {
	test := func(unit, tidied string, factor float64) {
		t.Helper()
		gotFactor, got := Tidy(1, unit)
		if got != tidied || gotFactor != factor {
			t.Errorf("for %s, want *%f %s, got *%f %s", unit, factor, tidied, gotFactor, got)
		}
	}

	test("M links/sec", "links/sec", 1e6)
	test("links/sec", "links/sec", 1)
	test("k links/sec", "links/sec", 1e3)
	test("G ops/sec", "ops/sec", 1e9)
	test("ns/iter", "sec/iter", 1e-9)
	test("x-ns/iter", "x-sec/iter", 1e-9)
	test("sec/iter", "sec/iter", 1)

	// Prefixes only apply in front of another numerator word.
	test("M", "M", 1)
	test("M/sec", "M/sec", 1)
	test("links/M", "links/M", 1)
	test("iter/ns", "iter/ns", 1)
	test("MB/s", "MB/s", 1)
}

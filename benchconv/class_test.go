// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchconv

import (
	"strconv"
	"testing"
)

func TestClassify(t *testing.T) {
	test := func(name string, want Class) {
		t.Helper()
		got, ok := Classify(name)
		if !ok {
			t.Errorf("%s: not classified, want %+v", name, want)
		} else if got != want {
			t.Errorf("%s: got %+v, want %+v", name, got, want)
		}
	}
	test("sbt_insert_100", Class{100, InsertOnly, SBT})
	test("sbt_insert_search_1000", Class{1000, InsertSearch, SBT})
	test("sbt_full_cycle_10000", Class{10000, InsertRemove, SBT})
	test("art_insert_100", Class{100, InsertOnly, ART})
	test("treap_insert_search_100", Class{100, InsertSearch, UnknownFamily})
	test("insert_7", Class{7, InsertOnly, UnknownFamily})
	test("sbt_lookup_100", Class{100, UnknownOperation, SBT})
	test("sbt_insert_0100", Class{100, InsertOnly, SBT})

	// The longest pattern wins regardless of position.
	test("sbt_insert_then_full_cycle_5", Class{5, InsertRemove, SBT})
	// Equal lengths: the earlier one wins.
	test("sbt_full_cycle_insert_search_5", Class{5, InsertRemove, SBT})
	test("sbt_insert_search_full_cycle_5", Class{5, InsertSearch, SBT})

	// Only whole words count.
	test("sbt_reinsert_100", Class{100, UnknownOperation, SBT})
	test("sbtx_insert_100", Class{100, InsertOnly, UnknownFamily})
}

func TestClassifyRejects(t *testing.T) {
	for _, name := range []string{
		"", "sbt_insert", "sbt_insert_", "sbt_insert_10x", "100",
		"sbt_insert_-1", "sbt_insert_1.5",
		"sbt_insert_search_" + strconv.Itoa(int(^uint(0)>>1)),
		"sbt_insert_99999999999999999999999",
	} {
		if c, ok := Classify(name); ok {
			t.Errorf("%q: got %+v, want rejection", name, c)
		}
	}
}

func TestOperation(t *testing.T) {
	type testCase struct {
		op    Operation
		label string
		mult  int
	}
	for _, test := range []testCase{
		{InsertOnly, "Insert Only", 1},
		{InsertSearch, "Insert + Search", 2},
		{InsertRemove, "Insert + Remove", 2},
		{UnknownOperation, "Unknown", 1},
	} {
		if got := test.op.String(); got != test.label {
			t.Errorf("got %q, want %q", got, test.label)
		}
		if got := test.op.Multiplier(); got != test.mult {
			t.Errorf("%s: got multiplier %d, want %d", test.op, got, test.mult)
		}
	}
}

func TestFamilyString(t *testing.T) {
	for f, want := range map[Family]string{
		SBT:           "SBT",
		ART:           "ART",
		UnknownFamily: "unknown",
		Family(7):     "Family(7)",
	} {
		if got := f.String(); got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	}
}

func TestOpsTotal(t *testing.T) {
	c, _ := Classify("sbt_insert_search_100")
	if c.Ops() != 200 {
		t.Errorf("got %d ops, want 200", c.Ops())
	}
	c, _ = Classify("sbt_insert_100")
	if c.Ops() != 100 {
		t.Errorf("got %d ops, want 100", c.Ops())
	}
}

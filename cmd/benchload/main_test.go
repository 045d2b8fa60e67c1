// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/uselessgoddess/dunes-perf/benchhist"
	"github.com/uselessgoddess/dunes-perf/storage/db/dbtest"
)

func TestLoad(t *testing.T) {
	ctx := context.Background()
	data, err := os.ReadFile(filepath.Join("testdata", "data.js"))
	if err != nil {
		t.Fatal(err)
	}
	doc, err := benchhist.Decode(data)
	if err != nil {
		t.Fatal(err)
	}
	es, err := doc.Entries(benchhist.DefaultSuite)
	if err != nil {
		t.Fatal(err)
	}
	d := dbtest.NewDB(t)

	st, err := load(ctx, d, es)
	if err != nil {
		t.Fatal(err)
	}
	if want := (loadStats{loaded: 2, rejected: 4}); st != want {
		t.Errorf("first load: got %+v, want %+v", st, want)
	}

	// Loading again adds nothing.
	st, err = load(ctx, d, es)
	if err != nil {
		t.Fatal(err)
	}
	if want := (loadStats{stored: 2, rejected: 4}); st != want {
		t.Errorf("second load: got %+v, want %+v", st, want)
	}

	n, err := d.CountEntries(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Errorf("CountEntries = %d, want 2", n)
	}
	vals, err := d.Series(ctx, "Insert Only (100 elements)")
	if err != nil {
		t.Fatal(err)
	}
	if len(vals) != 2 || vals[0].Value != 36.19 || vals[1].Value != 37.02 {
		t.Errorf("got series %+v", vals)
	}
	if vals[0].CommitID != "2c3d4e5f60718293a4b5c6d7e8f9012345678a1b" || vals[0].Range != "± 0.66" {
		t.Errorf("got first value %+v", vals[0])
	}
}

// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package db_test

import (
	"context"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/uselessgoddess/dunes-perf/benchhist"
	. "github.com/uselessgoddess/dunes-perf/storage/db"
	"github.com/uselessgoddess/dunes-perf/storage/db/dbtest"
)

func entry(id string, date int64, benches ...benchhist.Bench) *benchhist.Entry {
	return &benchhist.Entry{
		Commit:  benchhist.Commit{ID: id},
		Date:    date,
		Tool:    benchhist.Tool,
		Benches: benches,
	}
}

func TestInsertEntry(t *testing.T) {
	ctx := context.Background()
	db := dbtest.NewDB(t)

	entries := []*benchhist.Entry{
		entry("aaaa", 1000,
			benchhist.Bench{Name: "Insert Only (100 elements)", Unit: benchhist.Unit, Value: 36.19, Range: "± 0.66"},
			benchhist.Bench{Name: "Insert + Search (100 elements)", Unit: benchhist.Unit, Value: 72.37, Range: "± 1.32"}),
		entry("bbbb", 2000,
			benchhist.Bench{Name: "Insert Only (100 elements)", Unit: benchhist.Unit, Value: math.NaN(), Range: "± 0.41"}),
	}
	var ids []int64
	for _, e := range entries {
		id, err := db.InsertEntry(ctx, e)
		if err != nil {
			t.Fatalf("InsertEntry: %v", err)
		}
		ids = append(ids, id)
	}
	if ids[0] >= ids[1] {
		t.Errorf("entry IDs %v are not increasing", ids)
	}

	n, err := db.CountEntries(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Errorf("CountEntries = %d, want 2", n)
	}

	got, err := db.Series(ctx, "Insert Only (100 elements)")
	if err != nil {
		t.Fatal(err)
	}
	want := []Value{
		{EntryID: ids[0], CommitID: "aaaa", Date: 1000, Unit: benchhist.Unit, Value: 36.19, Range: "± 0.66"},
		{EntryID: ids[1], CommitID: "bbbb", Date: 2000, Unit: benchhist.Unit, Value: math.NaN(), Range: "± 0.41"},
	}
	if diff := cmp.Diff(want, got, cmpopts.EquateNaNs()); diff != "" {
		t.Errorf("Series mismatch (-want +got):\n%s", diff)
	}

	got, err = db.Series(ctx, "no such benchmark")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("got %d values for a missing benchmark", len(got))
	}
}

func TestHasCommit(t *testing.T) {
	ctx := context.Background()
	db := dbtest.NewDB(t)

	if _, err := db.InsertEntry(ctx, entry("aaaa", 0)); err != nil {
		t.Fatal(err)
	}
	for id, want := range map[string]bool{"aaaa": true, "bbbb": false, "": false} {
		got, err := db.HasCommit(ctx, id)
		if err != nil {
			t.Fatal(err)
		}
		if got != want {
			t.Errorf("HasCommit(%q) = %v, want %v", id, got, want)
		}
	}
}

func TestForeignKeys(t *testing.T) {
	db := dbtest.NewDB(t)
	_, err := DBSQL(db).Exec("INSERT INTO Benches(EntryID, BenchIndex, Name, Unit, Value, ValueRange) VALUES (42, 0, 'x', 'y', 1, '')")
	if err == nil {
		t.Fatal("inserted a bench without an entry")
	}
}

func TestInsertEntryRollback(t *testing.T) {
	ctx := context.Background()
	db := dbtest.NewDB(t)

	ctx2, cancel := context.WithCancel(ctx)
	cancel()
	if _, err := db.InsertEntry(ctx2, entry("aaaa", 0)); err == nil {
		t.Fatal("InsertEntry succeeded with a canceled context")
	}
	n, err := db.CountEntries(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Errorf("CountEntries = %d after a failed insert, want 0", n)
	}
}

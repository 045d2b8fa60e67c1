// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dbtest opens databases for tests of storage/db and its users.
package dbtest

import (
	"context"
	"testing"

	"github.com/uselessgoddess/dunes-perf/storage/db"
	_ "github.com/uselessgoddess/dunes-perf/storage/db/sqlite3"
)

// NewDB makes a connection to an empty in-memory sqlite3 database.
// The database is closed when the test finishes.
func NewDB(t *testing.T) *db.DB {
	t.Helper()
	d, err := db.OpenSQL("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() { d.Close() })

	// Make sure the database really is empty.
	n, err := d.CountEntries(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Fatalf("found %d row(s) in Entries, want 0", n)
	}
	return d
}

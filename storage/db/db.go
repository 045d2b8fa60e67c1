// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package db stores curated benchmark history in a SQL database.
package db

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"math"
	"strings"
	"text/template"

	"github.com/uselessgoddess/dunes-perf/benchhist"
)

// DB is a high-level interface to a benchmark history database. It's
// safe for concurrent use by multiple goroutines.
type DB struct {
	sql *sql.DB // underlying database connection
	// prepared statements
	insertEntry *sql.Stmt
	insertBench *sql.Stmt
}

// OpenSQL creates a DB backed by a SQL database. The parameters are
// the same as the parameters for sql.Open. Only mysql and sqlite3 are
// explicitly supported; other database engines will receive MySQL
// query syntax which may or may not be compatible.
func OpenSQL(driverName, dataSourceName string) (*DB, error) {
	db, err := sql.Open(driverName, dataSourceName)
	if err != nil {
		return nil, err
	}
	if hook := openHooks[driverName]; hook != nil {
		if err := hook(db); err != nil {
			db.Close()
			return nil, err
		}
	}
	d := &DB{sql: db}
	if err := d.createTables(driverName); err != nil {
		db.Close()
		return nil, err
	}
	if err := d.prepareStatements(); err != nil {
		db.Close()
		return nil, err
	}
	return d, nil
}

var openHooks = make(map[string]func(*sql.DB) error)

// RegisterOpenHook registers a hook to be called after opening a connection to driverName.
// This is used by the sqlite3 package to configure its connections.
// It must be called from an init function.
func RegisterOpenHook(driverName string, hook func(*sql.DB) error) {
	openHooks[driverName] = hook
}

// createTmpl is the template used to prepare the CREATE statements
// for the database. It is evaluated with . as a map containing one
// entry whose key is the driver name.
var createTmpl = template.Must(template.New("create").Parse(`
CREATE TABLE IF NOT EXISTS Entries (
	EntryID {{if .sqlite3}}INTEGER PRIMARY KEY AUTOINCREMENT{{else}}SERIAL PRIMARY KEY AUTO_INCREMENT{{end}},
	CommitID VARCHAR(64) NOT NULL,
	Tool VARCHAR(255) NOT NULL,
	Date BIGINT NOT NULL{{if not .sqlite3}},
	Index (CommitID){{end}}
);
CREATE TABLE IF NOT EXISTS Benches (
	EntryID BIGINT UNSIGNED NOT NULL,
	BenchIndex INT NOT NULL,
	Name VARCHAR(255) NOT NULL,
	Unit VARCHAR(64) NOT NULL,
	Value DOUBLE,
	ValueRange VARCHAR(255) NOT NULL,
	PRIMARY KEY (EntryID, BenchIndex),
{{if not .sqlite3}}
	Index (Name),
{{end}}
	FOREIGN KEY (EntryID) REFERENCES Entries(EntryID) ON UPDATE CASCADE ON DELETE CASCADE
);
{{if .sqlite3}}
CREATE INDEX IF NOT EXISTS EntriesCommitID ON Entries(CommitID);
CREATE INDEX IF NOT EXISTS BenchesName ON Benches(Name);
{{end}}
`))

// createTables creates any missing tables on the connection in
// db.sql. driverName is the same driver name passed to sql.Open and
// is used to select the correct syntax.
func (db *DB) createTables(driverName string) error {
	var buf bytes.Buffer
	if err := createTmpl.Execute(&buf, map[string]bool{driverName: true}); err != nil {
		return err
	}
	for _, q := range strings.Split(buf.String(), ";") {
		if strings.TrimSpace(q) == "" {
			continue
		}
		if _, err := db.sql.Exec(q); err != nil {
			return fmt.Errorf("create table: %w", err)
		}
	}
	return nil
}

// prepareStatements calls db.sql.Prepare on reusable SQL statements.
func (db *DB) prepareStatements() error {
	var err error
	db.insertEntry, err = db.sql.Prepare("INSERT INTO Entries(CommitID, Tool, Date) VALUES (?, ?, ?)")
	if err != nil {
		return err
	}
	db.insertBench, err = db.sql.Prepare("INSERT INTO Benches(EntryID, BenchIndex, Name, Unit, Value, ValueRange) VALUES (?, ?, ?, ?, ?, ?)")
	if err != nil {
		return err
	}
	return nil
}

// InsertEntry stores e and its benches in a single transaction and
// returns the new entry's ID. Bench values that are not numbers are
// stored as NULL.
func (db *DB) InsertEntry(ctx context.Context, e *benchhist.Entry) (id int64, err error) {
	tx, err := db.sql.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()

	res, err := tx.StmtContext(ctx, db.insertEntry).ExecContext(ctx, e.Commit.ID, e.Tool, e.Date)
	if err != nil {
		return 0, err
	}
	id, err = res.LastInsertId()
	if err != nil {
		return 0, err
	}
	insertBench := tx.StmtContext(ctx, db.insertBench)
	for i, b := range e.Benches {
		val := sql.NullFloat64{Float64: b.Value, Valid: !math.IsNaN(b.Value) && !math.IsInf(b.Value, 0)}
		if _, err = insertBench.ExecContext(ctx, id, i, b.Name, b.Unit, val, b.Range); err != nil {
			return 0, err
		}
	}
	return id, nil
}

// HasCommit reports whether an entry for commit id is stored.
func (db *DB) HasCommit(ctx context.Context, id string) (bool, error) {
	var n int
	err := db.sql.QueryRowContext(ctx, "SELECT COUNT(*) FROM Entries WHERE CommitID = ?", id).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// CountEntries returns the number of stored entries.
func (db *DB) CountEntries(ctx context.Context) (int, error) {
	var n int
	err := db.sql.QueryRowContext(ctx, "SELECT COUNT(*) FROM Entries").Scan(&n)
	return n, err
}

// A Value is one stored value of a named benchmark.
type Value struct {
	EntryID  int64
	CommitID string
	Date     int64 // Milliseconds since the Unix epoch
	Unit     string
	Value    float64 // NaN if stored as NULL
	Range    string
}

// Series returns the stored values of the benchmark called name, in
// insertion order.
func (db *DB) Series(ctx context.Context, name string) ([]Value, error) {
	rows, err := db.sql.QueryContext(ctx, `
SELECT e.EntryID, e.CommitID, e.Date, b.Unit, b.Value, b.ValueRange
FROM Benches b JOIN Entries e ON b.EntryID = e.EntryID
WHERE b.Name = ?
ORDER BY e.EntryID, b.BenchIndex`, name)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var vals []Value
	for rows.Next() {
		var v Value
		var val sql.NullFloat64
		if err := rows.Scan(&v.EntryID, &v.CommitID, &v.Date, &v.Unit, &val, &v.Range); err != nil {
			return nil, err
		}
		v.Value = math.NaN()
		if val.Valid {
			v.Value = val.Float64
		}
		vals = append(vals, v)
	}
	return vals, rows.Err()
}

// Close closes the database connections, releasing any open resources.
func (db *DB) Close() error {
	if err := db.insertEntry.Close(); err != nil {
		return err
	}
	if err := db.insertBench.Close(); err != nil {
		return err
	}
	return db.sql.Close()
}

// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Benchload loads the entries of a github-action-benchmark history
// file (data.js) into a SQL database.
//
// Usage:
//
//	benchload [-suite name] [-driver sqlite3|mysql] [-dsn dsn] data.js
//
// Only entries that benchclean would keep are loaded. Entries for
// commits already in the database are skipped, so loading the same
// file twice adds nothing the second time.
//
// The driver and data source default to $BENCH_DB_DRIVER and
// $BENCH_DB_DSN, which may also be set in a .env file in the current
// directory.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	_ "github.com/go-sql-driver/mysql"

	"github.com/uselessgoddess/dunes-perf/benchhist"
	"github.com/uselessgoddess/dunes-perf/internal/config"
	"github.com/uselessgoddess/dunes-perf/storage/db"
	_ "github.com/uselessgoddess/dunes-perf/storage/db/sqlite3"
)

var exit = os.Exit // replaced during testing

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), "usage: benchload [options] data.js\n")
	fmt.Fprintf(flag.CommandLine.Output(), "options:\n")
	flag.PrintDefaults()
	exit(2)
}

var (
	flagSuite  = flag.String("suite", "", "benchmark `suite` to load (default $BENCH_SUITE or Benchmark)")
	flagDriver = flag.String("driver", "", "database/sql `driver` (default $BENCH_DB_DRIVER or sqlite3)")
	flagDSN    = flag.String("dsn", "", "data source `name` (default $BENCH_DB_DSN or benchmarks.db)")
)

func main() {
	log.SetPrefix("benchload: ")
	log.SetFlags(0)
	flag.Usage = usage
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	if *flagSuite != "" {
		cfg.Suite = *flagSuite
	}
	if *flagDriver != "" {
		cfg.DBDriver = *flagDriver
	}
	if *flagDSN != "" {
		cfg.DBDSN = *flagDSN
	}

	data, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		log.Fatal(err)
	}
	doc, err := benchhist.Decode(data)
	if err != nil {
		log.Fatalf("%s: %v", flag.Arg(0), err)
	}
	es, err := doc.Entries(cfg.Suite)
	if err != nil {
		log.Fatalf("%s: %v", flag.Arg(0), err)
	}

	d, err := db.OpenSQL(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer d.Close()

	st, err := load(context.Background(), d, es)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("loaded %d entries, skipped %d stored and %d nonconforming", st.loaded, st.stored, st.rejected)
}

type loadStats struct {
	loaded   int // newly inserted
	stored   int // commit already in the database
	rejected int // failed benchhist.Check
}

// load inserts the conforming entries of es whose commits aren't yet
// in d.
func load(ctx context.Context, d *db.DB, es []*benchhist.Entry) (loadStats, error) {
	var st loadStats
	for _, e := range es {
		if benchhist.Check(e) != benchhist.OK {
			st.rejected++
			continue
		}
		ok, err := d.HasCommit(ctx, e.Commit.ID)
		if err != nil {
			return st, err
		}
		if ok {
			st.stored++
			continue
		}
		if _, err := d.InsertEntry(ctx, e); err != nil {
			return st, fmt.Errorf("inserting %s: %w", e.ShortID(), err)
		}
		st.loaded++
	}
	return st, nil
}

// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchseries

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"time"
)

type CSVOptions int

const (
	CSVPlain  CSVOptions = 0
	CSVSpread CSVOptions = 1 // Add a "±" column after each benchmark
)

// WriteCSV writes series as one table with a row per history entry
// and a column per series. Entries in which a series has no value
// leave its cells empty.
func WriteCSV(out io.Writer, series []*Series, options CSVOptions) error {
	hdr := []string{"commit", "date"}
	for _, s := range series {
		hdr = append(hdr, fmt.Sprintf("%s [%s]", s.Name, s.Unit))
		if options&CSVSpread != 0 {
			hdr = append(hdr, "±")
		}
	}

	width := 1
	if options&CSVSpread != 0 {
		width = 2
	}
	rows := make(map[int][]string)
	for j, s := range series {
		for _, p := range s.Points {
			row := rows[p.Index]
			if row == nil {
				row = make([]string, 2+width*len(series))
				row[0] = p.Commit
				if !p.Date.IsZero() {
					row[1] = p.Date.Format(time.RFC3339)
				}
				rows[p.Index] = row
			}
			col := 2 + width*j
			row[col] = strof(p.Value)
			if options&CSVSpread != 0 {
				row[col+1] = strof(p.Spread)
			}
		}
	}
	indexes := make([]int, 0, len(rows))
	for i := range rows {
		indexes = append(indexes, i)
	}
	sort.Ints(indexes)

	tab := [][]string{hdr}
	for _, i := range indexes {
		tab = append(tab, rows[i])
	}
	csvw := csv.NewWriter(out)
	return csvw.WriteAll(tab)
}

func strof(x float64) string {
	return fmt.Sprintf("%f", x)
}

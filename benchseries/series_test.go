// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchseries

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/uselessgoddess/dunes-perf/benchhist"
)

const history = `window.BENCHMARK_DATA = {"entries": {"Benchmark": [
  {"commit": {"id": "aaaaaaaaaa"}, "date": 1717236000000, "tool": "customBiggerIsBetter", "benches": [
    {"name": "Insert Only (100 elements)", "value": 36.5, "range": "± 0.5", "unit": "M links/sec"},
    {"name": "Insert + Search (100 elements)", "value": 72.25, "range": "± 0.25", "unit": "M links/sec"}]},
  {"commit": {"id": "bbbbbbbbbb"}, "tool": "customBiggerIsBetter", "benches": [
    {"name": "Insert Only (100 elements)", "value": 37.75, "range": "± 1", "unit": "M links/sec"},
    {"name": "Insert + Search (100 elements)", "value": "n/a", "range": "± 1", "unit": "M links/sec"}]}
]}}`

func buildHistory(t *testing.T) []*Series {
	t.Helper()
	doc, err := benchhist.Decode([]byte(history))
	if err != nil {
		t.Fatal(err)
	}
	es, err := doc.Entries(benchhist.DefaultSuite)
	if err != nil {
		t.Fatal(err)
	}
	return Build(es)
}

func TestBuild(t *testing.T) {
	got := buildHistory(t)
	date := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	want := []*Series{
		{"Insert Only (100 elements)", "links/sec", []Point{
			{0, "aaaaaaa", date, 36.5e6, "± 0.5", 0.5e6},
			{1, "bbbbbbb", time.Time{}, 37.75e6, "± 1", 1e6},
		}},
		{"Insert + Search (100 elements)", "links/sec", []Point{
			{0, "aaaaaaa", date, 72.25e6, "± 0.25", 0.25e6},
		}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Build mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildSeparatesUnits(t *testing.T) {
	es := []*benchhist.Entry{
		{Benches: []benchhist.Bench{{Name: "x", Unit: "links/sec", Value: 5}}},
		{Benches: []benchhist.Bench{{Name: "x", Unit: "ns/iter", Value: 5}}},
		{Benches: []benchhist.Bench{{Name: "x", Unit: "M links/sec", Value: 5}}},
	}
	got := Build(es)
	if len(got) != 2 {
		t.Fatalf("got %d series, want 2", len(got))
	}
	if got[0].Unit != "links/sec" || len(got[0].Points) != 2 {
		t.Errorf("got first series %+v", got[0])
	}
	if got[1].Unit != "sec/iter" {
		t.Errorf("got second unit %q, want sec/iter", got[1].Unit)
	}
}

func TestParseSpread(t *testing.T) {
	for in, want := range map[string]float64{
		"± 0.66":   0.66,
		"±0.5":     0.5,
		"+/- 958":  958,
		"14844555": 14844555,
		"":         0,
		"± NaN":    0,
		"wide":     0,
	} {
		if got := parseSpread(in); got != want {
			t.Errorf("parseSpread(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestSummary(t *testing.T) {
	s := &Series{Points: []Point{{Value: 4}, {Value: 1}, {Value: 7}}}
	want := Summary{Count: 3, Mean: 4, Min: 1, Max: 7, Last: 7}
	if got := s.Summary(); got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}

	empty := new(Series).Summary()
	if empty.Count != 0 || !math.IsNaN(empty.Mean) {
		t.Errorf("got %+v for an empty series", empty)
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, buildHistory(t), CSVSpread); err != nil {
		t.Fatal(err)
	}
	want := `commit,date,Insert Only (100 elements) [links/sec],±,Insert + Search (100 elements) [links/sec],±
aaaaaaa,2024-06-01T10:00:00Z,36500000.000000,500000.000000,72250000.000000,250000.000000
bbbbbbb,,37750000.000000,1000000.000000,,
`
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("WriteCSV mismatch (-want +got):\n%s", diff)
	}

	buf.Reset()
	if err := WriteCSV(&buf, buildHistory(t), CSVPlain); err != nil {
		t.Fatal(err)
	}
	if got := strings.SplitN(buf.String(), "\n", 2)[0]; got != "commit,date,Insert Only (100 elements) [links/sec],Insert + Search (100 elements) [links/sec]" {
		t.Errorf("got header %q", got)
	}
}

func TestWritePNG(t *testing.T) {
	var buf bytes.Buffer
	if err := WritePNG(&buf, buildHistory(t)[0]); err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG\r\n\x1a\n")) {
		t.Errorf("output is not a PNG")
	}
	if err := WritePNG(&buf, &Series{Name: "empty"}); err == nil {
		t.Errorf("WritePNG of an empty series succeeded")
	}
}

func TestChart(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "charts")
	files, err := Chart(buildHistory(t), dir)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{
		filepath.Join(dir, "Insert_Only_100_elements_links-per-sec.png"),
		filepath.Join(dir, "Insert_plus_Search_100_elements_links-per-sec.png"),
	}
	if diff := cmp.Diff(want, files); diff != "" {
		t.Errorf("files mismatch (-want +got):\n%s", diff)
	}
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			t.Error(err)
		}
	}
}

func TestText(t *testing.T) {
	got := Text(buildHistory(t)[0])
	if !strings.Contains(got, "Insert Only (100 elements) (Mlinks/sec)") {
		t.Errorf("caption missing from:\n%s", got)
	}
	if !strings.Contains(got, "last 37.75M") {
		t.Errorf("last value missing from:\n%s", got)
	}
	if lines := strings.Count(got, "\n"); lines < TextHeight {
		t.Errorf("got %d lines, want at least %d", lines, TextHeight)
	}
	if Text(&Series{Name: "empty"}) != "" {
		t.Errorf("Text of an empty series is not empty")
	}
}

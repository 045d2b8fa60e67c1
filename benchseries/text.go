// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchseries

import (
	"fmt"

	"github.com/guptarohit/asciigraph"

	"github.com/uselessgoddess/dunes-perf/benchunit"
)

// TextHeight is the height in lines of the plot drawn by Text.
const TextHeight = 10

// Text renders s as a terminal line chart. Values are scaled to a
// common SI prefix, which appears in the caption along with the
// summary statistics.
func Text(s *Series) string {
	vals := s.Values()
	if len(vals) == 0 {
		return ""
	}
	scale := benchunit.CommonScale(vals)
	data := make([]float64, len(vals))
	for i, v := range vals {
		data[i] = v / scale.Factor
	}
	sum := s.Summary()
	caption := fmt.Sprintf("%s (%s%s)  last %s  mean %s  min %s  max %s",
		s.Name, scale.Prefix, s.Unit,
		scale.Format(sum.Last), scale.Format(sum.Mean), scale.Format(sum.Min), scale.Format(sum.Max))
	opts := []asciigraph.Option{
		asciigraph.Height(TextHeight),
		asciigraph.Caption(caption),
	}
	// Stretch short series so the line is readable.
	if len(data) < 40 {
		opts = append(opts, asciigraph.Width(40))
	}
	return asciigraph.Plot(data, opts...)
}

// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchseries

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

const pointRad = 3

// errPoints is the data of a series with its spread as Y error bars.
type errPoints struct {
	plotter.XYs
	plotter.YErrors
}

// Chart writes one PNG chart per series to dir, creating dir if
// needed. It returns the paths of the written files.
func Chart(series []*Series, dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0777); err != nil {
		return nil, err
	}
	var files []string
	for _, s := range series {
		if len(s.Points) == 0 {
			continue
		}
		file := filepath.Join(dir, FileName(s)+".png")
		f, err := os.Create(file)
		if err != nil {
			return files, err
		}
		err = WritePNG(f, s)
		if err1 := f.Close(); err == nil {
			err = err1
		}
		if err != nil {
			return files, fmt.Errorf("%s: %w", file, err)
		}
		files = append(files, file)
	}
	return files, nil
}

// FileName returns a file name (without extension) for s's chart.
func FileName(s *Series) string {
	r := strings.NewReplacer("/", "-per-", " ", "_", "(", "", ")", "", "+", "plus")
	return r.Replace(s.Name + " " + s.Unit)
}

// WritePNG draws s as a line of points with error bars and writes it
// to w as a PNG. The X axis is labeled with short commit IDs.
func WritePNG(w io.Writer, s *Series) error {
	if len(s.Points) == 0 {
		return fmt.Errorf("series %q has no points", s.Name)
	}

	pts := errPoints{
		XYs:     make(plotter.XYs, len(s.Points)),
		YErrors: make(plotter.YErrors, len(s.Points)),
	}
	labels := make([]string, len(s.Points))
	for i, p := range s.Points {
		pts.XYs[i].X = float64(i)
		pts.XYs[i].Y = p.Value
		pts.YErrors[i].Low = p.Spread
		pts.YErrors[i].High = p.Spread
		labels[i] = p.Commit
	}

	pl := plot.New()
	pl.Title.Text = s.Name
	pl.Title.TextStyle.Font.Size = 20
	pl.Y.Label.Text = s.Unit
	pl.Y.Tick.Label.Font.Size = 12

	grid := plotter.NewGrid()
	grid.Vertical.Color = nil
	pl.Add(grid)

	line, scatter, err := plotter.NewLinePoints(pts)
	if err != nil {
		return err
	}
	line.Color = blue(0xff)
	scatter.GlyphStyle.Color = blue(0xff)
	scatter.GlyphStyle.Radius = vg.Points(pointRad)
	bars, err := plotter.NewYErrorBars(pts)
	if err != nil {
		return err
	}
	bars.LineStyle.Color = blue(0x80)
	pl.Add(line, scatter, bars)

	pl.NominalX(labels...)
	pl.X.Tick.Label.Rotation = -math.Pi / 8
	pl.X.Tick.Label.YAlign = draw.YTop
	pl.X.Tick.Label.XAlign = draw.XLeft
	pl.X.Tick.Label.Font.Size = 10

	// Throughput starts at zero.
	if pl.Y.Min > 0 {
		pl.Y.Min = 0
	}

	// Heuristic width, in centimeters.
	width := 1.5 * float64(4+len(s.Points))
	if width < 15 {
		width = 15
	}
	height := 10.0
	dpi := 150
	// Keep the image under 8192 pixels wide.
	if initialWidth := float64(dpi) * width / 2.54; initialWidth > 8190 {
		dpi = int(math.Trunc(float64(dpi) * 8190 / initialWidth))
	}

	can := vgimg.PngCanvas{Canvas: vgimg.NewWith(
		vgimg.UseWH(vg.Length(width)*vg.Centimeter, vg.Length(height)*vg.Centimeter),
		vgimg.UseDPI(dpi),
		vgimg.UseBackgroundColor(color.White))}
	pl.Draw(draw.New(can))
	_, err = can.WriteTo(w)
	return err
}

func blue(alpha uint8) color.Color {
	return color.NRGBA{0, 0, 0xFF, alpha}
}

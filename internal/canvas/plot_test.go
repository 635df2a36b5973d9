/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package canvas

import (
	"image"
	"image/color"
	"math"
	"testing"

	"chartmaker/internal/chart"
	"chartmaker/internal/style"
	"chartmaker/internal/textlayout"
)

var (
	red  = style.RGB(255, 0, 0)
	blue = style.RGB(0, 0, 255)
)

func isRed(c color.RGBA) bool  { return c.A > 0 && c.R > 0 && c.G == 0 && c.B == 0 }
func isBlue(c color.RGBA) bool { return c.A > 0 && c.B > 0 && c.R == 0 && c.G == 0 }

func count(img *image.RGBA, r image.Rectangle, match func(color.RGBA) bool) int {
	n := 0
	r = r.Intersect(img.Rect)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if match(img.RGBAAt(x, y)) {
				n++
			}
		}
	}
	return n
}

func twoSeries(t *testing.T) *chart.Data {
	t.Helper()
	d := chart.NewWithAxes("Sales", chart.AxisLabels{X: "Month", Y: "Revenue"})
	if !d.AddSeries("Q1", red, []float64{1, 2, 3}) || !d.AddSeries("Q2", blue, []float64{2, 1, 4}) {
		t.Fatalf("AddSeries rejected test series")
	}
	return d
}

func TestDrawSeriesEveryType(t *testing.T) {
	for _, typ := range Types() {
		t.Run(typ.String(), func(t *testing.T) {
			c := newCanvas(t, WithType(typ))
			c.DrawSeries(twoSeries(t), style.Default())
			img := c.Image()
			inside := BaseAxesArea.Inset(-3)
			if count(img, inside, isRed) == 0 {
				t.Fatalf("no red pixels inside the plot area")
			}
			if count(img, inside, isBlue) == 0 {
				t.Fatalf("no blue pixels inside the plot area")
			}
			painted := func(c color.RGBA) bool { return c.A > 0 }
			if total, in := count(img, img.Rect, painted), count(img, inside, painted); total != in {
				t.Fatalf("%d painted pixels outside the plot area", total-in)
			}
		})
	}
}

func TestDrawSeriesEmpty(t *testing.T) {
	c := newCanvas(t)
	c.DrawSeries(nil, style.Default())
	c.DrawSeries(chart.New("empty"), style.Default())
	if n := count(c.Image(), c.Bounds(), func(c color.RGBA) bool { return c.A > 0 }); n != 0 {
		t.Fatalf("%d pixels painted for an empty chart", n)
	}
}

func TestClassicLonePoints(t *testing.T) {
	d := chart.New("lone")
	d.AddSeries("a", red, []float64{5})
	d.AddSeries("b", blue, []float64{1, 3})
	c := newCanvas(t)
	c.DrawSeries(d, style.Default())
	if n := count(c.Image(), BaseAxesArea.Inset(-3), isRed); n == 0 {
		t.Fatalf("single-point series painted no pixels")
	}

	gap := chart.New("gap")
	gap.AddSeries("g", red, []float64{1, math.NaN(), 4, math.NaN(), 2})
	c = newCanvas(t)
	c.DrawSeries(gap, style.Default())
	// domain [0, 4] puts the point between the gaps at (55, 10)
	if n := count(c.Image(), image.Rect(52, 7, 59, 14), isRed); n == 0 {
		t.Fatalf("point between two gaps painted no pixels")
	}
}

func TestStackedNegativeValues(t *testing.T) {
	d := chart.New("stack")
	d.AddSeries("up", red, []float64{2})
	d.AddSeries("down", blue, []float64{-1})
	c := newCanvas(t, WithType(VerticalStackedBar))
	c.DrawSeries(d, style.Default())
	img := c.Image()
	// domain [-1, 2] over rows 100..10 puts zero on row 70
	if got := img.RGBAAt(55, 40); !isRed(got) {
		t.Fatalf("pixel above zero = %v, want red", got)
	}
	if got := img.RGBAAt(55, 85); !isBlue(got) {
		t.Fatalf("pixel below zero = %v, want blue", got)
	}
}

func TestHorizontalBarGeometry(t *testing.T) {
	d := chart.New("h")
	d.AddSeries("only", red, []float64{3})
	c := newCanvas(t, WithType(HorizontalBars))
	c.DrawSeries(d, style.Default())
	img := c.Image()
	if got := img.RGBAAt(50, 55); !isRed(got) {
		t.Fatalf("pixel inside bar = %v, want red", got)
	}
	if got := img.RGBAAt(50, 15); got.A != 0 {
		t.Fatalf("pixel above bar = %v, want untouched", got)
	}
}

func TestPlotAreaFollowsSetting(t *testing.T) {
	c := newCanvas(t, WithSize(300, 200), WithType(VerticalBars))
	area := image.Rect(150, 50, 290, 190)
	if err := c.SetPlotArea(area); err != nil {
		t.Fatalf("SetPlotArea: %v", err)
	}
	c.DrawSeries(twoSeries(t), style.Default())
	if n := count(c.Image(), image.Rect(0, 0, 150, 200), func(c color.RGBA) bool { return c.A > 0 }); n != 0 {
		t.Fatalf("%d pixels painted left of the plot area", n)
	}
	if err := c.SetPlotArea(image.Rect(5, 5, 5, 50)); err == nil {
		t.Fatalf("SetPlotArea accepted an empty rectangle")
	}
}

func TestValueScale(t *testing.T) {
	s := newValueScale(2, 4, 100, 10)
	if got := s.at(0); got != 100 {
		t.Fatalf("at(0) = %v, want 100 (domain includes zero)", got)
	}
	if got := s.at(4); got != 10 {
		t.Fatalf("at(4) = %v, want 10", got)
	}
	flat := newValueScale(0, 0, 0, 10)
	if got := flat.at(1); math.Abs(got-10) > 1e-9 {
		t.Fatalf("flat at(1) = %v, want 10", got)
	}
}

func TestDrawCaptions(t *testing.T) {
	c := newCanvas(t, WithSize(200, 200))
	if err := c.SetPlotArea(image.Rect(40, 20, 180, 160)); err != nil {
		t.Fatalf("SetPlotArea: %v", err)
	}
	c.DrawCaptions(twoSeries(t), textlayout.BasicProvider{}, style.Default())
	img := c.Image()
	painted := func(c color.RGBA) bool { return c.A > 0 }
	if count(img, image.Rect(0, 0, 200, 14), painted) == 0 {
		t.Fatalf("title not drawn")
	}
	if count(img, image.Rect(40, 161, 180, 180), painted) == 0 {
		t.Fatalf("x caption not drawn")
	}
	if count(img, image.Rect(0, 20, 39, 160), painted) == 0 {
		t.Fatalf("y caption not drawn")
	}
	if count(img, image.Rect(41, 21, 179, 159), painted) != 0 {
		t.Fatalf("captions painted inside the plot area")
	}
}

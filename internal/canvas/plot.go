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
	"log/slog"
	"math"

	"chartmaker/internal/chart"
	"chartmaker/internal/style"
)

// barFill is the share of a category slot covered by bars.
const barFill = 0.8

// valueScale maps data values linearly onto a pixel span. The domain always
// contains 0 so bars grow from a zero baseline.
type valueScale struct {
	lo, hi float64 // data domain
	p0, p1 float64 // pixel positions of lo and hi
}

func newValueScale(lo, hi, p0, p1 float64) valueScale {
	lo = math.Min(lo, 0)
	hi = math.Max(hi, 0)
	if hi == lo {
		hi = lo + 1
	}
	return valueScale{lo: lo, hi: hi, p0: p0, p1: p1}
}

func (s valueScale) at(v float64) float64 {
	return s.p0 + (v-s.lo)/(s.hi-s.lo)*(s.p1-s.p0)
}

// slots divides a pixel span into n equal category slots.
type slots struct {
	start, size float64
}

func newSlots(p0, p1 float64, n int) slots {
	if n < 1 {
		n = 1
	}
	return slots{start: p0, size: (p1 - p0) / float64(n)}
}

func (s slots) center(i int) float64 { return s.start + (float64(i)+0.5)*s.size }

// DrawSeries paints every series of d in the layout of the selected chart
// type. Series colors come from d; t supplies the pen width and is otherwise
// only used for its stroke color when a series color is fully transparent.
func (c *Canvas) DrawSeries(d *chart.Data, t style.Tool) {
	if d == nil || d.Len() == 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	area := c.plotArea
	series := d.Series()
	pen := t.Stroke()
	if pen.Width <= 0 {
		pen.Width = 1
	}
	c.log.Debug("draw series", slog.String("type", c.typ.String()), slog.Int("series", len(series)))

	switch c.typ {
	case Classic:
		c.drawLinesLocked(d, series, area, pen)
	case Dots:
		c.drawDotsLocked(d, series, area, pen)
	case VerticalBars:
		c.drawBarsLocked(d, series, area, false)
	case HorizontalBars:
		c.drawBarsLocked(d, series, area, true)
	case VerticalStackedBar:
		c.drawStackedLocked(d, series, area, false)
	case HorizontalStackedBar:
		c.drawStackedLocked(d, series, area, true)
	}
}

func seriesColor(s chart.Series, pen style.Stroke) style.Color {
	if s.LineColor.A == 0 {
		return pen.Color
	}
	return s.LineColor
}

// pointX returns the x position of point i of n along the category axis.
// Line and dot charts put the first and last point on the plot edges.
func pointX(area image.Rectangle, i, n int) float64 {
	if n <= 1 {
		return float64(area.Min.X+area.Max.X) / 2
	}
	return float64(area.Min.X) + float64(i)*float64(area.Dx())/float64(n-1)
}

func (c *Canvas) drawLinesLocked(d *chart.Data, series []chart.Series, area image.Rectangle, pen style.Stroke) {
	lo, hi, ok := d.Extent()
	if !ok {
		return
	}
	ys := newValueScale(lo, hi, float64(area.Max.Y), float64(area.Min.Y))
	n := d.MaxPoints()
	for _, s := range series {
		c.dc.Push()
		c.dc.SetColor(seriesColor(s, pen).NRGBA())
		c.dc.SetLineWidth(pen.Width)
		// a run of one point has no segment to stroke; it is drawn as a dot
		var lone [][2]float64
		run := 0
		var lx, ly float64
		for i, v := range s.Points {
			if !finite(v) {
				if run == 1 {
					lone = append(lone, [2]float64{lx, ly})
				}
				run = 0
				continue
			}
			x, y := pointX(area, i, n), ys.at(v)
			if run > 0 {
				c.dc.LineTo(x, y)
			} else {
				c.dc.MoveTo(x, y)
			}
			run++
			lx, ly = x, y
		}
		if run == 1 {
			lone = append(lone, [2]float64{lx, ly})
		}
		c.dc.Stroke()
		if len(lone) > 0 {
			r := math.Max(1, pen.Width)
			for _, p := range lone {
				c.dc.DrawCircle(p[0], p[1], r)
			}
			c.dc.Fill()
		}
		c.dc.Pop()
	}
}

func (c *Canvas) drawDotsLocked(d *chart.Data, series []chart.Series, area image.Rectangle, pen style.Stroke) {
	lo, hi, ok := d.Extent()
	if !ok {
		return
	}
	ys := newValueScale(lo, hi, float64(area.Max.Y), float64(area.Min.Y))
	n := d.MaxPoints()
	r := math.Max(1.5, pen.Width*1.5)
	for _, s := range series {
		c.dc.Push()
		c.dc.SetColor(seriesColor(s, pen).NRGBA())
		for i, v := range s.Points {
			if !finite(v) {
				continue
			}
			c.dc.DrawCircle(pointX(area, i, n), ys.at(v), r)
		}
		c.dc.Fill()
		c.dc.Pop()
	}
}

// drawBarsLocked draws grouped bars: one slot per point index, split evenly
// between the series in insertion order.
func (c *Canvas) drawBarsLocked(d *chart.Data, series []chart.Series, area image.Rectangle, horizontal bool) {
	lo, hi, ok := d.Extent()
	if !ok {
		return
	}
	n := d.MaxPoints()
	var vs valueScale
	var cat slots
	if horizontal {
		vs = newValueScale(lo, hi, float64(area.Min.X), float64(area.Max.X))
		cat = newSlots(float64(area.Min.Y), float64(area.Max.Y), n)
	} else {
		vs = newValueScale(lo, hi, float64(area.Max.Y), float64(area.Min.Y))
		cat = newSlots(float64(area.Min.X), float64(area.Max.X), n)
	}
	group := cat.size * barFill
	bar := group / float64(len(series))
	zero := vs.at(0)
	for si, s := range series {
		c.dc.Push()
		c.dc.SetColor(seriesColor(s, style.DefaultStroke).NRGBA())
		for i, v := range s.Points {
			if !finite(v) || v == 0 {
				continue
			}
			off := cat.center(i) - group/2 + float64(si)*bar
			c.rectLocked(off, zero, vs.at(v), bar, horizontal)
		}
		c.dc.Fill()
		c.dc.Pop()
	}
}

// drawStackedLocked stacks the series of each point index: positive values
// upward (rightward) from zero, negative values the other way.
func (c *Canvas) drawStackedLocked(d *chart.Data, series []chart.Series, area image.Rectangle, horizontal bool) {
	lo, hi := d.StackedExtent()
	n := d.MaxPoints()
	var vs valueScale
	var cat slots
	if horizontal {
		vs = newValueScale(lo, hi, float64(area.Min.X), float64(area.Max.X))
		cat = newSlots(float64(area.Min.Y), float64(area.Max.Y), n)
	} else {
		vs = newValueScale(lo, hi, float64(area.Max.Y), float64(area.Min.Y))
		cat = newSlots(float64(area.Min.X), float64(area.Max.X), n)
	}
	width := cat.size * barFill
	pos := make([]float64, n)
	neg := make([]float64, n)
	for _, s := range series {
		c.dc.Push()
		c.dc.SetColor(seriesColor(s, style.DefaultStroke).NRGBA())
		for i, v := range s.Points {
			if !finite(v) || v == 0 {
				continue
			}
			base := &pos[i]
			if v < 0 {
				base = &neg[i]
			}
			from, to := vs.at(*base), vs.at(*base+v)
			*base += v
			c.rectLocked(cat.center(i)-width/2, from, to, width, horizontal)
		}
		c.dc.Fill()
		c.dc.Pop()
	}
}

// rectLocked adds a bar to the current path. off/size run along the category
// axis, v0/v1 along the value axis.
func (c *Canvas) rectLocked(off, v0, v1, size float64, horizontal bool) {
	lo, hi := math.Min(v0, v1), math.Max(v0, v1)
	if horizontal {
		c.dc.DrawRectangle(lo, off, hi-lo, size)
		return
	}
	c.dc.DrawRectangle(off, lo, size, hi-lo)
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

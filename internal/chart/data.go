/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package chart is the data model of a chart: a title, two axis captions and
// an ordered list of named, colored series. Series names are unique under
// Unicode case folding and series colors are unique by RGB channels.
package chart

import (
	"log/slog"
	"math"

	"golang.org/x/text/cases"

	applog "chartmaker/internal/log"
	"chartmaker/internal/style"
)

const (
	DefaultTitle = "default graph name"
	DefaultAxisX = "MetaData of axis X"
	DefaultAxisY = "MetaData of axis Y"
)

// Series is one named, colored sequence of values. Insertion order of Points is significant.
type Series struct {
	Name      string
	LineColor style.Color
	Points    []float64
}

// NewSeries copies points so later changes by the caller do not leak in.
func NewSeries(name string, c style.Color, points []float64) Series {
	return Series{Name: name, LineColor: c, Points: append([]float64(nil), points...)}
}

// AxisLabels holds the X and Y axis captions.
type AxisLabels struct {
	X, Y string
}

// Data owns the series of a chart. Series are drawn in insertion order.
type Data struct {
	Title      string
	AxisLabels AxisLabels

	series []Series
	log    *slog.Logger
}

// New returns an empty chart with default axis captions.
func New(title string) *Data {
	return NewWithAxes(title, AxisLabels{X: DefaultAxisX, Y: DefaultAxisY})
}

// NewWithAxes returns an empty chart with the given axis captions.
func NewWithAxes(title string, axes AxisLabels) *Data {
	if title == "" {
		title = DefaultTitle
	}
	return &Data{Title: title, AxisLabels: axes, log: applog.WithComponent("chart")}
}

// NewWithSeries inserts the initial series through AddGroup and returns the
// ones that were rejected.
func NewWithSeries(title string, axes AxisLabels, series ...Series) (*Data, []Series) {
	d := NewWithAxes(title, axes)
	var rejected []Series
	for _, s := range series {
		if !d.AddGroup(s) {
			rejected = append(rejected, s)
		}
	}
	return d, rejected
}

// AddSeries appends a series built from the raw fields. It returns false and
// leaves d untouched when the name or the color is already taken.
func (d *Data) AddSeries(name string, c style.Color, points []float64) bool {
	return d.AddGroup(NewSeries(name, c, points))
}

// AddGroup is AddSeries for a prebuilt series.
func (d *Data) AddGroup(s Series) bool {
	if d.ContainsName(s.Name) {
		d.logger().Debug("series rejected", slog.String("name", s.Name), slog.String("reason", "duplicate name"))
		return false
	}
	if d.ContainsColor(s.LineColor) {
		d.logger().Debug("series rejected", slog.String("name", s.Name), slog.String("reason", "duplicate color"))
		return false
	}
	d.series = append(d.series, s)
	return true
}

// ContainsName reports whether a series name equals name under case folding.
func (d *Data) ContainsName(name string) bool {
	key := fold(name)
	for _, s := range d.series {
		if fold(s.Name) == key {
			return true
		}
	}
	return false
}

// ContainsColor reports whether a series uses the same R, G and B channels.
func (d *Data) ContainsColor(c style.Color) bool {
	for _, s := range d.series {
		if s.LineColor.SameRGB(c) {
			return true
		}
	}
	return false
}

func (d *Data) Len() int { return len(d.series) }

// At returns the i-th series in insertion order.
func (d *Data) At(i int) Series { return d.series[i] }

// Series returns a copy of the series list in insertion order.
func (d *Data) Series() []Series {
	out := make([]Series, len(d.series))
	copy(out, d.series)
	return out
}

// MaxPoints is the length of the longest series.
func (d *Data) MaxPoints() int {
	n := 0
	for _, s := range d.series {
		n = max(n, len(s.Points))
	}
	return n
}

// Extent returns the smallest and largest finite value over all series.
// ok is false when there is no finite value.
func (d *Data) Extent() (lo, hi float64, ok bool) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, s := range d.series {
		for _, v := range s.Points {
			if !finite(v) {
				continue
			}
			lo = min(lo, v)
			hi = max(hi, v)
			ok = true
		}
	}
	if !ok {
		return 0, 0, false
	}
	return lo, hi, true
}

// StackedExtent returns, over all point indexes, the most negative sum of
// negative values and the largest sum of positive values. Both are 0 for an
// empty chart.
func (d *Data) StackedExtent() (lo, hi float64) {
	for i := 0; i < d.MaxPoints(); i++ {
		var neg, pos float64
		for _, s := range d.series {
			if i >= len(s.Points) || !finite(s.Points[i]) {
				continue
			}
			if v := s.Points[i]; v < 0 {
				neg += v
			} else {
				pos += v
			}
		}
		lo = min(lo, neg)
		hi = max(hi, pos)
	}
	return lo, hi
}

func (d *Data) logger() *slog.Logger {
	if d.log == nil {
		d.log = applog.WithComponent("chart")
	}
	return d.log
}

func fold(s string) string { return cases.Fold().String(s) }

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

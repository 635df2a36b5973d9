/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package textlayout resolves font faces for chart captions and measures text.
package textlayout

import (
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// FontSpec describes a requested font.
type FontSpec struct {
	Family string
	SizePt float64
}

// Metrics are font metrics in pixels for a resolved face.
type Metrics struct {
	Ascent, Descent, LineGap float64
}

// Height is the distance between two baselines.
func (m Metrics) Height() float64 { return m.Ascent + m.Descent + m.LineGap }

// Provider maps a FontSpec to a concrete face.
type Provider interface {
	Resolve(FontSpec) (font.Face, Metrics)
}

// BasicProvider always returns the 7x13 bitmap face, which keeps rendering
// deterministic in tests and needs no font files.
type BasicProvider struct{}

func (BasicProvider) Resolve(FontSpec) (font.Face, Metrics) {
	f := basicfont.Face7x13
	return f, metricsOf(f)
}

func metricsOf(f font.Face) Metrics {
	m := f.Metrics()
	return Metrics{
		Ascent:  float64(m.Ascent.Round()),
		Descent: float64(m.Descent.Round()),
		LineGap: float64(m.Height.Round() - m.Ascent.Round() - m.Descent.Round()),
	}
}

// Measure returns the advance width of s in pixels.
func Measure(face font.Face, s string) float64 {
	return fixedToFloat(font.MeasureString(face, s))
}

// Fit shortens s with a trailing "..." until it is at most maxWidth pixels
// wide. It returns "" when not even the ellipsis fits.
func Fit(face font.Face, s string, maxWidth float64) string {
	if Measure(face, s) <= maxWidth {
		return s
	}
	const ellipsis = "..."
	r := []rune(s)
	for n := len(r) - 1; n >= 0; n-- {
		c := string(r[:n]) + ellipsis
		if Measure(face, c) <= maxWidth {
			return c
		}
	}
	return ""
}

func fixedToFloat(v fixed.Int26_6) float64 { return float64(v) / 64 }

/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package style holds the pen and brush definitions consumed by the drawing routines.
package style

import "image/color"

// Color is an RGBA color with 8 bits per channel.
type Color struct{ R, G, B, A uint8 }

var (
	Black       = Color{0, 0, 0, 255}
	White       = Color{255, 255, 255, 255}
	Transparent = Color{0, 0, 0, 0}
)

// RGB returns an opaque color.
func RGB(r, g, b uint8) Color { return Color{R: r, G: g, B: b, A: 255} }

// SameRGB reports whether both colors share the three color channels. Alpha is ignored.
func (c Color) SameRGB(o Color) bool { return c.R == o.R && c.G == o.G && c.B == o.B }

// NRGBA converts to the image/color representation.
func (c Color) NRGBA() color.NRGBA { return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A} }

// FromColor converts any image/color value, un-premultiplying alpha.
func FromColor(c color.Color) Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Color{R: n.R, G: n.G, B: n.B, A: n.A}
}

// Stroke is the pen used for outlines and lines.
type Stroke struct {
	Color Color
	Width float64
}

// Fill is a solid brush.
type Fill struct {
	Color Color
}

var (
	DefaultStroke = Stroke{Color: Black, Width: 1}
	DefaultFill   = Fill{Color: Black}
)

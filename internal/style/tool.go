/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package style

// Tool pairs a pen and a brush. Every construction path leaves both set;
// whichever one is not given falls back to solid black (width 1 for the pen).
type Tool struct {
	stroke Stroke
	fill   Fill
	set    bool
}

// Default returns a black pen of width 1 with a black brush.
func Default() Tool { return Tool{stroke: DefaultStroke, fill: DefaultFill, set: true} }

// New pairs an explicit pen and brush.
func New(s Stroke, f Fill) Tool { return Tool{stroke: s, fill: f, set: true} }

// WithStroke uses s as pen and the default brush.
func WithStroke(s Stroke) Tool { return Tool{stroke: s, fill: DefaultFill, set: true} }

// WithFill uses f as brush and the default pen.
func WithFill(f Fill) Tool { return Tool{stroke: DefaultStroke, fill: f, set: true} }

// WithStrokeRGB uses s as pen and a solid brush of the given channels.
func WithStrokeRGB(s Stroke, r, g, b uint8) Tool {
	return Tool{stroke: s, fill: Fill{Color: RGB(r, g, b)}, set: true}
}

// FromRGB builds a solid brush of the given channels with the default pen.
func FromRGB(r, g, b uint8) Tool {
	return Tool{stroke: DefaultStroke, fill: Fill{Color: RGB(r, g, b)}, set: true}
}

// Stroke returns the current pen.
func (t Tool) Stroke() Stroke {
	if !t.set {
		return DefaultStroke
	}
	return t.stroke
}

// Fill returns the current brush.
func (t Tool) Fill() Fill {
	if !t.set {
		return DefaultFill
	}
	return t.fill
}

func (t *Tool) init() {
	if !t.set {
		*t = Default()
	}
}

// SetStroke replaces the pen. Width is not validated.
func (t *Tool) SetStroke(c Color, width float64) {
	t.init()
	t.stroke = Stroke{Color: c, Width: width}
}

// SetStrokeColor changes the pen color and keeps its width.
func (t *Tool) SetStrokeColor(c Color) {
	t.init()
	t.stroke.Color = c
}

// SetStrokeWidth changes the pen width and keeps its color. Width is not validated.
func (t *Tool) SetStrokeWidth(width float64) {
	t.init()
	t.stroke.Width = width
}

// SetFill replaces the brush.
func (t *Tool) SetFill(f Fill) {
	t.init()
	t.fill = f
}

// SetFillRGB replaces the brush with a solid opaque RGB color.
func (t *Tool) SetFillRGB(r, g, b uint8) {
	t.init()
	t.fill = Fill{Color: RGB(r, g, b)}
}

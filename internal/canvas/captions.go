/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package canvas

import (
	"math"

	"chartmaker/internal/chart"
	"chartmaker/internal/style"
	"chartmaker/internal/textlayout"
)

// captionGap is the distance in pixels between the plot area and the axis captions.
const captionGap = 2

// DrawCaptions writes the chart title centered along the top edge, the X axis
// caption under the plot area and the Y axis caption rotated along its left
// side, in the pen color of t. Text that does not fit is shortened.
func (c *Canvas) DrawCaptions(d *chart.Data, p textlayout.Provider, t style.Tool) {
	if d == nil {
		return
	}
	if p == nil {
		p = textlayout.BasicProvider{}
	}
	face, _ := p.Resolve(textlayout.FontSpec{})

	c.mu.Lock()
	defer c.mu.Unlock()
	w := float64(c.img.Rect.Dx())
	area := c.plotArea

	c.dc.Push()
	defer c.dc.Pop()
	c.dc.SetFontFace(face)
	c.dc.SetColor(t.Stroke().Color.NRGBA())

	if s := textlayout.Fit(face, d.Title, w); s != "" {
		c.dc.DrawStringAnchored(s, w/2, 0, 0.5, 1)
	}
	cx := float64(area.Min.X+area.Max.X) / 2
	if s := textlayout.Fit(face, d.AxisLabels.X, float64(area.Dx())); s != "" {
		c.dc.DrawStringAnchored(s, cx, float64(area.Max.Y+captionGap), 0.5, 1)
	}
	if s := textlayout.Fit(face, d.AxisLabels.Y, float64(area.Dy())); s != "" {
		x := float64(area.Min.X - captionGap)
		y := float64(area.Min.Y+area.Max.Y) / 2
		c.dc.RotateAbout(-math.Pi/2, x, y)
		c.dc.DrawStringAnchored(s, x, y, 0.5, 0)
	}
}

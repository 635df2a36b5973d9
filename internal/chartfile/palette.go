/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package chartfile

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"chartmaker/internal/chart"
	"chartmaker/internal/style"
)

// SeriesPalette is Paul Tol's qualitative palette, designed for colorblind
// accessibility. Series without an explicit color take the first entry not
// already used by the chart, then generated colors.
var SeriesPalette = []string{
	"#4477AA", // blue
	"#EE6677", // rose
	"#228833", // green
	"#CCBB44", // olive
	"#66CCEE", // cyan
	"#AA3377", // purple
	"#BBBBBB", // grey
	"#EE8866", // orange
	"#44BB99", // teal
	"#FFAABB", // pink
}

var hexColor = regexp.MustCompile(`^#?[0-9A-Fa-f]{6}$`)

// ParseColor parses "#rrggbb" (the hash is optional) into an opaque color.
func ParseColor(s string) (style.Color, error) {
	s = strings.TrimSpace(s)
	if !hexColor.MatchString(s) {
		return style.Color{}, fmt.Errorf("%w: color %q is not #rrggbb", ErrInvalidChart, s)
	}
	c := drawing.ColorFromHex(strings.TrimPrefix(s, "#"))
	return style.RGB(c.R, c.G, c.B), nil
}

// FormatColor renders c as "#rrggbb".
func FormatColor(c style.Color) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// goldenAngle spreads generated hues so neighbours stay apart.
const goldenAngle = 137.50776405

// maxGenerated bounds the hue walk once the palette is used up.
const maxGenerated = 4096

// nextPaletteColor returns the first palette color d does not use yet. Once
// the palette is used up it walks hues by the golden angle, varying
// saturation and value per lap, until it finds an unused color.
func nextPaletteColor(d *chart.Data) (style.Color, bool) {
	for _, h := range SeriesPalette {
		c, err := ParseColor(h)
		if err != nil {
			continue
		}
		if !d.ContainsColor(c) {
			return c, true
		}
	}
	for i := 0; i < maxGenerated; i++ {
		lap := float64(i / 360)
		hue := math.Mod(float64(i)*goldenAngle, 360)
		sat := 0.45 + math.Mod(lap*0.15, 0.5)
		val := 0.85 - math.Mod(lap*0.1, 0.4)
		r, g, b := colorful.Hsv(hue, sat, val).RGB255()
		if c := style.RGB(r, g, b); !d.ContainsColor(c) {
			return c, true
		}
	}
	return style.Color{}, false
}

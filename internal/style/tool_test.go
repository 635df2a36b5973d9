/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package style

import "testing"

func TestConstructorsDefaultToBlack(t *testing.T) {
	red := Stroke{Color: RGB(255, 0, 0), Width: 3}
	blue := Fill{Color: RGB(0, 0, 255)}
	cases := []struct {
		name       string
		tool       Tool
		wantStroke Stroke
		wantFill   Fill
	}{
		{"zero", Tool{}, DefaultStroke, DefaultFill},
		{"default", Default(), DefaultStroke, DefaultFill},
		{"both", New(red, blue), red, blue},
		{"stroke only", WithStroke(red), red, DefaultFill},
		{"fill only", WithFill(blue), DefaultStroke, blue},
		{"stroke and rgb", WithStrokeRGB(red, 1, 2, 3), red, Fill{Color: RGB(1, 2, 3)}},
		{"rgb", FromRGB(10, 20, 30), DefaultStroke, Fill{Color: RGB(10, 20, 30)}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.tool.Stroke(); got != tc.wantStroke {
				t.Fatalf("Stroke() = %+v, want %+v", got, tc.wantStroke)
			}
			if got := tc.tool.Fill(); got != tc.wantFill {
				t.Fatalf("Fill() = %+v, want %+v", got, tc.wantFill)
			}
		})
	}
}

func TestSettersReplaceStyle(t *testing.T) {
	var tool Tool
	tool.SetStroke(RGB(0, 128, 0), 2.5)
	if got := tool.Stroke(); got.Color != RGB(0, 128, 0) || got.Width != 2.5 {
		t.Fatalf("Stroke() = %+v after SetStroke", got)
	}
	if got := tool.Fill(); got != DefaultFill {
		t.Fatalf("Fill() = %+v, want default after SetStroke on zero tool", got)
	}
	tool.SetStrokeWidth(0)
	if tool.Stroke().Width != 0 {
		t.Fatalf("width 0 should be accepted without validation")
	}
	tool.SetStrokeColor(White)
	if tool.Stroke().Color != White {
		t.Fatalf("SetStrokeColor did not apply")
	}
	tool.SetFillRGB(9, 8, 7)
	if got := tool.Fill().Color; got != RGB(9, 8, 7) {
		t.Fatalf("Fill().Color = %+v", got)
	}
	tool.SetFill(Fill{Color: Transparent})
	if tool.Fill().Color != Transparent {
		t.Fatalf("SetFill did not apply")
	}
}

func TestSameRGBIgnoresAlpha(t *testing.T) {
	a := Color{R: 1, G: 2, B: 3, A: 255}
	b := Color{R: 1, G: 2, B: 3, A: 0}
	if !a.SameRGB(b) {
		t.Fatalf("SameRGB should ignore alpha")
	}
	if a.SameRGB(RGB(1, 2, 4)) {
		t.Fatalf("SameRGB matched different blue channel")
	}
}

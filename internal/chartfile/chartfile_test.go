/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package chartfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"chartmaker/internal/canvas"
	"chartmaker/internal/chart"
	"chartmaker/internal/style"
)

const salesYAML = `
title: Sales
axes: {x: Month, y: Revenue}
canvas: {width: 400, height: 300, type: VerticalBars, background: "#ffffff"}
series:
  - name: Q1
    color: "#ff0000"
    points: [1, 2, 3]
  - name: Q2
    points: [2, null, 4]
  - name: q1
    color: "#00ff00"
    points: [9]
  - name: Q3
    color: "FF0000"
    points: [5]
`

func TestParseSales(t *testing.T) {
	c, err := Parse([]byte(salesYAML))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	d := c.Data
	if d.Title != "Sales" || d.AxisLabels.X != "Month" || d.AxisLabels.Y != "Revenue" {
		t.Fatalf("header = %q %+v", d.Title, d.AxisLabels)
	}
	if d.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", d.Len())
	}
	if got := d.At(0).LineColor; got != style.RGB(255, 0, 0) {
		t.Fatalf("Q1 color = %v, want red", got)
	}
	if got, want := FormatColor(d.At(1).LineColor), "#4477aa"; got != want {
		t.Fatalf("Q2 palette color = %s, want %s", got, want)
	}
	if p := d.At(1).Points; len(p) != 3 || !math.IsNaN(p[1]) || p[2] != 4 {
		t.Fatalf("Q2 points = %v, want [2 NaN 4]", p)
	}
	if len(c.Rejected) != 2 || c.Rejected[0].Name != "q1" || c.Rejected[1].Name != "Q3" {
		t.Fatalf("Rejected = %+v, want q1 and Q3", c.Rejected)
	}
	typ, ok := c.ChartType()
	if !ok || typ != canvas.VerticalBars {
		t.Fatalf("ChartType() = %v, %v, want VerticalBars", typ, ok)
	}
	if c.Canvas.Width != 400 || c.Canvas.Height != 300 {
		t.Fatalf("canvas = %+v", c.Canvas)
	}
}

func TestParseDefaults(t *testing.T) {
	c, err := Parse([]byte("series: []\n"))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if c.Data.Title != chart.DefaultTitle || c.Data.AxisLabels.X != chart.DefaultAxisX {
		t.Fatalf("defaults not applied: %q %+v", c.Data.Title, c.Data.AxisLabels)
	}
	if _, ok := c.ChartType(); ok {
		t.Fatalf("ChartType() reported a type for a file without one")
	}
}

func TestPaletteSkipsUsedColors(t *testing.T) {
	doc := `
series:
  - {name: a, color: "#4477aa", points: [1]}
  - {name: b, points: [1]}
`
	c, err := Parse([]byte(doc))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if got, want := FormatColor(c.Data.At(1).LineColor), "#ee6677"; got != want {
		t.Fatalf("b color = %s, want %s", got, want)
	}
	if len(c.Rejected) != 0 {
		t.Fatalf("Rejected = %+v, want none", c.Rejected)
	}
}

func TestParseRejectsInvalid(t *testing.T) {
	cases := map[string]string{
		"empty":          "",
		"not yaml":       "series: [",
		"missing series": "title: x\n",
		"unknown key":    "series: []\nlegend: true\n",
		"bad color":      "series:\n  - {name: a, color: red, points: [1]}\n",
		"bad type":       "canvas: {type: pie}\nseries: []\n",
		"bad point":      "series:\n  - {name: a, points: [one]}\n",
		"zero width":     "canvas: {width: 0}\nseries: []\n",
		"empty name":     "series:\n  - {name: '', points: []}\n",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := Parse([]byte(doc)); !errors.Is(err, ErrInvalidChart) {
				t.Fatalf("Parse() = %v, want ErrInvalidChart", err)
			}
		})
	}
}

func TestSchemaListsEveryChartType(t *testing.T) {
	var schema struct {
		Properties struct {
			Canvas struct {
				Properties struct {
					Type struct {
						Enum []string `json:"enum"`
					} `json:"type"`
				} `json:"properties"`
			} `json:"canvas"`
		} `json:"properties"`
	}
	if err := json.Unmarshal(schemaJSON, &schema); err != nil {
		t.Fatalf("schema is not JSON: %v", err)
	}
	enum := schema.Properties.Canvas.Properties.Type.Enum
	types := canvas.Types()
	if len(enum) != len(types) {
		t.Fatalf("schema lists %d chart types, want %d", len(enum), len(types))
	}
	for i, typ := range types {
		if enum[i] != typ.String() {
			t.Fatalf("schema enum[%d] = %q, want %q", i, enum[i], typ.String())
		}
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sales.yaml")
	if err := os.WriteFile(path, []byte(salesYAML), 0o600); err != nil {
		t.Fatal(err)
	}
	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if c.Data.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", c.Data.Len())
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("Load(missing) = %v, want ErrNotExist", err)
	}
}

func TestParseColor(t *testing.T) {
	got, err := ParseColor("#1a2B3c")
	if err != nil {
		t.Fatalf("ParseColor() error: %v", err)
	}
	if want := style.RGB(0x1a, 0x2b, 0x3c); got != want {
		t.Fatalf("ParseColor() = %v, want %v", got, want)
	}
	for _, bad := range []string{"", "#abc", "#gggggg", "1234567"} {
		if _, err := ParseColor(bad); !errors.Is(err, ErrInvalidChart) {
			t.Fatalf("ParseColor(%q) = %v, want ErrInvalidChart", bad, err)
		}
	}
}

func writeWorkbook(t *testing.T, cells map[string]any) string {
	t.Helper()
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()
	for cell, v := range cells {
		if err := f.SetCellValue("Sheet1", cell, v); err != nil {
			t.Fatalf("SetCellValue(%s): %v", cell, err)
		}
	}
	path := filepath.Join(t.TempDir(), "data.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("SaveAs: %v", err)
	}
	return path
}

func TestImportXLSX(t *testing.T) {
	path := writeWorkbook(t, map[string]any{
		"A1": "Month", "B1": "Q1", "C1": "Q2", "D1": "q1",
		"A2": "Jan", "B2": 1, "C2": 2.5, "D2": 7,
		"A3": "Feb", "B3": 3,
	})
	// same sheet without the header over the month column
	path2 := writeWorkbook(t, map[string]any{
		"B1": "Q1", "C1": "Q2", "D1": "q1",
		"A2": "Jan", "B2": 1, "C2": 2.5, "D2": 7,
		"A3": "Feb", "B3": 3,
	})

	if _, err := ImportXLSX(path, ""); !errors.Is(err, ErrInvalidChart) {
		t.Fatalf("ImportXLSX(text column) = %v, want ErrInvalidChart", err)
	}

	c, err := ImportXLSX(path2, "")
	if err != nil {
		t.Fatalf("ImportXLSX() error: %v", err)
	}
	d := c.Data
	if d.Title != "Sheet1" {
		t.Fatalf("Title = %q, want Sheet1", d.Title)
	}
	if d.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", d.Len())
	}
	if p := d.At(0).Points; len(p) != 2 || p[0] != 1 || p[1] != 3 {
		t.Fatalf("Q1 points = %v, want [1 3]", p)
	}
	if p := d.At(1).Points; len(p) != 1 || p[0] != 2.5 {
		t.Fatalf("Q2 points = %v, want [2.5]", p)
	}
	if d.At(0).LineColor.SameRGB(d.At(1).LineColor) {
		t.Fatalf("palette assigned the same color twice")
	}
	if len(c.Rejected) != 1 || c.Rejected[0].Name != "q1" {
		t.Fatalf("Rejected = %+v, want q1", c.Rejected)
	}
}

func TestImportXLSXErrors(t *testing.T) {
	path := writeWorkbook(t, map[string]any{"A1": "  ", "A2": 1})
	if _, err := ImportXLSX(path, ""); !errors.Is(err, ErrInvalidChart) {
		t.Fatalf("ImportXLSX(no header) = %v, want ErrInvalidChart", err)
	}
	if _, err := ImportXLSX(path, "Nope"); err == nil {
		t.Fatalf("ImportXLSX(missing sheet) returned nil error")
	}
	if _, err := ImportXLSX(filepath.Join(t.TempDir(), "none.xlsx"), ""); err == nil {
		t.Fatalf("ImportXLSX(missing file) returned nil error")
	}
}

func TestPaletteExhaustedGeneratesColors(t *testing.T) {
	var doc strings.Builder
	doc.WriteString("series:\n")
	n := len(SeriesPalette) + 5
	for i := 0; i < n; i++ {
		fmt.Fprintf(&doc, "  - {name: s%d, points: [%d]}\n", i, i)
	}
	c, err := Parse([]byte(doc.String()))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if len(c.Rejected) != 0 {
		t.Fatalf("Rejected = %d series, want none (first %q color %s)", len(c.Rejected), c.Rejected[0].Name, FormatColor(c.Rejected[0].LineColor))
	}
	if c.Data.Len() != n {
		t.Fatalf("Len() = %d, want %d", c.Data.Len(), n)
	}
	seen := map[string]bool{}
	for _, s := range c.Data.Series() {
		h := FormatColor(s.LineColor)
		if seen[h] {
			t.Fatalf("color %s assigned twice", h)
		}
		seen[h] = true
	}
}

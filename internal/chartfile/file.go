/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package chartfile

import (
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"strings"

	gojsonschema "github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"

	"chartmaker/internal/canvas"
	"chartmaker/internal/chart"
	applog "chartmaker/internal/log"
	"chartmaker/internal/style"
)

//go:embed chart.schema.json
var schemaJSON []byte

// ErrInvalidChart marks chart descriptions that cannot be turned into a chart.
var ErrInvalidChart = errors.New("invalid chart description")

// File is the YAML chart description.
//
//	title: Sales
//	axes: {x: Month, y: Revenue}
//	canvas: {width: 400, height: 300, type: VerticalBars, background: "#ffffff"}
//	series:
//	  - name: Q1
//	    color: "#4477aa"
//	    points: [1, 2, 3]
type File struct {
	Title  string       `yaml:"title"`
	Axes   *Axes        `yaml:"axes,omitempty"`
	Canvas CanvasSpec   `yaml:"canvas,omitempty"`
	Series []SeriesSpec `yaml:"series"`
}

type Axes struct {
	X string `yaml:"x"`
	Y string `yaml:"y"`
}

// CanvasSpec holds optional canvas settings; zero values mean "not set".
type CanvasSpec struct {
	Width      int    `yaml:"width,omitempty"`
	Height     int    `yaml:"height,omitempty"`
	Type       string `yaml:"type,omitempty"`
	Background string `yaml:"background,omitempty"`
}

// SeriesSpec is one series entry. A null point is kept as a gap (NaN).
type SeriesSpec struct {
	Name   string     `yaml:"name"`
	Color  string     `yaml:"color,omitempty"`
	Points []*float64 `yaml:"points"`
}

// Chart is a loaded chart description.
type Chart struct {
	Data   *chart.Data
	Canvas CanvasSpec
	// Rejected lists series that collided with an earlier one by name or color.
	Rejected []chart.Series
}

// ChartType resolves Canvas.Type; ok is false when the file does not set one.
func (c *Chart) ChartType() (canvas.Type, bool) {
	if c.Canvas.Type == "" {
		return canvas.Classic, false
	}
	return canvas.ParseType(c.Canvas.Type)
}

// Load reads and parses the chart description at path.
func Load(path string) (*Chart, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read chart: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Parse validates data against the chart schema and builds the chart.
func Parse(data []byte) (*Chart, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidChart, err)
	}
	if err := validate(doc); err != nil {
		return nil, err
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidChart, err)
	}
	return f.Build()
}

func validate(doc any) error {
	if doc == nil {
		return fmt.Errorf("%w: empty document", ErrInvalidChart)
	}
	res, err := gojsonschema.Validate(gojsonschema.NewBytesLoader(schemaJSON), gojsonschema.NewGoLoader(doc))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidChart, err)
	}
	if res.Valid() {
		return nil
	}
	msgs := make([]string, 0, len(res.Errors()))
	for _, e := range res.Errors() {
		msgs = append(msgs, e.String())
	}
	return fmt.Errorf("%w: %s", ErrInvalidChart, strings.Join(msgs, "; "))
}

// Build turns the description into chart data. Series are inserted in file
// order through the guarded insert, so later duplicates end up in Rejected.
func (f File) Build() (*Chart, error) {
	log := applog.WithComponent("chartfile")
	var d *chart.Data
	if f.Axes != nil {
		axes := chart.AxisLabels{X: f.Axes.X, Y: f.Axes.Y}
		if axes.X == "" {
			axes.X = chart.DefaultAxisX
		}
		if axes.Y == "" {
			axes.Y = chart.DefaultAxisY
		}
		d = chart.NewWithAxes(f.Title, axes)
	} else {
		d = chart.New(f.Title)
	}
	if f.Canvas.Type != "" {
		if _, ok := canvas.ParseType(f.Canvas.Type); !ok {
			return nil, fmt.Errorf("%w: unknown chart type %q", ErrInvalidChart, f.Canvas.Type)
		}
	}
	if f.Canvas.Background != "" {
		if _, err := ParseColor(f.Canvas.Background); err != nil {
			return nil, err
		}
	}

	out := &Chart{Data: d, Canvas: f.Canvas}
	for i, s := range f.Series {
		points := make([]float64, len(s.Points))
		for j, p := range s.Points {
			if p == nil {
				points[j] = math.NaN()
				continue
			}
			points[j] = *p
		}
		series, err := out.resolve(s.Name, s.Color, points)
		if err != nil {
			return nil, fmt.Errorf("series %d: %w", i, err)
		}
		out.add(log, series)
	}
	return out, nil
}

// resolve picks the series color: explicit, else the next free palette or generated color.
func (c *Chart) resolve(name, color string, points []float64) (chart.Series, error) {
	var col style.Color
	if color != "" {
		var err error
		if col, err = ParseColor(color); err != nil {
			return chart.Series{}, err
		}
	} else if pc, ok := nextPaletteColor(c.Data); ok {
		col = pc
	} else {
		return chart.Series{}, fmt.Errorf("%w: no free color left for series %q", ErrInvalidChart, name)
	}
	return chart.NewSeries(name, col, points), nil
}

func (c *Chart) add(log *slog.Logger, s chart.Series) {
	if c.Data.AddGroup(s) {
		return
	}
	log.Warn("series skipped: name or color already used",
		slog.String("name", s.Name), slog.String("color", FormatColor(s.LineColor)))
	c.Rejected = append(c.Rejected, s)
}

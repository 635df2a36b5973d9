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
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"chartmaker/internal/chart"
	applog "chartmaker/internal/log"
)

// ImportXLSX reads series from a worksheet: the first row holds series names,
// each following row one point per series. Columns with an empty header are
// skipped, empty cells become gaps. An empty sheet name selects the first
// sheet, which also gives the chart its title.
func ImportXLSX(path, sheet string) (*Chart, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("%w: workbook has no sheets", ErrInvalidChart)
		}
		sheet = sheets[0]
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: sheet %q is empty", ErrInvalidChart, sheet)
	}

	type column struct {
		idx    int
		name   string
		points []float64
	}
	var cols []column
	for i, h := range rows[0] {
		if h = strings.TrimSpace(h); h != "" {
			cols = append(cols, column{idx: i, name: h})
		}
	}
	if len(cols) == 0 {
		return nil, fmt.Errorf("%w: sheet %q has no series names in its first row", ErrInvalidChart, sheet)
	}

	for r, row := range rows[1:] {
		for ci := range cols {
			c := &cols[ci]
			v := math.NaN()
			if c.idx < len(row) {
				if cell := strings.TrimSpace(row[c.idx]); cell != "" {
					v, err = strconv.ParseFloat(cell, 64)
					if err != nil {
						name, _ := excelize.CoordinatesToCellName(c.idx+1, r+2)
						return nil, fmt.Errorf("%w: cell %s: %q is not a number", ErrInvalidChart, name, cell)
					}
				}
			}
			c.points = append(c.points, v)
		}
	}

	log := applog.WithComponent("chartfile")
	out := &Chart{Data: chart.New(sheet)}
	for _, c := range cols {
		s, err := out.resolve(c.name, "", trimGaps(c.points))
		if err != nil {
			return nil, err
		}
		out.add(log, s)
	}
	log.Debug("workbook imported", "path", path, "sheet", sheet, "series", out.Data.Len())
	return out, nil
}

// trimGaps drops trailing gaps left by rows that are shorter for this column.
func trimGaps(p []float64) []float64 {
	n := len(p)
	for n > 0 && math.IsNaN(p[n-1]) {
		n--
	}
	return p[:n]
}

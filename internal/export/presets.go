/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"fmt"
	"image"
	"path/filepath"
	"strings"
)

// PresetName represents a named export preset.
type PresetName string

const (
	PresetWeb   PresetName = "web"
	PresetPrint PresetName = "print"
)

// BatchOptions controls exporting one chart into several formats at once.
//
// Path semantics:
//   - Base is the output path without extension; each format appends its own (".png", ".pdf", ...).
//   - If Base is relative and OutDir is set, the files are created under OutDir/<preset>/.
//
//nolint:revive // keep fields explicit for clarity
type BatchOptions struct {
	Preset      PresetName
	Formats     []Format // empty means preset defaults
	DPIOverride float64  // when > 0 overrides the preset DPI
	Title       string
	Base        string
	OutDir      string
}

// BatchExport writes img once per format and returns the written paths.
func BatchExport(img image.Image, opt BatchOptions) ([]string, error) {
	if strings.TrimSpace(opt.Base) == "" {
		return nil, fmt.Errorf("batch export: empty base name")
	}
	formats := opt.Formats
	if len(formats) == 0 {
		formats = presetDefaultFormats(opt.Preset)
	}
	dpi := presetDPI(opt.Preset)
	if opt.DPIOverride > 0 {
		dpi = opt.DPIOverride
	}

	base := strings.TrimSuffix(opt.Base, filepath.Ext(opt.Base))
	if !filepath.IsAbs(base) && opt.OutDir != "" {
		base = filepath.Join(opt.OutDir, string(opt.Preset), base)
	}

	out := make([]string, 0, len(formats))
	for _, f := range formats {
		f, err := ParseFormat(string(f))
		if err != nil {
			return out, err
		}
		path := base + f.Ext()
		if err := WriteFile(path, img, Options{Format: f, DPI: dpi, Title: opt.Title}); err != nil {
			return out, fmt.Errorf("%s: %w", f, err)
		}
		out = append(out, path)
	}
	return out, nil
}

func presetDefaultFormats(p PresetName) []Format {
	switch p {
	case PresetWeb:
		return []Format{PNG}
	case PresetPrint:
		return []Format{PDF, TIFF}
	default:
		return []Format{PNG}
	}
}

func presetDPI(p PresetName) float64 {
	switch p {
	case PresetPrint:
		return 300
	default:
		return DefaultDPI
	}
}

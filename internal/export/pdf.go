/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"

	"github.com/jung-kurt/gofpdf"

	"chartmaker/internal/version"
)

// PageSize returns the PDF page size in points for a bitmap of w x h pixels
// printed at dpi (1pt = 1/72").
func PageSize(w, h int, dpi float64) (float64, float64) {
	if dpi <= 0 {
		dpi = DefaultDPI
	}
	scale := 72.0 / dpi
	return float64(w) * scale, float64(h) * scale
}

// encodePDF writes a single page PDF whose page exactly fits the bitmap.
// The bitmap is embedded losslessly as PNG, alpha included.
func encodePDF(w io.Writer, img image.Image, opt Options) error {
	b := img.Bounds()
	if b.Empty() {
		return fmt.Errorf("encode pdf: empty image")
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("encode pdf: embed bitmap: %w", err)
	}

	pw, ph := PageSize(b.Dx(), b.Dy(), opt.DPI)
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: pw, Ht: ph},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	if opt.Title != "" {
		pdf.SetTitle(opt.Title, true)
	}
	pdf.SetCreator(version.String(), true)
	pdf.AddPage()

	imgOpt := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("chart", imgOpt, &buf)
	pdf.ImageOptions("chart", 0, 0, pw, ph, false, imgOpt, 0, "")
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Format names an output encoding.
type Format string

const (
	PNG  Format = "png"
	BMP  Format = "bmp"
	TIFF Format = "tiff"
	PDF  Format = "pdf"
)

// DefaultDPI is used for PDF page sizing when Options.DPI is not set.
const DefaultDPI = 96

// ErrUnknownFormat is returned for format names and file extensions no encoder handles.
var ErrUnknownFormat = errors.New("unknown export format")

// Options controls a single export.
//   - Format: when empty, WriteFile derives it from the file extension.
//   - DPI: resolution of the bitmap, only used to size PDF pages.
//   - Title: document title, only used by PDF.
type Options struct {
	Format Format
	DPI    float64
	Title  string
}

// Formats lists the supported formats.
func Formats() []Format { return []Format{PNG, BMP, TIFF, PDF} }

// ParseFormat accepts a format name in any case, with or without a leading dot.
func ParseFormat(name string) (Format, error) {
	n := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(name)), ".")
	switch n {
	case "png":
		return PNG, nil
	case "bmp":
		return BMP, nil
	case "tif", "tiff":
		return TIFF, nil
	case "pdf":
		return PDF, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

// FormatFromPath derives the format from the file extension of path.
func FormatFromPath(path string) (Format, error) {
	ext := filepath.Ext(path)
	if ext == "" {
		return "", fmt.Errorf("%w: %s has no extension", ErrUnknownFormat, filepath.Base(path))
	}
	return ParseFormat(ext)
}

// Ext returns the canonical file extension of f including the dot.
func (f Format) Ext() string { return "." + string(f) }

// Encode writes img to w in the given format.
func Encode(w io.Writer, img image.Image, opt Options) error {
	if img == nil {
		return fmt.Errorf("image is nil")
	}
	switch opt.Format {
	case PNG, BMP, TIFF:
		return encodeRaster(w, img, opt.Format)
	case PDF:
		return encodePDF(w, img, opt)
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, string(opt.Format))
}

// WriteFile encodes img into path, creating parent directories.
func WriteFile(path string, img image.Image, opt Options) error {
	if opt.Format == "" {
		f, err := FormatFromPath(path)
		if err != nil {
			return err
		}
		opt.Format = f
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("ensure out dir: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", opt.Format, err)
	}
	if err := Encode(f, img, opt); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", opt.Format, err)
	}
	return nil
}

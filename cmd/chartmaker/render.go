/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"fmt"
	"image"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"chartmaker/internal/canvas"
	"chartmaker/internal/chart"
	"chartmaker/internal/chartfile"
	"chartmaker/internal/config"
	"chartmaker/internal/crash"
	"chartmaker/internal/export"
	applog "chartmaker/internal/log"
	"chartmaker/internal/style"
	"chartmaker/internal/textlayout"
)

// renderOptions holds the render flags. Zero values defer to the chart file,
// then to the config.
type renderOptions struct {
	Input      string
	Output     string
	Sheet      string
	Title      string
	Type       string
	Background string // "#rrggbb" or "none"
	Format     string
	Preset     string
	Width      int
	Height     int
	DPI        float64
	NoAxes     bool
	NoCaptions bool
}

type renderResult struct {
	Paths    []string
	Rejected []chart.Series
}

func newRenderCmd(a *app) *cobra.Command {
	var opt renderOptions
	cmd := &cobra.Command{
		Use:   "render <chart.yaml|data.xlsx>",
		Short: "Render a chart description or spreadsheet to an image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.cfg.Validate(); err != nil {
				return err
			}
			opt.Input = args[0]
			res, err := render(a.cfg, opt, a.sess)
			if err != nil {
				return err
			}
			for _, s := range res.Rejected {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "skipped series %q: name or color already used\n", s.Name)
			}
			for _, p := range res.Paths {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Wrote", p)
			}
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVarP(&opt.Output, "output", "o", "", "Output file (default: input name with the format's extension)")
	f.StringVar(&opt.Sheet, "sheet", "", "Worksheet to import (default: first sheet)")
	f.StringVar(&opt.Title, "title", "", "Override the chart title")
	f.StringVarP(&opt.Type, "type", "t", "", "Chart type, see 'chartmaker types'")
	f.StringVar(&opt.Background, "background", "", `Background color "#rrggbb" or "none"`)
	f.StringVarP(&opt.Format, "format", "f", "", "Output format: png, bmp, tiff, pdf")
	f.StringVar(&opt.Preset, "preset", "", "Export preset (web, print); writes one file per preset format")
	f.IntVar(&opt.Width, "width", 0, "Canvas width in pixels")
	f.IntVar(&opt.Height, "height", 0, "Canvas height in pixels")
	f.Float64Var(&opt.DPI, "dpi", 0, "Resolution used to size PDF pages")
	f.BoolVar(&opt.NoAxes, "no-axes", false, "Do not draw the axes")
	f.BoolVar(&opt.NoCaptions, "no-captions", false, "Do not draw title and axis captions")
	return cmd
}

// render loads the input, draws it and exports the image.
func render(cfg config.AppConfig, opt renderOptions, sess *crash.Session) (renderResult, error) {
	l := applog.WithOperation(applog.WithComponent("cli"), "render")
	var res renderResult
	if sess == nil {
		sess = &crash.Session{}
	}
	sess.Input = opt.Input

	ch, err := loadChart(opt.Input, opt.Sheet)
	if err != nil {
		return res, err
	}
	res.Rejected = ch.Rejected
	if opt.Title != "" {
		ch.Data.Title = opt.Title
	}

	w := firstInt(opt.Width, ch.Canvas.Width, cfg.Canvas.Width)
	h := firstInt(opt.Height, ch.Canvas.Height, cfg.Canvas.Height)
	typeName := firstString(opt.Type, ch.Canvas.Type, cfg.Canvas.ChartType)
	typ, ok := canvas.ParseType(typeName)
	if !ok {
		return res, fmt.Errorf("unknown chart type %q (want one of %s)", typeName, typeList())
	}
	bg, err := background(firstString(opt.Background, ch.Canvas.Background, cfg.Canvas.Background))
	if err != nil {
		return res, err
	}

	cv, err := canvas.New(canvas.WithSize(w, h), canvas.WithType(typ), canvas.WithLogger(applog.WithComponent("canvas")))
	if err != nil {
		return res, err
	}
	sess.Canvas = cv

	provider, err := fontProvider(cfg.Font)
	if err != nil {
		return res, err
	}
	_, m := provider.Resolve(textlayout.FontSpec{})
	if area := plotArea(w, h, int(m.Height()), !opt.NoCaptions); area != canvas.BaseAxesArea {
		if err := cv.SetPlotArea(area); err != nil {
			l.Warn("plot area rejected, using base axes", slog.Any("err", err))
		}
	}

	if bg != nil {
		cv.FillBackgroundWith(*bg)
	}
	if !opt.NoAxes {
		cv.DrawPlotAxes()
	}
	cv.DrawSeries(ch.Data, style.Default())
	if !opt.NoCaptions {
		cv.DrawCaptions(ch.Data, provider, style.Default())
	}
	l.Debug("rendered", slog.String("type", typ.String()), slog.Int("width", w), slog.Int("height", h),
		slog.Int("series", ch.Data.Len()), slog.Int("rejected", len(ch.Rejected)))

	dpi := opt.DPI
	if dpi <= 0 {
		dpi = cfg.Export.DPI
	}
	if opt.Preset != "" {
		base := opt.Output
		if base == "" {
			base = strings.TrimSuffix(opt.Input, filepath.Ext(opt.Input))
		}
		paths, err := export.BatchExport(cv.Image(), export.BatchOptions{
			Preset:      export.PresetName(strings.ToLower(opt.Preset)),
			DPIOverride: presetDPI(opt, cfg),
			Title:       ch.Data.Title,
			Base:        base,
		})
		res.Paths = paths
		return res, err
	}

	out, format, err := outputTarget(opt, cfg)
	if err != nil {
		return res, err
	}
	if err := export.WriteFile(out, cv.Image(), export.Options{Format: format, DPI: dpi, Title: ch.Data.Title}); err != nil {
		return res, err
	}
	res.Paths = []string{out}
	return res, nil
}

// presetDPI is the DPI override for preset exports: the flag, else a DPI
// configured away from the default. Zero keeps the preset's own DPI.
func presetDPI(opt renderOptions, cfg config.AppConfig) float64 {
	if opt.DPI > 0 {
		return opt.DPI
	}
	if cfg.Export.DPI > 0 && cfg.Export.DPI != config.Defaults().Export.DPI {
		return cfg.Export.DPI
	}
	return 0
}

func loadChart(path, sheet string) (*chartfile.Chart, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return chartfile.ImportXLSX(path, sheet)
	}
	return chartfile.Load(path)
}

// outputTarget resolves the output path and format. An explicit format wins;
// otherwise the output extension decides, then the configured format.
func outputTarget(opt renderOptions, cfg config.AppConfig) (string, export.Format, error) {
	out := opt.Output
	name := opt.Format
	if name == "" && out != "" && filepath.Ext(out) != "" {
		f, err := export.FormatFromPath(out)
		if err != nil {
			return "", "", err
		}
		return out, f, nil
	}
	if name == "" {
		name = cfg.Export.Format
	}
	f, err := export.ParseFormat(name)
	if err != nil {
		return "", "", err
	}
	if out == "" {
		out = strings.TrimSuffix(opt.Input, filepath.Ext(opt.Input)) + f.Ext()
	} else if filepath.Ext(out) == "" {
		out += f.Ext()
	}
	return out, f, nil
}

// plotArea leaves room for the captions around the plot. The default canvas
// keeps the base axes rectangle.
func plotArea(w, h, lineHeight int, captions bool) image.Rectangle {
	if w == canvas.DefaultWidth && h == canvas.DefaultHeight {
		return canvas.BaseAxesArea
	}
	const pad = 10
	text := 0
	if captions {
		text = lineHeight + 2
	}
	r := image.Rectangle{Min: image.Pt(pad+text, pad+text), Max: image.Pt(w-pad, h-pad-text)}
	if r.Empty() {
		return canvas.BaseAxesArea
	}
	return r
}

func background(s string) (*style.Fill, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none", "transparent":
		return nil, nil
	}
	c, err := chartfile.ParseColor(s)
	if err != nil {
		return nil, err
	}
	return &style.Fill{Color: c}, nil
}

func fontProvider(fc config.FontConfig) (textlayout.Provider, error) {
	if fc.File == "" {
		return textlayout.BasicProvider{}, nil
	}
	lib := textlayout.NewFontLibrary()
	if err := lib.LoadTTF("caption", fc.File); err != nil {
		return nil, fmt.Errorf("load font: %w", err)
	}
	return textlayout.OTProvider{Lib: lib, Size: fc.Size}, nil
}

func typeList() string {
	names := make([]string, 0, len(canvas.Types()))
	for _, t := range canvas.Types() {
		names = append(names, t.String())
	}
	return strings.Join(names, ", ")
}

func firstInt(vs ...int) int {
	for _, v := range vs {
		if v != 0 {
			return v
		}
	}
	return 0
}

func firstString(vs ...string) string {
	for _, v := range vs {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

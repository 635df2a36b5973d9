/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package canvas owns the raster buffer a chart is drawn on, the gg drawing
// context bound to it and the selected chart type.
//
// Reset and the Resize family never mutate the buffer in place: they allocate
// a new one, copy the old pixels to its top-left corner (Resize only) and
// rebind the drawing context, all under the canvas mutex, so no drawing call
// observes a context bound to a replaced buffer.
package canvas

import (
	"image"
	"image/draw"
	"log/slog"
	"sync"

	"github.com/fogleman/gg"

	"chartmaker/internal/history"
	applog "chartmaker/internal/log"
	"chartmaker/internal/style"
)

const (
	DefaultWidth  = 100
	DefaultHeight = 100
)

// BaseAxesArea is the rectangle spanned by the fixed base axes.
var BaseAxesArea = image.Rect(10, 10, 100, 100)

// Canvas is a chart drawing session. It is safe for concurrent use; callers
// that need several calls to appear atomic must serialize them themselves.
type Canvas struct {
	mu       sync.Mutex
	img      *image.RGBA
	dc       *gg.Context
	typ      Type
	plotArea image.Rectangle
	hist     *history.Manager
	log      *slog.Logger
}

// Option configures a Canvas at construction.
type Option func(*Canvas) error

// WithSize sets the initial buffer size.
func WithSize(w, h int) Option {
	return func(c *Canvas) error {
		if err := checkDims("new", w, h); err != nil {
			return err
		}
		c.bind(newBuffer(w, h))
		return nil
	}
}

// WithType sets the initial chart type.
func WithType(t Type) Option {
	return func(c *Canvas) error {
		c.typ = t
		return nil
	}
}

// WithHistory records every replaced buffer in m so Undo can restore it.
func WithHistory(m *history.Manager) Option {
	return func(c *Canvas) error {
		c.hist = m
		return nil
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Canvas) error {
		c.log = l
		return nil
	}
}

// New returns a DefaultWidth x DefaultHeight transparent canvas of type Classic.
func New(opts ...Option) (*Canvas, error) {
	c := &Canvas{typ: Classic, plotArea: BaseAxesArea}
	c.bind(newBuffer(DefaultWidth, DefaultHeight))
	for _, o := range opts {
		if err := o(c); err != nil {
			return nil, err
		}
	}
	if c.log == nil {
		c.log = applog.WithComponent("canvas")
	}
	return c, nil
}

func newBuffer(w, h int) *image.RGBA { return image.NewRGBA(image.Rect(0, 0, w, h)) }

// bind makes img the current buffer and binds a fresh context to it.
// Callers hold c.mu (or own c exclusively during construction).
func (c *Canvas) bind(img *image.RGBA) {
	c.img = img
	c.dc = gg.NewContextForRGBA(img)
}

// Image returns the current buffer. It is replaced, not modified, by Reset and
// Resize, so a returned buffer keeps its size.
func (c *Canvas) Image() *image.RGBA {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.img
}

// CopyImage returns a copy of the current buffer that later drawing does not touch.
func (c *Canvas) CopyImage() *image.RGBA {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := newBuffer(c.img.Rect.Dx(), c.img.Rect.Dy())
	copy(out.Pix, c.img.Pix)
	return out
}

func (c *Canvas) Width() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.img.Rect.Dx()
}

func (c *Canvas) Height() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.img.Rect.Dy()
}

// Bounds returns the buffer rectangle, always anchored at (0,0).
func (c *Canvas) Bounds() image.Rectangle {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.img.Rect
}

// Type returns the selected chart type.
func (c *Canvas) Type() Type {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.typ
}

// SetType selects t. Values outside the enumeration are ignored and reported as false.
func (c *Canvas) SetType(t Type) bool {
	if !t.Valid() {
		return false
	}
	c.mu.Lock()
	c.typ = t
	c.mu.Unlock()
	return true
}

// SetChartType selects the type with the canonical name. Unknown names leave
// the type unchanged and return false.
func (c *Canvas) SetChartType(name string) bool {
	t, ok := ParseType(name)
	if !ok {
		c.log.Debug("unknown chart type", slog.String("name", name))
		return false
	}
	return c.SetType(t)
}

// ChartType returns the canonical name of the selected type.
func (c *Canvas) ChartType() string { return c.Type().String() }

// PlotArea is the rectangle DrawSeries maps values into.
func (c *Canvas) PlotArea() image.Rectangle {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.plotArea
}

// SetPlotArea changes the rectangle DrawSeries uses. The default matches the base axes.
func (c *Canvas) SetPlotArea(r image.Rectangle) error {
	r = r.Canon()
	if err := checkDims("plot area", r.Dx(), r.Dy()); err != nil {
		return err
	}
	c.mu.Lock()
	c.plotArea = r
	c.mu.Unlock()
	return nil
}

// Reset replaces the buffer with an empty one of the same size.
func (c *Canvas) Reset() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.replaceLocked("reset", c.img.Rect.Dx(), c.img.Rect.Dy(), false)
	return nil
}

// Resize replaces the buffer with a w x h one holding the old pixels at (0,0).
// The old content is neither scaled nor cropped beyond the new bounds; area
// outside the old bounds stays transparent.
func (c *Canvas) Resize(w, h int) error {
	if err := checkDims("resize", w, h); err != nil {
		c.log.Warn("resize rejected", slog.Int("width", w), slog.Int("height", h))
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.replaceLocked("resize", w, h, true)
	return nil
}

// ResizeWidth is Resize keeping the current height.
func (c *Canvas) ResizeWidth(w int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	h := c.img.Rect.Dy()
	if err := checkDims("resize width", w, h); err != nil {
		c.log.Warn("resize rejected", slog.Int("width", w), slog.Int("height", h))
		return err
	}
	c.replaceLocked("resize width", w, h, true)
	return nil
}

// ResizeHeight is Resize keeping the current width.
func (c *Canvas) ResizeHeight(h int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	w := c.img.Rect.Dx()
	if err := checkDims("resize height", w, h); err != nil {
		c.log.Warn("resize rejected", slog.Int("width", w), slog.Int("height", h))
		return err
	}
	c.replaceLocked("resize height", w, h, true)
	return nil
}

func (c *Canvas) replaceLocked(op string, w, h int, keep bool) {
	old := c.img
	next := newBuffer(w, h)
	if keep {
		draw.Draw(next, old.Rect, old, image.Point{}, draw.Src)
	}
	c.bind(next)
	if c.hist != nil {
		c.hist.Push(history.Snapshot{Image: old, Op: op})
	}
	c.log.Debug("canvas replaced", slog.String("op", op),
		slog.Int("from_w", old.Rect.Dx()), slog.Int("from_h", old.Rect.Dy()),
		slog.Int("width", w), slog.Int("height", h))
}

// Undo restores the buffer replaced by the last Reset or Resize. It returns
// false when there is no history or nothing to undo.
func (c *Canvas) Undo() bool {
	if c.hist == nil {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	s, ok := c.hist.Undo(c.img)
	if !ok {
		return false
	}
	c.bind(s.Image)
	return true
}

// Redo reapplies the last undone replacement.
func (c *Canvas) Redo() bool {
	if c.hist == nil {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	s, ok := c.hist.Redo(c.img)
	if !ok {
		return false
	}
	c.bind(s.Image)
	return true
}

// FillBackground paints the whole buffer opaque white.
func (c *Canvas) FillBackground() { c.FillBackgroundWith(style.Fill{Color: style.White}) }

// FillBackgroundRGB paints the whole buffer with an opaque color.
func (c *Canvas) FillBackgroundRGB(r, g, b uint8) {
	c.FillBackgroundWith(style.Fill{Color: style.RGB(r, g, b)})
}

// FillBackgroundWith paints the whole buffer with f, composited over the current content.
func (c *Canvas) FillBackgroundWith(f style.Fill) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dc.Push()
	defer c.dc.Pop()
	c.dc.SetColor(f.Color.NRGBA())
	c.dc.DrawRectangle(0, 0, float64(c.img.Rect.Dx()), float64(c.img.Rect.Dy()))
	c.dc.Fill()
}

// DrawBaseAxes draws the Y and X baselines (10,10)-(10,100) and
// (10,100)-(100,100) in black, width 1. The coordinates are fixed and do not
// follow the canvas size.
func (c *Canvas) DrawBaseAxes() {
	c.DrawLine(10, 10, 10, 100)
	c.DrawLine(10, 100, 100, 100)
}

// DrawBaseAxesCaptioned draws the base axes only when withCaption is set.
func (c *Canvas) DrawBaseAxesCaptioned(withCaption bool) {
	if withCaption {
		c.DrawBaseAxes()
	}
}

// DrawPlotAxes draws the Y and X baselines along the left and bottom edges of
// the plot area. With the default plot area it matches DrawBaseAxes.
func (c *Canvas) DrawPlotAxes() {
	c.mu.Lock()
	defer c.mu.Unlock()
	a := c.plotArea
	c.strokeLocked(style.DefaultStroke, px(a.Min.X), px(a.Min.Y), px(a.Min.X), px(a.Max.Y))
	c.strokeLocked(style.DefaultStroke, px(a.Min.X), px(a.Max.Y), px(a.Max.X), px(a.Max.Y))
}

// DrawLine draws a black segment of width 1. Integer coordinates address pixel
// centers and both end pixels are painted.
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.strokeLocked(style.DefaultStroke, px(x0), px(y0), px(x1), px(y1))
}

// DrawLinePoints is DrawLine taking points.
func (c *Canvas) DrawLinePoints(p0, p1 image.Point) { c.DrawLine(p0.X, p0.Y, p1.X, p1.Y) }

func (c *Canvas) strokeLocked(s style.Stroke, x0, y0, x1, y1 float64) {
	c.dc.Push()
	defer c.dc.Pop()
	c.dc.SetColor(s.Color.NRGBA())
	c.dc.SetLineWidth(s.Width)
	c.dc.SetLineCap(gg.LineCapSquare)
	c.dc.DrawLine(x0, y0, x1, y1)
	c.dc.Stroke()
}

// px maps an integer pixel coordinate to the center of that pixel.
func px(v int) float64 { return float64(v) + 0.5 }

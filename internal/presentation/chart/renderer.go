// Package chart draws the multi-series sales line chart to a PNG image.
package chart

import (
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"github.com/penwyp/go-pos/internal/core/constants"
	"github.com/penwyp/go-pos/internal/core/model"
	"github.com/penwyp/go-pos/internal/util"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

const (
	DefaultWidth  = 900
	DefaultHeight = 520

	titleSize = 14
	labelSize = 11
)

var (
	colorBackground = color.White
	colorText       = color.RGBA{R: 64, G: 64, B: 64, A: 255}
	colorAxis       = color.RGBA{R: 128, G: 128, B: 128, A: 255}
	colorGrid       = color.RGBA{R: 230, G: 230, B: 230, A: 255}
	colorGuide      = color.RGBA{R: 192, G: 192, B: 192, A: 255}
)

// Options configures a Renderer.
type Options struct {
	Width          int
	Height         int
	CurrencyPrefix string
	Palette        []color.RGBA
}

// Renderer lays out and draws charts.
type Renderer struct {
	opts      Options
	titleFace font.Face
	labelFace font.Face
}

// NewRenderer returns a renderer, filling unset options with defaults.
// Sizes below constants.MinChartSize are raised to it.
func NewRenderer(opts Options) *Renderer {
	if opts.Width <= 0 {
		opts.Width = DefaultWidth
	}
	if opts.Height <= 0 {
		opts.Height = DefaultHeight
	}
	opts.Width = max(opts.Width, constants.MinChartSize)
	opts.Height = max(opts.Height, constants.MinChartSize)
	if len(opts.Palette) == 0 {
		opts.Palette = DefaultPalette
	}

	return &Renderer{
		opts:      opts,
		titleFace: loadFace(gobold.TTF, titleSize),
		labelFace: loadFace(goregular.TTF, labelSize),
	}
}

func loadFace(ttf []byte, size float64) font.Face {
	f, err := truetype.Parse(ttf)
	if err != nil {
		util.LogWarnf("chart font unavailable, using fallback: %v", err)
		return basicfont.Face7x13
	}
	return truetype.NewFace(f, &truetype.Options{Size: size})
}

func (r *Renderer) measure(s string) float64 {
	return float64(font.MeasureString(r.labelFace, s)) / 64
}

// Render draws data and returns the image.
func (r *Renderer) Render(data model.ChartData) image.Image {
	return r.draw(r.Layout(data)).Image()
}

// RenderPNG draws data and writes it to w as PNG.
func (r *Renderer) RenderPNG(w io.Writer, data model.ChartData) error {
	if err := r.draw(r.Layout(data)).EncodePNG(w); err != nil {
		return fmt.Errorf("encode chart: %w", err)
	}
	return nil
}

// SavePNG draws data into a PNG file at path.
func (r *Renderer) SavePNG(path string, data model.ChartData) error {
	if err := r.draw(r.Layout(data)).SavePNG(path); err != nil {
		return fmt.Errorf("save chart %s: %w", path, err)
	}
	util.LogDebug("chart written", util.F("path", path), util.F("series", len(data.Series)))
	return nil
}

func (r *Renderer) draw(lay Layout) *gg.Context {
	dc := gg.NewContext(lay.Width, lay.Height)
	dc.SetColor(colorBackground)
	dc.Clear()

	dc.SetFontFace(r.titleFace)
	dc.SetColor(colorText)
	dc.DrawString(lay.Title, padLeft, padTop-30)

	dc.SetFontFace(r.labelFace)
	dc.SetLineWidth(1)
	dc.SetColor(colorAxis)
	dc.DrawLine(lay.Left, lay.Bottom, lay.Right, lay.Bottom)
	dc.DrawLine(lay.Left, lay.Bottom, lay.Left, lay.Top)
	dc.Stroke()

	if lay.Empty {
		dc.SetColor(colorText)
		dc.DrawString("No data", lay.Left+10, lay.Bottom-10)
		return dc
	}

	for _, g := range lay.Gridlines {
		dc.SetColor(colorGrid)
		dc.DrawLine(lay.Left, g.Y, lay.Right, g.Y)
		dc.Stroke()
		dc.SetColor(colorText)
		dc.DrawString(g.Label, 5, g.Y+4)
	}

	for _, t := range lay.Ticks {
		dc.SetColor(colorGuide)
		dc.DrawLine(t.X, lay.Bottom, t.X, lay.Top)
		dc.Stroke()

		dc.SetColor(colorText)
		dc.DrawLine(t.X, lay.Bottom, t.X, lay.Bottom+4)
		dc.Stroke()

		lx, ly := t.X-10, lay.Bottom+22
		dc.Push()
		dc.RotateAbout(gg.Radians(-45), lx, ly)
		dc.DrawString(t.Label, lx, ly)
		dc.Pop()
	}

	for _, line := range lay.Polylines {
		dc.SetColor(line.Color)
		dc.SetLineWidth(line.Width)
		for i, p := range line.Points {
			if i == 0 {
				dc.MoveTo(p.X, p.Y)
				continue
			}
			dc.LineTo(p.X, p.Y)
		}
		dc.Stroke()

		for _, p := range line.Points {
			dc.DrawCircle(p.X, p.Y, 3)
			dc.Fill()
		}
	}

	dc.SetLineWidth(1)
	for _, e := range lay.Legend {
		dc.SetColor(e.Color)
		dc.DrawRectangle(e.X, e.Y, legendBox, legendBox)
		dc.Fill()
		dc.SetColor(colorText)
		dc.DrawRectangle(e.X, e.Y, legendBox, legendBox)
		dc.Stroke()
		dc.DrawString(e.Name, e.X+legendBox+legendText, e.Y+legendBox-1)
	}

	return dc
}

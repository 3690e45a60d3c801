package chart

import (
	"image/color"
	"math"
	"unicode/utf8"

	"github.com/penwyp/go-pos/internal/core/constants"
	"github.com/penwyp/go-pos/internal/core/model"
	"github.com/penwyp/go-pos/internal/util"
)

const (
	padLeft   = 70.0
	padRight  = 30.0
	padTop    = 50.0
	padBottom = 80.0

	gridIntervals = 5
	maxTicks      = 10
	maxLabelRunes = 10

	legendBox    = 10.0
	legendGap    = 8.0
	legendColGap = 20.0
	legendText   = 6.0

	minPlotHeight = 40.0

	seriesWidth = 2.0
	totalWidth  = 3.0
)

// DefaultPalette is the colour cycle for customer series.
var DefaultPalette = []color.RGBA{
	{R: 33, G: 150, B: 243, A: 255}, // blue
	{R: 244, G: 67, B: 54, A: 255},  // red
	{R: 76, G: 175, B: 80, A: 255},  // green
	{R: 255, G: 152, B: 0, A: 255},  // orange
	{R: 156, G: 39, B: 176, A: 255}, // purple
	{R: 0, G: 188, B: 212, A: 255},  // cyan
	{R: 121, G: 85, B: 72, A: 255},  // brown
	{R: 63, G: 81, B: 181, A: 255},  // indigo
	{R: 205, G: 220, B: 57, A: 255}, // lime
	{R: 0, G: 150, B: 136, A: 255},  // teal
}

// TotalColor is used for the TOTAL series.
var TotalColor = color.RGBA{A: 255}

// Point is a position in image coordinates.
type Point struct {
	X, Y float64
}

// Gridline is a horizontal guide with its value label.
type Gridline struct {
	Y     float64
	Value float64
	Label string
}

// Tick is an x-axis label position.
type Tick struct {
	X     float64
	Label string
}

// Polyline is one plotted series.
type Polyline struct {
	Name   string
	Color  color.RGBA
	Width  float64
	Points []Point
}

// LegendEntry is a swatch plus name, positioned by its top-left corner.
type LegendEntry struct {
	X, Y  float64
	Name  string
	Color color.RGBA
}

// Layout is the fully resolved geometry of a chart, independent of drawing.
type Layout struct {
	Width, Height int
	Title         string
	Empty         bool

	Left, Right, Top, Bottom float64

	Max       float64
	Gridlines []Gridline
	Ticks     []Tick
	Polylines []Polyline
	Legend    []LegendEntry
}

// Layout resolves the geometry for data. A TOTAL series is always placed
// last so it is drawn over the customer lines. When wrapped legend rows
// leave less than minPlotHeight, the plot keeps its minimum height and the
// legend overlaps it.
func (r *Renderer) Layout(data model.ChartData) Layout {
	w, h := float64(r.opts.Width), float64(r.opts.Height)
	lay := Layout{
		Width:  r.opts.Width,
		Height: r.opts.Height,
		Title:  data.Title,
		Empty:  data.Empty(),
		Left:   padLeft,
		Right:  w - padRight,
		Top:    padTop,
		Bottom: h - padBottom,
	}
	if lay.Empty {
		return lay
	}

	series := totalLast(data.Series)

	var rows int
	lay.Legend, rows = r.legend(series, padLeft, padTop-legendBox, w)
	lay.Top += float64(rows-1) * (legendBox + legendGap)
	lay.Top = min(lay.Top, lay.Bottom-minPlotHeight)

	lay.Max = maxValue(series)
	plotW := lay.Right - lay.Left
	plotH := lay.Bottom - lay.Top
	points := len(data.Labels)

	xAt := func(i int) float64 {
		return lay.Left + plotW*float64(i)/float64(max(1, points-1))
	}
	yAt := func(v float64) float64 {
		return lay.Bottom - v/lay.Max*plotH
	}

	for i := 0; i <= gridIntervals; i++ {
		v := lay.Max * float64(i) / gridIntervals
		lay.Gridlines = append(lay.Gridlines, Gridline{
			Y:     lay.Bottom - plotH*float64(i)/gridIntervals,
			Value: v,
			Label: r.opts.CurrencyPrefix + util.FormatCount(int(math.Round(v))),
		})
	}

	for _, i := range tickIndices(points) {
		lay.Ticks = append(lay.Ticks, Tick{X: xAt(i), Label: shortLabel(data.Labels[i])})
	}

	for si, s := range series {
		line := Polyline{Name: s.Name, Width: seriesWidth, Color: r.seriesColor(si)}
		if s.Name == constants.TotalSeriesName {
			line.Width = totalWidth
			line.Color = TotalColor
		}
		for i := 0; i < points; i++ {
			v := 0.0
			if i < len(s.Values) {
				v = s.Values[i]
			}
			line.Points = append(line.Points, Point{X: xAt(i), Y: yAt(v)})
		}
		lay.Polylines = append(lay.Polylines, line)
	}

	return lay
}

func (r *Renderer) seriesColor(i int) color.RGBA {
	return r.opts.Palette[i%len(r.opts.Palette)]
}

// legend places one entry per series left to right, wrapping to a new row
// when the next entry would cross the right padding.
func (r *Renderer) legend(series []model.Series, left, top, width float64) ([]LegendEntry, int) {
	entries := make([]LegendEntry, 0, len(series))
	x, y := left, top
	rows := 1

	for si, s := range series {
		entryW := legendBox + legendText + r.measure(s.Name)
		if x > left && x+entryW > width-padRight {
			x = left
			y += legendBox + legendGap
			rows++
		}

		c := r.seriesColor(si)
		if s.Name == constants.TotalSeriesName {
			c = TotalColor
		}
		entries = append(entries, LegendEntry{X: x, Y: y, Name: s.Name, Color: c})
		x += entryW + legendColGap
	}
	return entries, rows
}

// totalLast returns series with any TOTAL series moved to the end, keeping
// the relative order of the others.
func totalLast(series []model.Series) []model.Series {
	out := make([]model.Series, 0, len(series))
	var totals []model.Series
	for _, s := range series {
		if s.Name == constants.TotalSeriesName {
			totals = append(totals, s)
			continue
		}
		out = append(out, s)
	}
	return append(out, totals...)
}

// maxValue returns the largest value of any series, never below 1.
func maxValue(series []model.Series) float64 {
	m := 1.0
	for _, s := range series {
		for _, v := range s.Values {
			if v > m {
				m = v
			}
		}
	}
	return m
}

// tickIndices returns at most maxTicks evenly stepped label indices.
func tickIndices(points int) []int {
	if points <= 0 {
		return nil
	}
	step := max(1, (points+maxTicks-1)/maxTicks)
	idx := make([]int, 0, maxTicks)
	for i := 0; i < points; i += step {
		idx = append(idx, i)
	}
	return idx
}

// shortLabel truncates labels longer than maxLabelRunes with an ellipsis.
func shortLabel(label string) string {
	if utf8.RuneCountInString(label) <= maxLabelRunes {
		return label
	}
	return string([]rune(label)[:maxLabelRunes]) + "…"
}

package chart

import (
	"bytes"
	"fmt"
	"image/png"
	"path/filepath"
	"strings"
	"testing"

	"github.com/penwyp/go-pos/internal/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func weeklyScenario() model.ChartData {
	return model.ChartData{
		Title:  "Weekly Sales per Customer",
		Labels: []string{"2024-W01", "2024-W02"},
		Series: []model.Series{
			{Name: "alice", Values: []float64{100, 30}},
			{Name: "bob", Values: []float64{50, 0}},
			{Name: "TOTAL", Values: []float64{150, 30}},
		},
	}
}

func TestLayout_SeriesStyling(t *testing.T) {
	r := NewRenderer(Options{CurrencyPrefix: "₱"})
	lay := r.Layout(weeklyScenario())

	require.False(t, lay.Empty)
	require.Len(t, lay.Polylines, 3)

	assert.Equal(t, "alice", lay.Polylines[0].Name)
	assert.Equal(t, DefaultPalette[0], lay.Polylines[0].Color)
	assert.Equal(t, 2.0, lay.Polylines[0].Width)

	assert.Equal(t, DefaultPalette[1], lay.Polylines[1].Color)

	total := lay.Polylines[2]
	assert.Equal(t, "TOTAL", total.Name)
	assert.Equal(t, TotalColor, total.Color)
	assert.Equal(t, 3.0, total.Width)
}

func TestLayout_Geometry(t *testing.T) {
	r := NewRenderer(Options{Width: 900, Height: 520, CurrencyPrefix: "₱"})
	lay := r.Layout(weeklyScenario())

	assert.Equal(t, 150.0, lay.Max)
	assert.Equal(t, 70.0, lay.Left)
	assert.Equal(t, 870.0, lay.Right)
	assert.Equal(t, 440.0, lay.Bottom)

	total := lay.Polylines[2].Points
	require.Len(t, total, 2)
	assert.Equal(t, lay.Left, total[0].X)
	assert.Equal(t, lay.Right, total[1].X)
	assert.InDelta(t, lay.Top, total[0].Y, 1e-9, "the maximum touches the top of the plot")

	bob := lay.Polylines[1].Points
	assert.InDelta(t, lay.Bottom, bob[1].Y, 1e-9, "zero sits on the x axis")
}

func TestLayout_Gridlines(t *testing.T) {
	r := NewRenderer(Options{CurrencyPrefix: "₱"})
	lay := r.Layout(weeklyScenario())

	labels := make([]string, len(lay.Gridlines))
	for i, g := range lay.Gridlines {
		labels[i] = g.Label
	}
	assert.Equal(t, []string{"₱0", "₱30", "₱60", "₱90", "₱120", "₱150"}, labels)
	assert.Equal(t, lay.Bottom, lay.Gridlines[0].Y)
	assert.InDelta(t, lay.Top, lay.Gridlines[5].Y, 1e-9)
}

func TestLayout_MaxFloor(t *testing.T) {
	r := NewRenderer(Options{})
	lay := r.Layout(model.ChartData{
		Labels: []string{"2024-01-01"},
		Series: []model.Series{{Name: "TOTAL", Values: []float64{0}}},
	})

	assert.Equal(t, 1.0, lay.Max)
	require.Len(t, lay.Polylines, 1)
	assert.Equal(t, lay.Left, lay.Polylines[0].Points[0].X, "a single point sits at the left edge")
}

func TestLayout_Empty(t *testing.T) {
	r := NewRenderer(Options{})

	for name, data := range map[string]model.ChartData{
		"no series":        {Title: "Daily Sales per Customer"},
		"empty total only": {Series: []model.Series{{Name: "TOTAL"}}},
	} {
		t.Run(name, func(t *testing.T) {
			lay := r.Layout(data)
			assert.True(t, lay.Empty)
			assert.Empty(t, lay.Polylines)
			assert.Empty(t, lay.Legend)
			assert.Empty(t, lay.Ticks)
		})
	}
}

func TestTickIndices(t *testing.T) {
	tests := []struct {
		points   int
		expected []int
	}{
		{points: 0, expected: nil},
		{points: 1, expected: []int{0}},
		{points: 10, expected: []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}},
		{points: 11, expected: []int{0, 2, 4, 6, 8, 10}},
		{points: 25, expected: []int{0, 3, 6, 9, 12, 15, 18, 21, 24}},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.points), func(t *testing.T) {
			idx := tickIndices(tt.points)
			assert.Equal(t, tt.expected, idx)
			assert.LessOrEqual(t, len(idx), maxTicks)
		})
	}
}

func TestShortLabel(t *testing.T) {
	assert.Equal(t, "2024-01-01", shortLabel("2024-01-01"))
	assert.Equal(t, "2024-W01", shortLabel("2024-W01"))
	assert.Equal(t, "Long custo…", shortLabel("Long customer name"))
	assert.Equal(t, strings.Repeat("ñ", 10)+"…", shortLabel(strings.Repeat("ñ", 11)))
}

func TestLayout_LegendWraps(t *testing.T) {
	data := model.ChartData{Labels: []string{"2024-01"}}
	for i := 0; i < 6; i++ {
		data.Series = append(data.Series, model.Series{Name: fmt.Sprintf("customer-with-a-long-name-%d", i), Values: []float64{float64(i)}})
	}
	data.Series = append(data.Series, model.Series{Name: "TOTAL", Values: []float64{15}})

	narrow := NewRenderer(Options{Width: 400, Height: 400}).Layout(data)
	wide := NewRenderer(Options{Width: 4000, Height: 400}).Layout(data)

	rows := func(lay Layout) int {
		seen := map[float64]bool{}
		for _, e := range lay.Legend {
			seen[e.Y] = true
		}
		return len(seen)
	}

	assert.Equal(t, 1, rows(wide))
	assert.Greater(t, rows(narrow), 1)
	assert.Greater(t, narrow.Top, wide.Top, "extra legend rows push the plot down")

	assert.Equal(t, padLeft, narrow.Legend[0].X)
	for _, e := range narrow.Legend {
		assert.GreaterOrEqual(t, e.X, padLeft)
	}
	last := narrow.Legend[len(narrow.Legend)-1]
	assert.Equal(t, "TOTAL", last.Name)
	assert.Equal(t, TotalColor, last.Color)
}

func TestLayout_SmallHeightKeepsAxisUpright(t *testing.T) {
	data := model.ChartData{Labels: []string{"2024-01", "2024-02"}}
	for i := 0; i < 3; i++ {
		data.Series = append(data.Series, model.Series{Name: fmt.Sprintf("customer-with-a-long-name-%d", i), Values: []float64{float64(i), 3}})
	}
	data.Series = append(data.Series, model.Series{Name: "TOTAL", Values: []float64{7, 10}})

	lay := NewRenderer(Options{Width: 300, Height: 100}).Layout(data)

	assert.Equal(t, 300, lay.Width)
	assert.Equal(t, 200, lay.Height, "heights below the minimum are raised")
	assert.GreaterOrEqual(t, lay.Bottom-lay.Top, minPlotHeight)
	assert.Greater(t, lay.Top, 0.0)

	for i := 1; i < len(lay.Gridlines); i++ {
		assert.Less(t, lay.Gridlines[i].Y, lay.Gridlines[i-1].Y, "higher values sit higher on the image")
	}

	total := lay.Polylines[len(lay.Polylines)-1]
	require.Equal(t, "TOTAL", total.Name)
	assert.Less(t, total.Points[1].Y, total.Points[0].Y, "10 is drawn above 7")
	assert.InDelta(t, lay.Top, total.Points[1].Y, 1e-9)
}

func TestLayout_TotalDrawnLast(t *testing.T) {
	data := model.ChartData{
		Labels: []string{"2024-01"},
		Series: []model.Series{
			{Name: "TOTAL", Values: []float64{15}},
			{Name: "alice", Values: []float64{10}},
			{Name: "bob", Values: []float64{5}},
		},
	}

	lay := NewRenderer(Options{}).Layout(data)

	names := make([]string, len(lay.Polylines))
	for i, p := range lay.Polylines {
		names[i] = p.Name
	}
	assert.Equal(t, []string{"alice", "bob", "TOTAL"}, names)
	assert.Equal(t, DefaultPalette[0], lay.Polylines[0].Color)
	assert.Equal(t, TotalColor, lay.Polylines[2].Color)
	assert.Equal(t, "TOTAL", lay.Legend[len(lay.Legend)-1].Name)
}

func TestLayout_PaletteCycles(t *testing.T) {
	data := model.ChartData{Labels: []string{"x"}}
	for i := 0; i < 12; i++ {
		data.Series = append(data.Series, model.Series{Name: fmt.Sprint(i), Values: []float64{1}})
	}

	lay := NewRenderer(Options{}).Layout(data)
	assert.Equal(t, DefaultPalette[0], lay.Polylines[10].Color)
	assert.Equal(t, DefaultPalette[1], lay.Polylines[11].Color)
}

func TestRenderPNG(t *testing.T) {
	r := NewRenderer(Options{Width: 640, Height: 360, CurrencyPrefix: "₱"})

	for name, data := range map[string]model.ChartData{
		"scenario": weeklyScenario(),
		"empty":    {},
	} {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, r.RenderPNG(&buf, data))

			img, err := png.Decode(&buf)
			require.NoError(t, err)
			assert.Equal(t, 640, img.Bounds().Dx())
			assert.Equal(t, 360, img.Bounds().Dy())
		})
	}
}

func TestSavePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chart.png")
	r := NewRenderer(Options{})
	require.NoError(t, r.SavePNG(path, weeklyScenario()))
	assert.FileExists(t, path)
}

func TestRender_DrawsTotalInBlack(t *testing.T) {
	r := NewRenderer(Options{Width: 600, Height: 400})
	data := model.ChartData{
		Labels: []string{"a", "b"},
		Series: []model.Series{{Name: "TOTAL", Values: []float64{5, 5}}},
	}
	lay := r.Layout(data)
	img := r.Render(data)

	mid := lay.Polylines[0].Points[0]
	x := int((lay.Left + lay.Right) / 2)
	cr, cg, cb, _ := img.At(x, int(mid.Y)).RGBA()
	assert.Less(t, cr>>8, uint32(60))
	assert.Less(t, cg>>8, uint32(60))
	assert.Less(t, cb>>8, uint32(60))
}

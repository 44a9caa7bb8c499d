package render

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/KirkDiggler/dicegraph/internal/models"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Format is an image format a chart can be rendered to
type Format string

const (
	FormatSVG Format = "svg"
	FormatPNG Format = "png"
)

// ErrNilStore is returned when there is nothing to render
var ErrNilStore = errors.New("roll store cannot be nil")

// ChartOptions controls how a distribution chart looks
type ChartOptions struct {
	Format   Format
	DarkMode bool

	// Title defaults to the dice configuration
	Title string

	Width  int
	Height int
}

type palette struct {
	background drawing.Color
	bar        drawing.Color
	text       drawing.Color
}

var (
	lightPalette = palette{
		background: drawing.ColorWhite,
		bar:        drawing.ColorFromHex("4682b4"),
		text:       drawing.ColorFromHex("333333"),
	}
	darkPalette = palette{
		background: drawing.ColorFromHex("2b2b2b"),
		bar:        drawing.ColorFromHex("5fa8d3"),
		text:       drawing.ColorFromHex("e0e0e0"),
	}
)

// Chart renders the distribution of store as a bar chart, one bar per value
func Chart(w io.Writer, store *models.RollStore, opts ChartOptions) error {
	if store == nil {
		return ErrNilStore
	}

	var provider chart.RendererProvider
	switch opts.Format {
	case FormatSVG, "":
		provider = chart.SVG
	case FormatPNG:
		provider = chart.PNG
	default:
		return fmt.Errorf("unsupported chart format %q", opts.Format)
	}

	colors := lightPalette
	if opts.DarkMode {
		colors = darkPalette
	}

	title := opts.Title
	if title == "" {
		title = store.Config().String()
	}

	width, height := opts.Width, opts.Height
	if width <= 0 {
		width = 800
	}
	if height <= 0 {
		height = 500
	}

	var bars []chart.Value
	var highest int64
	for value, count := range store.Distribution() {
		bars = append(bars, chart.Value{
			Label: strconv.Itoa(value),
			Value: float64(count),
			Style: chart.Style{
				FillColor:   colors.bar,
				StrokeColor: colors.bar,
				StrokeWidth: 1,
			},
		})
		highest = max(highest, count)
	}

	// an all-zero range is rejected by go-chart
	top := float64(max(highest, 1)) * 1.1

	textStyle := chart.Style{FontColor: colors.text}
	bc := chart.BarChart{
		Title:      fmt.Sprintf("%s (%d rolls)", title, store.Total()),
		TitleStyle: textStyle,
		Background: chart.Style{
			FillColor: colors.background,
			Padding:   chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16},
		},
		Canvas:   chart.Style{FillColor: colors.background},
		Width:    width,
		Height:   height,
		BarWidth: barWidth(width, len(bars)),
		XAxis:    textStyle,
		YAxis: chart.YAxis{
			Style: textStyle,
			Range: &chart.ContinuousRange{Min: 0, Max: top},
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return strconv.FormatFloat(f, 'f', 0, 64)
				}
				return ""
			},
		},
		Bars: bars,
	}

	if err := bc.Render(provider, w); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	return nil
}

func barWidth(width, bars int) int {
	if bars == 0 {
		return 40
	}
	return max(4, min(60, (width-100)/(bars*2)))
}

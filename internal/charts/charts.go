// Package charts renders ridership series to PNG.
package charts

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/transitstats/mta-ridership/internal/ridership"
)

// ErrNoData is returned when there is nothing to plot.
var ErrNoData = errors.New("no data to chart")

type Size struct {
	Width  int
	Height int
}

var DefaultSize = Size{Width: 1024, Height: 400}

var printer = message.NewPrinter(language.English)

func thousands(v interface{}) string {
	if f, ok := v.(float64); ok {
		return printer.Sprintf("%d", int64(f))
	}
	return fmt.Sprint(v)
}

func percentLabel(v interface{}) string {
	if f, ok := v.(float64); ok {
		return fmt.Sprintf("%.0f%%", f)
	}
	return fmt.Sprint(v)
}

func (s Size) orDefault() Size {
	if s.Width <= 0 || s.Height <= 0 {
		return DefaultSize
	}
	return s
}

// TrendPNG draws a daily ridership line for one selector.
func TrendPNG(w io.Writer, sel ridership.Selector, points []ridership.TrendPoint, size Size) error {
	if len(points) == 0 {
		return ErrNoData
	}
	size = size.orDefault()

	xs := make([]time.Time, 0, len(points)+1)
	ys := make([]float64, 0, len(points)+1)
	for _, p := range points {
		xs = append(xs, p.Date)
		ys = append(ys, float64(p.Value))
	}
	// a single point has a zero-width x range, which go-chart refuses to render
	if len(xs) == 1 {
		xs = append(xs, xs[0].AddDate(0, 0, 1))
		ys = append(ys, ys[0])
	}

	ch := chart.Chart{
		Title:      fmt.Sprintf("%s, %d to %d", sel, points[0].Date.Year(), points[len(points)-1].Date.Year()),
		Width:      size.Width,
		Height:     size.Height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		XAxis: chart.XAxis{
			Name:           "Date",
			ValueFormatter: chart.TimeDateValueFormatter,
		},
		YAxis: chart.YAxis{
			Name:           "Riders",
			ValueFormatter: thousands,
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Name: sel.String(),
				Style: chart.Style{
					StrokeColor: drawing.ColorFromHex("0039A6"),
					StrokeWidth: 1.5,
				},
				XValues: xs,
				YValues: ys,
			},
		},
	}

	if err := ch.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("error rendering trend chart: %w", err)
	}
	return nil
}

// ModalSharePNG draws one bar per mode with its share of the year's ridership.
func ModalSharePNG(w io.Writer, ms ridership.ModalShare, size Size) error {
	if len(ms.Shares) == 0 || ms.Total == 0 {
		return ErrNoData
	}
	size = size.orDefault()

	bars := make([]chart.Value, 0, len(ms.Shares))
	for _, s := range ms.Shares {
		bars = append(bars, chart.Value{Label: s.Mode.String(), Value: s.Percent})
	}

	bc := chart.BarChart{
		Title:      fmt.Sprintf("Modal share %d", ms.Year),
		Width:      size.Width,
		Height:     size.Height,
		BarWidth:   size.Width / (2 * len(bars)),
		Background: chart.Style{Padding: chart.Box{Top: 40}},
		YAxis: chart.YAxis{
			Range:          &chart.ContinuousRange{Min: 0, Max: 100},
			ValueFormatter: percentLabel,
		},
		Bars: bars,
	}

	if err := bc.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("error rendering modal share chart: %w", err)
	}
	return nil
}

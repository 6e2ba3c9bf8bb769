// Package charts renders derived report series as PNG images using go-chart.
package charts

import (
	"bytes"
	"fmt"

	"github.com/wcharczuk/go-chart/v2"

	"gramkosh/internal/report"
)

// Renderer generates chart images from report series.
type Renderer struct {
	width  int
	height int
}

// NewRenderer creates a Renderer with the default dashboard dimensions.
func NewRenderer() *Renderer {
	return &Renderer{width: 900, height: 450}
}

// Bar renders a labelled bar chart. Returns nil bytes when the series is
// empty, since there is nothing to draw.
func (r *Renderer) Bar(title string, s report.Series) ([]byte, error) {
	if len(s.Labels) == 0 {
		return nil, nil
	}

	bars := make([]chart.Value, len(s.Labels))
	for i, label := range s.Labels {
		bars[i] = chart.Value{Label: label, Value: s.Values[i].InexactFloat64()}
	}

	graph := chart.BarChart{
		Title:    title,
		Width:    r.width,
		Height:   r.height,
		BarWidth: 50,
		Background: chart.Style{
			Padding:   chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20},
			FillColor: chart.ColorWhite,
		},
		Bars: bars,
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("rendering bar chart: %w", err)
	}
	return buf.Bytes(), nil
}

// Pie renders a share-of-total pie chart. Zero-valued points are dropped
// because go-chart cannot draw zero-width slices; a series that sums to zero
// yields nil bytes.
func (r *Renderer) Pie(title string, s report.Series) ([]byte, error) {
	values := make([]chart.Value, 0, len(s.Labels))
	for i, label := range s.Labels {
		v := s.Values[i].InexactFloat64()
		if v <= 0 {
			continue
		}
		values = append(values, chart.Value{Label: label, Value: v})
	}
	if len(values) == 0 {
		return nil, nil
	}

	graph := chart.PieChart{
		Title:  title,
		Width:  r.height,
		Height: r.height,
		Values: values,
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("rendering pie chart: %w", err)
	}
	return buf.Bytes(), nil
}

// Line renders a line chart over the series labels in order, used for
// cumulative and monthly trends.
func (r *Renderer) Line(title string, s report.Series) ([]byte, error) {
	if len(s.Labels) == 0 {
		return nil, nil
	}

	xValues := make([]float64, len(s.Labels))
	ticks := make([]chart.Tick, len(s.Labels))
	for i, label := range s.Labels {
		xValues[i] = float64(i)
		ticks[i] = chart.Tick{Value: float64(i), Label: label}
	}

	graph := chart.Chart{
		Title:  title,
		Width:  r.width,
		Height: r.height,
		Background: chart.Style{
			Padding:   chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20},
			FillColor: chart.ColorWhite,
		},
		XAxis: chart.XAxis{Ticks: ticks},
		YAxis: chart.YAxis{
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("%.0f", f)
				}
				return ""
			},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				XValues: xValues,
				YValues: s.Floats(),
				Style: chart.Style{
					StrokeColor: chart.ColorBlue,
					StrokeWidth: 2,
				},
			},
		},
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("rendering line chart: %w", err)
	}
	return buf.Bytes(), nil
}

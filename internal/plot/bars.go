package plot

import (
	"errors"
	"fmt"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/idsia/crema-analysis/internal/metrics"
)

// ClassMetrics is the per-class report of one named model run.
type ClassMetrics struct {
	Model  string
	Report metrics.ClassReport
}

// classMetricNames label the four per-class measures, in drawing order.
var classMetricNames = []string{"accuracy", "precision", "recall", "f1_score"}

func classMetricValues(r metrics.ClassReport) [][]float64 {
	return [][]float64{r.Accuracy, r.Precision, r.Recall, r.F1}
}

// ClassMetricsBars builds a grouped bar chart: one group per (measure,
// class), one bar per model run inside each group. Groups are separated by
// an empty slot.
func ClassMetricsBars(title string, runs []ClassMetrics) (chart.BarChart, error) {
	if len(runs) == 0 {
		return chart.BarChart{}, errors.New("class metrics: no runs")
	}
	classes := len(runs[0].Report.Accuracy)
	for _, run := range runs {
		if len(run.Report.Accuracy) != classes {
			return chart.BarChart{}, fmt.Errorf("class metrics: run %q has %d classes, want %d",
				run.Model, len(run.Report.Accuracy), classes)
		}
	}

	values := make([][][]float64, len(runs))
	for i, run := range runs {
		values[i] = classMetricValues(run.Report)
	}

	spacer := chart.Value{Style: chart.Style{
		FillColor:   drawing.ColorTransparent,
		StrokeColor: drawing.ColorTransparent,
	}}

	var bars []chart.Value
	for m, name := range classMetricNames {
		for c := 0; c < classes; c++ {
			if len(bars) > 0 {
				bars = append(bars, spacer)
			}
			for i := range runs {
				bar := chart.Value{
					Value: values[i][m][c],
					Style: chart.Style{
						FillColor:   seriesColor(i),
						StrokeColor: seriesColor(i),
					},
				}
				if i == len(runs)/2 {
					bar.Label = fmt.Sprintf("%s/X%d", name, c)
				}
				bars = append(bars, bar)
			}
		}
	}

	names := make([]string, len(runs))
	for i, run := range runs {
		names[i] = run.Model
	}

	width := 120 + len(bars)*(len(runs)*4+14)
	if width < 640 {
		width = 640
	}

	return chart.BarChart{
		Title:      title,
		Width:      width,
		Height:     480,
		BarWidth:   14,
		BarSpacing: 2,
		Background: chart.Style{Padding: chart.Box{Top: 64, Left: 16, Right: 16, Bottom: 16}},
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: 1},
			Ticks: unitTicks(),
		},
		Bars:     bars,
		Elements: []chart.Renderable{swatchLegend(names)},
	}, nil
}

// swatchLegend draws a coloured square and name per model along the top of
// the canvas.
func swatchLegend(names []string) chart.Renderable {
	return func(r chart.Renderer, cb chart.Box, defaults chart.Style) {
		font := defaults.GetFont()
		if font == nil {
			var err error
			if font, err = chart.GetDefaultFont(); err != nil {
				return
			}
		}

		x := cb.Left
		y := cb.Top - 14
		for i, name := range names {
			fillRect(r, x, y-8, x+10, y+2, seriesColor(i))

			r.SetFont(font)
			r.SetFontSize(9)
			r.SetFontColor(drawing.ColorBlack)
			box := r.MeasureText(name)
			r.Text(name, x+14, y+2)
			r.ResetStyle()

			x += 14 + box.Width() + 18
		}
	}
}

// unitTicks are 0, 0.2, ..., 1.
func unitTicks() []chart.Tick {
	ticks := make([]chart.Tick, 0, 6)
	for i := 0; i <= 5; i++ {
		v := float64(i) / 5
		ticks = append(ticks, chart.Tick{Value: v, Label: fmt.Sprintf("%.1f", v)})
	}
	return ticks
}

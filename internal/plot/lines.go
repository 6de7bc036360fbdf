package plot

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Marker is the point style of a line series, named like matplotlib's.
type Marker string

const (
	MarkerNone     Marker = "none"
	MarkerCircle   Marker = "o"
	MarkerSquare   Marker = "s"
	MarkerTriangle Marker = "^"
	MarkerDiamond  Marker = "D"
	MarkerCross    Marker = "x"
)

// DefaultMarkers is cycled through for series without an explicit marker.
var DefaultMarkers = []Marker{MarkerCircle, MarkerSquare, MarkerTriangle, MarkerDiamond, MarkerCross}

// ParseMarker validates s. The empty string means MarkerNone.
func ParseMarker(s string) (Marker, error) {
	switch m := Marker(strings.TrimSpace(s)); m {
	case "", MarkerNone:
		return MarkerNone, nil
	case MarkerCircle, MarkerSquare, MarkerTriangle, MarkerDiamond, MarkerCross:
		return m, nil
	default:
		return "", fmt.Errorf("unknown marker %q", s)
	}
}

// Series is one model's metric value after each question.
type Series struct {
	Name   string
	Values []float64
	Marker Marker
	Dashed bool
	// Annotate labels the last point with its value.
	Annotate bool
}

const markerSize = 4

// MetricPerQuestion plots metric against question number (1-based), one
// line per series. The y axis starts at 0 and reaches at least 1.
func MetricPerQuestion(title, metric string, series []Series) (*chart.Chart, error) {
	if len(series) == 0 {
		return nil, errors.New("metric per question: no series")
	}
	questions := len(series[0].Values)
	if questions == 0 {
		return nil, errors.New("metric per question: no questions")
	}
	for _, s := range series {
		if len(s.Values) != questions {
			return nil, fmt.Errorf("metric per question: series %q has %d points, want %d", s.Name, len(s.Values), questions)
		}
	}

	xr := &chart.ContinuousRange{Min: 1, Max: float64(max(questions, 2))}
	top, yTicks := valueScale(series)
	yr := &chart.ContinuousRange{Min: 0, Max: top}

	xs := make([]float64, questions)
	for j := range xs {
		xs[j] = float64(j + 1)
	}

	var (
		out     []chart.Series
		notes   []chart.Value2
		markers []markerSet
	)
	for i, s := range series {
		color := seriesColor(i)
		style := chart.Style{
			StrokeColor: color,
			StrokeWidth: 2,
		}
		if s.Dashed {
			style.StrokeDashArray = []float64{6, 4}
		}
		if s.Marker == MarkerCircle {
			style.DotColor = color
			style.DotWidth = markerSize
		}

		out = append(out, chart.ContinuousSeries{
			Name:    s.Name,
			Style:   style,
			XValues: xs,
			YValues: s.Values,
		})

		if s.Marker != MarkerCircle && s.Marker != MarkerNone && s.Marker != "" {
			markers = append(markers, markerSet{marker: s.Marker, color: color, ys: s.Values})
		}
		if s.Annotate {
			last := s.Values[questions-1]
			notes = append(notes, chart.Value2{
				XValue: xs[questions-1],
				YValue: last,
				Label:  strconv.FormatFloat(last, 'f', 2, 64),
				Style:  chart.Style{StrokeColor: color},
			})
		}
	}
	if len(notes) > 0 {
		out = append(out, chart.AnnotationSeries{Annotations: notes})
	}

	ch := &chart.Chart{
		Title:      title,
		Width:      800,
		Height:     480,
		Background: chart.Style{Padding: chart.Box{Top: 48, Left: 16, Right: 48, Bottom: 16}},
		XAxis: chart.XAxis{
			Name:  "Question",
			Range: xr,
			Ticks: questionTicks(questions),
		},
		YAxis: chart.YAxis{
			Name:  metric,
			Range: yr,
			Ticks: yTicks,
		},
		Series: out,
	}
	ch.Elements = []chart.Renderable{
		drawMarkers(markers, xs, xr, yr),
		chart.Legend(ch),
	}
	return ch, nil
}

type markerSet struct {
	marker Marker
	color  drawing.Color
	ys     []float64
}

// drawMarkers paints non-circle markers. The ranges are the chart's own, so
// their domains are already sized to the canvas when elements render.
func drawMarkers(sets []markerSet, xs []float64, xr, yr *chart.ContinuousRange) chart.Renderable {
	return func(r chart.Renderer, cb chart.Box, _ chart.Style) {
		for _, set := range sets {
			for j, y := range set.ys {
				px := cb.Left + xr.Translate(xs[j])
				py := cb.Bottom - yr.Translate(y)
				drawMarker(r, set.marker, set.color, px, py)
			}
		}
	}
}

func drawMarker(r chart.Renderer, m Marker, c drawing.Color, x, y int) {
	const s = markerSize
	r.SetFillColor(c)
	r.SetStrokeColor(c)
	r.SetStrokeWidth(1.5)
	switch m {
	case MarkerSquare:
		r.MoveTo(x-s, y-s)
		r.LineTo(x+s, y-s)
		r.LineTo(x+s, y+s)
		r.LineTo(x-s, y+s)
		r.Close()
		r.FillStroke()
	case MarkerTriangle:
		r.MoveTo(x, y-s-1)
		r.LineTo(x+s+1, y+s)
		r.LineTo(x-s-1, y+s)
		r.Close()
		r.FillStroke()
	case MarkerDiamond:
		r.MoveTo(x, y-s-1)
		r.LineTo(x+s+1, y)
		r.LineTo(x, y+s+1)
		r.LineTo(x-s-1, y)
		r.Close()
		r.FillStroke()
	case MarkerCross:
		r.MoveTo(x-s, y-s)
		r.LineTo(x+s, y+s)
		r.Stroke()
		r.MoveTo(x-s, y+s)
		r.LineTo(x+s, y-s)
		r.Stroke()
	}
	r.ResetStyle()
}

// tickSteps are the y tick spacings tried in order; the first giving at
// most ten intervals wins.
var tickSteps = []float64{0.2, 0.5, 1, 2, 5, 10}

// valueScale returns the y axis top, max(1, largest value) rounded up to a
// tick, and the ticks from 0 to it. Credal upper bounds do not sum to 1, so
// their Brier score and entropy can exceed 1.
func valueScale(series []Series) (float64, []chart.Tick) {
	top := 1.0
	for _, s := range series {
		for _, v := range s.Values {
			if v > top && !math.IsInf(v, 1) {
				top = v
			}
		}
	}

	step := tickSteps[len(tickSteps)-1]
	for _, st := range tickSteps {
		if math.Ceil(top/st-1e-9) <= 10 {
			step = st
			break
		}
	}
	n := int(math.Ceil(top/step - 1e-9))

	ticks := make([]chart.Tick, 0, n+1)
	for i := 0; i <= n; i++ {
		v := float64(i) * step
		ticks = append(ticks, chart.Tick{Value: v, Label: fmt.Sprintf("%.1f", v)})
	}
	return float64(n) * step, ticks
}

// questionTicks labels question numbers, thinning to at most ~20 ticks.
func questionTicks(questions int) []chart.Tick {
	last := max(questions, 2)
	step := 1
	for last/step > 20 {
		step++
	}
	ticks := []chart.Tick{}
	for q := 1; q <= last; q += step {
		ticks = append(ticks, chart.Tick{Value: float64(q), Label: strconv.Itoa(q)})
	}
	if ticks[len(ticks)-1].Value != float64(last) {
		ticks = append(ticks, chart.Tick{Value: float64(last), Label: strconv.Itoa(last)})
	}
	return ticks
}

package plot

import (
	"math"

	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/idsia/crema-analysis/internal/ui/theme"
)

// blues is a sequential white-to-navy ramp.
var blues = []drawing.Color{
	drawing.ColorFromHex("F7FBFF"),
	drawing.ColorFromHex("C6DBEF"),
	drawing.ColorFromHex("6BAED6"),
	drawing.ColorFromHex("2171B5"),
	drawing.ColorFromHex("08306B"),
}

// Blues maps t in [0,1] onto the ramp; values outside are clamped.
func Blues(t float64) drawing.Color {
	if math.IsNaN(t) || t <= 0 {
		return blues[0]
	}
	if t >= 1 {
		return blues[len(blues)-1]
	}
	pos := t * float64(len(blues)-1)
	i := int(pos)
	frac := pos - float64(i)
	return lerp(blues[i], blues[i+1], frac)
}

func lerp(a, b drawing.Color, t float64) drawing.Color {
	mix := func(x, y uint8) uint8 {
		return uint8(math.Round(float64(x) + (float64(y)-float64(x))*t))
	}
	return drawing.Color{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: 255}
}

// seriesColor is the chart colour of model i.
func seriesColor(i int) drawing.Color {
	return drawing.ColorFromHex(theme.SeriesColor(i))
}

// Package plot renders the analysis figures: confusion-matrix heatmaps,
// grouped class-metric bars and metric-per-question lines.
package plot

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/wcharczuk/go-chart/v2"
)

// Format is an image encoding.
type Format string

const (
	PNG Format = "png"
	SVG Format = "svg"
)

// DefaultFormats are written when a caller does not choose.
var DefaultFormats = []Format{PNG, SVG}

// ParseFormat validates s.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case PNG:
		return PNG, nil
	case SVG:
		return SVG, nil
	default:
		return "", fmt.Errorf("unsupported image format %q (want png or svg)", s)
	}
}

func (f Format) provider() chart.RendererProvider {
	if f == SVG {
		return chart.SVG
	}
	return chart.PNG
}

// Renderable is anything that draws itself through a go-chart renderer.
// chart.Chart, chart.BarChart and *ConfusionGrid all qualify.
type Renderable interface {
	Render(rp chart.RendererProvider, w io.Writer) error
}

// Save renders fig once per format into dir/name.<format> and returns the
// written paths.
func Save(dir, name string, fig Renderable, formats ...Format) ([]string, error) {
	if len(formats) == 0 {
		formats = DefaultFormats
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create image dir: %w", err)
	}

	paths := make([]string, 0, len(formats))
	for _, f := range formats {
		var buf bytes.Buffer
		if err := fig.Render(f.provider(), &buf); err != nil {
			return paths, fmt.Errorf("render %s.%s: %w", name, f, err)
		}
		path := filepath.Join(dir, name+"."+string(f))
		if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
			return paths, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

package plot

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/golang/freetype/truetype"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/idsia/crema-analysis/internal/metrics"
)

// Panel is one titled confusion matrix.
type Panel struct {
	Title  string
	Matrix *metrics.ConfusionMatrix
}

// ConfusionGrid draws confusion matrices side by side as annotated heatmaps
// sharing one colour scale, with a colour bar on the right.
type ConfusionGrid struct {
	Title    string
	Panels   []Panel
	CellSize int
}

const (
	gridMargin   = 48
	gridGap      = 28
	gridTitleH   = 40
	gridBarWidth = 16
	gridFontSize = 10.0
)

// ConfusionMatrices builds a grid of panels. All matrices must share the
// same label count.
func ConfusionMatrices(title string, panels []Panel) (*ConfusionGrid, error) {
	if len(panels) == 0 {
		return nil, errors.New("confusion matrices: no panels")
	}
	labels := panels[0].Matrix.Labels
	for _, p := range panels[1:] {
		if p.Matrix.Labels != labels {
			return nil, fmt.Errorf("confusion matrices: panel %q has %d labels, want %d", p.Title, p.Matrix.Labels, labels)
		}
	}
	return &ConfusionGrid{Title: title, Panels: panels, CellSize: 48}, nil
}

func (g *ConfusionGrid) labels() int { return g.Panels[0].Matrix.Labels }

func (g *ConfusionGrid) panelSize() int { return g.labels() * g.CellSize }

// Size returns the canvas width and height in pixels.
func (g *ConfusionGrid) Size() (width, height int) {
	n := len(g.Panels)
	width = gridMargin + n*g.panelSize() + (n-1)*gridGap + gridGap + gridBarWidth + gridMargin
	height = gridTitleH + gridMargin/2 + g.panelSize() + gridMargin + gridMargin/2
	return width, height
}

// scaleMax is the largest count across every panel; at least 1.
func (g *ConfusionGrid) scaleMax() int {
	top := 1
	for _, p := range g.Panels {
		if m := p.Matrix.Max(); m > top {
			top = m
		}
	}
	return top
}

// Render draws the grid.
func (g *ConfusionGrid) Render(rp chart.RendererProvider, w io.Writer) error {
	width, height := g.Size()
	r, err := rp(width, height)
	if err != nil {
		return err
	}
	font, err := chart.GetDefaultFont()
	if err != nil {
		return err
	}

	fillRect(r, 0, 0, width, height, drawing.ColorWhite)

	if g.Title != "" {
		drawCentered(r, font, 14, drawing.ColorBlack, g.Title, width/2, gridTitleH-12)
	}

	top := gridTitleH + gridMargin/2
	vmax := float64(g.scaleMax())
	for i, p := range g.Panels {
		left := gridMargin + i*(g.panelSize()+gridGap)
		g.drawPanel(r, font, p, left, top, vmax, i == 0)
	}

	barLeft := gridMargin + len(g.Panels)*(g.panelSize()+gridGap)
	g.drawColorBar(r, font, barLeft, top, int(vmax))

	return r.Save(w)
}

func (g *ConfusionGrid) drawPanel(r chart.Renderer, font *truetype.Font, p Panel, left, top int, vmax float64, yLabel bool) {
	size := g.CellSize
	n := p.Matrix.Labels

	drawCentered(r, font, 11, drawing.ColorBlack, p.Title, left+g.panelSize()/2, top-8)

	for row := 0; row < n; row++ {
		for col := 0; col < n; col++ {
			v := p.Matrix.Counts[row][col]
			x, y := left+col*size, top+row*size
			fillRect(r, x, y, x+size, y+size, Blues(float64(v)/vmax))

			text := drawing.ColorBlack
			if float64(v) > vmax/2 {
				text = drawing.ColorWhite
			}
			drawCentered(r, font, gridFontSize, text, strconv.Itoa(v), x+size/2, y+size/2+4)
		}
	}

	bottom := top + g.panelSize()
	for i := 0; i < n; i++ {
		label := strconv.Itoa(i)
		drawCentered(r, font, gridFontSize, drawing.ColorBlack, label, left+i*size+size/2, bottom+14)
		if yLabel {
			drawCentered(r, font, gridFontSize, drawing.ColorBlack, label, left-10, top+i*size+size/2+4)
		}
	}
	drawCentered(r, font, gridFontSize, drawing.ColorBlack, "Predicted label", left+g.panelSize()/2, bottom+32)

	if yLabel {
		r.SetFont(font)
		r.SetFontSize(gridFontSize)
		r.SetFontColor(drawing.ColorBlack)
		r.SetTextRotation(chart.DegreesToRadians(270))
		r.Text("Observed label", left-26, top+g.panelSize()/2+36)
		r.ClearTextRotation()
		r.ResetStyle()
	}
}

func (g *ConfusionGrid) drawColorBar(r chart.Renderer, font *truetype.Font, left, top, vmax int) {
	height := g.panelSize()
	const steps = 32
	for s := 0; s < steps; s++ {
		y0 := top + height - (s+1)*height/steps
		y1 := top + height - s*height/steps
		fillRect(r, left, y0, left+gridBarWidth, y1, Blues((float64(s)+0.5)/steps))
	}
	drawCentered(r, font, gridFontSize, drawing.ColorBlack, strconv.Itoa(vmax), left+gridBarWidth/2, top-4)
	drawCentered(r, font, gridFontSize, drawing.ColorBlack, "0", left+gridBarWidth/2, top+height+14)
}

func fillRect(r chart.Renderer, x0, y0, x1, y1 int, c drawing.Color) {
	r.SetFillColor(c)
	r.SetStrokeColor(c)
	r.SetStrokeWidth(0)
	r.MoveTo(x0, y0)
	r.LineTo(x1, y0)
	r.LineTo(x1, y1)
	r.LineTo(x0, y1)
	r.Close()
	r.FillStroke()
	r.ResetStyle()
}

// drawCentered writes text horizontally centred on cx with its baseline at y.
func drawCentered(r chart.Renderer, font *truetype.Font, size float64, c drawing.Color, text string, cx, y int) {
	r.SetFont(font)
	r.SetFontSize(size)
	r.SetFontColor(c)
	box := r.MeasureText(text)
	r.Text(text, cx-box.Width()/2, y)
	r.ResetStyle()
}

package main

import (
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"quadrant/chart"
)

const (
	plotBackground = "#ffffff"
	plotForeground = "#000000"
	numTicks       = 5

	titleColor  = "#00ff00"
	xLabelColor = "#ff0000"
	yLabelColor = "#0000ff"
)

type cell struct {
	r    rune
	fg   string
	bg   string
	bold bool
}

// Canvas is a grid of styled cells the chart panel is drawn into.
type Canvas struct {
	cells  [][]cell
	width  int
	height int
}

func NewCanvas(width, height int) *Canvas {
	width, height = max(width, 1), max(height, 1)
	c := &Canvas{width: width, height: height, cells: make([][]cell, height)}
	for i := range c.cells {
		c.cells[i] = make([]cell, width)
		for j := range c.cells[i] {
			c.cells[i][j] = cell{r: ' '}
		}
	}
	return c
}

func (c *Canvas) isValidPos(x, y int) bool {
	return y >= 0 && y < c.height && x >= 0 && x < c.width
}

func (c *Canvas) at(x, y int) *cell {
	if !c.isValidPos(x, y) {
		return nil
	}
	return &c.cells[y][x]
}

func (c *Canvas) setRune(x, y int, r rune, fg string) {
	if p := c.at(x, y); p != nil {
		p.r = r
		p.fg = fg
	}
}

// writeString writes s from (x, y) keeping each cell's background unless
// bg is set.
func (c *Canvas) writeString(x, y int, s string, fg, bg string, bold bool) {
	for i, r := range []rune(s) {
		p := c.at(x+i, y)
		if p == nil {
			continue
		}
		p.r, p.fg, p.bold = r, fg, bold
		if bg != "" {
			p.bg = bg
		}
	}
}

// Lines renders the grid, emitting one styled run per change of style.
func (c *Canvas) Lines() []string {
	result := make([]string, c.height)
	for i, row := range c.cells {
		var line strings.Builder
		var run strings.Builder
		current := row[0]
		flush := func() {
			if run.Len() == 0 {
				return
			}
			line.WriteString(cellStyle(current).Render(run.String()))
			run.Reset()
		}
		for _, p := range row {
			if p.fg != current.fg || p.bg != current.bg || p.bold != current.bold {
				flush()
				current = p
			}
			run.WriteRune(p.r)
		}
		flush()
		result[i] = line.String()
	}
	return result
}

func cellStyle(p cell) lipgloss.Style {
	s := lipgloss.NewStyle().Bold(p.bold)
	if p.fg != "" {
		s = s.Foreground(lipgloss.Color(p.fg))
	}
	if p.bg != "" {
		s = s.Background(lipgloss.Color(p.bg))
	}
	return s
}

// blend composites a straight-alpha color over a hex background.
func blend(over color.NRGBA, base string) string {
	b, err := colorful.Hex(base)
	if err != nil {
		b = colorful.Color{R: 1, G: 1, B: 1}
	}
	c := colorful.Color{
		R: float64(over.R) / 255,
		G: float64(over.G) / 255,
		B: float64(over.B) / 255,
	}
	return b.BlendRgb(c, float64(over.A)/255).Clamped().Hex()
}

func opaque(c color.NRGBA) string {
	c.A = 0xff
	return blend(c, plotBackground)
}

// cellOf maps data coordinates to the nearest plot cell.
func cellOf(proj chart.Projection, x, y float64) (int, int) {
	sx, sy := proj.ToScreen(x, y)
	return int(math.Round(sx)), int(math.Round(sy))
}

// renderChart draws the chart panel: title row, plot with the y gutter on
// its left, then the x tick and x label rows.
func renderChart(scene chart.Scene, lay layout, height int) []string {
	canvas := NewCanvas(lay.chartWidth, height)
	proj := scene.Projection
	plotX := yGutterWidth
	plotY := chartTopRows

	title := scene.Title
	canvas.writeString(plotX+max((lay.plotW-len(title))/2, 0), 0, title, titleColor, "", true)

	// Quadrant backgrounds.
	for row := 0; row < lay.plotH; row++ {
		for col := 0; col < lay.plotW; col++ {
			x, y := proj.ToData(float64(col), float64(row))
			bg := plotBackground
			for _, r := range scene.Regions {
				if r.Rect.Contains(x, y) {
					bg = blend(r.Color, plotBackground)
					break
				}
			}
			p := canvas.at(plotX+col, plotY+row)
			if p != nil {
				p.bg = bg
				p.fg = plotForeground
			}
		}
	}

	// Dividers.
	divCol, divRow := cellOf(proj, scene.DividerX, scene.DividerY)
	for row := 0; row < lay.plotH; row++ {
		canvas.setRune(plotX+divCol, plotY+row, '╎', plotForeground)
	}
	for col := 0; col < lay.plotW; col++ {
		r := '╌'
		if col == divCol {
			r = '┼'
		}
		canvas.setRune(plotX+col, plotY+divRow, r, plotForeground)
	}

	// Points and labels, clipped to the panel.
	for _, p := range scene.Points {
		col, row := cellOf(proj, p.X, p.Y)
		canvas.setRune(plotX+col, plotY+row, '●', opaque(p.Color))
		label := p.Key
		if p.Highlighted() {
			label = " " + label + " "
		}
		canvas.writeString(plotX+col+1, plotY+row, label, plotForeground, blend(p.LabelColor, plotBackground), p.Highlighted())
	}

	// Y ticks.
	for i := 0; i < numTicks; i++ {
		v := tickValue(scene.YLim, i)
		_, row := cellOf(proj, scene.XLim[0], v)
		text := formatTick(v)
		canvas.writeString(yGutterWidth-len(text)-1, plotY+row, text, "", "", false)
	}

	// X ticks.
	tickRow := plotY + lay.plotH
	for i := 0; i < numTicks; i++ {
		v := tickValue(scene.XLim, i)
		col, _ := cellOf(proj, v, scene.YLim[0])
		text := formatTick(v)
		start := plotX + col - len(text)/2
		start = min(max(start, plotX), plotX+lay.plotW-len(text))
		canvas.writeString(start, tickRow, text, "", "", false)
	}

	if xRow := tickRow + 1; xRow < height {
		canvas.writeString(plotX+max((lay.plotW-len(scene.XLabel))/2, 0), xRow, scene.XLabel, xLabelColor, "", true)
	}
	// The y label sits in the gutter on the title row.
	canvas.writeString(0, 0, fit(scene.YLabel, yGutterWidth-1), yLabelColor, "", true)

	return canvas.Lines()
}

func tickValue(lim [2]float64, i int) float64 {
	return lim[0] + float64(i)*(lim[1]-lim[0])/float64(numTicks-1)
}

func formatTick(v float64) string {
	return strconv.FormatFloat(chart.RoundTenth(v), 'f', -1, 64)
}

func emptyChart(width, height int, message string) []string {
	lines := make([]string, height)
	for i := range lines {
		lines[i] = strings.Repeat(" ", max(width, 0))
	}
	if height > 0 {
		lines[height/2] = lipgloss.PlaceHorizontal(max(width, 0), lipgloss.Center, message)
	}
	return lines
}

// pointerAt maps a terminal cell to a pointer in data coordinates.
func (m *model) pointerAt(x, y int) chart.Pointer {
	lay := m.layout()
	proj := m.chart.Scene().Projection
	sx, sy := float64(x-lay.plotX), float64(y-lay.plotY)
	if !proj.Contains(sx, sy) {
		return chart.Outside
	}
	return chart.At(proj.ToData(sx, sy))
}

func (m *model) layout() layout {
	tableWidth := max(minTableWidth, m.width/3)
	chartX := tableWidth + 1
	chartWidth := max(m.width-chartX, yGutterWidth+2)
	return layout{
		tableWidth: tableWidth,
		chartX:     chartX,
		chartWidth: chartWidth,
		plotX:      chartX + yGutterWidth,
		plotY:      chartTopRows,
		plotW:      max(chartWidth-yGutterWidth-1, 2),
		plotH:      max(m.height-statusRows-chartTopRows-chartBotRows, 2),
	}
}

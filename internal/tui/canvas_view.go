package tui

import (
	"math"
	"strings"

	"github.com/cynageos/calibrate/internal/canvas"
	"github.com/cynageos/calibrate/internal/interaction"
)

// canvasView receives controller updates and renders the canvas as text.
type canvasView struct {
	guides    []interaction.Guide
	labels    map[string]string
	lastMoved string
}

var _ interaction.View = (*canvasView)(nil)

func newCanvasView() *canvasView {
	return &canvasView{labels: make(map[string]string)}
}

func (v *canvasView) MoveRect(name string, _ canvas.Point) { v.lastMoved = name }
func (v *canvasView) ShowGuides(g []interaction.Guide)    { v.guides = g }
func (v *canvasView) HideGuides()                         { v.guides = nil }
func (v *canvasView) SetLabel(name, text string)          { v.labels[name] = text }

func (v *canvasView) guidesVisible() bool { return len(v.guides) > 0 }

// grid maps terminal cells inside the canvas border to canvas units.
type grid struct {
	cols int
	rows int
	geom canvas.Geometry
}

func (g grid) valid() bool {
	return g.cols > 0 && g.rows > 0 && g.geom.Width > 0 && g.geom.Height > 0
}

// toPoint returns the canvas point at the center of cell (col, row).
func (g grid) toPoint(col, row int) canvas.Point {
	return canvas.Point{
		X: (float64(col) + 0.5) * g.geom.Width / float64(g.cols),
		Y: (float64(row) + 0.5) * g.geom.Height / float64(g.rows),
	}
}

// toCell returns the cell containing canvas point p.
func (g grid) toCell(p canvas.Point) (int, int) {
	col := int(math.Floor(p.X * float64(g.cols) / g.geom.Width))
	row := int(math.Floor(p.Y * float64(g.rows) / g.geom.Height))
	return col, row
}

type boxRunes struct {
	h, v, tl, tr, bl, br rune
}

var (
	plainBox   = boxRunes{'─', '│', '┌', '┐', '└', '┘'}
	focusBox   = boxRunes{'━', '┃', '┏', '┓', '┗', '┛'}
	draggedBox = boxRunes{'═', '║', '╔', '╗', '╚', '╝'}
)

// renderCanvas draws every placement inside a border of width x height cells.
func renderCanvas(placements []canvas.Placement, view *canvasView, geom canvas.Geometry, focused, dragging string, width, height int) []string {
	if width < 5 || height < 3 {
		return emptyCanvas(width, height)
	}

	cells := make([][]rune, height)
	for i := range cells {
		cells[i] = make([]rune, width)
		for j := range cells[i] {
			cells[i][j] = ' '
		}
	}

	g := grid{cols: width - 2, rows: height - 2, geom: geom}
	if view != nil && view.guidesVisible() {
		drawGuides(cells, g, view.guides)
	}

	// Focused and dragged displays are drawn last so they stay on top.
	order := make([]canvas.Placement, 0, len(placements))
	var top []canvas.Placement
	for _, p := range placements {
		if p.Name == focused || p.Name == dragging {
			top = append(top, p)
			continue
		}
		order = append(order, p)
	}
	order = append(order, top...)

	for _, p := range order {
		style := plainBox
		switch p.Name {
		case dragging:
			style = draggedBox
		case focused:
			style = focusBox
		}
		label := p.Name
		if view != nil {
			if l, ok := view.labels[p.Name]; ok {
				label = l
			}
		}
		drawDisplay(cells, g, p, label, style)
	}

	drawBorder(cells, width, height)

	lines := make([]string, height)
	for i, row := range cells {
		lines[i] = string(row)
	}
	return lines
}

// drawGuides marks the cell column of every vertical guide and the cell row
// of every horizontal one. Crossings get '┼'.
func drawGuides(cells [][]rune, g grid, guides []interaction.Guide) {
	cols := make([]bool, g.cols)
	rows := make([]bool, g.rows)
	for _, gd := range guides {
		switch gd.Orientation {
		case interaction.Vertical:
			if col, _ := g.toCell(canvas.Point{X: gd.Pos}); col >= 0 && col < g.cols {
				cols[col] = true
			}
		case interaction.Horizontal:
			if _, row := g.toCell(canvas.Point{Y: gd.Pos}); row >= 0 && row < g.rows {
				rows[row] = true
			}
		}
	}
	for row := 0; row < g.rows; row++ {
		for col := 0; col < g.cols; col++ {
			switch {
			case cols[col] && rows[row]:
				cells[row+1][col+1] = '┼'
			case cols[col]:
				cells[row+1][col+1] = '┊'
			case rows[row]:
				cells[row+1][col+1] = '┈'
			}
		}
	}
}

func drawDisplay(cells [][]rune, g grid, p canvas.Placement, label string, b boxRunes) {
	x1, y1 := g.toCell(p.Pos)
	x2, y2 := g.toCell(p.Pos.Add(p.Extent))
	x2--
	y2--

	// Shift into the bordered area and clamp.
	x1, y1, x2, y2 = x1+1, y1+1, x2+1, y2+1
	maxX, maxY := g.cols, g.rows
	if x1 < 1 {
		x1 = 1
	}
	if y1 < 1 {
		y1 = 1
	}
	if x2 > maxX {
		x2 = maxX
	}
	if y2 > maxY {
		y2 = maxY
	}
	if x2 <= x1 || y2 <= y1 {
		return
	}

	for y := y1; y <= y2; y++ {
		for x := x1; x <= x2; x++ {
			cells[y][x] = ' '
		}
	}
	for x := x1; x <= x2; x++ {
		cells[y1][x] = b.h
		cells[y2][x] = b.h
	}
	for y := y1; y <= y2; y++ {
		cells[y][x1] = b.v
		cells[y][x2] = b.v
	}
	cells[y1][x1] = b.tl
	cells[y1][x2] = b.tr
	cells[y2][x1] = b.bl
	cells[y2][x2] = b.br

	// Label in the center, truncated to the inner width.
	inner := x2 - x1 - 1
	if inner <= 0 || y2-y1 < 2 {
		return
	}
	text := []rune(label)
	if len(text) > inner {
		text = text[:inner]
	}
	cy := (y1 + y2) / 2
	start := x1 + 1 + (inner-len(text))/2
	for i, r := range text {
		cells[cy][start+i] = r
	}
}

func drawBorder(cells [][]rune, width, height int) {
	// Top and bottom borders
	for x := 0; x < width; x++ {
		cells[0][x] = '─'
		cells[height-1][x] = '─'
	}

	// Left and right borders
	for y := 0; y < height; y++ {
		cells[y][0] = '│'
		cells[y][width-1] = '│'
	}

	// Corners
	cells[0][0] = '╭'
	cells[0][width-1] = '╮'
	cells[height-1][0] = '╰'
	cells[height-1][width-1] = '╯'
}

func emptyCanvas(width, height int) []string {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	lines := make([]string, height)
	empty := strings.Repeat(" ", width)
	for i := range lines {
		lines[i] = empty
	}
	return lines
}

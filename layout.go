package main

// Layout maps grid cells to canvas coordinates. The same geometry serves
// the terminal (units are columns and rows) and the PNG export (pixels).
type Layout struct {
	LeftMargin int
	TopMargin  int
	XStep      int
	YStep      int
	NodeRadius int
	// Offset of the floating held character from the pointer.
	FloatDX int
	FloatDY int
}

var pixelLayout = Layout{
	LeftMargin: 100,
	TopMargin:  100,
	XStep:      45,
	YStep:      45,
	NodeRadius: 20,
	FloatDX:    -40,
	FloatDY:    -40,
}

var terminalLayout = Layout{
	LeftMargin: 5,
	TopMargin:  0,
	XStep:      2,
	YStep:      1,
	NodeRadius: 0,
	FloatDX:    1,
	FloatDY:    -1,
}

// CanvasSize returns the canvas needed to enclose a grid with the given bounds.
func (l Layout) CanvasSize(maxX, maxY int) (int, int) {
	return l.LeftMargin + (maxX+1)*l.XStep, l.TopMargin + (maxY+1)*l.YStep
}

// CellAt returns the cell under canvas point (px, py). Points above or left
// of the grid origin give negative coordinates.
func (l Layout) CellAt(px, py int) (int, int) {
	return floorDiv(px-l.LeftMargin-l.NodeRadius, l.XStep),
		floorDiv(py-l.TopMargin-l.NodeRadius, l.YStep)
}

// CellOrigin returns the top-left canvas point of cell (x, y).
func (l Layout) CellOrigin(x, y int) (int, int) {
	return l.LeftMargin + x*l.XStep, l.TopMargin + y*l.YStep
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

package main

import (
	"sort"
	"strings"
)

// Cell addresses a single grid position.
type Cell struct {
	X int
	Y int
}

// ProgramGrid stores a program as a sparse grid of characters plus a
// per-row length table. The row length decides how many columns of a row
// are written out, independent of which cells are occupied.
type ProgramGrid struct {
	cells      map[Cell]rune
	rowLengths map[int]int
	maxX       int
	maxY       int
}

func NewProgramGrid() *ProgramGrid {
	g := &ProgramGrid{}
	g.reset()
	return g
}

func (g *ProgramGrid) reset() {
	g.cells = make(map[Cell]rune)
	g.rowLengths = make(map[int]int)
	g.maxX = 0
	g.maxY = 0
}

// LoadText replaces the whole grid with text, one row per line.
func (g *ProgramGrid) LoadText(text string) {
	g.reset()

	x, y := 0, 0
	for _, r := range text {
		if r == '\n' {
			g.rowLengths[y] = x
			g.maxY = max(g.maxY, y)
			x = 0
			y++
			continue
		}

		g.cells[Cell{X: x, Y: y}] = r
		x++
		g.maxX = max(g.maxX, x)
		g.maxY = max(g.maxY, y)
	}

	// A final line without a newline still gets its length recorded,
	// otherwise its characters would never be written back.
	if x > 0 {
		g.rowLengths[y] = x
	}
}

// Serialize writes every row from 0 to maxY, padding unoccupied cells
// inside a row's length with spaces. Each row ends with a newline.
func (g *ProgramGrid) Serialize() string {
	if g.Empty() {
		return ""
	}

	var b strings.Builder
	for y := 0; y <= g.maxY; y++ {
		length := g.rowLengths[y]
		for x := 0; x < length; x++ {
			c, ok := g.cells[Cell{X: x, Y: y}]
			if !ok {
				c = ' '
			}
			b.WriteRune(c)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// ReplaceChar places c at (x, y), growing the row and the bounds as needed.
// Rows and bounds never shrink.
func (g *ProgramGrid) ReplaceChar(x, y int, c rune) {
	if x < 0 || y < 0 {
		return
	}

	g.cells[Cell{X: x, Y: y}] = c
	g.rowLengths[y] = max(x+1, g.rowLengths[y])
	g.maxX = max(g.maxX, x+1)
	g.maxY = max(g.maxY, y)
}

func (g *ProgramGrid) Char(x, y int) (rune, bool) {
	c, ok := g.cells[Cell{X: x, Y: y}]
	return c, ok
}

func (g *ProgramGrid) RowLength(y int) int {
	return g.rowLengths[y]
}

// Bounds returns the column count and the last row index used to size a canvas.
func (g *ProgramGrid) Bounds() (maxX, maxY int) {
	return g.maxX, g.maxY
}

// Len returns the number of placed characters.
func (g *ProgramGrid) Len() int {
	return len(g.cells)
}

// Empty reports whether nothing has been loaded or placed.
func (g *ProgramGrid) Empty() bool {
	return len(g.cells) == 0 && len(g.rowLengths) == 0
}

// Snapshot returns a read-only copy of the grid for renderers, with cells
// ordered by row then column.
func (g *ProgramGrid) Snapshot() Snapshot {
	s := Snapshot{
		Cells:      make([]PlacedChar, 0, len(g.cells)),
		RowLengths: make(map[int]int, len(g.rowLengths)),
		MaxX:       g.maxX,
		MaxY:       g.maxY,
	}
	for cell, c := range g.cells {
		s.Cells = append(s.Cells, PlacedChar{Cell: cell, Char: c})
	}
	sort.Slice(s.Cells, func(i, j int) bool {
		a, b := s.Cells[i].Cell, s.Cells[j].Cell
		if a.Y != b.Y {
			return a.Y < b.Y
		}
		return a.X < b.X
	})
	for y, length := range g.rowLengths {
		s.RowLengths[y] = length
	}
	return s
}

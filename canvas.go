package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

type cellStyle int

const (
	styleBlank cellStyle = iota
	styleGutter
	styleGuide
	styleNode
	styleHighlight
	styleFloating
)

var canvasStyles = map[cellStyle]lipgloss.Style{
	styleBlank:     lipgloss.NewStyle(),
	styleGutter:    lipgloss.NewStyle().Faint(true),
	styleGuide:     lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
	styleNode:      lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true),
	styleHighlight: lipgloss.NewStyle().Reverse(true),
	styleFloating:  lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
}

const (
	rowGuideRune = '·'
	gutterRune   = '│'
	tabRune      = '→'
	undrawnRune  = '?'
	emptyRowRune = '~'
	gutterDigits = 4
)

// canvasBuffer is a screen-sized rune matrix with a style per cell.
type canvasBuffer struct {
	runes  [][]rune
	styles [][]cellStyle
}

func newCanvasBuffer(width, height int) *canvasBuffer {
	b := &canvasBuffer{
		runes:  make([][]rune, height),
		styles: make([][]cellStyle, height),
	}
	for y := range b.runes {
		b.runes[y] = []rune(strings.Repeat(" ", width))
		b.styles[y] = make([]cellStyle, width)
	}
	return b
}

func (b *canvasBuffer) isValidPos(x, y int) bool {
	return y >= 0 && y < len(b.runes) && x >= 0 && x < len(b.runes[y])
}

func (b *canvasBuffer) set(x, y int, r rune, style cellStyle) {
	if b.isValidPos(x, y) {
		b.runes[y][x] = r
		b.styles[y][x] = style
	}
}

func (b *canvasBuffer) restyle(x, y int, style cellStyle) {
	if b.isValidPos(x, y) {
		b.styles[y][x] = style
	}
}

func (b *canvasBuffer) lines() []string {
	out := make([]string, len(b.runes))
	for y, row := range b.runes {
		var line strings.Builder
		start := 0
		for x := 1; x <= len(row); x++ {
			if x < len(row) && b.styles[y][x] == b.styles[y][start] {
				continue
			}
			line.WriteString(canvasStyles[b.styles[y][start]].Render(string(row[start:x])))
			start = x
		}
		out[y] = line.String()
	}
	return out
}

// displayRune picks what the terminal shows for a stored character. Only
// single-width runes fit a cell; anything else is stored but drawn as a
// placeholder.
func displayRune(r rune) rune {
	if r == '\t' {
		return tabRune
	}
	if runewidth.RuneWidth(r) != 1 {
		return undrawnRune
	}
	return r
}

// RenderTerminal draws the part of a snapshot visible in a width x height
// viewport scrolled by (panX, panY) cells.
func RenderTerminal(s Snapshot, layout Layout, width, height, panX, panY int) []string {
	if width < 1 || height < 1 {
		return nil
	}
	buf := newCanvasBuffer(width, height)

	for sy := layout.TopMargin; sy < height; sy += layout.YStep {
		y := (sy-layout.TopMargin)/layout.YStep + panY
		if y > s.MaxY {
			buf.set(0, sy, emptyRowRune, styleGutter)
			continue
		}
		label := fmt.Sprintf("%*d", gutterDigits, y)
		for i, r := range label[len(label)-gutterDigits:] {
			buf.set(i, sy, r, styleGutter)
		}
		buf.set(layout.LeftMargin-1, sy, gutterRune, styleGuide)

		for x := panX; x < s.RowLengths[y]; x++ {
			sx, _ := layout.CellOrigin(x-panX, 0)
			if sx >= width {
				break
			}
			buf.set(sx, sy, rowGuideRune, styleGuide)
		}
	}

	for _, pc := range s.Cells {
		sx, sy := layout.CellOrigin(pc.Cell.X-panX, pc.Cell.Y-panY)
		if sx < layout.LeftMargin || sy < layout.TopMargin {
			continue
		}
		buf.set(sx, sy, displayRune(pc.Char), styleNode)
	}

	if s.Holding {
		sx, sy := layout.CellOrigin(s.Highlight.X-panX, s.Highlight.Y-panY)
		if sx >= layout.LeftMargin && sy >= layout.TopMargin {
			for dx := 0; dx < layout.XStep; dx++ {
				buf.restyle(sx+dx, sy, styleHighlight)
			}
		}
		buf.set(s.Pointer.X+layout.FloatDX, s.Pointer.Y+layout.FloatDY, displayRune(s.Held), styleFloating)
	}

	return buf.lines()
}

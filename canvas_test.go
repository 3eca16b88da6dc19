package main

import (
	"regexp"
	"strings"
	"testing"
)

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func plainLines(lines []string) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = ansiPattern.ReplaceAllString(line, "")
	}
	return out
}

func renderPlain(t *testing.T, s Snapshot, width, height, panX, panY int) []string {
	t.Helper()
	lines := plainLines(RenderTerminal(s, terminalLayout, width, height, panX, panY))
	if len(lines) != height {
		t.Fatalf("rendered %d lines, want %d", len(lines), height)
	}
	for i, line := range lines {
		if n := len([]rune(line)); n != width {
			t.Fatalf("line %d is %d runes wide, want %d: %q", i, n, width, line)
		}
	}
	return lines
}

func pad(s string, width int) string {
	return s + strings.Repeat(" ", width-len([]rune(s)))
}

func TestRenderTerminal_Grid(t *testing.T) {
	g := NewProgramGrid()
	g.LoadText("ab\n\nc d\n")
	g.ReplaceChar(3, 1, 'x')

	lines := renderPlain(t, g.Snapshot(), 14, 5, 0, 0)
	want := []string{
		pad("   0│a b", 14),
		pad("   1│· · · x", 14),
		pad("   2│c   d", 14),
		pad("~", 14),
		pad("~", 14),
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestRenderTerminal_Pan(t *testing.T) {
	g := NewProgramGrid()
	g.LoadText("abcdef\nghijkl\n")

	lines := renderPlain(t, g.Snapshot(), 11, 1, 3, 1)
	if want := "   1│j k l "; lines[0] != want {
		t.Errorf("line 0 = %q, want %q", lines[0], want)
	}
}

func TestRenderTerminal_Holding(t *testing.T) {
	doc := NewDocument()
	doc.LoadText("ab\n")
	doc.PointerMove(terminalLayout, 7, 1)
	doc.KeyPress('Z')

	s := doc.Snapshot()
	raw := RenderTerminal(s, terminalLayout, 12, 3, 0, 0)
	lines := plainLines(raw)

	// Floating character sits one column right of and one row above the pointer.
	if got := []rune(lines[0])[8]; got != 'Z' {
		t.Errorf("floating char = %q, want 'Z' (line %q)", got, lines[0])
	}
	// Highlighted cell (1,1) is empty and outside row 1's length.
	if got := []rune(lines[1])[7]; got != ' ' {
		t.Errorf("highlighted cell = %q, want blank", got)
	}
}

func TestRenderTerminal_Glyphs(t *testing.T) {
	g := NewProgramGrid()
	g.LoadText("\t日é\n")

	lines := renderPlain(t, g.Snapshot(), 11, 1, 0, 0)
	if want := "   0│→ ? é "; lines[0] != want {
		t.Errorf("line 0 = %q, want %q", lines[0], want)
	}
}

func TestRenderTerminal_TinyViewport(t *testing.T) {
	if lines := RenderTerminal(NewProgramGrid().Snapshot(), terminalLayout, 0, 5, 0, 0); lines != nil {
		t.Errorf("RenderTerminal with zero width = %v, want nil", lines)
	}
}

func TestDisplayRune(t *testing.T) {
	tests := []struct{ in, want rune }{
		{'a', 'a'},
		{'\t', tabRune},
		{'日', undrawnRune},
		{'\x01', undrawnRune},
		{'ü', 'ü'},
	}
	for _, tt := range tests {
		if got := displayRune(tt.in); got != tt.want {
			t.Errorf("displayRune(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/tliron/commonlog"
)

var documentLog = commonlog.GetLogger("identic.document")

// Document is one open program: its grid, the interaction editing it and
// where it lives on disk.
type Document struct {
	grid        *ProgramGrid
	interaction *EditorInteraction
	filename    string
	panX        int
	panY        int
	dirty       bool
}

func NewDocument() *Document {
	grid := NewProgramGrid()
	return &Document{
		grid:        grid,
		interaction: NewEditorInteraction(grid),
	}
}

// LoadText replaces the document content. A held character is discarded.
func (d *Document) LoadText(text string) {
	d.grid.LoadText(text)
	d.interaction.Reset()
	d.panX, d.panY = 0, 0
	d.dirty = false
}

// LoadFile reads filename in full before touching the grid, so a failed
// read leaves the current content as it was.
func (d *Document) LoadFile(filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("reading %s: %w", filename, err)
	}
	d.LoadText(string(data))
	d.filename = filename
	maxX, maxY := d.grid.Bounds()
	documentLog.Infof("loaded %s (%d chars, bounds %dx%d)", filename, d.grid.Len(), maxX, maxY+1)
	return nil
}

func (d *Document) SaveFile(filename string) error {
	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(filename, []byte(d.grid.Serialize()), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", filename, err)
	}
	d.filename = filename
	d.dirty = false
	documentLog.Infof("saved %s", filename)
	return nil
}

// KeyPress forwards a typed rune to the interaction.
func (d *Document) KeyPress(r rune) bool {
	return d.interaction.KeyPress(r)
}

// PointerMove takes a point in screen coordinates and resolves the cell
// under it with the document's pan offset applied. Off-grid points stay
// negative however far the view is scrolled.
func (d *Document) PointerMove(layout Layout, sx, sy int) {
	cx, cy := layout.CellAt(sx, sy)
	if cx >= 0 {
		cx += d.panX
	}
	if cy >= 0 {
		cy += d.panY
	}
	d.interaction.PointerMove(sx, sy, cx, cy)
}

func (d *Document) PointerClick() bool {
	if d.interaction.PointerClick() {
		d.dirty = true
		return true
	}
	return false
}

func (d *Document) Snapshot() Snapshot {
	return d.interaction.Snapshot()
}

// DisplayName is the name shown in the document bar.
func (d *Document) DisplayName(index int) string {
	if d.filename == "" {
		return fmt.Sprintf("Untitled %d", index+1)
	}
	return filepath.Base(d.filename)
}

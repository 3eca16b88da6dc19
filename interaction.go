package main

import "unicode"

// NoCharacter is passed to KeyPress for keys that produce no printable character.
const NoCharacter rune = -1

type InteractionState int

const (
	StateIdle InteractionState = iota
	StateHolding
)

func (s InteractionState) String() string {
	switch s {
	case StateIdle:
		return "IDLE"
	case StateHolding:
		return "HOLDING"
	default:
		return "UNKNOWN"
	}
}

type point struct {
	X, Y int
}

// PlacedChar is one occupied cell of a snapshot.
type PlacedChar struct {
	Cell Cell
	Char rune
}

// Snapshot is everything a renderer needs to draw one frame.
type Snapshot struct {
	Cells      []PlacedChar
	RowLengths map[int]int
	MaxX       int
	MaxY       int

	// Set only while a character is held.
	Holding   bool
	Highlight Cell
	Held      rune
	Pointer   point
}

// Placer is the storage side of an interaction.
type Placer interface {
	ReplaceChar(x, y int, c rune)
	Snapshot() Snapshot
}

// EditorInteraction turns key presses, pointer moves and clicks into grid
// edits. A typed character is picked up and dropped on the highlighted cell
// by the next click. At most one character is held at a time.
type EditorInteraction struct {
	grid        Placer
	state       InteractionState
	held        rune
	highlighted Cell
	pointer     point
}

func NewEditorInteraction(grid Placer) *EditorInteraction {
	return &EditorInteraction{grid: grid, state: StateIdle}
}

// KeyPress picks up r when idle. It reports whether a character was picked up.
func (e *EditorInteraction) KeyPress(r rune) bool {
	if e.state != StateIdle || !isPlaceable(r) {
		return false
	}
	e.state = StateHolding
	e.held = r
	return true
}

// PointerMove tracks the pointer. The highlight only follows the pointer
// while it is over the grid, so negative cells keep the previous highlight.
func (e *EditorInteraction) PointerMove(px, py, cellX, cellY int) {
	e.pointer = point{X: px, Y: py}
	if cellX >= 0 && cellY >= 0 {
		e.highlighted = Cell{X: cellX, Y: cellY}
	}
}

// PointerClick drops the held character on the highlighted cell. It
// reports whether the grid was changed.
func (e *EditorInteraction) PointerClick() bool {
	if e.state != StateHolding {
		return false
	}
	e.grid.ReplaceChar(e.highlighted.X, e.highlighted.Y, e.held)
	e.state = StateIdle
	e.held = 0
	return true
}

// Reset discards any held character.
func (e *EditorInteraction) Reset() {
	e.state = StateIdle
	e.held = 0
}

func (e *EditorInteraction) State() InteractionState {
	return e.state
}

// Held returns the held character, if any.
func (e *EditorInteraction) Held() (rune, bool) {
	if e.state != StateHolding {
		return 0, false
	}
	return e.held, true
}

func (e *EditorInteraction) Highlighted() Cell {
	return e.highlighted
}

func (e *EditorInteraction) Pointer() (int, int) {
	return e.pointer.X, e.pointer.Y
}

func (e *EditorInteraction) Snapshot() Snapshot {
	s := e.grid.Snapshot()
	if e.state == StateHolding {
		s.Holding = true
		s.Highlight = e.highlighted
		s.Held = e.held
		s.Pointer = e.pointer
	}
	return s
}

func isPlaceable(r rune) bool {
	if r == NoCharacter || r == '\n' || r == '\r' {
		return false
	}
	return r == '\t' || unicode.IsPrint(r)
}

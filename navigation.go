package main

func (m *model) handlePan(key string, speed int) {
	doc := m.getCurrentDocument()
	if doc == nil {
		return
	}
	switch key {
	case "left", "shift+left":
		doc.panX -= speed
	case "right", "shift+right":
		doc.panX += speed
	case "up", "shift+up":
		doc.panY -= speed
	case "down", "shift+down":
		doc.panY += speed
	}
	m.ensurePanInBounds()
}

// ensurePanInBounds keeps the viewport from scrolling above or left of the
// grid origin or past the last row and column.
func (m *model) ensurePanInBounds() {
	doc := m.getCurrentDocument()
	if doc == nil {
		return
	}
	maxX, maxY := doc.grid.Bounds()
	if doc.panX > maxX {
		doc.panX = maxX
	}
	if doc.panY > maxY {
		doc.panY = maxY
	}
	if doc.panX < 0 {
		doc.panX = 0
	}
	if doc.panY < 0 {
		doc.panY = 0
	}
}

func (m *model) getMoveSpeed(key string) int {
	switch key {
	case "shift+left", "shift+right", "shift+up", "shift+down":
		return 2
	default:
		return 1
	}
}

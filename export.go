package main

import (
	"fmt"
	"image"
	"io"
	"math"
	"os"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"github.com/tliron/commonlog"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
)

var exportLog = commonlog.GetLogger("identic.export")

const (
	nodeFontSize  = 24.0
	nodeTextShift = 7.0
	// Characters above this codepoint are stored but not drawn.
	maxDrawableRune = 128
)

var (
	canvasRGB    = [3]float64{0.5, 0.6, 0.8}
	nodeFillRGB  = [3]float64{0.6, 0.7, 0.9}
	nodeTextRGB  = [3]float64{0.2, 0.1, 0.4}
	guideLineRGB = [3]float64{1, 1, 1}
)

// RenderPNG draws a snapshot the way the canvas shows it: row guides,
// one node per character, and while holding, the drop target outline and
// the floating character.
func RenderPNG(s Snapshot, layout Layout) (image.Image, error) {
	width, height := layout.CanvasSize(s.MaxX, s.MaxY)
	dc := gg.NewContext(width, height)

	ttfFont, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	dc.SetFontFace(truetype.NewFace(ttfFont, &truetype.Options{
		Size:    nodeFontSize,
		DPI:     72,
		Hinting: font.HintingFull,
	}))

	dc.SetRGB(canvasRGB[0], canvasRGB[1], canvasRGB[2])
	dc.Clear()

	drawGuidesPNG(dc, s, layout)

	for _, pc := range s.Cells {
		x, y := layout.CellOrigin(pc.Cell.X, pc.Cell.Y)
		drawNodePNG(dc, layout, float64(x), float64(y), pc.Char)
	}

	if s.Holding {
		x, y := layout.CellOrigin(s.Highlight.X, s.Highlight.Y)
		drawNodeBorderPNG(dc, layout, float64(x), float64(y))
		drawNodePNG(dc, layout,
			float64(s.Pointer.X+layout.FloatDX), float64(s.Pointer.Y+layout.FloatDY), s.Held)
	}

	return dc.Image(), nil
}

// ExportPNG renders the snapshot and writes it to filename.
func ExportPNG(filename string, s Snapshot, layout Layout) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	if err := EncodePNG(file, s, layout); err != nil {
		return err
	}
	exportLog.Infof("exported %s", filename)
	return nil
}

func EncodePNG(w io.Writer, s Snapshot, layout Layout) error {
	img, err := RenderPNG(s, layout)
	if err != nil {
		return err
	}
	return gg.NewContextForImage(img).EncodePNG(w)
}

func drawGuidesPNG(dc *gg.Context, s Snapshot, layout Layout) {
	r := float64(layout.NodeRadius)
	guideX := float64(layout.LeftMargin) + r - float64(layout.XStep)
	top := float64(layout.TopMargin) + r

	dc.SetRGB(guideLineRGB[0], guideLineRGB[1], guideLineRGB[2])
	dc.SetLineWidth(3)
	dc.DrawLine(guideX, top, guideX, top+float64(s.MaxY*layout.YStep))

	for y, length := range s.RowLengths {
		rowY := top + float64(y*layout.YStep)
		dc.DrawLine(guideX, rowY, guideX+float64(layout.XStep*length), rowY)
	}
	dc.Stroke()
}

// nodePath outlines a node: square top-left corner, the rest rounded.
func nodePath(dc *gg.Context, x, y, r float64) {
	dc.NewSubPath()
	dc.MoveTo(x, y)
	dc.LineTo(x, y+r)
	dc.DrawArc(x+r, y+r, r, math.Pi, -math.Pi/2)
	dc.ClosePath()
}

func drawNodeBorderPNG(dc *gg.Context, layout Layout, x, y float64) {
	dc.Push()
	nodePath(dc, x, y, float64(layout.NodeRadius))
	dc.SetRGB(0, 0, 0)
	dc.SetLineWidth(2)
	dc.Stroke()
	dc.Pop()
}

func drawNodePNG(dc *gg.Context, layout Layout, x, y float64, c rune) {
	if c > maxDrawableRune {
		return
	}
	r := float64(layout.NodeRadius)

	dc.Push()
	nodePath(dc, x, y, r)
	dc.SetRGB(nodeFillRGB[0], nodeFillRGB[1], nodeFillRGB[2])
	dc.Fill()

	text := string(c)
	w, _ := dc.MeasureString(text)
	dc.SetRGB(nodeTextRGB[0], nodeTextRGB[1], nodeTextRGB[2])
	dc.DrawString(text, x+r-w/2, y+r+nodeTextShift)
	dc.Pop()
}

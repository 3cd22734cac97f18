package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	controlHeight = 5
	buttonWidth   = 24
	buttonHeight  = 3
)

type rect struct {
	x, y, w, h int
}

func (r rect) contains(x, y int) bool {
	return x >= r.x && x < r.x+r.w && y >= r.y && y < r.y+r.h
}

// controlRects splits the bottom band into one equal column per prime, so
// rect i always belongs to prime i.
func controlRects(width, height, count int) []rect {
	if count <= 0 || width < count || height < controlHeight {
		return nil
	}
	w := width / count
	y := height - controlHeight
	out := make([]rect, count)
	for i := range out {
		out[i] = rect{x: i * w, y: y, w: w, h: controlHeight}
	}
	return out
}

func titleTop(height int) int {
	return max(0, height/2-7)
}

func startButtonRect(width, height int) rect {
	return rect{x: max(0, (width-buttonWidth)/2), y: titleTop(height) + 4, w: buttonWidth, h: buttonHeight}
}

func exitButtonRect(width, height int) rect {
	return rect{x: max(0, (width-buttonWidth)/2), y: titleTop(height) + 8, w: buttonWidth, h: buttonHeight}
}

func backButtonRect(width, height int) rect {
	return rect{x: max(0, width-buttonWidth-2), y: max(0, height-buttonHeight-2), w: buttonWidth, h: buttonHeight}
}

// canvas is a fixed-size grid of lines that blocks are written into.
type canvas struct {
	width int
	lines []string
}

func newCanvas(width, height int) *canvas {
	return &canvas{width: width, lines: make([]string, height)}
}

// put writes block at column x starting at row y, replacing those rows.
func (c *canvas) put(x, y int, block string) {
	for i, line := range strings.Split(block, "\n") {
		row := y + i
		if row < 0 || row >= len(c.lines) {
			continue
		}
		c.lines[row] = strings.Repeat(" ", max(0, x)) + line
	}
}

// center writes each line of block horizontally centered from row y.
func (c *canvas) center(y int, block string) {
	for i, line := range strings.Split(block, "\n") {
		c.put((c.width-lipgloss.Width(line))/2, y+i, line)
	}
}

func (c *canvas) String() string {
	return strings.Join(c.lines, "\n")
}

package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const blank = 0x2800

// Canvas is a grid of braille cells. Each cell keeps the colour of the last
// dot drawn into it.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
	Colors        [][]RGBA
	Background    RGBA
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:      w,
		Height:     h,
		Grid:       make([][]rune, h),
		Colors:     make([][]RGBA, h),
		Background: RGBA{0, 0, 0, 255},
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		c.Colors[i] = make([]RGBA, w)
	}
	c.Clear()
	return c
}

// PixelSize is the canvas size in sub-pixels.
func (c *Canvas) PixelSize() (int, int) { return c.Width * 2, c.Height * 4 }

func (c *Canvas) cell(x, y int) (row, col int, bit rune, ok bool) {
	if x < 0 || y < 0 {
		return 0, 0, 0, false
	}
	col, row = x/2, y/4
	if col >= c.Width || row >= c.Height {
		return 0, 0, 0, false
	}
	return row, col, rune(pixelMap[y%4][x%2]), true
}

// Set sets a pixel at (x, y) where x,y are in "sub-pixel" coordinates.
// The canvas size in sub-pixels is (Width*2) x (Height*4).
func (c *Canvas) Set(x, y int, col RGBA) {
	row, cl, bit, ok := c.cell(x, y)
	if !ok {
		return
	}
	c.Grid[row][cl] |= bit
	c.Colors[row][cl] = col
}

// Unset clears a pixel
func (c *Canvas) Unset(x, y int) {
	row, col, bit, ok := c.cell(x, y)
	if !ok {
		return
	}
	c.Grid[row][col] &^= bit
	if c.Grid[row][col] < blank {
		c.Grid[row][col] = blank
	}
}

func (c *Canvas) IsSet(x, y int) bool {
	row, col, bit, ok := c.cell(x, y)
	return ok && c.Grid[row][col]&bit != 0
}

// Clear resets the canvas
func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
			c.Colors[i][j] = RGBA{}
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int, col RGBA) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0, col)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// String renders the dots without colour.
func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

// Render draws every cell in its colour blended over the background.
func (c *Canvas) Render() string {
	styles := make(map[RGBA]lipgloss.Style)
	var b strings.Builder
	for i, row := range c.Grid {
		for j, r := range row {
			if r == blank {
				b.WriteRune(r)
				continue
			}
			col := c.Colors[i][j]
			st, ok := styles[col]
			if !ok {
				st = lipgloss.NewStyle().Foreground(lipgloss.Color(col.Hex(c.Background)))
				styles[col] = st
			}
			b.WriteString(st.Render(string(r)))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

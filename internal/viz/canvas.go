package viz

import (
	"math"
	"strings"
)

const blank = rune(0x2800)

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

// Canvas is a grid of braille cells. Drawing happens in sub-pixel
// coordinates, two columns and four rows per cell, with y growing down.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
		}
	}
	return c
}

// SubWidth is the canvas width in sub-pixels.
func (c *Canvas) SubWidth() int { return c.Width * 2 }

// SubHeight is the canvas height in sub-pixels.
func (c *Canvas) SubHeight() int { return c.Height * 4 }

func (c *Canvas) cell(x, y int) (row, col int, ok bool) {
	if x < 0 || y < 0 {
		return 0, 0, false
	}
	col, row = x/2, y/4
	if col >= c.Width || row >= c.Height {
		return 0, 0, false
	}
	return row, col, true
}

// Set lights the sub-pixel at (x, y). Points off the canvas are ignored,
// and so are cells already holding label text.
func (c *Canvas) Set(x, y int) {
	row, col, ok := c.cell(x, y)
	if !ok || !isBraille(c.Grid[row][col]) {
		return
	}
	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

// Unset clears a pixel
func (c *Canvas) Unset(x, y int) {
	row, col, ok := c.cell(x, y)
	if !ok || !isBraille(c.Grid[row][col]) {
		return
	}
	c.Grid[row][col] &^= rune(pixelMap[y%4][x%2])
	c.Grid[row][col] |= blank
}

// IsSet reports whether the sub-pixel at (x, y) is lit.
func (c *Canvas) IsSet(x, y int) bool {
	row, col, ok := c.cell(x, y)
	if !ok || !isBraille(c.Grid[row][col]) {
		return false
	}
	return c.Grid[row][col]&rune(pixelMap[y%4][x%2]) != 0
}

// Clear resets the canvas
func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
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
		c.Set(x0, y0)
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

// DrawDashed draws every other run of dash sub-pixels along the line.
func (c *Canvas) DrawDashed(x0, y0, x1, y1, dash int) {
	if dash < 1 {
		dash = 1
	}
	n := max(absInt(x1-x0), absInt(y1-y0))
	if n == 0 {
		c.Set(x0, y0)
		return
	}
	for i := 0; i <= n; i++ {
		if (i/dash)%2 == 1 {
			continue
		}
		x := x0 + int(math.Round(float64(i*(x1-x0))/float64(n)))
		y := y0 + int(math.Round(float64(i*(y1-y0))/float64(n)))
		c.Set(x, y)
	}
}

// DrawArrow draws a shaft from (x0, y0) to (x1, y1) with a two-stroke head
// at the tip. Zero-length arrows are a single dot.
func (c *Canvas) DrawArrow(x0, y0, x1, y1 int) {
	c.DrawLine(x0, y0, x1, y1)
	dx, dy := float64(x1-x0), float64(y1-y0)
	length := math.Hypot(dx, dy)
	if length < 1 {
		return
	}
	head := math.Min(4, length/2)
	angle := math.Atan2(dy, dx)
	for _, spread := range []float64{math.Pi / 6, -math.Pi / 6} {
		hx := x1 - int(math.Round(head*math.Cos(angle-spread)))
		hy := y1 - int(math.Round(head*math.Sin(angle-spread)))
		c.DrawLine(x1, y1, hx, hy)
	}
}

// DrawBox outlines the rectangle with corners (x0, y0) and (x1, y1).
func (c *Canvas) DrawBox(x0, y0, x1, y1 int) {
	c.DrawLine(x0, y0, x1, y0)
	c.DrawLine(x1, y0, x1, y1)
	c.DrawLine(x1, y1, x0, y1)
	c.DrawLine(x0, y1, x0, y0)
}

// FillBox lights every sub-pixel inside the rectangle.
func (c *Canvas) FillBox(x0, y0, x1, y1 int) {
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	if y0 > y1 {
		y0, y1 = y1, y0
	}
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			c.Set(x, y)
		}
	}
}

// Dot draws a small filled disc of radius r sub-pixels.
func (c *Canvas) Dot(x, y, r int) {
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if dx*dx+dy*dy <= r*r {
				c.Set(x+dx, y+dy)
			}
		}
	}
}

// Label writes text into the cell grid starting at the cell containing the
// sub-pixel (x, y), pulled back onto the canvas if it lies above or left
// of it. Text running off the right edge is cut.
func (c *Canvas) Label(x, y int, text string) {
	row, col, ok := c.cell(max(x, 0), max(y, 0))
	if !ok {
		return
	}
	for _, r := range text {
		if col >= c.Width {
			return
		}
		c.Grid[row][col] = r
		col++
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for i, row := range c.Grid {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(string(row))
	}
	return b.String()
}

// Lit counts the sub-pixels currently set.
func (c *Canvas) Lit() int {
	n := 0
	for y := 0; y < c.SubHeight(); y++ {
		for x := 0; x < c.SubWidth(); x++ {
			if c.IsSet(x, y) {
				n++
			}
		}
	}
	return n
}

func isBraille(r rune) bool {
	return r >= blank && r <= blank+0xff
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

package draw

import (
	"image/color"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"
)

// Ink selects a palette entry. Ink 0 is an empty pixel.
type Ink uint8

// Canvas is a drawing buffer with 2x vertical resolution using half-block characters.
// Every pixel holds an Ink; the palette maps inks to colors at render time.
type Canvas struct {
	termWidth      int   // Terminal columns
	termHeight     int   // Terminal rows
	subPixelHeight int   // termHeight * 2
	pixels         []Ink // Flat slice: [y * termWidth + x]
	pen            Ink
	palette        []color.RGBA

	// Offset for centering the render area when the terminal is larger than the
	// max resolution. These are 0-based terminal offsets (columns/rows to skip).
	offsetCol int
	offsetRow int

	// Reusable buffers to reduce allocations
	renderBuf       strings.Builder
	numBuf          [20]byte
	intersectionBuf []float64
	polygonBuf      []Point
}

// NewCanvas creates a canvas for the given terminal dimensions.
// The canvas has 2x vertical resolution (height*2 sub-pixels).
// palette[i] is the color of Ink(i); entry 0 is unused.
func NewCanvas(width, height int, palette []color.RGBA) *Canvas {
	return &Canvas{
		termWidth:      width,
		termHeight:     height,
		subPixelHeight: height * 2,
		pixels:         make([]Ink, height*2*width),
		pen:            1,
		palette:        palette,
	}
}

// Resize updates the canvas for new terminal dimensions. Reports whether the size changed.
func (c *Canvas) Resize(termWidth, termHeight int) bool {
	if termWidth == c.termWidth && termHeight == c.termHeight {
		return false
	}
	c.termWidth = termWidth
	c.termHeight = termHeight
	c.subPixelHeight = termHeight * 2
	c.pixels = make([]Ink, c.subPixelHeight*termWidth)
	return true
}

// SetOffset sets the column and row offset for centering the canvas.
// Offsets are 0-based terminal positions: the canvas starts at (offsetCol+1, offsetRow+1).
func (c *Canvas) SetOffset(col, row int) {
	c.offsetCol = col
	c.offsetRow = row
}

// OffsetCol returns the column offset used for centering.
func (c *Canvas) OffsetCol() int {
	return c.offsetCol
}

// OffsetRow returns the row offset used for centering.
func (c *Canvas) OffsetRow() int {
	return c.offsetRow
}

// Clear resets all pixels in the canvas.
func (c *Canvas) Clear() {
	clear(c.pixels)
}

// SetInk selects the ink used by subsequent drawing calls.
func (c *Canvas) SetInk(ink Ink) {
	c.pen = ink
}

// At returns the ink at pixel (x, y), or 0 outside the canvas.
func (c *Canvas) At(x, y int) Ink {
	if x >= 0 && x < c.termWidth && y >= 0 && y < c.subPixelHeight {
		return c.pixels[y*c.termWidth+x]
	}
	return 0
}

// setPixel sets a pixel, ignoring coordinates outside the canvas.
func (c *Canvas) setPixel(x, y int) {
	if x >= 0 && x < c.termWidth && y >= 0 && y < c.subPixelHeight {
		c.pixels[y*c.termWidth+x] = c.pen
	}
}

// Set sets the pixel nearest to p.
func (c *Canvas) Set(p Point) {
	c.setPixel(int(math.Round(p.X)), int(math.Round(p.Y)))
}

// DrawLine draws a line on the canvas using Bresenham's algorithm.
func (c *Canvas) DrawLine(p1, p2 Point) {
	x1 := int(math.Round(p1.X))
	y1 := int(math.Round(p1.Y))
	x2 := int(math.Round(p2.X))
	y2 := int(math.Round(p2.Y))

	dx := abs(x2 - x1)
	dy := abs(y2 - y1)

	sx := 1
	if x1 > x2 {
		sx = -1
	}
	sy := 1
	if y1 > y2 {
		sy = -1
	}

	err := dx - dy

	for {
		c.setPixel(x1, y1)

		if x1 == x2 && y1 == y2 {
			break
		}

		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

// DrawPolygon draws a polygon on the canvas.
// If filled is true, the interior is filled using scanline algorithm.
func (c *Canvas) DrawPolygon(points []Point, filled bool) {
	if len(points) < 3 {
		return
	}

	if filled {
		c.fillPolygon(points)
	}

	n := len(points)
	for i := 0; i < n; i++ {
		c.DrawLine(points[i], points[(i+1)%n])
	}
}

// DrawCircle draws a circle approximated by a regular polygon.
func (c *Canvas) DrawCircle(center Point, radius float64, filled bool) {
	segments := int(radius * 2)
	if segments < 8 {
		segments = 8
	}
	if segments > 96 {
		segments = 96
	}
	pts := c.borrowPoints(segments)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / float64(segments)
		pts[i] = Point{X: center.X + radius*math.Cos(a), Y: center.Y + radius*math.Sin(a)}
	}
	c.DrawPolygon(pts, filled)
}

// fillPolygon fills a polygon using scanline algorithm.
func (c *Canvas) fillPolygon(points []Point) {
	minY, maxY := points[0].Y, points[0].Y
	for _, p := range points {
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}

	yStart := int(math.Floor(minY))
	yEnd := int(math.Ceil(maxY))

	for y := yStart; y <= yEnd; y++ {
		scanY := float64(y) + 0.5

		intersections := c.intersectionBuf[:0]

		n := len(points)
		for i := 0; i < n; i++ {
			p1 := points[i]
			p2 := points[(i+1)%n]

			if (p1.Y <= scanY && p2.Y > scanY) || (p2.Y <= scanY && p1.Y > scanY) {
				t := (scanY - p1.Y) / (p2.Y - p1.Y)
				x := p1.X + t*(p2.X-p1.X)
				intersections = append(intersections, x)
			}
		}

		// Store back in case it grew
		c.intersectionBuf = intersections

		sort.Float64s(intersections)

		for i := 0; i+1 < len(intersections); i += 2 {
			xStart := int(math.Ceil(intersections[i]))
			xEnd := int(math.Floor(intersections[i+1]))
			for x := xStart; x <= xEnd; x++ {
				c.setPixel(x, y)
			}
		}
	}
}

// borrowPoints returns a reusable slice of Points, valid until the next call.
func (c *Canvas) borrowPoints(n int) []Point {
	if cap(c.polygonBuf) < n {
		c.polygonBuf = make([]Point, n)
	}
	return c.polygonBuf[:n]
}

func (c *Canvas) color(ink Ink) color.RGBA {
	if int(ink) < len(c.palette) {
		return c.palette[ink]
	}
	return color.RGBA{0xff, 0xff, 0xff, 0xff}
}

const bgDefault = "\033[49m"

// Render outputs the canvas to the writer using half-block characters.
// Every cell is written, so the previous frame needs no clearing.
func (c *Canvas) Render(w io.Writer) {
	c.renderBuf.Reset()
	c.renderBuf.Grow(c.termWidth * c.termHeight * 4)

	for row := 0; row < c.termHeight; row++ {
		c.renderBuf.WriteString("\033[")
		c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(row+1+c.offsetRow), 10))
		c.renderBuf.WriteByte(';')
		c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(1+c.offsetCol), 10))
		c.renderBuf.WriteByte('H')

		topOffset := row * 2 * c.termWidth
		bottomOffset := topOffset + c.termWidth
		var fg, bg Ink // inks currently selected on the terminal

		for col := 0; col < c.termWidth; col++ {
			top := c.pixels[topOffset+col]
			bottom := c.pixels[bottomOffset+col]

			ch, wantFg, wantBg := BlockEmpty, fg, Ink(0)
			switch {
			case top == 0 && bottom == 0:
			case top == bottom:
				ch, wantFg = BlockFull, top
			case bottom == 0:
				ch, wantFg = BlockUpperHalf, top
			case top == 0:
				ch, wantFg = BlockLowerHalf, bottom
			default:
				ch, wantFg, wantBg = BlockUpperHalf, top, bottom
			}

			if wantFg != fg {
				c.renderBuf.WriteString(FgColor(c.color(wantFg)))
				fg = wantFg
			}
			if wantBg != bg {
				if wantBg == 0 {
					c.renderBuf.WriteString(bgDefault)
				} else {
					c.renderBuf.WriteString(BgColor(c.color(wantBg)))
				}
				bg = wantBg
			}
			c.renderBuf.WriteRune(ch)
		}
		if fg != 0 || bg != 0 {
			c.renderBuf.WriteString(ColorReset)
		}
	}

	io.WriteString(w, c.renderBuf.String())
}

// RenderBorder draws a box border around the canvas area when the terminal
// exceeds the max render resolution on either axis.
func (c *Canvas) RenderBorder(w io.Writer) {
	hasH := c.offsetCol >= 1 // Room for left/right vertical bars
	hasV := c.offsetRow >= 1 // Room for top/bottom horizontal bars
	if !hasH && !hasV {
		return
	}

	left := c.offsetCol
	right := c.offsetCol + c.termWidth + 1
	top := c.offsetRow
	bottom := c.offsetRow + c.termHeight + 1
	line := strings.Repeat("─", c.termWidth)

	cw := &strings.Builder{}
	if hasV {
		if hasH {
			writeAt(cw, left, top, "┌"+line+"┐")
			writeAt(cw, left, bottom, "└"+line+"┘")
		} else {
			writeAt(cw, c.offsetCol+1, top, line)
			writeAt(cw, c.offsetCol+1, bottom, line)
		}
	}
	if hasH {
		for row := c.offsetRow + 1; row <= c.offsetRow+c.termHeight; row++ {
			writeAt(cw, left, row, "│")
			writeAt(cw, right, row, "│")
		}
	}
	io.WriteString(w, cw.String())
}

func writeAt(sb *strings.Builder, col, row int, s string) {
	sb.WriteString("\033[")
	sb.WriteString(strconv.Itoa(row))
	sb.WriteByte(';')
	sb.WriteString(strconv.Itoa(col))
	sb.WriteByte('H')
	sb.WriteString(s)
}

// TerminalWidth returns the canvas column count.
func (c *Canvas) TerminalWidth() int {
	return c.termWidth
}

// TerminalHeight returns the canvas row count.
func (c *Canvas) TerminalHeight() int {
	return c.termHeight
}

// PixelHeight returns the canvas height in sub-pixels.
func (c *Canvas) PixelHeight() int {
	return c.subPixelHeight
}

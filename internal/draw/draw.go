// Package draw renders the arena to a terminal: a half-block pixel canvas, a
// chunked ANSI writer and a top-down radar view of the scene.
package draw

import (
	"fmt"
	"image/color"
)

// Point represents a 2D coordinate in canvas pixels.
type Point struct {
	X, Y float64
}

// Block characters for drawing.
const (
	BlockFull      = '█'
	BlockEmpty     = ' '
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

// ColorReset restores the default terminal colors.
const ColorReset = "\033[0m"

// FgColor returns the 24-bit foreground color sequence for c. Alpha is ignored.
func FgColor(c color.RGBA) string {
	return fmt.Sprintf("\033[38;2;%d;%d;%dm", c.R, c.G, c.B)
}

// BgColor returns the 24-bit background color sequence for c. Alpha is ignored.
func BgColor(c color.RGBA) string {
	return fmt.Sprintf("\033[48;2;%d;%d;%dm", c.R, c.G, c.B)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

package draw

import (
	"image/color"
	"io"
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/tomz197/bonk/internal/physics"
	"github.com/tomz197/bonk/internal/scene"
)

// Radar inks.
const (
	InkRing Ink = iota + 1
	InkMarker
	InkPlayer
	InkHeading
)

var radarPalette = []color.RGBA{
	InkRing:    {0x70, 0x70, 0x80, 0xff},
	InkMarker:  {0xff, 0x50, 0x40, 0xff},
	InkPlayer:  {0x40, 0xe0, 0xff, 0xff},
	InkHeading: {0xff, 0xd0, 0x40, 0xff},
}

const (
	// Nodes scaled at least this wide are drawn as rings of that radius.
	ringScale = 2
	// World units of the heading tick.
	headingLength = 3
	// Default world radius in view when the scene has no rings.
	defaultViewRadius = 20
)

type textOverlay struct {
	col, row int
	text     string
	color    color.RGBA
}

// Radar renders a scene top-down onto a terminal: +Y up the screen, +X to the
// right, centered on the world origin. It satisfies the game's renderer.
type Radar struct {
	canvas *Canvas
	cw     *ChunkWriter
	texts  []textOverlay
	notice []string
}

// NewRadar creates a radar drawing cols x rows cells to w.
func NewRadar(w io.Writer, cols, rows int) *Radar {
	return &Radar{
		canvas: NewCanvas(cols, rows, radarPalette),
		cw:     NewChunkWriter(w, 0, 0),
	}
}

// Resize changes the render area and its offset in the terminal. Reports
// whether anything changed, in which case the caller should clear the screen.
func (r *Radar) Resize(cols, rows, offsetCol, offsetRow int) bool {
	moved := offsetCol != r.canvas.OffsetCol() || offsetRow != r.canvas.OffsetRow()
	resized := r.canvas.Resize(cols, rows)
	r.canvas.SetOffset(offsetCol, offsetRow)
	r.cw.SetOffset(offsetCol, offsetRow)
	return moved || resized
}

// Drawable is the pixel size of the render area: one column by half a row per pixel.
func (r *Radar) Drawable() (w, h int) {
	return r.canvas.TerminalWidth(), r.canvas.PixelHeight()
}

// Begin starts a new frame.
func (r *Radar) Begin() {
	r.canvas.Clear()
	r.texts = r.texts[:0]
	r.notice = r.notice[:0]
}

// Notice queues lines to be shown centered over the frame.
func (r *Radar) Notice(lines ...string) {
	r.notice = append(r.notice, lines...)
}

func (r *Radar) project(scale float64, p mgl32.Vec3) Point {
	w, h := r.Drawable()
	return Point{
		X: float64(w)/2 + float64(p[0])*scale,
		Y: float64(h)/2 - float64(p[1])*scale,
	}
}

// DrawScene draws every visible node of s seen from above, then the camera
// with its heading.
func (r *Radar) DrawScene(s *scene.Scene, cam *scene.Camera) {
	w, h := r.Drawable()
	if w <= 0 || h <= 0 {
		return
	}

	view := float32(0)
	for _, t := range s.Transforms {
		if t.Scale[0] >= ringScale && t.Scale[0] > view {
			view = t.Scale[0]
		}
	}
	if view == 0 {
		view = defaultViewRadius
	}
	scale := float64(min(w, h)) / (2 * float64(view) * 1.05)

	for _, t := range s.Transforms {
		if t == cam.Transform || t.Hidden {
			continue
		}
		center := r.project(scale, t.Position)
		if t.Scale[0] >= ringScale {
			r.canvas.SetInk(InkRing)
			r.canvas.DrawCircle(center, float64(t.Scale[0])*scale, false)
			continue
		}
		r.canvas.SetInk(InkMarker)
		r.canvas.DrawCircle(center, math.Max(1, 0.5*scale), true)
	}

	eye := cam.Transform.Position
	heading, ok := physics.Flatten(cam.Transform.Forward())
	if !ok {
		heading, _ = physics.Flatten(cam.Transform.Up())
	}
	r.canvas.SetInk(InkHeading)
	r.canvas.DrawLine(r.project(scale, eye), r.project(scale, eye.Add(heading.Mul(headingLength))))
	r.canvas.SetInk(InkPlayer)
	r.canvas.DrawCircle(r.project(scale, eye), math.Max(1, 0.5*scale), true)
}

// DrawText places text with its baseline-left corner at anchor, given in
// normalized coordinates (x in [-aspect, aspect], y in [-1, 1] bottom to top).
// Terminal text is always one row tall, so height is ignored. Text is clipped
// at the right edge.
func (r *Radar) DrawText(text string, anchor mgl32.Vec2, height float32, c color.RGBA) {
	cols, rows := r.canvas.TerminalWidth(), r.canvas.TerminalHeight()
	_, pixH := r.Drawable()
	if cols <= 0 || rows <= 0 {
		return
	}
	aspect := float64(cols) / float64(pixH)

	col := int(math.Round((float64(anchor[0])+aspect)/(2*aspect)*float64(cols))) + 1
	row := int(math.Round((1 - float64(anchor[1])) / 2 * float64(rows)))
	col = max(1, min(col, cols))
	row = max(1, min(row, rows))

	runes := []rune(text)
	if room := cols - col + 1; len(runes) > room {
		runes = runes[:room]
	}
	r.texts = append(r.texts, textOverlay{col: col, row: row, text: string(runes), color: c})
}

// Flush renders the frame and writes it out.
func (r *Radar) Flush() error {
	r.canvas.Render(r.cw)
	r.canvas.RenderBorder(r.cw)

	for _, t := range r.texts {
		r.cw.MoveCursor(t.col, t.row)
		r.cw.WriteString(FgColor(t.color))
		r.cw.WriteString(t.text)
		r.cw.WriteString(ColorReset)
	}

	cols, rows := r.canvas.TerminalWidth(), r.canvas.TerminalHeight()
	top := rows/2 - len(r.notice)/2
	for i, line := range r.notice {
		col := max(1, (cols-len([]rune(line)))/2+1)
		r.cw.WriteAt(col, top+i+1, line)
	}

	return r.cw.Flush()
}

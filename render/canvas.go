package render

import (
	"image"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/lixenwraith/solo-pong/core"
)

// Canvas draws into the framebuffer without locking
// Obtain one through Surface.Batch; out-of-bounds drawing is clipped
type Canvas struct {
	frame  *image.RGBA
	stroke int
	face   font.Face
}

func newCanvas(width, height, stroke int) *Canvas {
	if stroke < 1 {
		stroke = 1
	}
	return &Canvas{
		frame:  image.NewRGBA(image.Rect(0, 0, width, height)),
		stroke: stroke,
		face:   basicfont.Face7x13,
	}
}

// Bounds returns the framebuffer rectangle
func (c *Canvas) Bounds() image.Rectangle {
	return c.frame.Bounds()
}

// Fill paints the whole framebuffer
func (c *Canvas) Fill(col core.RGB) {
	draw.Draw(c.frame, c.frame.Bounds(), image.NewUniform(col.RGBA()), image.Point{}, draw.Src)
}

// DrawRect paints a filled rectangle with top-left (x, y)
func (c *Canvas) DrawRect(x, y, w, h int, col core.RGB) {
	if w <= 0 || h <= 0 {
		return
	}
	r := image.Rect(x, y, x+w, y+h).Intersect(c.frame.Bounds())
	if r.Empty() {
		return
	}
	draw.Draw(c.frame, r, image.NewUniform(col.RGBA()), image.Point{}, draw.Src)
}

// DrawLine paints a line using the canvas stroke width centered on the path
func (c *Canvas) DrawLine(x0, y0, x1, y1 int, col core.RGB) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	half := c.stroke / 2
	err := dx + dy

	for {
		if c.stroke == 1 {
			c.set(x0, y0, col)
		} else {
			c.DrawRect(x0-half, y0-half, c.stroke, c.stroke, col)
		}
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// DrawCircle paints a filled circle, radius 0 is a single pixel
func (c *Canvas) DrawCircle(cx, cy, radius int, col core.RGB) {
	if radius < 0 {
		return
	}
	r2 := radius * radius
	for dy := -radius; dy <= radius; dy++ {
		span := int(math.Sqrt(float64(r2 - dy*dy)))
		c.DrawRect(cx-span, cy+dy, 2*span+1, 1, col)
	}
}

// DrawText renders text with its box top-left at (x, y)
func (c *Canvas) DrawText(text string, x, y int, col core.RGB) {
	d := font.Drawer{
		Dst:  c.frame,
		Src:  image.NewUniform(col.RGBA()),
		Face: c.face,
		Dot:  fixed.P(x, y+c.face.Metrics().Ascent.Ceil()),
	}
	d.DrawString(text)
}

// TextWidth returns the advance of text in pixels
func (c *Canvas) TextWidth(text string) int {
	return font.MeasureString(c.face, text).Ceil()
}

// TextHeight returns the line height in pixels
func (c *Canvas) TextHeight() int {
	m := c.face.Metrics()
	return (m.Ascent + m.Descent).Ceil()
}

// At returns the pixel color, black outside bounds
func (c *Canvas) At(x, y int) core.RGB {
	if !(image.Point{X: x, Y: y}).In(c.frame.Bounds()) {
		return core.RGBBlack
	}
	p := c.frame.RGBAAt(x, y)
	return core.RGB{R: p.R, G: p.G, B: p.B}
}

func (c *Canvas) set(x, y int, col core.RGB) {
	if (image.Point{X: x, Y: y}).In(c.frame.Bounds()) {
		c.frame.SetRGBA(x, y, col.RGBA())
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

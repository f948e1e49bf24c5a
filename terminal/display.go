package terminal

import (
	"image"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/solo-pong/core"
)

const halfBlock = '▀'

// Display presents frames on a tcell screen using upper half-block glyphs
type Display struct {
	mu     sync.Mutex
	screen tcell.Screen
}

// NewDisplay wraps an initialized screen and registers it for crash restoration
func NewDisplay(screen tcell.Screen) *Display {
	core.RegisterCrashFinisher(screen)
	return &Display{screen: screen}
}

// Open creates and initializes the terminal screen
func Open() (tcell.Screen, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.HideCursor()
	screen.Clear()
	return screen, nil
}

// Grid returns the cell area used for a frame of the given size on the current screen
func (d *Display) Grid(frameW, frameH int) (cols, rows int) {
	sw, sh := d.screen.Size()
	// Largest square pixel grid: one cell is one pixel wide and two pixels tall
	side := min(sw, sh*2, max(frameW, frameH))
	if side <= 0 {
		return 0, 0
	}
	return side, (side + 1) / 2
}

// Present implements render.Presenter
func (d *Display) Present(frame *image.RGBA) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	b := frame.Bounds()
	fw, fh := b.Dx(), b.Dy()
	cols, rows := d.Grid(fw, fh)
	if cols == 0 {
		return nil
	}
	pxRows := rows * 2

	for cy := 0; cy < rows; cy++ {
		topY := b.Min.Y + (2*cy)*fh/pxRows
		botY := b.Min.Y + (2*cy+1)*fh/pxRows
		for cx := 0; cx < cols; cx++ {
			x := b.Min.X + cx*fw/cols
			top := frame.RGBAAt(x, topY)
			bot := frame.RGBAAt(x, botY)
			style := tcell.StyleDefault.
				Foreground(tcell.NewRGBColor(int32(top.R), int32(top.G), int32(top.B))).
				Background(tcell.NewRGBColor(int32(bot.R), int32(bot.G), int32(bot.B)))
			d.screen.SetContent(cx, cy, halfBlock, nil, style)
		}
	}
	d.screen.Show()
	return nil
}

// Sync repaints the whole terminal after a resize
func (d *Display) Sync() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.screen.Clear()
	d.screen.Sync()
}

// Close restores the terminal
func (d *Display) Close() {
	core.RegisterCrashFinisher(nil)
	d.screen.Fini()
}

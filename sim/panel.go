package sim

import (
	"image"
	"strings"
	"sync"

	"github.com/fogleman/gg"

	"github.com/ezrec/ucalc/display"
)

const (
	PANEL_COLUMNS = 132 // Columns of display RAM.
	PANEL_OFFSET  = 2   // RAM column shown at the left edge.
	PANEL_PAGES   = 8

	PANEL_CONTROL_DATA = 0x40 // Control byte bit: data stream.
)

// Commands with one argument byte.
var panelArguments = map[byte]bool{
	0x81: true, // contrast
	0x8d: true, // charge pump
	0xa8: true, // multiplex ratio
	0xad: true, // DC-DC control
	0xd3: true, // display offset
	0xd5: true, // oscillator
	0xd9: true, // precharge
	0xda: true, // COM pins
	0xdb: true, // VCOM level
}

// Panel is a 128x64 OLED controller with 132 columns of display RAM, the
// leftmost visible column being PANEL_OFFSET. Each RAM byte is eight rows of
// a page, top row in the least significant bit.
type Panel struct {
	// Ready, if set, reports whether the controller has finished powering
	// up. It does not acknowledge its address before then.
	Ready func() bool

	mutex    sync.Mutex
	ram      [PANEL_PAGES][PANEL_COLUMNS]byte
	page     int
	column   int
	on       bool
	settings map[byte]byte // Argument of each one-argument command.
	commands int
	writes   int
}

var _ Device = (*Panel)(nil)

// Ack answers the address once powered up.
func (p *Panel) Ack() bool {
	return p.Ready == nil || p.Ready()
}

// Receive decodes a command or data transaction.
func (p *Panel) Receive(data []byte) {
	if len(data) == 0 {
		return
	}

	p.mutex.Lock()
	defer p.mutex.Unlock()

	if data[0]&PANEL_CONTROL_DATA != 0 {
		for _, value := range data[1:] {
			if p.column < PANEL_COLUMNS {
				p.ram[p.page][p.column] = value
				p.writes++
			}
			p.column++
		}
		return
	}

	for n := 1; n < len(data); n++ {
		cmd := data[n]
		p.commands++

		switch {
		case panelArguments[cmd]:
			if n+1 < len(data) {
				if p.settings == nil {
					p.settings = map[byte]byte{}
				}
				n++
				p.settings[cmd] = data[n]
			}
		case cmd <= 0x0f:
			p.column = (p.column & 0xf0) | int(cmd&0x0f)
		case cmd >= 0x10 && cmd <= 0x1f:
			p.column = (p.column & 0x0f) | int(cmd&0x0f)<<4
		case cmd >= 0xb0 && cmd <= 0xb7:
			p.page = int(cmd & 0x07)
		case cmd == 0xae:
			p.on = false
		case cmd == 0xaf:
			p.on = true
		}
	}
}

// On reports whether the display was switched on.
func (p *Panel) On() bool {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	return p.on
}

// Setting returns the argument last given to a one-argument command.
func (p *Panel) Setting(cmd byte) (value byte, ok bool) {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	value, ok = p.settings[cmd]
	return
}

// Writes returns the data bytes stored since power on.
func (p *Panel) Writes() int {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	return p.writes
}

// Pixel reports whether the visible pixel at column x, row y is lit.
func (p *Panel) Pixel(x, y int) bool {
	if x < 0 || x >= display.WIDTH || y < 0 || y >= display.HEIGHT {
		return false
	}

	p.mutex.Lock()
	defer p.mutex.Unlock()

	return (p.ram[y/display.PAGE_HEIGHT][x+PANEL_OFFSET]>>(y%display.PAGE_HEIGHT))&1 != 0
}

// Framebuffer returns the visible image.
func (p *Panel) Framebuffer() (fb display.Framebuffer) {
	for y := range display.HEIGHT {
		for x := range display.WIDTH {
			fb.Set(x, y, p.Pixel(x, y))
		}
	}
	return
}

// String renders the visible image with half-block characters, two rows
// per line.
func (p *Panel) String() string {
	var sb strings.Builder

	blocks := [4]string{" ", "▀", "▄", "█"}
	for y := 0; y < display.HEIGHT; y += 2 {
		for x := range display.WIDTH {
			n := 0
			if p.Pixel(x, y) {
				n |= 1
			}
			if p.Pixel(x, y+1) {
				n |= 2
			}
			sb.WriteString(blocks[n])
		}
		sb.WriteByte('\n')
	}

	return sb.String()
}

// Image returns the visible image at scale pixels per pixel, lit pixels
// white on black.
func (p *Panel) Image(scale int) image.Image {
	if scale < 1 {
		scale = 1
	}

	dc := gg.NewContext(display.WIDTH*scale, display.HEIGHT*scale)
	dc.SetRGB(0, 0, 0)
	dc.Clear()
	dc.SetRGB(1, 1, 1)

	for y := range display.HEIGHT {
		for x := range display.WIDTH {
			if p.Pixel(x, y) {
				dc.DrawRectangle(float64(x*scale), float64(y*scale), float64(scale), float64(scale))
			}
		}
	}
	dc.Fill()

	return dc.Image()
}

// SavePNG writes the visible image to path.
func (p *Panel) SavePNG(path string, scale int) error {
	return gg.SavePNG(path, p.Image(scale))
}

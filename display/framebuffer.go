// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package display

const (
	WIDTH  = 128 // Visible columns.
	HEIGHT = 64  // Visible rows.

	PAGES       = 8  // Hardware pages.
	PAGE_HEIGHT = 8  // Rows per page.
	WORD_ROWS   = 32 // Rows per framebuffer word.

	FRAMEBUFFER_WORDS = WIDTH * HEIGHT / 32
)

// Framebuffer is the display image, one bit per pixel. Each column is two
// words: rows 0..31 then rows 32..63, most significant bit on top.
type Framebuffer [FRAMEBUFFER_WORDS]uint32

func (fb *Framebuffer) index(x, y int) (word int, bit uint) {
	word = x*2 + y/WORD_ROWS
	bit = uint(WORD_ROWS - 1 - y%WORD_ROWS)
	return
}

// Set lights or clears the pixel at column x, row y. Out of range pixels are
// ignored.
func (fb *Framebuffer) Set(x, y int, on bool) {
	if x < 0 || x >= WIDTH || y < 0 || y >= HEIGHT {
		return
	}

	word, bit := fb.index(x, y)
	if on {
		fb[word] |= 1 << bit
	} else {
		fb[word] &^= 1 << bit
	}
}

// Get reports whether the pixel at column x, row y is lit.
func (fb *Framebuffer) Get(x, y int) bool {
	if x < 0 || x >= WIDTH || y < 0 || y >= HEIGHT {
		return false
	}

	word, bit := fb.index(x, y)
	return (fb[word]>>bit)&1 != 0
}

// Clear darkens every pixel.
func (fb *Framebuffer) Clear() {
	clear(fb[:])
}

// PageByte returns the eight rows of page at column as packed in the
// framebuffer: the top row in the most significant bit.
func (fb *Framebuffer) PageByte(page, column int) byte {
	word := fb[column*2+page/4]
	return byte(word >> (24 - 8*(page%4)))
}

// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package boot establishes the runtime memory image after a processor reset.
//
// Before any other code runs, the initialized data image is copied from its
// load address in flash to its run address in RAM, and the zero-initialized
// region is cleared. Both loops store one 32-bit word at a time through a
// Memory, so the stores cannot be elided or reordered by the compiler.
package boot

// WORD_SIZE is the size in bytes of one memory word.
const WORD_SIZE = 4

// Memory is word-addressed access to the processor's address space.
type Memory interface {
	Load(addr uint32) uint32
	Store(addr uint32, value uint32)
}

// Region is the byte address range [Start, End).
type Region struct {
	Start uint32
	End   uint32
}

// Words returns the number of words in the region.
func (r Region) Words() int {
	if r.End <= r.Start {
		return 0
	}
	return int((r.End - r.Start) / WORD_SIZE)
}

// Overlaps reports whether the two regions share any address.
func (r Region) Overlaps(other Region) bool {
	if r.Words() == 0 || other.Words() == 0 {
		return false
	}
	return r.Start < other.End && other.Start < r.End
}

// Image describes the linked memory image.
type Image struct {
	Data       Region // Run address of the initialized data.
	DataSource uint32 // Load address of the initialized data.
	Bss        Region // Zero-initialized data.
}

// Validate checks the image layout. Reset assumes it holds.
func (img Image) Validate() (err error) {
	for _, r := range []Region{img.Data, img.Bss} {
		if r.Start%WORD_SIZE != 0 || r.End%WORD_SIZE != 0 {
			return &ErrImage{Region: r, Err: ErrUnaligned}
		}
		if r.End < r.Start {
			return &ErrImage{Region: r, Err: ErrInverted}
		}
	}

	if img.DataSource%WORD_SIZE != 0 {
		return &ErrImage{Region: img.Source(), Err: ErrUnaligned}
	}

	if img.Data.Overlaps(img.Bss) {
		return &ErrImage{Region: img.Bss, Err: ErrOverlap}
	}

	if img.Data.Overlaps(img.Source()) {
		return &ErrImage{Region: img.Source(), Err: ErrOverlap}
	}

	return
}

// Source returns the load region of the initialized data.
func (img Image) Source() Region {
	return Region{
		Start: img.DataSource,
		End:   img.DataSource + uint32(img.Data.Words())*WORD_SIZE,
	}
}

// Reset copies the data image, zeroes the bss region, then transfers control
// to entry. A zero length region performs no stores.
func Reset(mem Memory, img Image, entry func()) {
	src := img.DataSource
	for dst := img.Data.Start; dst < img.Data.End; dst += WORD_SIZE {
		mem.Store(dst, mem.Load(src))
		src += WORD_SIZE
	}

	for dst := img.Bss.Start; dst < img.Bss.End; dst += WORD_SIZE {
		mem.Store(dst, 0)
	}

	entry()
}

package sim

import (
	"math/rand/v2"

	"github.com/ezrec/ucalc/boot"
)

// Ram is a word memory at Base. Power on contents are random.
type Ram struct {
	Base     uint32
	Words    []uint32
	ReadOnly bool

	Stores int // Word stores since power on.
}

// NewRam returns size bytes of memory at base filled from rng. A nil rng
// leaves it zeroed.
func NewRam(base uint32, size int, rng *rand.Rand) (ram *Ram) {
	ram = &Ram{
		Base:  base,
		Words: make([]uint32, size/boot.WORD_SIZE),
	}

	if rng != nil {
		for n := range ram.Words {
			ram.Words[n] = rng.Uint32()
		}
	}

	return
}

// NewFlash returns read-only memory at base holding words.
func NewFlash(base uint32, words []uint32) *Ram {
	return &Ram{
		Base:     base,
		Words:    words,
		ReadOnly: true,
	}
}

// Region returns the bytes the memory decodes.
func (ram *Ram) Region() boot.Region {
	return boot.Region{
		Start: ram.Base,
		End:   ram.Base + uint32(len(ram.Words))*boot.WORD_SIZE,
	}
}

func (ram *Ram) contains(addr uint32) bool {
	r := ram.Region()
	return addr >= r.Start && addr < r.End
}

func (ram *Ram) index(addr uint32) int {
	return int((addr - ram.Base) / boot.WORD_SIZE)
}

// Space is an address space of memories.
type Space []*Ram

var _ boot.Memory = Space(nil)

func (space Space) find(addr uint32) *Ram {
	for _, ram := range space {
		if ram.contains(addr) {
			return ram
		}
	}

	panic(&ErrBusFault{Addr: addr, Err: ErrUnmapped})
}

// Load reads the word at addr. Unmapped addresses panic with an ErrBusFault.
func (space Space) Load(addr uint32) uint32 {
	ram := space.find(addr)
	return ram.Words[ram.index(addr)]
}

// Store writes the word at addr. Unmapped or read-only addresses panic with
// an ErrBusFault.
func (space Space) Store(addr uint32, value uint32) {
	ram := space.find(addr)
	if ram.ReadOnly {
		panic(&ErrBusFault{Addr: addr, Err: ErrReadOnly})
	}

	ram.Words[ram.index(addr)] = value
	ram.Stores++
}

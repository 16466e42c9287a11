//go:build tinygo && cortexm

package boot

import (
	"runtime/volatile"
	"unsafe"
)

//go:extern _sidata
var _sidata [0]uint32

//go:extern _sdata
var _sdata [0]uint32

//go:extern _edata
var _edata [0]uint32

//go:extern _sbss
var _sbss [0]uint32

//go:extern _ebss
var _ebss [0]uint32

// Linked is the processor's own address space.
var Linked Memory = linkedMemory{}

type linkedMemory struct{}

func (linkedMemory) Load(addr uint32) uint32 {
	return volatile.LoadUint32((*uint32)(unsafe.Pointer(uintptr(addr))))
}

func (linkedMemory) Store(addr uint32, value uint32) {
	volatile.StoreUint32((*uint32)(unsafe.Pointer(uintptr(addr))), value)
}

func addressOf(sym *[0]uint32) uint32 {
	return uint32(uintptr(unsafe.Pointer(sym)))
}

// LinkedImage returns the image described by the linker script symbols.
func LinkedImage() Image {
	return Image{
		Data:       Region{Start: addressOf(&_sdata), End: addressOf(&_edata)},
		DataSource: addressOf(&_sidata),
		Bss:        Region{Start: addressOf(&_sbss), End: addressOf(&_ebss)},
	}
}

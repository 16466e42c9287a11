package sim

import (
	"context"
	"log"
	"math/rand/v2"
	"sync"

	"github.com/ezrec/ucalc/boot"
	"github.com/ezrec/ucalc/config"
	"github.com/ezrec/ucalc/vector"
)

const (
	FLASH_BASE = 0x0800_0000
	RAM_BASE   = 0x2000_0000
	RAM_SIZE   = 8 * 1024

	// Linked image of the board's firmware.
	IMAGE_DATA_SOURCE = FLASH_BASE + 0x1000
	IMAGE_DATA_WORDS  = 32
	IMAGE_BSS_WORDS   = 64

	// POWER_ON_SEED seeds the power on contents of RAM.
	POWER_ON_SEED = 0x5eed
)

// Board is the μCalc board.
type Board struct {
	Verbose bool

	Cpu    *Cpu
	Nvic   *Nvic
	Timer  *Timer
	Gpio   *Gpio
	Keypad *Keypad
	I2c    *I2c
	Panel  *Panel

	Flash  *Ram
	Ram    *Ram
	Memory Space
	Image  boot.Image
}

// NewBoard assembles a powered off board for cfg.
func NewBoard(cfg *config.Config) (b *Board) {
	b = &Board{}

	b.Cpu = NewCpu()
	b.Nvic = NewNvic(b.Cpu, &vector.Table{})
	b.Timer = NewTimer(b.Nvic, vector.TIM3, cfg.TimerPeriod)
	b.Gpio = &Gpio{}
	b.Keypad = &Keypad{Gpio: b.Gpio, Layout: cfg.Layout, Timer: b.Timer}

	spins := int64(cfg.PowerOnSpins)
	b.Panel = &Panel{
		Ready: func() bool { return b.Cpu.Spins() >= spins },
	}
	b.I2c = &I2c{}
	b.I2c.Attach(cfg.DisplayAddress, b.Panel)

	b.Image = boot.Image{
		Data: boot.Region{
			Start: RAM_BASE,
			End:   RAM_BASE + IMAGE_DATA_WORDS*boot.WORD_SIZE,
		},
		DataSource: IMAGE_DATA_SOURCE,
		Bss: boot.Region{
			Start: RAM_BASE + IMAGE_DATA_WORDS*boot.WORD_SIZE,
			End:   RAM_BASE + (IMAGE_DATA_WORDS+IMAGE_BSS_WORDS)*boot.WORD_SIZE,
		},
	}

	rng := rand.New(rand.NewPCG(POWER_ON_SEED, POWER_ON_SEED))

	flash := make([]uint32, (IMAGE_DATA_SOURCE-FLASH_BASE)/boot.WORD_SIZE+IMAGE_DATA_WORDS)
	for n := range flash {
		flash[n] = rng.Uint32()
	}
	b.Flash = NewFlash(FLASH_BASE, flash)
	b.Ram = NewRam(RAM_BASE, RAM_SIZE, rng)
	b.Memory = Space{b.Flash, b.Ram}

	return
}

// Run powers the board on with table installed: the reset handler runs as
// the main context, and interrupts are serviced until ctx is done or the
// processor halts. The board is powered off on return.
func (b *Board) Run(ctx context.Context, table *vector.Table) (err error) {
	b.Nvic.Table = table
	b.Nvic.Verbose = b.Verbose
	b.I2c.Verbose = b.Verbose

	var wg sync.WaitGroup
	main := make(chan struct{})

	wg.Add(2)
	go func() {
		defer wg.Done()
		b.Nvic.Run(ctx)
	}()
	go func() {
		defer wg.Done()
		defer close(main)
		table.Reset()
	}()

	select {
	case <-ctx.Done():
		err = ctx.Err()
	case <-b.Cpu.Halted():
		err = ErrHalted
	case <-main:
		err = ctx.Err()
	}

	if b.Verbose {
		log.Printf("board: power off: %v", err)
	}

	b.Cpu.PowerOff()
	wg.Wait()

	return
}

// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package firmware assembles the μCalc firmware from its parts and provides
// the reset entry point and the vector table.
//
// Boot order: the memory image is initialized, the indicators and the key
// matrix are configured, the display is powered up, initialized and painted,
// the start up script is pressed, and the scan timer is started. The dispatch
// loop then runs for as long as the processor does.
package firmware

import (
	"context"
	"log"

	"github.com/ezrec/ucalc/boot"
	"github.com/ezrec/ucalc/calc"
	"github.com/ezrec/ucalc/config"
	"github.com/ezrec/ucalc/critical"
	"github.com/ezrec/ucalc/dispatch"
	"github.com/ezrec/ucalc/display"
	"github.com/ezrec/ucalc/event"
	"github.com/ezrec/ucalc/fault"
	"github.com/ezrec/ucalc/hal"
	"github.com/ezrec/ucalc/keyboard"
	"github.com/ezrec/ucalc/vector"
)

// Hardware is the board the firmware runs on.
type Hardware struct {
	Cpu    hal.Cpu
	Gpio   hal.Gpio
	Timer  hal.Timer
	Bus    hal.Bus
	Memory boot.Memory
	Image  boot.Image
}

// Firmware is the complete program.
type Firmware struct {
	Verbose bool

	// Context ends the dispatch loop. The target never cancels it.
	Context context.Context

	Config   *config.Config
	Hardware Hardware

	Section *critical.Section
	Queue   *event.Queue
	Scanner *keyboard.Scanner
	Display *display.Display
	Fault   *fault.Handler
	Loop    *dispatch.Loop
	Calc    *calc.State
}

// New wires the firmware for cfg on hw, driving st.
func New(cfg *config.Config, hw Hardware, st *calc.State) (fw *Firmware) {
	fw = &Firmware{
		Context:  context.Background(),
		Config:   cfg,
		Hardware: hw,
		Calc:     st,
	}

	fw.Section = critical.NewSection(hw.Cpu)

	fw.Queue = &event.Queue{
		Capacity: cfg.QueueCapacity,
		Policy:   cfg.QueuePolicy,
	}

	fw.Scanner = &keyboard.Scanner{
		Gpio:   hw.Gpio,
		Timer:  hw.Timer,
		Layout: cfg.Layout,
		Queue:  fw.Queue,
	}

	fw.Display = &display.Display{
		Bus:     hw.Bus,
		Address: cfg.DisplayAddress,
	}

	fw.Fault = &fault.Handler{
		Cpu:   hw.Cpu,
		Gpio:  hw.Gpio,
		Pin:   cfg.FaultPin,
		Level: cfg.FaultLevel,
	}

	fw.Loop = &dispatch.Loop{
		Cpu:        hw.Cpu,
		Section:    fw.Section,
		Queue:      fw.Queue,
		Calculator: st,
		Display:    fw.Display,
	}

	return
}

// SetVerbose enables logging in every part but the scan handler.
func (fw *Firmware) SetVerbose(verbose bool) {
	fw.Verbose = verbose
	fw.Display.Verbose = verbose
	fw.Fault.Verbose = verbose
	fw.Loop.Verbose = verbose
	fw.Calc.Verbose = verbose
}

// Vectors returns the vector table.
func (fw *Firmware) Vectors() (table *vector.Table) {
	table = &vector.Table{
		Reset:     fw.Reset,
		NMI:       fw.Fault.Processor,
		HardFault: fw.Fault.Processor,
	}

	table.Interrupt[vector.TIM3] = fw.scan

	return
}

func (fw *Firmware) scan() {
	defer fw.Fault.Recover()
	fw.Scanner.Interrupt()
}

// Reset is the reset entry point: initialize memory, then run Main.
func (fw *Firmware) Reset() {
	hw := fw.Hardware

	if err := hw.Image.Validate(); err != nil {
		fw.Fault.Fault(fault.FAULT_SOFTWARE, err)
	}

	boot.Reset(hw.Memory, hw.Image, fw.Main)
}

// Main is the program. It returns only when Context is done.
func (fw *Firmware) Main() {
	defer fw.Fault.Recover()

	cfg := fw.Config
	hw := fw.Hardware

	hw.Gpio.Configure(cfg.FaultPin, hal.MODE_OUTPUT)
	hw.Gpio.Set(cfg.FaultPin, !cfg.FaultLevel)
	hw.Gpio.Configure(cfg.StatusPin, hal.MODE_OUTPUT)
	hw.Gpio.Set(cfg.StatusPin, false)

	fw.Scanner.Configure()
	fw.Queue.Reset()

	// Display power up.
	hw.Cpu.Spin(cfg.PowerOnSpins)
	fw.Loop.Report(fw.Display.Init())
	fw.Loop.Report(fw.Display.Refresh(fw.Calc.Screen()))
	hw.Cpu.Spin(cfg.PowerOnSpins)

	fw.Press(cfg.Script)

	ok := fw.Loop.Err == nil
	hw.Gpio.Set(cfg.StatusPin, ok)
	fw.Loop.Status = func(ok bool) {
		hw.Gpio.Set(cfg.StatusPin, ok)
	}

	if fw.Verbose {
		log.Printf("firmware: boot ok=%v", ok)
	}

	hw.Timer.Start()

	err := fw.Loop.Run(fw.Context)
	if fw.Verbose {
		log.Printf("firmware: %v", err)
	}
}

// Press presses the buttons spelled by script, repainting after each.
// Symbols with no button are skipped.
func (fw *Firmware) Press(script string) {
	for n := range len(script) {
		button, ok := calc.ButtonOf(script[n])
		if !ok {
			continue
		}

		fw.Calc.Press(button)
		fw.Loop.Report(fw.Display.Refresh(fw.Calc.Screen()))
	}
}

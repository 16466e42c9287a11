// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"maps"
	"os"
	"slices"
	"time"

	"github.com/ezrec/ucalc/calc"
	"github.com/ezrec/ucalc/config"
	"github.com/ezrec/ucalc/firmware"
	"github.com/ezrec/ucalc/sim"
)

const (
	PNG_SCALE    = 4
	BOOT_TIMEOUT = 10 * time.Second
)

// started waits for the firmware to reach its dispatch loop. A board that
// stops first has its result put back on done.
func started(board *sim.Board, done chan error) (err error) {
	deadline := time.After(BOOT_TIMEOUT)
	for !board.Timer.Started() {
		select {
		case err = <-done:
			done <- err
			if err == nil {
				err = sim.ErrHalted
			}
			return
		case <-deadline:
			return context.DeadlineExceeded
		case <-time.After(time.Millisecond):
		}
	}

	return
}

// tap presses the keys for text.
func tap(ctx context.Context, board *sim.Board, st *calc.State, text string) (err error) {
	for n := range len(text) {
		button, ok := calc.ButtonOf(text[n])
		if !ok {
			continue
		}
		key, ok := st.Keymap.KeyOf(button)
		if !ok {
			continue
		}
		err = board.Keypad.Tap(ctx, key)
		if err != nil {
			return
		}
	}

	return
}

func main() {
	var configFile string
	var script string
	var keys string
	var interactive bool
	var pngFile string
	var defines bool
	var verbose bool

	flag.StringVar(&configFile, "config", "", "Starlark .star board configuration")
	flag.StringVar(&script, "script", "", "Buttons pressed at boot, replacing the configured SCRIPT")
	flag.StringVar(&keys, "k", "", "Keys tapped on the keypad once running")
	flag.BoolVar(&interactive, "i", false, "Interactive: tap keys from the terminal")
	flag.StringVar(&pngFile, "png", "", "Save the final display to a .png file")
	flag.BoolVar(&defines, "defines", false, "List the configuration predeclared names and exit")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	if defines {
		all := maps.Collect(config.Defines())
		for _, key := range slices.Sorted(maps.Keys(all)) {
			fmt.Printf("%v = %v\n", key, all[key])
		}
		return
	}

	cfg := config.Default()

	if len(configFile) != 0 {
		inf, err := os.Open(configFile)
		if err != nil {
			log.Fatalf("%v: %v", configFile, err)
		}
		err = cfg.Load(configFile, inf)
		inf.Close()
		if err != nil {
			log.Fatal(err)
		}
	}

	flag.Visit(func(fl *flag.Flag) {
		if fl.Name == "script" {
			cfg.Script = script
		}
	})

	err := cfg.Validate()
	if err != nil {
		log.Fatalf("%v: %v", configFile, err)
	}

	board := sim.NewBoard(cfg)
	board.Verbose = verbose

	st := calc.New()
	fw := firmware.New(cfg, firmware.Hardware{
		Cpu:    board.Cpu,
		Gpio:   board.Gpio,
		Timer:  board.Timer,
		Bus:    board.I2c,
		Memory: board.Memory,
		Image:  board.Image,
	}, st)
	fw.SetVerbose(verbose)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	fw.Context = ctx

	done := make(chan error, 1)
	go func() {
		done <- board.Run(ctx, fw.Vectors())
	}()

	err = started(board, done)
	if err == nil {
		err = tap(ctx, board, st, keys)
	}
	if err == nil && interactive {
		err = session(ctx, board, st)
	}

	cancel()
	if run_err := <-done; err == nil && !errors.Is(run_err, context.Canceled) {
		err = run_err
	}

	if !interactive {
		fmt.Print(board.Panel.String())
	}

	if len(pngFile) != 0 {
		if png_err := board.Panel.SavePNG(pngFile, PNG_SCALE); png_err != nil {
			log.Fatalf("%v: %v", pngFile, png_err)
		}
	}

	if err != nil {
		log.Fatal(err)
	}
}

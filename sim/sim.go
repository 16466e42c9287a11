// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package sim is a host model of the μCalc board: processor core, interrupt
// controller, scan timer, GPIO with the key matrix, two-wire bus with the
// OLED panel, and the memories the bootstrap initializes.
//
// The main context runs on its own goroutine. Interrupts are delivered on the
// controller's goroutine, and never while the main context has them masked,
// so firmware written against package hal runs here unmodified.
package sim

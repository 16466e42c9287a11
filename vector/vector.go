// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package vector defines the processor's interrupt vector table.
//
// The table is assembled once, when the firmware image is built, and is
// never modified afterwards. Only the interrupt controller reads it.
package vector

import (
	"fmt"
)

// LINE_COUNT is the number of external interrupt lines.
const LINE_COUNT = 32

// Handler is an interrupt entry point. A nil Handler is an empty slot.
type Handler func()

// Line is an external interrupt line number.
type Line uint8

const (
	WWDG                = Line(0)
	RTC                 = Line(2)
	FLASH               = Line(3)
	RCC                 = Line(4)
	EXTI0_1             = Line(5)
	EXTI2_3             = Line(6)
	EXTI4_15            = Line(7)
	DMA_CH1             = Line(9)
	DMA_CH2_3           = Line(10)
	DMA_CH4_5           = Line(11)
	ADC                 = Line(12)
	TIM1_BRK_UP_TRG_COM = Line(13)
	TIM1_CC             = Line(14)
	TIM3                = Line(16)
	TIM6                = Line(17)
	TIM14               = Line(19)
	TIM15               = Line(20)
	TIM16               = Line(21)
	TIM17               = Line(22)
	I2C1                = Line(23)
	I2C2                = Line(24)
	SPI1                = Line(25)
	SPI2                = Line(26)
	USART1              = Line(27)
	USART2              = Line(28)
	USART3_4_5_6        = Line(29)
	USB                 = Line(31)
)

var lineNames = [LINE_COUNT]string{
	WWDG:                "WWDG",
	RTC:                 "RTC",
	FLASH:               "FLASH",
	RCC:                 "RCC",
	EXTI0_1:             "EXTI0_1",
	EXTI2_3:             "EXTI2_3",
	EXTI4_15:            "EXTI4_15",
	DMA_CH1:             "DMA_CH1",
	DMA_CH2_3:           "DMA_CH2_3",
	DMA_CH4_5:           "DMA_CH4_5",
	ADC:                 "ADC",
	TIM1_BRK_UP_TRG_COM: "TIM1_BRK_UP_TRG_COM",
	TIM1_CC:             "TIM1_CC",
	TIM3:                "TIM3",
	TIM6:                "TIM6",
	TIM14:               "TIM14",
	TIM15:               "TIM15",
	TIM16:               "TIM16",
	TIM17:               "TIM17",
	I2C1:                "I2C1",
	I2C2:                "I2C2",
	SPI1:                "SPI1",
	SPI2:                "SPI2",
	USART1:              "USART1",
	USART2:              "USART2",
	USART3_4_5_6:        "USART3_4_5_6",
	USB:                 "USB",
}

func (line Line) String() string {
	if int(line) < LINE_COUNT && lineNames[line] != "" {
		return lineNames[line]
	}
	return fmt.Sprintf("IRQ%d", uint8(line))
}

// Reserved reports whether the line has no peripheral behind it.
func (line Line) Reserved() bool {
	return int(line) >= LINE_COUNT || lineNames[line] == ""
}

// Table is the vector table: the Cortex-M system exceptions followed by one
// slot per external interrupt line.
type Table struct {
	Reset     Handler
	NMI       Handler
	HardFault Handler
	SVCall    Handler
	PendSV    Handler
	SysTick   Handler

	Interrupt [LINE_COUNT]Handler
}

// Lookup returns the entry point for an external interrupt line.
func (table *Table) Lookup(line Line) (handler Handler, ok bool) {
	if int(line) >= LINE_COUNT {
		return
	}

	handler = table.Interrupt[line]
	ok = handler != nil

	return
}

// Lines returns the populated external interrupt lines in ascending order.
func (table *Table) Lines() (lines []Line) {
	for n, handler := range table.Interrupt {
		if handler != nil {
			lines = append(lines, Line(n))
		}
	}

	return
}

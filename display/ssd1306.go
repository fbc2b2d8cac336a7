// Copyright © 2019 mg
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

// Package display emulates the SSD1306 monochrome OLED controller: its
// command-buffer state machine, the three addressing-mode cursor rules,
// and the VRAM readout transform a host renderer pulls a frame through.
package display

import (
	"fmt"

	"github.com/jmaroeder/arduous/internal/log"
)

// DisplayWidth, DisplayHeight and DisplayPixels are the fixed panel
// geometry driving an Arduboy; nothing here is resizable at runtime.
const (
	DisplayWidth  = 128
	DisplayHeight = 64
	DisplayPixels = DisplayWidth * DisplayHeight
	pageSize      = 8
)

// AddressingMode selects how the column/page cursor advances after
// push_data.
type AddressingMode int

const (
	Horizontal AddressingMode = iota
	Vertical
	Page
)

// UnknownCommand is returned by PushCommand when the first byte of a
// pending command isn't in the dispatch table.
type UnknownCommand struct{ Opcode uint8 }

func (e *UnknownCommand) Error() string {
	return fmt.Sprintf("unknown display command 0x%02X", e.Opcode)
}

// InvalidParameter is returned by a command handler whose argument
// byte is out of the range the real controller accepts (multiplex
// ratio, precharge period).
type InvalidParameter struct {
	Command string
	Value   uint8
}

func (e *InvalidParameter) Error() string {
	return fmt.Sprintf("invalid parameter for %s: 0x%02X", e.Command, e.Value)
}

// SSD1306 is the controller model: registers, VRAM, and the pending
// command-byte accumulator.
type SSD1306 struct {
	alternativeCom bool
	comRemap       bool
	ignoreRAM      bool
	inverted       bool
	segmentRemap   bool
	sleeping       bool

	addressingMode AddressingMode

	col                 uint8
	columnEnd           uint8
	columnStart         uint8
	contrast            uint8
	divideRatio         uint8
	displayStartLine    uint8
	multiplexRatio      uint8
	oscillatorFrequency uint8
	pageEnd             uint8
	pageModeColumnStart uint8
	pageModePageStart   uint8
	pageStart           uint8
	page                uint8
	prechargePeriod     uint8
	vcomhDeselectLevel  uint8
	verticalShift       uint8

	cmdBuf []uint8
	vram   [DisplayPixels]bool
}

// New returns a controller in its post-power-on state, matching the
// reset values a real SSD1306 documents in its datasheet.
func New() *SSD1306 {
	d := &SSD1306{}
	d.Reset()
	return d
}

// Reset restores every register to its power-on default and clears
// VRAM.
func (d *SSD1306) Reset() {
	*d = SSD1306{
		alternativeCom:      true,
		addressingMode:      Page,
		columnEnd:           0x7F,
		contrast:            0x7F,
		divideRatio:         1,
		multiplexRatio:      64,
		oscillatorFrequency: 0x08,
		pageEnd:             0x07,
		prechargePeriod:     0x22,
		vcomhDeselectLevel:  0x20,
	}
}

// Dimensions reports the fixed panel geometry.
func (d *SSD1306) Dimensions() (width, height int) { return DisplayWidth, DisplayHeight }

// Iter returns the row-major (y·128+x) readout of the panel: each
// entry is the on/off state of one pixel after the sleeping/
// ignore-RAM/inverted transform stack is applied, per spec.md's
// documented order (earliest listed rule wins).
func (d *SSD1306) Iter() []bool {
	out := make([]bool, DisplayPixels)
	switch {
	case d.sleeping:
		// out is already all-false
	case d.ignoreRAM:
		for i := range out {
			out[i] = true
		}
	case d.inverted:
		for i, b := range d.vram {
			out[i] = !b
		}
	default:
		copy(out, d.vram[:])
	}
	return out
}

// PushData writes one byte of 8 vertically-stacked pixels into VRAM at
// the current (col, page), LSB at the top of the page, then advances
// the cursor per the active addressing mode.
func (d *SSD1306) PushData(data uint8) {
	top := (int(d.page)+1)*pageSize - 1
	for i := 0; i < 8; i++ {
		bit := data&(1<<uint(i)) != 0
		y := top - i
		d.vram[y*DisplayWidth+int(d.col)] = bit
	}

	switch d.addressingMode {
	case Page:
		d.col++
		if int(d.col) >= DisplayWidth {
			d.col = d.pageModeColumnStart
		}
	case Horizontal:
		d.col++
		if d.col > d.columnEnd {
			d.col = d.columnStart
			d.page++
			if d.page > d.pageEnd {
				d.page = d.pageStart
			}
		}
	case Vertical:
		d.page++
		if d.page > d.pageEnd {
			d.page = d.pageStart
			d.col++
			if d.col > d.columnEnd {
				d.col = d.columnStart
			}
		}
	}
}

// PushCommand accumulates one command byte and dispatches once the
// buffer reaches the length the first byte demands.
func (d *SSD1306) PushCommand(data uint8) error {
	d.cmdBuf = append(d.cmdBuf, data)
	want, err := commandLength(d.cmdBuf[0])
	if err != nil {
		d.cmdBuf = d.cmdBuf[:0]
		return err
	}
	if len(d.cmdBuf) < want {
		return nil
	}
	buf := d.cmdBuf
	d.cmdBuf = d.cmdBuf[:0]
	log.Logf("display command: % 02X", buf)
	return d.dispatch(buf)
}

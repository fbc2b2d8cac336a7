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

// Package arduboy is the top-level device façade: it owns one CPU, one
// SSD1306, and the button latch, and wires the two between them the way
// the real board does — over a data/command pin and an SPI data
// register, rather than anything this package implements a protocol
// for itself.
package arduboy

import (
	"github.com/jmaroeder/arduous/avr"
	"github.com/jmaroeder/arduous/display"
)

// ATmega32U4 register addresses for the SPI data register and the port
// carrying the SSD1306's D/C select line, per the stock Arduboy wiring.
const (
	addrSPDR  = avr.IORegisterStart + 0x2E
	addrPORTD = avr.IORegisterStart + 0x0B
	dcBit     = 4
)

// CyclesPerFrame is the CPU budget a 16MHz ATmega32U4 spends rendering
// one ~60Hz frame.
const CyclesPerFrame = 16_000_000 / 60

// Device is an emulated Arduboy: CPU, display and buttons, plus the
// glue that forwards SPI writes to the display based on the latched
// D/C pin state.
type Device struct {
	CPU     *avr.CPU
	Display *display.SSD1306

	buttons buttons
	dcData  bool // true = data mode, false = command mode

	pendingErr error
}

// New wires a fresh CPU, display and button latch together.
func New() *Device {
	d := &Device{
		CPU:     avr.NewCPU(),
		Display: display.New(),
	}
	d.buttons.attach(d.CPU)
	d.CPU.SetIOHandler(addrPORTD, nil, d.writePortD)
	d.CPU.SetIOHandler(addrSPDR, func() uint8 { return 0 }, d.writeSPDR)
	return d
}

func (d *Device) writePortD(v uint8) {
	d.dcData = v&(1<<dcBit) != 0
}

func (d *Device) writeSPDR(v uint8) {
	if d.pendingErr != nil {
		return
	}
	if d.dcData {
		d.Display.PushData(v)
		return
	}
	d.pendingErr = d.Display.PushCommand(v)
}

// LoadProgram installs a flat little-endian flash image.
func (d *Device) LoadProgram(image []byte) error {
	return d.CPU.LoadProgram(image)
}

// SetButton updates the latch for one button; the host must not call
// this concurrently with RunFrame.
func (d *Device) SetButton(button Button, pressed bool) {
	d.buttons.set(button, pressed)
}

// RunFrame advances the CPU by one frame's worth of cycles, forwarding
// any display-bus fault or CPU fault encountered along the way. On a
// CPU fault, PC sits at the faulting instruction. On a display-bus
// fault, the instruction whose write reached the display has already
// completed, so PC is past it. Either way the machine is left exactly
// as the CPU left it — the caller decides whether to log, reset, or
// stop.
func (d *Device) RunFrame() error {
	d.pendingErr = nil
	var spent uint32
	for spent < CyclesPerFrame {
		cycles, err := d.CPU.Step()
		if err != nil {
			return err
		}
		if d.pendingErr != nil {
			return d.pendingErr
		}
		spent += cycles
	}
	return nil
}

// Reset returns the CPU, display and button latch to their power-on
// state.
func (d *Device) Reset() {
	d.CPU.Reset()
	d.Display.Reset()
	d.buttons.reset()
	d.dcData = false
	d.pendingErr = nil
}

// DisplayIter returns the row-major 8192-pixel readout for this frame.
func (d *Device) DisplayIter() []bool { return d.Display.Iter() }

// DisplayDimensions reports the fixed panel geometry.
func (d *Device) DisplayDimensions() (width, height int) { return d.Display.Dimensions() }

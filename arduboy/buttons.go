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

package arduboy

import "github.com/jmaroeder/arduous/avr"

// Button identifies one of the six physical Arduboy buttons.
type Button int

const (
	ButtonUp Button = iota
	ButtonDown
	ButtonLeft
	ButtonRight
	ButtonA
	ButtonB
)

// I/O register addresses for the pin-input registers the stock
// Arduboy core reads buttons through (ATmega32U4 datasheet addresses).
const (
	addrPINB = avr.IORegisterStart + 0x03
	addrPINE = avr.IORegisterStart + 0x0C
	addrPINF = avr.IORegisterStart + 0x0F
)

// buttons is a 6-bit latch: true means pressed. Real hardware reads
// pressed as logic low, so the PINx handlers invert when composing the
// byte a program sees.
type buttons struct {
	pressed [6]bool
}

func (b *buttons) attach(cpu *avr.CPU) {
	cpu.SetIOHandler(addrPINB, func() uint8 { return b.readPort(ButtonB, 4) }, nil)
	cpu.SetIOHandler(addrPINE, func() uint8 { return b.readPort(ButtonA, 6) }, nil)
	cpu.SetIOHandler(addrPINF, func() uint8 { return b.readFullPort() }, nil)
}

// readPort synthesizes a PINx byte with every bit pulled high except
// the one button wired to this port, which reads low while pressed.
func (b *buttons) readPort(button Button, bit uint8) uint8 {
	v := uint8(0xFF)
	if b.pressed[button] {
		v &^= 1 << bit
	}
	return v
}

// readFullPort composes PINF, which carries all four directional
// buttons on this hardware revision.
func (b *buttons) readFullPort() uint8 {
	v := uint8(0xFF)
	if b.pressed[ButtonUp] {
		v &^= 1 << 7
	}
	if b.pressed[ButtonRight] {
		v &^= 1 << 6
	}
	if b.pressed[ButtonLeft] {
		v &^= 1 << 5
	}
	if b.pressed[ButtonDown] {
		v &^= 1 << 4
	}
	return v
}

func (b *buttons) set(button Button, isPressed bool) {
	b.pressed[button] = isPressed
}

func (b *buttons) reset() {
	b.pressed = [6]bool{}
}

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

package avr

// Timer0 register addresses, matching the ATmega32U4 datasheet layout.
const (
	addrTCCR0A = 0x0044
	addrTCCR0B = 0x0045
	addrTCNT0  = 0x0046
	addrOCR0A  = 0x0047
	addrTIMSK0 = 0x006E
	addrTIFR0  = 0x0035
)

// VectorTimer0CompA is the interrupt vector this model raises on
// Timer0 Compare Match A, when TIMSK0.OCIE0A is set. The real datasheet
// vector numbering is reassigned here to a compact table (see
// CPU.serviceInterrupts); a legal, simpler implementation per spec.md
// §4.4, since only frame-pacing timing is needed.
const VectorTimer0CompA = 14

var timer0Prescale = [8]uint32{0, 1, 8, 64, 256, 1024, 0, 0}

// timer0 models just enough of Timer0 to let the stock Arduboy
// bootloader/core's millis()-style pacing code run: a free-running
// 8-bit counter, a single compare register, and an enable bit.
type timer0 struct {
	cpu *CPU

	tccr0a, tccr0b, ocr0a, timsk0, tifr0 uint8
	tcnt0                                uint8
	prescaleAcc                          uint32
}

func (t *timer0) attach(cpu *CPU) {
	t.cpu = cpu
	cpu.Mem.SetIOHandler(addrTCCR0A, func() uint8 { return t.tccr0a }, func(v uint8) { t.tccr0a = v })
	cpu.Mem.SetIOHandler(addrTCCR0B, func() uint8 { return t.tccr0b }, func(v uint8) { t.tccr0b = v })
	cpu.Mem.SetIOHandler(addrTCNT0, func() uint8 { return t.tcnt0 }, func(v uint8) { t.tcnt0 = v })
	cpu.Mem.SetIOHandler(addrOCR0A, func() uint8 { return t.ocr0a }, func(v uint8) { t.ocr0a = v })
	cpu.Mem.SetIOHandler(addrTIMSK0, func() uint8 { return t.timsk0 }, func(v uint8) { t.timsk0 = v })
	cpu.Mem.SetIOHandler(addrTIFR0, func() uint8 { return t.tifr0 }, func(v uint8) {
		t.tifr0 &^= v // write-1-to-clear, per datasheet
	})
}

func (t *timer0) reset() {
	t.tccr0a, t.tccr0b, t.ocr0a, t.timsk0, t.tifr0, t.tcnt0 = 0, 0, 0, 0, 0, 0
	t.prescaleAcc = 0
}

func (t *timer0) tick(cycles uint32) {
	divisor := timer0Prescale[t.tccr0b&0x07]
	if divisor == 0 {
		return
	}
	t.prescaleAcc += cycles
	for t.prescaleAcc >= divisor {
		t.prescaleAcc -= divisor
		t.tcnt0++
		if t.tcnt0 == t.ocr0a {
			t.tifr0 |= 0x01
			if t.timsk0&0x01 != 0 {
				t.cpu.RaiseInterrupt(VectorTimer0CompA)
			}
		}
	}
}

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

// bit7/bit3/bit0 pull a single bit out of a byte as a 0/1 uint8, which
// keeps the flag formulas below a direct transcription of the datasheet's
// boolean expressions instead of a pile of shift-and-mask noise.
func bit7(v uint8) uint8 { return (v >> 7) & 1 }
func bit3(v uint8) uint8 { return (v >> 3) & 1 }
func bit0(v uint8) uint8 { return v & 1 }

// addFlags sets H/V/N/Z/C/S for ADD and ADC, given the two operands and
// the (already wrapped) result. The carry-in bit doesn't appear in the
// formula directly — it's folded into r by the caller.
func (cpu *CPU) addFlags(rd, rr, r uint8) {
	h := (bit3(rd) & bit3(rr)) | (bit3(rr) & ^bit3(r) & 1) | (^bit3(r) & 1 & bit3(rd))
	v := (bit7(rd) & bit7(rr) & ^bit7(r) & 1) | (^bit7(rd) & 1 & ^bit7(rr) & 1 & bit7(r))
	c := (bit7(rd) & bit7(rr)) | (bit7(rr) & ^bit7(r) & 1) | (^bit7(r) & 1 & bit7(rd))
	cpu.SREG.H = h != 0
	cpu.SREG.V = v != 0
	cpu.SREG.N = bit7(r) != 0
	cpu.SREG.Z = r == 0
	cpu.SREG.C = c != 0
	cpu.SREG.updateSZ()
}

// subFlags sets H/V/N/Z/C/S for SUB/SUBI/CP/CPI, given minuend,
// subtrahend and result.
func (cpu *CPU) subFlags(rd, rr, r uint8) {
	h := (^bit3(rd) & 1 & bit3(rr)) | (bit3(rr) & bit3(r)) | (bit3(r) & ^bit3(rd) & 1)
	v := (bit7(rd) & ^bit7(rr) & 1 & ^bit7(r) & 1) | (^bit7(rd) & 1 & bit7(rr) & bit7(r))
	c := (^bit7(rd) & 1 & bit7(rr)) | (bit7(rr) & bit7(r)) | (bit7(r) & ^bit7(rd) & 1)
	cpu.SREG.H = h != 0
	cpu.SREG.V = v != 0
	cpu.SREG.N = bit7(r) != 0
	cpu.SREG.Z = r == 0
	cpu.SREG.C = c != 0
	cpu.SREG.updateSZ()
}

// subFlagsSticky is subFlags but for SBC/SBCI/CPC, whose Z flag is only
// set if the result is zero AND the previous Z was already set — so a
// 16-bit subtract-with-borrow across two SBC instructions correctly
// reports zero only when both halves are zero.
func (cpu *CPU) subFlagsSticky(rd, rr, r uint8) {
	z := r == 0 && cpu.SREG.Z
	cpu.subFlags(rd, rr, r)
	cpu.SREG.Z = z
}

func (cpu *CPU) logicFlags(r uint8) {
	cpu.SREG.V = false
	cpu.SREG.N = bit7(r) != 0
	cpu.SREG.Z = r == 0
	cpu.SREG.updateSZ()
}

func (cpu *CPU) incFlags(rd, r uint8) {
	cpu.SREG.V = rd == 0x7F
	cpu.SREG.N = bit7(r) != 0
	cpu.SREG.Z = r == 0
	cpu.SREG.updateSZ()
}

func (cpu *CPU) decFlags(rd, r uint8) {
	cpu.SREG.V = rd == 0x80
	cpu.SREG.N = bit7(r) != 0
	cpu.SREG.Z = r == 0
	cpu.SREG.updateSZ()
}

func (cpu *CPU) comFlags(r uint8) {
	cpu.SREG.V = false
	cpu.SREG.N = bit7(r) != 0
	cpu.SREG.Z = r == 0
	cpu.SREG.C = true
	cpu.SREG.updateSZ()
}

func (cpu *CPU) negFlags(rd, r uint8) {
	cpu.SREG.H = (bit3(r) | bit3(rd)) != 0
	cpu.SREG.V = r == 0x80
	cpu.SREG.N = bit7(r) != 0
	cpu.SREG.Z = r == 0
	cpu.SREG.C = r != 0
	cpu.SREG.updateSZ()
}

// shiftFlags handles ASR/LSR/ROR, which differ only in what replaces
// bit 7; oldBit0 is the shifted-out bit, used directly as the carry.
func (cpu *CPU) shiftFlags(r uint8, oldBit0 uint8) {
	cpu.SREG.C = oldBit0 != 0
	cpu.SREG.N = bit7(r) != 0
	cpu.SREG.Z = r == 0
	cpu.SREG.V = cpu.SREG.N != cpu.SREG.C
	cpu.SREG.updateSZ()
}

func (cpu *CPU) adiwFlags(rdh uint8, r uint16) {
	r15 := uint8((r >> 15) & 1)
	rdh7 := bit7(rdh)
	cpu.SREG.V = (^rdh7 & 1 & r15) != 0
	cpu.SREG.C = (^r15 & 1 & rdh7) != 0
	cpu.SREG.N = r15 != 0
	cpu.SREG.Z = r == 0
	cpu.SREG.updateSZ()
}

func (cpu *CPU) sbiwFlags(rdh uint8, r uint16) {
	r15 := uint8((r >> 15) & 1)
	rdh7 := bit7(rdh)
	cpu.SREG.V = (rdh7 & ^r15 & 1) != 0
	cpu.SREG.C = (r15 & ^rdh7 & 1) != 0
	cpu.SREG.N = r15 != 0
	cpu.SREG.Z = r == 0
	cpu.SREG.updateSZ()
}

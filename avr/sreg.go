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

// Status register bit indices, as addressed by BST/BLD/BSET/BCLR/BRBS/BRBC.
const (
	FlagC uint8 = 0 // carry
	FlagZ uint8 = 1 // zero
	FlagN uint8 = 2 // negative
	FlagV uint8 = 3 // two's complement overflow
	FlagS uint8 = 4 // sign, N xor V
	FlagH uint8 = 5 // half carry
	FlagT uint8 = 6 // bit copy storage
	FlagI uint8 = 7 // global interrupt enable
)

// SREG is the eight-flag AVR status register. It is addressable both as
// named booleans (used by every flag-setting opcode) and as a packed byte
// (used by IN/OUT/PUSH/POP on I/O address 0x3F).
type SREG struct {
	C, Z, N, V, S, H, T, I bool
}

// Pack returns the byte representation, bit 7=I down to bit 0=C.
func (s SREG) Pack() uint8 {
	var b uint8
	b |= boolBit(s.I) << FlagI
	b |= boolBit(s.T) << FlagT
	b |= boolBit(s.H) << FlagH
	b |= boolBit(s.S) << FlagS
	b |= boolBit(s.V) << FlagV
	b |= boolBit(s.N) << FlagN
	b |= boolBit(s.Z) << FlagZ
	b |= boolBit(s.C) << FlagC
	return b
}

// Unpack loads all eight flags from a packed byte.
func (s *SREG) Unpack(b uint8) {
	s.I = bitSet(b, FlagI)
	s.T = bitSet(b, FlagT)
	s.H = bitSet(b, FlagH)
	s.S = bitSet(b, FlagS)
	s.V = bitSet(b, FlagV)
	s.N = bitSet(b, FlagN)
	s.Z = bitSet(b, FlagZ)
	s.C = bitSet(b, FlagC)
}

// Reset clears every flag, matching datasheet power-on / reset state.
func (s *SREG) Reset() {
	*s = SREG{}
}

// Bit reads a single flag by its SREG bit index (0=C .. 7=I).
func (s SREG) Bit(index uint8) bool {
	switch index {
	case FlagC:
		return s.C
	case FlagZ:
		return s.Z
	case FlagN:
		return s.N
	case FlagV:
		return s.V
	case FlagS:
		return s.S
	case FlagH:
		return s.H
	case FlagT:
		return s.T
	case FlagI:
		return s.I
	default:
		return false
	}
}

// SetBit writes a single flag by its SREG bit index (0=C .. 7=I).
func (s *SREG) SetBit(index uint8, value bool) {
	switch index {
	case FlagC:
		s.C = value
	case FlagZ:
		s.Z = value
	case FlagN:
		s.N = value
	case FlagV:
		s.V = value
	case FlagS:
		s.S = value
	case FlagH:
		s.H = value
	case FlagT:
		s.T = value
	case FlagI:
		s.I = value
	}
}

// updateSZ recomputes S from the freshly-set N and V flags. Every
// arithmetic/logic handler calls this last, per the invariant that
// S == N xor V must hold after any flag-updating opcode.
func (s *SREG) updateSZ() {
	s.S = s.N != s.V
}

func boolBit(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}

func bitSet(b uint8, index uint8) bool {
	return b&(1<<index) != 0
}

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

// RegisterCount is the number of general-purpose 8-bit registers.
const RegisterCount = 32

// Pair indices for W (the low pair ADIW/SBIW reach) and the three
// address registers X, Y and Z, per the ATmega32U4 register map.
const (
	RegW = 24 // r24:r25
	RegX = 26 // r26:r27
	RegY = 28 // r28:r29
	RegZ = 30 // r30:r31
)

// Registers holds the 32 general-purpose registers once; the 16-bit pair
// views (W, X, Y, Z) are synthesised from the same backing bytes so that
// a byte write is always visible through the corresponding pair read and
// vice versa.
type Registers struct {
	r [RegisterCount]uint8
}

// Get reads register index (0..31).
func (r *Registers) Get(index uint8) uint8 {
	return r.r[index]
}

// Set writes register index (0..31).
func (r *Registers) Set(index uint8, value uint8) {
	r.r[index] = value
}

// Pair reads the little-endian 16-bit value stored across index and
// index+1 (index must be even for the named pairs, but any index 0..30
// works).
func (r *Registers) Pair(index uint8) uint16 {
	return uint16(r.r[index]) | uint16(r.r[index+1])<<8
}

// SetPair writes the little-endian 16-bit value across index and index+1.
func (r *Registers) SetPair(index uint8, value uint16) {
	r.r[index] = uint8(value)
	r.r[index+1] = uint8(value >> 8)
}

func (r *Registers) W() uint16        { return r.Pair(RegW) }
func (r *Registers) SetW(v uint16)    { r.SetPair(RegW, v) }
func (r *Registers) X() uint16        { return r.Pair(RegX) }
func (r *Registers) SetX(v uint16)    { r.SetPair(RegX, v) }
func (r *Registers) Y() uint16        { return r.Pair(RegY) }
func (r *Registers) SetY(v uint16)    { r.SetPair(RegY, v) }
func (r *Registers) Z() uint16        { return r.Pair(RegZ) }
func (r *Registers) SetZ(v uint16)    { r.SetPair(RegZ, v) }

// Reset zeroes every register.
func (r *Registers) Reset() {
	r.r = [RegisterCount]uint8{}
}

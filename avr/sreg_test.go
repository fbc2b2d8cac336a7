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

import "testing"

func TestSREGPackUnpackRoundTrip(t *testing.T) {
	for b := 0; b < 256; b++ {
		var s SREG
		s.Unpack(uint8(b))
		if got := s.Pack(); got != uint8(b) {
			t.Fatalf("unpack(0x%02X).pack() = 0x%02X", b, got)
		}
	}
}

func TestSREGBitIndices(t *testing.T) {
	var s SREG
	s.SetBit(FlagC, true)
	s.SetBit(FlagI, true)
	if s.Pack() != 0x81 {
		t.Fatalf("Pack() = 0x%02X, want 0x81", s.Pack())
	}
	if !s.Bit(FlagC) || !s.Bit(FlagI) {
		t.Fatal("Bit() did not report the flags set via SetBit")
	}
	if s.Bit(FlagZ) {
		t.Fatal("Bit(FlagZ) true for an untouched flag")
	}
}

func TestSREGReset(t *testing.T) {
	s := SREG{C: true, Z: true, N: true, V: true, S: true, H: true, T: true, I: true}
	s.Reset()
	if s.Pack() != 0 {
		t.Fatalf("Pack() after Reset = 0x%02X, want 0", s.Pack())
	}
}

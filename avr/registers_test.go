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

func TestPairViewConsistency(t *testing.T) {
	var r Registers
	r.SetPair(RegX, 0xBEEF)
	if got := r.Pair(RegX); got != 0xBEEF {
		t.Fatalf("Pair(RegX) = 0x%04X, want 0xBEEF", got)
	}
	if r.Get(RegX) != 0xEF || r.Get(RegX+1) != 0xBE {
		t.Fatalf("backing bytes = 0x%02X,0x%02X, want 0xEF,0xBE", r.Get(RegX), r.Get(RegX+1))
	}
}

func TestNamedPairHelpers(t *testing.T) {
	var r Registers
	r.SetW(1)
	r.SetX(2)
	r.SetY(3)
	r.SetZ(4)
	if r.W() != 1 || r.X() != 2 || r.Y() != 3 || r.Z() != 4 {
		t.Fatalf("named pairs = %d,%d,%d,%d, want 1,2,3,4", r.W(), r.X(), r.Y(), r.Z())
	}
}

func TestRegistersReset(t *testing.T) {
	var r Registers
	r.Set(5, 0xFF)
	r.Reset()
	if r.Get(5) != 0 {
		t.Fatal("register not cleared by Reset")
	}
}

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

import "testing"

func TestBlankFrame(t *testing.T) {
	d := New()
	if err := d.RunFrame(); err != nil {
		t.Fatalf("RunFrame on an empty program: %v", err)
	}
	for i, b := range d.DisplayIter() {
		if b {
			t.Fatalf("pixel %d lit on a blank frame", i)
		}
	}
}

func TestDisplayDimensions(t *testing.T) {
	d := New()
	w, h := d.DisplayDimensions()
	if w != 128 || h != 64 {
		t.Fatalf("dimensions = %dx%d, want 128x64", w, h)
	}
}

// assembleOUT returns the opcode word for "OUT A,Rd", with Rd already
// holding the byte the test wants written, used to drive the device's
// SPI glue without hand-writing a full program image.
func assembleOUT(ioAddr uint8, rd uint8) uint16 {
	return 0xB800 | (uint16(rd) << 4) | uint16(ioAddr&0x0F) | (uint16(ioAddr&0x30) << 5)
}

func assembleIN(rd uint8, ioAddr uint8) uint16 {
	return 0xB000 | (uint16(rd) << 4) | uint16(ioAddr&0x0F) | (uint16(ioAddr&0x30) << 5)
}

func assembleLDI(rd uint8, k uint8) uint16 {
	return 0xE000 | (uint16(rd-16) << 4) | (uint16(k&0xF0) << 4) | uint16(k&0x0F)
}

func littleEndianProgram(words []uint16) []byte {
	out := make([]byte, 0, len(words)*2)
	for _, w := range words {
		out = append(out, uint8(w), uint8(w>>8))
	}
	return out
}

func TestDisplayInitThenStripes(t *testing.T) {
	d := New()

	// PORTD I/O offset is 0x0B; SPDR I/O offset is 0x2E. addrPORTD and
	// addrSPDR are absolute data-space addresses, so subtract back to
	// the I/O-space offset OUT expects.
	portDOffset := uint8(addrPORTD - 0x20)
	spdrOffset := uint8(addrSPDR - 0x20)

	var words []uint16
	// command mode: PORTD bit 4 low
	words = append(words, assembleLDI(16, 0x00), assembleOUT(portDOffset, 16))
	// push commands 0x20, 0x02
	words = append(words, assembleLDI(16, 0x20), assembleOUT(spdrOffset, 16))
	words = append(words, assembleLDI(16, 0x02), assembleOUT(spdrOffset, 16))
	// data mode: PORTD bit 4 high
	words = append(words, assembleLDI(16, 1<<dcBit), assembleOUT(portDOffset, 16))
	for _, b := range []uint8{0x01, 0x03, 0x07, 0x0F, 0x1F, 0x3F, 0x7F, 0xFF} {
		words = append(words, assembleLDI(16, b), assembleOUT(spdrOffset, 16))
	}

	if err := d.LoadProgram(littleEndianProgram(words)); err != nil {
		t.Fatal(err)
	}
	budget := uint32(len(words))
	for i := uint32(0); i < budget; i++ {
		if _, err := d.CPU.Step(); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
	}

	px := d.DisplayIter()
	for col := 0; col < 8; col++ {
		for y := 0; y < 8; y++ {
			want := y >= 7-col
			if got := px[y*128+col]; got != want {
				t.Errorf("col=%d y=%d: got %v, want %v", col, y, got, want)
			}
		}
	}
}

func TestButtonReadBranch(t *testing.T) {
	d := New()
	d.SetButton(ButtonA, true)

	// IN r16, PINE; SBRS r16, 6
	pineOffset := uint8(addrPINE - 0x20)
	inPINE := assembleIN(16, pineOffset)
	sbrs := uint16(0xFE00) | (16 << 4) | 6

	program := littleEndianProgram([]uint16{inPINE, sbrs})
	if err := d.LoadProgram(program); err != nil {
		t.Fatal(err)
	}
	if _, err := d.CPU.Step(); err != nil {
		t.Fatal(err)
	}
	pcAfterIn := d.CPU.PC
	if pcAfterIn != 1 {
		t.Fatalf("PC after IN = %d, want 1", pcAfterIn)
	}
	if _, err := d.CPU.Step(); err != nil {
		t.Fatal(err)
	}
	// bit 6 of PINE should read 0 (pressed), so SBRS must NOT skip.
	if d.CPU.PC != 2 {
		t.Fatalf("PC after SBRS with A pressed = %d, want 2 (no skip)", d.CPU.PC)
	}
}

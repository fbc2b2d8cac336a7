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

package display

import "testing"

func TestFreshDisplayIsBlank(t *testing.T) {
	d := New()
	for i, b := range d.Iter() {
		if b {
			t.Fatalf("pixel %d lit on a fresh display", i)
		}
	}
}

func TestIterLength(t *testing.T) {
	d := New()
	if got := len(d.Iter()); got != 8192 {
		t.Fatalf("Iter length = %d, want 8192", got)
	}
}

func TestPageModeStripes(t *testing.T) {
	d := New()
	if err := d.PushCommand(0x20); err != nil {
		t.Fatal(err)
	}
	if err := d.PushCommand(0x02); err != nil {
		t.Fatal(err)
	}
	for _, b := range []uint8{0x01, 0x03, 0x07, 0x0F, 0x1F, 0x3F, 0x7F, 0xFF} {
		d.PushData(b)
	}
	px := d.Iter()
	for col := 0; col < 8; col++ {
		for y := 0; y < 8; y++ {
			want := y >= 7-col
			got := px[y*DisplayWidth+col]
			if got != want {
				t.Errorf("col=%d y=%d: got %v, want %v", col, y, got, want)
			}
		}
	}
}

func TestSleepHidesRAM(t *testing.T) {
	d := New()
	d.PushData(0xFF)
	if err := d.PushCommand(0xAE); err != nil {
		t.Fatal(err)
	}
	for _, b := range d.Iter() {
		if b {
			t.Fatal("sleeping display reports a lit pixel")
		}
	}
	if err := d.PushCommand(0xAF); err != nil {
		t.Fatal(err)
	}
	if !d.Iter()[DisplayWidth*7] {
		t.Fatal("waking the display lost the pattern written before sleep")
	}
}

func TestInversionRoundTrip(t *testing.T) {
	d := New()
	d.PushData(0x01)
	before := append([]bool(nil), d.Iter()...)
	if err := d.PushCommand(0xA7); err != nil {
		t.Fatal(err)
	}
	inverted := d.Iter()
	for i := range before {
		if inverted[i] == before[i] {
			t.Fatalf("pixel %d unchanged after inversion", i)
		}
	}
	if err := d.PushCommand(0xA6); err != nil {
		t.Fatal(err)
	}
	after := d.Iter()
	for i := range before {
		if after[i] != before[i] {
			t.Fatalf("pixel %d did not restore after un-inverting", i)
		}
	}
}

func TestEntireDisplayOn(t *testing.T) {
	d := New()
	if err := d.PushCommand(0xA5); err != nil {
		t.Fatal(err)
	}
	for i, b := range d.Iter() {
		if !b {
			t.Fatalf("pixel %d not lit with ignore_ram set", i)
		}
	}
}

func TestUnknownAddressingModeFaults(t *testing.T) {
	d := New()
	if err := d.PushCommand(0x20); err != nil {
		t.Fatal(err)
	}
	if err := d.PushCommand(0x03); err == nil {
		t.Fatal("expected an error for addressing mode 0b11")
	}
}

func TestPageModeWraparound(t *testing.T) {
	d := New()
	startPage := d.page
	for i := 0; i < DisplayWidth; i++ {
		d.PushData(0)
	}
	if d.col != d.pageModeColumnStart {
		t.Fatalf("col after wraparound = %d, want %d", d.col, d.pageModeColumnStart)
	}
	if d.page != startPage {
		t.Fatalf("page changed across a page-mode wraparound: got %d, want %d", d.page, startPage)
	}
}

func TestInvalidMultiplexRatioFaults(t *testing.T) {
	d := New()
	if err := d.PushCommand(0xA8); err != nil {
		t.Fatal(err)
	}
	if err := d.PushCommand(0x05); err == nil {
		t.Fatal("expected an error for multiplex ratio below 16")
	}
}

func TestInvalidPrechargePeriodFaults(t *testing.T) {
	d := New()
	if err := d.PushCommand(0xD9); err != nil {
		t.Fatal(err)
	}
	if err := d.PushCommand(0x00); err == nil {
		t.Fatal("expected an error for a zero precharge nibble")
	}
}

func TestUnknownCommandFaults(t *testing.T) {
	d := New()
	if err := d.PushCommand(0xFF); err == nil {
		t.Fatal("expected an error for an unknown command byte")
	}
}

func TestHorizontalModeWraps(t *testing.T) {
	d := New()
	if err := d.PushCommand(0x20); err != nil {
		t.Fatal(err)
	}
	if err := d.PushCommand(0x00); err != nil {
		t.Fatal(err)
	}
	if err := d.PushCommand(0x21); err != nil {
		t.Fatal(err)
	}
	if err := d.PushCommand(0x00); err != nil {
		t.Fatal(err)
	}
	if err := d.PushCommand(0x01); err != nil {
		t.Fatal(err)
	}
	d.PushData(0)
	d.PushData(0)
	if d.col != 0 || d.page != 1 {
		t.Fatalf("after wrapping column range, col=%d page=%d, want col=0 page=1", d.col, d.page)
	}
}

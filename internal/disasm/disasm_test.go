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

package disasm

import (
	"strings"
	"testing"

	"github.com/jmaroeder/arduous/avr"
)

func TestDisassembleCoversEachInstructionOnce(t *testing.T) {
	cpu := avr.NewCPU()
	// LDI r16, 0x05 ; OUT 0x0B, r16 ; NOP
	image := []byte{
		0x05, 0xE0,
		0x0B, 0xB9,
		0x00, 0x00,
	}
	if err := cpu.LoadProgram(image); err != nil {
		t.Fatal(err)
	}

	d := Disassemble(cpu, 0, 2)
	if len(d.Index) != 3 {
		t.Fatalf("Index has %d entries, want 3", len(d.Index))
	}
	if !strings.Contains(d.Line(0), "LDI") {
		t.Fatalf("line 0 = %q, want it to mention LDI", d.Line(0))
	}
	if !strings.Contains(d.Line(1), "OUT") {
		t.Fatalf("line 1 = %q, want it to mention OUT", d.Line(1))
	}
	if !strings.Contains(d.Line(2), "NOP") {
		t.Fatalf("line 2 = %q, want it to mention NOP", d.Line(2))
	}
}

func TestDisassembleUnknownOpcodeDoesNotHalt(t *testing.T) {
	cpu := avr.NewCPU()
	if err := cpu.LoadProgram([]byte{0xFF, 0xFF, 0x00, 0x00}); err != nil {
		t.Fatal(err)
	}
	d := Disassemble(cpu, 0, 1)
	if !strings.Contains(d.Line(0), "???") {
		t.Fatalf("line 0 = %q, want it to show an unknown-opcode placeholder", d.Line(0))
	}
}

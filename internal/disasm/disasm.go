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

// Package disasm turns a range of program memory into human-readable
// lines, keyed by word address so a caller can look a given PC up
// directly. Its workings are not required for emulation; it exists so
// a debugger can show what the CPU is about to run.
package disasm

import (
	"fmt"

	"github.com/jmaroeder/arduous/avr"
)

// Disassembly is a disassembled range of program memory.
type Disassembly struct {
	// Index lists the word address of every decoded instruction, in
	// ascending order.
	Index []uint16
	// Lines maps a word address to its formatted disassembly line.
	Lines map[uint16]string
}

// Line returns the formatted line at addr, or "" if addr falls inside
// a two-word instruction's second word rather than on an instruction
// boundary.
func (d *Disassembly) Line(addr uint16) string {
	return d.Lines[addr]
}

// Disassemble walks word addresses start..end (inclusive) in program
// memory and decodes each instruction it lands on.
func Disassemble(cpu *avr.CPU, start, end uint16) *Disassembly {
	d := &Disassembly{Lines: make(map[uint16]string)}

	addr := start
	for {
		word := cpu.ProgramWord(addr)
		name, words := cpu.DecodeMnemonic(word)

		var line string
		if words == 2 {
			operand := cpu.ProgramWord(addr + 1)
			line = fmt.Sprintf("$%04X: %-6s $%04X", addr, name, operand)
		} else {
			line = fmt.Sprintf("$%04X: %-6s $%04X", addr, name, word)
		}
		d.Index = append(d.Index, addr)
		d.Lines[addr] = line

		next := addr + uint16(words)
		if next <= addr || next > end {
			break
		}
		addr = next
	}
	return d
}

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

import "fmt"

// IllegalInstruction is returned when Step cannot decode the word at pc
// against any entry in the instruction table.
type IllegalInstruction struct {
	PC   uint16
	Word uint16
}

func (e *IllegalInstruction) Error() string {
	return fmt.Sprintf("illegal instruction 0x%04X at pc=0x%04X", e.Word, e.PC)
}

// BadAddress is returned when a data-space access falls outside the
// 0x0000-0x0AFF window MemoryMap understands.
type BadAddress struct {
	PC   uint16
	Addr uint16
}

func (e *BadAddress) Error() string {
	return fmt.Sprintf("bad data address 0x%04X at pc=0x%04X", e.Addr, e.PC)
}

// StackUnderflow is returned by RET/RETI when SP has nowhere left to pop
// a return address from.
type StackUnderflow struct {
	PC uint16
}

func (e *StackUnderflow) Error() string {
	return fmt.Sprintf("stack underflow at pc=0x%04X", e.PC)
}

// ProgramTooLarge is returned by LoadProgram when the supplied image
// exceeds program memory capacity.
type ProgramTooLarge struct {
	Size    int
	Maximum int
}

func (e *ProgramTooLarge) Error() string {
	return fmt.Sprintf("program image of %d bytes exceeds the %d-byte program memory", e.Size, e.Maximum)
}

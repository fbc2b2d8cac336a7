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

func execNOP(cpu *CPU, word uint16) (uint32, error) {
	cpu.PC += 1
	return 1, nil
}

// execBREAK is a debugger breakpoint opcode. Nothing in this emulator
// stops on it; it behaves as a one-cycle NOP, same as real silicon
// with no debugWIRE session attached.
func execBREAK(cpu *CPU, word uint16) (uint32, error) {
	cpu.PC += 1
	return 1, nil
}

// addr22 decodes the 22-bit absolute word address spread across a JMP/
// CALL instruction's two words, wrapped to this emulator's 14-bit
// program memory.
func addr22(word, word2 uint16) uint16 {
	khigh := ((word>>8)&1)<<5 | ((word>>4)&0xF)<<1 | (word & 1)
	full := uint32(khigh)<<16 | uint32(word2)
	return uint16(full % ProgramMemoryWords)
}

func execJMP(cpu *CPU, word uint16) (uint32, error) {
	word2 := cpu.prog.Word(cpu.PC + 1)
	cpu.PC = addr22(word, word2)
	return 3, nil
}

func execCALL(cpu *CPU, word uint16) (uint32, error) {
	word2 := cpu.prog.Word(cpu.PC + 1)
	target := addr22(word, word2)
	cpu.PC += 2
	cpu.pushPC()
	cpu.PC = target
	return 4, nil
}

func relK12(word uint16) int16 {
	k := int16(word & 0x0FFF)
	if k&0x0800 != 0 {
		k -= 4096
	}
	return k
}

func execRJMP(cpu *CPU, word uint16) (uint32, error) {
	k := relK12(word)
	cpu.PC = uint16(int32(cpu.PC) + 1 + int32(k))
	return 2, nil
}

func execRCALL(cpu *CPU, word uint16) (uint32, error) {
	k := relK12(word)
	cpu.PC += 1
	cpu.pushPC()
	cpu.PC = uint16(int32(cpu.PC) + int32(k))
	return 3, nil
}

func execRET(cpu *CPU, word uint16) (uint32, error) {
	pc, err := cpu.popPC()
	if err != nil {
		return 0, err
	}
	cpu.PC = pc
	return 4, nil
}

func execRETI(cpu *CPU, word uint16) (uint32, error) {
	pc, err := cpu.popPC()
	if err != nil {
		return 0, err
	}
	cpu.PC = pc
	cpu.SREG.I = true
	return 4, nil
}

func execBRBS(cpu *CPU, word uint16) (uint32, error) {
	s := bitIndex(word)
	if cpu.SREG.Bit(s) {
		k := relK7(word)
		cpu.PC = uint16(int32(cpu.PC) + 1 + int32(k))
		return 2, nil
	}
	cpu.PC += 1
	return 1, nil
}

func execBRBC(cpu *CPU, word uint16) (uint32, error) {
	s := bitIndex(word)
	if !cpu.SREG.Bit(s) {
		k := relK7(word)
		cpu.PC = uint16(int32(cpu.PC) + 1 + int32(k))
		return 2, nil
	}
	cpu.PC += 1
	return 1, nil
}

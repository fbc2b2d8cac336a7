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

func execBSET(cpu *CPU, word uint16) (uint32, error) {
	cpu.SREG.SetBit(sregIndex(word), true)
	cpu.PC += 1
	return 1, nil
}

func execBCLR(cpu *CPU, word uint16) (uint32, error) {
	cpu.SREG.SetBit(sregIndex(word), false)
	cpu.PC += 1
	return 1, nil
}

func execBLD(cpu *CPU, word uint16) (uint32, error) {
	d, b := rdFull(word), bitIndex(word)
	rd := cpu.Regs.Get(d)
	if cpu.SREG.T {
		rd |= 1 << b
	} else {
		rd &^= 1 << b
	}
	cpu.Regs.Set(d, rd)
	cpu.PC += 1
	return 1, nil
}

func execBST(cpu *CPU, word uint16) (uint32, error) {
	d, b := rdFull(word), bitIndex(word)
	cpu.SREG.T = cpu.Regs.Get(d)&(1<<b) != 0
	cpu.PC += 1
	return 1, nil
}

func execSBRC(cpu *CPU, word uint16) (uint32, error) {
	d, b := rdFull(word), bitIndex(word)
	skip := cpu.Regs.Get(d)&(1<<b) == 0
	return cpu.skipBranch(skip)
}

func execSBRS(cpu *CPU, word uint16) (uint32, error) {
	d, b := rdFull(word), bitIndex(word)
	skip := cpu.Regs.Get(d)&(1<<b) != 0
	return cpu.skipBranch(skip)
}

// skipBranch advances PC past the current instruction, and past the
// next one too if skip is true, billing the extra cycle(s) the
// datasheet charges for a taken skip — two if the skipped instruction
// is one word, three if it's a 32-bit instruction.
func (cpu *CPU) skipBranch(skip bool) (uint32, error) {
	if !skip {
		cpu.PC += 1
		return 1, nil
	}
	next := cpu.prog.Word(cpu.PC + 1)
	if is32BitWord(next) {
		cpu.PC += 3
		return 3, nil
	}
	cpu.PC += 2
	return 2, nil
}

func execSBI(cpu *CPU, word uint16) (uint32, error) {
	addr := IORegisterStart + ioAddr5(word)
	b := bitIndex(word)
	v, _ := cpu.Mem.Load(addr)
	cpu.Mem.Store(addr, v|(1<<b))
	cpu.PC += 1
	return 2, nil
}

func execCBI(cpu *CPU, word uint16) (uint32, error) {
	addr := IORegisterStart + ioAddr5(word)
	b := bitIndex(word)
	v, _ := cpu.Mem.Load(addr)
	cpu.Mem.Store(addr, v&^(1<<b))
	cpu.PC += 1
	return 2, nil
}

func execSBIC(cpu *CPU, word uint16) (uint32, error) {
	addr := IORegisterStart + ioAddr5(word)
	b := bitIndex(word)
	v, _ := cpu.Mem.Load(addr)
	return cpu.skipBranch(v&(1<<b) == 0)
}

func execSBIS(cpu *CPU, word uint16) (uint32, error) {
	addr := IORegisterStart + ioAddr5(word)
	b := bitIndex(word)
	v, _ := cpu.Mem.Load(addr)
	return cpu.skipBranch(v&(1<<b) != 0)
}

func execIN(cpu *CPU, word uint16) (uint32, error) {
	d := rdFull(word)
	addr := IORegisterStart + ioAddr6(word)
	v, _ := cpu.Mem.Load(addr)
	cpu.Regs.Set(d, v)
	cpu.PC += 1
	return 1, nil
}

func execOUT(cpu *CPU, word uint16) (uint32, error) {
	d := rdFull(word)
	addr := IORegisterStart + ioAddr6(word)
	cpu.Mem.Store(addr, cpu.Regs.Get(d))
	cpu.PC += 1
	return 1, nil
}

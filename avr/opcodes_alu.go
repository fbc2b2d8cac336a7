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

// Register-register arithmetic and logic.

func execADD(cpu *CPU, word uint16) (uint32, error) {
	d, r := rdFull(word), rrFull(word)
	rd, rr := cpu.Regs.Get(d), cpu.Regs.Get(r)
	res := rd + rr
	cpu.addFlags(rd, rr, res)
	cpu.Regs.Set(d, res)
	cpu.PC += 1
	return 1, nil
}

func execADC(cpu *CPU, word uint16) (uint32, error) {
	d, r := rdFull(word), rrFull(word)
	rd, rr := cpu.Regs.Get(d), cpu.Regs.Get(r)
	var c uint8
	if cpu.SREG.C {
		c = 1
	}
	res := rd + rr + c
	cpu.addFlags(rd, rr, res)
	cpu.Regs.Set(d, res)
	cpu.PC += 1
	return 1, nil
}

func execSUB(cpu *CPU, word uint16) (uint32, error) {
	d, r := rdFull(word), rrFull(word)
	rd, rr := cpu.Regs.Get(d), cpu.Regs.Get(r)
	res := rd - rr
	cpu.subFlags(rd, rr, res)
	cpu.Regs.Set(d, res)
	cpu.PC += 1
	return 1, nil
}

func execSBC(cpu *CPU, word uint16) (uint32, error) {
	d, r := rdFull(word), rrFull(word)
	rd, rr := cpu.Regs.Get(d), cpu.Regs.Get(r)
	var c uint8
	if cpu.SREG.C {
		c = 1
	}
	res := rd - rr - c
	cpu.subFlagsSticky(rd, rr, res)
	cpu.Regs.Set(d, res)
	cpu.PC += 1
	return 1, nil
}

func execAND(cpu *CPU, word uint16) (uint32, error) {
	d, r := rdFull(word), rrFull(word)
	res := cpu.Regs.Get(d) & cpu.Regs.Get(r)
	cpu.logicFlags(res)
	cpu.Regs.Set(d, res)
	cpu.PC += 1
	return 1, nil
}

func execOR(cpu *CPU, word uint16) (uint32, error) {
	d, r := rdFull(word), rrFull(word)
	res := cpu.Regs.Get(d) | cpu.Regs.Get(r)
	cpu.logicFlags(res)
	cpu.Regs.Set(d, res)
	cpu.PC += 1
	return 1, nil
}

func execEOR(cpu *CPU, word uint16) (uint32, error) {
	d, r := rdFull(word), rrFull(word)
	res := cpu.Regs.Get(d) ^ cpu.Regs.Get(r)
	cpu.logicFlags(res)
	cpu.Regs.Set(d, res)
	cpu.PC += 1
	return 1, nil
}

func execMOV(cpu *CPU, word uint16) (uint32, error) {
	d, r := rdFull(word), rrFull(word)
	cpu.Regs.Set(d, cpu.Regs.Get(r))
	cpu.PC += 1
	return 1, nil
}

func execCP(cpu *CPU, word uint16) (uint32, error) {
	d, r := rdFull(word), rrFull(word)
	rd, rr := cpu.Regs.Get(d), cpu.Regs.Get(r)
	cpu.subFlags(rd, rr, rd-rr)
	cpu.PC += 1
	return 1, nil
}

func execCPC(cpu *CPU, word uint16) (uint32, error) {
	d, r := rdFull(word), rrFull(word)
	rd, rr := cpu.Regs.Get(d), cpu.Regs.Get(r)
	var c uint8
	if cpu.SREG.C {
		c = 1
	}
	cpu.subFlagsSticky(rd, rr, rd-rr-c)
	cpu.PC += 1
	return 1, nil
}

func execCPSE(cpu *CPU, word uint16) (uint32, error) {
	d, r := rdFull(word), rrFull(word)
	equal := cpu.Regs.Get(d) == cpu.Regs.Get(r)
	next := cpu.prog.Word(cpu.PC + 1)
	if !equal {
		cpu.PC += 1
		return 1, nil
	}
	if is32BitWord(next) {
		cpu.PC += 3
		return 3, nil
	}
	cpu.PC += 2
	return 2, nil
}

func execMUL(cpu *CPU, word uint16) (uint32, error) {
	d, r := rdFull(word), rrFull(word)
	res := uint16(cpu.Regs.Get(d)) * uint16(cpu.Regs.Get(r))
	cpu.Regs.SetPair(0, res)
	cpu.SREG.C = (res>>15)&1 != 0
	cpu.SREG.Z = res == 0
	cpu.PC += 1
	return 2, nil
}

// Immediate arithmetic and logic, destination always r16..r31.

func execSUBI(cpu *CPU, word uint16) (uint32, error) {
	d, k := rdHigh(word), immK8(word)
	rd := cpu.Regs.Get(d)
	res := rd - k
	cpu.subFlags(rd, k, res)
	cpu.Regs.Set(d, res)
	cpu.PC += 1
	return 1, nil
}

func execSBCI(cpu *CPU, word uint16) (uint32, error) {
	d, k := rdHigh(word), immK8(word)
	rd := cpu.Regs.Get(d)
	var c uint8
	if cpu.SREG.C {
		c = 1
	}
	res := rd - k - c
	cpu.subFlagsSticky(rd, k, res)
	cpu.Regs.Set(d, res)
	cpu.PC += 1
	return 1, nil
}

func execANDI(cpu *CPU, word uint16) (uint32, error) {
	d, k := rdHigh(word), immK8(word)
	res := cpu.Regs.Get(d) & k
	cpu.logicFlags(res)
	cpu.Regs.Set(d, res)
	cpu.PC += 1
	return 1, nil
}

func execORI(cpu *CPU, word uint16) (uint32, error) {
	d, k := rdHigh(word), immK8(word)
	res := cpu.Regs.Get(d) | k
	cpu.logicFlags(res)
	cpu.Regs.Set(d, res)
	cpu.PC += 1
	return 1, nil
}

func execCPI(cpu *CPU, word uint16) (uint32, error) {
	d, k := rdHigh(word), immK8(word)
	rd := cpu.Regs.Get(d)
	cpu.subFlags(rd, k, rd-k)
	cpu.PC += 1
	return 1, nil
}

func execLDI(cpu *CPU, word uint16) (uint32, error) {
	d, k := rdHigh(word), immK8(word)
	cpu.Regs.Set(d, k)
	cpu.PC += 1
	return 1, nil
}

// Word-pair arithmetic and move.

func execADIW(cpu *CPU, word uint16) (uint32, error) {
	d, k := adiwPair(word), adiwK(word)
	rdh := cpu.Regs.Get(d + 1)
	orig := cpu.Regs.Pair(d)
	res := orig + uint16(k)
	cpu.adiwFlags(rdh, res)
	cpu.Regs.SetPair(d, res)
	cpu.PC += 1
	return 2, nil
}

func execSBIW(cpu *CPU, word uint16) (uint32, error) {
	d, k := adiwPair(word), adiwK(word)
	rdh := cpu.Regs.Get(d + 1)
	orig := cpu.Regs.Pair(d)
	res := orig - uint16(k)
	cpu.sbiwFlags(rdh, res)
	cpu.Regs.SetPair(d, res)
	cpu.PC += 1
	return 2, nil
}

func execMOVW(cpu *CPU, word uint16) (uint32, error) {
	d := 2 * uint8((word>>4)&0x0F)
	r := 2 * uint8(word&0x0F)
	cpu.Regs.SetPair(d, cpu.Regs.Pair(r))
	cpu.PC += 1
	return 1, nil
}

// Single-register ALU ops.

func execCOM(cpu *CPU, word uint16) (uint32, error) {
	d := rdFull(word)
	res := 0xFF - cpu.Regs.Get(d)
	cpu.comFlags(res)
	cpu.Regs.Set(d, res)
	cpu.PC += 1
	return 1, nil
}

func execNEG(cpu *CPU, word uint16) (uint32, error) {
	d := rdFull(word)
	rd := cpu.Regs.Get(d)
	res := uint8(0) - rd
	cpu.negFlags(rd, res)
	cpu.Regs.Set(d, res)
	cpu.PC += 1
	return 1, nil
}

func execSWAP(cpu *CPU, word uint16) (uint32, error) {
	d := rdFull(word)
	rd := cpu.Regs.Get(d)
	cpu.Regs.Set(d, (rd<<4)|(rd>>4))
	cpu.PC += 1
	return 1, nil
}

func execINC(cpu *CPU, word uint16) (uint32, error) {
	d := rdFull(word)
	rd := cpu.Regs.Get(d)
	res := rd + 1
	cpu.incFlags(rd, res)
	cpu.Regs.Set(d, res)
	cpu.PC += 1
	return 1, nil
}

func execDEC(cpu *CPU, word uint16) (uint32, error) {
	d := rdFull(word)
	rd := cpu.Regs.Get(d)
	res := rd - 1
	cpu.decFlags(rd, res)
	cpu.Regs.Set(d, res)
	cpu.PC += 1
	return 1, nil
}

func execASR(cpu *CPU, word uint16) (uint32, error) {
	d := rdFull(word)
	rd := cpu.Regs.Get(d)
	res := (rd & 0x80) | (rd >> 1)
	cpu.shiftFlags(res, bit0(rd))
	cpu.Regs.Set(d, res)
	cpu.PC += 1
	return 1, nil
}

func execLSR(cpu *CPU, word uint16) (uint32, error) {
	d := rdFull(word)
	rd := cpu.Regs.Get(d)
	res := rd >> 1
	cpu.shiftFlags(res, bit0(rd))
	cpu.Regs.Set(d, res)
	cpu.PC += 1
	return 1, nil
}

func execROR(cpu *CPU, word uint16) (uint32, error) {
	d := rdFull(word)
	rd := cpu.Regs.Get(d)
	var carryIn uint8
	if cpu.SREG.C {
		carryIn = 0x80
	}
	res := carryIn | (rd >> 1)
	cpu.shiftFlags(res, bit0(rd))
	cpu.Regs.Set(d, res)
	cpu.PC += 1
	return 1, nil
}

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

func execLDS(cpu *CPU, word uint16) (uint32, error) {
	d := rdFull(word)
	addr := cpu.prog.Word(cpu.PC + 1)
	v, ok := cpu.Mem.Load(addr)
	if !ok {
		return 0, &BadAddress{PC: cpu.PC, Addr: addr}
	}
	cpu.Regs.Set(d, v)
	cpu.PC += 2
	return 2, nil
}

func execSTS(cpu *CPU, word uint16) (uint32, error) {
	d := rdFull(word)
	addr := cpu.prog.Word(cpu.PC + 1)
	if !cpu.Mem.Store(addr, cpu.Regs.Get(d)) {
		return 0, &BadAddress{PC: cpu.PC, Addr: addr}
	}
	cpu.PC += 2
	return 2, nil
}

// ldIndirect/stIndirect implement the common X/Y/Z-register indirect
// addressing shape shared by LD/ST and their post-increment/
// pre-decrement variants.

func ldIndirect(cpu *CPU, word uint16, get func() uint16, set func(uint16), delta int16) (uint32, error) {
	d := rdFull(word)
	addr := get()
	if delta < 0 {
		addr = uint16(int32(addr) + int32(delta))
		if addr > SRAMEnd {
			return 0, &BadAddress{PC: cpu.PC, Addr: addr}
		}
		set(addr)
	}
	v, ok := cpu.Mem.Load(addr)
	if !ok {
		return 0, &BadAddress{PC: cpu.PC, Addr: addr}
	}
	cpu.Regs.Set(d, v)
	if delta > 0 {
		set(uint16(int32(addr) + int32(delta)))
	}
	cpu.PC += 1
	return 2, nil
}

func stIndirect(cpu *CPU, word uint16, get func() uint16, set func(uint16), delta int16) (uint32, error) {
	d := rdFull(word)
	addr := get()
	if delta < 0 {
		addr = uint16(int32(addr) + int32(delta))
		if addr > SRAMEnd {
			return 0, &BadAddress{PC: cpu.PC, Addr: addr}
		}
		set(addr)
	}
	if !cpu.Mem.Store(addr, cpu.Regs.Get(d)) {
		return 0, &BadAddress{PC: cpu.PC, Addr: addr}
	}
	if delta > 0 {
		set(uint16(int32(addr) + int32(delta)))
	}
	cpu.PC += 1
	return 2, nil
}

func execLDX(cpu *CPU, word uint16) (uint32, error) {
	return ldIndirect(cpu, word, cpu.Regs.X, cpu.Regs.SetX, 0)
}
func execLDXInc(cpu *CPU, word uint16) (uint32, error) {
	return ldIndirect(cpu, word, cpu.Regs.X, cpu.Regs.SetX, 1)
}
func execLDXDec(cpu *CPU, word uint16) (uint32, error) {
	return ldIndirect(cpu, word, cpu.Regs.X, cpu.Regs.SetX, -1)
}
func execLDYInc(cpu *CPU, word uint16) (uint32, error) {
	return ldIndirect(cpu, word, cpu.Regs.Y, cpu.Regs.SetY, 1)
}
func execLDYDec(cpu *CPU, word uint16) (uint32, error) {
	return ldIndirect(cpu, word, cpu.Regs.Y, cpu.Regs.SetY, -1)
}
func execLDZInc(cpu *CPU, word uint16) (uint32, error) {
	return ldIndirect(cpu, word, cpu.Regs.Z, cpu.Regs.SetZ, 1)
}
func execLDZDec(cpu *CPU, word uint16) (uint32, error) {
	return ldIndirect(cpu, word, cpu.Regs.Z, cpu.Regs.SetZ, -1)
}

func execSTX(cpu *CPU, word uint16) (uint32, error) {
	return stIndirect(cpu, word, cpu.Regs.X, cpu.Regs.SetX, 0)
}
func execSTXInc(cpu *CPU, word uint16) (uint32, error) {
	return stIndirect(cpu, word, cpu.Regs.X, cpu.Regs.SetX, 1)
}
func execSTXDec(cpu *CPU, word uint16) (uint32, error) {
	return stIndirect(cpu, word, cpu.Regs.X, cpu.Regs.SetX, -1)
}
func execSTYInc(cpu *CPU, word uint16) (uint32, error) {
	return stIndirect(cpu, word, cpu.Regs.Y, cpu.Regs.SetY, 1)
}
func execSTYDec(cpu *CPU, word uint16) (uint32, error) {
	return stIndirect(cpu, word, cpu.Regs.Y, cpu.Regs.SetY, -1)
}
func execSTZInc(cpu *CPU, word uint16) (uint32, error) {
	return stIndirect(cpu, word, cpu.Regs.Z, cpu.Regs.SetZ, 1)
}
func execSTZDec(cpu *CPU, word uint16) (uint32, error) {
	return stIndirect(cpu, word, cpu.Regs.Z, cpu.Regs.SetZ, -1)
}

func execLDDY(cpu *CPU, word uint16) (uint32, error) {
	d, q := rdFull(word), ldStQ(word)
	addr := cpu.Regs.Y() + q
	v, ok := cpu.Mem.Load(addr)
	if !ok {
		return 0, &BadAddress{PC: cpu.PC, Addr: addr}
	}
	cpu.Regs.Set(d, v)
	cpu.PC += 1
	return 2, nil
}

func execSTDY(cpu *CPU, word uint16) (uint32, error) {
	d, q := rdFull(word), ldStQ(word)
	addr := cpu.Regs.Y() + q
	if !cpu.Mem.Store(addr, cpu.Regs.Get(d)) {
		return 0, &BadAddress{PC: cpu.PC, Addr: addr}
	}
	cpu.PC += 1
	return 2, nil
}

func execLDDZ(cpu *CPU, word uint16) (uint32, error) {
	d, q := rdFull(word), ldStQ(word)
	addr := cpu.Regs.Z() + q
	v, ok := cpu.Mem.Load(addr)
	if !ok {
		return 0, &BadAddress{PC: cpu.PC, Addr: addr}
	}
	cpu.Regs.Set(d, v)
	cpu.PC += 1
	return 2, nil
}

func execSTDZ(cpu *CPU, word uint16) (uint32, error) {
	d, q := rdFull(word), ldStQ(word)
	addr := cpu.Regs.Z() + q
	if !cpu.Mem.Store(addr, cpu.Regs.Get(d)) {
		return 0, &BadAddress{PC: cpu.PC, Addr: addr}
	}
	cpu.PC += 1
	return 2, nil
}

func execPUSH(cpu *CPU, word uint16) (uint32, error) {
	d := rdFull(word)
	if !cpu.Mem.Store(cpu.SP, cpu.Regs.Get(d)) {
		return 0, &BadAddress{PC: cpu.PC, Addr: cpu.SP}
	}
	cpu.SP--
	cpu.PC += 1
	return 2, nil
}

func execPOP(cpu *CPU, word uint16) (uint32, error) {
	if cpu.SP >= ResetSP {
		return 0, &StackUnderflow{PC: cpu.PC}
	}
	d := rdFull(word)
	cpu.SP++
	v, _ := cpu.Mem.Load(cpu.SP)
	cpu.Regs.Set(d, v)
	cpu.PC += 1
	return 2, nil
}

// LPM only emulates the implied-R0 and Z-addressed forms; program
// memory is treated as flat bytes (lo byte first per word), matching
// how LoadProgram lays the image out.

func lpmByte(cpu *CPU, wordAddr uint16) uint8 {
	w := cpu.prog.Word(wordAddr / 2)
	if wordAddr%2 == 0 {
		return uint8(w)
	}
	return uint8(w >> 8)
}

func execLPMImplied(cpu *CPU, word uint16) (uint32, error) {
	cpu.Regs.Set(0, lpmByte(cpu, cpu.Regs.Z()))
	cpu.PC += 1
	return 3, nil
}

func execLPMZ(cpu *CPU, word uint16) (uint32, error) {
	d := rdFull(word)
	cpu.Regs.Set(d, lpmByte(cpu, cpu.Regs.Z()))
	cpu.PC += 1
	return 3, nil
}

func execLPMZInc(cpu *CPU, word uint16) (uint32, error) {
	d := rdFull(word)
	z := cpu.Regs.Z()
	cpu.Regs.Set(d, lpmByte(cpu, z))
	cpu.Regs.SetZ(z + 1)
	cpu.PC += 1
	return 3, nil
}

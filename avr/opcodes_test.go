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

func TestLDSSTSTakeTwoCycles(t *testing.T) {
	cpu := NewCPU()
	cpu.Regs.Set(0, 0x5A)
	loadWords(t, cpu, 0x9200, SRAMStart, 0x9000, SRAMStart) // STS SRAMStart, r0 ; LDS r0, SRAMStart

	cycles, err := cpu.Step()
	if err != nil {
		t.Fatal(err)
	}
	if cycles != 2 {
		t.Fatalf("STS cycles = %d, want 2", cycles)
	}
	if cpu.PC != 2 {
		t.Fatalf("PC after STS = %d, want 2 (two-word instruction)", cpu.PC)
	}

	cpu.Regs.Set(0, 0)
	cycles, err = cpu.Step()
	if err != nil {
		t.Fatal(err)
	}
	if cycles != 2 {
		t.Fatalf("LDS cycles = %d, want 2", cycles)
	}
	if cpu.Regs.Get(0) != 0x5A {
		t.Fatalf("LDS round trip = 0x%02X, want 0x5A", cpu.Regs.Get(0))
	}
}

func TestLPMTakesThreeCycles(t *testing.T) {
	cpu := NewCPU()
	loadWords(t, cpu, 0x95C8) // LPM
	cycles, err := cpu.Step()
	if err != nil {
		t.Fatal(err)
	}
	if cycles != 3 {
		t.Fatalf("LPM cycles = %d, want 3", cycles)
	}
}

func TestBranchTakenVsNotTakenCycles(t *testing.T) {
	cpu := NewCPU()
	cpu.SREG.Z = true
	loadWords(t, cpu, 0xF001) // BRBS Z, +0

	cycles, err := cpu.Step()
	if err != nil {
		t.Fatal(err)
	}
	if cycles != 2 {
		t.Fatalf("taken branch cycles = %d, want 2", cycles)
	}

	cpu.Reset()
	cpu.SREG.Z = false
	loadWords(t, cpu, 0xF001)
	cycles, err = cpu.Step()
	if err != nil {
		t.Fatal(err)
	}
	if cycles != 1 {
		t.Fatalf("not-taken branch cycles = %d, want 1", cycles)
	}
}

func TestSkipOverOneWordInstructionCosts2Cycles(t *testing.T) {
	cpu := NewCPU()
	cpu.Regs.Set(0, 0x00) // bit 0 clear, so SBRC skips
	loadWords(t, cpu, 0xFC00, 0x0000, 0x0000) // SBRC r0,0 ; NOP ; NOP
	cycles, err := cpu.Step()
	if err != nil {
		t.Fatal(err)
	}
	if cycles != 2 {
		t.Fatalf("skip over a one-word instruction costs %d cycles, want 2", cycles)
	}
	if cpu.PC != 2 {
		t.Fatalf("PC = %d, want 2", cpu.PC)
	}
}

func TestSkipOverTwoWordInstructionCosts3Cycles(t *testing.T) {
	cpu := NewCPU()
	cpu.Regs.Set(0, 0x00) // bit 0 clear, so SBRC skips
	loadWords(t, cpu, 0xFC00, 0x9200, SRAMStart, 0x0000) // SBRC r0,0 ; STS SRAMStart,r0 ; NOP
	cycles, err := cpu.Step()
	if err != nil {
		t.Fatal(err)
	}
	if cycles != 3 {
		t.Fatalf("skip over a two-word instruction costs %d cycles, want 3", cycles)
	}
	if cpu.PC != 3 {
		t.Fatalf("PC = %d, want 3", cpu.PC)
	}
}

func TestCPSENoSkipCostsOneCycle(t *testing.T) {
	cpu := NewCPU()
	cpu.Regs.Set(0, 1)
	cpu.Regs.Set(1, 2)
	loadWords(t, cpu, 0x1001, 0x0000) // CPSE r0, r1 ; NOP
	cycles, err := cpu.Step()
	if err != nil {
		t.Fatal(err)
	}
	if cycles != 1 {
		t.Fatalf("CPSE with unequal operands costs %d cycles, want 1", cycles)
	}
}

func TestCALLRETRoundTrip(t *testing.T) {
	cpu := NewCPU()
	// CALL 3 ; NOP (landing pad for RET) ; (word 3:) RET
	loadWords(t, cpu, 0x940E, 0x0003, 0x0000, 0x9508)
	cycles, err := cpu.Step() // CALL
	if err != nil {
		t.Fatal(err)
	}
	if cycles != 4 {
		t.Fatalf("CALL cycles = %d, want 4", cycles)
	}
	if cpu.PC != 3 {
		t.Fatalf("PC after CALL = %d, want 3", cpu.PC)
	}
	cycles, err = cpu.Step() // RET
	if err != nil {
		t.Fatal(err)
	}
	if cycles != 4 {
		t.Fatalf("RET cycles = %d, want 4", cycles)
	}
	if cpu.PC != 2 {
		t.Fatalf("PC after RET = %d, want 2 (return address after CALL)", cpu.PC)
	}
}

func TestOUTThenINRoundTripsThroughIO(t *testing.T) {
	cpu := NewCPU()
	cpu.Regs.Set(16, 0x3C)
	const ioOffset = 0x0B // arbitrary unmapped I/O register
	loadWords(t, cpu,
		0xB800|(16<<4)|uint16(ioOffset&0x0F)|uint16((ioOffset&0x30)<<5), // OUT ioOffset, r16
		0xB000|(17<<4)|uint16(ioOffset&0x0F)|uint16((ioOffset&0x30)<<5), // IN r17, ioOffset
	)
	if _, err := cpu.Step(); err != nil {
		t.Fatal(err)
	}
	if _, err := cpu.Step(); err != nil {
		t.Fatal(err)
	}
	if cpu.Regs.Get(17) != 0x3C {
		t.Fatalf("IN after OUT = 0x%02X, want 0x3C", cpu.Regs.Get(17))
	}
}

func TestSBIAndCBIToggleASingleIOBit(t *testing.T) {
	cpu := NewCPU()
	const ioOffset = 0x05 // within the 32-register SBI/CBI reach
	loadWords(t, cpu, 0x9A00|uint16(ioOffset<<3)|3, 0x9800|uint16(ioOffset<<3)|3) // SBI ioOffset,3 ; CBI ioOffset,3
	if _, err := cpu.Step(); err != nil {
		t.Fatal(err)
	}
	v, _ := cpu.Mem.Load(IORegisterStart + ioOffset)
	if v&(1<<3) == 0 {
		t.Fatal("SBI did not set the bit")
	}
	if _, err := cpu.Step(); err != nil {
		t.Fatal(err)
	}
	v, _ = cpu.Mem.Load(IORegisterStart + ioOffset)
	if v&(1<<3) != 0 {
		t.Fatal("CBI did not clear the bit")
	}
}

func TestCOMAlwaysSetsCarry(t *testing.T) {
	cpu := NewCPU()
	cpu.Regs.Set(0, 0x00)
	loadWords(t, cpu, 0x9400) // COM r0
	if _, err := cpu.Step(); err != nil {
		t.Fatal(err)
	}
	if cpu.Regs.Get(0) != 0xFF {
		t.Fatalf("COM result = 0x%02X, want 0xFF", cpu.Regs.Get(0))
	}
	if !cpu.SREG.C {
		t.Fatal("COM must always set carry")
	}
}

func TestINCOverflowAt0x7F(t *testing.T) {
	cpu := NewCPU()
	cpu.Regs.Set(0, 0x7F)
	loadWords(t, cpu, 0x9403) // INC r0
	if _, err := cpu.Step(); err != nil {
		t.Fatal(err)
	}
	if cpu.Regs.Get(0) != 0x80 {
		t.Fatalf("INC result = 0x%02X, want 0x80", cpu.Regs.Get(0))
	}
	if !cpu.SREG.V {
		t.Fatal("INC from 0x7F must set V")
	}
}

func TestDECOverflowAt0x80(t *testing.T) {
	cpu := NewCPU()
	cpu.Regs.Set(0, 0x80)
	loadWords(t, cpu, 0x940A) // DEC r0
	if _, err := cpu.Step(); err != nil {
		t.Fatal(err)
	}
	if cpu.Regs.Get(0) != 0x7F {
		t.Fatalf("DEC result = 0x%02X, want 0x7F", cpu.Regs.Get(0))
	}
	if !cpu.SREG.V {
		t.Fatal("DEC from 0x80 must set V")
	}
}

func TestMULWritesR0R1Pair(t *testing.T) {
	cpu := NewCPU()
	cpu.Regs.Set(2, 10)
	cpu.Regs.Set(3, 20)
	loadWords(t, cpu, 0x9C00|(2<<4)|uint16((3&0x10)<<5)|uint16(3&0x0F)) // MUL r2, r3
	if _, err := cpu.Step(); err != nil {
		t.Fatal(err)
	}
	if got := cpu.Regs.Pair(0); got != 200 {
		t.Fatalf("r1:r0 = %d, want 200", got)
	}
}

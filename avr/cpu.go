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

// Package avr emulates the ATmega32U4 CPU core: register file, status
// register, unified data-space memory map, instruction decode/execute,
// and a minimal interrupt/timer model. It is deliberately silent on
// anything SPI/TWI/USB — the two-wire link to a display is a plain
// register write forwarded by the device that owns both ends of the
// bus (see the arduboy package), matching the shortcut spec.md §4.6
// documents.
package avr

import "github.com/jmaroeder/arduous/internal/log"

// ResetSP is the stack-pointer value after Reset: the top of the
// 2560-byte SRAM window, since the AVR stack grows downward.
const ResetSP = SRAMStart + SRAMSize - 1

// addrSREG is the status register's I/O-space address, per the
// ATmega32U4 datasheet, making it readable/writable a byte at a time
// via IN/OUT/PUSH/POP alongside the named-flag accessors every
// flag-setting opcode uses directly.
const addrSREG = IORegisterStart + 0x3F

// CPU is the ATmega32U4 instruction-execution model.
type CPU struct {
	Regs Registers
	SREG SREG
	Mem  MemoryMap

	PC uint16
	SP uint16

	prog   ProgramMemory
	eeprom EEPROM
	timer0 timer0

	pending    uint32 // bitmask of latched, not-yet-serviced interrupt vectors
	lookup     []decodeEntry
	clockCount uint64
}

// NewCPU constructs a CPU in its post-reset state.
func NewCPU() *CPU {
	cpu := &CPU{lookup: buildDecodeTable()}
	cpu.Mem.regs = &cpu.Regs
	cpu.timer0.attach(cpu)
	cpu.SetIOHandler(addrSREG,
		func() uint8 { return cpu.SREG.Pack() },
		func(v uint8) { cpu.SREG.Unpack(v) })
	cpu.Reset()
	return cpu
}

// Reset zeroes registers and SRAM, sets PC=0, SP=0x0AFF, SREG=0.
// EEPROM is preserved.
func (cpu *CPU) Reset() {
	cpu.Regs.Reset()
	cpu.SREG.Reset()
	cpu.Mem.Reset()
	cpu.PC = 0
	cpu.SP = ResetSP
	cpu.pending = 0
	cpu.timer0.reset()
	cpu.clockCount = 0
}

// LoadProgram copies a flat little-endian program image into program
// memory. Returns ProgramTooLarge if the image doesn't fit.
func (cpu *CPU) LoadProgram(image []byte) error {
	return cpu.prog.Load(image)
}

// SetIOHandler registers device hooks for a single I/O or extended-I/O
// data-space address.
func (cpu *CPU) SetIOHandler(addr uint16, read IOReadFunc, write IOWriteFunc) {
	cpu.Mem.SetIOHandler(addr, read, write)
}

// EEPROMBytes returns a snapshot of the 1024-byte EEPROM.
func (cpu *CPU) EEPROMBytes() [EEPROMSize]uint8 { return cpu.eeprom.Bytes() }

// LoadEEPROM restores a previously snapshotted EEPROM image.
func (cpu *CPU) LoadEEPROM(data [EEPROMSize]uint8) { cpu.eeprom.Load(data) }

// RaiseInterrupt latches an external interrupt source (e.g. a
// pin-change on a button line) for service on the next instruction
// boundary where I is set. vector is a word address in the vector
// table; see the Vector* constants.
func (cpu *CPU) RaiseInterrupt(vector uint8) {
	cpu.pending |= 1 << vector
}

// Step fetches, decodes and executes one instruction at PC, returning
// the number of cycles the datasheet assigns to it. PC is advanced by
// the handler itself, since instruction length varies between one and
// two words.
func (cpu *CPU) Step() (uint32, error) {
	pc := cpu.PC
	word := cpu.prog.Word(pc)

	entry := cpu.decode(word)
	if entry == nil {
		return 0, &IllegalInstruction{PC: pc, Word: word}
	}

	cycles, err := entry.exec(cpu, word)
	if err != nil {
		cpu.PC = pc // no partial side effects surfaced: PC unchanged at fault
		return 0, err
	}

	cpu.serviceInterrupts()
	cpu.timer0.tick(cycles)
	cpu.clockCount += uint64(cycles)
	return cycles, nil
}

// RunCycles repeatedly steps until at least budget cycles have
// elapsed, returning the actual total (which may slightly exceed
// budget, since instructions are not divisible).
func (cpu *CPU) RunCycles(budget uint32) (uint32, error) {
	var total uint32
	for total < budget {
		c, err := cpu.Step()
		if err != nil {
			return total, err
		}
		total += c
	}
	return total, nil
}

// ProgramWord exposes a single program-memory word for disassembly
// tooling; the CPU itself only ever reads program memory through Step.
func (cpu *CPU) ProgramWord(addr uint16) uint16 {
	return cpu.prog.Word(addr)
}

// DecodeMnemonic reports the instruction name at word and how many
// program words it occupies, for disassembly tooling. An unrecognized
// opcode reports ("???", 1) rather than an error, since a disassembler
// must make forward progress through data embedded in program memory.
func (cpu *CPU) DecodeMnemonic(word uint16) (name string, words int) {
	e := cpu.decode(word)
	if e == nil {
		return "???", 1
	}
	if is32BitWord(word) {
		return e.name, 2
	}
	return e.name, 1
}

func (cpu *CPU) decode(word uint16) *decodeEntry {
	for i := range cpu.lookup {
		e := &cpu.lookup[i]
		if word&e.mask == e.value {
			return e
		}
	}
	return nil
}

// serviceInterrupts pushes PC and jumps to the lowest pending vector
// if the global interrupt flag is set and something is latched.
func (cpu *CPU) serviceInterrupts() {
	if !cpu.SREG.I || cpu.pending == 0 {
		return
	}
	var vector uint8
	for v := uint8(0); v < 32; v++ {
		if cpu.pending&(1<<v) != 0 {
			vector = v
			break
		}
	}
	cpu.pending &^= 1 << vector
	cpu.pushPC()
	cpu.SREG.I = false
	cpu.PC = uint16(vector)
	log.Logf("interrupt: vector=%d pc<-%d", vector, cpu.PC)
}

func (cpu *CPU) pushPC() {
	cpu.Mem.Store(cpu.SP, uint8(cpu.PC>>8))
	cpu.SP--
	cpu.Mem.Store(cpu.SP, uint8(cpu.PC))
	cpu.SP--
}

func (cpu *CPU) popPC() (uint16, error) {
	if cpu.SP > ResetSP-2 {
		return 0, &StackUnderflow{PC: cpu.PC}
	}
	cpu.SP++
	lo, _ := cpu.Mem.Load(cpu.SP)
	cpu.SP++
	hi, _ := cpu.Mem.Load(cpu.SP)
	return uint16(lo) | uint16(hi)<<8, nil
}

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

// Data memory layout, byte-addressable 0x0000-0x0AFF.
const (
	RegisterStart = 0x0000
	RegisterSize  = 32
	RegisterEnd   = RegisterStart + RegisterSize - 1

	IORegisterStart = 0x0020
	IORegisterSize  = 64
	IORegisterEnd   = IORegisterStart + IORegisterSize - 1

	ExtIORegisterStart = 0x0060
	ExtIORegisterSize  = 160
	ExtIORegisterEnd   = ExtIORegisterStart + ExtIORegisterSize - 1

	SRAMStart = 0x0100
	SRAMSize  = 2560
	SRAMEnd   = SRAMStart + SRAMSize - 1

	DataMemorySize = 2816
)

// Program memory layout: 16384 16-bit words (32KiB).
const (
	ProgramMemoryWords = 16384
	ProgramMemorySize  = ProgramMemoryWords * 2
)

// EEPROMSize is the persistent byte-addressable EEPROM capacity.
const EEPROMSize = 1024

// IOReadFunc and IOWriteFunc are the device hooks a CPU user registers
// for a single I/O or extended-I/O address via SetIOHandler. A nil read
// hook makes reads return the last byte written to that address (the
// same ioRaw shadow byte an address with no hooks uses), not 0; a nil
// write hook means a write only updates that shadow byte.
type IOReadFunc func() uint8
type IOWriteFunc func(value uint8)

// MemoryMap is the unified data-space address dispatcher: registers,
// I/O space (with device hooks), extended I/O space (with device
// hooks), and SRAM. Addresses above SRAMEnd are a fault, surfaced by
// the caller as BadAddress rather than silently wrapped.
type MemoryMap struct {
	regs *Registers
	sram [SRAMSize]uint8

	ioRead  [IORegisterSize + ExtIORegisterSize]IOReadFunc
	ioWrite [IORegisterSize + ExtIORegisterSize]IOWriteFunc
	// ioRaw backs any I/O address with no registered hook: reads return
	// the last written value (closer to real register behavior than a
	// constant 0), writes simply record it.
	ioRaw [IORegisterSize + ExtIORegisterSize]uint8
}

func newMemoryMap(regs *Registers) *MemoryMap {
	return &MemoryMap{regs: regs}
}

// SetIOHandler registers read/write hooks for a single data-space
// address in the I/O or extended-I/O range. Either hook may be nil.
func (m *MemoryMap) SetIOHandler(addr uint16, read IOReadFunc, write IOWriteFunc) {
	if addr < IORegisterStart || addr > ExtIORegisterEnd {
		return
	}
	i := addr - IORegisterStart
	m.ioRead[i] = read
	m.ioWrite[i] = write
}

// Load reads a single byte from data space. ok is false for addresses
// above SRAMEnd, which the CPU turns into a BadAddress.
func (m *MemoryMap) Load(addr uint16) (value uint8, ok bool) {
	switch {
	case addr <= RegisterEnd:
		return m.regs.Get(uint8(addr - RegisterStart)), true
	case addr >= IORegisterStart && addr <= ExtIORegisterEnd:
		i := addr - IORegisterStart
		if fn := m.ioRead[i]; fn != nil {
			return fn(), true
		}
		return m.ioRaw[i], true
	case addr >= SRAMStart && addr <= SRAMEnd:
		return m.sram[addr-SRAMStart], true
	default:
		return 0, false
	}
}

// Store writes a single byte to data space. ok is false for addresses
// above SRAMEnd.
func (m *MemoryMap) Store(addr uint16, value uint8) (ok bool) {
	switch {
	case addr <= RegisterEnd:
		m.regs.Set(uint8(addr-RegisterStart), value)
		return true
	case addr >= IORegisterStart && addr <= ExtIORegisterEnd:
		i := addr - IORegisterStart
		m.ioRaw[i] = value
		if fn := m.ioWrite[i]; fn != nil {
			fn(value)
		}
		return true
	case addr >= SRAMStart && addr <= SRAMEnd:
		m.sram[addr-SRAMStart] = value
		return true
	default:
		return false
	}
}

// Pair16 / SetPair16 read/write a little-endian word across addr and
// addr+1. The stack code does not use them; it moves one byte at a time
// through Load/Store. Both addresses must already be known valid by the
// caller.
func (m *MemoryMap) Pair16(addr uint16) uint16 {
	lo, _ := m.Load(addr)
	hi, _ := m.Load(addr + 1)
	return uint16(lo) | uint16(hi)<<8
}

func (m *MemoryMap) SetPair16(addr uint16, value uint16) {
	m.Store(addr, uint8(value))
	m.Store(addr+1, uint8(value>>8))
}

// Reset clears SRAM and every unmapped I/O shadow byte. Register hooks
// themselves are left attached; the device that installed them is
// responsible for resetting the state behind its own hook.
func (m *MemoryMap) Reset() {
	m.sram = [SRAMSize]uint8{}
	m.ioRaw = [IORegisterSize + ExtIORegisterSize]uint8{}
}

// ProgramMemory is the 16384-word flash image. It is read-only from the
// CPU's perspective during execution; SPM self-programming is not
// emulated.
type ProgramMemory struct {
	words [ProgramMemoryWords]uint16
}

// Load loads a flat little-endian byte image (lo byte first per word)
// into program memory, per spec.md §6's program image format.
func (p *ProgramMemory) Load(image []byte) error {
	if len(image) > ProgramMemorySize {
		return &ProgramTooLarge{Size: len(image), Maximum: ProgramMemorySize}
	}
	p.words = [ProgramMemoryWords]uint16{}
	for i := 0; i+1 < len(image); i += 2 {
		p.words[i/2] = uint16(image[i]) | uint16(image[i+1])<<8
	}
	if len(image)%2 == 1 {
		p.words[len(image)/2] = uint16(image[len(image)-1])
	}
	return nil
}

// Word reads the 16-bit instruction word at a word address, wrapping
// addresses that fall outside program memory (mirrors real flash
// address-line truncation rather than faulting, since PC overflow here
// is a program bug, not a data-space violation).
func (p *ProgramMemory) Word(addr uint16) uint16 {
	return p.words[int(addr)%ProgramMemoryWords]
}

// EEPROM is the 1024-byte persistent store. The core never touches
// process/host storage; CPU.EEPROMBytes/LoadEEPROM let the host do that
// if it chooses to (spec.md §6, "Persistent state").
type EEPROM struct {
	bytes [EEPROMSize]uint8
}

func (e *EEPROM) Get(addr uint16) uint8     { return e.bytes[int(addr)%EEPROMSize] }
func (e *EEPROM) Set(addr uint16, v uint8)  { e.bytes[int(addr)%EEPROMSize] = v }
func (e *EEPROM) Bytes() [EEPROMSize]uint8  { return e.bytes }
func (e *EEPROM) Load(data [EEPROMSize]uint8) {
	e.bytes = data
}

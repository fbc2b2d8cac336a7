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

// decodeEntry is one row of the instruction table: a mask/value test
// against the fetched opcode word, and the handler to run on a match.
// The table is walked in order (not a 65536-entry jump table per
// spec.md §9), so entries that fix more bits must precede entries that
// fix fewer, or a general pattern could shadow a more specific one.
type decodeEntry struct {
	mask, value uint16
	name        string
	exec        func(cpu *CPU, word uint16) (uint32, error)
}

// rdFull extracts a full 5-bit register index (0..31) from bit 8 plus
// bits 7:4 — the common "d dddd" field shape used by register-register
// ALU ops, single-register ops, and the X/Y/Z load-store family.
func rdFull(word uint16) uint8 { return uint8((word >> 4) & 0x1F) }

// rrFull extracts a full 5-bit source register index from bit 9 plus
// bits 3:0 — the "r" half of register-register ALU ops.
func rrFull(word uint16) uint8 { return uint8((word & 0x0F) | ((word >> 5) & 0x10)) }

// rdHigh extracts the 4-bit destination field used by immediate ops,
// which can only address r16..r31.
func rdHigh(word uint16) uint8 { return 16 + uint8((word>>4)&0x0F) }

// immK8 extracts the 8-bit immediate used by SUBI/SBCI/ANDI/ORI/CPI/LDI:
// bits 11:8 as the high nibble, bits 3:0 as the low nibble.
func immK8(word uint16) uint8 { return uint8(((word >> 4) & 0xF0) | (word & 0x0F)) }

// adiwPair maps the 2-bit "dd" field of ADIW/SBIW to the low register
// of the addressed pair (W=24, X=26, Y=28, Z=30).
func adiwPair(word uint16) uint8 { return 24 + 2*uint8((word>>4)&0x03) }

// adiwK extracts the 6-bit immediate of ADIW/SBIW.
func adiwK(word uint16) uint8 { return uint8(((word>>6)&0x03)<<4 | (word & 0x0F)) }

// sregIndex extracts the 3-bit flag index used by BSET/BCLR.
func sregIndex(word uint16) uint8 { return uint8((word >> 4) & 0x07) }

// bitIndex extracts the 3-bit register-bit index used by BLD/BST/
// SBRC/SBRS.
func bitIndex(word uint16) uint8 { return uint8(word & 0x07) }

// ioAddr6 extracts the 6-bit I/O address used by IN/OUT.
func ioAddr6(word uint16) uint16 { return uint16(((word>>5)&0x30) | (word & 0x0F)) }

// ioAddr5 extracts the 5-bit I/O address used by SBI/CBI/SBIC/SBIS,
// which only reach the first 32 I/O registers.
func ioAddr5(word uint16) uint16 { return uint16((word >> 3) & 0x1F) }

// ldStQ extracts the 6-bit displacement used by LDD/STD Rd,Y+q / Z+q.
// q==0 is exactly the plain "LD Rd,Y" / "LD Rd,Z" encoding, so no
// separate table entry is needed for the undisplaced form.
func ldStQ(word uint16) uint16 {
	return uint16(((word>>8)&0x20) | ((word>>7)&0x18) | (word & 0x07))
}

// relK7 extracts and sign-extends the 7-bit branch displacement used
// by BRBS/BRBC.
func relK7(word uint16) int16 {
	k := int16((word >> 3) & 0x7F)
	if k&0x40 != 0 {
		k -= 128
	}
	return k
}

// is32BitWord reports whether word begins a two-word instruction
// (JMP, CALL, LDS, STS), which SBIC/SBIS/SBRC/SBRS/CPSE must know
// about to bill the correct number of skip cycles.
func is32BitWord(word uint16) bool {
	if word&0xFE0E == 0x940C || word&0xFE0E == 0x940E {
		return true // JMP / CALL
	}
	if word&0xFE0F == 0x9000 || word&0xFE0F == 0x9200 {
		return true // LDS / STS
	}
	return false
}

func buildDecodeTable() []decodeEntry {
	return []decodeEntry{
		// --- 32-bit instructions: must be matched before anything
		// that only fixes a subset of their bits. ---
		{0xFE0F, 0x9000, "LDS", execLDS},
		{0xFE0F, 0x9200, "STS", execSTS},
		{0xFE0E, 0x940C, "JMP", execJMP},
		{0xFE0E, 0x940E, "CALL", execCALL},

		// --- fully-specified single-word opcodes ---
		{0xFFFF, 0x0000, "NOP", execNOP},
		{0xFFFF, 0x9508, "RET", execRET},
		{0xFFFF, 0x9518, "RETI", execRETI},
		{0xFFFF, 0x9598, "BREAK", execBREAK},
		{0xFFFF, 0x9588, "SLEEP", execNOP},
		{0xFFFF, 0x95A8, "WDR", execNOP},
		{0xFFFF, 0x95C8, "LPM", execLPMImplied},

		// --- register-register ALU ops (000ooo rd dddd rrrr) ---
		{0xFC00, 0x0C00, "ADD", execADD},
		{0xFC00, 0x1C00, "ADC", execADC},
		{0xFC00, 0x1800, "SUB", execSUB},
		{0xFC00, 0x0800, "SBC", execSBC},
		{0xFC00, 0x2000, "AND", execAND},
		{0xFC00, 0x2800, "OR", execOR},
		{0xFC00, 0x2400, "EOR", execEOR},
		{0xFC00, 0x2C00, "MOV", execMOV},
		{0xFC00, 0x1400, "CP", execCP},
		{0xFC00, 0x0400, "CPC", execCPC},
		{0xFC00, 0x1000, "CPSE", execCPSE},
		{0xFC00, 0x9C00, "MUL", execMUL},

		// --- immediate ALU ops (0ooo KKKK dddd KKKK), d in r16..r31 ---
		{0xF000, 0x5000, "SUBI", execSUBI},
		{0xF000, 0x4000, "SBCI", execSBCI},
		{0xF000, 0x7000, "ANDI", execANDI},
		{0xF000, 0x6000, "ORI", execORI},
		{0xF000, 0x3000, "CPI", execCPI},
		{0xF000, 0xE000, "LDI", execLDI},

		// --- word-pair ops ---
		{0xFF00, 0x9600, "ADIW", execADIW},
		{0xFF00, 0x9700, "SBIW", execSBIW},
		{0xFF00, 0x0100, "MOVW", execMOVW},

		// --- single-register ops (1001010d dddd ssss) ---
		{0xFE0F, 0x9400, "COM", execCOM},
		{0xFE0F, 0x9401, "NEG", execNEG},
		{0xFE0F, 0x9402, "SWAP", execSWAP},
		{0xFE0F, 0x9403, "INC", execINC},
		{0xFE0F, 0x9405, "ASR", execASR},
		{0xFE0F, 0x9406, "LSR", execLSR},
		{0xFE0F, 0x9407, "ROR", execROR},
		{0xFE0F, 0x940A, "DEC", execDEC},

		// --- status register bit ops ---
		{0xFF8F, 0x9408, "BSET", execBSET},
		{0xFF8F, 0x9488, "BCLR", execBCLR},
		{0xFE08, 0xF800, "BLD", execBLD},
		{0xFE08, 0xFA00, "BST", execBST},
		{0xFE08, 0xFC00, "SBRC", execSBRC},
		{0xFE08, 0xFE00, "SBRS", execSBRS},

		// --- I/O bit ops (lower 32 I/O registers only) ---
		{0xFF00, 0x9A00, "SBI", execSBI},
		{0xFF00, 0x9800, "CBI", execCBI},
		{0xFF00, 0x9900, "SBIC", execSBIC},
		{0xFF00, 0x9B00, "SBIS", execSBIS},

		// --- I/O register transfer ---
		{0xF800, 0xB000, "IN", execIN},
		{0xF800, 0xB800, "OUT", execOUT},

		// --- stack ---
		{0xFE0F, 0x920F, "PUSH", execPUSH},
		{0xFE0F, 0x900F, "POP", execPOP},

		// --- indirect load/store through X/Y/Z, with LDD/STD
		// displacement forms subsuming the undisplaced q==0 case ---
		{0xD208, 0x8008, "LDD_Y", execLDDY},
		{0xD208, 0x8208, "STD_Y", execSTDY},
		{0xD208, 0x8000, "LDD_Z", execLDDZ},
		{0xD208, 0x8200, "STD_Z", execSTDZ},
		{0xFE0F, 0x900C, "LD_X", execLDX},
		{0xFE0F, 0x900D, "LD_X+", execLDXInc},
		{0xFE0F, 0x900E, "LD_-X", execLDXDec},
		{0xFE0F, 0x9001, "LD_Z+", execLDZInc},
		{0xFE0F, 0x9002, "LD_-Z", execLDZDec},
		{0xFE0F, 0x9009, "LD_Y+", execLDYInc},
		{0xFE0F, 0x900A, "LD_-Y", execLDYDec},
		{0xFE0F, 0x920C, "ST_X", execSTX},
		{0xFE0F, 0x920D, "ST_X+", execSTXInc},
		{0xFE0F, 0x920E, "ST_-X", execSTXDec},
		{0xFE0F, 0x9201, "ST_Z+", execSTZInc},
		{0xFE0F, 0x9202, "ST_-Z", execSTZDec},
		{0xFE0F, 0x9209, "ST_Y+", execSTYInc},
		{0xFE0F, 0x920A, "ST_-Y", execSTYDec},
		{0xFE0F, 0x9004, "LPM_Z", execLPMZ},
		{0xFE0F, 0x9005, "LPM_Z+", execLPMZInc},

		// --- control flow ---
		{0xF000, 0xC000, "RJMP", execRJMP},
		{0xF000, 0xD000, "RCALL", execRCALL},
		{0xFC00, 0xF000, "BRBS", execBRBS},
		{0xFC00, 0xF400, "BRBC", execBRBC},
	}
}

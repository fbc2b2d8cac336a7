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

package display

// commandLength reports how many bytes a command needs in the buffer
// before it can be dispatched, keyed on the first byte. Everything not
// listed is single-byte.
func commandLength(first uint8) (int, error) {
	switch first {
	case 0x81:
		return 2, nil // Set Contrast Control
	case 0x26, 0x27:
		return 7, nil // Continuous Horizontal Scroll Setup
	case 0x29, 0x2A:
		return 6, nil // Continuous Vertical and Horizontal Scroll Setup
	case 0xA3:
		return 3, nil // Set Vertical Scroll Area
	case 0x20:
		return 2, nil // Set Memory Addressing Mode
	case 0x21:
		return 3, nil // Set Column Address
	case 0x22:
		return 3, nil // Set Page Address
	case 0xA8:
		return 2, nil // Set Multiplex Ratio
	case 0xD3:
		return 2, nil // Set Display Offset
	case 0xDA:
		return 2, nil // Set COM Pins Hardware Configuration
	case 0xD5:
		return 2, nil // Set Display Clock Divide Ratio / Oscillator Frequency
	case 0xD9:
		return 2, nil // Set Pre-charge Period
	case 0xDB:
		return 2, nil // Set VCOMH Deselect Level
	}
	if isKnownSingleByte(first) {
		return 1, nil
	}
	return 0, &UnknownCommand{Opcode: first}
}

func isKnownSingleByte(cmd uint8) bool {
	switch {
	case cmd == 0xA4 || cmd == 0xA5:
		return true // Entire Display On
	case cmd == 0xA6 || cmd == 0xA7:
		return true // Set Normal/Inverse Display
	case cmd == 0xAE || cmd == 0xAF:
		return true // Set Display On/Off
	case cmd >= 0x00 && cmd <= 0x0F:
		return true // page-mode column start, low nibble
	case cmd >= 0x10 && cmd <= 0x1F:
		return true // page-mode column start, high nibble
	case cmd >= 0xB0 && cmd <= 0xB7:
		return true // page-mode page start
	case cmd >= 0x40 && cmd <= 0x7F:
		return true // display start line
	case cmd == 0xA0 || cmd == 0xA1:
		return true // segment remap
	case cmd == 0xC0 || cmd == 0xC8:
		return true // COM output scan direction
	case cmd == 0x2E || cmd == 0x2F:
		return true // deactivate/activate scroll
	case cmd == 0xE3:
		return true // NOP
	}
	return false
}

// dispatch runs the handler for a complete command buffer. Scrolling
// commands (0x26/0x27/0x29/0x2A/0x2E/0x2F/0xA3) are recognised for
// length only, per spec.md's explicit allowance — this emulator has no
// panning renderer for them to drive.
func (d *SSD1306) dispatch(buf []uint8) error {
	switch cmd := buf[0]; {
	case cmd == 0x81:
		d.contrast = buf[1]
	case cmd == 0xA4 || cmd == 0xA5:
		d.ignoreRAM = cmd&1 != 0
	case cmd == 0xA6 || cmd == 0xA7:
		d.inverted = cmd&1 != 0
	case cmd == 0xAE || cmd == 0xAF:
		d.sleeping = cmd&1 == 0
	case cmd >= 0x00 && cmd <= 0x0F:
		d.pageModeColumnStart = (d.pageModeColumnStart &^ 0x0F) | (cmd & 0x0F)
		d.col = d.pageModeColumnStart
	case cmd >= 0x10 && cmd <= 0x1F:
		d.pageModeColumnStart = (d.pageModeColumnStart & 0x0F) | ((cmd & 0x0F) << 4)
	case cmd == 0x20:
		switch buf[1] & 0x03 {
		case 0:
			d.addressingMode = Horizontal
		case 1:
			d.addressingMode = Vertical
		case 2:
			d.addressingMode = Page
		default:
			return &UnknownCommand{Opcode: buf[1]}
		}
	case cmd == 0x21:
		d.columnStart = buf[1] & 0x7F
		d.columnEnd = buf[2] & 0x7F
		d.col = d.columnStart
	case cmd == 0x22:
		d.pageStart = buf[1] & 0x07
		d.pageEnd = buf[2] & 0x07
		d.page = d.pageStart
	case cmd >= 0xB0 && cmd <= 0xB7:
		d.pageModePageStart = cmd & 0x07
		d.page = d.pageModePageStart
	case cmd >= 0x40 && cmd <= 0x7F:
		d.displayStartLine = cmd & 0x3F
	case cmd == 0xA0 || cmd == 0xA1:
		d.segmentRemap = cmd&1 != 0
	case cmd == 0xA8:
		a := buf[1] & 0x3F
		if a < 15 {
			return &InvalidParameter{Command: "set multiplex ratio", Value: buf[1]}
		}
		d.multiplexRatio = a + 1
	case cmd == 0xC0 || cmd == 0xC8:
		d.comRemap = cmd&0x08 != 0
	case cmd == 0xD3:
		d.verticalShift = buf[1] & 0x3F
	case cmd == 0xDA:
		d.alternativeCom = buf[1]&0x10 != 0
		d.comRemap = buf[1]&0x20 != 0
	case cmd == 0xD5:
		d.divideRatio = (buf[1] & 0x0F) + 1
		d.oscillatorFrequency = (buf[1] >> 4) & 0x0F
	case cmd == 0xD9:
		lo, hi := buf[1]&0x0F, (buf[1]>>4)&0x0F
		if lo == 0 || hi == 0 {
			return &InvalidParameter{Command: "set precharge period", Value: buf[1]}
		}
		d.prechargePeriod = buf[1]
	case cmd == 0xDB:
		d.vcomhDeselectLevel = (buf[1] >> 4) & 0x07
	case cmd == 0xE3:
		// NOP
	case cmd == 0x26 || cmd == 0x27 || cmd == 0x29 || cmd == 0x2A ||
		cmd == 0x2E || cmd == 0x2F || cmd == 0xA3:
		// scrolling commands: recognised for length, no VRAM effect
	default:
		return &UnknownCommand{Opcode: cmd}
	}
	return nil
}

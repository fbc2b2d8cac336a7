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

package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	ui "github.com/gizak/termui/v3"
	"github.com/gizak/termui/v3/widgets"

	"github.com/jmaroeder/arduous/arduboy"
	"github.com/jmaroeder/arduous/internal/disasm"
	dlog "github.com/jmaroeder/arduous/internal/log"
)

var (
	dev         *arduboy.Device
	dis         *disasm.Disassembly
	paragraphCPU    *widgets.Paragraph
	paragraphCode   *widgets.Paragraph
	paragraphRegs   *widgets.Paragraph
	paragraphVRAM   *widgets.Paragraph
	paragraphTrace  *widgets.Paragraph
	traceBuf        traceLogger
)

// traceLogger buffers the most recent trace lines for the trace pane;
// internal/log calls Log for each interrupt entry and display command.
type traceLogger struct {
	lines []string
}

func (t *traceLogger) Log(msg string) {
	t.lines = append(t.lines, msg)
	if len(t.lines) > 12 {
		t.lines = t.lines[len(t.lines)-12:]
	}
}

func renderCPU(p *widgets.Paragraph) {
	s := dev.CPU.SREG
	sb := &strings.Builder{}
	sb.WriteString(fmt.Sprintf("PC: $%04X  SP: $%04X\n", dev.CPU.PC, dev.CPU.SP))
	sb.WriteString(flagCell("I", s.I))
	sb.WriteString(flagCell("T", s.T))
	sb.WriteString(flagCell("H", s.H))
	sb.WriteString(flagCell("S", s.S))
	sb.WriteString(flagCell("V", s.V))
	sb.WriteString(flagCell("N", s.N))
	sb.WriteString(flagCell("Z", s.Z))
	sb.WriteString(flagCell("C", s.C))
	p.Text = sb.String()
}

func flagCell(name string, set bool) string {
	color := "red"
	if set {
		color = "green"
	}
	return fmt.Sprintf("[%s](fg:%s) ", name, color)
}

func renderRegs(p *widgets.Paragraph) {
	sb := &strings.Builder{}
	for i := 0; i < 32; i++ {
		sb.WriteString(fmt.Sprintf("r%-2d=%02X ", i, dev.CPU.Regs.Get(uint8(i))))
		if i%4 == 3 {
			sb.WriteRune('\n')
		}
	}
	p.Text = sb.String()
}

func renderCode(p *widgets.Paragraph) {
	pc := dev.CPU.PC
	sb := &strings.Builder{}
	for _, addr := range dis.Index {
		line := dis.Line(addr)
		if line == "" {
			continue
		}
		if addr == pc {
			sb.WriteString("[-> " + line + "](fg:yellow)\n")
		} else {
			sb.WriteString("   " + line + "\n")
		}
	}
	p.Text = sb.String()
}

func renderVRAM(p *widgets.Paragraph) {
	pixels := dev.DisplayIter()
	width, height := dev.DisplayDimensions()
	sb := &strings.Builder{}
	for y := 0; y < height; y += 4 {
		for x := 0; x < width; x += 2 {
			if pixels[y*width+x] {
				sb.WriteRune('#')
			} else {
				sb.WriteRune(' ')
			}
		}
		sb.WriteRune('\n')
	}
	p.Text = sb.String()
}

func renderTrace(p *widgets.Paragraph) {
	p.Text = strings.Join(traceBuf.lines, "\n")
}

func draw() {
	renderCPU(paragraphCPU)
	renderRegs(paragraphRegs)
	renderCode(paragraphCode)
	renderVRAM(paragraphVRAM)
	renderTrace(paragraphTrace)
	ui.Render(paragraphCPU, paragraphRegs, paragraphCode, paragraphVRAM, paragraphTrace)
}

func initLayout() {
	paragraphCPU = widgets.NewParagraph()
	paragraphCPU.Title = "CPU"
	paragraphCPU.SetRect(0, 0, 40, 5)

	paragraphRegs = widgets.NewParagraph()
	paragraphRegs.Title = "Registers"
	paragraphRegs.SetRect(0, 5, 40, 14)

	paragraphCode = widgets.NewParagraph()
	paragraphCode.Title = "Disassembly"
	paragraphCode.SetRect(0, 14, 40, 34)

	paragraphVRAM = widgets.NewParagraph()
	paragraphVRAM.Title = "Display"
	paragraphVRAM.SetRect(40, 0, 106, 18)

	paragraphTrace = widgets.NewParagraph()
	paragraphTrace.Title = "Trace"
	paragraphTrace.SetRect(40, 18, 106, 34)
}

func loadDevice(programPath string) {
	image, err := os.ReadFile(programPath)
	if err != nil {
		log.Fatalf("reading program image: %v", err)
	}

	dev = arduboy.New()
	if err := dev.LoadProgram(image); err != nil {
		log.Fatalf("loading program image: %v", err)
	}

	dis = disasm.Disassemble(dev.CPU, 0, 0x3FFF)

	dlog.SetLogger(&traceBuf)
	dlog.SetEnable(true)
}

var buttonKeys = map[string]arduboy.Button{
	"<Up>":    arduboy.ButtonUp,
	"<Down>":  arduboy.ButtonDown,
	"<Left>":  arduboy.ButtonLeft,
	"<Right>": arduboy.ButtonRight,
	"a":       arduboy.ButtonA,
	"b":       arduboy.ButtonB,
}

// buttonHeld tracks each button's latched state across key presses,
// since termui's PollEvents only ever reports key-down here: pressing
// a mapped key a second time releases the button rather than
// re-asserting it, so the debugger can demonstrate SetButton(..., false)
// at all.
var buttonHeld = map[arduboy.Button]bool{}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: arduous-debug <program-image>")
		os.Exit(1)
	}

	if err := ui.Init(); err != nil {
		log.Fatalf("failed to initialize termui: %v", err)
	}
	defer ui.Close()

	initLayout()
	loadDevice(os.Args[1])
	draw()

	for e := range ui.PollEvents() {
		if e.Type != ui.KeyboardEvent {
			continue
		}
		switch e.ID {
		case "q", "<C-c>":
			return
		case "<Space>":
			if _, err := dev.CPU.Step(); err != nil {
				traceBuf.Log(err.Error())
			}
		case "r", "R":
			dev.Reset()
			buttonHeld = map[arduboy.Button]bool{}
		case "f", "F":
			if err := dev.RunFrame(); err != nil {
				traceBuf.Log(err.Error())
			}
		default:
			if button, ok := buttonKeys[e.ID]; ok {
				buttonHeld[button] = !buttonHeld[button]
				dev.SetButton(button, buttonHeld[button])
			}
		}
		draw()
	}
}

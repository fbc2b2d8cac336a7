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
	"os"
	"sort"
	"strings"

	"gopkg.in/urfave/cli.v2"

	"github.com/jmaroeder/arduous/arduboy"
)

func main() {
	app := &cli.App{
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "program",
				Aliases: []string{"p"},
				Usage:   "flat little-endian flash image to load",
			},
			&cli.IntFlag{
				Name:    "frames",
				Aliases: []string{"f"},
				Usage:   "number of ~60Hz frames to run before reporting",
				Value:   1,
			},
			&cli.BoolFlag{
				Name:  "dump-cpu",
				Usage: "print register/SREG state instead of the display",
			},
		},
		Name:    "arduousctl",
		Usage:   "Run an Arduboy program image headlessly",
		Version: "v0.0.1",
		Action:  run,
	}

	sort.Sort(cli.FlagsByName(app.Flags))
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	programPath := c.String("program")
	if programPath == "" {
		cli.ShowAppHelp(c)
		return cli.Exit("missing required --program", 86)
	}
	frames := c.Int("frames")
	if frames < 1 {
		frames = 1
	}

	image, err := os.ReadFile(programPath)
	if err != nil {
		return cli.Exit(fmt.Sprintf("reading program image: %v", err), 1)
	}

	dev := arduboy.New()
	if err := dev.LoadProgram(image); err != nil {
		return cli.Exit(fmt.Sprintf("loading program image: %v", err), 1)
	}

	for i := 0; i < frames; i++ {
		if err := dev.RunFrame(); err != nil {
			return cli.Exit(fmt.Sprintf("frame %d: %v", i, err), 1)
		}
	}

	if c.Bool("dump-cpu") {
		dumpCPU(dev)
		return nil
	}
	dumpDisplay(dev)
	return nil
}

func dumpCPU(dev *arduboy.Device) {
	cpu := dev.CPU
	fmt.Printf("PC: $%04X  SP: $%04X\n", cpu.PC, cpu.SP)
	for i := 0; i < 32; i++ {
		fmt.Printf("r%-2d=$%02X ", i, cpu.Regs.Get(uint8(i)))
		if i%8 == 7 {
			fmt.Println()
		}
	}
	s := cpu.SREG
	fmt.Printf("SREG: I=%v T=%v H=%v S=%v V=%v N=%v Z=%v C=%v\n",
		bit(s.I), bit(s.T), bit(s.H), bit(s.S), bit(s.V), bit(s.N), bit(s.Z), bit(s.C))
}

func bit(b bool) int {
	if b {
		return 1
	}
	return 0
}

// dumpDisplay renders the 128x64 panel as two-pixels-per-character
// ASCII art, since most terminals are roughly twice as tall as wide.
func dumpDisplay(dev *arduboy.Device) {
	pixels := dev.DisplayIter()
	width, height := dev.DisplayDimensions()

	var sb strings.Builder
	for y := 0; y < height; y += 2 {
		for x := 0; x < width; x++ {
			top := pixels[y*width+x]
			bottom := false
			if y+1 < height {
				bottom = pixels[(y+1)*width+x]
			}
			sb.WriteRune(halfBlock(top, bottom))
		}
		sb.WriteRune('\n')
	}
	fmt.Print(sb.String())
}

func halfBlock(top, bottom bool) rune {
	switch {
	case top && bottom:
		return '█'
	case top:
		return '▀'
	case bottom:
		return '▄'
	default:
		return ' '
	}
}

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

// Package log carries the teacher's pluggable trace-logger pattern: a
// no-op by default, switched on and redirected by a host (typically
// cmd/arduous-debug) that wants to see trace lines. The CPU emits a line
// when it enters an interrupt and the display one per dispatched
// command; individual instructions are not traced.
package log

import "fmt"

// Logger receives trace lines from the CPU and display models.
type Logger interface {
	Log(msg string)
}

type noopLogger struct{}

func (noopLogger) Log(string) {}

var (
	defaultLogger Logger = noopLogger{}
	logger               = defaultLogger
	enabled              = false
)

// SetLogger installs a custom logger. Passing nil restores the no-op
// default.
func SetLogger(impl Logger) {
	if impl == nil {
		logger = defaultLogger
	} else {
		logger = impl
	}
}

// SetEnable toggles whether Logf actually formats and forwards lines.
// Left off by default since CPU.Step is on the hot path.
func SetEnable(enable bool) {
	enabled = enable
}

// Logf formats and forwards a trace line if logging is enabled.
func Logf(format string, args ...interface{}) {
	if !enabled {
		return
	}
	logger.Log(fmt.Sprintf(format, args...))
}

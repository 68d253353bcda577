/*
   Copyright 2020 Docker Compose CLI authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package term collects the terminal primitives the tui renderer needs:
// size probing, cursor control and raw keypress streaming. It exists so
// the tui package can be written against a small interface rather than
// directly against aec/goterm/keyboard calls scattered through the
// drawing code, the way the teacher's cmd/formatter package bundles its
// own ansi.go helpers for the same reason.
package term

import (
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/acarl005/stripansi"
	"github.com/buger/goterm"
	"github.com/eiannone/keyboard"
	"github.com/morikuni/aec"
)

// Size is a terminal's current dimensions in character cells.
type Size struct {
	Width, Height int
}

// Terminal is the surface the tui renderer draws through and reads raw
// keys from. DefaultTerminal implements it against aec/goterm/keyboard;
// tests substitute a fake.
type Terminal interface {
	Size() Size
	EnterAltScreen() error
	LeaveAltScreen()
	HideCursor()
	ShowCursor()
	MoveTo(row, col int)
	ClearLine()
	Write(s string)
	// Keys streams raw keypresses until the returned stop func is called.
	Keys() (events <-chan keyboard.KeyEvent, stop func(), err error)
}

// DefaultTerminal is the real, ANSI-backed Terminal.
type DefaultTerminal struct {
	out io.Writer
}

// NewDefaultTerminal wraps out (typically os.Stdout) as a Terminal.
func NewDefaultTerminal(out io.Writer) *DefaultTerminal {
	return &DefaultTerminal{out: out}
}

func (t *DefaultTerminal) Size() Size {
	return Size{Width: goterm.Width(), Height: goterm.Height()}
}

func (t *DefaultTerminal) EnterAltScreen() error {
	fmt.Fprint(t.out, aec.Save)
	fmt.Fprint(t.out, aec.Hide)
	return nil
}

func (t *DefaultTerminal) LeaveAltScreen() {
	fmt.Fprint(t.out, aec.Show)
	fmt.Fprint(t.out, aec.Restore)
}

func (t *DefaultTerminal) HideCursor() { fmt.Fprint(t.out, aec.Hide) }
func (t *DefaultTerminal) ShowCursor() { fmt.Fprint(t.out, aec.Show) }

func (t *DefaultTerminal) MoveTo(row, col int) {
	fmt.Fprint(t.out, aec.Position(uint(row), uint(col)))
}

func (t *DefaultTerminal) ClearLine() {
	fmt.Fprint(t.out, aec.EraseLine(aec.EraseModes.Tail))
}

func (t *DefaultTerminal) Write(s string) { fmt.Fprint(t.out, s) }

func (t *DefaultTerminal) Keys() (<-chan keyboard.KeyEvent, func(), error) {
	events, err := keyboard.GetKeys(16)
	if err != nil {
		return nil, func() {}, err
	}
	return events, func() { _ = keyboard.Close() }, nil
}

// VisibleWidth is the display width of s once ANSI escapes are
// stripped, counted in runes so multi-byte glyphs (tree lines, spinner
// frames) count as one cell each; the same trick the teacher's ansi.go
// lenAnsi uses to keep column math honest in the presence of color codes.
func VisibleWidth(s string) int {
	return utf8.RuneCountInString(stripansi.Strip(s))
}

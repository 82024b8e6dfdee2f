// This file is part of mill - https://github.com/paiv/mng-mill
//
// Copyright 2026 The mng-mill Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package vm

import (
	"strings"

	"github.com/pkg/errors"
)

// Tape is a fixed size ring of cells with a head. Addressing wraps around:
// moving left from cell 0 lands on the last cell.
type Tape struct {
	cells []Char
	head  int
}

// NewTape returns a blank tape of the given size, 1 to MaxTapeSize cells.
func NewTape(size int) (*Tape, error) {
	if size <= 0 || size > MaxTapeSize {
		return nil, errors.Wrapf(&CapacityError{"tape size", MaxTapeSize}, "invalid tape size %d", size)
	}
	return &Tape{cells: make([]Char, size)}, nil
}

// ParseTape converts tape text to symbols. Only the first line is used,
// without its line terminator. If underscoreBlank is true, '_' characters are
// read as Blank, otherwise they are regular symbols.
func ParseTape(s string, underscoreBlank bool) []Char {
	if n := strings.IndexByte(s, '\n'); n >= 0 {
		s = s[:n]
	}
	s = strings.TrimSuffix(s, "\r")
	in := make([]Char, 0, len(s))
	for _, r := range s {
		c := Char(r)
		if underscoreBlank && r == '_' {
			c = Blank
		}
		in = append(in, c)
	}
	return in
}

// Seed clears the tape, writes input starting at cell 0 and moves the head to
// cell 0.
func (t *Tape) Seed(input []Char) error {
	if len(input) > len(t.cells) {
		return errors.Wrapf(ErrInputTooLong, "%d symbols for %d cells", len(input), len(t.cells))
	}
	n := copy(t.cells, input)
	for k := n; k < len(t.cells); k++ {
		t.cells[k] = Blank
	}
	t.head = 0
	return nil
}

// Len returns the tape size in cells.
func (t *Tape) Len() int { return len(t.cells) }

// Head returns the head position.
func (t *Tape) Head() int { return t.head }

// SetHead moves the head to the given position, modulo the tape size.
func (t *Tape) SetHead(pos int) { t.head = t.wrap(pos) }

// Move moves the head one cell in the given direction.
func (t *Tape) Move(m Move) { t.head = t.wrap(t.head + int(m)) }

func (t *Tape) wrap(pos int) int {
	n := len(t.cells)
	return ((pos % n) + n) % n
}

// Read returns the symbol at the given position, modulo the tape size.
func (t *Tape) Read(pos int) Char { return t.cells[t.wrap(pos)] }

// Write writes a symbol at the given position, modulo the tape size.
func (t *Tape) Write(pos int, c Char) { t.cells[t.wrap(pos)] = c }

// Render returns the tape contents in reading order, without the leading
// and trailing blanks.
//
// The ring is cut at its longest run of blank cells, so that symbols written
// on both sides of cell 0 come out in one piece. Among runs of equal length,
// the one ending just left of cell 0 wins, then the first one found.
func (t *Tape) Render() []Char {
	n := len(t.cells)
	b := -1
	for k := 0; k < n; k++ {
		if t.cells[k] == Blank && t.cells[(k+1)%n] != Blank {
			b = k
			break
		}
	}
	if b < 0 {
		if t.cells[0] == Blank {
			return nil
		}
		out := make([]Char, n)
		copy(out, t.cells)
		return out
	}

	// walk from the first symbol after b; the walk ends on b, so no blank
	// run wraps around it.
	start, gap := 0, 0
	run := 0
	for k := 1; k <= n; k++ {
		pos := (b + k) % n
		if t.cells[pos] == Blank {
			run++
			if k < n {
				continue
			}
			pos = (pos + 1) % n
		}
		if run > gap || run == gap && run > 0 && pos == 0 {
			start, gap = pos, run
		}
		run = 0
	}

	out := make([]Char, n-gap)
	for k := range out {
		out[k] = t.cells[(start+k)%n]
	}
	return out
}

// String returns the rendered tape. Blank cells inside the content are
// written "_".
func (t *Tape) String() string {
	var b strings.Builder
	for _, c := range t.Render() {
		b.WriteString(c.String())
	}
	return b.String()
}

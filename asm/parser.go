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

package asm

import (
	"bufio"
	"io"
	"text/scanner"
	"unicode"
	"unicode/utf8"

	"github.com/paiv/mng-mill/vm"
	"github.com/pkg/errors"
)

// phase is the tokenizer state. Each rule line goes through the phases in
// order; full line comments loop between awaitStateIn and inLineComment.
type phase int

const (
	awaitStateIn phase = iota
	inStateIn
	awaitCharIn
	inCharIn
	awaitStateOut
	inStateOut
	awaitCharOut
	inCharOut
	awaitMove
	inMove
	afterMove         // move read, expecting end of line or "//"
	commentSlash      // first '/' of a trailing comment
	inTrailingComment // skip to end of line, rule complete
	inLineComment     // skip to end of line, no rule
	lineDone
)

// Parser reads rules one at a time from a character stream.
type Parser struct {
	r      io.RuneReader
	syms   *vm.SymbolTable
	pos    scanner.Position // position of the last character read
	next   scanner.Position
	phase  phase
	tok    []rune
	tokPos scanner.Position
	ins    vm.Instruction
}

// NewParser returns a new parser reading rule text from r. State names are
// interned in syms. The name parameter is used in error positions.
func NewParser(name string, r io.Reader, syms *vm.SymbolTable) *Parser {
	rr, ok := r.(io.RuneReader)
	if !ok {
		rr = bufio.NewReader(r)
	}
	return &Parser{
		r:    rr,
		syms: syms,
		next: scanner.Position{Filename: name, Line: 1, Column: 1},
	}
}

func (p *Parser) errorf(pos scanner.Position, format string, args ...interface{}) error {
	return ErrAsm{{Pos: pos, Err: errors.Errorf(format, args...)}}
}

func (p *Parser) fail(pos scanner.Position, err error) error {
	return ErrAsm{{Pos: pos, Err: err}}
}

func (p *Parser) read() (rune, error) {
	r, sz, err := p.r.ReadRune()
	if err != nil {
		if err == io.EOF {
			p.pos = p.next
			return 0, io.EOF
		}
		return 0, errors.Wrap(err, "read failed")
	}
	p.pos = p.next
	p.next.Offset += sz
	if r == '\n' {
		p.next.Line++
		p.next.Column = 1
	} else {
		p.next.Column++
	}
	if r == utf8.RuneError && sz == 1 {
		return 0, p.errorf(p.pos, "illegal UTF-8 encoding")
	}
	return r, nil
}

func (p *Parser) start(r rune, next phase) {
	p.tok = append(p.tok[:0], r)
	p.tokPos = p.pos
	p.phase = next
}

func (p *Parser) state() (vm.StateID, error) {
	id, err := p.syms.Intern(string(p.tok))
	if err != nil {
		return 0, p.fail(p.tokPos, errors.Wrapf(err, "state %s", string(p.tok)))
	}
	p.tok = p.tok[:0]
	return id, nil
}

func (p *Parser) char() vm.Char {
	c := vm.Char(p.tok[0])
	if c == '_' {
		c = vm.Blank
	}
	p.tok = p.tok[:0]
	return c
}

func (p *Parser) move() error {
	switch string(p.tok) {
	case "L":
		p.ins.Move = vm.Left
	case "R":
		p.ins.Move = vm.Right
	default:
		return p.errorf(p.tokPos, "invalid move instruction %s", string(p.tok))
	}
	p.tok = p.tok[:0]
	return nil
}

func (p *Parser) tooLong() error {
	return p.fail(p.tokPos, errors.Wrapf(&vm.CapacityError{What: "state name length", Limit: vm.MaxStateLen}, "symbol is too long: %s", string(p.tok)))
}

// Next returns the next rule. It returns io.EOF when the input ends on a
// blank or comment line. Any other error is either an ErrAsm or a read
// error.
func (p *Parser) Next() (vm.Instruction, error) {
	var (
		ins vm.Instruction
		err error
	)
	p.phase = awaitStateIn
	p.tok = p.tok[:0]
	p.ins = vm.Instruction{}

	for p.phase != lineDone {
		r, err := p.read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return ins, err
		}
		space := unicode.IsSpace(r)

		switch p.phase {
		case awaitStateIn:
			if !space {
				p.start(r, inStateIn)
			}
		case inStateIn:
			if space {
				if p.ins.StateIn, err = p.state(); err != nil {
					return ins, err
				}
				p.phase = awaitCharIn
			} else if len(p.tok) >= vm.MaxStateLen {
				return ins, p.tooLong()
			} else {
				p.tok = append(p.tok, r)
				if len(p.tok) == 2 && p.tok[0] == '/' && p.tok[1] == '/' {
					p.tok = p.tok[:0]
					p.phase = inLineComment
				}
			}
		case awaitCharIn:
			if !space {
				p.start(r, inCharIn)
			}
		case inCharIn:
			if !space {
				return ins, p.errorf(p.tokPos, "symbol is too long: %s", string(append(p.tok, r)))
			}
			p.ins.CharIn = p.char()
			p.phase = awaitStateOut
		case awaitStateOut:
			if !space {
				p.start(r, inStateOut)
			}
		case inStateOut:
			if space {
				if p.ins.StateOut, err = p.state(); err != nil {
					return ins, err
				}
				p.phase = awaitCharOut
			} else if len(p.tok) >= vm.MaxStateLen {
				return ins, p.tooLong()
			} else {
				p.tok = append(p.tok, r)
			}
		case awaitCharOut:
			if !space {
				p.start(r, inCharOut)
			}
		case inCharOut:
			if !space {
				return ins, p.errorf(p.tokPos, "symbol is too long: %s", string(append(p.tok, r)))
			}
			p.ins.CharOut = p.char()
			p.phase = awaitMove
		case awaitMove:
			if !space {
				p.start(r, inMove)
			}
		case inMove:
			if space {
				if err = p.move(); err != nil {
					return ins, err
				}
				if r == '\n' {
					p.phase = lineDone
				} else {
					p.phase = afterMove
				}
			} else if len(p.tok) >= vm.MaxStateLen {
				return ins, p.tooLong()
			} else {
				p.tok = append(p.tok, r)
				if n := len(p.tok); n >= 3 && p.tok[n-2] == '/' && p.tok[n-1] == '/' {
					p.tok = p.tok[:n-2]
					if err = p.move(); err != nil {
						return ins, err
					}
					p.phase = inTrailingComment
				}
			}
		case afterMove:
			switch {
			case r == '\n':
				p.phase = lineDone
			case r == '/':
				p.start(r, commentSlash)
			case !space:
				return ins, p.errorf(p.pos, "unexpected token: %c", r)
			}
		case commentSlash:
			if r != '/' {
				return ins, p.errorf(p.tokPos, "unexpected token: %s", string(append(p.tok, r)))
			}
			p.phase = inTrailingComment
		case inTrailingComment:
			if r == '\n' {
				p.phase = lineDone
			}
		case inLineComment:
			if r == '\n' {
				p.phase = awaitStateIn
			}
		}
	}

	switch p.phase {
	case awaitStateIn, inLineComment:
		return ins, io.EOF
	case inMove:
		if err = p.move(); err != nil {
			return ins, err
		}
	case commentSlash:
		return ins, p.errorf(p.tokPos, "unexpected token: %s", string(p.tok))
	case afterMove, inTrailingComment, lineDone:
	default:
		return ins, p.errorf(p.pos, "expecting a token")
	}
	return p.ins, nil
}

// Symbols returns the symbol table used by the parser.
func (p *Parser) Symbols() *vm.SymbolTable { return p.syms }

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
	"bytes"
	"io"
	"text/scanner"

	"github.com/paiv/mng-mill/internal/ioerr"
	"github.com/paiv/mng-mill/vm"
)

// Error is an assembly error at a given position in the source.
type Error struct {
	Pos scanner.Position
	Err error
}

func (e *Error) Error() string {
	return e.Pos.String() + ": " + e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error { return e.Err }

// ErrAsm is the error type returned by Assemble and Parser.Next. Parsing
// stops at the first error, so an ErrAsm holds a single entry unless built
// by hand.
type ErrAsm []*Error

func (e ErrAsm) Error() string {
	var b bytes.Buffer
	for i, err := range e {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(err.Error())
	}
	return b.String()
}

// Unwrap returns the first error.
func (e ErrAsm) Unwrap() error {
	if len(e) == 0 {
		return nil
	}
	return e[0]
}

// Assemble compiles the rule text read from the supplied io.Reader and
// returns the resulting program.
//
// The name parameter is used only in error messages to name the source of the
// error. If the io.Reader is a file, name should be the file name.
//
// Assemble is fail fast: on error, no program is returned. Limits are checked
// with vm.IsCapacity.
func Assemble(name string, r io.Reader) (*vm.Program, error) {
	p := NewParser(name, r, vm.NewSymbolTable())
	var code []vm.Instruction
	for {
		ins, err := p.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(code) >= vm.MaxInstructions {
			return nil, p.fail(p.pos, &vm.CapacityError{What: "instructions", Limit: vm.MaxInstructions})
		}
		code = append(code, ins)
	}
	return vm.NewProgram(p.syms, code)
}

// Disassemble writes instruction i of the program in rule text form, without
// line terminator, to the specified io.Writer.
func Disassemble(p *vm.Program, i int, w io.Writer) error {
	ew, _ := w.(*ioerr.Writer)
	if ew == nil {
		ew = ioerr.NewWriter(w)
	}
	ins := p.Instruction(i)
	ew.WriteString(p.Symbols.Name(ins.StateIn))
	ew.WriteByte(' ')
	ew.WriteString(ins.CharIn.String())
	ew.WriteByte(' ')
	ew.WriteString(p.Symbols.Name(ins.StateOut))
	ew.WriteByte(' ')
	ew.WriteString(ins.CharOut.String())
	ew.WriteByte(' ')
	ew.WriteString(ins.Move.String())
	return ew.Err
}

// DisassembleAll writes all the instructions of the program, one per line.
// Assembling the output gives back the same program.
func DisassembleAll(p *vm.Program, w io.Writer) error {
	ew := ioerr.NewWriter(w)
	for i := 0; i < p.Len(); i++ {
		Disassemble(p, i, ew)
		ew.WriteByte('\n')
		if ew.Err != nil {
			return ew.Err
		}
	}
	return nil
}

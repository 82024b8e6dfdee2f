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
	"strconv"

	"github.com/pkg/errors"
)

// Char is a tape symbol. The zero value is the blank symbol.
type Char rune

// Blank is the symbol of an empty cell. It is written "_" in rule text.
const Blank Char = 0

func (c Char) String() string {
	if c == Blank {
		return "_"
	}
	return string(rune(c))
}

// Move is a head movement.
type Move int8

// Head movements.
const (
	Left  Move = -1
	Right Move = 1
)

func (m Move) String() string {
	switch m {
	case Left:
		return "L"
	case Right:
		return "R"
	}
	return "Move(" + strconv.Itoa(int(m)) + ")"
}

// Instruction is a transition rule: when in state StateIn and reading CharIn,
// write CharOut, switch to StateOut and move the head.
type Instruction struct {
	StateIn  StateID
	CharIn   Char
	StateOut StateID
	CharOut  Char
	Move     Move
}

type key struct {
	state StateID
	c     Char
}

// Program is a compiled set of instructions along with the symbol table
// naming its states. A Program is read only once built and can be shared by
// any number of Instances.
type Program struct {
	Symbols *SymbolTable
	Init    StateID
	Halt    StateID
	code    []Instruction
	index   map[key]int
}

// NewProgram builds a program from the given symbol table and instructions.
// The program takes ownership of both.
//
// When several instructions share the same (state, symbol) pair, the first
// one wins.
func NewProgram(symbols *SymbolTable, code []Instruction) (*Program, error) {
	if len(code) > MaxInstructions {
		return nil, &CapacityError{"instructions", MaxInstructions}
	}
	p := &Program{
		Symbols: symbols,
		Init:    Init,
		Halt:    Halt,
		code:    code,
		index:   make(map[key]int, len(code)),
	}
	n := StateID(symbols.Len())
	for k, ins := range code {
		if ins.StateIn < 0 || ins.StateIn >= n || ins.StateOut < 0 || ins.StateOut >= n {
			return nil, errors.Errorf("instruction %d: state id out of range", k)
		}
		if ins.Move != Left && ins.Move != Right {
			return nil, errors.Errorf("instruction %d: invalid head movement %v", k, ins.Move)
		}
		kk := key{ins.StateIn, ins.CharIn}
		if _, ok := p.index[kk]; !ok {
			p.index[kk] = k
		}
	}
	return p, nil
}

// Len returns the number of instructions.
func (p *Program) Len() int { return len(p.code) }

// Instruction returns the i-th instruction, in source order.
func (p *Program) Instruction(i int) Instruction { return p.code[i] }

// Lookup returns the first instruction matching the given state and symbol.
func (p *Program) Lookup(state StateID, c Char) (Instruction, bool) {
	k, ok := p.index[key{state, c}]
	if !ok {
		return Instruction{}, false
	}
	return p.code[k], true
}

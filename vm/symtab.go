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
	"unicode/utf8"

	"github.com/pkg/errors"
)

// Limits of the machine.
const (
	MaxStates       = 1024     // distinct state names, INIT and HALT included
	MaxStateLen     = 32       // characters in a state name
	MaxInstructions = 0x10000  // instructions in a program
	MaxTapeSize     = 0x100000 // tape cells
	MaxSteps        = 1000000  // default step limit
)

// symbol storage in characters, one terminator per name.
const symbolStorage = MaxStates * (MaxStateLen + 1)

// StateID is the id of an interned state name.
type StateID int

// Builtin states. NewSymbolTable interns them first, in this order.
const (
	Init StateID = iota
	Halt
)

// SymbolTable interns state names. It is append only.
type SymbolTable struct {
	names []string
	ids   map[string]StateID
	used  int
}

// NewSymbolTable returns a new symbol table holding the builtin INIT and HALT
// states.
func NewSymbolTable() *SymbolTable {
	t := &SymbolTable{
		ids: make(map[string]StateID),
	}
	t.Intern("INIT")
	t.Intern("HALT")
	return t
}

// Intern returns the id of the given name, adding it to the table if needed.
// Names are case sensitive.
func (t *SymbolTable) Intern(name string) (StateID, error) {
	if id, ok := t.ids[name]; ok {
		return id, nil
	}
	n := utf8.RuneCountInString(name)
	switch {
	case n == 0:
		return 0, errors.New("empty state name")
	case n > MaxStateLen:
		return 0, &CapacityError{"state name length", MaxStateLen}
	case len(t.names) >= MaxStates:
		return 0, &CapacityError{"symbol table", MaxStates}
	case t.used+n+1 > symbolStorage:
		return 0, &CapacityError{"symbol storage", symbolStorage}
	}
	id := StateID(len(t.names))
	t.names = append(t.names, name)
	t.ids[name] = id
	t.used += n + 1
	return id, nil
}

// Lookup returns the id of an already interned name.
func (t *SymbolTable) Lookup(name string) (StateID, bool) {
	id, ok := t.ids[name]
	return id, ok
}

// Name returns the name of the given state, or "" if id is out of range.
func (t *SymbolTable) Name(id StateID) string {
	if id < 0 || int(id) >= len(t.names) {
		return ""
	}
	return t.names[id]
}

// Len returns the number of interned names.
func (t *SymbolTable) Len() int { return len(t.names) }

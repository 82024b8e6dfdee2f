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

// Package asm compiles Logic Mill rule text to vm programs, and back.
//
// Each rule takes one line of five whitespace separated fields:
//
//	currentState currentSymbol newState newSymbol move
//
//	field		description
//	-----		------------------------------------------------------------
//	currentState	state name, 1 to 32 characters, case sensitive
//	currentSymbol	single character under the head, '_' for a blank cell
//	newState	state to switch to
//	newSymbol	single character to write, '_' for a blank cell
//	move		L or R: move the head one cell to the left or to the right
//
// The machine starts in the INIT state and stops in the HALT state. At most
// 1024 distinct state names, INIT and HALT included, and 65536 rules are
// allowed.
//
// Comments:
//
// Comments start with "//" and run to the end of the line. They are allowed
// on a line of their own or right after the move field:
//
//	// unary increment
//	INIT | FIND | R
//	FIND | FIND | R	// skip ones
//	FIND _ HALT | R	// append one
//
// A comment marker directly attached to the move field is accepted ("R//
// note"), anything else after the move field is an error.
package asm

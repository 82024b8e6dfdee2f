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

// Package vm implements the Logic Mill, a deterministic Turing machine.
//
// Please visit https://mng.quest/ for more information about the Logic Mill
// and its puzzles.
//
// A Program is a list of transition rules over named states. It is usually
// built from rule text with the asm package. A Tape is a ring of cells,
// 1,048,576 at most, seeded with the input symbols starting at cell 0. An
// Instance runs a Program on a Tape, starting in the INIT state, until it
// reaches the HALT state, finds no rule for the current state and symbol
// (a dead end), or takes too many steps:
//
//	p, err := asm.Assemble("prog", strings.NewReader(rules))
//	...
//	t, _ := vm.NewTape(vm.MaxTapeSize)
//	t.Seed(vm.ParseTape("||||", false))
//	i, _ := vm.New(p, t)
//	out := i.Run()
//	if err := out.Err(); err != nil {
//		...
//	}
//	fmt.Println(t)
//
// Rules are matched in program order: should a program hold several rules for
// the same state and symbol, the first one wins.
package vm

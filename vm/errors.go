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
	"fmt"

	"github.com/pkg/errors"
)

// ErrTimeout is returned by Outcome.Err when the step limit was reached
// before the machine halted.
var ErrTimeout = errors.New("timed out")

// ErrInputTooLong is returned when seeding a tape with more symbols than it
// can hold.
var ErrInputTooLong = errors.New("tape input too long")

// CapacityError reports that one of the fixed limits of the machine was
// exceeded: number of states, state name length, symbol storage, number of
// instructions or tape size.
type CapacityError struct {
	What  string
	Limit int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("%s limit reached (%d)", e.What, e.Limit)
}

// IsCapacity returns true if err, or any error it wraps, is a
// *CapacityError.
func IsCapacity(err error) bool {
	var ce *CapacityError
	return errors.As(err, &ce)
}

// DeadEndError is the error form of a DeadEnd outcome: no instruction matches
// the current state and the symbol under the head.
type DeadEndError struct {
	Steps  int
	State  StateID
	Name   string
	Symbol Char
}

func (e *DeadEndError) Error() string {
	return fmt.Sprintf("unhandled state %s '%v'", e.Name, e.Symbol)
}

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

package main

import (
	"io"
	"strconv"

	"github.com/paiv/mng-mill/internal/ioerr"
	"github.com/paiv/mng-mill/vm"
)

// dumpMachine writes the final machine state to the specified io.Writer.
func dumpMachine(w io.Writer, i *vm.Instance, res vm.Outcome) error {
	ew := ioerr.NewWriter(w)
	field := func(name, value string) {
		ew.WriteString(name)
		ew.WriteByte('\t')
		ew.WriteString(value)
		ew.WriteByte('\n')
	}
	field("outcome", res.Status.String())
	field("steps", strconv.Itoa(res.Steps))
	field("state", res.StateName)
	field("symbol", res.Symbol.String())
	field("head", strconv.Itoa(i.Tape.Head()))
	field("tape", strconv.Itoa(i.Tape.Len()))
	return ew.Err
}

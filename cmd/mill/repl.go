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
	"fmt"
	"io"
	"strings"

	"github.com/paiv/mng-mill/asm"
	"github.com/paiv/mng-mill/vm"
	"github.com/peterh/liner"
	"github.com/pkg/errors"
)

const replHelp = `enter a tape to run the program on it, or one of:
  :program  list the program
  :steps    toggle step count reporting
  :quit     exit
`

// repl reads tapes from the terminal, one per line, and runs the program on
// each of them.
func (a *app) repl(prog *vm.Program) error {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	for {
		line, err := ln.Prompt("tape> ")
		if err == io.EOF || err == liner.ErrPromptAborted {
			fmt.Fprintln(a.stdout)
			return nil
		}
		if err != nil {
			return errors.Wrap(err, "prompt failed")
		}

		switch strings.TrimSpace(line) {
		case ":quit", ":q":
			return nil
		case ":help", ":h":
			io.WriteString(a.stdout, replHelp)
			continue
		case ":steps":
			a.opts.steps = !a.opts.steps
			fmt.Fprintf(a.stdout, "steps: %v\n", a.opts.steps)
			continue
		case ":program":
			if err = asm.DisassembleAll(prog, a.stdout); err != nil {
				return err
			}
			continue
		}
		ln.AppendHistory(line)

		i, res, err := a.runTape(prog, line)
		if err != nil {
			fmt.Fprintf(a.stderr, "error: %v\n", err)
			continue
		}
		if a.opts.dump {
			if err = dumpMachine(a.stderr, i, res); err != nil {
				return errors.Wrap(err, "dump")
			}
		}
		if err = a.report(res); err != nil {
			fmt.Fprintf(a.stderr, "error: %v\n", err)
			continue
		}
		if err = writeTape(a.stdout, i.Tape); err != nil {
			return err
		}
	}
}

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
	"context"
	"log/slog"
)

// Status is the way a run ended.
type Status int

// Run outcomes.
const (
	Halted   Status = iota // reached the HALT state
	DeadEnd                // no instruction for the current state and symbol
	TimedOut               // step limit reached
)

func (s Status) String() string {
	switch s {
	case Halted:
		return "halted"
	case DeadEnd:
		return "dead end"
	case TimedOut:
		return "timed out"
	}
	return "unknown"
}

// Outcome describes how a run ended. Steps is the number of instructions
// applied. State and Symbol are the current state and the symbol under the
// head when the run ended.
type Outcome struct {
	Status    Status
	Steps     int
	State     StateID
	StateName string
	Symbol    Char
}

// Err returns nil for a Halted outcome, a *DeadEndError for a dead end and
// ErrTimeout for a time out.
func (o Outcome) Err() error {
	switch o.Status {
	case Halted:
		return nil
	case DeadEnd:
		return &DeadEndError{Steps: o.Steps, State: o.State, Name: o.StateName, Symbol: o.Symbol}
	}
	return ErrTimeout
}

// Run runs the machine until it halts, runs into a dead end or reaches the
// step limit. On a dead end, the tape is left as it was before the failed
// lookup.
func (i *Instance) Run() Outcome {
	var (
		t     = i.Tape
		p     = i.Prog
		trace = i.logger != nil && i.logger.Enabled(context.Background(), slog.LevelDebug)
	)
	i.steps = 0
	if i.state == p.Halt {
		return i.outcome(Halted)
	}
	for i.steps < i.limit {
		c := t.Read(t.head)
		ins, ok := p.Lookup(i.state, c)
		if !ok {
			return i.outcome(DeadEnd)
		}
		if trace {
			i.logger.Debug("step",
				"n", i.steps,
				"head", t.head,
				"state", p.Symbols.Name(i.state),
				"symbol", c.String(),
				"next", p.Symbols.Name(ins.StateOut),
				"write", ins.CharOut.String(),
				"move", ins.Move.String())
		}
		t.cells[t.head] = ins.CharOut
		i.state = ins.StateOut
		t.Move(ins.Move)
		i.steps++
		if i.state == p.Halt {
			return i.outcome(Halted)
		}
	}
	return i.outcome(TimedOut)
}

func (i *Instance) outcome(s Status) Outcome {
	return Outcome{
		Status:    s,
		Steps:     i.steps,
		State:     i.state,
		StateName: i.StateName(),
		Symbol:    i.Tape.Read(i.Tape.head),
	}
}

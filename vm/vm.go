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
	"log/slog"

	"github.com/pkg/errors"
)

// Instance is a running machine: a Program, the Tape it works on and the
// current state.
type Instance struct {
	Prog   *Program
	Tape   *Tape
	state  StateID
	steps  int
	limit  int
	logger *slog.Logger
}

// Option interface
type Option func(*Instance) error

// StepLimit sets the maximum number of steps a call to Run may take. The
// default is MaxSteps.
func StepLimit(n int) Option {
	return func(i *Instance) error {
		if n <= 0 {
			return errors.Errorf("invalid step limit %d", n)
		}
		i.limit = n
		return nil
	}
}

// StartState sets the current state. Instances start in the program's INIT
// state.
func StartState(s StateID) Option {
	return func(i *Instance) error {
		if s < 0 || int(s) >= i.Prog.Symbols.Len() {
			return errors.Errorf("invalid state id %d", s)
		}
		i.state = s
		return nil
	}
}

// Logger sets the logger used to trace execution. Each step is logged at
// debug level; nothing is logged if the logger does not have debug enabled.
func Logger(l *slog.Logger) Option {
	return func(i *Instance) error { i.logger = l; return nil }
}

// SetOptions sets the provided options.
func (i *Instance) SetOptions(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(i); err != nil {
			return err
		}
	}
	return nil
}

// New creates a new machine running the given program on the given tape.
//
// The tape is owned by the instance until Run returns. The program is only
// read, so the same program may be used by several instances, one per tape.
func New(p *Program, t *Tape, opts ...Option) (*Instance, error) {
	if p == nil || t == nil {
		return nil, errors.New("nil program or tape")
	}
	i := &Instance{
		Prog:  p,
		Tape:  t,
		state: p.Init,
		limit: MaxSteps,
	}
	if err := i.SetOptions(opts...); err != nil {
		return nil, err
	}
	return i, nil
}

// State returns the current state.
func (i *Instance) State() StateID { return i.state }

// StateName returns the name of the current state.
func (i *Instance) StateName() string { return i.Prog.Symbols.Name(i.state) }

// Steps returns the number of steps taken by the last call to Run.
func (i *Instance) Steps() int { return i.steps }

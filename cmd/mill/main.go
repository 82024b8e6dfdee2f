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
	"log/slog"
	"os"

	"github.com/paiv/mng-mill/asm"
	"github.com/paiv/mng-mill/internal/ioerr"
	"github.com/paiv/mng-mill/internal/source"
	"github.com/paiv/mng-mill/vm"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// exit status
const (
	exitOK      = 0
	exitError   = 1
	exitDeadEnd = 2
)

type options struct {
	program     string
	tape        string
	output      string
	steps       bool
	interactive bool
	trace       bool
	dump        bool
	debug       bool
	config      string
	logFile     string
	logLevel    string
	stepLimit   int
	tapeSize    int
	blank       bool
}

// usageError is an error in the command line arguments.
type usageError string

func (e usageError) Error() string { return string(e) }

// statusError carries the exit status for an error.
type statusError struct {
	code int
	err  error
}

func (e *statusError) Error() string { return e.err.Error() }

type app struct {
	opts   options
	cfg    Config
	log    *slog.Logger
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

func newCommand(a *app) *cobra.Command {
	o := &a.opts
	cmd := &cobra.Command{
		Use:           "mill -p PROG [-t TAPE] [-o OUT] [-s]",
		Short:         "Logic Mill engine https://mng.quest/",
		Long: `Logic Mill engine https://mng.quest/

Runs the transition rules of PROG on TAPE and writes the final tape to OUT.
PROG, TAPE and OUT are file names, or "-" for the standard input or output.
PROG and TAPE may also be given as literal text.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.run(cmd)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&o.program, "program", "p", "", "program text or file")
	f.StringVarP(&o.tape, "tape", "t", "", "tape text or file")
	f.StringVarP(&o.output, "output", "o", "", "output file")
	f.BoolVarP(&o.steps, "steps", "s", false, "log steps taken")
	f.BoolVarP(&o.interactive, "interactive", "i", false, "read tapes from the terminal, one per line")
	f.BoolVar(&o.trace, "trace", false, "log every step")
	f.BoolVar(&o.dump, "dump", false, "dump the machine state upon exit")
	f.BoolVar(&o.debug, "debug", false, "print errors with stack traces")
	f.StringVar(&o.config, "config", "", "TOML configuration `file`")
	f.StringVar(&o.logFile, "log-file", "", "also write JSON logs to `file`")
	f.StringVar(&o.logLevel, "log-level", "", "log level: debug, info, warn or error")
	f.IntVar(&o.stepLimit, "steps-limit", vm.MaxSteps, "maximum number of steps")
	f.IntVar(&o.tapeSize, "tape-size", vm.MaxTapeSize, "tape size in cells")
	f.BoolVar(&o.blank, "underscore-blank", false, "read '_' in tape text as a blank cell")
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError(err.Error())
	})
	cmd.SetIn(a.stdin)
	cmd.SetOut(a.stdout)
	cmd.SetErr(a.stderr)
	return cmd
}

func (a *app) checkArgs() error {
	o := &a.opts
	if o.program == "" {
		return usageError("-p/--program: expected filename")
	}
	if o.tape == "" {
		if o.program == source.Stdio {
			return usageError("-t/--tape: expected filename")
		}
		if !o.interactive {
			if isTerminal(a.stdin) {
				o.interactive = true
			} else {
				o.tape = source.Stdio
			}
		}
	}
	if o.program == source.Stdio && o.tape == source.Stdio {
		return usageError("-t/--tape: conflicting filename")
	}
	if o.interactive && o.program == source.Stdio {
		return usageError("-i/--interactive: program cannot be read from stdin")
	}
	return nil
}

func (a *app) run(cmd *cobra.Command) (err error) {
	if err = a.checkArgs(); err != nil {
		return err
	}
	if a.cfg, err = loadConfig(a.opts.config); err != nil {
		return err
	}
	if err = a.cfg.override(cmd.Flags(), &a.opts); err != nil {
		return err
	}
	var closeLog func() error
	a.log, closeLog, err = newLogger(a.cfg.Log, a.stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	prog, err := a.assemble()
	if err != nil {
		return err
	}
	if a.opts.interactive {
		return a.repl(prog)
	}

	src, err := source.Open(a.opts.tape, a.stdin)
	if err != nil {
		return errors.Wrap(err, "-t/--tape")
	}
	text, err := source.ReadLine(src)
	src.Close()
	if err != nil {
		return errors.Wrap(err, "-t/--tape")
	}

	out, closeOut, err := source.Create(a.opts.output, a.stdout)
	if err != nil {
		return errors.Wrap(err, "-o/--output")
	}
	defer func() {
		if e := closeOut(); err == nil && e != nil {
			err = errors.Wrap(e, "-o/--output")
		}
	}()

	i, res, err := a.runTape(prog, text)
	if err != nil {
		return err
	}
	if a.opts.dump {
		if err = dumpMachine(a.stderr, i, res); err != nil {
			return errors.Wrap(err, "dump")
		}
	}
	if err = a.report(res); err != nil {
		return err
	}
	return writeTape(out, i.Tape)
}

func (a *app) assemble() (*vm.Program, error) {
	src, err := source.Open(a.opts.program, a.stdin)
	if err != nil {
		return nil, errors.Wrap(err, "-p/--program")
	}
	defer src.Close()
	prog, err := asm.Assemble(src.Name, src)
	if err != nil {
		return nil, errors.Wrap(err, "parse error")
	}
	a.log.Info("program loaded",
		"source", src.Name,
		"literal", src.Literal,
		"instructions", prog.Len(),
		"states", prog.Symbols.Len())
	return prog, nil
}

// runTape runs the program against a new tape seeded with text.
func (a *app) runTape(prog *vm.Program, text string) (*vm.Instance, vm.Outcome, error) {
	t, err := vm.NewTape(a.cfg.Limits.Tape)
	if err != nil {
		return nil, vm.Outcome{}, err
	}
	if err = t.Seed(vm.ParseTape(text, a.cfg.Tape.UnderscoreBlank)); err != nil {
		return nil, vm.Outcome{}, errors.Wrap(err, "-t/--tape")
	}
	opts := []vm.Option{vm.StepLimit(a.cfg.Limits.Steps)}
	if a.opts.trace {
		opts = append(opts, vm.Logger(a.log))
	}
	i, err := vm.New(prog, t, opts...)
	if err != nil {
		return nil, vm.Outcome{}, err
	}
	res := i.Run()
	a.log.Info("run complete",
		"outcome", res.Status.String(),
		"steps", res.Steps,
		"state", res.StateName,
		"head", t.Head())
	return i, res, nil
}

// report prints the step count and maps non halt outcomes to errors.
func (a *app) report(res vm.Outcome) error {
	switch err := res.Err(); {
	case err == nil:
		if a.opts.steps {
			fmt.Fprintf(a.stderr, "%d steps\n", res.Steps)
		}
		return nil
	case res.Status == vm.DeadEnd:
		return &statusError{exitDeadEnd, err}
	default:
		return &statusError{exitError, errors.Errorf("timed out after %d instructions", res.Steps)}
	}
}

func writeTape(w io.Writer, t *vm.Tape) error {
	ew := ioerr.NewWriter(w)
	ew.WriteString(t.String())
	ew.WriteByte('\n')
	return errors.Wrap(ew.Err, "-o/--output")
}

// Execute runs the command line and returns the exit status.
func Execute(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	a := &app{stdin: stdin, stdout: stdout, stderr: stderr}
	cmd := newCommand(a)
	cmd.SetArgs(args)
	err := cmd.Execute()
	if err == nil {
		return exitOK
	}
	code := exitError
	if se, ok := err.(*statusError); ok {
		code = se.code
	}
	if _, ok := errors.Cause(err).(usageError); ok {
		fmt.Fprintln(stderr, "usage:", cmd.Use)
	}
	if a.opts.debug {
		fmt.Fprintf(stderr, "error: %+v\n", err)
	} else {
		fmt.Fprintf(stderr, "error: %v\n", err)
	}
	return code
}

func main() {
	os.Exit(Execute(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

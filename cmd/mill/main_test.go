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
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"
)

const unaryInc = "INIT | FIND | R\nFIND | FIND | R\nFIND _ HALT | R\n"

func execute(stdin string, args ...string) (code int, stdout, stderr string) {
	var out, errOut bytes.Buffer
	code = Execute(args, strings.NewReader(stdin), &out, &errOut)
	return code, out.String(), errOut.String()
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	fn := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(fn, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return fn
}

func TestExecute(t *testing.T) {
	var tests = [...]struct {
		name   string
		stdin  string
		args   []string
		code   int
		stdout string
		stderr string
	}{
		{"literal", "", []string{"-p", unaryInc, "-t", "||||"}, exitOK, "|||||\n", ""},
		{"long flags", "", []string{"--program", unaryInc, "--tape", "||||"}, exitOK, "|||||\n", ""},
		{"tape from stdin", "||||\nignored\n", []string{"-p", unaryInc}, exitOK, "|||||\n", ""},
		{"tape dash", "||\n", []string{"-p", unaryInc, "-t", "-"}, exitOK, "|||\n", ""},
		{"program from stdin", unaryInc, []string{"-p", "-", "-t", "|"}, exitOK, "||\n", ""},
		{"steps", "", []string{"-p", unaryInc, "-t", "||||", "-s"}, exitOK, "|||||\n", "5 steps\n"},
		{"empty tape", "", []string{"-p", "INIT _ HALT x R", "-t", "-"}, exitOK, "x\n", ""},
		{"underscore", "", []string{"-p", "INIT _ HALT x R", "-t", "_a", "--underscore-blank"}, exitOK, "xa\n", ""},
		{"dead end", "", []string{"-p", "INIT | FIND | R", "-t", "||||", "-s"}, exitDeadEnd, "", "error: unhandled state FIND '|'\n"},
		{"timeout", "", []string{"-p", "INIT _ INIT _ R", "-t", "-", "--steps-limit", "10"}, exitError, "", "error: timed out after 10 instructions\n"},
		{"parse error", "", []string{"-p", "INIT | FIND | Q", "-t", "|"}, exitError, "", "error: parse error: <text>:1:15: invalid move instruction Q\n"},
		{"tape too long", "", []string{"-p", unaryInc, "-t", "|||||", "--tape-size", "4"}, exitError, "", "error: -t/--tape: 5 symbols for 4 cells: tape input too long\n"},
		{"bad tape size", "", []string{"-p", unaryInc, "-t", "|", "--tape-size", "0"}, exitError, "", "error: config: tape size must be between 1 and 1048576, got 0\n"},
		{"no program", "", []string{"-t", "||"}, exitError, "", "usage: mill -p PROG [-t TAPE] [-o OUT] [-s]\nerror: -p/--program: expected filename\n"},
		{"stdin program no tape", "", []string{"-p", "-"}, exitError, "", "usage: mill -p PROG [-t TAPE] [-o OUT] [-s]\nerror: -t/--tape: expected filename\n"},
		{"stdin conflict", "", []string{"-p", "-", "-t", "-"}, exitError, "", "usage: mill -p PROG [-t TAPE] [-o OUT] [-s]\nerror: -t/--tape: conflicting filename\n"},
	}
	for _, test := range tests {
		code, stdout, stderr := execute(test.stdin, test.args...)
		if code != test.code {
			t.Errorf("%s: expected exit status %d, got %d (%s)", test.name, test.code, code, stderr)
		}
		if stdout != test.stdout {
			t.Errorf("%s: expected output %q, got %q", test.name, test.stdout, stdout)
		}
		if stderr != test.stderr {
			t.Errorf("%s: expected stderr %q, got %q", test.name, test.stderr, stderr)
		}
	}
}

func TestExecute_files(t *testing.T) {
	prog := writeFile(t, "inc.mill", "// unary increment\n"+unaryInc)
	tape := writeFile(t, "tape.txt", "|||\n")
	out := filepath.Join(t.TempDir(), "out.txt")

	code, stdout, stderr := execute("", "-p", prog, "-t", tape, "-o", out)
	if code != exitOK {
		t.Fatalf("Exit status %d: %s", code, stderr)
	}
	if stdout != "" {
		t.Errorf("Unexpected output: %q", stdout)
	}
	b, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "||||\n" {
		t.Errorf("Expected ||||, got %q", b)
	}

	// parse errors are reported with the file name
	bad := writeFile(t, "bad.mill", "INIT | FIND | R\nFIND | FIND | R x\n")
	code, _, stderr = execute("", "-p", bad, "-t", tape)
	if code != exitError || !strings.Contains(stderr, bad+":2:17: unexpected token: x") {
		t.Errorf("Exit status %d: %s", code, stderr)
	}
}

func TestExecute_utf16(t *testing.T) {
	// UTF-16LE with BOM
	src := "INIT a HALT λ R\n"
	b := []byte{0xff, 0xfe}
	for _, r := range src {
		b = append(b, byte(r), byte(r>>8))
	}
	prog := writeFile(t, "utf16.mill", string(b))
	code, stdout, stderr := execute("", "-p", prog, "-t", "a")
	if code != exitOK {
		t.Fatalf("Exit status %d: %s", code, stderr)
	}
	if stdout != "λ\n" {
		t.Errorf("Expected λ, got %q", stdout)
	}
}

func TestExecute_config(t *testing.T) {
	cfg := writeFile(t, "mill.toml", `
[limits]
steps = 3
tape = 16

[tape]
underscore_blank = true
`)
	code, _, stderr := execute("", "--config", cfg, "-p", unaryInc, "-t", "||||")
	if code != exitError || stderr != "error: timed out after 3 instructions\n" {
		t.Errorf("Exit status %d: %s", code, stderr)
	}

	// flags override the configuration file
	code, stdout, stderr := execute("", "--config", cfg, "--steps-limit", "100", "-p", unaryInc, "-t", "||||")
	if code != exitOK || stdout != "|||||\n" {
		t.Errorf("Exit status %d: %s", code, stderr)
	}
	code, stdout, _ = execute("", "--config", cfg, "-p", "INIT _ HALT x R", "-t", "_")
	if code != exitOK || stdout != "x\n" {
		t.Errorf("underscore_blank: exit status %d, output %q", code, stdout)
	}

	bad := writeFile(t, "bad.toml", "[limits]\nstep = 3\n")
	code, _, stderr = execute("", "--config", bad, "-p", unaryInc, "-t", "|")
	if code != exitError || !strings.Contains(stderr, "unknown keys limits.step") {
		t.Errorf("Exit status %d: %s", code, stderr)
	}
}

func TestExecute_logging(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "mill.log")
	code, stdout, stderr := execute("", "-p", unaryInc, "-t", "||", "--trace", "--log-file", logFile)
	if code != exitOK || stdout != "|||\n" {
		t.Fatalf("Exit status %d: %s", code, stderr)
	}
	if n := strings.Count(stderr, "msg=step"); n != 3 {
		t.Errorf("Expected 3 steps traced, got %d:\n%s", n, stderr)
	}
	b, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatal(err)
	}
	if n := strings.Count(string(b), `"msg":"step"`); n != 3 {
		t.Errorf("Expected 3 steps in log file, got %d:\n%s", n, b)
	}
	if !strings.Contains(string(b), `"msg":"program loaded","source":"<text>","literal":true`) {
		t.Errorf("Missing program load in log file:\n%s", b)
	}

	code, _, stderr = execute("", "-p", unaryInc, "-t", "||", "--log-level", "info")
	if code != exitOK || !strings.Contains(stderr, "msg=\"run complete\" outcome=halted steps=3") {
		t.Errorf("Exit status %d: %s", code, stderr)
	}

	prog := writeFile(t, "inc.mill", unaryInc)
	code, _, stderr = execute("", "-p", prog, "-t", "||", "--log-level", "info")
	if code != exitOK || !strings.Contains(stderr, "source="+prog+" literal=false") {
		t.Errorf("Exit status %d: %s", code, stderr)
	}

	code, _, stderr = execute("", "-p", unaryInc, "-t", "||", "--log-level", "loud")
	if code != exitError || !strings.Contains(stderr, `invalid log level "loud"`) {
		t.Errorf("Exit status %d: %s", code, stderr)
	}
}

func TestExecute_dump(t *testing.T) {
	code, _, stderr := execute("", "-p", "INIT | FIND | R", "-t", "||", "--dump")
	if code != exitDeadEnd {
		t.Errorf("Expected exit status %d, got %d", exitDeadEnd, code)
	}
	expected := "outcome\tdead end\nsteps\t1\nstate\tFIND\nsymbol\t|\nhead\t1\ntape\t1048576\n"
	if !strings.HasPrefix(stderr, expected) {
		t.Errorf("Expected dump:\n%s\ngot:\n%s", expected, stderr)
	}
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestExecute_dumpFails(t *testing.T) {
	var out bytes.Buffer
	code := Execute([]string{"-p", unaryInc, "-t", "||", "--dump"}, strings.NewReader(""), &out, failWriter{})
	if code != exitError {
		t.Errorf("Expected exit status %d, got %d", exitError, code)
	}
	if out.Len() != 0 {
		t.Errorf("Expected no tape output, got %q", out.String())
	}
}

func TestRunTape_reuse(t *testing.T) {
	a := &app{cfg: defaultConfig()}
	var err error
	a.log, _, err = newLogger(a.cfg.Log, &bytes.Buffer{})
	if err != nil {
		t.Fatal(err)
	}
	a.opts.program = unaryInc
	a.stdin = strings.NewReader("")
	prog, err := a.assemble()
	if err != nil {
		t.Fatal(err)
	}
	for _, in := range []string{"", "|", "|||"} {
		i, res, err := a.runTape(prog, in)
		if err != nil {
			t.Fatal(err)
		}
		if in == "" {
			if res.Err() == nil {
				t.Errorf("Expected dead end on empty tape")
			}
			continue
		}
		if res.Err() != nil || i.Tape.String() != in+"|" {
			t.Errorf("%q: got %q, %v", in, i.Tape.String(), res.Err())
		}
	}
}

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

package source_test

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/paiv/mng-mill/internal/source"
)

func readAll(t *testing.T, s *source.Source) string {
	t.Helper()
	b, err := io.ReadAll(s)
	if err != nil {
		t.Fatal(err)
	}
	return string(b)
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()
	fn := filepath.Join(dir, "prog.mill")
	if err := os.WriteFile(fn, []byte("\xef\xbb\xbfINIT a HALT b R\n"), 0644); err != nil {
		t.Fatal(err)
	}

	s, err := source.Open(fn, nil)
	if err != nil {
		t.Fatal(err)
	}
	if s.Literal || s.Name != fn {
		t.Errorf("File: got name %s, literal %v", s.Name, s.Literal)
	}
	// UTF-8 BOM is dropped
	if txt := readAll(t, s); txt != "INIT a HALT b R\n" {
		t.Errorf("File: got %q", txt)
	}
	if err = s.Close(); err != nil {
		t.Error(err)
	}

	s, err = source.Open("INIT a HALT b R", nil)
	if err != nil {
		t.Fatal(err)
	}
	if !s.Literal || readAll(t, s) != "INIT a HALT b R" {
		t.Errorf("Literal text not used")
	}
	s.Close()

	s, err = source.Open(source.Stdio, strings.NewReader("stdin"))
	if err != nil {
		t.Fatal(err)
	}
	if readAll(t, s) != "stdin" || s.Name != "<stdin>" {
		t.Errorf("Stdin not used")
	}

	if _, err = source.Open(dir, nil); err == nil {
		t.Errorf("Directory: expected error")
	}
}

func TestReadLine(t *testing.T) {
	var tests = [...]struct{ in, out string }{
		{"", ""},
		{"abc", "abc"},
		{"abc\n", "abc"},
		{"abc\r\n", "abc"},
		{"abc\ndef\n", "abc"},
		{"\nabc", ""},
	}
	for _, test := range tests {
		got, err := source.ReadLine(strings.NewReader(test.in))
		if err != nil {
			t.Errorf("%q: %v", test.in, err)
			continue
		}
		if got != test.out {
			t.Errorf("%q: expected %q, got %q", test.in, test.out, got)
		}
	}
}

func TestCreate(t *testing.T) {
	var b bytes.Buffer
	for _, arg := range []string{"", source.Stdio} {
		w, done, err := source.Create(arg, &b)
		if err != nil {
			t.Fatal(err)
		}
		if w != &b {
			t.Errorf("%q: expected stdout", arg)
		}
		done()
	}

	fn := filepath.Join(t.TempDir(), "out.txt")
	w, done, err := source.Create(fn, &b)
	if err != nil {
		t.Fatal(err)
	}
	io.WriteString(w, "x\n")
	if err = done(); err != nil {
		t.Fatal(err)
	}
	if got, _ := os.ReadFile(fn); string(got) != "x\n" {
		t.Errorf("Expected x, got %q", got)
	}
}

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

// Package source opens the program and tape texts given on the command line.
//
// An argument is a file name, "-" for the standard input, or, if no such file
// can be opened, the text itself. Text is decoded from UTF-8, or UTF-16 when
// it starts with a byte order mark.
package source

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Stdio is the name of the standard input or output.
const Stdio = "-"

// Source is an opened text source.
type Source struct {
	io.Reader
	Name    string
	Literal bool // the argument was the text itself
	closer  io.Closer
}

// Close closes the underlying file, if any.
func (s *Source) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}

func decode(r io.Reader) io.Reader {
	return transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))
}

// Open opens the given argument for reading. The stdin reader is used for
// "-".
func Open(arg string, stdin io.Reader) (*Source, error) {
	if arg == Stdio {
		return &Source{Reader: decode(stdin), Name: "<stdin>"}, nil
	}
	f, err := os.Open(arg)
	if err != nil {
		if arg == "" {
			return nil, errors.Wrap(err, "open failed")
		}
		return &Source{Reader: decode(strings.NewReader(arg)), Name: "<text>", Literal: true}, nil
	}
	if st, err := f.Stat(); err == nil && st.IsDir() {
		f.Close()
		return nil, errors.Errorf("%s is a directory", arg)
	}
	return &Source{Reader: decode(f), Name: arg, closer: f}, nil
}

// ReadLine reads the first line of text, without its line terminator.
func ReadLine(r io.Reader) (string, error) {
	s, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", errors.Wrap(err, "read failed")
	}
	s = strings.TrimSuffix(s, "\n")
	return strings.TrimSuffix(s, "\r"), nil
}

// Create opens the given argument for writing. The stdout writer is used for
// "-" or an empty argument. The returned function closes the file, if any.
func Create(arg string, stdout io.Writer) (io.Writer, func() error, error) {
	if arg == "" || arg == Stdio {
		return stdout, func() error { return nil }, nil
	}
	f, err := os.Create(arg)
	if err != nil {
		return nil, nil, errors.Wrap(err, "create failed")
	}
	return f, f.Close, nil
}

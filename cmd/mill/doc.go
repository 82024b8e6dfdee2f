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

// The mill command line tool runs Logic Mill programs.
//
// See https://mng.quest/ for more information on the Logic Mill.
//
// Usage:
//
//	-p, --program PROG
//		  program text or file, "-" for stdin
//	-t, --tape TAPE
//		  tape text or file, "-" for stdin (the default)
//	-o, --output OUT
//		  output file, "-" for stdout (the default)
//	-s, --steps
//		  log steps taken
//	-i, --interactive
//		  read tapes from the terminal, one per line
//	--trace
//		  log every step
//	--dump
//		  dump the machine state upon exit
//	--debug
//		  print errors with stack traces
//	--config file
//		  TOML configuration file
//	--log-file file
//		  also write JSON logs to file
//	--log-level level
//		  log level: debug, info, warn or error (default warn)
//	--steps-limit int
//		  maximum number of steps (default 1000000)
//	--tape-size int
//		  tape size in cells (default 1048576)
//	--underscore-blank
//		  read '_' in tape text as a blank cell
//
// -p, -t: if the argument cannot be opened as a file, it is used as the text
// itself:
//
//	mill -p 'INIT | FIND | R
//	FIND | FIND | R
//	FIND _ HALT | R' -t '||||'
//
// The program and the tape cannot both be read from stdin. Only the first line
// of the tape text is used.
//
// -i: runs the program on every line entered, until :quit or end of input. This
// is the default when no tape is given and stdin is a terminal.
//
// --config: flags given on the command line take precedence over the settings
// of the configuration file:
//
//	[limits]
//	steps = 1000000
//	tape = 1048576
//
//	[tape]
//	underscore_blank = false
//
//	[log]
//	level = "warn"
//	file = ""
//
// Exit status is 0 when the machine halts, 2 when it runs into a dead end (no
// rule for the current state and symbol) and 1 for any other error, time outs
// included.
package main

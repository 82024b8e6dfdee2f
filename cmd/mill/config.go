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
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/paiv/mng-mill/vm"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
)

// Config holds the settings read from the configuration file.
type Config struct {
	Limits LimitsConfig `toml:"limits"`
	Tape   TapeConfig   `toml:"tape"`
	Log    LogConfig    `toml:"log"`
}

// LimitsConfig holds the machine limits.
type LimitsConfig struct {
	Steps int `toml:"steps"`
	Tape  int `toml:"tape"`
}

// TapeConfig holds the tape text settings.
type TapeConfig struct {
	UnderscoreBlank bool `toml:"underscore_blank"`
}

// LogConfig holds the logging settings.
type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

func defaultConfig() Config {
	return Config{
		Limits: LimitsConfig{
			Steps: vm.MaxSteps,
			Tape:  vm.MaxTapeSize,
		},
		Log: LogConfig{
			Level: "warn",
		},
	}
}

// loadConfig reads the configuration file at path. An empty path returns the
// default configuration.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, errors.Wrap(err, "config")
	}
	if keys := md.Undecoded(); len(keys) > 0 {
		names := make([]string, len(keys))
		for i, k := range keys {
			names[i] = k.String()
		}
		return cfg, errors.Errorf("config %s: unknown keys %s", path, strings.Join(names, ", "))
	}
	return cfg, cfg.validate()
}

func (c *Config) validate() error {
	if c.Limits.Steps <= 0 {
		return errors.Errorf("config: invalid step limit %d", c.Limits.Steps)
	}
	if c.Limits.Tape <= 0 || c.Limits.Tape > vm.MaxTapeSize {
		return errors.Errorf("config: tape size must be between 1 and %d, got %d", vm.MaxTapeSize, c.Limits.Tape)
	}
	return nil
}

// override applies the command line flags set by the user on top of the
// configuration file.
func (c *Config) override(f *pflag.FlagSet, o *options) error {
	if f.Changed("steps-limit") {
		c.Limits.Steps = o.stepLimit
	}
	if f.Changed("tape-size") {
		c.Limits.Tape = o.tapeSize
	}
	if f.Changed("underscore-blank") {
		c.Tape.UnderscoreBlank = o.blank
	}
	if f.Changed("log-level") {
		c.Log.Level = o.logLevel
	}
	if f.Changed("log-file") {
		c.Log.File = o.logFile
	}
	if o.trace {
		c.Log.Level = "debug"
	}
	return c.validate()
}

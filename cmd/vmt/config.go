// This file is part of hackvm - https://github.com/db47h/hackvm
//
// Copyright 2016 Denis Bernard <db047h@gmail.com>
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
	"os"
	"strconv"

	"github.com/db47h/hackvm/asm"
	"github.com/db47h/hackvm/cpu"
	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
)

const defaultConfigFile = "vmt.toml"

// Config holds the settings read from the configuration file.
type Config struct {
	Translate struct {
		Bootstrap bool `toml:"bootstrap"`
	} `toml:"translate"`
	Run struct {
		MaxCycles int64          `toml:"max_cycles"`
		Raw       bool           `toml:"raw"`
		Preset    map[string]int `toml:"preset"`
	} `toml:"run"`
}

func defaultConfig() *Config {
	c := new(Config)
	c.Translate.Bootstrap = true
	c.Run.MaxCycles = 10000000
	c.Run.Raw = true
	return c
}

// loadConfig reads the named configuration file on top of the defaults. A
// missing file is not an error unless it was explicitly requested.
func loadConfig(name string, explicit bool) (*Config, error) {
	c := defaultConfig()
	data, err := os.ReadFile(name)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return c, nil
		}
		return nil, errors.Wrap(err, "failed to read config file")
	}
	if err = toml.Unmarshal(data, c); err != nil {
		return nil, errors.Wrapf(err, "%s: failed to parse config file", name)
	}
	return c, nil
}

// presets returns the RAM presets as emulator options. Addresses are either
// predefined Hack symbols or decimal numbers.
func (c *Config) presets() ([]cpu.Option, error) {
	var opts []cpu.Option
	for k, v := range c.Run.Preset {
		addr, ok := asm.Symbols[k]
		if !ok {
			n, err := strconv.Atoi(k)
			if err != nil {
				return nil, errors.Errorf("preset: invalid address %q", k)
			}
			addr = n
		}
		if v < -32768 || v > 65535 {
			return nil, errors.Errorf("preset %s: value %d out of range", k, v)
		}
		opts = append(opts, cpu.Preset(addr, cpu.Word(v)))
	}
	return opts, nil
}

func (c *Config) hasPreset(addr int) bool {
	for k := range c.Run.Preset {
		if a, ok := asm.Symbols[k]; ok && a == addr {
			return true
		}
		if n, err := strconv.Atoi(k); err == nil && n == addr {
			return true
		}
	}
	return false
}

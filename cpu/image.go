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

package cpu

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/db47h/hackvm/internal/iox"
	"github.com/pkg/errors"
)

// Decode reads a program in .hack format: one instruction per line, written as
// 16 binary digits. Blank lines are ignored.
func Decode(r io.Reader) ([]Instruction, error) {
	var rom []Instruction
	s := bufio.NewScanner(r)
	line := 0
	for s.Scan() {
		line++
		t := strings.TrimSpace(s.Text())
		if t == "" {
			continue
		}
		if len(t) != 16 {
			return nil, errors.Errorf("line %d: invalid instruction %q", line, t)
		}
		var v Instruction
		for _, c := range t {
			switch c {
			case '0':
				v <<= 1
			case '1':
				v = v<<1 | 1
			default:
				return nil, errors.Errorf("line %d: invalid instruction %q", line, t)
			}
		}
		if len(rom) == MaxRAM {
			return nil, errors.Errorf("line %d: program too large", line)
		}
		rom = append(rom, v)
	}
	if err := s.Err(); err != nil {
		return nil, errors.Wrap(err, "read failed")
	}
	return rom, nil
}

// Encode writes a program to w in .hack format.
func Encode(w io.Writer, rom []Instruction) error {
	ew := iox.NewErrWriter(w)
	var b [17]byte
	b[16] = '\n'
	for _, v := range rom {
		for k := 15; k >= 0; k-- {
			b[k] = '0' + byte(v&1)
			v >>= 1
		}
		if _, err := ew.Write(b[:]); err != nil {
			return err
		}
	}
	return nil
}

// Load loads a program from file fileName.
func Load(fileName string) ([]Instruction, error) {
	f, err := os.Open(fileName)
	if err != nil {
		return nil, errors.Wrap(err, "open failed")
	}
	defer f.Close()
	rom, err := Decode(f)
	if err != nil {
		return nil, errors.Wrap(err, fileName)
	}
	return rom, nil
}

// Save saves a program to file fileName. The file is removed if any error
// occurs.
func Save(fileName string, rom []Instruction) (err error) {
	f, err := os.Create(fileName)
	if err != nil {
		return errors.Wrap(err, "create failed")
	}
	w := bufio.NewWriter(f)
	defer func() {
		if ferr := w.Flush(); err == nil && ferr != nil {
			err = errors.Wrap(ferr, "write failed")
		}
		if cerr := f.Close(); err == nil && cerr != nil {
			err = errors.Wrap(cerr, "close failed")
		}
		// delete file on error
		if err != nil {
			os.Remove(fileName)
		}
	}()
	return Encode(w, rom)
}

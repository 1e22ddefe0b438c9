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
	"io"
	"strconv"

	"github.com/db47h/hackvm/internal/iox"
	"github.com/pkg/errors"
)

// Memory map.
const (
	MaxRAM     = 1 << 15
	Screen     = 16384 // base address of the screen memory map
	ScreenSize = 8192
	KBD        = 24576 // keyboard register

	stackBase = 256
)

// Instance represents a Hack computer.
type Instance struct {
	PC     int           // Program Counter
	A      Word          // Address register
	D      Word          // Data register
	ROM    []Instruction // Instruction memory
	RAM    []Word        // Data memory
	cycles int64
	halted bool
	kbd    func() Word
}

// Option interface
type Option func(*Instance) error

// RAMSize sets the data memory size in words. It will not erase the memory,
// but data may be lost if set to a smaller size. The default is 32768 words.
func RAMSize(size int) Option {
	return func(i *Instance) error {
		if size <= 0 || size > MaxRAM {
			return errors.Errorf("invalid RAM size %d", size)
		}
		if size <= len(i.RAM) {
			i.RAM = i.RAM[:size]
		} else {
			t := make([]Word, size)
			copy(t, i.RAM)
			i.RAM = t
		}
		return nil
	}
}

// Preset stores v at RAM address addr.
func Preset(addr int, v Word) Option {
	return func(i *Instance) error {
		if addr < 0 || addr >= len(i.RAM) {
			return errors.Errorf("preset: address %d out of range", addr)
		}
		i.RAM[addr] = v
		return nil
	}
}

// Keyboard binds the function that returns the code of the key currently
// pressed. It is called whenever the program reads the KBD register.
func Keyboard(f func() Word) Option {
	return func(i *Instance) error {
		i.kbd = f
		return nil
	}
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

// New creates a new Hack computer running the given program.
//
// Options will be set by calling SetOptions.
func New(rom []Instruction, opts ...Option) (*Instance, error) {
	i := &Instance{
		ROM: rom,
		RAM: make([]Word, MaxRAM),
	}
	if err := i.SetOptions(opts...); err != nil {
		return nil, err
	}
	return i, nil
}

// Cycles returns the number of instructions executed by the last call to Run.
func (i *Instance) Cycles() int64 {
	return i.cycles
}

// Halted returns true if the program has reached a halt loop.
func (i *Instance) Halted() bool {
	return i.halted
}

// Stack returns the VM stack, i.e. RAM[256:SP]. Note that value changes will
// be reflected in RAM. It returns nil if SP does not point above the stack
// base.
func (i *Instance) Stack() []Word {
	sp := int(i.RAM[0])
	if sp <= stackBase || sp > len(i.RAM) {
		return nil
	}
	return i.RAM[stackBase:sp]
}

func dumpSlice(w io.Writer, a []Word) {
	for k, v := range a {
		if k > 0 {
			w.Write([]byte{' '})
		}
		io.WriteString(w, strconv.Itoa(int(v)))
	}
}

var pointerNames = [...]string{"SP", "LCL", "ARG", "THIS", "THAT"}

// Dump writes the CPU registers, VM pointers and VM stack to the specified
// io.Writer.
func (i *Instance) Dump(w io.Writer) error {
	ew := iox.NewErrWriter(w)
	io.WriteString(ew, "PC: "+strconv.Itoa(i.PC)+" A: "+strconv.Itoa(int(i.A))+" D: "+strconv.Itoa(int(i.D)))
	io.WriteString(ew, " cycles: "+strconv.FormatInt(i.cycles, 10)+"\n")
	for k, n := range pointerNames {
		if k > 0 {
			ew.Write([]byte{' '})
		}
		io.WriteString(ew, n+": "+strconv.Itoa(int(i.RAM[k])))
	}
	io.WriteString(ew, "\ntemp: ")
	dumpSlice(ew, i.RAM[5:13])
	io.WriteString(ew, "\nstack: ")
	dumpSlice(ew, i.Stack())
	ew.Write([]byte{'\n'})
	return ew.Err
}

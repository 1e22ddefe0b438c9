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

package asm

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/scanner"

	"github.com/db47h/hackvm/cpu"
	"github.com/db47h/hackvm/internal/iox"
)

// comp mnemonics. The first name of each entry is the canonical one, the others
// are accepted aliases.
var comps = [...]struct {
	bits  uint16
	names []string
}{
	{0x2A, []string{"0"}},
	{0x3F, []string{"1"}},
	{0x3A, []string{"-1"}},
	{0x0C, []string{"D"}},
	{0x30, []string{"A"}},
	{0x70, []string{"M"}},
	{0x0D, []string{"!D"}},
	{0x31, []string{"!A"}},
	{0x71, []string{"!M"}},
	{0x0F, []string{"-D"}},
	{0x33, []string{"-A"}},
	{0x73, []string{"-M"}},
	{0x1F, []string{"D+1", "1+D"}},
	{0x37, []string{"A+1", "1+A"}},
	{0x77, []string{"M+1", "1+M"}},
	{0x0E, []string{"D-1"}},
	{0x32, []string{"A-1"}},
	{0x72, []string{"M-1"}},
	{0x02, []string{"D+A", "A+D"}},
	{0x42, []string{"D+M", "M+D"}},
	{0x13, []string{"D-A"}},
	{0x53, []string{"D-M"}},
	{0x07, []string{"A-D"}},
	{0x47, []string{"M-D"}},
	{0x00, []string{"D&A", "A&D"}},
	{0x40, []string{"D&M", "M&D"}},
	{0x15, []string{"D|A", "A|D"}},
	{0x55, []string{"D|M", "M|D"}},
}

var dests = [...]string{"", "M", "D", "MD", "A", "AM", "AD", "AMD"}

var jumps = [...]string{"", "JGT", "JEQ", "JGE", "JLT", "JNE", "JLE", "JMP"}

var (
	compIndex = make(map[string]uint16)
	compNames = make(map[uint16]string)
	jumpIndex = make(map[string]uint16)
)

func init() {
	for _, c := range comps {
		for _, n := range c.names {
			compIndex[n] = c.bits
		}
		compNames[c.bits] = c.names[0]
	}
	for i, j := range jumps[1:] {
		jumpIndex[j] = uint16(i + 1)
	}
}

// ErrorEntry is a positioned assembly error.
type ErrorEntry struct {
	Pos scanner.Position
	Msg string
}

func (e *ErrorEntry) Error() string {
	return e.Pos.String() + ": " + e.Msg
}

// ErrAsm is returned by Assemble. It holds up to 10 errors.
type ErrAsm []ErrorEntry

func (e ErrAsm) Error() string {
	var b strings.Builder
	for i := range e {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(e[i].Error())
	}
	return b.String()
}

// Assemble compiles assembly read from the supplied io.Reader and returns the
// resulting program and error if any.
//
// Then name parameter is used only in error messages to name the source of the
// error. If the io.Reader is a file, name should be the file name.
//
// The returned error, if not nil, can safely be cast to an ErrAsm value that
// will contain up to 10 entries, unless reading from r failed.
func Assemble(name string, r io.Reader) ([]cpu.Instruction, error) {
	p := newParser()
	if err := p.Parse(name, r); err != nil {
		return nil, err
	}
	return p.rom, nil
}

// Disassemble writes a disassembly of the instruction at position pc in the
// given slice to the specified io.Writer and returns the position of the next
// instruction and any write error.
func Disassemble(rom []cpu.Instruction, pc int, w io.Writer) (next int, err error) {
	ew, _ := w.(*iox.ErrWriter)
	if ew == nil {
		ew = iox.NewErrWriter(w)
	}
	ins := rom[pc]
	if ins.IsA() {
		io.WriteString(ew, "@")
		io.WriteString(ew, strconv.Itoa(int(ins.Value())))
		return pc + 1, ew.Err
	}
	if d := ins.Dest(); d != 0 {
		io.WriteString(ew, dests[d])
		ew.Write([]byte{'='})
	}
	if n, ok := compNames[ins.Comp()]; ok {
		io.WriteString(ew, n)
	} else {
		fmt.Fprintf(ew, "?%07b", ins.Comp())
	}
	if j := ins.Jump(); j != 0 {
		ew.Write([]byte{';'})
		io.WriteString(ew, jumps[j])
	}
	return pc + 1, ew.Err
}

// DisassembleAll writes a disassembly of all instructions in the given slice to
// the specified io.Writer. The base argument specifies the real address of the
// first instruction (rom[0]). It will return any write error.
func DisassembleAll(rom []cpu.Instruction, base int, w io.Writer) error {
	ew := iox.NewErrWriter(w)
	for pc := 0; pc < len(rom); {
		fmt.Fprintf(ew, "% 6d\t", base+pc)
		pc, _ = Disassemble(rom, pc, ew)
		ew.Write([]byte{'\n'})
		if ew.Err != nil {
			return ew.Err
		}
	}
	return nil
}

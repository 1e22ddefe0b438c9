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

package codegen

import (
	"strconv"

	"github.com/db47h/hackvm/vmcode"
	"github.com/pkg/errors"
)

type mode int

// addressing modes
const (
	immediate mode = iota // the index itself
	direct                // fixed base + index
	indirect              // RAM[register] + index
	symbolic              // <file>.<index>
)

type addressing struct {
	mode mode
	base int    // direct
	reg  string // indirect
	size int    // max index + 1 for immediate values
}

var segments = [...]addressing{
	vmcode.Constant: {mode: immediate, size: vmcode.MaxConstant + 1},
	vmcode.Local:    {mode: indirect, reg: "LCL"},
	vmcode.Argument: {mode: indirect, reg: "ARG"},
	vmcode.This:     {mode: indirect, reg: "THIS"},
	vmcode.That:     {mode: indirect, reg: "THAT"},
	vmcode.Temp:     {mode: direct, base: 5},
	vmcode.Pointer:  {mode: direct, base: 3},
	vmcode.Static:   {mode: symbolic},
}

func (w *Writer) resolve(seg vmcode.Segment, index int) (addressing, error) {
	if seg < 0 || int(seg) >= len(segments) {
		return addressing{}, errors.Errorf("unknown segment %v", seg)
	}
	if index < 0 {
		return addressing{}, errors.Errorf("%v: negative index %d", seg, index)
	}
	a := segments[seg]
	if a.size > 0 && index >= a.size {
		return addressing{}, errors.Errorf("%v: index %d out of range", seg, index)
	}
	if a.mode == symbolic && w.file == "" {
		return addressing{}, ErrNoFileName
	}
	return a, nil
}

// address returns the code that loads the address of a memory segment entry
// in A. It may use D.
func (w *Writer) address(a addressing, index int) []string {
	idx := strconv.Itoa(index)
	switch a.mode {
	case direct:
		return []string{"@" + strconv.Itoa(a.base+index)}
	case indirect:
		return []string{"@" + idx, "D=A", "@" + a.reg, "A=D+M"}
	case symbolic:
		return []string{"@" + w.file + "." + idx}
	}
	panic("address: bad addressing mode")
}

func (w *Writer) push(seg vmcode.Segment, index int) ([]string, error) {
	a, err := w.resolve(seg, index)
	if err != nil {
		return nil, err
	}
	var lines []string
	if a.mode == immediate {
		lines = []string{"@" + strconv.Itoa(index), "D=A"}
	} else {
		lines = append(w.address(a, index), "D=M")
	}
	return append(lines, "@SP", "A=M", "M=D", "@SP", "M=M+1"), nil
}

// pop stages the popped value in R13 and the destination address in R14,
// since computing the address of an indirect segment entry needs both A and D.
func (w *Writer) pop(seg vmcode.Segment, index int) ([]string, error) {
	a, err := w.resolve(seg, index)
	if err != nil {
		return nil, err
	}
	if a.mode == immediate {
		return nil, errors.Errorf("cannot pop to %v", seg)
	}
	lines := []string{"@SP", "A=M-1", "D=M", "@R13", "M=D", "@SP", "M=M-1"}
	lines = append(lines, w.address(a, index)...)
	return append(lines, "D=A", "@R14", "M=D", "@R13", "D=M", "@R14", "A=M", "M=D"), nil
}

// WritePushPop writes the assembly code for a push or pop command.
func (w *Writer) WritePushPop(kind vmcode.Kind, seg vmcode.Segment, index int) error {
	var (
		lines []string
		err   error
	)
	switch kind {
	case vmcode.Push:
		lines, err = w.push(seg, index)
	case vmcode.Pop:
		lines, err = w.pop(seg, index)
	default:
		err = errors.Errorf("%v is not a push or pop command", kind)
	}
	if err != nil {
		return err
	}
	return w.emit(lines)
}

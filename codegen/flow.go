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

// label returns the assembly symbol for a VM label: <function>$<label> in a
// function, $<file>$<label> outside of any function.
//
// Function names and VM labels never contain '$'. The generated symbols differ
// from each other by the number and position of '$':
//
//	<function>             function entry points
//	<function>$<label>     labels in functions
//	<caller>$ret$<n>       return addresses
//	$<file>$<label>        labels outside of any function
//	$<op>_<name>_<n>       comparisons
func (w *Writer) label(l string) (string, error) {
	if !vmcode.IsIdentifier(l) {
		return "", errors.Errorf("invalid label %q", l)
	}
	if w.function != "" {
		return w.function + "$" + l, nil
	}
	if w.file == "" {
		return "", ErrNoFileName
	}
	return "$" + w.file + "$" + l, nil
}

// WriteLabel writes a label declaration.
func (w *Writer) WriteLabel(l string) error {
	s, err := w.label(l)
	if err != nil {
		return err
	}
	return w.emit([]string{"(" + s + ")"})
}

// WriteGoto writes an unconditional jump to label l.
func (w *Writer) WriteGoto(l string) error {
	s, err := w.label(l)
	if err != nil {
		return err
	}
	return w.emit([]string{"@" + s, "0;JMP"})
}

// WriteIf pops the top of the stack and jumps to label l if it is not zero.
func (w *Writer) WriteIf(l string) error {
	s, err := w.label(l)
	if err != nil {
		return err
	}
	return w.emit([]string{"@SP", "AM=M-1", "D=M", "@" + s, "D;JNE"})
}

// WriteFunction writes the entry point of function name with nLocals local
// variables initialized to 0. Subsequent labels are scoped to that function.
func (w *Writer) WriteFunction(name string, nLocals int) error {
	if !vmcode.IsIdentifier(name) {
		return errors.Errorf("invalid function name %q", name)
	}
	if nLocals < 0 {
		return errors.Errorf("function %s: negative local count %d", name, nLocals)
	}
	lines := []string{"(" + name + ")"}
	if nLocals > 0 {
		lines = append(lines, "@SP", "A=M")
		for i := 0; i < nLocals; i++ {
			lines = append(lines, "M=0", "A=A+1")
		}
		lines = append(lines, "D=A", "@SP", "M=D")
	}
	if err := w.emit(lines); err != nil {
		return err
	}
	w.function = name
	return nil
}

func pushReg(reg string, addr bool) []string {
	if addr {
		return []string{"@" + reg, "D=A", "@SP", "A=M", "M=D", "@SP", "M=M+1"}
	}
	return []string{"@" + reg, "D=M", "@SP", "A=M", "M=D", "@SP", "M=M+1"}
}

// WriteCall writes a call to function name with nArgs arguments already
// pushed onto the stack.
func (w *Writer) WriteCall(name string, nArgs int) error {
	if !vmcode.IsIdentifier(name) {
		return errors.Errorf("invalid function name %q", name)
	}
	if nArgs < 0 {
		return errors.Errorf("call %s: negative argument count %d", name, nArgs)
	}
	caller := w.function
	if caller == "" {
		caller = name
	}
	ret := caller + "$ret$" + strconv.Itoa(w.calls)

	lines := pushReg(ret, true)
	for _, r := range [...]string{"LCL", "ARG", "THIS", "THAT"} {
		lines = append(lines, pushReg(r, false)...)
	}
	lines = append(lines,
		"@SP", "D=M", "@"+strconv.Itoa(nArgs+5), "D=D-A", "@ARG", "M=D",
		"@SP", "D=M", "@LCL", "M=D",
		"@"+name, "0;JMP",
		"("+ret+")")
	if err := w.emit(lines); err != nil {
		return err
	}
	w.calls++
	return nil
}

// WriteReturn writes a return from the current function.
func (w *Writer) WriteReturn() error {
	lines := []string{
		"@LCL", "D=M", "@R13", "M=D", // frame
		"@5", "A=D-A", "D=M", "@R14", "M=D", // return address
		"@SP", "AM=M-1", "D=M", "@ARG", "A=M", "M=D",
		"@ARG", "D=M+1", "@SP", "M=D",
	}
	for _, r := range [...]string{"THAT", "THIS", "ARG", "LCL"} {
		lines = append(lines, "@R13", "AM=M-1", "D=M", "@"+r, "M=D")
	}
	lines = append(lines, "@R14", "A=M", "0;JMP")
	return w.emit(lines)
}

// WriteInit writes the bootstrap code: it sets SP to 256 and calls Sys.init.
// It must be the first code written to the output stream.
func (w *Writer) WriteInit() error {
	if err := w.emit([]string{"@256", "D=A", "@SP", "M=D"}); err != nil {
		return err
	}
	return w.WriteCall("Sys.init", 0)
}

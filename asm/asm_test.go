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

package asm_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/db47h/hackvm/asm"
	"github.com/db47h/hackvm/cpu"
)

func TestAssemble(t *testing.T) {
	code := `
	// sum = i + j
	@i          // variable 16
	D=M
	@j          // variable 17
	D=D+M
	@sum        // variable 18
	M=D
(LOOP)
	@LOOP
	0;JMP
	@i          // same variable again
	AM=M-1
	MD=M+D      // commutative alias
	@KBD
	@R13
	D;JLE
`
	rom, err := asm.Assemble("test", strings.NewReader(code))
	if err != nil {
		t.Fatal(err)
	}
	expected := []cpu.Instruction{
		16,
		0xFC10, // 111 1 110000 010 000
		17,
		0xF090, // 111 1 000010 010 000
		18,
		0xE308, // 111 0 001100 001 000
		6,
		0xEA87, // 111 0 101010 000 111
		16,
		0xFCA8, // 111 1 110010 101 000
		cpu.NewC(0x42, cpu.DestM|cpu.DestD, 0),
		24576,
		13,
		0xE306, // 111 0 001100 000 110
	}
	if len(rom) != len(expected) {
		t.Fatalf("got %d instructions, expected %d", len(rom), len(expected))
	}
	for i := range rom {
		if rom[i] != expected[i] {
			t.Errorf("%d: got %016b, expected %016b", i, rom[i], expected[i])
		}
	}
}

// check some errors. We're not checking the messages, rather that they point at
// the correct place.
func TestAssemble_errors(t *testing.T) {
	code := `@32768
(LOOP)
(LOOP)
(SP)
  D=X
AMM=D
0;JMP2
@1abc
(unterminated
@
`
	_, err := asm.Assemble("test_errors", strings.NewReader(code))
	if err == nil {
		t.Fatal("expected errors")
	}
	errs, ok := err.(asm.ErrAsm)
	if !ok {
		t.Fatalf("bad error type %T", err)
	}
	lines := []int{1, 3, 4, 5, 6, 7, 8, 9, 10}
	if len(errs) != len(lines) {
		t.Fatalf("expected %d errors, got %d:\n%v", len(lines), len(errs), err)
	}
	for i, e := range errs {
		if e.Pos.Line != lines[i] {
			t.Errorf("error %q reported on line %d, expected %d", e.Msg, e.Pos.Line, lines[i])
		}
	}
	if errs[3].Pos.Column != 3 {
		t.Errorf("bad column for %q: %d", errs[3].Msg, errs[3].Pos.Column)
	}
}

func TestDisassemble(t *testing.T) {
	code := "@7\nD=A\n@SP\nA=M\nM=D\n@SP\nM=M+1\nAMD=D|M;JNE\n0;JMP\n"
	rom, err := asm.Assemble("roundtrip", strings.NewReader(code))
	if err != nil {
		t.Fatal(err)
	}
	var b bytes.Buffer
	for pc := 0; pc < len(rom); {
		pc, err = asm.Disassemble(rom, pc, &b)
		if err != nil {
			t.Fatal(err)
		}
		b.WriteByte('\n')
	}
	expected := strings.Replace(code, "@SP", "@0", -1)
	if b.String() != expected {
		t.Errorf("got:\n%s\nexpected:\n%s", b.String(), expected)
	}
}

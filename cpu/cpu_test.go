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

package cpu_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/db47h/hackvm/asm"
	"github.com/db47h/hackvm/cpu"
)

type W []cpu.Word

func runAsm(t *testing.T, name, code string, maxCycles int64, opts ...cpu.Option) (*cpu.Instance, error) {
	rom, err := asm.Assemble(name, strings.NewReader(code))
	if err != nil {
		t.Fatalf("%s: %v", name, err)
	}
	i, err := cpu.New(rom, opts...)
	if err != nil {
		t.Fatalf("%s: %v", name, err)
	}
	return i, i.Run(maxCycles)
}

func TestALU(t *testing.T) {
	alu := []struct {
		comp uint16
		name string
		f    func(x, y cpu.Word) cpu.Word
	}{
		{0x2A, "0", func(x, y cpu.Word) cpu.Word { return 0 }},
		{0x3F, "1", func(x, y cpu.Word) cpu.Word { return 1 }},
		{0x3A, "-1", func(x, y cpu.Word) cpu.Word { return -1 }},
		{0x0C, "D", func(x, y cpu.Word) cpu.Word { return x }},
		{0x30, "A", func(x, y cpu.Word) cpu.Word { return y }},
		{0x0D, "!D", func(x, y cpu.Word) cpu.Word { return ^x }},
		{0x31, "!A", func(x, y cpu.Word) cpu.Word { return ^y }},
		{0x0F, "-D", func(x, y cpu.Word) cpu.Word { return -x }},
		{0x33, "-A", func(x, y cpu.Word) cpu.Word { return -y }},
		{0x1F, "D+1", func(x, y cpu.Word) cpu.Word { return x + 1 }},
		{0x37, "A+1", func(x, y cpu.Word) cpu.Word { return y + 1 }},
		{0x0E, "D-1", func(x, y cpu.Word) cpu.Word { return x - 1 }},
		{0x32, "A-1", func(x, y cpu.Word) cpu.Word { return y - 1 }},
		{0x02, "D+A", func(x, y cpu.Word) cpu.Word { return x + y }},
		{0x13, "D-A", func(x, y cpu.Word) cpu.Word { return x - y }},
		{0x07, "A-D", func(x, y cpu.Word) cpu.Word { return y - x }},
		{0x00, "D&A", func(x, y cpu.Word) cpu.Word { return x & y }},
		{0x15, "D|A", func(x, y cpu.Word) cpu.Word { return x | y }},
	}
	inputs := [][2]cpu.Word{{5, 3}, {-1, 7}, {32767, 1}, {-32768, -1}, {0, 0}, {0x5555, -0x5556}}
	for _, op := range alu {
		for _, in := range inputs {
			x, y := in[0], in[1]
			if got, exp := cpu.ALU(x, y, op.comp), op.f(x, y); got != exp {
				t.Errorf("%s with D=%d A=%d: got %d, expected %d", op.name, x, y, got, exp)
			}
			// the a-bit must not change the computation
			if got, exp := cpu.ALU(x, y, op.comp|cpu.CompA), op.f(x, y); got != exp {
				t.Errorf("%s (a=1) with D=%d M=%d: got %d, expected %d", op.name, x, y, got, exp)
			}
		}
	}
}

const sum = `
	// sum = 1 + 2 + ... + 10
	@10
	D=A
	@n
	M=D
	@sum
	M=0
(LOOP)
	@n
	D=M
	@END
	D;JEQ
	@sum
	M=D+M
	@n
	M=M-1
	@LOOP
	0;JMP
(END)
	@END
	0;JMP
`

func TestRun(t *testing.T) {
	i, err := runAsm(t, "sum", sum, 10000)
	if err != nil {
		t.Fatalf("%+v", err)
	}
	if !i.Halted() {
		t.Error("program did not halt")
	}
	if i.RAM[17] != 55 {
		t.Errorf("sum: expected 55, got %d", i.RAM[17])
	}
	if i.RAM[16] != 0 {
		t.Errorf("n: expected 0, got %d", i.RAM[16])
	}
	if i.PC != 16 {
		t.Errorf("bad PC %d, expected 16", i.PC)
	}

	// running past the end of ROM
	i, err = runAsm(t, "end", "@3\nD=A\n@0\nM=D\n", 0)
	if err != nil {
		t.Fatalf("%+v", err)
	}
	if i.Halted() || i.PC != 4 || i.RAM[0] != 3 || i.D != 3 || i.A != 0 {
		t.Errorf("bad state: halted: %v, PC: %d, RAM[0]: %d, D: %d, A: %d", i.Halted(), i.PC, i.RAM[0], i.D, i.A)
	}
	if i.Cycles() != 4 {
		t.Errorf("expected 4 cycles, got %d", i.Cycles())
	}
}

func TestRun_errors(t *testing.T) {
	// not a halt loop: D changes
	_, err := runAsm(t, "cycles", "(L)\n@L\nD=D+1;JMP\n", 100)
	if err == nil || !strings.Contains(err.Error(), "cycle limit") {
		t.Errorf("expected cycle limit error, got %v", err)
	}
	i, err := runAsm(t, "range", "@200\nM=1\n", 0, cpu.RAMSize(100))
	if err == nil {
		t.Error("expected out of range write error")
	}
	if i.PC != 1 {
		t.Errorf("PC should point to the faulty instruction, got %d", i.PC)
	}
	_, err = runAsm(t, "range", "@200\nD=M\n", 0, cpu.RAMSize(100))
	if err == nil {
		t.Error("expected out of range read error")
	}
	if _, err = cpu.New(nil, cpu.Preset(cpu.MaxRAM, 1)); err == nil {
		t.Error("expected preset error")
	}
	if _, err = cpu.New(nil, cpu.RAMSize(0)); err == nil {
		t.Error("expected RAM size error")
	}
}

func TestKeyboard(t *testing.T) {
	var polls int
	kbd := func() cpu.Word { polls++; return 'A' }
	i, err := runAsm(t, "kbd", "@KBD\nD=M\n@R0\nM=D\n@KBD\nD=A\n", 0, cpu.Keyboard(kbd))
	if err != nil {
		t.Fatalf("%+v", err)
	}
	if i.RAM[0] != 'A' {
		t.Errorf("expected %d in R0, got %d", 'A', i.RAM[0])
	}
	if polls != 1 {
		t.Errorf("keyboard polled %d times, expected 1", polls)
	}

	k := cpu.NewKeyReader(strings.NewReader("x"))
	for !k.EOF() {
		time.Sleep(time.Millisecond)
	}
	if c := k.Poll(); c != 'x' {
		t.Errorf("expected key %d, got %d", 'x', c)
	}
	if c := k.Poll(); c != 0 {
		t.Errorf("key not released, got %d", c)
	}
}

func TestStack(t *testing.T) {
	i, err := cpu.New(nil, cpu.Preset(0, 259), cpu.Preset(256, 1), cpu.Preset(257, -2), cpu.Preset(258, 3))
	if err != nil {
		t.Fatal(err)
	}
	stk := i.Stack()
	exp := W{1, -2, 3}
	if len(stk) != len(exp) {
		t.Fatalf("expected stack %d, got %d", exp, stk)
	}
	for k := range exp {
		if stk[k] != exp[k] {
			t.Fatalf("expected stack %d, got %d", exp, stk)
		}
	}
	var b bytes.Buffer
	if err = i.Dump(&b); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(b.String(), "SP: 259 LCL: 0") || !strings.HasSuffix(b.String(), "stack: 1 -2 3\n") {
		t.Errorf("bad dump:\n%s", b.String())
	}
}

func TestImage(t *testing.T) {
	rom := []cpu.Instruction{0, 0x7FFF, cpu.NewC(0x2A, 0, 7), 0xFFFF}
	var b bytes.Buffer
	if err := cpu.Encode(&b, rom); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(b.String(), "0000000000000000\n0111111111111111\n1110101010000111\n") {
		t.Errorf("bad encoding:\n%s", b.String())
	}
	got, err := cpu.Decode(&b)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != len(rom) {
		t.Fatalf("expected %d instructions, got %d", len(rom), len(got))
	}
	for k := range rom {
		if got[k] != rom[k] {
			t.Errorf("%d: expected %016b, got %016b", k, rom[k], got[k])
		}
	}
	if _, err = cpu.Decode(strings.NewReader("0101\n")); err == nil {
		t.Error("expected error on short line")
	}
	if _, err = cpu.Decode(strings.NewReader("\n000000000000000x\n")); err == nil || !strings.Contains(err.Error(), "line 2") {
		t.Errorf("expected error on line 2, got %v", err)
	}
}

func TestRenderScreen(t *testing.T) {
	i, err := cpu.New(nil, cpu.Preset(cpu.Screen, 1), cpu.Preset(cpu.Screen+cpu.ScreenSize-1, -32768))
	if err != nil {
		t.Fatal(err)
	}
	var b bytes.Buffer
	if err = i.RenderScreen(&b, 64, false); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSuffix(b.String(), "\n"), "\n")
	// 8×16 pixel blocks
	if len(lines) != 16 || len(lines[0]) != 64 {
		t.Fatalf("bad screen size %dx%d", len(lines[0]), len(lines))
	}
	if lines[0] != "#"+strings.Repeat(" ", 63) {
		t.Errorf("bad first line %q", lines[0])
	}
	if lines[15] != strings.Repeat(" ", 63)+"#" {
		t.Errorf("bad last line %q", lines[15])
	}
	for _, l := range lines[1:15] {
		if strings.TrimSpace(l) != "" {
			t.Errorf("unexpected pixels in %q", l)
		}
	}
}

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

// Package asm provides utility functions to assemble and disassemble Hack
// machine code.
//
// Source code is line oriented: each line holds at most one instruction or
// label definition. White space is ignored and comments start with "//" and
// run to the end of the line.
//
// A-instructions load a 15 bits value or the address of a symbol in the A
// register:
//
//	@42
//	@LOOP
//	@i
//
// C-instructions compute a value, store it and optionally jump:
//
//	dest=comp;jump
//
// where either dest or jump may be omitted. dest is any combination of the
// letters A, D and M (M is the memory cell at address A). jump is one of JGT,
// JEQ, JGE, JLT, JNE, JLE or JMP. The supported computations are:
//
//	0  1  -1  D  A  M  !D  !A  !M  -D  -A  -M
//	D+1  A+1  M+1  D-1  A-1  M-1
//	D+A  D+M  D-A  D-M  A-D  M-D  D&A  D&M  D|A  D|M
//
// The commutative forms A+D, M+D, A&D, M&D, A|D, M|D, 1+D, 1+A and 1+M are
// accepted as aliases. The disassembler always prints the canonical form.
//
// Labels:
//
// Labels are defined by enclosing them in parentheses and name the address of
// the next instruction. They can be used before their definition:
//
//	@END
//	0;JMP
//	(END)
//
// Symbols are sequences of letters, digits, '_', '.', '$' and ':' that do not
// start with a digit. Any symbol that is neither predefined nor defined as a
// label is a variable and gets allocated a RAM address starting at 16, in
// order of first appearance.
//
// Predefined symbols:
//
//	SP LCL ARG THIS THAT	0 1 2 3 4
//	R0 - R15		0 - 15
//	SCREEN			16384
//	KBD			24576
package asm

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

// Instruction is a 16 bits Hack machine instruction.
type Instruction uint16

// Word is the data type stored in RAM and registers.
type Word int16

// C-instruction fields.
const (
	CPrefix Instruction = 0xE000 // bits 15-13 of any C-instruction

	// comp field, 7 bits including the a-bit
	CompA  = 1 << 6 // y = M instead of A
	CompZX = 1 << 5 // x = 0
	CompNX = 1 << 4 // x = !x
	CompZY = 1 << 3 // y = 0
	CompNY = 1 << 2 // y = !y
	CompF  = 1 << 1 // out = x + y if set, x & y otherwise
	CompNO = 1 << 0 // out = !out

	// dest field
	DestM = 1 << 0
	DestD = 1 << 1
	DestA = 1 << 2

	// jump field
	JumpGT = 1 << 0
	JumpEQ = 1 << 1
	JumpLT = 1 << 2
)

// IsA returns true if i is an A-instruction.
func (i Instruction) IsA() bool { return i&0x8000 == 0 }

// Value returns the value loaded by an A-instruction.
func (i Instruction) Value() Word { return Word(i & 0x7FFF) }

// Comp returns the 7 bits comp field of a C-instruction.
func (i Instruction) Comp() uint16 { return uint16(i>>6) & 0x7F }

// Dest returns the dest field of a C-instruction.
func (i Instruction) Dest() uint16 { return uint16(i>>3) & 0x07 }

// Jump returns the jump field of a C-instruction.
func (i Instruction) Jump() uint16 { return uint16(i) & 0x07 }

// NewC builds a C-instruction from its fields.
func NewC(comp, dest, jump uint16) Instruction {
	return CPrefix | Instruction(comp&0x7F)<<6 | Instruction(dest&0x07)<<3 | Instruction(jump&0x07)
}

// ALU computes the output of the Hack ALU for inputs x, y and control bits c.
// The a-bit of c is ignored.
func ALU(x, y Word, c uint16) Word {
	if c&CompZX != 0 {
		x = 0
	}
	if c&CompNX != 0 {
		x = ^x
	}
	if c&CompZY != 0 {
		y = 0
	}
	if c&CompNY != 0 {
		y = ^y
	}
	var out Word
	if c&CompF != 0 {
		out = x + y
	} else {
		out = x & y
	}
	if c&CompNO != 0 {
		out = ^out
	}
	return out
}

func jumps(out Word, j uint16) bool {
	return (j&JumpLT != 0 && out < 0) ||
		(j&JumpEQ != 0 && out == 0) ||
		(j&JumpGT != 0 && out > 0)
}

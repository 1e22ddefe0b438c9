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

// Package cpu implements an emulator for the 16-bit Hack computer.
//
// The machine has separate instruction (ROM) and data (RAM) memories, a data
// register D and an address register A. The memory cell addressed by A is
// referred to as M. Instructions come in two forms:
//
//	0vvv vvvv vvvv vvvv	A-instruction: load the 15 bits value v into A
//	111a cccc ccdd djjj	C-instruction: dest=comp;jump
//
// The comp field drives the ALU with six control bits (zx nx zy ny f no) applied
// to x = D and y = A (a=0) or y = M (a=1). The dest bits select which of A, D
// and M receive the result and the jump bits select a jump to the address in A
// when the result is negative, zero and/or positive.
//
// RAM addresses 16384-24575 are the screen memory map (512x256 pixels, 16
// pixels per word) and address 24576 holds the code of the key currently
// pressed, or 0.
//
// Programs usually end with an infinite loop:
//
//	(END)
//	@END
//	0;JMP
//
// Run recognizes this construct and stops cleanly when it reaches it.
package cpu

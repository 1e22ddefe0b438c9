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
	"fmt"
	"os"
	"strings"

	"github.com/db47h/hackvm/asm"
)

// Assembles a short program that pushes 7 on the VM stack then halts, and
// disassembles it.
func ExampleAssemble() {
	code := `
	// push constant 7
	@7
	D=A
	@SP
	AM=M+1
	A=A-1
	M=D
(HALT)
	@HALT
	0;JMP
`

	rom, err := asm.Assemble("push7", strings.NewReader(code))
	if err != nil {
		fmt.Println(err)
		return
	}

	asm.DisassembleAll(rom, 0, os.Stdout)

	// Output:
	//      0	@7
	//      1	D=A
	//      2	@0
	//      3	AM=M+1
	//      4	A=A-1
	//      5	M=D
	//      6	@6
	//      7	0;JMP
}

// Variables are allocated from address 16 in order of first use. Labels are
// not variables, even when used before being defined.
func ExampleAssemble_variables() {
	code := `
	@x
	@y
	@END
	@x
(END)
	@z
`
	rom, err := asm.Assemble("vars", strings.NewReader(code))
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(rom)

	// Output:
	// [16 17 4 16 18]
}

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

// comparison families, each with its own label counter.
const (
	eqFamily = iota
	ltFamily
	gtFamily
	familyCount
)

// comparison describes how to compute x op y, x being the value pushed first.
type comparison struct {
	prefix string
	jump   string // jump condition on x - y, for operands of the same sign
	xNeg   bool   // result when x < 0 <= y
	yNeg   bool   // result when y < 0 <= x
}

var comparisons = [familyCount]comparison{
	eqFamily: {"EQ", "JEQ", false, false},
	ltFamily: {"LT", "JLT", true, false},
	gtFamily: {"GT", "JGT", false, true},
}

// compare returns the code for comparison c, with labels numbered n, and the
// next label number for that comparison.
//
// The operands are left in place until the result is known. When their signs
// differ, the result is given by the signs alone. Otherwise x - y cannot
// overflow and its sign gives the result.
func compare(c comparison, n int) ([]string, int) {
	// '$' cannot start a VM label or function name.
	sfx := "_" + strconv.Itoa(n)
	xNonNeg := "$" + c.prefix + "_X_NONNEG" + sfx
	same := "$" + c.prefix + "_SAME_SIGN" + sfx
	lFalse := "$" + c.prefix + "_FALSE" + sfx
	lTrue := "$" + c.prefix + "_TRUE" + sfx
	end := "$" + c.prefix + "_END" + sfx
	result := func(r bool) string {
		if r {
			return "@" + lTrue
		}
		return "@" + lFalse
	}

	lines := []string{
		"@SP", "A=M-1", "A=A-1", "D=M", // x
		"@" + xNonNeg, "D;JGE",
		"@SP", "A=M-1", "D=M", // x < 0, test y
		"@" + same, "D;JLT",
		result(c.xNeg), "0;JMP",
		"(" + xNonNeg + ")",
		"@SP", "A=M-1", "D=M", // x >= 0, test y
		"@" + same, "D;JGE",
		result(c.yNeg), "0;JMP",
		"(" + same + ")",
		"@SP", "A=M-1", "D=M", "A=A-1", "D=M-D", // x - y
		"@" + lTrue, "D;" + c.jump,
		"(" + lFalse + ")",
		"@SP", "A=M-1", "A=A-1", "M=0",
		"@" + end, "0;JMP",
		"(" + lTrue + ")",
		"@SP", "A=M-1", "A=A-1", "M=-1",
		"(" + end + ")",
		"@SP", "M=M-1",
	}
	return lines, n + 1
}

// binary combines the two values on top of the stack with comp, where D holds
// the top value and M the one below, then pops one slot.
func binary(comp string) []string {
	return []string{"@SP", "A=M-1", "D=M", "A=A-1", "M=" + comp, "@SP", "M=M-1"}
}

func unary(comp string) []string {
	return []string{"@SP", "A=M-1", "M=" + comp}
}

var (
	comps = map[vmcode.Op]string{
		vmcode.Add: "D+M",
		vmcode.Sub: "M-D",
		vmcode.And: "D&M",
		vmcode.Or:  "D|M",
		vmcode.Neg: "-M",
		vmcode.Not: "!M",
	}
	families = map[vmcode.Op]int{
		vmcode.Eq: eqFamily,
		vmcode.Lt: ltFamily,
		vmcode.Gt: gtFamily,
	}
)

// WriteArithmetic writes the assembly code for the given arithmetic or logical
// operation.
func (w *Writer) WriteArithmetic(op vmcode.Op) error {
	if f, ok := families[op]; ok {
		lines, next := compare(comparisons[f], w.counters[f])
		if err := w.emit(lines); err != nil {
			return err
		}
		w.counters[f] = next
		return nil
	}
	comp, ok := comps[op]
	if !ok {
		return errors.Errorf("unknown arithmetic operation %v", op)
	}
	if op.Binary() {
		return w.emit(binary(comp))
	}
	return w.emit(unary(comp))
}

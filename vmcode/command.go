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

// Package vmcode classifies VM code text into typed commands.
//
// A VM program is a sequence of lines, each holding at most one command.
// Comments start with "//" and run to the end of the line. The recognized
// commands are:
//
//	add sub neg eq gt lt and or not      arithmetic and logical
//	push <segment> <index>               memory access
//	pop <segment> <index>
//	label <name>                         branching
//	goto <name>
//	if-goto <name>
//	function <name> <nLocals>            functions
//	call <name> <nArgs>
//	return
//
// Segments are constant, local, argument, this, that, temp, pointer and static.
package vmcode

import (
	"strconv"
	"text/scanner"
)

// Kind discriminates commands.
type Kind int

// Command kinds.
const (
	Arithmetic Kind = iota
	Push
	Pop
	Label
	Goto
	If
	Function
	Call
	Return
)

var kindNames = [...]string{
	"arithmetic",
	"push",
	"pop",
	"label",
	"goto",
	"if-goto",
	"function",
	"call",
	"return",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
	return kindNames[k]
}

// Op is an arithmetic or logical operation.
type Op int

// Arithmetic and logical operations.
const (
	Add Op = iota
	Sub
	Neg
	Eq
	Gt
	Lt
	And
	Or
	Not
)

var opNames = [...]string{"add", "sub", "neg", "eq", "gt", "lt", "and", "or", "not"}

func (o Op) String() string {
	if o < 0 || int(o) >= len(opNames) {
		return "op(" + strconv.Itoa(int(o)) + ")"
	}
	return opNames[o]
}

// Binary returns true if the operation consumes two stack values.
func (o Op) Binary() bool {
	return o != Neg && o != Not
}

// Segment is a named VM memory segment.
type Segment int

// Memory segments.
const (
	Constant Segment = iota
	Local
	Argument
	This
	That
	Temp
	Pointer
	Static
)

var segmentNames = [...]string{"constant", "local", "argument", "this", "that", "temp", "pointer", "static"}

func (s Segment) String() string {
	if s < 0 || int(s) >= len(segmentNames) {
		return "segment(" + strconv.Itoa(int(s)) + ")"
	}
	return segmentNames[s]
}

var (
	kindIndex    = make(map[string]Kind)
	opIndex      = make(map[string]Op)
	segmentIndex = make(map[string]Segment)
)

func init() {
	for i, n := range kindNames {
		kindIndex[n] = Kind(i)
	}
	delete(kindIndex, "arithmetic")
	for i, n := range opNames {
		opIndex[n] = Op(i)
	}
	for i, n := range segmentNames {
		segmentIndex[n] = Segment(i)
	}
}

// LookupOp returns the operation named s.
func LookupOp(s string) (Op, bool) {
	o, ok := opIndex[s]
	return o, ok
}

// LookupSegment returns the segment named s.
func LookupSegment(s string) (Segment, bool) {
	seg, ok := segmentIndex[s]
	return seg, ok
}

// Command is a classified VM command.
type Command struct {
	Kind    Kind
	Op      Op      // Arithmetic
	Segment Segment // Push, Pop
	// Index is the segment index for Push and Pop, the local variable count
	// for Function and the argument count for Call.
	Index int
	Name  string // Label, Goto, If, Function, Call
	Pos   scanner.Position
}

// String returns the command in VM code form.
func (c Command) String() string {
	switch c.Kind {
	case Arithmetic:
		return c.Op.String()
	case Push, Pop:
		return c.Kind.String() + " " + c.Segment.String() + " " + strconv.Itoa(c.Index)
	case Label, Goto, If:
		return c.Kind.String() + " " + c.Name
	case Function, Call:
		return c.Kind.String() + " " + c.Name + " " + strconv.Itoa(c.Index)
	}
	return c.Kind.String()
}

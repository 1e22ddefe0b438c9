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

package vmcode

import (
	"bufio"
	"io"
	"strconv"
	"strings"
	"text/scanner"
	"unicode"

	"github.com/pkg/errors"
)

// MaxConstant is the largest value accepted by "push constant".
const MaxConstant = 1<<15 - 1

const maxErrors = 10

// ErrorEntry is a positioned syntax error.
type ErrorEntry struct {
	Pos scanner.Position
	Msg string
}

func (e *ErrorEntry) Error() string {
	return e.Pos.String() + ": " + e.Msg
}

// ErrSyntax is returned by Parse. It holds up to 10 errors.
type ErrSyntax []ErrorEntry

func (e ErrSyntax) Error() string {
	var b strings.Builder
	for i := range e {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(e[i].Error())
	}
	return b.String()
}

type field struct {
	text string
	col  int
}

// split splits a line into white space separated fields, stripping any
// trailing comment.
func split(line string) []field {
	if i := strings.Index(line, "//"); i >= 0 {
		line = line[:i]
	}
	var fs []field
	start := -1
	for i, r := range line {
		if unicode.IsSpace(r) {
			if start >= 0 {
				fs = append(fs, field{line[start:i], start + 1})
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		fs = append(fs, field{line[start:], start + 1})
	}
	return fs
}

// IsIdentifier reports whether s is a valid label or function name: a
// non-empty sequence of letters, digits, '_', '.' and ':' that does not start
// with a digit.
func IsIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_' || r == '.' || r == ':':
		case r < unicode.MaxASCII && unicode.IsLetter(r):
		case r >= '0' && r <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}

type parser struct {
	name string
	cmds []Command
	errs ErrSyntax
	pos  scanner.Position
}

func (p *parser) errorf(f field, format string, args ...interface{}) {
	pos := p.pos
	pos.Column = f.col
	pos.Offset += f.col - 1
	p.errs = append(p.errs, ErrorEntry{pos, errors.Errorf(format, args...).Error()})
}

func (p *parser) index(f field) (int, bool) {
	for _, r := range f.text {
		if r < '0' || r > '9' {
			p.errorf(f, "invalid index %s", f.text)
			return 0, false
		}
	}
	n, err := strconv.Atoi(f.text)
	if err != nil {
		p.errorf(f, "invalid index %s", f.text)
		return 0, false
	}
	return n, true
}

var arity = [...]int{
	Arithmetic: 1,
	Push:       3,
	Pop:        3,
	Label:      2,
	Goto:       2,
	If:         2,
	Function:   3,
	Call:       3,
	Return:     1,
}

func (p *parser) parseLine(fs []field) {
	kw := fs[0]
	c := Command{Pos: p.pos}
	c.Pos.Column = kw.col
	c.Pos.Offset += kw.col - 1

	if op, ok := LookupOp(kw.text); ok {
		c.Kind, c.Op = Arithmetic, op
	} else if k, ok := kindIndex[kw.text]; ok {
		c.Kind = k
	} else {
		p.errorf(kw, "unknown command %s", kw.text)
		return
	}
	if n := arity[c.Kind]; len(fs) != n {
		p.errorf(kw, "%s: expected %d argument(s), got %d", kw.text, n-1, len(fs)-1)
		return
	}

	var ok bool
	switch c.Kind {
	case Push, Pop:
		if c.Segment, ok = LookupSegment(fs[1].text); !ok {
			p.errorf(fs[1], "unknown segment %s", fs[1].text)
			return
		}
		if c.Index, ok = p.index(fs[2]); !ok {
			return
		}
		if c.Segment == Constant {
			if c.Kind == Pop {
				p.errorf(fs[1], "cannot pop to constant")
				return
			}
			if c.Index > MaxConstant {
				p.errorf(fs[2], "constant %d out of range", c.Index)
				return
			}
		}
	case Label, Goto, If, Function, Call:
		if !IsIdentifier(fs[1].text) {
			p.errorf(fs[1], "invalid identifier %s", fs[1].text)
			return
		}
		c.Name = fs[1].text
		if c.Kind == Function || c.Kind == Call {
			if c.Index, ok = p.index(fs[2]); !ok {
				return
			}
		}
	}
	p.cmds = append(p.cmds, c)
}

// Parse reads VM code from r and returns the list of commands it contains.
//
// The name parameter is used only in positions to name the source of a
// command or error. If the io.Reader is a file, name should be the file name.
//
// Syntax errors are returned as an ErrSyntax value.
func Parse(name string, r io.Reader) ([]Command, error) {
	p := &parser{name: name}
	p.pos.Filename = name
	s := bufio.NewScanner(r)
	for s.Scan() && len(p.errs) < maxErrors {
		p.pos.Line++
		p.pos.Column = 1
		line := s.Text()
		if fs := split(line); len(fs) > 0 {
			p.parseLine(fs)
		}
		p.pos.Offset += len(line) + 1
	}
	if err := s.Err(); err != nil {
		return nil, errors.Wrapf(err, "%s: read failed", name)
	}
	if len(p.errs) > 0 {
		return nil, p.errs
	}
	return p.cmds, nil
}

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

package asm

import (
	"bufio"
	"io"
	"strconv"
	"strings"
	"text/scanner"
	"unicode"

	"github.com/db47h/hackvm/cpu"
	"github.com/pkg/errors"
)

const (
	maxErrors = 10
	varBase   = 16
)

// Symbols holds the predefined symbols.
var Symbols = map[string]int{
	"SP":     0,
	"LCL":    1,
	"ARG":    2,
	"THIS":   3,
	"THAT":   4,
	"SCREEN": cpu.Screen,
	"KBD":    cpu.KBD,
}

func init() {
	for i := 0; i < 16; i++ {
		Symbols["R"+strconv.Itoa(i)] = i
	}
}

// IsSymbol reports whether s is a valid symbol: a non-empty sequence of
// letters, digits, '_', '.', '$' and ':' that does not start with a digit.
func IsSymbol(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_' || r == '.' || r == '$' || r == ':':
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

type labelSite struct {
	pos     scanner.Position
	address int
}

type label struct {
	labelSite
	uses []labelSite
}

type parser struct {
	rom    []cpu.Instruction
	labels map[string]*label
	order  []string // symbols in order of first appearance
	errs   ErrAsm
	pos    scanner.Position
}

func newParser() *parser {
	p := new(parser)
	p.labels = make(map[string]*label)
	return p
}

func (p *parser) errorf(format string, args ...interface{}) {
	p.errs = append(p.errs, ErrorEntry{p.pos, errors.Errorf(format, args...).Error()})
}

func (p *parser) lookup(name string) *label {
	lbl := p.labels[name]
	if lbl == nil {
		lbl = &label{
			// use current position as valid temp position
			labelSite{p.pos, -1},
			nil,
		}
		p.labels[name] = lbl
		p.order = append(p.order, name)
	}
	return lbl
}

func (p *parser) defineLabel(name string) {
	if !IsSymbol(name) {
		p.errorf("invalid label name: %s", name)
		return
	}
	if _, ok := Symbols[name]; ok {
		p.errorf("label redefinition: %s is a predefined symbol", name)
		return
	}
	lbl := p.lookup(name)
	if lbl.address != -1 {
		p.errorf("label redefinition: %s, previous definition here: %s", name, lbl.pos)
		return
	}
	lbl.address = len(p.rom)
	lbl.pos = p.pos
}

func (p *parser) useSymbol(name string) {
	if v, ok := Symbols[name]; ok {
		p.rom = append(p.rom, cpu.Instruction(v))
		return
	}
	if !IsSymbol(name) {
		p.errorf("invalid symbol: %s", name)
		return
	}
	lbl := p.lookup(name)
	lbl.uses = append(lbl.uses, labelSite{p.pos, len(p.rom)})
	p.rom = append(p.rom, 0)
}

func (p *parser) aInstruction(arg string) {
	if arg == "" {
		p.errorf("missing A-instruction argument")
		return
	}
	if arg[0] < '0' || arg[0] > '9' {
		p.useSymbol(arg)
		return
	}
	n, err := strconv.ParseUint(arg, 10, 16)
	if err != nil || n > 0x7FFF {
		p.errorf("invalid A-instruction argument: %s", arg)
		return
	}
	p.rom = append(p.rom, cpu.Instruction(n))
}

func parseDest(s string) (uint16, bool) {
	var d uint16
	for _, c := range s {
		var b uint16
		switch c {
		case 'A':
			b = cpu.DestA
		case 'D':
			b = cpu.DestD
		case 'M':
			b = cpu.DestM
		default:
			return 0, false
		}
		if d&b != 0 {
			return 0, false
		}
		d |= b
	}
	return d, s != ""
}

func (p *parser) cInstruction(s string) {
	var dest, jump uint16
	if i := strings.IndexByte(s, '='); i >= 0 {
		var ok bool
		if dest, ok = parseDest(s[:i]); !ok {
			p.errorf("invalid destination: %s", s[:i])
			return
		}
		s = s[i+1:]
	}
	if i := strings.IndexByte(s, ';'); i >= 0 {
		var ok bool
		if jump, ok = jumpIndex[s[i+1:]]; !ok {
			p.errorf("invalid jump: %s", s[i+1:])
			return
		}
		s = s[:i]
	}
	comp, ok := compIndex[s]
	if !ok {
		p.errorf("invalid computation: %s", s)
		return
	}
	p.rom = append(p.rom, cpu.NewC(comp, dest, jump))
}

// Parse does the parsing and compiling.
func (p *parser) Parse(name string, r io.Reader) error {
	p.pos.Filename = name
	s := bufio.NewScanner(r)
	for s.Scan() && len(p.errs) < maxErrors {
		line := s.Text()
		p.pos.Line++
		p.pos.Column = 1
		if i := strings.Index(line, "//"); i >= 0 {
			line = line[:i]
		}
		if i := strings.IndexFunc(line, func(r rune) bool { return !unicode.IsSpace(r) }); i >= 0 {
			p.pos.Column = i + 1
			p.parseLine(strings.Join(strings.Fields(line), ""))
		}
		p.pos.Offset += len(s.Text()) + 1
	}
	if err := s.Err(); err != nil {
		return errors.Wrapf(err, "%s: read failed", name)
	}

	// resolve labels and allocate variables
	next := varBase
	for _, n := range p.order {
		l := p.labels[n]
		if l.address == -1 {
			if len(l.uses) == 0 {
				continue
			}
			l.address = next
			next++
		}
		for _, u := range l.uses {
			p.rom[u.address] = cpu.Instruction(l.address)
		}
	}
	if len(p.rom) > cpu.MaxRAM {
		p.errorf("program too large: %d instructions", len(p.rom))
	}
	if len(p.errs) > 0 {
		return p.errs
	}
	return nil
}

func (p *parser) parseLine(s string) {
	switch s[0] {
	case '(':
		if s[len(s)-1] != ')' {
			p.errorf("unterminated label definition: %s", s)
			return
		}
		p.defineLabel(s[1 : len(s)-1])
	case '@':
		p.aInstruction(s[1:])
	default:
		p.cInstruction(s)
	}
}

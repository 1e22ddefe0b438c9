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

import (
	"bufio"
	"io"
	"sync/atomic"
)

// Hack key codes for non printable keys.
const (
	KeyNewLine   Word = 128
	KeyBackspace Word = 129
	KeyLeft      Word = 130
	KeyUp        Word = 131
	KeyRight     Word = 132
	KeyDown      Word = 133
	KeyHome      Word = 134
	KeyEnd       Word = 135
	KeyPageUp    Word = 136
	KeyPageDown  Word = 137
	KeyInsert    Word = 138
	KeyDelete    Word = 139
	KeyEsc       Word = 140
)

// KeyCode returns the Hack key code for the given rune, or 0 if the rune has
// no Hack equivalent.
func KeyCode(r rune) Word {
	switch {
	case r == '\r' || r == '\n':
		return KeyNewLine
	case r == 8 || r == 127:
		return KeyBackspace
	case r == 27:
		return KeyEsc
	case r >= 32 && r < 127:
		return Word(r)
	}
	return 0
}

// KeyReader feeds runes read from an io.Reader to the KBD register.
//
// A background goroutine reads the input and records the last key typed.
// Poll, which is meant to be bound with the Keyboard option, returns that key
// once and then reports the key as released until another one is typed.
type KeyReader struct {
	key atomic.Int32
	eof atomic.Bool
}

// NewKeyReader starts reading keys from r.
func NewKeyReader(r io.Reader) *KeyReader {
	k := new(KeyReader)
	rr, ok := r.(io.RuneReader)
	if !ok {
		rr = bufio.NewReader(r)
	}
	go k.read(rr)
	return k
}

func (k *KeyReader) read(r io.RuneReader) {
	for {
		c, _, err := r.ReadRune()
		if err != nil {
			k.eof.Store(true)
			return
		}
		if code := KeyCode(c); code != 0 {
			k.key.Store(int32(code))
		}
	}
}

// Poll returns the code of the pending key press, or 0.
func (k *KeyReader) Poll() Word {
	return Word(k.key.Swap(0))
}

// EOF returns true once the underlying reader is exhausted.
func (k *KeyReader) EOF() bool {
	return k.eof.Load()
}

// ScreenPixel returns true if the pixel at column x and row y of the screen
// is black.
func (i *Instance) ScreenPixel(x, y int) bool {
	addr := Screen + y*32 + x/16
	if x < 0 || x >= 512 || y < 0 || y >= 256 || addr >= len(i.RAM) {
		return false
	}
	return uint16(i.RAM[addr])&(1<<uint(x%16)) != 0
}

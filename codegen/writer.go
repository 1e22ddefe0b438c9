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
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/db47h/hackvm/internal/iox"
	"github.com/db47h/hackvm/vmcode"
	"github.com/pkg/errors"
)

// ErrNoFileName is returned when translating a static segment access or a
// label outside of any function before any call to SetFileName.
var ErrNoFileName = errors.New("static access with no file name set")

// ErrClosed is returned by operations on a closed Writer.
var ErrClosed = errors.New("writer closed")

// Writer translates VM commands to Hack assembly.
type Writer struct {
	bw       *bufio.Writer
	ew       *iox.ErrWriter
	c        io.Closer
	file     string
	counters [familyCount]int
	function string
	calls    int
	closed   bool
}

// New returns a new Writer emitting assembly to w. If w is an io.Closer, it
// will be closed by Close.
func New(w io.Writer) *Writer {
	bw := bufio.NewWriter(w)
	c, _ := w.(io.Closer)
	return &Writer{bw: bw, ew: iox.NewErrWriter(bw), c: c}
}

// Create creates or truncates the named file and returns a Writer emitting
// assembly to it.
func Create(fileName string) (*Writer, error) {
	f, err := os.Create(fileName)
	if err != nil {
		return nil, errors.Wrap(err, "create failed")
	}
	return New(f), nil
}

// SetFileName informs the Writer that the translation of a new VM file has
// started. name is used verbatim as the prefix of static variables and of
// labels outside of functions. It must not contain '$'.
func (w *Writer) SetFileName(name string) {
	w.file = name
}

// FileName returns the name set by SetFileName.
func (w *Writer) FileName() string {
	return w.file
}

// emit writes a whole block of lines with a single write.
func (w *Writer) emit(lines []string) error {
	if w.closed {
		return ErrClosed
	}
	var b strings.Builder
	for _, l := range lines {
		b.WriteString(l)
		b.WriteByte('\n')
	}
	_, err := w.ew.WriteString(b.String())
	return err
}

// Write translates the given command.
func (w *Writer) Write(c vmcode.Command) error {
	var err error
	switch c.Kind {
	case vmcode.Arithmetic:
		err = w.WriteArithmetic(c.Op)
	case vmcode.Push, vmcode.Pop:
		err = w.WritePushPop(c.Kind, c.Segment, c.Index)
	case vmcode.Label:
		err = w.WriteLabel(c.Name)
	case vmcode.Goto:
		err = w.WriteGoto(c.Name)
	case vmcode.If:
		err = w.WriteIf(c.Name)
	case vmcode.Function:
		err = w.WriteFunction(c.Name, c.Index)
	case vmcode.Call:
		err = w.WriteCall(c.Name, c.Index)
	case vmcode.Return:
		err = w.WriteReturn()
	default:
		err = errors.Errorf("unknown command kind %v", c.Kind)
	}
	if err != nil && c.Pos.IsValid() {
		return errors.Wrap(err, c.Pos.String())
	}
	return err
}

// Flush writes any buffered code to the output stream.
func (w *Writer) Flush() error {
	if w.closed {
		return ErrClosed
	}
	if w.ew.Err != nil {
		return w.ew.Err
	}
	return errors.Wrap(w.bw.Flush(), "flush failed")
}

// Close flushes the output stream and closes it if it is an io.Closer. It
// must be called exactly once.
func (w *Writer) Close() error {
	if w.closed {
		return ErrClosed
	}
	w.closed = true
	err := w.ew.Err
	if err == nil {
		if err = w.bw.Flush(); err != nil {
			err = errors.Wrap(err, "flush failed")
		}
	}
	if w.c != nil {
		if cerr := w.c.Close(); err == nil && cerr != nil {
			err = errors.Wrap(cerr, "close failed")
		}
	}
	return err
}

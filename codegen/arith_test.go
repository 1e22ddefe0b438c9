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
	"bytes"
	"errors"
	"testing"

	"github.com/db47h/hackvm/vmcode"
)

type errWriter struct{}

func (errWriter) Write(p []byte) (int, error) { return 0, errors.New("write failed") }

func TestCompare_counters(t *testing.T) {
	var b bytes.Buffer
	w := New(&b)
	for _, op := range []vmcode.Op{vmcode.Eq, vmcode.Eq, vmcode.Lt} {
		if err := w.WriteArithmetic(op); err != nil {
			t.Fatal(err)
		}
	}
	if w.counters != [familyCount]int{2, 1, 0} {
		t.Fatalf("bad counters %v", w.counters)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	// no label number is used up when nothing is written
	if err := w.WriteArithmetic(vmcode.Gt); err != ErrClosed {
		t.Fatalf("expected ErrClosed, got %v", err)
	}
	if w.counters != [familyCount]int{2, 1, 0} {
		t.Errorf("counters changed after failed write: %v", w.counters)
	}

	w = New(errWriter{})
	w.ew.Err = errors.New("sticky")
	if err := w.WriteArithmetic(vmcode.Eq); err == nil {
		t.Fatal("expected error")
	}
	if w.counters[eqFamily] != 0 {
		t.Errorf("counter advanced after failed write: %d", w.counters[eqFamily])
	}
	w.Close()
}

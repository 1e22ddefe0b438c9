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

// Package codegen translates VM commands into Hack assembly.
//
// A Writer holds the output stream, the name of the VM file being translated
// and the label counters. Each Write method appends a self-contained block of
// assembly to the stream. Blocks only rely on the stack convention, RAM[0] (SP)
// holding the address of the first free stack slot, so they can follow each
// other in any order that is valid VM code.
//
// Memory segments are resolved as follows:
//
//	constant                    the index itself (push only)
//	local argument this that    RAM[LCL|ARG|THIS|THAT] + index
//	temp pointer                5 + index, 3 + index
//	static                      the variable <file>.<index>
//
// Comparisons (eq, lt, gt) never subtract operands of different signs, so they
// are correct over the whole 16 bits signed range. Each comparison uses its own
// set of labels, numbered from a per operation counter that is never reset, so
// that any number of comparisons and VM files can be translated into a single
// output.
//
// Generated labels contain a '$', which VM labels and function names cannot,
// so they never clash with user code. VM labels are scoped to their function,
// or to their file outside of any function.
//
// A Writer must not be used concurrently, and no two Writers may share an
// output stream.
package codegen

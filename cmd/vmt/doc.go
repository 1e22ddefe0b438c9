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

// The vmt command line tool translates Hack VM code to Hack assembly,
// assembles it and runs the result on a Hack CPU emulator.
//
// Usage:
//
//	vmt [--config file] [--debug] [--verbose] command [flags] path
//
// Commands:
//
//	translate [-o file] [--noboot] path
//		translate a .vm file, or the .vm files of a directory, to Hack
//		assembly. Foo.vm is translated to Foo.asm and the directory Prog to
//		Prog/Prog.asm. Files in a directory are translated in lexical order.
//	asm [-o file] [--disasm] file
//		assemble a .asm file to a .hack image, or disassemble a .hack image.
//	run [--cycles n] [--dump] [--screen] [--noraw] path
//		run a .hack, .asm or .vm file, or a directory of .vm files, on the
//		emulator and print the final stack. --screen prints the screen as
//		text, scaled down to the terminal width.
//
// --debug: print a full stack trace on errors, dump parsed VM commands and
// dump the CPU state if a program crashes.
//
// The configuration file is a TOML file, vmt.toml in the current directory by
// default. All settings are optional:
//
//	[translate]
//	bootstrap = true      # bootstrap code for directories
//
//	[run]
//	max_cycles = 10000000 # cycle limit, 0 for none
//	raw = true            # switch the terminal to raw mode
//
//	[run.preset]          # RAM presets, by symbol or address
//	SP = 256
//	LCL = 300
//	"1000" = 42
//
// When running VM code translated without bootstrap code, SP defaults to 256.
package main

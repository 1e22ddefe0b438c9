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

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/db47h/hackvm/asm"
	"github.com/db47h/hackvm/cpu"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func assembleFile(name string) ([]cpu.Instruction, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, errors.Wrap(err, "open failed")
	}
	defer f.Close()
	return asm.Assemble(name, f)
}

// load returns the program for path: a .hack image, an assembly file, or VM
// code that is translated and assembled on the fly.
func load(path string) ([]cpu.Instruction, bool, error) {
	switch filepath.Ext(path) {
	case ".hack":
		rom, err := cpu.Load(path)
		return rom, false, err
	case ".asm":
		rom, err := assembleFile(path)
		return rom, false, err
	}
	files, _, dir, err := sources(path)
	if err != nil {
		return nil, false, err
	}
	boot := dir && config.Translate.Bootstrap
	var b bytes.Buffer
	if err = translateTo(&b, files, boot); err != nil {
		return nil, false, err
	}
	rom, err := asm.Assemble(path, &b)
	return rom, boot, err
}

func newAsmCmd() *cobra.Command {
	var (
		outFileName string
		disasm      bool
	)
	cmd := &cobra.Command{
		Use:   "asm file.asm",
		Short: "Assemble Hack assembly to a .hack image",
		Long: `Asm assembles a Hack assembly file into a .hack image, one 16 bits binary
word per line. The default output for Foo.asm is Foo.hack.

With --disasm, the input is a .hack image which is disassembled to stdout.
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if disasm {
				rom, err := cpu.Load(args[0])
				if err != nil {
					return err
				}
				return asm.DisassembleAll(rom, 0, cmd.OutOrStdout())
			}
			rom, err := assembleFile(args[0])
			if err != nil {
				return err
			}
			out := outFileName
			if out == "" {
				out = strings.TrimSuffix(args[0], filepath.Ext(args[0])) + ".hack"
			}
			if verbose {
				logger.Printf("writing %d instructions to %s", len(rom), out)
			}
			return cpu.Save(out, rom)
		},
	}
	cmd.Flags().StringVarP(&outFileName, "output", "o", "", "output `filename`")
	cmd.Flags().BoolVarP(&disasm, "disasm", "d", false, "disassemble a .hack file")
	return cmd
}

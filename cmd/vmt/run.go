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
	"fmt"
	"io"
	"os"

	"github.com/db47h/hackvm/cpu"
	"github.com/spf13/cobra"
)

// setupIO switches stdin to raw mode if requested and possible. The returned
// function restores the terminal state.
func setupIO(raw bool) (bool, func()) {
	if !raw {
		return false, nil
	}
	tearDown, err := setRawIO()
	if err != nil {
		if debug {
			logger.Printf("raw IO disabled: %v", err)
		}
		return false, nil
	}
	return true, tearDown
}

func newVM(path string) (*cpu.Instance, error) {
	rom, boot, err := load(path)
	if err != nil {
		return nil, err
	}
	opts, err := config.presets()
	if err != nil {
		return nil, err
	}
	// VM code with no bootstrap needs a stack.
	if !boot && !config.hasPreset(0) {
		opts = append([]cpu.Option{cpu.Preset(0, 256)}, opts...)
	}
	return cpu.New(rom, opts...)
}

func report(w io.Writer, i *cpu.Instance, full bool) error {
	if full {
		return i.Dump(w)
	}
	_, err := fmt.Fprintf(w, "%v\n", i.Stack())
	return err
}

func newRunCmd() *cobra.Command {
	var (
		cycles int64
		dump   bool
		noRaw  bool
		screen bool
	)
	cmd := &cobra.Command{
		Use:   "run path",
		Short: "Run a program on the Hack CPU emulator",
		Long: `Run runs a .hack image, an assembly file, a .vm file or a directory of .vm files
on the Hack CPU emulator. Assembly and VM code are assembled on the fly.

Execution stops when the program parks in a halt loop, runs past the end of
the ROM or reaches the cycle limit. The final VM stack is then printed, or
the registers and segment pointers with --dump. With --screen, a text
rendition of the screen scaled to the terminal width is printed first.

Key presses on stdin are fed to the keyboard register. Unless disabled, the
terminal is switched to raw mode.
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			i, err := newVM(args[0])
			if err != nil {
				return err
			}
			raw, tearDown := setupIO(config.Run.Raw && !noRaw)
			if tearDown != nil {
				defer tearDown()
			}
			if raw {
				i.SetOptions(cpu.Keyboard(cpu.NewKeyReader(os.Stdin).Poll))
			}
			if cmd.Flags().Changed("cycles") {
				config.Run.MaxCycles = cycles
			}
			err = i.Run(config.Run.MaxCycles)
			if verbose {
				logger.Printf("%d cycles, halted: %v", i.Cycles(), i.Halted())
			}
			if err != nil {
				if debug {
					i.Dump(os.Stderr)
				}
				return err
			}
			if screen {
				cols := consoleWidth(os.Stdout)
				tty := cols > 0
				if !tty {
					cols = 64
				}
				if err = i.RenderScreen(cmd.OutOrStdout(), cols, tty); err != nil {
					return err
				}
			}
			return report(cmd.OutOrStdout(), i, dump)
		},
	}
	cmd.Flags().Int64VarP(&cycles, "cycles", "c", 0, "maximum number of cycles, 0 for no limit")
	cmd.Flags().BoolVar(&dump, "dump", false, "dump registers and segments upon exit")
	cmd.Flags().BoolVar(&screen, "screen", false, "print the screen upon exit")
	cmd.Flags().BoolVar(&noRaw, "noraw", false, "disable raw terminal IO")
	return cmd
}

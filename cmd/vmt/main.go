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
	"log"
	"os"

	"github.com/spf13/cobra"
)

var (
	debug      bool
	verbose    bool
	configFile string
	config     = defaultConfig()
	logger     = log.New(os.Stderr, "vmt: ", 0)
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "vmt",
		Short: "Hack VM translator, assembler and CPU emulator",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			name := configFile
			if name == "" {
				name = defaultConfigFile
			}
			c, err := loadConfig(name, configFile != "")
			if err != nil {
				return err
			}
			config = c
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configFile, "config", "", "configuration `file` (default vmt.toml)")
	root.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug diagnostics")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	root.AddCommand(newTranslateCmd(), newAsmCmd(), newRunCmd())
	return root
}

func atExit(err error) {
	if err == nil {
		return
	}
	if !debug {
		fmt.Fprintf(os.Stderr, "%v\n", err)
	} else {
		fmt.Fprintf(os.Stderr, "%+v\n", err)
	}
	os.Exit(1)
}

func main() {
	atExit(newRootCmd().Execute())
}

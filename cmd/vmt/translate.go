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
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/db47h/hackvm/codegen"
	"github.com/db47h/hackvm/vmcode"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// sources returns the list of VM files to translate for path, the default
// output file name and whether path is a directory.
func sources(path string) (files []string, out string, dir bool, err error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, "", false, errors.Wrap(err, "stat failed")
	}
	if !fi.IsDir() {
		if filepath.Ext(path) != ".vm" {
			return nil, "", false, errors.Errorf("%s: not a .vm file", path)
		}
		return []string{path}, strings.TrimSuffix(path, ".vm") + ".asm", false, nil
	}
	files, err = filepath.Glob(filepath.Join(path, "*.vm"))
	if err != nil {
		return nil, "", true, errors.Wrap(err, "glob failed")
	}
	if len(files) == 0 {
		return nil, "", true, errors.Errorf("%s: no .vm files found", path)
	}
	sort.Strings(files)
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, "", true, errors.Wrap(err, "invalid path")
	}
	return files, filepath.Join(path, filepath.Base(abs)+".asm"), true, nil
}

// translate writes the assembly code for the given VM files to w.
func translate(w *codegen.Writer, files []string, bootstrap bool) error {
	if bootstrap {
		if err := w.WriteInit(); err != nil {
			return err
		}
	}
	for _, name := range files {
		if verbose {
			logger.Printf("translating %s", name)
		}
		f, err := os.Open(name)
		if err != nil {
			return errors.Wrap(err, "open failed")
		}
		cmds, err := vmcode.Parse(name, f)
		f.Close()
		if err != nil {
			return err
		}
		if debug {
			spew.Fdump(os.Stderr, cmds)
		}
		w.SetFileName(strings.TrimSuffix(filepath.Base(name), ".vm"))
		for _, c := range cmds {
			if err = w.Write(c); err != nil {
				return err
			}
		}
	}
	return nil
}

// translateTo translates files into memory.
func translateTo(dst io.Writer, files []string, bootstrap bool) error {
	w := codegen.New(dst)
	if err := translate(w, files, bootstrap); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}

// translateFile translates files to the named output file, which is removed
// if translation fails.
func translateFile(out string, files []string, bootstrap bool) (err error) {
	w, err := codegen.Create(out)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := w.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			os.Remove(out)
		}
	}()
	return translate(w, files, bootstrap)
}

func newTranslateCmd() *cobra.Command {
	var (
		outFileName string
		noBoot      bool
	)
	cmd := &cobra.Command{
		Use:   "translate path",
		Short: "Translate VM code to Hack assembly",
		Long: `Translate translates a .vm file, or all the .vm files in a directory, into a
single Hack assembly file.

The output file is named after the input: Foo.vm is translated to Foo.asm and
the directory Prog to Prog/Prog.asm. When translating a directory, the output
starts with bootstrap code that sets SP to 256 and calls Sys.init.
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			files, out, dir, err := sources(args[0])
			if err != nil {
				return err
			}
			if outFileName != "" {
				out = outFileName
			}
			return translateFile(out, files, dir && config.Translate.Bootstrap && !noBoot)
		},
	}
	cmd.Flags().StringVarP(&outFileName, "output", "o", "", "output `filename`")
	cmd.Flags().BoolVar(&noBoot, "noboot", false, "do not emit bootstrap code")
	return cmd
}

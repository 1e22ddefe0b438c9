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

import "github.com/pkg/errors"

// Step executes a single instruction.
func (i *Instance) Step() error {
	if i.PC < 0 || i.PC >= len(i.ROM) {
		return errors.Errorf("pc %d out of ROM", i.PC)
	}
	ins := i.ROM[i.PC]
	if ins.IsA() {
		i.A = ins.Value()
		i.PC++
		return nil
	}

	comp, dest, jump := ins.Comp(), ins.Dest(), ins.Jump()
	addr := int(uint16(i.A))
	y := i.A
	if comp&CompA != 0 {
		if addr >= len(i.RAM) {
			return errors.Errorf("pc %d: read at address %d out of range", i.PC, addr)
		}
		if addr == KBD && i.kbd != nil {
			i.RAM[KBD] = i.kbd()
		}
		y = i.RAM[addr]
	}
	out := ALU(i.D, y, comp)

	if dest&DestM != 0 {
		if addr >= len(i.RAM) {
			return errors.Errorf("pc %d: write at address %d out of range", i.PC, addr)
		}
		i.RAM[addr] = out
	}
	if dest&DestA != 0 {
		i.A = out
	}
	if dest&DestD != 0 {
		i.D = out
	}
	if jumps(out, jump) {
		// (L) @L 0;JMP
		if jump == JumpGT|JumpEQ|JumpLT && dest == 0 && addr == i.PC-1 && i.ROM[addr] == Instruction(addr) {
			i.halted = true
		}
		i.PC = addr
	} else {
		i.PC++
	}
	return nil
}

// Run starts execution of the program until it reaches a halt loop, the PC
// gets past the end of ROM or the number of executed instructions reaches
// maxCycles. A maxCycles value <= 0 means no limit.
//
// If an error occurs, the PC will point to the instruction that triggered
// the error. Reaching the cycle limit is an error.
func (i *Instance) Run(maxCycles int64) (err error) {
	defer func() {
		if e := recover(); e != nil {
			switch e := e.(type) {
			case error:
				err = errors.Wrapf(e, "recovered error @pc=%d/%d", i.PC, len(i.ROM))
			default:
				panic(e)
			}
		}
	}()
	i.cycles = 0
	i.halted = false
	for i.PC >= 0 && i.PC < len(i.ROM) {
		if maxCycles > 0 && i.cycles >= maxCycles {
			return errors.Errorf("cycle limit (%d) reached @pc=%d", maxCycles, i.PC)
		}
		if err = i.Step(); err != nil {
			return err
		}
		i.cycles++
		if i.halted {
			return nil
		}
	}
	return nil
}

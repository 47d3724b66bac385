// Copyright (C) 2021  Antonio Lassandro

// This program is free software: you can redistribute it and/or modify it
// under the terms of the GNU General Public License as published by the Free
// Software Foundation, either version 3 of the License, or (at your option)
// any later version.

// This program is distributed in the hope that it will be useful, but WITHOUT
// ANY WARRANTY; without even the implied warranty of MERCHANTABILITY or
// FITNESS FOR A PARTICULAR PURPOSE.  See the GNU General Public License for
// more details.

// You should have received a copy of the GNU General Public License along
// with this program.  If not, see <http://www.gnu.org/licenses/>.

package machine

import (
	"context"

	"github.com/sirupsen/logrus"
)

// New returns a machine in its reset state, attached to console.
func New(console Console) *Machine {
	mc := &Machine{
		Console:     console,
		HaltMessage: f("HALT"),
		Prompt:      f("Enter a character: "),
	}

	mc.State.Reset()

	return mc
}

func (mc *MachineState) Reset() {
	for i := range mc.Registers {
		mc.Registers[i] = 0x0000
	}

	for i := range mc.Memory {
		mc.Memory[i] = 0x0000
	}

	// Lower memory is left to the trap and interrupt tables
	mc.Program = MEMSPACE_USER
	mc.Condition = FLAG_ZERO
	mc.Running = false
}

func (mc *MachineState) Register(index uint16) uint16 {
	return mc.Registers[index&0x7]
}

func (mc *MachineState) SetRegister(index uint16, value uint16) {
	mc.Registers[index&0x7] = value
}

// UpdateFlags derives the condition flag from the current value of the
// register at index.
func (mc *MachineState) UpdateFlags(index uint16) {
	value := mc.Register(index)

	if value == 0 {
		mc.Condition = FLAG_ZERO
	} else if value>>15 == 1 {
		mc.Condition = FLAG_NEG
	} else {
		mc.Condition = FLAG_POS
	}
}

func (mc *Machine) log() logrus.FieldLogger {
	if mc.Log == nil {
		return logrus.StandardLogger()
	}

	return mc.Log
}

// Read returns the word at addr. Reading the keyboard status register polls
// the console and refreshes both keyboard registers first.
func (mc *Machine) Read(addr uint16) uint16 {
	if addr == DEV_KBSR {
		mc.State.Memory[DEV_KBSR] = 0

		if mc.Console != nil && mc.Console.Poll() {
			key, err := mc.Console.ReadChar()

			if err != nil {
				mc.log().WithError(err).Debug("keyboard read failed")
			} else {
				mc.State.Memory[DEV_KBSR] = 1 << 15
				mc.State.Memory[DEV_KBDR] = uint16(key)
			}
		}
	}

	return mc.State.Memory[addr]
}

func (mc *Machine) Write(addr uint16, value uint16) {
	mc.State.Memory[addr] = value
}

// Step fetches, decodes and executes a single instruction.
func (mc *Machine) Step() error {
	program := mc.State.Program
	instruction := mc.Read(program)

	mc.State.Program++

	var err error

	if op := operations[opcode(instruction)]; op != nil {
		err = op(mc, instruction)
	} else {
		err = ErrIllegalOpcode
	}

	if err != nil {
		return &ErrRuntime{
			Program:     program,
			Instruction: instruction,
			Err:         err,
		}
	}

	return nil
}

// Run executes instructions until the machine halts, an instruction fails,
// or ctx is done. Cancellation is only observed between instructions.
func (mc *Machine) Run(ctx context.Context) error {
	mc.State.Running = true

	for mc.State.Running {
		if err := ctx.Err(); err != nil {
			mc.State.Running = false
			return err
		}

		if err := mc.Step(); err != nil {
			mc.State.Running = false
			return err
		}
	}

	return nil
}

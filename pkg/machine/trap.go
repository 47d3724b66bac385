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
	"fmt"
)

type trapRoutine func(mc *Machine) error

var traps = map[uint16]trapRoutine{
	TRAP_GETC:  (*Machine).getc,
	TRAP_OUT:   (*Machine).out,
	TRAP_PUTS:  (*Machine).puts,
	TRAP_IN:    (*Machine).in,
	TRAP_PUTSP: (*Machine).putsp,
	TRAP_HALT:  (*Machine).halt,
}

// TRAP |1111    |0000   |trapvect8       | System call
// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
func (mc *Machine) trap(instruction uint16) error {
	vector := trapvect8(instruction)

	routine, ok := traps[vector]
	if !ok {
		return fmt.Errorf("%w: %#02x", ErrUnknownTrap, vector)
	}

	return routine(mc)
}

func (mc *Machine) console() (Console, error) {
	if mc.Console == nil {
		return nil, ErrNoConsole
	}

	return mc.Console, nil
}

func (mc *Machine) print(s string) error {
	cons, err := mc.console()
	if err != nil {
		return err
	}

	for i := 0; i < len(s); i++ {
		if err := cons.WriteChar(s[i]); err != nil {
			return err
		}
	}

	return nil
}

func (mc *Machine) getc() error {
	cons, err := mc.console()
	if err != nil {
		return err
	}

	key, err := cons.ReadChar()
	if err != nil {
		return err
	}

	mc.State.SetRegister(0, uint16(key))

	return nil
}

func (mc *Machine) out() error {
	cons, err := mc.console()
	if err != nil {
		return err
	}

	if err := cons.WriteChar(byte(mc.State.Register(0))); err != nil {
		return err
	}

	return cons.Flush()
}

// Writes one character per word from R0 up to a zero word, never past the
// end of memory.
func (mc *Machine) puts() error {
	cons, err := mc.console()
	if err != nil {
		return err
	}

	for addr := int(mc.State.Register(0)); addr < len(mc.State.Memory); addr++ {
		c := mc.State.Memory[addr]
		if c == 0 {
			break
		}

		if err := cons.WriteChar(byte(c)); err != nil {
			return err
		}
	}

	return cons.Flush()
}

func (mc *Machine) in() error {
	if err := mc.print(mc.Prompt); err != nil {
		return err
	}

	cons := mc.Console

	if err := cons.Flush(); err != nil {
		return err
	}

	key, err := cons.ReadChar()
	if err != nil {
		return err
	}

	if err := cons.WriteChar(key); err != nil {
		return err
	}

	mc.State.SetRegister(0, uint16(key))

	return cons.Flush()
}

// Like puts, but each word packs two characters, low byte first.
func (mc *Machine) putsp() error {
	cons, err := mc.console()
	if err != nil {
		return err
	}

	for addr := int(mc.State.Register(0)); addr < len(mc.State.Memory); addr++ {
		word := mc.State.Memory[addr]
		if word == 0 {
			break
		}

		if err := cons.WriteChar(byte(word & 0xFF)); err != nil {
			return err
		}

		if high := byte(word >> 8); high != 0 {
			if err := cons.WriteChar(high); err != nil {
				return err
			}
		}
	}

	return cons.Flush()
}

func (mc *Machine) halt() error {
	mc.State.Running = false

	mc.log().WithField("pc", fmt.Sprintf("%#04x", mc.State.Program)).Debug("halt")

	if mc.Console == nil {
		return nil
	}

	if err := mc.print(mc.HaltMessage + "\n"); err != nil {
		return err
	}

	return mc.Console.Flush()
}

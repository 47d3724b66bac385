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
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/lassandro/golc3/internal/translate"
)

var f = translate.From

var (
	ErrIllegalOpcode  = errors.New(f("illegal opcode"))
	ErrUnknownTrap    = errors.New(f("unknown trap vector"))
	ErrNoConsole      = errors.New(f("no console attached"))
	ErrImageTruncated = errors.New(f("image truncated before origin"))
)

// ErrRuntime locates a failed instruction.
type ErrRuntime struct {
	Program     uint16 // Address the instruction was fetched from
	Instruction uint16
	Err         error
}

func (err *ErrRuntime) Error() string {
	return f("%#04x: %s (%#04x): %v",
		err.Program, OpcodeName(err.Instruction), err.Instruction, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}

// Fields describes the failed instruction for structured logging. A failed
// TRAP also reports its vector.
func (err *ErrRuntime) Fields() logrus.Fields {
	fields := logrus.Fields{
		"pc":          fmt.Sprintf("%#04x", err.Program),
		"instruction": fmt.Sprintf("%#04x", err.Instruction),
		"opcode":      OpcodeName(err.Instruction),
	}

	if opcode(err.Instruction) == OP_TRAP {
		fields["trap"] = fmt.Sprintf("%#02x", trapvect8(err.Instruction))
	}

	return fields
}

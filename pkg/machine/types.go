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
	"github.com/sirupsen/logrus"
)

// Console is the character device behind the keyboard registers and the
// I/O traps.
type Console interface {
	// Poll reports whether a character can be read without blocking.
	Poll() bool
	// ReadChar blocks until a character is available.
	ReadChar() (byte, error)
	WriteChar(c byte) error
	Flush() error
}

type MachineState struct {
	Registers [8]uint16
	Program   uint16
	Condition uint16
	Running   bool
	Memory    [MEMORY_SIZE]uint16
}

type Machine struct {
	Console Console
	State   MachineState
	Log     logrus.FieldLogger

	HaltMessage string // Printed by the HALT trap
	Prompt      string // Printed by the IN trap
}

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
	"github.com/lassandro/golc3/pkg/encoding"
)

// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
//      |opcode  |DR   |SR1  |i|     |SR2 |
//      |opcode  |DR   |BaseR|offset6     |
//      |opcode  |DR   |PCoffset9         |
//      |opcode  |l|PCoffset11            |

func opcode(instruction uint16) uint16 {
	return instruction >> 12
}

// Destination register, or the source register of a store.
func dest(instruction uint16) uint16 {
	return (instruction >> 9) & 0x7
}

// First source register, or the base register.
func src1(instruction uint16) uint16 {
	return (instruction >> 6) & 0x7
}

func src2(instruction uint16) uint16 {
	return instruction & 0x7
}

func immediate(instruction uint16) bool {
	return (instruction>>5)&0x1 == 1
}

func imm5(instruction uint16) uint16 {
	return encoding.SignExtend(instruction&0x1F, 5)
}

func offset6(instruction uint16) uint16 {
	return encoding.SignExtend(instruction&0x3F, 6)
}

func pcoffset9(instruction uint16) uint16 {
	return encoding.SignExtend(instruction&0x1FF, 9)
}

func pcoffset11(instruction uint16) uint16 {
	return encoding.SignExtend(instruction&0x7FF, 11)
}

func trapvect8(instruction uint16) uint16 {
	return encoding.ZeroExtend(instruction, 8)
}

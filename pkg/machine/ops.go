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

type operation func(mc *Machine, instruction uint16) error

// RTI and RES have no handler and decode as illegal.
var operations = [16]operation{
	OP_ADD:  (*Machine).add,
	OP_AND:  (*Machine).and,
	OP_BR:   (*Machine).branch,
	OP_JMP:  (*Machine).jump,
	OP_JSR:  (*Machine).jumpSubroutine,
	OP_LD:   (*Machine).load,
	OP_LDI:  (*Machine).loadIndirect,
	OP_LDR:  (*Machine).loadRegister,
	OP_LEA:  (*Machine).loadEffectiveAddress,
	OP_NOT:  (*Machine).not,
	OP_ST:   (*Machine).store,
	OP_STI:  (*Machine).storeIndirect,
	OP_STR:  (*Machine).storeRegister,
	OP_TRAP: (*Machine).trap,
}

// ADD  |0001    |DR   |SR1  |0|00 |SR2   | Register  addition
// ADD  |0001    |DR   |SR1  |1|imm5      | Immediate addition
// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
func (mc *Machine) add(instruction uint16) error {
	dr := dest(instruction)
	value := mc.State.Register(src1(instruction))

	if immediate(instruction) {
		value += imm5(instruction)
	} else {
		value += mc.State.Register(src2(instruction))
	}

	mc.State.SetRegister(dr, value)
	mc.State.UpdateFlags(dr)

	return nil
}

// AND  |0101    |DR   |SR1  |0|00 |SR2   | Register  bitwise
// AND  |0101    |DR   |SR1  |1|imm5      | Immediate bitwise
// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
func (mc *Machine) and(instruction uint16) error {
	dr := dest(instruction)
	value := mc.State.Register(src1(instruction))

	if immediate(instruction) {
		value &= imm5(instruction)
	} else {
		value &= mc.State.Register(src2(instruction))
	}

	mc.State.SetRegister(dr, value)
	mc.State.UpdateFlags(dr)

	return nil
}

// BR   |0000    |N|Z|P|PCoffset9         | Conditional branch
// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
func (mc *Machine) branch(instruction uint16) error {
	mask := (instruction >> 9) & 0x7

	if mask&mc.State.Condition != 0 {
		mc.State.Program += pcoffset9(instruction)
	}

	return nil
}

// JMP  |1100    |000  |BaseR|000000      | Jump
// RET  |1100    |000  |111  |000000      | Return
// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
func (mc *Machine) jump(instruction uint16) error {
	mc.State.Program = mc.State.Register(src1(instruction))

	return nil
}

// JSR  |0100    |1|PCoffset11            | Jump to subroutine
// JSRR |0100    |0|00 |BaseR|000000      | Jump to subroutine register
// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
func (mc *Machine) jumpSubroutine(instruction uint16) error {
	mc.State.SetRegister(7, mc.State.Program)

	// JSRR R7 reads the link just written
	if (instruction>>11)&0x1 == 1 {
		mc.State.Program += pcoffset11(instruction)
	} else {
		mc.State.Program = mc.State.Register(src1(instruction))
	}

	return nil
}

// LD   |0010    |DR   |PCoffset9         | Load
// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
func (mc *Machine) load(instruction uint16) error {
	dr := dest(instruction)
	addr := mc.State.Program + pcoffset9(instruction)

	mc.State.SetRegister(dr, mc.Read(addr))
	mc.State.UpdateFlags(dr)

	return nil
}

// LDI  |1010    |DR   |PCoffset9         | Load indirect
// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
func (mc *Machine) loadIndirect(instruction uint16) error {
	dr := dest(instruction)
	addr := mc.State.Program + pcoffset9(instruction)

	mc.State.SetRegister(dr, mc.Read(mc.Read(addr)))
	mc.State.UpdateFlags(dr)

	return nil
}

// LDR  |0110    |DR   |BaseR|offset6     | Load base+offset
// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
func (mc *Machine) loadRegister(instruction uint16) error {
	dr := dest(instruction)
	addr := mc.State.Register(src1(instruction)) + offset6(instruction)

	mc.State.SetRegister(dr, mc.Read(addr))
	mc.State.UpdateFlags(dr)

	return nil
}

// LEA  |1110    |DR   |PCoffset9         | Load effective address
// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
func (mc *Machine) loadEffectiveAddress(instruction uint16) error {
	dr := dest(instruction)

	mc.State.SetRegister(dr, mc.State.Program+pcoffset9(instruction))
	mc.State.UpdateFlags(dr)

	return nil
}

// NOT  |1001    |DR   |SR   |1|11111     | Bitwise complement
// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
func (mc *Machine) not(instruction uint16) error {
	dr := dest(instruction)

	mc.State.SetRegister(dr, ^mc.State.Register(src1(instruction)))
	mc.State.UpdateFlags(dr)

	return nil
}

// ST   |0011    |SR   |PCoffset9         | Store
// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
func (mc *Machine) store(instruction uint16) error {
	addr := mc.State.Program + pcoffset9(instruction)

	mc.Write(addr, mc.State.Register(dest(instruction)))

	return nil
}

// STI  |1011    |SR   |PCoffset9         | Store indirect
// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
func (mc *Machine) storeIndirect(instruction uint16) error {
	addr := mc.State.Program + pcoffset9(instruction)

	mc.Write(mc.Read(addr), mc.State.Register(dest(instruction)))

	return nil
}

// STR  |0111    |SR   |BaseR|offset6     | Store base+offset
// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
func (mc *Machine) storeRegister(instruction uint16) error {
	addr := mc.State.Register(src1(instruction)) + offset6(instruction)

	mc.Write(addr, mc.State.Register(dest(instruction)))

	return nil
}

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

package encoding_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lassandro/golc3/pkg/encoding"
)

func TestSignExtend(t *testing.T) {
	assert := assert.New(t)

	// imm5
	assert.Equal(uint16(0x000F), encoding.SignExtend(0b01111, 5))
	assert.Equal(uint16(0xFFF0), encoding.SignExtend(0b10000, 5))
	assert.Equal(uint16(0xFFFF), encoding.SignExtend(0b11111, 5))

	// offset6
	assert.Equal(uint16(0xFFE0), encoding.SignExtend(0b100000, 6))
	assert.Equal(uint16(0x001F), encoding.SignExtend(0b011111, 6))

	// PCoffset9
	assert.Equal(uint16(0xFF00), encoding.SignExtend(0x100, 9))
	assert.Equal(uint16(0x00FF), encoding.SignExtend(0x0FF, 9))

	// PCoffset11
	assert.Equal(uint16(0xFC00), encoding.SignExtend(0x400, 11))
	assert.Equal(uint16(0x03FF), encoding.SignExtend(0x3FF, 11))

	// Bits above the field are ignored
	assert.Equal(uint16(0x0001), encoding.SignExtend(0xF001, 5))
}

func TestSignExtendFullWidth(t *testing.T) {
	assert := assert.New(t)

	for _, value := range []uint16{0x0000, 0x7FFF, 0x8000, 0xFFFF, 0xCAFE} {
		assert.Equal(value, encoding.SignExtend(value, 16))
		assert.Equal(value, encoding.SignExtend(encoding.SignExtend(value, 16), 16))
	}
}

func TestSignExtendValue(t *testing.T) {
	assert := assert.New(t)

	for _, bits := range []uint16{5, 6, 9, 11} {
		lo := -(1 << (bits - 1))
		hi := (1 << (bits - 1)) - 1

		for v := lo; v <= hi; v++ {
			field := uint16(v) & ((1 << bits) - 1)
			have := int16(encoding.SignExtend(field, bits))

			assert.Equal(int16(v), have, "bits=%d field=%#x", bits, field)
		}
	}
}

func TestZeroExtend(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(uint16(0x0025), encoding.ZeroExtend(0xF025, 8))
	assert.Equal(uint16(0x00FF), encoding.ZeroExtend(0x00FF, 8))
	assert.Equal(uint16(0xF025), encoding.ZeroExtend(0xF025, 16))
}

func TestDecodeHex(t *testing.T) {
	assert := assert.New(t)

	for input, want := range map[string]uint16{
		"0x3000": 0x3000,
		"x3000":  0x3000,
		"X3000":  0x3000,
		"0xFF":   0x00FF,
		"xff":    0x00FF,
	} {
		have, err := encoding.DecodeHex(input)
		assert.NoError(err, input)
		assert.Equal(want, have, input)
	}

	for _, input := range []string{"3000", "", "1x30", "0x10000", "xZZ"} {
		_, err := encoding.DecodeHex(input)
		assert.Error(err, input)
	}
}

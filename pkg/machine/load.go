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
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
)

// LoadImage copies a program image into memory. The first big-endian word
// of the image is the origin; the rest are stored from there on. Words that
// would land past the end of memory are dropped, as is a trailing odd byte.
func (mc *Machine) LoadImage(reader io.Reader) error {
	buffered := bufio.NewReader(reader)
	scratch := make([]byte, 2)

	if _, err := io.ReadFull(buffered, scratch); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return ErrImageTruncated
		}

		return err
	}

	origin := binary.BigEndian.Uint16(scratch)
	index := int(origin)

	for index < len(mc.State.Memory) {
		_, err := io.ReadFull(buffered, scratch)

		if err == io.EOF || err == io.ErrUnexpectedEOF {
			break
		} else if err != nil {
			return err
		}

		mc.State.Memory[index] = binary.BigEndian.Uint16(scratch)
		index++
	}

	mc.log().WithFields(logrus.Fields{
		"origin": fmt.Sprintf("%#04x", origin),
		"words":  index - int(origin),
	}).Debug("image loaded")

	return nil
}

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

// Package console provides the character devices a machine reads its
// keyboard from and writes its display to.
package console

import (
	"bufio"
	"io"
)

// Stream is a console over plain readers and writers, such as pipes, files
// or in-memory buffers.
//
// Readers that report their unread length (strings.Reader, bytes.Reader,
// bytes.Buffer) are read directly. Any other reader is drained by a
// goroutine into a key buffer, so Poll never waits on it.
type Stream struct {
	reader *bufio.Reader
	sized  interface{ Len() int }

	keys    chan byte
	err     error // Set by the pump before keys is closed
	pending bool
	key     byte

	writer *bufio.Writer
}

const keyBufferSize = 64

// NewStream returns a console reading from r and writing to w. A nil r
// never has input; a nil w discards output.
func NewStream(r io.Reader, w io.Writer) *Stream {
	stream := &Stream{}

	if sized, ok := r.(interface{ Len() int }); ok {
		stream.reader = bufio.NewReader(r)
		stream.sized = sized
	} else if r != nil {
		stream.keys = make(chan byte, keyBufferSize)
		go stream.pump(bufio.NewReader(r))
	}

	if w == nil {
		w = io.Discard
	}

	stream.writer = bufio.NewWriter(w)

	return stream
}

func (s *Stream) pump(reader *bufio.Reader) {
	for {
		c, err := reader.ReadByte()
		if err != nil {
			s.err = err
			close(s.keys)
			return
		}

		s.keys <- c
	}
}

// Poll reports whether a byte can be read. It never blocks.
func (s *Stream) Poll() bool {
	switch {
	case s.sized != nil:
		return s.reader.Buffered() > 0 || s.sized.Len() > 0
	case s.keys == nil:
		return false
	case s.pending:
		return true
	}

	select {
	case c, ok := <-s.keys:
		if !ok {
			return false
		}

		s.key, s.pending = c, true

		return true
	default:
		return false
	}
}

func (s *Stream) ReadChar() (byte, error) {
	switch {
	case s.sized != nil:
		return s.reader.ReadByte()
	case s.keys == nil:
		return 0, io.EOF
	case s.pending:
		s.pending = false
		return s.key, nil
	}

	c, ok := <-s.keys
	if !ok {
		return 0, s.err
	}

	return c, nil
}

func (s *Stream) WriteChar(c byte) error {
	return s.writer.WriteByte(c)
}

func (s *Stream) Flush() error {
	return s.writer.Flush()
}

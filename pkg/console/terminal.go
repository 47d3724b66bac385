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

package console

import (
	"bufio"
	"os"
	"sync"

	"github.com/pkg/term/termios"
	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// Terminal is a console on a TTY. Input is switched to unbuffered, silent
// mode by EnterRaw and restored by Restore.
type Terminal struct {
	in     *os.File
	reader *bufio.Reader
	writer *bufio.Writer

	mu    sync.Mutex
	saved *unix.Termios
}

func NewTerminal(in, out *os.File) *Terminal {
	return &Terminal{
		in:     in,
		reader: bufio.NewReader(in),
		writer: bufio.NewWriter(out),
	}
}

// EnterRaw disables line buffering and echo on the input. It does nothing
// when the input is not a terminal.
func (t *Terminal) EnterRaw() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	fd := t.in.Fd()

	if t.saved != nil || !term.IsTerminal(int(fd)) {
		return nil
	}

	var saved unix.Termios

	if err := termios.Tcgetattr(fd, &saved); err != nil {
		return err
	}

	raw := saved
	raw.Lflag &^= unix.ICANON | unix.ECHO

	if err := termios.Tcsetattr(fd, termios.TCSANOW, &raw); err != nil {
		return err
	}

	t.saved = &saved

	return nil
}

// Restore puts back the mode saved by EnterRaw. Safe to call more than once,
// and from another goroutine.
func (t *Terminal) Restore() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.saved == nil {
		return nil
	}

	err := termios.Tcsetattr(t.in.Fd(), termios.TCSANOW, t.saved)
	t.saved = nil

	return err
}

// Poll never blocks.
func (t *Terminal) Poll() bool {
	if t.reader.Buffered() > 0 {
		return true
	}

	fds := []unix.PollFd{{
		Fd:     int32(t.in.Fd()),
		Events: unix.POLLIN,
	}}

	n, err := unix.Poll(fds, 0)

	return err == nil && n > 0 && fds[0].Revents&(unix.POLLIN|unix.POLLHUP) != 0
}

func (t *Terminal) ReadChar() (byte, error) {
	return t.reader.ReadByte()
}

func (t *Terminal) WriteChar(c byte) error {
	return t.writer.WriteByte(c)
}

func (t *Terminal) Flush() error {
	return t.writer.Flush()
}

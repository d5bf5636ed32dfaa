/*
MIT License

Copyright (c) 2026 RUSS Contributors

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in all
copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
SOFTWARE.
*/

package client

import (
	"io"
	"os"
	"sync"

	"github.com/johnm-dev/russng/deadline"
	russerr "github.com/johnm-dev/russng/errors"
	"github.com/johnm-dev/russng/fdpass"
	"github.com/johnm-dev/russng/wire"
)

// NFds is the number of user fds a cconn carries; indices 0-2 are
// stdin/stdout/stderr. RUSS never uses more, but the wire layout leaves
// room for future extension.
const NFds = 32

// connectionEvent is the single byte the client writes immediately after
// connecting, before the request, to establish protocol liveness.
const connectionEvent = 0x00

// Cconn is a client connection: the fd triple and exit channel a server
// handed back after a successful Dial.
type Cconn struct {
	mu     sync.Mutex
	stdin  *os.File
	stdout *os.File
	stderr *os.File
	sysfd  *os.File
	closed bool
	waited bool
}

// Dial connects to saddr, performs the request/fd-handoff handshake, and
// returns the populated Cconn. Every failure path closes any fd it
// received before returning so nothing leaks.
func Dial(saddr string, dl deadline.Deadline, op, spath string, attrs, args []string) (*Cconn, error) {
	conn, err := fdpass.Dial(saddr, dl)
	if err != nil {
		return nil, err
	}

	if err := fdpass.SetDeadline(conn, dl); err != nil {
		conn.Close()
		return nil, russerr.SysFailure.Error(err)
	}

	if _, err := conn.Write([]byte{connectionEvent}); err != nil {
		conn.Close()
		return nil, russerr.CannotDial.Error(err)
	}

	req := wire.NewRequest(op, spath, attrs, args)
	if verr := req.Validate(); verr != nil {
		conn.Close()
		return nil, verr
	}
	if err := wire.Encode(conn, req); err != nil {
		conn.Close()
		return nil, err
	}

	_, fds, err := fdpass.RecvFDs(conn)
	if err != nil {
		conn.Close()
		return nil, russerr.CannotDial.Error(err)
	}
	conn.Close()

	if len(fds) != 4 {
		closeAll(fds)
		return nil, russerr.BadProtocol.Errorf("expected 4 fds in the answer, got %d", len(fds))
	}

	return &Cconn{
		stdin:  os.NewFile(uintptr(fds[0]), "stdin"),
		stdout: os.NewFile(uintptr(fds[1]), "stdout"),
		stderr: os.NewFile(uintptr(fds[2]), "stderr"),
		sysfd:  os.NewFile(uintptr(fds[3]), "sysfd"),
	}, nil
}

func closeAll(fds []int) {
	for _, fd := range fds {
		os.NewFile(uintptr(fd), "").Close()
	}
}

// Stdin is the write end of the dialled service's standard input.
func (c *Cconn) Stdin() io.WriteCloser { return c.stdin }

// Stdout is the read end of the dialled service's standard output.
func (c *Cconn) Stdout() io.ReadCloser { return c.stdout }

// Stderr is the read end of the dialled service's standard error.
func (c *Cconn) Stderr() io.ReadCloser { return c.stderr }

// Sysfd is the read end of the exit channel, exposed for relay/splice use.
func (c *Cconn) Sysfd() *os.File { return c.sysfd }

// Close closes every fd this Cconn owns. It is safe to call more than once.
func (c *Cconn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	var err error
	for _, f := range []*os.File{c.stdin, c.stdout, c.stderr, c.sysfd} {
		if f == nil {
			continue
		}
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

// Take hands off ownership of the four underlying fds to the caller (used
// by Splice) and marks this Cconn inert: subsequent Close/Wait calls are
// no-ops.
func (c *Cconn) Take() (stdin, stdout, stderr, sysfd *os.File) {
	c.mu.Lock()
	defer c.mu.Unlock()
	stdin, stdout, stderr, sysfd = c.stdin, c.stdout, c.stderr, c.sysfd
	c.stdin, c.stdout, c.stderr, c.sysfd = nil, nil, nil, nil
	c.closed = true
	return
}

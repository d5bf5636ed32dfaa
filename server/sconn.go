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

package server

import (
	"encoding/binary"
	"io"
	"net"
	"os"
	"sync"
	"time"

	"github.com/johnm-dev/russng/client"
	"github.com/johnm-dev/russng/deadline"
	russerr "github.com/johnm-dev/russng/errors"
	"github.com/johnm-dev/russng/exitcode"
	"github.com/johnm-dev/russng/fdpass"
	"github.com/johnm-dev/russng/wire"
)

// connectionEvent is the single byte a client writes right after connecting,
// read and discarded here before the request is decoded.
const connectionEvent = 0x00

// Sconn is a server connection: the accepted socket before Answer, the
// server-side pipe ends after it, and the peer credentials read once at
// accept time.
type Sconn struct {
	mu       sync.Mutex
	sock     *net.UnixConn
	creds    fdpass.Credentials
	fds      []*os.File
	sysfd    *os.File
	answered bool
	exited   bool
}

// Accept waits for a connection on l up to dl, then reads the peer's
// SO_PEERCRED credentials.
func Accept(l *net.UnixListener, dl deadline.Deadline) (*Sconn, error) {
	if dl != deadline.Never {
		if dl.Expired() {
			return nil, russerr.Timeout.Error(nil)
		}
		l.SetDeadline(time.Now().Add(dl.Remaining()))
		defer l.SetDeadline(time.Time{})
	}

	conn, err := l.AcceptUnix()
	if err != nil {
		if isTimeoutErr(err) {
			return nil, russerr.Timeout.Error(err)
		}
		return nil, russerr.SysFailure.Error(err)
	}

	creds, err := fdpass.PeerCredentials(conn)
	if err != nil {
		conn.Close()
		return nil, err
	}

	return &Sconn{sock: conn, creds: creds}, nil
}

// Credentials returns the peer's pid/uid/gid.
func (c *Sconn) Credentials() fdpass.Credentials { return c.creds }

// AwaitRequest reads the connection event byte then decodes and validates
// exactly one request from the connected socket, subject to dl.
func (c *Sconn) AwaitRequest(dl deadline.Deadline) (*wire.Request, error) {
	if err := fdpass.SetDeadline(c.sock, dl); err != nil {
		return nil, russerr.SysFailure.Error(err)
	}

	var evt [1]byte
	if _, err := io.ReadFull(c.sock, evt[:]); err != nil {
		if isTimeoutErr(err) {
			return nil, russerr.Timeout.Error(err)
		}
		return nil, russerr.BadProtocol.Error(err)
	}

	req, err := wire.Decode(c.sock)
	if err != nil {
		return nil, err
	}
	if verr := req.Validate(); verr != nil {
		return nil, verr
	}
	return req, nil
}

// Answer opens nfds pipe pairs (the standard case is 3: stdin, stdout,
// stderr), sends the client-side end of each plus the exit sysfd across
// the connected socket via SCM_RIGHTS, keeps the server-side ends, and
// closes the connected socket. It is a no-op if already answered.
func (c *Sconn) Answer(nfds int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.answered {
		return nil
	}

	serverEnds := make([]*os.File, nfds)
	clientEnds := make([]*os.File, 0, nfds+1)

	cleanup := func() {
		for _, f := range serverEnds {
			if f != nil {
				f.Close()
			}
		}
		for _, f := range clientEnds {
			f.Close()
		}
	}

	for i := 0; i < nfds; i++ {
		r, w, err := os.Pipe()
		if err != nil {
			cleanup()
			return russerr.SysFailure.Error(err)
		}
		if i == 0 {
			serverEnds[i] = r
			clientEnds = append(clientEnds, w)
		} else {
			serverEnds[i] = w
			clientEnds = append(clientEnds, r)
		}
	}

	sysR, sysW, err := os.Pipe()
	if err != nil {
		cleanup()
		return russerr.SysFailure.Error(err)
	}
	clientEnds = append(clientEnds, sysR)

	clientFds := make([]int, len(clientEnds))
	for i, f := range clientEnds {
		clientFds[i] = int(f.Fd())
	}

	err = fdpass.SendFDs(c.sock, byte(len(clientFds)), clientFds)
	for _, f := range clientEnds {
		f.Close()
	}
	if err != nil {
		for _, f := range serverEnds {
			f.Close()
		}
		sysW.Close()
		return err
	}

	c.sock.Close()
	c.sock = nil
	c.fds = serverEnds
	c.sysfd = sysW
	c.answered = true
	return nil
}

// Stdin is the server-side read end of the service's stdin pipe.
func (c *Sconn) Stdin() io.Reader { return fdOrNil(c.fds, 0) }

// Stdout is the server-side write end of the service's stdout pipe.
func (c *Sconn) Stdout() io.Writer { return fdOrNil(c.fds, 1) }

// Stderr is the server-side write end of the service's stderr pipe.
func (c *Sconn) Stderr() io.Writer { return fdOrNil(c.fds, 2) }

func fdOrNil(fds []*os.File, i int) *os.File {
	if i >= len(fds) {
		return nil
	}
	return fds[i]
}

// Exit writes the 4-byte little-endian status to the sysfd and closes it.
// Idempotent after the first successful call.
func (c *Sconn) Exit(status exitcode.Status) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.exited || c.sysfd == nil {
		return nil
	}
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], uint32(int32(status)))
	_, err := c.sysfd.Write(buf[:])
	c.sysfd.Close()
	c.exited = true
	if err != nil {
		return russerr.SysFailure.Error(err)
	}
	return nil
}

// Fatal answers the connection with the standard three fds if it has not
// been answered yet, writes msg and a trailing newline to stderr if it is
// still open, then exits with status. It is the dispatcher's failsafe when
// a handler returns without calling Exit.
func (c *Sconn) Fatal(msg string, status exitcode.Status) {
	if !c.Answered() {
		c.Answer(standardFds)
	}
	if stderr := c.Stderr(); stderr != nil {
		io.WriteString(stderr, msg+"\n")
	}
	c.Exit(status)
}

// Splice hands the four fds of a downstream Cconn (made by redialing from
// this server) back across the connected socket, so the original client
// ends up talking directly to the downstream service. After Splice, cc is
// inert. Splice must run before Answer; it replaces the handshake that
// Answer would otherwise perform.
func (c *Sconn) Splice(cc *client.Cconn) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.answered {
		return russerr.SysFailure.Errorf("sconn already answered, cannot splice")
	}

	stdin, stdout, stderr, sysfd := cc.Take()
	fds := []int{int(stdin.Fd()), int(stdout.Fd()), int(stderr.Fd()), int(sysfd.Fd())}

	err := fdpass.SendFDs(c.sock, byte(len(fds)), fds)
	stdin.Close()
	stdout.Close()
	stderr.Close()
	sysfd.Close()
	if err != nil {
		return err
	}

	c.sock.Close()
	c.sock = nil
	c.answered = true
	c.exited = true
	return nil
}

// RedialAndSplice dials saddr/spath and splices the resulting connection
// onto c in one step, the combination proxy-style services use.
func (c *Sconn) RedialAndSplice(saddr string, dl deadline.Deadline, op, spath string, attrs, args []string) error {
	cc, err := client.Dial(saddr, dl, op, spath, attrs, args)
	if err != nil {
		return russerr.CallFailure.Error(err)
	}
	return c.Splice(cc)
}

// Answered reports whether Answer or Splice has already completed.
func (c *Sconn) Answered() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.answered
}

// Exited reports whether Exit has already completed.
func (c *Sconn) Exited() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.exited
}

// Close closes every fd this Sconn still owns: the original socket if
// Answer/Splice never ran, the server-side pipe ends, and the sysfd if
// Exit never ran.
func (c *Sconn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	var err error
	if c.sock != nil {
		err = c.sock.Close()
		c.sock = nil
	}
	for _, f := range c.fds {
		if f != nil {
			f.Close()
		}
	}
	if c.sysfd != nil && !c.exited {
		c.sysfd.Close()
	}
	return err
}

type timeoutErr interface {
	Timeout() bool
}

func isTimeoutErr(err error) bool {
	t, ok := err.(timeoutErr)
	return ok && t.Timeout()
}

// takeConnFile hands back a dup'd *os.File for c's still-unanswered
// connected socket, for a FORK worker to pass across exec via
// Cmd.ExtraFiles. c's own copy is closed afterward; the caller owns f.
func (c *Sconn) takeConnFile() (*os.File, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.sock == nil {
		return nil, russerr.SysFailure.Errorf("sconn has no connected socket to hand off")
	}
	f, err := c.sock.File()
	if err != nil {
		return nil, russerr.SysFailure.Error(err)
	}
	c.sock.Close()
	c.sock = nil
	return f, nil
}

// sconnFromFd wraps an inherited, already-accepted connection fd (as
// handed to a re-exec'd FORK worker) as an Sconn, reading peer
// credentials the same way Accept does.
func sconnFromFd(fd int) (*Sconn, error) {
	f := os.NewFile(uintptr(fd), "russ-conn")
	c, err := net.FileConn(f)
	f.Close()
	if err != nil {
		return nil, russerr.SysFailure.Error(err)
	}
	uc, ok := c.(*net.UnixConn)
	if !ok {
		c.Close()
		return nil, russerr.SysFailure.Errorf("inherited fd is not a unix connection")
	}

	creds, err := fdpass.PeerCredentials(uc)
	if err != nil {
		uc.Close()
		return nil, err
	}

	return &Sconn{sock: uc, creds: creds}, nil
}

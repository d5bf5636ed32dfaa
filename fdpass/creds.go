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

package fdpass

import (
	"net"

	"golang.org/x/sys/unix"

	russerr "github.com/johnm-dev/russng/errors"
)

// Credentials is the pid/uid/gid of the process on the other end of a
// connected UNIX socket, retrieved with SO_PEERCRED at accept time.
type Credentials struct {
	Pid int32
	Uid uint32
	Gid uint32
}

// PeerCredentials retrieves the SO_PEERCRED credentials of the process
// connected at the other end of conn. It only works for AF_UNIX stream
// sockets, which is the only kind this package ever hands back from Announce.
func PeerCredentials(conn *net.UnixConn) (Credentials, error) {
	sc, err := conn.SyscallConn()
	if err != nil {
		return Credentials{}, russerr.SysFailure.Error(err)
	}

	var ucred *unix.Ucred
	var gerr error
	cerr := sc.Control(func(fd uintptr) {
		ucred, gerr = unix.GetsockoptUcred(int(fd), unix.SOL_SOCKET, unix.SO_PEERCRED)
	})
	if cerr != nil {
		return Credentials{}, russerr.SysFailure.Error(cerr)
	}
	if gerr != nil {
		return Credentials{}, russerr.SysFailure.Error(gerr)
	}

	return Credentials{Pid: ucred.Pid, Uid: ucred.Uid, Gid: ucred.Gid}, nil
}

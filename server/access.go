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
	"os"
	"syscall"

	russerr "github.com/johnm-dev/russng/errors"
	"github.com/johnm-dev/russng/exitcode"
	"github.com/johnm-dev/russng/fdpass"
)

// errAccessStatus is the exit status written on the sysfd when a request
// is rejected for matchclientuser or a failed privilege drop, matching
// the FAILURE exit code documented for NoAccess.
const errAccessStatus = exitcode.Failure

// checkAccess enforces matchclientuser/allowrootuser: when matchclientuser
// is set, the peer's uid must equal the server's own uid, unless the peer
// is root and allowrootuser permits it.
func (s *Server) checkAccess(conn *Sconn) error {
	if !s.matchClientUser {
		return nil
	}
	peer := conn.Credentials().Uid
	if peer == uint32(os.Getuid()) {
		return nil
	}
	if s.allowRootUser && peer == 0 {
		return nil
	}
	return russerr.NoAccess.Errorf("peer uid %d does not match server", peer)
}

// dropPrivileges sets the process's effective/real uid and gid to the
// peer's, in the order (gid then uid) required once uid 0 is given up.
func dropPrivileges(creds fdpass.Credentials) error {
	if err := syscall.Setgid(int(creds.Gid)); err != nil {
		return err
	}
	if err := syscall.Setuid(int(creds.Uid)); err != nil {
		return err
	}
	return nil
}

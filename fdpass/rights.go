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
	"io"
	"net"

	"golang.org/x/sys/unix"

	russerr "github.com/johnm-dev/russng/errors"
)

// maxRightsFDs bounds how many descriptors SendFDs/RecvFDs will move in one
// message; RUSS never passes more than four (stdin, stdout, stderr, exit).
const maxRightsFDs = 8

// SendFDs sends the single byte b across conn, with fds attached as
// SCM_RIGHTS ancillary data. The four-descriptor handoff goes through this
// call, with b carrying the descriptor count.
func SendFDs(conn *net.UnixConn, b byte, fds []int) error {
	oob := unix.UnixRights(fds...)
	data := []byte{b}

	for len(data) > 0 || len(oob) > 0 {
		n, oobn, err := conn.WriteMsgUnix(data, oob, nil)
		if err != nil {
			return russerr.SysFailure.Error(err)
		}
		data = data[n:]
		oob = oob[oobn:]
	}
	return nil
}

// RecvFDs reads one byte from conn along with up to maxRightsFDs descriptors
// carried as SCM_RIGHTS ancillary data. An EOF with nothing read is reported
// as io.EOF; any other failure is SysFailure.
func RecvFDs(conn *net.UnixConn) (byte, []int, error) {
	data := make([]byte, 1)
	oob := make([]byte, unix.CmsgSpace(4*maxRightsFDs))

	n, oobn, _, _, err := conn.ReadMsgUnix(data, oob)
	if err != nil {
		return 0, nil, russerr.SysFailure.Error(err)
	}
	if n == 0 {
		return 0, nil, io.EOF
	}

	scms, err := unix.ParseSocketControlMessage(oob[:oobn])
	if err != nil {
		return 0, nil, russerr.SysFailure.Error(err)
	}

	var fds []int
	for _, scm := range scms {
		got, err := unix.ParseUnixRights(&scm)
		if err != nil {
			return 0, nil, russerr.SysFailure.Error(err)
		}
		fds = append(fds, got...)
	}

	return data[0], fds, nil
}

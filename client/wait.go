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
	"encoding/binary"
	"io"
	"time"

	"github.com/johnm-dev/russng/deadline"
	"github.com/johnm-dev/russng/exitcode"
	"github.com/johnm-dev/russng/waitkind"
)

// Wait reads the 4-byte little-endian exit status from the sysfd, honoring
// dl. The sysfd is left open and may be waited on again (a TIMEOUT does not
// consume it); EOF before 4 bytes is reported as HUP.
func (c *Cconn) Wait(dl deadline.Deadline) (waitkind.Kind, exitcode.Status) {
	c.mu.Lock()
	sysfd := c.sysfd
	c.mu.Unlock()

	if sysfd == nil {
		return waitkind.BadFd, 0
	}

	if dl != deadline.Never {
		if dl.Expired() {
			return waitkind.Timeout, 0
		}
		sysfd.SetReadDeadline(time.Now().Add(dl.Remaining()))
		defer sysfd.SetReadDeadline(time.Time{})
	}

	var buf [4]byte
	_, err := io.ReadFull(sysfd, buf[:])
	if err != nil {
		if isTimeout(err) {
			return waitkind.Timeout, 0
		}
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return waitkind.Hup, 0
		}
		return waitkind.Failure, 0
	}

	c.mu.Lock()
	c.waited = true
	c.mu.Unlock()

	status := exitcode.Status(int32(binary.LittleEndian.Uint32(buf[:])))
	return waitkind.OK, status
}

type timeouter interface {
	Timeout() bool
}

func isTimeout(err error) bool {
	t, ok := err.(timeouter)
	return ok && t.Timeout()
}

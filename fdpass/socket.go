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
	"context"
	"net"
	"os"
	"time"

	russerr "github.com/johnm-dev/russng/errors"
	"github.com/johnm-dev/russng/deadline"
)

// AnnounceOptions controls the filesystem side effects of Announce.
type AnnounceOptions struct {
	// Mode is applied with os.Chmod after the socket is created; zero skips it.
	Mode os.FileMode
	// Uid/Gid are applied with os.Chown after the socket is created; -1 skips them.
	Uid, Gid int
}

// Announce creates and binds the listening socket at saddr: it unlinks a
// stale socket inode left by a previous instance, binds and listens, then
// applies mode/uid/gid. Any failure is reported as CannotAnnounce.
func Announce(saddr string, opts AnnounceOptions) (*net.UnixListener, error) {
	if err := removeStale(saddr); err != nil {
		return nil, russerr.CannotAnnounce.Error(err)
	}

	addr, err := net.ResolveUnixAddr("unix", saddr)
	if err != nil {
		return nil, russerr.CannotAnnounce.Error(err)
	}
	l, err := net.ListenUnix("unix", addr)
	if err != nil {
		return nil, russerr.CannotAnnounce.Error(err)
	}

	if opts.Mode != 0 {
		if err := os.Chmod(saddr, opts.Mode); err != nil {
			l.Close()
			return nil, russerr.CannotAnnounce.Error(err)
		}
	}
	if opts.Uid >= 0 || opts.Gid >= 0 {
		uid, gid := opts.Uid, opts.Gid
		if uid < 0 {
			uid = os.Getuid()
		}
		if gid < 0 {
			gid = os.Getgid()
		}
		if err := os.Chown(saddr, uid, gid); err != nil {
			l.Close()
			return nil, russerr.CannotAnnounce.Error(err)
		}
	}

	return l, nil
}

// removeStale unlinks a leftover socket inode at path, treating "doesn't
// exist" as success and refusing to remove anything that isn't a socket.
func removeStale(path string) error {
	fi, err := os.Lstat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if fi.Mode()&os.ModeSocket == 0 {
		return russerr.CannotAnnounce.Errorf("%s exists and is not a socket", path)
	}
	return os.Remove(path)
}

// Dial connects to saddr, honoring dl as a connect timeout. A deadline.Never
// dials with no timeout. Connection refused or a missing saddr is reported
// as CannotDial; a deadline that expires mid-connect is reported as Timeout.
func Dial(saddr string, dl deadline.Deadline) (*net.UnixConn, error) {
	var d net.Dialer
	ctx := context.Background()
	var cancel context.CancelFunc
	if dl != deadline.Never {
		ctx, cancel = context.WithTimeout(ctx, dl.Remaining())
		defer cancel()
	}

	c, err := d.DialContext(ctx, "unix", saddr)
	if err != nil {
		if ctx.Err() != nil {
			return nil, russerr.Timeout.Error(err)
		}
		return nil, russerr.CannotDial.Error(err)
	}
	return c.(*net.UnixConn), nil
}

// SetDeadline is a small convenience used by callers holding a
// deadline.Deadline instead of a time.Time, translating deadline.Never into
// the zero time.Time net.Conn uses to mean "no deadline".
func SetDeadline(conn *net.UnixConn, dl deadline.Deadline) error {
	if dl == deadline.Never {
		return conn.SetDeadline(time.Time{})
	}
	return conn.SetDeadline(time.Now().Add(dl.Remaining()))
}

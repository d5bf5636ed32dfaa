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

package fdpass_test

import (
	"net"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/sys/unix"

	"github.com/johnm-dev/russng/deadline"
	russerr "github.com/johnm-dev/russng/errors"
	"github.com/johnm-dev/russng/fdpass"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestFdpass(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "fdpass Suite")
}

func socketpairConns() (*net.UnixConn, *net.UnixConn) {
	fds, err := unix.Socketpair(unix.AF_UNIX, unix.SOCK_STREAM, 0)
	Expect(err).ToNot(HaveOccurred())

	f0 := os.NewFile(uintptr(fds[0]), "sp0")
	f1 := os.NewFile(uintptr(fds[1]), "sp1")

	c0, err := net.FileConn(f0)
	Expect(err).ToNot(HaveOccurred())
	c1, err := net.FileConn(f1)
	Expect(err).ToNot(HaveOccurred())
	f0.Close()
	f1.Close()

	return c0.(*net.UnixConn), c1.(*net.UnixConn)
}

var _ = Describe("Announce/Dial", func() {
	It("binds a listening socket and accepts a dialed connection", func() {
		dir, err := os.MkdirTemp("", "fdpass")
		Expect(err).ToNot(HaveOccurred())
		defer os.RemoveAll(dir)

		saddr := filepath.Join(dir, "s.sock")
		l, err := fdpass.Announce(saddr, fdpass.AnnounceOptions{Mode: 0700, Uid: -1, Gid: -1})
		Expect(err).ToNot(HaveOccurred())
		defer l.Close()

		accepted := make(chan error, 1)
		go func() {
			conn, err := l.Accept()
			if err == nil {
				conn.Close()
			}
			accepted <- err
		}()

		client, err := fdpass.Dial(saddr, deadline.Never)
		Expect(err).ToNot(HaveOccurred())
		defer client.Close()

		Expect(<-accepted).ToNot(HaveOccurred())
	})

	It("unlinks a stale socket left by a previous instance", func() {
		dir, err := os.MkdirTemp("", "fdpass")
		Expect(err).ToNot(HaveOccurred())
		defer os.RemoveAll(dir)

		saddr := filepath.Join(dir, "s.sock")
		l1, err := fdpass.Announce(saddr, fdpass.AnnounceOptions{Uid: -1, Gid: -1})
		Expect(err).ToNot(HaveOccurred())
		l1.Close()

		l2, err := fdpass.Announce(saddr, fdpass.AnnounceOptions{Uid: -1, Gid: -1})
		Expect(err).ToNot(HaveOccurred())
		l2.Close()
	})

	It("reports CannotDial when nothing is listening", func() {
		dir, err := os.MkdirTemp("", "fdpass")
		Expect(err).ToNot(HaveOccurred())
		defer os.RemoveAll(dir)

		_, err = fdpass.Dial(filepath.Join(dir, "nothing.sock"), deadline.Never)
		Expect(err).To(HaveOccurred())
		Expect(russerr.CannotDial.Is(err)).To(BeTrue())
	})
})

var _ = Describe("SendFDs/RecvFDs", func() {
	It("carries a connection-event byte with no descriptors", func() {
		c0, c1 := socketpairConns()
		defer c0.Close()
		defer c1.Close()

		Expect(fdpass.SendFDs(c0, 0x01, nil)).To(Succeed())

		b, fds, err := fdpass.RecvFDs(c1)
		Expect(err).ToNot(HaveOccurred())
		Expect(b).To(Equal(byte(0x01)))
		Expect(fds).To(BeEmpty())
	})

	It("passes open file descriptors across the connection", func() {
		c0, c1 := socketpairConns()
		defer c0.Close()
		defer c1.Close()

		r, w, err := os.Pipe()
		Expect(err).ToNot(HaveOccurred())
		defer r.Close()

		Expect(fdpass.SendFDs(c0, 0x00, []int{int(w.Fd())})).To(Succeed())
		w.Close()

		b, fds, err := fdpass.RecvFDs(c1)
		Expect(err).ToNot(HaveOccurred())
		Expect(b).To(Equal(byte(0x00)))
		Expect(fds).To(HaveLen(1))

		got := os.NewFile(uintptr(fds[0]), "got")
		defer got.Close()

		_, werr := got.Write([]byte("hi"))
		Expect(werr).ToNot(HaveOccurred())
		got.Close()

		buf := make([]byte, 2)
		n, rerr := r.Read(buf)
		Expect(rerr).ToNot(HaveOccurred())
		Expect(string(buf[:n])).To(Equal("hi"))
	})
})

var _ = Describe("PeerCredentials", func() {
	It("reports the caller's own uid/gid over a connected pair", func() {
		c0, c1 := socketpairConns()
		defer c0.Close()
		defer c1.Close()

		creds, err := fdpass.PeerCredentials(c0)
		Expect(err).ToNot(HaveOccurred())
		Expect(creds.Uid).To(Equal(uint32(os.Getuid())))
		Expect(creds.Gid).To(Equal(uint32(os.Getgid())))
	})
})

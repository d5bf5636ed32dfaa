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

package server_test

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/johnm-dev/russng/client"
	"github.com/johnm-dev/russng/config"
	"github.com/johnm-dev/russng/deadline"
	"github.com/johnm-dev/russng/exitcode"
	"github.com/johnm-dev/russng/fdpass"
	"github.com/johnm-dev/russng/server"
	"github.com/johnm-dev/russng/waitkind"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// startServer announces saddr, builds root with the standard test tree
// (echo, daytime, admin/restart+reload with no handler, a help-equipped
// root), starts s in THREAD mode, and returns it for the caller to Close.
func startServer(saddr string) (*server.Server, *server.Node) {
	root := server.NewRoot()
	root.SetHandler(server.HandlerFunc(func(s *server.Session) {
		s.Conn.Answer(3)
		io.WriteString(s.Conn.Stdout(), "root help text\n")
		s.Conn.Exit(exitcode.Success)
	}))

	root.Add("echo").SetHandler(server.HandlerFunc(func(s *server.Session) {
		s.Conn.Answer(3)
		io.Copy(s.Conn.Stdout(), s.Conn.Stdin())
		s.Conn.Exit(exitcode.Success)
	}))

	root.Add("daytime").SetHandler(server.HandlerFunc(func(s *server.Session) {
		s.Conn.Answer(3)
		io.WriteString(s.Conn.Stdout(), "Thu Jul 30 00:00:00 2026\n")
		s.Conn.Exit(exitcode.Success)
	}))

	root.Add("admin/restart")
	root.Add("admin/reload")

	l, err := fdpass.Announce(saddr, fdpass.AnnounceOptions{Uid: -1, Gid: -1})
	Expect(err).ToNot(HaveOccurred())

	cfg := config.ServerConfig{AwaitTimeoutMs: 2000}
	s := server.New(root, cfg, server.Thread)
	go s.Serve(l)

	return s, root
}

var _ = Describe("Server end-to-end", func() {
	var saddr string
	var srv *server.Server

	BeforeEach(func() {
		saddr = filepath.Join(GinkgoT().TempDir(), "russ.sock")
		srv, _ = startServer(saddr)
		time.Sleep(20 * time.Millisecond)
	})

	AfterEach(func() {
		srv.Close()
		os.Remove(saddr)
	})

	It("echoes stdin back on stdout", func() {
		res, err := client.DialWaitInOutErr(saddr, deadline.FromMillis(2000), "execute", "/echo", nil, nil, "hello world")
		Expect(err).ToNot(HaveOccurred())
		Expect(res.Kind).To(Equal(waitkind.OK))
		Expect(res.Status).To(Equal(exitcode.Success))
		Expect(string(res.Stdout)).To(Equal("hello world"))
	})

	It("runs a fixed-output service", func() {
		res, err := client.DialWaitInOutErr(saddr, deadline.FromMillis(2000), "execute", "/daytime", nil, nil, "")
		Expect(err).ToNot(HaveOccurred())
		Expect(res.Status).To(Equal(exitcode.Success))
		Expect(string(res.Stdout)).To(ContainSubstring("2026"))
	})

	It("lists children of a handler-less node", func() {
		res, err := client.DialWaitInOutErr(saddr, deadline.FromMillis(2000), "list", "/admin", nil, nil, "")
		Expect(err).ToNot(HaveOccurred())
		Expect(res.Status).To(Equal(exitcode.Success))
		Expect(string(res.Stdout)).To(Equal("reload\nrestart\n"))
	})

	It("fails over to the root handler for help on a handler-less node", func() {
		res, err := client.DialWaitInOutErr(saddr, deadline.FromMillis(2000), "help", "/admin/restart", nil, nil, "")
		Expect(err).ToNot(HaveOccurred())
		Expect(res.Status).To(Equal(exitcode.Success))
		Expect(string(res.Stdout)).To(Equal("root help text\n"))
	})

	It("reports no service for an unresolved spath", func() {
		res, err := client.DialWaitInOutErr(saddr, deadline.FromMillis(2000), "execute", "/nosuchservice", nil, nil, "")
		Expect(err).ToNot(HaveOccurred())
		Expect(res.Status).To(Equal(exitcode.Failure))
		Expect(string(res.Stderr)).To(ContainSubstring("no service"))
	})

	It("serves many concurrent clients each with their own fds", func() {
		const n = 8
		results := make(chan string, n)
		for i := 0; i < n; i++ {
			go func(i int) {
				in := fmt.Sprintf("client-%d", i)
				res, err := client.DialWaitInOutErr(saddr, deadline.FromMillis(2000), "execute", "/echo", nil, nil, in)
				if err != nil {
					results <- "ERR:" + err.Error()
					return
				}
				results <- string(res.Stdout)
			}(i)
		}
		seen := make(map[string]bool, n)
		for i := 0; i < n; i++ {
			seen[<-results] = true
		}
		for i := 0; i < n; i++ {
			Expect(seen[fmt.Sprintf("client-%d", i)]).To(BeTrue())
		}
	})
})

var _ = Describe("Virtual node splice proxying", func() {
	It("forwards an upstream client straight through to a downstream service", func() {
		downAddr := filepath.Join(GinkgoT().TempDir(), "russ-downstream.sock")
		downRoot := server.NewRoot()
		downRoot.Add("echo").SetHandler(server.HandlerFunc(func(s *server.Session) {
			s.Conn.Answer(3)
			io.Copy(s.Conn.Stdout(), s.Conn.Stdin())
			s.Conn.Exit(exitcode.Success)
		}))
		downL, err := fdpass.Announce(downAddr, fdpass.AnnounceOptions{Uid: -1, Gid: -1})
		Expect(err).ToNot(HaveOccurred())
		downSrv := server.New(downRoot, config.ServerConfig{AwaitTimeoutMs: 2000}, server.Thread)
		go downSrv.Serve(downL)
		defer downSrv.Close()

		upAddr := filepath.Join(GinkgoT().TempDir(), "russ-upstream.sock")
		upRoot := server.NewRoot()
		upRoot.Add("proxy").SetVirtual(true).SetHandler(server.HandlerFunc(func(s *server.Session) {
			if err := s.Conn.RedialAndSplice(downAddr, deadline.FromMillis(2000), "execute", "/echo", nil, nil); err != nil {
				s.Conn.Fatal("error: call failure", exitcode.CallFailure)
			}
		}))
		upL, err := fdpass.Announce(upAddr, fdpass.AnnounceOptions{Uid: -1, Gid: -1})
		Expect(err).ToNot(HaveOccurred())
		upSrv := server.New(upRoot, config.ServerConfig{AwaitTimeoutMs: 2000}, server.Thread)
		go upSrv.Serve(upL)
		defer upSrv.Close()

		time.Sleep(20 * time.Millisecond)

		res, err := client.DialWaitInOutErr(upAddr, deadline.FromMillis(2000), "execute", "/proxy/anything", nil, nil, "through the proxy")
		Expect(err).ToNot(HaveOccurred())
		Expect(res.Status).To(Equal(exitcode.Success))
		Expect(string(res.Stdout)).To(Equal("through the proxy"))
	})
})

var _ = Describe("Server closeonaccept", func() {
	It("accepts exactly one connection then stops", func() {
		saddr := filepath.Join(GinkgoT().TempDir(), "russ-single.sock")
		root := server.NewRoot()
		root.Add("echo").SetHandler(server.HandlerFunc(func(s *server.Session) {
			s.Conn.Answer(3)
			io.Copy(s.Conn.Stdout(), s.Conn.Stdin())
			s.Conn.Exit(exitcode.Success)
		}))

		l, err := fdpass.Announce(saddr, fdpass.AnnounceOptions{Uid: -1, Gid: -1})
		Expect(err).ToNot(HaveOccurred())

		cfg := config.ServerConfig{AwaitTimeoutMs: 2000, CloseOnAccept: true}
		s := server.New(root, cfg, server.Thread)
		done := make(chan error, 1)
		go func() { done <- s.Serve(l) }()
		time.Sleep(20 * time.Millisecond)

		res, err := client.DialWaitInOutErr(saddr, deadline.FromMillis(2000), "execute", "/echo", nil, nil, "once")
		Expect(err).ToNot(HaveOccurred())
		Expect(string(res.Stdout)).To(Equal("once"))

		Eventually(done, time.Second).Should(Receive(BeNil()))

		_, err = client.Dial(saddr, deadline.FromMillis(500), "execute", "/echo", nil, nil)
		Expect(err).To(HaveOccurred())
	})
})

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
	"net"
	"os"
	"sync"

	"github.com/johnm-dev/russng/config"
	"github.com/johnm-dev/russng/deadline"
	russerr "github.com/johnm-dev/russng/errors"
	"github.com/johnm-dev/russng/logging"
)

// Kind selects a Server's concurrency model.
type Kind int

const (
	// Thread spawns a goroutine per accepted connection.
	Thread Kind = iota
	// Fork re-executes the server binary per accepted connection, handing
	// it the accepted connection's fd. See fork.go for why this replaces
	// the classic double-fork.
	Fork
)

func (k Kind) String() string {
	if k == Fork {
		return "FORK"
	}
	return "THREAD"
}

// Server owns the root service node, the listening socket, and the
// timeouts/flags that govern the accept loop. The zero value is not
// usable; construct with New.
type Server struct {
	root *Node
	kind Kind

	// acceptTimeoutMs/awaitTimeoutMs are durations, not absolute
	// deadlines: accepttimeout bounds one accept call and awaittimeout
	// bounds one request decode, each re-armed fresh per connection.
	acceptTimeoutMs int
	awaitTimeoutMs  int

	closeOnAccept   bool
	autoSwitchUser  bool
	allowRootUser   bool
	matchClientUser bool

	help string

	mu       sync.Mutex
	listener *net.UnixListener
	closed   bool
	wg       sync.WaitGroup
}

// New builds a Server for root from cfg, running in the given mode. It
// does not itself open or inherit a socket; call Serve with a *net.UnixListener
// (from fdpass.Announce, or from ListenerFromFd for an inherited one).
func New(root *Node, cfg config.ServerConfig, kind Kind) *Server {
	return &Server{
		root:            root,
		kind:            kind,
		acceptTimeoutMs: cfg.AcceptTimeoutMs,
		awaitTimeoutMs:  cfg.AwaitTimeoutMs,
		closeOnAccept:   cfg.CloseOnAccept,
		autoSwitchUser:  cfg.AutoSwitchUser,
		allowRootUser:   cfg.AllowRootUser,
		matchClientUser: cfg.MatchClientUser,
	}
}

// SetHelp attaches the server-wide help text served when the HELP opnum
// reaches a node with no handler of its own and the root has none either.
func (s *Server) SetHelp(text string) *Server {
	s.help = text
	return s
}

// Root returns the server's root service node, for building out the tree
// before Serve is called.
func (s *Server) Root() *Node { return s.root }

// Kind reports the server's concurrency model.
func (s *Server) Kind() Kind { return s.kind }

// ListenerFromFd wraps an already-bound, already-listening socket fd (the
// spawner contract: fd 3 by convention) as a *net.UnixListener.
func ListenerFromFd(fd int) (*net.UnixListener, error) {
	f := os.NewFile(uintptr(fd), "lisd")
	l, err := net.FileListener(f)
	if err != nil {
		return nil, err
	}
	f.Close()
	ul, ok := l.(*net.UnixListener)
	if !ok {
		l.Close()
		return nil, os.ErrInvalid
	}
	return ul, nil
}

// Serve runs the accept loop against l until it is closed, an accept
// fails terminally, or closeonaccept stops it after the first accepted
// connection. Each accepted connection is handled per s.kind.
func (s *Server) Serve(l *net.UnixListener) error {
	s.mu.Lock()
	s.listener = l
	s.mu.Unlock()

	for {
		conn, err := Accept(l, deadline.FromMillis(int64(s.acceptTimeoutMs)))
		if err != nil {
			if s.isClosed() {
				s.wg.Wait()
				return nil
			}
			if russerr.Timeout.Is(err) {
				continue
			}
			logging.Error(logging.Fields{"kind": s.kind.String()}, "accept failed", err)
			s.wg.Wait()
			return err
		}

		if s.closeOnAccept {
			s.closeListener()
		}

		switch s.kind {
		case Fork:
			s.wg.Add(1)
			go func() {
				defer s.wg.Done()
				s.handleFork(conn)
			}()
		default:
			s.wg.Add(1)
			go func() {
				defer s.wg.Done()
				s.handleThread(conn)
			}()
		}

		if s.closeOnAccept {
			s.wg.Wait()
			return nil
		}
	}
}

func (s *Server) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

func (s *Server) closeListener() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	if s.listener != nil {
		s.listener.Close()
	}
}

// Close stops the accept loop and waits for in-flight connections to
// finish dispatching.
func (s *Server) Close() error {
	s.closeListener()
	s.wg.Wait()
	return nil
}

// handleThread is the THREAD-mode per-connection worker: await the
// request on the caller's own goroutine, enforce the access-control
// flags, then dispatch.
//
// autoswitchuser is not honored here. setuid/setgid apply to the whole
// process on Linux, not to one goroutine, so dropping privileges for one
// concurrent request would drop them for every other request still being
// served by a different goroutine. A THREAD-mode server that needs
// autoswitchuser should run FORK instead, where each connection gets its
// own process.
func (s *Server) handleThread(conn *Sconn) {
	req, err := conn.AwaitRequest(deadline.FromMillis(int64(s.awaitTimeoutMs)))
	if err != nil {
		logging.Warn(logging.Fields{"pid": conn.Credentials().Pid}, "await request failed: "+err.Error())
		conn.Close()
		return
	}

	if err := s.checkAccess(conn); err != nil {
		conn.Fatal("error: insufficient privilege", errAccessStatus)
		conn.Close()
		return
	}

	if s.autoSwitchUser {
		logging.Warn(logging.Fields{"pid": conn.Credentials().Pid},
			"autoswitchuser is ignored in THREAD mode; use FORK")
	}

	s.dispatch(conn, req)
}

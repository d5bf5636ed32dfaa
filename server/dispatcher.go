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
	"io"
	"strings"

	"github.com/johnm-dev/russng/exitcode"
	"github.com/johnm-dev/russng/logging"
	"github.com/johnm-dev/russng/optable"
	"github.com/johnm-dev/russng/wire"
)

const standardFds = 3

// dispatch runs the nine-step dispatch algorithm for one decoded request
// against root, then closes conn. The ordering (autoanswer, then the
// op-specific fallbacks, then the handler, then the failsafe) is
// observable and is not rearranged for convenience.
func (s *Server) dispatch(conn *Sconn, req *wire.Request) {
	defer conn.Close()

	node, remainder := s.root.Find(req.Spath)

	if node.autoanswer {
		if err := conn.Answer(standardFds); err != nil {
			logging.Error(logging.Fields{"spath": req.Spath}, "autoanswer failed", err)
			return
		}
	}

	op := req.Opnum()

	if op == optable.Help && !node.HandlerSet() {
		s.dispatchHelpFallback(conn, req)
		return
	}

	if op == optable.List && !node.HandlerSet() {
		s.dispatchList(conn, node)
		return
	}

	invoked := false
	if node.virtual {
		s.invoke(conn, node, req, remainder)
		invoked = true
	} else if node.HandlerSet() && remainder == "" {
		s.invoke(conn, node, req, "")
		invoked = true
	}

	if !invoked {
		conn.Fatal("error: no service", exitcode.Failure)
		return
	}

	if !conn.Exited() {
		conn.Fatal("error: no exit status", exitcode.SysFailure)
	}
}

func (s *Server) invoke(conn *Sconn, node *Node, req *wire.Request, spath string) {
	sess := &Session{Server: s, Conn: conn, Req: req, Spath: spath}
	node.handler.Invoke(sess)
}

func (s *Server) dispatchHelpFallback(conn *Sconn, req *wire.Request) {
	root := s.root
	if !root.HandlerSet() {
		if s.help != "" {
			if err := conn.Answer(standardFds); err != nil {
				return
			}
			io.WriteString(conn.Stdout(), s.help+"\n")
			conn.Exit(exitcode.Success)
			return
		}
		conn.Fatal("error: unsupported operation", exitcode.Failure)
		return
	}
	s.invoke(conn, root, req, req.Spath)
}

func (s *Server) dispatchList(conn *Sconn, node *Node) {
	if err := conn.Answer(standardFds); err != nil {
		return
	}
	names := node.ChildNames()
	if len(names) > 0 {
		io.WriteString(conn.Stdout(), strings.Join(names, "\n")+"\n")
	}
	conn.Exit(exitcode.Success)
}

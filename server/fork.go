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
	"os/exec"

	"github.com/johnm-dev/russng/deadline"
	"github.com/johnm-dev/russng/logging"
)

// forkConnEnv names the environment variable a re-exec'd FORK worker
// checks to know it should serve an inherited connection. Any non-empty
// value marks the worker; the fd itself is always childConnFd, since
// ExtraFiles places it right after stdin/stdout/stderr.
const forkConnEnv = "RUSS_FORK_CONN_FD"

// childConnFd is the fd number the accepted connection lands on inside
// the re-exec'd child: fds 0-2 are the inherited stdio, so ExtraFiles[0]
// becomes fd 3.
const childConnFd = 3

// handleFork is the FORK-mode per-connection worker. Raw fork(2) does not
// mix safely with the Go runtime's goroutine scheduler (a forked child
// keeps only the calling goroutine's stack but the whole heap, and any
// other goroutine holding a lock at fork time deadlocks the child), so
// FORK here re-executes the current binary instead: the accepted
// connection's fd is handed to the child via Cmd.ExtraFiles, and the
// child (see RunForkedConn) picks it up, serves exactly one request, and
// exits. The parent reaps the child with a goroutine running Cmd.Wait,
// which plays the role the double-fork/waitpid dance played in the
// original design: no zombies accumulate and the accept loop is never
// blocked waiting for a child to finish.
func (s *Server) handleFork(conn *Sconn) {
	f, err := conn.takeConnFile()
	if err != nil {
		logging.Error(logging.Fields{"pid": conn.Credentials().Pid}, "fork handoff failed", err)
		conn.Close()
		return
	}
	defer f.Close()

	exe, err := os.Executable()
	if err != nil {
		logging.Error(logging.Fields{}, "fork handoff failed: cannot resolve executable", err)
		return
	}

	cmd := exec.Command(exe, os.Args[1:]...)
	cmd.ExtraFiles = []*os.File{f}
	cmd.Env = append(os.Environ(), forkConnEnv+"=1")
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Start(); err != nil {
		logging.Error(logging.Fields{"pid": conn.Credentials().Pid}, "fork exec failed", err)
		return
	}

	if err := cmd.Wait(); err != nil {
		logging.Warn(logging.Fields{"pid": conn.Credentials().Pid, "child_pid": cmd.Process.Pid},
			"forked worker exited: "+err.Error())
	}
}

// ForkWorkerRequested reports whether the current process was re-exec'd
// by handleFork to serve a single handed-off connection, so main can
// branch into RunForkedConn instead of starting a fresh listener.
func ForkWorkerRequested() bool {
	return os.Getenv(forkConnEnv) != ""
}

// RunForkedConn is the entry point a re-exec'd FORK child calls: it wraps
// the inherited fd as an Sconn, reads peer credentials, and serves the one
// request against root under cfg's timeouts. The request's exit status
// goes to the client over the sysfd; nothing is returned. Exactly one
// connection is served; the child always exits afterward.
func RunForkedConn(s *Server) {
	conn, err := sconnFromFd(childConnFd)
	if err != nil {
		logging.Error(logging.Fields{}, "forked worker: cannot wrap inherited fd", err)
		return
	}

	if err := s.checkAccess(conn); err != nil {
		conn.Fatal("error: insufficient privilege", errAccessStatus)
		conn.Close()
		return
	}

	if s.autoSwitchUser {
		if err := dropPrivileges(conn.Credentials()); err != nil {
			logging.Error(logging.Fields{"pid": conn.Credentials().Pid}, "autoswitchuser failed", err)
			conn.Fatal("error: cannot switch user", errAccessStatus)
			conn.Close()
			return
		}
	}

	req, err := conn.AwaitRequest(deadline.FromMillis(int64(s.awaitTimeoutMs)))
	if err != nil {
		logging.Warn(logging.Fields{"pid": conn.Credentials().Pid}, "await request failed: "+err.Error())
		conn.Close()
		return
	}

	s.dispatch(conn, req)
}

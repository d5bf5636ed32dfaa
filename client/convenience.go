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
	"strings"

	"github.com/johnm-dev/russng/buffer"
	"github.com/johnm-dev/russng/deadline"
	"github.com/johnm-dev/russng/exitcode"
	"github.com/johnm-dev/russng/relay"
	"github.com/johnm-dev/russng/waitkind"
)

// Result is the outcome of a captured-streams dial: the relay's wait kind,
// the exit status (meaningful only when Kind == waitkind.OK), and whatever
// the service wrote to stdout/stderr.
type Result struct {
	Kind      waitkind.Kind
	Status    exitcode.Status
	Stdout    []byte
	Stderr    []byte
	Truncated bool
}

// DialWaitInOutErr dials spath, feeds in as the service's stdin, relays its
// stdout/stderr into capacity-bounded buffers, and waits for its exit
// status, all against dl. This is the "dial-and-wait-with-captured-streams"
// entry point most short-lived callers (CLIs, health checks) want.
func DialWaitInOutErr(saddr string, dl deadline.Deadline, op, spath string, attrs, args []string, in string) (Result, error) {
	c, err := Dial(saddr, dl, op, spath, attrs, args)
	if err != nil {
		return Result{}, err
	}
	defer c.Close()

	out := buffer.New(buffer.DefaultCap)
	errBuf := buffer.New(buffer.DefaultCap)

	pairs := []relay.Pair{
		{Src: strings.NewReader(in), Dst: c.Stdin()},
		{Src: c.Stdout(), Dst: out},
		{Src: c.Stderr(), Dst: errBuf},
	}
	relay.Relay(pairs, nil, dl)

	kind, status := c.Wait(dl)

	return Result{
		Kind:      kind,
		Status:    status,
		Stdout:    out.Bytes(),
		Stderr:    errBuf.Bytes(),
		Truncated: out.Truncated() || errBuf.Truncated(),
	}, nil
}

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

package waitkind

// Kind classifies the outcome of a wait/relay call on the client side. It is
// a parallel taxonomy to the exit code space: exitStatus is only meaningful
// when Kind == OK.
type Kind int

const (
	// OK is a clean read of the exit status (or, for a relay, a clean drain).
	OK Kind = 0
	// Unset means wait has not been attempted yet.
	Unset Kind = 1
	// Failure is an unexpected I/O error on the exit channel.
	Failure Kind = -1
	// BadFd means the exit fd was never valid.
	BadFd Kind = -2
	// Timeout means the deadline expired before a result was available.
	Timeout Kind = -3
	// Hup means EOF on the exit channel before a status was written.
	Hup Kind = -4
)

var names = map[Kind]string{
	OK:      "OK",
	Unset:   "UNSET",
	Failure: "FAILURE",
	BadFd:   "BADFD",
	Timeout: "TIMEOUT",
	Hup:     "HUP",
}

// String renders the canonical name of k.
func (k Kind) String() string {
	if s, ok := names[k]; ok {
		return s
	}
	return "UNKNOWN"
}

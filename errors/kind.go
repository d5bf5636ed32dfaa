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

package errors

// FuncMap is the visitor Error.Map calls for itself and each of its
// parents, in order. Returning false stops the walk early.
type FuncMap func(e error) bool

// Kind classifies a failure raised anywhere in the protocol engine.
type Kind uint8

const (
	// None marks an Error with no specific classification.
	None Kind = iota
	// BadArgs is a malformed input caught before any syscall.
	BadArgs
	// CannotAnnounce is a bind/listen/chmod/chown failure while creating a listening socket.
	CannotAnnounce
	// CannotDial is connect-refused, a missing saddr, or a permission failure.
	CannotDial
	// BadProtocol is a protocol tag mismatch or a truncated frame.
	BadProtocol
	// Timeout is a deadline expiring on accept/await/wait/relay.
	Timeout
	// NoService is an unresolved spath with no virtual ancestor.
	NoService
	// BadOp is an opnum unsupported by the target node.
	BadOp
	// NoAccess is a matchclientuser rejection.
	NoAccess
	// SysFailure is an unexpected syscall failure.
	SysFailure
	// CallFailure is a downstream dial failure observed by a handler.
	CallFailure
	// ExitFdClosed is an EOF on the exit channel before a status was written.
	ExitFdClosed
)

var kindMessage = map[Kind]string{
	None:           "no error",
	BadArgs:        "bad/missing arguments",
	CannotAnnounce: "cannot announce service",
	CannotDial:     "cannot dial service",
	BadProtocol:    "bad protocol",
	Timeout:        "timeout",
	NoService:      "no service",
	BadOp:          "unsupported operation",
	NoAccess:       "insufficient privilege",
	SysFailure:     "system failure",
	CallFailure:    "call failure",
	ExitFdClosed:   "no exit status",
}

// String returns the default human-readable message for the kind.
func (k Kind) String() string {
	if m, ok := kindMessage[k]; ok {
		return m
	}
	return "unknown error"
}

// Error builds a new Error of this kind carrying the kind's default message
// (String), with the given parents attached.
func (k Kind) Error(parent ...error) Error {
	return New(k, k.String(), parent...)
}

// Errorf builds a new Error of this kind with a formatted message.
func (k Kind) Errorf(pattern string, args ...any) Error {
	return Newf(k, pattern, args...)
}

// Is reports whether err is a RUSS Error of this kind, at any depth of its parent chain.
func (k Kind) Is(err error) bool {
	return Has(err, k)
}

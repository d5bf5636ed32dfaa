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

import (
	"errors"
)

// Error is the interface every failure raised by the protocol engine implements.
// It is safe for concurrent reads; Add is not safe to call concurrently with
// itself or with a read of the same Error.
type Error interface {
	error

	// Kind returns the classification of this error (not its parents).
	Kind() Kind
	// HasKind reports whether this error or any parent carries the given kind.
	HasKind(k Kind) bool

	// Add attaches non-nil errors as parents of this one.
	Add(parent ...error)
	// Parents returns a copy of the direct parents, in the order they were added.
	Parents() []error
	// Unwrap gives errors.Is/errors.As access to the parent chain.
	Unwrap() []error

	// Map visits this error then each parent in order; it stops early if fn returns false.
	Map(fn FuncMap) bool

	// Trace returns the "file#line" the error was created at, if known.
	Trace() string
}

type rerr struct {
	k Kind
	m string
	p []error
	f string
}

func (e *rerr) Error() string {
	if e.k == None {
		return e.m
	}
	return e.m
}

func (e *rerr) Kind() Kind {
	return e.k
}

func (e *rerr) HasKind(k Kind) bool {
	if e.k == k {
		return true
	}
	for _, p := range e.p {
		if Has(p, k) {
			return true
		}
	}
	return false
}

func (e *rerr) Add(parent ...error) {
	for _, v := range parent {
		if v == nil {
			continue
		}
		e.p = append(e.p, v)
	}
}

func (e *rerr) Parents() []error {
	out := make([]error, 0, len(e.p))
	out = append(out, e.p...)
	return out
}

func (e *rerr) Unwrap() []error {
	if len(e.p) == 0 {
		return nil
	}
	return e.p
}

func (e *rerr) Map(fn FuncMap) bool {
	if !fn(e) {
		return false
	}
	for _, p := range e.p {
		if !fn(p) {
			return false
		}
	}
	return true
}

func (e *rerr) Trace() string {
	return e.f
}

// New creates an Error of the given kind with a literal message.
func New(k Kind, message string, parent ...error) Error {
	e := &rerr{k: k, m: message, f: frame()}
	e.Add(parent...)
	return e
}

// Newf creates an Error of the given kind with a formatted message.
func Newf(k Kind, pattern string, args ...any) Error {
	return New(k, sprintf(pattern, args...))
}

// Is reports whether err is (or wraps) a RUSS Error.
func Is(err error) bool {
	var e Error
	return errors.As(err, &e)
}

// Get returns err as an Error if it is one, or nil otherwise.
func Get(err error) Error {
	var e Error
	if errors.As(err, &e) {
		return e
	}
	return nil
}

// Has reports whether err or any of its parents carries the given kind.
func Has(err error, k Kind) bool {
	if e := Get(err); e != nil {
		return e.HasKind(k)
	}
	return false
}

// Wrap converts a plain error into an Error of the given kind, preserving
// it as a parent. A nil input returns nil. An input that is already an
// Error of the requested kind is returned unchanged.
func Wrap(k Kind, err error) Error {
	if err == nil {
		return nil
	}
	if e := Get(err); e != nil && e.Kind() == k {
		return e
	}
	return New(k, err.Error(), err)
}

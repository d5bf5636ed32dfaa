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

package wire

import (
	"strings"

	russerr "github.com/johnm-dev/russng/errors"
	"github.com/johnm-dev/russng/optable"
)

const (
	// ProtocolTag is the 4-ASCII-character version this codec implements.
	ProtocolTag = "0010"
	// MaxSpath is the largest spath this codec will encode or accept.
	MaxSpath = 8192
	// MaxVector is the largest number of entries attrv or argv may hold.
	MaxVector = 1024
)

// Request is the immutable value a client sends and a server decodes: an
// operation against a service path, with attributes and arguments.
type Request struct {
	Tag   string
	Op    string
	Spath string
	Attrs []string
	Args  []string
}

// Opnum classifies Op through the canonical operation table.
func (r *Request) Opnum() optable.Op {
	return optable.Lookup(r.Op)
}

// NewRequest builds a Request with the current protocol tag, ready to Validate and Encode.
func NewRequest(op, spath string, attrs, args []string) *Request {
	return &Request{Tag: ProtocolTag, Op: op, Spath: spath, Attrs: attrs, Args: args}
}

// Attr returns the value of the first attribute named key ("KEY=VALUE"), and
// whether it was present.
func (r *Request) Attr(key string) (string, bool) {
	for _, kv := range r.Attrs {
		k, v, ok := splitAttr(kv)
		if ok && k == key {
			return v, true
		}
	}
	return "", false
}

func splitAttr(kv string) (key, value string, ok bool) {
	i := strings.IndexByte(kv, '=')
	if i < 0 {
		return "", "", false
	}
	return kv[:i], kv[i+1:], true
}

// Validate reports a BadArgs error if Spath, Attrs or Args exceed the wire
// bounds, and a BadProtocol error if the protocol tag is set but does not
// match ProtocolTag. It is
// meant to run before any fd is passed, on both dial and decode paths.
func (r *Request) Validate() russerr.Error {
	if r.Tag != "" && r.Tag != ProtocolTag {
		return russerr.BadProtocol.Errorf("protocol tag %q does not match %q", r.Tag, ProtocolTag)
	}
	if len(r.Spath) > MaxSpath {
		return russerr.BadArgs.Errorf("spath length %d exceeds %d bytes", len(r.Spath), MaxSpath)
	}
	if len(r.Attrs) > MaxVector {
		return russerr.BadArgs.Errorf("attrv length %d exceeds %d entries", len(r.Attrs), MaxVector)
	}
	if len(r.Args) > MaxVector {
		return russerr.BadArgs.Errorf("argv length %d exceeds %d entries", len(r.Args), MaxVector)
	}
	return nil
}

// Equal reports whether two requests carry the same fields, for round-trip
// tests (decode(encode(r)) == r).
func (r *Request) Equal(o *Request) bool {
	if r == nil || o == nil {
		return r == o
	}
	if r.Tag != o.Tag || r.Op != o.Op || r.Spath != o.Spath {
		return false
	}
	return stringsEqual(r.Attrs, o.Attrs) && stringsEqual(r.Args, o.Args)
}

func stringsEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

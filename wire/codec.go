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
	"encoding/binary"
	"io"

	russerr "github.com/johnm-dev/russng/errors"
)

// maxStringBytes bounds any single length-prefixed string this codec will
// decode, independent of the spath/vector bounds enforced by Validate. It
// guards against a corrupt or hostile length field driving an enormous
// allocation; it is not part of the wire contract.
const maxStringBytes = 1 << 20

// Encode writes r to w in the "0010" wire format. The caller should call
// r.Validate first; Encode itself only guards against an empty Tag.
func Encode(w io.Writer, r *Request) error {
	tag := r.Tag
	if tag == "" {
		tag = ProtocolTag
	}
	if _, err := io.WriteString(w, tag); err != nil {
		return russerr.SysFailure.Error(err)
	}
	if err := writeString(w, r.Op); err != nil {
		return err
	}
	if err := writeString(w, r.Spath); err != nil {
		return err
	}
	if err := writeVector(w, r.Attrs); err != nil {
		return err
	}
	if err := writeVector(w, r.Args); err != nil {
		return err
	}
	return nil
}

// Decode reads one Request from r, enforcing the protocol tag and the
// spath/vector bounds as it goes so a hostile peer cannot force an
// unbounded read before the frame is rejected.
func Decode(r io.Reader) (*Request, error) {
	var tag [4]byte
	if _, err := io.ReadFull(r, tag[:]); err != nil {
		return nil, russerr.BadProtocol.Error(err)
	}
	if string(tag[:]) != ProtocolTag {
		return nil, russerr.BadProtocol.Errorf("protocol tag %q does not match %q", tag[:], ProtocolTag)
	}

	op, err := readString(r)
	if err != nil {
		return nil, err
	}
	spath, err := readString(r)
	if err != nil {
		return nil, err
	}
	if len(spath) > MaxSpath {
		return nil, russerr.BadArgs.Errorf("spath length %d exceeds %d bytes", len(spath), MaxSpath)
	}

	attrs, err := readVector(r)
	if err != nil {
		return nil, err
	}
	args, err := readVector(r)
	if err != nil {
		return nil, err
	}

	return &Request{Tag: string(tag[:]), Op: op, Spath: spath, Attrs: attrs, Args: args}, nil
}

func writeString(w io.Writer, s string) error {
	var lenBuf [4]byte
	binary.BigEndian.PutUint32(lenBuf[:], uint32(len(s)))
	if _, err := w.Write(lenBuf[:]); err != nil {
		return russerr.SysFailure.Error(err)
	}
	if len(s) == 0 {
		return nil
	}
	if _, err := io.WriteString(w, s); err != nil {
		return russerr.SysFailure.Error(err)
	}
	return nil
}

func readString(r io.Reader) (string, error) {
	var lenBuf [4]byte
	if _, err := io.ReadFull(r, lenBuf[:]); err != nil {
		return "", russerr.BadProtocol.Error(err)
	}
	n := binary.BigEndian.Uint32(lenBuf[:])
	if n == 0 {
		return "", nil
	}
	if n > maxStringBytes {
		return "", russerr.BadArgs.Errorf("string length %d exceeds %d bytes", n, maxStringBytes)
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", russerr.BadProtocol.Error(err)
	}
	return string(buf), nil
}

// writeVector writes each entry then a zero-length sentinel.
func writeVector(w io.Writer, v []string) error {
	for _, s := range v {
		if err := writeString(w, s); err != nil {
			return err
		}
	}
	return writeString(w, "")
}

// readVector reads entries until the zero-length sentinel, rejecting a
// vector that grows past MaxVector before the sentinel arrives.
func readVector(r io.Reader) ([]string, error) {
	var v []string
	for {
		s, err := readString(r)
		if err != nil {
			return nil, err
		}
		if s == "" {
			return v, nil
		}
		if len(v) >= MaxVector {
			return nil, russerr.BadArgs.Errorf("vector exceeds %d entries", MaxVector)
		}
		v = append(v, s)
	}
}

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

package wire_test

import (
	"bytes"
	"strings"
	"testing"

	russerr "github.com/johnm-dev/russng/errors"
	"github.com/johnm-dev/russng/optable"
	"github.com/johnm-dev/russng/wire"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestWire(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "wire Suite")
}

var _ = Describe("Encode/Decode round trip", func() {
	It("decode(encode(r)) == r for a typical request", func() {
		r := wire.NewRequest("execute", "/echo", []string{"TERM=xterm"}, []string{"-n"})

		var buf bytes.Buffer
		Expect(wire.Encode(&buf, r)).To(Succeed())

		got, err := wire.Decode(&buf)
		Expect(err).ToNot(HaveOccurred())
		Expect(got.Equal(r)).To(BeTrue())
		Expect(got.Opnum()).To(Equal(optable.Execute))
	})

	It("round-trips a request with empty attrv and argv", func() {
		r := wire.NewRequest("list", "/", nil, nil)

		var buf bytes.Buffer
		Expect(wire.Encode(&buf, r)).To(Succeed())

		got, err := wire.Decode(&buf)
		Expect(err).ToNot(HaveOccurred())
		Expect(got.Attrs).To(BeEmpty())
		Expect(got.Args).To(BeEmpty())
	})

	It("round-trips a request with a root spath", func() {
		r := wire.NewRequest("help", "", nil, nil)

		var buf bytes.Buffer
		Expect(wire.Encode(&buf, r)).To(Succeed())

		got, err := wire.Decode(&buf)
		Expect(err).ToNot(HaveOccurred())
		Expect(got.Equal(r)).To(BeTrue())
	})
})

var _ = Describe("Protocol tag", func() {
	It("rejects a tag that does not match \"0010\"", func() {
		var buf bytes.Buffer
		buf.WriteString("9999")

		_, err := wire.Decode(&buf)
		Expect(err).To(HaveOccurred())
		Expect(russerr.Has(err, russerr.BadProtocol)).To(BeTrue())
	})

	It("rejects a truncated frame", func() {
		var buf bytes.Buffer
		buf.WriteString("001") // only 3 of 4 tag bytes

		_, err := wire.Decode(&buf)
		Expect(err).To(HaveOccurred())
		Expect(russerr.Has(err, russerr.BadProtocol)).To(BeTrue())
	})

	It("rejects a frame truncated mid-string", func() {
		r := wire.NewRequest("execute", "/echo", nil, nil)
		var full bytes.Buffer
		Expect(wire.Encode(&full, r)).To(Succeed())

		_, err := wire.Decode(bytes.NewReader(full.Bytes()[:6]))
		Expect(err).To(HaveOccurred())
		Expect(russerr.Has(err, russerr.BadProtocol)).To(BeTrue())
	})
})

var _ = Describe("Validate", func() {
	It("rejects a spath longer than 8192 bytes", func() {
		r := wire.NewRequest("execute", strings.Repeat("a", wire.MaxSpath+1), nil, nil)
		err := r.Validate()
		Expect(err).ToNot(BeNil())
		Expect(err.Kind()).To(Equal(russerr.BadArgs))
	})

	It("rejects attrv longer than 1024 entries", func() {
		attrs := make([]string, wire.MaxVector+1)
		for i := range attrs {
			attrs[i] = "K=V"
		}
		r := wire.NewRequest("execute", "/x", attrs, nil)
		err := r.Validate()
		Expect(err).ToNot(BeNil())
		Expect(err.Kind()).To(Equal(russerr.BadArgs))
	})

	It("rejects argv longer than 1024 entries", func() {
		args := make([]string, wire.MaxVector+1)
		r := wire.NewRequest("execute", "/x", nil, args)
		err := r.Validate()
		Expect(err).ToNot(BeNil())
		Expect(err.Kind()).To(Equal(russerr.BadArgs))
	})

	It("accepts a request within all bounds", func() {
		r := wire.NewRequest("execute", "/x", []string{"A=B"}, []string{"y"})
		Expect(r.Validate()).To(BeNil())
	})

	It("rejects a mismatched protocol tag", func() {
		r := wire.NewRequest("execute", "/x", nil, nil)
		r.Tag = "0001"
		err := r.Validate()
		Expect(err).ToNot(BeNil())
		Expect(err.Kind()).To(Equal(russerr.BadProtocol))
	})
})

var _ = Describe("Request.Attr", func() {
	It("splits on the first '=' and returns the value", func() {
		r := wire.NewRequest("execute", "/x", []string{"KEY=VALUE=WITH=EQUALS"}, nil)
		v, ok := r.Attr("KEY")
		Expect(ok).To(BeTrue())
		Expect(v).To(Equal("VALUE=WITH=EQUALS"))
	})

	It("reports not-found for a missing key", func() {
		r := wire.NewRequest("execute", "/x", nil, nil)
		_, ok := r.Attr("MISSING")
		Expect(ok).To(BeFalse())
	})
})

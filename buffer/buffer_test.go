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

package buffer_test

import (
	"io"
	"testing"

	"github.com/johnm-dev/russng/buffer"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestBuffer(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "buffer Suite")
}

var _ = Describe("Buffer", func() {
	It("grows as bytes are written, up to its capacity", func() {
		b := buffer.New(16)
		n, err := b.Write([]byte("hello"))
		Expect(err).ToNot(HaveOccurred())
		Expect(n).To(Equal(5))
		Expect(b.Len()).To(Equal(5))
		Expect(b.Cap()).To(Equal(16))
	})

	It("silently truncates writes past its capacity", func() {
		b := buffer.New(4)
		_, _ = b.Write([]byte("hello world"))
		Expect(b.Len()).To(Equal(4))
		Expect(b.Bytes()).To(Equal([]byte("hell")))
		Expect(b.Truncated()).To(BeTrue())
	})

	It("reads from the offset forward and reports EOF once drained", func() {
		b := buffer.New(64)
		_, _ = b.Write([]byte("abc"))

		p := make([]byte, 2)
		n, err := b.Read(p)
		Expect(err).ToNot(HaveOccurred())
		Expect(n).To(Equal(2))
		Expect(b.Offset()).To(Equal(2))

		n, err = b.Read(p)
		Expect(err).ToNot(HaveOccurred())
		Expect(n).To(Equal(1))

		_, err = b.Read(p)
		Expect(err).To(Equal(io.EOF))
	})

	It("resets length, offset and truncation state", func() {
		b := buffer.New(4)
		_, _ = b.Write([]byte("abcde"))
		b.Reset()
		Expect(b.Len()).To(Equal(0))
		Expect(b.Offset()).To(Equal(0))
		Expect(b.Truncated()).To(BeFalse())
	})

	It("uses DefaultCap when given a non-positive capacity", func() {
		b := buffer.New(0)
		Expect(b.Cap()).To(Equal(buffer.DefaultCap))
	})

	It("String returns the held bytes", func() {
		b := buffer.New(64)
		_, _ = b.Write([]byte("hi"))
		Expect(b.String()).To(Equal("hi"))
	})
})

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

package logging_test

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/johnm-dev/russng/logging"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestLogging(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "logging Suite")
}

var _ = Describe("Fields", func() {
	It("converts to logrus.Fields without mutating the receiver", func() {
		base := logging.Fields{"saddr": "/tmp/s.sock"}
		extended := base.With("spath", "/echo")

		Expect(base).To(HaveLen(1))
		Expect(extended).To(HaveKeyWithValue("saddr", "/tmp/s.sock"))
		Expect(extended).To(HaveKeyWithValue("spath", "/echo"))
		Expect(extended.Logrus()).To(Equal(logrus.Fields{"saddr": "/tmp/s.sock", "spath": "/echo"}))
	})
})

var _ = Describe("level output", func() {
	It("suppresses debug lines below the configured level", func() {
		var buf bytes.Buffer
		logging.SetOutput(&buf)
		logging.SetLevel("info")

		logging.Debug(logging.Fields{"op": "execute"}, "should not appear")
		Expect(buf.Len()).To(Equal(0))

		logging.Info(logging.Fields{"op": "execute"}, "should appear")
		Expect(buf.Len()).ToNot(Equal(0))
	})

	It("attaches an error field when Error is called with a non-nil error", func() {
		var buf bytes.Buffer
		logging.SetOutput(&buf)
		logging.SetLevel("debug")

		logging.Error(nil, "dispatch failed", errBoom{})

		Expect(buf.String()).To(ContainSubstring("dispatch failed"))
		Expect(buf.String()).To(ContainSubstring("boom"))
	})
})

type errBoom struct{}

func (errBoom) Error() string { return "boom" }

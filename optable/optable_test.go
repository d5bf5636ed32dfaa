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

package optable_test

import (
	"testing"

	"github.com/johnm-dev/russng/optable"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestOptable(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "optable Suite")
}

var _ = Describe("Lookup", func() {
	It("maps each canonical operation string to its opnum", func() {
		Expect(optable.Lookup("execute")).To(Equal(optable.Execute))
		Expect(optable.Lookup("help")).To(Equal(optable.Help))
		Expect(optable.Lookup("id")).To(Equal(optable.Id))
		Expect(optable.Lookup("info")).To(Equal(optable.Info))
		Expect(optable.Lookup("list")).To(Equal(optable.List))
	})

	It("maps the empty string to NotSet", func() {
		Expect(optable.Lookup("")).To(Equal(optable.NotSet))
	})

	It("classifies any unrecognised operation as Extension", func() {
		Expect(optable.Lookup("frobnicate")).To(Equal(optable.Extension))
	})
})

var _ = Describe("Op.String", func() {
	It("round-trips the canonical names", func() {
		for _, name := range []string{"execute", "help", "id", "info", "list"} {
			Expect(optable.Lookup(name).String()).To(Equal(name))
		}
	})

	It("returns empty for NotSet and Extension", func() {
		Expect(optable.NotSet.String()).To(Equal(""))
		Expect(optable.Extension.String()).To(Equal(""))
	})
})

var _ = Describe("Op.IsKnown", func() {
	It("is true only for the five canonical operations", func() {
		Expect(optable.Execute.IsKnown()).To(BeTrue())
		Expect(optable.List.IsKnown()).To(BeTrue())
		Expect(optable.NotSet.IsKnown()).To(BeFalse())
		Expect(optable.Extension.IsKnown()).To(BeFalse())
	})
})

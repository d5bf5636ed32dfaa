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

package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/johnm-dev/russng/config"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestConfig(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "config Suite")
}

var _ = Describe("Map", func() {
	It("returns defaults for unset options and stored values otherwise", func() {
		m := config.New()
		m.Set("main", "awaittimeout", "5000")
		m.Set("main", "closeonaccept", "true")

		Expect(m.GetInt("main", "awaittimeout", 15000)).To(Equal(5000))
		Expect(m.GetInt("main", "accepttimeout", 0)).To(Equal(0))
		Expect(m.GetBool("main", "closeonaccept", false)).To(BeTrue())
		Expect(m.GetBool("main", "autoswitchuser", false)).To(BeFalse())
		Expect(m.GetString("main", "path", "")).To(Equal(""))
	})
})

var _ = Describe("ServerConfigFromMap", func() {
	It("applies the documented defaults", func() {
		sc := config.ServerConfigFromMap(config.New())
		Expect(sc.Sd).To(Equal(3))
		Expect(sc.AwaitTimeoutMs).To(Equal(15000))
		Expect(sc.AcceptTimeoutMs).To(Equal(0))
		Expect(sc.CloseOnAccept).To(BeFalse())
	})

	It("reflects values set on the map", func() {
		m := config.New()
		m.Set("main", "sd", "7")
		m.Set("main", "matchclientuser", "1")
		m.Set("main", "path", "/tmp/svc.sock")

		sc := config.ServerConfigFromMap(m)
		Expect(sc.Sd).To(Equal(7))
		Expect(sc.MatchClientUser).To(BeTrue())
		Expect(sc.Path).To(Equal("/tmp/svc.sock"))
	})
})

var _ = Describe("Load", func() {
	It("flattens a viper-readable file into section:option pairs", func() {
		dir, err := os.MkdirTemp("", "russcfg")
		Expect(err).ToNot(HaveOccurred())
		defer os.RemoveAll(dir)

		path := filepath.Join(dir, "russ.yaml")
		Expect(os.WriteFile(path, []byte("main:\n  path: /tmp/echo.sock\n  awaittimeout: 5000\n"), 0644)).To(Succeed())

		m, err := config.Load(path, nil)
		Expect(err).ToNot(HaveOccurred())
		Expect(m.GetString("main", "path", "")).To(Equal("/tmp/echo.sock"))
		Expect(m.GetInt("main", "awaittimeout", 0)).To(Equal(5000))
	})

	It("reports an error for a missing file", func() {
		_, err := config.Load("/nonexistent/russ.yaml", nil)
		Expect(err).To(HaveOccurred())
	})
})

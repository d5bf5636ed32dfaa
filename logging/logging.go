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

package logging

import (
	"io"
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

// Fields carries structured context attached to one log line: saddr, spath,
// op, pid/uid/gid, exit status, and anything else a caller wants to surface.
type Fields map[string]any

// Logrus renders f as logrus.Fields.
func (f Fields) Logrus() logrus.Fields {
	out := make(logrus.Fields, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}

// With returns a copy of f with k=v added, leaving f unmodified.
func (f Fields) With(k string, v any) Fields {
	out := make(Fields, len(f)+1)
	for kk, vv := range f {
		out[kk] = vv
	}
	out[k] = v
	return out
}

var (
	mu  sync.RWMutex
	std = logrus.New()
)

func init() {
	std.SetOutput(os.Stderr)
	std.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
}

// SetOutput redirects the package-wide logger's destination.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	std.SetOutput(w)
}

// SetLevel parses lvl ("debug", "info", "warn", "error") and applies it to
// the package-wide logger. An unrecognised level leaves the logger at its
// current level.
func SetLevel(lvl string) {
	parsed, err := logrus.ParseLevel(lvl)
	if err != nil {
		return
	}
	mu.Lock()
	defer mu.Unlock()
	std.SetLevel(parsed)
}

func entry(f Fields) *logrus.Entry {
	mu.RLock()
	defer mu.RUnlock()
	if len(f) == 0 {
		return logrus.NewEntry(std)
	}
	return std.WithFields(f.Logrus())
}

// Debug logs msg at debug level with the given fields.
func Debug(f Fields, msg string) { entry(f).Debug(msg) }

// Info logs msg at info level with the given fields.
func Info(f Fields, msg string) { entry(f).Info(msg) }

// Warn logs msg at warn level with the given fields.
func Warn(f Fields, msg string) { entry(f).Warn(msg) }

// Error logs msg at error level with the given fields, attaching err if
// non-nil.
func Error(f Fields, msg string, err error) {
	e := entry(f)
	if err != nil {
		e = e.WithError(err)
	}
	e.Error(msg)
}

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

package relay

import (
	"io"
	"sync"

	"github.com/johnm-dev/russng/deadline"
	"github.com/johnm-dev/russng/waitkind"
)

// Pair is one leg of a relay: bytes read from Src are copied to Dst until
// Src reaches EOF, at which point Dst is half-closed if it implements
// io.Closer.
type Pair struct {
	Src io.Reader
	Dst io.Writer
}

// Relay runs every pair concurrently and returns once the sysfd becomes
// readable, all pairs have finished, or the deadline expires. A copy error
// in one pair does not end the relay early: it is reported as Failure once
// every pair has finished. sysfd may be nil when there is no exit channel
// to watch (e.g. collecting output with no downstream process).
func Relay(pairs []Pair, sysfd io.Reader, dl deadline.Deadline) waitkind.Kind {
	var wg sync.WaitGroup
	failed := make(chan error, len(pairs))

	for _, p := range pairs {
		wg.Add(1)
		go func(p Pair) {
			defer wg.Done()
			_, err := io.Copy(p.Dst, p.Src)
			if c, ok := p.Dst.(io.Closer); ok {
				c.Close()
			}
			if err != nil {
				select {
				case failed <- err:
				default:
				}
			}
		}(p)
	}

	copiesDone := make(chan struct{})
	go func() {
		wg.Wait()
		close(copiesDone)
	}()

	sysReady := make(chan struct{})
	if sysfd != nil {
		go func() {
			buf := make([]byte, 1)
			sysfd.Read(buf)
			close(sysReady)
		}()
	}

	var timeoutCh <-chan struct{}
	if dl != deadline.Never {
		t := dl.Timer()
		defer t.Stop()
		ch := make(chan struct{})
		go func() {
			<-t.C
			close(ch)
		}()
		timeoutCh = ch
	}

	select {
	case <-copiesDone:
		select {
		case err := <-failed:
			_ = err
			return waitkind.Failure
		default:
			return waitkind.OK
		}
	case <-sysReady:
		return waitkind.OK
	case <-timeoutCh:
		return waitkind.Timeout
	}
}

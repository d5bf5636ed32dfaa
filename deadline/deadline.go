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

package deadline

import (
	"math"
	"time"
)

// Deadline is an absolute monotonic timestamp in nanoseconds.
type Deadline int64

// Never is a Deadline that is never considered expired.
const Never Deadline = math.MaxInt64

var monotonicBase = time.Now()

// Now returns the current time as a Deadline, monotonic relative to process start.
func Now() Deadline {
	return Deadline(time.Since(monotonicBase).Nanoseconds())
}

// FromTimeout returns the Deadline reached after d elapses from now.
// A non-positive or otherwise non-applicable d saturates to Never.
func FromTimeout(d time.Duration) Deadline {
	if d <= 0 {
		return Never
	}
	return addSaturating(Now(), Deadline(d.Nanoseconds()))
}

// FromMillis is FromTimeout expressed in milliseconds; ms <= 0 saturates to Never.
func FromMillis(ms int64) Deadline {
	if ms <= 0 {
		return Never
	}
	return FromTimeout(time.Duration(ms) * time.Millisecond)
}

// Remaining returns how long remains until the deadline, saturating at the
// extremes of time.Duration. Never reports the maximum representable duration.
func (d Deadline) Remaining() time.Duration {
	if d == Never {
		return time.Duration(math.MaxInt64)
	}
	diff := int64(d) - int64(Now())
	if diff > math.MaxInt64 {
		return time.Duration(math.MaxInt64)
	}
	if diff < math.MinInt64 {
		return time.Duration(math.MinInt64)
	}
	return time.Duration(diff)
}

// RemainingMillis is Remaining expressed in (possibly negative) milliseconds.
func (d Deadline) RemainingMillis() int64 {
	r := d.Remaining()
	if d == Never {
		return math.MaxInt64
	}
	return r.Milliseconds()
}

// Expired reports whether the deadline's remaining budget is non-positive.
func (d Deadline) Expired() bool {
	return d != Never && d.Remaining() <= 0
}

// Timer returns a *time.Timer firing at the deadline. Callers own the timer
// and must Stop it if they do not wait for it to fire. Never yields a timer
// that practically never fires.
func (d Deadline) Timer() *time.Timer {
	return time.NewTimer(d.Remaining())
}

func addSaturating(a, b Deadline) Deadline {
	if b > 0 && a > math.MaxInt64-b {
		return Never
	}
	return a + b
}

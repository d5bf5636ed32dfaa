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

// Package deadline gives every blocking call in the protocol engine (accept,
// request decode, the fd relay, the exit-status wait) a single absolute-time
// currency to negotiate with: a Deadline is a monotonic nanosecond timestamp,
// not a duration, so it survives being passed from a dial call down through
// several layers without needing to be recomputed at each one.
//
// Arithmetic saturates instead of overflowing or wrapping: adding a timeout
// to Now near the top of the range clamps to Never, and a deadline that has
// already passed reports a zero or negative Remaining rather than panicking.
// Every caller that accepts a Deadline is expected to treat a non-positive
// Remaining as an immediate timeout.
package deadline

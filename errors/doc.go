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

// Package errors classifies every failure the protocol engine can raise into
// one of a small set of kinds (§7 of the design: BadArgs, CannotAnnounce,
// CannotDial, BadProtocol, Timeout, NoService, BadOp, NoAccess, SysFailure,
// CallFailure, ExitFdClosed).
//
// An Error carries its Kind, a message, an optional parent chain (so a
// handler-level failure can wrap the downstream dial failure that caused
// it) and the call-site frame where it was created. It is compatible with
// errors.Is / errors.As via Unwrap.
//
// Example:
//
//	if e := dial(...); e != nil {
//	    return russerr.CannotDial.Error(e)
//	}
package errors

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

// Package wire encodes and decodes a Request to and from the octet stream
// carried by a connected UNIX socket, per protocol tag "0010":
//
//	4 bytes   protocol tag
//	string    operation
//	string    spath
//	[]string  attrv, terminated by a zero-length sentinel
//	[]string  argv, terminated by a zero-length sentinel
//
// Each string is a 4-byte big-endian length followed by that many bytes;
// length 0 is the empty string (and, inside a vector, the end sentinel).
//
// The codec enforces the wire-level bounds from the data model (spath up
// to 8192 bytes, each vector up to 1024 entries) but does not interpret
// attribute strings beyond the codec's own framing; splitting "KEY=VALUE"
// on its first '=' is left to callers.
package wire

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

package main

import (
	"io"
	"time"

	"github.com/johnm-dev/russng/exitcode"
	"github.com/johnm-dev/russng/server"
)

// registerHandlers builds the service tree russngd serves out of the box:
// an echo service and a daytime service, under the conventions the
// protocol examples use to exercise execute/help/list.
func registerHandlers(root *server.Node) {
	root.SetHelp("russngd: sample RUSS service host (echo, daytime)")
	root.SetHandler(server.HandlerFunc(helpHandler(root)))

	root.Add("echo").
		SetHelp("echo: copies stdin to stdout").
		SetHandler(server.HandlerFunc(echoHandler))

	root.Add("daytime").
		SetHelp("daytime: prints the current time").
		SetHandler(server.HandlerFunc(daytimeHandler))
}

func helpHandler(root *server.Node) func(*server.Session) {
	return func(s *server.Session) {
		s.Conn.Answer(3)
		io.WriteString(s.Conn.Stdout(), root.Help()+"\n")
		s.Conn.Exit(exitcode.Success)
	}
}

func echoHandler(s *server.Session) {
	if err := s.Conn.Answer(3); err != nil {
		return
	}
	io.Copy(s.Conn.Stdout(), s.Conn.Stdin())
	s.Conn.Exit(exitcode.Success)
}

func daytimeHandler(s *server.Session) {
	if err := s.Conn.Answer(3); err != nil {
		return
	}
	io.WriteString(s.Conn.Stdout(), time.Now().Format(time.ANSIC)+"\n")
	s.Conn.Exit(exitcode.Success)
}

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

package config

// Section is the configuration section every key below lives under.
const Section = "main"

// Option names within Section, exactly as the external parser would name them.
const (
	OptSd              = "sd"
	OptAcceptTimeout   = "accepttimeout"
	OptAwaitTimeout    = "awaittimeout"
	OptCloseOnAccept   = "closeonaccept"
	OptAutoSwitchUser  = "autoswitchuser"
	OptAllowRootUser   = "allowrootuser"
	OptMatchClientUser = "matchclientuser"
	OptPath            = "path"
	OptAddr            = "addr"
	OptMode            = "mode"
	OptUid             = "uid"
	OptGid             = "gid"
)

// inheritedSd is the listening fd a spawner hands a server by convention
// when it has already bound the socket (the "process contract for spawned
// server executables").
const inheritedSd = 3

// ServerConfig is Server's view of the configuration map: the subset of
// (main, *) options that shape how a server announces its socket and runs
// its loop.
type ServerConfig struct {
	Sd               int
	AcceptTimeoutMs  int
	AwaitTimeoutMs   int
	CloseOnAccept    bool
	AutoSwitchUser   bool
	AllowRootUser    bool
	MatchClientUser  bool
	Path             string
	Addr             string
	Mode             string
	Uid              string
	Gid              string
}

// ServerConfigFromMap reads ServerConfig out of m, applying the documented
// defaults for any option left unset: sd=3, awaittimeout=15000ms,
// accepttimeout=unset (infinite).
func ServerConfigFromMap(m *Map) ServerConfig {
	return ServerConfig{
		Sd:              m.GetInt(Section, OptSd, inheritedSd),
		AcceptTimeoutMs: m.GetInt(Section, OptAcceptTimeout, 0),
		AwaitTimeoutMs:  m.GetInt(Section, OptAwaitTimeout, 15000),
		CloseOnAccept:   m.GetBool(Section, OptCloseOnAccept, false),
		AutoSwitchUser:  m.GetBool(Section, OptAutoSwitchUser, false),
		AllowRootUser:   m.GetBool(Section, OptAllowRootUser, false),
		MatchClientUser: m.GetBool(Section, OptMatchClientUser, false),
		Path:            m.GetString(Section, OptPath, ""),
		Addr:            m.GetString(Section, OptAddr, ""),
		Mode:            m.GetString(Section, OptMode, ""),
		Uid:             m.GetString(Section, OptUid, ""),
		Gid:             m.GetString(Section, OptGid, ""),
	}
}

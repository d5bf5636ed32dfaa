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

// Package optable holds the canonical mapping between an operation string
// ("execute", "help", ...) carried on the wire and the small integer opnum
// the dispatcher and service-tree nodes classify on.
package optable

// Op is a small integer classification of an operation string.
type Op uint8

const (
	// NotSet marks the reserved, empty operation.
	NotSet Op = 0
	// Extension marks any operation string not in the canonical table.
	Extension Op = 1
	// Execute runs the service.
	Execute Op = 2
	// Help returns human-readable help.
	Help Op = 3
	// Id identifies the service.
	Id Op = 4
	// Info returns machine-readable info.
	Info Op = 5
	// List lists the children of a spath.
	List Op = 6
)

var byName = map[string]Op{
	"":        NotSet,
	"execute": Execute,
	"help":    Help,
	"id":      Id,
	"info":    Info,
	"list":    List,
}

var byOp = map[Op]string{
	NotSet:    "",
	Extension: "",
	Execute:   "execute",
	Help:      "help",
	Id:        "id",
	Info:      "info",
	List:      "list",
}

// Lookup classifies an operation string into its opnum. A name absent from
// the canonical table is classified Extension so unrecognised-but-present
// operations can still be routed to a handler that chooses to accept them.
func Lookup(name string) Op {
	if op, ok := byName[name]; ok {
		return op
	}
	return Extension
}

// String returns the canonical operation string for an opnum, or "" for
// NotSet/Extension/an opnum outside the canonical table.
func (o Op) String() string {
	return byOp[o]
}

// IsKnown reports whether o is one of the canonical, named operations.
func (o Op) IsKnown() bool {
	switch o {
	case Execute, Help, Id, Info, List:
		return true
	default:
		return false
	}
}

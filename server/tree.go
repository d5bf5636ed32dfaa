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

package server

import (
	"sort"
	"strings"
)

// Handler is the capability a service node invokes for a matched request.
type Handler interface {
	Invoke(s *Session)
}

// HandlerFunc adapts a plain function to Handler.
type HandlerFunc func(s *Session)

// Invoke calls f.
func (f HandlerFunc) Invoke(s *Session) { f(s) }

// Node is one named node of the service tree. Siblings hang off next;
// children hang off the first child's chain. The root node has an empty
// name and no siblings.
type Node struct {
	name       string
	handler    Handler
	virtual    bool
	wildcard   bool
	autoanswer bool
	help       string
	next       *Node
	children   *Node
}

// NewRoot returns an empty root node.
func NewRoot() *Node {
	return &Node{name: ""}
}

// SetHandler attaches h to n and returns n, for chained construction.
func (n *Node) SetHandler(h Handler) *Node {
	n.handler = h
	return n
}

// SetVirtual marks n as owning its entire subtree: the dispatcher passes
// the tail of the spath to n's handler instead of descending further.
func (n *Node) SetVirtual(v bool) *Node {
	n.virtual = v
	return n
}

// SetWildcard marks n as matching any path component at its level.
func (n *Node) SetWildcard(v bool) *Node {
	n.wildcard = v
	return n
}

// SetAutoanswer marks n so the server answers (sends fds) on the handler's
// behalf before invoking it.
func (n *Node) SetAutoanswer(v bool) *Node {
	n.autoanswer = v
	return n
}

// SetHelp attaches help text to n, returned by Help. The dispatcher does
// not write it out by itself; a handler that serves HELP reads it.
func (n *Node) SetHelp(text string) *Node {
	n.help = text
	return n
}

// Name returns n's path component.
func (n *Node) Name() string { return n.name }

// Virtual reports whether n is a virtual node.
func (n *Node) Virtual() bool { return n.virtual }

// Wildcard reports whether n matches any path component at its level.
func (n *Node) Wildcard() bool { return n.wildcard }

// Autoanswer reports whether n is an autoanswer node.
func (n *Node) Autoanswer() bool { return n.autoanswer }

// HandlerSet reports whether n has a handler attached.
func (n *Node) HandlerSet() bool { return n.handler != nil }

// Help returns the help text attached to n.
func (n *Node) Help() string { return n.help }

// ChildNames returns the sorted names of n's direct children, for the LIST opnum.
func (n *Node) ChildNames() []string {
	var names []string
	for c := n.children; c != nil; c = c.next {
		names = append(names, c.name)
	}
	sort.Strings(names)
	return names
}

func (n *Node) child(name string) *Node {
	var wild *Node
	for c := n.children; c != nil; c = c.next {
		if c.name == name {
			return c
		}
		if c.wildcard && wild == nil {
			wild = c
		}
	}
	return wild
}

// Add inserts spath under n, auto-creating empty-handler intermediate
// nodes for any path component that doesn't already exist, and returns the
// leaf node. A component that already exists under its parent is reused,
// so sibling names within one parent stay unique.
func (n *Node) Add(spath string) *Node {
	cur := n
	for _, comp := range splitPath(spath) {
		next := cur.exactChild(comp)
		if next == nil {
			next = &Node{name: comp}
			next.next = cur.children
			cur.children = next
		}
		cur = next
	}
	return cur
}

func (n *Node) exactChild(name string) *Node {
	for c := n.children; c != nil; c = c.next {
		if c.name == name {
			return c
		}
	}
	return nil
}

// Find walks from n (the root) along spath's components. It returns the
// deepest matched node and the effective remainder: empty when spath names
// an exact node, the unconsumed tail (joined back with "/") when a virtual
// node was matched before the path was exhausted, or the unmatched tail
// when no further child exists and no virtual ancestor was passed.
func (n *Node) Find(spath string) (node *Node, remainder string) {
	comps := splitPath(spath)
	cur := n
	for i, comp := range comps {
		next := cur.child(comp)
		if next == nil {
			return cur, joinPath(comps[i:])
		}
		cur = next
		if cur.virtual {
			return cur, joinPath(comps[i+1:])
		}
	}
	return cur, ""
}

func splitPath(spath string) []string {
	trimmed := strings.Trim(spath, "/")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "/")
}

func joinPath(comps []string) string {
	if len(comps) == 0 {
		return ""
	}
	return "/" + strings.Join(comps, "/")
}

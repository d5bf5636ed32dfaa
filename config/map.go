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

import (
	"strconv"
	"strings"
	"sync"
)

// Map is a flat, concurrency-safe (section, option) -> string table. It is
// the only configuration surface the core depends on.
type Map struct {
	mu sync.RWMutex
	v  map[string]string
}

// New returns an empty Map.
func New() *Map {
	return &Map{v: make(map[string]string)}
}

func key(section, option string) string {
	return section + ":" + option
}

// Set stores value under (section, option), overwriting any prior value.
func (m *Map) Set(section, option, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.v[key(section, option)] = value
}

// Get returns the raw string stored under (section, option) and whether it was present.
func (m *Map) Get(section, option string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.v[key(section, option)]
	return s, ok
}

// GetString returns the stored value or def if absent.
func (m *Map) GetString(section, option, def string) string {
	if s, ok := m.Get(section, option); ok {
		return s
	}
	return def
}

// GetInt parses the stored value as a base-10 integer, returning def if
// absent or unparsable.
func (m *Map) GetInt(section, option string, def int) int {
	s, ok := m.Get(section, option)
	if !ok {
		return def
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return def
	}
	return n
}

// GetBool parses the stored value as "0"/"1" (and the usual strconv.ParseBool
// spellings), returning def if absent or unparsable.
func (m *Map) GetBool(section, option string, def bool) bool {
	s, ok := m.Get(section, option)
	if !ok {
		return def
	}
	b, err := strconv.ParseBool(strings.TrimSpace(s))
	if err != nil {
		return def
	}
	return b
}

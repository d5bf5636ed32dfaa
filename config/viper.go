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
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	russerr "github.com/johnm-dev/russng/errors"
)

// Load reads path with viper (format inferred from its extension: ini,
// yaml, toml, json, …) and flattens every "section.option" key it finds
// into a Map. overrides, if non-nil, is bound ahead of the file read so
// CLI flags win over file values, matching the layered configuration the
// rest of the ecosystem uses (flags > file > default).
func Load(path string, overrides *pflag.FlagSet) (*Map, error) {
	v := viper.New()
	v.SetConfigFile(path)

	if overrides != nil {
		if err := v.BindPFlags(overrides); err != nil {
			return nil, russerr.BadArgs.Error(err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		return nil, russerr.BadArgs.Error(fmt.Errorf("reading %s: %w", path, err))
	}

	m := New()
	for _, k := range v.AllKeys() {
		section, option, ok := splitSectionOption(k)
		if !ok {
			continue
		}
		m.Set(section, option, v.GetString(k))
	}
	return m, nil
}

func splitSectionOption(k string) (section, option string, ok bool) {
	i := strings.IndexByte(k, '.')
	if i < 0 {
		return "", "", false
	}
	return k[:i], k[i+1:], true
}

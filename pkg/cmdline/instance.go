// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmdline

import (
	"fmt"
	"strconv"
	"strings"
)

// Instance is an Option as it appeared on one command line.
type Instance struct {
	// Option is the catalog entry this instance refers to. It is shared, not
	// owned.
	Option *Option
	// Alias is the token that opened the instance ("--dest", "-d"). It is
	// empty for an action selected by a bare first argument.
	Alias  string
	Values []string
	// SubInstances is only used by help: one action-option instance per
	// action named after --help.
	SubInstances []*Instance
}

// Value returns the first value, or "" if there is none.
func (i *Instance) Value() string {
	if len(i.Values) == 0 {
		return ""
	}
	return i.Values[0]
}

// Int parses the first value as an int.
func (i *Instance) Int() (int, error) {
	n, err := strconv.Atoi(i.Value())
	if err != nil {
		return 0, fmt.Errorf("%s: %q is not an integer", i.Option, i.Value())
	}
	return n, nil
}

// Validatable reports whether the instance's option has validators.
func (i *Instance) Validatable() bool { return i.Option.Validatable() }

// Handleable reports whether the instance's option has a handler.
func (i *Instance) Handleable() bool { return i.Option.Handleable() }

// Tokens re-serializes the instance as command-line tokens. The output is
// normalized: an inline "--dest=/tmp" comes back as "--dest", "/tmp", and a
// repeated ManyArgs option comes back as one alias followed by all values.
// Parsing the tokens again yields the same instances.
func (i *Instance) Tokens() []string {
	out := make([]string, 0, 1+len(i.Values))
	if i.Alias != "" {
		out = append(out, i.Alias)
	}
	out = append(out, i.Values...)
	for _, sub := range i.SubInstances {
		out = append(out, sub.Values...)
	}
	return out
}

func (i *Instance) String() string {
	if len(i.Values) == 0 {
		return i.Option.String()
	}
	quoted := make([]string, len(i.Values))
	for n, v := range i.Values {
		quoted[n] = strconv.Quote(v)
	}
	return i.Option.String() + "=" + strings.Join(quoted, ",")
}

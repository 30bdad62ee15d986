// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmdline

import "slices"

// RequireContext is what a Requirement may look at: the selected action and
// the options specified alongside it.
type RequireContext struct {
	Action    Action
	specified []*Instance
}

// NewRequireContext returns a RequireContext for action and specified.
func NewRequireContext(action Action, specified []*Instance) RequireContext {
	return RequireContext{Action: action, specified: specified}
}

// ActionName returns the selected action's name, or "" if none.
func (rc RequireContext) ActionName() string {
	if rc.Action == nil {
		return ""
	}
	return rc.Action.Name()
}

// Has reports whether an option called name was specified.
func (rc RequireContext) Has(name string) bool {
	for _, inst := range rc.specified {
		if inst.Option.Name == name {
			return true
		}
	}
	return false
}

// Requirement decides whether an option is required. It must be a pure
// function of its context.
type Requirement func(RequireContext) bool

// Always makes an option required for every action.
func Always() Requirement {
	return func(RequireContext) bool { return true }
}

// ForActions makes an option required when one of the named actions is
// selected.
func ForActions(names ...string) Requirement {
	return func(rc RequireContext) bool {
		return slices.Contains(names, rc.ActionName())
	}
}

// WhenPresent makes an option required when any of the named options is
// specified.
func WhenPresent(optionNames ...string) Requirement {
	return func(rc RequireContext) bool {
		for _, n := range optionNames {
			if rc.Has(n) {
				return true
			}
		}
		return false
	}
}

// AllOf is satisfied when every non-nil requirement is.
func AllOf(reqs ...Requirement) Requirement {
	return func(rc RequireContext) bool {
		for _, r := range reqs {
			if r != nil && !r(rc) {
				return false
			}
		}
		return true
	}
}

// AnyOf is satisfied when at least one requirement is.
func AnyOf(reqs ...Requirement) Requirement {
	return func(rc RequireContext) bool {
		for _, r := range reqs {
			if r != nil && r(rc) {
				return true
			}
		}
		return false
	}
}

// DetermineRequired returns the options in opts that are required for
// action given the specified instances, in catalog order. Options that do
// not apply to action are never required.
func DetermineRequired(action Action, opts []*Option, specified []*Instance) []*Option {
	rc := NewRequireContext(action, specified)
	var out []*Option
	for _, o := range opts {
		if o.Required != nil && o.AppliesTo(action) && o.Required(rc) {
			out = append(out, o)
		}
	}
	return out
}

// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmdline

import "fmt"

// Handler applies a specified instance to the selected action.
//
// Handlers run in no particular order and must not depend on each other.
type Handler interface {
	HandleOption(action Action, inst *Instance) error
}

// Binder is implemented by handlers that can name the action state they
// write. The Utility rejects catalogs where two such handlers share a
// binding for the same action.
type Binder interface {
	Binding() string
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(action Action, inst *Instance) error

func (f HandlerFunc) HandleOption(action Action, inst *Instance) error { return f(action, inst) }

type applyHandler[A Action] struct {
	fn func(A, *Instance) error
}

func (h applyHandler[A]) HandleOption(action Action, inst *Instance) error {
	a, ok := action.(A)
	if !ok {
		return fmt.Errorf("option %s does not apply to action %q", inst.Option, action.Name())
	}
	return h.fn(a, inst)
}

// Apply returns a handler written against the concrete action type A. It
// fails if the selected action is not an A.
func Apply[A Action](fn func(a A, inst *Instance) error) Handler {
	return applyHandler[A]{fn: fn}
}

// Setter is the narrow interface used by Set: actions accept named values.
type Setter interface {
	SetOption(property string, values []string) error
}

type setHandler struct {
	property string
}

// Set returns a handler that passes the instance values to the action's
// SetOption under property.
func Set(property string) Handler {
	return setHandler{property: property}
}

func (h setHandler) Binding() string { return h.property }

func (h setHandler) HandleOption(action Action, inst *Instance) error {
	s, ok := action.(Setter)
	if !ok {
		return fmt.Errorf("action %q does not accept option values", action.Name())
	}
	values := inst.Values
	if inst.Option.Arity == NoArgs {
		values = []string{"true"}
	}
	return s.SetOption(h.property, values)
}

// Bind wraps h so that it reports binding.
func Bind(binding string, h Handler) Handler {
	return boundHandler{Handler: h, binding: binding}
}

type boundHandler struct {
	Handler
	binding string
}

func (h boundHandler) Binding() string { return h.binding }

// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmdline

import "context"

// Action is a named unit of behavior selected on the command line. Handlers
// configure it; the Utility then calls Execute exactly once.
type Action interface {
	Name() string
	Description() string
	Execute(ctx context.Context) error
}

// Named implements the Name and Description methods of Action. Embed it in
// concrete actions.
type Named struct {
	name        string
	description string
}

// NewNamed returns a Named with the given name and description.
func NewNamed(name, description string) Named {
	return Named{name: name, description: description}
}

func (n Named) Name() string        { return n.name }
func (n Named) Description() string { return n.description }

type funcAction struct {
	Named
	fn func(context.Context) error
}

func (a *funcAction) Execute(ctx context.Context) error { return a.fn(ctx) }

// ActionFunc returns an Action that runs fn.
func ActionFunc(name, description string, fn func(ctx context.Context) error) Action {
	return &funcAction{Named: NewNamed(name, description), fn: fn}
}

func findAction(actions []Action, name string) Action {
	for _, a := range actions {
		if a.Name() == name {
			return a
		}
	}
	return nil
}

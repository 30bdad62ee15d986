// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package store

import "github.com/yeetrun/cmdline/pkg/cmdline"

// Static is a catalog written as Go values.
type Static struct {
	Options []*cmdline.Option
	Actions []cmdline.Action
	// NewActions, if set, replaces Actions and is called on every load so
	// that repeated runs get fresh actions.
	NewActions func() []cmdline.Action
}

var _ cmdline.Store = (*Static)(nil)

// LoadSupportedOptions implements cmdline.Store.
func (s *Static) LoadSupportedOptions() ([]*cmdline.Option, error) {
	return s.Options, nil
}

// LoadSupportedActions implements cmdline.Store.
func (s *Static) LoadSupportedActions() ([]cmdline.Action, error) {
	if s.NewActions != nil {
		return s.NewActions(), nil
	}
	return s.Actions, nil
}

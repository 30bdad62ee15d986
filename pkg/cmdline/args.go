// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmdline

// Args is the parsed, classified result of one invocation.
type Args struct {
	SupportedActions []Action
	SupportedOptions []*Option
	Specified        []*Instance
}

// NewArgs returns an Args bundle for one invocation.
func NewArgs(actions []Action, options []*Option, specified []*Instance) *Args {
	return &Args{
		SupportedActions: actions,
		SupportedOptions: options,
		Specified:        specified,
	}
}

// Instance returns the specified instance of opt, or nil.
func (a *Args) Instance(opt *Option) *Instance {
	for _, inst := range a.Specified {
		if inst.Option == opt {
			return inst
		}
	}
	return nil
}

// IsSpecified reports whether opt was given on the command line.
func (a *Args) IsSpecified(opt *Option) bool {
	return a.Instance(opt) != nil
}

// HelpInstance returns the help instance, or nil.
func (a *Args) HelpInstance() *Instance {
	for _, inst := range a.Specified {
		if inst.Option.IsHelp() {
			return inst
		}
	}
	return nil
}

// ActionInstance returns the action-selection instance, or nil.
func (a *Args) ActionInstance() *Instance {
	for _, inst := range a.Specified {
		if inst.Option.IsAction() {
			return inst
		}
	}
	return nil
}

// SpecifiedActionName returns the name given for the action, or "".
func (a *Args) SpecifiedActionName() string {
	if inst := a.ActionInstance(); inst != nil {
		return inst.Value()
	}
	return ""
}

// SpecifiedAction returns the selected action, or nil when none was given or
// the name is not in the catalog.
func (a *Args) SpecifiedAction() Action {
	name := a.SpecifiedActionName()
	if name == "" {
		return nil
	}
	return a.FindAction(name)
}

// FindAction returns the supported action called name, or nil.
func (a *Args) FindAction(name string) Action {
	return findAction(a.SupportedActions, name)
}

// FindOption returns the supported option called name, or nil.
func (a *Args) FindOption(name string) *Option {
	for _, o := range a.SupportedOptions {
		if o.Name == name {
			return o
		}
	}
	return nil
}

// CustomSupportedOptions returns the supported options minus built-ins.
func (a *Args) CustomSupportedOptions() []*Option {
	var out []*Option
	for _, o := range a.SupportedOptions {
		if !o.IsBuiltin() {
			out = append(out, o)
		}
	}
	return out
}

// CustomSpecified returns the specified instances minus built-ins.
func (a *Args) CustomSpecified() []*Instance {
	var out []*Instance
	for _, inst := range a.Specified {
		if !inst.Option.IsBuiltin() {
			out = append(out, inst)
		}
	}
	return out
}

// OptionsFor returns the custom options usable with action.
func (a *Args) OptionsFor(action Action) []*Option {
	var out []*Option
	for _, o := range a.CustomSupportedOptions() {
		if o.AppliesTo(action) {
			out = append(out, o)
		}
	}
	return out
}

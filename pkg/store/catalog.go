// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package store

import (
	"errors"
	"fmt"

	"github.com/yeetrun/cmdline/pkg/cmdline"
)

// Catalog is a catalog document as decoded from TOML, YAML or HCL.
type Catalog struct {
	Actions []ActionSpec `toml:"action" yaml:"actions" hcl:"action,block"`
	Options []OptionSpec `toml:"option" yaml:"options" hcl:"option,block"`
}

// ActionSpec declares one action. Type selects the registry factory and
// defaults to Name.
type ActionSpec struct {
	Name        string `toml:"name" yaml:"name" hcl:"name,label"`
	Description string `toml:"description" yaml:"description" hcl:"description,optional"`
	Type        string `toml:"type" yaml:"type" hcl:"type,optional"`
}

// FactoryType returns the registry key for the action.
func (s ActionSpec) FactoryType() string {
	if s.Type != "" {
		return s.Type
	}
	return s.Name
}

// OptionSpec declares one option.
type OptionSpec struct {
	Name        string `toml:"name" yaml:"name" hcl:"name,label"`
	Short       string `toml:"short" yaml:"short" hcl:"short,optional"`
	Long        string `toml:"long" yaml:"long" hcl:"long,optional"`
	Description string `toml:"description" yaml:"description" hcl:"description,optional"`
	ArgName     string `toml:"arg_name" yaml:"arg_name" hcl:"arg_name,optional"`
	Arity       string `toml:"arity" yaml:"arity" hcl:"arity,optional"`
	// Kind is "help" or "action" for a catalog-defined built-in.
	Kind string `toml:"kind" yaml:"kind" hcl:"kind,optional"`

	Required     bool     `toml:"required" yaml:"required" hcl:"required,optional"`
	RequiredFor  []string `toml:"required_for" yaml:"required_for" hcl:"required_for,optional"`
	RequiredWith []string `toml:"required_with" yaml:"required_with" hcl:"required_with,optional"`
	Actions      []string `toml:"actions" yaml:"actions" hcl:"actions,optional"`

	Validators []ValidatorSpec `toml:"validator" yaml:"validators" hcl:"validator,block"`
	Handler    *HandlerSpec    `toml:"handler" yaml:"handler" hcl:"handler,block"`
}

// ValidatorSpec configures one validator. Which fields apply depends on
// Type.
type ValidatorSpec struct {
	Type       string   `toml:"type" yaml:"type" hcl:"type,label"`
	Values     []string `toml:"values" yaml:"values" hcl:"values,optional"`
	Pattern    string   `toml:"pattern" yaml:"pattern" hcl:"pattern,optional"`
	Min        *int     `toml:"min" yaml:"min" hcl:"min,optional"`
	Max        *int     `toml:"max" yaml:"max" hcl:"max,optional"`
	Constraint string   `toml:"constraint" yaml:"constraint" hcl:"constraint,optional"`
}

// HandlerSpec configures an option's handler. Property defaults to the
// option name.
type HandlerSpec struct {
	Type     string `toml:"type" yaml:"type" hcl:"type,label"`
	Property string `toml:"property" yaml:"property" hcl:"property,optional"`
}

// ResolveOptions builds the options declared in c, resolving validator and
// handler types through reg.
func (c *Catalog) ResolveOptions(reg *Registry) ([]*cmdline.Option, error) {
	var errs []error
	out := make([]*cmdline.Option, 0, len(c.Options))
	for _, spec := range c.Options {
		o, err := spec.option(reg)
		if err != nil {
			errs = append(errs, fmt.Errorf("option %q: %w", spec.Name, err))
			continue
		}
		out = append(out, o)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return out, nil
}

// BuildActions builds a fresh action for every action spec.
func (c *Catalog) BuildActions(reg *Registry) ([]cmdline.Action, error) {
	out := make([]cmdline.Action, 0, len(c.Actions))
	for _, spec := range c.Actions {
		a, err := reg.NewAction(spec)
		if err != nil {
			return nil, fmt.Errorf("action %q: %w", spec.Name, err)
		}
		out = append(out, a)
	}
	return out, nil
}

func (s OptionSpec) option(reg *Registry) (*cmdline.Option, error) {
	arity, err := cmdline.ParseArity(s.Arity)
	if err != nil {
		return nil, err
	}

	var o *cmdline.Option
	switch s.Kind {
	case "":
		o = &cmdline.Option{Name: s.Name, Short: s.Short, Long: s.Long, Arity: arity}
	case "help":
		o = cmdline.NewHelpOption(s.Short, s.Long)
	case "action":
		o = cmdline.NewActionOption(s.Short, s.Long)
	default:
		return nil, fmt.Errorf("unknown kind %q", s.Kind)
	}
	o.Name = s.Name
	if s.Description != "" {
		o.Description = s.Description
	}
	if s.ArgName != "" {
		o.ArgName = s.ArgName
	}
	o.Actions = s.Actions
	o.Required = s.requirement()

	for _, vs := range s.Validators {
		v, err := reg.NewValidator(vs)
		if err != nil {
			return nil, fmt.Errorf("validator %q: %w", vs.Type, err)
		}
		o.Validators = append(o.Validators, v)
	}
	if s.Handler != nil {
		hs := *s.Handler
		if hs.Property == "" {
			hs.Property = s.Name
		}
		h, err := reg.NewHandler(hs)
		if err != nil {
			return nil, fmt.Errorf("handler %q: %w", s.Handler.Type, err)
		}
		o.Handler = h
	}
	return o, nil
}

func (s OptionSpec) requirement() cmdline.Requirement {
	var reqs []cmdline.Requirement
	if s.Required {
		reqs = append(reqs, cmdline.Always())
	}
	if len(s.RequiredFor) > 0 {
		reqs = append(reqs, cmdline.ForActions(s.RequiredFor...))
	}
	if len(s.RequiredWith) > 0 {
		reqs = append(reqs, cmdline.WhenPresent(s.RequiredWith...))
	}
	switch len(reqs) {
	case 0:
		return nil
	case 1:
		return reqs[0]
	}
	return cmdline.AnyOf(reqs...)
}

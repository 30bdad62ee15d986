// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmdline

import (
	"fmt"
	"slices"
)

// Arity is the number of values an option consumes.
type Arity int

const (
	// NoArgs options are plain switches.
	NoArgs Arity = 0
	// OneArg options consume exactly the next token.
	OneArg Arity = 1
	// ManyArgs options consume every token up to the next alias, at least one.
	ManyArgs Arity = -1
)

func (a Arity) String() string {
	switch a {
	case NoArgs:
		return "none"
	case OneArg:
		return "one"
	case ManyArgs:
		return "many"
	}
	return fmt.Sprintf("Arity(%d)", int(a))
}

// ParseArity parses the catalog spelling of an arity ("none", "one", "many").
// The empty string is NoArgs.
func ParseArity(s string) (Arity, error) {
	switch s {
	case "", "none", "0":
		return NoArgs, nil
	case "one", "1":
		return OneArg, nil
	case "many", "*":
		return ManyArgs, nil
	}
	return NoArgs, fmt.Errorf("invalid arity %q (use none, one or many)", s)
}

type optionKind int

const (
	kindCustom optionKind = iota
	kindHelp
	kindAction
)

// Option describes one recognized switch. Options are shared catalog data:
// they are compared by pointer and must not be modified once a Store has
// handed them out.
type Option struct {
	// Name identifies the option. It is also the long alias when Long and
	// Short are both empty.
	Name string
	// Short and Long are aliases without their leading dashes.
	Short string
	Long  string

	Description string
	// ArgName is shown in help for options that take values.
	ArgName string
	Arity   Arity

	// Required reports whether the option must be specified. Nil means never.
	Required Requirement
	// Actions limits the option to the named actions. Empty means all.
	Actions []string

	Validators []Validator
	Handler    Handler

	kind optionKind
}

// DefaultHelpOption and DefaultActionOption are injected by the Utility when
// a catalog does not declare its own.
var (
	DefaultHelpOption   = NewHelpOption("h", "help")
	DefaultActionOption = NewActionOption("a", "action")
)

// NewHelpOption returns a help option with the given aliases.
func NewHelpOption(short, long string) *Option {
	return &Option{
		Name:        "help",
		Short:       short,
		Long:        long,
		Description: "Show option help, or help for the named action",
		ArgName:     "ACTION",
		Arity:       ManyArgs,
		kind:        kindHelp,
	}
}

// NewActionOption returns an action-selection option with the given aliases.
func NewActionOption(short, long string) *Option {
	return &Option{
		Name:        "action",
		Short:       short,
		Long:        long,
		Description: "Action to run (can also be given as the first argument)",
		ArgName:     "ACTION",
		Arity:       OneArg,
		kind:        kindAction,
	}
}

// LongAlias returns the long alias, falling back to Name.
func (o *Option) LongAlias() string {
	if o.Long != "" {
		return o.Long
	}
	if o.Short == "" {
		return o.Name
	}
	return ""
}

// Aliases returns the tokens that select o, long form first.
func (o *Option) Aliases() []string {
	var out []string
	if l := o.LongAlias(); l != "" {
		out = append(out, "--"+l)
	}
	if o.Short != "" {
		out = append(out, "-"+o.Short)
	}
	return out
}

// Validatable reports whether o has at least one validator.
func (o *Option) Validatable() bool { return len(o.Validators) > 0 }

// Handleable reports whether o has a handler.
func (o *Option) Handleable() bool { return o.Handler != nil }

// IsHelp reports whether o is a help option.
func (o *Option) IsHelp() bool { return o.kind == kindHelp }

// IsAction reports whether o is an action-selection option.
func (o *Option) IsAction() bool { return o.kind == kindAction }

// IsBuiltin reports whether o is a help or action option.
func (o *Option) IsBuiltin() bool { return o.kind != kindCustom }

// AppliesTo reports whether o may be used with action. A nil action matches
// only unrestricted options.
func (o *Option) AppliesTo(action Action) bool {
	if len(o.Actions) == 0 {
		return true
	}
	if action == nil {
		return false
	}
	return slices.Contains(o.Actions, action.Name())
}

func (o *Option) String() string {
	if l := o.LongAlias(); l != "" {
		return "--" + l
	}
	return "-" + o.Short
}

func findHelpOption(opts []*Option) *Option {
	for _, o := range opts {
		if o.IsHelp() {
			return o
		}
	}
	return nil
}

func findActionOption(opts []*Option) *Option {
	for _, o := range opts {
		if o.IsAction() {
			return o
		}
	}
	return nil
}

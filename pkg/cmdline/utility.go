// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmdline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"tailscale.com/types/logger"
)

// Config configures a Utility. Only Store is required.
type Config struct {
	Store Store

	// Program and Description appear in the default help output. Program
	// defaults to the base name of os.Args[0].
	Program     string
	Description string

	Parser     Parser
	OptionHelp OptionHelpPrinter
	ActionHelp ActionHelpPrinter
	Presenter  Presenter

	// Logf receives debug output for each pipeline stage.
	Logf logger.Logf
}

// Utility runs the parse, help, check, validate, handle and execute
// pipeline against a Store's catalog.
type Utility struct {
	store      Store
	parser     Parser
	optionHelp OptionHelpPrinter
	actionHelp ActionHelpPrinter
	presenter  Presenter
	logf       logger.Logf
}

// New returns a Utility for cfg, filling unset fields with defaults.
func New(cfg Config) *Utility {
	program := cfg.Program
	if program == "" {
		program = filepath.Base(os.Args[0])
	}
	u := &Utility{
		store:      cfg.Store,
		parser:     cfg.Parser,
		optionHelp: cfg.OptionHelp,
		actionHelp: cfg.ActionHelp,
		presenter:  cfg.Presenter,
		logf:       cfg.Logf,
	}
	if u.parser == nil {
		u.parser = StdParser{}
	}
	if u.optionHelp == nil {
		u.optionHelp = StdOptionHelpPrinter{Program: program, Description: cfg.Description}
	}
	if u.actionHelp == nil {
		u.actionHelp = StdActionHelpPrinter{Program: program}
	}
	if u.presenter == nil {
		u.presenter = NewStdPresenter(os.Stdout)
	}
	if u.logf == nil {
		u.logf = logger.Discard
	}
	return u
}

// Run parses args, shows help if it was asked for, and otherwise executes the
// selected action.
func (u *Utility) Run(ctx context.Context, args []string) error {
	a, err := u.Parse(args)
	if err != nil {
		return err
	}
	shown, err := u.HandleHelp(a)
	if err != nil || shown {
		return err
	}
	return u.Execute(ctx, a)
}

// Parse loads the catalog and binds args to it.
func (u *Utility) Parse(args []string) (*Args, error) {
	if u.store == nil {
		return nil, errors.New("cmdline: no store configured")
	}
	opts, err := u.store.LoadSupportedOptions()
	if err != nil {
		return nil, fmt.Errorf("failed to load options: %w", err)
	}
	actions, err := u.store.LoadSupportedActions()
	if err != nil {
		return nil, fmt.Errorf("failed to load actions: %w", err)
	}
	opts = withBuiltins(opts)
	if err := verifyCatalog(opts, actions); err != nil {
		return nil, err
	}
	u.logf("cmdline: loaded %d options, %d actions", len(opts), len(actions))

	specified, err := u.parser.Parse(args, opts)
	if err != nil {
		return nil, err
	}
	u.logf("cmdline: parsed %d option instances", len(specified))
	return NewArgs(actions, opts, specified), nil
}

// withBuiltins returns opts with the default help and action options added
// when the catalog does not declare its own.
func withBuiltins(opts []*Option) []*Option {
	var extra []*Option
	if findHelpOption(opts) == nil {
		extra = append(extra, DefaultHelpOption)
	}
	if findActionOption(opts) == nil {
		extra = append(extra, DefaultActionOption)
	}
	if len(extra) == 0 {
		return opts
	}
	out := make([]*Option, 0, len(extra)+len(opts))
	out = append(out, extra...)
	return append(out, opts...)
}

// HandleHelp presents help if args contains the help option and reports
// whether it did.
func (u *Utility) HandleHelp(args *Args) (bool, error) {
	inst := args.HelpInstance()
	if inst == nil {
		return false, nil
	}
	if len(inst.SubInstances) == 0 && args.ActionInstance() == nil {
		u.logf("cmdline: showing option help")
		return true, u.PrintOptionHelp(args)
	}
	u.logf("cmdline: showing action help")
	return true, u.PrintActionHelp(args)
}

// PrintOptionHelp renders and presents help for all options.
func (u *Utility) PrintOptionHelp(args *Args) error {
	return u.presenter.PresentOptionHelp(u.optionHelp.PrintHelp(args))
}

// PrintActionHelp renders and presents help for the requested actions.
func (u *Utility) PrintActionHelp(args *Args) error {
	return u.presenter.PresentActionHelp(u.actionHelp.PrintHelp(args))
}

// Execute checks, validates and applies the specified options, then runs
// the selected action. Errors from the action itself are returned as is.
func (u *Utility) Execute(ctx context.Context, args *Args) error {
	name := args.SpecifiedActionName()
	if name == "" {
		return ErrNoAction
	}
	action := args.FindAction(name)
	if action == nil {
		return &UnknownActionError{Name: name}
	}
	if missing := Check(args); len(missing) > 0 {
		return &MissingRequiredOptionsError{Action: name, Options: missing}
	}
	custom := args.CustomSpecified()
	if failures := Validate(action, custom); len(failures) > 0 {
		return &OptionValidationError{Failures: failures}
	}
	for _, inst := range custom {
		if inst.Handleable() {
			u.logf("cmdline: handling %v", inst)
		}
	}
	if err := Handle(action, custom); err != nil {
		return err
	}
	u.logf("cmdline: executing %q", name)
	return action.Execute(ctx)
}

// Check returns the custom options required for the selected action that
// were not specified.
func Check(args *Args) []*Option {
	custom := args.CustomSpecified()
	var missing []*Option
	for _, o := range DetermineRequired(args.SpecifiedAction(), args.CustomSupportedOptions(), custom) {
		if !args.IsSpecified(o) {
			missing = append(missing, o)
		}
	}
	return missing
}

// Validate runs every validator on every instance and returns all failures.
// An instance whose option does not apply to action also fails.
func Validate(action Action, instances []*Instance) []ValidationFailure {
	var failures []ValidationFailure
	for _, inst := range instances {
		if !inst.Option.AppliesTo(action) {
			failures = append(failures, ValidationFailure{
				Instance: inst,
				Err:      fmt.Errorf("not supported by action %q", actionName(action)),
			})
			continue
		}
		for _, v := range inst.Option.Validators {
			if err := v.Validate(inst); err != nil {
				failures = append(failures, ValidationFailure{Instance: inst, Err: err})
				break
			}
		}
	}
	return failures
}

// Handle applies every handleable instance to action.
func Handle(action Action, instances []*Instance) error {
	for _, inst := range instances {
		if !inst.Handleable() {
			continue
		}
		if err := inst.Option.Handler.HandleOption(action, inst); err != nil {
			return &HandleError{Instance: inst, Err: err}
		}
	}
	return nil
}

func actionName(a Action) string {
	if a == nil {
		return ""
	}
	return a.Name()
}

// verifyCatalog rejects catalogs the parser can't resolve unambiguously or
// whose handlers would write the same action state.
func verifyCatalog(opts []*Option, actions []Action) error {
	var problems []string

	names := make(map[string]bool)
	aliases := make(map[string]*Option)
	var helps, selectors int
	for _, o := range opts {
		if o.Name == "" {
			problems = append(problems, "option with empty name")
			continue
		}
		if names[o.Name] {
			problems = append(problems, fmt.Sprintf("duplicate option name %q", o.Name))
		}
		names[o.Name] = true
		for _, a := range o.Aliases() {
			if prev, ok := aliases[a]; ok {
				problems = append(problems, fmt.Sprintf("alias %s used by %q and %q", a, prev.Name, o.Name))
				continue
			}
			aliases[a] = o
		}
		if o.IsHelp() {
			helps++
		}
		if o.IsAction() {
			selectors++
		}
	}
	if helps > 1 {
		problems = append(problems, "more than one help option")
	}
	if selectors > 1 {
		problems = append(problems, "more than one action option")
	}

	actionNames := make(map[string]bool)
	for _, a := range actions {
		if actionNames[a.Name()] {
			problems = append(problems, fmt.Sprintf("duplicate action name %q", a.Name()))
		}
		actionNames[a.Name()] = true
	}
	for _, o := range opts {
		for _, n := range o.Actions {
			if !actionNames[n] {
				problems = append(problems, fmt.Sprintf("option %q refers to unknown action %q", o.Name, n))
			}
		}
	}

	for _, a := range actions {
		bound := make(map[string]*Option)
		for _, o := range opts {
			b, ok := o.Handler.(Binder)
			if !ok || !o.AppliesTo(a) {
				continue
			}
			if prev, ok := bound[b.Binding()]; ok {
				problems = append(problems, fmt.Sprintf("options %q and %q both bind %q on action %q", prev.Name, o.Name, b.Binding(), a.Name()))
				continue
			}
			bound[b.Binding()] = o
		}
	}

	if len(problems) > 0 {
		return &CatalogError{Problems: problems}
	}
	return nil
}

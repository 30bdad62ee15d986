// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cmdline dispatches a command line to one of a catalog of actions.
//
// A Store supplies the catalog: the supported Options (switches) and Actions
// (executable units). A Utility runs the pipeline:
//
//	parse -> help -> check required -> validate -> handle -> execute
//
// Parsing turns raw tokens into Instances. Help short-circuits the run.
// Required-ness is computed per selected action. Validators and Handlers are
// attached to individual options; handlers bind values onto the selected
// action before it executes.
//
// # Basic Usage
//
//	type copyAction struct {
//	    cmdline.Named
//	    dest string
//	}
//
//	func (a *copyAction) Execute(ctx context.Context) error { ... }
//
//	dest := &cmdline.Option{
//	    Name:       "dest",
//	    Short:      "d",
//	    Arity:      cmdline.OneArg,
//	    Required:   cmdline.ForActions("copy"),
//	    Validators: []cmdline.Validator{cmdline.NotEmpty()},
//	    Handler: cmdline.Apply(func(a *copyAction, inst *cmdline.Instance) error {
//	        a.dest = inst.Value()
//	        return nil
//	    }),
//	}
//
//	u := cmdline.New(cmdline.Config{
//	    Store: &store.Static{
//	        Options: []*cmdline.Option{dest},
//	        Actions: []cmdline.Action{&copyAction{Named: cmdline.NewNamed("copy", "Copy a file")}},
//	    },
//	})
//	if err := u.Run(ctx, os.Args[1:]); err != nil {
//	    fmt.Fprintf(os.Stderr, "Error: %v\n", err)
//	    os.Exit(1)
//	}
//
// # Token Syntax
//
// Options are matched by alias: -d, --dest, or --dest=value. The first bare
// token selects the action, so "copy --dest /tmp" is the same as
// "--action copy --dest /tmp". Everything after --help names the action
// whose help is wanted.
//
// # Errors
//
// User input problems are reported in batches before any action runs:
// *ParseError, *MissingRequiredOptionsError, *OptionValidationError. Errors
// returned by Action.Execute are passed through unchanged. The Utility never
// exits the process.
package cmdline

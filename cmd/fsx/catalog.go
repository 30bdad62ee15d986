// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"github.com/yeetrun/cmdline/pkg/cmdline"
	"github.com/yeetrun/cmdline/pkg/codecutil"
	"github.com/yeetrun/cmdline/pkg/fileutil"
	"github.com/yeetrun/cmdline/pkg/store"
)

// builtinActions are the action types fsx knows how to construct.
var builtinActions = []struct {
	typ, description string
	build            func(cmdline.Named, env) cmdline.Action
}{
	{"copy", "Copy a file", func(n cmdline.Named, e env) cmdline.Action {
		return &copyAction{Named: n, env: e}
	}},
	{"list", "List a directory", func(n cmdline.Named, e env) cmdline.Action {
		return &listAction{Named: n, env: e}
	}},
	{"checksum", "Print file checksums", func(n cmdline.Named, e env) cmdline.Action {
		return &checksumAction{Named: n, env: e}
	}},
	{"compress", "Compress or decompress a file with zstd", func(n cmdline.Named, e env) cmdline.Action {
		return &compressAction{Named: n, env: e}
	}},
	{"version", "Print the fsx version", func(n cmdline.Named, e env) cmdline.Action {
		return &versionAction{Named: n, env: e}
	}},
}

// staticOptions is the built-in option catalog. It is created once so that
// every load hands out the same *Option values.
var staticOptions = []*cmdline.Option{
	{
		Name:        "src",
		Short:       "s",
		Description: "Source file",
		Arity:       cmdline.OneArg,
		Required:    cmdline.ForActions("copy", "compress"),
		Actions:     []string{"copy", "compress"},
		Validators:  []cmdline.Validator{cmdline.FileExists()},
		Handler:     cmdline.Set("src"),
	},
	{
		Name:        "files",
		Description: "Files to hash",
		ArgName:     "FILE",
		Arity:       cmdline.ManyArgs,
		Required:    cmdline.ForActions("checksum"),
		Actions:     []string{"checksum"},
		Validators:  []cmdline.Validator{cmdline.FileExists()},
		Handler:     cmdline.Set("src"),
	},
	{
		Name:        "dest",
		Short:       "d",
		Description: "Destination file or directory",
		Arity:       cmdline.OneArg,
		Required:    cmdline.ForActions("copy"),
		Actions:     []string{"copy", "compress"},
		Validators:  []cmdline.Validator{cmdline.NotEmpty()},
		Handler:     cmdline.Set("dest"),
	},
	{
		Name:        "force",
		Short:       "f",
		Description: "Overwrite an existing destination",
		Actions:     []string{"copy", "compress"},
		Handler:     cmdline.Set("force"),
	},
	{
		Name:        "backup",
		Short:       "b",
		Description: "Keep the existing destination as a numbered backup",
		Actions:     []string{"copy"},
		Handler:     cmdline.Set("backup"),
	},
	{
		Name:        "dir",
		Description: "Directory to list (default .)",
		Arity:       cmdline.OneArg,
		Actions:     []string{"list"},
		Validators:  []cmdline.Validator{cmdline.FileExists()},
		Handler:     cmdline.Set("dir"),
	},
	{
		Name:        "long",
		Short:       "l",
		Description: "Show size, mode and file type",
		Actions:     []string{"list"},
		Handler:     cmdline.Set("long"),
	},
	{
		Name:        "all",
		Description: "Include dotfiles",
		Actions:     []string{"list"},
		Handler:     cmdline.Set("all"),
	},
	{
		Name:        "algo",
		Description: "Checksum algorithm",
		Arity:       cmdline.OneArg,
		Actions:     []string{"checksum"},
		Validators:  []cmdline.Validator{cmdline.AllowedValues(fileutil.ChecksumAlgorithms...)},
		Handler:     cmdline.Set("algo"),
	},
	{
		Name:        "decompress",
		Short:       "x",
		Description: "Decompress instead of compressing",
		Actions:     []string{"compress"},
		Handler:     cmdline.Set("decompress"),
	},
	{
		Name:        "level",
		Description: "Compression level",
		Arity:       cmdline.OneArg,
		Actions:     []string{"compress"},
		Validators:  []cmdline.Validator{cmdline.AllowedValues(codecutil.Levels...)},
		Handler:     cmdline.Set("level"),
	},
	{
		Name:        "require",
		Description: "Fail unless the version satisfies this constraint",
		ArgName:     "CONSTRAINT",
		Arity:       cmdline.OneArg,
		Actions:     []string{"version"},
		Validators:  []cmdline.Validator{cmdline.SemverConstraint()},
		Handler: cmdline.Apply(func(a *versionAction, inst *cmdline.Instance) error {
			a.require = inst.Value()
			return nil
		}),
	},
}

// staticStore returns the catalog compiled into fsx.
func staticStore(e env) *store.Static {
	return &store.Static{
		Options: staticOptions,
		NewActions: func() []cmdline.Action {
			actions := make([]cmdline.Action, 0, len(builtinActions))
			for _, b := range builtinActions {
				actions = append(actions, b.build(cmdline.NewNamed(b.typ, b.description), e))
			}
			return actions
		},
	}
}

// newRegistry returns a registry that can build fsx actions from a catalog
// file. Catalog actions may rename a type, for example name "cp" with type
// "copy".
func newRegistry(e env) *store.Registry {
	r := store.NewRegistry()
	for _, b := range builtinActions {
		r.RegisterAction(b.typ, func(spec store.ActionSpec) (cmdline.Action, error) {
			desc := spec.Description
			if desc == "" {
				desc = b.description
			}
			return b.build(cmdline.NewNamed(spec.Name, desc), e), nil
		})
	}
	return r
}

// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmdline

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type copyAction struct {
	Named
	dest     string
	force    bool
	executed int
}

func (a *copyAction) Execute(context.Context) error {
	a.executed++
	return nil
}

type listAction struct {
	Named
	dir      string
	executed int
}

func (a *listAction) Execute(context.Context) error {
	a.executed++
	return nil
}

type testCatalog struct {
	copy *copyAction
	list *listAction

	dest, force, files, count, dir *Option
}

func newTestCatalog() *testCatalog {
	c := &testCatalog{
		copy: &copyAction{Named: NewNamed("copy", "Copy a file")},
		list: &listAction{Named: NewNamed("listAction", "List a directory")},
	}
	c.dest = &Option{
		Name:        "dest",
		Short:       "d",
		Long:        "dest",
		Description: "Destination path",
		Arity:       OneArg,
		Required:    ForActions("copy"),
		Actions:     []string{"copy"},
		Validators:  []Validator{NotEmpty()},
		Handler: Apply(func(a *copyAction, inst *Instance) error {
			a.dest = inst.Value()
			return nil
		}),
	}
	c.force = &Option{
		Name:    "force",
		Short:   "f",
		Arity:   NoArgs,
		Actions: []string{"copy"},
		Handler: Apply(func(a *copyAction, _ *Instance) error {
			a.force = true
			return nil
		}),
	}
	c.files = &Option{Name: "files", Arity: ManyArgs}
	c.count = &Option{Name: "count", Arity: OneArg, Validators: []Validator{IntRange(-10, 10)}}
	c.dir = &Option{
		Name:    "dir",
		Arity:   OneArg,
		Actions: []string{"listAction"},
		Handler: Apply(func(a *listAction, inst *Instance) error {
			a.dir = inst.Value()
			return nil
		}),
	}
	return c
}

func (c *testCatalog) options() []*Option {
	return []*Option{c.dest, c.force, c.files, c.count, c.dir}
}

func (c *testCatalog) store() *testStore {
	return &testStore{opts: c.options(), actions: []Action{c.copy, c.list}}
}

type testStore struct {
	opts    []*Option
	actions []Action

	optionLoads, actionLoads int
}

func (s *testStore) LoadSupportedOptions() ([]*Option, error) {
	s.optionLoads++
	return s.opts, nil
}

func (s *testStore) LoadSupportedActions() ([]Action, error) {
	s.actionLoads++
	return s.actions, nil
}

type recordingPresenter struct {
	optionHelp []Help
	actionHelp []Help
}

func (p *recordingPresenter) PresentOptionHelp(h Help) error {
	p.optionHelp = append(p.optionHelp, h)
	return nil
}

func (p *recordingPresenter) PresentActionHelp(h Help) error {
	p.actionHelp = append(p.actionHelp, h)
	return nil
}

// parsed is a comparable summary of an Instance.
type parsed struct {
	Name   string
	Alias  string
	Values []string
	Sub    []string
}

func summarize(insts []*Instance) []parsed {
	var out []parsed
	for _, inst := range insts {
		p := parsed{Name: inst.Option.Name, Alias: inst.Alias, Values: inst.Values}
		for _, sub := range inst.SubInstances {
			p.Sub = append(p.Sub, sub.Values...)
		}
		out = append(out, p)
	}
	return out
}

func optionNames(opts []*Option) []string {
	var out []string
	for _, o := range opts {
		out = append(out, o.Name)
	}
	return out
}

func mustParse(t *testing.T, u *Utility, args ...string) *Args {
	t.Helper()
	a, err := u.Parse(args)
	if err != nil {
		t.Fatalf("Parse(%q) error: %v", args, err)
	}
	return a
}

func diff(t *testing.T, what string, got, want any) {
	t.Helper()
	if d := cmp.Diff(want, got); d != "" {
		t.Fatalf("%s mismatch (-want +got):\n%s", what, d)
	}
}

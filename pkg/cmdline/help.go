// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmdline

import (
	"fmt"
	"strings"
)

// Help is renderable help content.
type Help struct {
	Title    string
	Sections []HelpSection
}

// HelpSection is one headed block of help. An empty Heading renders the lines
// as a plain paragraph.
type HelpSection struct {
	Heading string
	Lines   []string
}

func (h Help) String() string {
	var b strings.Builder
	if h.Title != "" {
		b.WriteString(h.Title)
		b.WriteString("\n\n")
	}
	for _, s := range h.Sections {
		if s.Heading != "" {
			b.WriteString(s.Heading)
			b.WriteString(":\n")
		}
		for _, l := range s.Lines {
			b.WriteString(l)
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	return b.String()
}

// OptionHelpPrinter renders help for every supported option.
type OptionHelpPrinter interface {
	PrintHelp(args *Args) Help
}

// ActionHelpPrinter renders help for the action(s) named after --help.
type ActionHelpPrinter interface {
	PrintHelp(args *Args) Help
}

// StdOptionHelpPrinter is the default OptionHelpPrinter.
type StdOptionHelpPrinter struct {
	Program     string
	Description string
}

// PrintHelp implements OptionHelpPrinter.
func (p StdOptionHelpPrinter) PrintHelp(args *Args) Help {
	h := Help{Title: p.Program}
	if p.Description != "" {
		h.Title += " - " + p.Description
	}
	h.Sections = append(h.Sections, HelpSection{
		Heading: "USAGE",
		Lines:   []string{fmt.Sprintf("    %s ACTION [OPTIONS]", p.Program)},
	})
	if len(args.SupportedActions) > 0 {
		h.Sections = append(h.Sections, actionListSection(args.SupportedActions))
	}
	var lines []string
	for _, o := range args.SupportedOptions {
		lines = append(lines, formatOption(o, requiredNote(o, args.SupportedActions)))
	}
	h.Sections = append(h.Sections,
		HelpSection{Heading: "OPTIONS", Lines: lines},
		HelpSection{Lines: []string{fmt.Sprintf("Run '%s --help ACTION' for more information on an action.", p.Program)}},
	)
	return h
}

// StdActionHelpPrinter is the default ActionHelpPrinter.
type StdActionHelpPrinter struct {
	Program string
}

// PrintHelp implements ActionHelpPrinter. One known action name gets a
// detailed page; anything else lists every action. With no names after
// --help the action selected before it is used.
func (p StdActionHelpPrinter) PrintHelp(args *Args) Help {
	var names []string
	if inst := args.HelpInstance(); inst != nil {
		for _, sub := range inst.SubInstances {
			names = append(names, sub.Values...)
		}
	}
	if len(names) == 0 {
		if n := args.SpecifiedActionName(); n != "" {
			names = []string{n}
		}
	}
	if len(names) == 1 {
		if a := args.FindAction(names[0]); a != nil {
			return p.actionHelp(args, a)
		}
	}

	h := Help{Title: p.Program + " actions"}
	var unknown []string
	for _, n := range names {
		if args.FindAction(n) == nil {
			unknown = append(unknown, n)
		}
	}
	if len(unknown) > 0 {
		h.Sections = append(h.Sections, HelpSection{
			Lines: []string{"Unknown action: " + strings.Join(unknown, ", ")},
		})
	}
	for _, a := range args.SupportedActions {
		h.Sections = append(h.Sections, p.actionSection(args, a))
	}
	return h
}

func (p StdActionHelpPrinter) actionHelp(args *Args, a Action) Help {
	h := Help{Title: a.Name()}
	if d := a.Description(); d != "" {
		h.Title += " - " + d
	}
	h.Sections = append(h.Sections, HelpSection{
		Heading: "USAGE",
		Lines:   []string{fmt.Sprintf("    %s %s [OPTIONS]", p.Program, a.Name())},
	})
	if lines := actionOptionLines(args, a); len(lines) > 0 {
		h.Sections = append(h.Sections, HelpSection{Heading: "OPTIONS", Lines: lines})
	}
	return h
}

func (p StdActionHelpPrinter) actionSection(args *Args, a Action) HelpSection {
	lines := []string{"    " + a.Description()}
	lines = append(lines, actionOptionLines(args, a)...)
	return HelpSection{Heading: strings.ToUpper(a.Name()), Lines: lines}
}

func actionOptionLines(args *Args, a Action) []string {
	rc := NewRequireContext(a, nil)
	var lines []string
	for _, o := range args.OptionsFor(a) {
		note := ""
		if o.Required != nil && o.Required(rc) {
			note = "required"
		}
		lines = append(lines, formatOption(o, note))
	}
	return lines
}

func actionListSection(actions []Action) HelpSection {
	lines := make([]string, 0, len(actions))
	for _, a := range actions {
		lines = append(lines, fmt.Sprintf("    %-12s %s", a.Name(), a.Description()))
	}
	return HelpSection{Heading: "ACTIONS", Lines: lines}
}

// requiredNote describes when o is required without any options specified.
// Actions o does not apply to are never counted.
func requiredNote(o *Option, actions []Action) string {
	if o.Required == nil {
		return ""
	}
	if o.AppliesTo(nil) && o.Required(NewRequireContext(nil, nil)) {
		return "required"
	}
	var names []string
	for _, a := range actions {
		if o.AppliesTo(a) && o.Required(NewRequireContext(a, nil)) {
			names = append(names, a.Name())
		}
	}
	switch {
	case len(names) == 0:
		return "conditionally required"
	case len(names) == len(actions):
		return "required"
	}
	return "required for: " + strings.Join(names, ", ")
}

func formatOption(o *Option, note string) string {
	var flagStr string
	switch l := o.LongAlias(); {
	case o.Short != "" && l != "":
		flagStr = fmt.Sprintf("    -%s, --%s", o.Short, l)
	case l != "":
		flagStr = fmt.Sprintf("        --%s", l)
	default:
		flagStr = fmt.Sprintf("    -%s", o.Short)
	}
	if arg := argUsage(o); arg != "" {
		flagStr += " " + arg
	}

	var b strings.Builder
	if o.Description != "" {
		fmt.Fprintf(&b, "%-32s %s", flagStr, o.Description)
	} else {
		b.WriteString(flagStr)
	}
	var notes []string
	if note != "" {
		notes = append(notes, note)
	}
	if len(o.Actions) > 0 {
		notes = append(notes, "actions: "+strings.Join(o.Actions, ", "))
	}
	if len(notes) > 0 {
		fmt.Fprintf(&b, " (%s)", strings.Join(notes, "; "))
	}
	return b.String()
}

func argUsage(o *Option) string {
	name := o.ArgName
	if name == "" {
		name = strings.ToUpper(o.Name)
	}
	switch {
	case o.IsHelp():
		return "[" + name + "...]"
	case o.Arity == OneArg:
		return name
	case o.Arity == ManyArgs:
		return name + "..."
	}
	return ""
}

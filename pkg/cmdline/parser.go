// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmdline

import "strings"

// Parser turns raw tokens into option instances.
type Parser interface {
	Parse(args []string, options []*Option) ([]*Instance, error)
}

// StdParser is a single left-to-right scan with no backtracking.
//
// Supported forms:
//   - Switches: -f, --force
//   - Values: -d /tmp, --dest /tmp, --dest=/tmp
//   - Many values: --files a b c (up to the next alias)
//   - Action as first bare token: copy --dest /tmp
//   - Help: --help [ACTION...] or --help=ACTION (the rest of the line names
//     actions; help may follow an option still waiting for its value)
//   - "--" stops alias matching; later tokens are values only
type StdParser struct{}

var _ Parser = StdParser{}

type parseState struct {
	actionOpt *Option
	out       []*Instance
	byOption  map[*Option]*Instance
	cur       *Instance // instance that may still take values
	curStart  int       // len(cur.Values) when cur was opened
}

func (s *parseState) wantsValue() bool {
	if s.cur == nil {
		return false
	}
	switch s.cur.Option.Arity {
	case ManyArgs:
		return true
	case OneArg:
		return len(s.cur.Values) == 0
	}
	return false
}

// closeCur finishes the open instance, checking its arity is met.
func (s *parseState) closeCur() error {
	if s.cur == nil {
		return nil
	}
	inst := s.cur
	s.cur = nil
	if inst.Option.Arity != NoArgs && len(inst.Values) == s.curStart {
		return &ParseError{Option: inst.Option, Reason: "missing value"}
	}
	return nil
}

func (s *parseState) open(opt *Option, alias string) (*Instance, error) {
	if existing, ok := s.byOption[opt]; ok {
		if opt.Arity == ManyArgs {
			return existing, nil
		}
		return nil, &ParseError{Token: alias, Option: opt, Reason: "specified more than once"}
	}
	inst := &Instance{Option: opt, Alias: alias}
	s.byOption[opt] = inst
	s.out = append(s.out, inst)
	return inst, nil
}

func (s *parseState) addValue(v string) {
	s.cur.Values = append(s.cur.Values, v)
	if s.cur.Option.Arity == OneArg {
		s.cur = nil
	}
}

// Parse implements Parser.
func (StdParser) Parse(args []string, options []*Option) ([]*Instance, error) {
	aliases := aliasIndex(options)
	s := &parseState{
		actionOpt: findActionOption(options),
		byOption:  make(map[*Option]*Instance),
	}
	literal := false

	for i := 0; i < len(args); i++ {
		tok := args[i]

		if !literal {
			if tok == "--" {
				literal = true
				continue
			}
			opt, alias, inline, hasInline := matchAlias(tok, aliases)
			if opt != nil {
				if opt.IsHelp() {
					rest := args[i+1:]
					if hasInline && inline != "" {
						rest = append([]string{inline}, rest...)
					}
					s.dropIncomplete()
					s.out = append(s.out, s.helpInstance(opt, alias, rest))
					return s.out, nil
				}
				if err := s.closeCur(); err != nil {
					return nil, err
				}
				inst, err := s.open(opt, alias)
				if err != nil {
					return nil, err
				}
				if opt.Arity == NoArgs {
					if hasInline {
						return nil, &ParseError{Token: tok, Option: opt, Reason: "option takes no value"}
					}
					continue
				}
				s.cur, s.curStart = inst, len(inst.Values)
				if hasInline {
					s.addValue(inline)
				}
				continue
			}
			if looksLikeOption(tok) && !(s.wantsValue() && isNumeric(tok)) {
				return nil, &ParseError{Token: tok, Reason: "unknown option"}
			}
		}

		if s.wantsValue() {
			s.addValue(tok)
			continue
		}
		if s.actionOpt != nil && s.byOption[s.actionOpt] == nil {
			inst, _ := s.open(s.actionOpt, "")
			inst.Values = append(inst.Values, tok)
			continue
		}
		return nil, &ParseError{Token: tok, Reason: "unexpected argument"}
	}

	if err := s.closeCur(); err != nil {
		return nil, err
	}
	return s.out, nil
}

// dropIncomplete discards the open instance if it never received a value, so
// that help can be asked for in the middle of a line.
func (s *parseState) dropIncomplete() {
	inst := s.cur
	s.cur = nil
	if inst == nil || len(inst.Values) > 0 {
		return
	}
	delete(s.byOption, inst.Option)
	for i, o := range s.out {
		if o == inst {
			s.out = append(s.out[:i], s.out[i+1:]...)
			break
		}
	}
}

// helpInstance builds the help instance; each remaining token names an
// action whose help was requested.
func (s *parseState) helpInstance(opt *Option, alias string, rest []string) *Instance {
	actionOpt := s.actionOpt
	if actionOpt == nil {
		actionOpt = DefaultActionOption
	}
	inst := &Instance{Option: opt, Alias: alias}
	for _, name := range rest {
		inst.SubInstances = append(inst.SubInstances, &Instance{Option: actionOpt, Values: []string{name}})
	}
	return inst
}

// aliasIndex maps "--long" and "-s" to options. The first option to claim an
// alias keeps it.
func aliasIndex(options []*Option) map[string]*Option {
	idx := make(map[string]*Option)
	for _, o := range options {
		for _, a := range o.Aliases() {
			if _, ok := idx[a]; !ok {
				idx[a] = o
			}
		}
	}
	return idx
}

// matchAlias resolves tok to an option, splitting "--long=value".
func matchAlias(tok string, aliases map[string]*Option) (opt *Option, alias, inline string, hasInline bool) {
	if o, ok := aliases[tok]; ok {
		return o, tok, "", false
	}
	if !strings.HasPrefix(tok, "-") {
		return nil, "", "", false
	}
	name, value, ok := strings.Cut(tok, "=")
	if !ok {
		return nil, "", "", false
	}
	if o, ok := aliases[name]; ok {
		return o, name, value, true
	}
	return nil, "", "", false
}

func looksLikeOption(tok string) bool {
	return len(tok) > 1 && tok[0] == '-'
}

// isNumeric reports whether s is a number such as "10", "-10" or "-3.14".
func isNumeric(s string) bool {
	if len(s) == 0 {
		return false
	}
	start := 0
	if s[0] == '-' || s[0] == '+' {
		if len(s) == 1 {
			return false
		}
		start = 1
	}
	hasDigit := false
	hasDot := false
	for i := start; i < len(s); i++ {
		switch {
		case s[i] >= '0' && s[i] <= '9':
			hasDigit = true
		case s[i] == '.':
			if hasDot {
				return false
			}
			hasDot = true
		default:
			return false
		}
	}
	return hasDigit
}

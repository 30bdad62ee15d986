// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmdline

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoAction is returned by Execute when no action was selected.
var ErrNoAction = errors.New("no action specified")

// ParseError is returned when the tokens can't be bound to the catalog.
type ParseError struct {
	Token  string  // offending token, if any
	Option *Option // option being filled, if any
	Reason string
}

func (e *ParseError) Error() string {
	var b strings.Builder
	b.WriteString("parse error: ")
	b.WriteString(e.Reason)
	if e.Option != nil {
		fmt.Fprintf(&b, " (option %s)", e.Option)
	}
	if e.Token != "" {
		fmt.Fprintf(&b, ": %q", e.Token)
	}
	return b.String()
}

// MissingRequiredOptionsError lists every required option that was not
// specified for the selected action.
type MissingRequiredOptionsError struct {
	Action  string
	Options []*Option
}

func (e *MissingRequiredOptionsError) Error() string {
	names := make([]string, len(e.Options))
	for i, o := range e.Options {
		names[i] = o.String()
	}
	if e.Action == "" {
		return fmt.Sprintf("required options are not set: %s", strings.Join(names, ", "))
	}
	return fmt.Sprintf("required options for '%s' are not set: %s", e.Action, strings.Join(names, ", "))
}

// ValidationFailure pairs an instance with the first validator error it hit.
type ValidationFailure struct {
	Instance *Instance
	Err      error
}

func (f ValidationFailure) String() string {
	return fmt.Sprintf("%s: %v", f.Instance, f.Err)
}

// OptionValidationError lists every specified instance that failed
// validation.
type OptionValidationError struct {
	Failures []ValidationFailure
}

func (e *OptionValidationError) Error() string {
	parts := make([]string, len(e.Failures))
	for i, f := range e.Failures {
		parts[i] = f.String()
	}
	return "options failed validation: " + strings.Join(parts, "; ")
}

// Instances returns the failing instances.
func (e *OptionValidationError) Instances() []*Instance {
	out := make([]*Instance, len(e.Failures))
	for i, f := range e.Failures {
		out[i] = f.Instance
	}
	return out
}

// HandleError is returned when a handler could not apply an instance to the
// selected action.
type HandleError struct {
	Instance *Instance
	Err      error
}

func (e *HandleError) Error() string {
	return fmt.Sprintf("failed to handle %s: %v", e.Instance, e.Err)
}

func (e *HandleError) Unwrap() error { return e.Err }

// UnknownActionError is returned when the selected action is not in the
// catalog.
type UnknownActionError struct {
	Name string
}

func (e *UnknownActionError) Error() string {
	return fmt.Sprintf("unknown action: %s", e.Name)
}

// CatalogError reports an inconsistent option catalog.
type CatalogError struct {
	Problems []string
}

func (e *CatalogError) Error() string {
	return "invalid option catalog: " + strings.Join(e.Problems, "; ")
}

// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package store

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/yeetrun/cmdline/pkg/cmdline"
)

// ActionFactory builds a fresh action for a catalog entry.
type ActionFactory func(spec ActionSpec) (cmdline.Action, error)

// ValidatorFactory builds a validator from its catalog configuration.
type ValidatorFactory func(spec ValidatorSpec) (cmdline.Validator, error)

// HandlerFactory builds a handler from its catalog configuration.
type HandlerFactory func(spec HandlerSpec) (cmdline.Handler, error)

// Registry maps the type names used in catalog documents to Go code.
type Registry struct {
	actions    map[string]ActionFactory
	validators map[string]ValidatorFactory
	handlers   map[string]HandlerFactory
}

// NewRegistry returns a Registry with the standard validator and handler
// types registered and no actions.
func NewRegistry() *Registry {
	r := &Registry{
		actions:    make(map[string]ActionFactory),
		validators: make(map[string]ValidatorFactory),
		handlers:   make(map[string]HandlerFactory),
	}
	r.RegisterValidator("not_empty", func(ValidatorSpec) (cmdline.Validator, error) {
		return cmdline.NotEmpty(), nil
	})
	r.RegisterValidator("allowed", func(s ValidatorSpec) (cmdline.Validator, error) {
		if len(s.Values) == 0 {
			return nil, errors.New("values is required")
		}
		return cmdline.AllowedValues(s.Values...), nil
	})
	r.RegisterValidator("regexp", func(s ValidatorSpec) (cmdline.Validator, error) {
		if s.Pattern == "" {
			return nil, errors.New("pattern is required")
		}
		return cmdline.MatchRegexp(s.Pattern)
	})
	r.RegisterValidator("file_exists", func(ValidatorSpec) (cmdline.Validator, error) {
		return cmdline.FileExists(), nil
	})
	r.RegisterValidator("int_range", func(s ValidatorSpec) (cmdline.Validator, error) {
		lo, hi := math.MinInt, math.MaxInt
		if s.Min != nil {
			lo = *s.Min
		}
		if s.Max != nil {
			hi = *s.Max
		}
		if lo > hi {
			return nil, fmt.Errorf("min %d is greater than max %d", lo, hi)
		}
		return cmdline.IntRange(lo, hi), nil
	})
	r.RegisterValidator("semver", func(s ValidatorSpec) (cmdline.Validator, error) {
		return cmdline.Semver(s.Constraint)
	})
	r.RegisterValidator("semver_constraint", func(ValidatorSpec) (cmdline.Validator, error) {
		return cmdline.SemverConstraint(), nil
	})
	r.RegisterValidator("uuid", func(ValidatorSpec) (cmdline.Validator, error) {
		return cmdline.UUID(), nil
	})
	r.RegisterHandler("set", func(s HandlerSpec) (cmdline.Handler, error) {
		return cmdline.Set(s.Property), nil
	})
	return r
}

// RegisterAction registers the factory for action type typ. It panics if typ
// is already registered.
func (r *Registry) RegisterAction(typ string, f ActionFactory) {
	if _, exists := r.actions[typ]; exists {
		panic(fmt.Sprintf("action type %q already registered", typ))
	}
	r.actions[typ] = f
}

// RegisterValidator registers the factory for validator type typ. It panics
// if typ is already registered.
func (r *Registry) RegisterValidator(typ string, f ValidatorFactory) {
	if _, exists := r.validators[typ]; exists {
		panic(fmt.Sprintf("validator type %q already registered", typ))
	}
	r.validators[typ] = f
}

// RegisterHandler registers the factory for handler type typ. It panics if
// typ is already registered.
func (r *Registry) RegisterHandler(typ string, f HandlerFactory) {
	if _, exists := r.handlers[typ]; exists {
		panic(fmt.Sprintf("handler type %q already registered", typ))
	}
	r.handlers[typ] = f
}

// NewAction builds the action described by spec.
func (r *Registry) NewAction(spec ActionSpec) (cmdline.Action, error) {
	f, ok := r.actions[spec.FactoryType()]
	if !ok {
		return nil, unknownType("action", spec.FactoryType(), r.actions)
	}
	a, err := f(spec)
	if err != nil {
		return nil, err
	}
	if a.Name() != spec.Name {
		return nil, fmt.Errorf("factory %q built action %q", spec.FactoryType(), a.Name())
	}
	return a, nil
}

// NewValidator builds the validator described by spec.
func (r *Registry) NewValidator(spec ValidatorSpec) (cmdline.Validator, error) {
	f, ok := r.validators[spec.Type]
	if !ok {
		return nil, unknownType("validator", spec.Type, r.validators)
	}
	return f(spec)
}

// NewHandler builds the handler described by spec.
func (r *Registry) NewHandler(spec HandlerSpec) (cmdline.Handler, error) {
	f, ok := r.handlers[spec.Type]
	if !ok {
		return nil, unknownType("handler", spec.Type, r.handlers)
	}
	return f(spec)
}

func unknownType[F any](kind, typ string, known map[string]F) error {
	names := make([]string, 0, len(known))
	for n := range known {
		names = append(names, n)
	}
	sort.Strings(names)
	if len(names) == 0 {
		return fmt.Errorf("unknown %s type %q", kind, typ)
	}
	return fmt.Errorf("unknown %s type %q (known: %s)", kind, typ, strings.Join(names, ", "))
}

// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmdline

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/google/uuid"
)

// Validator checks the values of a specified instance. A nil error means the
// instance is acceptable.
type Validator interface {
	Validate(inst *Instance) error
}

// ValidatorFunc adapts a function to Validator.
type ValidatorFunc func(inst *Instance) error

func (f ValidatorFunc) Validate(inst *Instance) error { return f(inst) }

// eachValue runs check on every value of inst.
func eachValue(check func(v string) error) Validator {
	return ValidatorFunc(func(inst *Instance) error {
		for _, v := range inst.Values {
			if err := check(v); err != nil {
				return err
			}
		}
		return nil
	})
}

// NotEmpty rejects empty or blank values.
func NotEmpty() Validator {
	return eachValue(func(v string) error {
		if strings.TrimSpace(v) == "" {
			return errors.New("value must not be empty")
		}
		return nil
	})
}

// AllowedValues accepts only the listed values.
func AllowedValues(allowed ...string) Validator {
	return eachValue(func(v string) error {
		if !slices.Contains(allowed, v) {
			return fmt.Errorf("%q is not one of %s", v, strings.Join(allowed, ", "))
		}
		return nil
	})
}

// MatchRegexp accepts values matching pattern in full.
func MatchRegexp(pattern string) (Validator, error) {
	re, err := regexp.Compile("^(?:" + pattern + ")$")
	if err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}
	return eachValue(func(v string) error {
		if !re.MatchString(v) {
			return fmt.Errorf("%q does not match %s", v, pattern)
		}
		return nil
	}), nil
}

// FileExists accepts paths that exist.
func FileExists() Validator {
	return eachValue(func(v string) error {
		if _, err := os.Stat(v); err != nil {
			if os.IsNotExist(err) {
				return fmt.Errorf("%s does not exist", v)
			}
			return err
		}
		return nil
	})
}

// IntRange accepts integers in [min, max].
func IntRange(min, max int) Validator {
	return eachValue(func(v string) error {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%q is not an integer", v)
		}
		if n < min || n > max {
			return fmt.Errorf("%d is out of range %d-%d", n, min, max)
		}
		return nil
	})
}

// Semver accepts semantic versions. A non-empty constraint such as ">= 1.2"
// must also be satisfied.
func Semver(constraint string) (Validator, error) {
	var c *semver.Constraints
	if constraint != "" {
		var err error
		c, err = semver.NewConstraint(constraint)
		if err != nil {
			return nil, fmt.Errorf("invalid version constraint %q: %w", constraint, err)
		}
	}
	return eachValue(func(v string) error {
		ver, err := semver.NewVersion(v)
		if err != nil {
			return fmt.Errorf("%q is not a semantic version", v)
		}
		if c != nil && !c.Check(ver) {
			return fmt.Errorf("%s does not satisfy %s", ver, constraint)
		}
		return nil
	}), nil
}

// SemverConstraint accepts version constraint expressions such as ">= 1.2, < 2".
func SemverConstraint() Validator {
	return eachValue(func(v string) error {
		if _, err := semver.NewConstraint(v); err != nil {
			return fmt.Errorf("%q is not a version constraint", v)
		}
		return nil
	})
}

// UUID accepts RFC 4122 UUIDs.
func UUID() Validator {
	return eachValue(func(v string) error {
		if _, err := uuid.Parse(v); err != nil {
			return fmt.Errorf("%q is not a UUID", v)
		}
		return nil
	})
}

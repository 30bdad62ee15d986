// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// prefs are the persisted defaults for global flags.
type prefs struct {
	Catalog       string `toml:"catalog,omitempty"`
	CatalogFormat string `toml:"catalog_format,omitempty"`
	NoColor       bool   `toml:"no_color,omitempty"`
}

func defaultPrefsFile() string {
	if p := os.Getenv("FSX_PREFS"); p != "" {
		return p
	}
	return filepath.Join(os.Getenv("HOME"), ".fsx", "prefs.toml")
}

// loadPrefs reads path, treating a missing file as empty prefs, and applies
// environment overrides.
func loadPrefs(path string) (prefs, error) {
	var p prefs
	if _, err := toml.DecodeFile(path, &p); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return prefs{}, fmt.Errorf("failed to load preferences from %s: %w", path, err)
	}
	if c := os.Getenv("FSX_CATALOG"); c != "" {
		p.Catalog = c
	}
	if os.Getenv("NO_COLOR") != "" {
		p.NoColor = true
	}
	return p, nil
}

func (p prefs) save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := toml.NewEncoder(f).Encode(p); err != nil {
		return fmt.Errorf("failed to write preferences: %w", err)
	}
	return f.Close()
}

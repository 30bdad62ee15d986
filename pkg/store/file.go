// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package store

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/yeetrun/cmdline/pkg/cmdline"
	"github.com/yeetrun/cmdline/pkg/ftdetect"
	"gopkg.in/yaml.v3"
	"tailscale.com/types/lazy"
)

// Format is a catalog document encoding.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
	FormatHCL  Format = "hcl"
)

// FormatOf infers the catalog format from a file name.
func FormatOf(path string) (Format, error) {
	ft, _ := ftdetect.DetectName(path)
	switch ft {
	case ftdetect.TOML:
		return FormatTOML, nil
	case ftdetect.YAML:
		return FormatYAML, nil
	case ftdetect.HCL:
		return FormatHCL, nil
	}
	return "", fmt.Errorf("cannot infer catalog format of %s (use .toml, .yaml or .hcl)", path)
}

// ParseFormat parses a format name. The empty string means infer.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case "", FormatTOML, FormatYAML, FormatHCL:
		return f, nil
	case "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unknown catalog format %q", s)
}

// File is a catalog read from disk. The document is decoded and its options
// resolved on first use; later loads return the same options. Actions are
// rebuilt from the registry on every load.
type File struct {
	Path string
	// Format is inferred from Path when empty.
	Format   Format
	Registry *Registry

	loaded lazy.SyncValue[*loadedCatalog]
}

type loadedCatalog struct {
	catalog *Catalog
	options []*cmdline.Option
}

var _ cmdline.Store = (*File)(nil)

// LoadSupportedOptions implements cmdline.Store.
func (f *File) LoadSupportedOptions() ([]*cmdline.Option, error) {
	lc, err := f.load()
	if err != nil {
		return nil, err
	}
	return lc.options, nil
}

// LoadSupportedActions implements cmdline.Store.
func (f *File) LoadSupportedActions() ([]cmdline.Action, error) {
	lc, err := f.load()
	if err != nil {
		return nil, err
	}
	actions, err := lc.catalog.BuildActions(f.registry())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", f.Path, err)
	}
	return actions, nil
}

// Catalog returns the decoded document.
func (f *File) Catalog() (*Catalog, error) {
	lc, err := f.load()
	if err != nil {
		return nil, err
	}
	return lc.catalog, nil
}

func (f *File) registry() *Registry {
	if f.Registry == nil {
		f.Registry = NewRegistry()
	}
	return f.Registry
}

func (f *File) load() (*loadedCatalog, error) {
	return f.loaded.GetErr(func() (*loadedCatalog, error) {
		format := f.Format
		if format == "" {
			var err error
			if format, err = FormatOf(f.Path); err != nil {
				return nil, err
			}
		}
		src, err := os.ReadFile(f.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to read catalog: %w", err)
		}
		cat, err := DecodeCatalog(src, f.Path, format)
		if err != nil {
			return nil, err
		}
		opts, err := cat.ResolveOptions(f.registry())
		if err != nil {
			return nil, fmt.Errorf("%s: %w", f.Path, err)
		}
		return &loadedCatalog{catalog: cat, options: opts}, nil
	})
}

// DecodeCatalog decodes a catalog document. filename is used in error
// messages.
func DecodeCatalog(src []byte, filename string, format Format) (*Catalog, error) {
	var cat Catalog
	switch format {
	case FormatTOML:
		md, err := toml.Decode(string(src), &cat)
		if err != nil {
			return nil, fmt.Errorf("failed to decode TOML file %s: %w", filename, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			return nil, fmt.Errorf("unknown keys in %s: %s", filename, strings.Join(keys, ", "))
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(src))
		dec.KnownFields(true)
		if err := dec.Decode(&cat); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to decode YAML file %s: %w", filename, err)
		}
	case FormatHCL:
		parser := hclparse.NewParser()
		file, diags := parser.ParseHCL(src, filename)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", filename, diags)
		}
		if diags := gohcl.DecodeBody(file.Body, nil, &cat); diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", filename, diags)
		}
	default:
		return nil, fmt.Errorf("unknown catalog format %q", format)
	}
	return &cat, nil
}

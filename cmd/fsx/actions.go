// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/Masterminds/semver/v3"
	"github.com/yeetrun/cmdline/pkg/cmdline"
	"github.com/yeetrun/cmdline/pkg/cmdutil"
	"github.com/yeetrun/cmdline/pkg/codecutil"
	"github.com/yeetrun/cmdline/pkg/fileutil"
	"github.com/yeetrun/cmdline/pkg/ftdetect"
	"golang.org/x/sync/errgroup"
	"tailscale.com/types/logger"
)

// version is the fsx release, overridden at build time with -ldflags.
var version = "0.4.0"

// env is what actions read from and write to.
type env struct {
	Stdin  io.Reader
	Stdout io.Writer
	Logf   logger.Logf
}

func (e env) logf(format string, args ...any) {
	if e.Logf != nil {
		e.Logf(format, args...)
	}
}

func flagValue(values []string) bool {
	return len(values) == 0 || values[0] == "true"
}

func oneValue(property string, values []string) (string, error) {
	if len(values) != 1 {
		return "", fmt.Errorf("%s takes exactly one value, got %d", property, len(values))
	}
	return values[0], nil
}

type unknownPropertyError struct {
	action, property string
}

func (e unknownPropertyError) Error() string {
	return fmt.Sprintf("%s does not accept %q", e.action, e.property)
}

type copyAction struct {
	cmdline.Named
	env

	src    string
	dest   string
	force  bool
	backup bool
}

func (a *copyAction) SetOption(property string, values []string) (err error) {
	switch property {
	case "src":
		a.src, err = oneValue(property, values)
	case "dest":
		a.dest, err = oneValue(property, values)
	case "force":
		a.force = flagValue(values)
	case "backup":
		a.backup = flagValue(values)
	default:
		return unknownPropertyError{a.Name(), property}
	}
	return err
}

func (a *copyAction) Execute(ctx context.Context) error {
	dest := a.dest
	if fi, err := os.Stat(dest); err == nil && fi.IsDir() {
		dest = filepath.Join(dest, filepath.Base(a.src))
	}

	if _, err := os.Stat(dest); err == nil {
		same, err := fileutil.Identical(a.src, dest)
		if err != nil {
			return err
		}
		if same {
			fmt.Fprintf(a.Stdout, "%s is up to date\n", dest)
			return nil
		}
		switch {
		case a.backup:
			old := fileutil.BackupName(dest)
			if err := os.Rename(dest, old); err != nil {
				return fmt.Errorf("failed to back up %s: %w", dest, err)
			}
			a.logf("backed up %s to %s", dest, old)
		case a.force:
		case cmdutil.IsTerminal(a.Stdin):
			ok, err := cmdutil.Confirm(a.Stdin, a.Stdout, fmt.Sprintf("Overwrite %s?", dest))
			if err != nil {
				return err
			}
			if !ok {
				return errors.New("copy cancelled")
			}
		default:
			return fmt.Errorf("%s already exists (use --force or --backup)", dest)
		}
	}

	if err := fileutil.CopyFile(a.src, dest); err != nil {
		return fmt.Errorf("failed to copy %s: %w", a.src, err)
	}
	fmt.Fprintf(a.Stdout, "%s -> %s\n", a.src, dest)
	return nil
}

type listAction struct {
	cmdline.Named
	env

	dir  string
	long bool
	all  bool
}

func (a *listAction) SetOption(property string, values []string) (err error) {
	switch property {
	case "dir":
		a.dir, err = oneValue(property, values)
	case "long":
		a.long = flagValue(values)
	case "all":
		a.all = flagValue(values)
	default:
		return unknownPropertyError{a.Name(), property}
	}
	return err
}

func (a *listAction) Execute(ctx context.Context) error {
	dir := a.dir
	if dir == "" {
		dir = "."
	}
	entries, err := fileutil.List(dir, a.all)
	if err != nil {
		return err
	}
	if !a.long {
		for _, e := range entries {
			fmt.Fprintln(a.Stdout, e.Name)
		}
		return nil
	}

	w := tabwriter.NewWriter(a.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "MODE\tSIZE\tMODIFIED\tTYPE\tNAME")
	for _, e := range entries {
		kind := "dir"
		if !e.IsDir() {
			ft, err := ftdetect.DetectFile(filepath.Join(dir, e.Name))
			if err != nil {
				a.logf("detect %s: %v", e.Name, err)
			}
			kind = ft.String()
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			e.Mode, fileutil.HumanSize(e.Size), e.ModTime.Format("2006-01-02 15:04"), kind, e.Name)
	}
	return w.Flush()
}

type checksumAction struct {
	cmdline.Named
	env

	files []string
	algo  string
}

func (a *checksumAction) SetOption(property string, values []string) (err error) {
	switch property {
	case "src":
		a.files = values
	case "algo":
		a.algo, err = oneValue(property, values)
	default:
		return unknownPropertyError{a.Name(), property}
	}
	return err
}

// Execute hashes the files concurrently and prints them in argument order.
func (a *checksumAction) Execute(ctx context.Context) error {
	sums := make([]string, len(a.files))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for i, f := range a.files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			sum, err := fileutil.Checksum(f, a.algo)
			if err != nil {
				return fmt.Errorf("failed to hash %s: %w", f, err)
			}
			sums[i] = sum
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	for i, f := range a.files {
		fmt.Fprintf(a.Stdout, "%s  %s\n", sums[i], f)
	}
	return nil
}

type compressAction struct {
	cmdline.Named
	env

	src        string
	dest       string
	decompress bool
	level      string
	force      bool
}

func (a *compressAction) SetOption(property string, values []string) (err error) {
	switch property {
	case "src":
		a.src, err = oneValue(property, values)
	case "dest":
		a.dest, err = oneValue(property, values)
	case "decompress":
		a.decompress = flagValue(values)
	case "level":
		a.level, err = oneValue(property, values)
	case "force":
		a.force = flagValue(values)
	default:
		return unknownPropertyError{a.Name(), property}
	}
	return err
}

func (a *compressAction) Execute(ctx context.Context) error {
	decompress := a.decompress
	if !decompress {
		if ft, err := ftdetect.DetectFile(a.src); err == nil && ft == ftdetect.Zstd {
			a.logf("%s is already zstd, decompressing", a.src)
			decompress = true
		}
	}

	dest := a.dest
	if dest == "" {
		if decompress {
			dest = strings.TrimSuffix(a.src, ".zst")
			if dest == a.src {
				dest = a.src + ".out"
			}
		} else {
			dest = a.src + ".zst"
		}
	}
	if _, err := os.Stat(dest); err == nil && !a.force {
		return fmt.Errorf("%s already exists (use --force)", dest)
	}

	if decompress {
		if err := codecutil.ZstdDecompress(a.src, dest); err != nil {
			return err
		}
	} else {
		level, err := codecutil.ParseLevel(a.level)
		if err != nil {
			return err
		}
		if err := codecutil.ZstdCompress(a.src, dest, level); err != nil {
			return err
		}
	}
	fmt.Fprintf(a.Stdout, "%s -> %s\n", a.src, dest)
	return nil
}

type versionAction struct {
	cmdline.Named
	env

	require string
}

func (a *versionAction) SetOption(property string, values []string) (err error) {
	if property != "require" {
		return unknownPropertyError{a.Name(), property}
	}
	a.require, err = oneValue(property, values)
	return err
}

func (a *versionAction) Execute(ctx context.Context) error {
	v, err := semver.NewVersion(version)
	if err != nil {
		return fmt.Errorf("invalid build version %q: %w", version, err)
	}
	if a.require != "" {
		c, err := semver.NewConstraint(a.require)
		if err != nil {
			return err
		}
		if !c.Check(v) {
			return fmt.Errorf("fsx %s does not satisfy %s", v, a.require)
		}
	}
	fmt.Fprintf(a.Stdout, "fsx %s\n", v)
	return nil
}

// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command fsx is a small file utility built on pkg/cmdline. Its actions and
// options come from a compiled-in catalog, or from a TOML, YAML or HCL
// catalog file given with --catalog.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/shayne/yargs"
	"github.com/yeetrun/cmdline/pkg/cmdline"
	"github.com/yeetrun/cmdline/pkg/store"
	"tailscale.com/types/logger"
)

const description = "inspect, copy, hash and compress files"

type globalFlagsParsed struct {
	Catalog       string `flag:"catalog" help:"Load actions and options from a catalog file (FSX_CATALOG)"`
	CatalogFormat string `flag:"catalog-format" help:"Catalog format (toml|yaml|hcl), inferred from the file name by default"`
	Verbose       bool   `flag:"verbose" short:"v" help:"Log each pipeline stage to stderr"`
	NoColor       bool   `flag:"no-color" help:"Disable colored help (NO_COLOR)"`
	SavePrefs     bool   `flag:"save-prefs" help:"Remember --catalog, --catalog-format and --no-color"`
}

func parseGlobalFlags(args []string) (globalFlagsParsed, []string, error) {
	result, err := yargs.ParseKnownFlags[globalFlagsParsed](args, yargs.KnownFlagsOptions{})
	if err != nil {
		return globalFlagsParsed{}, nil, err
	}
	return result.Flags, result.RemainingArgs, nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr, defaultPrefsFile())
	stop()
	os.Exit(code)
}

// run is main without the process globals. It returns the exit code.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer, prefsFile string) int {
	flags, remaining, err := parseGlobalFlags(args)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}
	p, err := loadPrefs(prefsFile)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	if flags.Catalog != "" {
		p.Catalog = flags.Catalog
	}
	if flags.CatalogFormat != "" {
		p.CatalogFormat = flags.CatalogFormat
	}
	if flags.NoColor {
		p.NoColor = true
	}
	if flags.SavePrefs {
		if err := p.save(prefsFile); err != nil {
			fmt.Fprintf(stderr, "Error: failed to save preferences: %v\n", err)
			return 1
		}
	}

	var logf logger.Logf = logger.Discard
	if flags.Verbose {
		logf = log.New(stderr, "fsx: ", log.Ltime).Printf
	}
	e := env{Stdin: stdin, Stdout: stdout, Logf: logf}

	st, err := newStore(p, e)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}
	presenter := cmdline.NewStdPresenter(stdout)
	if p.NoColor {
		presenter.Color = false
	}
	u := cmdline.New(cmdline.Config{
		Store:       st,
		Program:     "fsx",
		Description: description,
		Presenter:   presenter,
		Logf:        logf,
	})
	if err := u.Run(ctx, remaining); err != nil {
		printError(stderr, err)
		return 1
	}
	return 0
}

func newStore(p prefs, e env) (cmdline.Store, error) {
	if p.Catalog == "" {
		return staticStore(e), nil
	}
	format, err := store.ParseFormat(p.CatalogFormat)
	if err != nil {
		return nil, err
	}
	return &store.File{Path: p.Catalog, Format: format, Registry: newRegistry(e)}, nil
}

func printError(w io.Writer, err error) {
	fmt.Fprintf(w, "Error: %v\n", err)

	var missing *cmdline.MissingRequiredOptionsError
	var parse *cmdline.ParseError
	var unknown *cmdline.UnknownActionError
	switch {
	case errors.Is(err, cmdline.ErrNoAction):
		fmt.Fprintln(w, "Run 'fsx --help' to see the available actions.")
	case errors.As(err, &unknown):
		fmt.Fprintln(w, "Run 'fsx --help' to see the available actions.")
	case errors.As(err, &missing):
		fmt.Fprintf(w, "Run 'fsx --help %s' for its options.\n", missing.Action)
	case errors.As(err, &parse):
		fmt.Fprintln(w, "Run 'fsx --help' for usage.")
	}
}

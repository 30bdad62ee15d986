// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmdline

import (
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// Presenter delivers rendered help to the user.
type Presenter interface {
	PresentOptionHelp(h Help) error
	PresentActionHelp(h Help) error
}

// StdPresenter writes help to a writer, with bold headings when the writer
// is a color-capable terminal.
type StdPresenter struct {
	Out   io.Writer
	Color bool
}

// NewStdPresenter returns a StdPresenter for w. Color is enabled only when w
// is a terminal, NO_COLOR is unset, and TERM is set and not "dumb".
func NewStdPresenter(w io.Writer) *StdPresenter {
	return &StdPresenter{Out: w, Color: colorEnabled(w)}
}

func colorEnabled(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	t := os.Getenv("TERM")
	return t != "" && t != "dumb"
}

// PresentOptionHelp implements Presenter.
func (p *StdPresenter) PresentOptionHelp(h Help) error { return p.present(h) }

// PresentActionHelp implements Presenter.
func (p *StdPresenter) PresentActionHelp(h Help) error { return p.present(h) }

func (p *StdPresenter) present(h Help) error {
	if !p.Color {
		_, err := io.WriteString(p.Out, h.String())
		return err
	}
	title := color.New(color.Bold, color.FgCyan)
	heading := color.New(color.Bold)
	title.EnableColor()
	heading.EnableColor()

	var b strings.Builder
	if h.Title != "" {
		b.WriteString(title.Sprint(h.Title))
		b.WriteString("\n\n")
	}
	for _, s := range h.Sections {
		if s.Heading != "" {
			b.WriteString(heading.Sprint(s.Heading + ":"))
			b.WriteString("\n")
		}
		for _, l := range s.Lines {
			b.WriteString(l)
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	_, err := io.WriteString(p.Out, b.String())
	return err
}

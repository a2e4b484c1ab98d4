// The MIT License (MIT)
//
// Copyright (c) 2019 West Damron
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

// Package report renders diagnostics with the offending source line and a caret under the column.
package report

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"

	"github.com/wdamron/infer"
	"github.com/wdamron/infer/ast"
	"github.com/wdamron/infer/fixture"
)

// Reporter writes diagnostics to an output stream.
type Reporter struct {
	w       io.Writer
	sources map[string][]byte
	verbose bool

	errorLabel *color.Color
	location   *color.Color
	caret      *color.Color
}

// New creates a reporter writing to w. Color mode is "auto", "always" or "never"; in auto mode color
// is used only when w is a terminal.
func New(w io.Writer, mode string) *Reporter {
	r := &Reporter{
		w:          w,
		sources:    make(map[string][]byte),
		errorLabel: color.New(color.FgRed, color.Bold),
		location:   color.New(color.Bold),
		caret:      color.New(color.FgGreen, color.Bold),
	}
	enabled := useColor(w, mode)
	for _, c := range []*color.Color{r.errorLabel, r.location, r.caret} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return r
}

func useColor(w io.Writer, mode string) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	f, ok := w.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}

// SetVerbose enables stack traces for internal errors.
func (r *Reporter) SetVerbose(verbose bool) { r.verbose = verbose }

// AddSource registers the contents of file, for quoting source lines in diagnostics.
func (r *Reporter) AddSource(file string, src []byte) { r.sources[file] = src }

// Report writes a diagnostic for err.
func (r *Reporter) Report(err error) {
	if err == nil {
		return
	}
	if e, ok := infer.AsError(err); ok {
		r.diagnostic(e.Pos, e.Message())
		return
	}
	var ferr *fixture.Error
	if errors.As(err, &ferr) {
		r.diagnostic(ferr.Pos, ferr.Msg)
		return
	}
	if infer.IsInternal(err) {
		fmt.Fprintf(r.w, "%s %v\n", r.errorLabel.Sprint("internal compiler error:"), errors.Cause(err))
		if r.verbose {
			fmt.Fprintf(r.w, "%+v\n", err)
		}
		return
	}
	fmt.Fprintf(r.w, "%s %v\n", r.errorLabel.Sprint("error:"), err)
}

func (r *Reporter) diagnostic(pos ast.Pos, msg string) {
	fmt.Fprintf(r.w, "%s %s %s\n", r.location.Sprint(pos.String()+":"), r.errorLabel.Sprint("Error:"), msg)

	line, ok := fixture.SourceLine(r.sources[pos.File], pos)
	if !ok {
		return
	}
	fmt.Fprintf(r.w, "  %s\n", line)
	fmt.Fprintf(r.w, "  %s%s\n", indent(line, pos.Column), r.caret.Sprint("^"))
}

// Whitespace reaching the given 1-based column of line, keeping tabs so the caret lines up.
func indent(line string, column int) string {
	var sb strings.Builder
	for i, c := range []rune(line) {
		if i >= column-1 {
			break
		}
		if c == '\t' {
			sb.WriteRune('\t')
		} else {
			sb.WriteRune(' ')
		}
	}
	return sb.String()
}

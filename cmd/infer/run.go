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

package main

import (
	"bytes"
	"io"
	"log/slog"
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/pkg/errors"

	"github.com/wdamron/infer"
	"github.com/wdamron/infer/ast"
	"github.com/wdamron/infer/fixture"
	"github.com/wdamron/infer/internal/config"
	"github.com/wdamron/infer/internal/report"
)

var dumper = spew.ConfigState{Indent: "  ", DisablePointerAddresses: true, DisableCapacities: true, SortKeys: true}

type runner struct {
	cfg config.Config
	log *slog.Logger
	rep *report.Reporter

	// Typed modules are written to out, or to the file at outPath if out is nil
	out     io.Writer
	outPath string
	dump    io.Writer
}

// Infer the module in the file at path and write it out. Diagnostics are reported before returning.
func (r *runner) run(path string) error {
	err := r.infer(path)
	if err != nil {
		r.rep.Report(err)
	}
	return err
}

func (r *runner) infer(path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, "read module")
	}
	r.rep.AddSource(path, src)

	m, err := fixture.DecodeBytes(src, path)
	if err != nil {
		return err
	}

	if r.cfg.PruneUnused {
		if removed := infer.RemoveUnused(m, r.cfg.Entry); len(removed) > 0 {
			r.log.Info("removed unused definitions", "defs", removed)
		}
	}

	entryType, err := r.cfg.EntryTypeValue()
	if err != nil {
		return err
	}
	if err := infer.Infer(m, infer.WithLogger(r.log), infer.WithEntry(r.cfg.Entry, entryType)); err != nil {
		return err
	}

	for _, res := range infer.Residuals(m, r.cfg.Entry) {
		r.log.Warn("type not fully inferred",
			"def", res.Def, "pos", res.Expr.Pos().String(), "expr", ast.TypedExprString(res.Expr))
	}

	if r.cfg.Dump && r.dump != nil {
		dumper.Fdump(r.dump, m)
	}
	return r.write(m)
}

func (r *runner) write(m *ast.Module) error {
	if r.out != nil {
		return fixture.Encode(r.out, m)
	}
	var buf bytes.Buffer
	if err := fixture.Encode(&buf, m); err != nil {
		return err
	}
	return errors.Wrap(os.WriteFile(r.outPath, buf.Bytes(), 0o644), "write module")
}

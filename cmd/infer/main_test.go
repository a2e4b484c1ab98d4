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
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wdamron/infer/fixture"
	"github.com/wdamron/infer/internal/config"
	"github.com/wdamron/infer/internal/report"
)

const module = `format: "1.0"
externs:
  add: "(-> Int64 (-> Int64 Int64))"
defs:
  main:
    lambda:
      body: {call: [add, 1, 2]}
  unused: 3
`

func testRunner(t *testing.T, cfg config.Config) (*runner, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	var out, diag bytes.Buffer
	return &runner{
		cfg:  cfg,
		log:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		rep:  report.New(&diag, config.ColorNever),
		out:  &out,
		dump: &diag,
	}, &out, &diag
}

func writeModule(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "module.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRun(t *testing.T) {
	cfg := config.Default()
	cfg.PruneUnused = true
	cfg.Dump = true
	r, out, diag := testRunner(t, cfg)

	require.NoError(t, r.run(writeModule(t, module)))

	m, err := fixture.DecodeBytes(out.Bytes(), "out.yaml")
	require.NoError(t, err, out.String())
	assert.Equal(t, []string{"main"}, m.DefNames())
	assert.Contains(t, out.String(), "(-> Nil Int64)")
	assert.Contains(t, diag.String(), "StaticDef", "the module is dumped")
}

func TestRunToFile(t *testing.T) {
	r, _, _ := testRunner(t, config.Default())
	r.out = nil
	r.outPath = filepath.Join(t.TempDir(), "typed.yaml")

	require.NoError(t, r.run(writeModule(t, module)))
	typed, err := fixture.DecodeFile(r.outPath)
	require.NoError(t, err)
	assert.Equal(t, []string{"main", "unused"}, typed.DefNames())
}

func TestRunReportsErrors(t *testing.T) {
	r, out, diag := testRunner(t, config.Default())
	path := writeModule(t, `format: "1.0"
defs:
  main: {lambda: {body: true}}
`)
	require.Error(t, r.run(path))
	assert.Empty(t, out.String())
	assert.Contains(t, diag.String(), path+":3:")
	assert.Contains(t, diag.String(), "Type mismatch. Expected `Int64`, found `Bool`")

	diag.Reset()
	require.Error(t, r.run(filepath.Join(t.TempDir(), "missing.yaml")))
	assert.Contains(t, diag.String(), "read module")
}

func TestRunEntryOverride(t *testing.T) {
	cfg := config.Default()
	cfg.Entry = "start"
	cfg.EntryType = "(-> Nil Bool)"
	r, out, _ := testRunner(t, cfg)

	require.NoError(t, r.run(writeModule(t, `format: "1.0"
defs:
  start: {lambda: {body: true}}
`)))
	assert.Contains(t, out.String(), "(-> Nil Bool)")
}

func TestWatchFile(t *testing.T) {
	path := writeModule(t, module)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	runs := make(chan struct{}, 16)
	done := make(chan error, 1)
	go func() {
		done <- watchFile(ctx, path, slog.New(slog.NewTextHandler(io.Discard, nil)), func() { runs <- struct{}{} })
	}()

	<-runs
	require.NoError(t, os.WriteFile(path, []byte(module+"\n"), 0o644))
	select {
	case <-runs:
	case <-ctx.Done():
		t.Fatal("no run after the module changed")
	}

	cancel()
	assert.NoError(t, <-done)
}
